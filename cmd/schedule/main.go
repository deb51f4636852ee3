// Command schedule reads a university class-schedule PDF and shows it as a
// weekly timetable in the terminal, a local web viewer, an image or an
// export file.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/pyhub-apps/classschedule-golang/pkg/config"
	"github.com/pyhub-apps/classschedule-golang/pkg/logging"
)

const usage = `Usage: schedule <command> [flags] [pdf]

Commands:
  show      print the weekly timetable
  details   print the details of one course
  serve     open the timetable in the local web viewer
  export    write the schedule as csv, xlsx, json or yaml
  snapshot  render the timetable to a PNG image
  info      print document metadata and parse warnings

When pdf is omitted the last opened file is used.
`

var errUsage = errors.New("invalid usage")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, stdout io.Writer) (code int) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 1
	}

	logger, closer, err := logging.SetupFile(cfg.LogFormat, cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		logger = logging.Setup(cfg.LogFormat, cfg.LogLevel, os.Stderr)
	} else {
		defer closer.Close()
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error("CRITICAL: unhandled panic", "panic", r, "stack", string(debug.Stack()))
			code = 2
		}
	}()

	logger.Info("Schedule Manager application starting...", "version", config.Version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &app{cfg: cfg, logger: logger, stdout: stdout}
	if err := app.dispatch(ctx, args); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
			return 2
		}
		logger.Error("Command failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

type app struct {
	cfg    *config.Config
	logger *slog.Logger
	stdout io.Writer
}

func (a *app) dispatch(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	commands := map[string]func(context.Context, []string) error{
		"show":     a.show,
		"details":  a.details,
		"serve":    a.serve,
		"export":   a.export,
		"snapshot": a.snapshot,
		"info":     a.info,
	}

	cmd, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("unknown command %q: %w", args[0], errUsage)
	}
	return cmd(ctx, args[1:])
}
