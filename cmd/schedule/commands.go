package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/pkg/errors"

	"github.com/pyhub-apps/classschedule-golang/pkg/config"
	"github.com/pyhub-apps/classschedule-golang/pkg/export"
	"github.com/pyhub-apps/classschedule-golang/pkg/pdf"
	"github.com/pyhub-apps/classschedule-golang/pkg/render"
	"github.com/pyhub-apps/classschedule-golang/pkg/schedule"
	"github.com/pyhub-apps/classschedule-golang/pkg/timetable"
	"github.com/pyhub-apps/classschedule-golang/pkg/viewer"
)

func (a *app) store() *config.Store {
	return config.NewStore(a.cfg.Dir, a.logger)
}

// resolvePDF returns the named PDF or, when none is named, the last one opened
func (a *app) resolvePDF(fs *flag.FlagSet) (string, error) {
	if path := fs.Arg(0); path != "" {
		return path, nil
	}
	if path := a.store().LoadLastPDFPath(); path != "" {
		a.logger.Info("Loading last used PDF file", "path", path)
		return path, nil
	}
	return "", fmt.Errorf("no PDF given and no last used file: %w", errUsage)
}

// load extracts the schedule and remembers the file as the last one opened
func (a *app) load(ctx context.Context, path string, strategy string) (*schedule.Schedule, error) {
	var opts []schedule.Option
	opts = append(opts, schedule.WithLogger(a.logger))
	if strategy != "" {
		opts = append(opts, schedule.WithTableOptions(pdf.WithTableStrategy(strategy)))
	}

	s, err := schedule.NewExtractor(opts...).Extract(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := a.store().SaveLastPDFPath(path); err != nil {
		a.logger.Warn("Could not remember last PDF", "error", err)
	}
	return s, nil
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%s: %w", err, errUsage)
	}
	return nil
}

func (a *app) show(ctx context.Context, args []string) error {
	fs := newFlagSet("show")
	strategy := fs.String("strategy", "", "table strategy: auto, lattice or stream")
	if err := parse(fs, args); err != nil {
		return err
	}

	path, err := a.resolvePDF(fs)
	if err != nil {
		return err
	}
	s, err := a.load(ctx, path, *strategy)
	if err != nil {
		return err
	}

	grid := timetable.Build(s)
	if err := render.Text(a.stdout, s, grid); err != nil {
		return err
	}
	for _, clash := range grid.Clashes() {
		a.logger.Warn("Courses overlap", "day", clash.Day.String(), "period", clash.Period, "courses", len(clash.Blocks))
	}
	return nil
}

func (a *app) details(ctx context.Context, args []string) error {
	fs := newFlagSet("details")
	if err := parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("details needs a course index: %w", errUsage)
	}

	index, err := strconv.Atoi(fs.Arg(fs.NArg() - 1))
	if err != nil {
		return fmt.Errorf("course index %q: %w", fs.Arg(fs.NArg()-1), errUsage)
	}

	var path string
	if fs.NArg() > 1 {
		path = fs.Arg(0)
	} else if path = a.store().LoadLastPDFPath(); path == "" {
		return fmt.Errorf("no PDF given and no last used file: %w", errUsage)
	}

	s, err := a.load(ctx, path, "")
	if err != nil {
		return err
	}

	course, ok := s.Course(index)
	if !ok {
		a.logger.Error("Course index out of range", "index", index, "courses", len(s.Courses))
		return fmt.Errorf("no course at index %d (schedule has %d)", index, len(s.Courses))
	}
	return render.Details(a.stdout, course)
}

func (a *app) serve(ctx context.Context, args []string) error {
	fs := newFlagSet("serve")
	addr := fs.String("addr", a.cfg.Addr, "listen address")
	if err := parse(fs, args); err != nil {
		return err
	}

	extractor := schedule.NewExtractor(schedule.WithLogger(a.logger))
	v := viewer.New(extractor, a.store(),
		viewer.WithLogger(a.logger),
		viewer.WithIcon(config.FindIcon(config.ExecutableDir())),
		viewer.WithUploadDir(a.cfg.Dir),
	)

	if path := fs.Arg(0); path != "" {
		if err := v.Load(ctx, path); err != nil {
			a.logger.Warn(viewer.ExtractFailedMessage, "path", path)
		}
	} else {
		v.LoadLast(ctx)
	}

	fmt.Fprintf(a.stdout, "Timetable at http://%s (Ctrl+C to stop)\n", *addr)
	return v.ListenAndServe(ctx, *addr)
}

func (a *app) export(ctx context.Context, args []string) error {
	fs := newFlagSet("export")
	out := fs.String("o", "", "output file; the extension picks the format")
	format := fs.String("format", "", "csv, xlsx, json or yaml (overrides the extension)")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *out == "" {
		return fmt.Errorf("export needs -o: %w", errUsage)
	}

	name := *out
	if *format != "" {
		name = *format
	}
	f, err := export.ParseFormat(name)
	if err != nil {
		return err
	}

	path, err := a.resolvePDF(fs)
	if err != nil {
		return err
	}
	s, err := a.load(ctx, path, "")
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, f, s); err != nil {
		return err
	}
	if err := os.WriteFile(*out, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", *out, err)
	}

	a.logger.Info("Schedule exported", "path", *out, "format", string(f), "courses", len(s.Courses))
	return nil
}

func (a *app) snapshot(ctx context.Context, args []string) error {
	fs := newFlagSet("snapshot")
	out := fs.String("o", "timetable.png", "output PNG file")
	if err := parse(fs, args); err != nil {
		return err
	}

	path, err := a.resolvePDF(fs)
	if err != nil {
		return err
	}
	s, err := a.load(ctx, path, "")
	if err != nil {
		return err
	}

	var page bytes.Buffer
	if err := render.HTML(&page, render.Page{Schedule: s}); err != nil {
		return err
	}

	var png bytes.Buffer
	if err := render.Snapshot(ctx, page.Bytes(), &png); err != nil {
		return err
	}
	if err := os.WriteFile(*out, png.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", *out, err)
	}

	a.logger.Info("Timetable snapshot written", "path", *out)
	return nil
}

func (a *app) info(ctx context.Context, args []string) error {
	fs := newFlagSet("info")
	if err := parse(fs, args); err != nil {
		return err
	}

	path, err := a.resolvePDF(fs)
	if err != nil {
		return err
	}

	doc, err := pdf.Open(path)
	if err != nil {
		return errors.Wrap(schedule.ErrUnreadable, err.Error())
	}
	meta := doc.Metadata()
	pages := doc.PageCount()
	doc.Close()

	fmt.Fprintf(a.stdout, "File     : %s\n", path)
	fmt.Fprintf(a.stdout, "Pages    : %d\n", pages)
	fmt.Fprintf(a.stdout, "Backend  : %s\n", meta.Backend)
	fmt.Fprintf(a.stdout, "Title    : %s\n", meta.Title)
	fmt.Fprintf(a.stdout, "Author   : %s\n", meta.Author)
	fmt.Fprintf(a.stdout, "Creator  : %s\n", meta.Creator)
	fmt.Fprintf(a.stdout, "Producer : %s\n", meta.Producer)

	s, err := a.load(ctx, path, "")
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Student  : %s (%s)\n", s.Student.Name, s.Student.ID)
	fmt.Fprintf(a.stdout, "Courses  : %d\n", len(s.Courses))

	problems := schedule.Validate(s)
	fields := make([]string, 0, len(problems))
	for field := range problems {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		fmt.Fprintf(a.stdout, "Warning  : %s %s\n", field, problems[field])
	}
	return nil
}
