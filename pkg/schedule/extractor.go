package schedule

import (
	"context"
	"log/slog"
	"os"

	"github.com/pkg/errors"

	"github.com/pyhub-apps/classschedule-golang/pkg/pdf"
)

// Opener opens a PDF document. pdf.Open is the default.
type Opener func(path string) (pdf.Document, error)

// ProgressFunc receives the completion percentage of an extraction
type ProgressFunc func(percent int)

// Extractor reads schedules from PDF files
type Extractor struct {
	open      Opener
	logger    *slog.Logger
	progress  ProgressFunc
	tableOpts []pdf.TableExtractionOption
}

// Option configures an Extractor
type Option func(*Extractor)

// WithOpener replaces the PDF opener
func WithOpener(open Opener) Option {
	return func(e *Extractor) {
		e.open = open
	}
}

// WithLogger sets the logger; slog.Default() otherwise
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// WithProgress registers a progress callback
func WithProgress(fn ProgressFunc) Option {
	return func(e *Extractor) {
		e.progress = fn
	}
}

// WithTableOptions passes options to table extraction on every page
func WithTableOptions(opts ...pdf.TableExtractionOption) Option {
	return func(e *Extractor) {
		e.tableOpts = append(e.tableOpts, opts...)
	}
}

// NewExtractor creates an Extractor
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		open:   pdf.Open,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses the schedule PDF at path. Progress is reported at 0 and
// 20 percent before reading and at 100 when Extract returns, whether or not
// it succeeded.
func (e *Extractor) Extract(ctx context.Context, path string) (*Schedule, error) {
	e.report(0)
	e.report(20)
	defer e.report(100)

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(ErrFileNotFound, path)
		}
		return nil, errors.Wrapf(err, "could not stat %s", path)
	}

	doc, err := e.open(path)
	if err != nil {
		e.logger.Error("Error reading PDF", "path", path, "error", err)
		return nil, errors.Wrap(ErrUnreadable, err.Error())
	}
	defer doc.Close()

	if doc.PageCount() == 0 {
		return nil, errors.Wrap(ErrNoPages, path)
	}

	s := &Schedule{
		Source:   path,
		Metadata: doc.Metadata(),
	}

	for i, page := range doc.Pages() {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "extraction cancelled")
		}

		if i == 0 {
			s.Student = ParseStudentInfo(page.ExtractText()).Clean()
		}

		tables := page.ExtractTables(e.tableOpts...)
		courses := ParseTables(tables)
		e.logger.Debug("Parsed page", "page", page.Number(), "tables", len(tables), "courses", len(courses))
		s.Courses = append(s.Courses, courses...)
	}

	if len(s.Courses) == 0 && s.Student.Name == "" {
		e.logger.Warn("No meaningful course data or student name found - PDF may not be a valid schedule", "path", path)
		return nil, errors.Wrap(ErrNoScheduleData, path)
	}

	for field, problem := range Validate(s) {
		e.logger.Warn("Course data looks wrong", "field", field, "problem", problem)
	}

	e.logger.Info("Schedule extracted", "path", path, "courses", len(s.Courses), "student", s.Student.Name)
	return s, nil
}

func (e *Extractor) report(percent int) {
	if e.progress != nil {
		e.progress(percent)
	}
}
