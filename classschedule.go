// Package classschedule reads university class-schedule PDFs into typed
// schedules and lays them out on the weekly timetable grid.
package classschedule

import (
	"context"

	"github.com/pyhub-apps/classschedule-golang/pkg/pdf"
	"github.com/pyhub-apps/classschedule-golang/pkg/schedule"
	"github.com/pyhub-apps/classschedule-golang/pkg/timetable"
)

// Re-export types for the public API
type (
	Document              = pdf.Document
	Page                  = pdf.Page
	Table                 = pdf.Table
	TableExtractionOption = pdf.TableExtractionOption
	TextExtractionOption  = pdf.TextExtractionOption
	Word                  = pdf.Word
	Objects               = pdf.Objects
	CharObject            = pdf.CharObject
	LineObject            = pdf.LineObject
	RectObject            = pdf.RectObject
	BoundingBox           = pdf.BoundingBox
	Metadata              = pdf.Metadata

	Schedule    = schedule.Schedule
	Course      = schedule.Course
	StudentInfo = schedule.StudentInfo
	Day         = schedule.Day
	Option      = schedule.Option

	Grid  = timetable.Grid
	Block = timetable.Block
)

// Re-export option functions
var (
	WithTableStrategy = pdf.WithTableStrategy
	WithMinTableSize  = pdf.WithMinTableSize
	WithTextTolerance = pdf.WithTextTolerance
	WithSnapTolerance = pdf.WithSnapTolerance
	WithXTolerance    = pdf.WithXTolerance
	WithYTolerance    = pdf.WithYTolerance

	WithLogger       = schedule.WithLogger
	WithProgress     = schedule.WithProgress
	WithTableOptions = schedule.WithTableOptions
)

// Open opens a PDF file with the first backend that can read it
func Open(path string) (Document, error) {
	return pdf.Open(path)
}

// Extract parses the schedule PDF at path
func Extract(ctx context.Context, path string, opts ...Option) (*Schedule, error) {
	return schedule.NewExtractor(opts...).Extract(ctx, path)
}

// Timetable places the courses of s on the weekly grid
func Timetable(s *Schedule) *Grid {
	return timetable.Build(s)
}
