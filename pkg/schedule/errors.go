package schedule

import "github.com/pkg/errors"

var (
	// ErrFileNotFound is returned when the PDF path does not exist
	ErrFileNotFound = errors.New("schedule file not found")
	// ErrUnreadable is returned when no PDF reader could parse the file
	ErrUnreadable = errors.New("schedule file could not be read as PDF")
	// ErrNoPages is returned for a PDF without pages
	ErrNoPages = errors.New("schedule file has no pages")
	// ErrNoScheduleData is returned when neither courses nor a student name were found
	ErrNoScheduleData = errors.New("no schedule data found")
)
