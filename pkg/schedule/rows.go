package schedule

import (
	"strings"

	"github.com/pyhub-apps/classschedule-golang/pkg/pdf"
)

// Column layout of a course row
const (
	colCode = iota
	colName
	colCredits
	colContactHours
	colSection
	colSequence
	colActivity
	colSunday
	colMonday
	colTuesday
	colWednesday
	colThursday
	colBuilding
	colRoom
	colStaff

	rowWidth
)

const (
	minRowCells   = 10
	minTableRows  = 3
	headerCredits = "cr"
)

var headerPhrases = []string{"course code", "course name"}

// ParseCourseRow maps a table row to a Course. It reports false for rows
// that are too short, header rows, blank rows and rows without a course code.
func ParseCourseRow(row []string) (Course, bool) {
	if len(row) < minRowCells {
		return Course{}, false
	}

	cells := make([]string, rowWidth)
	blank := true
	for i, cell := range row {
		cell = strings.Join(strings.Fields(cell), " ")
		if cell != "" {
			blank = false
		}
		if i < rowWidth {
			cells[i] = cell
		}
	}
	if blank || isHeaderRow(cells) {
		return Course{}, false
	}

	if cells[colCode] == "" {
		return Course{}, false
	}

	return Course{
		Code:         cells[colCode],
		Name:         cells[colName],
		Credits:      cells[colCredits],
		ContactHours: cells[colContactHours],
		Section:      cells[colSection],
		Sequence:     cells[colSequence],
		Activity:     cells[colActivity],
		Days: [DaysPerWeek]string{
			cells[colSunday],
			cells[colMonday],
			cells[colTuesday],
			cells[colWednesday],
			cells[colThursday],
		},
		Building: cells[colBuilding],
		Room:     cells[colRoom],
		Staff:    cells[colStaff],
	}, true
}

// isHeaderRow matches the column titles row. A bare "Cr" cell is the credits
// title; course names that merely contain "cr" are not headers.
func isHeaderRow(cells []string) bool {
	for _, cell := range cells {
		lower := strings.ToLower(cell)
		if lower == headerCredits {
			return true
		}
		for _, phrase := range headerPhrases {
			if strings.Contains(lower, phrase) {
				return true
			}
		}
	}
	return false
}

// ParseTables collects the courses of every table with enough rows
func ParseTables(tables []pdf.Table) []Course {
	var courses []Course
	for _, table := range tables {
		if len(table.Rows) < minTableRows {
			continue
		}
		for _, row := range table.Rows {
			if course, ok := ParseCourseRow(row); ok {
				courses = append(courses, course)
			}
		}
	}
	return courses
}
