// Package render draws a schedule as terminal text, as HTML for the web
// viewer and as a PNG snapshot of that HTML.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/pyhub-apps/classschedule-golang/pkg/schedule"
	"github.com/pyhub-apps/classschedule-golang/pkg/timetable"
)

// maxColumnWidth caps a day column in terminal cells
const maxColumnWidth = 22

// Field is a labelled value shown in a header or details view
type Field struct {
	Label string
	Value string
}

// StudentFields returns the header labels in display order
func StudentFields(info schedule.StudentInfo) []Field {
	return []Field{
		{"Student ID", info.ID},
		{"Student Name", info.Name},
		{"Advisor", info.Advisor},
		{"Department", info.Department},
		{"Major", info.Major},
		{"Semester", info.Semester},
	}
}

// DetailFields returns what the course details view shows
func DetailFields(c schedule.Course) []Field {
	return []Field{
		{"Course Code", c.Code},
		{"Course Name", c.Name},
		{"Credits", c.Credits},
		{"Section", c.Section},
		{"Activity", c.Activity},
		{"Building", c.Building},
		{"Room", c.Room},
		{"Staff", c.Staff},
	}
}

// printer remembers the first write error
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

// Text writes the student header followed by the weekly grid
func Text(w io.Writer, s *schedule.Schedule, g *timetable.Grid) error {
	p := &printer{w: w}

	writeFields(p, StudentFields(s.Student))
	p.printf("\n")

	days := schedule.Days()
	headers := timetable.DayHeaders()

	labelWidth := runewidth.StringWidth("Period")
	for period := 1; period <= timetable.Periods; period++ {
		labelWidth = max(labelWidth, runewidth.StringWidth(timetable.PeriodLabel(period)))
	}

	cells := make([][][]string, timetable.Periods)
	widths := make([]int, len(days))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for period := 1; period <= timetable.Periods; period++ {
		cells[period-1] = make([][]string, len(days))
		for d, day := range days {
			lines := cellLines(g.Cell(period, day))
			for i, line := range lines {
				lines[i] = runewidth.Truncate(line, maxColumnWidth, "…")
				widths[d] = max(widths[d], runewidth.StringWidth(lines[i]))
			}
			cells[period-1][d] = lines
		}
	}

	row := func(label string, values []string) {
		p.printf("%s", runewidth.FillRight(label, labelWidth))
		for d, v := range values {
			p.printf(" | %s", runewidth.FillRight(v, widths[d]))
		}
		p.printf("\n")
	}
	rule := func() {
		p.printf("%s", strings.Repeat("-", labelWidth))
		for _, width := range widths {
			p.printf("-+-%s", strings.Repeat("-", width))
		}
		p.printf("\n")
	}

	row("Period", headers)
	rule()
	for period := 1; period <= timetable.Periods; period++ {
		height := 1
		for _, lines := range cells[period-1] {
			height = max(height, len(lines))
		}
		for line := 0; line < height; line++ {
			label := ""
			if line == 0 {
				label = timetable.PeriodLabel(period)
			}
			values := make([]string, len(days))
			for d, lines := range cells[period-1] {
				if line < len(lines) {
					values[d] = lines[line]
				}
			}
			row(label, values)
		}
		rule()
	}

	return p.err
}

// cellLines stacks name, activity and location of each block; clashing
// blocks are separated by a dashed line
func cellLines(blocks []timetable.Block) []string {
	var lines []string
	for i, b := range blocks {
		if i > 0 {
			lines = append(lines, "- - -")
		}
		for _, s := range []string{b.Name, b.Activity, b.Location} {
			if s != "" {
				lines = append(lines, s)
			}
		}
	}
	return lines
}

// Details writes the details of one course
func Details(w io.Writer, c schedule.Course) error {
	p := &printer{w: w}
	writeFields(p, DetailFields(c))
	return p.err
}

func writeFields(p *printer, fields []Field) {
	width := 0
	for _, f := range fields {
		width = max(width, runewidth.StringWidth(f.Label))
	}
	for _, f := range fields {
		p.printf("%s : %s\n", runewidth.FillRight(f.Label, width), f.Value)
	}
}
