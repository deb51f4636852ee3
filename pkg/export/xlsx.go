package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pyhub-apps/classschedule-golang/pkg/schedule"
	"github.com/pyhub-apps/classschedule-golang/pkg/timetable"
)

const (
	coursesSheet   = "Courses"
	timetableSheet = "Timetable"
)

var courseHeaders = []any{
	"Course Code", "Course Name", "Credits", "Contact Hours", "Section", "Sequence", "Activity",
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Building", "Room", "Staff",
}

// WriteXLSX writes a workbook with the course list and the weekly grid
func WriteXLSX(w io.Writer, s *schedule.Schedule) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeCoursesSheet(f, s); err != nil {
		return fmt.Errorf("write xlsx courses: %w", err)
	}
	if err := writeTimetableSheet(f, timetable.Build(s)); err != nil {
		return fmt.Errorf("write xlsx timetable: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func writeCoursesSheet(f *excelize.File, s *schedule.Schedule) error {
	if err := f.SetSheetName("Sheet1", coursesSheet); err != nil {
		return err
	}

	header := courseHeaders
	if err := f.SetSheetRow(coursesSheet, "A1", &header); err != nil {
		return err
	}

	for i, c := range s.Courses {
		row := []any{
			c.Code, c.Name, c.Credits, c.ContactHours, c.Section, c.Sequence, c.Activity,
			c.Days[schedule.Sunday], c.Days[schedule.Monday], c.Days[schedule.Tuesday],
			c.Days[schedule.Wednesday], c.Days[schedule.Thursday],
			c.Building, c.Room, c.Staff,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(coursesSheet, cell, &row); err != nil {
			return err
		}
	}

	return f.SetColWidth(coursesSheet, "A", "O", 14)
}

func writeTimetableSheet(f *excelize.File, g *timetable.Grid) error {
	if _, err := f.NewSheet(timetableSheet); err != nil {
		return err
	}

	header := []any{"Period"}
	for _, day := range timetable.DayHeaders() {
		header = append(header, day)
	}
	if err := f.SetSheetRow(timetableSheet, "A1", &header); err != nil {
		return err
	}

	styles := map[string]int{}
	for period := 1; period <= timetable.Periods; period++ {
		row := period + 1
		label, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetCellStr(timetableSheet, label, timetable.PeriodLabel(period)); err != nil {
			return err
		}

		for d, day := range schedule.Days() {
			blocks := g.Cell(period, day)
			if len(blocks) == 0 {
				continue
			}

			cell, _ := excelize.CoordinatesToCellName(d+2, row)
			if err := f.SetCellStr(timetableSheet, cell, cellText(blocks)); err != nil {
				return err
			}

			style, ok := styles[blocks[0].Color]
			if !ok {
				var err error
				style, err = f.NewStyle(&excelize.Style{
					Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{blocks[0].Color}},
					Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
					Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
				})
				if err != nil {
					return err
				}
				styles[blocks[0].Color] = style
			}
			if err := f.SetCellStyle(timetableSheet, cell, cell, style); err != nil {
				return err
			}
		}

		if err := f.SetRowHeight(timetableSheet, row, 48); err != nil {
			return err
		}
	}

	return f.SetColWidth(timetableSheet, "B", "F", 24)
}

// cellText stacks the blocks of a cell; clashing courses are separated by a blank line
func cellText(blocks []timetable.Block) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		var lines []string
		for _, s := range []string{b.Name, b.Activity, b.Location} {
			if s != "" {
				lines = append(lines, s)
			}
		}
		parts = append(parts, strings.Join(lines, "\n"))
	}
	return strings.Join(parts, "\n\n")
}
