// Package timetable lays a schedule out on the weekly grid of 15 periods by
// five teaching days.
package timetable

import (
	"github.com/pyhub-apps/classschedule-golang/pkg/schedule"
)

// Periods is the number of teaching periods per day
const Periods = 15

var periodLabels = [Periods]string{
	"7:00", "8:00", "9:00", "10:00", "11:00",
	"12:20", "1:20", "2:20", "3:30", "4:30",
	"5:30", "6:30", "7:30", "8:30", "9:30",
}

// Palette holds the block colours; course i gets Palette[i % len(Palette)]
var Palette = []string{
	"#3FA47A", "#2C3E91", "#C99820", "#8C2F39", "#5C3A8D",
	"#287D82", "#C65D2E", "#364F6B", "#2E7D4F", "#A44A6E",
	"#B1761B", "#3B7C88", "#633974",
}

// PeriodLabel returns the start time of period (1-based)
func PeriodLabel(period int) string {
	if period < 1 || period > Periods {
		return ""
	}
	return periodLabels[period-1]
}

// DayHeaders returns the column titles
func DayHeaders() []string {
	headers := make([]string, 0, schedule.DaysPerWeek)
	for _, day := range schedule.Days() {
		headers = append(headers, day.String())
	}
	return headers
}

// ColorFor returns the block colour of the course at index
func ColorFor(courseIndex int) string {
	if courseIndex < 0 {
		courseIndex = -courseIndex
	}
	return Palette[courseIndex%len(Palette)]
}

// Block is one course occupying one grid cell
type Block struct {
	CourseIndex int
	Name        string
	Activity    string
	Location    string
	Color       string
	Period      int
	Day         schedule.Day
}

// Clash lists the blocks that share a cell
type Clash struct {
	Period int
	Day    schedule.Day
	Blocks []Block
}

// Grid is the weekly timetable. The zero value is an empty grid.
type Grid struct {
	cells [Periods][schedule.DaysPerWeek][]Block
}

// Build places every course on a fresh grid. Periods outside 1..15 are
// dropped; a course listed twice for the same cell is placed once.
func Build(s *schedule.Schedule) *Grid {
	g := &Grid{}
	if s == nil {
		return g
	}

	for i, course := range s.Courses {
		for _, day := range schedule.Days() {
			for _, period := range course.Periods(day) {
				if period < 1 || period > Periods {
					continue
				}
				g.place(Block{
					CourseIndex: i,
					Name:        course.Name,
					Activity:    course.Activity,
					Location:    course.Location(),
					Color:       ColorFor(i),
					Period:      period,
					Day:         day,
				})
			}
		}
	}

	return g
}

func (g *Grid) place(b Block) {
	cell := &g.cells[b.Period-1][b.Day]
	for _, existing := range *cell {
		if existing.CourseIndex == b.CourseIndex {
			return
		}
	}
	*cell = append(*cell, b)
}

// Cell returns the blocks at period (1-based) and day
func (g *Grid) Cell(period int, day schedule.Day) []Block {
	if period < 1 || period > Periods || day < 0 || int(day) >= schedule.DaysPerWeek {
		return nil
	}
	return g.cells[period-1][day]
}

// Blocks returns every placed block, period by period, day by day
func (g *Grid) Blocks() []Block {
	var blocks []Block
	for p := range g.cells {
		for d := range g.cells[p] {
			blocks = append(blocks, g.cells[p][d]...)
		}
	}
	return blocks
}

// Clashes returns the cells holding more than one course
func (g *Grid) Clashes() []Clash {
	var clashes []Clash
	for p := range g.cells {
		for d, blocks := range g.cells[p] {
			if len(blocks) > 1 {
				clashes = append(clashes, Clash{Period: p + 1, Day: schedule.Day(d), Blocks: blocks})
			}
		}
	}
	return clashes
}

// Empty reports whether no block was placed
func (g *Grid) Empty() bool {
	return len(g.Blocks()) == 0
}
