// Package schedule turns the tables of a university class schedule PDF into
// a typed Schedule: the student header and one Course per table row.
package schedule

import (
	"strconv"
	"strings"

	"github.com/pyhub-apps/classschedule-golang/pkg/pdf"
)

// Day is a teaching day of the week, Sunday through Thursday
type Day int

const (
	Sunday Day = iota
	Monday
	Tuesday
	Wednesday
	Thursday
)

// DaysPerWeek is the number of teaching days in the timetable
const DaysPerWeek = 5

var dayNames = [DaysPerWeek]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday"}

func (d Day) String() string {
	if d < 0 || int(d) >= DaysPerWeek {
		return "Day(" + strconv.Itoa(int(d)) + ")"
	}
	return dayNames[d]
}

// Days lists the teaching days in timetable order
func Days() []Day {
	return []Day{Sunday, Monday, Tuesday, Wednesday, Thursday}
}

// StudentInfo is the free-text header printed above the course table
type StudentInfo struct {
	ID         string `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	Advisor    string `json:"advisor" yaml:"advisor"`
	Department string `json:"department" yaml:"department"`
	Major      string `json:"major" yaml:"major"`
	Semester   string `json:"semester" yaml:"semester"`
}

// Course is one row of the schedule table. Days holds the raw period list
// of each teaching day, e.g. "1, 2, 3".
type Course struct {
	Code         string              `json:"code" yaml:"code"`
	Name         string              `json:"name" yaml:"name"`
	Credits      string              `json:"credits" yaml:"credits"`
	ContactHours string              `json:"contact_hours" yaml:"contact_hours"`
	Section      string              `json:"section" yaml:"section"`
	Sequence     string              `json:"sequence" yaml:"sequence"`
	Activity     string              `json:"activity" yaml:"activity"`
	Days         [DaysPerWeek]string `json:"days" yaml:"days"`
	Building     string              `json:"building" yaml:"building"`
	Room         string              `json:"room" yaml:"room"`
	Staff        string              `json:"staff" yaml:"staff"`
}

// Periods returns the period numbers listed for day. Tokens that are not
// made only of digits are skipped; range checks are left to the caller.
func (c Course) Periods(day Day) []int {
	if day < 0 || int(day) >= DaysPerWeek {
		return nil
	}

	var periods []int
	for _, token := range strings.Split(c.Days[day], ",") {
		token = strings.TrimSpace(token)
		if !isDigits(token) {
			continue
		}
		n, err := strconv.Atoi(token)
		if err != nil {
			continue
		}
		periods = append(periods, n)
	}
	return periods
}

// Location is the building and room separated by a space
func (c Course) Location() string {
	return strings.TrimSpace(c.Building + " " + c.Room)
}

// Schedule is everything extracted from one PDF
type Schedule struct {
	Source   string       `json:"source" yaml:"source"`
	Student  StudentInfo  `json:"student" yaml:"student"`
	Courses  []Course     `json:"courses" yaml:"courses"`
	Metadata pdf.Metadata `json:"metadata" yaml:"metadata"`
}

// Course returns the course at index, or false when out of range
func (s *Schedule) Course(index int) (Course, bool) {
	if s == nil || index < 0 || index >= len(s.Courses) {
		return Course{}, false
	}
	return s.Courses[index], true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
