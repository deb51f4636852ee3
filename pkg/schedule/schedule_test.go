package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyhub-apps/classschedule-golang/pkg/pdf"
)

func TestCoursePeriods(t *testing.T) {
	c := Course{Days: [DaysPerWeek]string{"1, 2,3", "", "x, 4 ,5a, 16", "007", " , ,"}}

	assert.Equal(t, []int{1, 2, 3}, c.Periods(Sunday))
	assert.Nil(t, c.Periods(Monday))
	assert.Equal(t, []int{4, 16}, c.Periods(Tuesday))
	assert.Equal(t, []int{7}, c.Periods(Wednesday))
	assert.Nil(t, c.Periods(Thursday))
	assert.Nil(t, c.Periods(Day(7)))
}

func TestCourseLocation(t *testing.T) {
	assert.Equal(t, "B12 204", Course{Building: "B12", Room: "204"}.Location())
	assert.Equal(t, "204", Course{Room: "204"}.Location())
	assert.Equal(t, "", Course{}.Location())
}

func TestDayString(t *testing.T) {
	assert.Equal(t, "Sunday", Sunday.String())
	assert.Equal(t, "Thursday", Thursday.String())
	assert.Equal(t, "Day(9)", Day(9).String())
	assert.Len(t, Days(), DaysPerWeek)
}

func TestParseStudentInfo(t *testing.T) {
	text := `University Schedule
Ahmed Ali Department : Computer Science Classification : Senior
441105 Major : Software Engineering Stream : General
Advisor : Dr. Sara Semester : ignored
Semester : Second 1446`

	info := ParseStudentInfo(text)
	assert.Equal(t, StudentInfo{
		ID:         "441105",
		Name:       "Ahmed Ali",
		Advisor:    "Dr. Sara",
		Department: "Computer Science",
		Major:      "Software Engineering",
		Semester:   "Second 1446",
	}, info)
}

func TestParseStudentInfoTightLabels(t *testing.T) {
	info := ParseStudentInfo("Mona Department:Physics Classification:Junior\n  99 Major:Optics Stream:A  ")

	assert.Equal(t, "Mona", info.Name)
	assert.Equal(t, "Physics", info.Department)
	assert.Equal(t, "99", info.ID)
	assert.Equal(t, "Optics", info.Major)
	assert.Empty(t, info.Semester)
	assert.Empty(t, info.Advisor)
}

func TestParseStudentInfoEmpty(t *testing.T) {
	assert.Equal(t, StudentInfo{}, ParseStudentInfo("nothing to see\n\n"))
}

func TestStudentInfoClean(t *testing.T) {
	dirty := StudentInfo{
		ID:       "123 Major : CS",
		Name:     "Omar Department : Math",
		Semester: "Semester : First",
		Major:    "CS",
	}

	assert.Equal(t, StudentInfo{
		ID:       "123",
		Name:     "Omar",
		Semester: "First",
		Major:    "CS",
	}, dirty.Clean())
}

func row(cells ...string) []string {
	return cells
}

func TestParseCourseRow(t *testing.T) {
	course, ok := ParseCourseRow(row(
		"CS 101", "Intro to\nProgramming", "3", "4", "171", "1", "Lecture",
		"1,2", "", "3", "", "5", "B12", "204", "Dr. Hana",
	))
	require.True(t, ok)
	assert.Equal(t, Course{
		Code:         "CS 101",
		Name:         "Intro to Programming",
		Credits:      "3",
		ContactHours: "4",
		Section:      "171",
		Sequence:     "1",
		Activity:     "Lecture",
		Days:         [DaysPerWeek]string{"1,2", "", "3", "", "5"},
		Building:     "B12",
		Room:         "204",
		Staff:        "Dr. Hana",
	}, course)
}

func TestParseCourseRowPadsShortRows(t *testing.T) {
	course, ok := ParseCourseRow(row("MA 201", "Calculus", "4", "4", "2", "1", "Lab", "1", "2", "3"))
	require.True(t, ok)
	assert.Equal(t, "3", course.Days[Tuesday])
	assert.Empty(t, course.Days[Thursday])
	assert.Empty(t, course.Building)
	assert.Empty(t, course.Staff)
}

func TestParseCourseRowRejects(t *testing.T) {
	tests := []struct {
		name string
		row  []string
	}{
		{"too short", row("CS 101", "Intro", "3")},
		{"header", row("Course Code", "Course Name", "Cr", "CT", "Sec", "Seq", "Activity", "Sun", "Mon", "Tue", "Wed", "Thu")},
		{"credits header", row("Code", "Name", "Cr", "", "", "", "", "", "", "")},
		{"blank", row("", " ", "\n", "", "", "", "", "", "", "")},
		{"no code", row("", "Continuation", "", "", "", "", "", "4", "", "")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := ParseCourseRow(tt.row)
			assert.False(t, ok)
		})
	}
}

func TestParseCourseRowKeepsNamesContainingCr(t *testing.T) {
	course, ok := ParseCourseRow(row("EE 310", "Microprocessors", "3", "3", "1", "1", "Lecture", "", "1", "", "", ""))
	require.True(t, ok)
	assert.Equal(t, "Microprocessors", course.Name)
}

func TestParseTables(t *testing.T) {
	header := row("Course Code", "Course Name", "Cr", "CT", "Sec", "Seq", "Activity", "Sun", "Mon", "Tue", "Wed", "Thu", "Building", "Room", "Staff")
	cs := row("CS 101", "Intro", "3", "3", "1", "1", "Lecture", "1", "", "", "", "", "B1", "1", "A")
	ma := row("MA 201", "Calculus", "4", "4", "1", "1", "Lecture", "", "2", "", "", "", "B2", "2", "B")

	courses := ParseTables([]pdf.Table{
		{Rows: [][]string{header, cs, ma}},
		{Rows: [][]string{cs, ma}},
	})

	require.Len(t, courses, 2, "tables with fewer than three rows are ignored")
	assert.Equal(t, "CS 101", courses[0].Code)
	assert.Equal(t, "MA 201", courses[1].Code)
}

func TestScheduleCourse(t *testing.T) {
	s := &Schedule{Courses: []Course{{Code: "A"}}}

	c, ok := s.Course(0)
	assert.True(t, ok)
	assert.Equal(t, "A", c.Code)

	_, ok = s.Course(1)
	assert.False(t, ok)
	_, ok = (*Schedule)(nil).Course(0)
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	s := &Schedule{Courses: []Course{
		{Code: "CS 101", Days: [DaysPerWeek]string{"1,2"}},
		{Code: "MA 201", Days: [DaysPerWeek]string{"0", "16"}},
		{Days: [DaysPerWeek]string{"3"}},
	}}

	problems := Validate(s)
	require.Len(t, problems, 3)
	assert.Equal(t, "MA 201: period 0 is outside 1..15", problems["courses[1].periods[0]"])
	assert.Equal(t, "MA 201: period 16 is outside 1..15", problems["courses[1].periods[1]"])
	assert.Equal(t, "code is required", problems["courses[2].code"])

	assert.Nil(t, Validate(&Schedule{Courses: s.Courses[:1]}))
}
