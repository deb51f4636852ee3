package render

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyhub-apps/classschedule-golang/pkg/schedule"
	"github.com/pyhub-apps/classschedule-golang/pkg/timetable"
)

func sampleSchedule() *schedule.Schedule {
	return &schedule.Schedule{
		Student: schedule.StudentInfo{
			ID:         "441105",
			Name:       "Ahmed Ali",
			Department: "Computer Science",
			Major:      "Software Engineering",
			Semester:   "Second 1446",
		},
		Courses: []schedule.Course{
			{
				Code: "CS 101", Name: "Intro <Programming>", Credits: "3", Section: "171",
				Activity: "Lecture", Building: "B12", Room: "204", Staff: "Dr. Hana",
				Days: [schedule.DaysPerWeek]string{"1,2", "", "3"},
			},
			{
				Code: "MA 201", Name: "Calculus", Credits: "4", Section: "172",
				Activity: "Lab", Building: "B7", Room: "11", Staff: "Dr. Omar",
				Days: [schedule.DaysPerWeek]string{"2", "", "", "", "15"},
			},
		},
	}
}

func TestText(t *testing.T) {
	s := sampleSchedule()

	var buf bytes.Buffer
	require.NoError(t, Text(&buf, s, timetable.Build(s)))
	out := buf.String()

	assert.Contains(t, out, "Student ID   : 441105")
	assert.Contains(t, out, "Student Name : Ahmed Ali")
	assert.Contains(t, out, "Advisor      : \n")

	lines := strings.Split(out, "\n")
	var header string
	for _, line := range lines {
		if strings.HasPrefix(line, "Period") {
			header = line
			break
		}
	}
	require.NotEmpty(t, header)
	for _, day := range []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday"} {
		assert.Contains(t, header, day)
	}

	assert.Contains(t, out, "7:00 ")
	assert.Contains(t, out, "9:30 ")
	assert.Contains(t, out, "Intro <Programming>")
	assert.Contains(t, out, "B12 204")
	assert.Contains(t, out, "- - -", "the clash at 8:00 Sunday is separated")
}

func TestTextTruncatesWideNames(t *testing.T) {
	s := &schedule.Schedule{Courses: []schedule.Course{{
		Code: "X", Name: strings.Repeat("Very long course name ", 3),
		Days: [schedule.DaysPerWeek]string{"1"},
	}}}

	var buf bytes.Buffer
	require.NoError(t, Text(&buf, s, timetable.Build(s)))
	assert.Contains(t, buf.String(), "…")
	assert.NotContains(t, buf.String(), strings.Repeat("Very long course name ", 2))
}

func TestDetails(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Details(&buf, sampleSchedule().Courses[1]))

	assert.Equal(t, `Course Code : MA 201
Course Name : Calculus
Credits     : 4
Section     : 172
Activity    : Lab
Building    : B7
Room        : 11
Staff       : Dr. Omar
`, buf.String())
}

func TestHTML(t *testing.T) {
	s := sampleSchedule()

	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, Page{Schedule: s}))
	out := buf.String()

	assert.Contains(t, out, "<title>Schedule Manager</title>")
	assert.Contains(t, out, "background: #1e1e1e")
	assert.Contains(t, out, `href="/courses/0"`)
	assert.Contains(t, out, `href="/courses/1"`)
	assert.Contains(t, out, "background-color: #3FA47A")
	assert.Contains(t, out, "background-color: #2C3E91")
	assert.Contains(t, out, "Intro &lt;Programming&gt;")
	assert.Contains(t, out, `class="clash"`)
	assert.Contains(t, out, "12:20")
	assert.Contains(t, out, "Software Engineering")
	assert.NotContains(t, out, `id="empty"`)
}

func TestHTMLEmptyWithError(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, Page{Error: "Could not extract data from this PDF file."}))
	out := buf.String()

	assert.Contains(t, out, `id="empty"`)
	assert.Contains(t, out, `id="error"`)
	assert.Contains(t, out, "Could not extract data from this PDF file.")
	assert.NotContains(t, out, `id="timetable"`)
}

func TestDetailsHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, DetailsHTML(&buf, sampleSchedule().Courses[0]))
	out := buf.String()

	assert.Contains(t, out, "<title>Course Details</title>")
	assert.Contains(t, out, "<dt>Course Code</dt><dd>CS 101</dd>")
	assert.Contains(t, out, "<dt>Staff</dt><dd>Dr. Hana</dd>")
}

func TestAboutHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, AboutHTML(&buf))
	out := buf.String()

	assert.Contains(t, out, "<strong>Schedule Manager</strong>")
	assert.Contains(t, out, "Version 1.0.0")
	assert.Contains(t, out, "University Schedule Management App")
}

func TestSnapshot(t *testing.T) {
	if os.Getenv("SCHEDULE_E2E") != "1" {
		t.Skip("set SCHEDULE_E2E=1 to run headless Chrome tests")
	}

	var page bytes.Buffer
	require.NoError(t, HTML(&page, Page{Schedule: sampleSchedule()}))

	var png bytes.Buffer
	require.NoError(t, Snapshot(context.Background(), page.Bytes(), &png))
	assert.True(t, bytes.HasPrefix(png.Bytes(), []byte("\x89PNG")))
}
