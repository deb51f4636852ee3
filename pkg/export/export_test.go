package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v2"

	"github.com/pyhub-apps/classschedule-golang/pkg/schedule"
)

func sampleSchedule() *schedule.Schedule {
	return &schedule.Schedule{
		Source:  "schedule.pdf",
		Student: schedule.StudentInfo{ID: "441105", Name: "Ahmed Ali"},
		Courses: []schedule.Course{
			{
				Code: "CS 101", Name: "Intro, Programming", Credits: "3", Activity: "Lecture",
				Building: "B12", Room: "204", Staff: "Dr. Hana",
				Days: [schedule.DaysPerWeek]string{"1,2", "", "3"},
			},
			{
				Code: "MA 201", Name: "Calculus", Credits: "4", Activity: "Lab",
				Building: "B7", Room: "11",
				Days: [schedule.DaysPerWeek]string{"2", "", "", "", "15"},
			},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"csv":               CSV,
		"XLSX":              XLSX,
		"out/schedule.json": JSON,
		"schedule.yml":      YAML,
		"yaml":              YAML,
	}
	for in, want := range tests {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("schedule.pdf")
	assert.Error(t, err)
	assert.Error(t, Write(&bytes.Buffer{}, Format("pdf"), sampleSchedule()))
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, CSV, sampleSchedule()))

	var records []*courseRecord
	require.NoError(t, gocsv.UnmarshalBytes(buf.Bytes(), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "Intro, Programming", records[0].Name)
	assert.Equal(t, "1,2", records[0].Sunday)
	assert.Equal(t, "3", records[0].Tuesday)
	assert.Equal(t, "15", records[1].Thursday)

	assert.Contains(t, buf.String(), "course_code,course_name,credits")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, JSON, sampleSchedule()))

	var decoded schedule.Schedule
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, *sampleSchedule(), decoded)
	assert.Contains(t, buf.String(), `"contact_hours": ""`)
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, YAML, sampleSchedule()))

	var decoded schedule.Schedule
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "441105", decoded.Student.ID)
	require.Len(t, decoded.Courses, 2)
	assert.Equal(t, "1,2", decoded.Courses[0].Days[schedule.Sunday])
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, XLSX, sampleSchedule()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Courses", "Timetable"}, f.GetSheetList())

	rows, err := f.GetRows("Courses")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Course Code", rows[0][0])
	assert.Equal(t, "CS 101", rows[1][0])
	assert.Equal(t, "Dr. Hana", rows[1][14])

	header, err := f.GetCellValue("Timetable", "B1")
	require.NoError(t, err)
	assert.Equal(t, "Sunday", header)

	label, err := f.GetCellValue("Timetable", "A7")
	require.NoError(t, err)
	assert.Equal(t, "12:20", label)

	first, err := f.GetCellValue("Timetable", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Intro, Programming\nLecture\nB12 204", first)

	clash, err := f.GetCellValue("Timetable", "B3")
	require.NoError(t, err)
	assert.Equal(t, "Intro, Programming\nLecture\nB12 204\n\nCalculus\nLab\nB7 11", clash)

	last, err := f.GetCellValue("Timetable", "F16")
	require.NoError(t, err)
	assert.Equal(t, "Calculus\nLab\nB7 11", last)
}
