// Package export writes a parsed schedule as CSV, XLSX, JSON or YAML.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v2"

	"github.com/pyhub-apps/classschedule-golang/pkg/schedule"
)

// Format is an export file format
type Format string

const (
	CSV  Format = "csv"
	XLSX Format = "xlsx"
	JSON Format = "json"
	YAML Format = "yaml"
)

// Formats lists the supported formats
func Formats() []Format {
	return []Format{CSV, XLSX, JSON, YAML}
}

// ParseFormat accepts a format name or a file name with a known extension
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimPrefix(filepath.Ext(s), "."))
	if name == "" {
		name = strings.ToLower(s)
	}
	if name == "yml" {
		name = string(YAML)
	}

	for _, f := range Formats() {
		if name == string(f) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// Write encodes s in the given format
func Write(w io.Writer, format Format, s *schedule.Schedule) error {
	switch format {
	case CSV:
		return WriteCSV(w, s)
	case XLSX:
		return WriteXLSX(w, s)
	case JSON:
		return WriteJSON(w, s)
	case YAML:
		return WriteYAML(w, s)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

// courseRecord is one CSV line
type courseRecord struct {
	Code         string `csv:"course_code"`
	Name         string `csv:"course_name"`
	Credits      string `csv:"credits"`
	ContactHours string `csv:"contact_hours"`
	Section      string `csv:"section"`
	Sequence     string `csv:"sequence"`
	Activity     string `csv:"activity"`
	Sunday       string `csv:"sunday"`
	Monday       string `csv:"monday"`
	Tuesday      string `csv:"tuesday"`
	Wednesday    string `csv:"wednesday"`
	Thursday     string `csv:"thursday"`
	Building     string `csv:"building"`
	Room         string `csv:"room"`
	Staff        string `csv:"staff"`
}

func newCourseRecord(c schedule.Course) *courseRecord {
	return &courseRecord{
		Code:         c.Code,
		Name:         c.Name,
		Credits:      c.Credits,
		ContactHours: c.ContactHours,
		Section:      c.Section,
		Sequence:     c.Sequence,
		Activity:     c.Activity,
		Sunday:       c.Days[schedule.Sunday],
		Monday:       c.Days[schedule.Monday],
		Tuesday:      c.Days[schedule.Tuesday],
		Wednesday:    c.Days[schedule.Wednesday],
		Thursday:     c.Days[schedule.Thursday],
		Building:     c.Building,
		Room:         c.Room,
		Staff:        c.Staff,
	}
}

// WriteCSV writes one record per course with a header line
func WriteCSV(w io.Writer, s *schedule.Schedule) error {
	records := make([]*courseRecord, 0, len(s.Courses))
	for _, c := range s.Courses {
		records = append(records, newCourseRecord(c))
	}

	if err := gocsv.Marshal(records, w); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// WriteJSON writes the schedule as indented JSON
func WriteJSON(w io.Writer, s *schedule.Schedule) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// WriteYAML writes the schedule as YAML
func WriteYAML(w io.Writer, s *schedule.Schedule) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("write yaml: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write yaml: %w", err)
	}
	return nil
}
