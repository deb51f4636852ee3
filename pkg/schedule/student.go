package schedule

import (
	"regexp"
	"strings"
)

// Header labels. Whitespace before the colon varies between exports.
var (
	labelDepartment     = regexp.MustCompile(`Department\s*:`)
	labelClassification = regexp.MustCompile(`Classification\s*:`)
	labelMajor          = regexp.MustCompile(`Major\s*:`)
	labelStream         = regexp.MustCompile(`Stream\s*:`)
	labelSemester       = regexp.MustCompile(`Semester\s*:`)
	labelAdvisor        = regexp.MustCompile(`Advisor\s*:`)

	allLabels = []*regexp.Regexp{
		labelDepartment, labelClassification, labelMajor,
		labelStream, labelSemester, labelAdvisor,
	}
)

// ParseStudentInfo reads the student header from the text of the first
// page. The header is laid out as
//
//	<name> Department : <department> Classification : ...
//	<id> Major : <major> Stream : ...
//	Semester : <semester>
//
// Later lines overwrite earlier matches.
func ParseStudentInfo(text string) StudentInfo {
	var info StudentInfo

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch {
		case labelDepartment.MatchString(line) && labelClassification.MatchString(line):
			info.Name = before(line, labelDepartment)
			info.Department = between(line, labelDepartment, labelClassification)
		case labelMajor.MatchString(line) && labelStream.MatchString(line):
			info.ID = before(line, labelMajor)
			info.Major = between(line, labelMajor, labelStream)
		case labelSemester.MatchString(line):
			info.Semester = after(line, labelSemester)
		}

		if labelAdvisor.MatchString(line) {
			info.Advisor = untilNextLabel(after(line, labelAdvisor))
		}
	}

	return info
}

// Clean strips header labels that leaked into values
func (s StudentInfo) Clean() StudentInfo {
	if labelMajor.MatchString(s.ID) {
		s.ID = before(s.ID, labelMajor)
	}
	if labelDepartment.MatchString(s.Name) {
		s.Name = before(s.Name, labelDepartment)
	}
	if labelSemester.MatchString(s.Semester) {
		s.Semester = after(s.Semester, labelSemester)
	}
	return s
}

func before(s string, label *regexp.Regexp) string {
	loc := label.FindStringIndex(s)
	if loc == nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(s[:loc[0]])
}

func after(s string, label *regexp.Regexp) string {
	loc := label.FindStringIndex(s)
	if loc == nil {
		return ""
	}
	return strings.TrimSpace(s[loc[1]:])
}

func between(s string, start, end *regexp.Regexp) string {
	return before(after(s, start), end)
}

// untilNextLabel cuts s at the first header label it contains
func untilNextLabel(s string) string {
	cut := len(s)
	for _, label := range allLabels {
		if loc := label.FindStringIndex(s); loc != nil && loc[0] < cut {
			cut = loc[0]
		}
	}
	return strings.TrimSpace(s[:cut])
}
