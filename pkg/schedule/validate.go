package schedule

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// courseRules is the validated view of a course
type courseRules struct {
	Code    string `json:"code" validate:"required"`
	Periods []int  `json:"periods" validate:"dive,gte=1,lte=15"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// report json names rather than Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// Validate checks every course and returns problems keyed by
// "courses[i].field". A nil map means the schedule is clean.
func Validate(s *Schedule) map[string]string {
	var problems map[string]string

	for i, course := range s.Courses {
		rules := courseRules{Code: course.Code}
		for _, day := range Days() {
			rules.Periods = append(rules.Periods, course.Periods(day)...)
		}

		err := validate.Struct(rules)
		if err == nil {
			continue
		}

		var valErrs validator.ValidationErrors
		if !errors.As(err, &valErrs) {
			continue
		}

		if problems == nil {
			problems = make(map[string]string)
		}
		for _, e := range valErrs {
			problems[fmt.Sprintf("courses[%d].%s", i, e.Field())] = validationMessage(course, e)
		}
	}

	return problems
}

func validationMessage(course Course, e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "gte", "lte":
		return fmt.Sprintf("%s: period %v is outside 1..15", course.Code, e.Value())
	default:
		return fmt.Sprintf("%s is invalid", e.Field())
	}
}
