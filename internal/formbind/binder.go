// Package formbind applies extracted exam metadata to a set of form fields
// owned by the caller: a grade selector, a subject selector and a year input.
package formbind

import (
	"fmt"
	"strconv"

	"github.com/navanithpk/assessment-v5/internal/exam"
)

// Option is a selectable entry of a choice field
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// SelectField is a choice field whose options are matched by visible label
type SelectField interface {
	Options() []Option
	Select(value string) error
}

// ValueField is a free-form field that accepts a value
type ValueField interface {
	SetValue(value string) error
}

// Result reports which fields Bind changed
type Result struct {
	GradeSelected   bool   `json:"grade_selected"`
	GradeValue      string `json:"grade_value,omitempty"`
	SubjectSelected bool   `json:"subject_selected"`
	SubjectValue    string `json:"subject_value,omitempty"`
	YearSet         bool   `json:"year_set"`
	YearValue       string `json:"year_value,omitempty"`
}

// Bind writes metadata into the given fields. Absent metadata, nil fields and
// labels with no matching option are all no-ops. Errors only come from the
// fields themselves.
func Bind(md exam.Metadata, grade, subject SelectField, year ValueField) (Result, error) {
	var res Result

	if label, ok := md.GradeValue(); ok && grade != nil {
		value, selected, err := selectByLabel(grade, label)
		if err != nil {
			return res, fmt.Errorf("failed to select grade %q: %w", label, err)
		}
		res.GradeSelected, res.GradeValue = selected, value
	}

	if label, ok := md.SubjectValue(); ok && subject != nil {
		value, selected, err := selectByLabel(subject, label)
		if err != nil {
			return res, fmt.Errorf("failed to select subject %q: %w", label, err)
		}
		res.SubjectSelected, res.SubjectValue = selected, value
	}

	if y, ok := md.YearValue(); ok && year != nil {
		value := strconv.Itoa(y)
		if err := year.SetValue(value); err != nil {
			return res, fmt.Errorf("failed to set year %s: %w", value, err)
		}
		res.YearSet, res.YearValue = true, value
	}

	return res, nil
}

// selectByLabel selects the first option whose label equals label
func selectByLabel(field SelectField, label string) (string, bool, error) {
	for _, opt := range field.Options() {
		if opt.Label != label {
			continue
		}
		if err := field.Select(opt.Value); err != nil {
			return "", false, err
		}
		return opt.Value, true, nil
	}
	return "", false, nil
}
