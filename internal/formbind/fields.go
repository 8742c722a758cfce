package formbind

import (
	"fmt"
	"sync"

	"github.com/navanithpk/assessment-v5/internal/exam"
	"github.com/navanithpk/assessment-v5/internal/papers"
)

// Select is an in-memory SelectField
type Select struct {
	mu      sync.RWMutex
	name    string
	options []Option
	value   string
}

// NewSelect creates a select field with the given options
func NewSelect(name string, options ...Option) *Select {
	return &Select{
		name:    name,
		options: append([]Option(nil), options...),
	}
}

// Name returns the field name
func (s *Select) Name() string { return s.name }

// Options returns a copy of the field's options
func (s *Select) Options() []Option {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Option(nil), s.options...)
}

// Select sets the selected value, which must belong to one of the options
func (s *Select) Select(value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, opt := range s.options {
		if opt.Value == value {
			s.value = value
			return nil
		}
	}
	return fmt.Errorf("no option with value %q in field %s", value, s.name)
}

// Value returns the selected value, empty when nothing is selected
func (s *Select) Value() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Input is an in-memory ValueField
type Input struct {
	mu    sync.RWMutex
	name  string
	value string
}

// NewInput creates an empty input field
func NewInput(name string) *Input {
	return &Input{name: name}
}

// Name returns the field name
func (i *Input) Name() string { return i.name }

// SetValue replaces the field value
func (i *Input) SetValue(value string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.value = value
	return nil
}

// Value returns the current value
func (i *Input) Value() string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.value
}

// FieldNames names the three form fields Bind writes to
type FieldNames struct {
	Grade   string `json:"grade"`
	Subject string `json:"subject"`
	Year    string `json:"year"`
}

// DefaultFieldNames match the upload form's field names
var DefaultFieldNames = FieldNames{
	Grade:   "grade",
	Subject: "subject",
	Year:    "year",
}

// Form groups the three fields of an upload form. Any of them may be nil
// when the source form does not carry it.
type Form struct {
	Grade   *Select
	Subject *Select
	Year    *Input
}

// Apply binds metadata into the form
func (f *Form) Apply(md exam.Metadata) (Result, error) {
	// Typed nil pointers must not reach Bind as non-nil interfaces.
	var grade, subject SelectField
	var year ValueField
	if f.Grade != nil {
		grade = f.Grade
	}
	if f.Subject != nil {
		subject = f.Subject
	}
	if f.Year != nil {
		year = f.Year
	}
	return Bind(md, grade, subject, year)
}

// FromFormFields builds a Form from fields read out of a fillable PDF.
// Choice fields become selects; text fields become inputs.
func FromFormFields(fields []papers.FormField, names FieldNames) *Form {
	form := &Form{}
	for _, field := range fields {
		switch field.Name {
		case names.Grade:
			if field.Type == papers.FormFieldTypeChoice {
				form.Grade = selectFromField(field)
			}
		case names.Subject:
			if field.Type == papers.FormFieldTypeChoice {
				form.Subject = selectFromField(field)
			}
		case names.Year:
			if field.Type == papers.FormFieldTypeText {
				form.Year = NewInput(field.Name)
				if field.Value != "" {
					_ = form.Year.SetValue(field.Value)
				}
			}
		}
	}
	return form
}

func selectFromField(field papers.FormField) *Select {
	options := make([]Option, 0, len(field.Options))
	for _, opt := range field.Options {
		options = append(options, Option{Value: opt.Export, Label: opt.Display})
	}
	sel := NewSelect(field.Name, options...)
	// A current value that names no option is dropped
	if field.Value != "" {
		_ = sel.Select(field.Value)
	}
	return sel
}
