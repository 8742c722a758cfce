package exam

// Metadata holds what could be recovered from an exam paper filename.
// Every field is optional; a nil field was not found or could not be resolved.
type Metadata struct {
	SubjectCode  *string `json:"subject_code" yaml:"subject_code"`
	Subject      *string `json:"subject" yaml:"subject"`
	GradeLevel   *Level  `json:"grade_level" yaml:"grade_level"`
	Grade        *string `json:"grade" yaml:"grade"`
	Year         *int    `json:"year" yaml:"year"`
	PaperCode    *string `json:"paper_code" yaml:"paper_code"`
	QuestionType *string `json:"question_type" yaml:"question_type"`
}

// IsEmpty reports whether no field was resolved
func (m Metadata) IsEmpty() bool {
	return m.SubjectCode == nil && m.Subject == nil && m.GradeLevel == nil &&
		m.Grade == nil && m.Year == nil && m.PaperCode == nil && m.QuestionType == nil
}

// Equal compares two records field by field
func (m Metadata) Equal(o Metadata) bool {
	return eqPtr(m.SubjectCode, o.SubjectCode) &&
		eqPtr(m.Subject, o.Subject) &&
		eqPtr(m.GradeLevel, o.GradeLevel) &&
		eqPtr(m.Grade, o.Grade) &&
		eqPtr(m.Year, o.Year) &&
		eqPtr(m.PaperCode, o.PaperCode) &&
		eqPtr(m.QuestionType, o.QuestionType)
}

// IsMultipleChoice reports whether the paper resolved to a multiple choice paper
func (m Metadata) IsMultipleChoice() bool {
	return m.QuestionType != nil && *m.QuestionType == QuestionTypeMultipleChoice
}

// SubjectValue returns the subject display name if present
func (m Metadata) SubjectValue() (string, bool) { return deref(m.Subject) }

// GradeValue returns the composite grade label if present
func (m Metadata) GradeValue() (string, bool) { return deref(m.Grade) }

// YearValue returns the four-digit year if present
func (m Metadata) YearValue() (int, bool) { return deref(m.Year) }

// LevelValue returns the grade level if present
func (m Metadata) LevelValue() (Level, bool) { return deref(m.GradeLevel) }

// PaperCodeValue returns the raw paper code if present
func (m Metadata) PaperCodeValue() (string, bool) { return deref(m.PaperCode) }

func deref[T any](p *T) (T, bool) {
	if p == nil {
		var zero T
		return zero, false
	}
	return *p, true
}

func eqPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func ptr[T any](v T) *T {
	return &v
}
