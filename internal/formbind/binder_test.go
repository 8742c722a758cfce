package formbind

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navanithpk/assessment-v5/internal/exam"
	"github.com/navanithpk/assessment-v5/internal/papers"
)

func gradeSelect() *Select {
	return NewSelect("grade",
		Option{Value: "g1", Label: "AS-Level Biology"},
		Option{Value: "g2", Label: "A-Level Physics"},
		Option{Value: "g3", Label: "AS-Level Physics"},
	)
}

func subjectSelect() *Select {
	return NewSelect("subject",
		Option{Value: "s1", Label: "Biology"},
		Option{Value: "s2", Label: "Chemistry"},
		Option{Value: "s3", Label: "Physics"},
	)
}

func TestBind(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		wantGrade   string
		wantSubject string
		wantYear    string
		wantResult  Result
	}{
		{
			name:        "all fields resolved",
			filename:    "9702_s23_qp_41.pdf",
			wantGrade:   "g2",
			wantSubject: "s3",
			wantYear:    "2023",
			wantResult: Result{
				GradeSelected: true, GradeValue: "g2",
				SubjectSelected: true, SubjectValue: "s3",
				YearSet: true, YearValue: "2023",
			},
		},
		{
			name:        "grade label has no matching option",
			filename:    "9701_w19_33.pdf",
			wantSubject: "s2",
			wantYear:    "2019",
			wantResult: Result{
				SubjectSelected: true, SubjectValue: "s2",
				YearSet: true, YearValue: "2019",
			},
		},
		{
			name:       "nothing resolved",
			filename:   "randomfile.pdf",
			wantResult: Result{},
		},
		{
			name:       "paper code only",
			filename:   "paper_s20_qp_12.pdf",
			wantYear:   "2020",
			wantResult: Result{YearSet: true, YearValue: "2020"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grade, subject, year := gradeSelect(), subjectSelect(), NewInput("year")

			res, err := Bind(exam.Extract(tt.filename), grade, subject, year)
			require.NoError(t, err)

			assert.Equal(t, tt.wantResult, res)
			assert.Equal(t, tt.wantGrade, grade.Value())
			assert.Equal(t, tt.wantSubject, subject.Value())
			assert.Equal(t, tt.wantYear, year.Value())
		})
	}
}

func TestBind_NilFieldsAreSkipped(t *testing.T) {
	res, err := Bind(exam.Extract("9702_s23_qp_41.pdf"), nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, Result{}, res)
}

func TestBind_PicksFirstMatchingLabel(t *testing.T) {
	subject := NewSelect("subject",
		Option{Value: "first", Label: "Physics"},
		Option{Value: "second", Label: "Physics"},
	)
	_, err := Bind(exam.Extract("9702_s23_qp_41.pdf"), nil, subject, nil)
	require.NoError(t, err)
	assert.Equal(t, "first", subject.Value())
}

type failingInput struct{}

func (failingInput) SetValue(string) error { return errors.New("read only") }

func TestBind_PropagatesFieldErrors(t *testing.T) {
	_, err := Bind(exam.Extract("9702_s23_qp_41.pdf"), nil, nil, failingInput{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read only")
}

func TestSelect_RejectsUnknownValue(t *testing.T) {
	s := subjectSelect()
	assert.Error(t, s.Select("nope"))
	assert.Empty(t, s.Value())
	assert.NoError(t, s.Select("s1"))
	assert.Equal(t, "s1", s.Value())
}

func TestFromFormFields(t *testing.T) {
	fields := []papers.FormField{
		{
			Name: "grade",
			Type: papers.FormFieldTypeChoice,
			Options: []papers.ChoiceOption{
				{Export: "as_bio", Display: "AS-Level Biology"},
				{Export: "al_bio", Display: "A-Level Biology"},
			},
		},
		{
			Name: "subject",
			Type: papers.FormFieldTypeChoice,
			Options: []papers.ChoiceOption{
				{Export: "bio", Display: "Biology"},
			},
		},
		{Name: "year", Type: papers.FormFieldTypeText, Value: "1999"},
		{Name: "notes", Type: papers.FormFieldTypeText},
	}

	form := FromFormFields(fields, DefaultFieldNames)
	require.NotNil(t, form.Grade)
	require.NotNil(t, form.Subject)
	require.NotNil(t, form.Year)
	assert.Equal(t, "1999", form.Year.Value())

	res, err := form.Apply(exam.Extract("9700_m21_qp_12.pdf"))
	require.NoError(t, err)
	assert.True(t, res.GradeSelected)
	assert.True(t, res.SubjectSelected)
	assert.True(t, res.YearSet)
	assert.Equal(t, "as_bio", form.Grade.Value())
	assert.Equal(t, "bio", form.Subject.Value())
	assert.Equal(t, "2021", form.Year.Value())
}

func TestFromFormFields_KeepsCurrentChoice(t *testing.T) {
	fields := []papers.FormField{
		{
			Name:  "grade",
			Type:  papers.FormFieldTypeChoice,
			Value: "al_bio",
			Options: []papers.ChoiceOption{
				{Export: "as_bio", Display: "AS-Level Biology"},
				{Export: "al_bio", Display: "A-Level Biology"},
			},
		},
		{
			Name:    "subject",
			Type:    papers.FormFieldTypeChoice,
			Value:   "History",
			Options: []papers.ChoiceOption{{Export: "bio", Display: "Biology"}},
		},
	}

	form := FromFormFields(fields, DefaultFieldNames)
	require.NotNil(t, form.Grade)
	require.NotNil(t, form.Subject)
	assert.Equal(t, "al_bio", form.Grade.Value())
	assert.Empty(t, form.Subject.Value(), "values outside the options are dropped")

	res, err := form.Apply(exam.Extract("9702_s23_qp_41.pdf"))
	require.NoError(t, err)
	assert.False(t, res.GradeSelected)
	assert.Equal(t, "al_bio", form.Grade.Value())
}

func TestFromFormFields_MissingFields(t *testing.T) {
	form := FromFormFields([]papers.FormField{
		{Name: "grade", Type: papers.FormFieldTypeText},
	}, DefaultFieldNames)

	assert.Nil(t, form.Grade)
	assert.Nil(t, form.Subject)
	assert.Nil(t, form.Year)

	res, err := form.Apply(exam.Extract("9702_s23_qp_41.pdf"))
	require.NoError(t, err)
	assert.Equal(t, Result{}, res)
}
