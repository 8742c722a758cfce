package exam

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     Metadata
	}{
		{
			name:     "A level structured paper",
			filename: "9702_s23_qp_41.pdf",
			want: Metadata{
				SubjectCode:  ptr("9702"),
				Subject:      ptr("Physics"),
				GradeLevel:   ptr(ALevel),
				Grade:        ptr("A-Level Physics"),
				Year:         ptr(2023),
				PaperCode:    ptr("41"),
				QuestionType: ptr("A Level Structured Questions"),
			},
		},
		{
			name:     "AS multiple choice",
			filename: "9700_m21_qp_12.pdf",
			want: Metadata{
				SubjectCode:  ptr("9700"),
				Subject:      ptr("Biology"),
				GradeLevel:   ptr(ASLevel),
				Grade:        ptr("AS-Level Biology"),
				Year:         ptr(2021),
				PaperCode:    ptr("12"),
				QuestionType: ptr("Multiple Choice"),
			},
		},
		{
			name:     "trailing digits fallback",
			filename: "9701_w19_33.pdf",
			want: Metadata{
				SubjectCode:  ptr("9701"),
				Subject:      ptr("Chemistry"),
				GradeLevel:   ptr(ALevel),
				Grade:        ptr("A-Level Chemistry"),
				Year:         ptr(2019),
				PaperCode:    ptr("33"),
				QuestionType: ptr("Advanced Practical Skills"),
			},
		},
		{
			name:     "no recognizable tokens",
			filename: "randomfile.pdf",
			want:     Metadata{},
		},
		{
			name:     "empty string",
			filename: "",
			want:     Metadata{},
		},
		{
			name:     "subject without paper code",
			filename: "9702_s22_notes.pdf",
			want: Metadata{
				SubjectCode: ptr("9702"),
				Subject:     ptr("Physics"),
				Year:        ptr(2022),
			},
		},
		{
			name:     "unknown paper code is recorded but not resolved",
			filename: "9701_s20_qp_44.pdf",
			want: Metadata{
				SubjectCode: ptr("9701"),
				Subject:     ptr("Chemistry"),
				Year:        ptr(2020),
				PaperCode:   ptr("44"),
			},
		},
		{
			name:     "paper code without subject",
			filename: "physics_s23_qp_22.pdf",
			want: Metadata{
				GradeLevel:   ptr(ASLevel),
				Year:         ptr(2023),
				PaperCode:    ptr("22"),
				QuestionType: ptr("AS Level Structured Questions"),
			},
		},
		{
			name:     "upper case session and tokens",
			filename: "9702_W18_QP_52.PDF",
			want: Metadata{
				SubjectCode:  ptr("9702"),
				Subject:      ptr("Physics"),
				GradeLevel:   ptr(ALevel),
				Grade:        ptr("A-Level Physics"),
				Year:         ptr(2018),
				PaperCode:    ptr("52"),
				QuestionType: ptr("Planning, Analysis and Evaluation"),
			},
		},
		{
			name:     "subject code embedded in a longer number",
			filename: "197021_s23_qp_11.pdf",
			want: Metadata{
				GradeLevel:   ptr(ASLevel),
				Year:         ptr(2023),
				PaperCode:    ptr("11"),
				QuestionType: ptr("Multiple Choice"),
			},
		},
		{
			name:     "subject code outside the known range",
			filename: "9703_s23_qp_11.pdf",
			want: Metadata{
				GradeLevel:   ptr(ASLevel),
				Year:         ptr(2023),
				PaperCode:    ptr("11"),
				QuestionType: ptr("Multiple Choice"),
			},
		},
		{
			name:     "subject code delimited by spaces and dashes",
			filename: "Chemistry - 9701 - paper_13.pdf",
			want: Metadata{
				SubjectCode:  ptr("9701"),
				Subject:      ptr("Chemistry"),
				GradeLevel:   ptr(ASLevel),
				Grade:        ptr("AS-Level Chemistry"),
				PaperCode:    ptr("13"),
				QuestionType: ptr("Multiple Choice"),
			},
		},
		{
			name:     "unknown session letter",
			filename: "9700_x21_qp_31.pdf",
			want: Metadata{
				SubjectCode:  ptr("9700"),
				Subject:      ptr("Biology"),
				GradeLevel:   ptr(ALevel),
				Grade:        ptr("A-Level Biology"),
				PaperCode:    ptr("31"),
				QuestionType: ptr("Advanced Practical Skills"),
			},
		},
		{
			name:     "qp token takes the first two digits",
			filename: "9701_s22_qp_123.pdf",
			want: Metadata{
				SubjectCode:  ptr("9701"),
				Subject:      ptr("Chemistry"),
				GradeLevel:   ptr(ASLevel),
				Grade:        ptr("AS-Level Chemistry"),
				Year:         ptr(2022),
				PaperCode:    ptr("12"),
				QuestionType: ptr("Multiple Choice"),
			},
		},
		{
			name:     "trailing digits need a leading underscore",
			filename: "9702 paper33.pdf",
			want: Metadata{
				SubjectCode: ptr("9702"),
				Subject:     ptr("Physics"),
			},
		},
		{
			name:     "three digit year token is ignored",
			filename: "9700_s123_qp_31.pdf",
			want: Metadata{
				SubjectCode:  ptr("9700"),
				Subject:      ptr("Biology"),
				GradeLevel:   ptr(ALevel),
				Grade:        ptr("A-Level Biology"),
				PaperCode:    ptr("31"),
				QuestionType: ptr("Advanced Practical Skills"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.filename)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract_QPTokenWinsOverTrailingDigits(t *testing.T) {
	filenames := []string{
		"9702_s23_qp_41_12.pdf",
		"9700_m21_qp_12_ver_53.pdf",
		"9701_w19_QP_33_copy_21.pdf",
	}
	want := []string{"41", "12", "33"}

	for i, name := range filenames {
		md := Extract(name)
		code, ok := md.PaperCodeValue()
		require.True(t, ok, name)
		assert.Equal(t, want[i], code, name)
	}
}

func TestExtract_Idempotent(t *testing.T) {
	for _, name := range []string{"9702_s23_qp_41.pdf", "randomfile.pdf", "9701_w19_33.pdf", ""} {
		first := Extract(name)
		second := Extract(name)
		assert.True(t, first.Equal(second), name)
		assert.Equal(t, first, second, name)
	}
}

func TestExtract_GradePresentIffSubjectAndLevel(t *testing.T) {
	var names []string
	for _, s := range []string{"9700", "9701", "9702", "9703", "biology"} {
		for _, p := range []string{"11", "23", "38", "41", "42", "53", "99"} {
			names = append(names, s+"_s21_qp_"+p+".pdf", s+"_w09_"+p+".pdf")
		}
	}

	for _, name := range names {
		md := Extract(name)
		hasGrade := md.Grade != nil
		assert.Equal(t, md.Subject != nil && md.GradeLevel != nil, hasGrade, name)
	}
}

func TestExtract_NoCenturyRollover(t *testing.T) {
	md := Extract("9702_s99_qp_11.pdf")
	year, ok := md.YearValue()
	require.True(t, ok)
	assert.Equal(t, 2099, year)

	md = Extract("9702_s00_qp_11.pdf")
	year, ok = md.YearValue()
	require.True(t, ok)
	assert.Equal(t, 2000, year)
}

func TestComposeGrade_FallsBackForUnknownSubject(t *testing.T) {
	assert.Equal(t, "AS-Level Geology", composeGrade("9999", "Geology", ASLevel))
	assert.Equal(t, "A-Level Geology", composeGrade("9999", "Geology", ALevel))
	assert.Equal(t, "AS-Level Physics", composeGrade("9702", "Physics", ASLevel))
}

func TestMetadata_JSONKeepsAbsentFieldsAsNull(t *testing.T) {
	data, err := json.Marshal(Extract("randomfile.pdf"))
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Len(t, decoded, 7)
	for key, value := range decoded {
		assert.Nil(t, value, key)
	}

	data, err = json.Marshal(Extract("9702_s23_qp_41.pdf"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"grade_level":"A-Level"`)
	assert.Contains(t, string(data), `"year":2023`)
}

func TestMetadata_Helpers(t *testing.T) {
	empty := Extract("nothing-here.txt")
	assert.True(t, empty.IsEmpty())
	assert.False(t, empty.IsMultipleChoice())
	_, ok := empty.GradeValue()
	assert.False(t, ok)
	_, ok = empty.LevelValue()
	assert.False(t, ok)

	md := Extract("9700_m21_qp_12.pdf")
	assert.False(t, md.IsEmpty())
	assert.True(t, md.IsMultipleChoice())
	subject, ok := md.SubjectValue()
	assert.True(t, ok)
	assert.Equal(t, "Biology", subject)
	assert.False(t, md.Equal(empty))
}
