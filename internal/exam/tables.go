package exam

import "sort"

// Level is the examination tier a paper belongs to
type Level string

const (
	ASLevel Level = "AS-Level"
	ALevel  Level = "A-Level"
)

// String returns the display label of the level
func (l Level) String() string {
	return string(l)
}

// SubjectDescriptor describes a subject identified by its 4-digit syllabus code
type SubjectDescriptor struct {
	Code         string `json:"code"`
	DisplayName  string `json:"display_name"`
	ASLevelLabel string `json:"as_level_label"`
	ALevelLabel  string `json:"a_level_label"`
}

// Label returns the grade label for the given level
func (d SubjectDescriptor) Label(level Level) string {
	if level == ASLevel {
		return d.ASLevelLabel
	}
	return d.ALevelLabel
}

// PaperTypeDescriptor describes a paper identified by its 2-digit component code
type PaperTypeDescriptor struct {
	Code         string `json:"code"`
	QuestionType string `json:"question_type"`
	Level        Level  `json:"level"`
}

// Component returns the paper number, i.e. the leading digit of the code.
// Variants of the same paper (31, 32, 33...) share a component.
func (d PaperTypeDescriptor) Component() int {
	if d.Code == "" {
		return 0
	}
	return int(d.Code[0] - '0')
}

// Question type labels
const (
	QuestionTypeMultipleChoice   = "Multiple Choice"
	QuestionTypeASStructured     = "AS Level Structured Questions"
	QuestionTypePracticalSkills  = "Advanced Practical Skills"
	QuestionTypeALStructured     = "A Level Structured Questions"
	QuestionTypePlanningAnalysis = "Planning, Analysis and Evaluation"
)

var subjectTable = map[string]SubjectDescriptor{
	"9700": {Code: "9700", DisplayName: "Biology", ASLevelLabel: "AS-Level Biology", ALevelLabel: "A-Level Biology"},
	"9701": {Code: "9701", DisplayName: "Chemistry", ASLevelLabel: "AS-Level Chemistry", ALevelLabel: "A-Level Chemistry"},
	"9702": {Code: "9702", DisplayName: "Physics", ASLevelLabel: "AS-Level Physics", ALevelLabel: "A-Level Physics"},
}

var paperTable = map[string]PaperTypeDescriptor{
	"11": {Code: "11", QuestionType: QuestionTypeMultipleChoice, Level: ASLevel},
	"12": {Code: "12", QuestionType: QuestionTypeMultipleChoice, Level: ASLevel},
	"13": {Code: "13", QuestionType: QuestionTypeMultipleChoice, Level: ASLevel},
	"21": {Code: "21", QuestionType: QuestionTypeASStructured, Level: ASLevel},
	"22": {Code: "22", QuestionType: QuestionTypeASStructured, Level: ASLevel},
	"23": {Code: "23", QuestionType: QuestionTypeASStructured, Level: ASLevel},
	"31": {Code: "31", QuestionType: QuestionTypePracticalSkills, Level: ALevel},
	"32": {Code: "32", QuestionType: QuestionTypePracticalSkills, Level: ALevel},
	"33": {Code: "33", QuestionType: QuestionTypePracticalSkills, Level: ALevel},
	"34": {Code: "34", QuestionType: QuestionTypePracticalSkills, Level: ALevel},
	"35": {Code: "35", QuestionType: QuestionTypePracticalSkills, Level: ALevel},
	"36": {Code: "36", QuestionType: QuestionTypePracticalSkills, Level: ALevel},
	"37": {Code: "37", QuestionType: QuestionTypePracticalSkills, Level: ALevel},
	"38": {Code: "38", QuestionType: QuestionTypePracticalSkills, Level: ALevel},
	"41": {Code: "41", QuestionType: QuestionTypeALStructured, Level: ALevel},
	"42": {Code: "42", QuestionType: QuestionTypeALStructured, Level: ALevel},
	"43": {Code: "43", QuestionType: QuestionTypeALStructured, Level: ALevel},
	"51": {Code: "51", QuestionType: QuestionTypePlanningAnalysis, Level: ALevel},
	"52": {Code: "52", QuestionType: QuestionTypePlanningAnalysis, Level: ALevel},
	"53": {Code: "53", QuestionType: QuestionTypePlanningAnalysis, Level: ALevel},
}

// LookupSubject returns the descriptor for a subject code
func LookupSubject(code string) (SubjectDescriptor, bool) {
	d, ok := subjectTable[code]
	return d, ok
}

// LookupPaper returns the descriptor for a paper code
func LookupPaper(code string) (PaperTypeDescriptor, bool) {
	d, ok := paperTable[code]
	return d, ok
}

// Subjects returns all known subjects ordered by code
func Subjects() []SubjectDescriptor {
	out := make([]SubjectDescriptor, 0, len(subjectTable))
	for _, d := range subjectTable {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// PaperTypes returns all known paper types ordered by code
func PaperTypes() []PaperTypeDescriptor {
	out := make([]PaperTypeDescriptor, 0, len(paperTable))
	for _, d := range paperTable {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
