// Package exam extracts syllabus, session and paper metadata from
// examination board question paper filenames such as "9702_s23_qp_41.pdf".
//
// Extraction never fails. Tokens that cannot be found or resolved leave the
// corresponding fields nil, and fields derived from them stay nil as well.
package exam

import (
	"regexp"
	"strconv"
)

var (
	// Subject codes are bounded by non-alphanumerics; unlike \b, an
	// underscore counts as a boundary here.
	subjectCodePattern = regexp.MustCompile(`(?:^|[^A-Za-z0-9])(970[0-2])(?:[^A-Za-z0-9]|$)`)

	// _m21_, _s23_, _W19_: session letter followed by a two-digit year
	sessionYearPattern = regexp.MustCompile(`_(?i:[msw])(\d{2})_`)

	// Paper code alternatives, tried in order
	paperCodePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)_qp_(\d{2})`),
		regexp.MustCompile(`(?i)_(\d{2})\.pdf`),
	}
)

// yearBase is added to the two-digit session year. Years are assumed to fall
// in 2000-2099; there is no century rollover.
const yearBase = 2000

// Extract parses a filename into Metadata. It is pure and safe for
// concurrent use.
func Extract(filename string) Metadata {
	var md Metadata

	if code, ok := extractSubjectCode(filename); ok {
		md.SubjectCode = ptr(code)
		if subject, found := LookupSubject(code); found {
			md.Subject = ptr(subject.DisplayName)
		}
	}

	if year, ok := extractYear(filename); ok {
		md.Year = ptr(year)
	}

	if code, ok := extractPaperCode(filename); ok {
		md.PaperCode = ptr(code)
		if paper, found := LookupPaper(code); found {
			md.QuestionType = ptr(paper.QuestionType)
			md.GradeLevel = ptr(paper.Level)
			if md.Subject != nil {
				md.Grade = ptr(composeGrade(*md.SubjectCode, *md.Subject, paper.Level))
			}
		}
	}

	return md
}

func extractSubjectCode(filename string) (string, bool) {
	m := subjectCodePattern.FindStringSubmatch(filename)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func extractYear(filename string) (int, bool) {
	m := sessionYearPattern.FindStringSubmatch(filename)
	if m == nil {
		return 0, false
	}
	yy, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return yearBase + yy, true
}

func extractPaperCode(filename string) (string, bool) {
	for _, re := range paperCodePatterns {
		if m := re.FindStringSubmatch(filename); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// composeGrade builds the grade label, e.g. "A-Level Physics"
func composeGrade(subjectCode, subject string, level Level) string {
	if d, ok := LookupSubject(subjectCode); ok {
		return d.Label(level)
	}
	return string(level) + " " + subject
}
