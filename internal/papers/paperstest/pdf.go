// Package paperstest writes small PDF fixtures for tests.
package paperstest

import (
	"bytes"
	"fmt"
	"os"
	"testing"
)

// Title is the Info dictionary title of every fixture
const Title = "Physics Paper 4"

// Author is the Info dictionary author of every fixture
const Author = "Exam Board"

// WritePDF writes a one-page PDF with an Info dictionary to path. With
// withForm set, the PDF also carries an AcroForm with a "grade" choice field
// (options as_bio/AS-Level Biology and al_phy/A-Level Physics), a "subject"
// choice field (Biology, Physics) with Biology selected and a required "year"
// text field holding 2000.
func WritePDF(t testing.TB, path string, withForm bool) {
	t.Helper()

	catalog := "<< /Type /Catalog /Pages 2 0 R >>"
	page := "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << >> >>"
	if withForm {
		catalog = "<< /Type /Catalog /Pages 2 0 R /AcroForm 5 0 R >>"
		page = "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << >> /Annots [6 0 R 7 0 R 8 0 R] >>"
	}

	objects := []string{
		catalog,
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		page,
		fmt.Sprintf("<< /Title (%s) /Author (%s) /Producer (paperstest) >>", Title, Author),
		"<< /Fields [6 0 R 7 0 R 8 0 R] >>",
		"<< /FT /Ch /T (grade) /Ff 131072 /Opt [[(as_bio) (AS-Level Biology)] [(al_phy) (A-Level Physics)]] " +
			"/Type /Annot /Subtype /Widget /Rect [10 10 110 30] /P 3 0 R >>",
		"<< /FT /Ch /T (subject) /V (Biology) /Opt [(Biology) (Physics)] " +
			"/Type /Annot /Subtype /Widget /Rect [10 40 110 60] /P 3 0 R >>",
		"<< /FT /Tx /T (year) /V (2000) /Ff 2 " +
			"/Type /Annot /Subtype /Widget /Rect [10 70 110 90] /P 3 0 R >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R /Info 4 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(objects)+1, xref)

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("failed to write test PDF: %v", err)
	}
}

// WriteFake writes a non-empty file that is not a PDF, whatever its name
func WriteFake(t testing.TB, path string) {
	t.Helper()
	if err := os.WriteFile(path, make([]byte, 1024), 0o644); err != nil {
		t.Fatalf("failed to create test file %s: %v", path, err)
	}
}
