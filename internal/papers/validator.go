package papers

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Validator checks that a question paper is a readable PDF within size limits
type Validator struct {
	maxFileSize int64
}

// NewValidator creates a new validator with the specified size limit
func NewValidator(maxFileSize int64) *Validator {
	return &Validator{
		maxFileSize: maxFileSize,
	}
}

// ValidatePaper reports whether the file at req.Path is a usable paper.
// Validation failures are returned in the result, not as errors.
func (v *Validator) ValidatePaper(req ValidatePaperRequest) (*ValidatePaperResult, error) {
	result := &ValidatePaperResult{
		Path:  req.Path,
		Valid: false,
	}

	if err := v.validate(req.Path); err != nil {
		result.Message = err.Error()
		return result, nil //nolint:nilerr // validation failure is a result, not a processing error
	}

	result.Valid = true
	return result, nil
}

// IsValid performs a quick check to see if a file is a valid paper
func (v *Validator) IsValid(filePath string) bool {
	return v.validate(filePath) == nil
}

// validate runs the file checks and then opens the PDF
func (v *Validator) validate(filePath string) error {
	if filePath == "" {
		return fmt.Errorf("path cannot be empty")
	}

	// Stat first so a missing paper is reported as such
	info, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return fmt.Errorf("file does not exist: %s", filePath)
	}
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}

	if err := v.ValidateFileInfo(filePath, info); err != nil {
		return err
	}

	// Opening parses the xref table and trailer; that is enough to accept a paper
	f, _, err := pdf.Open(filePath)
	if err != nil {
		return fmt.Errorf("invalid PDF file: %w", err)
	}
	defer f.Close()

	return nil
}

// ValidateFileInfo performs the checks that need no file access
func (v *Validator) ValidateFileInfo(filePath string, info os.FileInfo) error {
	// Catalog walks reach directories named like papers, e.g. "9702_s23.pdf/"
	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", filePath)
	}

	// Papers are matched on the .pdf suffix in any case
	if !isPDFName(filePath) {
		return fmt.Errorf("file is not a PDF: %s", filePath)
	}

	// Check file size
	if info.Size() == 0 {
		return fmt.Errorf("file is empty: %s", filePath)
	}

	if info.Size() > v.maxFileSize {
		return fmt.Errorf("file too large: %d bytes (max: %d bytes)", info.Size(), v.maxFileSize)
	}

	return nil
}

func isPDFName(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".pdf")
}
