package papers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/navanithpk/assessment-v5/internal/exam"
)

// Stats reads page counts and document info from question papers
type Stats struct {
	validator *Validator
}

// NewStats creates a new stats reader with the specified size limit
func NewStats(maxFileSize int64) *Stats {
	return &Stats{
		validator: NewValidator(maxFileSize),
	}
}

// PaperStats returns statistics about a single paper together with the
// metadata parsed from its filename
func (s *Stats) PaperStats(req PaperStatsRequest) (*PaperStatsResult, error) {
	if req.Path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	// Check if the paper exists and get basic info
	info, err := os.Stat(req.Path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", req.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}

	// Size and extension limits apply before the PDF is parsed
	if err := s.validator.ValidateFileInfo(req.Path, info); err != nil {
		return nil, err
	}

	// Open and parse the PDF for page count and document info
	f, r, err := pdf.Open(req.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	result := &PaperStatsResult{
		Path:         req.Path,
		Size:         info.Size(),
		Pages:        r.NumPage(),
		ModifiedDate: info.ModTime().Format("2006-01-02 15:04:05"),
		Metadata:     exam.Extract(filepath.Base(req.Path)),
	}

	// Missing document info leaves those fields empty
	readDocumentInfo(r, result)

	return result, nil
}

// readDocumentInfo copies the Info dictionary entries into result. Broken
// dictionaries only lose the document info, never the page stats.
func readDocumentInfo(r *pdf.Reader, result *PaperStatsResult) {
	// ledongthuc/pdf panics on malformed Value types instead of returning errors
	defer func() {
		_ = recover()
	}()

	trailer := r.Trailer()
	if trailer.IsNull() {
		return
	}

	info := trailer.Key("Info")
	if info.IsNull() {
		return
	}

	fields := []struct {
		key string
		dst *string
	}{
		{"Title", &result.Title},
		{"Author", &result.Author},
		{"Subject", &result.Subject},
		{"Producer", &result.Producer},
		{"CreationDate", &result.CreatedDate},
	}
	// Text decodes both PDFDocEncoding and UTF-16BE strings
	for _, field := range fields {
		if v := info.Key(field.key); !v.IsNull() {
			*field.dst = strings.TrimSpace(v.Text())
		}
	}
}
