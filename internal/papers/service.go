// Package papers provides file-level services over a directory of exam
// question papers: validation, page statistics, cataloguing by filename
// metadata and reading the fields of fillable upload forms.
package papers

import (
	"fmt"

	"github.com/navanithpk/assessment-v5/internal/exam"
	"github.com/navanithpk/assessment-v5/internal/papers/security"
)

// Service orchestrates the paper components behind path confinement
type Service struct {
	maxFileSize   int64
	validator     *Validator
	stats         *Stats
	catalog       *Catalog
	forms         *FormReader
	pathValidator *security.PathValidator
}

// NewService creates a new paper service rooted at directory
func NewService(maxFileSize int64, directory string, debug bool) (*Service, error) {
	pathValidator, err := security.NewPathValidator(directory)
	if err != nil {
		return nil, fmt.Errorf("failed to create path validator: %w", err)
	}

	return &Service{
		maxFileSize:   maxFileSize,
		validator:     NewValidator(maxFileSize),
		stats:         NewStats(maxFileSize),
		catalog:       NewCatalog(maxFileSize),
		forms:         NewFormReader(debug),
		pathValidator: pathValidator,
	}, nil
}

// Directory returns the configured papers directory
func (s *Service) Directory() string {
	return s.pathValidator.Root()
}

// MaxFileSize returns the maximum file size limit
func (s *Service) MaxFileSize() int64 {
	return s.maxFileSize
}

// ParseFilename extracts metadata from a bare filename. No file access happens.
func (s *Service) ParseFilename(filename string) exam.Metadata {
	return exam.Extract(filename)
}

// ValidatePaper validates a paper inside the configured directory
func (s *Service) ValidatePaper(req ValidatePaperRequest) (*ValidatePaperResult, error) {
	path, err := s.pathValidator.Resolve(req.Path)
	if err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	req.Path = path
	return s.validator.ValidatePaper(req)
}

// PaperStats returns page statistics and filename metadata for one paper
func (s *Service) PaperStats(req PaperStatsRequest) (*PaperStatsResult, error) {
	path, err := s.pathValidator.Resolve(req.Path)
	if err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	req.Path = path
	return s.stats.PaperStats(req)
}

// Catalog lists and classifies papers in a directory, the configured one by default
func (s *Service) Catalog(req CatalogRequest) (*CatalogResult, error) {
	if req.Directory == "" {
		req.Directory = s.pathValidator.Root()
	}
	if err := s.pathValidator.ValidateDirectory(req.Directory); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	return s.catalog.Build(req)
}

// FormFields reads the AcroForm fields of a fillable PDF
func (s *Service) FormFields(req FormFieldsRequest) (*FormFieldsResult, error) {
	path, err := s.pathValidator.Resolve(req.Path)
	if err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	if err := s.validator.validate(path); err != nil {
		return nil, err
	}

	fields, err := s.forms.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read form fields: %w", err)
	}

	return &FormFieldsResult{Path: path, Fields: fields}, nil
}

// ServerInfo summarises the server, its directory and the lookup tables
func (s *Service) ServerInfo(serverName, version string) *ServerInfoResult {
	result := &ServerInfoResult{
		ServerName:       serverName,
		Version:          version,
		DefaultDirectory: s.pathValidator.Root(),
		MaxFileSize:      s.maxFileSize,
		Subjects:         exam.Subjects(),
		PaperTypes:       exam.PaperTypes(),
	}

	// An unreadable directory only loses the count.
	if catalog, err := s.catalog.Build(CatalogRequest{Directory: s.pathValidator.Root()}); err == nil {
		result.PaperCount = catalog.TotalCount
	}

	return result
}
