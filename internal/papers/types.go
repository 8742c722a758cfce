package papers

import "github.com/navanithpk/assessment-v5/internal/exam"

// FileInfo represents information about a question paper file
type FileInfo struct {
	Path         string `json:"path"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	ModifiedTime string `json:"modified_time"`
}

// FormFieldType represents the type of an AcroForm field
type FormFieldType string

const (
	FormFieldTypeText      FormFieldType = "text"
	FormFieldTypeChoice    FormFieldType = "choice"
	FormFieldTypeButton    FormFieldType = "button"
	FormFieldTypeSignature FormFieldType = "signature"
	FormFieldTypeUnknown   FormFieldType = "unknown"
)

// ChoiceOption is one entry of a choice field's option list
type ChoiceOption struct {
	Export  string `json:"export"`
	Display string `json:"display"`
}

// FormField represents an interactive form field in a PDF
type FormField struct {
	Name     string         `json:"name"`
	Type     FormFieldType  `json:"type"`
	Value    string         `json:"value,omitempty"`
	Options  []ChoiceOption `json:"options,omitempty"`
	Required bool           `json:"required"`
	ReadOnly bool           `json:"read_only"`
}

// Request Types

// ValidatePaperRequest represents a request to validate a question paper
type ValidatePaperRequest struct {
	Path string `json:"path"`
}

// PaperStatsRequest represents a request to get stats about a question paper
type PaperStatsRequest struct {
	Path string `json:"path"`
}

// CatalogRequest represents a request to catalog the papers in a directory.
// Empty filters match everything.
type CatalogRequest struct {
	Directory   string     `json:"directory"`
	SubjectCode string     `json:"subject_code,omitempty"`
	Year        int        `json:"year,omitempty"`
	Level       exam.Level `json:"level,omitempty"`
	PaperCode   string     `json:"paper_code,omitempty"`
}

// FormFieldsRequest represents a request to read the fields of a fillable PDF
type FormFieldsRequest struct {
	Path string `json:"path"`
}

// Response Types

// ValidatePaperResult represents the result of a validation
type ValidatePaperResult struct {
	Valid   bool   `json:"valid"`
	Path    string `json:"path"`
	Message string `json:"message,omitempty"`
}

// PaperStatsResult describes a single question paper
type PaperStatsResult struct {
	Path         string        `json:"path"`
	Size         int64         `json:"size"`
	Pages        int           `json:"pages"`
	CreatedDate  string        `json:"created_date,omitempty"`
	ModifiedDate string        `json:"modified_date"`
	Title        string        `json:"title,omitempty"`
	Author       string        `json:"author,omitempty"`
	Subject      string        `json:"subject,omitempty"`
	Producer     string        `json:"producer,omitempty"`
	Metadata     exam.Metadata `json:"metadata"`
}

// CatalogEntry is one paper of a catalog
type CatalogEntry struct {
	FileInfo
	Metadata exam.Metadata `json:"metadata"`
}

// CatalogResult represents the papers found in a directory
type CatalogResult struct {
	Directory    string         `json:"directory"`
	Entries      []CatalogEntry `json:"entries"`
	TotalCount   int            `json:"total_count"`
	Unrecognized int            `json:"unrecognized"`
	BySubject    map[string]int `json:"by_subject"`
	ByYear       map[int]int    `json:"by_year"`
	ByComponent  map[int]int    `json:"by_component"`
}

// FormFieldsResult lists the fields of a fillable PDF
type FormFieldsResult struct {
	Path   string      `json:"path"`
	Fields []FormField `json:"fields"`
}

// ServerInfoResult represents server information and usage guidance
type ServerInfoResult struct {
	ServerName       string                     `json:"server_name"`
	Version          string                     `json:"version"`
	DefaultDirectory string                     `json:"default_directory"`
	MaxFileSize      int64                      `json:"max_file_size"`
	PaperCount       int                        `json:"paper_count"`
	Subjects         []exam.SubjectDescriptor   `json:"subjects"`
	PaperTypes       []exam.PaperTypeDescriptor `json:"paper_types"`
}
