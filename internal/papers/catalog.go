package papers

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/navanithpk/assessment-v5/internal/exam"
)

// Catalog discovers question papers in a directory tree and classifies them
// by the metadata in their filenames
type Catalog struct {
	validator *Validator
}

// NewCatalog creates a catalog walker with the specified size limit
func NewCatalog(maxFileSize int64) *Catalog {
	return &Catalog{
		validator: NewValidator(maxFileSize),
	}
}

// Build walks req.Directory and returns every PDF matching the request filters.
// Files that fail the cheap validation checks are skipped.
func (c *Catalog) Build(req CatalogRequest) (*CatalogResult, error) {
	if req.Directory == "" {
		return nil, fmt.Errorf("directory cannot be empty")
	}

	absDirectory, err := filepath.Abs(req.Directory)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory path: %w", err)
	}

	if _, err := os.Stat(absDirectory); os.IsNotExist(err) {
		return nil, fmt.Errorf("directory does not exist: %s", req.Directory)
	}

	result := &CatalogResult{
		Directory:   absDirectory,
		Entries:     []CatalogEntry{},
		BySubject:   map[string]int{},
		ByYear:      map[int]int{},
		ByComponent: map[int]int{},
	}

	err = filepath.WalkDir(absDirectory, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // keep walking past unreadable entries
		}
		if d.IsDir() || !isPDFName(d.Name()) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil //nolint:nilerr // file vanished during the walk
		}
		if c.validator.ValidateFileInfo(path, info) != nil {
			return nil
		}

		md := exam.Extract(d.Name())
		if !req.matches(md) {
			return nil
		}

		result.Entries = append(result.Entries, CatalogEntry{
			FileInfo: FileInfo{
				Path:         path,
				Name:         d.Name(),
				Size:         info.Size(),
				ModifiedTime: info.ModTime().Format("2006-01-02 15:04:05"),
			},
			Metadata: md,
		})
		result.count(md)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking directory: %w", err)
	}

	sort.Slice(result.Entries, func(i, j int) bool {
		return result.Entries[i].Path < result.Entries[j].Path
	})
	result.TotalCount = len(result.Entries)

	return result, nil
}

func (r *CatalogResult) count(md exam.Metadata) {
	if md.IsEmpty() {
		r.Unrecognized++
		return
	}
	if subject, ok := md.SubjectValue(); ok {
		r.BySubject[subject]++
	}
	if year, ok := md.YearValue(); ok {
		r.ByYear[year]++
	}
	if code, ok := md.PaperCodeValue(); ok {
		if paper, ok := exam.LookupPaper(code); ok {
			r.ByComponent[paper.Component()]++
		}
	}
}

// matches applies the request filters; a set filter requires the field to be present
func (req CatalogRequest) matches(md exam.Metadata) bool {
	if req.SubjectCode != "" && (md.SubjectCode == nil || *md.SubjectCode != req.SubjectCode) {
		return false
	}
	if req.Year != 0 && (md.Year == nil || *md.Year != req.Year) {
		return false
	}
	if req.Level != "" && (md.GradeLevel == nil || *md.GradeLevel != req.Level) {
		return false
	}
	if req.PaperCode != "" && (md.PaperCode == nil || *md.PaperCode != req.PaperCode) {
		return false
	}
	return true
}
