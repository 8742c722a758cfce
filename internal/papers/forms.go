package papers

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Field flag bits (PDF 32000-1, 12.7.3.1)
const (
	flagReadOnly = 1 << 0
	flagRequired = 1 << 1
)

// FormReader reads AcroForm fields from fillable PDFs using pdfcpu
type FormReader struct {
	debugMode bool
}

// NewFormReader creates a new form reader
func NewFormReader(debugMode bool) *FormReader {
	return &FormReader{
		debugMode: debugMode,
	}
}

// ReadFile reads all top-level form fields of the PDF at filePath
func (fr *FormReader) ReadFile(filePath string) ([]FormField, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF file: %w", err)
	}
	defer file.Close()

	return fr.Read(file)
}

// Read reads all top-level form fields from a PDF stream
func (fr *FormReader) Read(rs io.ReadSeeker) ([]FormField, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(rs, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF context: %w", err)
	}

	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("failed to ensure page count: %w", err)
	}

	return fr.readFields(ctx)
}

func (fr *FormReader) readFields(ctx *model.Context) ([]FormField, error) {
	fields := []FormField{}

	rootDict, err := ctx.Catalog()
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog: %w", err)
	}

	acroFormObj, found := rootDict.Find("AcroForm")
	if !found {
		return fields, nil
	}

	acroFormDict, err := ctx.DereferenceDict(acroFormObj)
	if err != nil {
		return nil, fmt.Errorf("failed to dereference AcroForm: %w", err)
	}
	if acroFormDict == nil {
		return fields, nil
	}

	fieldsObj, found := acroFormDict.Find("Fields")
	if !found {
		return fields, nil
	}

	fieldsArray, err := ctx.DereferenceArray(fieldsObj)
	if err != nil {
		return nil, fmt.Errorf("failed to dereference Fields array: %w", err)
	}

	for i, ref := range fieldsArray {
		field, err := fr.readField(ctx, ref, i)
		if err != nil {
			if fr.debugMode {
				log.Printf("Skipping form field %d: %v", i, err)
			}
			continue
		}
		if field != nil {
			fields = append(fields, *field)
		}
	}

	return fields, nil
}

func (fr *FormReader) readField(ctx *model.Context, obj types.Object, index int) (*FormField, error) {
	dict, err := ctx.DereferenceDict(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to dereference field: %w", err)
	}
	if dict == nil {
		return nil, nil
	}

	field := &FormField{
		Name: fr.stringEntry(ctx, dict, "T"),
		Type: fr.fieldType(ctx, dict),
	}
	if field.Name == "" {
		field.Name = fmt.Sprintf("field_%d", index)
	}

	flags := fr.flags(ctx, dict)
	field.ReadOnly = flags&flagReadOnly != 0
	field.Required = flags&flagRequired != 0

	switch field.Type {
	case FormFieldTypeText, FormFieldTypeChoice:
		field.Value = fr.stringEntry(ctx, dict, "V")
	}
	if field.Type == FormFieldTypeChoice {
		field.Options = fr.options(ctx, dict)
	}

	if fr.debugMode {
		log.Printf("Read form field: %s (type: %s, %d options)", field.Name, field.Type, len(field.Options))
	}

	return field, nil
}

// fieldType resolves FT, following Parent for inherited entries
func (fr *FormReader) fieldType(ctx *model.Context, dict types.Dict) FormFieldType {
	ftObj, found := dict.Find("FT")
	if !found {
		if parentObj, found := dict.Find("Parent"); found {
			if parent, err := ctx.DereferenceDict(parentObj); err == nil && parent != nil {
				return fr.fieldType(ctx, parent)
			}
		}
		return FormFieldTypeUnknown
	}

	ft, err := ctx.DereferenceName(ftObj, model.V10, nil)
	if err != nil {
		return FormFieldTypeUnknown
	}

	switch ft {
	case "Tx":
		return FormFieldTypeText
	case "Ch":
		return FormFieldTypeChoice
	case "Btn":
		return FormFieldTypeButton
	case "Sig":
		return FormFieldTypeSignature
	default:
		return FormFieldTypeUnknown
	}
}

func (fr *FormReader) flags(ctx *model.Context, dict types.Dict) int {
	obj, found := dict.Find("Ff")
	if !found {
		return 0
	}
	v, err := ctx.DereferenceInteger(obj)
	if err != nil || v == nil {
		return 0
	}
	return int(*v)
}

func (fr *FormReader) stringEntry(ctx *model.Context, dict types.Dict, key string) string {
	obj, found := dict.Find(key)
	if !found {
		return ""
	}
	s, err := ctx.DereferenceStringOrHexLiteral(obj, model.V10, nil)
	if err != nil {
		return ""
	}
	return s
}

// options reads Opt; entries are either a string or an [export display] pair
func (fr *FormReader) options(ctx *model.Context, dict types.Dict) []ChoiceOption {
	var options []ChoiceOption

	optObj, found := dict.Find("Opt")
	if !found {
		return options
	}

	optArray, err := ctx.DereferenceArray(optObj)
	if err != nil {
		return options
	}

	for _, opt := range optArray {
		if s, err := ctx.DereferenceStringOrHexLiteral(opt, model.V10, nil); err == nil {
			options = append(options, ChoiceOption{Export: s, Display: s})
			continue
		}
		pair, err := ctx.DereferenceArray(opt)
		if err != nil || len(pair) < 2 {
			continue
		}
		export, err := ctx.DereferenceStringOrHexLiteral(pair[0], model.V10, nil)
		if err != nil {
			continue
		}
		display, err := ctx.DereferenceStringOrHexLiteral(pair[1], model.V10, nil)
		if err != nil {
			continue
		}
		options = append(options, ChoiceOption{Export: export, Display: display})
	}

	return options
}
