package converter

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
)

type Provider interface {
	// Convert writes a PDF rendition of input into dir and returns its path.
	Convert(ctx context.Context, input string, dir string) (string, error)
}

var (
	ErrUnsupported = errors.New("unsupported format")
)

type Format string

const (
	FormatPDF      Format = "pdf"
	FormatOffice   Format = "office"
	FormatHTML     Format = "html"
	FormatImage    Format = "image"
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
)

var extensions = map[string]Format{
	".pdf": FormatPDF,

	".docx": FormatOffice,
	".pptx": FormatOffice,
	".xlsx": FormatOffice,
	".doc":  FormatOffice,
	".ppt":  FormatOffice,
	".xls":  FormatOffice,
	".odt":  FormatOffice,
	".odp":  FormatOffice,
	".ods":  FormatOffice,
	".rtf":  FormatOffice,

	".html": FormatHTML,
	".htm":  FormatHTML,

	".png":  FormatImage,
	".jpg":  FormatImage,
	".jpeg": FormatImage,

	".txt": FormatText,

	".md":       FormatMarkdown,
	".markdown": FormatMarkdown,
}

// DetectFormat classifies path by its extension only; content is never sniffed.
func DetectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))

	if format, ok := extensions[ext]; ok {
		return format, nil
	}

	return "", &UnsupportedFormatError{Ext: ext}
}

// OutputPath is the same-stem PDF location inside dir.
func OutputPath(input, dir string) string {
	name := filepath.Base(input)
	stem := strings.TrimSuffix(name, filepath.Ext(name))

	return filepath.Join(dir, stem+".pdf")
}

type UnsupportedFormatError struct {
	Ext string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Ext == "" {
		return "unsupported file format: missing extension"
	}

	return "unsupported file format: " + e.Ext
}

func (e *UnsupportedFormatError) Unwrap() error {
	return ErrUnsupported
}

type ConversionError struct {
	Format Format
	Path   string

	Err error
}

func (e *ConversionError) Error() string {
	return "convert " + string(e.Format) + " " + e.Path + ": " + e.Err.Error()
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}
