package normalizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rahulkamble366/iso/pkg/converter"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Normalizer maps an input document to exactly one canonical PDF.
type Normalizer struct {
	dir string

	converters map[converter.Format]converter.Provider

	validate bool

	logger *slog.Logger
}

func New(dir string, options ...Option) (*Normalizer, error) {
	if dir == "" {
		return nil, errors.New("invalid working directory")
	}

	n := &Normalizer{
		dir: dir,

		converters: make(map[converter.Format]converter.Provider),

		validate: true,

		logger: slog.Default(),
	}

	for _, option := range options {
		option(n)
	}

	return n, nil
}

func (n *Normalizer) Dir() string {
	return n.dir
}

// Normalize returns the path of the canonical PDF for path. PDF inputs are
// returned unchanged; everything else is converted into the working directory.
func (n *Normalizer) Normalize(ctx context.Context, path string) (string, error) {
	format, err := converter.DetectFormat(path)

	if err != nil {
		return "", err
	}

	if format == converter.FormatPDF {
		return path, nil
	}

	p, ok := n.converters[format]

	if !ok {
		return "", &converter.UnsupportedFormatError{
			Ext: filepath.Ext(path),
		}
	}

	if _, err := os.Stat(path); err != nil {
		return "", err
	}

	if err := os.MkdirAll(n.dir, 0755); err != nil {
		return "", err
	}

	n.logger.Info("converting document", "path", path, "format", format)

	output, err := p.Convert(ctx, path, n.dir)

	if err != nil {
		var convErr *converter.ConversionError

		if errors.As(err, &convErr) {
			return "", err
		}

		return "", &converter.ConversionError{
			Format: format,
			Path:   path,

			Err: err,
		}
	}

	if n.validate {
		if err := checkPDF(output); err != nil {
			return "", &converter.ConversionError{
				Format: format,
				Path:   path,

				Err: err,
			}
		}
	}

	return output, nil
}

func checkPDF(path string) error {
	count, err := api.PageCountFile(path)

	if err != nil {
		return fmt.Errorf("invalid pdf output: %w", err)
	}

	if count == 0 {
		return errors.New("invalid pdf output: no pages")
	}

	return nil
}
