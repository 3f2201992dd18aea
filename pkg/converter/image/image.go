package image

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/rahulkamble366/iso/pkg/converter"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

var _ converter.Provider = &Converter{}

// Converter wraps a raster image into a single page PDF whose page size
// matches the image dimensions.
type Converter struct {
}

func New() (*Converter, error) {
	return &Converter{}, nil
}

func (c *Converter) Convert(ctx context.Context, input string, dir string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := converter.OutputPath(input, dir)

	// pdfcpu appends to an existing output file
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}

	imp := pdfcpu.DefaultImportConfig()
	imp.Pos = types.Full

	conf := model.NewDefaultConfiguration()

	if err := api.ImportImagesFile([]string{input}, path, imp, conf); err != nil {
		return "", &converter.ConversionError{
			Format: converter.FormatImage,
			Path:   input,

			Err: err,
		}
	}

	return path, nil
}
