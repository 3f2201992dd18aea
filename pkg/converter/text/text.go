package text

import (
	"bufio"
	"context"
	"os"
	"strings"

	"github.com/rahulkamble366/iso/pkg/converter"

	"github.com/go-pdf/fpdf"
)

var _ converter.Provider = &Converter{}

// Converter lays out plain text one cell per input line. Lines are neither
// measured nor wrapped, so long lines run past the right margin.
type Converter struct {
	font string
	size float64
}

func New(options ...Option) (*Converter, error) {
	c := &Converter{
		font: "Arial",
		size: 12,
	}

	for _, option := range options {
		option(c)
	}

	return c, nil
}

func (c *Converter) Convert(ctx context.Context, input string, dir string) (string, error) {
	f, err := os.Open(input)

	if err != nil {
		return "", err
	}

	defer f.Close()

	var lines []string

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		lines = append(lines, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return "", err
	}

	path := converter.OutputPath(input, dir)

	pdf := c.Render(lines)

	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", &converter.ConversionError{
			Format: converter.FormatText,
			Path:   input,

			Err: err,
		}
	}

	return path, nil
}

func (c *Converter) Render(lines []string) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont(c.font, "", c.size)

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, line := range lines {
		line = strings.TrimRight(line, "\r")
		pdf.CellFormat(200, 10, tr(line), "", 1, "", false, 0, "")
	}

	return pdf
}
