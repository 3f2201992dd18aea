package markdown

import (
	"bytes"
	"context"
	"errors"
	"html"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/rahulkamble366/iso/pkg/converter"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var _ converter.Provider = &Converter{}

// Converter renders Markdown to a standalone HTML page and hands it to an
// HTML converter for printing.
type Converter struct {
	md goldmark.Markdown

	html converter.Provider
}

func New(html converter.Provider) (*Converter, error) {
	if html == nil {
		return nil, errors.New("invalid html converter")
	}

	return &Converter{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),

		html: html,
	}, nil
}

func (c *Converter) Convert(ctx context.Context, input string, dir string) (string, error) {
	source, err := os.ReadFile(input)

	if err != nil {
		return "", err
	}

	abs, err := filepath.Abs(input)

	if err != nil {
		return "", err
	}

	base := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(filepath.Dir(abs)) + "/",
	}

	data, err := c.Render(filepath.Base(input), base.String(), source)

	if err != nil {
		return "", &converter.ConversionError{
			Format: converter.FormatMarkdown,
			Path:   input,

			Err: err,
		}
	}

	tmp, err := os.MkdirTemp(dir, "markdown-*")

	if err != nil {
		return "", err
	}

	defer os.RemoveAll(tmp)

	name := filepath.Base(input)
	page := filepath.Join(tmp, strings.TrimSuffix(name, filepath.Ext(name))+".html")

	if err := os.WriteFile(page, data, 0644); err != nil {
		return "", err
	}

	return c.html.Convert(ctx, page, dir)
}

// Render wraps the Markdown body in an HTML page. A non-empty base resolves
// relative links and images against the source location.
func (c *Converter) Render(title, base string, source []byte) ([]byte, error) {
	var body bytes.Buffer

	if err := c.md.Convert(source, &body); err != nil {
		return nil, err
	}

	var buf bytes.Buffer

	buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	buf.WriteString("<title>" + html.EscapeString(title) + "</title>\n")

	if base != "" {
		buf.WriteString("<base href=\"" + html.EscapeString(base) + "\">\n")
	}

	buf.WriteString("</head>\n<body>\n")
	buf.Write(body.Bytes())
	buf.WriteString("</body>\n</html>\n")

	return buf.Bytes(), nil
}
