package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
)

const (
	DocumentFile = "document.json"
	TablesFile   = "tables.html"
)

// HTML renders all table fragments of the result as one HTML document.
func (r *Result) HTML() string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	b.WriteString("<title>" + html.EscapeString(filepath.Base(r.Source)) + " - Tables</title>\n")
	b.WriteString("</head>\n<body>\n")

	if len(r.Tables) == 0 {
		b.WriteString("<p>No tables detected.</p>\n")
	}

	for _, t := range r.Tables {
		b.WriteString(t.HTML)
	}

	b.WriteString("</body>\n</html>\n")

	return b.String()
}

// Markdown renders the table fragments as GitHub flavored markdown tables.
func (r *Result) Markdown() (string, error) {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())

	var b strings.Builder

	for _, t := range r.Tables {
		b.WriteString(t.HTML)
	}

	return converter.ConvertString(b.String())
}

// JSON encodes the document record with indentation and without HTML escaping.
func (r *Result) JSON() ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	if err := enc.Encode(r.Document); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Write stores document.json, tables.html and, with a visualizer, one
// page_N.png per page into dir.
func (p *Pipeline) Write(ctx context.Context, dir string, r *Result) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := r.JSON()

	if err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(dir, DocumentFile), data, 0644); err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(dir, TablesFile), []byte(r.HTML()), 0644); err != nil {
		return err
	}

	if p.visualizer == nil {
		return nil
	}

	for _, pg := range r.Pages {
		output := filepath.Join(dir, fmt.Sprintf("page_%d.png", pg.Number))

		if err := p.visualizer.Visualize(ctx, r.Canonical, pg, output); err != nil {
			return err
		}

		p.logger.Debug("page image written", "page", pg.Number, "path", output)
	}

	return nil
}
