package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rahulkamble366/iso/pkg/analyzer"
	"github.com/rahulkamble366/iso/pkg/converter"
	"github.com/rahulkamble366/iso/pkg/pipeline"

	"github.com/google/uuid"
)

const maxUploadSize = 64 << 20

func (h *Handler) handleExtract(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	format, err := valueFormat(r)

	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	pages, err := valuePages(r)

	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	file, err := h.readFile(r)

	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if _, err := converter.DetectFormat(file.Name); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var options []pipeline.Option

	if len(pages) > 0 {
		options = append(options, pipeline.WithAnalyzeOptions(&analyzer.AnalyzeOptions{
			Pages: pages,
		}))
	}

	p, err := h.Pipeline(valueAnalyzer(r), options...)

	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	dir := filepath.Join(h.WorkDir, "uploads")

	if err := os.MkdirAll(dir, 0755); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	input := filepath.Join(dir, uuid.NewString()+strings.ToLower(path.Ext(file.Name)))

	if err := os.WriteFile(input, file.Content, 0644); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	defer os.Remove(input)

	result, err := p.Run(r.Context(), input)

	if err != nil {
		slog.Error("extraction failed", "file", file.Name, "error", err)

		var unsupported *converter.UnsupportedFormatError

		if errors.As(err, &unsupported) {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		writeError(w, http.StatusInternalServerError, err)
		return
	}

	if result.Canonical != input {
		defer os.Remove(result.Canonical)
	}

	switch format {
	case FormatHTML:
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		io.WriteString(w, result.HTML())

	case FormatMarkdown:
		text, err := result.Markdown()

		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}

		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		io.WriteString(w, text)

	default:
		writeJson(w, result.Document)
	}
}
