package api

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/rahulkamble366/iso/pkg/provider"
)

var errMissingFile = errors.New("missing file")

func valueAnalyzer(r *http.Request) string {
	if val := r.FormValue("analyzer"); val != "" {
		return val
	}

	return r.Header.Get("X-Analyzer")
}

func valueFormat(r *http.Request) (Format, error) {
	val := Format(strings.ToLower(r.FormValue("format")))

	switch val {
	case "", FormatJSON:
		return FormatJSON, nil

	case FormatHTML, FormatMarkdown:
		return val, nil
	}

	return "", errors.New("invalid format: " + string(val))
}

// valuePages reads a comma separated list of 1-based page numbers.
func valuePages(r *http.Request) ([]int, error) {
	val := r.FormValue("pages")

	if val == "" {
		return nil, nil
	}

	var pages []int

	for _, s := range strings.Split(val, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(s))

		if err != nil || n < 1 {
			return nil, errors.New("invalid page: " + s)
		}

		pages = append(pages, n)
	}

	return pages, nil
}

// readFile accepts a multipart "file" field or a raw body named through
// Content-Disposition or the "name" query parameter.
func (h *Handler) readFile(r *http.Request) (*provider.File, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		file, header, err := r.FormFile("file")

		if err != nil {
			return nil, errMissingFile
		}

		defer file.Close()

		return readUpload(file, header.Filename, header.Header.Get("Content-Type"))
	}

	name := uploadName(r.Header.Get("Content-Disposition"))

	if name == "" {
		name = r.URL.Query().Get("name")
	}

	if name == "" {
		return nil, errMissingFile
	}

	return readUpload(r.Body, name, r.Header.Get("Content-Type"))
}

func readUpload(reader io.Reader, name, contentType string) (*provider.File, error) {
	data, err := io.ReadAll(reader)

	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return nil, errors.New("empty file: " + name)
	}

	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	return &provider.File{
		Name: name,

		Content:     data,
		ContentType: contentType,
	}, nil
}

func uploadName(disposition string) string {
	_, params, err := mime.ParseMediaType(disposition)

	if err != nil {
		return ""
	}

	// mime decodes RFC 2231 "filename*" into "filename"
	return params["filename"]
}
