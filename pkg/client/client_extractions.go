package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/rahulkamble366/iso/pkg/pipeline"
)

type Document = pipeline.Document

type ExtractionService struct {
	Options []RequestOption
}

func NewExtractionService(opts ...RequestOption) ExtractionService {
	return ExtractionService{
		Options: opts,
	}
}

type ExtractionRequest struct {
	Name   string
	Reader io.Reader

	// Analyzer selects a configured analyzer. Empty uses the server default.
	Analyzer string

	// Pages restricts analysis to these 1-based page numbers.
	Pages []int
}

// New uploads a document and returns its structured record.
func (r *ExtractionService) New(ctx context.Context, input ExtractionRequest, opts ...RequestOption) (*Document, error) {
	resp, err := r.extract(ctx, input, "json", opts...)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	var doc Document

	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, err
	}

	return &doc, nil
}

// Tables uploads a document and returns its tables rendered as HTML.
func (r *ExtractionService) Tables(ctx context.Context, input ExtractionRequest, opts ...RequestOption) (string, error) {
	return r.text(ctx, input, "html", opts...)
}

// Markdown uploads a document and returns its tables as markdown.
func (r *ExtractionService) Markdown(ctx context.Context, input ExtractionRequest, opts ...RequestOption) (string, error) {
	return r.text(ctx, input, "markdown", opts...)
}

func (r *ExtractionService) text(ctx context.Context, input ExtractionRequest, format string, opts ...RequestOption) (string, error) {
	resp, err := r.extract(ctx, input, format, opts...)

	if err != nil {
		return "", err
	}

	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)

	if err != nil {
		return "", err
	}

	return string(data), nil
}

func (r *ExtractionService) extract(ctx context.Context, input ExtractionRequest, format string, opts ...RequestOption) (*http.Response, error) {
	c := newRequestConfig(append(r.Options, opts...)...)

	if input.Name == "" || input.Reader == nil {
		return nil, errors.New("invalid input")
	}

	var data bytes.Buffer
	w := multipart.NewWriter(&data)

	w.WriteField("format", format)

	if input.Analyzer != "" {
		w.WriteField("analyzer", input.Analyzer)
	}

	if len(input.Pages) > 0 {
		pages := make([]string, len(input.Pages))

		for i, n := range input.Pages {
			pages[i] = strconv.Itoa(n)
		}

		w.WriteField("pages", strings.Join(pages, ","))
	}

	file, err := w.CreateFormFile("file", input.Name)

	if err != nil {
		return nil, err
	}

	if _, err := io.Copy(file, input.Reader); err != nil {
		return nil, err
	}

	w.Close()

	req, _ := http.NewRequestWithContext(ctx, "POST", strings.TrimRight(c.URL, "/")+"/v1/extract", &data)
	req.Header.Set("Content-Type", w.FormDataContentType())

	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.Client.Do(req)

	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, convertError(resp)
	}

	return resp, nil
}

func convertError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)

	if len(data) == 0 {
		return errors.New(resp.Status)
	}

	return errors.New(strings.TrimSpace(string(data)))
}
