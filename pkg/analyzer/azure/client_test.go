package azure_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rahulkamble366/iso/pkg/analyzer"
	"github.com/rahulkamble366/iso/pkg/analyzer/azure"

	"github.com/stretchr/testify/require"
)

const analyzeResult = `{
  "status": "succeeded",
  "analyzeResult": {
    "modelId": "prebuilt-layout",
    "content": "Report\nHello\n• bullet\nA B C D\n1",
    "pages": [
      {"pageNumber": 2, "unit": "inch", "width": 8.5, "height": 11},
      {"pageNumber": 1, "unit": "inch", "width": 8.5, "height": 11}
    ],
    "paragraphs": [
      {"role": "title", "content": "Report", "spans": [{"offset": 0, "length": 6}], "boundingRegions": [{"pageNumber": 1, "polygon": [1, 1, 3, 1, 3, 2, 1, 2]}]},
      {"content": "Hello", "spans": [{"offset": 7, "length": 5}], "boundingRegions": [{"pageNumber": 1, "polygon": [1, 3, 2, 3, 2, 4, 1, 4]}]},
      {"content": "• bullet", "spans": [{"offset": 13, "length": 8}], "boundingRegions": [{"pageNumber": 1, "polygon": [1, 5, 2, 5, 2, 6, 1, 6]}]},
      {"content": "A", "spans": [{"offset": 22, "length": 1}], "boundingRegions": [{"pageNumber": 2, "polygon": [0, 0, 1, 0, 1, 1, 0, 1]}]},
      {"role": "pageNumber", "content": "1", "spans": [{"offset": 30, "length": 1}], "boundingRegions": [{"pageNumber": 1, "polygon": [4, 10, 5, 10, 5, 11, 4, 11]}]}
    ],
    "tables": [
      {
        "rowCount": 2,
        "columnCount": 2,
        "spans": [{"offset": 22, "length": 7}],
        "boundingRegions": [{"pageNumber": 2, "polygon": [0, 0, 4, 0, 4, 2, 0, 2]}],
        "cells": [
          {"rowIndex": 0, "columnIndex": 0, "content": "A"},
          {"rowIndex": 0, "columnIndex": 1, "content": "B"},
          {"rowIndex": 1, "columnIndex": 0, "content": "C"},
          {"rowIndex": 1, "columnIndex": 1, "content": "D"}
        ]
      }
    ],
    "figures": [
      {"id": "1.1", "boundingRegions": [{"pageNumber": 1, "polygon": [5, 5, 7, 5, 7, 7, 5, 7]}]}
    ]
  }
}`

func newServer(t *testing.T, polls int) *httptest.Server {
	var server *httptest.Server
	var count int

	mux := http.NewServeMux()

	mux.HandleFunc("POST /documentintelligence/documentModels/prebuilt-layout:analyze", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "secret", r.Header.Get("Ocp-Apim-Subscription-Key"))
		require.Equal(t, "2024-11-30", r.URL.Query().Get("api-version"))

		data, _ := io.ReadAll(r.Body)
		require.Equal(t, "%PDF", string(data))

		w.Header().Set("Operation-Location", server.URL+"/operations/1")
		w.WriteHeader(http.StatusAccepted)
	})

	mux.HandleFunc("GET /operations/1", func(w http.ResponseWriter, r *http.Request) {
		count++

		if count <= polls {
			json.NewEncoder(w).Encode(map[string]string{"status": "running"})
			return
		}

		io.WriteString(w, analyzeResult)
	})

	server = httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server
}

func TestAnalyze(t *testing.T) {
	server := newServer(t, 2)

	c, err := azure.New(server.URL, azure.WithToken("secret"), azure.WithPollInterval(time.Millisecond))
	require.NoError(t, err)

	result, err := c.Analyze(context.Background(), analyzer.File{
		Name:        "doc.pdf",
		Content:     []byte("%PDF"),
		ContentType: "application/pdf",
	}, nil)

	require.NoError(t, err)
	require.Len(t, result.Pages, 2)

	p1 := result.Pages[0]
	require.Equal(t, 1, p1.Number)
	require.Equal(t, "inch", p1.Unit)

	titles := p1.Layouts(analyzer.CategoryTitle)
	require.Len(t, titles, 1)
	require.Equal(t, "Report", *titles[0].Text)
	require.Equal(t, &analyzer.Box{1, 1, 3, 2}, titles[0].Box)

	texts := p1.Layouts(analyzer.CategoryText)
	require.Len(t, texts, 1)
	require.Equal(t, "Hello", *texts[0].Text)

	lists := p1.Layouts(analyzer.CategoryList)
	require.Len(t, lists, 1)
	require.Equal(t, "• bullet", *lists[0].Text)

	figures := p1.Layouts(analyzer.CategoryFigure)
	require.Len(t, figures, 1)
	require.Equal(t, &analyzer.Box{5, 5, 7, 7}, figures[0].Box)

	require.Empty(t, p1.Tables)

	p2 := result.Pages[1]
	require.Equal(t, 2, p2.Number)
	require.Empty(t, p2.Layouts(analyzer.CategoryText))
	require.Len(t, p2.Tables, 1)
	require.Len(t, p2.Tables[0].Cells, 4)
	require.Equal(t, 1, *p2.Tables[0].Cells[3].Row)
	require.Equal(t, 1, *p2.Tables[0].Cells[3].Column)
	require.Equal(t, "D", p2.Tables[0].Cells[3].Text)
}

func TestAnalyzeFailedOperation(t *testing.T) {
	var server *httptest.Server

	mux := http.NewServeMux()

	mux.HandleFunc("POST /documentintelligence/documentModels/prebuilt-layout:analyze", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Operation-Location", server.URL+"/operations/2")
		w.WriteHeader(http.StatusAccepted)
	})

	mux.HandleFunc("GET /operations/2", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"status": "failed", "error": {"code": "InvalidContent", "message": "corrupted file"}}`)
	})

	server = httptest.NewServer(mux)
	defer server.Close()

	c, err := azure.New(server.URL)
	require.NoError(t, err)

	_, err = c.Analyze(context.Background(), analyzer.File{Name: "doc.pdf"}, nil)
	require.ErrorContains(t, err, "corrupted file")
}

func TestAnalyzeRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, "access denied")
	}))

	defer server.Close()

	c, err := azure.New(server.URL)
	require.NoError(t, err)

	_, err = c.Analyze(context.Background(), analyzer.File{Name: "doc.pdf"}, nil)
	require.EqualError(t, err, "access denied")
}

func TestAnalyzeUnsupported(t *testing.T) {
	c, err := azure.New("http://localhost")
	require.NoError(t, err)

	_, err = c.Analyze(context.Background(), analyzer.File{Name: "notes.txt", ContentType: "text/plain"}, nil)
	require.ErrorIs(t, err, analyzer.ErrUnsupported)
}

func TestNewInvalidURL(t *testing.T) {
	_, err := azure.New("")
	require.Error(t, err)
}
