package client_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rahulkamble366/iso/pkg/client"

	"github.com/stretchr/testify/require"
)

func TestExtraction(t *testing.T) {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/extract", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		file, header, err := r.FormFile("file")

		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		defer file.Close()

		if !strings.HasSuffix(header.Filename, ".pdf") {
			http.Error(w, "unsupported file format: .xyz", http.StatusBadRequest)
			return
		}

		data, _ := io.ReadAll(file)

		if r.FormValue("format") == "markdown" {
			io.WriteString(w, "pages="+r.FormValue("pages"))
			return
		}

		if r.FormValue("format") == "html" {
			io.WriteString(w, "<h3>Page 1 - Table 1</h3>")
			return
		}

		io.WriteString(w, `{"pages": [{"page_number": 1, "texts": [{"text": "`+string(data)+`", "bbox": null}], "tables": [], "titles": [], "lists": [], "figures": []}]}`)
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	c := client.New(server.URL, client.WithToken("secret"))

	doc, err := c.Extractions.New(context.Background(), client.ExtractionRequest{
		Name:   "a.pdf",
		Reader: strings.NewReader("hello"),
	})

	require.NoError(t, err)
	require.Len(t, doc.Pages, 1)
	require.Equal(t, "hello", doc.Pages[0].Texts[0].Text)

	html, err := c.Extractions.Tables(context.Background(), client.ExtractionRequest{
		Name:   "a.pdf",
		Reader: strings.NewReader("hello"),
	})

	require.NoError(t, err)
	require.Equal(t, "<h3>Page 1 - Table 1</h3>", html)

	text, err := c.Extractions.Markdown(context.Background(), client.ExtractionRequest{
		Name:   "a.pdf",
		Reader: strings.NewReader("hello"),
		Pages:  []int{2, 4},
	})

	require.NoError(t, err)
	require.Equal(t, "pages=2,4", text)

	_, err = c.Extractions.New(context.Background(), client.ExtractionRequest{
		Name:   "a.xyz",
		Reader: strings.NewReader("hello"),
	})

	require.EqualError(t, err, "unsupported file format: .xyz")

	_, err = c.Extractions.New(context.Background(), client.ExtractionRequest{
		Name:   "a.pdf",
		Reader: strings.NewReader("hello"),
	}, client.WithToken("wrong"))

	require.EqualError(t, err, "unauthorized")
}
