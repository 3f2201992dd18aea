package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rahulkamble366/iso/config"
	"github.com/rahulkamble366/iso/pkg/pipeline"

	"github.com/go-chi/chi/v5"
	"github.com/google/jsonschema-go/jsonschema"
)

type Handler struct {
	*config.Config

	schema *jsonschema.Schema
}

func New(cfg *config.Config) (*Handler, error) {
	if cfg == nil {
		return nil, errors.New("invalid config")
	}

	schema, err := jsonschema.For[pipeline.Document](nil)

	if err != nil {
		return nil, err
	}

	h := &Handler{
		Config: cfg,

		schema: schema,
	}

	return h, nil
}

func (h *Handler) Attach(r chi.Router) {
	r.Post("/extract", h.handleExtract)

	r.Get("/schema", h.handleSchema)
	r.Get("/analyzers", h.handleAnalyzers)
}

func writeJson(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	enc.Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	w.WriteHeader(code)

	text := http.StatusText(code)

	if err != nil {
		text = err.Error()
	}

	w.Write([]byte(text))
}
