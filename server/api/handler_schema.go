package api

import (
	"net/http"
)

func (h *Handler) handleSchema(w http.ResponseWriter, r *http.Request) {
	writeJson(w, h.schema)
}

func (h *Handler) handleAnalyzers(w http.ResponseWriter, r *http.Request) {
	result := AnalyzerList{
		Analyzers: []Analyzer{},
	}

	for _, id := range h.Analyzers() {
		result.Analyzers = append(result.Analyzers, Analyzer{
			ID: id,
		})
	}

	writeJson(w, result)
}
