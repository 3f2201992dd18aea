package api

type Format string

const (
	FormatJSON     Format = "json"
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
)

type AnalyzerList struct {
	Analyzers []Analyzer `json:"analyzers"`
}

type Analyzer struct {
	ID string `json:"id"`
}
