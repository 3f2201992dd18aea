package pipeline

import (
	"context"
	"errors"
	"log/slog"

	"github.com/rahulkamble366/iso/pkg/analyzer"
	"github.com/rahulkamble366/iso/pkg/page"
	"github.com/rahulkamble366/iso/pkg/provider"
	"github.com/rahulkamble366/iso/pkg/visualizer"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/rahulkamble366/iso/pkg/pipeline"

type Normalizer interface {
	Normalize(ctx context.Context, path string) (string, error)
}

type Document struct {
	Pages []page.Record `json:"pages"`
}

type Result struct {
	Source    string
	Canonical string

	Document *Document

	// Tables holds every table fragment in page, then detection order.
	Tables []page.Fragment

	Pages []analyzer.Page
}

// Pipeline runs one document through normalization, layout analysis and
// page structuring. Pages are handled sequentially in engine order.
type Pipeline struct {
	name string

	normalizer Normalizer
	analyzer   analyzer.Provider
	visualizer visualizer.Provider

	options *analyzer.AnalyzeOptions

	logger *slog.Logger

	pageCounter  metric.Int64Counter
	tableCounter metric.Int64Counter
}

func New(normalizer Normalizer, engine analyzer.Provider, options ...Option) (*Pipeline, error) {
	if normalizer == nil {
		return nil, errors.New("invalid normalizer")
	}

	if engine == nil {
		return nil, errors.New("invalid analyzer")
	}

	p := &Pipeline{
		normalizer: normalizer,
		analyzer:   engine,

		logger: slog.Default(),
	}

	for _, option := range options {
		option(p)
	}

	meter := otel.Meter(instrumentationName)

	p.pageCounter, _ = meter.Int64Counter("iso.pages",
		metric.WithDescription("Number of structured pages"),
	)

	p.tableCounter, _ = meter.Int64Counter("iso.tables",
		metric.WithDescription("Number of reconstructed tables"),
	)

	return p, nil
}

func (p *Pipeline) Run(ctx context.Context, path string) (*Result, error) {
	p.logger.Info("normalizing document", "path", path)

	canonical, err := p.normalizer.Normalize(ctx, path)

	if err != nil {
		return nil, err
	}

	file, err := provider.ReadFile(canonical)

	if err != nil {
		return nil, err
	}

	file.ContentType = "application/pdf"

	p.logger.Info("analyzing document", "path", canonical, "analyzer", p.name)

	analysis, err := p.analyzer.Analyze(ctx, *file, p.options)

	if err != nil {
		return nil, &analyzer.AnalysisError{
			Provider: p.name,
			Err:      err,
		}
	}

	result := &Result{
		Source:    path,
		Canonical: canonical,

		Document: &Document{
			Pages: make([]page.Record, 0, len(analysis.Pages)),
		},

		Tables: []page.Fragment{},

		Pages: analysis.Pages,
	}

	attrs := metric.WithAttributes(attribute.String("analyzer", p.name))

	for _, pg := range analysis.Pages {
		p.logger.Debug("processing page", "page", pg.Number)

		record, fragments, err := page.Structure(pg)

		if err != nil {
			return nil, err
		}

		for _, f := range fragments {
			if f.Overwrites > 0 {
				p.logger.Warn("duplicate table cell coordinates", "page", f.Page, "table", f.Index, "overwrites", f.Overwrites)
			}
		}

		result.Document.Pages = append(result.Document.Pages, *record)
		result.Tables = append(result.Tables, fragments...)

		p.pageCounter.Add(ctx, 1, attrs)
		p.tableCounter.Add(ctx, int64(len(fragments)), attrs)
	}

	p.logger.Info("document structured", "path", path, "pages", len(result.Document.Pages), "tables", len(result.Tables))

	return result, nil
}
