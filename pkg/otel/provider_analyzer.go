package otel

import (
	"context"
	"strings"
	"time"

	"github.com/rahulkamble366/iso/pkg/analyzer"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

type Analyzer interface {
	Observable
	analyzer.Provider
}

type observableAnalyzer struct {
	name     string
	provider string

	analyzer analyzer.Provider
}

func NewAnalyzer(provider string, p analyzer.Provider) Analyzer {
	return &observableAnalyzer{
		analyzer: p,

		name:     strings.TrimSuffix(strings.ToLower(provider), "-analyzer") + "-analyzer",
		provider: provider,
	}
}

func (p *observableAnalyzer) otelSetup() {
}

func (p *observableAnalyzer) Analyze(ctx context.Context, file analyzer.File, options *analyzer.AnalyzeOptions) (*analyzer.Result, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, p.name)
	defer span.End()

	span.SetAttributes(
		String("analyzer.provider", p.provider),
		String("file.name", file.Name),
		Int("file.size", len(file.Content)),
	)

	start := time.Now()

	result, err := p.analyzer.Analyze(ctx, file, options)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		pipelineMetrics().recordAnalysis(ctx, p.provider, start, 0, err)

		return nil, err
	}

	span.SetAttributes(Int("document.pages", len(result.Pages)))

	pipelineMetrics().recordAnalysis(ctx, p.provider, start, len(result.Pages), nil)

	return result, nil
}
