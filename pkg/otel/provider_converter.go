package otel

import (
	"context"
	"path/filepath"
	"time"

	"github.com/rahulkamble366/iso/pkg/converter"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

type Converter interface {
	Observable
	converter.Provider
}

type observableConverter struct {
	format converter.Format

	converter converter.Provider
}

func NewConverter(format converter.Format, p converter.Provider) Converter {
	return &observableConverter{
		format: format,

		converter: p,
	}
}

func (p *observableConverter) otelSetup() {
}

func (p *observableConverter) Convert(ctx context.Context, input, dir string) (string, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "convert "+string(p.format))
	defer span.End()

	span.SetAttributes(String("file.name", filepath.Base(input)))

	start := time.Now()

	output, err := p.converter.Convert(ctx, input, dir)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	pipelineMetrics().recordConversion(ctx, string(p.format), start, err)

	return output, err
}
