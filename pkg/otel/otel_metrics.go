package otel

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

type instruments struct {
	analyzeDuration metric.Float64Histogram
	analyzedPages   metric.Int64Counter

	convertDuration metric.Float64Histogram
	convertFailures metric.Int64Counter
}

var (
	metricsOnce sync.Once
	metrics     instruments
)

func pipelineMetrics() *instruments {
	metricsOnce.Do(func() {
		meter := otel.Meter(instrumentationName)

		metrics.analyzeDuration, _ = meter.Float64Histogram("iso.analyzer.duration",
			metric.WithDescription("Duration of layout analysis requests"),
			metric.WithUnit("s"),
		)

		metrics.analyzedPages, _ = meter.Int64Counter("iso.analyzer.pages",
			metric.WithDescription("Pages returned by layout analysis"),
			metric.WithUnit("{page}"),
		)

		metrics.convertDuration, _ = meter.Float64Histogram("iso.converter.duration",
			metric.WithDescription("Duration of PDF conversions"),
			metric.WithUnit("s"),
		)

		metrics.convertFailures, _ = meter.Int64Counter("iso.converter.failures",
			metric.WithDescription("Failed PDF conversions"),
		)
	})

	return &metrics
}

func (m *instruments) recordAnalysis(ctx context.Context, provider string, start time.Time, pages int, err error) {
	attrs := metric.WithAttributes(
		String("analyzer.provider", provider),
		attributeStatus(err),
	)

	m.analyzeDuration.Record(ctx, time.Since(start).Seconds(), attrs)

	if err == nil {
		m.analyzedPages.Add(ctx, int64(pages), metric.WithAttributes(String("analyzer.provider", provider)))
	}
}

func (m *instruments) recordConversion(ctx context.Context, format string, start time.Time, err error) {
	attrs := metric.WithAttributes(
		String("converter.format", format),
		attributeStatus(err),
	)

	m.convertDuration.Record(ctx, time.Since(start).Seconds(), attrs)

	if err != nil {
		m.convertFailures.Add(ctx, 1, metric.WithAttributes(String("converter.format", format)))
	}
}

func attributeStatus(err error) KeyValue {
	if err != nil {
		return String("status", "error")
	}

	return String("status", "ok")
}
