package otel_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rahulkamble366/iso/pkg/analyzer"
	"github.com/rahulkamble366/iso/pkg/converter"
	"github.com/rahulkamble366/iso/pkg/otel"

	"github.com/stretchr/testify/require"

	otelapi "go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

type stubAnalyzer struct {
	err error
}

func (a *stubAnalyzer) Analyze(ctx context.Context, file analyzer.File, options *analyzer.AnalyzeOptions) (*analyzer.Result, error) {
	if a.err != nil {
		return nil, a.err
	}

	return &analyzer.Result{Pages: []analyzer.Page{{Number: 1}}}, nil
}

type stubConverter struct{}

func (stubConverter) Convert(ctx context.Context, input, dir string) (string, error) {
	return "", &converter.ConversionError{Format: converter.FormatOffice, Path: input, Err: errors.New("exit status 1")}
}

func TestAnalyzer(t *testing.T) {
	a := otel.NewAnalyzer("azure", &stubAnalyzer{})

	result, err := a.Analyze(context.Background(), analyzer.File{Name: "a.pdf"}, nil)
	require.NoError(t, err)
	require.Len(t, result.Pages, 1)
}

func TestAnalyzerError(t *testing.T) {
	cause := errors.New("timeout")
	a := otel.NewAnalyzer("docling", &stubAnalyzer{err: cause})

	_, err := a.Analyze(context.Background(), analyzer.File{Name: "a.pdf"}, nil)
	require.ErrorIs(t, err, cause)
}

func TestConverterError(t *testing.T) {
	c := otel.NewConverter(converter.FormatOffice, stubConverter{})

	_, err := c.Convert(context.Background(), "a.docx", t.TempDir())

	var conversion *converter.ConversionError
	require.ErrorAs(t, err, &conversion)
}

func TestSetupDisabled(t *testing.T) {
	otel.EnableTelemetry = false

	shutdown, err := otel.Setup(context.Background(), "iso", "test")
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestAnalyzerMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	otelapi.SetMeterProvider(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))

	a := otel.NewAnalyzer("azure", &stubAnalyzer{})

	_, err := a.Analyze(context.Background(), analyzer.File{Name: "a.pdf"}, nil)
	require.NoError(t, err)

	var data metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &data))

	names := map[string]bool{}

	for _, scope := range data.ScopeMetrics {
		for _, m := range scope.Metrics {
			names[m.Name] = true
		}
	}

	require.True(t, names["iso.analyzer.duration"])
	require.True(t, names["iso.analyzer.pages"])
}
