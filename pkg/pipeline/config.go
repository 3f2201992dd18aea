package pipeline

import (
	"log/slog"

	"github.com/rahulkamble366/iso/pkg/analyzer"
	"github.com/rahulkamble366/iso/pkg/visualizer"
)

type Option func(*Pipeline)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

func WithVisualizer(v visualizer.Provider) Option {
	return func(p *Pipeline) {
		p.visualizer = v
	}
}

func WithAnalyzeOptions(options *analyzer.AnalyzeOptions) Option {
	return func(p *Pipeline) {
		p.options = options
	}
}

// WithName labels the analyzer in errors and logs.
func WithName(name string) Option {
	return func(p *Pipeline) {
		p.name = name
	}
}
