package normalizer

import (
	"log/slog"

	"github.com/rahulkamble366/iso/pkg/converter"
)

type Option func(*Normalizer)

func WithConverter(format converter.Format, p converter.Provider) Option {
	return func(n *Normalizer) {
		n.converters[format] = p
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(n *Normalizer) {
		n.logger = logger
	}
}

// WithValidation toggles the page count check on converter output.
func WithValidation(enabled bool) Option {
	return func(n *Normalizer) {
		n.validate = enabled
	}
}
