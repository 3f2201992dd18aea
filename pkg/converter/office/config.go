package office

import (
	"log/slog"
	"time"
)

type Option func(*Converter)

func WithBinary(binary string) Option {
	return func(c *Converter) {
		c.binary = binary
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Converter) {
		c.timeout = timeout
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) {
		c.logger = logger
	}
}
