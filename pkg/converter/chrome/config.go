package chrome

import (
	"log/slog"
	"time"
)

type Option func(*Converter)

// WithExecPath points at a specific Chrome or Chromium binary.
func WithExecPath(path string) Option {
	return func(c *Converter) {
		c.execPath = path
	}
}

func WithHeadless(headless bool) Option {
	return func(c *Converter) {
		c.headless = headless
	}
}

func WithNoSandbox(noSandbox bool) Option {
	return func(c *Converter) {
		c.noSandbox = noSandbox
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
