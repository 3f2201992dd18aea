package poppler

import (
	"log/slog"
	"time"
)

type Option func(*Client)

func WithBinary(binary string) Option {
	return func(c *Client) {
		c.binary = binary
	}
}

func WithDPI(dpi int) Option {
	return func(c *Client) {
		c.dpi = dpi
	}
}

// WithOverlay toggles drawing detection boxes on the rendered page.
func WithOverlay(overlay bool) Option {
	return func(c *Client) {
		c.overlay = overlay
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}
