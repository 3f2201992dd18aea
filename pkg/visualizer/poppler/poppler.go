package poppler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/rahulkamble366/iso/pkg/analyzer"
	"github.com/rahulkamble366/iso/pkg/visualizer"
)

var _ visualizer.Provider = &Client{}

// Client rasterizes pages with poppler's pdftoppm.
type Client struct {
	binary string
	dpi    int

	overlay bool
	timeout time.Duration

	logger *slog.Logger
}

func New(options ...Option) (*Client, error) {
	c := &Client{
		binary: "pdftoppm",
		dpi:    200,

		overlay: true,

		logger: slog.Default(),
	}

	for _, option := range options {
		option(c)
	}

	if c.binary == "" {
		return nil, errors.New("invalid binary")
	}

	if c.dpi <= 0 {
		return nil, errors.New("invalid dpi")
	}

	return c, nil
}

func (c *Client) Visualize(ctx context.Context, path string, page analyzer.Page, output string) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	prefix := strings.TrimSuffix(output, ".png")
	number := strconv.Itoa(page.Number)

	var stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, c.binary,
		"-png",
		"-r", strconv.Itoa(c.dpi),
		"-f", number,
		"-l", number,
		"-singlefile",
		path, prefix,
	)

	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("pdftoppm page %d: %w: %s", page.Number, err, msg)
		}

		return fmt.Errorf("pdftoppm page %d: %w", page.Number, err)
	}

	rendered := prefix + ".png"

	if rendered != output {
		if err := os.Rename(rendered, output); err != nil {
			return err
		}
	}

	if !c.overlay {
		return nil
	}

	return drawOverlay(output, page)
}

func drawOverlay(path string, page analyzer.Page) error {
	f, err := os.Open(path)

	if err != nil {
		return err
	}

	img, err := png.Decode(f)
	f.Close()

	if err != nil {
		return err
	}

	canvas := visualizer.Overlay(img, page)

	out, err := os.Create(path)

	if err != nil {
		return err
	}

	defer out.Close()

	if err := png.Encode(out, canvas); err != nil {
		return err
	}

	return out.Close()
}
