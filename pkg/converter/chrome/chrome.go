package chrome

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/rahulkamble366/iso/pkg/converter"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

var _ converter.Provider = &Converter{}

// Converter prints local HTML files to PDF with a headless browser.
// Every call starts its own browser and tears it down before returning.
type Converter struct {
	execPath string

	headless  bool
	noSandbox bool

	timeout time.Duration

	logger *slog.Logger
}

func New(options ...Option) (*Converter, error) {
	c := &Converter{
		headless: true,

		timeout: 60 * time.Second,

		logger: slog.Default(),
	}

	for _, option := range options {
		option(c)
	}

	return c, nil
}

func (c *Converter) Convert(ctx context.Context, input string, dir string) (string, error) {
	path := converter.OutputPath(input, dir)

	data, err := c.Print(ctx, input)

	if err != nil {
		return "", &converter.ConversionError{
			Format: converter.FormatHTML,
			Path:   input,

			Err: err,
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}

	return path, nil
}

// Print loads input as a file:// resource and returns the rendered PDF bytes.
func (c *Converter) Print(ctx context.Context, input string) ([]byte, error) {
	abs, err := filepath.Abs(input)

	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(abs); err != nil {
		return nil, err
	}

	target := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(abs),
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", c.headless),
		chromedp.Flag("no-sandbox", c.noSandbox),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)

	if c.execPath != "" {
		opts = append(opts, chromedp.ExecPath(c.execPath))
	}

	allocatorCtx, allocatorCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocatorCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocatorCtx)
	defer browserCancel()

	if c.timeout > 0 {
		var cancel context.CancelFunc

		browserCtx, cancel = context.WithTimeout(browserCtx, c.timeout)
		defer cancel()
	}

	c.logger.Debug("printing html to pdf", "url", target.String())

	var result []byte

	tasks := chromedp.Tasks{
		chromedp.Navigate(target.String()),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				Do(ctx)

			if err != nil {
				return err
			}

			result = data
			return nil
		}),
	}

	if err := chromedp.Run(browserCtx, tasks); err != nil {
		return nil, fmt.Errorf("render %s: %w", target.String(), err)
	}

	return result, nil
}
