package office

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/rahulkamble366/iso/pkg/converter"
)

var _ converter.Provider = &Converter{}

// Converter drives a headless LibreOffice process.
type Converter struct {
	binary  string
	timeout time.Duration

	logger *slog.Logger
}

func New(options ...Option) (*Converter, error) {
	c := &Converter{
		binary: "soffice",

		logger: slog.Default(),
	}

	for _, option := range options {
		option(c)
	}

	if c.binary == "" {
		return nil, errors.New("invalid binary")
	}

	return c, nil
}

func (c *Converter) Convert(ctx context.Context, input string, dir string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	// soffice locks its user profile, so concurrent calls each get their own
	profile, err := os.MkdirTemp("", "iso-office-*")

	if err != nil {
		return "", err
	}

	defer os.RemoveAll(profile)

	var output bytes.Buffer

	cmd := exec.CommandContext(ctx, c.binary,
		"-env:UserInstallation="+profileURL(profile),
		"--headless",
		"--convert-to", "pdf",
		"--outdir", dir,
		input,
	)
	cmd.Stdout = &output
	cmd.Stderr = &output

	c.logger.Debug("running office conversion", "binary", c.binary, "input", input, "dir", dir, "profile", profile)

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(output.String()); msg != "" {
			err = fmt.Errorf("%w: %s", err, msg)
		}

		return "", &converter.ConversionError{
			Format: converter.FormatOffice,
			Path:   input,

			Err: err,
		}
	}

	path := converter.OutputPath(input, dir)

	if _, err := os.Stat(path); err != nil {
		return "", &converter.ConversionError{
			Format: converter.FormatOffice,
			Path:   input,

			Err: fmt.Errorf("no output produced: %w", err),
		}
	}

	return path, nil
}

func profileURL(dir string) string {
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(dir),
	}

	return u.String()
}
