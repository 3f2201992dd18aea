package config

import (
	"log/slog"
	"time"

	"github.com/rahulkamble366/iso/pkg/converter"
	"github.com/rahulkamble366/iso/pkg/converter/chrome"
	"github.com/rahulkamble366/iso/pkg/converter/image"
	"github.com/rahulkamble366/iso/pkg/converter/markdown"
	"github.com/rahulkamble366/iso/pkg/converter/office"
	"github.com/rahulkamble366/iso/pkg/converter/text"
	"github.com/rahulkamble366/iso/pkg/limiter"
	"github.com/rahulkamble366/iso/pkg/normalizer"
	"github.com/rahulkamble366/iso/pkg/otel"

	"golang.org/x/time/rate"
)

type converterConfig struct {
	Office  officeConfig  `yaml:"office"`
	Browser browserConfig `yaml:"browser"`
	Text    textConfig    `yaml:"text"`

	// Limit caps conversions per second across external converter processes.
	Limit *int `yaml:"limit" validate:"omitempty,gt=0"`

	Validate *bool `yaml:"validate"`
}

type officeConfig struct {
	Binary  string        `yaml:"binary"`
	Timeout time.Duration `yaml:"timeout" validate:"gte=0"`
}

type browserConfig struct {
	Path string `yaml:"path"`

	NoSandbox bool `yaml:"no_sandbox"`

	Timeout time.Duration `yaml:"timeout" validate:"gte=0"`
}

type textConfig struct {
	Font string  `yaml:"font"`
	Size float64 `yaml:"size" validate:"gte=0"`
}

func (c *Config) registerConverters(f *configFile) error {
	cfg := f.Converters

	logger := slog.Default()
	limit := createLimiter(cfg.Limit)

	var officeOptions []office.Option

	if cfg.Office.Binary != "" {
		officeOptions = append(officeOptions, office.WithBinary(cfg.Office.Binary))
	}

	if cfg.Office.Timeout > 0 {
		officeOptions = append(officeOptions, office.WithTimeout(cfg.Office.Timeout))
	}

	officeConverter, err := office.New(append(officeOptions, office.WithLogger(logger))...)

	if err != nil {
		return err
	}

	var chromeOptions []chrome.Option

	if cfg.Browser.Path != "" {
		chromeOptions = append(chromeOptions, chrome.WithExecPath(cfg.Browser.Path))
	}

	if cfg.Browser.NoSandbox {
		chromeOptions = append(chromeOptions, chrome.WithNoSandbox(true))
	}

	if cfg.Browser.Timeout > 0 {
		chromeOptions = append(chromeOptions, chrome.WithTimeout(cfg.Browser.Timeout))
	}

	chromeConverter, err := chrome.New(append(chromeOptions, chrome.WithLogger(logger))...)

	if err != nil {
		return err
	}

	var textOptions []text.Option

	if cfg.Text.Font != "" || cfg.Text.Size > 0 {
		size := cfg.Text.Size

		if size == 0 {
			size = 12
		}

		font := cfg.Text.Font

		if font == "" {
			font = "Arial"
		}

		textOptions = append(textOptions, text.WithFont(font, size))
	}

	textConverter, err := text.New(textOptions...)

	if err != nil {
		return err
	}

	imageConverter, err := image.New()

	if err != nil {
		return err
	}

	html := wrapConverter(converter.FormatHTML, limit, chromeConverter)

	markdownConverter, err := markdown.New(html)

	if err != nil {
		return err
	}

	options := []normalizer.Option{
		normalizer.WithLogger(logger),

		normalizer.WithConverter(converter.FormatOffice, wrapConverter(converter.FormatOffice, limit, officeConverter)),
		normalizer.WithConverter(converter.FormatHTML, html),
		normalizer.WithConverter(converter.FormatImage, otel.NewConverter(converter.FormatImage, imageConverter)),
		normalizer.WithConverter(converter.FormatText, otel.NewConverter(converter.FormatText, textConverter)),
		normalizer.WithConverter(converter.FormatMarkdown, otel.NewConverter(converter.FormatMarkdown, markdownConverter)),
	}

	if cfg.Validate != nil {
		options = append(options, normalizer.WithValidation(*cfg.Validate))
	}

	n, err := normalizer.New(c.WorkDir, options...)

	if err != nil {
		return err
	}

	c.Normalizer = n

	return nil
}

// wrapConverter throttles and traces converters that start external processes.
func wrapConverter(format converter.Format, l *rate.Limiter, p converter.Provider) converter.Provider {
	return otel.NewConverter(format, limiter.NewConverter(l, p))
}
