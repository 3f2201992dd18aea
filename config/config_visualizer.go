package config

import (
	"errors"
	"strings"
	"time"

	"github.com/rahulkamble366/iso/pkg/visualizer/poppler"
)

type visualizerConfig struct {
	Type string `yaml:"type"`

	Binary string `yaml:"binary"`
	DPI    int    `yaml:"dpi" validate:"omitempty,min=36,max=1200"`

	Overlay *bool `yaml:"overlay"`

	Timeout time.Duration `yaml:"timeout" validate:"gte=0"`
}

func (c *Config) registerVisualizer(f *configFile) error {
	cfg := f.Visualizer

	if cfg == nil {
		return nil
	}

	if err := validate.Struct(cfg); err != nil {
		return err
	}

	switch strings.ToLower(cfg.Type) {
	case "", "poppler":
		var options []poppler.Option

		if cfg.Binary != "" {
			options = append(options, poppler.WithBinary(cfg.Binary))
		}

		if cfg.DPI > 0 {
			options = append(options, poppler.WithDPI(cfg.DPI))
		}

		if cfg.Overlay != nil {
			options = append(options, poppler.WithOverlay(*cfg.Overlay))
		}

		if cfg.Timeout > 0 {
			options = append(options, poppler.WithTimeout(cfg.Timeout))
		}

		v, err := poppler.New(options...)

		if err != nil {
			return err
		}

		c.Visualizer = v

		return nil

	case "none":
		return nil

	default:
		return errors.New("invalid visualizer type: " + cfg.Type)
	}
}
