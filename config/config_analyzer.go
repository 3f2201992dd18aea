package config

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rahulkamble366/iso/pkg/analyzer"
	"github.com/rahulkamble366/iso/pkg/analyzer/azure"
	"github.com/rahulkamble366/iso/pkg/analyzer/docling"
	"github.com/rahulkamble366/iso/pkg/cache"
	"github.com/rahulkamble366/iso/pkg/limiter"
	"github.com/rahulkamble366/iso/pkg/otel"

	"gopkg.in/yaml.v3"
)

func (c *Config) RegisterAnalyzer(id string, p analyzer.Provider) {
	if c.analyzers == nil {
		c.analyzers = make(map[string]analyzer.Provider)
	}

	if c.analyzer == "" {
		c.analyzer = id
	}

	if _, ok := c.analyzers[id]; !ok {
		c.order = append(c.order, id)
	}

	c.analyzers[id] = p
}

func (c *Config) Analyzer(id string) (analyzer.Provider, error) {
	if id == "" {
		id = c.analyzer
	}

	if c.analyzers != nil {
		if p, ok := c.analyzers[id]; ok {
			return p, nil
		}
	}

	return nil, errors.New("analyzer not found: " + id)
}

// Analyzers returns the registered analyzer ids in configuration order.
func (c *Config) Analyzers() []string {
	return c.order
}

type analyzerConfig struct {
	Type string `yaml:"type" validate:"required"`

	URL   string `yaml:"url" validate:"required,url"`
	Token string `yaml:"token"`

	Model string `yaml:"model"`

	Poll    time.Duration `yaml:"poll" validate:"gte=0"`
	Timeout time.Duration `yaml:"timeout" validate:"gte=0"`

	Limit *int `yaml:"limit" validate:"omitempty,gt=0"`
}

func (c *Config) registerAnalyzers(f *configFile) error {
	if f.Analyzers.Kind != yaml.MappingNode {
		return errors.New("no analyzers configured")
	}

	var configs map[string]analyzerConfig

	if err := f.Analyzers.Decode(&configs); err != nil {
		return err
	}

	for _, node := range f.Analyzers.Content {
		id := node.Value

		config, ok := configs[id]

		if !ok {
			continue
		}

		if err := validate.Struct(config); err != nil {
			return errors.New("analyzer " + id + ": " + err.Error())
		}

		p, err := createAnalyzer(config)

		if err != nil {
			return err
		}

		p = limiter.NewAnalyzer(createLimiter(config.Limit), p)

		if c.Cache != nil {
			p = cache.NewAnalyzer(c.Cache, id, p)
		}

		p = otel.NewAnalyzer(id, p)

		c.RegisterAnalyzer(id, p)
	}

	if len(c.analyzers) == 0 {
		return errors.New("no analyzers configured")
	}

	if _, ok := c.analyzers[c.analyzer]; !ok {
		return errors.New("analyzer not found: " + c.analyzer)
	}

	return nil
}

func createAnalyzer(cfg analyzerConfig) (analyzer.Provider, error) {
	switch strings.ToLower(cfg.Type) {
	case "azure":
		return azureAnalyzer(cfg)

	case "docling":
		return doclingAnalyzer(cfg)

	default:
		return nil, errors.New("invalid analyzer type: " + cfg.Type)
	}
}

func azureAnalyzer(cfg analyzerConfig) (analyzer.Provider, error) {
	var options []azure.Option

	if cfg.Token != "" {
		options = append(options, azure.WithToken(cfg.Token))
	}

	if cfg.Model != "" {
		options = append(options, azure.WithModel(cfg.Model))
	}

	if cfg.Poll > 0 {
		options = append(options, azure.WithPollInterval(cfg.Poll))
	}

	if cfg.Timeout > 0 {
		options = append(options, azure.WithClient(&http.Client{Timeout: cfg.Timeout}))
	}

	return azure.New(cfg.URL, options...)
}

func doclingAnalyzer(cfg analyzerConfig) (analyzer.Provider, error) {
	var options []docling.Option

	if cfg.Token != "" {
		options = append(options, docling.WithToken(cfg.Token))
	}

	if cfg.Poll > 0 {
		options = append(options, docling.WithPollInterval(cfg.Poll))
	}

	if cfg.Timeout > 0 {
		options = append(options, docling.WithClient(&http.Client{Timeout: cfg.Timeout}))
	}

	return docling.New(cfg.URL, options...)
}
