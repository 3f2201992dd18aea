package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rahulkamble366/iso/pkg/analyzer"
	"github.com/rahulkamble366/iso/pkg/auth"
	"github.com/rahulkamble366/iso/pkg/cache"
	"github.com/rahulkamble366/iso/pkg/normalizer"
	"github.com/rahulkamble366/iso/pkg/pipeline"
	"github.com/rahulkamble366/iso/pkg/visualizer"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Address string

	Output  string
	WorkDir string

	// Retention is how long uploads stay in the working directory of the
	// server. Zero keeps them.
	Retention time.Duration

	Authorizers []auth.Provider

	Normalizer *normalizer.Normalizer
	Visualizer visualizer.Provider

	Cache *cache.Store

	analyzer  string
	analyzers map[string]analyzer.Provider

	order []string
}

var validate = validator.New()

func Parse(path string) (*Config, error) {
	file, err := parseFile(path)

	if err != nil {
		return nil, err
	}

	c := &Config{
		Address: ":8080",

		Output:  "output",
		WorkDir: "temp_processing",

		analyzer: file.Analyzer,
	}

	if file.Address != "" {
		c.Address = file.Address
	}

	if file.Output != "" {
		c.Output = file.Output
	}

	if file.WorkDir != "" {
		c.WorkDir = file.WorkDir
	}

	c.Retention = file.Retention

	if err := c.registerAuthorizer(file); err != nil {
		return nil, err
	}

	if err := c.registerConverters(file); err != nil {
		return nil, err
	}

	if err := c.registerCache(file); err != nil {
		return nil, err
	}

	if err := c.registerAnalyzers(file); err != nil {
		return nil, err
	}

	if err := c.registerVisualizer(file); err != nil {
		return nil, err
	}

	return c, nil
}

// Pipeline assembles a pipeline around the analyzer registered as id. An
// empty id selects the default analyzer.
func (c *Config) Pipeline(id string, options ...pipeline.Option) (*pipeline.Pipeline, error) {
	p, err := c.Analyzer(id)

	if err != nil {
		return nil, err
	}

	if id == "" {
		id = c.analyzer
	}

	opts := []pipeline.Option{
		pipeline.WithName(id),
	}

	if c.Visualizer != nil {
		opts = append(opts, pipeline.WithVisualizer(c.Visualizer))
	}

	return pipeline.New(c.Normalizer, p, append(opts, options...)...)
}

func (c *Config) Close() error {
	if c.Cache != nil {
		return c.Cache.Close()
	}

	return nil
}

type configFile struct {
	Address string `yaml:"address"`

	Output  string `yaml:"output"`
	WorkDir string `yaml:"workdir"`

	Retention time.Duration `yaml:"retention" validate:"gte=0"`

	Analyzer string `yaml:"analyzer"`

	Authorizers []authorizerConfig `yaml:"authorizers" validate:"dive"`

	Converters converterConfig `yaml:"converters"`

	Analyzers yaml.Node `yaml:"analyzers" validate:"-"`

	Visualizer *visualizerConfig `yaml:"visualizer"`

	Cache *cacheConfig `yaml:"cache"`
}

func parseFile(path string) (*configFile, error) {
	data, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	data = []byte(os.ExpandEnv(string(data)))

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if data, err = convertTOML(data); err != nil {
			return nil, err
		}
	}

	var config configFile

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&config); err != nil {
		return nil, err
	}

	if err := validate.Struct(config); err != nil {
		return nil, err
	}

	return &config, nil
}

// convertTOML re-encodes a TOML document as YAML. Table order is not
// preserved, so TOML files should name the default analyzer explicitly.
func convertTOML(data []byte) ([]byte, error) {
	var values map[string]any

	if err := toml.Unmarshal(data, &values); err != nil {
		return nil, err
	}

	if len(values) == 0 {
		return nil, errors.New("empty config")
	}

	return yaml.Marshal(values)
}

func createLimiter(limit *int) *rate.Limiter {
	if limit == nil {
		return nil
	}

	return rate.NewLimiter(rate.Limit(*limit), *limit)
}
