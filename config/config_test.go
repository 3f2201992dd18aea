package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rahulkamble366/iso/config"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	return path
}

func TestParse(t *testing.T) {
	t.Setenv("AZURE_KEY", "secret")

	path := writeConfig(t, "iso.yaml", `
address: ":9090"
output: results
workdir: /tmp/iso-work
retention: 1h

authorizers:
  - type: static
    token: abc

converters:
  office:
    binary: libreoffice
    timeout: 2m
  browser:
    no_sandbox: true
  limit: 2

analyzers:
  layout:
    type: azure
    url: https://example.cognitiveservices.azure.com
    token: ${AZURE_KEY}
    poll: 2s
    limit: 5
  docling:
    type: docling
    url: http://localhost:5001

visualizer:
  type: poppler
  dpi: 150
`)

	cfg, err := config.Parse(path)
	require.NoError(t, err)
	defer cfg.Close()

	require.Equal(t, ":9090", cfg.Address)
	require.Equal(t, "results", cfg.Output)
	require.Equal(t, "/tmp/iso-work", cfg.WorkDir)
	require.Equal(t, "/tmp/iso-work", cfg.Normalizer.Dir())
	require.Equal(t, "1h0m0s", cfg.Retention.String())
	require.Len(t, cfg.Authorizers, 1)
	require.NotNil(t, cfg.Visualizer)
	require.Equal(t, []string{"layout", "docling"}, cfg.Analyzers())

	def, err := cfg.Analyzer("")
	require.NoError(t, err)

	layout, err := cfg.Analyzer("layout")
	require.NoError(t, err)
	require.Same(t, layout, def)

	_, err = cfg.Analyzer("missing")
	require.EqualError(t, err, "analyzer not found: missing")

	p, err := cfg.Pipeline("docling")
	require.NoError(t, err)
	require.NotNil(t, p)
}

func TestParseDefaults(t *testing.T) {
	path := writeConfig(t, "iso.yaml", `
analyzers:
  docling:
    type: docling
    url: http://localhost:5001
`)

	cfg, err := config.Parse(path)
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.Address)
	require.Equal(t, "output", cfg.Output)
	require.Equal(t, "temp_processing", cfg.WorkDir)
	require.Nil(t, cfg.Visualizer)
	require.Empty(t, cfg.Authorizers)
}

func TestParseDefaultAnalyzer(t *testing.T) {
	path := writeConfig(t, "iso.yaml", `
analyzer: second

analyzers:
  first:
    type: docling
    url: http://localhost:5001
  second:
    type: docling
    url: http://localhost:5002
`)

	cfg, err := config.Parse(path)
	require.NoError(t, err)

	def, err := cfg.Analyzer("")
	require.NoError(t, err)

	second, err := cfg.Analyzer("second")
	require.NoError(t, err)
	require.Same(t, second, def)
}

func TestParseTOML(t *testing.T) {
	path := writeConfig(t, "iso.toml", `
address = ":7070"
analyzer = "docling"

[analyzers.docling]
type = "docling"
url = "http://localhost:5001"
poll = "1s"

[visualizer]
type = "none"
`)

	cfg, err := config.Parse(path)
	require.NoError(t, err)

	require.Equal(t, ":7070", cfg.Address)
	require.Nil(t, cfg.Visualizer)

	_, err = cfg.Analyzer("")
	require.NoError(t, err)
}

func TestParseCache(t *testing.T) {
	dir := t.TempDir()

	path := writeConfig(t, "iso.yaml", `
cache:
  path: `+filepath.Join(dir, "cache")+`
  ttl: 24h

analyzers:
  docling:
    type: docling
    url: http://localhost:5001
`)

	cfg, err := config.Parse(path)
	require.NoError(t, err)

	require.NotNil(t, cfg.Cache)
	require.NoError(t, cfg.Close())
}

func TestParseInvalid(t *testing.T) {
	tests := map[string]string{
		"unknown field": `
analyzers:
  a:
    type: docling
    url: http://localhost:5001
colour: blue
`,
		"missing url": `
analyzers:
  a:
    type: docling
`,
		"invalid url": `
analyzers:
  a:
    type: docling
    url: not a url
`,
		"invalid type": `
analyzers:
  a:
    type: tesseract
    url: http://localhost:5001
`,
		"invalid limit": `
analyzers:
  a:
    type: docling
    url: http://localhost:5001
    limit: 0
`,
		"no analyzers": `
address: ":8080"
`,
		"unknown default": `
analyzer: b
analyzers:
  a:
    type: docling
    url: http://localhost:5001
`,
		"invalid authorizer": `
authorizers:
  - type: magic
analyzers:
  a:
    type: docling
    url: http://localhost:5001
`,
		"invalid dpi": `
visualizer:
  dpi: 5
analyzers:
  a:
    type: docling
    url: http://localhost:5001
`,
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := writeConfig(t, "iso.yaml", content)

			_, err := config.Parse(path)
			require.Error(t, err)
		})
	}
}

func TestParseMissingFile(t *testing.T) {
	_, err := config.Parse(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
