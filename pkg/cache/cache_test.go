package cache_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rahulkamble366/iso/pkg/analyzer"
	"github.com/rahulkamble366/iso/pkg/cache"

	"github.com/stretchr/testify/require"
)

type countingAnalyzer struct {
	calls int
	err   error
}

func (a *countingAnalyzer) Analyze(ctx context.Context, file analyzer.File, options *analyzer.AnalyzeOptions) (*analyzer.Result, error) {
	a.calls++

	if a.err != nil {
		return nil, a.err
	}

	text := "Hello"
	row, col := 0, 0

	return &analyzer.Result{
		Pages: []analyzer.Page{
			{
				Number: 1,
				Items: []analyzer.Item{
					{Category: analyzer.CategoryText, Text: &text, Box: &analyzer.Box{1, 2, 3, 4}},
				},
				Tables: []analyzer.Table{
					{Cells: []analyzer.Cell{{Row: &row, Column: &col, Text: "A"}}},
				},
			},
		},
	}, nil
}

func openStore(t *testing.T) *cache.Store {
	store, err := cache.Open(t.TempDir(), 0)
	require.NoError(t, err)

	t.Cleanup(func() { store.Close() })

	return store
}

func TestAnalyzer(t *testing.T) {
	store := openStore(t)

	p := &countingAnalyzer{}
	a := cache.NewAnalyzer(store, "azure", p)

	file := analyzer.File{Name: "a.pdf", Content: []byte("%PDF-1.7 one")}

	first, err := a.Analyze(context.Background(), file, nil)
	require.NoError(t, err)

	second, err := a.Analyze(context.Background(), file, nil)
	require.NoError(t, err)

	require.Equal(t, 1, p.calls)
	require.Equal(t, first, second)
	require.Equal(t, 0, *second.Pages[0].Tables[0].Cells[0].Row)

	_, err = a.Analyze(context.Background(), analyzer.File{Name: "a.pdf", Content: []byte("%PDF-1.7 two")}, nil)
	require.NoError(t, err)
	require.Equal(t, 2, p.calls)
}

func TestAnalyzerError(t *testing.T) {
	store := openStore(t)

	p := &countingAnalyzer{err: errors.New("timeout")}
	a := cache.NewAnalyzer(store, "azure", p)

	file := analyzer.File{Name: "a.pdf", Content: []byte("%PDF")}

	for range 2 {
		_, err := a.Analyze(context.Background(), file, nil)
		require.Error(t, err)
	}

	require.Equal(t, 2, p.calls)
}

func TestKey(t *testing.T) {
	file := analyzer.File{Content: []byte("%PDF")}

	require.Equal(t, cache.Key("azure", file, nil), cache.Key("azure", file, &analyzer.AnalyzeOptions{}))
	require.NotEqual(t, cache.Key("azure", file, nil), cache.Key("docling", file, nil))
	require.NotEqual(t, cache.Key("azure", file, nil), cache.Key("azure", file, &analyzer.AnalyzeOptions{Pages: []int{1}}))
}

func TestOpen(t *testing.T) {
	_, err := cache.Open("", 0)
	require.Error(t, err)
}
