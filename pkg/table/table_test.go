package table_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/rahulkamble366/iso/pkg/analyzer"
	"github.com/rahulkamble366/iso/pkg/table"

	"github.com/stretchr/testify/require"
)

func cell(row, col int, text string) analyzer.Cell {
	return analyzer.Cell{Row: &row, Column: &col, Text: text}
}

func TestGridRoundTrip(t *testing.T) {
	cells := []analyzer.Cell{
		cell(0, 0, "A"),
		cell(0, 1, "B"),
		cell(1, 0, "C"),
		cell(1, 1, "D"),
	}

	g, err := table.New(cells)
	require.NoError(t, err)

	require.Equal(t, [][]string{{"A", "B"}, {"C", "D"}}, g.Rows())

	html := g.HTML()

	require.Equal(t, 2, strings.Count(html, "<tr>"))
	require.Equal(t, 4, strings.Count(html, "<td>"))

	a := strings.Index(html, "<td>A</td>")
	b := strings.Index(html, "<td>B</td>")
	c := strings.Index(html, "<td>C</td>")
	d := strings.Index(html, "<td>D</td>")

	require.True(t, a >= 0 && a < b && b < c && c < d)
}

func TestGridGapRow(t *testing.T) {
	cells := []analyzer.Cell{
		cell(2, 1, "f"),
		cell(0, 0, "a"),
		cell(2, 0, "e"),
		cell(0, 1, "b"),
	}

	g, err := table.New(cells)
	require.NoError(t, err)

	require.Len(t, g.Cells, 3)
	require.Equal(t, [][]string{{"a", "b"}, {"e", "f"}}, g.Rows())

	html := g.HTML()

	require.Equal(t, 3, strings.Count(html, "<tr>"))
	require.Contains(t, html, "<tr>\n    <td></td>\n    <td></td>\n  </tr>")
	require.Less(t, strings.Index(html, "<td>a</td>"), strings.Index(html, "<td>b</td>"))
	require.Less(t, strings.Index(html, "<td>b</td>"), strings.Index(html, "<td>e</td>"))
	require.Less(t, strings.Index(html, "<td>e</td>"), strings.Index(html, "<td>f</td>"))
}

func TestGridMissingCells(t *testing.T) {
	g, err := table.New([]analyzer.Cell{
		cell(0, 2, "z"),
		cell(1, 0, "x"),
	})

	require.NoError(t, err)
	require.Equal(t, [][]string{{"", "", "z"}, {"x", "", ""}}, g.Cells)
}

func TestGridLastWriteWins(t *testing.T) {
	g, err := table.New([]analyzer.Cell{
		cell(0, 0, "X"),
		cell(0, 0, "Y"),
	})

	require.NoError(t, err)
	require.Equal(t, "Y", g.Cells[0][0])
	require.Equal(t, 1, g.Overwrites)
}

func TestGridCleansText(t *testing.T) {
	g, err := table.New([]analyzer.Cell{
		cell(0, 0, "  multi\nline\r\ntext  "),
		cell(0, 1, "<b>&</b>"),
	})

	require.NoError(t, err)
	require.Equal(t, "multi line text", g.Cells[0][0])
	require.Contains(t, g.HTML(), "<td>&lt;b&gt;&amp;&lt;/b&gt;</td>")
}

func TestGridEmpty(t *testing.T) {
	g, err := table.New(nil)
	require.NoError(t, err)

	require.Empty(t, g.Cells)
	require.NotNil(t, g.Rows())
	require.Empty(t, g.Rows())
	require.NotContains(t, g.HTML(), "<tr>")
}

func TestGridBlankRowsDropped(t *testing.T) {
	g, err := table.New([]analyzer.Cell{
		cell(0, 0, "h"),
		cell(1, 0, "   "),
		cell(2, 0, "v"),
	})

	require.NoError(t, err)
	require.Equal(t, [][]string{{"h"}, {"v"}}, g.Rows())
}

func TestGridMalformed(t *testing.T) {
	row := 1

	_, err := table.New([]analyzer.Cell{
		cell(0, 0, "ok"),
		{Row: &row, Text: "no column"},
	})

	var malformed *table.MalformedCellError
	require.True(t, errors.As(err, &malformed))
	require.Equal(t, 1, malformed.Cell)
	require.Equal(t, "column", malformed.Attribute)
	require.Contains(t, err.Error(), "column")

	_, err = table.New([]analyzer.Cell{{Text: "no row"}})
	require.True(t, errors.As(err, &malformed))
	require.Equal(t, "row", malformed.Attribute)
}

func TestGridOutOfRange(t *testing.T) {
	_, err := table.New([]analyzer.Cell{cell(-1, 0, "neg")})

	var malformed *table.MalformedCellError
	require.True(t, errors.As(err, &malformed))
	require.Equal(t, "row", malformed.Attribute)

	_, err = table.New([]analyzer.Cell{cell(0, table.MaxCells, "huge")})
	require.True(t, errors.As(err, &malformed))
	require.Equal(t, "column", malformed.Attribute)

	_, err = table.New([]analyzer.Cell{cell(0, 0, "a"), cell(1<<12, 1<<12, "wide")})
	require.True(t, errors.As(err, &malformed))
	require.Equal(t, 1, malformed.Cell)
}

func TestGridLargeTable(t *testing.T) {
	var cells []analyzer.Cell

	for r := 0; r < 1100; r++ {
		for c := 0; c < 3; c++ {
			cells = append(cells, cell(r, c, "v"))
		}
	}

	g, err := table.New(cells)
	require.NoError(t, err)
	require.Len(t, g.Cells, 1100)
	require.Len(t, g.Cells[1099], 3)
	require.Len(t, g.Rows(), 1100)
}

func TestToGridAndHTML(t *testing.T) {
	cells := []analyzer.Cell{cell(0, 0, "A"), cell(0, 1, "B")}

	rows, err := table.ToGrid(cells)
	require.NoError(t, err)
	require.Equal(t, [][]string{{"A", "B"}}, rows)

	html, err := table.ToHTML(cells)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(html, "<table"))
}
