package table

import (
	"fmt"
	"html"
	"strings"

	"github.com/rahulkamble366/iso/pkg/analyzer"
)

// MaxCells bounds the dense grid allocated for one table. A table whose
// coordinates span more cells is reported as malformed.
const MaxCells = 1 << 22

// Grid is the dense reconstruction of a table's sparse cell list.
type Grid struct {
	Cells [][]string

	// Overwrites counts cells that replaced text already written to the
	// same coordinate. Later cells in engine order win.
	Overwrites int
}

type MalformedCellError struct {
	Cell      int
	Attribute string

	Reason string
}

func (e *MalformedCellError) Error() string {
	reason := e.Reason

	if reason == "" {
		reason = "missing"
	}

	return fmt.Sprintf("malformed table cell %d: %s %s", e.Cell, e.Attribute, reason)
}

func New(cells []analyzer.Cell) (*Grid, error) {
	rows, cols := -1, -1
	rowCell, colCell := 0, 0

	for i, cell := range cells {
		if err := checkIndex(i, "row", cell.Row); err != nil {
			return nil, err
		}

		if err := checkIndex(i, "column", cell.Column); err != nil {
			return nil, err
		}

		if *cell.Row > rows {
			rows, rowCell = *cell.Row, i
		}

		if *cell.Column > cols {
			cols, colCell = *cell.Column, i
		}
	}

	if err := checkSize(rows+1, cols+1, rowCell, colCell); err != nil {
		return nil, err
	}

	g := &Grid{
		Cells: make([][]string, rows+1),
	}

	for r := range g.Cells {
		g.Cells[r] = make([]string, cols+1)
	}

	written := make(map[[2]int]bool, len(cells))

	for _, cell := range cells {
		pos := [2]int{*cell.Row, *cell.Column}

		if written[pos] {
			g.Overwrites++
		}

		written[pos] = true

		g.Cells[pos[0]][pos[1]] = cleanText(cell.Text)
	}

	return g, nil
}

// Rows returns the grid in allocation order without rows whose cells are all empty.
func (g *Grid) Rows() [][]string {
	result := [][]string{}

	for _, row := range g.Cells {
		if isBlank(row) {
			continue
		}

		result = append(result, row)
	}

	return result
}

// HTML renders every row and column index in ascending order. Spanning
// source cells are not merged.
func (g *Grid) HTML() string {
	var b strings.Builder

	b.WriteString("<table border='1' cellspacing='0' cellpadding='5' style='border-collapse: collapse; margin-bottom: 20px;'>\n")

	for _, row := range g.Cells {
		b.WriteString("  <tr>\n")

		for _, text := range row {
			b.WriteString("    <td>")
			b.WriteString(html.EscapeString(text))
			b.WriteString("</td>\n")
		}

		b.WriteString("  </tr>\n")
	}

	b.WriteString("</table>\n")

	return b.String()
}

func ToGrid(cells []analyzer.Cell) ([][]string, error) {
	g, err := New(cells)

	if err != nil {
		return nil, err
	}

	return g.Rows(), nil
}

func ToHTML(cells []analyzer.Cell) (string, error) {
	g, err := New(cells)

	if err != nil {
		return "", err
	}

	return g.HTML(), nil
}

func checkIndex(cell int, attribute string, val *int) error {
	if val == nil {
		return &MalformedCellError{Cell: cell, Attribute: attribute}
	}

	if *val < 0 {
		return &MalformedCellError{Cell: cell, Attribute: attribute, Reason: fmt.Sprintf("negative (%d)", *val)}
	}

	return nil
}

// checkSize rejects grids above MaxCells before anything is allocated.
// Each axis is checked on its own so the product cannot overflow.
func checkSize(rows, cols, rowCell, colCell int) error {
	if rows <= 0 || cols <= 0 {
		return nil
	}

	if rows > MaxCells {
		return &MalformedCellError{Cell: rowCell, Attribute: "row", Reason: fmt.Sprintf("out of range (%d)", rows-1)}
	}

	if cols > MaxCells/rows {
		return &MalformedCellError{Cell: colCell, Attribute: "column", Reason: fmt.Sprintf("out of range (%d rows x %d columns)", rows, cols)}
	}

	return nil
}

func cleanText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", " ")
	text = strings.ReplaceAll(text, "\n", " ")

	return strings.TrimSpace(text)
}

func isBlank(row []string) bool {
	for _, text := range row {
		if text != "" {
			return false
		}
	}

	return true
}
