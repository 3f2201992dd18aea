package page

import (
	"fmt"
	"strings"

	"github.com/rahulkamble366/iso/pkg/analyzer"
	"github.com/rahulkamble366/iso/pkg/table"
)

type Record struct {
	PageNumber int `json:"page_number"`

	Texts   []Entry       `json:"texts"`
	Tables  []TableEntry  `json:"tables"`
	Titles  []Entry       `json:"titles"`
	Lists   []Entry       `json:"lists"`
	Figures []FigureEntry `json:"figures"`
}

type Entry struct {
	Text string        `json:"text"`
	BBox *analyzer.Box `json:"bbox"`
}

type TableEntry struct {
	TableIndex int           `json:"table_index"`
	Rows       [][]string    `json:"rows"`
	BBox       *analyzer.Box `json:"bbox"`
}

type FigureEntry struct {
	FigureIndex int           `json:"figure_index"`
	BBox        *analyzer.Box `json:"bbox"`
}

// Fragment is one table's HTML with its page/index heading.
type Fragment struct {
	Page  int
	Index int

	HTML string

	// Overwrites is the number of duplicate cell coordinates resolved by
	// keeping the later cell.
	Overwrites int
}

func Structure(p analyzer.Page) (*Record, []Fragment, error) {
	r := &Record{
		PageNumber: p.Number,

		Texts:   []Entry{},
		Tables:  []TableEntry{},
		Titles:  []Entry{},
		Lists:   []Entry{},
		Figures: []FigureEntry{},
	}

	for _, c := range analyzer.Categories() {
		switch c {
		case analyzer.CategoryText:
			r.Texts = entries(p.Layouts(c))

		case analyzer.CategoryTitle:
			r.Titles = entries(p.Layouts(c))

		case analyzer.CategoryList:
			r.Lists = entries(p.Layouts(c))

		case analyzer.CategoryFigure:
			r.Figures = figures(p.Layouts(c))
		}
	}

	fragments := []Fragment{}

	for i, t := range p.Tables {
		index := i + 1

		g, err := table.New(t.Cells)

		if err != nil {
			return nil, nil, fmt.Errorf("page %d table %d: %w", p.Number, index, err)
		}

		r.Tables = append(r.Tables, TableEntry{
			TableIndex: index,
			Rows:       g.Rows(),
			BBox:       t.Box,
		})

		fragments = append(fragments, Fragment{
			Page:  p.Number,
			Index: index,

			HTML: fmt.Sprintf("<h3>Page %d - Table %d</h3>", p.Number, index) + g.HTML(),

			Overwrites: g.Overwrites,
		})
	}

	return r, fragments, nil
}

func entries(items []analyzer.Item) []Entry {
	result := []Entry{}

	for _, item := range items {
		var text string

		if item.Text != nil {
			text = strings.TrimSpace(*item.Text)
		}

		result = append(result, Entry{
			Text: text,
			BBox: item.Box,
		})
	}

	return result
}

func figures(items []analyzer.Item) []FigureEntry {
	result := []FigureEntry{}

	for i, item := range items {
		result = append(result, FigureEntry{
			FigureIndex: i + 1,
			BBox:        item.Box,
		})
	}

	return result
}
