package analyzer

import (
	"context"
	"errors"

	"github.com/rahulkamble366/iso/pkg/provider"
)

type Provider interface {
	Analyze(ctx context.Context, file File, options *AnalyzeOptions) (*Result, error)
}

var (
	ErrUnsupported = errors.New("unsupported type")
)

type File = provider.File

type AnalyzeOptions struct {
	// Pages restricts analysis to the given 1-based page numbers when the
	// engine supports it.
	Pages []int
}

type Result struct {
	Pages []Page
}

type Category string

const (
	CategoryText   Category = "text"
	CategoryTitle  Category = "title"
	CategoryList   Category = "list"
	CategoryFigure Category = "figure"
)

// Categories lists every layout role an engine adapter may emit.
func Categories() []Category {
	return []Category{
		CategoryText,
		CategoryTitle,
		CategoryList,
		CategoryFigure,
	}
}

func (c Category) Valid() bool {
	switch c {
	case CategoryText, CategoryTitle, CategoryList, CategoryFigure:
		return true
	}

	return false
}

type Page struct {
	Number int

	Unit   string
	Width  float64
	Height float64

	Items  []Item
	Tables []Table
}

// Layouts returns the page's items of category c in engine order.
func (p Page) Layouts(c Category) []Item {
	var result []Item

	for _, item := range p.Items {
		if item.Category == c {
			result = append(result, item)
		}
	}

	return result
}

type Item struct {
	Category Category

	Text *string
	Box  *Box
}

// Box is [x0, y0, x1, y1] in page units.
type Box [4]float64

type Table struct {
	Box   *Box
	Cells []Cell
}

type Cell struct {
	Row    *int
	Column *int

	Text string
}

type AnalysisError struct {
	Provider string

	Err error
}

func (e *AnalysisError) Error() string {
	if e.Provider == "" {
		return "analysis failed: " + e.Err.Error()
	}

	return "analysis failed (" + e.Provider + "): " + e.Err.Error()
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// BoxFromPolygon reduces a flat [x1, y1, x2, y2, ...] polygon to its bounds.
func BoxFromPolygon(polygon []float64) *Box {
	if len(polygon) < 2 || len(polygon)%2 != 0 {
		return nil
	}

	box := Box{polygon[0], polygon[1], polygon[0], polygon[1]}

	for i := 2; i < len(polygon); i += 2 {
		x, y := polygon[i], polygon[i+1]

		box[0] = min(box[0], x)
		box[1] = min(box[1], y)
		box[2] = max(box[2], x)
		box[3] = max(box[3], y)
	}

	return &box
}
