package azure

type OperationStatus string

const (
	OperationStatusSucceeded  OperationStatus = "succeeded"
	OperationStatusRunning    OperationStatus = "running"
	OperationStatusNotStarted OperationStatus = "notStarted"
	OperationStatusFailed     OperationStatus = "failed"
)

type AnalyzeOperation struct {
	Status OperationStatus `json:"status"`

	Error *OperationError `json:"error,omitempty"`

	Result AnalyzeResult `json:"analyzeResult"`
}

type OperationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type AnalyzeResult struct {
	ModelID string `json:"modelId"`

	Content string `json:"content"`

	Pages      []Page      `json:"pages"`
	Paragraphs []Paragraph `json:"paragraphs"`
	Tables     []Table     `json:"tables"`
	Figures    []Figure    `json:"figures"`
}

type Page struct {
	PageNumber int `json:"pageNumber"`

	Unit   string  `json:"unit"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	Spans []Span `json:"spans"`
}

type ParagraphRole string

const (
	ParagraphRoleTitle          ParagraphRole = "title"
	ParagraphRoleSectionHeading ParagraphRole = "sectionHeading"
	ParagraphRolePageHeader     ParagraphRole = "pageHeader"
	ParagraphRolePageFooter     ParagraphRole = "pageFooter"
	ParagraphRolePageNumber     ParagraphRole = "pageNumber"
	ParagraphRoleFootnote       ParagraphRole = "footnote"
)

type Paragraph struct {
	Role    ParagraphRole `json:"role"`
	Content string        `json:"content"`

	Spans           []Span           `json:"spans"`
	BoundingRegions []BoundingRegion `json:"boundingRegions"`
}

type Table struct {
	RowCount    int `json:"rowCount"`
	ColumnCount int `json:"columnCount"`

	Cells []TableCell `json:"cells"`

	Spans           []Span           `json:"spans"`
	BoundingRegions []BoundingRegion `json:"boundingRegions"`
}

type TableCell struct {
	Kind string `json:"kind"`

	RowIndex    *int `json:"rowIndex"`
	ColumnIndex *int `json:"columnIndex"`

	RowSpan    int `json:"rowSpan"`
	ColumnSpan int `json:"columnSpan"`

	Content string `json:"content"`

	Spans           []Span           `json:"spans"`
	BoundingRegions []BoundingRegion `json:"boundingRegions"`
}

type Figure struct {
	ID string `json:"id"`

	Spans           []Span           `json:"spans"`
	BoundingRegions []BoundingRegion `json:"boundingRegions"`
}

type BoundingRegion struct {
	PageNumber int       `json:"pageNumber"`
	Polygon    []float64 `json:"polygon"`
}

type Span struct {
	Offset int `json:"offset"`
	Length int `json:"length"`
}

func (s Span) contains(o Span) bool {
	return o.Offset >= s.Offset && o.Offset+o.Length <= s.Offset+s.Length
}
