package docling

type TaskStatus string

const (
	TaskStatusPending TaskStatus = "pending"
	TaskStatusStarted TaskStatus = "started"
	TaskStatusSuccess TaskStatus = "success"
	TaskStatusFailure TaskStatus = "failure"
)

type TaskResult struct {
	TaskID     string     `json:"task_id"`
	TaskStatus TaskStatus `json:"task_status"`
}

type ConvertResult struct {
	Status string `json:"status"`

	Document ExportDocument `json:"document"`

	Errors []ConvertError `json:"errors"`
}

type ConvertError struct {
	Component string `json:"component_type"`
	Module    string `json:"module_name"`
	Message   string `json:"error_message"`
}

type ExportDocument struct {
	Filename string `json:"filename"`

	Json *Document `json:"json_content"`
}

type Document struct {
	Name string `json:"name"`

	Texts    []TextItem    `json:"texts"`
	Tables   []TableItem   `json:"tables"`
	Pictures []PictureItem `json:"pictures"`

	Pages map[string]PageItem `json:"pages"`
}

type Label string

const (
	LabelTitle         Label = "title"
	LabelSectionHeader Label = "section_header"
	LabelListItem      Label = "list_item"
	LabelText          Label = "text"
	LabelParagraph     Label = "paragraph"
	LabelCaption       Label = "caption"
	LabelFootnote      Label = "footnote"
	LabelCode          Label = "code"
	LabelFormula       Label = "formula"
	LabelPageHeader    Label = "page_header"
	LabelPageFooter    Label = "page_footer"
)

type TextItem struct {
	Label Label `json:"label"`

	Text string `json:"text"`

	Prov []Provenance `json:"prov"`
}

type TableItem struct {
	Label Label `json:"label"`

	Prov []Provenance `json:"prov"`

	Data TableData `json:"data"`
}

type TableData struct {
	NumRows int `json:"num_rows"`
	NumCols int `json:"num_cols"`

	Cells []TableCell `json:"table_cells"`
}

type TableCell struct {
	Text string `json:"text"`

	RowSpan int `json:"row_span"`
	ColSpan int `json:"col_span"`

	StartRow *int `json:"start_row_offset_idx"`
	StartCol *int `json:"start_col_offset_idx"`

	ColumnHeader bool `json:"column_header"`
	RowHeader    bool `json:"row_header"`
}

type PictureItem struct {
	Label Label `json:"label"`

	Prov []Provenance `json:"prov"`
}

type PageItem struct {
	PageNo int `json:"page_no"`

	Size Size `json:"size"`
}

type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type Provenance struct {
	PageNo int `json:"page_no"`

	BBox *BoundingBox `json:"bbox"`
}

type CoordOrigin string

const (
	CoordOriginTopLeft    CoordOrigin = "TOPLEFT"
	CoordOriginBottomLeft CoordOrigin = "BOTTOMLEFT"
)

type BoundingBox struct {
	L float64 `json:"l"`
	T float64 `json:"t"`
	R float64 `json:"r"`
	B float64 `json:"b"`

	CoordOrigin CoordOrigin `json:"coord_origin"`
}
