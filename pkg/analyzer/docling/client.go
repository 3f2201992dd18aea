package docling

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rahulkamble366/iso/pkg/analyzer"
)

var _ analyzer.Provider = &Client{}

type Client struct {
	client *http.Client

	url   string
	token string

	interval time.Duration
}

func New(url string, options ...Option) (*Client, error) {
	if url == "" {
		return nil, errors.New("invalid url")
	}

	c := &Client{
		client: http.DefaultClient,

		url: url,

		interval: 4 * time.Second,
	}

	for _, option := range options {
		option(c)
	}

	return c, nil
}

func (c *Client) Analyze(ctx context.Context, file analyzer.File, options *analyzer.AnalyzeOptions) (*analyzer.Result, error) {
	if options == nil {
		options = new(analyzer.AnalyzeOptions)
	}

	if !isSupported(file) {
		return nil, analyzer.ErrUnsupported
	}

	var data bytes.Buffer
	w := multipart.NewWriter(&data)

	w.WriteField("to_formats", "json")

	if len(options.Pages) > 0 {
		w.WriteField("page_range", strconv.Itoa(slices.Min(options.Pages)))
		w.WriteField("page_range", strconv.Itoa(slices.Max(options.Pages)))
	}

	f, err := w.CreateFormFile("files", file.Name)

	if err != nil {
		return nil, err
	}

	if _, err := f.Write(file.Content); err != nil {
		return nil, err
	}

	w.Close()

	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(c.url, "/")+"/v1/convert/file/async", &data)
	req.Header.Set("Content-Type", w.FormDataContentType())
	c.authorize(req)

	resp, err := c.client.Do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, convertError(resp)
	}

	var task TaskResult

	if err := json.NewDecoder(resp.Body).Decode(&task); err != nil {
		return nil, err
	}

	if err := c.awaitTask(ctx, task.TaskID); err != nil {
		return nil, err
	}

	document, err := c.readDocument(ctx, task.TaskID)

	if err != nil {
		return nil, err
	}

	return convertDocument(document, options.Pages), nil
}

func (c *Client) awaitTask(ctx context.Context, taskID string) error {
	for {
		task, err := c.readTask(ctx, taskID)

		if err != nil {
			return err
		}

		switch task.TaskStatus {
		case TaskStatusSuccess:
			return nil

		case TaskStatusPending, TaskStatusStarted:
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.interval):
			}

		default:
			return errors.New("task " + string(task.TaskStatus))
		}
	}
}

func (c *Client) readTask(ctx context.Context, taskID string) (*TaskResult, error) {
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(c.url, "/")+"/v1/status/poll/"+taskID, nil)
	c.authorize(req)

	resp, err := c.client.Do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, convertError(resp)
	}

	var task TaskResult

	if err := json.NewDecoder(resp.Body).Decode(&task); err != nil {
		return nil, err
	}

	return &task, nil
}

func (c *Client) readDocument(ctx context.Context, taskID string) (*Document, error) {
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(c.url, "/")+"/v1/result/"+taskID, nil)
	c.authorize(req)

	resp, err := c.client.Do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, convertError(resp)
	}

	var result ConvertResult

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	if result.Status != string(TaskStatusSuccess) {
		if len(result.Errors) > 0 {
			return nil, errors.New("conversion " + result.Status + ": " + result.Errors[0].Message)
		}

		return nil, errors.New("conversion " + result.Status)
	}

	if result.Document.Json == nil {
		return nil, errors.New("no json content")
	}

	return result.Document.Json, nil
}

func (c *Client) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("X-Api-Key", c.token)
	}
}

func convertDocument(doc *Document, only []int) *analyzer.Result {
	pages := make(map[int]*analyzer.Page)

	for _, p := range doc.Pages {
		if len(only) > 0 && !slices.Contains(only, p.PageNo) {
			continue
		}

		pages[p.PageNo] = &analyzer.Page{
			Number: p.PageNo,

			Unit:   "pt",
			Width:  p.Size.Width,
			Height: p.Size.Height,

			Items:  []analyzer.Item{},
			Tables: []analyzer.Table{},
		}
	}

	for _, t := range doc.Texts {
		var category analyzer.Category

		switch t.Label {
		case LabelTitle, LabelSectionHeader:
			category = analyzer.CategoryTitle

		case LabelListItem:
			category = analyzer.CategoryList

		case LabelText, LabelParagraph, LabelCaption, LabelFootnote, LabelCode, LabelFormula:
			category = analyzer.CategoryText

		default:
			continue
		}

		page, box := locate(pages, t.Prov)

		if page == nil {
			continue
		}

		text := t.Text

		page.Items = append(page.Items, analyzer.Item{
			Category: category,

			Text: &text,
			Box:  box,
		})
	}

	for _, t := range doc.Tables {
		page, box := locate(pages, t.Prov)

		if page == nil {
			continue
		}

		table := analyzer.Table{
			Box:   box,
			Cells: []analyzer.Cell{},
		}

		for _, cell := range t.Data.Cells {
			table.Cells = append(table.Cells, analyzer.Cell{
				Row:    cell.StartRow,
				Column: cell.StartCol,

				Text: cell.Text,
			})
		}

		page.Tables = append(page.Tables, table)
	}

	for _, p := range doc.Pictures {
		page, box := locate(pages, p.Prov)

		if page == nil {
			continue
		}

		page.Items = append(page.Items, analyzer.Item{
			Category: analyzer.CategoryFigure,

			Box: box,
		})
	}

	numbers := make([]int, 0, len(pages))

	for n := range pages {
		numbers = append(numbers, n)
	}

	sort.Ints(numbers)

	result := &analyzer.Result{
		Pages: make([]analyzer.Page, 0, len(numbers)),
	}

	for _, n := range numbers {
		result.Pages = append(result.Pages, *pages[n])
	}

	return result
}

func locate(pages map[int]*analyzer.Page, prov []Provenance) (*analyzer.Page, *analyzer.Box) {
	if len(prov) == 0 {
		return nil, nil
	}

	page, ok := pages[prov[0].PageNo]

	if !ok {
		return nil, nil
	}

	bbox := prov[0].BBox

	if bbox == nil {
		return page, nil
	}

	box := analyzer.Box{bbox.L, bbox.T, bbox.R, bbox.B}

	if bbox.CoordOrigin == CoordOriginBottomLeft {
		box[1] = page.Height - bbox.T
		box[3] = page.Height - bbox.B
	}

	return page, &box
}

func isSupported(file analyzer.File) bool {
	if file.Name != "" {
		ext := strings.ToLower(path.Ext(file.Name))

		if slices.Contains(SupportedExtensions, ext) {
			return true
		}
	}

	if file.ContentType != "" {
		if slices.Contains(SupportedMimeTypes, file.ContentType) {
			return true
		}
	}

	return false
}

func convertError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)

	if len(data) == 0 {
		return errors.New(http.StatusText(resp.StatusCode))
	}

	return errors.New(string(data))
}
