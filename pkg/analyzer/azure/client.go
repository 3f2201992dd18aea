package azure

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"path"
	"regexp"
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

	model    string
	interval time.Duration
}

func New(url string, options ...Option) (*Client, error) {
	if url == "" {
		return nil, errors.New("invalid url")
	}

	c := &Client{
		client: http.DefaultClient,

		url: url,

		model:    "prebuilt-layout",
		interval: 5 * time.Second,
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

	u, _ := url.Parse(strings.TrimRight(c.url, "/") + "/documentintelligence/documentModels/" + c.model + ":analyze")

	query := u.Query()
	query.Set("api-version", "2024-11-30")

	if len(options.Pages) > 0 {
		var pages []string

		for _, p := range options.Pages {
			pages = append(pages, strconv.Itoa(p))
		}

		query.Set("pages", strings.Join(pages, ","))
	}

	u.RawQuery = query.Encode()

	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(file.Content))
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("Ocp-Apim-Subscription-Key", c.token)

	resp, err := c.client.Do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		return nil, convertError(resp)
	}

	operationURL := resp.Header.Get("Operation-Location")

	if operationURL == "" {
		return nil, errors.New("missing operation location")
	}

	operation, err := c.awaitOperation(ctx, operationURL)

	if err != nil {
		return nil, err
	}

	return convertResult(operation.Result), nil
}

func (c *Client) awaitOperation(ctx context.Context, operationURL string) (*AnalyzeOperation, error) {
	for {
		operation, err := c.readOperation(ctx, operationURL)

		if err != nil {
			return nil, err
		}

		if operation.Status == OperationStatusRunning || operation.Status == OperationStatusNotStarted {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.interval):
			}

			continue
		}

		if operation.Status != OperationStatusSucceeded {
			if operation.Error != nil && operation.Error.Message != "" {
				return nil, errors.New("operation " + string(operation.Status) + ": " + operation.Error.Message)
			}

			return nil, errors.New("operation " + string(operation.Status))
		}

		return operation, nil
	}
}

func (c *Client) readOperation(ctx context.Context, operationURL string) (*AnalyzeOperation, error) {
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, operationURL, nil)
	req.Header.Set("Ocp-Apim-Subscription-Key", c.token)

	resp, err := c.client.Do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, convertError(resp)
	}

	var operation AnalyzeOperation

	if err := json.NewDecoder(resp.Body).Decode(&operation); err != nil {
		return nil, err
	}

	return &operation, nil
}

var listMarker = regexp.MustCompile(`^\s*([•◦▪‣·∙○●■□\-*–]|\(?\d{1,3}[.)])\s+`)

func convertResult(result AnalyzeResult) *analyzer.Result {
	pages := make(map[int]*analyzer.Page)

	for _, p := range result.Pages {
		pages[p.PageNumber] = &analyzer.Page{
			Number: p.PageNumber,

			Unit:   p.Unit,
			Width:  p.Width,
			Height: p.Height,

			Items:  []analyzer.Item{},
			Tables: []analyzer.Table{},
		}
	}

	var regions []Span

	for _, t := range result.Tables {
		regions = append(regions, t.Spans...)
	}

	for _, f := range result.Figures {
		regions = append(regions, f.Spans...)
	}

	for _, p := range result.Paragraphs {
		page, box := locate(pages, p.BoundingRegions)

		if page == nil {
			continue
		}

		if covered(regions, p.Spans) {
			continue
		}

		var category analyzer.Category

		switch p.Role {
		case ParagraphRoleTitle, ParagraphRoleSectionHeading:
			category = analyzer.CategoryTitle

		case ParagraphRolePageHeader, ParagraphRolePageFooter, ParagraphRolePageNumber:
			continue

		default:
			category = analyzer.CategoryText

			if listMarker.MatchString(p.Content) {
				category = analyzer.CategoryList
			}
		}

		text := p.Content

		page.Items = append(page.Items, analyzer.Item{
			Category: category,

			Text: &text,
			Box:  box,
		})
	}

	for _, t := range result.Tables {
		page, box := locate(pages, t.BoundingRegions)

		if page == nil {
			continue
		}

		table := analyzer.Table{
			Box:   box,
			Cells: []analyzer.Cell{},
		}

		for _, cell := range t.Cells {
			table.Cells = append(table.Cells, analyzer.Cell{
				Row:    cell.RowIndex,
				Column: cell.ColumnIndex,

				Text: cell.Content,
			})
		}

		page.Tables = append(page.Tables, table)
	}

	for _, f := range result.Figures {
		page, box := locate(pages, f.BoundingRegions)

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

	out := &analyzer.Result{
		Pages: make([]analyzer.Page, 0, len(numbers)),
	}

	for _, n := range numbers {
		out.Pages = append(out.Pages, *pages[n])
	}

	return out
}

func locate(pages map[int]*analyzer.Page, regions []BoundingRegion) (*analyzer.Page, *analyzer.Box) {
	if len(regions) == 0 {
		return nil, nil
	}

	region := regions[0]

	page, ok := pages[region.PageNumber]

	if !ok {
		return nil, nil
	}

	return page, analyzer.BoxFromPolygon(region.Polygon)
}

func covered(regions []Span, spans []Span) bool {
	if len(spans) == 0 {
		return false
	}

	for _, s := range spans {
		inside := slices.ContainsFunc(regions, func(r Span) bool {
			return r.contains(s)
		})

		if !inside {
			return false
		}
	}

	return true
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
