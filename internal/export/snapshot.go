package export

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tartampluch/go-salon/internal/config"
	"github.com/tartampluch/go-salon/internal/viewstate"
)

// Table is a rendered table captured for export.
type Table struct {
	Headers []string
	Rows    [][]string
}

// ExportRows converts the table into export rows keyed by header.
func (t *Table) ExportRows() []viewstate.ExportRow {
	if t == nil {
		return nil
	}
	out := make([]viewstate.ExportRow, 0, len(t.Rows))
	for _, cells := range t.Rows {
		row := make(viewstate.ExportRow, len(t.Headers))
		for i, h := range t.Headers {
			v := ""
			if i < len(cells) {
				v = cells[i]
			}
			row[i] = viewstate.Cell{Label: h, Value: v}
		}
		out = append(out, row)
	}
	return out
}

// TableSnapshotSource yields the table currently shown to the user.
// Snapshot returns a nil table when nothing is rendered.
type TableSnapshotSource interface {
	Snapshot(ctx context.Context) (*Table, error)
}

// SourceChain tries each source in order and returns the first table with rows.
type SourceChain []TableSnapshotSource

func (c SourceChain) Snapshot(ctx context.Context) (*Table, error) {
	for _, src := range c {
		if src == nil {
			continue
		}
		t, err := src.Snapshot(ctx)
		if err != nil {
			return nil, err
		}
		if t != nil && len(t.Rows) > 0 {
			return t, nil
		}
	}
	return nil, nil
}

// HTMLTableSource reads the first visible <table> of an HTML document.
type HTMLTableSource struct {
	Open func() (io.ReadCloser, error)
}

// NewHTMLTableSource opens a fresh document on every snapshot.
func NewHTMLTableSource(open func() (io.ReadCloser, error)) *HTMLTableSource {
	return &HTMLTableSource{Open: open}
}

func (s *HTMLTableSource) Snapshot(ctx context.Context) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rc, err := s.Open()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrTableSnapshot, err)
	}
	defer func() { _ = rc.Close() }()

	doc, err := goquery.NewDocumentFromReader(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrHTMLParse, err)
	}
	return FirstVisibleTable(doc), nil
}

// FirstVisibleTable extracts the first table that is not hidden by itself
// or by an ancestor. It returns nil when the document has none.
func FirstVisibleTable(doc *goquery.Document) *Table {
	var table *goquery.Selection
	doc.Find("table").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if isHidden(s) {
			return true
		}
		hiddenAncestor := false
		s.Parents().EachWithBreak(func(_ int, p *goquery.Selection) bool {
			hiddenAncestor = isHidden(p)
			return !hiddenAncestor
		})
		if hiddenAncestor {
			return true
		}
		table = s
		return false
	})
	if table == nil {
		return nil
	}
	return readTable(table)
}

type bodyRow struct {
	cells  []string
	span   int
	header bool // every cell is a <th>
}

func readTable(table *goquery.Selection) *Table {
	var headers []string
	table.ChildrenFiltered("thead").ChildrenFiltered("tr").Last().
		ChildrenFiltered("th, td").Each(func(_ int, c *goquery.Selection) {
		headers = append(headers, cellText(c))
	})

	var body []bodyRow
	width := 0
	table.ChildrenFiltered("tbody").ChildrenFiltered("tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.ChildrenFiltered("th, td")
		if cells.Length() == 0 {
			return
		}
		r := bodyRow{
			cells:  make([]string, 0, cells.Length()),
			header: cells.Length() == tr.ChildrenFiltered("th").Length(),
		}
		cells.Each(func(_ int, c *goquery.Selection) {
			r.cells = append(r.cells, cellText(c))
			r.span += colspan(c)
		})
		body = append(body, r)
		width = max(width, r.span)
	})

	// Without a <thead>, a leading row of <th> cells names the columns.
	if len(headers) == 0 && len(body) > 0 && body[0].header {
		headers = body[0].cells
		body = body[1:]
	}
	if len(headers) == 0 {
		for i := 1; i <= width; i++ {
			headers = append(headers, config.ExportColumnPrefix+strconv.Itoa(i))
		}
	}

	rows := make([][]string, 0, len(body))
	for _, r := range body {
		// Section rows: one cell spanning every column.
		if len(headers) > 1 && len(r.cells) == 1 && r.span >= len(headers) {
			continue
		}
		rows = append(rows, r.cells)
	}

	return &Table{Headers: headers, Rows: rows}
}

func colspan(c *goquery.Selection) int {
	n, err := strconv.Atoi(strings.TrimSpace(c.AttrOr(config.HTMLAttrColspan, "1")))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func cellText(c *goquery.Selection) string {
	return strings.Join(strings.Fields(c.Text()), " ")
}

func isHidden(s *goquery.Selection) bool {
	if _, ok := s.Attr(config.HTMLAttrHidden); ok {
		return true
	}
	style := strings.ToLower(strings.ReplaceAll(s.AttrOr(config.HTMLAttrStyle, ""), " ", ""))
	return strings.Contains(style, config.CSSDisplayNone) || strings.Contains(style, config.CSSVisHidden)
}
