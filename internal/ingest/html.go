package ingest

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/vfg2006/sales-report-api/internal/domain"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/net/html/charset"
)

// limite para colspan/rowspan vindos do arquivo
const maxSpan = 1000

type htmlCell struct {
	text    string
	header  bool
	colspan int
	rowspan int
}

type htmlRow struct {
	cells []htmlCell
	head  bool
}

// parseHTML lê a primeira <table> do documento. O ".xls" do Erply é HTML.
// O charset declarado no <meta> é respeitado; sem declaração, bytes que não
// são UTF-8 são lidos como windows-1252.
func parseHTML(data []byte) (*domain.RawTable, error) {
	reader, err := charset.NewReader(bytes.NewReader(data), "text/html")
	if err != nil {
		return nil, &domain.ParseError{Format: domain.FormatHTML, Element: domain.ElementTable, Err: err}
	}

	doc, err := html.Parse(reader)
	if err != nil {
		return nil, &domain.ParseError{Format: domain.FormatHTML, Element: domain.ElementTable, Err: err}
	}

	tableNode := findFirst(doc, atom.Table)
	if tableNode == nil {
		return nil, &domain.ParseError{
			Format:   domain.FormatHTML,
			Element:  domain.ElementTable,
			Expected: "ao menos 1 tabela",
			Found:    "0",
		}
	}

	rows := collectRows(tableNode)
	if len(rows) == 0 {
		return nil, &domain.ParseError{
			Format:   domain.FormatHTML,
			Element:  domain.ElementHeaderRow,
			Expected: "linha de cabeçalho",
			Found:    "tabela sem linhas",
		}
	}

	headerCount := countHeaderRows(rows)
	grid := expandSpans(rows)

	width := 0
	for _, r := range grid {
		width = max(width, len(r))
	}
	if width == 0 {
		return nil, &domain.ParseError{
			Format:   domain.FormatHTML,
			Element:  domain.ElementColumns,
			Expected: "ao menos 1 coluna",
			Found:    "0",
		}
	}

	return buildRawTable(grid[:headerCount], grid[headerCount:], width), nil
}

func findFirst(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, a); found != nil {
			return found
		}
	}
	return nil
}

// collectRows percorre só as linhas da própria tabela (não das aninhadas)
func collectRows(table *html.Node) []htmlRow {
	rows := make([]htmlRow, 0)

	var walk func(n *html.Node, head bool)
	walk = func(n *html.Node, head bool) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.DataAtom {
			case atom.Thead:
				walk(c, true)
			case atom.Tbody, atom.Tfoot:
				walk(c, false)
			case atom.Tr:
				rows = append(rows, htmlRow{cells: collectCells(c), head: head})
			}
		}
	}
	walk(table, false)

	return rows
}

func collectCells(tr *html.Node) []htmlCell {
	cells := make([]htmlCell, 0)
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || (c.DataAtom != atom.Td && c.DataAtom != atom.Th) {
			continue
		}
		cells = append(cells, htmlCell{
			text:    cellText(c),
			header:  c.DataAtom == atom.Th,
			colspan: spanAttr(c, "colspan"),
			rowspan: spanAttr(c, "rowspan"),
		})
	}
	return cells
}

func cellText(n *html.Node) string {
	var sb strings.Builder

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			sb.WriteString(n.Data)
		case n.Type == html.ElementNode && n.DataAtom == atom.Br:
			sb.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	text := strings.ReplaceAll(sb.String(), "\u00a0", " ")
	return strings.Join(strings.Fields(text), " ")
}

func spanAttr(n *html.Node, key string) int {
	for _, attr := range n.Attr {
		if attr.Key != key {
			continue
		}
		v, err := strconv.Atoi(strings.TrimSpace(attr.Val))
		if err != nil || v < 1 {
			return 1
		}
		return min(v, maxSpan)
	}
	return 1
}

// countHeaderRows: linhas do <thead>; senão as primeiras linhas só com <th>;
// senão a primeira linha
func countHeaderRows(rows []htmlRow) int {
	count := 0
	for _, r := range rows {
		if !r.head {
			break
		}
		count++
	}
	if count > 0 {
		return count
	}

	for _, r := range rows {
		if len(r.cells) == 0 || !allHeaderCells(r.cells) {
			break
		}
		count++
	}
	if count > 0 {
		return count
	}

	return 1
}

func allHeaderCells(cells []htmlCell) bool {
	for _, c := range cells {
		if !c.header {
			return false
		}
	}
	return true
}

type pendingSpan struct {
	text      string
	remaining int
}

// expandSpans replica o texto das células com colspan/rowspan em cada
// posição da grade que elas ocupam
func expandSpans(rows []htmlRow) [][]string {
	grid := make([][]string, 0, len(rows))
	pending := make(map[int]*pendingSpan)

	for _, r := range rows {
		line := make([]string, 0, len(r.cells))
		col := 0

		takePending := func() bool {
			p, ok := pending[col]
			if !ok {
				return false
			}
			line = append(line, p.text)
			p.remaining--
			if p.remaining == 0 {
				delete(pending, col)
			}
			col++
			return true
		}

		for _, cell := range r.cells {
			for takePending() {
			}
			for k := 0; k < cell.colspan; k++ {
				line = append(line, cell.text)
				if cell.rowspan > 1 {
					pending[col] = &pendingSpan{text: cell.text, remaining: cell.rowspan - 1}
				}
				col++
			}
		}

		// rowspans que continuam depois da última célula desta linha
		for len(pending) > 0 && col <= maxPendingColumn(pending) {
			if !takePending() {
				line = append(line, "")
				col++
			}
		}

		grid = append(grid, line)
	}

	return grid
}

func maxPendingColumn(pending map[int]*pendingSpan) int {
	maxCol := -1
	for col := range pending {
		maxCol = max(maxCol, col)
	}
	return maxCol
}
