// Package extractor reconstructs the table grid embedded in a bank statement
// PDF. It returns rows of cells per page; deciding which rows are actual
// transactions is the statement package's job.
package extractor

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/sonamtobgay/bankrecon/internal/models"
)

// cellGap is the horizontal distance (in PDF points) between two text runs
// that marks a column boundary. Statement tables leave well over this much
// space between columns; words inside one cell sit much closer.
const cellGap = 12.0

// ExtractTables reads a PDF and returns one table grid per page. A document
// that cannot be opened, or that yields no rows at all, is a fatal error —
// there is nothing to reconcile against. Individual unreadable pages are
// skipped.
func ExtractTables(filePath string) ([]models.Page, error) {
	pages, err := extractWithLibrary(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bank statement: %w", err)
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("failed to parse bank statement: no extractable tables in %q", filePath)
	}
	return pages, nil
}

// extractWithLibrary walks every page with ledongthuc/pdf. The library can
// panic on malformed documents, so the whole walk is recover-guarded and a
// panic surfaces as a document-level error.
func extractWithLibrary(filePath string) (pages []models.Page, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("PDF library crashed: %v", r)
		}
	}()

	f, r, openErr := pdf.Open(filePath)
	if openErr != nil {
		return nil, openErr
	}
	defer f.Close()

	numPages := r.NumPage()
	if numPages == 0 {
		return nil, fmt.Errorf("PDF has no pages")
	}

	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		rows := gridByRow(page)
		if len(rows) == 0 {
			rows = gridByContent(page)
		}
		if len(rows) == 0 {
			continue
		}
		pages = append(pages, models.Page{Number: i, Rows: rows})
	}

	return pages, nil
}

// gridByRow uses the library's own row grouping and splits each row into
// cells on horizontal gaps.
func gridByRow(page pdf.Page) [][]string {
	rows, err := page.GetTextByRow()
	if err != nil {
		return nil
	}

	var grid [][]string
	for _, row := range rows {
		cells := SplitCells(row.Content)
		if len(cells) > 0 {
			grid = append(grid, cells)
		}
	}
	return grid
}

// gridByContent is the fallback for PDFs where GetTextByRow returns nothing
// useful: it takes the raw positioned text objects, buckets them into rows
// by Y coordinate, and splits each row into cells.
func gridByContent(page pdf.Page) [][]string {
	content := page.Content()
	if len(content.Text) == 0 {
		return nil
	}

	rowMap := make(map[int][]pdf.Text)
	for _, t := range content.Text {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		yKey := int(math.Round(t.Y))
		rowMap[yKey] = append(rowMap[yKey], t)
	}

	// PDF Y runs bottom-to-top, so descending Y is reading order.
	yKeys := make([]int, 0, len(rowMap))
	for y := range rowMap {
		yKeys = append(yKeys, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(yKeys)))

	var grid [][]string
	for _, y := range yKeys {
		cells := SplitCells(rowMap[y])
		if len(cells) > 0 {
			grid = append(grid, cells)
		}
	}
	return grid
}

// SplitCells turns one row of positioned text runs into cell strings.
// Runs are ordered left to right; a gap wider than cellGap between the end
// of one run and the start of the next closes the current cell.
func SplitCells(runs []pdf.Text) []string {
	items := make([]pdf.Text, 0, len(runs))
	for _, t := range runs {
		if strings.TrimSpace(t.S) != "" {
			items = append(items, t)
		}
	}
	if len(items) == 0 {
		return nil
	}
	sort.Slice(items, func(a, b int) bool { return items[a].X < items[b].X })

	var cells []string
	var cur strings.Builder
	prevEnd := items[0].X

	for i, t := range items {
		if i > 0 {
			if t.X-prevEnd > cellGap {
				cells = append(cells, strings.TrimSpace(cur.String()))
				cur.Reset()
			} else if cur.Len() > 0 {
				cur.WriteByte(' ')
			}
		}
		cur.WriteString(t.S)
		prevEnd = t.X + t.W
	}
	if cur.Len() > 0 {
		cells = append(cells, strings.TrimSpace(cur.String()))
	}
	return cells
}
