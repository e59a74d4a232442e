package transfer

import (
	"fmt"
	"os"
	"strings"

	"github.com/fumiama/go-docx"

	"lecturegrid/internal/grid"
)

// ReadDocx reads the first table of a Word document.
func ReadDocx(path string) ([]grid.Cell, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}

	doc, err := docx.Parse(f, fi.Size())
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	table := findFirstTable(doc)
	if table == nil {
		return nil, ErrNoTable
	}

	return cellsFromRows(tableText(table)), nil
}

func findFirstTable(doc *docx.Docx) *docx.Table {
	for _, it := range doc.Document.Body.Items {
		switch it := it.(type) {
		case *docx.Table:
			return it
		}
	}

	return nil
}

func tableText(table *docx.Table) [][]string {
	rows := make([][]string, 0, len(table.TableRows))
	for _, row := range table.TableRows {
		texts := make([]string, 0, len(row.TableCells))
		for _, cell := range row.TableCells {
			parts := []string{}
			for _, p := range cell.Paragraphs {
				parts = append(parts, strings.Join(strings.Fields(p.String()), " "))
			}
			texts = append(texts, strings.Join(parts, " "))
		}
		rows = append(rows, texts)
	}
	return rows
}
