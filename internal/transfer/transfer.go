// Package transfer moves timetables in and out of office documents.
package transfer

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"lecturegrid/internal/grid"
)

var (
	ErrNoTable           = errors.New("document has no table")
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// Import reads a grid from a .docx or .xlsx file.
func Import(path string) ([]grid.Cell, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".docx":
		return ReadDocx(path)
	case ".xlsx":
		return ReadXlsx(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Export writes a grid to an .xlsx file.
func Export(path string, cells []grid.Cell, days string) error {
	if strings.ToLower(filepath.Ext(path)) != ".xlsx" {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	return WriteXlsx(path, cells, days)
}

// cellsFromRows converts a text table to cells. A leading header row or
// header column is dropped when the table is wider or taller than the grid.
func cellsFromRows(rows [][]string) []grid.Cell {
	if len(rows) > grid.Periods {
		rows = rows[1:]
	}

	var cells []grid.Cell
	for r, row := range rows {
		if r >= grid.Periods {
			break
		}
		if len(row) > grid.Days {
			row = row[1:]
		}
		for c, text := range row {
			if c >= grid.Days {
				break
			}
			label := strings.Join(strings.Fields(text), " ")
			if label == "" {
				continue
			}
			cells = append(cells, grid.Cell{Period: r + 1, Weekday: grid.Weekday(c), Label: label})
		}
	}
	return cells
}
