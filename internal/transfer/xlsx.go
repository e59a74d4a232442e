package transfer

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"lecturegrid/internal/grid"
)

const sheetName = "Timetable"

// WriteXlsx writes a sheet with day labels across the first row, periods
// down the first column and the labels in B2:F6.
func WriteXlsx(path string, cells []grid.Cell, days string) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	for d := grid.Monday; d <= grid.Friday; d++ {
		cell, _ := excelize.CoordinatesToCellName(int(d)+2, 1)
		f.SetCellValue(sheetName, cell, d.Label(days))
	}
	for p := 1; p <= grid.Periods; p++ {
		cell, _ := excelize.CoordinatesToCellName(1, p+1)
		f.SetCellValue(sheetName, cell, p)
	}

	for _, c := range cells {
		if !c.Valid() {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(int(c.Weekday)+2, c.Period+1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, c.Label); err != nil {
			return fmt.Errorf("set %s: %w", cell, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReadXlsx reads B2:F6 of the active sheet.
func ReadXlsx(path string) ([]grid.Cell, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if sheet == "" {
		return nil, ErrNoTable
	}

	var cells []grid.Cell
	for p := 1; p <= grid.Periods; p++ {
		for d := grid.Monday; d <= grid.Friday; d++ {
			cell, _ := excelize.CoordinatesToCellName(int(d)+2, p+1)
			v, err := f.GetCellValue(sheet, cell)
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", cell, err)
			}
			if label := strings.Join(strings.Fields(v), " "); label != "" {
				cells = append(cells, grid.Cell{Period: p, Weekday: d, Label: label})
			}
		}
	}

	return cells, nil
}
