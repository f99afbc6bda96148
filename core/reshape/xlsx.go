package reshape

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet written by WriteXLSX.
const SheetName = "Interviews"

// maxCellLen is the longest text Excel accepts in one cell.
const maxCellLen = 32767

// WriteXLSX writes the table as a workbook with a header row and one row per
// record. Missing rounds are left as empty cells.
func WriteXLSX(t Table, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("xlsx sheet: %w", err)
	}

	for i, h := range t.Header() {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(SheetName, cell, h)
	}

	for r, rec := range t.Records {
		for c, col := range t.Header() {
			v, ok := rec[col].Get()
			if !ok {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(SheetName, cell, truncate(v, maxCellLen)); err != nil {
				return fmt.Errorf("xlsx cell %s: %w", cell, err)
			}
		}
	}

	last, _ := excelize.ColumnNumberToName(len(t.Header()))
	_ = f.SetColWidth(SheetName, "A", last, 40)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
