package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"freightdocs/internal/domain"
)

// SheetName is the worksheet holding the report rows.
const SheetName = "Documents"

// WriteXLSX writes items as a single-sheet workbook. Confidence is stored as
// a number so it can be sorted and filtered in a spreadsheet.
func WriteXLSX(w io.Writer, items []domain.BatchItem) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("xlsx sheet: %w", err)
	}

	for i, h := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(SheetName, cell, h)
	}

	for r := range items {
		row := itemToRow(&items[r])
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if c == colConfidence && items[r].Result != nil {
				_ = f.SetCellValue(SheetName, cell, items[r].Result.Confidence)
				continue
			}
			_ = f.SetCellValue(SheetName, cell, v)
		}
	}

	_ = f.SetColWidth(SheetName, "A", "A", 38) // id
	_ = f.SetColWidth(SheetName, "B", "B", 40) // source
	_ = f.SetColWidth(SheetName, "C", "E", 12)
	_ = f.SetColWidth(SheetName, "F", "G", 28)
	_ = f.SetColWidth(SheetName, "H", "I", 14)
	_ = f.SetColWidth(SheetName, "J", "K", 48)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}
