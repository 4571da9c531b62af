package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// RenderXLSX writes the table as a single-sheet workbook.
func RenderXLSX(table Table) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if table.SheetName != "" {
		if err := f.SetSheetName(sheet, table.SheetName); err != nil {
			return nil, fmt.Errorf("rename sheet: %w", err)
		}
		sheet = table.SheetName
	}

	if err := writeSheetRow(f, sheet, 1, table.Header); err != nil {
		return nil, err
	}
	for idx, row := range table.Rows {
		if err := writeSheetRow(f, sheet, idx+2, row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheetRow(f *excelize.File, sheet string, rowNum int, values []string) error {
	axis, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("cell name for row %d: %w", rowNum, err)
	}

	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(sheet, axis, &cells); err != nil {
		return fmt.Errorf("write sheet row %d: %w", rowNum, err)
	}
	return nil
}
