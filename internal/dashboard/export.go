package dashboard

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Orders"

var exportHeaders = []string{"ID", "Product", "Quantity", "Status", "Price", "Email", "Issues"}

// Workbook renders rows as an XLSX workbook with a header row.
func Workbook(rows []Row) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(exportSheet, cell, h); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	for i, r := range rows {
		line := i + 2
		values := []any{
			r.ID,
			deref(r.ProductType),
			deref(r.Quantity),
			r.Status,
			deref(r.FinalPrice),
			deref(r.Email),
			r.Issues,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, line)
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return nil, fmt.Errorf("write row %d: %w", r.ID, err)
			}
		}
	}

	_ = f.SetColWidth(exportSheet, "B", "B", 18)
	_ = f.SetColWidth(exportSheet, "D", "D", 16)
	_ = f.SetColWidth(exportSheet, "F", "F", 28)
	_ = f.SetColWidth(exportSheet, "G", "G", 48)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

// deref returns the pointed-to value, or nil so the cell stays empty.
func deref[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
