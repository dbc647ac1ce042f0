// Package workbook moves the month ledger to and from a spreadsheet workbook.
//
// The layout is positional: each sheet starts with the fixed header row and
// every following row mirrors one ledger row, column for column, as text.
package workbook

import (
	"fmt"
	"os"
	"path/filepath"

	"fuvar/internal/ledger"

	"github.com/xuri/excelize/v2"
)

const (
	WorkSheet     = "Work Hours"
	DeliverySheet = "Delivery Data"

	headerFill = "D9D9D9"
	colWidth   = 16
)

// sheets lists every sheet with the ledger table it mirrors, in workbook order.
var sheets = []struct {
	name  string
	table ledger.Table
}{
	{WorkSheet, ledger.WorkHours},
	{DeliverySheet, ledger.Deliveries},
}

// Export returns the ledger as xlsx bytes.
func Export(l *ledger.Ledger) ([]byte, error) {
	f, err := build(l)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// SaveFile writes the ledger workbook to path, creating the directory if needed.
func SaveFile(path string, l *ledger.Ledger) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create workbook directory: %w", err)
		}
	}
	f, err := build(l)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}

func build(l *ledger.Ledger) (*excelize.File, error) {
	f := excelize.NewFile()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{headerFill}, Pattern: 1},
	})
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}

	for i, s := range sheets {
		if i == 0 {
			// A new file starts with one default sheet; rename it rather than leave it empty.
			if err := f.SetSheetName(f.GetSheetName(0), s.name); err != nil {
				_ = f.Close()
				return nil, fmt.Errorf("rename sheet %s: %w", s.name, err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("create sheet %s: %w", s.name, err)
		}
		if err := writeSheet(f, s.name, s.table, l, headerStyle); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

func writeSheet(f *excelize.File, sheet string, table ledger.Table, l *ledger.Ledger, headerStyle int) error {
	headers := table.Headers()
	for col, h := range headers {
		if err := setText(f, sheet, col, 0, h); err != nil {
			return err
		}
	}
	first, _ := excelize.CoordinatesToCellName(1, 1)
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(sheet, first, last, headerStyle); err != nil {
		return fmt.Errorf("style %s header: %w", sheet, err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	if err := f.SetColWidth(sheet, "A", lastCol, colWidth); err != nil {
		return fmt.Errorf("size %s columns: %w", sheet, err)
	}

	for r, row := range l.Rows(table) {
		for col, value := range row {
			if value == "" {
				continue
			}
			if err := setText(f, sheet, col, r+1, value); err != nil {
				return err
			}
		}
	}
	return nil
}

// setText writes value as a string cell at zero-based (col, row).
func setText(f *excelize.File, sheet string, col, row int, value string) error {
	cell, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return fmt.Errorf("cell name %s (%d,%d): %w", sheet, col, row, err)
	}
	if err := f.SetCellStr(sheet, cell, value); err != nil {
		return fmt.Errorf("set %s!%s: %w", sheet, cell, err)
	}
	return nil
}
