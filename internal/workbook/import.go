package workbook

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fuvar/internal/ledger"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

var ErrUnsupportedFormat = errors.New("unsupported workbook format")

// Stats reports what an import touched.
type Stats struct {
	Rows    int // source rows matched to a ledger date
	Skipped int // source rows whose date is not in the ledger
	Cells   int // ledger cells overwritten
}

func (s *Stats) add(o Stats) {
	s.Rows += o.Rows
	s.Skipped += o.Skipped
	s.Cells += o.Cells
}

// LoadFile imports the workbook at path into the ledger.
func LoadFile(path string, l *ledger.Ledger) (Stats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Stats{}, fmt.Errorf("read workbook: %w", err)
	}
	return Import(l, data, filepath.Base(path))
}

// Import overwrites ledger cells from the workbook data.
//
// Only sheets with the fixed names are read. For each data row with a date that
// exists in the ledger, every non-empty source cell replaces the ledger cell at
// the same position. Rows with unknown dates are skipped, never created.
func Import(l *ledger.Ledger, data []byte, filename string) (Stats, error) {
	grids, err := ReadSheets(data, filename)
	if err != nil {
		return Stats{}, err
	}
	var total Stats
	for _, s := range sheets {
		rows, ok := grids[s.name]
		if !ok {
			continue
		}
		total.add(applyRows(l, s.table, rows))
	}
	return total, nil
}

func applyRows(l *ledger.Ledger, table ledger.Table, rows [][]string) Stats {
	var st Stats
	if len(rows) < 2 {
		return st
	}
	// First row is the header
	for _, row := range rows[1:] {
		date := cellValue(row, ledger.ColDate)
		if date == "" {
			continue
		}
		if _, ok := l.FindRow(table, date); !ok {
			st.Skipped++
			continue
		}
		st.Rows++
		width := min(len(row), table.Columns())
		for col := 1; col < width; col++ {
			if strings.TrimSpace(row[col]) == "" {
				continue
			}
			if err := l.WriteCell(table, date, col, row[col]); err == nil {
				st.Cells++
			}
		}
	}
	return st
}

// ReadSheets returns every sheet of the workbook as a grid of text cells,
// choosing the reader by file extension: .xls is the legacy binary format,
// anything else is read as xlsx.
func ReadSheets(data []byte, filename string) (map[string][][]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xls":
		return readXLS(data)
	case ".xlsx", ".xlsm", "":
		return readXLSX(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filename)
	}
}

func readXLSX(data []byte) (map[string][][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open xlsx workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	out := map[string][][]string{}
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("read sheet %s: %w", name, err)
		}
		out[name] = rows
	}
	return out, nil
}

func readXLS(data []byte) (out map[string][][]string, err error) {
	// Malformed BIFF records make the reader index past its tables.
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("read xls workbook: malformed data: %v", r)
		}
	}()

	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("open xls workbook: %w", err)
	}
	if wb == nil {
		return nil, fmt.Errorf("open xls workbook: %w", ErrUnsupportedFormat)
	}
	out = map[string][][]string{}
	for i := 0; i < wb.NumSheets(); i++ {
		sheet := wb.GetSheet(i)
		if sheet == nil {
			continue
		}
		var rows [][]string
		for r := 0; r <= int(sheet.MaxRow); r++ {
			row := sheetRow(sheet, r)
			if row == nil {
				rows = append(rows, nil)
				continue
			}
			// Rows without a ROW record report LastCol 0.
			width := max(row.LastCol(), maxColumns())
			cells := make([]string, 0, width)
			for c := 0; c < width; c++ {
				cells = append(cells, row.Col(c))
			}
			for len(cells) > 0 && cells[len(cells)-1] == "" {
				cells = cells[:len(cells)-1]
			}
			rows = append(rows, cells)
		}
		out[sheet.Name] = rows
	}
	return out, nil
}

// sheetRow returns nil for a row index with no cells.
func sheetRow(sheet *xls.WorkSheet, r int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return sheet.Row(r)
}

func maxColumns() int {
	n := 0
	for _, s := range sheets {
		n = max(n, s.table.Columns())
	}
	return n
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
