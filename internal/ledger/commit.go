package ledger

import (
	"fmt"

	"fuvar/internal/core"

	"github.com/shopspring/decimal"
)

// CommitWork writes one work-hours entry into the row of its date.
//
// Normal days fill Work-Start/Work-End, workshop days fill Workshop-Start/Workshop-End,
// both set Hours-Worked. Leave days write their label into Hours-Worked.
// A commit replaces the whole entry of the day: time cells the new type does not
// use are cleared.
func (l *Ledger) CommitWork(e core.WorkEntry) error {
	if err := e.Validate(); err != nil {
		return fmt.Errorf("validate work entry: %w", err)
	}
	date := e.Date.Format(core.DateLayout)
	row, ok := l.FindRow(WorkHours, date)
	if !ok {
		return fmt.Errorf("%w: %s", ErrDateNotFound, date)
	}
	cells := l.work[row]

	for _, col := range []int{ColWorkStart, ColWorkEnd, ColWorkshopStart, ColWorkshopEnd} {
		cells[col] = ""
	}
	if e.Type.IsLeave() {
		cells[ColHoursWorked] = e.Type.Label()
		return nil
	}

	startCol, endCol := ColWorkStart, ColWorkEnd
	if e.Type == core.WorkshopDay {
		startCol, endCol = ColWorkshopStart, ColWorkshopEnd
	}
	cells[startCol] = e.Start.Format(core.TimeLayout)
	cells[endCol] = e.End.Format(core.TimeLayout)
	cells[ColHoursWorked] = FormatHours(e.HoursWorked())
	return nil
}

// FormatHours renders fractional hours with two decimals.
func FormatHours(h float64) string {
	return fmt.Sprintf("%.2f", h)
}

// CommitDelivery adds total to the zone cell of date and returns the new cell text.
//
// The previous cell value is read as a number (0 when empty or not numeric), so
// committing the same trip twice counts it twice. The row total is recomputed.
func (l *Ledger) CommitDelivery(date string, column int, total decimal.Decimal) (string, error) {
	if column < 1 || column > core.ZoneBandCount {
		return "", fmt.Errorf("%w: zone column %d", ErrInvalidColumn, column)
	}
	row, ok := l.FindRow(Deliveries, date)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrDateNotFound, date)
	}
	cells := l.delivery[row]

	value := core.FormatVolume(cellNumber(cells[column]).Add(total))
	cells[column] = value
	cells[ColTotal] = core.FormatVolume(rowTotal(cells))
	return value, nil
}

// DeliveryTotal returns the sum of all zone cells across the month.
func (l *Ledger) DeliveryTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, cells := range l.delivery {
		sum = sum.Add(rowTotal(cells))
	}
	return sum
}

func rowTotal(cells []string) decimal.Decimal {
	sum := decimal.Zero
	for col := 1; col <= core.ZoneBandCount; col++ {
		sum = sum.Add(cellNumber(cells[col]))
	}
	return sum
}

func cellNumber(s string) decimal.Decimal {
	d, err := core.ParseDecimal(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
