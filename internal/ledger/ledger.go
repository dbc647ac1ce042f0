// Package ledger holds the month view: one work-hours table and one delivery
// table, each with exactly one row per calendar day of the active month.
//
// Cells are addressed by (date, column). Rows are created by Initialize and are
// never added or removed afterwards; only their cells change.
package ledger

import (
	"errors"
	"fmt"
	"time"

	"fuvar/internal/core"
)

// Table selects one of the two month tables.
type Table int

const (
	WorkHours Table = iota
	Deliveries
)

// Work-hours columns.
const (
	ColDate = 0

	ColDay           = 1
	ColWorkStart     = 2
	ColWorkEnd       = 3
	ColHoursWorked   = 4
	ColWorkshopStart = 5
	ColWorkshopEnd   = 6

	WorkColumnCount = 7
)

// Delivery columns: the date, one column per zone band, then the row total.
const (
	ColTotal            = core.ZoneBandCount + 1
	DeliveryColumnCount = core.ZoneBandCount + 2
)

var (
	ErrDateNotFound  = errors.New("date not in ledger month")
	ErrInvalidColumn = errors.New("invalid ledger column")
	ErrInvalidTable  = errors.New("invalid ledger table")
)

func (t Table) String() string {
	switch t {
	case WorkHours:
		return "work_hours"
	case Deliveries:
		return "deliveries"
	default:
		return fmt.Sprintf("table(%d)", int(t))
	}
}

// Columns returns the column count of the table.
func (t Table) Columns() int {
	switch t {
	case WorkHours:
		return WorkColumnCount
	case Deliveries:
		return DeliveryColumnCount
	default:
		return 0
	}
}

// Headers returns the fixed header row of the table.
func (t Table) Headers() []string {
	switch t {
	case WorkHours:
		return []string{"Date", "Day", "Work-Start", "Work-End", "Hours-Worked", "Workshop-Start", "Workshop-End"}
	case Deliveries:
		headers := make([]string, 0, DeliveryColumnCount)
		headers = append(headers, "Date")
		for _, b := range core.ZoneBands() {
			headers = append(headers, b.Label())
		}
		return append(headers, "Total")
	default:
		return nil
	}
}

// Ledger is the in-memory month view. It is not safe for concurrent use.
type Ledger struct {
	year     int
	month    time.Month
	work     [][]string
	delivery [][]string
}

// New returns a ledger initialized for the given month.
func New(year int, month time.Month) *Ledger {
	l := &Ledger{}
	l.Initialize(year, month)
	return l
}

// Initialize discards every row and builds one row per day of the month in both tables.
func (l *Ledger) Initialize(year int, month time.Month) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	days := first.AddDate(0, 1, -1).Day()

	l.year = first.Year()
	l.month = first.Month()
	l.work = make([][]string, days)
	l.delivery = make([][]string, days)
	for i := 0; i < days; i++ {
		day := first.AddDate(0, 0, i)
		date := day.Format(core.DateLayout)

		w := make([]string, WorkColumnCount)
		w[ColDate] = date
		w[ColDay] = day.Weekday().String()
		l.work[i] = w

		d := make([]string, DeliveryColumnCount)
		d[ColDate] = date
		l.delivery[i] = d
	}
}

func (l *Ledger) Year() int {
	return l.year
}

func (l *Ledger) Month() time.Month {
	return l.month
}

// Days returns the number of rows in each table.
func (l *Ledger) Days() int {
	return len(l.work)
}

// FindRow scans the table for an exact YYYY-MM-DD match.
func (l *Ledger) FindRow(t Table, date string) (int, bool) {
	rows := l.rows(t)
	for i, row := range rows {
		if row[ColDate] == date {
			return i, true
		}
	}
	return -1, false
}

// Cell returns the value at (date, column), or "" when either is unknown.
func (l *Ledger) Cell(t Table, date string, col int) string {
	row, ok := l.FindRow(t, date)
	if !ok || col < 0 || col >= t.Columns() {
		return ""
	}
	return l.rows(t)[row][col]
}

// WriteCell sets the value at (date, column).
// A date outside the month returns ErrDateNotFound and leaves the ledger unchanged.
// Column 0 holds the date and is never writable.
func (l *Ledger) WriteCell(t Table, date string, col int, value string) error {
	if t.Columns() == 0 {
		return ErrInvalidTable
	}
	if col <= ColDate || col >= t.Columns() {
		return fmt.Errorf("%w: %s column %d", ErrInvalidColumn, t, col)
	}
	row, ok := l.FindRow(t, date)
	if !ok {
		return fmt.Errorf("%w: %s", ErrDateNotFound, date)
	}
	l.rows(t)[row][col] = value
	return nil
}

// Rows returns a deep copy of the table, one slice per day.
func (l *Ledger) Rows(t Table) [][]string {
	src := l.rows(t)
	out := make([][]string, len(src))
	for i, row := range src {
		out[i] = append([]string(nil), row...)
	}
	return out
}

func (l *Ledger) rows(t Table) [][]string {
	switch t {
	case WorkHours:
		return l.work
	case Deliveries:
		return l.delivery
	default:
		return nil
	}
}
