package ledger

import (
	"errors"
	"testing"
	"time"

	"fuvar/internal/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestInitializeBuildsOneRowPerDay(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		days  int
	}{
		{2025, time.September, 30},
		{2025, time.January, 31},
		{2024, time.February, 29},
		{2025, time.February, 28},
	}
	for _, tc := range cases {
		l := New(tc.year, tc.month)
		for _, table := range []Table{WorkHours, Deliveries} {
			rows := l.Rows(table)
			require.Len(t, rows, tc.days, "%s %d-%02d", table, tc.year, tc.month)

			seen := map[string]bool{}
			prev := ""
			for _, row := range rows {
				require.Len(t, row, table.Columns())
				date := row[ColDate]
				require.False(t, seen[date], "duplicate date %s", date)
				seen[date] = true
				require.Less(t, prev, date, "rows out of order")
				prev = date
			}
		}
	}
}

func TestInitializeDiscardsPriorRows(t *testing.T) {
	l := New(2025, time.January)
	require.NoError(t, l.WriteCell(WorkHours, "2025-01-10", ColWorkStart, "06:00"))

	l.Initialize(2025, time.April)
	require.Equal(t, 30, l.Days())
	require.Equal(t, time.April, l.Month())
	_, ok := l.FindRow(WorkHours, "2025-01-10")
	require.False(t, ok)
	for _, row := range l.Rows(WorkHours) {
		require.Empty(t, row[ColWorkStart])
	}
}

func TestDayNames(t *testing.T) {
	l := New(2025, time.September)
	require.Equal(t, "Monday", l.Cell(WorkHours, "2025-09-01", ColDay))
	require.Equal(t, "Sunday", l.Cell(WorkHours, "2025-09-07", ColDay))
	// the delivery table has no day column
	require.Empty(t, l.Cell(Deliveries, "2025-09-01", 1))
}

func TestWriteCellMissingDateIsNoop(t *testing.T) {
	l := New(2025, time.September)
	before := l.Rows(Deliveries)

	err := l.WriteCell(Deliveries, "2025-10-01", 3, "5.0")
	require.ErrorIs(t, err, ErrDateNotFound)
	require.Equal(t, before, l.Rows(Deliveries))
}

func TestWriteCellRejectsDateColumn(t *testing.T) {
	l := New(2025, time.September)
	require.ErrorIs(t, l.WriteCell(Deliveries, "2025-09-01", ColDate, "x"), ErrInvalidColumn)
	require.ErrorIs(t, l.WriteCell(WorkHours, "2025-09-01", WorkColumnCount, "x"), ErrInvalidColumn)
	require.ErrorIs(t, l.WriteCell(Table(7), "2025-09-01", 1, "x"), ErrInvalidTable)
	require.Equal(t, "2025-09-01", l.Rows(Deliveries)[0][ColDate])
}

func TestHeaders(t *testing.T) {
	require.Equal(t, []string{"Date", "Day", "Work-Start", "Work-End", "Hours-Worked", "Workshop-Start", "Workshop-End"}, WorkHours.Headers())

	h := Deliveries.Headers()
	require.Len(t, h, DeliveryColumnCount)
	require.Equal(t, "Date", h[0])
	require.Equal(t, "Zone 0-5", h[1])
	require.Equal(t, "Zone 40-45", h[core.ZoneBandCount])
	require.Equal(t, "Total", h[ColTotal])
}

func mustClock(t *testing.T, s string) time.Time {
	t.Helper()
	c, err := core.ParseClock(s)
	require.NoError(t, err)
	return c
}

func TestCommitWork(t *testing.T) {
	l := New(2025, time.September)
	day := time.Date(2025, time.September, 3, 0, 0, 0, 0, time.UTC)

	require.NoError(t, l.CommitWork(core.WorkEntry{
		Date: day, Start: mustClock(t, "06:00"), End: mustClock(t, "14:30"), Type: core.NormalDay,
	}))
	require.Equal(t, "06:00", l.Cell(WorkHours, "2025-09-03", ColWorkStart))
	require.Equal(t, "14:30", l.Cell(WorkHours, "2025-09-03", ColWorkEnd))
	require.Equal(t, "8.50", l.Cell(WorkHours, "2025-09-03", ColHoursWorked))

	next := day.AddDate(0, 0, 1)
	require.NoError(t, l.CommitWork(core.WorkEntry{
		Date: next, Start: mustClock(t, "07:00"), End: mustClock(t, "12:15"), Type: core.WorkshopDay,
	}))
	require.Empty(t, l.Cell(WorkHours, "2025-09-04", ColWorkStart))
	require.Equal(t, "07:00", l.Cell(WorkHours, "2025-09-04", ColWorkshopStart))
	require.Equal(t, "12:15", l.Cell(WorkHours, "2025-09-04", ColWorkshopEnd))
	require.Equal(t, "5.25", l.Cell(WorkHours, "2025-09-04", ColHoursWorked))
}

func TestCommitWorkLeaveDay(t *testing.T) {
	l := New(2025, time.September)
	require.NoError(t, l.CommitWork(core.WorkEntry{
		Date: time.Date(2025, time.September, 5, 0, 0, 0, 0, time.UTC), Type: core.Vacation,
	}))
	require.Equal(t, "Vacation", l.Cell(WorkHours, "2025-09-05", ColHoursWorked))
	require.Empty(t, l.Cell(WorkHours, "2025-09-05", ColWorkStart))
}

func TestCommitWorkReplacesEarlierEntry(t *testing.T) {
	l := New(2025, time.September)
	day := time.Date(2025, time.September, 8, 0, 0, 0, 0, time.UTC)

	require.NoError(t, l.CommitWork(core.WorkEntry{
		Date: day, Start: mustClock(t, "06:00"), End: mustClock(t, "14:30"), Type: core.NormalDay,
	}))
	require.NoError(t, l.CommitWork(core.WorkEntry{Date: day, Type: core.Vacation}))
	require.Equal(t, []string{"2025-09-08", "Monday", "", "", "Vacation", "", ""}, l.Rows(WorkHours)[7])

	require.NoError(t, l.CommitWork(core.WorkEntry{
		Date: day, Start: mustClock(t, "06:00"), End: mustClock(t, "14:30"), Type: core.NormalDay,
	}))
	require.NoError(t, l.CommitWork(core.WorkEntry{
		Date: day, Start: mustClock(t, "07:00"), End: mustClock(t, "12:15"), Type: core.WorkshopDay,
	}))
	require.Equal(t, []string{"2025-09-08", "Monday", "", "", "5.25", "07:00", "12:15"}, l.Rows(WorkHours)[7])

	require.NoError(t, l.CommitWork(core.WorkEntry{Date: day, Type: core.SickLeave}))
	require.Equal(t, []string{"2025-09-08", "Monday", "", "", "Sick leave", "", ""}, l.Rows(WorkHours)[7])
}

func TestCommitWorkAcrossMidnightIsNegative(t *testing.T) {
	l := New(2025, time.September)
	require.NoError(t, l.CommitWork(core.WorkEntry{
		Date:  time.Date(2025, time.September, 6, 0, 0, 0, 0, time.UTC),
		Start: mustClock(t, "22:00"), End: mustClock(t, "06:00"), Type: core.NormalDay,
	}))
	require.Equal(t, "-16.00", l.Cell(WorkHours, "2025-09-06", ColHoursWorked))
}

func TestCommitWorkOutsideMonth(t *testing.T) {
	l := New(2025, time.September)
	before := l.Rows(WorkHours)
	err := l.CommitWork(core.WorkEntry{
		Date:  time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC),
		Start: mustClock(t, "06:00"), End: mustClock(t, "14:00"), Type: core.NormalDay,
	})
	require.True(t, errors.Is(err, ErrDateNotFound))
	require.Equal(t, before, l.Rows(WorkHours))
}

func TestCommitDeliveryAccumulates(t *testing.T) {
	l := New(2025, time.September)
	col := core.ResolveColumn("Zone 10-15")

	v, err := l.CommitDelivery("2025-09-10", col, decimal.RequireFromString("5.0"))
	require.NoError(t, err)
	require.Equal(t, "5.0", v)

	v, err = l.CommitDelivery("2025-09-10", col, decimal.RequireFromString("3.0"))
	require.NoError(t, err)
	require.Equal(t, "8.0", v)
	require.Equal(t, "8.0", l.Cell(Deliveries, "2025-09-10", col))
}

func TestCommitDeliveryTotal(t *testing.T) {
	l := New(2025, time.September)
	_, err := l.CommitDelivery("2025-09-10", 1, decimal.RequireFromString("2.5"))
	require.NoError(t, err)
	_, err = l.CommitDelivery("2025-09-10", 4, decimal.RequireFromString("7"))
	require.NoError(t, err)
	_, err = l.CommitDelivery("2025-09-11", 4, decimal.RequireFromString("1"))
	require.NoError(t, err)

	require.Equal(t, "9.5", l.Cell(Deliveries, "2025-09-10", ColTotal))
	require.Equal(t, "1.0", l.Cell(Deliveries, "2025-09-11", ColTotal))
	require.Equal(t, "10.5", core.FormatVolume(l.DeliveryTotal()))
}

func TestCommitDeliveryTreatsUnparseableCellAsZero(t *testing.T) {
	l := New(2025, time.September)
	require.NoError(t, l.WriteCell(Deliveries, "2025-09-12", 2, "(6.0 + 3.5) (9.5)"))

	v, err := l.CommitDelivery("2025-09-12", 2, decimal.RequireFromString("1.5"))
	require.NoError(t, err)
	require.Equal(t, "1.5", v)
}

func TestCommitDeliveryRejectsSentinelColumn(t *testing.T) {
	l := New(2025, time.September)
	before := l.Rows(Deliveries)

	_, err := l.CommitDelivery("2025-09-10", core.ResolveColumn("garbage"), decimal.NewFromInt(4))
	require.ErrorIs(t, err, ErrInvalidColumn)
	_, err = l.CommitDelivery("2025-09-10", ColTotal, decimal.NewFromInt(4))
	require.ErrorIs(t, err, ErrInvalidColumn)
	_, err = l.CommitDelivery("2025-08-31", 1, decimal.NewFromInt(4))
	require.ErrorIs(t, err, ErrDateNotFound)

	require.Equal(t, before, l.Rows(Deliveries))
}
