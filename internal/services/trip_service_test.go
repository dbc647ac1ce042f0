package services

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"fuvar/internal/core"
	"fuvar/internal/ledger"
	applog "fuvar/internal/log"
	"fuvar/internal/reference/memory"
	"fuvar/internal/workbook"

	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*TripService, Paths) {
	t.Helper()
	dir := t.TempDir()
	paths := Paths{
		Workbook:        filepath.Join(dir, "ledger.xlsx"),
		WorkJournal:     filepath.Join(dir, "work_hours.json"),
		DeliveryJournal: filepath.Join(dir, "delivery_data.json"),
	}
	store := memory.New()
	_, added, err := store.Add(context.Background(), core.Factories, "BMW", 6000)
	require.NoError(t, err)
	require.True(t, added)

	logger := applog.New(applog.Config{Component: applog.ComponentApp, Output: &bytes.Buffer{}})
	svc := NewTripService(store, paths, logger)
	svc.now = func() time.Time { return time.Date(2024, 9, 3, 20, 0, 0, 0, time.UTC) }
	return svc, paths
}

func delivery(t *testing.T, date, zone, factory string) core.DeliveryEntry {
	t.Helper()
	d, err := core.ParseDate(date)
	require.NoError(t, err)
	return core.DeliveryEntry{Date: d, Zone: zone, Factory: factory, Address: "Fő utca 1", DeliveryNumber: "D-1"}
}

func session(t *testing.T, values ...string) *core.VolumeSession {
	t.Helper()
	s := core.NewVolumeSession()
	for _, v := range values {
		_, err := s.Append(v)
		require.NoError(t, err)
	}
	return s
}

func TestMonthPath(t *testing.T) {
	require.Equal(t, filepath.Join("data", "ledger_2024-09.xlsx"), MonthPath(filepath.Join("data", "ledger.xlsx"), 2024, time.September))
	require.Equal(t, "ledger_2025-01.xlsx", MonthPath("ledger", 2025, time.January))
}

func TestLogDeliveryAccumulatesAcrossCommands(t *testing.T) {
	svc, paths := newTestService(t)
	ctx := context.Background()

	s := session(t, "5")
	res, err := svc.LogDelivery(ctx, delivery(t, "2024-09-03", "Zone 10-15", "BMW"), s)
	require.NoError(t, err)
	require.Equal(t, 3, res.Column)
	require.Equal(t, "5.0", res.Cell)
	require.Equal(t, 0, s.Len(), "session resets after a successful commit")

	res, err = svc.LogDelivery(ctx, delivery(t, "2024-09-03", "Zone 10-15", "BMW"), session(t, "3"))
	require.NoError(t, err)
	require.Equal(t, "8.0", res.Cell)
	require.Equal(t, "8.0", res.Total)

	l := ledger.New(2024, time.September)
	_, err = workbook.LoadFile(MonthPath(paths.Workbook, 2024, time.September), l)
	require.NoError(t, err)
	require.Equal(t, "8.0", l.Cell(ledger.Deliveries, "2024-09-03", 3))

	records, err := svc.DeliveryJournal()
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, []float64{5}, records[0].M3Values)
	require.Equal(t, "Zone 10-15", records[1].KmRange)
}

func TestLogDeliveryRejectsInputAndKeepsSession(t *testing.T) {
	svc, paths := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		entry core.DeliveryEntry
		want  error
	}{
		{"unknown zone", delivery(t, "2024-09-03", "Zone 45-50", "BMW"), core.ErrUnknownZone},
		{"garbage zone", delivery(t, "2024-09-03", "garbage", "BMW"), core.ErrUnknownZone},
		{"unknown factory", delivery(t, "2024-09-03", "Zone 0-5", "Tesla"), core.ErrUnknownFactory},
		{"empty factory", delivery(t, "2024-09-03", "Zone 0-5", " "), core.ErrEmptyField},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := session(t, "6,0", "3.5")
			_, err := svc.LogDelivery(ctx, tt.entry, s)
			require.True(t, errors.Is(err, tt.want), "got %v", err)
			require.Equal(t, 2, s.Len())
			require.Equal(t, "(6.0 + 3.5) (9.5)", s.Summary())
		})
	}

	records, err := svc.DeliveryJournal()
	require.NoError(t, err)
	require.Empty(t, records)
	require.NoFileExists(t, MonthPath(paths.Workbook, 2024, time.September))
}

func TestLogWorkWritesMonthAndJournal(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	date, _ := core.ParseDate("2024-09-03")
	start, _ := core.ParseClock("07:00")
	end, _ := core.ParseClock("15:15")

	l, err := svc.LogWork(ctx, core.WorkEntry{Date: date, Start: start, End: end, Type: core.NormalDay})
	require.NoError(t, err)
	require.Equal(t, "8.25", l.Cell(ledger.WorkHours, "2024-09-03", ledger.ColHoursWorked))

	leave, _ := core.ParseDate("2024-09-04")
	_, err = svc.LogWork(ctx, core.WorkEntry{Date: leave, Type: core.SickLeave})
	require.NoError(t, err)

	reopened, err := svc.OpenMonth(ctx, 2024, time.September)
	require.NoError(t, err)
	require.Equal(t, "07:00", reopened.Cell(ledger.WorkHours, "2024-09-03", ledger.ColWorkStart))
	require.Equal(t, core.SickLeave.Label(), reopened.Cell(ledger.WorkHours, "2024-09-04", ledger.ColHoursWorked))

	records, err := svc.WorkJournal()
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "15:15", records[0].EndTime)
	require.Equal(t, string(core.SickLeave), records[1].Type)
}

func TestMonthsAreStoredSeparately(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.LogDelivery(ctx, delivery(t, "2024-09-30", "Zone 0-5", "BMW"), session(t, "1"))
	require.NoError(t, err)
	_, err = svc.LogDelivery(ctx, delivery(t, "2024-10-01", "Zone 0-5", "BMW"), session(t, "2"))
	require.NoError(t, err)

	sep, err := svc.OpenMonth(ctx, 2024, time.September)
	require.NoError(t, err)
	require.Equal(t, "1.0", sep.Cell(ledger.Deliveries, "2024-09-30", 1))

	oct, err := svc.OpenMonth(ctx, 2024, time.October)
	require.NoError(t, err)
	require.Equal(t, "2.0", oct.Cell(ledger.Deliveries, "2024-10-01", 1))
}

func TestExportThenImportIntoAnotherService(t *testing.T) {
	src, _ := newTestService(t)
	ctx := context.Background()

	_, err := src.LogDelivery(ctx, delivery(t, "2024-09-10", "Zone 20-25", "BMW"), session(t, "4.5"))
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "export.xlsx")
	require.NoError(t, src.Export(ctx, 2024, time.September, out))

	dst, _ := newTestService(t)
	stats, err := dst.Import(ctx, 2024, time.September, out)
	require.NoError(t, err)
	require.Equal(t, 0, stats.Skipped)

	l, err := dst.OpenMonth(ctx, 2024, time.September)
	require.NoError(t, err)
	require.Equal(t, "4.5", l.Cell(ledger.Deliveries, "2024-09-10", 5))
	require.Equal(t, "4.5", l.Cell(ledger.Deliveries, "2024-09-10", ledger.ColTotal))
}

func TestLogDeliveryRejectsNilSession(t *testing.T) {
	svc, paths := newTestService(t)

	_, err := svc.LogDelivery(context.Background(), delivery(t, "2024-09-03", "Zone 0-5", "BMW"), nil)
	require.True(t, errors.Is(err, core.ErrEmptyField), "got %v", err)
	require.NoFileExists(t, MonthPath(paths.Workbook, 2024, time.September))
}

func TestWorkbookAndJournalLogsCarryComponent(t *testing.T) {
	dir := t.TempDir()
	paths := Paths{
		Workbook:        filepath.Join(dir, "ledger.xlsx"),
		WorkJournal:     dir, // a directory cannot be opened for append
		DeliveryJournal: filepath.Join(dir, "delivery_data.json"),
	}
	var buf bytes.Buffer
	logger := applog.New(applog.Config{Component: applog.ComponentApp, Output: &buf})
	svc := NewTripService(memory.New(), paths, logger)
	ctx := context.Background()

	require.NoError(t, svc.Export(ctx, 2024, time.September, filepath.Join(dir, "out.xlsx")))
	require.Contains(t, buf.String(), "component=workbook")
	require.Contains(t, buf.String(), "year=2024")
	require.Contains(t, buf.String(), "month=9")

	date, _ := core.ParseDate("2024-09-05")
	_, err := svc.LogWork(ctx, core.WorkEntry{Date: date, Type: core.Vacation})
	require.Error(t, err)
	require.Contains(t, buf.String(), "component=journal")
	require.Contains(t, buf.String(), "operation=log_work")
	require.FileExists(t, MonthPath(paths.Workbook, 2024, time.September))
}
