package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fuvar/internal/core"
	"fuvar/internal/journal"
	"fuvar/internal/ledger"
	applog "fuvar/internal/log"
	"fuvar/internal/reference"
	"fuvar/internal/workbook"
)

// Paths locates the files a TripService reads and writes.
type Paths struct {
	// Workbook is the base workbook path; each month is stored next to it
	// with a _YYYY-MM suffix before the extension.
	Workbook        string
	WorkJournal     string
	DeliveryJournal string
}

// TripService logs work hours and delivery trips into the month ledger.
//
// The month workbook is the durable form of the ledger: every change opens the
// month, applies the change, saves the workbook, then appends the journal line.
type TripService struct {
	store    reference.Store
	paths    Paths
	work     *journal.Journal
	delivery *journal.Journal
	logger   *applog.Logger
	books    *applog.Logger
	journals *applog.Logger
	now      func() time.Time
}

func NewTripService(store reference.Store, paths Paths, logger *applog.Logger) *TripService {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &TripService{
		store:    store,
		paths:    paths,
		work:     journal.New(paths.WorkJournal),
		delivery: journal.New(paths.DeliveryJournal),
		logger:   logger.WithComponent(applog.ComponentTrips),
		books:    logger.WithComponent(applog.ComponentWorkbook),
		journals: logger.WithComponent(applog.ComponentJournal),
		now:      time.Now,
	}
}

// DeliveryResult describes a committed trip.
type DeliveryResult struct {
	Date   string
	Zone   string
	Column int
	Added  string // session total added to the cell
	Cell   string // new cell value
	Total  string // new row total
}

// MonthPath returns the workbook path of the given month.
func (s *TripService) MonthPath(year int, month time.Month) string {
	return MonthPath(s.paths.Workbook, year, month)
}

// MonthPath inserts _YYYY-MM before the extension of base.
func MonthPath(base string, year int, month time.Month) string {
	ext := filepath.Ext(base)
	if ext == "" {
		ext = ".xlsx"
	}
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return fmt.Sprintf("%s_%04d-%02d%s", stem, year, int(month), ext)
}

// OpenMonth initializes the ledger for the month and loads its workbook when present.
func (s *TripService) OpenMonth(ctx context.Context, year int, month time.Month) (*ledger.Ledger, error) {
	l := ledger.New(year, month)
	path := s.MonthPath(year, month)

	fields := applog.NewFields().WithOperation(applog.OpOpenMonth).WithMonth(year, int(month))
	fields[applog.FieldPath] = path

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		s.books.DebugContext(ctx, "No workbook for month, starting empty", fields.ToSlice()...)
		return l, nil
	} else if err != nil {
		return nil, fmt.Errorf("stat workbook: %w", err)
	}

	stats, err := workbook.LoadFile(path, l)
	if err != nil {
		return nil, fmt.Errorf("load month workbook: %w", err)
	}
	fields[applog.FieldRows] = stats.Rows
	fields[applog.FieldSkipped] = stats.Skipped
	s.books.DebugContext(ctx, "Loaded month workbook", fields.ToSlice()...)
	return l, nil
}

// SaveMonth writes the ledger to its month workbook.
func (s *TripService) SaveMonth(ctx context.Context, l *ledger.Ledger) error {
	path := s.MonthPath(l.Year(), l.Month())
	if err := workbook.SaveFile(path, l); err != nil {
		return fmt.Errorf("save month workbook: %w", err)
	}
	s.books.DebugContext(ctx, "Saved month workbook",
		applog.FieldOperation, applog.OpSaveMonth, applog.FieldPath, path)
	return nil
}

// LogWork commits a work entry to its month and journals it.
func (s *TripService) LogWork(ctx context.Context, e core.WorkEntry) (*ledger.Ledger, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	l, err := s.OpenMonth(ctx, e.Date.Year(), e.Date.Month())
	if err != nil {
		return nil, err
	}
	if err := l.CommitWork(e); err != nil {
		return nil, err
	}
	if err := s.SaveMonth(ctx, l); err != nil {
		return nil, err
	}
	if err := s.work.Append(journal.NewWorkRecord(e, s.now())); err != nil {
		s.journalFailed(ctx, applog.OpLogWork, s.work.Path(), err)
		return nil, fmt.Errorf("journal work entry: %w", err)
	}

	date := e.Date.Format(core.DateLayout)
	s.logger.InfoContext(ctx, "Work hours logged",
		applog.FieldOperation, applog.OpLogWork,
		applog.FieldDate, date,
		applog.FieldWorkType, string(e.Type),
		"hours", l.Cell(ledger.WorkHours, date, ledger.ColHoursWorked))
	return l, nil
}

// LogDelivery adds the session total to the trip's zone cell and journals the trip.
//
// The session is reset only after the ledger is saved and the journal line is
// written. On any failure it keeps its values so the caller can retry.
func (s *TripService) LogDelivery(ctx context.Context, e core.DeliveryEntry, session *core.VolumeSession) (DeliveryResult, error) {
	if err := e.Validate(); err != nil {
		return DeliveryResult{}, err
	}
	if session == nil {
		return DeliveryResult{}, fmt.Errorf("%w: volume session", core.ErrEmptyField)
	}
	column := core.ResolveColumn(e.Zone)
	if column == core.NoColumn {
		return DeliveryResult{}, fmt.Errorf("%w: %q", core.ErrUnknownZone, e.Zone)
	}
	if err := s.checkFactory(ctx, e.Factory); err != nil {
		return DeliveryResult{}, err
	}

	l, err := s.OpenMonth(ctx, e.Date.Year(), e.Date.Month())
	if err != nil {
		return DeliveryResult{}, err
	}
	date := e.Date.Format(core.DateLayout)
	total := session.Total()
	cell, err := l.CommitDelivery(date, column, total)
	if err != nil {
		return DeliveryResult{}, err
	}
	if err := s.SaveMonth(ctx, l); err != nil {
		return DeliveryResult{}, err
	}
	if err := s.delivery.Append(journal.NewDeliveryRecord(e, session.Values(), s.now())); err != nil {
		s.journalFailed(ctx, applog.OpLogDelivery, s.delivery.Path(), err)
		return DeliveryResult{}, fmt.Errorf("journal delivery: %w", err)
	}

	fields := applog.NewFields().
		WithOperation(applog.OpLogDelivery).
		WithTrip(date, e.Zone, column, e.Factory)
	fields[applog.FieldVolume] = core.FormatVolume(total)
	fields[applog.FieldEntries] = session.Len()
	s.logger.InfoContext(ctx, "Delivery logged", fields.ToSlice()...)

	session.Reset()
	return DeliveryResult{
		Date:   date,
		Zone:   e.Zone,
		Column: column,
		Added:  core.FormatVolume(total),
		Cell:   cell,
		Total:  l.Cell(ledger.Deliveries, date, ledger.ColTotal),
	}, nil
}

// journalFailed reports a journal write that failed after the month workbook was saved.
func (s *TripService) journalFailed(ctx context.Context, op, path string, err error) {
	fields := applog.NewFields().WithOperation(op).WithError(err)
	fields[applog.FieldPath] = path
	s.journals.WarnContext(ctx, "Ledger saved but journal not written", fields.ToSlice()...)
}

func (s *TripService) checkFactory(ctx context.Context, name string) error {
	factories, err := s.store.List(ctx, core.Factories)
	if err != nil {
		return fmt.Errorf("list factories: %w", err)
	}
	if _, ok := reference.FindByLabel(factories, name); !ok {
		return fmt.Errorf("%w: %q, known: %s", core.ErrUnknownFactory, name, strings.Join(reference.Labels(factories), ", "))
	}
	return nil
}

// Export writes the month ledger to an arbitrary workbook path.
func (s *TripService) Export(ctx context.Context, year int, month time.Month, path string) error {
	l, err := s.OpenMonth(ctx, year, month)
	if err != nil {
		return err
	}
	if err := workbook.SaveFile(path, l); err != nil {
		return err
	}
	fields := applog.NewFields().WithOperation(applog.OpExport).WithMonth(year, int(month))
	fields[applog.FieldPath] = path
	s.books.InfoContext(ctx, "Workbook exported", fields.ToSlice()...)
	return nil
}

// Import merges a workbook into the month ledger and saves the month.
func (s *TripService) Import(ctx context.Context, year int, month time.Month, path string) (workbook.Stats, error) {
	l, err := s.OpenMonth(ctx, year, month)
	if err != nil {
		return workbook.Stats{}, err
	}
	stats, err := workbook.LoadFile(path, l)
	if err != nil {
		return workbook.Stats{}, err
	}
	if err := s.SaveMonth(ctx, l); err != nil {
		return workbook.Stats{}, err
	}
	fields := applog.NewFields().WithOperation(applog.OpImport).WithMonth(year, int(month))
	fields[applog.FieldPath] = path
	fields[applog.FieldRows] = stats.Rows
	fields[applog.FieldSkipped] = stats.Skipped
	s.books.InfoContext(ctx, "Workbook imported", fields.ToSlice()...)
	return stats, nil
}

// WorkJournal returns the journaled work entries.
func (s *TripService) WorkJournal() ([]journal.WorkRecord, error) {
	return journal.ReadWork(s.work.Path())
}

// DeliveryJournal returns the journaled delivery trips.
func (s *TripService) DeliveryJournal() ([]journal.DeliveryRecord, error) {
	return journal.ReadDeliveries(s.delivery.Path())
}
