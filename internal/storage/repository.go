package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"fuvar/internal/core"
	applog "fuvar/internal/log"
	"fuvar/internal/reference"

	_ "modernc.org/sqlite"
)

// Ensure interface conformance
var _ reference.Store = (*SQLiteRepository)(nil)

type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:      db,
		queries: New(db),
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Add implements reference.Store. Each insert is its own autocommitted statement.
func (r *SQLiteRepository) Add(ctx context.Context, kind core.ReferenceKind, label string, price int64) (int64, bool, error) {
	if !kind.IsValid() {
		return 0, false, fmt.Errorf("%w: %q", core.ErrInvalidKind, kind)
	}
	rec := core.ReferenceRecord{Label: strings.TrimSpace(label), Price: price}
	if !rec.Acceptable() {
		slog.DebugContext(ctx, "Ignoring reference record", applog.FieldKind, kind, applog.FieldLabel, label, "price", price)
		return 0, false, nil
	}

	id, err := r.queries.CreateReference(ctx, kind, CreateReferenceParams{Label: rec.Label, Price: rec.Price})
	if err != nil {
		return 0, false, fmt.Errorf("create %s record: %w", kind, err)
	}

	slog.InfoContext(ctx, "Reference record saved to SQLite",
		applog.FieldOperation, applog.OpAddReference,
		applog.FieldKind, kind,
		applog.FieldID, id,
		applog.FieldLabel, rec.Label,
		"price", rec.Price)

	return id, true, nil
}

// Remove implements reference.Store. Unknown ids are not an error.
func (r *SQLiteRepository) Remove(ctx context.Context, kind core.ReferenceKind, id int64) (bool, error) {
	if !kind.IsValid() {
		return false, fmt.Errorf("%w: %q", core.ErrInvalidKind, kind)
	}
	affected, err := r.queries.DeleteReference(ctx, kind, id)
	if err != nil {
		return false, fmt.Errorf("delete %s record %d: %w", kind, id, err)
	}
	if affected == 0 {
		slog.DebugContext(ctx, "Reference record not found", applog.FieldKind, kind, applog.FieldID, id)
		return false, nil
	}

	slog.InfoContext(ctx, "Reference record deleted",
		applog.FieldOperation, applog.OpRemoveReference,
		applog.FieldKind, kind,
		applog.FieldID, id)
	return true, nil
}

// List implements reference.Store
func (r *SQLiteRepository) List(ctx context.Context, kind core.ReferenceKind) ([]core.ReferenceRecord, error) {
	rows, err := r.queries.ListReferences(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}

	records := make([]core.ReferenceRecord, len(rows))
	for i, row := range rows {
		records[i] = core.ReferenceRecord{ID: row.ID, Label: row.Label, Price: row.Price}
	}
	return records, nil
}

// SeedIfEmpty inserts records into an empty collection in one transaction.
// A collection that already holds rows is left untouched.
func (r *SQLiteRepository) SeedIfEmpty(ctx context.Context, kind core.ReferenceKind, records []core.ReferenceRecord) (int, error) {
	count, err := r.queries.CountReferences(ctx, kind)
	if err != nil {
		return 0, fmt.Errorf("seed %s: count: %w", kind, err)
	}
	if count > 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("seed %s: begin tx: %w", kind, err)
	}
	defer func() { _ = tx.Rollback() }()

	q := New(tx)
	seeded := 0
	for _, rec := range records {
		if !rec.Acceptable() {
			continue
		}
		if _, err := q.CreateReference(ctx, kind, CreateReferenceParams{Label: rec.Label, Price: rec.Price}); err != nil {
			return 0, fmt.Errorf("seed %s: insert %q: %w", kind, rec.Label, err)
		}
		seeded++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("seed %s: commit tx: %w", kind, err)
	}

	slog.InfoContext(ctx, "Seeded reference collection", applog.FieldKind, kind, "count", seeded)
	return seeded, nil
}
