package storage

import (
	"context"
	"database/sql"
	"fmt"

	"fuvar/internal/core"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

// referenceTable maps a reference kind to its table and column names.
type referenceTable struct {
	name     string
	labelCol string
	priceCol string
}

var referenceTables = map[core.ReferenceKind]referenceTable{
	core.Factories: {name: "factories", labelCol: "name", priceCol: "price"},
	core.Addresses: {name: "addresses", labelCol: "address", priceCol: "price"},
	core.Zones:     {name: "zones", labelCol: "name", priceCol: "base_price"},
}

func tableFor(kind core.ReferenceKind) (referenceTable, error) {
	t, ok := referenceTables[kind]
	if !ok {
		return referenceTable{}, fmt.Errorf("%w: %q", core.ErrInvalidKind, kind)
	}
	return t, nil
}

type ReferenceRow struct {
	ID    int64
	Label string
	Price int64
}

type CreateReferenceParams struct {
	Label string
	Price int64
}

func (q *Queries) CreateReference(ctx context.Context, kind core.ReferenceKind, arg CreateReferenceParams) (int64, error) {
	t, err := tableFor(kind)
	if err != nil {
		return 0, err
	}
	query := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES (?, ?)", t.name, t.labelCol, t.priceCol)
	res, err := q.db.ExecContext(ctx, query, arg.Label, arg.Price)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (q *Queries) DeleteReference(ctx context.Context, kind core.ReferenceKind, id int64) (int64, error) {
	t, err := tableFor(kind)
	if err != nil {
		return 0, err
	}
	query := fmt.Sprintf("DELETE FROM %s WHERE id = ?", t.name)
	res, err := q.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (q *Queries) ListReferences(ctx context.Context, kind core.ReferenceKind) ([]ReferenceRow, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf("SELECT id, %s, %s FROM %s ORDER BY id", t.labelCol, t.priceCol, t.name)
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ReferenceRow
	for rows.Next() {
		var i ReferenceRow
		if err := rows.Scan(&i.ID, &i.Label, &i.Price); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (q *Queries) CountReferences(ctx context.Context, kind core.ReferenceKind) (int64, error) {
	t, err := tableFor(kind)
	if err != nil {
		return 0, err
	}
	var count int64
	err = q.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", t.name)).Scan(&count)
	return count, err
}
