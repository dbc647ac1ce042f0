// Package reference defines the reference data store: three independent
// collections (factories, addresses, zones) of (id, label, price) records.
package reference

import (
	"context"

	"fuvar/internal/core"
)

// Store is implemented by every reference data backend.
//
// Add ignores records with a blank label or a non-positive price and reports
// added=false without an error, so the caller can prompt again. Remove of an
// unknown id reports removed=false without an error.
type Store interface {
	Add(ctx context.Context, kind core.ReferenceKind, label string, price int64) (id int64, added bool, err error)
	Remove(ctx context.Context, kind core.ReferenceKind, id int64) (removed bool, err error)
	List(ctx context.Context, kind core.ReferenceKind) ([]core.ReferenceRecord, error)
}

// DefaultFactories is the factory list written into an empty store.
func DefaultFactories() []core.ReferenceRecord {
	return []core.ReferenceRecord{
		{Label: "CATL", Price: 5000},
		{Label: "BMW", Price: 6000},
		{Label: "Factory 3", Price: 5500},
	}
}

// Labels returns the record labels in store order.
func Labels(records []core.ReferenceRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Label
	}
	return out
}

// FindByLabel returns the first record whose label matches exactly.
func FindByLabel(records []core.ReferenceRecord, label string) (core.ReferenceRecord, bool) {
	for _, r := range records {
		if r.Label == label {
			return r, true
		}
	}
	return core.ReferenceRecord{}, false
}
