package memory

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"fuvar/internal/core"
	"fuvar/internal/reference"
)

// Ensure interface conformance
var _ reference.Store = (*Store)(nil)

type Store struct {
	mu     sync.Mutex
	nextID int64
	items  map[core.ReferenceKind][]core.ReferenceRecord
}

func New() *Store {
	return &Store{items: map[core.ReferenceKind][]core.ReferenceRecord{}}
}

// NewFromFiles seeds the store from seed_<kind>.txt files in base, one "label;price" per line.
// Factories fall back to the default list when no seed file exists.
func NewFromFiles(base string) *Store {
	s := New()
	ctx := context.Background()
	for _, kind := range core.ReferenceKinds() {
		records := readSeed(filepath.Join(base, "seed_"+kind.String()+".txt"))
		if len(records) == 0 && kind == core.Factories {
			records = reference.DefaultFactories()
		}
		for _, r := range records {
			_, _, _ = s.Add(ctx, kind, r.Label, r.Price)
		}
	}
	return s
}

// Add stores the record and returns its id.
func (s *Store) Add(_ context.Context, kind core.ReferenceKind, label string, price int64) (int64, bool, error) {
	if !kind.IsValid() {
		return 0, false, fmt.Errorf("%w: %q", core.ErrInvalidKind, kind)
	}
	rec := core.ReferenceRecord{Label: strings.TrimSpace(label), Price: price}
	if !rec.Acceptable() {
		return 0, false, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	rec.ID = s.nextID
	s.items[kind] = append(s.items[kind], rec)
	return rec.ID, true, nil
}

func (s *Store) Remove(_ context.Context, kind core.ReferenceKind, id int64) (bool, error) {
	if !kind.IsValid() {
		return false, fmt.Errorf("%w: %q", core.ErrInvalidKind, kind)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.items[kind]
	for i, r := range items {
		if r.ID == id {
			s.items[kind] = append(items[:i:i], items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) List(_ context.Context, kind core.ReferenceKind) ([]core.ReferenceRecord, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: %q", core.ErrInvalidKind, kind)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.ReferenceRecord{}, s.items[kind]...), nil
}

func readSeed(path string) []core.ReferenceRecord {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	var out []core.ReferenceRecord
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		label, priceText, ok := strings.Cut(line, ";")
		if !ok {
			continue
		}
		price, err := strconv.ParseInt(strings.TrimSpace(priceText), 10, 64)
		if err != nil {
			continue
		}
		out = append(out, core.ReferenceRecord{Label: strings.TrimSpace(label), Price: price})
	}
	return out
}
