// Package journal appends one JSON object per line for every saved action.
// Journal files are only ever appended to, never rewritten.
package journal

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"fuvar/internal/core"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WorkRecord is the journal line of one saved work-hours entry.
type WorkRecord struct {
	ID         string    `json:"id"`
	RecordedAt time.Time `json:"recorded_at"`
	Date       string    `json:"date"`
	StartTime  string    `json:"start_time,omitempty"`
	EndTime    string    `json:"end_time,omitempty"`
	Type       string    `json:"type"`
}

// DeliveryRecord is the journal line of one saved delivery trip.
type DeliveryRecord struct {
	ID             string    `json:"id"`
	RecordedAt     time.Time `json:"recorded_at"`
	Date           string    `json:"date"`
	KmRange        string    `json:"km_range"`
	Factory        string    `json:"factory"`
	Address        string    `json:"address"`
	DeliveryNumber string    `json:"delivery_number"`
	M3Values       []float64 `json:"m3_values"`
}

// NewWorkRecord builds the journal line for a work entry.
func NewWorkRecord(e core.WorkEntry, now time.Time) WorkRecord {
	rec := WorkRecord{
		ID:         uuid.NewString(),
		RecordedAt: now.UTC(),
		Date:       e.Date.Format(core.DateLayout),
		Type:       string(e.Type),
	}
	if !e.Type.IsLeave() {
		rec.StartTime = e.Start.Format(core.TimeLayout)
		rec.EndTime = e.End.Format(core.TimeLayout)
	}
	return rec
}

// NewDeliveryRecord builds the journal line for a delivery trip and its volumes.
func NewDeliveryRecord(e core.DeliveryEntry, values []decimal.Decimal, now time.Time) DeliveryRecord {
	m3 := make([]float64, len(values))
	for i, v := range values {
		m3[i] = v.InexactFloat64()
	}
	return DeliveryRecord{
		ID:             uuid.NewString(),
		RecordedAt:     now.UTC(),
		Date:           e.Date.Format(core.DateLayout),
		KmRange:        e.Zone,
		Factory:        e.Factory,
		Address:        e.Address,
		DeliveryNumber: e.DeliveryNumber,
		M3Values:       m3,
	}
}

// Journal is one append-only JSON-lines file.
type Journal struct {
	path string
}

func New(path string) *Journal {
	return &Journal{path: path}
}

func (j *Journal) Path() string {
	return j.path
}

// Append writes v as a single line at the end of the file, creating it if needed.
func (j *Journal) Append(v any) error {
	if dir := filepath.Dir(j.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create journal directory: %w", err)
		}
	}
	f, err := os.OpenFile(j.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open journal %s: %w", j.path, err)
	}
	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		_ = f.Close()
		return fmt.Errorf("append journal %s: %w", j.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close journal %s: %w", j.path, err)
	}
	return nil
}

// ReadWork returns every work record in file order. A missing file is empty.
func ReadWork(path string) ([]WorkRecord, error) {
	return readAll[WorkRecord](path)
}

// ReadDeliveries returns every delivery record in file order. A missing file is empty.
func ReadDeliveries(path string) ([]DeliveryRecord, error) {
	return readAll[DeliveryRecord](path)
}

func readAll[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open journal %s: %w", path, err)
	}
	defer f.Close()
	return decodeLines[T](f, path)
}

func decodeLines[T any](r io.Reader, path string) ([]T, error) {
	var out []T
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		raw := sc.Bytes()
		if len(raw) == 0 {
			continue
		}
		var rec T
		if err := json.Unmarshal(raw, &rec); err != nil {
			return out, fmt.Errorf("decode %s line %d: %w", path, line, err)
		}
		out = append(out, rec)
	}
	if err := sc.Err(); err != nil {
		return out, fmt.Errorf("read journal %s: %w", path, err)
	}
	return out, nil
}
