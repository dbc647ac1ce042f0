package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidVolume = errors.New("invalid volume")

// ParseDecimal converts a decimal string to a decimal value.
//
// It accepts both dot (6.5) and comma (6,5) separators and ignores surrounding
// whitespace. Signs are accepted as typed; no range check is made.
//
// Examples:
//
//	ParseDecimal("6,0")  -> 6.0, nil
//	ParseDecimal(" 3.5") -> 3.5, nil
//	ParseDecimal("abc")  -> 0, ErrInvalidVolume
func ParseDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidVolume
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidVolume
	}
	return d, nil
}

// FormatVolume renders a volume with one decimal place.
func FormatVolume(d decimal.Decimal) string {
	return d.StringFixed(1)
}

// VolumeSession collects the m³ readings of one trip until it is committed.
// The zero value is an empty session.
type VolumeSession struct {
	values []decimal.Decimal
}

func NewVolumeSession() *VolumeSession {
	return &VolumeSession{}
}

// Reset drops every collected value.
func (s *VolumeSession) Reset() {
	s.values = nil
}

// Append parses raw and adds it to the session, returning the updated summary.
// Blank input leaves the session untouched and returns the current summary.
// Malformed input returns ErrInvalidVolume and leaves the session untouched.
func (s *VolumeSession) Append(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return s.Summary(), nil
	}
	v, err := ParseDecimal(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q", err, raw)
	}
	s.values = append(s.values, v)
	return s.Summary(), nil
}

// Values returns a copy of the collected readings in entry order.
func (s *VolumeSession) Values() []decimal.Decimal {
	return append([]decimal.Decimal(nil), s.values...)
}

func (s *VolumeSession) Len() int {
	return len(s.values)
}

func (s *VolumeSession) Total() decimal.Decimal {
	total := decimal.Zero
	for _, v := range s.values {
		total = total.Add(v)
	}
	return total
}

// Summary renders "(6.0 + 3.5) (9.5)"; an empty session renders "(0)".
func (s *VolumeSession) Summary() string {
	if len(s.values) == 0 {
		return "(0)"
	}
	parts := make([]string, len(s.values))
	for i, v := range s.values {
		parts[i] = FormatVolume(v)
	}
	return fmt.Sprintf("(%s) (%s)", strings.Join(parts, " + "), FormatVolume(s.Total()))
}
