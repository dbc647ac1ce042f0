package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// ZoneBandWidth is the width of one distance band in kilometres.
	ZoneBandWidth = 5
	// ZoneBandCount is the number of bands, covering 0 to 45 km.
	ZoneBandCount = 9
	// NoColumn is returned by ResolveColumn for labels that do not name a band.
	// Column 0 holds the date, so callers must never write to it.
	NoColumn = 0

	zoneLabelPrefix = "Zone "
)

var ErrUnknownZone = errors.New("unknown zone band")

// ZoneBand is a 5 km distance band.
type ZoneBand struct {
	LowerKm int
}

// ZoneBands returns every band in ascending order.
func ZoneBands() []ZoneBand {
	bands := make([]ZoneBand, ZoneBandCount)
	for i := range bands {
		bands[i] = ZoneBand{LowerKm: i * ZoneBandWidth}
	}
	return bands
}

func (b ZoneBand) UpperKm() int {
	return b.LowerKm + ZoneBandWidth
}

// Label renders the band as "Zone {lower}-{upper}".
func (b ZoneBand) Label() string {
	return fmt.Sprintf("%s%d-%d", zoneLabelPrefix, b.LowerKm, b.UpperKm())
}

// Column is the delivery ledger column holding this band.
func (b ZoneBand) Column() int {
	return b.LowerKm/ZoneBandWidth + 1
}

// ParseZoneBand parses a "Zone {n}-{n+5}" label.
func ParseZoneBand(label string) (ZoneBand, error) {
	s := strings.TrimSpace(label)
	rest, ok := strings.CutPrefix(s, zoneLabelPrefix)
	if !ok {
		return ZoneBand{}, fmt.Errorf("%w: %q", ErrUnknownZone, label)
	}
	lo, hi, ok := strings.Cut(rest, "-")
	if !ok {
		return ZoneBand{}, fmt.Errorf("%w: %q", ErrUnknownZone, label)
	}
	lower, err := strconv.Atoi(strings.TrimSpace(lo))
	if err != nil {
		return ZoneBand{}, fmt.Errorf("%w: %q", ErrUnknownZone, label)
	}
	upper, err := strconv.Atoi(strings.TrimSpace(hi))
	if err != nil {
		return ZoneBand{}, fmt.Errorf("%w: %q", ErrUnknownZone, label)
	}
	b := ZoneBand{LowerKm: lower}
	if lower < 0 || lower%ZoneBandWidth != 0 || upper != b.UpperKm() || b.Column() > ZoneBandCount {
		return ZoneBand{}, fmt.Errorf("%w: %q", ErrUnknownZone, label)
	}
	return b, nil
}

// ResolveColumn maps a band label to its delivery ledger column, or NoColumn.
func ResolveColumn(label string) int {
	b, err := ParseZoneBand(label)
	if err != nil {
		return NoColumn
	}
	return b.Column()
}
