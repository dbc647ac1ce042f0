package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the textual date format shared by the ledger, the journals and the workbook.
const DateLayout = "2006-01-02"

// TimeLayout is the clock format used for work start and end times.
const TimeLayout = "15:04"

const (
	Factories ReferenceKind = "factories"
	Addresses ReferenceKind = "addresses"
	Zones     ReferenceKind = "zones"
)

const (
	NormalDay   WorkType = "normal"
	WorkshopDay WorkType = "workshop"
	Vacation    WorkType = "vacation"
	SickLeave   WorkType = "sick_leave"
)

type (
	// ReferenceKind names one of the three reference record collections.
	ReferenceKind string

	// WorkType is the kind of day being logged.
	WorkType string

	ReferenceRecord struct {
		ID    int64
		Label string
		Price int64
	}

	// WorkEntry is a single save of the work-hours form.
	WorkEntry struct {
		Date  time.Time
		Start time.Time // clock time, date part ignored
		End   time.Time
		Type  WorkType
	}

	// DeliveryEntry describes one trip. Volumes are carried separately in a VolumeSession.
	DeliveryEntry struct {
		Date           time.Time
		Zone           string // band label, e.g. "Zone 10-15"
		Factory        string
		Address        string
		DeliveryNumber string
	}
)

var (
	ErrInvalidKind     = errors.New("invalid reference kind")
	ErrInvalidWorkType = errors.New("invalid work type")
	ErrEmptyField      = errors.New("empty required field")
	ErrInvalidTime     = errors.New("invalid time")
	ErrInvalidDate     = errors.New("invalid date")
	ErrUnknownFactory  = errors.New("unknown factory")
)

// ReferenceKinds returns the collections in display order.
func ReferenceKinds() []ReferenceKind {
	return []ReferenceKind{Factories, Addresses, Zones}
}

func (k ReferenceKind) String() string {
	return string(k)
}

func (k ReferenceKind) IsValid() bool {
	switch k {
	case Factories, Addresses, Zones:
		return true
	default:
		return false
	}
}

// ParseReferenceKind accepts the collection name in any case, singular or plural.
func ParseReferenceKind(s string) (ReferenceKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "factory", "factories":
		return Factories, nil
	case "address", "addresses":
		return Addresses, nil
	case "zone", "zones":
		return Zones, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidKind, s)
}

// Acceptable reports whether the record may be added to a store.
// Records with a blank label or a non-positive price are ignored by stores rather than rejected.
func (r ReferenceRecord) Acceptable() bool {
	return strings.TrimSpace(r.Label) != "" && r.Price > 0
}

// WorkTypes returns the fixed set of work types in selector order.
func WorkTypes() []WorkType {
	return []WorkType{NormalDay, WorkshopDay, Vacation, SickLeave}
}

func (t WorkType) IsValid() bool {
	switch t {
	case NormalDay, WorkshopDay, Vacation, SickLeave:
		return true
	default:
		return false
	}
}

// IsLeave reports whether the day records no working times.
func (t WorkType) IsLeave() bool {
	return t == Vacation || t == SickLeave
}

// Label is the human readable name written to the ledger for leave days.
func (t WorkType) Label() string {
	switch t {
	case NormalDay:
		return "Normal workday"
	case WorkshopDay:
		return "Workshop day"
	case Vacation:
		return "Vacation"
	case SickLeave:
		return "Sick leave"
	default:
		return string(t)
	}
}

func ParseWorkType(s string) (WorkType, error) {
	t := WorkType(strings.ToLower(strings.TrimSpace(s)))
	if t == "" {
		return NormalDay, nil
	}
	if t == "sick" {
		return SickLeave, nil
	}
	if !t.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidWorkType, s)
	}
	return t, nil
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

// ParseClock parses an HH:MM clock time.
func ParseClock(s string) (time.Time, error) {
	t, err := time.Parse(TimeLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return t, nil
}

// HoursWorked returns end minus start in fractional hours.
// An end before start (a shift across midnight) gives a negative result.
func (e WorkEntry) HoursWorked() float64 {
	start := clockOnly(e.Start)
	end := clockOnly(e.End)
	return end.Sub(start).Seconds() / 3600
}

func (e WorkEntry) Validate() error {
	if e.Date.IsZero() {
		return ErrInvalidDate
	}
	if !e.Type.IsValid() {
		return ErrInvalidWorkType
	}
	return nil
}

func (e DeliveryEntry) Validate() error {
	if e.Date.IsZero() {
		return ErrInvalidDate
	}
	if strings.TrimSpace(e.Zone) == "" {
		return fmt.Errorf("%w: zone", ErrEmptyField)
	}
	if strings.TrimSpace(e.Factory) == "" {
		return fmt.Errorf("%w: factory", ErrEmptyField)
	}
	return nil
}

func clockOnly(t time.Time) time.Time {
	return time.Date(0, time.January, 1, t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}
