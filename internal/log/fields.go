package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldKind      = "kind"
	FieldID        = "id"
	FieldLabel     = "label"
	FieldDate      = "date"
	FieldYear      = "year"
	FieldMonth     = "month"
	FieldWorkType  = "work_type"
	FieldZone      = "zone"
	FieldColumn    = "column"
	FieldFactory   = "factory"
	FieldVolume    = "m3_total"
	FieldEntries   = "m3_entries"
	FieldPath      = "path"
	FieldRows      = "rows"
	FieldSkipped   = "skipped"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentCLI       = "cli"
	ComponentStorage   = "storage"
	ComponentTrips     = "trips"
	ComponentWorkbook  = "workbook"
	ComponentJournal   = "journal"
	ComponentReference = "reference"
)

// Operations defines standard operation names
const (
	OpAddReference    = "add_reference"
	OpRemoveReference = "remove_reference"
	OpLogWork         = "log_work"
	OpLogDelivery     = "log_delivery"
	OpOpenMonth       = "open_month"
	OpSaveMonth       = "save_month"
	OpExport          = "export_workbook"
	OpImport          = "import_workbook"
)

// LogFields is a helper for building structured logging fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithMonth adds the ledger month
func (f LogFields) WithMonth(year, month int) LogFields {
	f[FieldYear] = year
	f[FieldMonth] = month
	return f
}

// WithTrip adds delivery trip fields
func (f LogFields) WithTrip(date, zone string, column int, factory string) LogFields {
	f[FieldDate] = date
	f[FieldZone] = zone
	f[FieldColumn] = column
	f[FieldFactory] = factory
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
