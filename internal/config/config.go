package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	// Backend selection
	DataBackend string

	// Reference data
	SQLiteDBPath  string
	SeedDir       string
	SeedFactories bool

	// Ledger and journals
	WorkbookPath        string
	WorkJournalPath     string
	DeliveryJournalPath string

	// Logging
	LogLevel string
}

func Load() *Config {
	cfg := &Config{
		DataBackend: getEnv("DATA_BACKEND", "sqlite"),

		SQLiteDBPath:  getEnv("SQLITE_DB_PATH", "./data/fuvarok.db"),
		SeedDir:       getEnv("SEED_DIR", "data"),
		SeedFactories: getEnvBool("SEED_FACTORIES", true),

		WorkbookPath:        getEnv("WORKBOOK_PATH", "./data/munka_nyilvantartas.xlsx"),
		WorkJournalPath:     getEnv("WORK_JOURNAL_PATH", "./data/work_hours.json"),
		DeliveryJournalPath: getEnv("DELIVERY_JOURNAL_PATH", "./data/delivery_data.json"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate data backend
	validBackends := []string{"memory", "sqlite"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	if c.DataBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else if err := ensureDir(c.SQLiteDBPath); err != nil {
			errors = append(errors, fmt.Sprintf("cannot create SQLite database directory: %v", err))
		}
	}

	if c.WorkbookPath == "" {
		errors = append(errors, "workbook path cannot be empty")
	} else if ext := strings.ToLower(filepath.Ext(c.WorkbookPath)); ext != ".xlsx" {
		errors = append(errors, fmt.Sprintf("invalid workbook path '%s': must end in .xlsx", c.WorkbookPath))
	}

	if c.WorkJournalPath == "" {
		errors = append(errors, "work journal path cannot be empty")
	}
	if c.DeliveryJournalPath == "" {
		errors = append(errors, "delivery journal path cannot be empty")
	}
	if c.WorkJournalPath != "" && c.WorkJournalPath == c.DeliveryJournalPath {
		errors = append(errors, fmt.Sprintf("work and delivery journals must be separate files, both are '%s'", c.WorkJournalPath))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of [debug info warn error]", c.LogLevel))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// ensureDir creates the parent directory of path if it does not exist.
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return os.MkdirAll(dir, 0755)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
