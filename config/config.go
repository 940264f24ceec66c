package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config ilovaning konfiguratsiyasi
type Config struct {
	DataDir      string `env:"DATA_DIR" envDefault:"data"`
	ProductsCSV  string `env:"PRODUCTS_CSV" envDefault:"products.csv"`
	ProductsJSON string `env:"PRODUCTS_JSON" envDefault:"products.json"`
	ProductsXLSX string `env:"PRODUCTS_XLSX" envDefault:"products.xlsx"`
	LogFile      string `env:"LOG_FILE" envDefault:"app.log"`

	// Empty keeps the journal in memory for the lifetime of the process.
	JournalDBPath     string `env:"JOURNAL_DB_PATH"`
	JournalMaxEntries int    `env:"JOURNAL_MAX_ENTRIES" envDefault:"1000"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	ClockInterval time.Duration `env:"CLOCK_INTERVAL" envDefault:"1s"`
	ProgressDelay time.Duration `env:"PROGRESS_DELAY" envDefault:"50ms"`
}

// Load konfiguratsiyani yuklash
func Load() (*Config, error) {
	// .env faylini yuklash (mavjud bo'lsa)
	_ = godotenv.Load()

	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Validatsiya
	if config.JournalMaxEntries <= 0 {
		return nil, fmt.Errorf("JOURNAL_MAX_ENTRIES must be positive, got %d", config.JournalMaxEntries)
	}
	if config.ClockInterval <= 0 {
		return nil, fmt.Errorf("CLOCK_INTERVAL must be positive, got %s", config.ClockInterval)
	}
	if config.ProgressDelay < 0 {
		return nil, fmt.Errorf("PROGRESS_DELAY must not be negative, got %s", config.ProgressDelay)
	}
	switch strings.ToLower(config.LogFormat) {
	case "json", "text":
	default:
		return nil, fmt.Errorf("LOG_FORMAT must be json or text, got %q", config.LogFormat)
	}

	return config, nil
}
