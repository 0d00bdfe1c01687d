package config

import (
	"fmt"
	"os"
	"time"

	"price-recorder/src/helpers"
	"price-recorder/src/models"

	"gopkg.in/yaml.v3"
)

// -----------------------------------------------------------------------------

// Config wraps models.MConfig and provides business logic methods
type Config struct {
	*models.MConfig
}

// -----------------------------------------------------------------------------

// Overrides carries optional replacements for top-level configuration
// sections. A non-nil section replaces the corresponding section wholesale;
// sections are never deep-merged.
type Overrides struct {
	Tables   *models.MTablesConfig
	Exchange *models.MExchangeConfig
	Schedule *models.MScheduleConfig
	RunLog   *models.MRunLogConfig
	Notify   *models.MNotifyConfig
}

// -----------------------------------------------------------------------------

// NewConfig creates a new Config instance from a YAML file
func NewConfig(configPath string) (*Config, error) {
	// 1. Read the YAML file content
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", configPath, err)
	}

	// 2. Unmarshal data into the models struct
	modelConfig := Defaults()
	if err := yaml.Unmarshal(data, modelConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config from YAML: %w", err)
	}

	config := &Config{MConfig: modelConfig}

	// 3. Validate the loaded configuration
	if err := config.Validate(); err != nil {
		return nil, helpers.NewConfigurationError("config validation failed", err)
	}

	return config, nil
}

// -----------------------------------------------------------------------------

// Defaults returns the built-in configuration, matching the deployment the
// sheet layout was designed for.
func Defaults() *models.MConfig {
	return &models.MConfig{
		Name:     "price-recorder",
		Host:     "127.0.0.1",
		Port:     8090,
		LogLevel: "INFO",
		Storage: models.MStorageConfig{
			DBType: "sqlite",
			DBPath: "price-recorder.db",
		},
		Tables: models.MTablesConfig{
			SourceSheet:       "Recup",
			TargetSheet:       "Dati",
			LogSheet:          "Logs",
			SourceTickerCol:   3,
			SourceExchangeCol: 9,
			TargetFormulaCol:  1,
			TargetExchangeCol: 3,
			TargetTickerCol:   4,
			TargetTimeCol:     5,
			TargetResultCol:   6,
			FormulaTemplate:   `=GOOGLEFINANCE("%s")`,
		},
		Exchange: models.MExchangeConfig{
			European:    []string{"MIL", "LSE", "XETRA", "ETR", "BIT"},
			American:    []string{"NASDAQ", "NYSE"},
			CalendarMIC: "xmil",
		},
		Schedule: models.MScheduleConfig{
			Times:    []string{"09:00", "12:00", "17:00", "15:30", "19:00", "22:00"},
			Timezone: "Europe/Rome",
		},
		RunLog: models.MRunLogConfig{
			SheetLogging:   true,
			FlushThreshold: 50,
		},
		Notify: models.MNotifyConfig{
			SMTPPort: 587,
		},
		Quotes: models.MQuotesConfig{
			RequestTimeout: 10,
			MaxRetries:     3,
		},
	}
}

// -----------------------------------------------------------------------------

// Validate performs basic configuration validation
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("application name cannot be empty")
	}

	if c.Host == "" {
		return fmt.Errorf("server host cannot be empty")
	}
	if c.Port <= 1024 || c.Port > 65535 {
		return fmt.Errorf("invalid server port number: %d (must be between 1025 and 65535)", c.Port)
	}

	// Validate Storage configuration
	if c.Storage.DBType == "" {
		return fmt.Errorf("database type cannot be empty")
	}
	if c.Storage.DBType == "sqlite" && c.Storage.DBPath == "" {
		return fmt.Errorf("database path cannot be empty for sqlite")
	}
	if c.Storage.DBType == "postgres" && c.Storage.DBConnectionString == "" {
		return fmt.Errorf("connection string cannot be empty for postgres")
	}

	// Validate Tables configuration
	if c.Tables.SourceSheet == "" || c.Tables.TargetSheet == "" || c.Tables.LogSheet == "" {
		return fmt.Errorf("source, target and log sheet names must all be set")
	}
	for name, col := range map[string]int{
		"source_ticker_col":   c.Tables.SourceTickerCol,
		"source_exchange_col": c.Tables.SourceExchangeCol,
		"target_formula_col":  c.Tables.TargetFormulaCol,
		"target_exchange_col": c.Tables.TargetExchangeCol,
		"target_ticker_col":   c.Tables.TargetTickerCol,
		"target_time_col":     c.Tables.TargetTimeCol,
	} {
		if col < 1 {
			return fmt.Errorf("%s must be a 1-based column index, got %d", name, col)
		}
	}
	if c.Tables.FormulaTemplate == "" {
		return fmt.Errorf("formula template cannot be empty")
	}

	// Validate Exchange configuration
	if len(c.Exchange.European)+len(c.Exchange.American) == 0 {
		return fmt.Errorf("at least one supported exchange must be configured")
	}

	// Validate Schedule configuration
	if len(c.Schedule.Times) == 0 {
		return fmt.Errorf("at least one schedule time must be configured")
	}
	for i, at := range c.Schedule.Times {
		if _, err := time.Parse("15:04", at); err != nil {
			return fmt.Errorf("schedule time %d ('%s') is not HH:MM: %w", i, at, err)
		}
	}
	if c.Schedule.Timezone != "" {
		if _, err := time.LoadLocation(c.Schedule.Timezone); err != nil {
			return fmt.Errorf("invalid schedule timezone '%s': %w", c.Schedule.Timezone, err)
		}
	}

	// Validate RunLog configuration
	if c.RunLog.FlushThreshold <= 0 {
		return fmt.Errorf("run log flush threshold must be greater than 0")
	}

	// Validate Notify configuration
	if c.Notify.EmailOnError && c.Notify.SMTPHost == "" {
		return fmt.Errorf("smtp host must be set when email_on_error is enabled")
	}

	return nil
}

// -----------------------------------------------------------------------------

// ApplyOverrides constructs a NEW config value with any non-nil override
// section replacing the corresponding section wholesale. The receiver is
// never mutated: shared configuration state stays immutable for the lifetime
// of the process.
func (c *Config) ApplyOverrides(o *Overrides) *Config {
	merged := *c.MConfig
	if o != nil {
		if o.Tables != nil {
			merged.Tables = *o.Tables
		}
		if o.Exchange != nil {
			merged.Exchange = *o.Exchange
		}
		if o.Schedule != nil {
			merged.Schedule = *o.Schedule
		}
		if o.RunLog != nil {
			merged.RunLog = *o.RunLog
		}
		if o.Notify != nil {
			merged.Notify = *o.Notify
		}
	}
	return &Config{MConfig: &merged}
}

// -----------------------------------------------------------------------------

// Save persists the current configuration to the specified YAML file path
func (c *Config) Save(configPath string) error {
	// 1. Marshal the struct to YAML
	data, err := yaml.Marshal(c.MConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	// 2. Write to file (0644 permissions)
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config to file '%s': %w", configPath, err)
	}

	return nil
}
