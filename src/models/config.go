package models

// MConfig Structure
type MConfig struct {
	Name     string          `yaml:"name"`
	Host     string          `yaml:"host"`
	Port     int             `yaml:"port"`
	LogLevel string          `yaml:"log_level"`
	Storage  MStorageConfig  `yaml:"storage"`
	Tables   MTablesConfig   `yaml:"tables"`
	Exchange MExchangeConfig `yaml:"exchanges"`
	Schedule MScheduleConfig `yaml:"schedule"`
	RunLog   MRunLogConfig   `yaml:"run_log"`
	Notify   MNotifyConfig   `yaml:"notify"`
	Quotes   MQuotesConfig   `yaml:"quotes"`
}

type MStorageConfig struct {
	DBType             string `yaml:"db_type"`
	DBPath             string `yaml:"db_path"`
	DBConnectionString string `yaml:"db_connection_string"`
}

// MTablesConfig names the three sheets and their 1-based column positions.
// Row 1 of every sheet is a header row.
type MTablesConfig struct {
	SourceSheet       string `yaml:"source_sheet"`
	TargetSheet       string `yaml:"target_sheet"`
	LogSheet          string `yaml:"log_sheet"`
	SourceTickerCol   int    `yaml:"source_ticker_col"`
	SourceExchangeCol int    `yaml:"source_exchange_col"`
	TargetFormulaCol  int    `yaml:"target_formula_col"`
	TargetExchangeCol int    `yaml:"target_exchange_col"`
	TargetTickerCol   int    `yaml:"target_ticker_col"`
	TargetTimeCol     int    `yaml:"target_time_col"`
	// TargetResultCol is reserved for the host environment's live formula
	// evaluation and is never written by this service.
	TargetResultCol int    `yaml:"target_result_col"`
	FormulaTemplate string `yaml:"formula_template"`
}

// MExchangeConfig partitions supported exchange codes. The partition is
// documentation only: the supported-check flattens both lists.
type MExchangeConfig struct {
	European []string `yaml:"european"`
	American []string `yaml:"american"`
	// HolidayAware switches the trading-day gate from the plain Mon-Fri
	// weekday check to the scmhub calendar for the configured MIC.
	HolidayAware bool   `yaml:"holiday_aware"`
	CalendarMIC  string `yaml:"calendar_mic"`
}

type MScheduleConfig struct {
	// Times are daily wall-clock firing times, "HH:MM".
	Times    []string `yaml:"times"`
	Timezone string   `yaml:"timezone"`
}

type MRunLogConfig struct {
	// SheetLogging enables flushing buffered entries to the log sheet.
	SheetLogging   bool `yaml:"sheet_logging"`
	FlushThreshold int  `yaml:"flush_threshold"`
}

type MNotifyConfig struct {
	EmailOnError bool   `yaml:"email_on_error"`
	EmailTo      string `yaml:"email_to"`
	EmailFrom    string `yaml:"email_from"`
	SMTPHost     string `yaml:"smtp_host"`
	SMTPPort     int    `yaml:"smtp_port"`
	SMTPUser     string `yaml:"smtp_user"`
	SMTPPassword string `yaml:"smtp_password"`
}

type MQuotesConfig struct {
	Enabled        bool `yaml:"enabled"`
	RequestTimeout int  `yaml:"timeout"`
	MaxRetries     int  `yaml:"retries"`
}

// -----------------------------------------------------------------------------

// SupportedExchanges returns the flattened union of the European and American
// exchange lists.
func (c *MConfig) SupportedExchanges() map[string]struct{} {
	set := make(map[string]struct{}, len(c.Exchange.European)+len(c.Exchange.American))
	for _, ex := range c.Exchange.European {
		set[ex] = struct{}{}
	}
	for _, ex := range c.Exchange.American {
		set[ex] = struct{}{}
	}
	return set
}
