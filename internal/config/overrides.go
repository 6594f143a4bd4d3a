package config

// RuntimeOverrides holds configuration values that can be overridden at runtime
// via CLI flags or other means
type RuntimeOverrides struct {
	DBPath   *string
	LogLevel *string
	LogFile  *string
	Trigger  *string

	// FallbackLogFile is used only when no log file is configured anywhere.
	FallbackLogFile *string
}

func (o *RuntimeOverrides) apply(c *Config) {
	if o == nil {
		return
	}
	if o.DBPath != nil {
		c.Set("dbPath", *o.DBPath)
	}
	if o.LogLevel != nil {
		c.Set("log.level", *o.LogLevel)
	}
	if o.LogFile != nil {
		c.Set("log.file", *o.LogFile)
	}
	if o.Trigger != nil {
		c.Set("editor.trigger", *o.Trigger)
	}
	if o.FallbackLogFile != nil && c.GetString("log.file") == "" {
		c.Set("log.file", *o.FallbackLogFile)
	}
}
