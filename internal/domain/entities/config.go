package entities

// Config represents the run configuration of the license reader
type Config struct {
	Scan   ScanConfig
	Report ReportConfig
	Log    LogConfig
}

// ScanConfig controls which files are discovered
type ScanConfig struct {
	Suffix         string // Matched against the lowercased file name
	FollowSymlinks bool   // Recurse into symlinked directories
}

// ReportConfig controls how report lines are rendered
type ReportConfig struct {
	DefaultExpiresOn string
}

// LogConfig controls diagnostic output
type LogConfig struct {
	Level       string // debug, info, warn or error
	ReportSkips bool   // Log every skipped license file
}

// DefaultConfig returns the configuration that matches an unconfigured run
func DefaultConfig() *Config {
	return &Config{
		Scan: ScanConfig{
			Suffix:         DefaultLicenseSuffix,
			FollowSymlinks: true,
		},
		Report: ReportConfig{
			DefaultExpiresOn: DefaultExpiresOn,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
