// Package yaml provides YAML-based configuration parsing and loading.
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ochairo/license-reader/internal/domain/entities"
	"gopkg.in/yaml.v3"
)

// yamlConfig represents the raw YAML structure. Pointers tell an absent
// key apart from a zero value.
type yamlConfig struct {
	Scan   yamlScan   `yaml:"scan"`
	Report yamlReport `yaml:"report"`
	Log    yamlLog    `yaml:"log"`
}

type yamlScan struct {
	Suffix         *string `yaml:"suffix"`
	FollowSymlinks *bool   `yaml:"follow_symlinks"`
}

type yamlReport struct {
	DefaultExpiresOn *string `yaml:"default_expires_on"`
}

type yamlLog struct {
	Level       *string `yaml:"level"`
	ReportSkips *bool   `yaml:"report_skips"`
}

var validLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// ConfigParser parses YAML configuration files
type ConfigParser struct{}

// NewConfigParser creates a new YAML parser
func NewConfigParser() *ConfigParser {
	return &ConfigParser{}
}

// ParseFile parses a YAML configuration file into a Config entity
func (p *ConfigParser) ParseFile(filePath string) (*entities.Config, error) {
	//nolint:gosec // G304: filePath is the user-provided configuration path
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	return p.Parse(data)
}

// Parse parses YAML bytes into a Config entity. Absent keys keep the
// values of entities.DefaultConfig.
func (p *ConfigParser) Parse(data []byte) (*entities.Config, error) {
	var yamlCfg yamlConfig

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&yamlCfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	cfg := entities.DefaultConfig()
	applyScan(&cfg.Scan, yamlCfg.Scan)
	applyReport(&cfg.Report, yamlCfg.Report)
	applyLog(&cfg.Log, yamlCfg.Log)

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyScan(sc *entities.ScanConfig, ys yamlScan) {
	if ys.Suffix != nil {
		sc.Suffix = strings.TrimSpace(*ys.Suffix)
	}
	if ys.FollowSymlinks != nil {
		sc.FollowSymlinks = *ys.FollowSymlinks
	}
}

func applyReport(rc *entities.ReportConfig, yr yamlReport) {
	if yr.DefaultExpiresOn != nil {
		rc.DefaultExpiresOn = *yr.DefaultExpiresOn
	}
}

func applyLog(lc *entities.LogConfig, yl yamlLog) {
	if yl.Level != nil {
		lc.Level = strings.ToLower(strings.TrimSpace(*yl.Level))
	}
	if yl.ReportSkips != nil {
		lc.ReportSkips = *yl.ReportSkips
	}
}

func validate(cfg *entities.Config) error {
	if cfg.Scan.Suffix == "" {
		return fmt.Errorf("scan.suffix must not be empty")
	}
	if !strings.HasPrefix(cfg.Scan.Suffix, ".") {
		return fmt.Errorf("scan.suffix must start with '.', got %q", cfg.Scan.Suffix)
	}
	if strings.ContainsAny(cfg.Scan.Suffix, `/\`) {
		return fmt.Errorf("scan.suffix must not contain path separators, got %q", cfg.Scan.Suffix)
	}
	if cfg.Report.DefaultExpiresOn == "" {
		return fmt.Errorf("report.default_expires_on must not be empty")
	}
	if !validLevels[cfg.Log.Level] {
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", cfg.Log.Level)
	}
	return nil
}
