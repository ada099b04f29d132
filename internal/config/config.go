package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/gravitrone/novel-matrix/internal/export"
	"github.com/gravitrone/novel-matrix/internal/matrix"
)

// Config holds CLI configuration stored at ~/.novel-matrix/config.
//
// Keys are flat so the file reads like the host's plugin settings.
type Config struct {
	Project   string `yaml:"project,omitempty"`
	HostURL   string `yaml:"host_url,omitempty"`
	HostToken string `yaml:"host_token,omitempty"`
	Theme     string `yaml:"theme"`
	VimKeys   bool   `yaml:"vim_keys"`
	LogLevel  string `yaml:"log_level"`

	CSVArcTrue    string `yaml:"csv_arc_true"`
	CSVArcFalse   string `yaml:"csv_arc_false"`
	CSVChrTrue    string `yaml:"csv_chr_true"`
	CSVChrFalse   string `yaml:"csv_chr_false"`
	CSVLocTrue    string `yaml:"csv_loc_true"`
	CSVLocFalse   string `yaml:"csv_loc_false"`
	CSVItmTrue    string `yaml:"csv_itm_true"`
	CSVItmFalse   string `yaml:"csv_itm_false"`
	CSVRowNumbers bool   `yaml:"csv_row_numbers"`
	CSVDelimiter  string `yaml:"csv_delimiter"`
	CSVEncoding   string `yaml:"csv_encoding"`
	CSVSuffix     string `yaml:"csv_suffix"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Theme:         "dark",
		VimKeys:       true,
		LogLevel:      "info",
		CSVArcTrue:    "A",
		CSVChrTrue:    "C",
		CSVLocTrue:    "L",
		CSVItmTrue:    "I",
		CSVRowNumbers: true,
		CSVDelimiter:  ",",
		CSVEncoding:   "utf-8",
		CSVSuffix:     export.DefaultSuffix,
	}
}

// Path returns the config file path.
func Path() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".novel-matrix", "config")
}

// Dir returns the directory holding the config and the log file.
func Dir() string {
	return filepath.Dir(Path())
}

// Load reads and parses the config file on top of the defaults. Returns error
// if missing or insecure.
func Load() (*Config, error) {
	path := Path()

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("config not found: %w", err)
	}

	perm := info.Mode().Perm()
	if perm != 0600 {
		return nil, fmt.Errorf("config permissions too open: %04o (want 0600)", perm)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.normalize()
	return &cfg, nil
}

// LoadOrDefault is Load with a missing file treated as the defaults.
func LoadOrDefault() (*Config, error) {
	cfg, err := Load()
	if err == nil {
		return cfg, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		d := Default()
		return &d, nil
	}
	return nil, err
}

// Save writes the config to disk with secure permissions.
func (c *Config) Save() error {
	path := Path()
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

// normalize substitutes defaults for values that cannot be used as given.
func (c *Config) normalize() {
	d := Default()
	if strings.TrimSpace(c.CSVDelimiter) == "" && c.CSVDelimiter != "\t" {
		c.CSVDelimiter = d.CSVDelimiter
	}
	if strings.TrimSpace(c.CSVEncoding) == "" {
		c.CSVEncoding = d.CSVEncoding
	}
	if strings.TrimSpace(c.CSVSuffix) == "" {
		c.CSVSuffix = d.CSVSuffix
	}
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug", "info", "warn", "error":
		c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	default:
		c.LogLevel = d.LogLevel
	}
	if c.Theme == "" {
		c.Theme = d.Theme
	}
}

// Delimiter returns the CSV field delimiter as a rune.
func (c *Config) Delimiter() rune {
	switch strings.ToLower(c.CSVDelimiter) {
	case "tab", `\t`:
		return '\t'
	case "semicolon":
		return ';'
	}
	r, _ := utf8.DecodeRuneInString(c.CSVDelimiter)
	if r == utf8.RuneError || r == '"' || r == '\r' || r == '\n' {
		return ','
	}
	return r
}

// ExportOptions maps the csv_* keys onto export options.
func (c *Config) ExportOptions() export.Options {
	return export.Options{
		RowNumbers: c.CSVRowNumbers,
		Markers: map[matrix.Category]export.Markers{
			matrix.Arc:       {True: c.CSVArcTrue, False: c.CSVArcFalse},
			matrix.Character: {True: c.CSVChrTrue, False: c.CSVChrFalse},
			matrix.Location:  {True: c.CSVLocTrue, False: c.CSVLocFalse},
			matrix.Item:      {True: c.CSVItmTrue, False: c.CSVItmFalse},
		},
		Delimiter: c.Delimiter(),
		Encoding:  c.CSVEncoding,
		Suffix:    c.CSVSuffix,
	}
}

// SlogLevel returns the configured log level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
