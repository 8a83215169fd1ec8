// Package config handles configuration for uireport.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/devicelab-dev/uireport/pkg/core"
	"gopkg.in/yaml.v3"
)

// Defaults used when the config file leaves a field empty.
const (
	DefaultScreenshotsDir = "screenshots"
	DefaultReportsDir     = "reports"
	DefaultHistoryDB      = "history.db"
	DefaultLogFile        = "uireport.log"
	DefaultRunnerTimeout  = 5 * time.Minute
)

// Browser describes one browser the harness runs against. Run directories
// for it are named <Prefix><timestamp>.
type Browser struct {
	Name   string `yaml:"name"`
	Prefix string `yaml:"prefix"`
	Title  string `yaml:"title"`
}

// DefaultBrowsers are the two browsers the harness ships generators for.
var DefaultBrowsers = []Browser{
	{Name: "chrome", Prefix: "chrome_", Title: "Chrome"},
	{Name: "firefox", Prefix: "firefox_", Title: "Firefox"},
}

// Config represents the workspace configuration (config.yaml).
type Config struct {
	// Paths; relative values are resolved against BaseDir.
	BaseDir        string `yaml:"baseDir"`
	ScreenshotsDir string `yaml:"screenshotsDir"`
	ReportsDir     string `yaml:"reportsDir"`
	Catalog        string `yaml:"catalog"`   // Optional alternate catalog.yaml
	HistoryDB      string `yaml:"historyDB"` // Relative to the uireport home
	LogFile        string `yaml:"logFile"`   // Relative to ReportsDir

	// Screenshot matching
	Extensions []string  `yaml:"extensions"`
	Browsers   []Browser `yaml:"browsers"`

	// External test runner
	RunnerTimeout time.Duration `yaml:"runnerTimeout"`
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- user-provided config file
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	// baseDir is relative to the config file, not the cwd. Omitted means the
	// config file's directory.
	if !filepath.IsAbs(cfg.BaseDir) {
		cfg.BaseDir = filepath.Join(filepath.Dir(path), cfg.BaseDir)
	}
	return &cfg, nil
}

// LoadFromDir looks for config.yaml or config.yml in the directory.
func LoadFromDir(dir string) (*Config, error) {
	// Try config.yaml first
	configPath := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(configPath); err == nil {
		return Load(configPath)
	}

	// Try config.yml
	configPath = filepath.Join(dir, "config.yml")
	if _, err := os.Stat(configPath); err == nil {
		return Load(configPath)
	}

	// No config file found, return empty config
	return &Config{}, nil
}

// WithDefaults returns a copy with every empty field filled in.
func (c Config) WithDefaults() Config {
	if c.BaseDir == "" {
		if cwd, err := os.Getwd(); err == nil {
			c.BaseDir = cwd
		} else {
			c.BaseDir = "."
		}
	}
	if abs, err := filepath.Abs(c.BaseDir); err == nil {
		c.BaseDir = abs
	}
	if c.ScreenshotsDir == "" {
		c.ScreenshotsDir = DefaultScreenshotsDir
	}
	if c.ReportsDir == "" {
		c.ReportsDir = DefaultReportsDir
	}
	if c.HistoryDB == "" {
		c.HistoryDB = DefaultHistoryDB
	}
	if c.LogFile == "" {
		c.LogFile = DefaultLogFile
	}
	c.Extensions = core.NormalizeExtensions(c.Extensions)
	if len(c.Browsers) == 0 {
		c.Browsers = append([]Browser(nil), DefaultBrowsers...)
	}
	for i := range c.Browsers {
		b := &c.Browsers[i]
		if b.Prefix == "" {
			b.Prefix = b.Name + "_"
		}
		if b.Title == "" {
			b.Title = b.Name
		}
	}
	if c.RunnerTimeout <= 0 {
		c.RunnerTimeout = DefaultRunnerTimeout
	}
	return c
}

// ScreenshotsPath returns the absolute screenshots root.
func (c Config) ScreenshotsPath() string {
	return c.resolve(c.ScreenshotsDir)
}

// ReportsPath returns the absolute reports directory.
func (c Config) ReportsPath() string {
	return c.resolve(c.ReportsDir)
}

// CatalogPath returns the absolute catalog path, or "" when none is set.
func (c Config) CatalogPath() string {
	if c.Catalog == "" {
		return ""
	}
	return c.resolve(c.Catalog)
}

// LogPath returns the absolute log file path.
func (c Config) LogPath() string {
	if filepath.IsAbs(c.LogFile) {
		return c.LogFile
	}
	return filepath.Join(c.ReportsPath(), c.LogFile)
}

// HistoryPath returns the history database path. ":memory:" is passed through.
func (c Config) HistoryPath() string {
	if c.HistoryDB == ":memory:" || filepath.IsAbs(c.HistoryDB) {
		return c.HistoryDB
	}
	return filepath.Join(GetDataDir(), c.HistoryDB)
}

// Browser looks up a configured browser by name, case-insensitively.
func (c Config) Browser(name string) (Browser, bool) {
	for _, b := range c.Browsers {
		if strings.EqualFold(b.Name, name) {
			return b, true
		}
	}
	return Browser{}, false
}

// SelectBrowsers resolves a --browser value: a name, a comma-separated
// list, or "all".
func (c Config) SelectBrowsers(value string) ([]Browser, error) {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, "all") {
		return append([]Browser(nil), c.Browsers...), nil
	}
	var out []Browser
	for _, name := range strings.Split(value, ",") {
		name = strings.TrimSpace(name)
		b, ok := c.Browser(name)
		if !ok {
			return nil, fmt.Errorf("unknown browser %q (configured: %s)", name, strings.Join(c.browserNames(), ", "))
		}
		out = append(out, b)
	}
	return out, nil
}

func (c Config) browserNames() []string {
	names := make([]string, len(c.Browsers))
	for i, b := range c.Browsers {
		names[i] = b.Name
	}
	return names
}

func (c Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.BaseDir, p)
}
