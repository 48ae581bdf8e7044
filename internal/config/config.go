// Package config handles loading and validating workshop configuration.
// Supports a global YAML file, a per-directory YAML file, .env files and
// WORKSHOP_* environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

// Config holds all workshop configuration.
type Config struct {
	Shop          ShopConfig          `mapstructure:"shop"`
	Logging       LoggingConfig       `mapstructure:"logging"`
	Journal       JournalConfig       `mapstructure:"journal"`
	Notifications NotificationsConfig `mapstructure:"notifications"`
	UI            UIConfig            `mapstructure:"ui"`

	// Files that were actually read, global first.
	sources    []string
	projectDir string
	globalPath string
}

// ShopConfig describes the shop itself.
type ShopConfig struct {
	Name        string `mapstructure:"name"`
	ManagerName string `mapstructure:"manager_name"`
}

// LoggingConfig controls structured logging.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Path   string `mapstructure:"path"`   // log directory
	Format string `mapstructure:"format"` // json, text
}

// JournalConfig controls the activity journal database.
type JournalConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// NotificationsConfig controls customer notifications.
type NotificationsConfig struct {
	// ServiceSlots is a standard 5-field cron expression describing when
	// the shop takes bookings. Empty disables the "next slot" line.
	ServiceSlots string `mapstructure:"service_slots"`
	Timezone     string `mapstructure:"timezone"`
}

// UIConfig controls console rendering.
type UIConfig struct {
	NoColor bool `mapstructure:"no_color"`
}

// Defaults.
const (
	DefaultShopName     = "Workshop"
	DefaultManagerName  = "Manager"
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "json"
	DefaultLogPath      = "~/.local/share/workshop/logs"
	DefaultJournalPath  = "~/.local/share/workshop/workshop.db"
	DefaultServiceSlots = "0 9 * * 1-5"

	ProjectConfigName = "workshop.yaml"
	EnvPrefix         = "WORKSHOP"
)

// Validation errors.
var (
	ErrEmptyShopName       = errors.New("shop.name must not be empty")
	ErrInvalidLogLevel     = errors.New("logging.level must be one of debug, info, warn, error")
	ErrInvalidLogFormat    = errors.New("logging.format must be json or text")
	ErrInvalidServiceSlots = errors.New("notifications.service_slots is not a valid cron expression")
	ErrInvalidTimezone     = errors.New("notifications.timezone is not a known location")
)

// DefaultGlobalPath returns the default global config file path.
func DefaultGlobalPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "workshop", "config.yaml")
}

// Load reads configuration for the current directory. A .env file in the
// working directory is applied to the environment first.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}
	return LoadFromPaths(wd, "")
}

// LoadFromPaths loads the global config then merges workshop.yaml from
// projectDir on top of it. Missing files are skipped. An empty globalPath
// means DefaultGlobalPath.
func LoadFromPaths(projectDir, globalPath string) (*Config, error) {
	if globalPath == "" {
		globalPath = DefaultGlobalPath()
	}

	v := newViper()
	var sources []string

	if fileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config %s: %w", globalPath, err)
		}
		sources = append(sources, globalPath)
	}

	if projectDir != "" {
		projectPath := filepath.Join(projectDir, ProjectConfigName)
		if fileExists(projectPath) && projectPath != globalPath {
			v.SetConfigFile(projectPath)
			if err := v.MergeInConfig(); err != nil {
				return nil, fmt.Errorf("reading project config %s: %w", projectPath, err)
			}
			sources = append(sources, projectPath)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.sources = sources
	cfg.projectDir = projectDir
	cfg.globalPath = globalPath

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetDefault("shop.name", DefaultShopName)
	v.SetDefault("shop.manager_name", DefaultManagerName)
	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)
	v.SetDefault("logging.path", DefaultLogPath)
	v.SetDefault("journal.enabled", true)
	v.SetDefault("journal.path", DefaultJournalPath)
	v.SetDefault("notifications.service_slots", DefaultServiceSlots)
	v.SetDefault("notifications.timezone", "Local")
	v.SetDefault("ui.no_color", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Validate checks the configuration for invalid values.
func Validate(cfg *Config) error {
	if strings.TrimSpace(cfg.Shop.Name) == "" {
		return ErrEmptyShopName
	}

	switch strings.ToLower(cfg.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return ErrInvalidLogLevel
	}

	switch strings.ToLower(cfg.Logging.Format) {
	case "json", "text":
	default:
		return ErrInvalidLogFormat
	}

	if cfg.Notifications.ServiceSlots != "" {
		if _, err := cron.ParseStandard(cfg.Notifications.ServiceSlots); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidServiceSlots, err)
		}
	}

	if cfg.Notifications.Timezone != "" {
		if _, err := time.LoadLocation(cfg.Notifications.Timezone); err != nil {
			return ErrInvalidTimezone
		}
	}

	return nil
}

// Sources returns the config files that were read, lowest precedence first.
func (c *Config) Sources() []string {
	return append([]string(nil), c.sources...)
}

// ExpandedLogPath returns the log directory with ~ expanded.
func (c *Config) ExpandedLogPath() string {
	return expandPath(c.Logging.Path)
}

// ExpandedJournalPath returns the journal database path with ~ expanded.
func (c *Config) ExpandedJournalPath() string {
	return expandPath(c.Journal.Path)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
