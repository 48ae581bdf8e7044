package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Shop: ShopConfig{Name: "Main Street Garage"},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Notifications: NotificationsConfig{
			ServiceSlots: "0 9 * * 1-5",
		},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	if err := Validate(validConfig()); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestValidate_EmptyShopName(t *testing.T) {
	cfg := validConfig()
	cfg.Shop.Name = "  "
	if err := Validate(cfg); err != ErrEmptyShopName {
		t.Errorf("expected ErrEmptyShopName, got %v", err)
	}
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "verbose"
	if err := Validate(cfg); err != ErrInvalidLogLevel {
		t.Errorf("expected ErrInvalidLogLevel, got %v", err)
	}
}

func TestValidate_InvalidLogFormat(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Format = "xml"
	if err := Validate(cfg); err != ErrInvalidLogFormat {
		t.Errorf("expected ErrInvalidLogFormat, got %v", err)
	}
}

func TestValidate_InvalidServiceSlots(t *testing.T) {
	cfg := validConfig()
	cfg.Notifications.ServiceSlots = "every tuesday"
	if err := Validate(cfg); !errors.Is(err, ErrInvalidServiceSlots) {
		t.Errorf("expected ErrInvalidServiceSlots, got %v", err)
	}
}

func TestValidate_EmptyServiceSlotsAllowed(t *testing.T) {
	cfg := validConfig()
	cfg.Notifications.ServiceSlots = ""
	if err := Validate(cfg); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestValidate_InvalidTimezone(t *testing.T) {
	cfg := validConfig()
	cfg.Notifications.Timezone = "Mars/Olympus"
	if err := Validate(cfg); err != ErrInvalidTimezone {
		t.Errorf("expected ErrInvalidTimezone, got %v", err)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()
	tests := []struct {
		input    string
		expected string
	}{
		{"~/test", filepath.Join(home, "test")},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
	}
	for _, tc := range tests {
		result := expandPath(tc.input)
		if result != tc.expected {
			t.Errorf("expandPath(%q) = %q, want %q", tc.input, result, tc.expected)
		}
	}
}

func TestLoadFromPaths_Defaults(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := LoadFromPaths(tmpDir, filepath.Join(tmpDir, "nonexistent.yaml"))
	if err != nil {
		t.Fatalf("LoadFromPaths error: %v", err)
	}

	if cfg.Shop.Name != DefaultShopName {
		t.Errorf("Shop.Name = %q, want %q", cfg.Shop.Name, DefaultShopName)
	}
	if cfg.Logging.Level != DefaultLogLevel {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, DefaultLogLevel)
	}
	if cfg.Logging.Format != DefaultLogFormat {
		t.Errorf("Logging.Format = %q, want %q", cfg.Logging.Format, DefaultLogFormat)
	}
	if !cfg.Journal.Enabled {
		t.Error("Journal.Enabled = false, want true")
	}
	if cfg.Notifications.ServiceSlots != DefaultServiceSlots {
		t.Errorf("ServiceSlots = %q, want %q", cfg.Notifications.ServiceSlots, DefaultServiceSlots)
	}
	if len(cfg.Sources()) != 0 {
		t.Errorf("Sources() = %v, want none", cfg.Sources())
	}
}

func TestLoadFromPaths_WithYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ProjectConfigName)

	configContent := `
shop:
  name: "Main Street Garage"
logging:
  level: debug
journal:
  enabled: false
notifications:
  service_slots: "30 8 * * *"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPaths(tmpDir, filepath.Join(tmpDir, "nonexistent", "global.yaml"))
	if err != nil {
		t.Fatalf("LoadFromPaths error: %v", err)
	}

	if cfg.Shop.Name != "Main Street Garage" {
		t.Errorf("Shop.Name = %q", cfg.Shop.Name)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
	if cfg.Journal.Enabled {
		t.Error("Journal.Enabled = true, want false")
	}
	if cfg.Notifications.ServiceSlots != "30 8 * * *" {
		t.Errorf("ServiceSlots = %q", cfg.Notifications.ServiceSlots)
	}
	if got := cfg.Sources(); len(got) != 1 || got[0] != configPath {
		t.Errorf("Sources() = %v, want [%s]", got, configPath)
	}
}

func TestLoadFromPaths_MergeConfigs(t *testing.T) {
	tmpDir := t.TempDir()

	globalDir := filepath.Join(tmpDir, "global")
	if err := os.MkdirAll(globalDir, 0755); err != nil {
		t.Fatal(err)
	}
	globalConfig := filepath.Join(globalDir, "config.yaml")
	globalContent := `
shop:
  name: "Global Garage"
  manager_name: "Pat"
logging:
  level: info
  format: text
`
	if err := os.WriteFile(globalConfig, []byte(globalContent), 0644); err != nil {
		t.Fatal(err)
	}

	projectDir := filepath.Join(tmpDir, "project")
	if err := os.MkdirAll(projectDir, 0755); err != nil {
		t.Fatal(err)
	}
	projectContent := `
shop:
  name: "Branch Garage"
logging:
  level: debug
`
	if err := os.WriteFile(filepath.Join(projectDir, ProjectConfigName), []byte(projectContent), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPaths(projectDir, globalConfig)
	if err != nil {
		t.Fatalf("LoadFromPaths error: %v", err)
	}

	// Project overrides global
	if cfg.Shop.Name != "Branch Garage" {
		t.Errorf("Shop.Name = %q, want Branch Garage", cfg.Shop.Name)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	// Global values survive where project is silent
	if cfg.Shop.ManagerName != "Pat" {
		t.Errorf("Shop.ManagerName = %q, want Pat", cfg.Shop.ManagerName)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Logging.Format = %q, want text", cfg.Logging.Format)
	}
	if len(cfg.Sources()) != 2 {
		t.Errorf("Sources() = %v, want 2 files", cfg.Sources())
	}
}

func TestLoadFromPaths_EnvOverride(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("WORKSHOP_LOGGING_LEVEL", "warn")
	t.Setenv("WORKSHOP_SHOP_NAME", "Env Garage")

	cfg, err := LoadFromPaths(tmpDir, filepath.Join(tmpDir, "none.yaml"))
	if err != nil {
		t.Fatalf("LoadFromPaths error: %v", err)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}
	if cfg.Shop.Name != "Env Garage" {
		t.Errorf("Shop.Name = %q, want Env Garage", cfg.Shop.Name)
	}
}

func TestLoadFromPaths_InvalidFileRejected(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
logging:
  level: chatty
`
	if err := os.WriteFile(filepath.Join(tmpDir, ProjectConfigName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromPaths(tmpDir, filepath.Join(tmpDir, "none.yaml")); err != ErrInvalidLogLevel {
		t.Errorf("expected ErrInvalidLogLevel, got %v", err)
	}
}

func TestWatch_NoSources(t *testing.T) {
	cfg := validConfig()
	if err := Watch(cfg, func(*Config, error) {}); err != ErrNothingToWatch {
		t.Errorf("expected ErrNothingToWatch, got %v", err)
	}
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, ProjectConfigName)
	if err := os.WriteFile(path, []byte("logging:\n  level: info\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPaths(tmpDir, filepath.Join(tmpDir, "none.yaml"))
	if err != nil {
		t.Fatalf("LoadFromPaths error: %v", err)
	}

	reloaded := make(chan *Config, 4)
	if err := Watch(cfg, func(c *Config, err error) {
		if err == nil {
			reloaded <- c
		}
	}); err != nil {
		t.Fatalf("Watch error: %v", err)
	}

	if err := os.WriteFile(path, []byte("logging:\n  level: debug\n"), 0644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case c := <-reloaded:
			if c.Logging.Level == "debug" {
				return
			}
		case <-deadline:
			t.Fatal("config change not observed")
		}
	}
}
