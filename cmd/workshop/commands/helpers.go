package commands

import (
	"github.com/spf13/cobra"

	"github.com/marcus/workshop/internal/config"
	"github.com/marcus/workshop/internal/logging"
)

// loadConfig loads configuration for dir, or the working directory when
// dir is empty.
func loadConfig(dir string) (*config.Config, error) {
	if dir == "" {
		return config.Load()
	}
	return config.LoadFromPaths(dir, "")
}

// loadConfigForCmd applies the persistent --dir and --verbose flags.
func loadConfigForCmd(cmd *cobra.Command) (*config.Config, error) {
	dir, _ := cmd.Flags().GetString("dir")
	cfg, err := loadConfig(dir)
	if err != nil {
		return nil, err
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cfg.Logging.Level = "debug"
	}
	return cfg, nil
}

// initLogging initializes the logging subsystem.
func initLogging(cfg *config.Config) error {
	return logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Path:   cfg.ExpandedLogPath(),
		Format: cfg.Logging.Format,
	})
}
