package commands

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/marcus/workshop/internal/config"
	"github.com/marcus/workshop/internal/hours"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show where configuration was read from and the values in effect after
defaults, config files, .env and WORKSHOP_* environment overrides.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfigForCmd(cmd)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		slots, _ := cmd.Flags().GetInt("slots")
		return printConfig(cmd.OutOrStdout(), cfg, time.Now(), slots)
	},
}

func init() {
	configCmd.Flags().Int("slots", 3, "Number of upcoming service slots to list")
	rootCmd.AddCommand(configCmd)
}

func printConfig(w io.Writer, cfg *config.Config, now time.Time, n int) error {
	fmt.Fprintln(w, "Sources:")
	sources := cfg.Sources()
	if len(sources) == 0 {
		fmt.Fprintln(w, "  (defaults only)")
	}
	for _, s := range sources {
		fmt.Fprintf(w, "  %s\n", s)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Shop:          %s (manager: %s)\n", cfg.Shop.Name, cfg.Shop.ManagerName)
	fmt.Fprintf(w, "Logging:       %s, %s, %s\n", cfg.Logging.Level, cfg.Logging.Format, cfg.ExpandedLogPath())
	if cfg.Journal.Enabled {
		fmt.Fprintf(w, "Journal:       %s\n", cfg.ExpandedJournalPath())
	} else {
		fmt.Fprintln(w, "Journal:       disabled")
	}
	fmt.Fprintf(w, "No color:      %t\n", cfg.UI.NoColor)

	slots, err := hours.NewFromConfig(&cfg.Notifications)
	if errors.Is(err, hours.ErrNoSchedule) {
		fmt.Fprintln(w, "Service slots: none")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Service slots: %s (%s)\n", slots.Expr(), cfg.Notifications.Timezone)
	for _, t := range slots.Upcoming(now, n) {
		fmt.Fprintf(w, "  %s\n", hours.Format(t))
	}
	return nil
}
