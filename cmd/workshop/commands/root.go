// Package commands implements the workshop CLI commands using cobra.
package commands

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version is set at build time
	Version = "0.1.0"
)

var rootCmd = &cobra.Command{
	Use:   "workshop",
	Short: "Console manager for a vehicle repair workshop",
	Long: `Workshop keeps track of customers, mechanics, parts suppliers and the
prioritized queue of repair tasks for a single shop.

Run without arguments to start an interactive session. Configure the shop in
workshop.yaml or ~/.config/workshop/config.yaml.`,
	Version:      Version,
	SilenceUsage: true,
	RunE:         startSession,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable verbose output")
	rootCmd.PersistentFlags().String("dir", "", "Directory holding workshop.yaml (default: current directory)")
	addSessionFlags(rootCmd)
}
