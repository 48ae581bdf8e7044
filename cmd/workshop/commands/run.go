package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/marcus/workshop/internal/config"
	"github.com/marcus/workshop/internal/console"
	"github.com/marcus/workshop/internal/db"
	"github.com/marcus/workshop/internal/hours"
	"github.com/marcus/workshop/internal/journal"
	"github.com/marcus/workshop/internal/logging"
	"github.com/marcus/workshop/internal/notify"
	"github.com/marcus/workshop/internal/ui"
	"github.com/marcus/workshop/internal/workshop"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start an interactive workshop session",
	Long: `Start an interactive console session.

The manager registers customers, queues tasks and assigns them to mechanics;
mechanics sign in by name to work through their tasks and request parts.
Nothing is kept between sessions. Workflow events are appended to the
journal database unless it is disabled.`,
	RunE: startSession,
}

func init() {
	addSessionFlags(runCmd)
	rootCmd.AddCommand(runCmd)
}

// addSessionFlags registers the flags that shape an interactive session.
// Both the root command and run accept them.
func addSessionFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("no-journal", false, "Do not record this session in the journal")
	cmd.Flags().Bool("no-color", false, "Disable colored output")
}

// applySessionFlags folds the session flags into cfg.
func applySessionFlags(cmd *cobra.Command, cfg *config.Config) error {
	noJournal, err := cmd.Flags().GetBool("no-journal")
	if err != nil {
		return err
	}
	noColor, err := cmd.Flags().GetBool("no-color")
	if err != nil {
		return err
	}
	if noJournal {
		cfg.Journal.Enabled = false
	}
	if noColor {
		cfg.UI.NoColor = true
	}
	return nil
}

func startSession(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfigForCmd(cmd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := applySessionFlags(cmd, cfg); err != nil {
		return err
	}
	return runSession(cmd.Context(), cfg, cmd.InOrStdin(), cmd.OutOrStdout(), ui.Run)
}

// runSession wires the shop for cfg and drives the console until the user
// exits or input ends.
func runSession(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer, board console.BoardFunc) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if err := initLogging(cfg); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = logging.Get().Close() }()
	log := logging.Component("session")

	err := config.Watch(cfg, func(next *config.Config, err error) {
		if err != nil {
			log.WarnCtx("config reload failed", map[string]any{"error": err.Error()})
			return
		}
		if err := logging.SetLevel(next.Logging.Level); err != nil {
			log.WarnCtx("config reload: bad log level", map[string]any{"error": err.Error()})
			return
		}
		log.InfoCtx("config reloaded", map[string]any{"level": next.Logging.Level})
	})
	if err != nil && !errors.Is(err, config.ErrNothingToWatch) {
		log.WarnCtx("config watch unavailable", map[string]any{"error": err.Error()})
	}

	slots, err := hours.NewFromConfig(&cfg.Notifications)
	if err != nil && !errors.Is(err, hours.ErrNoSchedule) {
		return fmt.Errorf("service slots: %w", err)
	}

	opts := []workshop.Option{
		workshop.WithManager(cfg.Shop.ManagerName),
		workshop.WithNotifier(notify.New(slots)),
	}

	if cfg.Journal.Enabled {
		database, err := db.Open(cfg.ExpandedJournalPath())
		if err != nil {
			return fmt.Errorf("opening journal db: %w", err)
		}
		defer func() { _ = database.Close() }()

		j, err := journal.Open(ctx, database, cfg.Shop.Name)
		if err != nil {
			return fmt.Errorf("opening journal: %w", err)
		}
		defer func() {
			if err := j.Close(context.Background()); err != nil {
				log.WarnCtx("closing journal", map[string]any{"error": err.Error()})
			}
		}()
		opts = append(opts, workshop.WithJournal(j))
		log.InfoCtx("journal session opened", map[string]any{"session_id": j.SessionID()})
	}

	shop := workshop.New(cfg.Shop.Name, opts...)
	log.InfoCtx("session starting", map[string]any{
		"shop":    cfg.Shop.Name,
		"manager": cfg.Shop.ManagerName,
		"journal": cfg.Journal.Enabled,
	})

	c := console.New(shop, in, out,
		console.WithNoColor(cfg.UI.NoColor),
		console.WithBoard(board),
	)
	return c.Run(ctx)
}
