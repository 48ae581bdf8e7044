package commands

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/marcus/workshop/internal/db"
	"github.com/marcus/workshop/internal/journal"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show journaled workshop activity",
	Long: `Show events recorded by past and current sessions.

The journal is an audit trail only; sessions never load it back.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("tail")
		session, _ := cmd.Flags().GetString("session")
		kind, _ := cmd.Flags().GetString("kind")
		listSessions, _ := cmd.Flags().GetBool("sessions")

		cfg, err := loadConfigForCmd(cmd)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		database, err := db.Open(cfg.ExpandedJournalPath())
		if err != nil {
			return fmt.Errorf("opening journal db: %w", err)
		}
		defer func() { _ = database.Close() }()

		out := cmd.OutOrStdout()
		if listSessions {
			sessions, err := journal.Sessions(cmd.Context(), database, limit)
			if err != nil {
				return err
			}
			return printSessions(out, sessions, time.Now())
		}

		events, err := journal.Recent(cmd.Context(), database, journal.Query{
			SessionID: session,
			Kind:      journal.Kind(kind),
			Limit:     limit,
		})
		if err != nil {
			return err
		}
		return printEvents(out, events, time.Now())
	},
}

func init() {
	historyCmd.Flags().IntP("tail", "n", 20, "Number of entries to show")
	historyCmd.Flags().String("session", "", "Only show events from this session id")
	historyCmd.Flags().String("kind", "", "Only show events of this kind (e.g. task_assigned)")
	historyCmd.Flags().Bool("sessions", false, "List sessions instead of events")
	rootCmd.AddCommand(historyCmd)
}

func printEvents(w io.Writer, events []journal.Event, now time.Time) error {
	if len(events) == 0 {
		_, err := fmt.Fprintln(w, "No journal events recorded.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tKIND\tTASK\tMECHANIC\tCUSTOMER\tDETAIL")
	for _, e := range events {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			humanize.RelTime(e.Time, now, "ago", "from now"),
			e.Kind,
			idOrDash(e.TaskID),
			idOrDash(e.MechanicID),
			idOrDash(e.CustomerID),
			e.Detail,
		)
	}
	return tw.Flush()
}

func printSessions(w io.Writer, sessions []journal.Session, now time.Time) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions recorded.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SESSION\tSHOP\tSTARTED\tENDED\tEVENTS")
	for _, s := range sessions {
		ended := "open"
		if !s.EndedAt.IsZero() {
			ended = humanize.RelTime(s.EndedAt, now, "ago", "from now")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			s.ID,
			s.ShopName,
			humanize.RelTime(s.StartedAt, now, "ago", "from now"),
			ended,
			humanize.Comma(int64(s.Events)),
		)
	}
	return tw.Flush()
}

func idOrDash(id int) string {
	if id == 0 {
		return "-"
	}
	return strconv.Itoa(id)
}
