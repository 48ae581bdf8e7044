package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/marcus/workshop/internal/logging"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "View session logs",
	Long: `View workshop session logs.

Shows the most recent entries across the daily log files. Use --follow to
stream new entries as they are written, or --export to copy every file
into one.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tail, _ := cmd.Flags().GetInt("tail")
		follow, _ := cmd.Flags().GetBool("follow")
		export, _ := cmd.Flags().GetString("export")
		level, _ := cmd.Flags().GetString("level")
		component, _ := cmd.Flags().GetString("component")

		dir := logging.DefaultDir()
		if cfg, err := loadConfigForCmd(cmd); err == nil {
			dir = cfg.ExpandedLogPath()
		}

		out := cmd.OutOrStdout()
		if export != "" {
			return exportLogs(out, dir, export)
		}

		f := logFilter{minLevel: level, component: component}
		if follow {
			return followLogs(cmd.Context(), out, dir, tail, f)
		}
		return showLogs(out, dir, tail, f)
	},
}

func init() {
	logsCmd.Flags().IntP("tail", "n", 50, "Number of log lines to show")
	logsCmd.Flags().BoolP("follow", "f", false, "Follow log output")
	logsCmd.Flags().StringP("export", "e", "", "Export logs to file")
	logsCmd.Flags().String("level", "", "Only show entries at or above this level")
	logsCmd.Flags().String("component", "", "Only show entries from this component (shop, console, journal, db)")
	rootCmd.AddCommand(logsCmd)
}

// logEntry is the subset of a zerolog JSON line the viewer understands.
type logEntry struct {
	Level     string    `json:"level"`
	Time      time.Time `json:"time"`
	Message   string    `json:"message"`
	Component string    `json:"component,omitempty"`
	Error     string    `json:"error,omitempty"`
	TaskID    int       `json:"task_id,omitempty"`
	Mechanic  int       `json:"mechanic_id,omitempty"`
	Customer  int       `json:"customer_id,omitempty"`
}

var levelRank = map[string]int{"debug": 0, "info": 1, "warn": 2, "error": 3}

type logFilter struct {
	minLevel  string
	component string
}

func (f logFilter) empty() bool { return f.minLevel == "" && f.component == "" }

// keep reports whether a raw log line passes the filter. Lines that are not
// JSON entries only pass an empty filter.
func (f logFilter) keep(line string) bool {
	entry, ok := parseEntry(line)
	if !ok {
		return f.empty()
	}
	if f.component != "" && !strings.EqualFold(entry.Component, f.component) {
		return false
	}
	if f.minLevel != "" {
		floor, known := levelRank[strings.ToLower(f.minLevel)]
		if known && levelRank[entry.Level] < floor {
			return false
		}
	}
	return true
}

func parseEntry(line string) (logEntry, bool) {
	var entry logEntry
	if err := json.Unmarshal([]byte(line), &entry); err != nil || entry.Level == "" {
		return logEntry{}, false
	}
	return entry, true
}

func getLogFiles(dir string) ([]string, error) {
	files, err := logging.Files(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading log dir: %w", err)
	}
	return files, nil
}

func showLogs(w io.Writer, dir string, n int, f logFilter) error {
	files, err := getLogFiles(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(w, "No log files found.")
		return nil
	}

	for _, line := range readLastLines(files, n, f) {
		fmt.Fprintln(w, formatLogLine(line))
	}
	return nil
}

// dayTail reads lines appended to today's log file, switching files when
// the date rolls over.
type dayTail struct {
	dir  string
	path string
	file *os.File
	r    *bufio.Reader
}

// open starts reading today's file. With seekEnd only lines written after
// the call are returned.
func (t *dayTail) open(seekEnd bool) {
	t.close()
	t.path = currentLogFile(t.dir)
	if t.path == "" {
		return
	}
	f, err := os.Open(t.path)
	if err != nil {
		t.path = ""
		return
	}
	if seekEnd {
		_, _ = f.Seek(0, io.SeekEnd)
	}
	t.file, t.r = f, bufio.NewReader(f)
}

func (t *dayTail) rolled() bool {
	return currentLogFile(t.dir) != t.path
}

func (t *dayTail) drain(emit func(string)) {
	if t.r == nil {
		return
	}
	for {
		line, err := t.r.ReadString('\n')
		if err != nil {
			return
		}
		emit(strings.TrimSuffix(line, "\n"))
	}
}

func (t *dayTail) close() {
	if t.file != nil {
		_ = t.file.Close()
	}
	t.file, t.r = nil, nil
}

func followLogs(ctx context.Context, w io.Writer, dir string, initialLines int, f logFilter) error {
	if ctx == nil {
		ctx = context.Background()
	}
	files, err := getLogFiles(dir)
	if err != nil {
		return err
	}
	for _, line := range readLastLines(files, initialLines, f) {
		fmt.Fprintln(w, formatLogLine(line))
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating log dir: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching log dir: %w", err)
	}

	tail := &dayTail{dir: dir}
	tail.open(true)
	defer tail.close()

	emit := func(line string) {
		if f.keep(line) {
			fmt.Fprintln(w, formatLogLine(line))
		}
	}

	fmt.Fprintln(w, "--- Following logs (Ctrl+C to exit) ---")
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if tail.rolled() {
				tail.open(false)
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				tail.drain(emit)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.Component("logs").WarnCtx("watcher error", map[string]any{"error": err.Error()})
		}
	}
}

func exportLogs(w io.Writer, dir, outFile string) error {
	files, err := getLogFiles(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return errors.New("no log files found")
	}

	out, err := os.Create(outFile)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer out.Close()

	written := 0
	for i := len(files) - 1; i >= 0; i-- {
		for _, line := range readFileLines(files[i]) {
			if _, err := fmt.Fprintln(out, line); err != nil {
				return fmt.Errorf("writing export: %w", err)
			}
			written++
		}
	}

	fmt.Fprintf(w, "Exported %d log lines to %s\n", written, outFile)
	return nil
}

func currentLogFile(dir string) string {
	path := filepath.Join(dir, logging.FileName(time.Now()))
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// readLastLines returns up to n matching lines from files (newest file
// first), in chronological order.
func readLastLines(files []string, n int, f logFilter) []string {
	var lines []string
	for _, file := range files {
		if len(lines) >= n {
			break
		}
		var kept []string
		for _, line := range readFileLines(file) {
			if f.keep(line) {
				kept = append(kept, line)
			}
		}
		if room := n - len(lines); len(kept) > room {
			kept = kept[len(kept)-room:]
		}
		lines = append(kept, lines...)
	}
	return lines
}

func readFileLines(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines
}

// formatLogLine renders a JSON entry as "15:04:05 INF [component] message
// key=value"; anything else is returned unchanged.
func formatLogLine(line string) string {
	entry, ok := parseEntry(line)
	if !ok {
		return line
	}

	var b strings.Builder
	b.WriteString(entry.Time.Format("15:04:05") + " " + formatLogLevel(entry.Level))
	if entry.Component != "" {
		b.WriteString(" [" + entry.Component + "]")
	}
	b.WriteString(" " + entry.Message)
	for _, kv := range []struct {
		key string
		val int
	}{{"task", entry.TaskID}, {"mechanic", entry.Mechanic}, {"customer", entry.Customer}} {
		if kv.val != 0 {
			fmt.Fprintf(&b, " %s=%d", kv.key, kv.val)
		}
	}
	if entry.Error != "" {
		b.WriteString(" error=" + entry.Error)
	}
	return b.String()
}

func formatLogLevel(level string) string {
	switch level {
	case "debug":
		return "DBG"
	case "info":
		return "INF"
	case "warn":
		return "WRN"
	case "error":
		return "ERR"
	}
	if len(level) < 3 {
		return strings.ToUpper(level)
	}
	return strings.ToUpper(level[:3])
}
