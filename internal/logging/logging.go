// Package logging provides structured logging for workshop sessions.
// Log lines go to one file per day (workshop-YYYY-MM-DD.log) in JSON or
// text format; old files are pruned after a retention period.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	filePrefix = "workshop-"
	fileSuffix = ".log"
	dateLayout = "2006-01-02"

	defaultRetentionDays = 7
)

// Logger is a zerolog logger bound to a workshop component.
type Logger struct {
	zl        zerolog.Logger
	component string
	file      *os.File
	mu        sync.Mutex
}

// Config holds logging configuration.
type Config struct {
	Level         string    // debug, info, warn, error
	Path          string    // log directory; empty logs to Output
	Format        string    // json, text
	RetentionDays int       // days of files to keep
	Output        io.Writer // used when Path is empty (default stderr)
}

// DefaultConfig logs JSON at info level into DefaultDir.
func DefaultConfig() Config {
	return Config{
		Level:         "info",
		Path:          DefaultDir(),
		Format:        "json",
		RetentionDays: defaultRetentionDays,
	}
}

// DefaultDir is where log files go unless configured otherwise.
func DefaultDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "workshop", "logs")
}

var (
	global   *Logger
	globalMu sync.RWMutex
)

// Init replaces the process logger. Its level is process-wide and can
// later be changed with SetLevel.
func Init(cfg Config) error {
	logger, err := build(cfg, true)
	if err != nil {
		return err
	}

	globalMu.Lock()
	defer globalMu.Unlock()
	if global != nil {
		_ = global.Close()
	}
	global = logger
	return nil
}

// New creates a standalone Logger that is not returned by Get. It filters at
// cfg.Level, and SetLevel still applies as a process-wide floor.
func New(cfg Config) (*Logger, error) {
	return build(cfg, false)
}

func build(cfg Config, process bool) (*Logger, error) {
	cfg = withDefaults(cfg)

	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if process {
		zerolog.SetGlobalLevel(level)
		level = zerolog.TraceLevel
	}

	logger := &Logger{}
	var out io.Writer = os.Stderr
	if cfg.Output != nil {
		out = cfg.Output
	}
	if cfg.Path != "" {
		dir := expandPath(cfg.Path)
		f, err := openDayFile(dir, time.Now())
		if err != nil {
			return nil, err
		}
		logger.file = f
		out = f
		go prune(dir, cfg.RetentionDays, time.Now())
	}
	if cfg.Format == "text" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: true}
	}

	logger.zl = zerolog.New(out).Level(level).With().Timestamp().Logger()
	return logger, nil
}

func withDefaults(cfg Config) Config {
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	if cfg.Format == "" {
		cfg.Format = "json"
	}
	if cfg.RetentionDays <= 0 {
		cfg.RetentionDays = defaultRetentionDays
	}
	return cfg
}

// FileName is the log file written on day.
func FileName(day time.Time) string {
	return filePrefix + day.Format(dateLayout) + fileSuffix
}

func openDayFile(dir string, day time.Time) (*os.File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating log dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, FileName(day)), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}

// prune removes day files older than retentionDays before now.
func prune(dir string, retentionDays int, now time.Time) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	cutoff := now.AddDate(0, 0, -retentionDays)
	for _, entry := range entries {
		if day, ok := fileDate(entry); ok && day.Before(cutoff) {
			_ = os.Remove(filepath.Join(dir, entry.Name()))
		}
	}
}

func fileDate(entry os.DirEntry) (time.Time, bool) {
	name := entry.Name()
	if entry.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
		return time.Time{}, false
	}
	day, err := time.Parse(dateLayout, strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileSuffix))
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}

// WithComponent returns a child logger tagged with component.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		zl:        l.zl.With().Str("component", component).Logger(),
		component: component,
		file:      l.file,
	}
}

func (l *Logger) Debug(msg string) { l.zl.Debug().Msg(msg) }
func (l *Logger) Info(msg string)  { l.zl.Info().Msg(msg) }
func (l *Logger) Warn(msg string)  { l.zl.Warn().Msg(msg) }
func (l *Logger) Error(msg string) { l.zl.Error().Msg(msg) }

// DebugCtx logs msg with structured fields.
func (l *Logger) DebugCtx(msg string, fields map[string]any) {
	l.zl.Debug().Fields(fields).Msg(msg)
}

// InfoCtx logs msg with structured fields.
func (l *Logger) InfoCtx(msg string, fields map[string]any) {
	l.zl.Info().Fields(fields).Msg(msg)
}

// WarnCtx logs msg with structured fields.
func (l *Logger) WarnCtx(msg string, fields map[string]any) {
	l.zl.Warn().Fields(fields).Msg(msg)
}

// ErrorCtx logs msg with structured fields.
func (l *Logger) ErrorCtx(msg string, fields map[string]any) {
	l.zl.Error().Fields(fields).Msg(msg)
}

// Close closes the log file. Component loggers share the parent's file
// and never close it.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil || l.component != "" {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// Files lists the workshop log files in dir, newest first.
func Files(dir string) ([]string, error) {
	dir = expandPath(dir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if _, ok := fileDate(entry); ok {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(files)))
	return files, nil
}

// Get returns the process logger, or a stderr logger before Init.
func Get() *Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	if global == nil {
		return &Logger{zl: zerolog.New(os.Stderr).With().Timestamp().Logger()}
	}
	return global
}

// Component is shorthand for Get().WithComponent(name).
func Component(name string) *Logger {
	return Get().WithComponent(name)
}

// SetLevel changes the process-wide minimum level. It bounds every Logger,
// including ones made with New.
// Safe to call from any goroutine.
func SetLevel(level string) error {
	lvl, err := parseLevel(level)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(lvl)
	return nil
}

func parseLevel(level string) (zerolog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel, nil
	case "info":
		return zerolog.InfoLevel, nil
	case "warn":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	}
	return zerolog.InfoLevel, fmt.Errorf("invalid log level: %s", level)
}

func expandPath(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
