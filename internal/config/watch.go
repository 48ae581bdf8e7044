package config

import (
	"errors"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// ErrNothingToWatch is returned by Watch when no config file was loaded.
var ErrNothingToWatch = errors.New("no config file to watch")

// Watch reloads the configuration whenever the highest-precedence config
// file changes and passes the result to onChange. Reload errors are passed
// through with a nil config; the previous config stays in effect.
// The callback runs on viper's watcher goroutine.
func Watch(cfg *Config, onChange func(*Config, error)) error {
	if len(cfg.sources) == 0 {
		return ErrNothingToWatch
	}

	v := viper.New()
	v.SetConfigFile(cfg.sources[len(cfg.sources)-1])
	if err := v.ReadInConfig(); err != nil {
		return err
	}

	projectDir, globalPath := cfg.projectDir, cfg.globalPath
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		onChange(LoadFromPaths(projectDir, globalPath))
	})
	v.WatchConfig()
	return nil
}
