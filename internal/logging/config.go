// Package logging provides structured file logging for rmgrid.
package logging

import (
	"os"
	"path/filepath"

	"github.com/cristianoliveira/rmgrid/internal/config"
)

// Config controls the file logger.
type Config struct {
	Enabled  bool
	Level    string // debug, info, warn or error
	MaxFiles int    // log files kept after rotation
	Command  string // recorded on every entry and in the file name
	PID      int
}

// FromGlobalConfig reads the logging keys of the loaded configuration.
// debug forces the debug level; quiet (without debug) forces error.
func FromGlobalConfig() Config {
	level := config.Get("logging_level", "info")
	if config.GetBool("debug", false) {
		level = "debug"
	} else if config.GetBool("quiet", false) {
		level = "error"
	}
	return Config{
		Enabled:  config.GetBool("logging_enabled", false),
		Level:    level,
		MaxFiles: config.GetInt("logging_max_files", 10),
		Command:  filepath.Base(os.Args[0]),
		PID:      os.Getpid(),
	}
}

// LogDir returns {state_dir}/logs, or {TMPDIR}/rmgrid/logs when the state
// directory cannot be written.
func LogDir() (string, error) {
	if stateDir := config.Get("state_dir", ""); stateDir != "" {
		dir := filepath.Join(stateDir, "logs")
		if writable(dir) {
			return dir, nil
		}
	}
	dir := filepath.Join(os.TempDir(), config.AppName, "logs")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	return dir, nil
}

func writable(dir string) bool {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return false
	}
	f, err := os.CreateTemp(dir, ".probe-*")
	if err != nil {
		return false
	}
	name := f.Name()
	f.Close()
	return os.Remove(name) == nil
}
