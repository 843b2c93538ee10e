package main

import (
	"os"

	"github.com/ramsteak/FileSweep/internals"
)

// resolveConfig finds and loads the configuration document, honoring an
// explicit --config path before falling back to FindConfigFile's search.
func resolveConfig() (internals.Config, error) {
	path := argConfigFile
	if path == "" {
		found, err := internals.FindConfigFile()
		if err != nil {
			return internals.Config{}, err
		}
		path = found
	}
	return internals.LoadConfig(path)
}

// buildLogger assembles the run's Logger from the resolved config's logging
// section, escalated to debug level when --verbose is passed.
func buildLogger(cfg internals.Config) *internals.Logger {
	level := internals.ParseLevel(cfg.Logging.Level)
	if argVerbose {
		level = internals.LevelDebug
	}
	logger := internals.NewLogger("filesweep", level, os.Stderr)
	if cfg.Logging.File != "" {
		if f, err := os.OpenFile(cfg.Logging.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644); err == nil {
			logger = logger.WithFile(f)
		} else {
			logger.Warnf("could not open log file %s: %v", cfg.Logging.File, err)
		}
	}
	return logger
}

// directoryRoots extracts every configured directory path, used to build
// the default trasher's search order.
func directoryRoots(cfg internals.Config) []string {
	roots := make([]string, 0, len(cfg.Directories))
	for _, d := range cfg.Directories {
		roots = append(roots, d.Path)
	}
	return roots
}
