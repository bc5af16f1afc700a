// Package logging configures the process-wide logrus logger. The dashboard
// TUI owns stdout, so its session logs go to a file; one-shot commands log
// to stderr.
package logging

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

// Options selects the log sink and verbosity.
type Options struct {
	// File receives the log stream when set; required for TUI sessions.
	File string
	// ToFile forces a file sink even when File is empty, discarding output.
	ToFile  bool
	Verbose bool
	Debug   bool
}

// Setup configures the standard logrus logger and returns a closer for the
// log file, if one was opened.
func Setup(opts Options) (io.Closer, error) {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	switch {
	case opts.Debug:
		log.SetLevel(log.DebugLevel)
	case opts.Verbose:
		log.SetLevel(log.InfoLevel)
	default:
		log.SetLevel(log.WarnLevel)
	}

	if !opts.ToFile {
		log.SetOutput(os.Stderr)
		return nil, nil
	}

	if opts.File == "" {
		log.SetOutput(io.Discard)
		return nil, nil
	}

	f, err := os.OpenFile(opts.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	return f, nil
}
