// Package diagnostics sets up this codebase's structured logger.
package diagnostics

import (
	"os"

	log "github.com/sirupsen/logrus"
	"golang.org/x/term"
)

// New returns a logger writing to stderr: a human-readable formatter
// when stderr is a terminal, and JSON lines otherwise so a CI pipeline
// can consume a run's diagnostics without scraping text meant for a
// human.
func New(verbose bool) *log.Logger {
	l := log.New()
	l.SetOutput(os.Stderr)
	if term.IsTerminal(int(os.Stderr.Fd())) {
		l.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	} else {
		l.SetFormatter(&log.JSONFormatter{})
	}
	l.SetLevel(log.InfoLevel)
	if verbose {
		l.SetLevel(log.DebugLevel)
	}
	return l
}
