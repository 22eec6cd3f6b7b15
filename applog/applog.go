package applog

import (
	"io"
	"log"
)

// Loggers groups the three leveled loggers used across the scraper
type Loggers struct {
	Info  *log.Logger
	Error *log.Logger
	Debug *log.Logger
}

// New creates loggers writing info/debug to stdout and errors to stderr.
// Debug output is discarded unless verbose is set.
func New(stdout, stderr io.Writer, verbose bool) *Loggers {
	l := &Loggers{
		Info:  log.New(stdout, "INFO: ", log.Ldate|log.Ltime),
		Error: log.New(stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile),
		Debug: log.New(io.Discard, "", 0),
	}
	if verbose {
		l.Debug = log.New(stdout, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)
	}
	return l
}

// Discard returns loggers that drop everything
func Discard() *Loggers {
	return &Loggers{
		Info:  log.New(io.Discard, "", 0),
		Error: log.New(io.Discard, "", 0),
		Debug: log.New(io.Discard, "", 0),
	}
}

// OrDiscard returns l, or discarding loggers when l is nil
func OrDiscard(l *Loggers) *Loggers {
	if l == nil {
		return Discard()
	}
	return l
}
