package ulogger

import (
	"io"
	"os"

	"github.com/ordishs/gocore"
)

// Options carries the settings shared by every logger implementation.
// Zero values are filled in by DefaultOptions.
type Options struct {
	writer     io.Writer
	logLevel   string
	loggerType string
	skip       int
}

type Option func(*Options)

// DefaultOptions resolves the starting options from configuration:
// logLevel and logger_type keys, falling back to INFO on zerolog.
func DefaultOptions() *Options {
	logLevel, _ := gocore.Config().Get("logLevel", "INFO")
	loggerType, _ := gocore.Config().Get("logger_type", "zerolog")

	return &Options{
		writer:     os.Stdout,
		logLevel:   logLevel,
		loggerType: loggerType,
	}
}

// WithWriter directs log output to w instead of stdout.
func WithWriter(w io.Writer) Option {
	return func(o *Options) {
		o.writer = w
	}
}

// WithLevel sets the minimum level (DEBUG, INFO, WARN, ERROR, FATAL).
func WithLevel(logLevel string) Option {
	return func(o *Options) {
		o.logLevel = logLevel
	}
}

// WithLoggerType selects the backend ("zerolog" or "gocore").
func WithLoggerType(loggerType string) Option {
	return func(o *Options) {
		o.loggerType = loggerType
	}
}

// WithSkipFrame adds extra caller frames to skip when reporting call sites.
func WithSkipFrame(skip int) Option {
	return func(o *Options) {
		o.skip = skip
	}
}
