// Package ulogger provides the logging interface used across go-txcore,
// with zerolog and gocore backed implementations plus loggers for tests.
package ulogger

// Logger is the logging facade every component takes. Backends wrap zerolog
// or gocore; tests use TestLogger to silence output or VerboseTestLogger to
// route it through the test runner.
type Logger interface {
	LogLevel() int
	SetLogLevel(level string)

	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})

	// New derives a logger for another service, Duplicate one for the same
	// service. Both carry the parent's options unless overridden.
	New(service string, options ...Option) Logger
	Duplicate(options ...Option) Logger
}

// New builds the Logger for a service. The backend is selected by the
// logger_type configuration key; anything but "gocore" gets zerolog.
func New(service string, options ...Option) Logger {
	opts := DefaultOptions()
	for _, o := range options {
		o(opts)
	}

	if opts.loggerType == "gocore" {
		return NewGoCoreLogger(service, options...)
	}

	return NewZeroLogger(service, options...)
}
