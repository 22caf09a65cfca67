package ulogger

import (
	"github.com/ordishs/gocore"
)

// GoCoreLogger adapts the gocore logger to the Logger interface. gocore
// fixes the level when a logger is created, so SetLogLevel is a noop and
// level changes go through New or Duplicate instead.
type GoCoreLogger struct {
	*gocore.Logger
	skipFrame int
}

func NewGoCoreLogger(service string, options ...Option) *GoCoreLogger {
	if service == "" {
		service = "txcore"
	}

	opts := DefaultOptions()
	for _, o := range options {
		o(opts)
	}

	return &GoCoreLogger{
		Logger:    gocore.Log(service, gocore.NewLogLevelFromString(opts.logLevel)),
		skipFrame: opts.skip,
	}
}

func (g *GoCoreLogger) New(service string, options ...Option) Logger {
	opts := DefaultOptions()
	for _, o := range options {
		o(opts)
	}

	return &GoCoreLogger{
		Logger:    gocore.Log(service, g.Logger.GetLogLevel()),
		skipFrame: opts.skip,
	}
}

// Duplicate clones the logger. Options cannot tell unset from default, so
// only values that differ from the defaults are applied to the clone.
func (g *GoCoreLogger) Duplicate(options ...Option) Logger {
	defaults := DefaultOptions()

	opts := DefaultOptions()
	for _, o := range options {
		o(opts)
	}

	clone := &GoCoreLogger{
		Logger:    g.Logger,
		skipFrame: g.skipFrame,
	}

	if opts.logLevel != defaults.logLevel {
		clone.SetLogLevel(opts.logLevel)
	}

	if opts.skip != defaults.skip {
		clone.skipFrame = opts.skip
	}

	return clone
}

// SetLogLevel is a noop, the level has to be set when creating the logger.
func (g *GoCoreLogger) SetLogLevel(_ string) {}
