package ulogger

import (
	"fmt"
	"runtime"
)

// TestingT is the subset of testing.T the error test logger needs.
type TestingT interface {
	Errorf(format string, args ...interface{})
	FailNow()
	Logf(format string, args ...any)
}

type tHelper = interface {
	Helper()
}

// ErrorTestLogger stays silent below the error level and fails the test on
// Errorf or Fatalf, so a passing test is also a log-clean test.
type ErrorTestLogger struct {
	t TestingT
}

func NewErrorTestLogger(t TestingT) *ErrorTestLogger {
	return &ErrorTestLogger{t: t}
}

func (l *ErrorTestLogger) LogLevel() int {
	return 0
}

func (l *ErrorTestLogger) SetLogLevel(_ string) {}

func (l *ErrorTestLogger) New(_ string, _ ...Option) Logger {
	if h, ok := l.t.(tHelper); ok {
		h.Helper()
	}

	return l
}

func (l *ErrorTestLogger) Duplicate(_ ...Option) Logger {
	if h, ok := l.t.(tHelper); ok {
		h.Helper()
	}

	return l
}

func (l *ErrorTestLogger) Debugf(_ string, _ ...interface{}) {}

func (l *ErrorTestLogger) Infof(_ string, _ ...interface{}) {}

func (l *ErrorTestLogger) Warnf(_ string, _ ...interface{}) {}

func (l *ErrorTestLogger) Errorf(format string, args ...interface{}) {
	if h, ok := l.t.(tHelper); ok {
		h.Helper()
	}

	_, file, line, _ := runtime.Caller(2)

	l.t.Errorf(fmt.Sprintf("%s:%d: ERR_LEVEL %s", file, line, format), args...)
}

func (l *ErrorTestLogger) Fatalf(format string, args ...interface{}) {
	if h, ok := l.t.(tHelper); ok {
		h.Helper()
	}

	_, file, line, _ := runtime.Caller(2)

	l.t.Errorf(fmt.Sprintf("%s:%d: FATAL_LEVEL %s", file, line, format), args...)
	l.t.FailNow()
}
