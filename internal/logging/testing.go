package logging

import (
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// TestLogger records every entry at Trace and above for assertions.
type TestLogger struct {
	*Logger
	observed *observer.ObservedLogs
}

// NewTestLogger returns a logger backed by an in-memory observer.
func NewTestLogger() *TestLogger {
	core, observed := observer.New(TraceLevel)
	return &TestLogger{Logger: &Logger{zap: zap.New(core)}, observed: observed}
}

// All returns the recorded entries.
func (t *TestLogger) All() []observer.LoggedEntry {
	return t.observed.All()
}

// Reset drops recorded entries.
func (t *TestLogger) Reset() {
	t.observed.TakeAll()
}

func (t *TestLogger) find(level zapcore.Level, msgContains string) bool {
	for _, entry := range t.observed.All() {
		if entry.Level == level && strings.Contains(entry.Message, msgContains) {
			return true
		}
	}
	return false
}

// AssertLogged fails tb unless an entry at level contains msgContains.
func (t *TestLogger) AssertLogged(tb testing.TB, level zapcore.Level, msgContains string) {
	tb.Helper()
	if !t.find(level, msgContains) {
		tb.Errorf("no %v entry containing %q in %d entries", level, msgContains, len(t.observed.All()))
	}
}

// AssertNotLogged fails tb if an entry at level contains msgContains.
func (t *TestLogger) AssertNotLogged(tb testing.TB, level zapcore.Level, msgContains string) {
	tb.Helper()
	if t.find(level, msgContains) {
		tb.Errorf("unexpected %v entry containing %q", level, msgContains)
	}
}

// AssertField fails tb unless an entry with message msg carries key=want.
// Fields are compared through their encoded form.
func (t *TestLogger) AssertField(tb testing.TB, msg, key string, want interface{}) {
	tb.Helper()
	for _, entry := range t.observed.FilterMessage(msg).All() {
		if got, ok := entry.ContextMap()[key]; ok && got == want {
			return
		}
	}
	tb.Errorf("field %s=%v not found on %q", key, want, msg)
}

// AssertNoSecrets fails tb if any recorded message or string field holds a
// token-shaped value.
func (t *TestLogger) AssertNoSecrets(tb testing.TB) {
	tb.Helper()
	for _, entry := range t.observed.All() {
		if tokenPattern.MatchString(entry.Message) {
			tb.Errorf("token in message %q", entry.Message)
		}
		for _, f := range entry.Context {
			if f.Type == zapcore.StringType && tokenPattern.MatchString(f.String) {
				tb.Errorf("token in field %q", f.Key)
			}
		}
	}
}
