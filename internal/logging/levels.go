// internal/logging/levels.go
package logging

import (
	"strings"

	"go.uber.org/zap/zapcore"
)

// TraceLevel sits below Debug and is used for per-file and per-line
// detail during rewrites and scans.
const TraceLevel = zapcore.Level(-2)

// LevelFromString parses a level name, accepting "trace" in any case.
// Empty input yields Info.
func LevelFromString(level string) (zapcore.Level, error) {
	if strings.EqualFold(level, "trace") {
		return TraceLevel, nil
	}
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return zapcore.InfoLevel, err
	}
	return l, nil
}

// VerbosityLevel maps a repeat count of a -v flag to a level:
// 0 keeps base, 1 is Info, 2 is Debug, 3 or more is Trace.
func VerbosityLevel(base zapcore.Level, count int) zapcore.Level {
	var l zapcore.Level
	switch {
	case count <= 0:
		return base
	case count == 1:
		l = zapcore.InfoLevel
	case count == 2:
		l = zapcore.DebugLevel
	default:
		l = TraceLevel
	}
	if base < l {
		return base
	}
	return l
}
