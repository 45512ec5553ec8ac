package logging

import (
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"

	"github.com/fyrsmithlabs/devcode/internal/config"
)

const (
	redactedKey   = "[REDACTED]"
	redactedToken = "[REDACTED:token]"
)

// tokenPattern matches the GitHub credential shapes devcode handles:
// classic and fine-grained PATs and bearer headers.
var tokenPattern = regexp.MustCompile(`gh[pousr]_[A-Za-z0-9]{36}|github_pat_[A-Za-z0-9_]{22,}|(?i)bearer\s+\S+`)

// Secret logs the length of s but never its value.
func Secret(key string, s config.Secret) zap.Field {
	return RedactedString(key, s.Value())
}

// RedactedString logs the length of val but never its value.
func RedactedString(key, val string) zap.Field {
	return zap.String(key, "[REDACTED:"+strconv.Itoa(len(val))+"]")
}

// redactingEncoder scrubs values before the wrapped encoder sees them.
// Entry fields pass through EncodeEntry; fields attached with With pass
// through the Add* overrides.
type redactingEncoder struct {
	zapcore.Encoder
	keys map[string]bool
}

func newRedactingEncoder(base zapcore.Encoder, sensitiveKeys []string) *redactingEncoder {
	keys := make(map[string]bool, len(sensitiveKeys))
	for _, k := range sensitiveKeys {
		keys[strings.ToLower(k)] = true
	}
	return &redactingEncoder{Encoder: base, keys: keys}
}

func (e *redactingEncoder) sensitive(key string) bool {
	return e.keys[strings.ToLower(key)]
}

// scrub returns the value to write for a string field.
func (e *redactingEncoder) scrub(key, val string) string {
	if e.sensitive(key) {
		return redactedKey
	}
	return tokenPattern.ReplaceAllString(val, redactedToken)
}

func (e *redactingEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	ent.Message = tokenPattern.ReplaceAllString(ent.Message, redactedToken)
	out := make([]zapcore.Field, len(fields))
	for i, f := range fields {
		switch {
		case f.Type == zapcore.StringType:
			f.String = e.scrub(f.Key, f.String)
		case f.Type == zapcore.ErrorType && f.Interface != nil:
			f = zap.String(f.Key, e.scrub(f.Key, f.Interface.(error).Error()))
		case e.sensitive(f.Key):
			f = zap.String(f.Key, redactedKey)
		}
		out[i] = f
	}
	return e.Encoder.EncodeEntry(ent, out)
}

func (e *redactingEncoder) AddString(key, val string) {
	e.Encoder.AddString(key, e.scrub(key, val))
}

func (e *redactingEncoder) AddByteString(key string, val []byte) {
	e.Encoder.AddString(key, e.scrub(key, string(val)))
}

func (e *redactingEncoder) AddReflected(key string, val interface{}) error {
	if e.sensitive(key) {
		e.Encoder.AddString(key, redactedKey)
		return nil
	}
	return e.Encoder.AddReflected(key, val)
}

func (e *redactingEncoder) AddObject(key string, obj zapcore.ObjectMarshaler) error {
	if e.sensitive(key) {
		e.Encoder.AddString(key, redactedKey)
		return nil
	}
	return e.Encoder.AddObject(key, obj)
}

func (e *redactingEncoder) Clone() zapcore.Encoder {
	return &redactingEncoder{Encoder: e.Encoder.Clone(), keys: e.keys}
}
