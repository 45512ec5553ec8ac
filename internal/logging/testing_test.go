package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestTestLogger_Assertions(t *testing.T) {
	tl := NewTestLogger()
	ctx := context.Background()

	tl.Info(ctx, "location rewritten", zap.String("path", "package.json"))

	tl.AssertLogged(t, zapcore.InfoLevel, "rewritten")
	tl.AssertNotLogged(t, zapcore.ErrorLevel, "rewritten")
	tl.AssertField(t, "location rewritten", "path", "package.json")
	tl.AssertNoSecrets(t)
}

func TestTestLogger_Reset(t *testing.T) {
	tl := NewTestLogger()
	tl.Warn(context.Background(), "first")
	assert.Len(t, tl.All(), 1)

	tl.Reset()
	assert.Empty(t, tl.All())
}

func TestTestLogger_AssertNoSecretsCatchesLeak(t *testing.T) {
	tl := NewTestLogger()
	tl.Info(context.Background(), "leak", zap.String("line", pat))

	rec := &recordingTB{TB: t}
	tl.AssertNoSecrets(rec)
	assert.True(t, rec.failed)
}

type recordingTB struct {
	testing.TB
	failed bool
}

func (r *recordingTB) Helper() {}

func (r *recordingTB) Errorf(string, ...interface{}) { r.failed = true }
