// Package logging provides structured diagnostic logging for devcode.
//
// # Overview
//
// Logging package wraps Zap with:
//   - Custom Trace level (-2, below Debug)
//   - Automatic context field injection (run.id, project.dir)
//   - Secret redaction by field name and value pattern
//
// Diagnostics go to stderr by default so that command output on stdout can
// be piped.
//
// # Usage
//
//	cfg := logging.NewDefaultConfig()
//	logger, err := logging.NewLoggerWithWriter(cfg, os.Stderr)
//	if err != nil {
//	    return err
//	}
//	defer logger.Sync()
//
//	ctx = logging.WithRunID(ctx, logging.NewRunID())
//	ctx = logging.WithProjectDir(ctx, dir)
//	logger.Info(ctx, "rewrite applied", zap.String("path", rel))
//
// # Secret Redaction
//
// Secrets are redacted at two layers:
//  1. Domain primitives (config.Secret, logged through Secret)
//  2. Encoder-level field name and value pattern filtering
//
// # Testing
//
// Use TestLogger for test assertions:
//
//	tl := logging.NewTestLogger()
//	tl.Info(ctx, "test message", zap.String("key", "value"))
//	tl.AssertLogged(t, zapcore.InfoLevel, "test message")
//	tl.AssertField(t, "test message", "key", "value")
//	tl.AssertNoSecrets(t)
package logging
