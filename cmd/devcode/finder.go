package main

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/devcode/internal/config"
	"github.com/fyrsmithlabs/devcode/internal/ignore"
	"github.com/fyrsmithlabs/devcode/internal/logging"
	"github.com/fyrsmithlabs/devcode/internal/rewrite"
	"github.com/fyrsmithlabs/devcode/internal/scan"
	"github.com/fyrsmithlabs/devcode/internal/secrets"
)

// userAllowlistFile is read from the devcode config directory.
const userAllowlistFile = "gitleaks.toml"

// newFinder builds the leftover-occurrence finder for the project in dir:
// default exclusions plus config and .devcodeignore names, the registry's
// managed paths, and secret redaction when enabled.
//
// Project files read here are advisory. An unreadable .devcodeignore or a
// malformed .gitleaks.toml is logged and skipped, so that detection still
// decides whether the run fails.
func newFinder(ctx context.Context, dir string, registry rewrite.Registry) (*scan.Finder, error) {
	log := logging.FromContext(ctx)

	projectDirs, err := ignore.NewParser(ignore.ProjectFile).ParseProject(dir)
	if err != nil {
		log.Warn(ctx, "ignoring project exclusions",
			zap.String("file", ignore.ProjectFile), zap.Error(err))
		projectDirs = nil
	}
	exclude := ignore.Default().With(cfg.Scan.ExcludeDirs...).With(projectDirs...)

	opts := scan.Options{
		Exclude:       exclude,
		Managed:       registry.Paths(),
		Workers:       cfg.Scan.Workers,
		PreviewLength: cfg.Scan.PreviewLength,
	}

	if cfg.Scan.RedactSecrets {
		var userPath string
		if cfgDir, err := config.DefaultDir(); err == nil {
			userPath = filepath.Join(cfgDir, userAllowlistFile)
		}
		allowlist, err := secrets.LoadAllowlists(dir, userPath)
		if err != nil {
			log.Warn(ctx, "secret allowlist not loaded, redacting with default rules",
				zap.Error(err))
			allowlist = nil
		}
		redactor, err := secrets.NewRedactor(allowlist)
		if err != nil {
			return nil, fmt.Errorf("creating secret redactor: %w", err)
		}
		opts.Redactor = redactor
	}

	log.Debug(ctx, "finder configured",
		zap.Strings("exclude", exclude.Names()),
		zap.Int("workers", opts.Workers),
		zap.Bool("redact", opts.Redactor != nil))
	return scan.NewFinder(opts), nil
}
