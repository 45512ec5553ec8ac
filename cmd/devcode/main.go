// Package main implements the devcode CLI, which prepares devcode projects
// for their first public release.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/devcode/internal/config"
	"github.com/fyrsmithlabs/devcode/internal/logging"
)

var (
	// configPath overrides ~/.config/devcode/config.yaml
	configPath string
	// logLevel overrides logging.level from config
	logLevel string
	// verbose lowers the log level one step per -v
	verbose int
	// version information
	version = "dev"

	// cfg is loaded once per invocation by loadRuntime.
	cfg *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "devcode:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "devcode",
	Short: "Prepare devcode projects for public release",
	Long: `devcode migrates a project from its internal "devcode" state to its public
release configuration.

A devcode project has "private": true in package.json and a placeholder name.
Release preparation renames the package, switches the tagpr workflow to the
PAT_FOR_TAGPR secret, updates the CodeQL config name, and reports every other
place the placeholder name still appears.`,
	Version:           version,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: loadRuntime,
	PersistentPostRun: func(cmd *cobra.Command, _ []string) {
		_ = logging.FromContext(cmd.Context()).Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/devcode/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "diagnostic log level: trace, debug, info, warn, error")
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "more diagnostics (-v info, -vv debug, -vvv trace)")
}

// loadRuntime loads config and attaches a logger and run ID to the command context.
func loadRuntime(cmd *cobra.Command, _ []string) error {
	loaded, err := config.LoadWithFile(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		loaded.Logging.Level = logLevel
	}
	cfg = loaded

	logCfg := logging.NewDefaultConfig()
	logCfg.Format = cfg.Logging.Format
	level, err := logging.LevelFromString(cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Logging.Level, err)
	}
	logCfg.Level = logging.VerbosityLevel(level, verbose)

	logger, err := logging.NewLoggerWithWriter(logCfg, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithRunID(ctx, logging.NewRunID())
	ctx = logging.WithLogger(ctx, logger)
	cmd.SetContext(ctx)

	logger.Debug(ctx, "configuration loaded",
		zap.String("command", cmd.Name()),
		zap.Strings("exclude_dirs", cfg.Scan.ExcludeDirs),
		zap.Bool("github_token_set", cfg.GitHub.Token.IsSet()),
		logging.Secret("github_token", cfg.GitHub.Token))
	return nil
}
