package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/devcode/internal/githubcheck"
	"github.com/fyrsmithlabs/devcode/internal/logging"
	"github.com/fyrsmithlabs/devcode/internal/release"
	"github.com/fyrsmithlabs/devcode/internal/report"
	"github.com/fyrsmithlabs/devcode/internal/rewrite"
)

var (
	replaceDir   string
	dryRun       bool
	verifySecret bool
)

func init() {
	rootCmd.AddCommand(replaceDevcodeCmd)
	replaceDevcodeCmd.Flags().StringVarP(&replaceDir, "dir", "d", ".", "project directory")
	replaceDevcodeCmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would change without writing")
	replaceDevcodeCmd.Flags().BoolVar(&verifySecret, "verify-secret", false, "check that the PAT_FOR_TAGPR secret exists on GitHub")
}

// replaceDevcodeCmd runs release preparation
var replaceDevcodeCmd = &cobra.Command{
	Use:   "replace-devcode <publish-name>",
	Short: "Replace the devcode name with the publish name",
	Long: `Replace the devcode placeholder name with the name the package is published
under, and switch release automation to the PAT_FOR_TAGPR secret.

Managed files:
  package.json                       name set, "private" removed
  .github/codeql/codeql-config.yml   first name: line
  .github/workflows/tagpr.yml        GITHUB_TOKEN -> PAT_FOR_TAGPR

Every other file is scanned and each remaining occurrence of the devcode name
is listed without being modified.

Examples:
  # Prepare the project in the current directory
  devcode replace-devcode @acme/widgets

  # Preview the changes for another directory
  devcode replace-devcode widgets --dir ../widgets --dry-run

  # Also confirm the release secret is configured
  DEVCODE_GITHUB_TOKEN=... devcode replace-devcode @acme/widgets --verify-secret`,
	Args: cobra.ExactArgs(1),
	RunE: runReplaceDevcode,
}

func runReplaceDevcode(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)
	registry := rewrite.DefaultRegistry()

	finder, err := newFinder(ctx, replaceDir, registry)
	if err != nil {
		return err
	}

	opts := []release.PreparerOption{release.WithFinder(finder)}
	verify := verifySecret || cfg.GitHub.VerifySecret
	if verify && cfg.GitHub.Token.IsSet() {
		checker, err := githubcheck.NewChecker(ctx, cfg.GitHub.Token, cfg.GitHub.APIURL)
		if err != nil {
			return err
		}
		opts = append(opts, release.WithSecretChecker(checker))
	}

	rep, err := release.NewPreparer(registry, opts...).Prepare(ctx, replaceDir, args[0], release.Options{
		DryRun:       dryRun,
		VerifySecret: verify,
	})
	if err != nil {
		if rep != nil {
			_ = report.NewRenderer(cmd.OutOrStdout()).Report(rep)
		}
		return err
	}

	log.Info(ctx, "release preparation finished",
		zap.Int("failed_locations", len(rep.Failures())),
		zap.Int("occurrences", len(rep.Occurrences)))
	return report.NewRenderer(cmd.OutOrStdout()).Report(rep)
}
