// Package release prepares a devcode project for its first public release.
//
// A run is linear: detect the devcode identifier, apply every managed
// location in registry order, scan the rest of the tree for leftover
// occurrences, then collect the optional repository and credential
// information for the report. Only detection failures abort a run; a
// managed location that fails is recorded in the report and the run goes on.
package release

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/devcode/internal/githubcheck"
	"github.com/fyrsmithlabs/devcode/internal/gitrepo"
	"github.com/fyrsmithlabs/devcode/internal/logging"
	"github.com/fyrsmithlabs/devcode/internal/manifest"
	"github.com/fyrsmithlabs/devcode/internal/rewrite"
	"github.com/fyrsmithlabs/devcode/internal/sanitize"
	"github.com/fyrsmithlabs/devcode/internal/scan"
)

// Finder searches a tree for leftover identifier occurrences.
type Finder interface {
	Find(ctx context.Context, root, identifier string) (*scan.Result, error)
}

// SecretChecker reports whether the release credential exists on a repository.
type SecretChecker interface {
	CheckSecret(ctx context.Context, owner, repo string) (githubcheck.Status, error)
}

// RepoResolver maps a project directory to its GitHub repository.
type RepoResolver func(dir string) (gitrepo.Repo, error)

// Options control one Prepare call.
type Options struct {
	DryRun       bool
	VerifySecret bool
}

// Preparer runs release preparation against a fixed registry.
type Preparer struct {
	registry    rewrite.Registry
	finder      Finder
	resolveRepo RepoResolver
	checker     SecretChecker
}

// PreparerOption configures a Preparer.
type PreparerOption func(*Preparer)

// WithFinder replaces the default finder.
func WithFinder(f Finder) PreparerOption {
	return func(p *Preparer) {
		p.finder = f
	}
}

// WithRepoResolver replaces gitrepo.Resolve.
func WithRepoResolver(r RepoResolver) PreparerOption {
	return func(p *Preparer) {
		p.resolveRepo = r
	}
}

// WithSecretChecker enables the credential check for runs that ask for it.
func WithSecretChecker(c SecretChecker) PreparerOption {
	return func(p *Preparer) {
		p.checker = c
	}
}

// NewPreparer creates a Preparer for registry. Without WithFinder, the
// finder skips the registry's paths and the default excluded directories.
func NewPreparer(registry rewrite.Registry, opts ...PreparerOption) *Preparer {
	p := &Preparer{
		registry:    registry,
		resolveRepo: gitrepo.Resolve,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.finder == nil {
		p.finder = scan.NewFinder(scan.Options{Managed: registry.Paths()})
	}
	return p
}

// Prepare migrates the project in dir to publishName.
//
// The returned error is non-nil only when nothing was written: dir is not a
// directory, detection failed, publishName is not a valid npm package name,
// or ctx ended before rewriting began. A scan cancelled after rewriting
// returns the partial report with the error.
func (p *Preparer) Prepare(ctx context.Context, dir, publishName string, opts Options) (*Report, error) {
	absDir, err := sanitize.ProjectDir(dir)
	if err != nil {
		return nil, err
	}
	ctx = logging.WithProjectDir(ctx, absDir)
	log := logging.FromContext(ctx).Named("release")

	identifier, err := manifest.Detect(absDir)
	if err != nil {
		return nil, err
	}
	log.Info(ctx, "devcode project detected", zap.String("identifier", identifier))

	if err := sanitize.PublishName(publishName); err != nil {
		return nil, err
	}
	req := rewrite.Request{Identifier: identifier, PublishName: publishName}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := &Report{
		Dir:         absDir,
		Identifier:  identifier,
		PublishName: publishName,
		DryRun:      opts.DryRun,
	}

	for _, loc := range p.registry.Locations() {
		outcome := rewrite.Apply(absDir, loc, req, rewrite.Options{DryRun: opts.DryRun})
		if outcome.OK() {
			log.Info(ctx, "managed location processed",
				zap.String("path", loc.Path),
				zap.String("status", string(outcome.Status)))
		} else {
			log.Warn(ctx, "managed location failed",
				zap.String("path", loc.Path),
				zap.Error(outcome.Err))
		}
		report.Outcomes = append(report.Outcomes, outcome)
	}

	res, err := p.finder.Find(ctx, absDir, identifier)
	if err != nil {
		return report, fmt.Errorf("scanning for leftover occurrences: %w", err)
	}
	report.Occurrences = res.Occurrences
	report.FilesScanned = res.FilesScanned
	report.FilesSkipped = res.FilesSkipped

	p.describeRepo(ctx, log, report, opts)
	return report, nil
}

// describeRepo fills the optional repository and secret sections.
func (p *Preparer) describeRepo(ctx context.Context, log *logging.Logger, report *Report, opts Options) {
	if p.resolveRepo != nil {
		repo, err := p.resolveRepo(report.Dir)
		if err != nil {
			log.Debug(ctx, "repository not resolved", zap.Error(err))
		} else {
			report.Repo = &repo
		}
	}

	if !opts.VerifySecret {
		return
	}

	check := &SecretCheck{Status: githubcheck.StatusUnknown}
	report.Secret = check
	switch {
	case p.checker == nil:
		check.Err = githubcheck.ErrNoToken
	case report.Repo == nil:
		check.Err = githubcheck.ErrRepoUnknown
	default:
		check.Status, check.Err = p.checker.CheckSecret(ctx, report.Repo.Owner, report.Repo.Name)
	}
	if check.Err != nil {
		log.Warn(ctx, "release secret check inconclusive", zap.Error(check.Err))
	}
}

// IsFatal reports whether err came from detection, which aborts a run
// before any file is touched.
func IsFatal(err error) bool {
	return errors.Is(err, manifest.ErrManifestNotFound) ||
		errors.Is(err, manifest.ErrNotDevcode) ||
		errors.Is(err, manifest.ErrMalformedManifest)
}
