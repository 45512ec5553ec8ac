package release

import (
	"github.com/fyrsmithlabs/devcode/internal/githubcheck"
	"github.com/fyrsmithlabs/devcode/internal/gitrepo"
	"github.com/fyrsmithlabs/devcode/internal/rewrite"
	"github.com/fyrsmithlabs/devcode/internal/scan"
)

// Report is everything one Prepare call found and did.
type Report struct {
	Dir         string
	Identifier  string
	PublishName string
	DryRun      bool

	// Outcomes are in registry order.
	Outcomes []rewrite.Outcome

	// Occurrences are in traversal order, then line order.
	Occurrences  []scan.Occurrence
	FilesScanned int
	FilesSkipped int

	// Repo is nil when the project has no GitHub origin.
	Repo *gitrepo.Repo
	// Secret is nil unless the run asked for the credential check.
	Secret *SecretCheck
}

// SecretCheck is the advisory result of looking up the release secret.
type SecretCheck struct {
	Status githubcheck.Status
	Err    error
}

// Failures returns the outcomes of locations that failed.
func (r *Report) Failures() []rewrite.Outcome {
	var failed []rewrite.Outcome
	for _, o := range r.Outcomes {
		if !o.OK() {
			failed = append(failed, o)
		}
	}
	return failed
}
