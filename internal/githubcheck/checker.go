// Package githubcheck verifies that the release automation credential is
// provisioned as a GitHub Actions repository secret.
//
// The check is advisory. Callers report its Status and never fail a run on it.
package githubcheck

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v57/github"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/fyrsmithlabs/devcode/internal/config"
	"github.com/fyrsmithlabs/devcode/internal/logging"
)

// SecretName is the Actions secret the release workflow reads.
const SecretName = "PAT_FOR_TAGPR"

var (
	// ErrNoToken is returned when no GitHub token is configured.
	ErrNoToken = errors.New("GitHub token not set")
	// ErrRepoUnknown is returned when owner or repository name is empty.
	ErrRepoUnknown = errors.New("GitHub repository unknown")
)

// Status is the result of a secret check.
type Status string

const (
	StatusPresent Status = "present"
	StatusMissing Status = "missing"
	StatusUnknown Status = "unknown"
)

// Checker queries repository Actions secrets.
type Checker struct {
	client *github.Client
}

// NewChecker creates a Checker authenticated with token. A non-empty
// apiURL selects a GitHub Enterprise server.
func NewChecker(ctx context.Context, token config.Secret, apiURL string) (*Checker, error) {
	if !token.IsSet() {
		return nil, ErrNoToken
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token.Value()})
	client := github.NewClient(oauth2.NewClient(ctx, ts))
	if apiURL != "" {
		var err error
		client, err = client.WithEnterpriseURLs(apiURL, apiURL)
		if err != nil {
			return nil, fmt.Errorf("configuring GitHub API URL: %w", err)
		}
	}
	return &Checker{client: client}, nil
}

// CheckSecret reports whether SecretName exists on owner/repo. Any answer
// other than found or not-found yields StatusUnknown and the cause.
func (c *Checker) CheckSecret(ctx context.Context, owner, repo string) (Status, error) {
	if owner == "" || repo == "" {
		return StatusUnknown, ErrRepoUnknown
	}

	log := logging.FromContext(ctx)
	_, resp, err := c.client.Actions.GetRepoSecret(ctx, owner, repo, SecretName)
	if err == nil {
		log.Debug(ctx, "release secret present", zap.String("repo", owner+"/"+repo))
		return StatusPresent, nil
	}

	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return StatusUnknown, fmt.Errorf("GitHub rate limit exceeded, resets at %s", rateErr.Rate.Reset.Time)
	}

	if resp != nil {
		switch resp.StatusCode {
		case http.StatusNotFound:
			log.Debug(ctx, "release secret missing", zap.String("repo", owner+"/"+repo))
			return StatusMissing, nil
		case http.StatusUnauthorized, http.StatusForbidden:
			return StatusUnknown, fmt.Errorf("token cannot read secrets of %s/%s (HTTP %d)", owner, repo, resp.StatusCode)
		}
	}
	return StatusUnknown, fmt.Errorf("checking secret %s on %s/%s: %w", SecretName, owner, repo, err)
}
