// Package gitrepo identifies the GitHub repository a project directory
// belongs to, from its origin remote.
package gitrepo

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-git/go-git/v5"
)

// RemoteName is the remote consulted for the repository identity.
const RemoteName = "origin"

var (
	// ErrNotRepository is returned when dir is not inside a git work tree.
	ErrNotRepository = errors.New("not a git repository")
	// ErrNoGitHubRemote is returned when origin is missing or not hosted on GitHub.
	ErrNoGitHubRemote = errors.New("no GitHub origin remote")
)

var (
	// git@github.com:owner/repo.git
	scpPattern = regexp.MustCompile(`^[\w.-]+@github\.com:([\w.-]+)/([\w.-]+?)(?:\.git)?/?$`)
	// https://github.com/owner/repo.git, ssh://git@github.com/owner/repo, git://github.com/owner/repo
	urlPattern = regexp.MustCompile(`^(?:https?|ssh|git)://(?:[^@/]+@)?github\.com(?::\d+)?/([\w.-]+)/([\w.-]+?)(?:\.git)?/?$`)
)

// Repo is a GitHub owner/name pair.
type Repo struct {
	Owner string
	Name  string
}

func (r Repo) String() string {
	return r.Owner + "/" + r.Name
}

// SecretsSettingsURL returns the Actions secrets settings page of the repository.
func (r Repo) SecretsSettingsURL() string {
	return fmt.Sprintf("https://github.com/%s/%s/settings/secrets/actions", r.Owner, r.Name)
}

// Resolve opens the repository containing dir and parses its origin remote.
func Resolve(dir string) (Repo, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return Repo{}, ErrNotRepository
		}
		return Repo{}, fmt.Errorf("opening repository: %w", err)
	}

	remote, err := repo.Remote(RemoteName)
	if err != nil {
		if errors.Is(err, git.ErrRemoteNotFound) {
			return Repo{}, ErrNoGitHubRemote
		}
		return Repo{}, fmt.Errorf("reading remote %s: %w", RemoteName, err)
	}

	for _, u := range remote.Config().URLs {
		if r, ok := ParseURL(u); ok {
			return r, nil
		}
	}
	return Repo{}, ErrNoGitHubRemote
}

// ParseURL extracts owner and name from a GitHub remote URL.
// Supports scp-like SSH, ssh://, git:// and http(s) forms.
func ParseURL(url string) (Repo, bool) {
	url = strings.TrimSpace(url)
	for _, re := range []*regexp.Regexp{scpPattern, urlPattern} {
		if m := re.FindStringSubmatch(url); m != nil {
			if m[2] == "" || m[2] == "." || m[2] == ".." {
				return Repo{}, false
			}
			return Repo{Owner: m[1], Name: m[2]}, true
		}
	}
	return Repo{}, false
}
