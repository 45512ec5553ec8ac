package secrets

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"

	"github.com/BurntSushi/toml"
)

// ProjectFile is the gitleaks config read from a project root. Only its
// [allowlist] table is used.
const ProjectFile = ".gitleaks.toml"

var (
	ErrInvalidTOML  = errors.New("invalid allowlist file")
	ErrInvalidRegex = errors.New("invalid allowlist pattern")
)

// Allowlist silences findings by file path or by matched content.
type Allowlist struct {
	Paths   []string
	Regexes []string
}

// Empty reports whether the allowlist has no patterns.
func (a *Allowlist) Empty() bool {
	return a == nil || len(a.Paths)+len(a.Regexes) == 0
}

type gitleaksFile struct {
	Allowlist struct {
		Paths   []string `toml:"paths"`
		Regexes []string `toml:"regexes"`
	} `toml:"allowlist"`
}

// LoadAllowlists merges the allowlist in projectDir's .gitleaks.toml with
// the one at userPath. Either may be empty or name a missing file.
func LoadAllowlists(projectDir, userPath string) (*Allowlist, error) {
	var files []string
	if projectDir != "" {
		files = append(files, filepath.Join(projectDir, ProjectFile))
	}
	if userPath != "" {
		files = append(files, userPath)
	}

	merged := &Allowlist{}
	for _, path := range files {
		var f gitleaksFile
		if _, err := toml.DecodeFile(path, &f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidTOML, path, err)
		}
		for _, p := range append(f.Allowlist.Paths, f.Allowlist.Regexes...) {
			if _, err := regexp.Compile(p); err != nil {
				return nil, fmt.Errorf("%w: %q in %s: %v", ErrInvalidRegex, p, path, err)
			}
		}
		merged.Paths = append(merged.Paths, f.Allowlist.Paths...)
		merged.Regexes = append(merged.Regexes, f.Allowlist.Regexes...)
	}
	return merged, nil
}
