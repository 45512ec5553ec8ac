package rewrite

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalidYAML indicates a transform turned parseable YAML into
// unparseable YAML. The file is left untouched.
var ErrInvalidYAML = errors.New("rewrite would produce invalid YAML")

// Status is the result of applying one location.
type Status string

const (
	StatusUpdated     Status = "updated"
	StatusUnchanged   Status = "unchanged"
	StatusSkipped     Status = "skipped"
	StatusWouldUpdate Status = "would update"
	StatusFailed      Status = "failed"
)

// Outcome records what happened to one location.
type Outcome struct {
	Location Location
	Status   Status
	Err      error
}

// OK reports whether the location did not fail.
func (o Outcome) OK() bool {
	return o.Status != StatusFailed
}

// Options control how Apply writes.
type Options struct {
	// DryRun computes the new content without writing it.
	DryRun bool
}

// Apply runs one location's transform against the project in dir.
// Errors are returned inside the Outcome, never as a panic or abort.
func Apply(dir string, loc Location, req Request, opts Options) Outcome {
	status, err := apply(dir, loc, req, opts)
	if err != nil {
		return Outcome{Location: loc, Status: StatusFailed, Err: err}
	}
	return Outcome{Location: loc, Status: status}
}

func apply(dir string, loc Location, req Request, opts Options) (Status, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	path := filepath.Join(dir, filepath.FromSlash(loc.Path))
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) && loc.Optional {
			return StatusSkipped, nil
		}
		return "", fmt.Errorf("stat %s: %w", loc.Path, err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%s is not a regular file", loc.Path)
	}

	before, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", loc.Path, err)
	}

	after, err := loc.Transform(before, req)
	if err != nil {
		return "", fmt.Errorf("rewriting %s: %w", loc.Path, err)
	}

	if bytes.Equal(before, after) {
		return StatusUnchanged, nil
	}

	if loc.ValidateYAML && parsesAsYAML(before) && !parsesAsYAML(after) {
		return "", fmt.Errorf("%w: %s", ErrInvalidYAML, loc.Path)
	}

	if opts.DryRun {
		return StatusWouldUpdate, nil
	}

	if err := writeFileAtomic(path, after, info.Mode().Perm()); err != nil {
		return "", err
	}
	return StatusUpdated, nil
}

func parsesAsYAML(data []byte) bool {
	var v any
	return yaml.Unmarshal(data, &v) == nil
}

// writeFileAtomic writes through a sibling temporary file and a rename so a
// failed write never leaves a truncated file behind.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, perm); err != nil {
		return fmt.Errorf("writing %s: %w", tmpPath, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming %s: %w", tmpPath, err)
	}
	return nil
}
