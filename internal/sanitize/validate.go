// Package sanitize validates user input before release preparation touches
// any file.
package sanitize

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Validation errors.
var (
	// ErrEmptyPath indicates an empty path was provided.
	ErrEmptyPath = errors.New("path cannot be empty")

	// ErrNotDirectory indicates the project path is not a directory.
	ErrNotDirectory = errors.New("not a directory")

	// ErrInvalidPublishName indicates the name cannot be published to npm.
	ErrInvalidPublishName = errors.New("invalid publish name")
)

// maxPublishNameLen is the npm registry limit, scope included.
const maxPublishNameLen = 214

// publishNamePattern matches "name" or "@scope/name" using the URL-safe
// characters npm accepts in new package names.
var publishNamePattern = regexp.MustCompile(`^(?:@[a-z0-9~-][a-z0-9._~-]*/)?[a-z0-9~-][a-z0-9._~-]*$`)

// PublishName checks that name is a valid npm package name.
func PublishName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidPublishName)
	case strings.TrimSpace(name) != name:
		return fmt.Errorf("%w: %q has leading or trailing spaces", ErrInvalidPublishName, name)
	case len(name) > maxPublishNameLen:
		return fmt.Errorf("%w: longer than %d characters", ErrInvalidPublishName, maxPublishNameLen)
	case strings.ToLower(name) != name:
		return fmt.Errorf("%w: %q must be lowercase", ErrInvalidPublishName, name)
	case !publishNamePattern.MatchString(name):
		return fmt.Errorf("%w: %q contains characters npm does not allow", ErrInvalidPublishName, name)
	}
	return nil
}

// ProjectDir cleans path, makes it absolute, and checks it is an existing
// directory. Symlinks to directories are accepted.
func ProjectDir(path string) (string, error) {
	if path == "" {
		return "", ErrEmptyPath
	}

	absPath, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return "", fmt.Errorf("project directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNotDirectory, absPath)
	}
	return absPath, nil
}
