// Package rewrite holds the managed locations that release preparation is
// allowed to edit, and the transformation applied to each of them.
//
// # Locations
//
// A Location pairs a project-relative path with a Transform. Transforms are
// pure functions over file content; Apply owns reading, validating, and
// writing the file so that every location shares the same failure rules:
//
//   - a missing optional file is skipped, not an error
//   - content that does not change is never written
//   - writes go through a temporary file and a rename
//
// # Registry
//
// A Registry is an ordered, immutable list of locations. Order is the
// execution and reporting order. DefaultRegistry returns the three locations
// every devcode project carries.
package rewrite

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// Request carries the values a transform needs for one run.
type Request struct {
	// Identifier is the devcode name being replaced.
	Identifier string

	// PublishName is the name the project is released under.
	PublishName string
}

// Validate checks that both names are set.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Identifier) == "" {
		return errors.New("identifier cannot be empty")
	}
	if strings.TrimSpace(r.PublishName) == "" {
		return errors.New("publish name cannot be empty")
	}
	return nil
}

// Transform rewrites the content of one managed file. It must not touch any
// part of the content it does not own.
type Transform func(content []byte, req Request) ([]byte, error)

// Location is a file release preparation may rewrite.
type Location struct {
	// Path is relative to the project root, slash separated.
	Path string

	// Description is shown in the report.
	Description string

	// Optional locations are skipped when the file does not exist.
	Optional bool

	// ValidateYAML refuses output that no longer parses when the input did.
	ValidateYAML bool

	Transform Transform
}

// Registry is an ordered set of managed locations.
type Registry struct {
	locations []Location
}

// NewRegistry builds a registry. Paths must be unique, relative, and clean.
func NewRegistry(locations ...Location) (Registry, error) {
	seen := make(map[string]bool, len(locations))
	for _, loc := range locations {
		if loc.Path == "" || path.IsAbs(loc.Path) || path.Clean(loc.Path) != loc.Path || strings.HasPrefix(loc.Path, "../") {
			return Registry{}, fmt.Errorf("invalid location path %q", loc.Path)
		}
		if loc.Transform == nil {
			return Registry{}, fmt.Errorf("location %q has no transform", loc.Path)
		}
		if seen[loc.Path] {
			return Registry{}, fmt.Errorf("duplicate location path %q", loc.Path)
		}
		seen[loc.Path] = true
	}

	locs := make([]Location, len(locations))
	copy(locs, locations)
	return Registry{locations: locs}, nil
}

// MustNewRegistry is NewRegistry that panics on error.
func MustNewRegistry(locations ...Location) Registry {
	r, err := NewRegistry(locations...)
	if err != nil {
		panic(err)
	}
	return r
}

// Locations returns the locations in order.
func (r Registry) Locations() []Location {
	out := make([]Location, len(r.locations))
	copy(out, r.locations)
	return out
}

// Paths returns the set of managed relative paths.
func (r Registry) Paths() map[string]bool {
	paths := make(map[string]bool, len(r.locations))
	for _, loc := range r.locations {
		paths[loc.Path] = true
	}
	return paths
}

// Len returns the number of locations.
func (r Registry) Len() int {
	return len(r.locations)
}

// Managed file paths.
const (
	ManifestPath      = "package.json"
	CodeQLConfigPath  = ".github/codeql/codeql-config.yml"
	TagprWorkflowPath = ".github/workflows/tagpr.yml"
)

// DefaultRegistry returns the manifest, CodeQL config, and tagpr workflow
// locations, in that order.
func DefaultRegistry() Registry {
	return MustNewRegistry(
		Location{
			Path:        ManifestPath,
			Description: "package name (private flag removed)",
			Transform:   ManifestName,
		},
		Location{
			Path:         CodeQLConfigPath,
			Description:  "CodeQL config name",
			Optional:     true,
			ValidateYAML: true,
			Transform:    FirstNameLine,
		},
		Location{
			Path:         TagprWorkflowPath,
			Description:  "tagpr workflow token (GITHUB_TOKEN -> PAT_FOR_TAGPR)",
			Optional:     true,
			ValidateYAML: true,
			Transform:    WorkflowToken,
		},
	)
}
