// Package ignore provides the directory exclusion set used when scanning a
// project tree.
package ignore

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultDirs are directory names that are never scanned. They hold version
// control data, installed dependencies, or build output.
var DefaultDirs = []string{
	".git",
	".hg",
	".svn",
	"node_modules",
	"dist",
	"build",
	"coverage",
	".next",
	".turbo",
	".cache",
	".venv",
	"vendor",
}

// ProjectFile is the optional per-project file listing extra directory names
// to exclude, one per line.
const ProjectFile = ".devcodeignore"

// DirSet is an immutable set of directory names matched exactly at any depth.
type DirSet struct {
	names map[string]struct{}
}

// NewDirSet builds a set from the given names. Empty names are dropped.
func NewDirSet(names ...string) DirSet {
	set := DirSet{names: make(map[string]struct{}, len(names))}
	for _, n := range names {
		if n == "" {
			continue
		}
		set.names[n] = struct{}{}
	}
	return set
}

// Default returns a set containing DefaultDirs.
func Default() DirSet {
	return NewDirSet(DefaultDirs...)
}

// With returns a new set containing the receiver's names plus extra.
func (s DirSet) With(extra ...string) DirSet {
	return NewDirSet(append(s.Names(), extra...)...)
}

// Contains reports whether name is excluded.
func (s DirSet) Contains(name string) bool {
	_, ok := s.names[name]
	return ok
}

// Names returns the excluded names in sorted order.
func (s DirSet) Names() []string {
	out := make([]string, 0, len(s.names))
	for n := range s.names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of excluded names.
func (s DirSet) Len() int {
	return len(s.names)
}

// Parser reads ignore files that list directory names.
type Parser struct {
	// IgnoreFiles is the list of ignore file names to look for.
	IgnoreFiles []string
}

// NewParser creates a parser for the given ignore file names.
func NewParser(ignoreFiles ...string) *Parser {
	return &Parser{IgnoreFiles: ignoreFiles}
}

// ParseProject reads all ignore files from the project root and returns the
// directory names they list. Missing files are skipped.
func (p *Parser) ParseProject(projectRoot string) ([]string, error) {
	var names []string
	for _, ignoreFile := range p.IgnoreFiles {
		fileNames, err := p.parseFile(filepath.Join(projectRoot, ignoreFile))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		names = append(names, fileNames...)
	}
	return deduplicate(names), nil
}

func (p *Parser) parseFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var names []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if name := parseLine(scanner.Text()); name != "" {
			names = append(names, name)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return names, nil
}

// parseLine returns the directory name on a line, or "" for blank lines,
// comments, and entries that are not a single path segment. Exclusion is by
// exact name, so globs and nested paths cannot be honoured.
func parseLine(line string) string {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
		return ""
	}

	line = strings.TrimPrefix(line, "/")
	line = strings.TrimSuffix(line, "/")
	if line == "" || strings.ContainsAny(line, "/*?[") {
		return ""
	}
	return line
}

// deduplicate removes duplicate names while preserving order.
func deduplicate(names []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(names))
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			result = append(result, n)
		}
	}
	return result
}
