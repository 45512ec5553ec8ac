package scan

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fyrsmithlabs/devcode/internal/ignore"
	"github.com/fyrsmithlabs/devcode/internal/logging"
)

const (
	// DefaultPreviewLength bounds Occurrence.Text, in runes.
	DefaultPreviewLength = 80
	// DefaultWorkers bounds concurrent file reads.
	DefaultWorkers = 8
)

// ErrEmptyIdentifier is returned when Find is asked to search for "".
var ErrEmptyIdentifier = errors.New("identifier cannot be empty")

// Occurrence is one line containing the identifier.
type Occurrence struct {
	// Path is relative to the scanned root, slash separated.
	Path string
	// Line is 1-based.
	Line int
	// Text is the trimmed line, redacted and truncated.
	Text string
}

func (o Occurrence) String() string {
	return fmt.Sprintf("%s:%d: %s", o.Path, o.Line, o.Text)
}

// Result is the outcome of one Find call.
type Result struct {
	Occurrences  []Occurrence
	FilesScanned int
	// FilesSkipped counts files that could not be read or were not UTF-8.
	FilesSkipped int
}

// Redactor masks secrets in preview text.
type Redactor interface {
	Redact(text string) string
}

// Options configures a Finder. Zero values select defaults.
type Options struct {
	Exclude ignore.DirSet
	// Managed holds slash-separated paths relative to root that are skipped.
	Managed       map[string]bool
	Workers       int
	PreviewLength int
	Redactor      Redactor
}

// Finder searches project trees for literal identifier matches.
type Finder struct {
	opts Options
}

// NewFinder returns a Finder with defaults applied to opts.
func NewFinder(opts Options) *Finder {
	if opts.Exclude.Len() == 0 {
		opts.Exclude = ignore.Default()
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.PreviewLength <= 0 {
		opts.PreviewLength = DefaultPreviewLength
	}
	return &Finder{opts: opts}
}

// fileResult is one worker's output, stored by traversal index.
type fileResult struct {
	occurrences []Occurrence
	skipped     bool
}

// Find reports every line under root containing identifier, outside
// managed paths. It never writes.
func (f *Finder) Find(ctx context.Context, root, identifier string) (*Result, error) {
	if identifier == "" {
		return nil, ErrEmptyIdentifier
	}

	files, err := Walk(ctx, root, f.opts.Exclude)
	if err != nil {
		return nil, err
	}

	type job struct {
		path string
		rel  string
	}
	jobs := make([]job, 0, len(files))
	for _, path := range files {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil, fmt.Errorf("computing relative path: %w", err)
		}
		rel = filepath.ToSlash(rel)
		if f.opts.Managed[rel] {
			continue
		}
		jobs = append(jobs, job{path: path, rel: rel})
	}

	results := make([]fileResult, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.opts.Workers)
	for i, j := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = f.scanFile(gctx, j.path, j.rel, identifier)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}

	res := &Result{}
	for _, r := range results {
		if r.skipped {
			res.FilesSkipped++
			continue
		}
		res.FilesScanned++
		res.Occurrences = append(res.Occurrences, r.occurrences...)
	}

	logging.FromContext(ctx).Debug(ctx, "scan complete",
		zap.Int("files_scanned", res.FilesScanned),
		zap.Int("files_skipped", res.FilesSkipped),
		zap.Int("occurrences", len(res.Occurrences)))
	return res, nil
}

func (f *Finder) scanFile(ctx context.Context, path, rel, identifier string) fileResult {
	content, err := os.ReadFile(path)
	if err != nil {
		logging.FromContext(ctx).Debug(ctx, "skipping unreadable file", zap.String("path", rel), zap.Error(err))
		return fileResult{skipped: true}
	}
	if !utf8.Valid(content) {
		logging.FromContext(ctx).Debug(ctx, "skipping non-UTF-8 file", zap.String("path", rel))
		return fileResult{skipped: true}
	}
	if !bytes.Contains(content, []byte(identifier)) {
		return fileResult{}
	}

	var found []Occurrence
	for i, line := range strings.Split(string(content), "\n") {
		if !strings.Contains(line, identifier) {
			continue
		}
		found = append(found, Occurrence{
			Path: rel,
			Line: i + 1,
			Text: f.preview(line),
		})
	}
	return fileResult{occurrences: found}
}

// preview trims line, masks secrets, then cuts it to PreviewLength runes.
func (f *Finder) preview(line string) string {
	text := strings.TrimSpace(line)
	if f.opts.Redactor != nil {
		text = f.opts.Redactor.Redact(text)
	}
	return truncateRunes(text, f.opts.PreviewLength)
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
