package secrets

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	gitleaksConfig "github.com/zricethezav/gitleaks/v8/config"
	"github.com/zricethezav/gitleaks/v8/detect"
	gitleaksRegexp "github.com/zricethezav/gitleaks/v8/regexp"
)

// Finding represents a detected secret on a line.
type Finding struct {
	RuleID string // Gitleaks rule ID (e.g., "github-pat")
	Match  string // The secret value
}

// Redactor replaces secrets found by gitleaks with markers. It is safe for
// concurrent use.
type Redactor struct {
	mu       sync.Mutex
	detector *detect.Detector
}

// NewRedactor builds a redactor from the gitleaks default rules plus the
// given allowlist (nil to skip). Building compiles several hundred rules, so
// create one per run and reuse it.
func NewRedactor(allowlist *Allowlist) (*Redactor, error) {
	detector, err := detect.NewDetectorDefaultConfig()
	if err != nil {
		return nil, fmt.Errorf("loading gitleaks rules: %w", err)
	}

	if !allowlist.Empty() {
		if err := applyAllowlist(&detector.Config, allowlist); err != nil {
			return nil, err
		}
	}

	return &Redactor{detector: detector}, nil
}

// Detect returns the secrets found in text.
func (r *Redactor) Detect(text string) []Finding {
	r.mu.Lock()
	found := r.detector.DetectString(text)
	r.mu.Unlock()

	findings := make([]Finding, 0, len(found))
	for _, f := range found {
		if f.Secret == "" {
			continue
		}
		findings = append(findings, Finding{RuleID: f.RuleID, Match: f.Secret})
	}
	return findings
}

// Redact returns text with every detected secret replaced by a
// [REDACTED:rule-id] marker.
func (r *Redactor) Redact(text string) string {
	findings := r.Detect(text)
	if len(findings) == 0 {
		return text
	}

	// Longest first so a secret that contains another is replaced whole.
	sort.SliceStable(findings, func(i, j int) bool {
		return len(findings[i].Match) > len(findings[j].Match)
	})
	for _, f := range findings {
		text = strings.ReplaceAll(text, f.Match, "[REDACTED:"+f.RuleID+"]")
	}
	return text
}

// applyAllowlist merges allowlist patterns into the gitleaks config.
func applyAllowlist(cfg *gitleaksConfig.Config, allowlist *Allowlist) error {
	global := &gitleaksConfig.Allowlist{
		Description: "devcode project allowlist",
	}

	for _, pattern := range allowlist.Paths {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return fmt.Errorf("%w: %q: %v", ErrInvalidRegex, pattern, err)
		}
		global.Paths = append(global.Paths, (*gitleaksRegexp.Regexp)(re))
	}

	for _, pattern := range allowlist.Regexes {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return fmt.Errorf("%w: %q: %v", ErrInvalidRegex, pattern, err)
		}
		global.Regexes = append(global.Regexes, (*gitleaksRegexp.Regexp)(re))
	}
	global.StopWords = append(global.StopWords, allowlist.Regexes...)

	cfg.Allowlists = append(cfg.Allowlists, global)
	return nil
}
