package report

import (
	"bytes"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/devcode/internal/githubcheck"
	"github.com/fyrsmithlabs/devcode/internal/gitrepo"
	"github.com/fyrsmithlabs/devcode/internal/release"
	"github.com/fyrsmithlabs/devcode/internal/rewrite"
	"github.com/fyrsmithlabs/devcode/internal/scan"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func render(t *testing.T, rep *release.Report) string {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, NewRenderer(&buf).Report(rep))
	return ansi.ReplaceAllString(buf.String(), "")
}

func baseReport() *release.Report {
	locs := rewrite.DefaultRegistry().Locations()
	return &release.Report{
		Identifier:  "my-devcode",
		PublishName: "@scope/pkg",
		Outcomes: []rewrite.Outcome{
			{Location: locs[0], Status: rewrite.StatusUpdated},
			{Location: locs[1], Status: rewrite.StatusSkipped},
			{Location: locs[2], Status: rewrite.StatusFailed, Err: errors.New("permission denied")},
		},
		Occurrences: []scan.Occurrence{
			{Path: "src/index.ts", Line: 1, Text: "export const banner = 'my-devcode';"},
		},
		FilesScanned: 4,
	}
}

func TestRenderer_Report(t *testing.T) {
	out := render(t, baseReport())

	assert.Contains(t, out, "Release preparation: my-devcode -> @scope/pkg")
	assert.NotContains(t, out, "Dry run")

	assert.Regexp(t, `✓ package.json\s+updated`, out)
	assert.Regexp(t, `- \.github/codeql/codeql-config\.yml\s+skipped`, out)
	assert.Regexp(t, `✗ \.github/workflows/tagpr\.yml\s+failed`, out)
	assert.Contains(t, out, "Warning: .github/workflows/tagpr.yml: permission denied")

	assert.Contains(t, out, `Remaining occurrences of "my-devcode" (1, left unmodified)`)
	assert.Contains(t, out, "  src/index.ts:1: export const banner = 'my-devcode';")
	assert.Contains(t, out, "Scanned 4 files\n")

	for i, step := range Checklist {
		assert.Contains(t, out, step, "checklist step %d", i+1)
	}
	assert.NotContains(t, out, "settings/secrets/actions")
	assert.NotContains(t, out, "Secret PAT_FOR_TAGPR")
}

func TestRenderer_OutcomeOrder(t *testing.T) {
	out := render(t, baseReport())

	first := strings.Index(out, "package.json")
	second := strings.Index(out, "codeql-config.yml")
	third := strings.Index(out, "tagpr.yml")
	assert.True(t, first < second && second < third, "outcomes keep registry order")
}

func TestRenderer_DryRunAndRepo(t *testing.T) {
	rep := baseReport()
	rep.DryRun = true
	rep.Outcomes[0].Status = rewrite.StatusWouldUpdate
	rep.Repo = &gitrepo.Repo{Owner: "acme", Name: "pkg"}
	rep.Secret = &release.SecretCheck{Status: githubcheck.StatusMissing}
	rep.FilesSkipped = 2

	out := render(t, rep)

	assert.Contains(t, out, "Dry run: no files were written.")
	assert.Regexp(t, `~ package.json\s+would update`, out)
	assert.Contains(t, out, "https://github.com/acme/pkg/settings/secrets/actions")
	assert.Contains(t, out, "Secret PAT_FOR_TAGPR: missing\n")
	assert.Contains(t, out, "skipped 2 unreadable or non-text files")
}

func TestRenderer_SecretUnknown(t *testing.T) {
	rep := baseReport()
	rep.Secret = &release.SecretCheck{Status: githubcheck.StatusUnknown, Err: githubcheck.ErrNoToken}

	out := render(t, rep)
	assert.Contains(t, out, "Secret PAT_FOR_TAGPR: unknown (GitHub token not set)")
}

func TestRenderer_Occurrences(t *testing.T) {
	var buf bytes.Buffer
	err := NewRenderer(&buf).Occurrences("my-devcode", &scan.Result{FilesScanned: 3})
	require.NoError(t, err)

	out := ansi.ReplaceAllString(buf.String(), "")
	assert.Equal(t, "No remaining occurrences of \"my-devcode\"\nScanned 3 files\n", out)
}
