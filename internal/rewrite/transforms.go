package rewrite

import (
	"strings"

	"github.com/fyrsmithlabs/devcode/internal/manifest"
)

// ManifestName sets the manifest name to the publish name and drops the
// private flag. It edits parsed JSON, never raw text.
func ManifestName(content []byte, req Request) ([]byte, error) {
	return manifest.SetPublishName(content, req.PublishName)
}

// FirstNameLine replaces the identifier on the first line whose trimmed
// content starts with "name:". Only the first occurrence on that line is
// replaced and every other line is returned byte for byte.
//
// When the publish name embeds the identifier ("pkg" -> "@scope/pkg") a
// migrated line still contains the identifier, so a line that already
// carries the publish name is left alone. Otherwise a migrated line no longer
// contains the identifier and replacing is always safe.
func FirstNameLine(content []byte, req Request) ([]byte, error) {
	lines, trailing := splitLines(string(content))
	for i, line := range lines {
		if !strings.HasPrefix(strings.TrimSpace(line), "name:") {
			continue
		}
		if !alreadyMigrated(line, req) {
			lines[i] = strings.Replace(line, req.Identifier, req.PublishName, 1)
		}
		break
	}
	return []byte(joinLines(lines, trailing)), nil
}

func alreadyMigrated(line string, req Request) bool {
	return strings.Contains(req.PublishName, req.Identifier) && strings.Contains(line, req.PublishName)
}

// Workflow tokens and markers.
const (
	githubTokenEnv   = "GITHUB_TOKEN: ${{ secrets.GITHUB_TOKEN }}"
	patTokenEnv      = "GITHUB_TOKEN: ${{ secrets.PAT_FOR_TAGPR }}"
	patTokenRef      = "${{ secrets.PAT_FOR_TAGPR }}"
	sentinelPrefix   = "# TODO: After replace-devcode"
	checkoutSentinel = sentinelPrefix + ", add token: " + patTokenRef
	checkoutAction   = "actions/checkout"
)

// WorkflowToken switches the tagpr workflow from the default GITHUB_TOKEN to
// the PAT_FOR_TAGPR secret. The steps run in order:
//
//  1. every "GITHUB_TOKEN: ${{ secrets.GITHUB_TOKEN }}" becomes the PAT form
//  2. a checkout step followed by the checkout sentinel gets a with/token block
//     in place of the sentinel
//  3. any remaining sentinel lines are dropped
//  4. runs of three or more blank lines collapse to one
func WorkflowToken(content []byte, _ Request) ([]byte, error) {
	text := strings.ReplaceAll(string(content), githubTokenEnv, patTokenEnv)

	lines, trailing := splitLines(text)
	lines = expandCheckoutToken(lines)
	lines = dropSentinels(lines)
	lines = collapseBlankRuns(lines)

	return []byte(joinLines(lines, trailing)), nil
}

func expandCheckoutToken(lines []string) []string {
	out := make([]string, 0, len(lines)+1)
	for i := 0; i < len(lines); i++ {
		out = append(out, lines[i])
		if !isCheckoutStep(lines[i]) || i+1 >= len(lines) {
			continue
		}

		next := lines[i+1]
		body, eol := splitEOL(next)
		if strings.TrimSpace(body) != checkoutSentinel {
			continue
		}

		indent := leadingWhitespace(body)
		out = append(out,
			indent+"with:"+eol,
			indent+"  token: "+patTokenRef+eol,
		)
		i++
	}
	return out
}

func isCheckoutStep(line string) bool {
	t := strings.TrimSpace(line)
	t = strings.TrimPrefix(t, "- ")
	t = strings.TrimSpace(t)
	return strings.HasPrefix(t, "uses: "+checkoutAction+"@") || t == "uses: "+checkoutAction
}

func dropSentinels(lines []string) []string {
	out := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), sentinelPrefix) {
			continue
		}
		out = append(out, line)
	}
	return out
}

// collapseBlankRuns replaces every run of three or more blank lines with a
// single blank line. Shorter runs are kept as they are.
func collapseBlankRuns(lines []string) []string {
	out := make([]string, 0, len(lines))
	for i := 0; i < len(lines); {
		if !isBlank(lines[i]) {
			out = append(out, lines[i])
			i++
			continue
		}

		j := i
		for j < len(lines) && isBlank(lines[j]) {
			j++
		}
		if j-i >= 3 {
			out = append(out, lines[i])
		} else {
			out = append(out, lines[i:j]...)
		}
		i = j
	}
	return out
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

func leadingWhitespace(s string) string {
	return s[:len(s)-len(strings.TrimLeft(s, " \t"))]
}

// splitEOL separates a trailing carriage return from a line.
func splitEOL(line string) (string, string) {
	if strings.HasSuffix(line, "\r") {
		return strings.TrimSuffix(line, "\r"), "\r"
	}
	return line, ""
}

// splitLines splits on "\n". The empty element after a final newline is not
// a line; it is reported through trailing instead.
func splitLines(s string) (lines []string, trailing bool) {
	if s == "" {
		return nil, false
	}
	trailing = strings.HasSuffix(s, "\n")
	if trailing {
		s = strings.TrimSuffix(s, "\n")
	}
	return strings.Split(s, "\n"), trailing
}

func joinLines(lines []string, trailing bool) string {
	s := strings.Join(lines, "\n")
	if trailing {
		s += "\n"
	}
	return s
}
