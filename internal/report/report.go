// Package report renders release preparation results for a terminal.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fyrsmithlabs/devcode/internal/githubcheck"
	"github.com/fyrsmithlabs/devcode/internal/release"
	"github.com/fyrsmithlabs/devcode/internal/rewrite"
	"github.com/fyrsmithlabs/devcode/internal/scan"
)

// Checklist is the operator guidance for provisioning the release token.
var Checklist = []string{
	"Create a fine-grained personal access token for this repository with" +
		" \"Contents: Read and write\" and \"Pull requests: Read and write\".",
	"Add it as a GitHub Actions repository secret named " + githubcheck.SecretName + ".",
	"Commit and push these changes; tagpr will open the release pull request.",
}

type styles struct {
	title   lipgloss.Style
	section lipgloss.Style
	label   lipgloss.Style
	dim     lipgloss.Style
	ok      lipgloss.Style
	warn    lipgloss.Style
	fail    lipgloss.Style
}

// Renderer writes reports to one output, styled for that output's
// color support. Output that is not a terminal gets plain text.
type Renderer struct {
	w      io.Writer
	styles styles
}

// NewRenderer returns a Renderer writing to w.
func NewRenderer(w io.Writer) *Renderer {
	lg := lipgloss.NewRenderer(w)
	return &Renderer{
		w: w,
		styles: styles{
			title:   lg.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
			section: lg.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
			label:   lg.NewStyle().Foreground(lipgloss.Color("45")),
			dim:     lg.NewStyle().Foreground(lipgloss.Color("245")),
			ok:      lg.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),
			warn:    lg.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
			fail:    lg.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		},
	}
}

// Report writes the full release preparation report.
func (r *Renderer) Report(rep *release.Report) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s -> %s\n",
		r.styles.title.Render("Release preparation:"),
		rep.Identifier, rep.PublishName)
	if rep.DryRun {
		b.WriteString(r.styles.warn.Render("Dry run: no files were written.") + "\n")
	}

	b.WriteString("\n" + r.styles.section.Render("Managed files") + "\n")
	r.writeOutcomes(&b, rep.Outcomes)

	b.WriteString("\n")
	r.writeOccurrences(&b, rep.Identifier, rep.Occurrences, rep.FilesScanned, rep.FilesSkipped)

	b.WriteString("\n")
	r.writeChecklist(&b, rep)

	_, err := io.WriteString(r.w, b.String())
	return err
}

// Occurrences writes a standalone scan result.
func (r *Renderer) Occurrences(identifier string, res *scan.Result) error {
	var b strings.Builder
	r.writeOccurrences(&b, identifier, res.Occurrences, res.FilesScanned, res.FilesSkipped)
	_, err := io.WriteString(r.w, b.String())
	return err
}

func (r *Renderer) writeOutcomes(b *strings.Builder, outcomes []rewrite.Outcome) {
	width := 0
	for _, o := range outcomes {
		width = max(width, len(o.Location.Path))
	}

	var warnings []string
	for _, o := range outcomes {
		symbol, style := r.statusMark(o.Status)
		fmt.Fprintf(b, "  %s %-*s  %s  %s\n",
			style.Render(symbol),
			width, o.Location.Path,
			style.Render(fmt.Sprintf("%-12s", o.Status)),
			r.styles.dim.Render(o.Location.Description))
		if o.Err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", o.Location.Path, o.Err))
		}
	}
	for _, w := range warnings {
		b.WriteString(r.styles.warn.Render("Warning:") + " " + w + "\n")
	}
}

func (r *Renderer) statusMark(s rewrite.Status) (string, lipgloss.Style) {
	switch s {
	case rewrite.StatusUpdated:
		return "✓", r.styles.ok
	case rewrite.StatusWouldUpdate:
		return "~", r.styles.warn
	case rewrite.StatusFailed:
		return "✗", r.styles.fail
	default:
		return "-", r.styles.dim
	}
}

func (r *Renderer) writeOccurrences(b *strings.Builder, identifier string, occ []scan.Occurrence, scanned, skipped int) {
	if len(occ) == 0 {
		fmt.Fprintf(b, "%s %q\n", r.styles.section.Render("No remaining occurrences of"), identifier)
	} else {
		fmt.Fprintf(b, "%s %q (%d, left unmodified)\n",
			r.styles.section.Render("Remaining occurrences of"), identifier, len(occ))
		for _, o := range occ {
			fmt.Fprintf(b, "  %s %s\n", r.styles.label.Render(fmt.Sprintf("%s:%d:", o.Path, o.Line)), o.Text)
		}
	}

	stats := fmt.Sprintf("Scanned %d files", scanned)
	if skipped > 0 {
		stats += fmt.Sprintf(", skipped %d unreadable or non-text files", skipped)
	}
	b.WriteString(r.styles.dim.Render(stats) + "\n")
}

func (r *Renderer) writeChecklist(b *strings.Builder, rep *release.Report) {
	b.WriteString(r.styles.section.Render("Next steps: release token") + "\n")
	for i, step := range Checklist {
		fmt.Fprintf(b, "  %d. %s\n", i+1, step)
		if i == 1 && rep.Repo != nil {
			fmt.Fprintf(b, "     %s\n", r.styles.label.Render(rep.Repo.SecretsSettingsURL()))
		}
	}

	if rep.Secret == nil {
		return
	}
	status := string(rep.Secret.Status)
	switch rep.Secret.Status {
	case githubcheck.StatusPresent:
		status = r.styles.ok.Render(status)
	case githubcheck.StatusMissing:
		status = r.styles.fail.Render(status)
	default:
		status = r.styles.warn.Render(status)
	}
	line := fmt.Sprintf("Secret %s: %s", githubcheck.SecretName, status)
	if rep.Secret.Err != nil {
		line += fmt.Sprintf(" (%v)", rep.Secret.Err)
	}
	b.WriteString(line + "\n")
}
