package commands

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/dmitrymomot/projectkeys/pkg/projectkey"
	"github.com/dmitrymomot/projectkeys/svc/projects"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	faint  = color.New(color.Faint)
)

func success(w io.Writer, format string, a ...any) {
	green.Fprintf(w, "✓ "+format, a...)
}

// printResults writes one line per project and a summary line.
func printResults(w io.Writer, results []projects.BackfillResult, dryRun bool) {
	for _, r := range results {
		switch {
		case r.Err != nil:
			red.Fprintf(w, "✗ %-10s ", "-")
			fmt.Fprintf(w, "%s  %s\n", r.Name, faint.Sprintf("%s (%v)", r.ProjectID, reasonText(r.Err)))
		case r.Skipped:
			faint.Fprintf(w, "- %-10s ", "-")
			fmt.Fprintf(w, "%s  %s\n", r.Name, faint.Sprintf("%s (already has a key)", r.ProjectID))
		case r.Provenance == projectkey.ProvenanceDerivedWithSuffix:
			yellow.Fprintf(w, "✓ %-10s ", r.Key)
			fmt.Fprintf(w, "%s  %s\n", r.Name, faint.Sprint(r.ProjectID))
		default:
			green.Fprintf(w, "✓ %-10s ", r.Key)
			fmt.Fprintf(w, "%s  %s\n", r.Name, faint.Sprint(r.ProjectID))
		}
	}

	failed, skipped := countFailed(results), countSkipped(results)
	verb := "assigned"
	if dryRun {
		verb = "derived"
	}
	summary := fmt.Sprintf("%d projects, %d %s, %d failed", len(results), len(results)-failed-skipped, verb, failed)
	if skipped > 0 {
		summary += fmt.Sprintf(", %d skipped", skipped)
	}
	summary += "\n"
	if failed > 0 {
		red.Fprint(w, summary)
		return
	}
	green.Fprint(w, summary)
}

func reasonText(err error) string {
	if r := projectkey.ReasonOf(err); r != projectkey.ReasonNone {
		return string(r)
	}
	return err.Error()
}

func countSkipped(results []projects.BackfillResult) int {
	n := 0
	for _, r := range results {
		if r.Skipped {
			n++
		}
	}
	return n
}

func countFailed(results []projects.BackfillResult) int {
	n := 0
	for _, r := range results {
		if !r.OK() {
			n++
		}
	}
	return n
}
