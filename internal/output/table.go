package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/crashlens/crashlens/internal/domain"
)

// RenderVerdictTable writes the per-suspect verdicts as a human-readable
// table. Verdicts are rendered in the order given (the engine sorts them by
// score already).
func RenderVerdictTable(w io.Writer, verdicts []domain.SuspectVerdict) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Suspect", "Match", "Confidence", "Severity", "Score", "Escalated"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, v := range verdicts {
		matched := "no"
		if v.Match.IsMatch {
			matched = "yes"
		}
		escalated := ""
		if v.Assessment.WasEscalated {
			escalated = "yes"
		}
		data = append(data, []string{
			v.Suspect,
			matched,
			fmt.Sprintf("%.2f", v.Match.Confidence),
			v.Assessment.FinalLevel.String(),
			fmt.Sprintf("%.2f", v.Assessment.Score),
			escalated,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// RenderDiagnosisText writes the combined verdict and stack highlights in a
// styled text form.
func RenderDiagnosisText(w io.Writer, d *domain.Diagnosis) error {
	level := d.Combined.FinalLevel
	if _, err := fmt.Fprintf(w, "%s %s (score %.2f)\n",
		Styles.Label.Render("Verdict:"),
		SeverityStyle(level).Render(level.String()),
		d.Combined.Score); err != nil {
		return err
	}
	for _, reason := range d.Combined.Explanations {
		if _, err := fmt.Fprintf(w, "  %s %s\n", Styles.Muted.Render("-"), reason); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "%s %d suspects evaluated, %d matched\n",
		Styles.Label.Render("Catalogue:"), len(d.Verdicts), d.MatchCount()); err != nil {
		return err
	}

	if err := RenderVerdictTable(w, d.Verdicts); err != nil {
		return err
	}
	return RenderStackText(w, d.Stack)
}

// RenderStackText writes the structural stack analysis in text form.
func RenderStackText(w io.Writer, a domain.CallStackAnalysis) error {
	if !a.IsValid {
		_, err := fmt.Fprintln(w, Styles.Muted.Render("No call stack to analyze."))
		return err
	}

	if _, err := fmt.Fprintf(w, "%s %s frames, critical depth %s, recursion %s\n",
		Styles.Label.Render("Stack:"),
		Styles.Value.Render(strconv.Itoa(a.TotalFrames)),
		Styles.Value.Render(strconv.Itoa(a.Depth.CriticalDepth)),
		Styles.Value.Render(strconv.FormatBool(a.RecursionDetected))); err != nil {
		return err
	}

	for _, cluster := range a.Clusters {
		indices := make([]string, len(cluster.Indices))
		for i, idx := range cluster.Indices {
			indices[i] = strconv.Itoa(idx)
		}
		if _, err := fmt.Fprintf(w, "  cluster %s at frames %s\n",
			cluster.Module, strings.Join(indices, ",")); err != nil {
			return err
		}
	}

	for _, indicator := range a.ProblemIndicators {
		if _, err := fmt.Fprintf(w, "  %s %s\n",
			Styles.Indicator.Render("!"), indicator); err != nil {
			return err
		}
	}
	return nil
}
