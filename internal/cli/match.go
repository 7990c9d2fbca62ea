package cli

import (
	"fmt"

	"github.com/crashlens/crashlens/internal/match"
	"github.com/crashlens/crashlens/internal/output"
	"github.com/crashlens/crashlens/internal/severity"
)

// MatchCmd dry-runs a signal rule set against report text. Useful when
// writing new catalogue entries.
type MatchCmd struct {
	Signal []string `short:"s" required:"" help:"Signal rule (repeatable), e.g. 'ME-REQ|AccessViolation' or '3|bad.dll'"`
	Error  string   `short:"e" help:"Main error text"`
	Stack  string   `help:"Call stack file, '-' for stdin"`
	Tier   int      `default:"3" help:"Base severity tier (1-6) for the scored preview"`
}

// Run executes the match command.
func (c *MatchCmd) Run(cli *CLI, globals *Globals) error {
	var stack string
	if c.Stack != "" {
		data, err := readInput(c.Stack)
		if err != nil {
			return outputError(globals, "READ_ERROR", fmt.Sprintf("cannot read call stack: %s", err))
		}
		stack = string(data)
	}

	result := match.NewMatcher().Process(c.Signal, c.Error, stack)
	assessment := severity.NewScorer().Calculate(c.Tier, &result, nil)

	if globals.ResolveFormat() == "ndjson" {
		return output.NewNDJSONWriter(globals.Stdout).WriteRaw(map[string]any{
			"type":          "match_preview",
			"schemaVersion": output.SchemaVersion,
			"match":         result,
			"assessment":    assessment,
		})
	}

	if _, err := fmt.Fprintf(globals.Stdout, "match: %t", result.IsMatch); err != nil {
		return err
	}
	if result.SkipReason != "" {
		if _, err := fmt.Fprintf(globals.Stdout, " (%s)", result.SkipReason); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(globals.Stdout, "\nconfidence: %.2f\n", result.Confidence); err != nil {
		return err
	}
	for _, m := range result.Matches {
		if _, err := fmt.Fprintf(globals.Stdout, "  %-8s %-12s %q x%d\n",
			m.Kind, m.Location, m.Pattern, m.Occurrences); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(globals.Stdout, "severity: %s (score %.2f)\n",
		output.SeverityStyle(assessment.FinalLevel).Render(assessment.FinalLevel.String()),
		assessment.Score)
	return err
}
