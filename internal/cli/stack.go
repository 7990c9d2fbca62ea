package cli

import (
	"fmt"

	"github.com/crashlens/crashlens/internal/callstack"
	"github.com/crashlens/crashlens/internal/output"
)

// StackCmd analyzes a raw call stack without touching the catalogue.
type StackCmd struct {
	File     string   `arg:"" optional:"" default:"-" help:"Call stack file, '-' for stdin"`
	Patterns []string `short:"p" help:"Patterns to locate in the call stack"`
	Sequence []string `help:"Check that these patterns appear in order"`
	Stats    string   `help:"Print occurrence statistics for one pattern"`
}

// Run executes the stack command.
func (c *StackCmd) Run(cli *CLI, globals *Globals) error {
	data, err := readInput(c.File)
	if err != nil {
		return outputError(globals, "READ_ERROR", fmt.Sprintf("cannot read call stack: %s", err))
	}

	analyzer := callstack.NewAnalyzer()
	if cfg := globals.Config; cfg != nil && len(cfg.ProblemModules) > 0 {
		analyzer = callstack.NewAnalyzerWithModules(cfg.ProblemModules)
	}

	analysis := analyzer.Analyze(string(data), c.Patterns)

	if globals.ResolveFormat() == "ndjson" {
		w := output.NewNDJSONWriter(globals.Stdout)
		if err := w.WriteStackAnalysis(analysis); err != nil {
			return err
		}
		if c.Sequence != nil {
			ok := callstack.ContainsSequence(analysis.Frames, c.Sequence)
			if err := w.WriteRaw(map[string]any{
				"type":          "sequence_check",
				"schemaVersion": output.SchemaVersion,
				"patterns":      c.Sequence,
				"found":         ok,
			}); err != nil {
				return err
			}
		}
		if c.Stats != "" {
			return w.WriteRaw(map[string]any{
				"type":          "pattern_stats",
				"schemaVersion": output.SchemaVersion,
				"stats":         callstack.PatternStats(analysis.Frames, c.Stats),
			})
		}
		return nil
	}

	if err := output.RenderStackText(globals.Stdout, analysis); err != nil {
		return err
	}
	if c.Sequence != nil {
		ok := callstack.ContainsSequence(analysis.Frames, c.Sequence)
		if _, err := fmt.Fprintf(globals.Stdout, "sequence %v found: %t\n", c.Sequence, ok); err != nil {
			return err
		}
	}
	if c.Stats != "" {
		stats := callstack.PatternStats(analysis.Frames, c.Stats)
		if _, err := fmt.Fprintf(globals.Stdout,
			"pattern %q: %d occurrences, depths %d..%d, avg %.1f, clustering %.2f\n",
			stats.Pattern, stats.Occurrences, stats.FirstDepth, stats.LastDepth,
			stats.AverageDepth, stats.ClusteringCoefficient); err != nil {
			return err
		}
	}
	return nil
}
