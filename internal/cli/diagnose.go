package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/crashlens/crashlens/internal/callstack"
	"github.com/crashlens/crashlens/internal/config"
	"github.com/crashlens/crashlens/internal/engine"
	"github.com/crashlens/crashlens/internal/output"
	"github.com/crashlens/crashlens/internal/report"
)

// DiagnoseCmd runs the full pipeline: match every catalogue suspect, score
// severity, analyze the call stack, and emit a combined verdict.
type DiagnoseCmd struct {
	Report   string   `arg:"" optional:"" default:"-" help:"Crash report file (JSON or plain text), '-' for stdin"`
	Patterns []string `short:"p" help:"Extra patterns to locate in the call stack"`
	Verdicts bool     `help:"Also emit one record per suspect verdict (ndjson only)"`
}

// Run executes the diagnose command.
func (c *DiagnoseCmd) Run(cli *CLI, globals *Globals) error {
	data, err := readInput(c.Report)
	if err != nil {
		return outputError(globals, "READ_ERROR", fmt.Sprintf("cannot read report: %s", err))
	}

	cfg, err := catalogueConfig(cli, globals)
	if err != nil {
		return outputError(globals, "CATALOG_ERROR", fmt.Sprintf("cannot load catalogue: %s", err))
	}
	suspects := cfg.DomainSuspects()
	if len(suspects) == 0 {
		return outputError(globals, "EMPTY_CATALOG", "no suspects configured; nothing to diagnose")
	}

	opts := []engine.Option{engine.WithLogger(globals.Log)}
	if len(cfg.ProblemModules) > 0 {
		opts = append(opts, engine.WithAnalyzer(callstack.NewAnalyzerWithModules(cfg.ProblemModules)))
	}
	eng := engine.New(opts...)

	diagnosis, err := eng.Diagnose(context.Background(), report.Parse(data), suspects, c.Patterns)
	if err != nil {
		return err
	}

	if globals.ResolveFormat() == "ndjson" {
		w := output.NewNDJSONWriter(globals.Stdout)
		if c.Verdicts {
			for _, v := range diagnosis.Verdicts {
				if err := w.WriteVerdict(v); err != nil {
					return err
				}
			}
		}
		if err := w.WriteDiagnosis(diagnosis, time.Now()); err != nil {
			return err
		}
		return w.WriteStackAnalysis(diagnosis.Stack)
	}

	return output.RenderDiagnosisText(globals.Stdout, diagnosis)
}

// catalogueConfig prefers an explicit --catalog file over the ambient
// config.
func catalogueConfig(cli *CLI, globals *Globals) (*config.Config, error) {
	if cli.Catalog == "" {
		return globals.Config, nil
	}
	return config.LoadFromFile(cli.Catalog)
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// outputError reports a tool failure in the active format and returns a
// non-nil error so the process exits non-zero.
func outputError(globals *Globals, code, message string) error {
	if globals.ResolveFormat() == "ndjson" {
		w := output.NewNDJSONWriter(globals.Stdout)
		if err := w.WriteError(code, message); err != nil {
			return err
		}
	} else if !globals.Quiet {
		fmt.Fprintln(globals.Stderr, message)
	}
	return fmt.Errorf("%s: %s", code, message)
}
