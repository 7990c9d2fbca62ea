// Package cli defines the crashlens command surface.
package cli

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/crashlens/crashlens/internal/config"
)

// CLI is the root command tree.
type CLI struct {
	// Global flags
	Format  string `short:"f" default:"${config_format}" enum:"auto,ndjson,text" help:"Output format"`
	Catalog string `short:"c" help:"Suspect catalogue file (defaults to the loaded config)"`
	Quiet   bool   `short:"q" help:"Suppress non-result output"`
	Verbose bool   `short:"v" help:"Show debug output (per-suspect evaluation, timings)"`

	// Commands
	Diagnose DiagnoseCmd `cmd:"" default:"withargs" help:"Diagnose a crash report against the suspect catalogue"`
	Stack    StackCmd    `cmd:"" help:"Analyze a raw call stack without running the catalogue"`
	Match    MatchCmd    `cmd:"" help:"Dry-run a signal rule set against report text"`
	Version  VersionCmd  `cmd:"" help:"Show version information"`
}

// Globals holds shared state for all commands.
type Globals struct {
	Format  string
	Quiet   bool
	Verbose bool
	Stdout  io.Writer
	Stderr  io.Writer
	Config  *config.Config
	Log     *zap.Logger
}

// NewGlobals builds shared state from parsed flags and loaded config.
func NewGlobals(c *CLI, cfg *config.Config) *Globals {
	g := &Globals{
		Format:  c.Format,
		Quiet:   c.Quiet || cfg.Quiet,
		Verbose: c.Verbose || cfg.Verbose,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Config:  cfg,
		Log:     zap.NewNop(),
	}
	if g.Verbose {
		if log, err := zap.NewDevelopment(); err == nil {
			g.Log = log
		}
	}
	return g
}

// ResolveFormat turns "auto" into a concrete format: text on a terminal,
// ndjson otherwise.
func (g *Globals) ResolveFormat() string {
	if g.Format != "auto" && g.Format != "" {
		return g.Format
	}
	if f, ok := g.Stdout.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return "text"
	}
	return "ndjson"
}
