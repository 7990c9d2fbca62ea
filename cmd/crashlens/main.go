package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/crashlens/crashlens/internal/cli"
	"github.com/crashlens/crashlens/internal/config"
)

const quickStart = `crashlens - crash report diagnostics for game titles

START HERE (this is the command you want):
  crashlens diagnose crash.json -c suspects.yaml

Flags:
  -c    Suspect catalogue file (YAML)
  -f    Output format: auto, ndjson, text

Other useful commands:
  crashlens stack dump.txt              Analyze a raw call stack
  crashlens match -s 'ME-REQ|AccessViolation' -e "..."
                                        Dry-run a signal rule set
`

func main() {
	// Show quick start if no args provided
	if len(os.Args) == 1 {
		fmt.Print(quickStart)
		return
	}

	// Load configuration from files/environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		cfg = config.Default()
	}

	var c cli.CLI

	// Apply config defaults before parsing
	// These will be overridden by CLI flags if specified
	vars := kong.Vars{
		"config_format": cfg.Format,
	}

	ctx := kong.Parse(&c,
		kong.Name("crashlens"),
		kong.Description("Diagnose game crash reports against a suspect catalogue\n\nSTART HERE: crashlens diagnose crash.json -c suspects.yaml"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
		vars,
	)

	globals := cli.NewGlobals(&c, cfg)
	if err := ctx.Run(&c, globals); err != nil {
		os.Exit(1)
	}
}
