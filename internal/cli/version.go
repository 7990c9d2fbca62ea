package cli

import "io"

// Version information (set at build time)
var (
	Version = "dev"
	Commit  = "none"
)

// VersionCmd shows version information
type VersionCmd struct{}

// Run executes the version command
func (v *VersionCmd) Run(cli *CLI, globals *Globals) error {
	if globals.ResolveFormat() == "ndjson" {
		io.WriteString(globals.Stdout, `{"type":"version","version":"`+Version+`","commit":"`+Commit+`"}`+"\n")
	} else {
		io.WriteString(globals.Stdout, "crashlens version "+Version+" ("+Commit+")\n")
	}
	return nil
}
