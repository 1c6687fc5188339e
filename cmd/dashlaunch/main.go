// Package main is the entry point for the dashlaunch binary.
//
// dashlaunch is the bootstrap launcher shipped next to the Sprintbox
// reporting dashboard bundle. It prepares the runtime environment
// (library search path, interpreter selection) and hands control to the
// dashboard as a child process. All functionality lives in the
// internal/cli package, which defines cobra commands.
//
// Build-time variables (version, commit, date) are injected via ldflags
// by the release pipeline. During development, they default to "dev",
// "none", and "unknown" respectively.
package main

import (
	"github.com/sprintbox/dashlaunch/internal/cli"
)

// version, commit, and date are set at build time via ldflags.
// They provide binary identification for the --version flag output.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Inject build-time version info into the CLI package.
	// This decouples the build system (ldflags) from the CLI framework
	// (cobra), keeping main.go minimal.
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	// Create the root command with all subcommands registered,
	// then execute it. Execute handles error formatting and exit codes,
	// including verbatim passthrough of the dashboard's own exit status.
	rootCmd := cli.NewRootCommand()
	cli.Execute(rootCmd)
}
