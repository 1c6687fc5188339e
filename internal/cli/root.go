// Package cli implements the cobra-based CLI commands for dashlaunch.
//
// Each subcommand (launch, resolve, doctor) is defined in its own file
// within this package. This file defines the root command that serves as
// the parent for all subcommands and handles global flags. Running the
// root command with no subcommand performs the launch, which is the
// tool's whole purpose when double-clicked next to a dashboard bundle.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sprintbox/dashlaunch/internal/launch"
	"github.com/sprintbox/dashlaunch/internal/model"
)

// Global flag variables shared across all subcommands.
// These are bound to cobra persistent flags on the root command,
// which makes them available to every subcommand automatically.
var (
	// jsonOutput controls whether command output is formatted as JSON.
	// When true, resolve and doctor emit structured JSON for machine
	// consumption. The launch command's child output is unaffected —
	// the dashboard owns the console once spawned.
	jsonOutput bool

	// verbose enables detailed logging output for debugging.
	// When true, additional information about resolution steps is
	// printed to stderr.
	verbose bool

	// anchorOverride replaces the implicit anchor (the directory of the
	// launcher executable) with an explicit directory. Used by tests and
	// by operators inspecting a bundle that lives elsewhere.
	anchorOverride string
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
// This is the entry point for the entire CLI application.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dashlaunch",
		Short: "Bootstrap launcher for the Sprintbox reporting dashboard",
		Long: `dashlaunch prepares the runtime environment for the Sprintbox dashboard
and hands control to it.

Before spawning the dashboard it resolves, in order:
  1. Library search path — a bundled "libs" directory next to the launcher
     is prepended to PYTHONPATH when present.
  2. Interpreter — an embedded Python under "py311_emb" is preferred;
     otherwise the system "python" is resolved through PATH.

All lookups are anchored at the launcher's own directory, so the bundle
can be moved anywhere as one unit. Run with no subcommand to launch.`,

		// SilenceUsage prevents cobra from printing usage on every error.
		// We handle error output ourselves for cleaner UX.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing errors automatically.
		// We format errors ourselves (text or JSON based on --json flag).
		SilenceErrors: true,

		// Version is displayed when --version flag is used.
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		// Bare invocation launches the dashboard with default launch
		// flags. Arguments after "--" are passed through to the child.
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLaunch(cmd.Context(), args, &launchFlags{}, nil)
		},
	}

	// PersistentFlags are inherited by all subcommands.
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&anchorOverride, "anchor", "", "Anchor directory (default: directory of the launcher executable)")

	// Register subcommands. Each subcommand is defined in its own file
	// (launch.go, resolve.go, doctor.go) and returns a *cobra.Command.
	rootCmd.AddCommand(NewLaunchCommand())
	rootCmd.AddCommand(NewResolveCommand())
	rootCmd.AddCommand(NewDoctorCommand())

	return rootCmd
}

// Execute runs the root command and handles exit codes.
// This is the main entry point called from main.go.
//
// Three error shapes are translated into OS exit codes:
//   - ChildExitError: the dashboard's own exit status, passed through
//     verbatim and printed nowhere — its diagnostics already reached the
//     shared console.
//   - consoleShownError: a launcher failure whose text was already printed
//     before the acknowledgment pause; exits with its code silently.
//   - CLIError: printed here (text or JSON), then exits with its code.
//
// Anything else is printed and exits with the general error code.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		if childErr, ok := err.(*model.ChildExitError); ok {
			os.Exit(childErr.Code)
		}
		if shownErr, ok := err.(*consoleShownError); ok {
			os.Exit(int(shownErr.code))
		}
		if cliErr, ok := err.(*model.CLIError); ok {
			printError(cliErr.Message, cliErr.Err)
			os.Exit(int(cliErr.Code))
		}

		// Generic error — exit with code 1.
		printError(err.Error(), nil)
		os.Exit(int(model.ExitGeneralError))
	}
}

// consoleShownError carries an exit code for failures that were already
// displayed on the console before the acknowledgment pause. Execute must
// not print them a second time.
type consoleShownError struct {
	code model.ExitCode
}

// Error satisfies the error interface.
func (e *consoleShownError) Error() string {
	return fmt.Sprintf("exit status %d", int(e.code))
}

// resolveAnchor returns the effective anchor directory: the --anchor
// override when given (validated to exist), otherwise the directory of
// the launcher executable.
func resolveAnchor() (string, error) {
	if anchorOverride != "" {
		return launch.ValidateAnchor(anchorOverride)
	}
	return launch.Anchor()
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json global flag.
func printError(message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		// We write to stderr for errors, even in JSON mode, because stdout
		// is reserved for successful command output.
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		if underlying != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", message, underlying)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %s\n", message)
		}
	}
}

// VerboseLog prints a message to stderr only when verbose mode is enabled.
// This is used throughout the CLI for debug/trace output that helps
// operators understand what resolution decisions were made.
func VerboseLog(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
	}
}

// IsJSONOutput returns whether the --json flag is set.
// Subcommands use this to decide their output format.
func IsJSONOutput() bool {
	return jsonOutput
}
