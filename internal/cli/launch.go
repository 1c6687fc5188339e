// Package cli — launch.go implements the "dashlaunch launch" command,
// which is also what a bare "dashlaunch" invocation runs.
//
// Orchestration steps:
//  1. Determine the anchor directory (launcher location or --anchor)
//  2. Load the settings file next to the launcher, if any
//  3. Resolve the library search path (bundled libs/ → PYTHONPATH head)
//  4. Select the interpreter (embedded py311_emb/ before system python)
//  5. Build the launch spec (argv, workdir, composed child environment)
//  6. Spawn the dashboard and block until it exits
//  7. Hold the console open for operator acknowledgment
//
// The whole sequence executes exactly once per invocation; no step is
// retried and no state carries over between runs. Step 7 runs no matter
// how the earlier steps ended — a failure at any point is printed first
// and then held on the console, because a double-clicked launcher window
// would otherwise close over the error text.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sprintbox/dashlaunch/internal/config"
	"github.com/sprintbox/dashlaunch/internal/launch"
	"github.com/sprintbox/dashlaunch/internal/model"
	"github.com/sprintbox/dashlaunch/internal/port"
)

// launchFlags holds the flag values for the launch command.
// The zero value is what a bare "dashlaunch" invocation uses.
type launchFlags struct {
	headless    bool // --headless: override the settings-file headless value
	headlessSet bool // whether --headless was given at all
	noPause     bool // --no-pause: skip the final acknowledgment pause
}

// dashboardRunner abstracts launch.Launcher so orchestration tests can
// simulate child outcomes without spawning real processes.
type dashboardRunner interface {
	Run(ctx context.Context, spec model.LaunchSpec) (int, error)
}

// launchDeps holds the process-spawning and console dependencies of
// runLaunch. They are injected so tests can observe the orchestration —
// in particular that the acknowledgment pause runs on every path —
// while production callers pass nil and get the real console wiring.
type launchDeps struct {
	// launcher spawns the dashboard child process.
	launcher dashboardRunner

	// pauser holds the console open after the dashboard ends.
	pauser launch.Pauser
}

// defaultLaunchDeps wires the real console: the child shares the
// launcher's stdio, and the pause reads from the same stdin unless
// --no-pause disabled it.
func defaultLaunchDeps(flags *launchFlags) *launchDeps {
	var pauser launch.Pauser = &launch.ConsolePauser{In: os.Stdin, Out: os.Stdout}
	if flags.noPause {
		pauser = launch.NopPauser{}
	}
	return &launchDeps{
		launcher: launch.NewLauncher(os.Stdin, os.Stdout, os.Stderr),
		pauser:   pauser,
	}
}

// NewLaunchCommand creates the "launch" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewLaunchCommand() *cobra.Command {
	flags := &launchFlags{}

	cmd := &cobra.Command{
		Use:   "launch [-- dashboard-args...]",
		Short: "Resolve the runtime environment and start the dashboard",
		Long: `Launch the dashboard with the resolved runtime environment.

Resolution order:
  - A "libs" directory next to the launcher is prepended to PYTHONPATH.
  - An embedded interpreter under "py311_emb" is preferred over the
    system "python".

The dashboard runs in the launcher's directory and shares this console.
After it exits, the console stays open until Enter is pressed so any
error output remains readable.

Examples:
  dashlaunch launch
  dashlaunch launch --headless
  dashlaunch launch --no-pause -- --theme.base=dark`,

		// Everything after "--" is passed through to the dashboard.
		Args: cobra.ArbitraryArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			flags.headlessSet = cmd.Flags().Changed("headless")
			return runLaunch(cmd.Context(), args, flags, nil)
		},
	}

	// Register command-specific flags.
	cmd.Flags().BoolVar(&flags.headless, "headless", config.DefaultHeadless, "Value for the dashboard's --server.headless switch")
	cmd.Flags().BoolVar(&flags.noPause, "no-pause", false, "Exit immediately after the dashboard stops")

	return cmd
}

// runLaunch is the main orchestration function for the launch command.
// The passthrough arguments are appended to the child's argument list
// after the fixed startup flags. A nil deps selects the real console
// wiring.
func runLaunch(ctx context.Context, passthrough []string, flags *launchFlags, deps *launchDeps) error {
	if deps == nil {
		deps = defaultLaunchDeps(flags)
	}

	// Step 1: Anchor. All relative lookups and the child's working
	// directory hang off this, never off the caller's current directory.
	anchorDir, err := resolveAnchor()
	if err != nil {
		return failOnConsole(err, deps.pauser)
	}
	VerboseLog("Anchor directory: %s", anchorDir)

	// Step 2: Settings.
	cfg, err := config.Load(anchorDir)
	if err != nil {
		return failOnConsole(err, deps.pauser)
	}
	if cfg.Path != "" {
		VerboseLog("Settings loaded from: %s", cfg.Path)
	} else {
		VerboseLog("No settings file, using defaults")
	}
	if flags.headlessSet {
		cfg.Headless = &flags.headless
	}

	// Step 3: Library search path.
	sp := launch.ResolveSearchPath(anchorDir, cfg.LibsDir, os.Getenv(launch.SearchPathEnv))
	if sp.Source == model.SourceBundled {
		// Informational notice for the operator; absence stays silent.
		fmt.Printf("Bundled libraries found: %s\n", sp.BundledDir)
	}
	VerboseLog("Search path (%s): %q", sp.Source, sp.Value())

	// Step 4: Interpreter.
	interp := launch.SelectInterpreter(anchorDir, cfg.EmbeddedDir, cfg.Interpreter)
	if interp.Kind == model.KindEmbedded {
		fmt.Printf("Using embedded interpreter: %s\n", interp.Command)
	} else {
		VerboseLog("No embedded interpreter, falling back to system %q", interp.Command)
	}

	// Step 5: Launch spec.
	spec := launch.BuildSpec(anchorDir, cfg, interp, sp, passthrough, os.Environ())
	VerboseLog("Command: %s", spec.CommandLine())
	VerboseLog("Working directory: %s", spec.Dir)

	// Advisory check: a bound dashboard port usually means an instance is
	// already running. The launch proceeds either way.
	probePort := cfg.ProbePort()
	if !port.NewProbe().IsFree(probePort) {
		fmt.Printf("Note: port %d is already in use — another dashboard instance may be running.\n", probePort)
	}

	// Step 6: Spawn and block until the dashboard exits. The child shares
	// this console, so its own diagnostics land in front of the operator.
	exitStatus, runErr := deps.launcher.Run(ctx, spec)
	if runErr != nil {
		return failOnConsole(runErr, deps.pauser)
	}

	// Step 7: Hold the console open so the dashboard's last output stays
	// readable.
	if pauseErr := deps.pauser.Pause(); pauseErr != nil {
		VerboseLog("Console pause failed: %v", pauseErr)
	}

	if exitStatus != 0 {
		// Pass the child's status through verbatim; no translation.
		return &model.ChildExitError{Code: exitStatus}
	}
	return nil
}

// failOnConsole surfaces a launch failure to the operator and holds the
// console open before handing the exit code to Execute.
//
// The error text must be printed BEFORE the acknowledgment pause —
// otherwise the operator acknowledges a blank screen and the window
// closes over the explanation. Execute must then exit without printing a
// second time, which is what consoleShownError signals.
func failOnConsole(err error, pauser launch.Pauser) error {
	code := model.ExitGeneralError
	if cliErr, ok := err.(*model.CLIError); ok {
		code = cliErr.Code
		printError(cliErr.Message, cliErr.Err)
	} else {
		printError(err.Error(), nil)
	}

	if pauseErr := pauser.Pause(); pauseErr != nil {
		VerboseLog("Console pause failed: %v", pauseErr)
	}

	return &consoleShownError{code: code}
}
