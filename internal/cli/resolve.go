// Package cli — resolve.go implements the "dashlaunch resolve" command,
// a dry run of the launch sequence: it performs the same resolution steps
// as launch but spawns nothing, prints the resulting launch spec, and
// never pauses. Because resolution reads the filesystem without modifying
// it, resolve can be run any number of times and will print the same spec
// for an unchanged directory tree.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sprintbox/dashlaunch/internal/config"
	"github.com/sprintbox/dashlaunch/internal/launch"
	"github.com/sprintbox/dashlaunch/internal/model"
)

// resolveResult aggregates everything the resolve command reports.
type resolveResult struct {
	// Anchor is the effective anchor directory.
	Anchor string `json:"anchor"`

	// Settings is the settings file path, or empty when defaults apply.
	Settings string `json:"settings,omitempty"`

	// SearchPath is the tagged search path decision.
	SearchPath model.SearchPath `json:"searchPath"`

	// SearchPathValue is the composite value the child would receive.
	SearchPathValue string `json:"searchPathValue"`

	// Interpreter is the selected interpreter reference.
	Interpreter model.Interpreter `json:"interpreter"`

	// CommandLine is the full child invocation as one string.
	CommandLine string `json:"commandLine"`

	// Dir is the child's working directory.
	Dir string `json:"dir"`
}

// NewResolveCommand creates the "resolve" cobra command.
func NewResolveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve",
		Short: "Show the resolved launch decision without starting anything",
		Long: `Resolve the library search path, interpreter, and child invocation
exactly as "launch" would, then print the result instead of spawning the
dashboard. Useful for verifying a bundle before shipping it.

Examples:
  dashlaunch resolve
  dashlaunch resolve --json
  dashlaunch resolve --anchor /opt/sprintbox`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve()
		},
	}
}

// runResolve performs the resolution sequence and prints the outcome.
func runResolve() error {
	anchorDir, err := resolveAnchor()
	if err != nil {
		return err
	}

	cfg, err := config.Load(anchorDir)
	if err != nil {
		return err
	}

	sp := launch.ResolveSearchPath(anchorDir, cfg.LibsDir, os.Getenv(launch.SearchPathEnv))
	interp := launch.SelectInterpreter(anchorDir, cfg.EmbeddedDir, cfg.Interpreter)
	spec := launch.BuildSpec(anchorDir, cfg, interp, sp, nil, os.Environ())

	result := resolveResult{
		Anchor:          anchorDir,
		Settings:        cfg.Path,
		SearchPath:      sp,
		SearchPathValue: sp.Value(),
		Interpreter:     interp,
		CommandLine:     spec.CommandLine(),
		Dir:             spec.Dir,
	}

	if IsJSONOutput() {
		data, marshalErr := json.MarshalIndent(result, "", "  ")
		if marshalErr != nil {
			return model.WrapCLIError(model.ExitGeneralError, "failed to encode resolve result", marshalErr)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Print(formatResolveText(result))
	return nil
}

// formatResolveText renders the resolve result as aligned human-readable
// text. Split out as a pure function so it can be unit tested without
// touching the filesystem.
func formatResolveText(r resolveResult) string {
	settings := r.Settings
	if settings == "" {
		settings = "defaults (no settings file)"
	}

	searchPath := string(r.SearchPath.Source)
	if r.SearchPath.Source == model.SourceBundled {
		searchPath = fmt.Sprintf("bundled (%s)", r.SearchPath.BundledDir)
	}

	value := r.SearchPathValue
	if value == "" {
		value = "(empty)"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Anchor:       %s\n", r.Anchor)
	fmt.Fprintf(&b, "Settings:     %s\n", settings)
	fmt.Fprintf(&b, "Search path:  %s\n", searchPath)
	fmt.Fprintf(&b, "  %s=%s\n", launch.SearchPathEnv, value)
	fmt.Fprintf(&b, "Interpreter:  %s\n", r.Interpreter)
	fmt.Fprintf(&b, "Command:      %s\n", r.CommandLine)
	fmt.Fprintf(&b, "Workdir:      %s\n", r.Dir)
	return b.String()
}
