// Package cli — doctor.go implements the "dashlaunch doctor" command,
// which diagnoses the launcher's environment without launching anything:
// settings file health, presence of the bundled pieces, interpreter
// resolvability, and dashboard port availability.
//
// Doctor pre-validates what the launch command deliberately does not —
// launch discovers a missing interpreter only at spawn time, doctor tells
// the operator beforehand.
package cli

import (
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sprintbox/dashlaunch/internal/config"
	"github.com/sprintbox/dashlaunch/internal/launch"
	"github.com/sprintbox/dashlaunch/internal/model"
	"github.com/sprintbox/dashlaunch/internal/port"
)

// doctorCheck is a single diagnostic line.
type doctorCheck struct {
	// Name identifies the checked aspect (e.g. "interpreter").
	Name string `json:"name"`

	// OK is false only for conditions that would break a launch.
	// Advisory findings (absent optional bundle pieces) stay true.
	OK bool `json:"ok"`

	// Detail is the human-readable finding.
	Detail string `json:"detail"`

	// code is the exit code a failure of this check maps to, so that a
	// broken settings file and a missing interpreter exit differently.
	// Zero for checks that cannot fail.
	code model.ExitCode
}

// doctorDeps holds the environment probes used by the checks. They are
// injected so tests can simulate hosts with or without a system
// interpreter and with the dashboard port taken.
type doctorDeps struct {
	// lookPath resolves an executable name through the OS PATH search.
	lookPath func(string) (string, error)

	// portFree reports whether the dashboard TCP port can be bound.
	portFree func(int) bool
}

// NewDoctorCommand creates the "doctor" cobra command.
func NewDoctorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose the launcher environment",
		Long: `Check the launcher's environment and report what a launch would find:
the settings file, the bundled libraries directory, the embedded
interpreter, the system interpreter, and the dashboard port.

The command exits non-zero when no interpreter could be resolved at all,
since a launch on this host would certainly fail.

Examples:
  dashlaunch doctor
  dashlaunch doctor --json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor()
		},
	}
}

// runDoctor gathers the checks and prints them in text or JSON form.
func runDoctor() error {
	anchorDir, err := resolveAnchor()
	if err != nil {
		return err
	}

	deps := doctorDeps{
		lookPath: exec.LookPath,
		portFree: port.NewProbe().IsFree,
	}
	checks := collectChecks(anchorDir, deps)

	if IsJSONOutput() {
		data, marshalErr := json.MarshalIndent(checks, "", "  ")
		if marshalErr != nil {
			return model.WrapCLIError(model.ExitGeneralError, "failed to encode doctor result", marshalErr)
		}
		fmt.Println(string(data))
	} else {
		fmt.Print(formatDoctorText(checks))
	}

	for _, c := range checks {
		if !c.OK {
			code := c.code
			if code == model.ExitSuccess {
				code = model.ExitGeneralError
			}
			return model.NewCLIError(code,
				fmt.Sprintf("check %q failed: %s", c.Name, c.Detail))
		}
	}
	return nil
}

// collectChecks runs every diagnostic against the anchor directory.
//
// Check semantics mirror the launch fallback policy: a missing bundled
// piece alone is fine (OK stays true, the fallback covers it); only the
// exhaustion of ALL interpreter variants is a failure, because launch
// would then have nothing left to try.
func collectChecks(anchorDir string, deps doctorDeps) []doctorCheck {
	var checks []doctorCheck

	checks = append(checks, doctorCheck{
		Name:   "anchor",
		OK:     true,
		Detail: anchorDir,
	})

	// Settings file: parse problems are reported but diagnosis continues
	// with defaults, so the remaining checks still say something useful.
	cfg, cfgErr := config.Load(anchorDir)
	switch {
	case cfgErr != nil:
		cfg = config.Default()
		checks = append(checks, doctorCheck{
			Name:   "settings",
			OK:     false,
			Detail: cfgErr.Error(),
			code:   model.ExitConfigInvalid,
		})
	case cfg.Path != "":
		checks = append(checks, doctorCheck{
			Name:   "settings",
			OK:     true,
			Detail: cfg.Path,
		})
	default:
		checks = append(checks, doctorCheck{
			Name:   "settings",
			OK:     true,
			Detail: "defaults (no settings file)",
		})
	}

	// Bundled libraries: optional by design, absence is advisory.
	sp := launch.ResolveSearchPath(anchorDir, cfg.LibsDir, "")
	if sp.Source == model.SourceBundled {
		checks = append(checks, doctorCheck{
			Name:   "bundled libraries",
			OK:     true,
			Detail: fmt.Sprintf("present (%s)", sp.BundledDir),
		})
	} else {
		checks = append(checks, doctorCheck{
			Name:   "bundled libraries",
			OK:     true,
			Detail: fmt.Sprintf("absent — inherited %s will be used as-is", launch.SearchPathEnv),
		})
	}

	// Interpreter: embedded presence and system resolvability are
	// reported separately, then combined into the go/no-go verdict.
	interp := launch.SelectInterpreter(anchorDir, cfg.EmbeddedDir, cfg.Interpreter)
	embeddedPresent := interp.Kind == model.KindEmbedded
	if embeddedPresent {
		checks = append(checks, doctorCheck{
			Name:   "embedded interpreter",
			OK:     true,
			Detail: fmt.Sprintf("present (%s)", interp.Command),
		})
	} else {
		checks = append(checks, doctorCheck{
			Name:   "embedded interpreter",
			OK:     true,
			Detail: fmt.Sprintf("absent — would fall back to system %q", cfg.Interpreter),
		})
	}

	systemPath, lookErr := deps.lookPath(cfg.Interpreter)
	systemPresent := lookErr == nil
	if systemPresent {
		checks = append(checks, doctorCheck{
			Name:   "system interpreter",
			OK:     true,
			Detail: fmt.Sprintf("%q resolves to %s", cfg.Interpreter, systemPath),
		})
	} else {
		checks = append(checks, doctorCheck{
			Name:   "system interpreter",
			OK:     true,
			Detail: fmt.Sprintf("%q not found in PATH", cfg.Interpreter),
		})
	}

	if embeddedPresent || systemPresent {
		checks = append(checks, doctorCheck{
			Name:   "interpreter",
			OK:     true,
			Detail: fmt.Sprintf("launch would use %s", interp),
		})
	} else {
		checks = append(checks, doctorCheck{
			Name:   "interpreter",
			OK:     false,
			Detail: "no embedded interpreter and no system interpreter — launch would fail",
			code:   model.ExitInterpreterNotFound,
		})
	}

	// Dashboard port: advisory, a bound port usually means an instance is
	// already running.
	probePort := cfg.ProbePort()
	if deps.portFree(probePort) {
		checks = append(checks, doctorCheck{
			Name:   "dashboard port",
			OK:     true,
			Detail: fmt.Sprintf("%d is free", probePort),
		})
	} else {
		checks = append(checks, doctorCheck{
			Name:   "dashboard port",
			OK:     true,
			Detail: fmt.Sprintf("%d is in use — another dashboard instance may be running", probePort),
		})
	}

	return checks
}

// formatDoctorText renders the checks as aligned human-readable lines.
// Split out as a pure function for unit testing.
func formatDoctorText(checks []doctorCheck) string {
	var b strings.Builder
	for _, c := range checks {
		status := "ok  "
		if !c.OK {
			status = "FAIL"
		}
		fmt.Fprintf(&b, "  %s  %-20s %s\n", status, c.Name+":", c.Detail)
	}
	return b.String()
}
