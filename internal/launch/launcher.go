package launch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"syscall"

	"github.com/sprintbox/dashlaunch/internal/model"
)

// Launcher spawns the dashboard child process described by a LaunchSpec
// and waits for it to exit.
//
// The three streams are injected so tests can capture output; production
// callers wire them to the process's own stdin/stdout/stderr, giving the
// child the shared console the operator reads diagnostics from.
type Launcher struct {
	// Stdin, Stdout, Stderr are handed to the child process unchanged.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewLauncher creates a Launcher with the given console streams.
func NewLauncher(stdin io.Reader, stdout, stderr io.Writer) *Launcher {
	return &Launcher{Stdin: stdin, Stdout: stdout, Stderr: stderr}
}

// Run spawns exactly one child process described by spec and blocks until
// it exits. There is no timeout: the wait matches the dashboard's lifetime,
// and an operator interrupt at the terminal simply ends the wait.
//
// Return contract:
//   - child ran and exited → the child's exit status and a nil error
//     (status 0 and non-zero alike; the launcher never translates it).
//     A child killed by a signal reports 128+signal, the shell wait
//     convention.
//   - child could not be started at all (interpreter missing or not
//     executable) → a CLIError with ExitInterpreterNotFound
//
// For the system interpreter variant, this spawn step is where PATH
// resolution finally happens; a host with no resolvable interpreter
// surfaces here and nowhere earlier. There is no retry and no further
// fallback beyond the two variants already tried during selection.
func (l *Launcher) Run(ctx context.Context, spec model.LaunchSpec) (int, error) {
	// #nosec G204 — the command and arguments are assembled from the
	// launcher's own settings, not from untrusted input
	cmd := exec.CommandContext(ctx, spec.Interpreter.Command, spec.Args...)
	cmd.Dir = spec.Dir
	cmd.Env = spec.Env
	cmd.Stdin = l.Stdin
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	// A started child that exited non-zero is reported through the exit
	// status, not as a launcher error — its diagnostics are already on the
	// shared console.
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		// A signal-killed child has no exit status (ExitCode reports -1,
		// which os.Exit would fold into 255). Map it to 128+signal, the
		// same status a shell would report for the wait.
		if code < 0 {
			if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
				code = 128 + int(ws.Signal())
			}
		}
		return code, nil
	}

	return 0, model.WrapCLIError(model.ExitInterpreterNotFound,
		fmt.Sprintf("failed to start %s interpreter %q", spec.Interpreter.Kind, spec.Interpreter.Command), err)
}
