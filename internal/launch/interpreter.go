package launch

import (
	"os"
	"path/filepath"

	"github.com/sprintbox/dashlaunch/internal/model"
)

// embeddedCandidates are the executable names probed inside the embedded
// runtime directory, in precedence order. Embedded Python distributions
// ship python.exe on Windows and a bare python binary elsewhere; checking
// both names keeps the same bundle layout working on either host.
var embeddedCandidates = []string{"python.exe", "python"}

// SelectInterpreter chooses the interpreter for this run.
//
// If an executable exists at the fixed relative location
// <anchor>/<embeddedDir>/<candidate>, the embedded variant is selected
// with that absolute path. Otherwise the system variant is selected with
// the bare systemCommand name, deferring actual resolution to the
// operating system's PATH search at spawn time.
//
// The precedence is deterministic: embedded always wins when both exist.
// Selection itself never fails — a host with no interpreter at all is only
// discovered when the spawn is attempted.
func SelectInterpreter(anchorDir, embeddedDir, systemCommand string) model.Interpreter {
	for _, name := range embeddedCandidates {
		candidate := filepath.Join(anchorDir, embeddedDir, name)
		if isRegularFile(candidate) {
			return model.Interpreter{
				Kind:    model.KindEmbedded,
				Command: candidate,
			}
		}
	}

	return model.Interpreter{
		Kind:    model.KindSystem,
		Command: systemCommand,
	}
}

// isRegularFile reports whether path exists and is a regular file.
// Directories named like the executable do not count as an interpreter.
func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
