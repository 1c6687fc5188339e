package launch

import (
	"os"
	"path/filepath"

	"github.com/sprintbox/dashlaunch/internal/model"
)

// SearchPathEnv is the environment variable carrying the interpreter's
// library search path.
const SearchPathEnv = "PYTHONPATH"

// ResolveSearchPath decides the library search path for the dashboard
// child process.
//
// If a directory named libsDir exists directly under the anchor, the
// result is the bundled variant: that directory's absolute path becomes
// the head of the search path, with the inherited value preserved after it
// as a single opaque trailing segment (insertion, not replacement). If the
// directory is absent, the inherited value passes through unchanged.
//
// Absence is not an error and the function never fails. No check is made
// that the directory actually contains usable libraries — correctness of
// the bundle's contents is outside this launcher's contract.
func ResolveSearchPath(anchorDir, libsDir, inherited string) model.SearchPath {
	bundled := filepath.Join(anchorDir, libsDir)

	info, err := os.Stat(bundled)
	if err != nil || !info.IsDir() {
		return model.SearchPath{
			Source:    model.SourceInherited,
			Inherited: inherited,
		}
	}

	return model.SearchPath{
		Source:     model.SourceBundled,
		BundledDir: bundled,
		Inherited:  inherited,
	}
}
