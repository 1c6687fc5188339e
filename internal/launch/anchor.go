package launch

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sprintbox/dashlaunch/internal/model"
)

// Anchor returns the directory containing the launcher executable.
//
// Every relative lookup (bundled libraries, embedded interpreter, settings
// file) and the child's working directory are resolved against this
// directory, never against the caller's current directory, so the launcher
// behaves identically no matter where it is invoked from.
//
// Symlinks are resolved first: when the binary is started through a
// symlink (e.g. from a PATH shim), the bundle lives next to the real
// executable, not next to the link.
func Anchor() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", model.WrapCLIError(model.ExitGeneralError, "failed to locate launcher executable", err)
	}

	resolved, err := filepath.EvalSymlinks(exe)
	if err != nil {
		return "", model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to resolve launcher path %s", exe), err)
	}

	return filepath.Dir(resolved), nil
}

// ValidateAnchor checks that an explicitly supplied anchor directory (the
// --anchor flag) exists and is a directory. The implicit anchor from
// Anchor() needs no such check — the executable's directory exists by
// construction.
func ValidateAnchor(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to resolve anchor directory %s", dir), err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("anchor directory %s does not exist", abs), err)
	}
	if !info.IsDir() {
		return "", model.NewCLIError(model.ExitGeneralError,
			fmt.Sprintf("anchor path %s is not a directory", abs))
	}

	return abs, nil
}
