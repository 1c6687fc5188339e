package launch

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sprintbox/dashlaunch/internal/config"
	"github.com/sprintbox/dashlaunch/internal/model"
)

// BuildSpec assembles the fully resolved child-process invocation from the
// decisions made by ResolveSearchPath and SelectInterpreter.
//
// The argument list has a fixed shape:
//
//	-m <entryModule> run <script> --server.headless=<bool> [--server.port=<n>] [extra...]
//
// The headless switch is always present explicitly so the dashboard never
// falls back to its own default (see config.DefaultHeadless for why the
// value is false). The port flag is only emitted when the settings file
// sets one. Extra arguments come last: settings-file extraArgs first, then
// any passthrough arguments from the command line.
//
// The child environment is a copy of parentEnv with the search path
// variable replaced by the composite value when bundled libraries exist;
// parentEnv itself is never modified, so the resolved path cannot leak
// into the launcher's own remaining lifetime. BuildSpec performs no
// filesystem access and no side effects — building the same spec twice
// yields identical values.
func BuildSpec(anchorDir string, cfg *config.Config, interp model.Interpreter, sp model.SearchPath, passthrough []string, parentEnv []string) model.LaunchSpec {
	args := []string{
		"-m", cfg.EntryModule,
		"run", cfg.Script,
		fmt.Sprintf("--server.headless=%t", cfg.HeadlessValue()),
	}
	if cfg.ServerPort != 0 {
		args = append(args, "--server.port="+strconv.Itoa(cfg.ServerPort))
	}
	args = append(args, cfg.ExtraArgs...)
	args = append(args, passthrough...)

	return model.LaunchSpec{
		Interpreter: interp,
		Args:        args,
		Dir:         anchorDir,
		SearchPath:  sp,
		Env:         ComposeEnv(parentEnv, sp),
	}
}

// ComposeEnv builds the child's environment list from a copy of the
// parent's.
//
// When the search path carries a bundled directory, any existing
// assignment of the search path variable is dropped and the composite
// value is appended instead. When nothing was bundled, the parent
// environment is copied verbatim — the inherited assignment, if any,
// already holds the right value.
func ComposeEnv(parentEnv []string, sp model.SearchPath) []string {
	if sp.Source != model.SourceBundled {
		env := make([]string, len(parentEnv))
		copy(env, parentEnv)
		return env
	}

	prefix := SearchPathEnv + "="
	env := make([]string, 0, len(parentEnv)+1)
	for _, kv := range parentEnv {
		if strings.HasPrefix(kv, prefix) {
			continue
		}
		env = append(env, kv)
	}
	return append(env, prefix+sp.Value())
}
