package launch

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprintbox/dashlaunch/internal/config"
	"github.com/sprintbox/dashlaunch/internal/model"
)

// TestBuildSpec_FixedArgumentShape verifies the default invocation:
// module execution of streamlit running main.py with the headless switch
// explicitly present and set to false.
func TestBuildSpec_FixedArgumentShape(t *testing.T) {
	cfg := config.Default()
	interp := model.Interpreter{Kind: model.KindSystem, Command: "python"}
	sp := model.SearchPath{Source: model.SourceInherited}

	spec := BuildSpec("/opt/sprintbox", cfg, interp, sp, nil, nil)

	assert.Equal(t, []string{"-m", "streamlit", "run", "main.py", "--server.headless=false"}, spec.Args)
	assert.Equal(t, "/opt/sprintbox", spec.Dir, "child must run in the anchor directory")
	assert.Equal(t, interp, spec.Interpreter)
}

// TestBuildSpec_OptionalArguments verifies the placement of the port
// flag, settings-file extra args, and command-line passthrough args.
func TestBuildSpec_OptionalArguments(t *testing.T) {
	cfg := config.Default()
	cfg.ServerPort = 8600
	cfg.ExtraArgs = []string{"--theme.base=dark"}
	headless := true
	cfg.Headless = &headless

	interp := model.Interpreter{Kind: model.KindSystem, Command: "python"}
	sp := model.SearchPath{Source: model.SourceInherited}

	spec := BuildSpec("/opt/sprintbox", cfg, interp, sp, []string{"--logger.level=debug"}, nil)

	assert.Equal(t, []string{
		"-m", "streamlit",
		"run", "main.py",
		"--server.headless=true",
		"--server.port=8600",
		"--theme.base=dark",
		"--logger.level=debug",
	}, spec.Args)
}

// TestBuildSpec_Deterministic verifies that building the spec twice from
// the same inputs yields identical values (no hidden state, no side
// effects).
func TestBuildSpec_Deterministic(t *testing.T) {
	cfg := config.Default()
	interp := model.Interpreter{Kind: model.KindEmbedded, Command: "/opt/sprintbox/py311_emb/python"}
	sp := model.SearchPath{Source: model.SourceBundled, BundledDir: "/opt/sprintbox/libs", Inherited: "/x"}
	env := []string{"HOME=/home/op", "PYTHONPATH=/x"}

	first := BuildSpec("/opt/sprintbox", cfg, interp, sp, nil, env)
	second := BuildSpec("/opt/sprintbox", cfg, interp, sp, nil, env)

	assert.Equal(t, first, second)
}

// TestComposeEnv_BundledReplacesVariable verifies that the child
// environment is a copy of the parent with exactly one assignment
// replaced: the search path variable gets the composite value.
func TestComposeEnv_BundledReplacesVariable(t *testing.T) {
	sep := string(os.PathListSeparator)
	parent := []string{
		"HOME=/home/op",
		"PYTHONPATH=/inherited",
		"LANG=C.UTF-8",
	}
	sp := model.SearchPath{
		Source:     model.SourceBundled,
		BundledDir: "/opt/sprintbox/libs",
		Inherited:  "/inherited",
	}

	env := ComposeEnv(parent, sp)

	assert.Contains(t, env, "HOME=/home/op")
	assert.Contains(t, env, "LANG=C.UTF-8")
	assert.Contains(t, env, "PYTHONPATH=/opt/sprintbox/libs"+sep+"/inherited")
	assert.NotContains(t, env, "PYTHONPATH=/inherited", "the old assignment must be replaced, not duplicated")

	// Exactly one search path assignment.
	count := 0
	for _, kv := range env {
		if len(kv) >= len("PYTHONPATH=") && kv[:len("PYTHONPATH=")] == "PYTHONPATH=" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

// TestComposeEnv_BundledWithoutPriorAssignment verifies the variable is
// added when the parent environment never carried one.
func TestComposeEnv_BundledWithoutPriorAssignment(t *testing.T) {
	parent := []string{"HOME=/home/op"}
	sp := model.SearchPath{Source: model.SourceBundled, BundledDir: "/opt/sprintbox/libs"}

	env := ComposeEnv(parent, sp)

	assert.Contains(t, env, "PYTHONPATH=/opt/sprintbox/libs")
	assert.Contains(t, env, "HOME=/home/op")
}

// TestComposeEnv_InheritedCopiesVerbatim verifies that without a bundle
// the parent environment is copied unchanged.
func TestComposeEnv_InheritedCopiesVerbatim(t *testing.T) {
	parent := []string{"HOME=/home/op", "PYTHONPATH=/inherited"}
	sp := model.SearchPath{Source: model.SourceInherited, Inherited: "/inherited"}

	env := ComposeEnv(parent, sp)

	assert.Equal(t, parent, env)
}

// TestComposeEnv_DoesNotMutateParent verifies the parent slice is left
// untouched — the resolved search path must not leak into the launcher's
// own environment.
func TestComposeEnv_DoesNotMutateParent(t *testing.T) {
	parent := []string{"PYTHONPATH=/inherited", "HOME=/home/op"}
	original := make([]string, len(parent))
	copy(original, parent)

	sp := model.SearchPath{Source: model.SourceBundled, BundledDir: "/libs", Inherited: "/inherited"}
	env := ComposeEnv(parent, sp)

	require.Equal(t, original, parent, "parent environment slice must not be modified")

	// Appending to the result must not bleed into the parent either.
	_ = append(env, "EXTRA=1")
	assert.Equal(t, original, parent)
}
