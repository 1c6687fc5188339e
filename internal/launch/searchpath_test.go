package launch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprintbox/dashlaunch/internal/model"
)

// TestResolveSearchPath_BundledPresent verifies that an existing libs
// directory under the anchor becomes the head of the search path while
// the inherited value is preserved after it.
func TestResolveSearchPath_BundledPresent(t *testing.T) {
	anchor := t.TempDir()
	libsPath := filepath.Join(anchor, "libs")
	require.NoError(t, os.Mkdir(libsPath, 0o755))

	sep := string(os.PathListSeparator)
	sp := ResolveSearchPath(anchor, "libs", "/opt/site-packages")

	assert.Equal(t, model.SourceBundled, sp.Source)
	assert.Equal(t, libsPath, sp.BundledDir)
	assert.Equal(t, "/opt/site-packages", sp.Inherited)
	assert.Equal(t, libsPath+sep+"/opt/site-packages", sp.Value())
}

// TestResolveSearchPath_BundledAbsent verifies that a missing libs
// directory is a silent no-op: the inherited value passes through
// unchanged.
func TestResolveSearchPath_BundledAbsent(t *testing.T) {
	anchor := t.TempDir()

	sp := ResolveSearchPath(anchor, "libs", "/opt/site-packages")

	assert.Equal(t, model.SourceInherited, sp.Source)
	assert.Empty(t, sp.BundledDir)
	assert.Equal(t, "/opt/site-packages", sp.Value())
}

// TestResolveSearchPath_EmptyInherited covers the common case of no
// pre-existing search path in the launcher's environment.
func TestResolveSearchPath_EmptyInherited(t *testing.T) {
	anchor := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(anchor, "libs"), 0o755))

	sp := ResolveSearchPath(anchor, "libs", "")

	assert.Equal(t, model.SourceBundled, sp.Source)
	assert.Equal(t, filepath.Join(anchor, "libs"), sp.Value(), "no trailing separator when nothing is inherited")
}

// TestResolveSearchPath_FileNotDirectory verifies that a regular file
// named like the libs directory does not count as a bundle.
func TestResolveSearchPath_FileNotDirectory(t *testing.T) {
	anchor := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(anchor, "libs"), []byte("not a dir"), 0o644))

	sp := ResolveSearchPath(anchor, "libs", "/x")

	assert.Equal(t, model.SourceInherited, sp.Source)
}

// TestResolveSearchPath_InheritedOpaque verifies that a multi-entry
// inherited value is carried as one opaque segment, not decomposed.
func TestResolveSearchPath_InheritedOpaque(t *testing.T) {
	anchor := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(anchor, "libs"), 0o755))

	sep := string(os.PathListSeparator)
	inherited := "/a" + sep + "/b" + sep + "/c"

	sp := ResolveSearchPath(anchor, "libs", inherited)

	assert.Equal(t, inherited, sp.Inherited)
	assert.Equal(t, filepath.Join(anchor, "libs")+sep+inherited, sp.Value())
}

// TestResolveSearchPath_Idempotent verifies that repeated resolution
// against an unchanged tree yields identical values.
func TestResolveSearchPath_Idempotent(t *testing.T) {
	t.Run("with bundle", func(t *testing.T) {
		anchor := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(anchor, "libs"), 0o755))

		first := ResolveSearchPath(anchor, "libs", "/opt")
		second := ResolveSearchPath(anchor, "libs", "/opt")
		assert.Equal(t, first, second)
	})

	t.Run("without bundle", func(t *testing.T) {
		anchor := t.TempDir()

		first := ResolveSearchPath(anchor, "libs", "/opt")
		second := ResolveSearchPath(anchor, "libs", "/opt")
		assert.Equal(t, first, second)
	})
}
