package model

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestInterpreterKind_String verifies that InterpreterKind values produce
// the expected string representations for CLI output and JSON serialization.
func TestInterpreterKind_String(t *testing.T) {
	assert.Equal(t, "embedded", KindEmbedded.String())
	assert.Equal(t, "system", KindSystem.String())
}

// TestInterpreterKind_IsValid checks that only defined kinds pass validation.
func TestInterpreterKind_IsValid(t *testing.T) {
	assert.True(t, KindEmbedded.IsValid())
	assert.True(t, KindSystem.IsValid())
	assert.False(t, InterpreterKind("bundled").IsValid())
	assert.False(t, InterpreterKind("").IsValid())
}

// TestParseInterpreterKind verifies string-to-kind conversion,
// including case normalization and error cases.
func TestParseInterpreterKind(t *testing.T) {
	tests := []struct {
		input    string
		expected InterpreterKind
		hasError bool
	}{
		{"embedded", KindEmbedded, false},
		{"system", KindSystem, false},
		{"Embedded", KindEmbedded, false}, // case insensitive
		{"SYSTEM", KindSystem, false},     // case insensitive
		{"python", "", true},              // unknown value
		{"", "", true},                    // empty string
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := ParseInterpreterKind(tt.input)
			if tt.hasError {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}

// TestSearchPath_Value verifies composite search path construction for
// every variant combination: bundled+inherited, bundled only, inherited
// only, and fully empty.
func TestSearchPath_Value(t *testing.T) {
	sep := string(os.PathListSeparator)

	tests := []struct {
		name string
		path SearchPath
		want string
	}{
		{
			name: "bundled prepended before inherited",
			path: SearchPath{Source: SourceBundled, BundledDir: "/app/libs", Inherited: "/opt/site-packages"},
			want: "/app/libs" + sep + "/opt/site-packages",
		},
		{
			name: "bundled only when nothing inherited",
			path: SearchPath{Source: SourceBundled, BundledDir: "/app/libs"},
			want: "/app/libs",
		},
		{
			name: "inherited passed through unchanged",
			path: SearchPath{Source: SourceInherited, Inherited: "/opt/site-packages"},
			want: "/opt/site-packages",
		},
		{
			name: "empty inherited stays empty",
			path: SearchPath{Source: SourceInherited},
			want: "",
		},
		{
			name: "inherited is opaque, not decomposed",
			path: SearchPath{Source: SourceBundled, BundledDir: "/app/libs", Inherited: "/a" + sep + "/b"},
			want: "/app/libs" + sep + "/a" + sep + "/b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.path.Value())
		})
	}
}

// TestLaunchSpec_CommandLine verifies the shell-style rendering used by
// notices and the resolve command.
func TestLaunchSpec_CommandLine(t *testing.T) {
	spec := LaunchSpec{
		Interpreter: Interpreter{Kind: KindSystem, Command: "python"},
		Args:        []string{"-m", "streamlit", "run", "main.py", "--server.headless=false"},
	}
	assert.Equal(t, "python -m streamlit run main.py --server.headless=false", spec.CommandLine())
}

// TestValidateEntryModule verifies module identifier validation for the
// `-m` style invocation target.
func TestValidateEntryModule(t *testing.T) {
	valid := []string{"streamlit", "my_app", "pkg.sub.mod", "_private", "m1"}
	for _, name := range valid {
		t.Run("valid "+name, func(t *testing.T) {
			assert.NoError(t, ValidateEntryModule(name))
		})
	}

	invalid := []string{"", "1module", "pkg..mod", "pkg.", ".pkg", "has-dash", "has space", "pkg/mod"}
	for _, name := range invalid {
		t.Run(fmt.Sprintf("invalid %q", name), func(t *testing.T) {
			assert.Error(t, ValidateEntryModule(name))
		})
	}
}

// TestCLIError verifies message formatting, unwrapping, and the
// constructor helpers.
func TestCLIError(t *testing.T) {
	t.Run("message only", func(t *testing.T) {
		err := NewCLIError(ExitConfigInvalid, "settings file invalid")
		assert.Equal(t, "settings file invalid", err.Error())
		assert.Equal(t, ExitConfigInvalid, err.Code)
		assert.Nil(t, err.Unwrap())
	})

	t.Run("wrapped error included", func(t *testing.T) {
		underlying := errors.New("unexpected token")
		err := WrapCLIError(ExitConfigInvalid, "settings file invalid", underlying)
		assert.Equal(t, "settings file invalid: unexpected token", err.Error())
		assert.True(t, errors.Is(err, underlying))
	})
}

// TestChildExitError verifies that the child status passthrough error
// reports its code without translation.
func TestChildExitError(t *testing.T) {
	err := &ChildExitError{Code: 7}
	assert.Equal(t, "dashboard exited with status 7", err.Error())

	var childErr *ChildExitError
	require.True(t, errors.As(error(err), &childErr))
	assert.Equal(t, 7, childErr.Code)
}
