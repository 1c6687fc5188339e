package model

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// InterpreterKind identifies which of the two interpreter variants was
// selected for a run. Exactly one variant is ever selected per invocation:
//
//	embedded → a self-contained interpreter shipped next to the launcher
//	system   → an interpreter resolved by name through the OS PATH search
type InterpreterKind string

const (
	// KindEmbedded indicates the interpreter bundled under the anchor
	// directory was found and selected. Embedded always wins over system.
	KindEmbedded InterpreterKind = "embedded"

	// KindSystem indicates no embedded interpreter exists; the command is
	// a bare executable name whose resolution is deferred to the operating
	// system's PATH search at spawn time.
	KindSystem InterpreterKind = "system"
)

// String returns the string representation of InterpreterKind.
// This method satisfies the fmt.Stringer interface, enabling
// human-readable output in CLI commands and JSON serialization.
func (k InterpreterKind) String() string {
	return string(k)
}

// IsValid checks whether the InterpreterKind value is one of the
// predefined valid kinds.
func (k InterpreterKind) IsValid() bool {
	switch k {
	case KindEmbedded, KindSystem:
		return true
	default:
		return false
	}
}

// ParseInterpreterKind converts a string to an InterpreterKind.
// Returns an error if the string does not match any valid kind.
func ParseInterpreterKind(s string) (InterpreterKind, error) {
	kind := InterpreterKind(strings.ToLower(s))
	if !kind.IsValid() {
		return "", fmt.Errorf("invalid interpreter kind: %q (valid: embedded, system)", s)
	}
	return kind, nil
}

// Interpreter is the resolved interpreter reference for a single run.
//
// For KindEmbedded, Command is the absolute path to the bundled executable.
// For KindSystem, Command is a bare name (e.g. "python") that the OS
// resolves via PATH when the child process is started.
type Interpreter struct {
	// Kind tells which variant was selected.
	Kind InterpreterKind `json:"kind"`

	// Command is the executable path (embedded) or name (system) passed
	// to the OS process-spawn mechanism.
	Command string `json:"command"`
}

// String returns a human-readable representation like
// "embedded (/opt/app/py311_emb/python)".
func (i Interpreter) String() string {
	return fmt.Sprintf("%s (%s)", i.Kind, i.Command)
}

// SearchPathSource identifies how the library search path was produced.
type SearchPathSource string

const (
	// SourceBundled indicates the bundled-dependencies directory exists
	// under the anchor and was prepended to the inherited search path.
	SourceBundled SearchPathSource = "bundled"

	// SourceInherited indicates no bundled directory exists; the inherited
	// search path is passed through unchanged.
	SourceInherited SearchPathSource = "inherited"
)

// String returns the string representation of SearchPathSource.
func (s SearchPathSource) String() string {
	return string(s)
}

// IsValid checks whether the SearchPathSource value is one of the
// predefined valid sources.
func (s SearchPathSource) IsValid() bool {
	switch s {
	case SourceBundled, SourceInherited:
		return true
	default:
		return false
	}
}

// SearchPath is the resolved library search path for the dashboard child
// process. It is a tagged value rather than a plain string so callers can
// branch on the variant without re-checking the filesystem.
type SearchPath struct {
	// Source tells whether a bundled directory was prepended.
	Source SearchPathSource `json:"source"`

	// BundledDir is the absolute path of the bundled-dependencies
	// directory. Empty when Source is SourceInherited.
	BundledDir string `json:"bundledDir,omitempty"`

	// Inherited is the search path value inherited from the launcher's own
	// environment. It is treated as a single opaque trailing segment and
	// never decomposed or validated.
	Inherited string `json:"inherited,omitempty"`
}

// Value returns the composite search path string to place in the child's
// environment: the bundled directory first, then the inherited value,
// joined with the platform list separator. When nothing was bundled the
// inherited value is returned verbatim (possibly empty).
func (p SearchPath) Value() string {
	if p.Source != SourceBundled {
		return p.Inherited
	}
	if p.Inherited == "" {
		return p.BundledDir
	}
	return p.BundledDir + string(os.PathListSeparator) + p.Inherited
}

// LaunchSpec is the fully resolved child-process invocation. It is an
// immutable decision record: building it performs no side effects, and
// repeated builds against an unchanged directory tree produce identical
// values.
type LaunchSpec struct {
	// Interpreter is the selected interpreter reference.
	Interpreter Interpreter `json:"interpreter"`

	// Args is the full argument list after the interpreter command,
	// e.g. ["-m", "streamlit", "run", "main.py", "--server.headless=false"].
	Args []string `json:"args"`

	// Dir is the child's working directory — always the anchor directory,
	// never the caller's current directory.
	Dir string `json:"dir"`

	// SearchPath is the resolved library search path carried in Env.
	SearchPath SearchPath `json:"searchPath"`

	// Env is the child's complete environment: a copy of the launcher's
	// environment with the search path variable replaced when bundled
	// libraries exist. The launcher's own environment is never mutated.
	Env []string `json:"-"`
}

// CommandLine renders the invocation as a single shell-style line for
// notices and the resolve command's text output.
func (s LaunchSpec) CommandLine() string {
	return s.Interpreter.Command + " " + strings.Join(s.Args, " ")
}

// entryModuleRegex validates Python module identifiers: dotted sequences
// of letters, digits and underscores, each segment starting with a letter
// or underscore.
var entryModuleRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*(\.[a-zA-Z_][a-zA-Z0-9_]*)*$`)

// ValidateEntryModule checks if the given name is a valid entry-module
// identifier for a `-m` style module invocation.
func ValidateEntryModule(name string) error {
	if name == "" {
		return fmt.Errorf("entry module must not be empty")
	}
	if !entryModuleRegex.MatchString(name) {
		return fmt.Errorf("invalid entry module %q: must be a dotted identifier (letters, digits, underscores)", name)
	}
	return nil
}

// ExitCode defines the launcher's own CLI exit codes. The dashboard child's
// exit status is never translated into one of these — it is passed through
// verbatim via ChildExitError.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitConfigInvalid indicates the settings file next to the launcher
	// could not be parsed or contained invalid values.
	ExitConfigInvalid ExitCode = 2

	// ExitInterpreterNotFound indicates neither an embedded interpreter nor
	// a system-resolvable one could be executed at spawn time.
	ExitInterpreterNotFound ExitCode = 3
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}

// ChildExitError reports that the dashboard child process exited with a
// non-zero status. The launcher's own exit status must equal the child's,
// so the CLI layer exits with Code directly and prints nothing — the
// child's diagnostics are already visible in the shared console.
type ChildExitError struct {
	// Code is the child's exit status as reported by the OS process wait.
	Code int
}

// Error satisfies the error interface.
func (e *ChildExitError) Error() string {
	return fmt.Sprintf("dashboard exited with status %d", e.Code)
}
