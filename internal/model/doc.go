// Package model defines the domain types and value objects for the
// dashlaunch CLI.
//
// This package contains pure data structures with no external dependencies.
// All entities (Interpreter, SearchPath, LaunchSpec) are constructed fresh
// for a single launcher invocation and discarded once the dashboard child
// process has been spawned — there is no persistent state.
//
// The package also defines exit codes (ExitCode), a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling,
// and ChildExitError, which passes the dashboard's own exit status through
// the launcher untranslated.
package model
