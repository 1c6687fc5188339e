// Package launch implements the runtime resolution and launch sequence for
// the dashboard: anchor discovery, library search path resolution,
// interpreter selection, launch spec construction, and the child process
// spawn itself.
//
// The sequence is strictly single-threaded and runs exactly once per
// invocation:
//
//	Anchor → ResolveSearchPath → SelectInterpreter → BuildSpec → Run → Pause
//
// Each resolution step reads filesystem state once and produces an
// immutable, tagged decision value (model.SearchPath, model.Interpreter)
// consumed by the next step. None of the steps write, move, or delete any
// filesystem entry, so repeated runs against an unchanged tree produce
// identical launch specs.
//
// The only side effect of the whole package is the single spawned child
// process in Run, which shares the launcher's console and is waited on
// without any timeout — the wait matches the dashboard's own lifetime.
package launch
