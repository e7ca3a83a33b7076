// Package model defines the domain types and value objects for the
// repo-setup CLI.
//
// This package contains pure data structures with no external dependencies.
// All entities (SetupRequest, ManagerKind, CloneOutcome) are created at the
// start of a run and discarded at process exit — there is no persistent
// state beyond the filesystem side effects of the tools repo-setup invokes.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
