// Package model defines the domain types and value objects for the
// dirmaker CLI.
//
// This package contains pure data structures with no external dependencies.
// The central value is Order, an immutable record of one user request
// (base path, brand, pasted text and the two template toggles). Templates
// describe the fixed folder skeletons that are materialized for every
// folder name extracted from an Order.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
