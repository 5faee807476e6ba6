// Package order runs a folder-generation request end to end.
//
// Orchestration steps (Orchestrator.Execute):
//  1. Validate the order; stop without touching the disk on failure
//  2. Persist the base directory as the "last used" setting
//  3. Extract identifiers from the pasted text and apply the brand suffix
//  4. Materialize the selected templates for every target folder
//  5. Report the final status
//
// The package also loads orders from JSONC files and computes dry-run plans.
package order
