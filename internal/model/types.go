// Package model defines the domain types for the dirmaker CLI.
//
// These types are used throughout the application for passing data
// between components. None of them are persisted except Order.BasePath,
// which the config package stores as the "last used" base directory.
package model

import (
	"fmt"
	"path"
)

// NoBrand is the brand value meaning "explicitly no brand".
//
// It is a valid selection for validation purposes (it is not empty), but
// the brand suffixer treats it exactly like an empty brand and leaves
// folder names unchanged.
const NoBrand = "Empty"

// KnownBrands lists the brands offered to the user. The list is used for
// shell completion only; any non-empty brand is accepted.
var KnownBrands = []string{"Audi", "Seat", "Skoda", "VW11", "VW12", "VW51", "VW66", NoBrand}

// BrandDelimiter separates a folder identifier from its brand suffix.
const BrandDelimiter = "_"

// Order is the input of a single folder-generation request.
//
// An Order is built once per user action and passed by value, so the
// orchestrator never observes later changes made by the front end.
type Order struct {
	// BasePath is the directory under which all target folders are created.
	BasePath string `json:"basePath"`

	// Brand is an optional suffix appended to every folder name.
	// NoBrand is an explicit "no suffix" choice; "" means nothing was selected.
	Brand string `json:"brand"`

	// RawInput is the free-form text pasted by the user. Every line that
	// contains a run of word characters yields one folder.
	RawInput string `json:"input"`

	// MakeSecondary enables the secondary directory template and its
	// placeholder files.
	MakeSecondary bool `json:"makeSecondary"`

	// MakePDFPlaceholder enables the "no PDF" placeholder file template.
	MakePDFPlaceholder bool `json:"makePdfPlaceholder"`
}

// UsesBrandSuffix reports whether brand is appended to folder names.
// Both the empty string and NoBrand leave names unchanged.
func UsesBrandSuffix(brand string) bool {
	return brand != "" && brand != NoBrand
}

// TemplateKind tells the tree builder whether template entries are
// directories or placeholder files.
type TemplateKind string

const (
	// KindDirectory entries are created with mkdir -p semantics.
	KindDirectory TemplateKind = "directory"

	// KindFile entries are created as empty files, only when absent.
	KindFile TemplateKind = "file"
)

// String returns the string representation of TemplateKind.
func (k TemplateKind) String() string {
	return string(k)
}

// IsValid checks whether the TemplateKind value is one of the
// predefined kinds.
func (k TemplateKind) IsValid() bool {
	switch k {
	case KindDirectory, KindFile:
		return true
	default:
		return false
	}
}

// Entry is one relative path of a template, split into path segments.
// The absolute path is base / target folder / segments...
type Entry []string

// String joins the segments with forward slashes for display.
func (e Entry) String() string {
	return path.Join(e...)
}

// Template is a named, ordered set of entries of a single kind.
type Template struct {
	// Name identifies the template in listings (e.g., "basic").
	Name string `json:"name" yaml:"name"`

	// Kind says whether entries are directories or files.
	Kind TemplateKind `json:"kind" yaml:"kind"`

	// Entries are applied in order.
	Entries []Entry `json:"entries" yaml:"entries"`
}

// Paths returns the entries as slash-joined strings, in order.
func (t Template) Paths() []string {
	paths := make([]string, 0, len(t.Entries))
	for _, e := range t.Entries {
		paths = append(paths, e.String())
	}
	return paths
}

// Reporter receives user-facing messages from the core.
//
// The front end decides how to present them (coloured terminal lines,
// a JSON document, a dialog box). The core never writes to the terminal
// directly.
type Reporter interface {
	// Error surfaces one validation failure message.
	Error(message string)

	// Status surfaces a final status line such as "Done!".
	Status(message string)
}

// ExitCode defines standard CLI exit codes.
// These codes allow scripts to programmatically determine the outcome
// of a command.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitValidationFailed indicates at least one order field was rejected
	// and nothing was written to disk.
	ExitValidationFailed ExitCode = 2

	// ExitFilesystemError indicates a directory or file could not be
	// created. The folder batch may be partially materialized.
	ExitFilesystemError ExitCode = 3

	// ExitOrderFileError indicates the --order file could not be read or parsed.
	ExitOrderFileError ExitCode = 4

	// ExitConfigError indicates the settings file could not be written.
	ExitConfigError ExitCode = 5
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
