// Package cli implements the cobra-based CLI commands for dirmaker.
//
// Each subcommand (make, templates, config) is defined in its own file
// within this package. This file defines the root command that serves as
// the parent for all subcommands and handles global flags.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/banaszakw/dir-maker/internal/model"
)

// Global flag variables shared across all subcommands.
// These are bound to cobra persistent flags on the root command,
// which makes them available to every subcommand automatically.
var (
	// jsonOutput controls whether command output is formatted as JSON.
	jsonOutput bool

	// verbose mirrors the log file to stderr at debug level.
	verbose bool
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
//
// The root command itself does not perform any action. Before any
// subcommand runs it prepares the application directory, the log file
// and the settings store (see setupApp).
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dirmaker",
		Short: "Create project folder skeletons from pasted text",
		Long: `dirmaker turns a block of pasted text into project folders.

Every line that contains a word yields one folder named after the first
word of the line, optionally suffixed with a brand. Each folder receives a
fixed set of subfolders, plus optional preparation folders and placeholder
files.`,

		// SilenceUsage prevents cobra from printing usage on every error.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing errors automatically.
		// We format errors ourselves (text or JSON based on --json flag).
		SilenceErrors: true,

		// Version is displayed when --version flag is used.
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		// PersistentPreRunE runs before every subcommand, after flag
		// parsing. It builds the shared environment (log file, settings
		// store) the subcommands read from the package-level app value.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupApp(cmd.ErrOrStderr())
		},
	}

	// PersistentFlags are inherited by all subcommands, so --json and
	// --verbose work in every position after the binary name.
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	// Register subcommands. Each subcommand is defined in its own file
	// (make.go, templates.go, config.go) and returns a *cobra.Command.
	rootCmd.AddCommand(NewMakeCommand())
	rootCmd.AddCommand(NewTemplatesCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// Execute runs the root command and handles exit codes.
// This is the main entry point called from main.go.
//
// CLIError types carry their own exit codes; other errors default to
// exit code 1.
func Execute(rootCmd *cobra.Command) {
	err := rootCmd.Execute()

	// The log file is closed before os.Exit, which skips deferred calls.
	closeApp()

	if err != nil {
		// Check if the error is a CLIError with a specific exit code.
		if cliErr, ok := err.(*model.CLIError); ok {
			printError(cliErr.Message, cliErr.Err)
			os.Exit(int(cliErr.Code))
		}

		// Generic error: exit with code 1.
		printError(err.Error(), nil)
		os.Exit(int(model.ExitGeneralError))
	}
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json global flag.
func printError(message string, underlying error) {
	if jsonOutput {
		// {"error": {"message": ..., "detail": ...}}; detail is present only
		// for wrapped errors.
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		// stdout is reserved for successful command output.
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(os.Stderr, string(data))
		return
	}

	// Text format: "Error: <message>" in red on stderr. fatih/color drops
	// the escape codes when stderr is not a terminal.
	red := color.New(color.FgRed)
	if underlying != nil {
		_, _ = red.Fprintf(os.Stderr, "Error: %s: %v\n", message, underlying)
	} else {
		_, _ = red.Fprintf(os.Stderr, "Error: %s\n", message)
	}
}

// VerboseLog writes a debug entry to the log file. With --verbose the
// entry is also shown on stderr.
func VerboseLog(format string, args ...interface{}) {
	// Before setupApp has run there is no logger yet.
	if app == nil {
		return
	}
	app.log.Debugf(format, args...)
}

// IsJSONOutput returns whether the --json flag is set.
// Subcommands use this to decide their output format.
func IsJSONOutput() bool {
	return jsonOutput
}
