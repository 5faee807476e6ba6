// config.go implements the "dirmaker config" command group.
//
// The settings file holds a single value, the base directory of the last
// successful make run. These commands make that value visible and let the
// user set it without creating any folders.

package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/banaszakw/dir-maker/internal/model"
	"github.com/banaszakw/dir-maker/internal/validate"
)

// NewConfigCommand creates the "config" command group for the settings file.
// The group itself has no RunE; cobra prints its help when invoked alone.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the stored settings",
	}
	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetBaseCommand())
	return cmd
}

// newConfigShowCommand creates "config show". It reports the effective
// base path, i.e. what make would use without --base.
func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the settings file location and the stored base directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load logs its fallback warnings to the log file only, so the
			// output stays clean even without a settings file.
			base := app.store.Load()
			w := cmd.OutOrStdout()

			if IsJSONOutput() {
				data, err := json.MarshalIndent(map[string]string{
					"settingsFile": app.store.Path(),
					"logFile":      app.paths.LogFile,
					"basePath":     base,
					"defaultBase":  app.store.Default(),
				}, "", "  ")
				if err != nil {
					return model.WrapCLIError(model.ExitGeneralError, "failed to marshal JSON output", err)
				}
				fmt.Fprintln(w, string(data))
				return nil
			}

			fmt.Fprintf(w, "Settings file: %s\n", app.store.Path())
			fmt.Fprintf(w, "Log file:      %s\n", app.paths.LogFile)
			fmt.Fprintf(w, "Base path:     %s\n", base)
			fmt.Fprintf(w, "Default base:  %s\n", app.store.Default())
			return nil
		},
	}
}

// newConfigSetBaseCommand creates "config set-base". The directory must
// exist, the same rule make applies to its base path.
func newConfigSetBaseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-base <dir>",
		Short: "Store the default base directory for make",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Store absolute paths only; a relative one would change
			// meaning with the working directory.
			dir, err := filepath.Abs(args[0])
			if err != nil {
				return model.WrapCLIError(model.ExitGeneralError, "failed to resolve directory", err)
			}

			// Reuse the validator's message so both commands reject a bad
			// directory with the same text.
			info, err := app.fs.Stat(dir)
			if err != nil || !info.IsDir() {
				return model.NewCLIError(model.ExitValidationFailed, validate.MsgInvalidDirectory+" "+dir)
			}

			// Save rewrites the whole settings file.
			if err := app.store.Save(dir); err != nil {
				return model.WrapCLIError(model.ExitConfigError, "failed to save settings", err)
			}
			VerboseLog("Stored base path %s", dir)

			// Output results.
			if IsJSONOutput() {
				data, _ := json.MarshalIndent(map[string]string{"basePath": dir}, "", "  ")
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			_, _ = color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Base path set to %s\n", dir)
			return nil
		},
	}
}
