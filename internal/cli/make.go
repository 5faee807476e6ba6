// make.go implements the "dirmaker make" command.
//
// The make command is the batch operation of the tool. It assembles an
// order from flags, environment variables, an optional order file and the
// stored settings, then creates one project folder per identifier.
//
// Orchestration steps:
//  1. Load the order file (if --order is given)
//  2. Overlay flags and DIRMAKER_* environment variables
//  3. Fall back to the stored base path
//  4. Validate, save the base path, and build the folder tree
//  5. Output results (text or JSON)

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/go-git/go-billy/v5/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/banaszakw/dir-maker/internal/model"
	"github.com/banaszakw/dir-maker/internal/order"
	"github.com/banaszakw/dir-maker/internal/tree"
	"github.com/banaszakw/dir-maker/internal/validate"
)

// envPrefix is prepended to flag names to form environment variable names,
// e.g. --no-pdf becomes DIRMAKER_NO_PDF.
const envPrefix = "DIRMAKER"

// stdinName is the --input value that reads the text from standard input.
const stdinName = "-"

// Flag names of the make command. They double as viper keys, and with
// envPrefix they name the environment variables. --base overrides the
// stored base directory; --dry-run validates and prints the plan without
// writing anything.
const (
	flagBase      = "base"
	flagBrand     = "brand"
	flagInput     = "input"
	flagOrder     = "order"
	flagSecondary = "secondary"
	flagNoPDF     = "no-pdf"
	flagDryRun    = "dry-run"
)

// makeResult is the JSON document printed by make with --json.
// It is printed for rejected orders too, so scripts can read the
// validation messages from stdout.
type makeResult struct {
	// Success is true when the folders were created (or planned).
	Success bool `json:"success"`

	// DryRun marks output produced by --dry-run; nothing was written.
	DryRun bool `json:"dryRun,omitempty"`

	// Errors holds the validation messages in check order.
	// Always an array, never null.
	Errors []string `json:"errors"`

	// Status is the completion message, empty unless folders were created.
	Status string `json:"status,omitempty"`

	// Folders lists every target folder with its directories and files.
	Folders []order.PlannedFolder `json:"folders"`
}

// NewMakeCommand creates the "make" cobra command.
func NewMakeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "make",
		Short: "Create project folders from pasted text",
		Long: `Create one project folder per line of input that contains a word.

The folder is named after the first word of the line, followed by "_<brand>"
unless the brand is "` + model.NoBrand + `". Every folder receives the basic subfolders;
--secondary adds preparation folders with placeholder PDFs and --no-pdf adds
a "no PDF" marker file.

Values are taken from flags, then DIRMAKER_* environment variables, then the
--order file. The base directory defaults to the last one used.

Examples:
  pbpaste | dirmaker make --brand Audi
  dirmaker make --base ~/orders --brand Empty --input ids.txt --secondary
  DIRMAKER_BRAND=Skoda dirmaker make --order today.jsonc --dry-run`,

		// All input arrives through flags, env vars or stdin.
		Args: cobra.NoArgs,

		// A fresh viper instance per run keeps flag bindings from leaking
		// between invocations (the tests build many root commands).
		RunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			// Environment variables: DIRMAKER_BASE, DIRMAKER_NO_PDF, ...
			v.SetEnvPrefix(envPrefix)
			v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
			v.AutomaticEnv()
			// Binding makes viper read changed flags first, then the
			// environment, then the flag defaults.
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return model.WrapCLIError(model.ExitGeneralError, "failed to bind flags", err)
			}
			return runMake(cmd, v)
		},
	}

	// Register command-specific flags. Each one can also be set through
	// DIRMAKER_<NAME>, with dashes turned into underscores.
	cmd.Flags().String(flagBase, "", "Directory to create the folders in (default: last used)")
	cmd.Flags().String(flagBrand, "", "Brand suffix, one of "+strings.Join(model.KnownBrands, ", "))
	cmd.Flags().String(flagInput, stdinName, `File with the pasted text ("-" reads stdin)`)
	cmd.Flags().String(flagOrder, "", "JSONC order file providing defaults for the other flags")
	cmd.Flags().Bool(flagSecondary, false, "Also create preparation folders and placeholder PDFs")
	cmd.Flags().Bool(flagNoPDF, false, "Also create the \"no PDF\" marker file")
	cmd.Flags().Bool(flagDryRun, false, "Validate and print the folders without creating them")

	// Brands outside the list are accepted; completion only suggests.
	_ = cmd.RegisterFlagCompletionFunc(flagBrand, completeBrand)

	return cmd
}

// completeBrand offers the known brands for shell completion of --brand.
func completeBrand(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	// Matching is case-insensitive so "vw" offers every VW variant.
	var out []string
	for _, b := range model.KnownBrands {
		if strings.HasPrefix(strings.ToLower(b), strings.ToLower(toComplete)) {
			out = append(out, b)
		}
	}
	// Brands are never file names, so file completion is turned off.
	return out, cobra.ShellCompDirectiveNoFileComp
}

// runMake is the main orchestration function for the make command.
// It assembles the order and executes (or plans) it.
func runMake(cmd *cobra.Command, v *viper.Viper) error {
	// Steps 1-3: merge all input sources into one order.
	ord, err := buildOrder(cmd, v)
	if err != nil {
		return err
	}
	VerboseLog("Order: base=%q brand=%q secondary=%t noPdf=%t",
		ord.BasePath, ord.Brand, ord.MakeSecondary, ord.MakePDFPlaceholder)

	// The reporter receives validation messages from the validator and the
	// final status from the orchestrator.
	reporter := newConsoleReporter(cmd.ErrOrStderr(), IsJSONOutput())
	validator := validate.New(app.fs, reporter)

	// Dry run: validate only, then describe the folders. Neither the tree
	// nor the settings file is touched.
	if v.GetBool(flagDryRun) {
		if !validator.Validate(ord) {
			return rejected(cmd.OutOrStdout(), reporter)
		}
		plan := order.Plan(ord)
		if IsJSONOutput() {
			return printMakeJSON(cmd.OutOrStdout(), makeResult{
				Success: true, DryRun: true, Errors: reporter.Errors(), Folders: plan,
			})
		}
		printPlanText(cmd.OutOrStdout(), plan, true)
		return nil
	}

	// Step 4: validate, save the base path, and build the folder tree.
	orch := order.NewOrchestrator(validator, app.store, tree.NewBuilder(app.fs), reporter, app.log)
	ok, err := orch.Execute(ord)
	if err != nil {
		// Settings are written before any folder, so a save failure means
		// the disk is untouched apart from the application directory.
		if errors.Is(err, order.ErrSettingsNotSaved) {
			return model.WrapCLIError(model.ExitConfigError, "base path not stored, no folders created", err)
		}
		return model.WrapCLIError(model.ExitFilesystemError, "failed to create folders", err)
	}
	if !ok {
		return rejected(cmd.OutOrStdout(), reporter)
	}

	// Step 5: output results. The plan lists exactly what Execute ensured.
	plan := order.Plan(ord)
	if IsJSONOutput() {
		return printMakeJSON(cmd.OutOrStdout(), makeResult{
			Success: true, Errors: reporter.Errors(), Status: reporter.status, Folders: plan,
		})
	}
	printPlanText(cmd.OutOrStdout(), plan, false)
	_, _ = color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), reporter.status)
	return nil
}

// buildOrder merges the order file, flags, environment and stored settings.
// Precedence: flag, then environment, then order file, then stored base path.
func buildOrder(cmd *cobra.Command, v *viper.Viper) (model.Order, error) {
	var ord model.Order
	fromFile := false

	// Step 1: the order file provides the lowest-priority values.
	if p := v.GetString(flagOrder); p != "" {
		abs, err := filepath.Abs(p)
		if err != nil {
			return ord, model.WrapCLIError(model.ExitOrderFileError, "failed to resolve order file path", err)
		}
		ord, err = order.LoadFile(app.fs, abs)
		if err != nil {
			return ord, err
		}
		fromFile = true
		VerboseLog("Loaded order file: %s", abs)
	}

	// Step 2: overlay flags and environment variables. IsSet is true for
	// changed flags and set environment variables only, so flag defaults
	// never override the order file.
	if v.IsSet(flagBase) {
		ord.BasePath = v.GetString(flagBase)
	}
	if v.IsSet(flagBrand) {
		ord.Brand = v.GetString(flagBrand)
	}
	if v.IsSet(flagSecondary) {
		ord.MakeSecondary = v.GetBool(flagSecondary)
	}
	if v.IsSet(flagNoPDF) {
		ord.MakePDFPlaceholder = v.GetBool(flagNoPDF)
	}
	// The order file's text is kept unless --input (or DIRMAKER_INPUT) is
	// given explicitly; without an order file stdin is the default.
	if v.IsSet(flagInput) || !fromFile {
		text, err := readInput(cmd.InOrStdin(), v.GetString(flagInput))
		if err != nil {
			return ord, err
		}
		ord.RawInput = text
	}

	// Step 3: fall back to the base path stored by the last run. Load never
	// fails; problems with the settings file are logged as warnings.
	if ord.BasePath == "" {
		ord.BasePath = app.store.Load()
	}

	// Relative paths are resolved against the working directory. A blank
	// path is left blank so the validator rejects it.
	if strings.TrimSpace(ord.BasePath) != "" {
		abs, err := filepath.Abs(ord.BasePath)
		if err != nil {
			return ord, model.WrapCLIError(model.ExitGeneralError, "failed to resolve base path", err)
		}
		ord.BasePath = abs
	}
	return ord, nil
}

// readInput returns the pasted text from stdin or from the named file.
func readInput(stdin io.Reader, name string) (string, error) {
	// "-" (the flag default) reads until EOF; an interactive user ends the
	// text with Ctrl-D.
	if name == "" || name == stdinName {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", model.WrapCLIError(model.ExitGeneralError, "failed to read standard input", err)
		}
		return string(data), nil
	}

	// The filesystem is rooted at "/", so the path must be absolute.
	abs, err := filepath.Abs(name)
	if err != nil {
		return "", model.WrapCLIError(model.ExitGeneralError, "failed to resolve input path", err)
	}
	data, err := util.ReadFile(app.fs, abs)
	if err != nil {
		return "", model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to read input file %s", abs), err)
	}
	return string(data), nil
}

// rejected reports a validation failure. In JSON mode the result document
// carrying the messages is printed before the error is returned.
func rejected(w io.Writer, reporter *consoleReporter) error {
	// In text mode the reporter has already printed each message in red.
	if IsJSONOutput() {
		if err := printMakeJSON(w, makeResult{Errors: reporter.Errors(), Folders: []order.PlannedFolder{}}); err != nil {
			return err
		}
	}
	return model.NewCLIError(model.ExitValidationFailed, "order rejected: "+strings.Join(reporter.Errors(), " "))
}

// printMakeJSON writes result as indented JSON. A nil folder list is
// printed as an empty array to keep the document shape stable.
func printMakeJSON(w io.Writer, result makeResult) error {
	if result.Folders == nil {
		result.Folders = []order.PlannedFolder{}
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to marshal JSON output", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

// printPlanText lists the target folders, one per line. A dry run also
// lists every directory (with a trailing slash) and file below each folder,
// relative to it.
func printPlanText(w io.Writer, plan []order.PlannedFolder, dryRun bool) {
	prefix := "Created"
	if dryRun {
		prefix = "Would create"
	}
	// Absolute folder paths, so the output can be pasted into a shell.
	for _, pf := range plan {
		fmt.Fprintf(w, "%s %s\n", prefix, pf.Path)
		if dryRun {
			for _, d := range pf.Directories {
				fmt.Fprintf(w, "  %s/\n", relTo(pf.Path, d))
			}
			for _, f := range pf.Files {
				fmt.Fprintf(w, "  %s\n", relTo(pf.Path, f))
			}
		}
	}
}

// relTo shortens p for display. Paths outside base are shown in full.
func relTo(base, p string) string {
	rel, err := filepath.Rel(base, p)
	if err != nil {
		return p
	}
	return filepath.ToSlash(rel)
}
