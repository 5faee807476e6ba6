// templates.go implements the "dirmaker templates" command, a read-only
// view of the fixed folder templates applied by make.

package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/banaszakw/dir-maker/internal/model"
	"github.com/banaszakw/dir-maker/internal/tree"
)

// templateView is the printable form of a template, with its entries
// flattened to slash-separated relative paths.
type templateView struct {
	// Name identifies the template ("basic", "secondary", ...).
	Name string `json:"name" yaml:"name"`

	// Kind is "directory" or "file".
	Kind model.TemplateKind `json:"kind" yaml:"kind"`

	// Paths are relative to the target folder, in creation order.
	Paths []string `json:"paths" yaml:"paths"`
}

// NewTemplatesCommand creates the "templates" cobra command, which prints
// the fixed folder templates applied by make.
func NewTemplatesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "Show the folder templates",
		Long: `Show the subfolders and placeholder files created inside every target folder.

"basic" is always applied. "secondary" and "secondary-files" are applied with
--secondary, "no-pdf" with --no-pdf. Output is YAML unless --json is given.`,
		Args: cobra.NoArgs,
		// The templates are compiled in; no settings or disk access needed.
		RunE: func(cmd *cobra.Command, args []string) error {
			return printTemplates(cmd.OutOrStdout(), templateViews(tree.All()), IsJSONOutput())
		},
	}
}

// templateViews converts templates to their printable form, keeping order.
func templateViews(templates []model.Template) []templateView {
	views := make([]templateView, 0, len(templates))
	for _, tpl := range templates {
		views = append(views, templateView{Name: tpl.Name, Kind: tpl.Kind, Paths: tpl.Paths()})
	}
	return views
}

// printTemplates writes views under a top-level "templates" key, as JSON
// when asJSON is set and as YAML otherwise.
func printTemplates(w io.Writer, views []templateView, asJSON bool) error {
	if asJSON {
		data, err := json.MarshalIndent(map[string]interface{}{"templates": views}, "", "  ")
		if err != nil {
			return model.WrapCLIError(model.ExitGeneralError, "failed to marshal JSON output", err)
		}
		fmt.Fprintln(w, string(data))
		return nil
	}

	// yaml.v3 defaults to four-space indentation; two matches the JSON
	// output and common YAML style.
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(map[string]interface{}{"templates": views}); err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to encode YAML output", err)
	}
	return enc.Close()
}
