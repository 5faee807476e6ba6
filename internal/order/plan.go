package order

import (
	"github.com/banaszakw/dir-maker/internal/model"
	"github.com/banaszakw/dir-maker/internal/naming"
	"github.com/banaszakw/dir-maker/internal/tree"
)

// PlannedFolder lists what Execute ensures for one target folder.
type PlannedFolder struct {
	// Name is the target folder name (identifier plus brand suffix).
	Name string `json:"name"`

	// Path is the absolute location of the target folder.
	Path string `json:"path"`

	// Directories are ensured with mkdir -p semantics, in order.
	Directories []string `json:"directories"`

	// Files are created empty when absent, in order.
	Files []string `json:"files,omitempty"`
}

// Plan computes the folders an order would produce without touching the
// filesystem. The result follows the execution order of Execute.
func Plan(ord model.Order) []PlannedFolder {
	// Same selection and naming as Execute, so the plan never disagrees
	// with what gets created.
	templates := tree.ForOrder(ord)
	targets := naming.Targets(ord)

	// Duplicate identifiers yield duplicate entries, mirroring Execute,
	// which processes the same folder twice.
	plan := make([]PlannedFolder, 0, len(targets))
	for _, target := range targets {
		pf := PlannedFolder{Name: target, Path: tree.EntryPath(ord.BasePath, target, nil)}

		for _, tpl := range templates {
			for _, entry := range tpl.Entries {
				// Paths come from the same helper the builder uses.
				p := tree.EntryPath(ord.BasePath, target, entry)
				if tpl.Kind == model.KindFile {
					pf.Files = append(pf.Files, p)
				} else {
					pf.Directories = append(pf.Directories, p)
				}
			}
		}
		plan = append(plan, pf)
	}
	return plan
}
