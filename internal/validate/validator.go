// Package validate gates an Order before any filesystem mutation.
//
// All checks are evaluated every time, so the user sees every problem at
// once rather than fixing them one by one. Each failed check produces one
// fixed, human-readable message, reported in check order.
package validate

import (
	"strings"

	"github.com/go-git/go-billy/v5"

	"github.com/banaszakw/dir-maker/internal/model"
	"github.com/banaszakw/dir-maker/internal/naming"
)

// Messages shown for each failed check.
const (
	MsgInvalidDirectory = "Invalid directory!"
	MsgBrandNotSelected = "Brand is not selected!"
	MsgEmptyInput       = "Empty input!"
)

// Failure represents one failed check of an Order.
type Failure struct {
	// Field is the order field that failed validation (e.g., "basePath").
	Field string `json:"field"`

	// Message is the fixed text shown to the user.
	Message string `json:"message"`
}

// Validator checks orders against the filesystem the folders will be
// created on and reports failures to the front end.
type Validator struct {
	// fs must be the filesystem the folders will be created on, so that
	// "exists" means the same thing here and in the tree builder.
	fs billy.Filesystem

	// reporter receives one message per failed check. Nil discards them.
	reporter model.Reporter
}

// New returns a Validator that resolves base paths on fs and sends failure
// messages to reporter. A nil reporter discards messages.
func New(fs billy.Filesystem, reporter model.Reporter) *Validator {
	return &Validator{fs: fs, reporter: reporter}
}

// Check runs all checks and returns the failures in check order.
// An empty result means the order is valid. Check has no side effects.
//
// Checks performed:
//   - basePath must be an existing directory
//   - brand must be non-empty (model.NoBrand is a valid explicit choice)
//   - input must contain at least one word character
func (v *Validator) Check(o model.Order) []Failure {
	var failures []Failure

	if !v.isDir(o.BasePath) {
		failures = append(failures, Failure{Field: "basePath", Message: MsgInvalidDirectory})
	}

	// Any non-empty brand passes, including names outside
	// model.KnownBrands.
	if o.Brand == "" {
		failures = append(failures, Failure{Field: "brand", Message: MsgBrandNotSelected})
	}

	// Whitespace or punctuation alone would yield zero folders.
	if !naming.HasWord(o.RawInput) {
		failures = append(failures, Failure{Field: "input", Message: MsgEmptyInput})
	}

	return failures
}

// Validate reports every failed check and returns true only when all
// checks pass.
func (v *Validator) Validate(o model.Order) bool {
	failures := v.Check(o)
	if v.reporter != nil {
		for _, f := range failures {
			v.reporter.Error(f.Message)
		}
	}
	return len(failures) == 0
}

// isDir reports whether p names an existing directory. An empty path is
// never a directory, even though a rooted filesystem would resolve it to
// its root.
func (v *Validator) isDir(p string) bool {
	if strings.TrimSpace(p) == "" {
		return false
	}
	info, err := v.fs.Stat(p)
	return err == nil && info.IsDir()
}
