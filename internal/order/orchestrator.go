package order

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/banaszakw/dir-maker/internal/model"
	"github.com/banaszakw/dir-maker/internal/naming"
	"github.com/banaszakw/dir-maker/internal/tree"
)

// StatusDone is reported once every target folder has been processed.
const StatusDone = "Done!"

// ErrSettingsNotSaved marks errors from persisting the base directory, so
// callers can tell them apart from folder creation failures.
var ErrSettingsNotSaved = errors.New("failed to save settings")

// Validator gates an order and reports its failures.
type Validator interface {
	Validate(o model.Order) bool
}

// BasePathSaver persists the base directory of a successful order.
type BasePathSaver interface {
	Save(basePath string) error
}

// Orchestrator composes validation, naming, tree building and settings
// persistence into one operation.
type Orchestrator struct {
	// validator gates the order and reports its own failure messages.
	validator Validator

	// store remembers the base directory for the next run.
	store BasePathSaver

	// builder creates the template entries on disk.
	builder *tree.Builder

	// reporter receives the final status. It may be nil.
	reporter model.Reporter

	// log records progress for the log file; it never reaches the user
	// unless --verbose is set.
	log logrus.FieldLogger
}

// NewOrchestrator wires the collaborators of Execute.
func NewOrchestrator(
	validator Validator,
	store BasePathSaver,
	builder *tree.Builder,
	reporter model.Reporter,
	log logrus.FieldLogger,
) *Orchestrator {
	return &Orchestrator{
		validator: validator,
		store:     store,
		builder:   builder,
		reporter:  reporter,
		log:       log,
	}
}

// Execute runs the order. It returns false with a nil error when the order
// was rejected by validation; in that case nothing was written. A failure
// to save the settings wraps ErrSettingsNotSaved and happens before any
// folder is created. Folder creation errors are returned unchanged and
// leave already created folders in place.
func (o *Orchestrator) Execute(ord model.Order) (bool, error) {
	// Step 1: validation. The validator has already reported every
	// failure message by the time it returns.
	if !o.validator.Validate(ord) {
		o.log.Debug("Order rejected by validation")
		return false, nil
	}

	// Step 2: the base path is remembered before the tree is built, so a partial
	// batch still leaves the directory preselected for the retry.
	if err := o.store.Save(ord.BasePath); err != nil {
		return false, fmt.Errorf("%w: %w", ErrSettingsNotSaved, err)
	}

	// Step 3: folder names and the templates selected by the toggles.
	targets := naming.Targets(ord)
	templates := tree.ForOrder(ord)
	o.log.WithFields(logrus.Fields{
		"base":      ord.BasePath,
		"folders":   len(targets),
		"templates": len(templates),
	}).Info("Creating folders")

	// Step 4: every template for one folder before moving to the next, so
	// a failure leaves complete folders behind it and one partial folder.
	for _, target := range targets {
		for _, tpl := range templates {
			if err := o.builder.Apply(ord.BasePath, target, tpl); err != nil {
				return false, err
			}
		}
		o.log.WithField("folder", target).Debug("Folder ready")
	}

	// Step 5: a single status for the whole batch.
	if o.reporter != nil {
		o.reporter.Status(StatusDone)
	}
	return true, nil
}
