package console

import (
	"context"
	"fmt"
	"time"

	"github.com/koopa0/scout/internal/backend"
	"github.com/koopa0/scout/internal/debounce"
	"github.com/koopa0/scout/internal/log"
	"github.com/koopa0/scout/internal/reconcile"
)

// EntityTypeEditor manages the knowledge-graph entity-type table: per-row
// active toggles, bulk enable/disable, and description edits saved after a
// pause in typing.
//
// Failed saves keep the user's edits in place (the unsaved-changes
// indicator stays on) so nothing is lost on a flaky connection.
type EntityTypeEditor struct {
	client *backend.Client
	rec    *reconcile.Reconciler[string, backend.EntityType]
	saver  *debounce.Debouncer
	logger log.Logger
}

// NewEntityTypeEditor creates the editor. debounceInterval controls how
// long a description edit sits before the automatic save fires; zero
// disables auto-save entirely.
func NewEntityTypeEditor(client *backend.Client, debounceInterval time.Duration, logger log.Logger) (*EntityTypeEditor, error) {
	if logger == nil {
		logger = log.NewNop()
	}

	submit := func(ctx context.Context, changed []backend.EntityType) ([]backend.EntityType, error) {
		return client.UpdateEntityTypes(ctx, changed)
	}
	key := func(et backend.EntityType) string { return et.Name }

	rec, err := reconcile.New(key, submit, logger)
	if err != nil {
		return nil, fmt.Errorf("creating entity-type reconciler: %w", err)
	}

	ed := &EntityTypeEditor{client: client, rec: rec, logger: logger}
	if debounceInterval > 0 {
		ed.saver = debounce.New(debounceInterval, ed.autoSave)
	}
	return ed, nil
}

// Load fetches the authoritative entity types and resets all edit state.
func (e *EntityTypeEditor) Load(ctx context.Context) error {
	types, err := e.client.GetEntityTypes(ctx)
	if err != nil {
		return fmt.Errorf("loading entity types: %w", err)
	}
	if err := e.rec.Init(types); err != nil {
		return fmt.Errorf("initializing entity types: %w", err)
	}
	return nil
}

// Rows returns the working-copy entity types in stable order.
func (e *EntityTypeEditor) Rows() []backend.EntityType {
	return e.rec.Rows()
}

// SetActive toggles one entity type's active flag in the working copy.
func (e *EntityTypeEditor) SetActive(name string, active bool) {
	e.rec.Update(name, func(et *backend.EntityType) { et.Active = active })
}

// EnableAll activates every entity type in a single state transition.
func (e *EntityTypeEditor) EnableAll() {
	e.rec.UpdateAll(func(et *backend.EntityType) { et.Active = true })
}

// DisableAll deactivates every entity type in a single state transition.
func (e *EntityTypeEditor) DisableAll() {
	e.rec.UpdateAll(func(et *backend.EntityType) { et.Active = false })
}

// SetDescription updates one entity type's description and schedules the
// debounced auto-save. The save fires only after the input goes quiet.
func (e *EntityTypeEditor) SetDescription(name, description string) {
	e.rec.Update(name, func(et *backend.EntityType) { et.Description = description })
	if e.saver != nil {
		e.saver.Trigger()
	}
}

// IsDirty reports whether any unsaved edits exist.
func (e *EntityTypeEditor) IsDirty() bool {
	return e.rec.IsDirty()
}

// Diff returns the rows that would be submitted by Save.
func (e *EntityTypeEditor) Diff() []backend.EntityType {
	return e.rec.Diff()
}

// Save submits the current diff immediately. An empty diff is a no-op with
// zero network calls. Any pending debounced save that fires afterwards
// finds an empty diff and is likewise a no-op.
func (e *EntityTypeEditor) Save(ctx context.Context) error {
	return e.rec.Submit(ctx)
}

// Cancel discards unsaved edits. A no-op when nothing is dirty.
func (e *EntityTypeEditor) Cancel() {
	e.rec.Reset()
}

// Close stops the auto-save timer.
func (e *EntityTypeEditor) Close() {
	if e.saver != nil {
		e.saver.Stop()
	}
}

// autoSave is the debounced save path. Failures are surfaced as a warning
// only; the edits stay dirty and the next keystroke reschedules a retry.
func (e *EntityTypeEditor) autoSave() {
	if err := e.rec.Submit(context.Background()); err != nil {
		e.logger.Warn("auto-save failed, edits preserved", "error", err)
	}
}
