package console

import (
	"context"
	"fmt"

	"github.com/koopa0/scout/internal/backend"
	"github.com/koopa0/scout/internal/log"
	"github.com/koopa0/scout/internal/reconcile"
)

// FileEditor manages the file table of a file connector: per-file
// selection toggles and file removal.
//
// Removal is destructive. The editor never prompts; it exposes
// WouldRemoveAllRows and RemovedCount so the caller can interpose a
// confirmation step before Save.
type FileEditor struct {
	client      *backend.Client
	connectorID int
	rec         *reconcile.Reconciler[int, backend.ConnectorFile]
}

// NewFileEditor creates the editor for one file connector.
func NewFileEditor(client *backend.Client, connectorID int, logger log.Logger) (*FileEditor, error) {
	ed := &FileEditor{client: client, connectorID: connectorID}

	submit := func(ctx context.Context, changed []backend.ConnectorFile) ([]backend.ConnectorFile, error) {
		// The reconciler releases its lock during submit, so reading the
		// removed keys here is safe.
		removed := ed.rec.RemovedKeys()
		if err := client.UpdateConnectorFiles(ctx, connectorID, changed, removed); err != nil {
			return nil, err
		}
		return nil, nil // 200 with no body: snapshot advances to the submitted rows
	}
	key := func(f backend.ConnectorFile) int { return f.ID }

	rec, err := reconcile.New(key, submit, logger)
	if err != nil {
		return nil, fmt.Errorf("creating file reconciler: %w", err)
	}
	ed.rec = rec
	return ed, nil
}

// Load fetches the connector's files and resets all edit state.
func (e *FileEditor) Load(ctx context.Context) error {
	files, err := e.client.ListConnectorFiles(ctx, e.connectorID)
	if err != nil {
		return fmt.Errorf("loading connector files: %w", err)
	}
	if err := e.rec.Init(files); err != nil {
		return fmt.Errorf("initializing connector files: %w", err)
	}
	return nil
}

// Rows returns the working-copy files in stable order.
func (e *FileEditor) Rows() []backend.ConnectorFile {
	return e.rec.Rows()
}

// SetSelected toggles whether a file is included in indexing.
func (e *FileEditor) SetSelected(id int, selected bool) {
	e.rec.Update(id, func(f *backend.ConnectorFile) { f.Selected = selected })
}

// Remove marks a file for deletion from the connector.
func (e *FileEditor) Remove(id int) {
	e.rec.Remove(id)
}

// RemovedCount returns how many files the pending edits would delete.
func (e *FileEditor) RemovedCount() int {
	return len(e.rec.RemovedKeys())
}

// WouldRemoveAllRows reports whether saving would leave the connector with
// zero files. Callers must confirm with the user before saving such a diff.
func (e *FileEditor) WouldRemoveAllRows() bool {
	return e.rec.WouldRemoveAllRows()
}

// IsDirty reports whether any unsaved edits exist.
func (e *FileEditor) IsDirty() bool {
	return e.rec.IsDirty()
}

// Save submits the changed and removed files. Empty diff: no network call.
func (e *FileEditor) Save(ctx context.Context) error {
	return e.rec.Submit(ctx)
}

// Cancel discards unsaved edits, restoring removed files. A no-op when
// nothing is dirty.
func (e *FileEditor) Cancel() {
	e.rec.Reset()
}
