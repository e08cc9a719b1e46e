package console

import (
	"context"
	"errors"
	"fmt"

	"github.com/koopa0/scout/internal/backend"
	"github.com/koopa0/scout/internal/log"
	"github.com/koopa0/scout/internal/reconcile"
)

// AssistantEditor manages one assistant definition: model selection,
// temperature, and tool toggles. The assistant is a single-row editable
// collection; the same snapshot/working-copy rules apply as for tables.
type AssistantEditor struct {
	client      *backend.Client
	assistantID int
	rec         *reconcile.Reconciler[int, backend.Assistant]
}

// NewAssistantEditor creates the editor for one assistant.
func NewAssistantEditor(client *backend.Client, assistantID int, logger log.Logger) (*AssistantEditor, error) {
	submit := func(ctx context.Context, changed []backend.Assistant) ([]backend.Assistant, error) {
		if len(changed) != 1 {
			return nil, fmt.Errorf("expected exactly one changed assistant, got %d", len(changed))
		}
		updated, err := client.UpdateAssistant(ctx, changed[0])
		if err != nil {
			return nil, err
		}
		return []backend.Assistant{*updated}, nil
	}
	key := func(a backend.Assistant) int { return a.ID }

	rec, err := reconcile.New(key, submit, logger)
	if err != nil {
		return nil, fmt.Errorf("creating assistant reconciler: %w", err)
	}
	return &AssistantEditor{client: client, assistantID: assistantID, rec: rec}, nil
}

// Load fetches the assistant and resets all edit state.
func (e *AssistantEditor) Load(ctx context.Context) error {
	assistant, err := e.client.GetAssistant(ctx, e.assistantID)
	if err != nil {
		return fmt.Errorf("loading assistant: %w", err)
	}
	if err := e.rec.Init([]backend.Assistant{*assistant}); err != nil {
		return fmt.Errorf("initializing assistant: %w", err)
	}
	return nil
}

// Assistant returns the working-copy assistant.
func (e *AssistantEditor) Assistant() (backend.Assistant, error) {
	a, ok := e.rec.Get(e.assistantID)
	if !ok {
		return backend.Assistant{}, errors.New("assistant not loaded")
	}
	return a, nil
}

// SetModel changes the assistant's model in the working copy.
func (e *AssistantEditor) SetModel(model string) {
	e.rec.Update(e.assistantID, func(a *backend.Assistant) { a.ModelName = model })
}

// SetTemperature changes the sampling temperature in the working copy.
func (e *AssistantEditor) SetTemperature(temperature float64) {
	e.rec.Update(e.assistantID, func(a *backend.Assistant) { a.Temperature = temperature })
}

// SetDescription changes the assistant description in the working copy.
func (e *AssistantEditor) SetDescription(description string) {
	e.rec.Update(e.assistantID, func(a *backend.Assistant) { a.Description = description })
}

// SetToolEnabled toggles one tool. Unknown tool names are a no-op.
func (e *AssistantEditor) SetToolEnabled(toolName string, enabled bool) {
	e.rec.Update(e.assistantID, func(a *backend.Assistant) {
		for i := range a.Tools {
			if a.Tools[i].Name == toolName {
				a.Tools[i].Enabled = enabled
				return
			}
		}
	})
}

// SetAllTools toggles every tool in one transition.
func (e *AssistantEditor) SetAllTools(enabled bool) {
	e.rec.Update(e.assistantID, func(a *backend.Assistant) {
		for i := range a.Tools {
			a.Tools[i].Enabled = enabled
		}
	})
}

// IsDirty reports whether any unsaved edits exist.
func (e *AssistantEditor) IsDirty() bool {
	return e.rec.IsDirty()
}

// Save submits the edited assistant. The server's canonical version
// overwrites local state on success. Empty diff: no network call.
func (e *AssistantEditor) Save(ctx context.Context) error {
	return e.rec.Submit(ctx)
}

// Cancel discards unsaved edits. A no-op when nothing is dirty.
func (e *AssistantEditor) Cancel() {
	e.rec.Reset()
}
