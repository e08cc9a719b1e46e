package console

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/koopa0/scout/internal/backend"
	"github.com/koopa0/scout/internal/log"
	"github.com/koopa0/scout/internal/reconcile"
)

// ChannelEditor manages the per-channel Discord bot configuration table
// for one guild. Toggles stay on locally even if the save fails; the user
// retries from the unsaved state rather than losing it.
type ChannelEditor struct {
	client  *backend.Client
	guildID string
	rec     *reconcile.Reconciler[uuid.UUID, backend.ChannelConfig]
}

// NewChannelEditor creates the editor for one guild's channels.
func NewChannelEditor(client *backend.Client, guildID string, logger log.Logger) (*ChannelEditor, error) {
	submit := func(ctx context.Context, changed []backend.ChannelConfig) ([]backend.ChannelConfig, error) {
		return client.UpdateChannelConfigs(ctx, changed)
	}
	key := func(cc backend.ChannelConfig) uuid.UUID { return cc.ID }

	rec, err := reconcile.New(key, submit, logger)
	if err != nil {
		return nil, fmt.Errorf("creating channel reconciler: %w", err)
	}
	return &ChannelEditor{client: client, guildID: guildID, rec: rec}, nil
}

// Load fetches the guild's channel configs and resets all edit state.
func (e *ChannelEditor) Load(ctx context.Context) error {
	channels, err := e.client.ListChannelConfigs(ctx, e.guildID)
	if err != nil {
		return fmt.Errorf("loading channel configs: %w", err)
	}
	if err := e.rec.Init(channels); err != nil {
		return fmt.Errorf("initializing channel configs: %w", err)
	}
	return nil
}

// Rows returns the working-copy channel configs in stable order.
func (e *ChannelEditor) Rows() []backend.ChannelConfig {
	return e.rec.Rows()
}

// SetAnswerEnabled toggles whether the bot answers in a channel.
func (e *ChannelEditor) SetAnswerEnabled(id uuid.UUID, enabled bool) {
	e.rec.Update(id, func(cc *backend.ChannelConfig) { cc.AnswerEnabled = enabled })
}

// SetRespondToBots toggles whether the bot responds to other bots.
func (e *ChannelEditor) SetRespondToBots(id uuid.UUID, enabled bool) {
	e.rec.Update(id, func(cc *backend.ChannelConfig) { cc.RespondToBots = enabled })
}

// SetCitationsEnabled toggles citation rendering in bot answers.
func (e *ChannelEditor) SetCitationsEnabled(id uuid.UUID, enabled bool) {
	e.rec.Update(id, func(cc *backend.ChannelConfig) { cc.CitationsEnabled = enabled })
}

// EnableAll turns on answering in every channel in one transition.
func (e *ChannelEditor) EnableAll() {
	e.rec.UpdateAll(func(cc *backend.ChannelConfig) { cc.AnswerEnabled = true })
}

// DisableAll turns off answering in every channel in one transition.
func (e *ChannelEditor) DisableAll() {
	e.rec.UpdateAll(func(cc *backend.ChannelConfig) { cc.AnswerEnabled = false })
}

// IsDirty reports whether any unsaved edits exist.
func (e *ChannelEditor) IsDirty() bool {
	return e.rec.IsDirty()
}

// Save submits only the changed channel rows. Empty diff: no network call.
func (e *ChannelEditor) Save(ctx context.Context) error {
	return e.rec.Submit(ctx)
}

// Cancel discards unsaved edits. A no-op when nothing is dirty.
func (e *ChannelEditor) Cancel() {
	e.rec.Reset()
}
