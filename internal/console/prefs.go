package console

import (
	"sync"
	"time"

	"github.com/koopa0/scout/internal/debounce"
	"github.com/koopa0/scout/internal/log"
	"github.com/koopa0/scout/internal/state"
)

// ChatControls holds the chat-control preferences (model picker,
// temperature) and persists them after a pause in input, the same
// debounced-save pattern used for description edits.
type ChatControls struct {
	store  *state.Store
	saver  *debounce.Debouncer
	logger log.Logger

	mu    sync.Mutex
	prefs state.ChatPrefs
}

// NewChatControls loads the persisted preferences and arms the debounced
// writer.
func NewChatControls(store *state.Store, debounceInterval time.Duration, logger log.Logger) (*ChatControls, error) {
	if logger == nil {
		logger = log.NewNop()
	}
	c := &ChatControls{store: store, logger: logger}

	saved, err := store.LoadPrefs()
	if err != nil {
		return nil, err
	}
	if saved != nil {
		c.prefs = *saved
	}

	if debounceInterval > 0 {
		c.saver = debounce.New(debounceInterval, c.persist)
	}
	return c, nil
}

// Prefs returns the current chat controls.
func (c *ChatControls) Prefs() state.ChatPrefs {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.prefs
}

// SetModel updates the model picker and schedules a save.
func (c *ChatControls) SetModel(model string) {
	c.mu.Lock()
	c.prefs.ModelName = model
	c.mu.Unlock()
	c.scheduleSave()
}

// SetTemperature updates the temperature slider and schedules a save.
func (c *ChatControls) SetTemperature(temperature float64) {
	c.mu.Lock()
	c.prefs.Temperature = temperature
	c.mu.Unlock()
	c.scheduleSave()
}

// Flush persists any pending change immediately (Enter key or blur).
func (c *ChatControls) Flush() {
	if c.saver != nil {
		c.saver.Flush()
	} else {
		c.persist()
	}
}

// Close stops the debounced writer without persisting.
func (c *ChatControls) Close() {
	if c.saver != nil {
		c.saver.Stop()
	}
}

func (c *ChatControls) scheduleSave() {
	if c.saver != nil {
		c.saver.Trigger()
	} else {
		c.persist()
	}
}

func (c *ChatControls) persist() {
	c.mu.Lock()
	prefs := c.prefs
	c.mu.Unlock()
	if err := c.store.SavePrefs(prefs); err != nil {
		c.logger.Warn("failed to persist chat preferences", "error", err)
	}
}
