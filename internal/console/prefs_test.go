package console_test

import (
	"testing"
	"time"

	"github.com/koopa0/scout/internal/console"
	"github.com/koopa0/scout/internal/state"
	"github.com/koopa0/scout/internal/testutil"
)

func newPrefsStore(t *testing.T) *state.Store {
	t.Helper()
	store, err := state.NewStoreAt(t.TempDir(), testutil.DiscardLogger())
	if err != nil {
		t.Fatal(err)
	}
	return store
}

func TestChatControls(t *testing.T) {
	t.Parallel()

	t.Run("flush persists immediately", func(t *testing.T) {
		t.Parallel()
		store := newPrefsStore(t)
		controls, err := console.NewChatControls(store, time.Hour, testutil.DiscardLogger())
		if err != nil {
			t.Fatal(err)
		}
		defer controls.Close()

		controls.SetModel("gpt-4o")
		controls.SetTemperature(0.3)
		controls.Flush()

		saved, err := store.LoadPrefs()
		if err != nil {
			t.Fatal(err)
		}
		if saved == nil {
			t.Fatal("no prefs persisted after Flush")
		}
		if saved.ModelName != "gpt-4o" || saved.Temperature != 0.3 {
			t.Errorf("persisted prefs = %+v", saved)
		}
	})

	t.Run("typing pause persists via the debouncer", func(t *testing.T) {
		t.Parallel()
		store := newPrefsStore(t)
		controls, err := console.NewChatControls(store, 20*time.Millisecond, testutil.DiscardLogger())
		if err != nil {
			t.Fatal(err)
		}
		defer controls.Close()

		controls.SetModel("gpt-4o-mini")

		waitFor(t, func() bool {
			saved, err := store.LoadPrefs()
			return err == nil && saved != nil && saved.ModelName == "gpt-4o-mini"
		})
	})

	t.Run("restores previously saved prefs", func(t *testing.T) {
		t.Parallel()
		store := newPrefsStore(t)
		if err := store.SavePrefs(state.ChatPrefs{ModelName: "saved", Temperature: 0.9}); err != nil {
			t.Fatal(err)
		}

		controls, err := console.NewChatControls(store, 0, testutil.DiscardLogger())
		if err != nil {
			t.Fatal(err)
		}
		defer controls.Close()

		prefs := controls.Prefs()
		if prefs.ModelName != "saved" || prefs.Temperature != 0.9 {
			t.Errorf("loaded prefs = %+v", prefs)
		}
	})
}
