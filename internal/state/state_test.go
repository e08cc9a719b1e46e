package state_test

import (
	"testing"

	"github.com/koopa0/scout/internal/state"
	"github.com/koopa0/scout/internal/testutil"
)

func TestPrefsRoundTrip(t *testing.T) {
	t.Parallel()

	store, err := state.NewStoreAt(t.TempDir(), testutil.DiscardLogger())
	if err != nil {
		t.Fatal(err)
	}

	want := state.ChatPrefs{ModelName: "gpt-4o", Temperature: 0.7}
	if err := store.SavePrefs(want); err != nil {
		t.Fatal(err)
	}

	got, err := store.LoadPrefs()
	if err != nil {
		t.Fatal(err)
	}
	if got == nil {
		t.Fatal("LoadPrefs returned nil after save")
	}
	if *got != want {
		t.Errorf("loaded prefs = %+v, want %+v", *got, want)
	}
}

func TestLoadPrefsAbsent(t *testing.T) {
	t.Parallel()

	store, err := state.NewStoreAt(t.TempDir(), testutil.DiscardLogger())
	if err != nil {
		t.Fatal(err)
	}

	got, err := store.LoadPrefs()
	if err != nil {
		t.Errorf("LoadPrefs on empty dir: %v", err)
	}
	if got != nil {
		t.Errorf("LoadPrefs on empty dir = %+v, want nil", got)
	}
}

func TestSavePrefsOverwrites(t *testing.T) {
	t.Parallel()

	store, err := state.NewStoreAt(t.TempDir(), testutil.DiscardLogger())
	if err != nil {
		t.Fatal(err)
	}

	if err := store.SavePrefs(state.ChatPrefs{ModelName: "first"}); err != nil {
		t.Fatal(err)
	}
	if err := store.SavePrefs(state.ChatPrefs{ModelName: "second", Temperature: 1.2}); err != nil {
		t.Fatal(err)
	}

	got, err := store.LoadPrefs()
	if err != nil {
		t.Fatal(err)
	}
	if got.ModelName != "second" || got.Temperature != 1.2 {
		t.Errorf("loaded prefs = %+v, want the second write", got)
	}
}
