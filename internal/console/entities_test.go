package console_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/koopa0/scout/internal/backend"
	"github.com/koopa0/scout/internal/console"
	"github.com/koopa0/scout/internal/testutil"
)

const entityTypesPattern = "/api/admin/kg/entity-types"

func newEntityFake(t *testing.T) (*testutil.FakeBackend, *backend.Client) {
	t.Helper()
	f := testutil.NewFakeBackend(t)
	f.EntityTypes = []map[string]any{
		{"name": "PERSON", "description": "A person", "active": true},
		{"name": "COMPANY", "description": "A company", "active": true},
		{"name": "PRODUCT", "description": "", "active": false},
	}
	client, err := backend.New(backend.Config{BaseURL: f.URL()}, testutil.DiscardLogger())
	if err != nil {
		t.Fatal(err)
	}
	return f, client
}

func loadEditor(t *testing.T, client *backend.Client, debounceInterval time.Duration) *console.EntityTypeEditor {
	t.Helper()
	ed, err := console.NewEntityTypeEditor(client, debounceInterval, testutil.DiscardLogger())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(ed.Close)
	if err := ed.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	return ed
}

func TestEntityTypeEditorSave(t *testing.T) {
	t.Parallel()

	t.Run("clean save issues no write request", func(t *testing.T) {
		t.Parallel()
		f, client := newEntityFake(t)
		ed := loadEditor(t, client, 0)

		if err := ed.Save(context.Background()); err != nil {
			t.Fatal(err)
		}
		if got := f.Requests("PUT", entityTypesPattern); got != 0 {
			t.Errorf("clean save made %d write requests, want 0", got)
		}
	})

	t.Run("toggle and revert saves nothing", func(t *testing.T) {
		t.Parallel()
		f, client := newEntityFake(t)
		ed := loadEditor(t, client, 0)

		ed.SetActive("PERSON", false)
		ed.SetActive("PERSON", true)

		if err := ed.Save(context.Background()); err != nil {
			t.Fatal(err)
		}
		if got := f.Requests("PUT", entityTypesPattern); got != 0 {
			t.Errorf("reverted save made %d write requests, want 0", got)
		}
	})

	t.Run("only changed rows go over the wire", func(t *testing.T) {
		t.Parallel()
		f, client := newEntityFake(t)
		ed := loadEditor(t, client, 0)

		ed.SetActive("PRODUCT", true)

		if err := ed.Save(context.Background()); err != nil {
			t.Fatal(err)
		}
		if got := f.Requests("PUT", entityTypesPattern); got != 1 {
			t.Fatalf("save made %d write requests, want 1", got)
		}
		body := string(f.WriteBodies[len(f.WriteBodies)-1])
		if !strings.Contains(body, "PRODUCT") {
			t.Errorf("write body %s missing the changed row", body)
		}
		if strings.Contains(body, "PERSON") || strings.Contains(body, "COMPANY") {
			t.Errorf("write body %s carries unchanged rows", body)
		}
		if ed.IsDirty() {
			t.Error("IsDirty() = true after successful save")
		}
	})

	t.Run("bulk disable submits every active row at once", func(t *testing.T) {
		t.Parallel()
		f, client := newEntityFake(t)
		ed := loadEditor(t, client, 0)

		ed.DisableAll()
		if err := ed.Save(context.Background()); err != nil {
			t.Fatal(err)
		}

		if got := f.Requests("PUT", entityTypesPattern); got != 1 {
			t.Fatalf("bulk save made %d write requests, want 1", got)
		}
		// PRODUCT was already inactive; only the two flipped rows travel.
		body := string(f.WriteBodies[len(f.WriteBodies)-1])
		if !strings.Contains(body, "PERSON") || !strings.Contains(body, "COMPANY") {
			t.Errorf("write body %s missing flipped rows", body)
		}
		if strings.Contains(body, "PRODUCT") {
			t.Errorf("write body %s carries the already-inactive row", body)
		}
	})

	t.Run("failed save keeps the edits", func(t *testing.T) {
		t.Parallel()
		f, client := newEntityFake(t)
		ed := loadEditor(t, client, 0)

		f.FailWith = "entity types are locked"
		ed.SetActive("PERSON", false)

		err := ed.Save(context.Background())
		var apiErr *backend.APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected *APIError, got %v", err)
		}
		if !ed.IsDirty() {
			t.Error("IsDirty() = false after failed save")
		}
		rows := ed.Rows()
		if rows[0].Active {
			t.Error("failed save reverted the edit")
		}

		// The same diff retries cleanly once the server recovers.
		f.FailWith = ""
		if err := ed.Save(context.Background()); err != nil {
			t.Fatal(err)
		}
		if ed.IsDirty() {
			t.Error("IsDirty() = true after retry succeeded")
		}
	})

	t.Run("cancel discards the edits", func(t *testing.T) {
		t.Parallel()
		f, client := newEntityFake(t)
		ed := loadEditor(t, client, 0)

		ed.SetActive("PERSON", false)
		ed.SetDescription("COMPANY", "edited")
		ed.Cancel()

		if ed.IsDirty() {
			t.Error("IsDirty() = true after Cancel")
		}
		if err := ed.Save(context.Background()); err != nil {
			t.Fatal(err)
		}
		if got := f.Requests("PUT", entityTypesPattern); got != 0 {
			t.Errorf("save after Cancel made %d write requests, want 0", got)
		}
	})
}

func TestEntityTypeEditorAutoSave(t *testing.T) {
	t.Parallel()

	t.Run("description edit saves after the quiet interval", func(t *testing.T) {
		t.Parallel()
		f, client := newEntityFake(t)
		ed := loadEditor(t, client, 30*time.Millisecond)

		ed.SetDescription("PERSON", "updated description")

		waitFor(t, func() bool { return f.Requests("PUT", entityTypesPattern) == 1 })
		if ed.IsDirty() {
			t.Error("IsDirty() = true after auto-save")
		}
	})

	t.Run("explicit save first leaves the debounced save a no-op", func(t *testing.T) {
		t.Parallel()
		f, client := newEntityFake(t)
		ed := loadEditor(t, client, 30*time.Millisecond)

		ed.SetDescription("PERSON", "updated description")
		if err := ed.Save(context.Background()); err != nil {
			t.Fatal(err)
		}
		if got := f.Requests("PUT", entityTypesPattern); got != 1 {
			t.Fatalf("explicit save made %d write requests, want 1", got)
		}

		// When the debounce timer fires it finds an empty diff.
		time.Sleep(150 * time.Millisecond)
		if got := f.Requests("PUT", entityTypesPattern); got != 1 {
			t.Errorf("debounced save issued %d total requests, want still 1", got)
		}
	})
}

// waitFor polls cond until it holds or the deadline expires.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}
