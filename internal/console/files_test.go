package console_test

import (
	"context"
	"strings"
	"testing"

	"github.com/koopa0/scout/internal/backend"
	"github.com/koopa0/scout/internal/console"
	"github.com/koopa0/scout/internal/testutil"
)

const filesPattern = "/api/manage/admin/connector/{id}/files"

func newFileEditor(t *testing.T) (*testutil.FakeBackend, *console.FileEditor) {
	t.Helper()
	f := testutil.NewFakeBackend(t)
	f.Files = []map[string]any{
		{"id": 1, "name": "a.pdf", "selected": true, "size_bytes": 100},
		{"id": 2, "name": "b.pdf", "selected": true, "size_bytes": 200},
		{"id": 3, "name": "c.pdf", "selected": false, "size_bytes": 300},
	}
	client, err := backend.New(backend.Config{BaseURL: f.URL()}, testutil.DiscardLogger())
	if err != nil {
		t.Fatal(err)
	}
	ed, err := console.NewFileEditor(client, 7, testutil.DiscardLogger())
	if err != nil {
		t.Fatal(err)
	}
	if err := ed.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	return f, ed
}

func TestFileEditorRemoval(t *testing.T) {
	t.Parallel()

	t.Run("removal travels as removed IDs", func(t *testing.T) {
		t.Parallel()
		f, ed := newFileEditor(t)

		ed.Remove(2)
		if got := ed.RemovedCount(); got != 1 {
			t.Fatalf("RemovedCount() = %d, want 1", got)
		}
		if err := ed.Save(context.Background()); err != nil {
			t.Fatal(err)
		}

		if got := f.Requests("PUT", filesPattern); got != 1 {
			t.Fatalf("save made %d write requests, want 1", got)
		}
		body := string(f.WriteBodies[len(f.WriteBodies)-1])
		if !strings.Contains(body, `"removed":[2]`) {
			t.Errorf("write body %s missing removed IDs", body)
		}
		if ed.IsDirty() {
			t.Error("IsDirty() = true after submitted removal")
		}
	})

	t.Run("would remove all rows needs an explicit decision", func(t *testing.T) {
		t.Parallel()
		_, ed := newFileEditor(t)

		for _, id := range []int{1, 2, 3} {
			ed.Remove(id)
		}
		if !ed.WouldRemoveAllRows() {
			t.Fatal("WouldRemoveAllRows() = false with every row removed")
		}

		// The caller backs out; everything is restored.
		ed.Cancel()
		if ed.WouldRemoveAllRows() {
			t.Error("WouldRemoveAllRows() = true after Cancel")
		}
		if got := len(ed.Rows()); got != 3 {
			t.Errorf("Rows() has %d entries after Cancel, want 3", got)
		}
	})

	t.Run("selection toggle and removal share one save", func(t *testing.T) {
		t.Parallel()
		f, ed := newFileEditor(t)

		ed.SetSelected(3, true)
		ed.Remove(1)
		if err := ed.Save(context.Background()); err != nil {
			t.Fatal(err)
		}

		if got := f.Requests("PUT", filesPattern); got != 1 {
			t.Fatalf("save made %d write requests, want 1", got)
		}
		body := string(f.WriteBodies[len(f.WriteBodies)-1])
		if !strings.Contains(body, `"c.pdf"`) {
			t.Errorf("write body %s missing the toggled row", body)
		}
		if !strings.Contains(body, `"removed":[1]`) {
			t.Errorf("write body %s missing the removed ID", body)
		}
	})
}
