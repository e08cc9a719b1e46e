package backend_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/koopa0/scout/internal/backend"
	"github.com/koopa0/scout/internal/testutil"
)

func newClient(t *testing.T, f *testutil.FakeBackend) *backend.Client {
	t.Helper()
	client, err := backend.New(backend.Config{BaseURL: f.URL()}, testutil.DiscardLogger())
	if err != nil {
		t.Fatal(err)
	}
	return client
}

func seedAttempts(f *testutil.FakeBackend, n int) {
	now := time.Now().UTC().Format(time.RFC3339)
	for i := range n {
		f.Attempts = append(f.Attempts, map[string]any{
			"id":                 i,
			"connector_id":       1,
			"status":             "success",
			"new_docs_indexed":   i * 10,
			"total_docs_indexed": i * 100,
			"time_updated":       now,
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		baseURL string
		wantErr bool
	}{
		{name: "valid http URL", baseURL: "http://localhost:8080", wantErr: false},
		{name: "valid https URL", baseURL: "https://search.example.com", wantErr: false},
		{name: "empty URL", baseURL: "", wantErr: true},
		{name: "unsupported scheme", baseURL: "ftp://example.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := backend.New(backend.Config{BaseURL: tt.baseURL}, nil)
			if (err != nil) != tt.wantErr {
				t.Errorf("New(%q) error = %v, wantErr %v", tt.baseURL, err, tt.wantErr)
			}
		})
	}
}

func TestListIndexAttempts(t *testing.T) {
	t.Parallel()

	f := testutil.NewFakeBackend(t)
	seedAttempts(f, 12)
	client := newClient(t, f)

	page, err := client.ListIndexAttempts(context.Background(), 1, 1, 5)
	if err != nil {
		t.Fatal(err)
	}
	if page.TotalItems != 12 {
		t.Errorf("TotalItems = %d, want 12", page.TotalItems)
	}
	if len(page.Items) != 5 {
		t.Fatalf("got %d items, want 5", len(page.Items))
	}
	// page_num 1 with page_size 5 starts at item 5.
	if page.Items[0].ID != 5 {
		t.Errorf("first item ID = %d, want 5", page.Items[0].ID)
	}

	// Last partial page.
	page, err = client.ListIndexAttempts(context.Background(), 2, 5, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Items) != 2 {
		t.Errorf("last page has %d items, want 2", len(page.Items))
	}
}

func TestGetEntityTypes(t *testing.T) {
	t.Parallel()

	f := testutil.NewFakeBackend(t)
	f.EntityTypes = []map[string]any{
		{"name": "PERSON", "description": "A person", "active": true, "grounded_source_name": "web"},
		{"name": "COMPANY", "description": "", "active": false},
	}
	client := newClient(t, f)

	types, err := client.GetEntityTypes(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(types) != 2 {
		t.Fatalf("got %d entity types, want 2", len(types))
	}
	if types[0].Name != "PERSON" || !types[0].Active || types[0].SourceName != "web" {
		t.Errorf("first entity type = %+v", types[0])
	}
}

func TestAPIError(t *testing.T) {
	t.Parallel()

	t.Run("carries the server detail message", func(t *testing.T) {
		t.Parallel()
		f := testutil.NewFakeBackend(t)
		f.FailWith = "entity type PERSON is referenced by documents"
		client := newClient(t, f)

		_, err := client.UpdateEntityTypes(context.Background(),
			[]backend.EntityType{{Name: "PERSON", Active: false}})
		if err == nil {
			t.Fatal("expected error from failing write")
		}

		var apiErr *backend.APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("error %v is not an *APIError", err)
		}
		if apiErr.StatusCode != 400 {
			t.Errorf("StatusCode = %d, want 400", apiErr.StatusCode)
		}
		if apiErr.Detail != f.FailWith {
			t.Errorf("Detail = %q, want %q", apiErr.Detail, f.FailWith)
		}
	})

	t.Run("message includes status and detail", func(t *testing.T) {
		t.Parallel()
		err := &backend.APIError{StatusCode: 409, Detail: "already registered"}
		want := "backend error (status 409): already registered"
		if err.Error() != want {
			t.Errorf("Error() = %q, want %q", err.Error(), want)
		}
	})
}

func TestUpdateConnectorFiles(t *testing.T) {
	t.Parallel()

	f := testutil.NewFakeBackend(t)
	client := newClient(t, f)

	changed := []backend.ConnectorFile{{ID: 1, Name: "a.pdf", Selected: false}}
	if err := client.UpdateConnectorFiles(context.Background(), 7, changed, []int{2, 3}); err != nil {
		t.Fatal(err)
	}

	if got := f.Requests("PUT", "/api/manage/admin/connector/{id}/files"); got != 1 {
		t.Fatalf("write requests = %d, want 1", got)
	}
	body := string(f.WriteBodies[len(f.WriteBodies)-1])
	for _, fragment := range []string{`"changed"`, `"removed":[2,3]`, `"a.pdf"`} {
		if !strings.Contains(body, fragment) {
			t.Errorf("write body %s missing %s", body, fragment)
		}
	}
}
