// Package reconcile manages the edit lifecycle of a tabular collection
// fetched from a server.
//
// A Reconciler holds two keyed copies of the collection: the Snapshot (the
// server's last-known-good state) and the Working Copy (the user's edits).
// The two copies are deeply independent - mutating one never mutates the
// other. At save time only the rows whose Working Copy differs from the
// Snapshot are submitted; an empty diff is an explicit no-op that issues no
// network request. On success the Snapshot advances to the submitted rows
// and server-returned rows win over the Working Copy; on failure the Working
// Copy is deliberately left untouched so the user does not lose edits.
//
// Row equality is structural (field-by-field via JSON comparison), never
// reference equality. Row types must be plain JSON-marshalable data structs.
//
// Thread Safety: all methods are safe for concurrent use, but a collection
// is intended to be owned by a single editor at a time.
package reconcile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/wI2L/jsondiff"

	"github.com/koopa0/scout/internal/log"
)

var (
	// ErrSubmitInFlight indicates Submit was called while a previous
	// Submit had not yet resolved. Overlapping diffs against a mutating
	// Snapshot are undefined, so the later call is rejected, not queued.
	ErrSubmitInFlight = errors.New("submit already in flight")

	// ErrNilSubmit indicates the Reconciler was built without a submit
	// function.
	ErrNilSubmit = errors.New("submit function is required")

	// ErrNilKeyFunc indicates the Reconciler was built without a key
	// extractor.
	ErrNilKeyFunc = errors.New("key function is required")
)

// KeyFunc extracts a row's identity key. Keys never change after creation;
// diffing is always performed key-by-key.
type KeyFunc[K comparable, R any] func(R) K

// SubmitFunc sends the changed rows to the write endpoint. It may return
// the server's canonical versions of the updated rows; returned rows
// overwrite the Working Copy (server wins over local state). A nil row
// slice with a nil error means "accepted, no body" and the client advances
// the Snapshot to the submitted rows unconditionally.
type SubmitFunc[R any] func(ctx context.Context, changed []R) ([]R, error)

// Reconciler tracks per-row dirty state for one editable collection.
//
// The zero value is not usable - use New, then Init with a server snapshot.
type Reconciler[K comparable, R any] struct {
	key    KeyFunc[K, R]
	submit SubmitFunc[R]
	logger log.Logger

	mu       sync.Mutex
	snapshot map[K]R
	working  map[K]R
	order    []K // stable iteration order; grows, never shrinks
	inFlight bool
}

// New creates a Reconciler. Init must be called with the authoritative
// server state before any edit operations.
func New[K comparable, R any](key KeyFunc[K, R], submit SubmitFunc[R], logger log.Logger) (*Reconciler[K, R], error) {
	if key == nil {
		return nil, ErrNilKeyFunc
	}
	if submit == nil {
		return nil, ErrNilSubmit
	}
	if logger == nil {
		logger = log.NewNop()
	}
	return &Reconciler[K, R]{
		key:      key,
		submit:   submit,
		logger:   logger,
		snapshot: make(map[K]R),
		working:  make(map[K]R),
	}, nil
}

// Init loads the authoritative server state. The rows become both the
// Snapshot and the initial Working Copy, as independent deep copies.
// Any previous edit state is discarded.
func (r *Reconciler[K, R]) Init(rows []R) error {
	snapshot := make(map[K]R, len(rows))
	working := make(map[K]R, len(rows))
	order := make([]K, 0, len(rows))

	for _, row := range rows {
		k := r.key(row)
		if _, dup := snapshot[k]; dup {
			return fmt.Errorf("duplicate row key %v in snapshot", k)
		}
		s, err := clone(row)
		if err != nil {
			return fmt.Errorf("cloning snapshot row %v: %w", k, err)
		}
		w, err := clone(row)
		if err != nil {
			return fmt.Errorf("cloning working row %v: %w", k, err)
		}
		snapshot[k] = s
		working[k] = w
		order = append(order, k)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshot = snapshot
	r.working = working
	r.order = order
	return nil
}

// Rows returns the Working Copy rows in stable order.
func (r *Reconciler[K, R]) Rows() []R {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]R, 0, len(r.working))
	for _, k := range r.order {
		if row, ok := r.working[k]; ok {
			out = append(out, row)
		}
	}
	return out
}

// Get returns the Working Copy row for the given key.
func (r *Reconciler[K, R]) Get(key K) (R, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.working[key]
	return row, ok
}

// Update mutates the Working Copy row at key through the given function.
// An unknown key is a caller bug: the call is a no-op and is logged.
func (r *Reconciler[K, R]) Update(key K, mutate func(*R)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.working[key]
	if !ok {
		r.logger.Warn("update for unknown row key", "key", fmt.Sprint(key))
		return
	}
	mutate(&row)
	r.working[key] = row
}

// UpdateAll applies the mutation to every Working Copy row in a single
// state transition (one lock acquisition, no intermediate state observable).
// Used for bulk toggles such as "enable all".
func (r *Reconciler[K, R]) UpdateAll(mutate func(*R)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, row := range r.working {
		mutate(&row)
		r.working[k] = row
	}
}

// Put adds or replaces a Working Copy row.
func (r *Reconciler[K, R]) Put(row R) {
	k := r.key(row)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, known := r.working[k]; !known {
		if _, inSnapshot := r.snapshot[k]; !inSnapshot {
			r.order = append(r.order, k)
		}
	}
	r.working[k] = row
}

// Remove deletes a row from the Working Copy. The deletion becomes part of
// the dirty state until submitted or reset.
func (r *Reconciler[K, R]) Remove(key K) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.working[key]; !ok {
		r.logger.Warn("remove for unknown row key", "key", fmt.Sprint(key))
		return
	}
	delete(r.working, key)
}

// IsDirty reports whether any Working Copy row differs from its Snapshot
// row, or rows have been added or removed.
func (r *Reconciler[K, R]) IsDirty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.working) != len(r.snapshot) {
		return true
	}
	for k, w := range r.working {
		s, ok := r.snapshot[k]
		if !ok || !r.rowsEqual(s, w) {
			return true
		}
	}
	return false
}

// Diff returns exactly the Working Copy rows that differ from the Snapshot
// on at least one field, including added rows. Rows identical in every
// field are excluded regardless of object identity. Removed rows are
// reported separately by RemovedKeys.
func (r *Reconciler[K, R]) Diff() []R {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.diffLocked()
}

func (r *Reconciler[K, R]) diffLocked() []R {
	var changed []R
	for _, k := range r.order {
		w, inWorking := r.working[k]
		if !inWorking {
			continue
		}
		s, inSnapshot := r.snapshot[k]
		if !inSnapshot || !r.rowsEqual(s, w) {
			changed = append(changed, w)
		}
	}
	return changed
}

// RemovedKeys returns the keys present in the Snapshot but deleted from the
// Working Copy.
func (r *Reconciler[K, R]) RemovedKeys() []K {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.removedLocked()
}

func (r *Reconciler[K, R]) removedLocked() []K {
	var removed []K
	for _, k := range r.order {
		if _, inSnapshot := r.snapshot[k]; !inSnapshot {
			continue
		}
		if _, inWorking := r.working[k]; !inWorking {
			removed = append(removed, k)
		}
	}
	return removed
}

// WouldRemoveAllRows reports whether submitting the current edits would
// leave the collection empty. Callers gate destructive submits behind a
// confirmation step using this; the Reconciler itself never prompts.
func (r *Reconciler[K, R]) WouldRemoveAllRows() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.working) == 0 && len(r.snapshot) > 0
}

// Reset discards the Working Copy and recreates it from the Snapshot.
// A no-op when nothing is dirty (the Cancel button is disabled when clean).
func (r *Reconciler[K, R]) Reset() {
	if !r.IsDirty() {
		r.logger.Debug("reset skipped, no unsaved changes")
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	working := make(map[K]R, len(r.snapshot))
	for k, s := range r.snapshot {
		w, err := clone(s)
		if err != nil {
			// Snapshot rows cloned successfully at least once before;
			// a failure here means the row was corrupted in place.
			r.logger.Error("reset failed to clone snapshot row", "key", fmt.Sprint(k), "error", err)
			w = s
		}
		working[k] = w
	}
	r.working = working
}

// Submit sends the current diff to the write endpoint.
//
// An empty diff resolves immediately with no network call. A Submit while a
// previous one is in flight returns ErrSubmitInFlight. On success the
// Snapshot advances to the submitted rows and any server-returned rows
// overwrite the Working Copy. On failure the Working Copy keeps the user's
// edits and IsDirty remains true.
func (r *Reconciler[K, R]) Submit(ctx context.Context) error {
	r.mu.Lock()
	if r.inFlight {
		r.mu.Unlock()
		return ErrSubmitInFlight
	}
	changed := r.diffLocked()
	removed := r.removedLocked()
	if len(changed) == 0 && len(removed) == 0 {
		r.mu.Unlock()
		r.logger.Debug("submit skipped, no changes")
		return nil
	}
	r.inFlight = true
	r.mu.Unlock()

	serverRows, err := r.submit(ctx, changed)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.inFlight = false

	if err != nil {
		// Edits are preserved on purpose; the user retries from where
		// they left off.
		return fmt.Errorf("submitting %d changed rows: %w", len(changed), err)
	}

	// Advance the Snapshot to the rows as they were submitted. Edits made
	// while the request was in flight stay dirty against the new Snapshot.
	for _, row := range changed {
		k := r.key(row)
		s, cloneErr := clone(row)
		if cloneErr != nil {
			r.logger.Error("failed to clone submitted row", "key", fmt.Sprint(k), "error", cloneErr)
			s = row
		}
		r.snapshot[k] = s
	}
	for _, k := range removed {
		delete(r.snapshot, k)
	}

	// Server response wins over locally-held state for the rows it covers.
	for _, row := range serverRows {
		k := r.key(row)
		s, cloneErr := clone(row)
		if cloneErr != nil {
			r.logger.Error("failed to clone server row", "key", fmt.Sprint(k), "error", cloneErr)
			s = row
		}
		r.snapshot[k] = s
		if _, stillPresent := r.working[k]; stillPresent {
			r.working[k] = row
		}
	}
	return nil
}

// rowsEqual compares two rows field-by-field through their JSON structure.
// Comparison failures are conservative: the row is treated as changed.
func (r *Reconciler[K, R]) rowsEqual(a, b R) bool {
	patch, err := jsondiff.Compare(a, b)
	if err != nil {
		r.logger.Warn("row comparison failed, treating row as changed", "error", err)
		return false
	}
	return len(patch) == 0
}

// clone deep-copies a row through a JSON round trip, severing any shared
// pointers, slices, or maps between the Snapshot and the Working Copy.
func clone[R any](row R) (R, error) {
	var out R
	data, err := json.Marshal(row)
	if err != nil {
		return out, fmt.Errorf("marshaling row: %w", err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("unmarshaling row: %w", err)
	}
	return out, nil
}
