package debounce_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/koopa0/scout/internal/debounce"
)

const interval = 30 * time.Millisecond

// settle is long enough for a pending timer to have fired.
const settle = 5 * interval

func TestTrigger(t *testing.T) {
	t.Parallel()

	t.Run("fires once after quiet interval", func(t *testing.T) {
		t.Parallel()
		var runs atomic.Int32
		d := debounce.New(interval, func() { runs.Add(1) })
		defer d.Stop()

		d.Trigger()
		time.Sleep(settle)

		if got := runs.Load(); got != 1 {
			t.Errorf("runs = %d, want 1", got)
		}
	})

	t.Run("retrigger postpones the run", func(t *testing.T) {
		t.Parallel()
		var runs atomic.Int32
		d := debounce.New(interval, func() { runs.Add(1) })
		defer d.Stop()

		// Keystrokes arriving faster than the interval collapse into a
		// single run after the input goes quiet.
		for range 5 {
			d.Trigger()
			time.Sleep(interval / 3)
		}
		if got := runs.Load(); got != 0 {
			t.Errorf("runs = %d while input active, want 0", got)
		}

		time.Sleep(settle)
		if got := runs.Load(); got != 1 {
			t.Errorf("runs = %d after quiet, want 1", got)
		}
	})
}

func TestFlush(t *testing.T) {
	t.Parallel()

	t.Run("runs the pending action immediately", func(t *testing.T) {
		t.Parallel()
		var runs atomic.Int32
		d := debounce.New(time.Hour, func() { runs.Add(1) })
		defer d.Stop()

		d.Trigger()
		d.Flush()

		if got := runs.Load(); got != 1 {
			t.Errorf("runs = %d after Flush, want 1", got)
		}
	})

	t.Run("flushed timer does not fire again", func(t *testing.T) {
		t.Parallel()
		var runs atomic.Int32
		d := debounce.New(interval, func() { runs.Add(1) })
		defer d.Stop()

		d.Trigger()
		d.Flush()
		time.Sleep(settle)

		if got := runs.Load(); got != 1 {
			t.Errorf("runs = %d, want exactly 1", got)
		}
	})

	t.Run("no-op with nothing pending", func(t *testing.T) {
		t.Parallel()
		var runs atomic.Int32
		d := debounce.New(interval, func() { runs.Add(1) })
		defer d.Stop()

		d.Flush()
		if got := runs.Load(); got != 0 {
			t.Errorf("runs = %d after idle Flush, want 0", got)
		}
	})
}

func TestStop(t *testing.T) {
	t.Parallel()

	t.Run("cancels the pending run", func(t *testing.T) {
		t.Parallel()
		var runs atomic.Int32
		d := debounce.New(interval, func() { runs.Add(1) })

		d.Trigger()
		d.Stop()
		time.Sleep(settle)

		if got := runs.Load(); got != 0 {
			t.Errorf("runs = %d after Stop, want 0", got)
		}
	})

	t.Run("trigger after stop is ignored", func(t *testing.T) {
		t.Parallel()
		var runs atomic.Int32
		d := debounce.New(interval, func() { runs.Add(1) })

		d.Stop()
		d.Trigger()
		d.Stop() // idempotent
		time.Sleep(settle)

		if got := runs.Load(); got != 0 {
			t.Errorf("runs = %d after post-Stop trigger, want 0", got)
		}
	})
}
