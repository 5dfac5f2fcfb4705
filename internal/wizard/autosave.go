package wizard

import (
	"context"
	"sync"
	"time"

	"github.com/mkovalenko/avatara/internal/domain"
)

// Saver persists one persona patch.
type Saver func(ctx context.Context, patch domain.PersonaPatch) error

// Autosave coalesces a burst of edits into one persisted write. It is a
// single-slot buffer: each Write overwrites the pending patch (every form
// write carries the step's whole fragment, so last write wins), and a
// quiet-window timer flushes the latest value. Flush forces the pending
// write out immediately and is idempotent.
type Autosave struct {
	mu      sync.Mutex
	pending *domain.PersonaPatch
	timer   *time.Timer
	quiet   time.Duration
	save    Saver
}

// DefaultQuietWindow is the autosave debounce interval.
const DefaultQuietWindow = 800 * time.Millisecond

// NewAutosave creates an autosave buffer flushing through save after each
// quiet window.
func NewAutosave(quiet time.Duration, save Saver) *Autosave {
	if quiet <= 0 {
		quiet = DefaultQuietWindow
	}
	return &Autosave{quiet: quiet, save: save}
}

// Write replaces the pending patch and restarts the quiet-window timer.
func (a *Autosave) Write(patch domain.PersonaPatch) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.pending = &patch
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.quiet, func() {
		_ = a.Flush(context.Background())
	})
}

// Flush persists the pending patch, if any, and clears the slot. Calling
// Flush with nothing pending is a no-op.
func (a *Autosave) Flush(ctx context.Context) error {
	a.mu.Lock()
	patch := a.pending
	a.pending = nil
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.mu.Unlock()

	if patch == nil {
		return nil
	}
	return a.save(ctx, *patch)
}

// Pending reports whether an unflushed patch is buffered.
func (a *Autosave) Pending() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pending != nil
}
