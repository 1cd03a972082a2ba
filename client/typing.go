package client

import (
	"sync"
	"time"
)

// DefaultTypingTimeout clears the typing affordance this long after the
// last input change.
const DefaultTypingTimeout = 2 * time.Second

// TypingIndicator is a local, non-networked liveness heuristic: any input
// change starts a countdown, each further change restarts it, and expiry
// without input clears the indicator.
//
// It reflects the local composer's state only; no signal from the remote
// peer is involved.
type TypingIndicator struct {
	Timeout time.Duration
	// OnChange is invoked with the new state whenever it flips.
	OnChange func(active bool)

	mu     sync.Mutex
	timer  *time.Timer
	active bool
}

func NewTypingIndicator() *TypingIndicator {
	return &TypingIndicator{Timeout: DefaultTypingTimeout}
}

// InputChanged records a composer edit. Non-empty text arms (or re-arms)
// the countdown; clearing the input clears the indicator immediately.
func (t *TypingIndicator) InputChanged(text string) {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}

	if text == "" {
		changed := t.active
		t.active = false
		t.mu.Unlock()
		if changed {
			t.fire(false)
		}
		return
	}

	changed := !t.active
	t.active = true
	t.timer = time.AfterFunc(t.Timeout, t.expire)
	t.mu.Unlock()
	if changed {
		t.fire(true)
	}
}

func (t *TypingIndicator) expire() {
	t.mu.Lock()
	changed := t.active
	t.active = false
	t.timer = nil
	t.mu.Unlock()
	if changed {
		t.fire(false)
	}
}

// Stop cancels the pending countdown so nothing fires after the view is
// torn down.
func (t *TypingIndicator) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.active = false
	t.mu.Unlock()
}

// Active reports the current indicator state.
func (t *TypingIndicator) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

func (t *TypingIndicator) fire(active bool) {
	if t.OnChange != nil {
		t.OnChange(active)
	}
}
