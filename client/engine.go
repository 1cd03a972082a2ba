package client

import (
	"context"
	"errors"
	"sync"
	"time"
)

const (
	// DefaultPollInterval is how often the conversation is re-fetched while
	// the view is active.
	DefaultPollInterval = 2 * time.Second
	// DefaultReconcileDelay is the out-of-band refresh delay after a send
	// resolves, reconciling the provisional entry with the authoritative row.
	DefaultReconcileDelay = 100 * time.Millisecond
)

// Entry is one displayed message: either an authoritative server row or a
// provisional (optimistic) local entry awaiting reconciliation.
type Entry struct {
	Message
	Pending bool
	Failed  bool
}

// Engine maintains an eventually-consistent local view of one conversation
// by polling, applying optimistic sends as tentative events and replacing
// the log with each authoritative snapshot. All state transitions are
// serialized; poll ticks, send-triggered refreshes and sends interleave but
// converge on the same replace operation.
type Engine struct {
	session *Session
	peerID  int64

	PollInterval   time.Duration
	ReconcileDelay time.Duration

	// OnUpdate receives the merged view after every state change. Called
	// with the engine lock released.
	OnUpdate func([]Entry)

	mu            sync.Mutex
	authoritative []Message
	pending       []Entry
	nextLocalID   int64

	now func() time.Time
}

func NewEngine(session *Session, peerID int64) *Engine {
	return &Engine{
		session:        session,
		peerID:         peerID,
		PollInterval:   DefaultPollInterval,
		ReconcileDelay: DefaultReconcileDelay,
		nextLocalID:    -1,
		now:            time.Now,
	}
}

// Run polls the conversation until ctx is cancelled. Poll failures are
// swallowed and retried on the next tick; cancellation releases the timer
// so no callbacks fire on a torn-down view.
func (e *Engine) Run(ctx context.Context) {
	e.refresh(ctx)

	ticker := time.NewTicker(e.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.refresh(ctx)
		}
	}
}

// refresh fetches the authoritative conversation and replaces the local
// view with it. Any failure, including an expired token, is transient here.
func (e *Engine) refresh(ctx context.Context) {
	messages, err := e.session.ListConversation(ctx, e.session.SelfID(), e.peerID)
	if err != nil {
		return
	}
	e.applySnapshot(messages)
}

func (e *Engine) applySnapshot(snapshot []Message) {
	e.mu.Lock()
	e.authoritative = snapshot
	e.pending = dropSuperseded(e.pending, snapshot)
	view := e.viewLocked()
	e.mu.Unlock()

	e.notify(view)
}

// Send appends a provisional entry before the network round trip so the UI
// updates immediately, then posts the message. On success one out-of-band
// refresh is scheduled to pick up the authoritative row. Validation and
// storage failures mark the entry failed and are returned to the caller;
// the entry stays visible so the user can see what didn't go through.
func (e *Engine) Send(ctx context.Context, content string) error {
	e.mu.Lock()
	localID := e.nextLocalID
	e.nextLocalID--
	entry := Entry{
		Message: Message{
			ID:          localID,
			SenderID:    e.session.SelfID(),
			ReceiverID:  e.peerID,
			Content:     content,
			MessageType: "text",
			IsRead:      false,
			CreatedAt:   e.now(),
			SenderName:  e.session.Name(),
		},
		Pending: true,
	}
	e.pending = append(e.pending, entry)
	view := e.viewLocked()
	e.mu.Unlock()
	e.notify(view)

	_, err := e.session.SendMessage(ctx, e.peerID, content)
	if err != nil {
		e.markFailed(localID)
		return err
	}

	e.scheduleRefresh(ctx)
	return nil
}

func (e *Engine) markFailed(localID int64) {
	e.mu.Lock()
	for i := range e.pending {
		if e.pending[i].ID == localID {
			e.pending[i].Failed = true
		}
	}
	view := e.viewLocked()
	e.mu.Unlock()
	e.notify(view)
}

// scheduleRefresh fires one reconciliation refresh after ReconcileDelay,
// unless the view is torn down first.
func (e *Engine) scheduleRefresh(ctx context.Context) {
	timer := time.NewTimer(e.ReconcileDelay)
	go func() {
		defer timer.Stop()
		select {
		case <-ctx.Done():
		case <-timer.C:
			e.refresh(ctx)
		}
	}()
}

// View returns the current merged view: the authoritative log followed by
// pending entries not yet superseded.
func (e *Engine) View() []Entry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.viewLocked()
}

func (e *Engine) viewLocked() []Entry {
	view := make([]Entry, 0, len(e.authoritative)+len(e.pending))
	for _, msg := range e.authoritative {
		view = append(view, Entry{Message: msg})
	}
	view = append(view, e.pending...)
	return view
}

func (e *Engine) notify(view []Entry) {
	if e.OnUpdate != nil {
		e.OnUpdate(view)
	}
}

// IsTransient reports whether a send failure should be retried silently
// rather than surfaced. Only transport-level and auth errors qualify; the
// caller shows validation and storage failures to the user.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var ve *ValidationError
	var se *StorageError
	if errors.As(err, &ve) || errors.As(err, &se) {
		return false
	}
	return true
}
