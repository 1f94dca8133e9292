package service

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// sessionRuntime is the transient per-session state that never touches the
// database: the conversation controller's idle/awaiting-completion flag, the
// cancel handle for the in-flight completion, and the feedback in-flight
// guard.
type sessionRuntime struct {
	mu                sync.Mutex
	completionPending bool
	cancelCompletion  context.CancelFunc
	feedbackPending   bool
}

// Runtime tracks live session state in a TTL cache so idle sessions do not
// accumulate forever. Database state is untouched by eviction; a session's
// runtime entry is simply recreated (idle, nothing pending) on next use.
type Runtime struct {
	mu      sync.Mutex
	entries *gocache.Cache
}

// NewRuntime builds the registry. idleTTL bounds how long an untouched
// session keeps its runtime entry.
func NewRuntime(idleTTL time.Duration) *Runtime {
	if idleTTL <= 0 {
		idleTTL = 12 * time.Hour
	}

	return &Runtime{
		entries: gocache.New(idleTTL, idleTTL/2),
	}
}

func (r *Runtime) get(sessionID string) *sessionRuntime {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry, ok := r.entries.Get(sessionID); ok {
		r.entries.SetDefault(sessionID, entry)
		return entry.(*sessionRuntime)
	}

	entry := &sessionRuntime{}
	r.entries.SetDefault(sessionID, entry)
	return entry
}

// BeginCompletion transitions the session from idle to awaiting-completion.
// Returns ErrCompletionPending when a completion is already in flight, which
// is how a rapid double submit is rejected without queueing.
func (r *Runtime) BeginCompletion(sessionID string, cancel context.CancelFunc) error {
	entry := r.get(sessionID)
	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.completionPending {
		return ErrCompletionPending
	}

	entry.completionPending = true
	entry.cancelCompletion = cancel
	return nil
}

// EndCompletion returns the session to idle, whether the completion resolved
// or failed.
func (r *Runtime) EndCompletion(sessionID string) {
	entry := r.get(sessionID)
	entry.mu.Lock()
	defer entry.mu.Unlock()

	entry.completionPending = false
	entry.cancelCompletion = nil
}

// CancelCompletion aborts the in-flight completion, if any, and reports
// whether there was one to cancel.
func (r *Runtime) CancelCompletion(sessionID string) bool {
	entry := r.get(sessionID)
	entry.mu.Lock()
	defer entry.mu.Unlock()

	if !entry.completionPending || entry.cancelCompletion == nil {
		return false
	}

	entry.cancelCompletion()
	return true
}

// BeginFeedback marks a feedback request in flight. A second request while
// one is pending is rejected rather than queued so a slow verdict can never
// overwrite a newer one out of order.
func (r *Runtime) BeginFeedback(sessionID string) error {
	entry := r.get(sessionID)
	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.feedbackPending {
		return ErrFeedbackPending
	}

	entry.feedbackPending = true
	return nil
}

// EndFeedback clears the feedback in-flight guard.
func (r *Runtime) EndFeedback(sessionID string) {
	entry := r.get(sessionID)
	entry.mu.Lock()
	defer entry.mu.Unlock()

	entry.feedbackPending = false
}
