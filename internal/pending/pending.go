// Package pending tracks in-flight command calls and matches each
// asynchronously-arriving reply back to the caller that sent the
// command. It is the only synchronization point between the outbound
// call path and the inbound read loop.
package pending

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ihiteshsharma/mcp-servers/internal/wire"
)

// ErrDuplicateID is returned when a request id is registered twice.
// The id generator makes this unreachable in practice; it aborts the
// offending registration only, never the bridge.
var ErrDuplicateID = errors.New("duplicate request id")

type outcome struct {
	reply wire.Reply
	err   error
}

// Call is the waiting side of one registered request. It resolves
// exactly once: with the matching reply, or with the rejection error
// broadcast when the channel closes.
type Call struct {
	id      string
	created time.Time
	done    chan outcome
}

// ID returns the request id this call is registered under.
func (c *Call) ID() string { return c.id }

// Await blocks until the call resolves or ctx is done. On ctx
// expiry the caller owns cleanup: remove the registration so the
// registry does not grow unboundedly.
func (c *Call) Await(ctx context.Context) (wire.Reply, error) {
	select {
	case o := <-c.done:
		return o.reply, o.err
	case <-ctx.Done():
		return wire.Reply{}, ctx.Err()
	}
}

// Registry is the single source of truth for in-flight request state.
// All map mutation happens under one mutex; Resolve and Register run
// concurrently from the read loop and caller goroutines.
type Registry struct {
	logger *slog.Logger

	mu    sync.Mutex
	calls map[string]*Call
}

// New creates an empty registry. A nil logger falls back to the
// default slog logger.
func New(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		logger: logger,
		calls:  make(map[string]*Call),
	}
}

// Register records a new pending call for id.
func (r *Registry) Register(id string) (*Call, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.calls[id]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}

	call := &Call{
		id:      id,
		created: time.Now(),
		done:    make(chan outcome, 1),
	}
	r.calls[id] = call
	return call, nil
}

// Resolve delivers a reply to the caller registered under reply's id.
// The entry is removed before delivery, so a second reply for the same
// id finds nothing and is dropped. Unsolicited and late replies are
// logged, never surfaced to any caller.
func (r *Registry) Resolve(id string, reply wire.Reply) {
	r.mu.Lock()
	call, ok := r.calls[id]
	if ok {
		delete(r.calls, id)
	}
	r.mu.Unlock()

	if !ok {
		r.logger.Warn("dropping unsolicited or late reply", "id", id)
		return
	}
	call.done <- outcome{reply: reply}
}

// Remove drops the pending entry for id without resolving it. Used by
// callers that abandon a call on their own timeout. Returns false if
// the id was not registered (already resolved or never sent).
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.calls[id]
	if ok {
		delete(r.calls, id)
	}
	return ok
}

// RejectAll atomically drains the registry and fails every outstanding
// call with reason. Safe to invoke with zero pending calls, and safe
// to invoke more than once.
func (r *Registry) RejectAll(reason error) {
	r.mu.Lock()
	drained := r.calls
	r.calls = make(map[string]*Call)
	r.mu.Unlock()

	for _, call := range drained {
		call.done <- outcome{err: reason}
	}
	if len(drained) > 0 {
		r.logger.Info("rejected pending calls", "count", len(drained), "reason", reason)
	}
}

// Len reports the number of outstanding pending calls.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}
