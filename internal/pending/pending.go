// Package pending tracks in-flight requests keyed by token between the
// moment a query is submitted and the moment its response arrives (or the
// request is abandoned). It generalizes the teacher's waiters map of
// token->channel into a registry of one-shot slots so that a reader
// goroutine delivering a late response and a caller giving up on context
// cancellation can race safely: exactly one of them wins.
package pending

import (
	"context"
	"sync"
	"sync/atomic"

	"rethinkgo/internal/proto"
)

const (
	stateArmed int32 = iota
	stateDelivered
	stateCancelled
)

// Slot is a one-shot completion point for a single outstanding request.
type Slot struct {
	ch    chan result
	state atomic.Int32
}

type result struct {
	resp *proto.Response
	err  error
}

func newSlot() *Slot {
	return &Slot{ch: make(chan result, 1)}
}

// Deliver completes the slot with resp. It reports whether this call won
// the race to complete the slot; a false return means the slot was already
// cancelled (or, impossibly, already delivered) and resp was not consumed.
func (s *Slot) Deliver(resp *proto.Response) bool {
	if !s.state.CompareAndSwap(stateArmed, stateDelivered) {
		return false
	}
	s.ch <- result{resp: resp}
	return true
}

// Fail completes the slot with an error, e.g. when the connection closes
// while the slot is still armed.
func (s *Slot) Fail(err error) bool {
	if !s.state.CompareAndSwap(stateArmed, stateDelivered) {
		return false
	}
	s.ch <- result{err: err}
	return true
}

// Cancel marks the slot as abandoned by its waiter. It reports whether this
// call won the race; a false return means a response was already (or is
// concurrently being) delivered and the caller should expect Wait to return
// it rather than ctx.Err().
func (s *Slot) Cancel() bool {
	return s.state.CompareAndSwap(stateArmed, stateCancelled)
}

// Wait blocks until the slot is delivered or ctx is done. On ctx expiry it
// does not itself cancel the slot; callers that want the cancel-or-accept
// race must call Cancel and, if Cancel loses, call Wait again: the winning
// Deliver or Fail sends its result right after claiming the slot, so the
// result may not be in the channel yet at the instant Cancel returns.
func (s *Slot) Wait(ctx context.Context) (*proto.Response, error) {
	select {
	case r := <-s.ch:
		return r.resp, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// TryRecv performs a non-blocking read of an already-delivered slot. It
// reports false while the completing call has claimed the slot but not yet
// sent its result.
func (s *Slot) TryRecv() (*proto.Response, error, bool) {
	select {
	case r := <-s.ch:
		return r.resp, r.err, true
	default:
		return nil, nil, false
	}
}

// Registry maps tokens to their in-flight Slot.
type Registry struct {
	mu    sync.Mutex
	slots map[uint64]*Slot
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{slots: make(map[uint64]*Slot)}
}

// Install creates and stores a new Armed slot for token, replacing any
// prior slot under that token (callers are expected to use fresh tokens,
// but a replaced slot is simply orphaned rather than causing a panic).
func (r *Registry) Install(token uint64) *Slot {
	s := newSlot()
	r.mu.Lock()
	r.slots[token] = s
	r.mu.Unlock()
	return s
}

// Take removes and returns the slot for token, if any.
func (r *Registry) Take(token uint64) (*Slot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[token]
	if ok {
		delete(r.slots, token)
	}
	return s, ok
}

// Remove deletes the slot for token without returning it, used after a
// cancellation has already obtained the slot by other means.
func (r *Registry) Remove(token uint64) {
	r.mu.Lock()
	delete(r.slots, token)
	r.mu.Unlock()
}

// DrainWithError fails every still-armed slot with err and empties the
// registry. Called once when the owning connection closes.
func (r *Registry) DrainWithError(err error) {
	r.mu.Lock()
	slots := r.slots
	r.slots = make(map[uint64]*Slot)
	r.mu.Unlock()

	for _, s := range slots {
		s.Fail(err)
	}
}

// Len reports the number of currently armed slots. Intended for tests and
// diagnostics, not for control flow.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.slots)
}
