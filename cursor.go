package rethinkgo

import (
	"context"
	"fmt"
	"sync"

	"rethinkgo/internal/conn"
	"rethinkgo/internal/datum"
	"rethinkgo/internal/proto"
	"rethinkgo/rerr"
)

type cursorState int

const (
	cursorFresh cursorState = iota
	cursorStreaming
	cursorExhausted
	cursorFailed
)

// Cursor iterates over the sequence a query resolved to, fetching further
// batches from the server on demand via CONTINUE. It is forward-only and
// not safe for concurrent use. Unlike the teacher's streamCursor, Next
// drives the CONTINUE round trip synchronously on the caller's goroutine
// instead of through a background fetch goroutine and buffered channel:
// the underlying conn.Submit call is already the connection's asynchrony
// boundary, so no I/O happens until the first Next call needs it, without
// needing an extra goroutine to get that property.
type Cursor[T any] struct {
	c       *conn.Conn
	token   uint64
	term    *proto.Term // consumed by the first Next call, then discarded
	optargs []proto.TermAssocPair

	buf         []*proto.Datum
	pos         int
	pendingMore bool
	isFeed      bool

	state cursorState
	err   error
	cur   T

	closeOnce sync.Once
}

// newCursor constructs a Cursor in the Fresh state. No query has been sent
// yet: per spec.md §4.6, "no I/O occurs until the first advance." The
// START query is held here and sent by the first call to Next.
func newCursor[T any](c *conn.Conn, token uint64, term *proto.Term, optargs []proto.TermAssocPair) *Cursor[T] {
	return &Cursor[T]{c: c, token: token, term: term, optargs: optargs, state: cursorFresh}
}

// IsFeed reports whether this cursor is a changefeed: a stream that never
// terminates on its own and must be ended with Close. It is only
// meaningful once Next has returned at least once; before that it always
// reports false.
func (c *Cursor[T]) IsFeed() bool { return c.isFeed }

// Next advances the cursor, issuing the initial START on the first call
// and fetching further batches via CONTINUE as each one is exhausted. It
// reports false at end of stream (Err() == nil) or on failure
// (Err() != nil).
func (c *Cursor[T]) Next(ctx context.Context) bool {
	for {
		if c.state == cursorFailed {
			return false
		}
		if c.state == cursorFresh {
			if !c.start(ctx) {
				return false
			}
			continue
		}
		if c.pos < len(c.buf) {
			c.state = cursorStreaming
			d := c.buf[c.pos]
			c.pos++
			if err := datum.Decode(d, &c.cur); err != nil {
				c.fail(fmt.Errorf("rethinkgo: decode cursor item: %w", err))
				return false
			}
			return true
		}
		if !c.pendingMore {
			c.state = cursorExhausted
			return false
		}
		if !c.fetchNext(ctx) {
			return false
		}
	}
}

func (c *Cursor[T]) start(ctx context.Context) bool {
	resp, err := c.c.Submit(ctx, &proto.Query{Type: proto.QueryStart, Token: c.token, Term: c.term, GlobalOptargs: c.optargs})
	c.term = nil
	c.optargs = nil
	if err != nil {
		c.fail(err)
		return false
	}
	if resp.Type.IsError() {
		c.fail(rerr.FromResponse(resp))
		return false
	}
	c.buf = resp.Response
	c.pos = 0
	c.pendingMore = resp.Type == proto.ResponseSuccessPartial
	c.isFeed = resp.IsFeed()
	c.state = cursorStreaming
	return true
}

func (c *Cursor[T]) fetchNext(ctx context.Context) bool {
	resp, err := c.c.Submit(ctx, &proto.Query{Type: proto.QueryContinue, Token: c.token})
	if err != nil {
		c.fail(err)
		return false
	}
	if resp.Type.IsError() {
		c.fail(rerr.FromResponse(resp))
		return false
	}
	c.buf = resp.Response
	c.pos = 0
	c.pendingMore = resp.Type == proto.ResponseSuccessPartial
	return true
}

func (c *Cursor[T]) fail(err error) {
	c.err = err
	c.state = cursorFailed
}

// Value returns the item most recently produced by Next.
func (c *Cursor[T]) Value() T { return c.cur }

// Err returns the error that stopped iteration, or nil if iteration ended
// because the sequence was exhausted.
func (c *Cursor[T]) Err() error { return c.err }

// Close ends the cursor, sending STOP if the server may still have more
// batches buffered (an unread changefeed or a streaming query abandoned
// before exhaustion), per the teacher's streamCursor.Close /
// changefeedCursor.Close.
func (c *Cursor[T]) Close(ctx context.Context) error {
	var stopErr error
	c.closeOnce.Do(func() {
		if c.state == cursorExhausted || c.state == cursorFailed || c.state == cursorFresh {
			return
		}
		stopErr = c.c.SubmitNoReply(&proto.Query{Type: proto.QueryStop, Token: c.token})
		c.state = cursorExhausted
	})
	return stopErr
}
