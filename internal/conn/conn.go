// Package conn implements a single multiplexed connection: one dialed
// socket shared by many concurrent in-flight requests, each identified by a
// token. A writer serializer guarantees a query's frame is written whole
// before another goroutine's frame interleaves with it; a reader
// demultiplexer goroutine decodes each inbound frame and routes it to the
// pending.Slot awaiting that token.
package conn

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"rethinkgo/internal/pending"
	"rethinkgo/internal/proto"
	"rethinkgo/internal/token"
	"rethinkgo/internal/wire"
	"rethinkgo/rerr"
)

// DefaultRequestTimeout bounds how long Submit waits for a response before
// sending STOP and giving up, absent a deadline on the caller's context.
const DefaultRequestTimeout = 30 * time.Second

// Conn is a single established, handshaken connection ready to multiplex
// queries.
type Conn struct {
	nc       net.Conn
	addr     string
	writeMu  sync.Mutex
	tokens   token.Allocator
	registry *pending.Registry

	closeOnce sync.Once
	closed    chan struct{}
	readDone  chan struct{}
}

// Dial connects to addr, performs the handshake, and starts the reader
// demultiplexer. ctx governs both the TCP dial and the handshake.
func Dial(ctx context.Context, addr string) (*Conn, error) {
	var d net.Dialer
	nc, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		var dnsErr *net.DNSError
		switch {
		case errors.As(err, &dnsErr):
			return nil, &rerr.DnsResolution{Host: dnsErr.Name, Err: err}
		case ctx.Err() != nil:
			return nil, &rerr.ConnectTimeout{Addr: addr}
		default:
			return nil, &rerr.ConnectFailed{Addr: addr, Err: err}
		}
	}

	type hsResult struct{ err error }
	hsC := make(chan hsResult, 1)
	go func() { hsC <- hsResult{err: handshake(nc)} }()

	select {
	case <-ctx.Done():
		_ = nc.Close()
		<-hsC
		return nil, &rerr.ConnectTimeout{Addr: addr}
	case res := <-hsC:
		if res.err != nil {
			_ = nc.Close()
			return nil, &rerr.ConnectFailed{Addr: addr, Err: res.err}
		}
	}

	c := &Conn{
		nc:       nc,
		addr:     addr,
		registry: pending.NewRegistry(),
		closed:   make(chan struct{}),
		readDone: make(chan struct{}),
	}
	go c.readLoop()
	return c, nil
}

// Addr returns the remote address this connection was dialed to.
func (c *Conn) Addr() string { return c.addr }

// NextToken returns the next token to use for a new query on this
// connection.
func (c *Conn) NextToken() uint64 { return c.tokens.Next() }

// Submit sends query and blocks until its response arrives, ctx is done, or
// the connection closes. On ctx cancellation it races a STOP frame for
// query's token against a response that may already be in flight: if the
// response wins, it is returned instead of ctx.Err().
func (c *Conn) Submit(ctx context.Context, query *proto.Query) (*proto.Response, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultRequestTimeout)
		defer cancel()
	}

	payload, err := proto.EncodeQuery(query)
	if err != nil {
		return nil, fmt.Errorf("conn: encode query: %w", err)
	}

	slot := c.registry.Install(query.Token)

	if err := c.writeFrame(payload); err != nil {
		c.registry.Remove(query.Token)
		return nil, err
	}

	resp, err := slot.Wait(ctx)
	if err == nil {
		return resp, nil
	}
	if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return nil, err
	}

	// ctx expired; try to claim the slot ourselves so we can send STOP. If
	// Cancel loses, a response landed in the same instant and wins instead.
	if !slot.Cancel() {
		return slot.Wait(context.Background())
	}
	c.registry.Remove(query.Token)
	c.sendStop(query.Token)
	return nil, &rerr.RequestTimedOut{Token: query.Token}
}

// SubmitNoReply writes query without registering a response waiter, used
// for STOP frames and noreply-flagged writes.
func (c *Conn) SubmitNoReply(query *proto.Query) error {
	payload, err := proto.EncodeQuery(query)
	if err != nil {
		return fmt.Errorf("conn: encode query: %w", err)
	}
	return c.writeFrame(payload)
}

func (c *Conn) sendStop(tok uint64) {
	_ = c.SubmitNoReply(&proto.Query{Type: proto.QueryStop, Token: tok})
}

func (c *Conn) writeFrame(payload []byte) error {
	select {
	case <-c.closed:
		return &rerr.ConnectionClosed{}
	default:
	}
	c.writeMu.Lock()
	err := wire.WriteFrame(c.nc, payload)
	c.writeMu.Unlock()
	if err != nil {
		return fmt.Errorf("conn: write: %w", err)
	}
	return nil
}

// Close closes the underlying socket and waits for the reader
// demultiplexer to finish tearing down, delivering rerr.ConnectionClosed to
// every still-armed slot.
func (c *Conn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.closed)
		err = c.nc.Close()
		<-c.readDone
	})
	return err
}

// readLoop decodes inbound frames and routes each to its waiting slot until
// the connection fails or is closed, then drains every remaining slot with
// ConnectionClosed.
func (c *Conn) readLoop() {
	defer close(c.readDone)
	var closeErr error
	for {
		payload, err := wire.ReadFrame(c.nc)
		if err != nil {
			closeErr = &rerr.ConnectionClosed{Reason: err}
			break
		}
		resp, err := proto.DecodeResponse(payload)
		if err != nil {
			closeErr = &rerr.ProtocolViolation{Err: err}
			break
		}
		if slot, ok := c.registry.Take(resp.Token); ok {
			slot.Deliver(resp)
		}
		// responses for unknown tokens (already cancelled, or a stray
		// late CONTINUE reply) are discarded.
	}
	c.registry.DrainWithError(closeErr)
}
