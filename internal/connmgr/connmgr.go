// Package connmgr manages the lazily-created connection backing a Session,
// trying a list of candidate endpoints in order under a single deadline.
package connmgr

import (
	"context"
	"fmt"
	"sync"
	"time"

	"rethinkgo/internal/conn"
	"rethinkgo/rerr"
)

// DefaultConnectTimeout bounds how long Connect spends trying every
// candidate endpoint when the caller's context carries no deadline.
const DefaultConnectTimeout = 30 * time.Second

// DialFunc dials a single endpoint. Exposed for tests to substitute a fake
// transport without touching the network.
type DialFunc func(ctx context.Context, addr string) (*conn.Conn, error)

// Manager holds the single connection backing a Session, dialing it lazily
// on first use and trying each configured endpoint in turn.
type Manager struct {
	endpoints []string
	dial      DialFunc

	mu sync.Mutex
	c  *conn.Conn
}

// New returns a Manager that will try endpoints in order, using conn.Dial.
func New(endpoints []string) *Manager {
	return &Manager{endpoints: endpoints, dial: conn.Dial}
}

// NewWithDialer is New but with a substitutable DialFunc, for tests.
func NewWithDialer(endpoints []string, dial DialFunc) *Manager {
	return &Manager{endpoints: endpoints, dial: dial}
}

// Get returns the current connection, dialing one lazily on first call. If
// ctx has no deadline, one is imposed at DefaultConnectTimeout so a fully
// unreachable cluster doesn't block Connect forever.
func (m *Manager) Get(ctx context.Context) (*conn.Conn, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.c != nil {
		return m.c, nil
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultConnectTimeout)
		defer cancel()
	}

	c, err := m.dialFirstAvailable(ctx)
	if err != nil {
		return nil, err
	}
	m.c = c
	return m.c, nil
}

func (m *Manager) dialFirstAvailable(ctx context.Context) (*conn.Conn, error) {
	if len(m.endpoints) == 0 {
		return nil, fmt.Errorf("connmgr: no endpoints configured")
	}
	attempts := make([]error, 0, len(m.endpoints))
	for _, ep := range m.endpoints {
		c, err := m.dial(ctx, ep)
		if err == nil {
			return c, nil
		}
		attempts = append(attempts, err)
		if ctx.Err() != nil {
			break
		}
	}
	return nil, &rerr.NoConnectableAddress{Endpoints: m.endpoints, Attempts: attempts}
}

// Close closes the managed connection if one exists.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.c == nil {
		return nil
	}
	err := m.c.Close()
	m.c = nil
	return err
}
