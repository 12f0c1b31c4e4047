// Package token allocates the monotonically increasing tokens used to
// correlate a Query with its eventual Response(s).
package token

import "sync/atomic"

// Allocator hands out strictly increasing, non-zero tokens. The zero value
// is ready to use and its first Next() returns 2, leaving token 1 reserved
// the way the handshake reserves low-numbered identifiers elsewhere in the
// protocol.
type Allocator struct {
	counter atomic.Uint64
}

// Next returns the next token. Safe for concurrent use.
func (a *Allocator) Next() uint64 {
	return a.counter.Add(1) + 1
}
