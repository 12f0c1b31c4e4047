// Package rethinkgo is a client library for a RethinkDB-protocol document
// database: it builds query trees with the reql package, submits them over
// a long-lived, token-multiplexed connection, and materializes results as
// single values, write acknowledgements, or streaming cursors.
package rethinkgo

import (
	"context"
	"fmt"

	"rethinkgo/internal/connmgr"
	"rethinkgo/internal/datum"
	"rethinkgo/internal/proto"
	"rethinkgo/reql"
	"rethinkgo/rerr"
)

// Session is a handle to one managed connection to a RethinkDB-protocol
// server, reconnecting to the next candidate endpoint is not attempted:
// once established, a Session's connection is used until Close.
type Session struct {
	mgr    *connmgr.Manager
	config Config
}

// Connect tries each endpoint in order (spec.md's Connect semantics via
// internal/connmgr) and returns a Session wrapping the first one that
// completes the handshake. A 30-second overall deadline applies unless ctx
// already carries a shorter or longer one.
func Connect(ctx context.Context, endpoints []string, opts ...Option) (*Session, error) {
	var cfg Config
	for _, o := range opts {
		o(&cfg)
	}
	mgr := connmgr.New(endpoints)
	if _, err := mgr.Get(ctx); err != nil {
		return nil, err
	}
	return &Session{mgr: mgr, config: cfg}, nil
}

// Close releases the underlying connection. Safe to call more than once.
func (s *Session) Close() error {
	return s.mgr.Close()
}

// globalOptargs builds the per-query global optargs carried on every START
// (the Database Option, when set, becomes the "db" optarg so a term that
// doesn't select its own database falls back to it, matching how the
// server itself resolves an unqualified table reference).
func (s *Session) globalOptargs() ([]proto.TermAssocPair, error) {
	if s.config.Database == "" {
		return nil, nil
	}
	dbTerm, err := reql.DB(s.config.Database).Compile()
	if err != nil {
		return nil, fmt.Errorf("rethinkgo: compile default database optarg: %w", err)
	}
	return []proto.TermAssocPair{{Key: "db", Val: dbTerm}}, nil
}

// ServerInfo queries the server for its identity (response type
// SERVER_INFO), the third response shape beyond the success/error
// taxonomy spec.md describes.
func (s *Session) ServerInfo(ctx context.Context) (map[string]any, error) {
	c, err := s.mgr.Get(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := c.Submit(ctx, &proto.Query{Type: proto.QueryServerInfo, Token: c.NextToken()})
	if err != nil {
		return nil, err
	}
	if resp.Type.IsError() {
		return nil, rerr.FromResponse(resp)
	}
	if resp.Type != proto.ResponseServerInfo {
		return nil, &rerr.UnexpectedResponseShape{Got: resp.Type, Want: "SERVER_INFO"}
	}
	info, err := firstValue(resp)
	if err != nil {
		return nil, err
	}
	m, ok := datum.ToAny(info).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("rethinkgo: server info response was not an object")
	}
	return m, nil
}

// Run submits term and decodes its single resulting value into T. It is
// the right call for any term that resolves to one value: Get, a scalar
// aggregate, Count, and so on. Use RunCursor for terms that resolve to a
// sequence and RunWrite for write terms.
func Run[T any](ctx context.Context, s *Session, term reql.Term) (T, error) {
	var zero T
	c, err := s.mgr.Get(ctx)
	if err != nil {
		return zero, err
	}
	pt, err := term.Compile()
	if err != nil {
		return zero, fmt.Errorf("rethinkgo: compile term: %w", err)
	}
	optargs, err := s.globalOptargs()
	if err != nil {
		return zero, err
	}

	resp, err := c.Submit(ctx, &proto.Query{Type: proto.QueryStart, Token: c.NextToken(), Term: pt, GlobalOptargs: optargs})
	if err != nil {
		return zero, err
	}
	if resp.Type.IsError() {
		return zero, rerr.FromResponse(resp)
	}

	d, err := firstValue(resp)
	if err != nil {
		return zero, err
	}
	var out T
	if err := datum.Decode(d, &out); err != nil {
		return zero, err
	}
	return out, nil
}

// RunWrite submits a write term (Insert, Update, Replace, Delete) and
// decodes its acknowledgement datum into a WriteResult.
func RunWrite(ctx context.Context, s *Session, term reql.Term) (WriteResult, error) {
	return Run[WriteResult](ctx, s, term)
}

// RunCursor compiles term and returns a Cursor over its resulting
// sequence. Per spec.md §4.6, constructing the cursor performs no I/O: the
// START query is not sent until the cursor's first Next call.
func RunCursor[T any](ctx context.Context, s *Session, term reql.Term) (*Cursor[T], error) {
	c, err := s.mgr.Get(ctx)
	if err != nil {
		return nil, err
	}
	pt, err := term.Compile()
	if err != nil {
		return nil, fmt.Errorf("rethinkgo: compile term: %w", err)
	}
	optargs, err := s.globalOptargs()
	if err != nil {
		return nil, err
	}
	return newCursor[T](c, c.NextToken(), pt, optargs), nil
}

// firstValue implements spec.md §4.6's Run primitive shape check: a
// SUCCESS_ATOM or SUCCESS_SEQUENCE response must carry exactly one datum to
// be convertible to a single value; any other count is
// UnexpectedResponseShape, and SUCCESS_PARTIAL (or any other response type
// not handled by the caller) is a ProtocolViolation since Run never drives
// server-side continuation.
func firstValue(resp *proto.Response) (*proto.Datum, error) {
	switch resp.Type {
	case proto.ResponseSuccessAtom, proto.ResponseSuccessSequence, proto.ResponseServerInfo:
		if len(resp.Response) != 1 {
			return nil, &rerr.UnexpectedResponseShape{Got: resp.Type, Want: "exactly one datum"}
		}
		return resp.Response[0], nil
	case proto.ResponseSuccessPartial:
		return nil, &rerr.ProtocolViolation{Err: fmt.Errorf("unexpected SUCCESS_PARTIAL for a single-response query")}
	default:
		return nil, &rerr.ProtocolViolation{Err: fmt.Errorf("unexpected response type %d for a single-response query", resp.Type)}
	}
}
