// Package rerr defines the error taxonomy returned by the client: dial-time
// failures, transport failures, and the server-reported query error
// hierarchy. Each kind is its own type so callers can use errors.As instead
// of string matching, following the teacher's typed-error-per-response-kind
// approach in its response package.
package rerr

import (
	"fmt"
	"strings"

	"rethinkgo/internal/proto"
)

// DnsResolution is returned when an endpoint's host could not be resolved.
type DnsResolution struct {
	Host string
	Err  error
}

func (e *DnsResolution) Error() string {
	return fmt.Sprintf("rethinkgo: resolve %s: %v", e.Host, e.Err)
}
func (e *DnsResolution) Unwrap() error { return e.Err }

// ConnectFailed is returned when a TCP dial to a resolved address failed.
type ConnectFailed struct {
	Addr string
	Err  error
}

func (e *ConnectFailed) Error() string {
	return fmt.Sprintf("rethinkgo: connect %s: %v", e.Addr, e.Err)
}
func (e *ConnectFailed) Unwrap() error { return e.Err }

// ConnectTimeout is returned when dialing or handshaking exceeded the
// caller's deadline.
type ConnectTimeout struct {
	Addr string
}

func (e *ConnectTimeout) Error() string {
	return fmt.Sprintf("rethinkgo: connect %s: timed out", e.Addr)
}

// NoConnectableAddress is returned by Connect when every candidate endpoint
// was tried and none succeeded.
type NoConnectableAddress struct {
	Endpoints []string
	Attempts  []error
}

func (e *NoConnectableAddress) Error() string {
	msgs := make([]string, len(e.Attempts))
	for i, err := range e.Attempts {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("rethinkgo: no connectable address among %v: %s", e.Endpoints, strings.Join(msgs, "; "))
}

// ConnectionClosed is returned from an in-flight request when the
// connection it was issued on closed, or from an operation attempted after
// Close.
type ConnectionClosed struct {
	Reason error
}

func (e *ConnectionClosed) Error() string {
	if e.Reason == nil {
		return "rethinkgo: connection closed"
	}
	return fmt.Sprintf("rethinkgo: connection closed: %v", e.Reason)
}
func (e *ConnectionClosed) Unwrap() error { return e.Reason }

// RequestTimedOut is returned when a request's context deadline expired
// before a response arrived; a STOP has been sent for the query's token.
type RequestTimedOut struct {
	Token uint64
}

func (e *RequestTimedOut) Error() string {
	return fmt.Sprintf("rethinkgo: request (token %d) timed out", e.Token)
}

// UnexpectedResponseShape is returned when a response's declared type is
// incompatible with the operation that issued the request (e.g. a cursor
// response to a write query).
type UnexpectedResponseShape struct {
	Got  proto.ResponseType
	Want string
}

func (e *UnexpectedResponseShape) Error() string {
	return fmt.Sprintf("rethinkgo: unexpected response shape %d, want %s", e.Got, e.Want)
}

// ProtocolViolation is returned when a frame cannot be decoded or otherwise
// fails to satisfy the wire protocol's basic structural assumptions.
type ProtocolViolation struct {
	Err error
}

func (e *ProtocolViolation) Error() string {
	return fmt.Sprintf("rethinkgo: protocol violation: %v", e.Err)
}
func (e *ProtocolViolation) Unwrap() error { return e.Err }

// Backtrace is one frame of a server-reported query error location.
type Backtrace []*proto.Datum

// ClientError is returned for a CLIENT_ERROR server response: the query was
// malformed in a way the client should have caught.
type ClientError struct {
	Msg       string
	Backtrace Backtrace
}

func (e *ClientError) Error() string { return formatMsg(e.Msg, e.Backtrace) }

// CompileError is returned for a COMPILE_ERROR server response.
type CompileError struct {
	Msg       string
	Backtrace Backtrace
}

func (e *CompileError) Error() string { return formatMsg(e.Msg, e.Backtrace) }

// RuntimeError is returned for a RUNTIME_ERROR response with no more
// specific subtype.
type RuntimeError struct {
	Msg       string
	Backtrace Backtrace
}

func (e *RuntimeError) Error() string { return formatMsg(e.Msg, e.Backtrace) }

// NonExistenceError is a RUNTIME_ERROR response with ErrorType
// ErrorNonExistence, e.g. Get on a missing primary key under strict modes.
type NonExistenceError struct {
	Msg       string
	Backtrace Backtrace
}

func (e *NonExistenceError) Error() string { return formatMsg(e.Msg, e.Backtrace) }

// PermissionError is a RUNTIME_ERROR response with ErrorType
// ErrorPermission.
type PermissionError struct {
	Msg       string
	Backtrace Backtrace
}

func (e *PermissionError) Error() string { return formatMsg(e.Msg, e.Backtrace) }

// FromResponse converts a server error Response into the matching typed
// error. Returns nil when resp's type does not indicate an error.
func FromResponse(resp *proto.Response) error {
	if resp == nil || !resp.Type.IsError() {
		return nil
	}
	msg := extractMessage(resp.Response)
	bt := Backtrace(resp.Backtrace)

	switch resp.Type {
	case proto.ResponseClientError:
		return &ClientError{Msg: msg, Backtrace: bt}
	case proto.ResponseCompileError:
		return &CompileError{Msg: msg, Backtrace: bt}
	case proto.ResponseRuntimeError:
		return mapRuntimeError(msg, resp.ErrorType, bt)
	default:
		return fmt.Errorf("rethinkgo: unrecognized error response type %d: %s", resp.Type, msg)
	}
}

func mapRuntimeError(msg string, errType proto.ErrorType, bt Backtrace) error {
	switch errType {
	case proto.ErrorNonExistence:
		return &NonExistenceError{Msg: msg, Backtrace: bt}
	case proto.ErrorPermission:
		return &PermissionError{Msg: msg, Backtrace: bt}
	default:
		return &RuntimeError{Msg: msg, Backtrace: bt}
	}
}

func extractMessage(response []*proto.Datum) string {
	if len(response) == 0 {
		return ""
	}
	if response[0].Type == proto.DatumStr {
		return response[0].RStr
	}
	return fmt.Sprintf("%v", response[0])
}

func formatMsg(msg string, bt Backtrace) string {
	if len(bt) == 0 {
		return msg
	}
	frames := make([]string, len(bt))
	for i, f := range bt {
		frames[i] = fmt.Sprintf("%v", f)
	}
	return fmt.Sprintf("%s\nBacktrace: %s", msg, strings.Join(frames, ", "))
}

