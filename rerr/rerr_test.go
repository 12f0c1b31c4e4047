package rerr

import (
	"errors"
	"testing"

	"rethinkgo/internal/proto"
)

func TestFromResponseClientError(t *testing.T) {
	t.Parallel()
	resp := &proto.Response{
		Type:     proto.ResponseClientError,
		Response: []*proto.Datum{proto.NewStr("bad client request")},
	}
	err := FromResponse(resp)
	var e *ClientError
	if !errors.As(err, &e) {
		t.Fatalf("expected *ClientError, got %T", err)
	}
	if e.Msg != "bad client request" {
		t.Errorf("got %q, want %q", e.Msg, "bad client request")
	}
}

func TestFromResponseCompileError(t *testing.T) {
	t.Parallel()
	resp := &proto.Response{
		Type:     proto.ResponseCompileError,
		Response: []*proto.Datum{proto.NewStr("syntax error")},
	}
	err := FromResponse(resp)
	var e *CompileError
	if !errors.As(err, &e) {
		t.Fatalf("expected *CompileError, got %T", err)
	}
}

func TestFromResponseRuntimeError(t *testing.T) {
	t.Parallel()
	resp := &proto.Response{
		Type:      proto.ResponseRuntimeError,
		ErrorType: proto.ErrorQueryLogic,
		Response:  []*proto.Datum{proto.NewStr("query logic error")},
	}
	err := FromResponse(resp)
	var e *RuntimeError
	if !errors.As(err, &e) {
		t.Fatalf("expected *RuntimeError, got %T", err)
	}
}

func TestFromResponseNonExistenceError(t *testing.T) {
	t.Parallel()
	resp := &proto.Response{
		Type:      proto.ResponseRuntimeError,
		ErrorType: proto.ErrorNonExistence,
		Response:  []*proto.Datum{proto.NewStr("key not found")},
	}
	err := FromResponse(resp)
	var e *NonExistenceError
	if !errors.As(err, &e) {
		t.Fatalf("expected *NonExistenceError, got %T", err)
	}
	if e.Msg != "key not found" {
		t.Errorf("got %q, want %q", e.Msg, "key not found")
	}
}

func TestFromResponsePermissionError(t *testing.T) {
	t.Parallel()
	resp := &proto.Response{
		Type:      proto.ResponseRuntimeError,
		ErrorType: proto.ErrorPermission,
		Response:  []*proto.Datum{proto.NewStr("not authorized")},
	}
	err := FromResponse(resp)
	var e *PermissionError
	if !errors.As(err, &e) {
		t.Fatalf("expected *PermissionError, got %T", err)
	}
}

func TestFromResponseNilForSuccess(t *testing.T) {
	t.Parallel()
	resp := &proto.Response{Type: proto.ResponseSuccessAtom}
	if err := FromResponse(resp); err != nil {
		t.Fatalf("expected nil error for success response, got %v", err)
	}
}

func TestConnectionClosedUnwrap(t *testing.T) {
	t.Parallel()
	inner := errors.New("eof")
	err := &ConnectionClosed{Reason: inner}
	if !errors.Is(err, inner) {
		t.Fatalf("expected ConnectionClosed to unwrap to %v", inner)
	}
}

func TestNoConnectableAddressMessage(t *testing.T) {
	t.Parallel()
	err := &NoConnectableAddress{
		Endpoints: []string{"a:28015", "b:28015"},
		Attempts:  []error{errors.New("refused"), errors.New("timeout")},
	}
	msg := err.Error()
	if msg == "" {
		t.Fatal("expected non-empty message")
	}
}
