package rethinkgo

import (
	"encoding/binary"
	"io"
	"net"
	"testing"

	"rethinkgo/internal/proto"
	"rethinkgo/internal/wire"
)

// startFakeServer starts a loopback TCP listener that performs the minimal
// handshake and then hands the accepted connection to handle, acting as
// the scriptable in-memory transport spec.md's testable properties call
// for — grounded in internal/connmgr's startTestServer helper.
func startFakeServer(t *testing.T, handle func(nc net.Conn)) (addr string, stop func()) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	go func() {
		nc, err := ln.Accept()
		if err != nil {
			return
		}
		defer func() { _ = nc.Close() }()
		var magic [4]byte
		if _, err := io.ReadFull(nc, magic[:]); err != nil {
			return
		}
		if binary.LittleEndian.Uint32(magic[:]) != uint32(proto.VersionV01) {
			return
		}
		if _, err := nc.Write([]byte(`{"success":true}` + "\x00")); err != nil {
			return
		}
		handle(nc)
	}()
	return ln.Addr().String(), func() { _ = ln.Close() }
}

func readQuery(t *testing.T, nc net.Conn) *proto.Query {
	t.Helper()
	payload, err := wire.ReadFrame(nc)
	if err != nil {
		t.Errorf("server: read frame: %v", err)
		return nil
	}
	q, err := proto.DecodeQuery(payload)
	if err != nil {
		t.Errorf("server: decode query: %v", err)
		return nil
	}
	return q
}

func writeResponse(t *testing.T, nc net.Conn, resp *proto.Response) {
	t.Helper()
	payload, err := proto.EncodeResponse(resp)
	if err != nil {
		t.Errorf("server: encode response: %v", err)
		return
	}
	if err := wire.WriteFrame(nc, payload); err != nil {
		t.Errorf("server: write frame: %v", err)
	}
}
