package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"rethinkgo/internal/proto"
)

// slowReader returns one byte at a time to simulate a slow network connection.
type slowReader struct {
	data []byte
	pos  int
}

func (r *slowReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	if len(p) == 0 {
		return 0, nil
	}
	p[0] = r.data[r.pos]
	r.pos++
	return 1, nil
}

func TestReadFrame(t *testing.T) {
	t.Parallel()

	payload := []byte(`{"token":42}`)
	var buf bytes.Buffer
	if err := WriteFrame(&buf, payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	frame := buf.Bytes()

	t.Run("basic read from bytes.Reader", func(t *testing.T) {
		t.Parallel()
		got, err := ReadFrame(bytes.NewReader(frame))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !bytes.Equal(got, payload) {
			t.Errorf("payload=%q, want %q", got, payload)
		}
	})

	t.Run("partial data slow reader", func(t *testing.T) {
		t.Parallel()
		got, err := ReadFrame(&slowReader{data: frame})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !bytes.Equal(got, payload) {
			t.Errorf("payload=%q, want %q", got, payload)
		}
	})

	t.Run("EOF mid-header", func(t *testing.T) {
		t.Parallel()
		_, err := ReadFrame(bytes.NewReader(frame[:2]))
		if err == nil {
			t.Fatal("expected error for truncated header, got nil")
		}
	})

	t.Run("clean close before any bytes", func(t *testing.T) {
		t.Parallel()
		_, err := ReadFrame(bytes.NewReader(nil))
		if !errors.Is(err, io.EOF) {
			t.Errorf("error = %v, want io.EOF", err)
		}
	})
}

func TestReadFrameOversizedPayload(t *testing.T) {
	t.Parallel()
	var hdr [4]byte
	binary.LittleEndian.PutUint32(hdr[:], proto.MaxFrameSize+1)
	_, err := ReadFrame(bytes.NewReader(hdr[:]))
	if err == nil {
		t.Fatal("expected error for oversized payload, got nil")
	}
}

// errWriter always returns an error on Write.
type errWriter struct{ err error }

func (w *errWriter) Write([]byte) (int, error) { return 0, w.err }

func TestWriteFrame(t *testing.T) {
	t.Parallel()

	payload := []byte(`{"token":7}`)

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		if err := WriteFrame(&buf, payload); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var hdr [4]byte
		binary.LittleEndian.PutUint32(hdr[:], uint32(len(payload)))
		want := append(append([]byte{}, hdr[:]...), payload...)
		if !bytes.Equal(buf.Bytes(), want) {
			t.Errorf("got %x, want %x", buf.Bytes(), want)
		}
	})

	t.Run("write error propagated", func(t *testing.T) {
		t.Parallel()
		writeErr := io.ErrClosedPipe
		err := WriteFrame(&errWriter{err: writeErr}, payload)
		if !errors.Is(err, writeErr) {
			t.Errorf("error = %v, want wrapping %v", err, writeErr)
		}
	})
}
