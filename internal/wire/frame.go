// Package wire implements the length-prefixed framing that carries encoded
// Query/Response payloads over a connection: a bare 4-byte little-endian
// length prefix followed by that many bytes of payload. Unlike the legacy
// on-wire layout this protocol descends from, the token is not part of the
// frame header — it travels inside the encoded Query/Response payload
// itself (see internal/proto), so framing here knows nothing about
// request/response correlation.
package wire

import (
	"encoding/binary"
	"fmt"
	"io"

	"rethinkgo/internal/proto"
)

const headerSize = 4

// WriteFrame writes payload to w as a length-prefixed frame.
func WriteFrame(w io.Writer, payload []byte) error {
	if len(payload) > int(proto.MaxFrameSize) {
		return fmt.Errorf("wire: frame length %d exceeds max %d", len(payload), proto.MaxFrameSize)
	}
	var hdr [headerSize]byte
	binary.LittleEndian.PutUint32(hdr[:], uint32(len(payload))) //nolint:gosec // G115: payload length is checked against proto.MaxFrameSize above
	if _, err := w.Write(hdr[:]); err != nil {
		return fmt.Errorf("wire: write frame header: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("wire: write frame payload: %w", err)
	}
	return nil
}

// ReadFrame reads one length-prefixed frame from r. A short read on the
// header (including io.EOF with zero bytes read) is surfaced as io.EOF so
// callers can distinguish a clean close from a corrupt frame.
func ReadFrame(r io.Reader) ([]byte, error) {
	var hdr [headerSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		if err == io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("wire: read frame header: %w", io.EOF)
		}
		return nil, err
	}
	length := binary.LittleEndian.Uint32(hdr[:])
	if length > proto.MaxFrameSize {
		return nil, fmt.Errorf("wire: frame length %d exceeds max %d", length, proto.MaxFrameSize)
	}
	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("wire: read frame payload: %w", err)
	}
	return payload, nil
}
