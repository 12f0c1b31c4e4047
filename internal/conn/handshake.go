package conn

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"

	"rethinkgo/internal/proto"
)

// handshakeResponse is the null-terminated JSON message the server sends
// back after the client's magic number, confirming the connection is ready
// to accept queries. Authentication negotiation (SCRAM and friends) is out
// of scope; see DESIGN.md.
type handshakeResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// handshake performs the minimal V0.1 exchange: send the magic number, then
// read and validate the server's success acknowledgement.
func handshake(rw io.ReadWriter) error {
	var magic [4]byte
	binary.LittleEndian.PutUint32(magic[:], uint32(proto.VersionV01))
	if _, err := rw.Write(magic[:]); err != nil {
		return fmt.Errorf("conn: handshake: write magic: %w", err)
	}

	line, err := readNullTerminated(rw)
	if err != nil {
		return fmt.Errorf("conn: handshake: read ack: %w", err)
	}

	var resp handshakeResponse
	if err := json.Unmarshal(line, &resp); err != nil {
		return fmt.Errorf("conn: handshake: parse ack: %w", err)
	}
	if !resp.Success {
		if resp.Error != "" {
			return fmt.Errorf("conn: handshake: server rejected connection: %s", resp.Error)
		}
		return fmt.Errorf("conn: handshake: server rejected connection")
	}
	return nil
}

// readNullTerminated reads from rw one byte at a time until a NUL
// terminator, returning the bytes before it. A byte-at-a-time read (instead
// of a buffered reader) is deliberate: a bufio.Reader could pull bytes
// belonging to the first query frame into its internal buffer, which would
// then be invisible to the length-prefixed frame reader that takes over the
// connection immediately after the handshake completes.
func readNullTerminated(r io.Reader) ([]byte, error) {
	var out []byte
	var b [1]byte
	for {
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return nil, err
		}
		if b[0] == 0x00 {
			return out, nil
		}
		out = append(out, b[0])
	}
}
