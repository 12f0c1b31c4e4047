package proto

// Version identifies the wire handshake protocol version. Sent as a 4-byte
// little-endian magic number immediately after TCP connect, with no length
// prefix.
type Version uint32

// VersionV01 is the minimal handshake sentinel: a bare magic number with no
// subsequent auth-key or protocol-type negotiation. Newer handshake
// revisions (SCRAM, protocol selection) are intentionally out of scope; see
// DESIGN.md.
const VersionV01 Version = 0x3f61ba36
