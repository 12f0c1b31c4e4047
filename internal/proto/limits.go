package proto

// MaxFrameSize bounds the payload length accepted from the wire, guarding
// against a corrupt or hostile length prefix causing an unbounded
// allocation.
const MaxFrameSize uint32 = 64 * 1024 * 1024
