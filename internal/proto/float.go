package proto

import "math"

// encodeFloat64 reinterprets a float64 as the fixed64 wire representation.
func encodeFloat64(f float64) uint64 { return math.Float64bits(f) }

// decodeFloat64 is the inverse of encodeFloat64.
func decodeFloat64(v uint64) float64 { return math.Float64frombits(v) }
