// Package datum converts between the wire Datum tagged union
// (internal/proto) and native Go values, handling the two pseudo-types the
// server embeds in otherwise-plain objects: TIME and BINARY.
package datum

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"rethinkgo/internal/proto"
)

const reqlTypeKey = "$reql_type$"

// ToAny converts a Datum into a plain Go value: nil, bool, float64, string,
// []any, map[string]any, or — after pseudo-type conversion — time.Time and
// []byte.
func ToAny(d *proto.Datum) any {
	if d == nil {
		return nil
	}
	switch d.Type {
	case proto.DatumNull:
		return nil
	case proto.DatumBool:
		return d.RBool
	case proto.DatumNum:
		return d.RNum
	case proto.DatumStr:
		return d.RStr
	case proto.DatumArray:
		out := make([]any, len(d.RArray))
		for i, item := range d.RArray {
			out[i] = ToAny(item)
		}
		return out
	case proto.DatumObject:
		m := make(map[string]any, len(d.RObj))
		for _, p := range d.RObj {
			m[p.Key] = ToAny(p.Val)
		}
		return convertPseudoType(m)
	default:
		return nil
	}
}

// convertPseudoType recognizes a $reql_type$ marker and converts the object
// to its native representation; objects without the marker pass through.
func convertPseudoType(m map[string]any) any {
	rt, ok := m[reqlTypeKey]
	if !ok {
		return m
	}
	switch rt {
	case "TIME":
		return convertTime(m)
	case "BINARY":
		return convertBinary(m)
	default:
		// GEOMETRY and any future pseudo-type: pass through as-is.
		return m
	}
}

func convertTime(m map[string]any) any {
	epoch, ok := m["epoch_time"].(float64)
	if !ok {
		return m
	}
	tz, _ := m["timezone"].(string)
	loc, err := parseTimezone(tz)
	if err != nil {
		loc = time.UTC
	}
	sec := int64(epoch)
	nsec := int64((epoch - float64(sec)) * 1e9)
	return time.Unix(sec, nsec).In(loc)
}

func parseTimezone(tz string) (*time.Location, error) {
	if tz == "" || tz == "+00:00" || tz == "-00:00" || tz == "Z" {
		return time.UTC, nil
	}
	if len(tz) != 6 {
		return nil, fmt.Errorf("datum: invalid timezone %q", tz)
	}
	sign := 1
	switch tz[0] {
	case '-':
		sign = -1
	case '+':
	default:
		return nil, fmt.Errorf("datum: invalid timezone %q", tz)
	}
	var hours, minutes int
	if _, err := fmt.Sscanf(tz[1:], "%d:%d", &hours, &minutes); err != nil {
		return nil, fmt.Errorf("datum: invalid timezone %q", tz)
	}
	offset := sign * (hours*3600 + minutes*60)
	return time.FixedZone(tz, offset), nil
}

func convertBinary(m map[string]any) any {
	data, ok := m["data"].(string)
	if !ok {
		return m
	}
	b, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return m
	}
	return b
}

// Decode converts d into target, which must be a non-nil pointer. Decoding
// goes through a JSON round trip of the pseudo-type-converted value, which
// is lossless for the shapes a query result can take (numbers, strings,
// bools, nested arrays/objects, time.Time, []byte) and keeps struct-tag
// field mapping behavior identical to the rest of the ecosystem's JSON
// idiom rather than introducing a second, bespoke mapping convention.
func Decode(d *proto.Datum, target any) error {
	buf, err := json.Marshal(ToAny(d))
	if err != nil {
		return fmt.Errorf("datum: marshal intermediate value: %w", err)
	}
	if err := json.Unmarshal(buf, target); err != nil {
		return fmt.Errorf("datum: unmarshal into %T: %w", target, err)
	}
	return nil
}
