package datum

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"rethinkgo/internal/proto"
)

// ToDatum converts a Go value into its wire Datum representation for
// embedding in a query (e.g. the document passed to Insert or Update).
// time.Time and []byte are encoded as the TIME and BINARY pseudo-types; any
// other struct is round-tripped through encoding/json to reach a plain
// map/slice/scalar shape, keeping the same field-tag conventions document
// literals use elsewhere in the stack.
func ToDatum(v any) (*proto.Datum, error) {
	switch val := v.(type) {
	case nil:
		return proto.NewNull(), nil
	case *proto.Datum:
		return val, nil
	case bool:
		return proto.NewBool(val), nil
	case string:
		return proto.NewStr(val), nil
	case []byte:
		return binaryDatum(val), nil
	case time.Time:
		return timeDatum(val), nil
	case []any:
		return arrayDatum(val)
	case map[string]any:
		return objectDatum(val)
	}
	return toDatumReflect(reflect.ValueOf(v))
}

func toDatumReflect(rv reflect.Value) (*proto.Datum, error) {
	if !rv.IsValid() {
		return proto.NewNull(), nil
	}
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return proto.NewNull(), nil
		}
		return toDatumReflect(rv.Elem())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return proto.NewNum(float64(rv.Int())), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return proto.NewNum(float64(rv.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return proto.NewNum(rv.Float()), nil
	case reflect.Slice, reflect.Array:
		items := make([]*proto.Datum, rv.Len())
		for i := range items {
			d, err := toDatumReflect(rv.Index(i))
			if err != nil {
				return nil, err
			}
			items[i] = d
		}
		return proto.NewArray(items...), nil
	case reflect.Map, reflect.Struct:
		return jsonRoundTripDatum(rv.Interface())
	default:
		return nil, fmt.Errorf("datum: unsupported value type %s", rv.Type())
	}
}

// jsonRoundTripDatum handles maps (with non-string-any key/value types) and
// structs by letting encoding/json apply its struct-tag field mapping, then
// rebuilding a Datum from the resulting generic shape.
func jsonRoundTripDatum(v any) (*proto.Datum, error) {
	buf, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("datum: marshal %T: %w", v, err)
	}
	var generic any
	if err := json.Unmarshal(buf, &generic); err != nil {
		return nil, fmt.Errorf("datum: unmarshal %T: %w", v, err)
	}
	return ToDatum(generic)
}

func arrayDatum(items []any) (*proto.Datum, error) {
	out := make([]*proto.Datum, len(items))
	for i, item := range items {
		d, err := ToDatum(item)
		if err != nil {
			return nil, err
		}
		out[i] = d
	}
	return proto.NewArray(out...), nil
}

func objectDatum(m map[string]any) (*proto.Datum, error) {
	pairs := make([]proto.DatumAssocPair, 0, len(m))
	for k, v := range m {
		d, err := ToDatum(v)
		if err != nil {
			return nil, fmt.Errorf("datum: field %q: %w", k, err)
		}
		pairs = append(pairs, proto.DatumAssocPair{Key: k, Val: d})
	}
	return proto.NewObject(pairs...), nil
}

func binaryDatum(b []byte) *proto.Datum {
	return proto.NewObject(
		proto.DatumAssocPair{Key: reqlTypeKey, Val: proto.NewStr("BINARY")},
		proto.DatumAssocPair{Key: "data", Val: proto.NewStr(base64.StdEncoding.EncodeToString(b))},
	)
}

func timeDatum(t time.Time) *proto.Datum {
	_, offset := t.Zone()
	return proto.NewObject(
		proto.DatumAssocPair{Key: reqlTypeKey, Val: proto.NewStr("TIME")},
		proto.DatumAssocPair{Key: "epoch_time", Val: proto.NewNum(float64(t.UnixNano()) / 1e9)},
		proto.DatumAssocPair{Key: "timezone", Val: proto.NewStr(formatOffset(offset))},
	)
}

func formatOffset(offsetSeconds int) string {
	sign := "+"
	if offsetSeconds < 0 {
		sign = "-"
		offsetSeconds = -offsetSeconds
	}
	hours := offsetSeconds / 3600
	minutes := (offsetSeconds % 3600) / 60
	return fmt.Sprintf("%s%02d:%02d", sign, hours, minutes)
}
