package datum

import (
	"testing"
	"time"

	"rethinkgo/internal/proto"
)

func TestToAnyTime(t *testing.T) {
	t.Parallel()
	d := proto.NewObject(
		proto.DatumAssocPair{Key: "$reql_type$", Val: proto.NewStr("TIME")},
		proto.DatumAssocPair{Key: "epoch_time", Val: proto.NewNum(1376436985)},
		proto.DatumAssocPair{Key: "timezone", Val: proto.NewStr("+00:00")},
	)
	got := ToAny(d)
	ts, ok := got.(time.Time)
	if !ok {
		t.Fatalf("expected time.Time, got %T", got)
	}
	if ts.Unix() != 1376436985 {
		t.Errorf("got unix %d, want 1376436985", ts.Unix())
	}
	if ts.Location() != time.UTC {
		t.Errorf("expected UTC location, got %v", ts.Location())
	}
}

func TestToAnyTimeWithOffset(t *testing.T) {
	t.Parallel()
	d := proto.NewObject(
		proto.DatumAssocPair{Key: "$reql_type$", Val: proto.NewStr("TIME")},
		proto.DatumAssocPair{Key: "epoch_time", Val: proto.NewNum(1376436985.298)},
		proto.DatumAssocPair{Key: "timezone", Val: proto.NewStr("+05:30")},
	)
	got := ToAny(d)
	ts, ok := got.(time.Time)
	if !ok {
		t.Fatalf("expected time.Time, got %T", got)
	}
	if ts.Unix() != 1376436985 {
		t.Errorf("got unix %d, want 1376436985", ts.Unix())
	}
	_, offset := ts.Zone()
	if offset != 5*3600+30*60 {
		t.Errorf("got offset %d, want %d", offset, 5*3600+30*60)
	}
}

func TestToAnyBinary(t *testing.T) {
	t.Parallel()
	d := proto.NewObject(
		proto.DatumAssocPair{Key: "$reql_type$", Val: proto.NewStr("BINARY")},
		proto.DatumAssocPair{Key: "data", Val: proto.NewStr("aGVsbG8=")},
	)
	got := ToAny(d)
	b, ok := got.([]byte)
	if !ok {
		t.Fatalf("expected []byte, got %T", got)
	}
	if string(b) != "hello" {
		t.Errorf("got %q, want %q", string(b), "hello")
	}
}

func TestToAnyNestedPseudoType(t *testing.T) {
	t.Parallel()
	d := proto.NewObject(
		proto.DatumAssocPair{Key: "name", Val: proto.NewStr("doc")},
		proto.DatumAssocPair{Key: "created", Val: proto.NewObject(
			proto.DatumAssocPair{Key: "$reql_type$", Val: proto.NewStr("TIME")},
			proto.DatumAssocPair{Key: "epoch_time", Val: proto.NewNum(0)},
			proto.DatumAssocPair{Key: "timezone", Val: proto.NewStr("+00:00")},
		)},
	)
	got, ok := ToAny(d).(map[string]any)
	if !ok {
		t.Fatalf("expected map[string]any, got %T", ToAny(d))
	}
	if _, ok := got["created"].(time.Time); !ok {
		t.Errorf("expected nested created field to be time.Time, got %T", got["created"])
	}
}

func TestToAnyPassesThroughUnknownPseudoType(t *testing.T) {
	t.Parallel()
	d := proto.NewObject(
		proto.DatumAssocPair{Key: "$reql_type$", Val: proto.NewStr("GEOMETRY")},
		proto.DatumAssocPair{Key: "type", Val: proto.NewStr("Point")},
	)
	got, ok := ToAny(d).(map[string]any)
	if !ok {
		t.Fatalf("expected map[string]any pass-through, got %T", ToAny(d))
	}
	if got["type"] != "Point" {
		t.Errorf("got %v", got)
	}
}

func TestDecodeIntoStruct(t *testing.T) {
	t.Parallel()
	type user struct {
		Name string  `json:"name"`
		Age  float64 `json:"age"`
	}
	d := proto.NewObject(
		proto.DatumAssocPair{Key: "name", Val: proto.NewStr("ada")},
		proto.DatumAssocPair{Key: "age", Val: proto.NewNum(36)},
	)
	var u user
	if err := Decode(d, &u); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if u.Name != "ada" || u.Age != 36 {
		t.Errorf("got %+v", u)
	}
}

func TestToDatumRoundTripsThroughToAny(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	input := map[string]any{
		"name":    "ada",
		"age":     float64(36),
		"active":  true,
		"tags":    []any{"a", "b"},
		"created": now,
		"avatar":  []byte("hi"),
	}

	d, err := ToDatum(input)
	if err != nil {
		t.Fatalf("ToDatum: %v", err)
	}
	got, ok := ToAny(d).(map[string]any)
	if !ok {
		t.Fatalf("expected map[string]any, got %T", ToAny(d))
	}
	if got["name"] != "ada" || got["age"] != float64(36) || got["active"] != true {
		t.Errorf("got %+v", got)
	}
	ts, ok := got["created"].(time.Time)
	if !ok || !ts.Equal(now) {
		t.Errorf("created = %v, want %v", got["created"], now)
	}
	bin, ok := got["avatar"].([]byte)
	if !ok || string(bin) != "hi" {
		t.Errorf("avatar = %v, want []byte(\"hi\")", got["avatar"])
	}
}

func TestToDatumStructUsesJSONTags(t *testing.T) {
	t.Parallel()
	type doc struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	d, err := ToDatum(doc{ID: "u1", Name: "ada"})
	if err != nil {
		t.Fatalf("ToDatum: %v", err)
	}
	if d.Field("id").RStr != "u1" || d.Field("name").RStr != "ada" {
		t.Errorf("got %+v", d)
	}
}
