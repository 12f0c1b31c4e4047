package proto

// DatumType identifies which field of a Datum's tagged union is populated.
type DatumType int32

const (
	DatumNull   DatumType = 1
	DatumBool   DatumType = 2
	DatumNum    DatumType = 3
	DatumStr    DatumType = 4
	DatumArray  DatumType = 5
	DatumObject DatumType = 6
)

// DatumAssocPair is one key/value entry of a DatumObject.
type DatumAssocPair struct {
	Key string
	Val *Datum
}

// Datum is the tagged-union value type carried inside Responses and inside
// DATUM terms. Arrays and objects recurse into further Datums.
type Datum struct {
	Type   DatumType
	RBool  bool
	RNum   float64
	RStr   string
	RArray []*Datum
	RObj   []DatumAssocPair
}

// NewNull returns the null Datum.
func NewNull() *Datum { return &Datum{Type: DatumNull} }

// NewBool wraps a bool as a Datum.
func NewBool(b bool) *Datum { return &Datum{Type: DatumBool, RBool: b} }

// NewNum wraps a float64 as a Datum.
func NewNum(n float64) *Datum { return &Datum{Type: DatumNum, RNum: n} }

// NewStr wraps a string as a Datum.
func NewStr(s string) *Datum { return &Datum{Type: DatumStr, RStr: s} }

// NewArray wraps a slice of Datums as an array Datum.
func NewArray(items ...*Datum) *Datum { return &Datum{Type: DatumArray, RArray: items} }

// NewObject wraps key/value pairs as an object Datum.
func NewObject(pairs ...DatumAssocPair) *Datum { return &Datum{Type: DatumObject, RObj: pairs} }

// Field returns the value for key in an object Datum, or nil if absent or
// the Datum is not an object.
func (d *Datum) Field(key string) *Datum {
	if d == nil || d.Type != DatumObject {
		return nil
	}
	for _, p := range d.RObj {
		if p.Key == key {
			return p.Val
		}
	}
	return nil
}
