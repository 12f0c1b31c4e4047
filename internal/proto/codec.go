// Package proto defines the wire schema for the query/response protocol
// (Query, Response, Datum, Term) and a codec that encodes/decodes them
// using the real protocol-buffer wire format via
// google.golang.org/protobuf/encoding/protowire. Field numbers below mirror
// the historical ql2 schema this protocol is descended from; there is no
// generated .proto/.pb.go pair because the schema is small and fixed, so it
// is encoded by hand with protowire's low-level Append/Consume helpers
// instead of protoc-gen-go.
package proto

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers, one block per message type.
const (
	fieldDatumType   = 1
	fieldDatumBool   = 2
	fieldDatumNum    = 3
	fieldDatumStr    = 4
	fieldDatumArray  = 5
	fieldDatumObject = 6

	fieldPairKey = 1
	fieldPairVal = 2

	fieldTermType    = 1
	fieldTermDatum   = 2
	fieldTermArgs    = 3
	fieldTermOptargs = 4

	fieldQueryType          = 1
	fieldQueryToken         = 2
	fieldQueryTerm          = 3
	fieldQueryGlobalOptargs = 4

	fieldRespType      = 1
	fieldRespToken     = 2
	fieldRespResponse  = 3
	fieldRespErrorType = 4
	fieldRespBacktrace = 5
	fieldRespNotes     = 6
)

// EncodeDatum appends the wire encoding of d to b and returns the extended
// slice.
func EncodeDatum(b []byte, d *Datum) []byte {
	if d == nil {
		return b
	}
	b = protowire.AppendTag(b, fieldDatumType, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(d.Type))
	switch d.Type {
	case DatumNull:
	case DatumBool:
		b = protowire.AppendTag(b, fieldDatumBool, protowire.VarintType)
		b = protowire.AppendVarint(b, boolVarint(d.RBool))
	case DatumNum:
		b = protowire.AppendTag(b, fieldDatumNum, protowire.Fixed64Type)
		b = protowire.AppendFixed64(b, encodeFloat64(d.RNum))
	case DatumStr:
		b = protowire.AppendTag(b, fieldDatumStr, protowire.BytesType)
		b = protowire.AppendString(b, d.RStr)
	case DatumArray:
		for _, item := range d.RArray {
			b = appendEmbedded(b, fieldDatumArray, EncodeDatum(nil, item))
		}
	case DatumObject:
		for _, pair := range d.RObj {
			b = appendEmbedded(b, fieldDatumObject, encodeDatumPair(pair))
		}
	}
	return b
}

func encodeDatumPair(p DatumAssocPair) []byte {
	var b []byte
	b = protowire.AppendTag(b, fieldPairKey, protowire.BytesType)
	b = protowire.AppendString(b, p.Key)
	b = appendEmbedded(b, fieldPairVal, EncodeDatum(nil, p.Val))
	return b
}

// DecodeDatum decodes a single Datum from data.
func DecodeDatum(data []byte) (*Datum, error) {
	d := &Datum{}
	err := consumeMessage(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case fieldDatumType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return 0, protowire.ParseError(n)
			}
			d.Type = DatumType(v)
			return n, nil
		case fieldDatumBool:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return 0, protowire.ParseError(n)
			}
			d.RBool = v != 0
			return n, nil
		case fieldDatumNum:
			v, n := protowire.ConsumeFixed64(b)
			if n < 0 {
				return 0, protowire.ParseError(n)
			}
			d.RNum = decodeFloat64(v)
			return n, nil
		case fieldDatumStr:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return 0, protowire.ParseError(n)
			}
			d.RStr = v
			return n, nil
		case fieldDatumArray:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return 0, protowire.ParseError(n)
			}
			item, err := DecodeDatum(v)
			if err != nil {
				return 0, fmt.Errorf("datum array element: %w", err)
			}
			d.RArray = append(d.RArray, item)
			return n, nil
		case fieldDatumObject:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return 0, protowire.ParseError(n)
			}
			pair, err := decodeDatumPair(v)
			if err != nil {
				return 0, fmt.Errorf("datum object entry: %w", err)
			}
			d.RObj = append(d.RObj, pair)
			return n, nil
		default:
			return skipField(num, typ, b)
		}
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

func decodeDatumPair(data []byte) (DatumAssocPair, error) {
	var p DatumAssocPair
	err := consumeMessage(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case fieldPairKey:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return 0, protowire.ParseError(n)
			}
			p.Key = v
			return n, nil
		case fieldPairVal:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return 0, protowire.ParseError(n)
			}
			val, err := DecodeDatum(v)
			if err != nil {
				return 0, err
			}
			p.Val = val
			return n, nil
		default:
			return skipField(num, typ, b)
		}
	})
	return p, err
}

// EncodeTerm appends the wire encoding of t to b.
func EncodeTerm(b []byte, t *Term) []byte {
	if t == nil {
		return b
	}
	b = protowire.AppendTag(b, fieldTermType, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(t.Type))
	if t.Datum != nil {
		b = appendEmbedded(b, fieldTermDatum, EncodeDatum(nil, t.Datum))
	}
	for _, a := range t.Args {
		b = appendEmbedded(b, fieldTermArgs, EncodeTerm(nil, a))
	}
	for _, o := range t.Optargs {
		b = appendEmbedded(b, fieldTermOptargs, encodeTermPair(o))
	}
	return b
}

func encodeTermPair(p TermAssocPair) []byte {
	var b []byte
	b = protowire.AppendTag(b, fieldPairKey, protowire.BytesType)
	b = protowire.AppendString(b, p.Key)
	b = appendEmbedded(b, fieldPairVal, EncodeTerm(nil, p.Val))
	return b
}

// DecodeTerm decodes a single Term from data.
func DecodeTerm(data []byte) (*Term, error) {
	t := &Term{}
	err := consumeMessage(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case fieldTermType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return 0, protowire.ParseError(n)
			}
			t.Type = TermType(v)
			return n, nil
		case fieldTermDatum:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return 0, protowire.ParseError(n)
			}
			d, err := DecodeDatum(v)
			if err != nil {
				return 0, err
			}
			t.Datum = d
			return n, nil
		case fieldTermArgs:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return 0, protowire.ParseError(n)
			}
			arg, err := DecodeTerm(v)
			if err != nil {
				return 0, fmt.Errorf("term arg: %w", err)
			}
			t.Args = append(t.Args, arg)
			return n, nil
		case fieldTermOptargs:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return 0, protowire.ParseError(n)
			}
			pair, err := decodeTermPair(v)
			if err != nil {
				return 0, fmt.Errorf("term optarg: %w", err)
			}
			t.Optargs = append(t.Optargs, pair)
			return n, nil
		default:
			return skipField(num, typ, b)
		}
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func decodeTermPair(data []byte) (TermAssocPair, error) {
	var p TermAssocPair
	err := consumeMessage(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case fieldPairKey:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return 0, protowire.ParseError(n)
			}
			p.Key = v
			return n, nil
		case fieldPairVal:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return 0, protowire.ParseError(n)
			}
			val, err := DecodeTerm(v)
			if err != nil {
				return 0, err
			}
			p.Val = val
			return n, nil
		default:
			return skipField(num, typ, b)
		}
	})
	return p, err
}

// EncodeQuery serializes a Query to its wire payload. This is the "Wire
// Codec (external)" serialize function named in spec.md §1.
func EncodeQuery(q *Query) ([]byte, error) {
	if q == nil {
		return nil, fmt.Errorf("proto: nil query")
	}
	var b []byte
	b = protowire.AppendTag(b, fieldQueryType, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(q.Type))
	b = protowire.AppendTag(b, fieldQueryToken, protowire.VarintType)
	b = protowire.AppendVarint(b, q.Token)
	if q.Term != nil {
		b = appendEmbedded(b, fieldQueryTerm, EncodeTerm(nil, q.Term))
	}
	for _, o := range q.GlobalOptargs {
		b = appendEmbedded(b, fieldQueryGlobalOptargs, encodeTermPair(o))
	}
	return b, nil
}

// DecodeQuery deserializes a wire payload into a Query.
func DecodeQuery(data []byte) (*Query, error) {
	q := &Query{}
	err := consumeMessage(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case fieldQueryType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return 0, protowire.ParseError(n)
			}
			q.Type = QueryType(v)
			return n, nil
		case fieldQueryToken:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return 0, protowire.ParseError(n)
			}
			q.Token = v
			return n, nil
		case fieldQueryTerm:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return 0, protowire.ParseError(n)
			}
			term, err := DecodeTerm(v)
			if err != nil {
				return 0, err
			}
			q.Term = term
			return n, nil
		case fieldQueryGlobalOptargs:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return 0, protowire.ParseError(n)
			}
			pair, err := decodeTermPair(v)
			if err != nil {
				return 0, err
			}
			q.GlobalOptargs = append(q.GlobalOptargs, pair)
			return n, nil
		default:
			return skipField(num, typ, b)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("proto: decode query: %w", err)
	}
	return q, nil
}

// EncodeResponse serializes a Response to its wire payload.
func EncodeResponse(r *Response) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("proto: nil response")
	}
	var b []byte
	b = protowire.AppendTag(b, fieldRespType, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(r.Type))
	b = protowire.AppendTag(b, fieldRespToken, protowire.VarintType)
	b = protowire.AppendVarint(b, r.Token)
	for _, d := range r.Response {
		b = appendEmbedded(b, fieldRespResponse, EncodeDatum(nil, d))
	}
	if r.ErrorType != 0 {
		b = protowire.AppendTag(b, fieldRespErrorType, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(r.ErrorType))
	}
	for _, d := range r.Backtrace {
		b = appendEmbedded(b, fieldRespBacktrace, EncodeDatum(nil, d))
	}
	for _, note := range r.Notes {
		b = protowire.AppendTag(b, fieldRespNotes, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(note))
	}
	return b, nil
}

// DecodeResponse deserializes a wire payload into a Response. This is the
// "Wire Codec (external)" deserialize function named in spec.md §1.
func DecodeResponse(data []byte) (*Response, error) {
	r := &Response{}
	err := consumeMessage(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case fieldRespType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return 0, protowire.ParseError(n)
			}
			r.Type = ResponseType(v)
			return n, nil
		case fieldRespToken:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return 0, protowire.ParseError(n)
			}
			r.Token = v
			return n, nil
		case fieldRespResponse:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return 0, protowire.ParseError(n)
			}
			d, err := DecodeDatum(v)
			if err != nil {
				return 0, fmt.Errorf("response datum: %w", err)
			}
			r.Response = append(r.Response, d)
			return n, nil
		case fieldRespErrorType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return 0, protowire.ParseError(n)
			}
			r.ErrorType = ErrorType(v)
			return n, nil
		case fieldRespBacktrace:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return 0, protowire.ParseError(n)
			}
			d, err := DecodeDatum(v)
			if err != nil {
				return 0, fmt.Errorf("response backtrace frame: %w", err)
			}
			r.Backtrace = append(r.Backtrace, d)
			return n, nil
		case fieldRespNotes:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return 0, protowire.ParseError(n)
			}
			r.Notes = append(r.Notes, ResponseNote(v))
			return n, nil
		default:
			return skipField(num, typ, b)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("proto: decode response: %w", err)
	}
	return r, nil
}

// appendEmbedded writes num as a length-delimited field carrying payload.
func appendEmbedded(b []byte, num protowire.Number, payload []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, payload)
}

// consumeMessage walks data field by field, dispatching each to handle.
// handle must return the number of bytes consumed for that field's value
// (not including the tag).
func consumeMessage(data []byte, handle func(num protowire.Number, typ protowire.Type, b []byte) (int, error)) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return protowire.ParseError(n)
		}
		data = data[n:]
		m, err := handle(num, typ, data)
		if err != nil {
			return err
		}
		if m < 0 || m > len(data) {
			return fmt.Errorf("proto: field %d: invalid consumed length", num)
		}
		data = data[m:]
	}
	return nil
}

// skipField consumes and discards a field whose number this codec does not
// recognize, preserving forward-compatibility with additional fields on the
// wire.
func skipField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	n := protowire.ConsumeFieldValue(num, typ, b)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	return n, nil
}

func boolVarint(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
