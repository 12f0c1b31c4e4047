package proto

import (
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

func TestDatumRoundTrip(t *testing.T) {
	cases := []*Datum{
		NewNull(),
		NewBool(true),
		NewBool(false),
		NewNum(3.5),
		NewNum(-42),
		NewStr("hello"),
		NewArray(NewNum(1), NewStr("two"), NewBool(true)),
		NewObject(
			DatumAssocPair{Key: "a", Val: NewNum(1)},
			DatumAssocPair{Key: "b", Val: NewArray(NewNull(), NewStr("x"))},
		),
	}

	for _, d := range cases {
		encoded := EncodeDatum(nil, d)
		decoded, err := DecodeDatum(encoded)
		require.NoError(t, err)
		require.Equal(t, d, decoded)
	}
}

func TestTermRoundTrip(t *testing.T) {
	term := &Term{
		Type: TermFilter,
		Args: []*Term{
			{Type: TermTable, Args: []*Term{{Type: TermDatum, Datum: NewStr("users")}}},
			{Type: TermFunc, Args: []*Term{
				{Type: TermMakeArray, Args: []*Term{{Type: TermDatum, Datum: NewNum(1)}}},
				{Type: TermEq},
			}},
		},
		Optargs: []TermAssocPair{
			{Key: "default", Val: &Term{Type: TermDatum, Datum: NewBool(false)}},
		},
	}

	encoded := EncodeTerm(nil, term)
	decoded, err := DecodeTerm(encoded)
	require.NoError(t, err)
	require.Equal(t, term, decoded)
}

func TestQueryRoundTrip(t *testing.T) {
	q := &Query{
		Type:  QueryStart,
		Token: 7,
		Term: &Term{
			Type: TermGet,
			Args: []*Term{
				{Type: TermTable, Args: []*Term{{Type: TermDatum, Datum: NewStr("users")}}},
				{Type: TermDatum, Datum: NewStr("u1")},
			},
		},
		GlobalOptargs: []TermAssocPair{
			{Key: "db", Val: &Term{Type: TermDatum, Datum: NewStr("test")}},
		},
	}

	encoded, err := EncodeQuery(q)
	require.NoError(t, err)

	decoded, err := DecodeQuery(encoded)
	require.NoError(t, err)
	require.Equal(t, q, decoded)
}

func TestQueryContinueHasNoTerm(t *testing.T) {
	q := &Query{Type: QueryContinue, Token: 12}

	encoded, err := EncodeQuery(q)
	require.NoError(t, err)

	decoded, err := DecodeQuery(encoded)
	require.NoError(t, err)
	require.Equal(t, q, decoded)
	require.Nil(t, decoded.Term)
}

func TestResponseRoundTrip(t *testing.T) {
	r := &Response{
		Type:  ResponseSuccessPartial,
		Token: 99,
		Response: []*Datum{
			NewObject(DatumAssocPair{Key: "id", Val: NewStr("u1")}),
			NewObject(DatumAssocPair{Key: "id", Val: NewStr("u2")}),
		},
		Notes: []ResponseNote{NoteSequenceFeed},
	}

	encoded, err := EncodeResponse(r)
	require.NoError(t, err)

	decoded, err := DecodeResponse(encoded)
	require.NoError(t, err)
	require.Equal(t, r, decoded)
	require.True(t, decoded.IsFeed())
}

func TestResponseErrorRoundTrip(t *testing.T) {
	r := &Response{
		Type:      ResponseRuntimeError,
		Token:     1,
		ErrorType: ErrorNonExistence,
		Response:  []*Datum{NewStr("no such row")},
		Backtrace: []*Datum{NewNum(0), NewNum(1)},
	}

	encoded, err := EncodeResponse(r)
	require.NoError(t, err)

	decoded, err := DecodeResponse(encoded)
	require.NoError(t, err)
	require.Equal(t, r, decoded)
	require.True(t, decoded.Type.IsError())
}

func TestDecodeResponseRejectsTruncatedFrame(t *testing.T) {
	_, err := DecodeResponse([]byte{0x08})
	require.Error(t, err)
}

func TestDecodeIgnoresUnknownFields(t *testing.T) {
	r := &Response{Type: ResponseSuccessAtom, Token: 5}
	encoded, err := EncodeResponse(r)
	require.NoError(t, err)

	// Append an unknown varint field (field number 99) that a future server
	// revision might add; the decoder must skip it rather than fail.
	encoded = protowire.AppendTag(encoded, 99, protowire.VarintType)
	encoded = protowire.AppendVarint(encoded, 1)

	decoded, err := DecodeResponse(encoded)
	require.NoError(t, err)
	require.Equal(t, r.Type, decoded.Type)
	require.Equal(t, r.Token, decoded.Token)
}
