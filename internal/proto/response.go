package proto

// ResponseType identifies the kind of response frame received from the
// server.
type ResponseType int32

const (
	ResponseSuccessAtom     ResponseType = 1
	ResponseSuccessSequence ResponseType = 2
	ResponseSuccessPartial  ResponseType = 3
	ResponseWaitComplete    ResponseType = 4
	ResponseServerInfo      ResponseType = 5
	ResponseClientError     ResponseType = 16
	ResponseCompileError    ResponseType = 17
	ResponseRuntimeError    ResponseType = 18
)

// IsError reports whether the response type represents a server-reported
// error rather than a success shape.
func (r ResponseType) IsError() bool { return r >= 16 }

// ErrorType refines a RUNTIME_ERROR response with the kind of failure.
type ErrorType int32

const (
	ErrorInternal        ErrorType = 1000000
	ErrorResourceLimit   ErrorType = 2000000
	ErrorQueryLogic      ErrorType = 3000000
	ErrorNonExistence    ErrorType = 3100000
	ErrorOpFailed        ErrorType = 4100000
	ErrorOpIndeterminate ErrorType = 4200000
	ErrorUser            ErrorType = 5000000
	ErrorPermission      ErrorType = 6000000
)

// ResponseNote carries metadata about a cursor/changefeed kind in a
// response, used to distinguish an ordinary streaming cursor from an
// infinite changefeed.
type ResponseNote int32

const (
	NoteSequenceFeed     ResponseNote = 1
	NoteAtomFeed         ResponseNote = 2
	NoteOrderByLimitFeed ResponseNote = 3
	NoteUnionedFeed      ResponseNote = 4
	NoteIncludesStates   ResponseNote = 5
)

// Response is the inbound message correlated to a Query by Token.
type Response struct {
	Type      ResponseType
	Token     uint64
	Response  []*Datum
	ErrorType ErrorType // valid only when Type == ResponseRuntimeError
	Backtrace []*Datum
	Notes     []ResponseNote
}

// IsFeed reports whether the response carries a changefeed note, meaning
// the cursor it belongs to never terminates on its own.
func (r *Response) IsFeed() bool {
	for _, n := range r.Notes {
		switch n {
		case NoteSequenceFeed, NoteAtomFeed, NoteOrderByLimitFeed, NoteUnionedFeed:
			return true
		}
	}
	return false
}
