package proto

// QueryType identifies the kind of query frame sent to the server.
type QueryType int32

const (
	QueryStart       QueryType = 1
	QueryContinue    QueryType = 2
	QueryStop        QueryType = 3
	QueryNoreplyWait QueryType = 4
	QueryServerInfo  QueryType = 5
)

// Query is the outbound message: a START carries Term and, optionally,
// global optargs; CONTINUE and STOP carry only Type and Token.
type Query struct {
	Type          QueryType
	Token         uint64
	Term          *Term // nil for CONTINUE/STOP
	GlobalOptargs []TermAssocPair
}
