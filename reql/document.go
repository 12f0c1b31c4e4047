package reql

import (
	"errors"

	"rethinkgo/internal/proto"
)

// Get creates a GET term, fetching the document with the given primary key
// or nil if none exists.
func (t Term) Get(key interface{}) Term {
	return Term{termType: proto.TermGet, args: []Term{t, toTerm(key)}}
}

// GetAll creates a GET_ALL term, fetching every document matching any of
// keys on the primary key or, with opts' "index", a secondary index.
func (t Term) GetAll(keys ...interface{}) Term {
	var opts OptArgs
	if n := len(keys); n > 0 {
		if o, ok := keys[n-1].(OptArgs); ok {
			opts = o
			keys = keys[:n-1]
		}
	}
	args := make([]Term, 1, 1+len(keys))
	args[0] = t
	for _, k := range keys {
		args = append(args, toTerm(k))
	}
	return Term{termType: proto.TermGetAll, args: args, opts: opts}
}

// Between creates a BETWEEN term, selecting all documents whose primary
// key (or opts' "index") falls in [lower, upper).
func (t Term) Between(lower, upper interface{}, opts ...OptArgs) Term {
	term := Term{termType: proto.TermBetween, args: []Term{t, toTerm(lower), toTerm(upper)}}
	if len(opts) > 0 {
		term.opts = opts[0]
	}
	return term
}

// Insert creates an INSERT term.
func (t Term) Insert(doc interface{}, opts ...OptArgs) Term {
	term := Term{termType: proto.TermInsert, args: []Term{t, toTerm(doc)}}
	if len(opts) > 0 {
		term.opts = opts[0]
	}
	return term
}

// Update creates an UPDATE term, merging changeset (a document or a
// function of the row) into every selected document.
func (t Term) Update(changeset interface{}, opts ...OptArgs) Term {
	term := Term{termType: proto.TermUpdate, args: []Term{t, toTerm(changeset)}}
	if len(opts) > 0 {
		term.opts = opts[0]
	}
	return term
}

// Replace creates a REPLACE term, replacing every selected document
// wholesale with the result of replacement (a document or a function of
// the row).
func (t Term) Replace(replacement interface{}, opts ...OptArgs) Term {
	term := Term{termType: proto.TermReplace, args: []Term{t, toTerm(replacement)}}
	if len(opts) > 0 {
		term.opts = opts[0]
	}
	return term
}

// Delete creates a DELETE term, removing every selected document.
func (t Term) Delete(opts ...OptArgs) Term {
	term := Term{termType: proto.TermDelete, args: []Term{t}}
	if len(opts) > 0 {
		term.opts = opts[0]
	}
	return term
}

// Changes creates a CHANGES term, turning t into a changefeed cursor that
// never terminates on its own.
func (t Term) Changes(opts ...OptArgs) Term {
	term := Term{termType: proto.TermChanges, args: []Term{t}}
	if len(opts) > 0 {
		term.opts = opts[0]
	}
	return term
}

// GetField creates a GET_FIELD term (document[name]).
func (t Term) GetField(name string) Term {
	return Term{termType: proto.TermGetField, args: []Term{t, Datum(name)}}
}

// Field is an alias for GetField, read more naturally at the end of a
// builder chain (e.g. Row().Field("age")).
func (t Term) Field(name string) Term {
	return t.GetField(name)
}

// Bracket creates a BRACKET term, indexing into an array or object.
func (t Term) Bracket(field interface{}) Term {
	return Term{termType: proto.TermBracket, args: []Term{t, toTerm(field)}}
}

// HasFields creates a HAS_FIELDS term.
func (t Term) HasFields(fields ...interface{}) Term {
	args := make([]Term, 1, 1+len(fields))
	args[0] = t
	for _, f := range fields {
		args = append(args, toTerm(f))
	}
	return Term{termType: proto.TermHasFields, args: args}
}

// WithFields creates a WITH_FIELDS term, equivalent to HasFields followed
// by Pluck.
func (t Term) WithFields(fields ...string) Term {
	args := make([]Term, 1, 1+len(fields))
	args[0] = t
	for _, f := range fields {
		args = append(args, Datum(f))
	}
	return Term{termType: proto.TermWithFields, args: args}
}

// Pluck creates a PLUCK term, selecting a subset of fields.
func (t Term) Pluck(fields ...interface{}) Term {
	args := make([]Term, 1, 1+len(fields))
	args[0] = t
	for _, f := range fields {
		args = append(args, toTerm(f))
	}
	return Term{termType: proto.TermPluck, args: args}
}

// Without creates a WITHOUT term, the complement of Pluck.
func (t Term) Without(fields ...interface{}) Term {
	args := make([]Term, 1, 1+len(fields))
	args[0] = t
	for _, f := range fields {
		args = append(args, toTerm(f))
	}
	return Term{termType: proto.TermWithout, args: args}
}

// Merge creates a MERGE term, shallow- (or, for function args, deep-)
// merging one or more objects into t.
func (t Term) Merge(objects ...interface{}) Term {
	args := make([]Term, 1, 1+len(objects))
	args[0] = t
	for _, o := range objects {
		args = append(args, toTerm(o))
	}
	return Term{termType: proto.TermMerge, args: args}
}

// Literal wraps value so Merge treats it as a literal replacement rather
// than recursing into it.
func Literal(value interface{}) Term {
	return Term{termType: proto.TermLiteral, args: []Term{toTerm(value)}}
}

// Keys creates a KEYS term, the field names of an object.
func (t Term) Keys() Term {
	return Term{termType: proto.TermKeys, args: []Term{t}}
}

// Values creates a VALUES term, the field values of an object.
func (t Term) Values() Term {
	return Term{termType: proto.TermValues, args: []Term{t}}
}

// Object creates an OBJECT term from alternating key/value arguments.
func Object(pairs ...interface{}) Term {
	if len(pairs)%2 != 0 {
		return errTerm(errors.New("reql: Object requires an even number of arguments (key/value pairs)"))
	}
	args := make([]Term, len(pairs))
	for i, p := range pairs {
		args[i] = toTerm(p)
	}
	return Term{termType: proto.TermObject, args: args}
}

// Append creates an APPEND term.
func (t Term) Append(value interface{}) Term {
	return Term{termType: proto.TermAppend, args: []Term{t, toTerm(value)}}
}

// Prepend creates a PREPEND term.
func (t Term) Prepend(value interface{}) Term {
	return Term{termType: proto.TermPrepend, args: []Term{t, toTerm(value)}}
}

// InsertAt creates an INSERT_AT term, splicing value into an array at
// index.
func (t Term) InsertAt(index int, value interface{}) Term {
	return Term{termType: proto.TermInsertAt, args: []Term{t, Datum(index), toTerm(value)}}
}

// DeleteAt creates a DELETE_AT term, removing the element at index.
func (t Term) DeleteAt(index int) Term {
	return Term{termType: proto.TermDeleteAt, args: []Term{t, Datum(index)}}
}

// ChangeAt creates a CHANGE_AT term, replacing the element at index.
func (t Term) ChangeAt(index int, value interface{}) Term {
	return Term{termType: proto.TermChangeAt, args: []Term{t, Datum(index), toTerm(value)}}
}

// Difference creates a DIFFERENCE term, removing every element of other
// from t.
func (t Term) Difference(other Term) Term {
	return Term{termType: proto.TermDifference, args: []Term{t, other}}
}

// SetInsert creates a SET_INSERT term, adding value to t treated as a set.
func (t Term) SetInsert(value interface{}) Term {
	return Term{termType: proto.TermSetInsert, args: []Term{t, toTerm(value)}}
}

// SetUnion creates a SET_UNION term.
func (t Term) SetUnion(other Term) Term {
	return Term{termType: proto.TermSetUnion, args: []Term{t, other}}
}

// SetIntersection creates a SET_INTERSECTION term.
func (t Term) SetIntersection(other Term) Term {
	return Term{termType: proto.TermSetIntersect, args: []Term{t, other}}
}

// SetDifference creates a SET_DIFFERENCE term.
func (t Term) SetDifference(other Term) Term {
	return Term{termType: proto.TermSetDifference, args: []Term{t, other}}
}

// Info creates an INFO term, describing the type and provenance of t.
func (t Term) Info() Term {
	return Term{termType: proto.TermInfo, args: []Term{t}}
}
