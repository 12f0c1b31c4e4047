// Package reql is the fluent query builder: it assembles Term values into
// expression trees and compiles them into internal/proto.Term trees for
// submission over a connection.
package reql

import (
	"errors"
	"fmt"
	"sort"

	"rethinkgo/internal/datum"
	"rethinkgo/internal/proto"
)

// OptArgs carries a term's optional named arguments (e.g. Filter's
// "default", TableCreate's "primary_key"). Values are anything toTerm
// accepts.
type OptArgs map[string]interface{}

// Term represents a ReQL expression node.
// termType == 0 means the term is a raw datum (string, number, bool, nil,
// map, slice, or anything internal/datum.ToDatum accepts).
type Term struct {
	termType proto.TermType
	datum    interface{}
	args     []Term
	opts     OptArgs
	err      error
}

// errTerm returns a Term that fails to Compile with err.
func errTerm(err error) Term {
	return Term{err: err}
}

// Row creates an IMPLICIT_VAR term, a shorthand for a single-argument
// function used in methods like Filter and Map (e.g. Filter(Row().Field("active"))).
func Row() Term {
	return Term{termType: proto.TermImplicitVar}
}

// wrapImplicitVar detects IMPLICIT_VAR in t and, if found, replaces every
// occurrence with Var(1) and wraps the term in Func(replaced, 1). Returns t
// unchanged if no IMPLICIT_VAR is present.
func wrapImplicitVar(t Term) (Term, error) {
	replaced, found, err := replaceImplicit(t, false)
	if err != nil {
		return Term{}, err
	}
	if !found {
		return t, nil
	}
	return Func(replaced, 1), nil
}

// replaceImplicit walks t replacing IMPLICIT_VAR with Var(1). inFunc marks
// that the walk is inside a nested FUNC body, where IMPLICIT_VAR is
// ambiguous and therefore an error.
func replaceImplicit(t Term, inFunc bool) (Term, bool, error) {
	if t.termType == proto.TermImplicitVar {
		if inFunc {
			return Term{}, false, errors.New("reql: row shorthand used inside a nested function is ambiguous")
		}
		return Var(1), true, nil
	}
	if t.termType == 0 {
		return t, false, t.err
	}
	nested := inFunc || t.termType == proto.TermFunc
	newArgs := make([]Term, len(t.args))
	var anyReplaced bool
	for i, a := range t.args {
		rep, did, err := replaceImplicit(a, nested)
		if err != nil {
			return Term{}, false, err
		}
		newArgs[i] = rep
		if did {
			anyReplaced = true
		}
	}
	if !anyReplaced {
		return t, false, nil
	}
	return Term{
		termType: t.termType,
		datum:    t.datum,
		args:     newArgs,
		opts:     t.opts,
		err:      t.err,
	}, true, nil
}

// Datum wraps a raw Go value as a ReQL literal term.
func Datum(v interface{}) Term {
	return Term{datum: v}
}

// toTerm converts v to a Term: passes Terms through, wraps everything else
// in Datum.
func toTerm(v interface{}) Term {
	if t, ok := v.(Term); ok {
		return t
	}
	return Datum(v)
}

// Array creates a MAKE_ARRAY term.
func Array(items ...interface{}) Term {
	args := make([]Term, len(items))
	for i, item := range items {
		args[i] = toTerm(item)
	}
	return Term{termType: proto.TermMakeArray, args: args}
}

// Compile lowers the term tree into a wire-ready internal/proto.Term,
// resolving IMPLICIT_VAR (the Row() shorthand) and converting every leaf
// datum through internal/datum.ToDatum.
func (t Term) Compile() (*proto.Term, error) {
	wrapped, err := wrapImplicitVar(t)
	if err != nil {
		return nil, err
	}
	return wrapped.compile()
}

func (t Term) compile() (*proto.Term, error) {
	if t.err != nil {
		return nil, t.err
	}
	if t.termType == 0 {
		d, err := datum.ToDatum(t.datum)
		if err != nil {
			return nil, fmt.Errorf("reql: %w", err)
		}
		return &proto.Term{Type: proto.TermDatum, Datum: d}, nil
	}
	args := make([]*proto.Term, len(t.args))
	for i, a := range t.args {
		ct, err := a.compile()
		if err != nil {
			return nil, err
		}
		args[i] = ct
	}
	pt := &proto.Term{Type: t.termType, Args: args}
	if len(t.opts) > 0 {
		keys := make([]string, 0, len(t.opts))
		for k := range t.opts {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		optargs := make([]proto.TermAssocPair, 0, len(keys))
		for _, k := range keys {
			vt, err := toTerm(t.opts[k]).compile()
			if err != nil {
				return nil, err
			}
			optargs = append(optargs, proto.TermAssocPair{Key: k, Val: vt})
		}
		pt.Optargs = optargs
	}
	return pt, nil
}

// DB creates a DB term, selecting a database by name for Table calls
// chained off it.
func DB(name string) Term {
	return Term{termType: proto.TermDB, args: []Term{Datum(name)}}
}

// Table creates a TABLE term using the connection's default database.
func Table(name string) Term {
	return Term{termType: proto.TermTable, args: []Term{Datum(name)}}
}

// Table creates a TABLE term scoped to db (e.g. DB("test").Table("users")).
func (t Term) Table(name string) Term {
	return Term{termType: proto.TermTable, args: []Term{t, Datum(name)}}
}

// DBCreate creates a DB_CREATE term.
func DBCreate(name string) Term {
	return Term{termType: proto.TermDBCreate, args: []Term{Datum(name)}}
}

// DBDrop creates a DB_DROP term.
func DBDrop(name string) Term {
	return Term{termType: proto.TermDBDrop, args: []Term{Datum(name)}}
}

// DBList creates a DB_LIST term.
func DBList() Term {
	return Term{termType: proto.TermDBList}
}

// TableCreate creates a TABLE_CREATE term off the connection's default
// database, with optional OptArgs (e.g. primary_key).
func TableCreate(name string, opts ...OptArgs) Term {
	term := Term{termType: proto.TermTableCreate, args: []Term{Datum(name)}}
	if len(opts) > 0 {
		term.opts = opts[0]
	}
	return term
}

// TableCreate creates a TABLE_CREATE term scoped to db.
func (t Term) TableCreate(name string, opts ...OptArgs) Term {
	term := Term{termType: proto.TermTableCreate, args: []Term{t, Datum(name)}}
	if len(opts) > 0 {
		term.opts = opts[0]
	}
	return term
}

// TableDrop creates a TABLE_DROP term.
func (t Term) TableDrop(name string) Term {
	return Term{termType: proto.TermTableDrop, args: []Term{t, Datum(name)}}
}

// TableList creates a TABLE_LIST term.
func (t Term) TableList() Term {
	return Term{termType: proto.TermTableList, args: []Term{t}}
}

// Sync creates a SYNC term, flushing a soft-durability table to disk.
func (t Term) Sync() Term {
	return Term{termType: proto.TermSync, args: []Term{t}}
}

// Reconfigure creates a RECONFIGURE term.
func (t Term) Reconfigure(opts ...OptArgs) Term {
	term := Term{termType: proto.TermReconfigure, args: []Term{t}}
	if len(opts) > 0 {
		term.opts = opts[0]
	}
	return term
}

// Rebalance creates a REBALANCE term.
func (t Term) Rebalance() Term {
	return Term{termType: proto.TermRebalance, args: []Term{t}}
}

// Wait creates a WAIT term, blocking until a table's writes are durable.
func (t Term) Wait() Term {
	return Term{termType: proto.TermWait, args: []Term{t}}
}

// Config creates a CONFIG term, exposing a db/table's configuration doc.
func (t Term) Config() Term {
	return Term{termType: proto.TermConfig, args: []Term{t}}
}

// Status creates a STATUS term, exposing a table's readiness doc.
func (t Term) Status() Term {
	return Term{termType: proto.TermStatus, args: []Term{t}}
}

// IndexCreate creates an INDEX_CREATE term. fn, if given, is the index
// function; without one the index is on the field named by name.
func (t Term) IndexCreate(name string, fn ...Term) Term {
	args := []Term{t, Datum(name)}
	if len(fn) > 0 {
		args = append(args, fn[0])
	}
	return Term{termType: proto.TermIndexCreate, args: args}
}

// IndexDrop creates an INDEX_DROP term.
func (t Term) IndexDrop(name string) Term {
	return Term{termType: proto.TermIndexDrop, args: []Term{t, Datum(name)}}
}

// IndexList creates an INDEX_LIST term.
func (t Term) IndexList() Term {
	return Term{termType: proto.TermIndexList, args: []Term{t}}
}

// IndexRename creates an INDEX_RENAME term.
func (t Term) IndexRename(oldName, newName string, opts ...OptArgs) Term {
	term := Term{termType: proto.TermIndexRename, args: []Term{t, Datum(oldName), Datum(newName)}}
	if len(opts) > 0 {
		term.opts = opts[0]
	}
	return term
}

// IndexStatus creates an INDEX_STATUS term for the named indexes, or all
// indexes if none are given.
func (t Term) IndexStatus(names ...string) Term {
	args := make([]Term, 1, 1+len(names))
	args[0] = t
	for _, n := range names {
		args = append(args, Datum(n))
	}
	return Term{termType: proto.TermIndexStatus, args: args}
}

// IndexWait creates an INDEX_WAIT term for the named indexes, or all
// indexes if none are given.
func (t Term) IndexWait(names ...string) Term {
	args := make([]Term, 1, 1+len(names))
	args[0] = t
	for _, n := range names {
		args = append(args, Datum(n))
	}
	return Term{termType: proto.TermIndexWait, args: args}
}
