package reql

import (
	"errors"

	"rethinkgo/internal/proto"
)

// Var creates a VAR term referencing a function parameter by its numeric
// index, as bound by Func.
func Var(index int) Term {
	return Term{termType: proto.TermVar, args: []Term{Datum(index)}}
}

// Func creates a FUNC term: body, parameterized over paramIndexes as the
// numeric identifiers Var refers to. It is rarely called directly — method
// chains ending in Row() are auto-wrapped by Compile's IMPLICIT_VAR pass.
func Func(body Term, paramIndexes ...int) Term {
	params := make([]Term, len(paramIndexes))
	for i, p := range paramIndexes {
		params[i] = Datum(p)
	}
	return Term{
		termType: proto.TermFunc,
		args:     []Term{{termType: proto.TermMakeArray, args: params}, body},
	}
}

// FuncCall creates a FUNC_CALL term invoking fn with args, wire-ordering
// the function first even though Do (its usual caller) takes it last in
// the Go API.
func FuncCall(fn Term, args ...interface{}) Term {
	termArgs := make([]Term, 1, 1+len(args))
	termArgs[0] = fn
	for _, a := range args {
		termArgs = append(termArgs, toTerm(a))
	}
	return Term{termType: proto.TermFuncCall, args: termArgs}
}

// Do evaluates fn (a Term, typically built with Func and Var, or a
// constant) with t as its single argument. A Go func value is not
// converted: it is wrapped as a datum and fails Compile. In the ReQL wire
// format the function is the first argument of FUNC_CALL even though it
// reads last here, matching r.do's usual calling convention.
func (t Term) Do(fn interface{}) Term {
	return FuncCall(toTerm(fn), t)
}

// Do evaluates fn against one or more standalone arguments.
func Do(fn interface{}, args ...interface{}) Term {
	return FuncCall(toTerm(fn), args...)
}

// Branch creates a BRANCH term: an odd-length cond1, val1, cond2, val2,
// ..., else_val argument list, requiring at least 3 arguments.
func Branch(args ...interface{}) Term {
	if len(args) < 3 {
		return errTerm(errors.New("reql: Branch requires at least 3 arguments"))
	}
	if len(args)%2 == 0 {
		return errTerm(errors.New("reql: Branch requires an odd number of arguments"))
	}
	termArgs := make([]Term, len(args))
	for i, a := range args {
		termArgs[i] = toTerm(a)
	}
	return Term{termType: proto.TermBranch, args: termArgs}
}

// ForEach creates a FOR_EACH term, running fn (typically one or more write
// terms) once per element, for its side effects.
func (t Term) ForEach(fn interface{}) Term {
	return Term{termType: proto.TermForEach, args: []Term{t, toTerm(fn)}}
}

// Default creates a DEFAULT term: val if t would otherwise error or
// evaluate to nil.
func (t Term) Default(val interface{}) Term {
	return Term{termType: proto.TermDefault, args: []Term{t, toTerm(val)}}
}

// Error creates an ERROR term, raising msg as a runtime error when
// evaluated.
func Error(msg string) Term {
	return Term{termType: proto.TermError, args: []Term{Datum(msg)}}
}

// CoerceTo creates a COERCE_TO term, converting t to typeName ("STRING",
// "NUMBER", "ARRAY", "OBJECT", ...).
func (t Term) CoerceTo(typeName string) Term {
	return Term{termType: proto.TermCoerceTo, args: []Term{t, Datum(typeName)}}
}

// TypeOf creates a TYPE_OF term, naming t's runtime ReQL type.
func (t Term) TypeOf() Term {
	return Term{termType: proto.TermTypeOf, args: []Term{t}}
}

// Eq creates an EQ term.
func (t Term) Eq(other interface{}) Term { return t.binop(proto.TermEq, other) }

// Ne creates an NE term.
func (t Term) Ne(other interface{}) Term { return t.binop(proto.TermNe, other) }

// Lt creates an LT term.
func (t Term) Lt(other interface{}) Term { return t.binop(proto.TermLt, other) }

// Le creates an LE term.
func (t Term) Le(other interface{}) Term { return t.binop(proto.TermLe, other) }

// Gt creates a GT term.
func (t Term) Gt(other interface{}) Term { return t.binop(proto.TermGt, other) }

// Ge creates a GE term.
func (t Term) Ge(other interface{}) Term { return t.binop(proto.TermGe, other) }

// Not creates a NOT term, negating a boolean.
func (t Term) Not() Term {
	return Term{termType: proto.TermNot, args: []Term{t}}
}

// And creates an AND term over t and others, short-circuiting on falsity.
func (t Term) And(others ...interface{}) Term {
	args := make([]Term, 1, 1+len(others))
	args[0] = t
	for _, o := range others {
		args = append(args, toTerm(o))
	}
	return Term{termType: proto.TermAnd, args: args}
}

// Or creates an OR term over t and others, short-circuiting on truth.
func (t Term) Or(others ...interface{}) Term {
	args := make([]Term, 1, 1+len(others))
	args[0] = t
	for _, o := range others {
		args = append(args, toTerm(o))
	}
	return Term{termType: proto.TermOr, args: args}
}

// Add creates an ADD term: arithmetic sum, string/array concatenation.
func (t Term) Add(other interface{}) Term { return t.binop(proto.TermAdd, other) }

// Sub creates a SUB term.
func (t Term) Sub(other interface{}) Term { return t.binop(proto.TermSub, other) }

// Mul creates a MUL term.
func (t Term) Mul(other interface{}) Term { return t.binop(proto.TermMul, other) }

// Div creates a DIV term.
func (t Term) Div(other interface{}) Term { return t.binop(proto.TermDiv, other) }

// Mod creates a MOD term.
func (t Term) Mod(other interface{}) Term { return t.binop(proto.TermMod, other) }

// Floor creates a FLOOR term.
func (t Term) Floor() Term { return Term{termType: proto.TermFloor, args: []Term{t}} }

// Ceil creates a CEIL term.
func (t Term) Ceil() Term { return Term{termType: proto.TermCeil, args: []Term{t}} }

// Round creates a ROUND term.
func (t Term) Round() Term { return Term{termType: proto.TermRound, args: []Term{t}} }

// BitAnd creates a BIT_AND term.
func (t Term) BitAnd(n interface{}) Term { return t.binop(proto.TermBitAnd, n) }

// BitOr creates a BIT_OR term.
func (t Term) BitOr(n interface{}) Term { return t.binop(proto.TermBitOr, n) }

// BitXor creates a BIT_XOR term.
func (t Term) BitXor(n interface{}) Term { return t.binop(proto.TermBitXor, n) }

// BitNot creates a BIT_NOT term.
func (t Term) BitNot() Term { return Term{termType: proto.TermBitNot, args: []Term{t}} }

// BitSal creates a BIT_SAL term (arithmetic left shift).
func (t Term) BitSal(n interface{}) Term { return t.binop(proto.TermBitSal, n) }

// BitSar creates a BIT_SAR term (arithmetic right shift).
func (t Term) BitSar(n interface{}) Term { return t.binop(proto.TermBitSar, n) }

func (t Term) binop(tt proto.TermType, value interface{}) Term {
	return Term{termType: tt, args: []Term{t, toTerm(value)}}
}

// Range creates a RANGE term, an infinite stream of consecutive integers
// starting at 0, or bounded by 0-2 arguments.
func Range(args ...interface{}) Term {
	if len(args) > 2 {
		return errTerm(errors.New("reql: Range accepts 0, 1, or 2 arguments"))
	}
	termArgs := make([]Term, len(args))
	for i, a := range args {
		termArgs[i] = toTerm(a)
	}
	return Term{termType: proto.TermRange, args: termArgs}
}

// Args creates an ARGS term, splicing an array term into the argument list
// of the call it's embedded in (e.g. GetAll(Args(keys))).
func Args(array Term) Term {
	return Term{termType: proto.TermArgs, args: []Term{array}}
}
