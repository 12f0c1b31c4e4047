package reql

import "rethinkgo/internal/proto"

// Filter creates a FILTER term, keeping every element for which predicate
// (a function or a plain document to match against) is truthy.
func (t Term) Filter(predicate interface{}, opts ...OptArgs) Term {
	term := Term{termType: proto.TermFilter, args: []Term{t, toTerm(predicate)}}
	if len(opts) > 0 {
		term.opts = opts[0]
	}
	return term
}

// Map creates a MAP term, applying fn to every element of one or more
// sequences.
func (t Term) Map(fn interface{}, others ...Term) Term {
	args := make([]Term, 0, 2+len(others))
	args = append(args, t)
	args = append(args, others...)
	args = append(args, toTerm(fn))
	return Term{termType: proto.TermMap, args: args}
}

// ConcatMap creates a CONCAT_MAP term, applying fn to every element and
// flattening the resulting arrays into one sequence.
func (t Term) ConcatMap(fn interface{}) Term {
	return Term{termType: proto.TermConcatMap, args: []Term{t, toTerm(fn)}}
}

// Reduce creates a REDUCE term, combining the sequence via fn(acc, elem).
func (t Term) Reduce(fn interface{}) Term {
	return Term{termType: proto.TermReduce, args: []Term{t, toTerm(fn)}}
}

// Fold creates a FOLD term, like Reduce but starting from an explicit base
// and optionally emitting per-step output.
func (t Term) Fold(base interface{}, fn interface{}, opts ...OptArgs) Term {
	term := Term{termType: proto.TermFold, args: []Term{t, toTerm(base), toTerm(fn)}}
	if len(opts) > 0 {
		term.opts = opts[0]
	}
	return term
}

// Count creates a COUNT term, optionally counting only elements matching
// filter.
func (t Term) Count(filter ...interface{}) Term {
	args := []Term{t}
	if len(filter) > 0 {
		args = append(args, toTerm(filter[0]))
	}
	return Term{termType: proto.TermCount, args: args}
}

// Distinct creates a DISTINCT term, deduplicating the sequence (or, on a
// table with opts' "index", the distinct values of a secondary index).
func (t Term) Distinct(opts ...OptArgs) Term {
	term := Term{termType: proto.TermDistinct, args: []Term{t}}
	if len(opts) > 0 {
		term.opts = opts[0]
	}
	return term
}

// Union creates a UNION term, concatenating t with one or more sequences.
func (t Term) Union(seqs ...Term) Term {
	args := make([]Term, 1, 1+len(seqs))
	args[0] = t
	args = append(args, seqs...)
	return Term{termType: proto.TermUnion, args: args}
}

// Sample creates a SAMPLE term, selecting n elements uniformly at random
// without replacement.
func (t Term) Sample(n int) Term {
	return Term{termType: proto.TermSample, args: []Term{t, Datum(n)}}
}

// IsEmpty creates an IS_EMPTY term.
func (t Term) IsEmpty() Term {
	return Term{termType: proto.TermIsEmpty, args: []Term{t}}
}

// Contains creates a CONTAINS term, testing whether the sequence includes
// every given value or a value matching every given predicate.
func (t Term) Contains(values ...interface{}) Term {
	args := make([]Term, 1, 1+len(values))
	args[0] = t
	for _, v := range values {
		args = append(args, toTerm(v))
	}
	return Term{termType: proto.TermContains, args: args}
}

// Slice creates a SLICE term, the half-open range [start, end) of a
// sequence.
func (t Term) Slice(start, end int) Term {
	return Term{termType: proto.TermSlice, args: []Term{t, Datum(start), Datum(end)}}
}

// Skip creates a SKIP term, dropping the first n elements.
func (t Term) Skip(n int) Term {
	return Term{termType: proto.TermSkip, args: []Term{t, Datum(n)}}
}

// Limit creates a LIMIT term, keeping only the first n elements.
func (t Term) Limit(n int) Term {
	return Term{termType: proto.TermLimit, args: []Term{t, Datum(n)}}
}

// Nth creates an NTH term, the element at index.
func (t Term) Nth(index int) Term {
	return Term{termType: proto.TermNth, args: []Term{t, Datum(index)}}
}

// OffsetsOf creates an OFFSETS_OF term, the indexes where predicate
// matches.
func (t Term) OffsetsOf(predicate interface{}) Term {
	return Term{termType: proto.TermOffsetsOf, args: []Term{t, toTerm(predicate)}}
}

// OrderBy creates an ORDER_BY term. Each field is a string (ascending), or
// the result of Asc/Desc.
func (t Term) OrderBy(fields ...interface{}) Term {
	var opts OptArgs
	if n := len(fields); n > 0 {
		if o, ok := fields[n-1].(OptArgs); ok {
			opts = o
			fields = fields[:n-1]
		}
	}
	args := make([]Term, 1, 1+len(fields))
	args[0] = t
	for _, f := range fields {
		if s, ok := f.(string); ok {
			args = append(args, Datum(s))
			continue
		}
		args = append(args, toTerm(f))
	}
	return Term{termType: proto.TermOrderBy, args: args, opts: opts}
}

// Asc wraps a field name for ascending OrderBy.
func Asc(field string) Term {
	return Term{termType: proto.TermAsc, args: []Term{Datum(field)}}
}

// Desc wraps a field name for descending OrderBy.
func Desc(field string) Term {
	return Term{termType: proto.TermDesc, args: []Term{Datum(field)}}
}

// Group creates a GROUP term, partitioning the sequence by one or more
// field names or index functions.
func (t Term) Group(fields ...interface{}) Term {
	args := make([]Term, 1, 1+len(fields))
	args[0] = t
	for _, f := range fields {
		if s, ok := f.(string); ok {
			args = append(args, Datum(s))
			continue
		}
		args = append(args, toTerm(f))
	}
	return Term{termType: proto.TermGroup, args: args}
}

// Ungroup creates an UNGROUP term, turning a grouped stream back into an
// array of {group, reduction} objects.
func (t Term) Ungroup() Term {
	return Term{termType: proto.TermUngroup, args: []Term{t}}
}

// Sum creates a SUM term, optionally over a field name or mapping
// function.
func (t Term) Sum(field ...interface{}) Term {
	args := []Term{t}
	if len(field) > 0 {
		args = append(args, toTerm(field[0]))
	}
	return Term{termType: proto.TermSum, args: args}
}

// Avg creates an AVG term, optionally over a field name or mapping
// function.
func (t Term) Avg(field ...interface{}) Term {
	args := []Term{t}
	if len(field) > 0 {
		args = append(args, toTerm(field[0]))
	}
	return Term{termType: proto.TermAvg, args: args}
}

// Min creates a MIN term, optionally over a field name, index, or mapping
// function.
func (t Term) Min(field ...interface{}) Term {
	args := []Term{t}
	if len(field) > 0 {
		args = append(args, toTerm(field[0]))
	}
	return Term{termType: proto.TermMin, args: args}
}

// Max creates a MAX term, optionally over a field name, index, or mapping
// function.
func (t Term) Max(field ...interface{}) Term {
	args := []Term{t}
	if len(field) > 0 {
		args = append(args, toTerm(field[0]))
	}
	return Term{termType: proto.TermMax, args: args}
}

// MinVal returns the smallest possible ReQL value, usable as a Between
// bound.
func MinVal() Term { return Term{termType: proto.TermMinVal} }

// MaxVal returns the largest possible ReQL value, usable as a Between
// bound.
func MaxVal() Term { return Term{termType: proto.TermMaxVal} }

// InnerJoin creates an INNER_JOIN term.
func (t Term) InnerJoin(other Term, predicate interface{}) Term {
	return Term{termType: proto.TermInnerJoin, args: []Term{t, other, toTerm(predicate)}}
}

// OuterJoin creates an OUTER_JOIN term.
func (t Term) OuterJoin(other Term, predicate interface{}) Term {
	return Term{termType: proto.TermOuterJoin, args: []Term{t, other, toTerm(predicate)}}
}

// EqJoin creates an EQ_JOIN term, joining on leftField against a
// secondary index (opts' "index", default "id") of other.
func (t Term) EqJoin(leftField interface{}, other Term, opts ...OptArgs) Term {
	term := Term{termType: proto.TermEqJoin, args: []Term{t, toTerm(leftField), other}}
	if len(opts) > 0 {
		term.opts = opts[0]
	}
	return term
}

// Zip creates a ZIP term, merging each join result's "left" and "right"
// fields into one document.
func (t Term) Zip() Term {
	return Term{termType: proto.TermZip, args: []Term{t}}
}
