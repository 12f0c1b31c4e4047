package reql

import (
	"testing"

	"rethinkgo/internal/datum"
	"rethinkgo/internal/proto"
)

func compile(t *testing.T, term Term) *proto.Term {
	t.Helper()
	pt, err := term.Compile()
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	return pt
}

func TestDatumEncoding(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		term Term
		want interface{}
	}{
		{"string", Datum("foo"), "foo"},
		{"number", Datum(42), float64(42)},
		{"float", Datum(3.14), 3.14},
		{"bool", Datum(true), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			pt := compile(t, tc.term)
			if pt.Type != proto.TermDatum {
				t.Fatalf("got term type %v, want TermDatum", pt.Type)
			}
			if got := datum.ToAny(pt.Datum); got != tc.want {
				t.Fatalf("got datum value %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDatumEncodingNil(t *testing.T) {
	t.Parallel()
	pt := compile(t, Datum(nil))
	if pt.Type != proto.TermDatum || pt.Datum.Type != proto.DatumNull {
		t.Fatalf("got %+v, want a null datum term", pt)
	}
}

func TestCoreTermBuilder(t *testing.T) {
	t.Parallel()

	dbTerm := compile(t, DB("test"))
	if dbTerm.Type != proto.TermDB || len(dbTerm.Args) != 1 {
		t.Fatalf("DB(\"test\") compiled to %+v", dbTerm)
	}

	tableTerm := compile(t, DB("test").Table("users"))
	if tableTerm.Type != proto.TermTable || len(tableTerm.Args) != 2 {
		t.Fatalf("Table compiled to %+v", tableTerm)
	}
	if tableTerm.Args[0].Type != proto.TermDB {
		t.Fatalf("Table's first arg should be the DB term, got %+v", tableTerm.Args[0])
	}

	filterTerm := compile(t, DB("test").Table("users").Filter(map[string]interface{}{"age": 30}))
	if filterTerm.Type != proto.TermFilter || len(filterTerm.Args) != 2 {
		t.Fatalf("Filter compiled to %+v", filterTerm)
	}
}

func TestWriteOperations(t *testing.T) {
	t.Parallel()
	table := DB("test").Table("users")
	doc := map[string]interface{}{"name": "alice"}

	tests := []struct {
		name     string
		term     Term
		wantType proto.TermType
	}{
		{"insert", table.Insert(doc), proto.TermInsert},
		{"update", table.Update(doc), proto.TermUpdate},
		{"delete", table.Delete(), proto.TermDelete},
		{"replace", table.Replace(doc), proto.TermReplace},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			pt := compile(t, tc.term)
			if pt.Type != tc.wantType {
				t.Fatalf("got term type %v, want %v", pt.Type, tc.wantType)
			}
		})
	}
}

func TestReadOperations(t *testing.T) {
	t.Parallel()
	table := DB("test").Table("users")

	get := compile(t, table.Get("alice"))
	if get.Type != proto.TermGet || len(get.Args) != 2 {
		t.Fatalf("Get compiled to %+v", get)
	}

	getAll := compile(t, table.GetAll("alice", "bob"))
	if getAll.Type != proto.TermGetAll || len(getAll.Args) != 3 {
		t.Fatalf("GetAll compiled to %+v", getAll)
	}

	between := compile(t, table.Between(MinVal(), MaxVal(), OptArgs{"index": "age"}))
	if between.Type != proto.TermBetween || len(between.Optargs) != 1 {
		t.Fatalf("Between compiled to %+v", between)
	}
}

func TestOrderByWithOptArgs(t *testing.T) {
	t.Parallel()
	table := DB("test").Table("users")
	pt := compile(t, table.OrderBy(Asc("name"), OptArgs{"index": "name"}))
	if pt.Type != proto.TermOrderBy {
		t.Fatalf("got %v, want TermOrderBy", pt.Type)
	}
	if len(pt.Args) != 2 {
		t.Fatalf("expected table + one sort field, got %d args", len(pt.Args))
	}
	if pt.Args[1].Type != proto.TermAsc {
		t.Fatalf("sort field should compile through Asc, got %+v", pt.Args[1])
	}
	if len(pt.Optargs) != 1 || pt.Optargs[0].Key != "index" {
		t.Fatalf("expected index optarg, got %+v", pt.Optargs)
	}
}

func TestRowShorthandWrapsInFunc(t *testing.T) {
	t.Parallel()
	table := DB("test").Table("users")
	pt := compile(t, table.Filter(Row().Field("active")))
	if pt.Type != proto.TermFilter {
		t.Fatalf("got %v, want TermFilter", pt.Type)
	}
	fn := pt.Args[1]
	if fn.Type != proto.TermFunc {
		t.Fatalf("Row() shorthand should compile to a FUNC wrapper, got %+v", fn)
	}
}

func TestRowShorthandInsideNestedFuncIsAnError(t *testing.T) {
	t.Parallel()
	inner := Func(Row(), 1)
	outer := DB("test").Table("users").Filter(inner)
	if _, err := outer.Compile(); err == nil {
		t.Fatal("expected an error for ambiguous nested Row() shorthand")
	}
}

func TestObjectRequiresEvenArgs(t *testing.T) {
	t.Parallel()
	if _, err := Object("only_key").Compile(); err == nil {
		t.Fatal("expected Object with odd argument count to fail Compile")
	}
}

func TestOptArgsCompileInSortedKeyOrder(t *testing.T) {
	t.Parallel()
	pt := compile(t, DB("test").Table("users").TableCreate("x", OptArgs{
		"durability":  "soft",
		"primary_key": "id",
	}))
	if len(pt.Optargs) != 2 {
		t.Fatalf("expected 2 optargs, got %d", len(pt.Optargs))
	}
	if pt.Optargs[0].Key != "durability" || pt.Optargs[1].Key != "primary_key" {
		t.Fatalf("optargs not in sorted key order: %+v", pt.Optargs)
	}
}
