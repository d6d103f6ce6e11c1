package noemafmt_test

import (
	"testing"

	"github.com/go-quicktest/qt"
	"github.com/google/go-cmp/cmp"

	"github.com/noema-lang/noema/ast"
	"github.com/noema-lang/noema/internal/noemafmt"
	"github.com/noema-lang/noema/parser"
)

// roundTrip exercises the round-trip property: parse is a left inverse of
// noemafmt.Sprint up to whitespace and comment choices, i.e. parsing the
// printed form of an already-parsed expression yields an equal AST.
func roundTrip(t *testing.T, src string) {
	t.Helper()
	e, err := parser.ParseExpr("test", []byte(src))
	qt.Assert(t, qt.IsNil(err))

	printed := noemafmt.Sprint(e)
	e2, err := parser.ParseExpr("printed", []byte(printed))
	qt.Assert(t, qt.IsNil(err), qt.Commentf("reparsing %q: %v", printed, err))

	if !ast.Equal(e, e2) {
		t.Fatalf("printed form %q reparsed to a different AST:\n%s",
			printed, cmp.Diff(printed, noemafmt.Sprint(e2)))
	}
}

func TestRoundTripLambdaAndApplication(t *testing.T) {
	roundTrip(t, `(\(x : Natural) -> x + 1) 2`)
}

func TestRoundTripPi(t *testing.T) {
	roundTrip(t, `forall(x : Natural) -> Natural`)
}

func TestRoundTripLet(t *testing.T) {
	roundTrip(t, `let x : Natural = 1 in x`)
}

func TestRoundTripRecordLitAndField(t *testing.T) {
	roundTrip(t, `{ a = 1, b = True }.a`)
}

func TestRoundTripRecordTypeAndProject(t *testing.T) {
	roundTrip(t, `{ a : Natural, b : Bool }.{ a }`)
}

func TestRoundTripUnionLit(t *testing.T) {
	roundTrip(t, `< Left = 1 | Right : Bool >`)
}

func TestRoundTripUnionType(t *testing.T) {
	roundTrip(t, `< Left : Natural | Right : Bool >`)
}

func TestRoundTripMerge(t *testing.T) {
	roundTrip(t, `merge ({=}) (< Left : Natural | Right : Bool >.Left 1) : Natural`)
}

func TestRoundTripListAndSome(t *testing.T) {
	roundTrip(t, `Some ([1, 2, 3])`)
}

func TestRoundTripEmptyListAnnotation(t *testing.T) {
	roundTrip(t, `[] : List Natural`)
}

func TestRoundTripTextInterpolation(t *testing.T) {
	roundTrip(t, `"hello ${"world"}!"`)
}

func TestRoundTripBooleanAndArithmeticOperators(t *testing.T) {
	roundTrip(t, `(1 + 2) * 3 == 9 && True || False`)
}

func TestRoundTripBacktickQuotedLabel(t *testing.T) {
	roundTrip(t, "let `in` = 1 in `in`")
}

func TestRoundTripFreeVariableWithIndex(t *testing.T) {
	roundTrip(t, `x@2`)
}

func TestRoundTripCombineAndPrefer(t *testing.T) {
	roundTrip(t, `({ a = 1 } /\ { b = 2 }) // { a = 3 }`)
}

func TestRoundTripConstructors(t *testing.T) {
	roundTrip(t, `constructors (< Left : Natural | Right : Bool >)`)
}
