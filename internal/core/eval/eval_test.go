package eval_test

import (
	"testing"

	"github.com/cockroachdb/apd/v3"
	"github.com/go-quicktest/qt"

	"github.com/noema-lang/noema/ast"
	"github.com/noema-lang/noema/internal/core/adt"
	"github.com/noema-lang/noema/internal/core/eval"
	"github.com/noema-lang/noema/parser"
)

func mustParse(t *testing.T, src string) ast.Expr {
	t.Helper()
	e, err := parser.ParseExpr("test", []byte(src))
	qt.Assert(t, qt.IsNil(err))
	return e
}

func nat(n int64) *ast.NaturalLit { return &ast.NaturalLit{Value: *apd.New(n, 0)} }

// S1: (λ(x:Natural) → x + 1) 2  ~>  3
func TestScenarioS1BetaAndNaturalPlus(t *testing.T) {
	e := mustParse(t, `(λ(x:Natural) → x + 1) 2`)
	got := eval.Normalize(e)
	qt.Assert(t, qt.IsTrue(ast.Equal(got, nat(3))))
}

// S2: let x = 1 in x + x  ~>  2
func TestScenarioS2LetInlining(t *testing.T) {
	e := mustParse(t, `let x = 1 in x + x`)
	got := eval.Normalize(e)
	qt.Assert(t, qt.IsTrue(ast.Equal(got, nat(2))))
}

// S3: λ(x:Natural) → (λ(y:Natural) → y) x  ~>  λ(x:Natural) → x, after η.
func TestScenarioS3EtaAfterBeta(t *testing.T) {
	e := mustParse(t, `λ(x:Natural) → (λ(y:Natural) → y) x`)
	got := eval.Normalize(e)
	want := mustParse(t, `λ(x:Natural) → x`)
	qt.Assert(t, qt.IsTrue(ast.Equal(got, want)))
}

// S4: List/length Natural [1, 2, 3]  ~>  3
func TestScenarioS4ListLength(t *testing.T) {
	e := mustParse(t, `List/length Natural [1, 2, 3]`)
	got := eval.Normalize(e)
	qt.Assert(t, qt.IsTrue(ast.Equal(got, nat(3))))
}

// S5: merge {=} <>:Natural with no applicable handler is left unchanged.
func TestScenarioS5StuckMergeOnEmptyUnion(t *testing.T) {
	e := &ast.Merge{
		Handlers: &ast.RecordLit{Fields: ast.NewOrderedMap()},
		Union:    &ast.Union{Alts: ast.NewOrderedMap()},
		Type:     &ast.TypeConst{Name: ast.NaturalType},
	}
	qt.Assert(t, qt.IsTrue(eval.IsNormalized(e)))
}

// S6: { a = 1, b = 2 } ⫽ { b = 3, c = 4 }  ~>  { a = 1, b = 3, c = 4 },
// keeping b's original position and appending c at the end.
func TestScenarioS6PreferKeepsLeftPositionAppendsNew(t *testing.T) {
	e := mustParse(t, `{ a = 1, b = 2 } // { b = 3, c = 4 }`)
	got := eval.Normalize(e)
	rl, ok := ast.AsRecordLit(got)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.DeepEquals(rl.Fields.Keys(), []string{"a", "b", "c"}))
	bv, _ := rl.Fields.Get("b")
	qt.Assert(t, qt.IsTrue(ast.Equal(bv, nat(3))))
	cv, _ := rl.Fields.Get("c")
	qt.Assert(t, qt.IsTrue(ast.Equal(cv, nat(4))))
}

// S7: parse of let `in` = 1 in `in` yields Let("in", nil, NaturalLit 1, Var("in",0)).
func TestScenarioS7BacktickEscapedReservedLabel(t *testing.T) {
	e := mustParse(t, "let `in` = 1 in `in`")
	let, ok := ast.AsLet(e)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(let.Label, "in"))
	qt.Assert(t, qt.IsNil(let.Annot))
	qt.Assert(t, qt.IsTrue(ast.Equal(let.Value, nat(1))))
	v, ok := ast.AsVar(let.Body)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(v.Name, "in"))
	qt.Assert(t, qt.Equals(v.Index, 0))
}

// S8: "hello ${"world"}" normalizes equivalently to the plain literal
// "hello world".
func TestScenarioS8TextInterpolationSplicing(t *testing.T) {
	e := mustParse(t, `"hello ${"world"}"`)
	got := eval.Normalize(e)
	want := mustParse(t, `"hello world"`)
	qt.Assert(t, qt.IsTrue(ast.Equal(got, want)))
}

// --- Property invariants ---

func TestNormalizeIsIdempotent(t *testing.T) {
	e := mustParse(t, `(λ(x:Natural) → x + 1) ((λ(y:Natural) → y) 2)`)
	once := eval.Normalize(e)
	twice := eval.Normalize(once)
	qt.Assert(t, qt.IsTrue(ast.Equal(once, twice)))
}

func TestAlphaNormalizeIsIdempotent(t *testing.T) {
	e := mustParse(t, `λ(x:Natural) → λ(y:Natural) → x`)
	once := ast.AlphaNormalize(e)
	twice := ast.AlphaNormalize(once)
	qt.Assert(t, qt.IsTrue(ast.Equal(once, twice)))
}

func TestAlphaNormalizePreservesFreeVariableIndices(t *testing.T) {
	// λ(x:Natural) → z@1 — z@1 is free (an outer binding), and must stay
	// z@1 (name and index untouched) after alpha-normalizing.
	e := &ast.Lam{Label: "x", Type: &ast.TypeConst{Name: ast.NaturalType}, Body: &ast.Var{Name: "z", Index: 1}}
	got := ast.AlphaNormalize(e).(*ast.Lam)
	v, ok := ast.AsVar(got.Body)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(v.Name, "z"))
	qt.Assert(t, qt.Equals(v.Index, 1))
}

func TestFreeInIsFalseForRootBinderAfterNormalize(t *testing.T) {
	// A closed term stays closed through normalize+alphaNormalize: its own
	// binder name is never free in the whole (not just the body) result.
	e := mustParse(t, `λ(x:Natural) → x + 0`)
	got := ast.AlphaNormalize(eval.Normalize(e))
	qt.Assert(t, qt.IsFalse(ast.FreeIn("_", 0, got)))
	qt.Assert(t, qt.IsFalse(ast.FreeIn("x", 0, got)))
}

func TestShiftByZeroIsIdentity(t *testing.T) {
	e := mustParse(t, `λ(x:Natural) → x + 1`)
	got := ast.Shift(0, "x", 0, e)
	qt.Assert(t, qt.IsTrue(ast.Equal(got, e)))
}

func TestShiftIsAdditive(t *testing.T) {
	e := &ast.Var{Name: "x", Index: 0}
	combined := ast.Shift(5, "x", 0, e)
	stepwise := ast.Shift(2, "x", 0, ast.Shift(3, "x", 0, e))
	qt.Assert(t, qt.IsTrue(ast.Equal(combined, stepwise)))
}

func TestListBuildFoldFusion(t *testing.T) {
	e := mustParse(t, `List/build Natural (List/fold Natural [1, 2, 3])`)
	got := eval.Normalize(e)
	want := eval.Normalize(mustParse(t, `[1, 2, 3]`))
	qt.Assert(t, qt.IsTrue(ast.Equal(got, want)))
}

func TestNaturalBuildFoldFusion(t *testing.T) {
	e := mustParse(t, `Natural/build (Natural/fold 4)`)
	got := eval.Normalize(e)
	qt.Assert(t, qt.IsTrue(ast.Equal(got, nat(4))))
}

func TestOptionalBuildFoldFusion(t *testing.T) {
	e := mustParse(t, `Optional/build Natural (Optional/fold Natural (Some 7))`)
	got := eval.Normalize(e)
	want := eval.Normalize(mustParse(t, `Some 7`))
	qt.Assert(t, qt.IsTrue(ast.Equal(got, want)))
}

func TestEtaForClosedTerms(t *testing.T) {
	// normalize(λ x:Natural. f x) = normalize(f) when f doesn't mention x.
	f := &ast.Var{Name: "f", Index: 0}
	lam := &ast.Lam{
		Label: "x",
		Type:  &ast.TypeConst{Name: ast.NaturalType},
		Body:  &ast.App{Fn: f, Arg: &ast.Var{Name: "x", Index: 0}},
	}
	got := eval.Normalize(lam)
	want := eval.Normalize(f)
	qt.Assert(t, qt.IsTrue(ast.Equal(got, want)))
}

// judgmentallyEqual mirrors judgmental equality's definition directly, used
// only to exercise it below — the library itself has no such exported
// function since judgmental equality is defined purely in terms of
// Normalize and AlphaNormalize.
func judgmentallyEqual(a, b ast.Expr) bool {
	return ast.Equal(ast.AlphaNormalize(eval.Normalize(a)), ast.AlphaNormalize(eval.Normalize(b)))
}

func TestJudgmentalEqualityViaNormalizeThenAlpha(t *testing.T) {
	a := mustParse(t, `λ(x:Natural) → x + 1`)
	b := mustParse(t, `λ(y:Natural) → 1 + y`)
	qt.Assert(t, qt.IsFalse(judgmentallyEqual(a, b))) // Natural/plus isn't commutative on stuck terms
	c := mustParse(t, `λ(x:Natural) → x + 1`)
	qt.Assert(t, qt.IsTrue(judgmentallyEqual(a, c)))
}

// doubleRule is a user extension recognizing the application
// spine "double x" (an otherwise-unbound free variable named "double"
// applied to one Natural argument) and rewriting it to x + x.
func doubleRule(s adt.Spine) (ast.Expr, bool) {
	head, ok := ast.AsVar(s.Head)
	if !ok || head.Name != "double" || s.Len() != 1 {
		return nil, false
	}
	arg, _ := s.At(0)
	return &ast.BinOp{Op: ast.OpNaturalPlus, X: arg, Y: arg}, true
}

func TestUserNormalizerConsultedAtAppNodes(t *testing.T) {
	e := &ast.App{Fn: &ast.Var{Name: "double"}, Arg: nat(3)}
	got := eval.NormalizeWith(doubleRule, e)
	qt.Assert(t, qt.IsTrue(ast.Equal(got, nat(6))))
}

func TestUserNormalizerDeclinesLeaveBuiltinsInEffect(t *testing.T) {
	// "double" only matches a one-argument spine; built-in Natural/isZero
	// still fires normally alongside the user rule.
	e := mustParse(t, `Natural/isZero 0`)
	got := eval.NormalizeWith(doubleRule, e)
	qt.Assert(t, qt.IsTrue(ast.Equal(got, &ast.BoolLit{Value: true})))
}
