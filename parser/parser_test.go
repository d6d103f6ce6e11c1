package parser_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/noema-lang/noema/ast"
	"github.com/noema-lang/noema/parser"
	"github.com/noema-lang/noema/token"
)

func parse(t *testing.T, src string) ast.Expr {
	t.Helper()
	e, err := parser.ParseExpr("test", []byte(src))
	qt.Assert(t, qt.IsNil(err), qt.Commentf("parsing %q: %v", src, err))
	return e
}

func wantErr(t *testing.T, src string) {
	t.Helper()
	_, err := parser.ParseExpr("test", []byte(src))
	qt.Assert(t, qt.IsNotNil(err), qt.Commentf("expected %q to fail to parse", src))
}

func TestParseReservedWordAsBuiltinIsNullary(t *testing.T) {
	e := parse(t, "Natural")
	typ, ok := ast.AsTypeConst(e)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(typ.Name, ast.NaturalType))
}

func TestParseBareReservedWordCannotBeAVar(t *testing.T) {
	// "let" standing where a variable is expected is a syntax error, not a
	// Var named "let" (the reserved-word rule).
	wantErr(t, "let + 1")
}

func TestParseBacktickEscapesReservedWordAsVar(t *testing.T) {
	e := parse(t, "let `let` = 1 in `let`")
	let, ok := ast.AsLet(e)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(let.Label, "let"))
	v, ok := ast.AsVar(let.Body)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(v.Name, "let"))
}

func TestParseNaturalLiteralHasNoSign(t *testing.T) {
	e := parse(t, "123")
	lit, ok := ast.AsNaturalLit(e)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(lit.Value.String(), "123"))
}

func TestParseIntegerLiteralRequiresExplicitSign(t *testing.T) {
	e := parse(t, "+7")
	lit, ok := ast.AsIntegerLit(e)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(lit.Value.String(), "7"))
}

func TestParsePlainPositiveIntegerIsNotADouble(t *testing.T) {
	e := parse(t, "3")
	_, isNat := ast.AsNaturalLit(e)
	qt.Assert(t, qt.IsTrue(isNat))
	_, isDouble := ast.AsDoubleLit(e)
	qt.Assert(t, qt.IsFalse(isDouble))
}

func TestParseDoubleLiteralRequiresFracOrExp(t *testing.T) {
	for _, src := range []string{"3.14", "1e10", "+2.5e-3"} {
		e := parse(t, src)
		_, ok := ast.AsDoubleLit(e)
		qt.Assert(t, qt.IsTrue(ok), qt.Commentf("%q should parse as a Double", src))
	}
}

func TestParseEmptyRecordIsRecordType(t *testing.T) {
	e := parse(t, "{}")
	rt, ok := ast.AsRecord(e)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(rt.Fields.Len(), 0))
}

func TestParseEmptyRecordLitNeedsEquals(t *testing.T) {
	e := parse(t, "{=}")
	rl, ok := ast.AsRecordLit(e)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(rl.Fields.Len(), 0))
}

func TestParseRecordTypeDisambiguatedByColon(t *testing.T) {
	e := parse(t, "{ a : Natural, b : Bool }")
	rt, ok := ast.AsRecord(e)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.DeepEquals(rt.Fields.Keys(), []string{"a", "b"}))
}

func TestParseRecordLitDisambiguatedByEquals(t *testing.T) {
	e := parse(t, "{ a = 1, b = 2 }")
	rl, ok := ast.AsRecordLit(e)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.DeepEquals(rl.Fields.Keys(), []string{"a", "b"}))
}

func TestParseRecordRejectsDuplicateLabels(t *testing.T) {
	wantErr(t, "{ a = 1, a = 2 }")
}

func TestParseRecordRejectsMixedSeparators(t *testing.T) {
	// first entry picks ':' (Record type); a later '=' is then a syntax
	// error rather than silently switching kinds.
	wantErr(t, "{ a : Natural, b = 2 }")
}

func TestParseEmptyUnionType(t *testing.T) {
	e := parse(t, "<>")
	u, ok := ast.AsUnion(e)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(u.Alts.Len(), 0))
}

func TestParseUnionTypeAllColons(t *testing.T) {
	e := parse(t, "< Left : Natural | Right : Bool >")
	u, ok := ast.AsUnion(e)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.DeepEquals(u.Alts.Keys(), []string{"Left", "Right"}))
}

func TestParseUnionLitFirstEntryEquals(t *testing.T) {
	e := parse(t, "< Left = 1 | Right : Bool >")
	ul, ok := ast.AsUnionLit(e)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(ul.Label, "Left"))
	qt.Assert(t, qt.DeepEquals(ul.Rest.Keys(), []string{"Right"}))
}

func TestParseUnionLaterEntryMayUseEquals(t *testing.T) {
	e := parse(t, "< Left : Natural | Right = 2 >")
	ul, ok := ast.AsUnionLit(e)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(ul.Label, "Right"))
	qt.Assert(t, qt.DeepEquals(ul.Rest.Keys(), []string{"Left"}))
}

func TestParseUnionRejectsTwoActiveEntries(t *testing.T) {
	wantErr(t, "< Left = 1 | Right = 2 >")
}

func TestParseUnionActiveLabelNotInRest(t *testing.T) {
	e := parse(t, "< Left = 1 | Right : Bool >")
	ul, _ := ast.AsUnionLit(e)
	_, dup := ul.Rest.Get("Left")
	qt.Assert(t, qt.IsFalse(dup))
}

func TestParseFieldSelector(t *testing.T) {
	e := parse(t, "{ a = 1 }.a")
	f, ok := e.(*ast.Field)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(f.Label, "a"))
}

func TestParseProjectSelector(t *testing.T) {
	e := parse(t, "{ a = 1, b = 2 }.{ a, b }")
	proj, ok := e.(*ast.Project)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.DeepEquals(proj.Labels, []string{"a", "b"}))
}

func TestParseEmptyProjectSelector(t *testing.T) {
	e := parse(t, "{ a = 1 }.{}")
	proj, ok := e.(*ast.Project)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.HasLen(proj.Labels, 0))
}

func TestParseApplicationIsLeftNested(t *testing.T) {
	// "f a b" parses as App(App(f, a), b).
	e := parse(t, "f a b")
	outer, ok := ast.AsApp(e)
	qt.Assert(t, qt.IsTrue(ok))
	inner, ok := ast.AsApp(outer.Fn)
	qt.Assert(t, qt.IsTrue(ok))
	fv, ok := ast.AsVar(inner.Fn)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(fv.Name, "f"))
}

func TestParseSomePrefixWrapsOnlyFirstOperand(t *testing.T) {
	// "Some f x" is App(Some f, x), not Some(f x).
	e := parse(t, "Some f x")
	outer, ok := ast.AsApp(e)
	qt.Assert(t, qt.IsTrue(ok))
	some, ok := ast.AsSome(outer.Fn)
	qt.Assert(t, qt.IsTrue(ok))
	fv, ok := ast.AsVar(some.X)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(fv.Name, "f"))
}

func TestParseOperatorPrecedenceEqualityBindsTighterThanPlus(t *testing.T) {
	// "1 + 2 == 3" parses as 1 + (2 == 3), not (1 + 2) == 3: '+' is looser
	// than '==', so '==' binds tighter and groups "2 == 3" first, i.e. the
	// tree's outer BinOp is the "+".
	e := parse(t, "1 + 2 == 3")
	bin, ok := e.(*ast.BinOp)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(bin.Op, ast.OpNaturalPlus))
	rhs, ok := bin.Y.(*ast.BinOp)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(rhs.Op, ast.OpBoolEQ))
}

func TestParsePlusRequiresWhitespace(t *testing.T) {
	// "1+2" is NOT NaturalPlus — the scanner lexes it as two adjacent
	// literals and the parser then reports the trailing "+2" as
	// unconsumed input: the "+" operator requires non-empty
	// whitespace between it and its right operand.
	wantErr(t, "1+2")
}

func TestParseArrowSugarForPiWithUnderscoreBinder(t *testing.T) {
	e := parse(t, "Natural -> Bool")
	pi, ok := ast.AsPi(e)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(pi.Label, "_"))
}

func TestParseLambdaBindsLooserThanOperators(t *testing.T) {
	e := parse(t, `λ(x : Natural) → x + 1`)
	lam, ok := ast.AsLam(e)
	qt.Assert(t, qt.IsTrue(ok))
	_, ok = lam.Body.(*ast.BinOp)
	qt.Assert(t, qt.IsTrue(ok))
}

func TestParseMultiLetDesugarsToNestedSingleLets(t *testing.T) {
	e := parse(t, "let x = 1 let y = 2 in x + y")
	outer, ok := ast.AsLet(e)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(outer.Label, "x"))
	inner, ok := ast.AsLet(outer.Body)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(inner.Label, "y"))
}

func TestParseAnnotationIsLoosestLevel(t *testing.T) {
	e := parse(t, "1 + 1 : Natural")
	annot, ok := e.(*ast.Annot)
	qt.Assert(t, qt.IsTrue(ok))
	_, ok = annot.X.(*ast.BinOp)
	qt.Assert(t, qt.IsTrue(ok))
}

func TestParseEmptyListRequiresAnnotation(t *testing.T) {
	wantErr(t, "[]")
}

func TestParseEmptyListAnnotated(t *testing.T) {
	e := parse(t, "[] : List Natural")
	ll, ok := ast.AsListLit(e)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.HasLen(ll.Elems, 0))
	qt.Assert(t, qt.IsNotNil(ll.ElemType))
}

func TestParseNonEmptyListHasNoAnnotation(t *testing.T) {
	e := parse(t, "[1, 2, 3]")
	ll, ok := ast.AsListLit(e)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.HasLen(ll.Elems, 3))
	qt.Assert(t, qt.IsNil(ll.ElemType))
}

func TestParseDoubleQuotedStringInterpolation(t *testing.T) {
	e := parse(t, `"a ${1 + 1} b"`)
	tl, ok := ast.AsTextLit(e)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(tl.Prefix, "a "))
	qt.Assert(t, qt.HasLen(tl.Parts, 1))
	qt.Assert(t, qt.Equals(tl.Parts[0].Suffix, " b"))
}

func TestParseSingleQuotedStringEscapes(t *testing.T) {
	// ''${ is the single-quoted form's escape for a literal "${".
	e := parse(t, "''it costs ''${5}''")
	tl, ok := ast.AsTextLit(e)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(tl.Prefix, "it costs ${5}"))
}

func TestParseDoubleQuotedStringRejectsUnknownEscape(t *testing.T) {
	wantErr(t, `"\q"`)
}

func TestParseLocalImportHere(t *testing.T) {
	e := parse(t, "./foo/bar.noema")
	imp, ok := e.(*ast.Import)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(imp.Hashed.Kind, ast.LocalImport))
	qt.Assert(t, qt.Equals(imp.Hashed.Origin, ast.Here))
	qt.Assert(t, qt.DeepEquals(imp.Hashed.Dir, []string{"foo"}))
	qt.Assert(t, qt.Equals(imp.Hashed.File, "bar.noema"))
}

func TestParseLocalImportParent(t *testing.T) {
	e := parse(t, "../bar.noema")
	imp, ok := e.(*ast.Import)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(imp.Hashed.Origin, ast.Parent))
}

func TestParseRemoteImportWithQueryAndFragment(t *testing.T) {
	e := parse(t, "https://example.com/a/b.noema?x=1#frag")
	imp, ok := e.(*ast.Import)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(imp.Hashed.Kind, ast.RemoteImport))
	qt.Assert(t, qt.Equals(imp.Hashed.Scheme, "https"))
	qt.Assert(t, qt.Equals(imp.Hashed.Authority, "example.com"))
	qt.Assert(t, qt.DeepEquals(imp.Hashed.Dir, []string{"a"}))
	qt.Assert(t, qt.Equals(imp.Hashed.File, "b.noema"))
	qt.Assert(t, qt.IsTrue(imp.Hashed.HasQuery))
	qt.Assert(t, qt.Equals(imp.Hashed.Query, "x=1"))
	qt.Assert(t, qt.IsTrue(imp.Hashed.HasFragment))
	qt.Assert(t, qt.Equals(imp.Hashed.Fragment, "frag"))
}

func TestParseEnvImport(t *testing.T) {
	e := parse(t, "env:HOME")
	imp, ok := e.(*ast.Import)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(imp.Hashed.Kind, ast.EnvImport))
	qt.Assert(t, qt.Equals(imp.Hashed.EnvName, "HOME"))
}

func TestParseMissingImport(t *testing.T) {
	e := parse(t, "missing")
	_, ok := e.(*ast.Import)
	qt.Assert(t, qt.IsTrue(ok))
}

func TestParseImportAlternative(t *testing.T) {
	e := parse(t, "missing ? 1")
	alt, ok := e.(*ast.ImportAlt)
	qt.Assert(t, qt.IsTrue(ok))
	_, ok = alt.Primary.(*ast.Import)
	qt.Assert(t, qt.IsTrue(ok))
}

func TestParseImportSha256Pin(t *testing.T) {
	hash := "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"
	e := parse(t, "./foo.noema sha256:"+hash)
	imp, ok := e.(*ast.Import)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(imp.Hashed.Hash, hash))
}

func TestParseImportAsText(t *testing.T) {
	e := parse(t, "./foo.txt as Text")
	imp, ok := e.(*ast.Import)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.IsTrue(imp.AsText))
}

func TestParseMergeWithResultType(t *testing.T) {
	e := parse(t, "merge {=} <> : Natural")
	m, ok := e.(*ast.Merge)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.IsNotNil(m.Type))
}

func TestParseConstructorsPrefix(t *testing.T) {
	e := parse(t, "constructors (< Left : Natural | Right : Bool >)")
	c, ok := e.(*ast.Constructors)
	qt.Assert(t, qt.IsTrue(ok))
	_, ok = ast.AsUnion(c.X)
	qt.Assert(t, qt.IsTrue(ok))
}

func TestParseAmbiguityRejectsTrailingGarbage(t *testing.T) {
	// A successful parse must consume all input; trailing tokens that
	// don't belong to any production are the longest-prefix failure.
	wantErr(t, "1 2 )")
}

func TestParseReportsErrorPosition(t *testing.T) {
	_, err := parser.ParseExpr("test", []byte("1 + "))
	qt.Assert(t, qt.IsNotNil(err))
	tokErr, ok := err.(*token.Error)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.IsTrue(tokErr.Pos.IsValid()))
}
