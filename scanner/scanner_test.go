package scanner_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/noema-lang/noema/scanner"
	"github.com/noema-lang/noema/token"
)

type scanned struct {
	tok token.Token
	lit string
}

func scanAll(t *testing.T, src string) []scanned {
	t.Helper()
	file := token.NewFile("test", len(src))
	var s scanner.Scanner
	var errs []string
	scanner.Init(&s, file, []byte(src), func(pos token.Pos, msg string) {
		errs = append(errs, msg)
	})
	var out []scanned
	for {
		_, tok, lit := s.Scan()
		if tok == token.EOF {
			break
		}
		out = append(out, scanned{tok, lit})
	}
	qt.Assert(t, qt.HasLen(errs, 0), qt.Commentf("errors: %v", errs))
	return out
}

func TestScanLabelsAndKeywords(t *testing.T) {
	got := scanAll(t, "let x = foo-bar in x")
	want := []scanned{
		{token.LET, ""},
		{token.IDENT, "x"},
		{token.EQUAL, ""},
		{token.IDENT, "foo-bar"},
		{token.IN, ""},
		{token.IDENT, "x"},
	}
	qt.Assert(t, qt.DeepEquals(got, want))
}

func TestScanBuiltinIdentIsPlainIdent(t *testing.T) {
	// "Natural/even" is a reserved word, but it's recognized standalone by
	// the parser, not the scanner — the scanner just hands back IDENT text.
	got := scanAll(t, "Natural/even")
	qt.Assert(t, qt.DeepEquals(got, []scanned{{token.IDENT, "Natural/even"}}))
}

func TestScanBacktickQuotedLabelKeepsBackticks(t *testing.T) {
	got := scanAll(t, "`in`")
	qt.Assert(t, qt.DeepEquals(got, []scanned{{token.IDENT, "`in`"}}))
}

func TestScanNaturalLiteral(t *testing.T) {
	got := scanAll(t, "123")
	qt.Assert(t, qt.DeepEquals(got, []scanned{{token.NATURAL, "123"}}))
}

func TestScanIntegerLiteral(t *testing.T) {
	got := scanAll(t, "+3 -4")
	qt.Assert(t, qt.DeepEquals(got, []scanned{{token.INTEGER, "+3"}, {token.INTEGER, "-4"}}))
}

func TestScanDoubleLiteralRequiresFracOrExp(t *testing.T) {
	got := scanAll(t, "3.14 1e10 +2.5e-3")
	want := []scanned{
		{token.DOUBLE, "3.14"},
		{token.DOUBLE, "1e10"},
		{token.DOUBLE, "+2.5e-3"},
	}
	qt.Assert(t, qt.DeepEquals(got, want))
}

func TestScanAdjacentPlusIsNotAnOperator(t *testing.T) {
	// "1+2" lexes as two adjacent literals, NATURAL then INTEGER, never
	// as a NaturalPlus operator (spec's whitespace-disambiguation rule).
	got := scanAll(t, "1+2")
	qt.Assert(t, qt.DeepEquals(got, []scanned{{token.NATURAL, "1"}, {token.INTEGER, "+2"}}))
}

func TestScanPlusOperatorRequiresSeparationFromDigits(t *testing.T) {
	got := scanAll(t, "1 + 2")
	want := []scanned{{token.NATURAL, "1"}, {token.PLUS, ""}, {token.NATURAL, "2"}}
	qt.Assert(t, qt.DeepEquals(got, want))
}

func TestScanCombineOperators(t *testing.T) {
	got := scanAll(t, `/\ //\\ //`)
	want := []scanned{
		{token.COMBINE, ""},
		{token.COMBINETYPES, ""},
		{token.PREFER, ""},
	}
	qt.Assert(t, qt.DeepEquals(got, want))
}

func TestScanLineComment(t *testing.T) {
	got := scanAll(t, "1 -- comment\n2")
	qt.Assert(t, qt.DeepEquals(got, []scanned{{token.NATURAL, "1"}, {token.NATURAL, "2"}}))
}

func TestScanNestedBlockComment(t *testing.T) {
	got := scanAll(t, "1 {- outer {- inner -} still outer -} 2")
	qt.Assert(t, qt.DeepEquals(got, []scanned{{token.NATURAL, "1"}, {token.NATURAL, "2"}}))
}

func TestScanDoubleQuotedStringWithInterpolation(t *testing.T) {
	// Scan stops the literal at "${" and then tokenizes the interpolated
	// expression; after its closing "}", ResumeInterpolation scans the
	// rest of the literal.
	src := `"hello ${x}!"`
	var s scanner.Scanner
	var errs []string
	scanner.Init(&s, token.NewFile("test", len(src)), []byte(src), func(pos token.Pos, msg string) {
		errs = append(errs, msg)
	})
	var got []scanned
	for i := 0; i < 3; i++ {
		_, tok, lit := s.Scan()
		got = append(got, scanned{tok, lit})
	}
	qt.Assert(t, qt.HasLen(got, 3))
	qt.Assert(t, qt.Equals(got[0].tok, token.INTERPOLATION))
	qt.Assert(t, qt.Equals(got[0].lit, `"hello ${`))
	qt.Assert(t, qt.DeepEquals(got[1:], []scanned{{token.IDENT, "x"}, {token.RBRACE, ""}}))
	tok, lit := s.ResumeInterpolation(false)
	qt.Assert(t, qt.Equals(tok, token.STRING))
	qt.Assert(t, qt.Equals(lit, `!"`))
	qt.Assert(t, qt.HasLen(errs, 0), qt.Commentf("errors: %v", errs))
}

func TestScanSimpleDoubleQuotedString(t *testing.T) {
	got := scanAll(t, `"hello"`)
	qt.Assert(t, qt.DeepEquals(got, []scanned{{token.STRING, `"hello"`}}))
}

func TestScanSingleQuotedStringEscapes(t *testing.T) {
	got := scanAll(t, "''it's '''' fine''")
	qt.Assert(t, qt.HasLen(got, 1))
	qt.Assert(t, qt.Equals(got[0].tok, token.STRING))
}
