// Package noemafmt renders an ast.Expr back to Noema source text. CUE
// has no direct analogue (pretty-printing is explicitly out of scope for the
// evaluator itself) but is needed as a test-only collaborator for
// the parser round-trip property and as the display
// layer for cmd/noema. Every compound subexpression is fully
// parenthesized rather than precedence-aware, trading readability for a
// printer that is trivially a left inverse of the parser.
package noemafmt

import (
	"fmt"
	"strings"

	"github.com/noema-lang/noema/ast"
	"github.com/noema-lang/noema/literal"
)

// Sprint renders e as Noema source text.
func Sprint(e ast.Expr) string {
	var b strings.Builder
	write(&b, e)
	return b.String()
}

func write(b *strings.Builder, e ast.Expr) {
	switch x := e.(type) {
	case *ast.Const:
		b.WriteString(x.Sort.String())

	case *ast.TypeConst:
		b.WriteString(x.Name.String())

	case *ast.Builtin:
		b.WriteString(x.Name.String())

	case *ast.Var:
		writeLabel(b, x.Name)
		if x.Index != 0 {
			fmt.Fprintf(b, "@%d", x.Index)
		}

	case *ast.BoolLit:
		if x.Value {
			b.WriteString("True")
		} else {
			b.WriteString("False")
		}

	case *ast.BoolIf:
		b.WriteString("(if ")
		write(b, x.Cond)
		b.WriteString(" then ")
		write(b, x.Then)
		b.WriteString(" else ")
		write(b, x.Else)
		b.WriteByte(')')

	case *ast.BinOp:
		b.WriteByte('(')
		write(b, x.X)
		fmt.Fprintf(b, " %s ", opText(x.Op))
		write(b, x.Y)
		b.WriteByte(')')

	case *ast.NaturalLit:
		b.WriteString(literal.FormatNatural(&x.Value))

	case *ast.IntegerLit:
		b.WriteString(literal.FormatInteger(&x.Value))

	case *ast.DoubleLit:
		b.WriteString(literal.FormatDouble(x.Value))

	case *ast.TextLit:
		writeTextLit(b, x)

	case *ast.ListLit:
		if x.ElemType != nil {
			b.WriteString("([] : List ")
			write(b, x.ElemType)
			b.WriteByte(')')
			return
		}
		b.WriteByte('[')
		for i, elem := range x.Elems {
			if i > 0 {
				b.WriteString(", ")
			}
			write(b, elem)
		}
		b.WriteByte(']')

	case *ast.Some:
		b.WriteString("Some (")
		write(b, x.X)
		b.WriteByte(')')

	case *ast.Record:
		writeFields(b, x.Fields, ':', "{}")

	case *ast.RecordLit:
		writeFields(b, x.Fields, '=', "{=}")

	case *ast.Field:
		b.WriteByte('(')
		write(b, x.X)
		b.WriteString(").")
		writeLabel(b, x.Label)

	case *ast.Project:
		b.WriteByte('(')
		write(b, x.X)
		b.WriteString(").{")
		for i, l := range x.Labels {
			if i > 0 {
				b.WriteString(", ")
			}
			writeLabel(b, l)
		}
		b.WriteByte('}')

	case *ast.Union:
		writeUnionAlts(b, x.Alts)

	case *ast.UnionLit:
		b.WriteByte('<')
		writeLabel(b, x.Label)
		b.WriteString(" = ")
		write(b, x.X)
		for _, k := range x.Rest.Keys() {
			v, _ := x.Rest.Get(k)
			b.WriteString(" | ")
			writeLabel(b, k)
			b.WriteString(" : ")
			write(b, v)
		}
		b.WriteByte('>')

	case *ast.Merge:
		b.WriteString("(merge (")
		write(b, x.Handlers)
		b.WriteString(") (")
		write(b, x.Union)
		b.WriteByte(')')
		if x.Type != nil {
			b.WriteString(" : ")
			write(b, x.Type)
		}
		b.WriteByte(')')

	case *ast.Constructors:
		b.WriteString("constructors (")
		write(b, x.X)
		b.WriteByte(')')

	case *ast.Lam:
		b.WriteString("(\\(")
		writeLabel(b, x.Label)
		b.WriteString(" : ")
		write(b, x.Type)
		b.WriteString(") -> ")
		write(b, x.Body)
		b.WriteByte(')')

	case *ast.Pi:
		b.WriteString("(forall(")
		writeLabel(b, x.Label)
		b.WriteString(" : ")
		write(b, x.Type)
		b.WriteString(") -> ")
		write(b, x.Body)
		b.WriteByte(')')

	case *ast.Let:
		b.WriteString("(let ")
		writeLabel(b, x.Label)
		if x.Annot != nil {
			b.WriteString(" : ")
			write(b, x.Annot)
		}
		b.WriteString(" = ")
		write(b, x.Value)
		b.WriteString(" in ")
		write(b, x.Body)
		b.WriteByte(')')

	case *ast.App:
		b.WriteByte('(')
		write(b, x.Fn)
		b.WriteString(") (")
		write(b, x.Arg)
		b.WriteByte(')')

	case *ast.Annot:
		b.WriteByte('(')
		write(b, x.X)
		b.WriteString(" : ")
		write(b, x.Type)
		b.WriteByte(')')

	default:
		// Import, ImportAlt and OptionalLit have no surface grammar this
		// printer reconstructs (imports are untouched by the evaluator,
		// OptionalLit never survives parsing — normalization eliminates it on
		// sight); render a debug placeholder instead of valid source.
		fmt.Fprintf(b, "<unprintable %T>", e)
	}
}

func opText(op ast.Op) string {
	switch op {
	case ast.OpBoolAnd:
		return "&&"
	case ast.OpBoolOr:
		return "||"
	case ast.OpBoolEQ:
		return "=="
	case ast.OpBoolNE:
		return "!="
	case ast.OpNaturalPlus:
		return "+"
	case ast.OpNaturalTimes:
		return "*"
	case ast.OpTextAppend:
		return "++"
	case ast.OpListAppend:
		return "#"
	case ast.OpCombine:
		return `/\`
	case ast.OpCombineTypes:
		return `//\\`
	case ast.OpPrefer:
		return "//"
	default:
		return "?"
	}
}

func writeFields(b *strings.Builder, m *ast.OrderedMap, sep byte, empty string) {
	if m.Len() == 0 {
		b.WriteString(empty)
		return
	}
	b.WriteString("{ ")
	for i, k := range m.Keys() {
		if i > 0 {
			b.WriteString(", ")
		}
		v, _ := m.Get(k)
		writeLabel(b, k)
		fmt.Fprintf(b, " %c ", sep)
		write(b, v)
	}
	b.WriteString(" }")
}

// writeUnionAlts prints every alternative, adding " : type" only for
// those that carry a payload type: the surface grammar parsed by this
// module always supplies one (parseUnion requires ':' on every entry of a
// union type), so a nil Alts value here would indicate an AST built
// outside the grammar.
func writeUnionAlts(b *strings.Builder, m *ast.OrderedMap) {
	if m.Len() == 0 {
		b.WriteString("<>")
		return
	}
	b.WriteByte('<')
	for i, k := range m.Keys() {
		if i > 0 {
			b.WriteString(" | ")
		}
		v, _ := m.Get(k)
		writeLabel(b, k)
		if v != nil {
			b.WriteString(" : ")
			write(b, v)
		}
	}
	b.WriteByte('>')
}

func writeTextLit(b *strings.Builder, x *ast.TextLit) {
	b.WriteByte('"')
	writeTextChunk(b, x.Prefix)
	for _, p := range x.Parts {
		b.WriteString("${")
		write(b, p.Expr)
		b.WriteByte('}')
		writeTextChunk(b, p.Suffix)
	}
	b.WriteByte('"')
}

// writeTextChunk escapes a literal text run for the double-quoted grammar:
// backslash and the delimiting quote need the ordinary \-escapes, and a
// literal "$" immediately before "{" is written as a \u escape of code
// point 0024 since this
// grammar has no \$ escape to block interpolation (literal/string.go).
func writeTextChunk(b *strings.Builder, s string) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\':
			b.WriteString(`\\`)
		case c == '"':
			b.WriteString(`\"`)
		case c == '\n':
			b.WriteString(`\n`)
		case c == '\t':
			b.WriteString(`\t`)
		case c == '$' && i+1 < len(s) && s[i+1] == '{':
			b.WriteString("\\u0024")
		default:
			b.WriteByte(c)
		}
	}
}

// writeLabel backtick-quotes a label unless it is a plain, non-reserved
// identifier, matching the grammar's own reserved-word escaping rule
// (scanner's quoted-label handling).
func writeLabel(b *strings.Builder, label string) {
	if isPlainLabel(label) {
		b.WriteString(label)
		return
	}
	b.WriteByte('`')
	b.WriteString(label)
	b.WriteByte('`')
}

func isPlainLabel(s string) bool {
	if s == "" || isReservedWord(s) {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		isAlpha := c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		isDigit := c >= '0' && c <= '9'
		if i == 0 && !isAlpha {
			return false
		}
		if !isAlpha && !isDigit {
			return false
		}
	}
	return true
}

var reservedWords = map[string]bool{
	"let": true, "in": true, "Type": true, "Kind": true, "Sort": true,
	"forall": true, "Bool": true, "True": true, "False": true,
	"merge": true, "if": true, "then": true, "else": true,
	"as": true, "using": true, "missing": true, "env": true,
	"constructors": true, "Some": true, "None": true,
	"Natural": true, "Integer": true, "Double": true, "Text": true,
	"List": true, "Optional": true,
}

func isReservedWord(s string) bool {
	if reservedWords[s] {
		return true
	}
	_, ok := ast.LookupBuiltin(s)
	return ok
}
