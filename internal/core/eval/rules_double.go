package eval

import (
	"github.com/noema-lang/noema/ast"
	"github.com/noema-lang/noema/internal/core/adt"
	"github.com/noema-lang/noema/literal"
)

// doubleBuiltins dispatches the Double/* built-in family:
// Double/show is the only member.
func doubleBuiltins(s adt.Spine) (ast.Expr, bool) {
	b, ok := ast.AsBuiltin(s.Head)
	if !ok || b.Name != ast.DoubleShow {
		return nil, false
	}
	if s.Len() < 1 {
		return nil, false
	}
	arg, _ := s.At(0)
	d, ok := ast.AsDoubleLit(arg)
	if !ok {
		return nil, false
	}
	return applyRest(textLitOf(literal.FormatDouble(d.Value)), s.Args[1:]), true
}
