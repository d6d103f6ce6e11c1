package eval

import (
	"github.com/cockroachdb/apd/v3"

	"github.com/noema-lang/noema/ast"
	"github.com/noema-lang/noema/internal/core/adt"
	"github.com/noema-lang/noema/literal"
)

// integerBuiltins dispatches the Integer/* built-in family.
func integerBuiltins(s adt.Spine) (ast.Expr, bool) {
	b, ok := ast.AsBuiltin(s.Head)
	if !ok {
		return nil, false
	}
	switch b.Name {
	case ast.IntegerShow:
		return intUnary(s, func(d *apd.Decimal) ast.Expr {
			return textLitOf(literal.FormatInteger(d))
		})
	case ast.IntegerToDouble:
		return intUnary(s, func(d *apd.Decimal) ast.Expr {
			f, _ := d.Float64()
			return &ast.DoubleLit{Value: f}
		})
	}
	return nil, false
}

func intUnary(s adt.Spine, build func(*apd.Decimal) ast.Expr) (ast.Expr, bool) {
	if s.Len() < 1 {
		return nil, false
	}
	arg, _ := s.At(0)
	z, ok := ast.AsIntegerLit(arg)
	if !ok {
		return nil, false
	}
	return applyRest(build(&z.Value), s.Args[1:]), true
}
