package eval

import (
	"github.com/cockroachdb/apd/v3"

	"github.com/noema-lang/noema/ast"
	"github.com/noema-lang/noema/internal/core/adt"
	"github.com/noema-lang/noema/literal"
)

func naturalLit(n int64) *ast.NaturalLit {
	return &ast.NaturalLit{Value: *apd.New(n, 0)}
}

func naturalPlus(x, y ast.Expr) (ast.Expr, bool) {
	lx, lok := ast.AsNaturalLit(x)
	ly, lok2 := ast.AsNaturalLit(y)
	if lok && lok2 {
		var sum apd.Decimal
		if _, err := literal.Context().Add(&sum, &lx.Value, &ly.Value); err != nil {
			panic(err)
		}
		return &ast.NaturalLit{Value: sum}, true
	}
	if lok && lx.Value.IsZero() {
		return y, true
	}
	if lok2 && ly.Value.IsZero() {
		return x, true
	}
	return nil, false
}

func naturalTimes(x, y ast.Expr) (ast.Expr, bool) {
	lx, lok := ast.AsNaturalLit(x)
	ly, lok2 := ast.AsNaturalLit(y)
	if lok && lok2 {
		var prod apd.Decimal
		if _, err := literal.Context().Mul(&prod, &lx.Value, &ly.Value); err != nil {
			panic(err)
		}
		return &ast.NaturalLit{Value: prod}, true
	}
	if lok && lx.Value.IsZero() {
		return lx, true
	}
	if lok2 && ly.Value.IsZero() {
		return ly, true
	}
	if lok && isOne(&lx.Value) {
		return y, true
	}
	if lok2 && isOne(&ly.Value) {
		return x, true
	}
	return nil, false
}

func isOne(d *apd.Decimal) bool {
	return d.Cmp(apd.New(1, 0)) == 0
}

// naturalEven reports whether a non-negative integral decimal is even by
// inspecting its last base-10 digit, avoiding an int64 conversion that
// would overflow for arbitrarily large naturals.
func naturalEven(d *apd.Decimal) bool {
	s := literal.FormatNatural(d)
	last := s[len(s)-1]
	return (last-'0')%2 == 0
}

// naturalBuiltins dispatches the Natural/* built-in family on an
// application spine.
func naturalBuiltins(s adt.Spine) (ast.Expr, bool) {
	b, ok := ast.AsBuiltin(s.Head)
	if !ok {
		return nil, false
	}
	switch b.Name {
	case ast.NaturalFold:
		return naturalFold(s)
	case ast.NaturalBuild:
		return naturalBuild(s)
	case ast.NaturalIsZero:
		return natUnary(s, func(d *apd.Decimal) ast.Expr { return &ast.BoolLit{Value: d.IsZero()} })
	case ast.NaturalEven:
		return natUnary(s, func(d *apd.Decimal) ast.Expr { return &ast.BoolLit{Value: naturalEven(d)} })
	case ast.NaturalOdd:
		return natUnary(s, func(d *apd.Decimal) ast.Expr { return &ast.BoolLit{Value: !naturalEven(d)} })
	case ast.NaturalToInteger:
		return natUnary(s, func(d *apd.Decimal) ast.Expr {
			v := *d
			v.Negative = false
			return &ast.IntegerLit{Value: v}
		})
	case ast.NaturalShow:
		return natUnary(s, func(d *apd.Decimal) ast.Expr {
			return textLitOf(literal.FormatNatural(d))
		})
	}
	return nil, false
}

// natUnary is the common shape of every 1-argument Natural/* function:
// decline unless the sole argument is a NaturalLit, otherwise build the
// result and re-apply any extra (over-)applied arguments.
func natUnary(s adt.Spine, build func(*apd.Decimal) ast.Expr) (ast.Expr, bool) {
	if s.Len() < 1 {
		return nil, false
	}
	arg, _ := s.At(0)
	n, ok := ast.AsNaturalLit(arg)
	if !ok {
		return nil, false
	}
	return applyRest(build(&n.Value), s.Args[1:]), true
}

func applyRest(head ast.Expr, rest []ast.Expr) ast.Expr {
	out := head
	for _, a := range rest {
		out = &ast.App{Fn: out, Arg: a}
	}
	return out
}

// naturalFold computes Natural/fold n τ succ zero by unrolling succ n
// times over zero. There is no bounded-type check: every fold, whatever
// its result type, builds the unrolled term and leaves it to be
// normalized. n must fit an int64; a larger literal leaves the
// application unreduced.
func naturalFold(s adt.Spine) (ast.Expr, bool) {
	if s.Len() < 4 {
		return nil, false
	}
	nArg, _ := s.At(0)
	n, ok := ast.AsNaturalLit(nArg)
	if !ok {
		return nil, false
	}
	count, err := n.Value.Int64()
	if err != nil {
		return nil, false
	}
	succ, _ := s.At(2)
	zero, _ := s.At(3)
	result := zero
	for i := int64(0); i < count; i++ {
		result = &ast.App{Fn: succ, Arg: result}
	}
	return applyRest(result, s.Args[4:]), true
}

// naturalBuild expands Natural/build g via the Church-encoding identity
// g Natural (λx:Natural. x + 1) 0, short-circuiting the build/fold fusion
// law first.
func naturalBuild(s adt.Spine) (ast.Expr, bool) {
	if s.Len() < 1 {
		return nil, false
	}
	g, _ := s.At(0)
	inner := adt.View(g)
	if ib, ok := ast.AsBuiltin(inner.Head); ok && ib.Name == ast.NaturalFold && inner.Len() == 1 {
		e, _ := inner.At(0)
		return applyRest(e, s.Args[1:]), true
	}
	natType := &ast.TypeConst{Name: ast.NaturalType}
	succ := &ast.Lam{
		Label: "x",
		Type:  natType,
		Body:  &ast.BinOp{Op: ast.OpNaturalPlus, X: &ast.Var{Name: "x"}, Y: naturalLit(1)},
	}
	result := applyRest(g, []ast.Expr{natType, succ, naturalLit(0)})
	return applyRest(result, s.Args[1:]), true
}
