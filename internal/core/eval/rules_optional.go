package eval

import (
	"github.com/noema-lang/noema/ast"
	"github.com/noema-lang/noema/internal/core/adt"
)

func optionalOf(elem ast.Expr) ast.Expr {
	return &ast.App{Fn: &ast.TypeConst{Name: ast.OptionalType}, Arg: elem}
}

// normalizeOptionalLit eliminates OptionalLit entirely: the "none" form
// becomes None applied to the element type, the "just" form becomes Some
// — unconditional, so this case is always a change.
func (c *Context) normalizeOptionalLit(x *ast.OptionalLit) (ast.Expr, bool) {
	typ, _ := c.normalize(x.ElemType)
	if x.Elem == nil {
		return noneOf(typ), true
	}
	elem, _ := c.normalize(x.Elem)
	return &ast.Some{SomePos: x.LitPos, X: elem}, true
}

// optionalBuiltins dispatches the Optional/* built-in family.
func optionalBuiltins(s adt.Spine) (ast.Expr, bool) {
	b, ok := ast.AsBuiltin(s.Head)
	if !ok {
		return nil, false
	}
	switch b.Name {
	case ast.OptionalBuild:
		return optionalBuild(s)
	case ast.OptionalFold:
		return optionalFold(s)
	}
	return nil, false
}

// optionalBuild expands Optional/build τ g via the Church-encoding
// identity g (Optional τ) (λa:τ. Some a) (None τ), short-circuiting the
// build/fold fusion law first.
func optionalBuild(s adt.Spine) (ast.Expr, bool) {
	if s.Len() < 2 {
		return nil, false
	}
	typ, _ := s.At(0)
	g, _ := s.At(1)

	inner := adt.View(g)
	if ib, ok := ast.AsBuiltin(inner.Head); ok && ib.Name == ast.OptionalFold && inner.Len() == 2 {
		e, _ := inner.At(1)
		return applyRest(e, s.Args[2:]), true
	}

	just := &ast.Lam{Label: "a", Type: typ, Body: &ast.Some{X: &ast.Var{Name: "a"}}}
	nothing := noneOf(typ)
	result := applyRest(g, []ast.Expr{optionalOf(typ), just, nothing})
	return applyRest(result, s.Args[2:]), true
}

// optionalFold matches Optional/fold _ opt _ just nothing against opt's
// None/Some form. A raw OptionalLit never reaches here: it was already
// rewritten to one of those two forms by normalizeOptionalLit before this
// builtin's argument was normalized (child-first traversal).
func optionalFold(s adt.Spine) (ast.Expr, bool) {
	if s.Len() < 5 {
		return nil, false
	}
	opt, _ := s.At(1)
	just, _ := s.At(3)
	nothing, _ := s.At(4)

	if some, ok := ast.AsSome(opt); ok {
		return applyRest(&ast.App{Fn: just, Arg: some.X}, s.Args[5:]), true
	}
	optSpine := adt.View(opt)
	if ib, ok := ast.AsBuiltin(optSpine.Head); ok && ib.Name == ast.NoneBuiltin && optSpine.Len() == 1 {
		return applyRest(nothing, s.Args[5:]), true
	}
	return nil, false
}
