package eval

import (
	"github.com/noema-lang/noema/ast"
	"github.com/noema-lang/noema/internal/core/adt"
)

func listOf(elem ast.Expr) ast.Expr {
	return &ast.App{Fn: &ast.TypeConst{Name: ast.ListType}, Arg: elem}
}

func noneOf(elem ast.Expr) ast.Expr {
	return &ast.App{Fn: &ast.Builtin{Name: ast.NoneBuiltin}, Arg: elem}
}

// normalizeListLit normalizes a list literal's sole child (the element
// type, for the empty-list form) or every element (the non-empty form).
// The "drop the annotation on a non-empty literal" rule
// has no separate case here: that situation is an Annot node wrapping a
// ListLit, already handled by the Annot rule in eval.go.
func (c *Context) normalizeListLit(x *ast.ListLit) (ast.Expr, bool) {
	if x.ElemType != nil {
		typ, changed := c.normalize(x.ElemType)
		if !changed {
			return x, false
		}
		return &ast.ListLit{LitPos: x.LitPos, ElemType: typ}, true
	}
	elems := make([]ast.Expr, len(x.Elems))
	changed := false
	for i, e := range x.Elems {
		ne, ch := c.normalize(e)
		if ch {
			changed = true
		}
		elems[i] = ne
	}
	if !changed {
		return x, false
	}
	return &ast.ListLit{LitPos: x.LitPos, Elems: elems}, true
}

// listAppend implements ListAppend(l,r): an empty list on either side is
// the identity (regardless of whether the other side is itself a
// literal); two list literals concatenate.
func listAppend(x, y ast.Expr) (ast.Expr, bool) {
	lx, lok := ast.AsListLit(x)
	if lok && lx.ElemType != nil {
		return y, true
	}
	ly, lok2 := ast.AsListLit(y)
	if lok2 && ly.ElemType != nil {
		return x, true
	}
	if lok && lok2 {
		elems := append(append([]ast.Expr{}, lx.Elems...), ly.Elems...)
		return &ast.ListLit{Elems: elems}, true
	}
	return nil, false
}

// listBuiltins dispatches the List/* built-in family.
func listBuiltins(s adt.Spine) (ast.Expr, bool) {
	b, ok := ast.AsBuiltin(s.Head)
	if !ok {
		return nil, false
	}
	switch b.Name {
	case ast.ListBuild:
		return listBuild(s)
	case ast.ListFold:
		return listFold(s)
	case ast.ListLength:
		return listLength(s)
	case ast.ListHead:
		return listHeadOrLast(s, true)
	case ast.ListLast:
		return listHeadOrLast(s, false)
	case ast.ListIndexed:
		return listIndexed(s)
	case ast.ListReverse:
		return listReverse(s)
	}
	return nil, false
}

// listBuild expands List/build τ g via the Church-encoding identity
// g (List τ) cons nil, short-circuiting the build/fold fusion law first.
func listBuild(s adt.Spine) (ast.Expr, bool) {
	if s.Len() < 2 {
		return nil, false
	}
	typ, _ := s.At(0)
	g, _ := s.At(1)

	inner := adt.View(g)
	if ib, ok := ast.AsBuiltin(inner.Head); ok && ib.Name == ast.ListFold && inner.Len() == 2 {
		e, _ := inner.At(1)
		return applyRest(e, s.Args[2:]), true
	}

	cons := &ast.Lam{
		Label: "a",
		Type:  typ,
		Body: &ast.Lam{
			Label: "as",
			Type:  listOf(ast.Shift(1, "a", 0, typ)),
			Body: &ast.BinOp{
				Op: ast.OpListAppend,
				X:  &ast.ListLit{Elems: []ast.Expr{&ast.Var{Name: "a"}}},
				Y:  &ast.Var{Name: "as"},
			},
		},
	}
	nilVal := &ast.ListLit{ElemType: typ}
	result := applyRest(g, []ast.Expr{listOf(typ), cons, nilVal})
	return applyRest(result, s.Args[2:]), true
}

// listFold right-folds List/fold _ xs τ cons nil over a literal list.
func listFold(s adt.Spine) (ast.Expr, bool) {
	if s.Len() < 5 {
		return nil, false
	}
	xsArg, _ := s.At(1)
	xs, ok := ast.AsListLit(xsArg)
	if !ok {
		return nil, false
	}
	cons, _ := s.At(3)
	nilVal, _ := s.At(4)
	acc := nilVal
	for i := len(xs.Elems) - 1; i >= 0; i-- {
		acc = &ast.App{Fn: &ast.App{Fn: cons, Arg: xs.Elems[i]}, Arg: acc}
	}
	return applyRest(acc, s.Args[5:]), true
}

func listLength(s adt.Spine) (ast.Expr, bool) {
	if s.Len() < 2 {
		return nil, false
	}
	xsArg, _ := s.At(1)
	xs, ok := ast.AsListLit(xsArg)
	if !ok {
		return nil, false
	}
	return applyRest(naturalLit(int64(len(xs.Elems))), s.Args[2:]), true
}

func listHeadOrLast(s adt.Spine, head bool) (ast.Expr, bool) {
	if s.Len() < 2 {
		return nil, false
	}
	typ, _ := s.At(0)
	xsArg, _ := s.At(1)
	xs, ok := ast.AsListLit(xsArg)
	if !ok {
		return nil, false
	}
	if len(xs.Elems) == 0 {
		return applyRest(noneOf(typ), s.Args[2:]), true
	}
	var e ast.Expr
	if head {
		e = xs.Elems[0]
	} else {
		e = xs.Elems[len(xs.Elems)-1]
	}
	return applyRest(&ast.Some{X: e}, s.Args[2:]), true
}

// listIndexed pairs each element with its position. The empty-input case
// always carries a record-type annotation on the emitted ListLit, per
// the open question.
func listIndexed(s adt.Spine) (ast.Expr, bool) {
	if s.Len() < 2 {
		return nil, false
	}
	typ, _ := s.At(0)
	xsArg, _ := s.At(1)
	xs, ok := ast.AsListLit(xsArg)
	if !ok {
		return nil, false
	}
	if len(xs.Elems) == 0 {
		return applyRest(&ast.ListLit{ElemType: indexedRecordType(typ)}, s.Args[2:]), true
	}
	elems := make([]ast.Expr, len(xs.Elems))
	for i, e := range xs.Elems {
		fields := ast.NewOrderedMap()
		fields.Set("index", naturalLit(int64(i)), false)
		fields.Set("value", e, false)
		elems[i] = &ast.RecordLit{Fields: fields}
	}
	return applyRest(&ast.ListLit{Elems: elems}, s.Args[2:]), true
}

func indexedRecordType(elem ast.Expr) *ast.Record {
	fields := ast.NewOrderedMap()
	fields.Set("index", &ast.TypeConst{Name: ast.NaturalType}, false)
	fields.Set("value", elem, false)
	return &ast.Record{Fields: fields}
}

func listReverse(s adt.Spine) (ast.Expr, bool) {
	if s.Len() < 2 {
		return nil, false
	}
	xsArg, _ := s.At(1)
	xs, ok := ast.AsListLit(xsArg)
	if !ok {
		return nil, false
	}
	if xs.ElemType != nil {
		return applyRest(&ast.ListLit{ElemType: xs.ElemType}, s.Args[2:]), true
	}
	n := len(xs.Elems)
	rev := make([]ast.Expr, n)
	for i, e := range xs.Elems {
		rev[n-1-i] = e
	}
	return applyRest(&ast.ListLit{Elems: rev}, s.Args[2:]), true
}
