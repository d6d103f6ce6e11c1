package eval

import "github.com/noema-lang/noema/ast"

func (c *Context) normalizeUnion(x *ast.Union) (ast.Expr, bool) {
	alts, changed := c.normalizeFieldMap(x.Alts, true)
	if !changed {
		return x, false
	}
	return &ast.Union{LAngle: x.LAngle, Alts: alts}, true
}

func (c *Context) normalizeUnionLit(x *ast.UnionLit) (ast.Expr, bool) {
	var payload ast.Expr
	changed := false
	if x.X != nil {
		p, ch := c.normalize(x.X)
		payload = p
		if ch {
			changed = true
		}
	}
	rest, ch2 := c.normalizeFieldMap(x.Rest, true)
	if ch2 {
		changed = true
	}
	if !changed {
		return x, false
	}
	return &ast.UnionLit{LAngle: x.LAngle, Label: x.Label, X: payload, Rest: rest}, true
}

// normalizeMerge implements Merge(handlers, union, τ?): when handlers is
// a record literal and union is a union literal whose active label has a
// matching handler, apply that handler to the payload (or use it
// directly, for a no-payload alternative); otherwise rebuild.
func (c *Context) normalizeMerge(x *ast.Merge) (ast.Expr, bool) {
	handlers, hc := c.normalize(x.Handlers)
	union, uc := c.normalize(x.Union)
	var typ ast.Expr
	tc := false
	if x.Type != nil {
		typ, tc = c.normalize(x.Type)
	}
	childChanged := hc || uc || tc

	if hl, ok := ast.AsRecordLit(handlers); ok {
		if ul, ok2 := ast.AsUnionLit(union); ok2 {
			if h, ok3 := hl.Fields.Get(ul.Label); ok3 {
				result := h
				if ul.X != nil {
					result = &ast.App{Fn: h, Arg: ul.X}
				}
				out, _ := c.normalize(result)
				return out, true
			}
		}
	}

	if !childChanged {
		return x, false
	}
	rebuilt := &ast.Merge{MergePos: x.MergePos, Handlers: handlers, Union: union}
	if x.Type != nil {
		rebuilt.Type = typ
	}
	return rebuilt, true
}

// normalizeConstructors implements Constructors(u): builds a record of
// one constructor function (or value, for a no-payload alternative) per
// union alternative.
func (c *Context) normalizeConstructors(x *ast.Constructors) (ast.Expr, bool) {
	inner, changed := c.normalize(x.X)

	if u, ok := ast.AsUnion(inner); ok {
		fields := ast.NewOrderedMap()
		for _, k := range u.Alts.Keys() {
			typ, _ := u.Alts.Get(k)
			fields.Set(k, unionConstructor(k, typ, u.Alts), false)
		}
		out, _ := c.normalize(&ast.RecordLit{LBrace: x.KeyPos, Fields: fields})
		return out, true
	}
	if !changed {
		return x, false
	}
	return &ast.Constructors{KeyPos: x.KeyPos, X: inner}, true
}
