package eval

import "github.com/noema-lang/noema/ast"

// normalizeFieldMap normalizes every value of an ordered label map in
// key order, skipping nil entries when allowNil is set (union
// alternative maps may carry a nil payload type).
func (c *Context) normalizeFieldMap(m *ast.OrderedMap, allowNil bool) (*ast.OrderedMap, bool) {
	changed := false
	out := ast.NewOrderedMap()
	for _, k := range m.Keys() {
		v, _ := m.Get(k)
		if v == nil && allowNil {
			out.Set(k, nil, false)
			continue
		}
		nv, ch := c.normalize(v)
		if ch {
			changed = true
		}
		out.Set(k, nv, false)
	}
	return out, changed
}

func (c *Context) normalizeRecord(x *ast.Record) (ast.Expr, bool) {
	fields, changed := c.normalizeFieldMap(x.Fields, false)
	if !changed {
		return x, false
	}
	return &ast.Record{LBrace: x.LBrace, Fields: fields}, true
}

func (c *Context) normalizeRecordLit(x *ast.RecordLit) (ast.Expr, bool) {
	fields, changed := c.normalizeFieldMap(x.Fields, false)
	if !changed {
		return x, false
	}
	return &ast.RecordLit{LBrace: x.LBrace, Fields: fields}, true
}

// combine implements the ∧ operator: a left-biased recursive union of
// two record literals, with a shared key recursing via combineValue.
// Non-literal operands decline, leaving the caller to rebuild a plain
// Combine node (the "Non-literal operands rebuild as Combine").
func combine(x, y ast.Expr) (ast.Expr, bool) {
	lx, lok := ast.AsRecordLit(x)
	ly, lok2 := ast.AsRecordLit(y)
	if lok && lx.Fields.Len() == 0 {
		return y, true
	}
	if lok2 && ly.Fields.Len() == 0 {
		return x, true
	}
	if lok && lok2 {
		return combineRecordLits(lx, ly), true
	}
	return nil, false
}

func combineRecordLits(l, r *ast.RecordLit) *ast.RecordLit {
	fields := l.Fields.Clone()
	for _, k := range r.Fields.Keys() {
		rv, _ := r.Fields.Get(k)
		if lv, ok := fields.Get(k); ok {
			fields.Set(k, combineValue(lv, rv), true)
		} else {
			fields.Set(k, rv, false)
		}
	}
	return &ast.RecordLit{LBrace: l.LBrace, Fields: fields}
}

// combineValue recurses Combine into a shared field only when both sides
// are themselves record literals; otherwise the field's value stays a
// stuck Combine node, the per-field analogue of the top-level "Non-literal
// operands rebuild as Combine" rule.
func combineValue(l, r ast.Expr) ast.Expr {
	lr, lok := ast.AsRecordLit(l)
	rr, rok := ast.AsRecordLit(r)
	if lok && rok {
		return combineRecordLits(lr, rr)
	}
	return &ast.BinOp{Op: ast.OpCombine, X: l, Y: r}
}

// combineTypes is CombineTypes (⩓), the same left-biased recursive union
// as combine but over Record types instead of RecordLit values.
func combineTypes(x, y ast.Expr) (ast.Expr, bool) {
	lx, lok := ast.AsRecord(x)
	ly, lok2 := ast.AsRecord(y)
	if lok && lx.Fields.Len() == 0 {
		return y, true
	}
	if lok2 && ly.Fields.Len() == 0 {
		return x, true
	}
	if lok && lok2 {
		return combineTypeRecords(lx, ly), true
	}
	return nil, false
}

func combineTypeRecords(l, r *ast.Record) *ast.Record {
	fields := l.Fields.Clone()
	for _, k := range r.Fields.Keys() {
		rv, _ := r.Fields.Get(k)
		if lv, ok := fields.Get(k); ok {
			fields.Set(k, combineTypeValue(lv, rv), true)
		} else {
			fields.Set(k, rv, false)
		}
	}
	return &ast.Record{LBrace: l.LBrace, Fields: fields}
}

func combineTypeValue(l, r ast.Expr) ast.Expr {
	lr, lok := ast.AsRecord(l)
	rr, rok := ast.AsRecord(r)
	if lok && rok {
		return combineTypeRecords(lr, rr)
	}
	return &ast.BinOp{Op: ast.OpCombineTypes, X: l, Y: r}
}

// prefer is ⫽: a right-biased, non-recursive union — unlike Combine, an
// overlapping field is replaced wholesale by the right side rather than
// merged, but keeps the left side's field position.
func prefer(x, y ast.Expr) (ast.Expr, bool) {
	lx, lok := ast.AsRecordLit(x)
	ly, lok2 := ast.AsRecordLit(y)
	if lok && lx.Fields.Len() == 0 {
		return y, true
	}
	if lok2 && ly.Fields.Len() == 0 {
		return x, true
	}
	if lok && lok2 {
		fields := lx.Fields.Clone()
		for _, k := range ly.Fields.Keys() {
			v, _ := ly.Fields.Get(k)
			fields.Set(k, v, true)
		}
		return &ast.RecordLit{LBrace: lx.LBrace, Fields: fields}, true
	}
	return nil, false
}

// normalizeField implements Field(X, label): pull the value straight out
// of a record literal, or build a union constructor function when X is a
// union type that declares label.
func (c *Context) normalizeField(x *ast.Field) (ast.Expr, bool) {
	inner, changed := c.normalize(x.X)

	if rl, ok := ast.AsRecordLit(inner); ok {
		if v, ok2 := rl.Fields.Get(x.Label); ok2 {
			return v, true
		}
	}
	if u, ok := ast.AsUnion(inner); ok {
		if typ, ok2 := u.Alts.Get(x.Label); ok2 {
			built := unionConstructor(x.Label, typ, u.Alts)
			out, _ := c.normalize(built)
			return out, true
		}
	}
	if !changed {
		return x, false
	}
	return &ast.Field{X: inner, Dot: x.Dot, Label: x.Label}, true
}

// unionConstructor builds the value Field/Constructors produce for one
// union alternative: a one-argument lambda wrapping the payload in a
// UnionLit when the alternative carries a type, or the UnionLit itself
// when it doesn't.
func unionConstructor(label string, typ ast.Expr, alts *ast.OrderedMap) ast.Expr {
	rest := alts.Clone()
	rest.Delete(label)
	if typ == nil {
		return &ast.UnionLit{Label: label, Rest: rest}
	}
	return &ast.Lam{
		Label: label,
		Type:  typ,
		Body:  &ast.UnionLit{Label: label, X: &ast.Var{Name: label}, Rest: rest},
	}
}

// normalizeProject implements Project(X, labels): restrict a record
// literal to a label subset, preserving the literal's original field
// order, when every requested label is present.
func (c *Context) normalizeProject(x *ast.Project) (ast.Expr, bool) {
	inner, changed := c.normalize(x.X)

	if rl, ok := ast.AsRecordLit(inner); ok {
		wanted := make(map[string]bool, len(x.Labels))
		for _, l := range x.Labels {
			wanted[l] = true
		}
		allPresent := true
		for l := range wanted {
			if _, ok2 := rl.Fields.Get(l); !ok2 {
				allPresent = false
				break
			}
		}
		if allPresent {
			out := ast.NewOrderedMap()
			for _, k := range rl.Fields.Keys() {
				if wanted[k] {
					v, _ := rl.Fields.Get(k)
					out.Set(k, v, false)
				}
			}
			result, _ := c.normalize(&ast.RecordLit{LBrace: rl.LBrace, Fields: out})
			return result, true
		}
	}
	if !changed {
		return x, false
	}
	return &ast.Project{X: inner, Dot: x.Dot, Labels: x.Labels}, true
}
