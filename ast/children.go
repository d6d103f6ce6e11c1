package ast

// children and withChildren are a matched pair used by the variable
// operations in vars.go to recurse generically over every node that
// isn't itself a binder (Lam, Pi and Let are handled directly by their
// callers, since only those three need to track a bound name). Together
// they are the "announce a binder name per child" traversal the variable
// operations share, specialized to the cases that don't introduce one.
//
// children returns e's immediate subexpressions in a fixed order;
// withChildren rebuilds a node of the same kind as e, same order, with
// those subexpressions replaced by newChildren (which must have the same
// length children(e) returned).
func children(e Expr) []Expr {
	switch x := e.(type) {
	case *Const, *TypeConst, *Builtin, *Var, *BoolLit, *NaturalLit, *IntegerLit, *DoubleLit, *Import:
		return nil

	case *BinOp:
		return []Expr{x.X, x.Y}

	case *BoolIf:
		return []Expr{x.Cond, x.Then, x.Else}

	case *TextLit:
		cs := make([]Expr, len(x.Parts))
		for i, p := range x.Parts {
			cs[i] = p.Expr
		}
		return cs

	case *ListLit:
		if x.ElemType != nil {
			return []Expr{x.ElemType}
		}
		return append([]Expr(nil), x.Elems...)

	case *OptionalLit:
		cs := []Expr{x.ElemType}
		if x.Elem != nil {
			cs = append(cs, x.Elem)
		}
		return cs

	case *Some:
		return []Expr{x.X}

	case *Record:
		return fieldValues(x.Fields)

	case *RecordLit:
		return fieldValues(x.Fields)

	case *Field:
		return []Expr{x.X}

	case *Project:
		return []Expr{x.X}

	case *Union:
		return altValues(x.Alts)

	case *UnionLit:
		var cs []Expr
		if x.X != nil {
			cs = append(cs, x.X)
		}
		return append(cs, altValues(x.Rest)...)

	case *Merge:
		cs := []Expr{x.Handlers, x.Union}
		if x.Type != nil {
			cs = append(cs, x.Type)
		}
		return cs

	case *Constructors:
		return []Expr{x.X}

	case *App:
		return []Expr{x.Fn, x.Arg}

	case *Annot:
		return []Expr{x.X, x.Type}

	case *ImportAlt:
		return []Expr{x.Primary, x.Fallback}

	default:
		panic("ast: children called on a binder node; binders are handled by their caller")
	}
}

func withChildren(e Expr, cs []Expr) Expr {
	switch x := e.(type) {
	case *Const:
		return x
	case *TypeConst:
		return x
	case *Builtin:
		return x
	case *Var:
		return x
	case *BoolLit:
		return x
	case *NaturalLit:
		return x
	case *IntegerLit:
		return x
	case *DoubleLit:
		return x
	case *Import:
		return x

	case *BinOp:
		return &BinOp{OpPos: x.OpPos, Op: x.Op, X: cs[0], Y: cs[1]}

	case *BoolIf:
		return &BoolIf{IfPos: x.IfPos, Cond: cs[0], Then: cs[1], Else: cs[2]}

	case *TextLit:
		parts := make([]TextChunk, len(x.Parts))
		for i, p := range x.Parts {
			parts[i] = TextChunk{Expr: cs[i], Suffix: p.Suffix}
		}
		return &TextLit{LitPos: x.LitPos, Prefix: x.Prefix, Parts: parts}

	case *ListLit:
		if x.ElemType != nil {
			return &ListLit{LitPos: x.LitPos, ElemType: cs[0]}
		}
		return &ListLit{LitPos: x.LitPos, Elems: cs}

	case *OptionalLit:
		out := &OptionalLit{LitPos: x.LitPos, ElemType: cs[0]}
		if x.Elem != nil {
			out.Elem = cs[1]
		}
		return out

	case *Some:
		return &Some{SomePos: x.SomePos, X: cs[0]}

	case *Record:
		return &Record{LBrace: x.LBrace, Fields: withFieldValues(x.Fields, cs)}

	case *RecordLit:
		return &RecordLit{LBrace: x.LBrace, Fields: withFieldValues(x.Fields, cs)}

	case *Field:
		return &Field{X: cs[0], Dot: x.Dot, Label: x.Label}

	case *Project:
		return &Project{X: cs[0], Dot: x.Dot, Labels: x.Labels}

	case *Union:
		return &Union{LAngle: x.LAngle, Alts: withAltValues(x.Alts, cs)}

	case *UnionLit:
		i := 0
		var payload Expr
		if x.X != nil {
			payload = cs[0]
			i = 1
		}
		return &UnionLit{LAngle: x.LAngle, Label: x.Label, X: payload, Rest: withAltValues(x.Rest, cs[i:])}

	case *Merge:
		out := &Merge{MergePos: x.MergePos, Handlers: cs[0], Union: cs[1]}
		if x.Type != nil {
			out.Type = cs[2]
		}
		return out

	case *Constructors:
		return &Constructors{KeyPos: x.KeyPos, X: cs[0]}

	case *App:
		return &App{Fn: cs[0], Arg: cs[1]}

	case *Annot:
		return &Annot{X: cs[0], Type: cs[1]}

	case *ImportAlt:
		return &ImportAlt{Primary: cs[0], Fallback: cs[1]}

	default:
		panic("ast: withChildren called on a binder node; binders are handled by their caller")
	}
}

func fieldValues(m *OrderedMap) []Expr {
	keys := m.Keys()
	cs := make([]Expr, len(keys))
	for i, k := range keys {
		v, _ := m.Get(k)
		cs[i] = v
	}
	return cs
}

func withFieldValues(m *OrderedMap, cs []Expr) *OrderedMap {
	out := NewOrderedMap()
	for i, k := range m.Keys() {
		out.Set(k, cs[i], false)
	}
	return out
}

// altValues returns the non-nil alternative types of a union alt map, in
// key order, skipping labels whose alternative carries no payload type.
func altValues(m *OrderedMap) []Expr {
	var cs []Expr
	for _, k := range m.Keys() {
		v, _ := m.Get(k)
		if v != nil {
			cs = append(cs, v)
		}
	}
	return cs
}

// withAltValues rebuilds an alt map with the same keys and the same
// nil/non-nil pattern as m, consuming replacements from cs in order for
// the keys whose alternative originally carried a payload type.
func withAltValues(m *OrderedMap, cs []Expr) *OrderedMap {
	out := NewOrderedMap()
	i := 0
	for _, k := range m.Keys() {
		v, _ := m.Get(k)
		if v == nil {
			out.Set(k, nil, false)
			continue
		}
		out.Set(k, cs[i], false)
		i++
	}
	return out
}
