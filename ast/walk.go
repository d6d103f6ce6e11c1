package ast

// Walk traverses e and its descendants in pre-order, calling visit on each
// node. If visit returns false, Walk does not descend into that node's
// children. Mirrors cue/ast's generic Walk over CUE syntax trees
// (cue/ast/walk.go), adapted from CUE's declaration/clause shape to
// Noema's single Expr sum type — one type switch enumerating every node's
// immediate Expr-valued fields, rather than a before/after pair of
// callbacks (nothing here needs CUE's comment-reattachment pass).
func Walk(e Expr, visit func(Expr) bool) {
	if e == nil || !visit(e) {
		return
	}
	switch x := e.(type) {
	case *Const, *TypeConst, *Builtin, *Var, *BoolLit, *NaturalLit, *IntegerLit, *DoubleLit:
		// leaves

	case *BinOp:
		Walk(x.X, visit)
		Walk(x.Y, visit)

	case *BoolIf:
		Walk(x.Cond, visit)
		Walk(x.Then, visit)
		Walk(x.Else, visit)

	case *TextLit:
		for _, p := range x.Parts {
			Walk(p.Expr, visit)
		}

	case *ListLit:
		if x.ElemType != nil {
			Walk(x.ElemType, visit)
		}
		for _, el := range x.Elems {
			Walk(el, visit)
		}

	case *OptionalLit:
		Walk(x.ElemType, visit)
		if x.Elem != nil {
			Walk(x.Elem, visit)
		}

	case *Some:
		Walk(x.X, visit)

	case *Record:
		for _, k := range x.Fields.Keys() {
			v, _ := x.Fields.Get(k)
			Walk(v, visit)
		}

	case *RecordLit:
		for _, k := range x.Fields.Keys() {
			v, _ := x.Fields.Get(k)
			Walk(v, visit)
		}

	case *Field:
		Walk(x.X, visit)

	case *Project:
		Walk(x.X, visit)

	case *Union:
		for _, k := range x.Alts.Keys() {
			v, _ := x.Alts.Get(k)
			if v != nil {
				Walk(v, visit)
			}
		}

	case *UnionLit:
		if x.X != nil {
			Walk(x.X, visit)
		}
		for _, k := range x.Rest.Keys() {
			v, _ := x.Rest.Get(k)
			if v != nil {
				Walk(v, visit)
			}
		}

	case *Merge:
		Walk(x.Handlers, visit)
		Walk(x.Union, visit)
		if x.Type != nil {
			Walk(x.Type, visit)
		}

	case *Constructors:
		Walk(x.X, visit)

	case *Lam:
		Walk(x.Type, visit)
		Walk(x.Body, visit)

	case *Pi:
		Walk(x.Type, visit)
		Walk(x.Body, visit)

	case *Let:
		if x.Annot != nil {
			Walk(x.Annot, visit)
		}
		Walk(x.Value, visit)
		Walk(x.Body, visit)

	case *App:
		Walk(x.Fn, visit)
		Walk(x.Arg, visit)

	case *Annot:
		Walk(x.X, visit)
		Walk(x.Type, visit)

	case *ImportAlt:
		Walk(x.Primary, visit)
		Walk(x.Fallback, visit)

	case *Import:
		// leaf: ImportHashed carries no Expr fields

	default:
		panic("ast.Walk: unhandled node type")
	}
}
