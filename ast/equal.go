package ast

import "math"

// Equal reports whether a and b are structurally identical expressions.
// It does not perform alpha-equivalence on its own — callers comparing
// expressions up to bound-variable naming should call AlphaNormalize on
// both sides first, which is exactly how the normalizer's alphaEqual
// helper in internal/core/eval is built.
//
// DoubleLit equality is bit-exact: two distinct bit patterns are never
// equal, even 0.0 and -0.0, and NaN equals NaN (unlike Go's built-in
// float64 ==), matching the literal-identity comparison the grammar's
// numeric literals are given.
func Equal(a, b Expr) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch x := a.(type) {
	case *Const:
		y, ok := b.(*Const)
		return ok && x.Sort == y.Sort

	case *TypeConst:
		y, ok := b.(*TypeConst)
		return ok && x.Name == y.Name

	case *Builtin:
		y, ok := b.(*Builtin)
		return ok && x.Name == y.Name

	case *Var:
		y, ok := b.(*Var)
		return ok && x.Name == y.Name && x.Index == y.Index

	case *BoolLit:
		y, ok := b.(*BoolLit)
		return ok && x.Value == y.Value

	case *BinOp:
		y, ok := b.(*BinOp)
		return ok && x.Op == y.Op && Equal(x.X, y.X) && Equal(x.Y, y.Y)

	case *BoolIf:
		y, ok := b.(*BoolIf)
		return ok && Equal(x.Cond, y.Cond) && Equal(x.Then, y.Then) && Equal(x.Else, y.Else)

	case *NaturalLit:
		y, ok := b.(*NaturalLit)
		return ok && x.Value.Cmp(&y.Value) == 0

	case *IntegerLit:
		y, ok := b.(*IntegerLit)
		return ok && x.Value.Negative == y.Value.Negative && x.Value.Cmp(&y.Value) == 0

	case *DoubleLit:
		y, ok := b.(*DoubleLit)
		return ok && math.Float64bits(x.Value) == math.Float64bits(y.Value)

	case *TextLit:
		y, ok := b.(*TextLit)
		if !ok || x.Prefix != y.Prefix || len(x.Parts) != len(y.Parts) {
			return false
		}
		for i := range x.Parts {
			if x.Parts[i].Suffix != y.Parts[i].Suffix || !Equal(x.Parts[i].Expr, y.Parts[i].Expr) {
				return false
			}
		}
		return true

	case *ListLit:
		y, ok := b.(*ListLit)
		if !ok || len(x.Elems) != len(y.Elems) {
			return false
		}
		if !Equal(x.ElemType, y.ElemType) {
			return false
		}
		for i := range x.Elems {
			if !Equal(x.Elems[i], y.Elems[i]) {
				return false
			}
		}
		return true

	case *OptionalLit:
		y, ok := b.(*OptionalLit)
		return ok && Equal(x.ElemType, y.ElemType) && Equal(x.Elem, y.Elem)

	case *Some:
		y, ok := b.(*Some)
		return ok && Equal(x.X, y.X)

	case *Record:
		y, ok := b.(*Record)
		return ok && orderedMapEqual(x.Fields, y.Fields)

	case *RecordLit:
		y, ok := b.(*RecordLit)
		return ok && orderedMapEqual(x.Fields, y.Fields)

	case *Field:
		y, ok := b.(*Field)
		return ok && x.Label == y.Label && Equal(x.X, y.X)

	case *Project:
		y, ok := b.(*Project)
		if !ok || len(x.Labels) != len(y.Labels) || !Equal(x.X, y.X) {
			return false
		}
		for i := range x.Labels {
			if x.Labels[i] != y.Labels[i] {
				return false
			}
		}
		return true

	case *Union:
		y, ok := b.(*Union)
		return ok && orderedMapEqual(x.Alts, y.Alts)

	case *UnionLit:
		y, ok := b.(*UnionLit)
		return ok && x.Label == y.Label && Equal(x.X, y.X) && orderedMapEqual(x.Rest, y.Rest)

	case *Merge:
		y, ok := b.(*Merge)
		return ok && Equal(x.Handlers, y.Handlers) && Equal(x.Union, y.Union) && Equal(x.Type, y.Type)

	case *Constructors:
		y, ok := b.(*Constructors)
		return ok && Equal(x.X, y.X)

	case *Lam:
		y, ok := b.(*Lam)
		return ok && x.Label == y.Label && Equal(x.Type, y.Type) && Equal(x.Body, y.Body)

	case *Pi:
		y, ok := b.(*Pi)
		return ok && x.Label == y.Label && Equal(x.Type, y.Type) && Equal(x.Body, y.Body)

	case *Let:
		y, ok := b.(*Let)
		return ok && x.Label == y.Label && Equal(x.Annot, y.Annot) &&
			Equal(x.Value, y.Value) && Equal(x.Body, y.Body)

	case *App:
		y, ok := b.(*App)
		return ok && Equal(x.Fn, y.Fn) && Equal(x.Arg, y.Arg)

	case *Annot:
		y, ok := b.(*Annot)
		return ok && Equal(x.X, y.X) && Equal(x.Type, y.Type)

	case *ImportAlt:
		y, ok := b.(*ImportAlt)
		return ok && Equal(x.Primary, y.Primary) && Equal(x.Fallback, y.Fallback)

	case *Import:
		y, ok := b.(*Import)
		return ok && x.AsText == y.AsText && importHashedEqual(&x.Hashed, &y.Hashed)

	default:
		return false
	}
}

func orderedMapEqual(a, b *OrderedMap) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i, k := range a.Keys() {
		if b.Keys()[i] != k {
			return false
		}
		av, _ := a.Get(k)
		bv, _ := b.Get(k)
		if !Equal(av, bv) {
			return false
		}
	}
	return true
}

func importHashedEqual(a, b *ImportHashed) bool {
	if a.Kind != b.Kind || a.Hash != b.Hash {
		return false
	}
	switch a.Kind {
	case LocalImport:
		return a.Origin == b.Origin && stringsEqual(a.Dir, b.Dir) && a.File == b.File
	case RemoteImport:
		if a.Scheme != b.Scheme || a.Authority != b.Authority || !stringsEqual(a.Dir, b.Dir) || a.File != b.File {
			return false
		}
		if a.HasQuery != b.HasQuery || (a.HasQuery && a.Query != b.Query) {
			return false
		}
		if a.HasFragment != b.HasFragment || (a.HasFragment && a.Fragment != b.Fragment) {
			return false
		}
		if (a.Using == nil) != (b.Using == nil) {
			return false
		}
		return a.Using == nil || importHashedEqual(a.Using, b.Using)
	case EnvImport:
		return a.EnvName == b.EnvName
	default: // MissingImport
		return true
	}
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
