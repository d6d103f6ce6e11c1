package ast

// This file implements the variable operations that make De Bruijn
// indices usable: Shift (renumber free variables past an inserted or
// removed binder), Subst (capture-avoiding substitution), AlphaNormalize
// (replace every bound name with "_" without changing meaning) and
// FreeIn (free-variable membership test). CUE has no substitution
// calculus to follow here, so these follow the standard total-language
// substitution algorithm directly; the binder cases (Lam, Pi, Let) are written
// out by hand in each function, and everything else recurses generically
// through the children/withChildren pair in children.go.

// Shift renumbers free occurrences of variables named name with index at
// least cutoff by d (which may be negative). Shift(1, name, 0, e) makes
// room for a new innermost binding of name; Shift(-1, name, 0, e) removes
// one.
func Shift(d int, name string, cutoff int, e Expr) Expr {
	switch x := e.(type) {
	case *Var:
		if x.Name == name && x.Index >= cutoff {
			return &Var{ValuePos: x.ValuePos, Name: x.Name, Index: x.Index + d}
		}
		return x

	case *Lam:
		nextCutoff := cutoff
		if x.Label == name {
			nextCutoff++
		}
		return &Lam{
			LambdaPos: x.LambdaPos,
			Label:     x.Label,
			Type:      Shift(d, name, cutoff, x.Type),
			Body:      Shift(d, name, nextCutoff, x.Body),
		}

	case *Pi:
		nextCutoff := cutoff
		if x.Label == name {
			nextCutoff++
		}
		return &Pi{
			ForallPos: x.ForallPos,
			Label:     x.Label,
			Type:      Shift(d, name, cutoff, x.Type),
			Body:      Shift(d, name, nextCutoff, x.Body),
		}

	case *Let:
		nextCutoff := cutoff
		if x.Label == name {
			nextCutoff++
		}
		var annot Expr
		if x.Annot != nil {
			annot = Shift(d, name, cutoff, x.Annot)
		}
		return &Let{
			LetPos: x.LetPos,
			Label:  x.Label,
			Annot:  annot,
			Value:  Shift(d, name, cutoff, x.Value),
			Body:   Shift(d, name, nextCutoff, x.Body),
		}

	default:
		cs := children(x)
		out := make([]Expr, len(cs))
		for i, c := range cs {
			out[i] = Shift(d, name, cutoff, c)
		}
		return withChildren(x, out)
	}
}

// Subst replaces free occurrences of the variable name@index in e with
// replacement, shifting replacement as it descends under binders so that
// its own free variables are renumbered correctly in their new scope
// (capture-avoidance).
func Subst(name string, index int, replacement Expr, e Expr) Expr {
	switch x := e.(type) {
	case *Var:
		if x.Name == name && x.Index == index {
			return replacement
		}
		return x

	case *Lam:
		repl2 := Shift(1, x.Label, 0, replacement)
		index2 := index
		if x.Label == name {
			index2 = index + 1
		}
		return &Lam{
			LambdaPos: x.LambdaPos,
			Label:     x.Label,
			Type:      Subst(name, index, replacement, x.Type),
			Body:      Subst(name, index2, repl2, x.Body),
		}

	case *Pi:
		repl2 := Shift(1, x.Label, 0, replacement)
		index2 := index
		if x.Label == name {
			index2 = index + 1
		}
		return &Pi{
			ForallPos: x.ForallPos,
			Label:     x.Label,
			Type:      Subst(name, index, replacement, x.Type),
			Body:      Subst(name, index2, repl2, x.Body),
		}

	case *Let:
		repl2 := Shift(1, x.Label, 0, replacement)
		index2 := index
		if x.Label == name {
			index2 = index + 1
		}
		var annot Expr
		if x.Annot != nil {
			annot = Subst(name, index, replacement, x.Annot)
		}
		return &Let{
			LetPos: x.LetPos,
			Label:  x.Label,
			Annot:  annot,
			Value:  Subst(name, index, replacement, x.Value),
			Body:   Subst(name, index2, repl2, x.Body),
		}

	default:
		cs := children(x)
		out := make([]Expr, len(cs))
		for i, c := range cs {
			out[i] = Subst(name, index, replacement, c)
		}
		return withChildren(x, out)
	}
}

// Beta substitutes arg for the outermost bound variable of body (which is
// the body of a Lam or Let whose binder has just been eliminated),
// following the standard shift-subst-shift recipe: make room with a
// +1 shift of arg, substitute at index 0, then retract the eliminated
// binder with a -1 shift.
func Beta(label string, body, arg Expr) Expr {
	lifted := Shift(1, label, 0, arg)
	substituted := Subst(label, 0, lifted, body)
	return Shift(-1, label, 0, substituted)
}

// FreeIn reports whether the variable name@index occurs free in e.
func FreeIn(name string, index int, e Expr) bool {
	switch x := e.(type) {
	case *Var:
		return x.Name == name && x.Index == index

	case *Lam:
		if FreeIn(name, index, x.Type) {
			return true
		}
		index2 := index
		if x.Label == name {
			index2 = index + 1
		}
		return FreeIn(name, index2, x.Body)

	case *Pi:
		if FreeIn(name, index, x.Type) {
			return true
		}
		index2 := index
		if x.Label == name {
			index2 = index + 1
		}
		return FreeIn(name, index2, x.Body)

	case *Let:
		if x.Annot != nil && FreeIn(name, index, x.Annot) {
			return true
		}
		if FreeIn(name, index, x.Value) {
			return true
		}
		index2 := index
		if x.Label == name {
			index2 = index + 1
		}
		return FreeIn(name, index2, x.Body)

	default:
		for _, c := range children(x) {
			if FreeIn(name, index, c) {
				return true
			}
		}
		return false
	}
}

// AlphaNormalize replaces every bound variable name in e with "_",
// renumbering references to preserve meaning. Two expressions that are
// alpha-equivalent normalize to syntactically identical trees, which is
// what lets Equal treat bound-name choice as insignificant.
func AlphaNormalize(e Expr) Expr {
	switch x := e.(type) {
	case *Lam:
		return &Lam{
			LambdaPos: x.LambdaPos,
			Label:     "_",
			Type:      AlphaNormalize(x.Type),
			Body:      AlphaNormalize(renameBinderToUnderscore(x.Label, x.Body)),
		}

	case *Pi:
		return &Pi{
			ForallPos: x.ForallPos,
			Label:     "_",
			Type:      AlphaNormalize(x.Type),
			Body:      AlphaNormalize(renameBinderToUnderscore(x.Label, x.Body)),
		}

	case *Let:
		var annot Expr
		if x.Annot != nil {
			annot = AlphaNormalize(x.Annot)
		}
		return &Let{
			LetPos: x.LetPos,
			Label:  "_",
			Annot:  annot,
			Value:  AlphaNormalize(x.Value),
			Body:   AlphaNormalize(renameBinderToUnderscore(x.Label, x.Body)),
		}

	default:
		cs := children(x)
		out := make([]Expr, len(cs))
		for i, c := range cs {
			out[i] = AlphaNormalize(c)
		}
		return withChildren(x, out)
	}
}

// renameBinderToUnderscore rewrites body (the scope of a binder named
// label) to refer to that binder as "_" instead, via the standard
// shift/subst/shift recipe: make room for a new "_" binding, retarget the
// label@0 references onto it, then retract the old label binding.
func renameBinderToUnderscore(label string, body Expr) Expr {
	if label == "_" {
		return body
	}
	shifted := Shift(1, "_", 0, body)
	retargeted := Subst(label, 0, &Var{Name: "_", Index: 0}, shifted)
	return Shift(-1, label, 0, retargeted)
}
