package eval

import "github.com/noema-lang/noema/ast"

// textLitOf builds a plain (non-interpolated) text literal from a Go
// string, the form Natural/Integer/Double's show functions and the
// literal identity rules below all produce.
func textLitOf(s string) *ast.TextLit {
	return &ast.TextLit{Prefix: s}
}

// normalizeTextLit normalizes every interpolated expression and then
// splices any interpolation that itself normalized to a TextLit into the
// outer chunk sequence. It only re-walks the chunk list when
// splicing is actually possible, so a TextLit with no TextLit-valued
// interpolations costs no more than a plain congruence rebuild.
func (c *Context) normalizeTextLit(x *ast.TextLit) (ast.Expr, bool) {
	childChanged := false
	spliceable := false
	parts := make([]ast.TextChunk, len(x.Parts))
	for i, p := range x.Parts {
		e, changed := c.normalize(p.Expr)
		if changed {
			childChanged = true
		}
		if _, ok := e.(*ast.TextLit); ok {
			spliceable = true
		}
		parts[i] = ast.TextChunk{Expr: e, Suffix: p.Suffix}
	}
	if !spliceable {
		if !childChanged {
			return x, false
		}
		return &ast.TextLit{LitPos: x.LitPos, Prefix: x.Prefix, Parts: parts}, true
	}
	spliced := spliceTextLit(&ast.TextLit{LitPos: x.LitPos, Prefix: x.Prefix, Parts: parts})
	return finalizeTextLit(spliced), true
}

// spliceTextLit merges any interpolated TextLit into the enclosing chunk
// sequence: a literal (non-interpolating) inner TextLit is absorbed
// straight into the surrounding text; an interpolating one has its own
// chunks spliced in, with its trailing suffix joined to whatever
// followed the original interpolation.
func spliceTextLit(x *ast.TextLit) *ast.TextLit {
	var outPrefix string
	var outParts []ast.TextChunk
	haveFirst := false
	current := x.Prefix

	emit := func(e ast.Expr) {
		if !haveFirst {
			outPrefix = current
			haveFirst = true
		} else {
			outParts[len(outParts)-1].Suffix = current
		}
		outParts = append(outParts, ast.TextChunk{Expr: e})
		current = ""
	}

	for _, part := range x.Parts {
		inner, ok := part.Expr.(*ast.TextLit)
		if !ok {
			emit(part.Expr)
			current += part.Suffix
			continue
		}
		current += inner.Prefix
		for _, ip := range inner.Parts {
			emit(ip.Expr)
			current += ip.Suffix
		}
		current += part.Suffix
	}

	if !haveFirst {
		outPrefix = current
	} else {
		outParts[len(outParts)-1].Suffix = current
	}
	return &ast.TextLit{LitPos: x.LitPos, Prefix: outPrefix, Parts: outParts}
}

// finalizeTextLit collapses the "" ⟨e⟩ "" shape to the bare
// interpolated expression; every other spliced result stays a TextLit.
func finalizeTextLit(x *ast.TextLit) ast.Expr {
	if x.Prefix == "" && len(x.Parts) == 1 && x.Parts[0].Suffix == "" {
		return x.Parts[0].Expr
	}
	return x
}

// textAppend implements TextAppend(l,r): an empty-literal side is the
// identity even when the other side isn't itself a literal; two text
// literals fold via the same splice machinery as TextLit itself.
func textAppend(x, y ast.Expr) (ast.Expr, bool) {
	if lx, ok := ast.AsTextLit(x); ok && lx.IsSimple() && lx.Prefix == "" {
		return y, true
	}
	if ly, ok := ast.AsTextLit(y); ok && ly.IsSimple() && ly.Prefix == "" {
		return x, true
	}
	lx, lok := ast.AsTextLit(x)
	ly, lok2 := ast.AsTextLit(y)
	if lok && lok2 {
		synthetic := &ast.TextLit{Parts: []ast.TextChunk{{Expr: lx}, {Expr: ly}}}
		return finalizeTextLit(spliceTextLit(synthetic)), true
	}
	return nil, false
}
