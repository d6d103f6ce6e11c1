package eval

import "github.com/noema-lang/noema/ast"

// Boolean rules: operands arrive already normalized, so the
// only remaining question for each operator is a literal short-circuit,
// an identity element, or alpha-equivalence of the two sides.

func boolAnd(x, y ast.Expr) (ast.Expr, bool) {
	if lb, ok := ast.AsBoolLit(x); ok {
		if lb.Value {
			return y, true
		}
		return lb, true
	}
	if rb, ok := ast.AsBoolLit(y); ok {
		if rb.Value {
			return x, true
		}
		return rb, true
	}
	if alphaEqual(x, y) {
		return x, true
	}
	return nil, false
}

func boolOr(x, y ast.Expr) (ast.Expr, bool) {
	if lb, ok := ast.AsBoolLit(x); ok {
		if lb.Value {
			return lb, true
		}
		return y, true
	}
	if rb, ok := ast.AsBoolLit(y); ok {
		if rb.Value {
			return rb, true
		}
		return x, true
	}
	if alphaEqual(x, y) {
		return x, true
	}
	return nil, false
}

func boolEQ(x, y ast.Expr) (ast.Expr, bool) {
	lb, lok := ast.AsBoolLit(x)
	rb, rok := ast.AsBoolLit(y)
	if lok && rok {
		return &ast.BoolLit{Value: lb.Value == rb.Value}, true
	}
	if lok && lb.Value {
		return y, true
	}
	if rok && rb.Value {
		return x, true
	}
	if alphaEqual(x, y) {
		return &ast.BoolLit{Value: true}, true
	}
	return nil, false
}

func boolNE(x, y ast.Expr) (ast.Expr, bool) {
	lb, lok := ast.AsBoolLit(x)
	rb, rok := ast.AsBoolLit(y)
	if lok && rok {
		return &ast.BoolLit{Value: lb.Value != rb.Value}, true
	}
	if lok && !lb.Value {
		return y, true
	}
	if rok && !rb.Value {
		return x, true
	}
	if alphaEqual(x, y) {
		return &ast.BoolLit{Value: false}, true
	}
	return nil, false
}

// boolIf implements BoolIf(cond, t, f): a literal condition picks its
// branch outright; t=true/f=false collapses to the condition itself
// ("if c then True else False" is just c); alpha-equivalent branches
// collapse regardless of the condition.
func boolIf(cond, t, f ast.Expr) (ast.Expr, bool) {
	if cb, ok := ast.AsBoolLit(cond); ok {
		if cb.Value {
			return t, true
		}
		return f, true
	}
	if tb, ok := ast.AsBoolLit(t); ok && tb.Value {
		if fb, ok := ast.AsBoolLit(f); ok && !fb.Value {
			return cond, true
		}
	}
	if alphaEqual(t, f) {
		return t, true
	}
	return nil, false
}
