// Package eval implements the normalizer engine: a bottom-up
// rewriter that normalizes an ast.Expr by capture-avoiding substitution,
// β- and η-reduction, let-inlining and a rule-directed fold over the
// built-in reductions in the sibling rule files (rules_*.go).
//
// There is no correct cuelang.org/go analogue for this package: its
// internal/core/eval is a constraint *unifier* over an open, cyclic
// dependency graph of vertices, not a rewriter over closed terms — its
// per-node dispatch has no translation onto "β-reduce, η-reduce, fold a
// spine". What is carried over is the organizing idea of a context value
// threaded through every rule call (cue/internal/core/adt/context.go's
// *OpContext) and one rule family per file rather than a single giant
// switch; the rewrite rules themselves are authored directly from
// the language's reduction rules.
package eval

import (
	"github.com/noema-lang/noema/ast"
	"github.com/noema-lang/noema/internal/core/adt"
)

// Rule is a user-supplied normalizer extension: given an
// application spine, it either declines (false) or returns a replacement
// term to be normalized in its place. It is consulted only at App nodes,
// after η/β-reduction and before the built-in rules in rules_*.go — a Rule may observe
// unnormalized sub-terms wherever substitution hasn't reached them yet;
// normalization is always applied to whatever a Rule returns.
type Rule func(adt.Spine) (ast.Expr, bool)

// Context carries the (possibly nil) user rule through a normalization
// pass. It holds no mutable state: every method is a pure function of its
// argument, following the "pure, single-threaded, non-suspending"
// contract.
type Context struct {
	user Rule
}

// Normalize reduces e to normal form using only the built-in rules.
func Normalize(e ast.Expr) ast.Expr {
	return NormalizeWith(nil, e)
}

// NormalizeWith reduces e to normal form, consulting user before the
// built-in rules at every App node.
func NormalizeWith(user Rule, e ast.Expr) ast.Expr {
	c := &Context{user: user}
	out, _ := c.normalize(e)
	return out
}

// IsNormalized reports whether e is already in normal form with respect
// to the built-in rules alone.
func IsNormalized(e ast.Expr) bool {
	return IsNormalizedWith(nil, e)
}

// IsNormalizedWith reports whether a full pass of NormalizeWith(user, e)
// would leave e unchanged, i.e. rewrite no part of it.
func IsNormalizedWith(user Rule, e ast.Expr) bool {
	c := &Context{user: user}
	_, changed := c.normalize(e)
	return !changed
}

// alphaEqual is the judgmental-equality-without-beta helper used
// throughout the per-node rules for "l ≡_α r" side conditions in the
// BoolAnd/BoolOr/BoolEQ/BoolNE/BoolIf rules. Its operands
// are always already-normalized subterms, so alpha-equivalence is the
// only remaining degree of freedom.
func alphaEqual(a, b ast.Expr) bool {
	return ast.Equal(ast.AlphaNormalize(a), ast.AlphaNormalize(b))
}

// normalize is the single recursive entry point. It returns the
// normalized form of e and whether anything changed anywhere in e,
// reusing e by pointer when nothing did (the subtree-identity
// preservation).
func (c *Context) normalize(e ast.Expr) (ast.Expr, bool) {
	switch x := e.(type) {
	case *ast.Const, *ast.TypeConst, *ast.Builtin, *ast.Var,
		*ast.BoolLit, *ast.NaturalLit, *ast.IntegerLit, *ast.DoubleLit:
		return x, false

	case *ast.Import:
		// The evaluator never resolves imports: a bare
		// Import node is already a leaf as far as normalization goes.
		return x, false

	case *ast.ImportAlt:
		p, pc := c.normalize(x.Primary)
		f, fc := c.normalize(x.Fallback)
		if !pc && !fc {
			return x, false
		}
		return &ast.ImportAlt{Primary: p, Fallback: f}, true

	case *ast.Annot:
		inner, _ := c.normalize(x.X)
		return inner, true

	case *ast.Let:
		substituted := ast.Beta(x.Label, x.Body, x.Value)
		out, _ := c.normalize(substituted)
		return out, true

	case *ast.BoolIf:
		cond, cc := c.normalize(x.Cond)
		then, tc := c.normalize(x.Then)
		els, ec := c.normalize(x.Else)
		childChanged := cc || tc || ec
		if repl, ok := boolIf(cond, then, els); ok {
			return repl, true
		}
		if !childChanged {
			return x, false
		}
		return &ast.BoolIf{IfPos: x.IfPos, Cond: cond, Then: then, Else: els}, true

	case *ast.BinOp:
		return c.normalizeBinOp(x)

	case *ast.TextLit:
		return c.normalizeTextLit(x)

	case *ast.ListLit:
		return c.normalizeListLit(x)

	case *ast.OptionalLit:
		return c.normalizeOptionalLit(x)

	case *ast.Some:
		inner, changed := c.normalize(x.X)
		if !changed {
			return x, false
		}
		return &ast.Some{SomePos: x.SomePos, X: inner}, true

	case *ast.Record:
		return c.normalizeRecord(x)

	case *ast.RecordLit:
		return c.normalizeRecordLit(x)

	case *ast.Field:
		return c.normalizeField(x)

	case *ast.Project:
		return c.normalizeProject(x)

	case *ast.Union:
		return c.normalizeUnion(x)

	case *ast.UnionLit:
		return c.normalizeUnionLit(x)

	case *ast.Merge:
		return c.normalizeMerge(x)

	case *ast.Constructors:
		return c.normalizeConstructors(x)

	case *ast.Lam:
		return c.normalizeLam(x)

	case *ast.Pi:
		typ, tc := c.normalize(x.Type)
		body, bc := c.normalize(x.Body)
		if !tc && !bc {
			return x, false
		}
		return &ast.Pi{ForallPos: x.ForallPos, Label: x.Label, Type: typ, Body: body}, true

	case *ast.App:
		return c.normalizeApp(x)

	default:
		panic("eval: normalize called on unknown ast.Expr")
	}
}

// normalizeBinOp normalizes both operands, dispatches to the rule
// function for x.Op (one per rules_*.go family), and falls back to a
// congruence rebuild when the rule declines.
func (c *Context) normalizeBinOp(x *ast.BinOp) (ast.Expr, bool) {
	left, lc := c.normalize(x.X)
	right, rc := c.normalize(x.Y)
	childChanged := lc || rc

	var repl ast.Expr
	var ok bool
	switch x.Op {
	case ast.OpBoolAnd:
		repl, ok = boolAnd(left, right)
	case ast.OpBoolOr:
		repl, ok = boolOr(left, right)
	case ast.OpBoolEQ:
		repl, ok = boolEQ(left, right)
	case ast.OpBoolNE:
		repl, ok = boolNE(left, right)
	case ast.OpNaturalPlus:
		repl, ok = naturalPlus(left, right)
	case ast.OpNaturalTimes:
		repl, ok = naturalTimes(left, right)
	case ast.OpTextAppend:
		repl, ok = textAppend(left, right)
	case ast.OpListAppend:
		repl, ok = listAppend(left, right)
	case ast.OpCombine:
		repl, ok = combine(left, right)
	case ast.OpCombineTypes:
		repl, ok = combineTypes(left, right)
	case ast.OpPrefer:
		repl, ok = prefer(left, right)
	default:
		panic("eval: unknown BinOp operator")
	}
	if ok {
		return repl, true
	}
	if !childChanged {
		return x, false
	}
	return &ast.BinOp{OpPos: x.OpPos, Op: x.Op, X: left, Y: right}, true
}

func (c *Context) normalizeLam(x *ast.Lam) (ast.Expr, bool) {
	typ, tc := c.normalize(x.Type)
	body, bc := c.normalize(x.Body)
	if app, ok := ast.AsApp(body); ok {
		if v, ok := ast.AsVar(app.Arg); ok && v.Name == x.Label && v.Index == 0 {
			if !ast.FreeIn(x.Label, 0, app.Fn) {
				return app.Fn, true
			}
		}
	}
	if !tc && !bc {
		return x, false
	}
	return &ast.Lam{LambdaPos: x.LambdaPos, Label: x.Label, Type: typ, Body: body}, true
}

func (c *Context) normalizeApp(x *ast.App) (ast.Expr, bool) {
	fn, fc := c.normalize(x.Fn)
	arg, ac := c.normalize(x.Arg)

	if lam, ok := ast.AsLam(fn); ok {
		substituted := ast.Beta(lam.Label, lam.Body, arg)
		out, _ := c.normalize(substituted)
		return out, true
	}

	candidate := &ast.App{Fn: fn, Arg: arg}
	spine := adt.View(candidate)

	if c.user != nil {
		if repl, ok := c.user(spine); ok {
			out, _ := c.normalize(repl)
			return out, true
		}
	}
	if repl, ok := builtins(spine); ok {
		out, _ := c.normalize(repl)
		return out, true
	}

	if !fc && !ac {
		return x, false
	}
	return candidate, true
}
