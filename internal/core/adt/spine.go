// Package adt views an ast.Expr as an application spine — a head plus a
// list of arguments — the representation the built-in rules need to let the
// built-in rules in internal/core/eval pattern-match App chains without
// each rule re-deriving the left-nesting by hand.
//
// There is no analogue for currying in CUE (cuelang.org/go has no
// curried application), so the pattern carried over is only the shape of
// cue/internal/core/adt/call.go: one small, focused value wrapper with a
// constructor and a couple of accessor methods, not any specific
// algorithm from it.
package adt

import "github.com/noema-lang/noema/ast"

// Spine is a non-empty application h·a₁·…·aₖ: Head is the non-App head
// and Args holds the arguments left to right (outermost App last).
type Spine struct {
	Head ast.Expr
	Args []ast.Expr
}

// View decomposes e into its application spine. For a non-App e, the
// result has Head == e and a nil Args.
func View(e ast.Expr) Spine {
	var args []ast.Expr
	for {
		app, ok := ast.AsApp(e)
		if !ok {
			break
		}
		args = append(args, app.Arg)
		e = app.Fn
	}
	// args was appended outermost-arg-first (closest to head last);
	// reverse it so Args[0] is the first argument applied to Head.
	for i, j := 0, len(args)-1; i < j; i, j = i+1, j-1 {
		args[i], args[j] = args[j], args[i]
	}
	return Spine{Head: e, Args: args}
}

// Review rebuilds a left-nested App chain from a spine, the inverse of
// View.
func Review(s Spine) ast.Expr {
	e := s.Head
	for _, a := range s.Args {
		e = &ast.App{Fn: e, Arg: a}
	}
	return e
}

// At returns the i'th argument of s, or nil and false if s has fewer than
// i+1 arguments. Built-in rules use this to pattern-match a spine's
// argument count without manual bounds checks at every call site.
func (s Spine) At(i int) (ast.Expr, bool) {
	if i < 0 || i >= len(s.Args) {
		return nil, false
	}
	return s.Args[i], true
}

// Len returns the number of arguments applied to the head.
func (s Spine) Len() int { return len(s.Args) }

// NoApp reports whether e is a bare nullary node matching check, with no
// arguments applied to it — i.e. e itself, unwrapped through View, has
// zero args and its head satisfies check.
func NoApp(check func(ast.Expr) bool, e ast.Expr) bool {
	s := View(e)
	return len(s.Args) == 0 && check(s.Head)
}

// NoAppLit extracts the scalar payload from a nullary node via extract,
// succeeding only when e carries no applied arguments.
func NoAppLit[T any](extract func(ast.Expr) (T, bool), e ast.Expr) (T, bool) {
	var zero T
	s := View(e)
	if len(s.Args) != 0 {
		return zero, false
	}
	return extract(s.Head)
}
