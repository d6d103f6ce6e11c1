package eval

import (
	"github.com/noema-lang/noema/ast"
	"github.com/noema-lang/noema/internal/core/adt"
)

// builtins consults every built-in rule family against an
// application spine and returns the first one that applies. Each
// family's own Build matcher checks its build/fold fusion law before
// falling back to the Church-encoding expansion, so fusion always takes
// priority without a separate pass here.
func builtins(s adt.Spine) (ast.Expr, bool) {
	if _, ok := ast.AsBuiltin(s.Head); !ok {
		return nil, false
	}
	for _, family := range []func(adt.Spine) (ast.Expr, bool){
		naturalBuiltins,
		integerBuiltins,
		doubleBuiltins,
		listBuiltins,
		optionalBuiltins,
	} {
		if repl, ok := family(s); ok {
			return repl, true
		}
	}
	return nil, false
}
