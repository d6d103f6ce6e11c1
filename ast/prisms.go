package ast

// This file collects small "As*" accessors: type-asserting helpers that
// return (value, ok) instead of requiring a bare type switch at every
// call site. internal/core/adt's application-spine view and
// internal/core/eval's built-in rules are both heavy consumers of these.

func AsVar(e Expr) (*Var, bool)               { x, ok := e.(*Var); return x, ok }
func AsApp(e Expr) (*App, bool)               { x, ok := e.(*App); return x, ok }
func AsBuiltin(e Expr) (*Builtin, bool)       { x, ok := e.(*Builtin); return x, ok }
func AsTypeConst(e Expr) (*TypeConst, bool)   { x, ok := e.(*TypeConst); return x, ok }
func AsConst(e Expr) (*Const, bool)           { x, ok := e.(*Const); return x, ok }
func AsBoolLit(e Expr) (*BoolLit, bool)       { x, ok := e.(*BoolLit); return x, ok }
func AsNaturalLit(e Expr) (*NaturalLit, bool) { x, ok := e.(*NaturalLit); return x, ok }
func AsIntegerLit(e Expr) (*IntegerLit, bool) { x, ok := e.(*IntegerLit); return x, ok }
func AsDoubleLit(e Expr) (*DoubleLit, bool)   { x, ok := e.(*DoubleLit); return x, ok }
func AsTextLit(e Expr) (*TextLit, bool)       { x, ok := e.(*TextLit); return x, ok }
func AsListLit(e Expr) (*ListLit, bool)       { x, ok := e.(*ListLit); return x, ok }
func AsOptionalLit(e Expr) (*OptionalLit, bool) { x, ok := e.(*OptionalLit); return x, ok }
func AsSome(e Expr) (*Some, bool)             { x, ok := e.(*Some); return x, ok }
func AsRecord(e Expr) (*Record, bool)         { x, ok := e.(*Record); return x, ok }
func AsRecordLit(e Expr) (*RecordLit, bool)   { x, ok := e.(*RecordLit); return x, ok }
func AsUnion(e Expr) (*Union, bool)           { x, ok := e.(*Union); return x, ok }
func AsUnionLit(e Expr) (*UnionLit, bool)     { x, ok := e.(*UnionLit); return x, ok }
func AsLam(e Expr) (*Lam, bool)               { x, ok := e.(*Lam); return x, ok }
func AsPi(e Expr) (*Pi, bool)                 { x, ok := e.(*Pi); return x, ok }
func AsLet(e Expr) (*Let, bool)               { x, ok := e.(*Let); return x, ok }

// IsBuiltin reports whether e is the named built-in function.
func IsBuiltin(e Expr, name BuiltinName) bool {
	b, ok := AsBuiltin(e)
	return ok && b.Name == name
}

// IsTypeConst reports whether e is the named primitive type constant.
func IsTypeConst(e Expr, name TypeName) bool {
	t, ok := AsTypeConst(e)
	return ok && t.Name == name
}
