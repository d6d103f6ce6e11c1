// Package ast declares the types used to represent syntax trees for Noema
// expressions: lambdas, dependent function types, let-bindings, records,
// unions, lists, optionals, interpolated text, numeric literals, import
// references and the fixed set of built-in identifiers.
package ast

import (
	"github.com/cockroachdb/apd/v3"

	"github.com/noema-lang/noema/token"
)

// Node is implemented by every AST node.
type Node interface {
	Pos() token.Pos
}

// Expr is implemented by every expression node. Noema has no separate
// statement or declaration grammar: everything is an expression, following
// the single closed tagged sum the design notes call for in place of the
// source's open-row functor.
type Expr interface {
	Node
	exprNode()
}

func (*Const) exprNode()        {}
func (*TypeConst) exprNode()    {}
func (*Builtin) exprNode()      {}
func (*Var) exprNode()          {}
func (*BoolLit) exprNode()      {}
func (*BinOp) exprNode()        {}
func (*BoolIf) exprNode()       {}
func (*NaturalLit) exprNode()   {}
func (*IntegerLit) exprNode()   {}
func (*DoubleLit) exprNode()    {}
func (*TextLit) exprNode()      {}
func (*ListLit) exprNode()      {}
func (*OptionalLit) exprNode()  {}
func (*Some) exprNode()         {}
func (*Record) exprNode()       {}
func (*RecordLit) exprNode()    {}
func (*Field) exprNode()        {}
func (*Project) exprNode()      {}
func (*Union) exprNode()        {}
func (*UnionLit) exprNode()     {}
func (*Merge) exprNode()        {}
func (*Constructors) exprNode() {}
func (*Lam) exprNode()          {}
func (*Pi) exprNode()           {}
func (*Let) exprNode()          {}
func (*App) exprNode()          {}
func (*Annot) exprNode()        {}
func (*ImportAlt) exprNode()    {}
func (*Import) exprNode()       {}

// ----------------------------------------------------------------------------
// Universes

// Sort distinguishes the three universes Type, Kind and Sort. Grouping
// them under one struct with a discriminant field, rather than three
// one-off struct types, follows the same technique cue/ast uses for
// ast.BasicLit's Kind field (cue/ast/ast.go).
type Sort int

const (
	TypeSort Sort = iota
	KindSort
	SortSort
)

func (s Sort) String() string {
	switch s {
	case TypeSort:
		return "Type"
	case KindSort:
		return "Kind"
	case SortSort:
		return "Sort"
	default:
		return "<bad universe>"
	}
}

// Const is a universe literal: Type, Kind or Sort.
type Const struct {
	ValuePos token.Pos
	Sort     Sort
}

func (x *Const) Pos() token.Pos { return x.ValuePos }

// ----------------------------------------------------------------------------
// Primitive type constants

// TypeName enumerates the nullary type identifiers: Bool, Natural,
// Integer, Double, Text, List and Optional.
type TypeName int

const (
	BoolType TypeName = iota
	NaturalType
	IntegerType
	DoubleType
	TextType
	ListType
	OptionalType
)

func (k TypeName) String() string {
	switch k {
	case BoolType:
		return "Bool"
	case NaturalType:
		return "Natural"
	case IntegerType:
		return "Integer"
	case DoubleType:
		return "Double"
	case TextType:
		return "Text"
	case ListType:
		return "List"
	case OptionalType:
		return "Optional"
	default:
		return "<bad type constant>"
	}
}

// TypeConst is one of the nullary type identifiers.
type TypeConst struct {
	ValuePos token.Pos
	Name     TypeName
}

func (x *TypeConst) Pos() token.Pos { return x.ValuePos }

// ----------------------------------------------------------------------------
// Built-in functions

// BuiltinName enumerates the fixed set of named built-in functions.
// Reserved words that name these identifiers are rejected as Var
// names and parse directly to a *Builtin node instead.
type BuiltinName int

const (
	NaturalFold BuiltinName = iota
	NaturalBuild
	NaturalIsZero
	NaturalEven
	NaturalOdd
	NaturalToInteger
	NaturalShow
	IntegerShow
	IntegerToDouble
	DoubleShow
	ListBuild
	ListFold
	ListLength
	ListHead
	ListLast
	ListIndexed
	ListReverse
	OptionalBuild
	OptionalFold
	NoneBuiltin
)

var builtinNames = [...]string{
	NaturalFold:      "Natural/fold",
	NaturalBuild:     "Natural/build",
	NaturalIsZero:    "Natural/isZero",
	NaturalEven:      "Natural/even",
	NaturalOdd:       "Natural/odd",
	NaturalToInteger: "Natural/toInteger",
	NaturalShow:      "Natural/show",
	IntegerShow:      "Integer/show",
	IntegerToDouble:  "Integer/toDouble",
	DoubleShow:       "Double/show",
	ListBuild:        "List/build",
	ListFold:         "List/fold",
	ListLength:       "List/length",
	ListHead:         "List/head",
	ListLast:         "List/last",
	ListIndexed:      "List/indexed",
	ListReverse:      "List/reverse",
	OptionalBuild:    "Optional/build",
	OptionalFold:     "Optional/fold",
	NoneBuiltin:      "None",
}

func (b BuiltinName) String() string {
	if int(b) < 0 || int(b) >= len(builtinNames) {
		return "<bad builtin>"
	}
	return builtinNames[b]
}

// LookupBuiltin returns the BuiltinName for a reserved built-in
// identifier's literal text, if any.
func LookupBuiltin(name string) (BuiltinName, bool) {
	for i, s := range builtinNames {
		if s == name {
			return BuiltinName(i), true
		}
	}
	return 0, false
}

// Builtin is a reference to one of the named built-in functions.
type Builtin struct {
	ValuePos token.Pos
	Name     BuiltinName
}

func (x *Builtin) Pos() token.Pos { return x.ValuePos }

// ----------------------------------------------------------------------------
// Variables

// Var is a variable reference: a label plus a De Bruijn offset counting
// same-named enclosing binders, innermost first.
type Var struct {
	ValuePos token.Pos
	Name     string
	Index    int
}

func (x *Var) Pos() token.Pos { return x.ValuePos }

// ----------------------------------------------------------------------------
// Booleans

type BoolLit struct {
	ValuePos token.Pos
	Value    bool
}

func (x *BoolLit) Pos() token.Pos { return x.ValuePos }

type BoolIf struct {
	IfPos            token.Pos
	Cond, Then, Else Expr
}

func (x *BoolIf) Pos() token.Pos { return x.IfPos }

// ----------------------------------------------------------------------------
// Binary operators
//
// Booleans' And/Or/EQ/NE, Naturals' Plus/Times, Text's Append, List's
// Append, and the three record combinators Combine/CombineTypes/Prefer
// are all binary, left-associative and infix. Grouping all eleven under
// one BinOp struct with an Op discriminant mirrors cue/ast's
// ast.BinaryExpr, which does the same for CUE's whole binary-operator
// table (cue/ast/ast.go).

type Op int

const (
	OpBoolAnd Op = iota
	OpBoolOr
	OpBoolEQ
	OpBoolNE
	OpNaturalPlus
	OpNaturalTimes
	OpTextAppend
	OpListAppend
	OpCombine
	OpCombineTypes
	OpPrefer
)

func (op Op) String() string {
	switch op {
	case OpBoolAnd:
		return "&&"
	case OpBoolOr:
		return "||"
	case OpBoolEQ:
		return "=="
	case OpBoolNE:
		return "!="
	case OpNaturalPlus:
		return "+"
	case OpNaturalTimes:
		return "*"
	case OpTextAppend:
		return "++"
	case OpListAppend:
		return "#"
	case OpCombine:
		return "∧"
	case OpCombineTypes:
		return "⩓"
	case OpPrefer:
		return "⫽"
	default:
		return "<bad op>"
	}
}

type BinOp struct {
	OpPos token.Pos
	Op    Op
	X, Y  Expr
}

func (x *BinOp) Pos() token.Pos { return x.OpPos }

// ----------------------------------------------------------------------------
// Numbers

// NaturalLit is a non-negative, arbitrary-precision natural number
// literal. The magnitude is stored in an apd.Decimal configured with
// exponent 0 (see the literal package's unbounded context).
type NaturalLit struct {
	ValuePos token.Pos
	Value    apd.Decimal
}

func (x *NaturalLit) Pos() token.Pos { return x.ValuePos }

// IntegerLit is an arbitrary-precision, explicitly signed integer
// literal. apd.Decimal already separates sign (Negative) from magnitude
// (Coeff), which is exactly the representation a signed magnitude needs.
type IntegerLit struct {
	ValuePos token.Pos
	Value    apd.Decimal
}

func (x *IntegerLit) Pos() token.Pos { return x.ValuePos }

// DoubleLit is an IEEE-754 binary64 literal. Equality on DoubleLit is
// bit-exact: two syntactically distinct doubles never
// normalise equal, including -0.0 versus 0.0.
type DoubleLit struct {
	ValuePos token.Pos
	Value    float64
}

func (x *DoubleLit) Pos() token.Pos { return x.ValuePos }

// ----------------------------------------------------------------------------
// Text

// TextChunk is one interpolated expression together with the literal text
// chunk immediately following it, the "eᵢ sᵢ" half of the text literal's
// alternating sequence "s₀ [e₁ s₁ … eₙ sₙ]".
type TextChunk struct {
	Expr   Expr
	Suffix string
}

// TextLit is interpolated text: a leading literal chunk followed by zero
// or more (interpolated expression, literal chunk) pairs.
type TextLit struct {
	LitPos token.Pos
	Prefix string
	Parts  []TextChunk
}

func (x *TextLit) Pos() token.Pos { return x.LitPos }

// IsSimple reports whether the text literal has no interpolations.
func (x *TextLit) IsSimple() bool { return len(x.Parts) == 0 }

// ----------------------------------------------------------------------------
// Lists

// ListLit is a list literal. ElemType is non-nil iff Elems is empty:
// ListLit carries an element type iff the value vector
// is empty.
type ListLit struct {
	LitPos   token.Pos
	ElemType Expr
	Elems    []Expr
}

func (x *ListLit) Pos() token.Pos { return x.LitPos }

// ----------------------------------------------------------------------------
// Optionals

// OptionalLit is an annotated optional value: OptionalLit{Elem: nil} is
// the "none" case, which normalises to None(ElemType); a non-nil Elem
// normalises to Some(Elem).
type OptionalLit struct {
	LitPos   token.Pos
	ElemType Expr
	Elem     Expr
}

func (x *OptionalLit) Pos() token.Pos { return x.LitPos }

// Some wraps a present optional value. Unlike None (a nullary Builtin
// applied to a type), Some is its own AST node because the grammar parses
// it as a unary prefix, not an ordinary application.
type Some struct {
	SomePos token.Pos
	X       Expr
}

func (x *Some) Pos() token.Pos { return x.SomePos }

// ----------------------------------------------------------------------------
// Records

// Record is a record type: an ordered label → type map.
type Record struct {
	LBrace token.Pos
	Fields *OrderedMap
}

func (x *Record) Pos() token.Pos { return x.LBrace }

// RecordLit is a record value: an ordered label → value map.
type RecordLit struct {
	LBrace token.Pos
	Fields *OrderedMap
}

func (x *RecordLit) Pos() token.Pos { return x.LBrace }

// Field projects a single label out of a record.
type Field struct {
	X      Expr
	Dot    token.Pos
	Label  string
}

func (x *Field) Pos() token.Pos { return x.X.Pos() }

// Project restricts a record to a set of labels.
type Project struct {
	X      Expr
	Dot    token.Pos
	Labels []string
}

func (x *Project) Pos() token.Pos { return x.X.Pos() }

// ----------------------------------------------------------------------------
// Unions

// Union is a union type: an ordered label → (optional) type map. A nil
// type for a label means that alternative carries no payload.
type Union struct {
	LAngle token.Pos
	Alts   *OrderedMap
}

func (x *Union) Pos() token.Pos { return x.LAngle }

// UnionLit is a union value: the active label, its payload (nil if that
// alternative carries none), and the ordered map of the *other*
// alternatives. The active label must not appear in Rest.
type UnionLit struct {
	LAngle token.Pos
	Label  string
	X      Expr
	Rest   *OrderedMap
}

func (x *UnionLit) Pos() token.Pos { return x.LAngle }

// Merge pattern-matches a union value against a record of handlers.
// Type is the optional result-type annotation (nil if absent; the parser
// never requires it).
type Merge struct {
	MergePos token.Pos
	Handlers Expr
	Union    Expr
	Type     Expr
}

func (x *Merge) Pos() token.Pos { return x.MergePos }

// Constructors builds a record of constructor functions from a union
// type, one function per alternative.
type Constructors struct {
	KeyPos token.Pos
	X      Expr
}

func (x *Constructors) Pos() token.Pos { return x.KeyPos }

// ----------------------------------------------------------------------------
// Binders

// Lam is a lambda abstraction: λ(Label : Type) → Body.
type Lam struct {
	LambdaPos token.Pos
	Label     string
	Type      Expr
	Body      Expr
}

func (x *Lam) Pos() token.Pos { return x.LambdaPos }

// Pi is a dependent function type: ∀(Label : Type) → Body, or simply
// Type → Body when Label is "_" and Body doesn't depend on it.
type Pi struct {
	ForallPos token.Pos
	Label     string
	Type      Expr
	Body      Expr
}

func (x *Pi) Pos() token.Pos { return x.ForallPos }

// Let is a (single-binding) let expression. Annot is nil when the binding
// carries no type annotation.
type Let struct {
	LetPos token.Pos
	Label  string
	Annot  Expr
	Value  Expr
	Body   Expr
}

func (x *Let) Pos() token.Pos { return x.LetPos }

// ----------------------------------------------------------------------------
// Application

// App is binary function application; multi-argument application is
// left-nested.
type App struct {
	Fn, Arg Expr
}

func (x *App) Pos() token.Pos { return x.Fn.Pos() }

// ----------------------------------------------------------------------------
// Annotation

// Annot is a type annotation, "X : Type". It is semantically transparent:
// the normalizer drops it immediately.
type Annot struct {
	X, Type Expr
}

func (x *Annot) Pos() token.Pos { return x.X.Pos() }

// ----------------------------------------------------------------------------
// Imports

// ImportAlt tries Primary, falling back to Fallback if Primary fails to
// resolve. The evaluator never resolves imports; it only ever sees these
// nodes as opaque congruence subtrees.
type ImportAlt struct {
	Primary, Fallback Expr
}

func (x *ImportAlt) Pos() token.Pos { return x.Primary.Pos() }

// ImportOrigin distinguishes the four local path forms.
type ImportOrigin int

const (
	Here ImportOrigin = iota
	Parent
	Home
	Absolute
)

// ImportKind distinguishes the four import sources.
type ImportKind int

const (
	MissingImport ImportKind = iota
	LocalImport
	RemoteImport
	EnvImport
)

// ImportHashed is an import reference together with its optional
// sha256 pin and optional "using (headers)" import.
type ImportHashed struct {
	Kind ImportKind
	Hash string // 64 lowercase hex digits, "" if unpinned

	// LocalImport
	Origin ImportOrigin
	Dir    []string
	File   string

	// RemoteImport (Dir/File shared with LocalImport above)
	Scheme      string // "http" or "https"
	Authority   string
	Query       string
	HasQuery    bool
	Fragment    string
	HasFragment bool
	Using       *ImportHashed // optional header import, nil if absent

	// EnvImport
	EnvName string
}

// Import is a reference to external content. AsText marks a "as Text"
// import (the "optional Text-import marker").
type Import struct {
	ImportPos token.Pos
	Hashed    ImportHashed
	AsText    bool
}

func (x *Import) Pos() token.Pos { return x.ImportPos }
