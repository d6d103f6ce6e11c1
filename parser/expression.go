package parser

import (
	"github.com/noema-lang/noema/ast"
	"github.com/noema-lang/noema/token"
)

// This file implements the operator-precedence chain, one
// function per level, tightest to loosest:
//
//	application < * < == < != < && < /\ < // < //\\ < # < ++ < + < || < ?
//	  < "->" (Pi sugar)
//	  < λ / if / let / forall / annotation ":"
//
// Each binary level is left-associative: parse the next tighter level,
// then loop consuming same-precedence operators, building BinOp nodes.
// This is the same shape as cue/parser's parseBinaryExpr
// (cue/parser/parser.go), specialized into one function per level
// instead of a generic precedence table, because the order is a
// fixed list rather than CUE's extensible token.Precedence() table.

// parseExpression parses a complete expression, the loosest grammar
// level: an optional lambda/if/let/forall form, or an operator chain,
// either of which may carry a trailing ": type" annotation.
func (p *parser) parseExpression() ast.Expr {
	defer p.enter("expression")()
	e := p.parseExpressionNoAnnot()
	if p.tok == token.COLON {
		p.next()
		typ := p.parseExpression()
		return &ast.Annot{X: e, Type: typ}
	}
	return e
}

func (p *parser) parseExpressionNoAnnot() ast.Expr {
	switch p.tok {
	case token.LAMBDA:
		pos := p.pos
		p.next()
		label, typ := p.parseBinder()
		p.expect(token.ARROW)
		body := p.parseExpression()
		return &ast.Lam{LambdaPos: pos, Label: label, Type: typ, Body: body}

	case token.FORALL:
		pos := p.pos
		p.next()
		label, typ := p.parseBinder()
		p.expect(token.ARROW)
		body := p.parseExpression()
		return &ast.Pi{ForallPos: pos, Label: label, Type: typ, Body: body}

	case token.IF:
		pos := p.pos
		p.next()
		cond := p.parseExpression()
		p.expect(token.THEN)
		then := p.parseExpression()
		p.expect(token.ELSE)
		els := p.parseExpression()
		return &ast.BoolIf{IfPos: pos, Cond: cond, Then: then, Else: els}

	case token.LET:
		return p.parseLet()

	default:
		return p.parseArrowExpression()
	}
}

// parseLet parses one or more consecutive "let label [: type] = value"
// bindings followed by a single "in" body, desugaring multiple bindings
// into right-nested single-binding Lets (ast.Let is single-binding,
// but chained "let x = 1 let y = 2 in e" is common surface
// sugar for Let(x, 1, Let(y, 2, e))).
func (p *parser) parseLet() ast.Expr {
	defer p.enter("let")()
	pos := p.expect(token.LET)
	label := p.label()
	var annot ast.Expr
	if p.tok == token.COLON {
		p.next()
		annot = p.parseExpression()
	}
	p.expect(token.EQUAL)
	value := p.parseExpression()

	var body ast.Expr
	if p.tok == token.LET {
		body = p.parseLet()
	} else {
		p.expect(token.IN)
		body = p.parseExpression()
	}
	return &ast.Let{LetPos: pos, Label: label, Annot: annot, Value: value, Body: body}
}

// parseArrowExpression handles the "A -> B" sugar for a Pi type whose
// binder is "_" and whose body doesn't need to name it, one level
// looser than every other binary operator.
func (p *parser) parseArrowExpression() ast.Expr {
	pos := p.pos
	e := p.parseImportAltExpression()
	if p.tok == token.ARROW {
		p.next()
		body := p.parseExpression()
		return &ast.Pi{ForallPos: pos, Label: "_", Type: e, Body: body}
	}
	return e
}

func (p *parser) parseImportAltExpression() ast.Expr {
	x := p.parseOrExpression()
	for p.tok == token.QUESTION {
		p.next()
		y := p.parseOrExpression()
		x = &ast.ImportAlt{Primary: x, Fallback: y}
	}
	return x
}

func (p *parser) parseOrExpression() ast.Expr {
	x := p.parsePlusExpression()
	for p.tok == token.OROR {
		pos := p.pos
		p.next()
		y := p.parsePlusExpression()
		x = &ast.BinOp{OpPos: pos, Op: ast.OpBoolOr, X: x, Y: y}
	}
	return x
}

func (p *parser) parsePlusExpression() ast.Expr {
	x := p.parseTextAppendExpression()
	for p.tok == token.PLUS {
		pos := p.pos
		p.next()
		y := p.parseTextAppendExpression()
		x = &ast.BinOp{OpPos: pos, Op: ast.OpNaturalPlus, X: x, Y: y}
	}
	return x
}

func (p *parser) parseTextAppendExpression() ast.Expr {
	x := p.parseListAppendExpression()
	for p.tok == token.PLUSPLUS {
		pos := p.pos
		p.next()
		y := p.parseListAppendExpression()
		x = &ast.BinOp{OpPos: pos, Op: ast.OpTextAppend, X: x, Y: y}
	}
	return x
}

func (p *parser) parseListAppendExpression() ast.Expr {
	x := p.parseCombineTypesExpression()
	for p.tok == token.HASH {
		pos := p.pos
		p.next()
		y := p.parseCombineTypesExpression()
		x = &ast.BinOp{OpPos: pos, Op: ast.OpListAppend, X: x, Y: y}
	}
	return x
}

func (p *parser) parseCombineTypesExpression() ast.Expr {
	x := p.parsePreferExpression()
	for p.tok == token.COMBINETYPES {
		pos := p.pos
		p.next()
		y := p.parsePreferExpression()
		x = &ast.BinOp{OpPos: pos, Op: ast.OpCombineTypes, X: x, Y: y}
	}
	return x
}

func (p *parser) parsePreferExpression() ast.Expr {
	x := p.parseCombineExpression()
	for p.tok == token.PREFER {
		pos := p.pos
		p.next()
		y := p.parseCombineExpression()
		x = &ast.BinOp{OpPos: pos, Op: ast.OpPrefer, X: x, Y: y}
	}
	return x
}

func (p *parser) parseCombineExpression() ast.Expr {
	x := p.parseAndExpression()
	for p.tok == token.COMBINE {
		pos := p.pos
		p.next()
		y := p.parseAndExpression()
		x = &ast.BinOp{OpPos: pos, Op: ast.OpCombine, X: x, Y: y}
	}
	return x
}

func (p *parser) parseAndExpression() ast.Expr {
	x := p.parseNeExpression()
	for p.tok == token.ANDAND {
		pos := p.pos
		p.next()
		y := p.parseNeExpression()
		x = &ast.BinOp{OpPos: pos, Op: ast.OpBoolAnd, X: x, Y: y}
	}
	return x
}

func (p *parser) parseNeExpression() ast.Expr {
	x := p.parseEqExpression()
	for p.tok == token.NOTEQ {
		pos := p.pos
		p.next()
		y := p.parseEqExpression()
		x = &ast.BinOp{OpPos: pos, Op: ast.OpBoolNE, X: x, Y: y}
	}
	return x
}

func (p *parser) parseEqExpression() ast.Expr {
	x := p.parseTimesExpression()
	for p.tok == token.DOUBLEEQ {
		pos := p.pos
		p.next()
		y := p.parseTimesExpression()
		x = &ast.BinOp{OpPos: pos, Op: ast.OpBoolEQ, X: x, Y: y}
	}
	return x
}

func (p *parser) parseTimesExpression() ast.Expr {
	x := p.parseApplicationExpression()
	for p.tok == token.STAR {
		pos := p.pos
		p.next()
		y := p.parseApplicationExpression()
		x = &ast.BinOp{OpPos: pos, Op: ast.OpNaturalTimes, X: x, Y: y}
	}
	return x
}

// parseApplicationExpression parses an optional "Some"/"constructors"
// prefix followed by one or more selector expressions, folding them into
// a left-nested App spine. The prefix wraps only the first operand; any
// further operands apply to that wrapped result, which becomes the head
// of the spine ("Some f x" is App(Some f, x)).
func (p *parser) parseApplicationExpression() ast.Expr {
	var wrap func(ast.Expr) ast.Expr
	switch p.tok {
	case token.SOME:
		pos := p.pos
		p.next()
		wrap = func(x ast.Expr) ast.Expr { return &ast.Some{SomePos: pos, X: x} }
	case token.CONSTRUCTORS:
		pos := p.pos
		p.next()
		wrap = func(x ast.Expr) ast.Expr { return &ast.Constructors{KeyPos: pos, X: x} }
	}

	head := p.parseSelectorExpression()
	if wrap != nil {
		head = wrap(head)
	}
	// Application arguments must be whitespace-separated: "1+2" lexes as
	// NATURAL "1" directly followed by INTEGER "+2" (no space before the
	// right operand's sign), and without this check it would otherwise
	// be accepted as App(1, +2) instead of being left as unconsumed
	// input for the "+" operator to fail to parse.
	for p.startsSelectorExpression() && p.sc.WhitespaceBefore() {
		arg := p.parseSelectorExpression()
		head = &ast.App{Fn: head, Arg: arg}
	}
	return head
}

// startsSelectorExpression reports whether the current lookahead token
// can begin a selector/import expression, i.e. whether application
// should keep consuming arguments.
func (p *parser) startsSelectorExpression() bool {
	switch p.tok {
	case token.IDENT, token.NATURAL, token.INTEGER, token.DOUBLE,
		token.STRING, token.INTERPOLATION,
		token.LPAREN, token.LBRACE, token.LBRACK, token.LANGLE,
		token.MERGE, token.MISSING:
		return true
	case token.ILLEGAL:
		return p.lit == "~" || p.lit == "/"
	default:
		return false
	}
}

// parseSelectorExpression parses a primary expression followed by zero
// or more ".label" (Field) or ".{labels}" (Project) suffixes.
func (p *parser) parseSelectorExpression() ast.Expr {
	x := p.parsePrimaryExpression()
	for p.tok == token.DOT {
		dot := p.pos
		p.next()
		if p.tok == token.LBRACE {
			p.next()
			var labels []string
			for p.tok != token.RBRACE {
				labels = append(labels, p.label())
				if p.tok == token.COMMA {
					p.next()
					continue
				}
				break
			}
			p.expect(token.RBRACE)
			x = &ast.Project{X: x, Dot: dot, Labels: labels}
			continue
		}
		label := p.label()
		x = &ast.Field{X: x, Dot: dot, Label: label}
	}
	return x
}
