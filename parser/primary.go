package parser

import (
	"strings"

	"github.com/noema-lang/noema/ast"
	"github.com/noema-lang/noema/literal"
	"github.com/noema-lang/noema/token"
)

// parsePrimaryExpression parses the tightest grammar level: parenthesized
// expressions, record/union type-or-value literals, list literals,
// string and numeric literals, merge expressions, variables, the fixed
// reserved identifiers, and imports.
func (p *parser) parsePrimaryExpression() ast.Expr {
	switch p.tok {
	case token.LPAREN:
		p.next()
		e := p.parseExpression()
		p.expect(token.RPAREN)
		return e

	case token.LBRACE:
		return p.parseRecord()

	case token.LANGLE:
		return p.parseUnion()

	case token.LBRACK:
		return p.parseList()

	case token.MERGE:
		return p.parseMerge()

	case token.NATURAL:
		pos, lit := p.pos, p.lit
		p.next()
		d, err := literal.ParseNatural(lit)
		if err != nil {
			p.errorf(pos, "%s", err)
		}
		return &ast.NaturalLit{ValuePos: pos, Value: d}

	case token.INTEGER:
		pos, lit := p.pos, p.lit
		p.next()
		d, err := literal.ParseInteger(lit)
		if err != nil {
			p.errorf(pos, "%s", err)
		}
		return &ast.IntegerLit{ValuePos: pos, Value: d}

	case token.DOUBLE:
		pos, lit := p.pos, p.lit
		p.next()
		f, err := literal.ParseDouble(lit)
		if err != nil {
			p.errorf(pos, "%s", err)
		}
		return &ast.DoubleLit{ValuePos: pos, Value: f}

	case token.STRING, token.INTERPOLATION:
		return p.parseTextLit()

	case token.IDENT:
		return p.parseIdentOrImport()

	case token.MISSING:
		pos := p.pos
		return p.finishImport(pos, ast.ImportHashed{Kind: ast.MissingImport})

	case token.DOT:
		return p.parseLocalImport()

	case token.ILLEGAL:
		if p.lit == "~" || p.lit == "/" {
			return p.parseLocalImport()
		}
	}
	p.errorf(p.pos, "unexpected %s", describe(p.tok, p.lit))
	panic("unreachable")
}

// parseIdentOrImport dispatches a plain IDENT token to one of: a
// universe/type/boolean literal, a named built-in function, the "env"
// import keyword, a local import path starting with a bare label (not
// possible — local imports always start with '.', '/' or '~'), or an
// ordinary Var (a bare reserved word must be rejected as a
// Var, which falls out naturally here because every reserved spelling
// is matched before the default Var case).
func (p *parser) parseIdentOrImport() ast.Expr {
	pos, lit := p.pos, p.lit
	if isQuotedLabel(lit) {
		p.next()
		return p.parseVarIndex(pos, unquoteLabel(lit))
	}

	if lit == "http" || lit == "https" {
		p.next()
		if p.tok == token.COLON {
			if e, ok := p.tryParseRemoteImport(pos, lit); ok {
				return e
			}
		}
		return p.parseVarIndex(pos, lit)
	}

	switch lit {
	case "Type":
		p.next()
		return &ast.Const{ValuePos: pos, Sort: ast.TypeSort}
	case "Kind":
		p.next()
		return &ast.Const{ValuePos: pos, Sort: ast.KindSort}
	case "Sort":
		p.next()
		return &ast.Const{ValuePos: pos, Sort: ast.SortSort}
	case "True":
		p.next()
		return &ast.BoolLit{ValuePos: pos, Value: true}
	case "False":
		p.next()
		return &ast.BoolLit{ValuePos: pos, Value: false}
	case "Bool":
		p.next()
		return &ast.TypeConst{ValuePos: pos, Name: ast.BoolType}
	case "Natural":
		p.next()
		return &ast.TypeConst{ValuePos: pos, Name: ast.NaturalType}
	case "Integer":
		p.next()
		return &ast.TypeConst{ValuePos: pos, Name: ast.IntegerType}
	case "Double":
		p.next()
		return &ast.TypeConst{ValuePos: pos, Name: ast.DoubleType}
	case "Text":
		p.next()
		return &ast.TypeConst{ValuePos: pos, Name: ast.TextType}
	case "List":
		p.next()
		return &ast.TypeConst{ValuePos: pos, Name: ast.ListType}
	case "Optional":
		p.next()
		return &ast.TypeConst{ValuePos: pos, Name: ast.OptionalType}
	case "None":
		p.next()
		return &ast.Builtin{ValuePos: pos, Name: ast.NoneBuiltin}
	case "env":
		return p.parseEnvImport()
	}

	if bn, ok := ast.LookupBuiltin(lit); ok {
		p.next()
		return &ast.Builtin{ValuePos: pos, Name: bn}
	}

	p.next()
	return p.parseVarIndex(pos, lit)
}

// parseVarIndex parses the optional explicit "@index" De Bruijn suffix
// on a variable reference; the index defaults to 0 when omitted.
func (p *parser) parseVarIndex(pos token.Pos, name string) ast.Expr {
	index := 0
	if p.tok == token.AT {
		p.next()
		if p.tok != token.NATURAL {
			p.errorf(p.pos, "expected a natural number after '@'")
		}
		n, err := literal.ParseNatural(p.lit)
		if err != nil {
			p.errorf(p.pos, "%s", err)
		}
		index = int(n.Coeff.Int64())
		p.next()
	}
	return &ast.Var{ValuePos: pos, Name: name, Index: index}
}

// parseRecord parses "{}" (empty Record type), "{=}" (empty RecordLit),
// or a non-empty comma-separated block disambiguated by its first
// entry's separator: ':' for a Record type, '=' for a RecordLit
//.
func (p *parser) parseRecord() ast.Expr {
	pos := p.expect(token.LBRACE)
	if p.tok == token.EQUAL {
		p.next()
		p.expect(token.RBRACE)
		return &ast.RecordLit{LBrace: pos, Fields: ast.NewOrderedMap()}
	}
	if p.tok == token.RBRACE {
		p.next()
		return &ast.Record{LBrace: pos, Fields: ast.NewOrderedMap()}
	}

	label := p.label()
	isLit := false
	switch p.tok {
	case token.COLON:
		p.next()
	case token.EQUAL:
		isLit = true
		p.next()
	default:
		p.errorf(p.pos, "expected ':' or '=' after record label %q", label)
	}
	first := p.parseExpression()

	fields := ast.NewOrderedMap()
	if err := fields.Set(label, first, false); err != nil {
		p.errorf(pos, "%s", err)
	}
	for p.tok == token.COMMA {
		p.next()
		l := p.label()
		if isLit {
			p.expect(token.EQUAL)
		} else {
			p.expect(token.COLON)
		}
		v := p.parseExpression()
		if err := fields.Set(l, v, false); err != nil {
			p.errorf(pos, "%s", err)
		}
	}
	p.expect(token.RBRACE)
	if isLit {
		return &ast.RecordLit{LBrace: pos, Fields: fields}
	}
	return &ast.Record{LBrace: pos, Fields: fields}
}

// parseUnion parses "<>" (empty Union), or a non-empty "|"-separated
// block. Disambiguation is entry-by-entry: any one entry, wherever it
// falls in source order, may use '=' to become the active alternative,
// making the whole block a UnionLit; every other entry must use ':'.
// A second '=' entry is a parse error.
func (p *parser) parseUnion() ast.Expr {
	pos := p.expect(token.LANGLE)
	if p.tok == token.RANGLE {
		p.next()
		return &ast.Union{LAngle: pos, Alts: ast.NewOrderedMap()}
	}

	var activeLabel string
	var activeValue ast.Expr
	isLit := false
	alts := ast.NewOrderedMap()

	parseEntry := func() {
		l := p.label()
		switch p.tok {
		case token.COLON:
			p.next()
			typ := p.parseExpression()
			if err := alts.Set(l, typ, false); err != nil {
				p.errorf(pos, "%s", err)
			}
		case token.EQUAL:
			if isLit {
				p.errorf(p.pos, "union literal already has an active alternative %q", activeLabel)
			}
			p.next()
			isLit = true
			activeLabel = l
			activeValue = p.parseExpression()
		default:
			p.errorf(p.pos, "expected ':' or '=' after union label %q", l)
		}
	}

	parseEntry()
	for p.tok == token.BAR {
		p.next()
		parseEntry()
	}
	p.expect(token.RANGLE)

	if isLit {
		return &ast.UnionLit{LAngle: pos, Label: activeLabel, X: activeValue, Rest: alts}
	}
	return &ast.Union{LAngle: pos, Alts: alts}
}

// parseList parses "[]" or a non-empty comma-separated list literal,
// followed by the grammar's mandatory ": List elemType" annotation when the
// list is empty (the invariant: ListLit carries an element type
// iff the value vector is empty).
func (p *parser) parseList() ast.Expr {
	pos := p.expect(token.LBRACK)
	if p.tok == token.RBRACK {
		p.next()
		p.expect(token.COLON)
		annot := p.parseOperatorExpressionForAnnotation()
		app, ok := annot.(*ast.App)
		if ok {
			tc, isTC := app.Fn.(*ast.TypeConst)
			ok = isTC && tc.Name == ast.ListType
		}
		if !ok {
			p.errorf(annot.Pos(), "expected a 'List T' annotation on an empty list")
		}
		return &ast.ListLit{LitPos: pos, ElemType: app.Arg}
	}
	var elems []ast.Expr
	elems = append(elems, p.parseExpression())
	for p.tok == token.COMMA {
		p.next()
		elems = append(elems, p.parseExpression())
	}
	p.expect(token.RBRACK)
	return &ast.ListLit{LitPos: pos, Elems: elems}
}

// parseOperatorExpressionForAnnotation parses the type following an
// empty list literal's mandatory ": Type" marker. It stops at the
// operator-expression level (no further bare ':' annotation, no
// lambda/if/let) since the annotation is already explicit here.
func (p *parser) parseOperatorExpressionForAnnotation() ast.Expr {
	return p.parseArrowExpression()
}

// parseMerge parses "merge handler union [: type]". The
// handler and union operands are parsed at selector-expression tightness
// (so a following ':' is never ambiguous with the merge's own optional
// result-type clause), and the optional type itself stops short of a
// trailing annotation or lambda/if/let form.
func (p *parser) parseMerge() ast.Expr {
	pos := p.expect(token.MERGE)
	handlers := p.parseSelectorExpression()
	union := p.parseSelectorExpression()
	var typ ast.Expr
	if p.tok == token.COLON {
		p.next()
		typ = p.parseArrowExpression()
	}
	return &ast.Merge{MergePos: pos, Handlers: handlers, Union: union, Type: typ}
}

// parseTextLit parses a full string literal, possibly with interpolated
// expressions. p.tok is STRING (no interpolation at all) or
// INTERPOLATION (at least one "${ }" splice) on entry.
func (p *parser) parseTextLit() ast.Expr {
	pos := p.pos
	raw := p.lit
	triple := strings.HasPrefix(raw, "''")

	if p.tok == token.STRING {
		p.next()
		prefix := p.decodeStringLit(pos, raw, triple, true, true)
		return &ast.TextLit{LitPos: pos, Prefix: prefix}
	}

	prefix := p.decodeStringLit(pos, raw, triple, true, false)
	var parts []ast.TextChunk
	for {
		p.next() // load the first token of the "${ ... }" expression
		inner := p.parseExpression()
		if p.tok != token.RBRACE {
			p.errorf(p.pos, "expected '}' to close string interpolation")
		}
		chunkPos := p.pos
		tok, lit := p.sc.ResumeInterpolation(triple)
		suffix := p.decodeStringLit(chunkPos, lit, triple, false, tok == token.STRING)
		parts = append(parts, ast.TextChunk{Expr: inner, Suffix: suffix})
		if tok == token.STRING {
			p.next()
			break
		}
	}
	return &ast.TextLit{LitPos: pos, Prefix: prefix, Parts: parts}
}

// decodeStringLit strips the delimiters the scanner left attached to a
// raw string/interpolation lexeme and decodes the remaining body,
// reporting a parse error at pos if the body contains an invalid escape
// sequence. leading is true only for the chunk returned directly by
// Scan (which still carries its opening quote); every chunk resumed
// after a "}" has no opening delimiter. closing selects whether the
// trailing delimiter is a closing quote (STRING) or a "${"
// interpolation marker.
func (p *parser) decodeStringLit(pos token.Pos, raw string, triple, leading, closing bool) string {
	body := raw
	if leading {
		if triple {
			body = body[2:]
		} else {
			body = body[1:]
		}
	}
	if closing {
		if triple {
			body = body[:len(body)-2]
		} else {
			body = body[:len(body)-1]
		}
	} else {
		body = body[:len(body)-2] // trailing "${"
	}

	var s string
	var err error
	if triple {
		s, err = literal.DecodeSingleQuotedChunk(body)
	} else {
		s, err = literal.DecodeDoubleQuotedChunk(body)
	}
	if err != nil {
		p.errorf(pos, "%s", err)
	}
	return s
}
