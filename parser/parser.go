package parser

import (
	"fmt"

	"github.com/noema-lang/noema/ast"
	"github.com/noema-lang/noema/scanner"
	"github.com/noema-lang/noema/token"
)

// parser holds the state shared by every grammar production: a scanner
// plus a single token of lookahead, following cue/parser's parser
// struct (cue/parser/parser.go's "pos token.Pos; tok token.Token; lit
// string" triple).
type parser struct {
	file *token.File
	sc   scanner.Scanner

	pos token.Pos
	tok token.Token
	lit string

	// ruleStack records the production names entered on the path to the
	// deepest position reached, purely to make Error() messages name a
	// grammar rule instead of only a byte offset; it doesn't change the
	// byte-offset contract a failed parse reports.
	ruleStack    []string
	deepestPos   token.Pos
	deepestRules []string
}

// bailout is panicked to unwind out of however deep the recursive
// descent has gone, back to parse's recover. pos/msg describe the
// longest-prefix failure position.
type bailout struct {
	pos token.Pos
	msg string
}

func (p *parser) next() {
	p.pos, p.tok, p.lit = p.sc.Scan()
	if p.pos.Offset() >= p.deepestPos.Offset() {
		p.deepestPos = p.pos
		p.deepestRules = append([]string(nil), p.ruleStack...)
	}
}

// enter/leave bracket a grammar production on ruleStack, for error
// reporting only.
func (p *parser) enter(rule string) func() {
	p.ruleStack = append(p.ruleStack, rule)
	return func() { p.ruleStack = p.ruleStack[:len(p.ruleStack)-1] }
}

func (p *parser) errorf(pos token.Pos, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if len(p.deepestRules) > 0 {
		msg = fmt.Sprintf("%s (in %s)", msg, p.deepestRules[len(p.deepestRules)-1])
	}
	panic(bailout{pos: pos, msg: msg})
}

func (p *parser) expect(tok token.Token) token.Pos {
	pos := p.pos
	if p.tok != tok {
		p.errorf(p.pos, "expected %s, found %s", tok, describe(p.tok, p.lit))
	}
	p.next()
	return pos
}

func describe(tok token.Token, lit string) string {
	if lit != "" {
		return fmt.Sprintf("%s %q", tok, lit)
	}
	return tok.String()
}

// label returns the literal text of the current IDENT token, stripping
// backtick quoting if present, and advances past it. It does not
// distinguish reserved spellings from ordinary labels: callers that
// care (parsePrimary's Var case) check that themselves first.
func (p *parser) label() string {
	if p.tok != token.IDENT {
		p.errorf(p.pos, "expected a label, found %s", describe(p.tok, p.lit))
	}
	lit := p.lit
	p.next()
	return unquoteLabel(lit)
}

func unquoteLabel(lit string) string {
	if len(lit) >= 2 && lit[0] == '`' && lit[len(lit)-1] == '`' {
		return lit[1 : len(lit)-1]
	}
	return lit
}

func isQuotedLabel(lit string) bool {
	return len(lit) >= 2 && lit[0] == '`'
}

// parseBinder parses the mandatory "label : type" pair used by
// Lam/Pi binders: "(" label ":" expr ")".
func (p *parser) parseBinder() (label string, typ ast.Expr) {
	p.expect(token.LPAREN)
	label = p.label()
	p.expect(token.COLON)
	typ = p.parseExpression()
	p.expect(token.RPAREN)
	return label, typ
}
