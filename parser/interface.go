// Package parser implements a recursive-descent, precedence-climbing
// parser that turns Noema source text into an ast.Expr. It
// follows cue/parser's shape (cue/parser/interface.go,
// cue/parser/parser.go): a parser struct holding a *scanner.Scanner and a
// single token of lookahead, public entry points that wrap a recovering
// inner parse in a deferred recover(), and one parse function per
// grammar production.
package parser

import (
	"fmt"

	"github.com/noema-lang/noema/ast"
	"github.com/noema-lang/noema/scanner"
	"github.com/noema-lang/noema/token"
)

// ParseExpr parses src (named filename, for position reporting) as a
// single Noema expression. The grammar has no separate "file" production:
// a source file is exactly one expression. A parse
// succeeds only if it consumes all of src, trailing whitespace and
// comments included; otherwise ParseExpr reports the longest-prefix
// failure position (the ambiguity rule) as a *token.Error.
func ParseExpr(filename string, src []byte) (ast.Expr, error) {
	file := token.NewFile(filename, len(src))
	p := &parser{file: file}
	return p.parse(src)
}

// parse runs the grammar over src and recovers from the bailout panic
// parse errors are raised with, turning it back into a normal error
// return. This mirrors cue/parser, which also bails out via
// panic/recover on the first unrecoverable syntax error (cue/parser's
// errors.List accumulates instead because CUE attempts limited
// resynchronization; Noema rules that out, so
// one bailout is all there ever is).
func (p *parser) parse(src []byte) (result ast.Expr, err error) {
	defer func() {
		if r := recover(); r != nil {
			pe, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			err = &token.Error{Pos: pe.pos.Position(), Msg: pe.msg}
		}
	}()

	var errs []string
	scanner.Init(&p.sc, p.file, src, func(pos token.Pos, msg string) {
		errs = append(errs, fmt.Sprintf("%s: %s", pos.Position(), msg))
	})
	p.next()

	e := p.parseExpression()
	if p.tok != token.EOF {
		p.errorf(p.pos, "unexpected input, expected end of input")
	}
	if len(errs) > 0 {
		return nil, &token.Error{Pos: p.pos.Position(), Msg: errs[0]}
	}
	return e, nil
}
