// Package scanner implements a lexer for Noema source text. It takes a
// []byte and tokenizes it through repeated calls to Scan, the same
// Init/next/Scan shape cue/scanner uses (cue/scanner/scanner.go),
// adapted to Noema's own token set, comment syntax (nestable block
// comments, which CUE does not have) and string-interpolation delimiter
// (${ … } rather than CUE's \( … )).
package scanner

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/noema-lang/noema/literal"
	"github.com/noema-lang/noema/token"
)

// ErrorHandler is called for every lexical error encountered, with the
// position of the offending byte.
type ErrorHandler func(pos token.Pos, msg string)

// Scanner holds the lexer's state while processing a given source. It
// must be initialized with Init before use.
type Scanner struct {
	file *token.File
	src  []byte
	err  ErrorHandler

	ch       rune
	offset   int
	rdOffset int

	precededByWhitespace bool

	ErrorCount int
}

const eof = -1

// Init prepares s to scan src, whose positions are recorded against file.
func Init(s *Scanner, file *token.File, src []byte, err ErrorHandler) {
	*s = Scanner{file: file, src: src, err: err}
	s.offset = 0
	s.rdOffset = 0
	s.ch = ' '
	s.next()
}

func (s *Scanner) next() {
	if s.rdOffset < len(s.src) {
		s.offset = s.rdOffset
		if s.ch == '\n' {
			s.file.AddLine(s.offset)
		}
		r, w := rune(s.src[s.rdOffset]), 1
		if r >= utf8.RuneSelf {
			r, w = utf8.DecodeRune(s.src[s.rdOffset:])
			if r == utf8.RuneError && w == 1 {
				s.error(s.offset, "illegal UTF-8 encoding")
			}
		}
		s.rdOffset += w
		s.ch = r
		return
	}
	s.offset = len(s.src)
	if s.ch == '\n' {
		s.file.AddLine(s.offset)
	}
	s.ch = eof
}

func (s *Scanner) peekByte() byte {
	if s.rdOffset < len(s.src) {
		return s.src[s.rdOffset]
	}
	return 0
}

func (s *Scanner) error(offset int, msg string) {
	s.ErrorCount++
	if s.err != nil {
		s.err(s.file.Pos(offset), msg)
	}
}

func (s *Scanner) skipWhitespaceAndComments() {
	s.precededByWhitespace = false
	for {
		switch {
		case s.ch == ' ' || s.ch == '\t' || s.ch == '\r' || s.ch == '\n':
			s.precededByWhitespace = true
			s.next()
		case s.ch == '-' && s.peekByte() == '-':
			s.precededByWhitespace = true
			s.skipLineComment()
		case s.ch == '{' && s.peekByte() == '-':
			s.precededByWhitespace = true
			s.skipBlockComment()
		default:
			return
		}
	}
}

func (s *Scanner) skipLineComment() {
	for s.ch != '\n' && s.ch != eof {
		s.next()
	}
}

// skipBlockComment consumes a {- ... -} comment, honoring arbitrary
// nesting depth.
func (s *Scanner) skipBlockComment() {
	offs := s.offset
	s.next() // consume '{'
	s.next() // consume '-'
	depth := 1
	for depth > 0 {
		switch {
		case s.ch == eof:
			s.error(offs, "block comment not terminated")
			return
		case s.ch == '{' && s.peekByte() == '-':
			s.next()
			s.next()
			depth++
		case s.ch == '-' && s.peekByte() == '}':
			s.next()
			s.next()
			depth--
		default:
			s.next()
		}
	}
}

func isLabelStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isLabelCont(r rune) bool {
	return r == '_' || r == '-' || r == '/' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func (s *Scanner) scanLabel() string {
	offs := s.offset
	for isLabelCont(s.ch) {
		s.next()
	}
	return string(s.src[offs:s.offset])
}

// scanQuotedLabel scans a backtick-quoted label, backtick already
// consumed. Returns the label text including both backticks, so the
// parser can tell a quoted label apart from a bare one that happens to
// spell a reserved word (spec's S7 scenario).
func (s *Scanner) scanQuotedLabel() string {
	offs := s.offset - 1
	for s.ch != '`' && s.ch != eof && s.ch != '\n' {
		s.next()
	}
	if s.ch != '`' {
		s.error(offs, "quoted label not terminated")
		return string(s.src[offs:s.offset])
	}
	s.next()
	return string(s.src[offs:s.offset])
}

func (s *Scanner) scanDigits() {
	for isDigit(s.ch) {
		s.next()
	}
}

// scanNumber scans a natural_literal, integer_literal or double_literal
// starting at the current position (which may be a leading '+'/'-' sign
// already identified by the caller as attached to a digit run).
func (s *Scanner) scanNumber(signed bool) (token.Token, string) {
	offs := s.offset
	if signed {
		s.next() // consume sign
	}
	s.scanDigits()
	rest := string(s.src[s.offset:])
	tok := token.NATURAL
	if signed {
		tok = token.INTEGER
	}
	if literal.NaturalHasFracOrExp(rest) {
		tok = token.DOUBLE
		if s.ch == '.' {
			s.next()
			s.scanDigits()
		}
		if s.ch == 'e' || s.ch == 'E' {
			s.next()
			if s.ch == '+' || s.ch == '-' {
				s.next()
			}
			s.scanDigits()
		}
	}
	return tok, string(s.src[offs:s.offset])
}

// scanString scans a string literal body starting right after its
// opening delimiter has already been consumed by the caller (Scan, for a
// fresh literal, or ResumeInterpolation, for a continuation). It stops
// either at the closing delimiter (returning STRING) or at an
// interpolation's opening "${" (returning INTERPOLATION, with the
// returned text including the "${").
func (s *Scanner) scanString(triple bool) (token.Token, string) {
	offs := s.offset
	for {
		switch {
		case s.ch == eof || (s.ch == '\n' && !triple):
			s.error(offs, "string literal not terminated")
			return token.STRING, string(s.src[offs:s.offset])

		case !triple && s.ch == '"':
			s.next()
			return token.STRING, string(s.src[offs:s.offset])

		case !triple && s.ch == '\\':
			s.next()
			if s.ch == 'u' {
				s.next()
				for i := 0; i < 4 && isHexDigit(s.ch); i++ {
					s.next()
				}
			} else if s.ch != eof {
				s.next()
			}

		case triple && s.ch == '\'' && s.peekByte() == '\'':
			if s.runeAt(2) == '\'' {
				// "'''" escapes a literal "''"
				s.next()
				s.next()
				s.next()
				continue
			}
			if s.runeAt(2) == '$' && s.runeAt(3) == '{' {
				// "''${" escapes a literal "${"
				s.next()
				s.next()
				s.next()
				s.next()
				continue
			}
			s.next()
			s.next()
			return token.STRING, string(s.src[offs:s.offset])

		case s.ch == '$' && s.peekByte() == '{':
			s.next()
			s.next()
			return token.INTERPOLATION, string(s.src[offs:s.offset])

		default:
			s.next()
		}
	}
}

// runeAt peeks n bytes ahead of the reading offset without consuming
// anything; used only by the fixed-width '' escapes above.
func (s *Scanner) runeAt(n int) rune {
	i := s.rdOffset + n - 1
	if i < 0 || i >= len(s.src) {
		return eof
	}
	return rune(s.src[i])
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// WhitespaceBefore reports whether the token most recently returned by
// Scan was preceded by whitespace or a comment. The parser consults this
// in its application loop: an argument must be separated from the
// preceding operand by whitespace, so "1+2" (NATURAL "1" directly
// followed by INTEGER "+2") is not read as an application.
func (s *Scanner) WhitespaceBefore() bool { return s.precededByWhitespace }

// Offset returns the byte offset of the scanner's current read position,
// i.e. the offset one past the last rune consumed by Scan. The import
// grammar (parser/imports.go) uses this together with Src and Reset to
// drop out of token-based scanning and read a URL or path directly as
// raw bytes, since import syntax collides with several operator lexemes
// (a bare "//" inside "http://" would otherwise scan as the Prefer
// operator).
func (s *Scanner) Offset() int { return s.offset }

// Src returns the full source buffer being scanned.
func (s *Scanner) Src() []byte { return s.src }

// Reset repositions the scanner to resume normal token scanning at byte
// offset off, which must be a position the caller has already consumed
// as raw bytes (see Offset). The next call to Scan reads starting there.
func (s *Scanner) Reset(off int) {
	s.rdOffset = off
	s.ch = 0
	s.next()
}

// ResumeInterpolation continues scanning a string literal after the
// parser has consumed the closing '}' of an interpolated expression. It
// mirrors cue/scanner's Scanner.ResumeInterpolation (cue/scanner/scanner.go),
// generalized from CUE's \( … ) splice to Noema's ${ … }.
func (s *Scanner) ResumeInterpolation(triple bool) (token.Token, string) {
	return s.scanString(triple)
}

// Scan scans the next token, returning its position, kind and literal
// source text (populated for IDENT, NATURAL, INTEGER, DOUBLE, STRING and
// INTERPOLATION; empty otherwise except for ILLEGAL, where it holds the
// offending character).
func (s *Scanner) Scan() (pos token.Pos, tok token.Token, lit string) {
	s.skipWhitespaceAndComments()
	pos = s.file.Pos(s.offset)

	switch ch := s.ch; {
	case ch == eof:
		tok = token.EOF

	case isLabelStart(ch):
		lit = s.scanLabel()
		if kw, ok := token.LookupKeyword(lit); ok {
			tok = kw
		} else {
			tok = token.IDENT
		}

	case ch == '`':
		s.next()
		lit = s.scanQuotedLabel()
		tok = token.IDENT

	case isDigit(ch):
		tok, lit = s.scanNumber(false)

	case ch == '"':
		s.next()
		tok, lit = s.scanString(false)

	case ch == '\'' && s.peekByte() == '\'':
		s.next()
		s.next()
		tok, lit = s.scanString(true)

	case ch == '+':
		if isDigit(rune(s.peekByte())) {
			tok, lit = s.scanNumber(true)
		} else if s.peekByte() == '+' {
			s.next()
			s.next()
			tok = token.PLUSPLUS
		} else {
			s.next()
			tok = token.PLUS
		}

	case ch == '-':
		if isDigit(rune(s.peekByte())) {
			tok, lit = s.scanNumber(true)
		} else if s.peekByte() == '>' {
			s.next()
			s.next()
			tok = token.ARROW
		} else {
			s.next()
			tok = token.ILLEGAL
			lit = "-"
		}

	case ch == '/':
		switch {
		case s.peekByte() == '\\':
			s.next()
			s.next()
			tok = token.COMBINE
		case s.peekByte() == '/' && s.runeAt(2) == '\\' && s.runeAt(3) == '\\':
			s.next()
			s.next()
			s.next()
			s.next()
			tok = token.COMBINETYPES
		case s.peekByte() == '/':
			s.next()
			s.next()
			tok = token.PREFER
		default:
			s.next()
			tok = token.ILLEGAL
			lit = "/"
		}

	case ch == '\\':
		s.next()
		tok = token.LAMBDA

	case ch == '∧':
		s.next()
		tok = token.COMBINE
	case ch == '⩓':
		s.next()
		tok = token.COMBINETYPES
	case ch == '⫽':
		s.next()
		tok = token.PREFER
	case ch == 'λ':
		s.next()
		tok = token.LAMBDA
	case ch == '∀':
		s.next()
		tok = token.FORALL
	case ch == '→':
		s.next()
		tok = token.ARROW

	case ch == '*':
		s.next()
		tok = token.STAR

	case ch == '=':
		if s.peekByte() == '=' {
			s.next()
			s.next()
			tok = token.DOUBLEEQ
		} else {
			s.next()
			tok = token.EQUAL
		}

	case ch == '!':
		if s.peekByte() == '=' {
			s.next()
			s.next()
			tok = token.NOTEQ
		} else {
			s.next()
			tok = token.ILLEGAL
			lit = "!"
		}

	case ch == '&':
		if s.peekByte() == '&' {
			s.next()
			s.next()
			tok = token.ANDAND
		} else {
			s.next()
			tok = token.ILLEGAL
			lit = "&"
		}

	case ch == '|':
		if s.peekByte() == '|' {
			s.next()
			s.next()
			tok = token.OROR
		} else {
			s.next()
			tok = token.BAR
		}

	case ch == '#':
		s.next()
		tok = token.HASH

	case ch == '?':
		s.next()
		tok = token.QUESTION

	case ch == '(':
		s.next()
		tok = token.LPAREN
	case ch == ')':
		s.next()
		tok = token.RPAREN
	case ch == '{':
		s.next()
		tok = token.LBRACE
	case ch == '}':
		s.next()
		tok = token.RBRACE
	case ch == '[':
		s.next()
		tok = token.LBRACK
	case ch == ']':
		s.next()
		tok = token.RBRACK
	case ch == '<':
		s.next()
		tok = token.LANGLE
	case ch == '>':
		s.next()
		tok = token.RANGLE
	case ch == ',':
		s.next()
		tok = token.COMMA
	case ch == ':':
		s.next()
		tok = token.COLON
	case ch == '.':
		s.next()
		tok = token.DOT

	case ch == '~':
		// Not an operator; surfaced as ILLEGAL with its literal text so
		// the import grammar (the only place '~' is legal, as a Home
		// path origin) can recognize it without a dedicated token kind.
		s.next()
		tok = token.ILLEGAL
		lit = "~"

	case ch == '@':
		s.next()
		tok = token.AT

	default:
		s.error(s.offset, fmt.Sprintf("illegal character %#U", ch))
		lit = string(ch)
		s.next()
		tok = token.ILLEGAL
	}
	return pos, tok, lit
}
