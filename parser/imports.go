package parser

import (
	"strings"

	"github.com/noema-lang/noema/ast"
	"github.com/noema-lang/noema/token"
)

// Import syntax collides with several operator lexemes when scanned
// token-by-token: a bare "//" inside "http://" scans as the Prefer
// operator, and a bare "/" inside a local path scans as ILLEGAL. Rather
// than teach the scanner the whole import grammar, this file has the
// parser drop out of token-based scanning and read the path directly as
// raw bytes (scanner.Offset/Src/Reset), then resynchronize the token
// stream with a single Reset once the reference has been consumed. This
// mirrors the general idiom of a recursive-descent parser hand-rolling a
// sub-grammar the tokenizer can't express, the same way cue/scanner
// special-cases string interpolation (cue/scanner/scanner.go's
// ResumeInterpolation) rather than tokenizing it generically.

// isPathByte reports whether b can continue a path/authority component.
// It is false for whitespace, the delimiters that can legally follow an
// import in an enclosing expression, and the query/fragment separators.
func isPathByte(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n', '(', ')', '{', '}', '[', ']', ',', ':', '?', '#':
		return false
	}
	return b > ' ' && b < 0x80 || b >= 0x80
}

// parseLocalImport parses a Local import whose origin marker (".", "..",
// "~" or a bare "/") the scanner has already surfaced as the current
// lookahead token (DOT, DOT DOT, ILLEGAL "~", or ILLEGAL "/").
func (p *parser) parseLocalImport() ast.Expr {
	pos := p.pos
	var origin ast.ImportOrigin
	switch {
	case p.tok == token.DOT:
		p.next()
		if p.tok == token.DOT {
			origin = ast.Parent
			p.next()
		} else {
			origin = ast.Here
		}
	case p.tok == token.ILLEGAL && p.lit == "~":
		origin = ast.Home
		p.next()
	case p.tok == token.ILLEGAL && p.lit == "/":
		origin = ast.Absolute
	default:
		p.errorf(pos, "expected a local import path")
	}

	// Consume the leading '/' raw (present for every origin: "./", "../",
	// "~/", or the bare "/" that starts an absolute path).
	p.expectRawByte('/')
	dir, file := p.scanPathComponents()
	return p.finishImport(pos, ast.ImportHashed{Kind: ast.LocalImport, Origin: origin, Dir: dir, File: file})
}

// parseEnvImport parses "env:NAME" or "env:"quoted name"". p.tok is the
// IDENT token spelling "env" on entry.
func (p *parser) parseEnvImport() ast.Expr {
	pos := p.pos
	p.next()
	p.expectRawByte(':')
	name := p.scanRawWhile(func(b byte) bool { return isPathByte(b) })
	return p.finishImport(pos, ast.ImportHashed{Kind: ast.EnvImport, EnvName: name})
}

// tryParseRemoteImport recognizes a remote import. parseIdentOrImport
// calls it when an "http"/"https" IDENT is followed by a ':' token, before
// falling back to an ordinary Var; it succeeds only when the two raw bytes
// after that ':' are "//". See primary.go.
func (p *parser) tryParseRemoteImport(pos token.Pos, scheme string) (ast.Expr, bool) {
	if scheme != "http" && scheme != "https" {
		return nil, false
	}
	// p.tok is COLON at this point (already the current lookahead); the
	// raw bytes right after it must be "//" for this to be a URL.
	if p.tok != token.COLON {
		return nil, false
	}
	raw := p.sc.Src()
	start := p.pos.Offset() + 1 // one past the ':'
	if start+1 >= len(raw) || raw[start] != '/' || raw[start+1] != '/' {
		return nil, false
	}
	p.next() // consume COLON token
	p.seekRaw(start + 2)

	authority := p.scanRawWhile(func(b byte) bool {
		return b != '/' && isPathByte(b) && b != '?' && b != '#'
	})

	var dir []string
	var file string
	if p.peekRawByte() == '/' {
		p.advanceRaw(1)
		dir, file = p.scanPathComponents()
	}

	hashed := ast.ImportHashed{Kind: ast.RemoteImport, Scheme: scheme, Authority: authority, Dir: dir, File: file}
	if p.peekRawByte() == '?' {
		p.advanceRaw(1)
		hashed.HasQuery = true
		hashed.Query = p.scanRawWhile(func(b byte) bool { return isPathByte(b) && b != '#' })
	}
	if p.peekRawByte() == '#' {
		p.advanceRaw(1)
		hashed.HasFragment = true
		hashed.Fragment = p.scanRawWhile(isPathByte)
	}
	return p.finishImport(pos, hashed), true
}

// scanPathComponents reads a sequence of '/'-separated raw path
// components; the last one is the file, the rest are directories.
func (p *parser) scanPathComponents() (dir []string, file string) {
	var comps []string
	for {
		c := p.scanRawWhile(func(b byte) bool { return b != '/' && isPathByte(b) })
		comps = append(comps, c)
		if p.peekRawByte() == '/' {
			p.advanceRaw(1)
			continue
		}
		break
	}
	if len(comps) == 0 {
		return nil, ""
	}
	return comps[:len(comps)-1], comps[len(comps)-1]
}

// finishImport parses the optional "sha256:HASH" pin, "using (header)"
// clause, and "as Text" marker that may trail any import reference, and
// resynchronizes the token stream.
func (p *parser) finishImport(pos token.Pos, hashed ast.ImportHashed) ast.Expr {
	p.resyncScanner()

	if p.tok == token.IDENT && p.lit == "sha256" {
		save := p.pos
		p.next()
		if p.tok == token.COLON {
			// Read the digest as raw bytes: one that starts with a decimal
			// digit would otherwise scan as a numeric literal.
			start := p.pos.Offset() + 1
			p.seekRaw(start)
			digest := p.scanRawWhile(func(b byte) bool { return isHex(string(b)) })
			if len(digest) != 64 {
				p.errorf(p.file.Pos(start), "expected a 64 hex-digit sha256 hash")
			}
			hashed.Hash = strings.ToLower(digest)
			p.resyncScanner()
		} else {
			p.errorf(save, "expected ':' after 'sha256'")
		}
	}

	if p.tok == token.USING {
		p.next()
		p.expect(token.LPAREN)
		using := p.parseImportOnly()
		p.expect(token.RPAREN)
		hashed.Using = &using
	}

	asText := false
	if p.tok == token.AS {
		p.next()
		if p.tok != token.IDENT || p.lit != "Text" {
			p.errorf(p.pos, "expected 'Text' after 'as'")
		}
		p.next()
		asText = true
	}

	return &ast.Import{ImportPos: pos, Hashed: hashed, AsText: asText}
}

// parseImportOnly parses a single import reference for a "using (...)"
// header clause, returning just its ImportHashed.
func (p *parser) parseImportOnly() ast.ImportHashed {
	e := p.parsePrimaryExpression()
	imp, ok := e.(*ast.Import)
	if !ok {
		p.errorf(e.Pos(), "expected an import in 'using' clause")
	}
	return imp.Hashed
}

func isHex(s string) bool {
	for _, r := range s {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f' || r >= 'A' && r <= 'F') {
			return false
		}
	}
	return true
}

// --- raw-byte helpers backing the import grammar above ---

func (p *parser) expectRawByte(b byte) {
	off := p.pos.Offset()
	src := p.sc.Src()
	if off >= len(src) || src[off] != b {
		p.errorf(p.pos, "expected %q", string(b))
	}
	p.seekRaw(off + 1)
}

func (p *parser) peekRawByte() byte {
	off := p.rawOffset()
	src := p.sc.Src()
	if off >= len(src) {
		return 0
	}
	return src[off]
}

func (p *parser) advanceRaw(n int) { p.seekRaw(p.rawOffset() + n) }

// rawOffset returns the byte offset the next raw read should start at.
// While the parser is mid-import, this is tracked implicitly by having
// already called seekRaw to reposition the scanner; Offset() reports
// exactly that position since the scanner's rune cursor and our raw
// cursor are kept identical at every step.
func (p *parser) rawOffset() int { return p.sc.Offset() }

func (p *parser) seekRaw(off int) { p.sc.Reset(off) }

// scanRawWhile consumes raw bytes satisfying pred starting at the
// current raw offset and returns them as a string.
func (p *parser) scanRawWhile(pred func(byte) bool) string {
	src := p.sc.Src()
	start := p.rawOffset()
	i := start
	for i < len(src) && pred(src[i]) {
		i++
	}
	p.seekRaw(i)
	return string(src[start:i])
}

// resyncScanner reloads the parser's one-token lookahead by scanning
// normally from the scanner's current raw position, ending a raw-mode
// excursion.
func (p *parser) resyncScanner() { p.next() }
