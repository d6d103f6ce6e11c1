package literal

import (
	"fmt"
	"strconv"
	"strings"
)

// DecodeEscape decodes one double-quoted-string escape sequence starting
// at s[i] (s[i] must be '\\') and returns the rune it denotes along with
// the number of bytes of s consumed, including the backslash.
//
// Recognized escapes: \" \\ \/ \b \f \n \r \t \uXXXX.
func DecodeEscape(s string, i int) (r rune, width int, err error) {
	if i >= len(s) || s[i] != '\\' {
		return 0, 0, fmt.Errorf("literal: not an escape at offset %d", i)
	}
	if i+1 >= len(s) {
		return 0, 0, fmt.Errorf("literal: dangling escape at end of string")
	}
	switch c := s[i+1]; c {
	case '"':
		return '"', 2, nil
	case '\\':
		return '\\', 2, nil
	case '/':
		return '/', 2, nil
	case 'b':
		return '\b', 2, nil
	case 'f':
		return '\f', 2, nil
	case 'n':
		return '\n', 2, nil
	case 'r':
		return '\r', 2, nil
	case 't':
		return '\t', 2, nil
	case 'u':
		if i+6 > len(s) {
			return 0, 0, fmt.Errorf("literal: incomplete \\u escape")
		}
		v, err := strconv.ParseUint(s[i+2:i+6], 16, 32)
		if err != nil {
			return 0, 0, fmt.Errorf("literal: invalid \\u escape: %w", err)
		}
		return rune(v), 6, nil
	default:
		return 0, 0, fmt.Errorf("literal: unknown escape '\\%c'", c)
	}
}

// DecodeDoubleQuotedChunk decodes one chunk of a double-quoted string
// literal's body (delimiters and any "${"/"}" interpolation markers
// already stripped by the caller), resolving every \-escape recognized
// by DecodeEscape.
func DecodeDoubleQuotedChunk(body string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(body); {
		if body[i] != '\\' {
			b.WriteByte(body[i])
			i++
			continue
		}
		r, width, err := DecodeEscape(body, i)
		if err != nil {
			return "", err
		}
		b.WriteRune(r)
		i += width
	}
	return b.String(), nil
}

// DecodeSingleQuotedChunk decodes one chunk of a ''...'' string literal's
// body (delimiters and any interpolation markers already stripped). The
// only two escapes this form recognizes are "'''" for a literal "''" and
// "''${" for a literal "${"; everything else, including backslashes, is
// literal text.
func DecodeSingleQuotedChunk(body string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(body); {
		switch {
		case strings.HasPrefix(body[i:], "'''"):
			b.WriteString("''")
			i += 3
		case strings.HasPrefix(body[i:], "''${"):
			b.WriteString("${")
			i += 4
		default:
			b.WriteByte(body[i])
			i++
		}
	}
	return b.String(), nil
}
