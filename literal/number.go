// Package literal decodes the numeric and string literal lexemes the
// scanner delimits into their semantic values.
package literal

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// unboundedCtx is an apd.Context with no precision limit, used for every
// Natural/Integer literal and arithmetic operation in this module. apd's
// "0 means no limit" Precision setting is what makes NaturalPlus and
// NaturalTimes exact, unbounded big-integer arithmetic rather than
// rounded — unlike cue/internal/core/adt's own apdCtx.Precision = 24
// (cue/internal/core/adt/binop.go), which is correct for CUE's bounded
// numeric unification but wrong here.
var unboundedCtx = apd.Context{
	Precision:   0,
	MaxExponent: apd.MaxExponent,
	MinExponent: apd.MinExponent,
	Rounding:    apd.RoundHalfEven,
}

// Context returns the shared unbounded-precision decimal context used to
// fold Natural/Integer arithmetic.
func Context() *apd.Context { return &unboundedCtx }

// ParseNatural decodes a natural_literal lexeme: DIGIT+, no sign.
func ParseNatural(lexeme string) (apd.Decimal, error) {
	if lexeme == "" || !isAllDigits(lexeme) {
		return apd.Decimal{}, fmt.Errorf("literal: %q is not a natural literal", lexeme)
	}
	var d apd.Decimal
	if _, _, err := d.SetString(lexeme); err != nil {
		return apd.Decimal{}, err
	}
	return d, nil
}

// ParseInteger decodes an integer_literal lexeme: an explicit '+' or '-'
// followed by digits.
func ParseInteger(lexeme string) (apd.Decimal, error) {
	if len(lexeme) < 2 || (lexeme[0] != '+' && lexeme[0] != '-') || !isAllDigits(lexeme[1:]) {
		return apd.Decimal{}, fmt.Errorf("literal: %q is not an integer literal", lexeme)
	}
	var d apd.Decimal
	if _, _, err := d.SetString(lexeme[1:]); err != nil {
		return apd.Decimal{}, err
	}
	d.Negative = lexeme[0] == '-' && !d.IsZero()
	return d, nil
}

// ParseDouble decodes a double_literal lexeme into an IEEE-754 binary64
// value. The lexeme must already carry a fractional part or an exponent;
// ParseDouble does not itself enforce that — it is the scanner's job to
// only ever hand it such a lexeme.
func ParseDouble(lexeme string) (float64, error) {
	return strconv.ParseFloat(lexeme, 64)
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// NaturalHasFracOrExp reports whether the rest of the input immediately
// following a scanned digit run continues into a fractional part or an
// exponent, i.e. whether the number being scanned must be classified as a
// double_literal rather than a natural_literal or integer_literal. It is
// used by the scanner, which has already consumed the sign and the
// leading digit run and is positioned at rest.
func NaturalHasFracOrExp(rest string) bool {
	if strings.HasPrefix(rest, ".") {
		return len(rest) > 1 && rest[1] >= '0' && rest[1] <= '9'
	}
	if len(rest) > 0 && (rest[0] == 'e' || rest[0] == 'E') {
		i := 1
		if i < len(rest) && (rest[i] == '+' || rest[i] == '-') {
			i++
		}
		return i < len(rest) && rest[i] >= '0' && rest[i] <= '9'
	}
	return false
}

// FormatNatural renders a non-negative decimal the way Natural/show does:
// plain base-10 digits, no sign, no exponent notation.
func FormatNatural(d *apd.Decimal) string {
	return d.Text('f')
}

// FormatInteger renders a decimal the way Integer/show does: a mandatory
// "+" prefix when non-negative, "-" when negative.
func FormatInteger(d *apd.Decimal) string {
	s := d.Text('f')
	if d.Negative {
		return s
	}
	return "+" + s
}

// FormatDouble renders a float64 the way Double/show does.
func FormatDouble(f float64) string {
	switch {
	case f != f: // NaN
		return "NaN"
	case f > 0 && f*0 != 0: // +Inf
		return "Infinity"
	case f < 0 && f*0 != 0: // -Inf
		return "-Infinity"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
