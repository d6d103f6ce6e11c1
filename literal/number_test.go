package literal_test

import (
	"math"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/noema-lang/noema/literal"
)

func TestParseNaturalRejectsSign(t *testing.T) {
	_, err := literal.ParseNatural("+3")
	qt.Assert(t, qt.IsNotNil(err))
}

func TestParseNaturalAcceptsDigits(t *testing.T) {
	d, err := literal.ParseNatural("12345")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(literal.FormatNatural(&d), "12345"))
}

func TestParseIntegerRequiresSign(t *testing.T) {
	_, err := literal.ParseInteger("3")
	qt.Assert(t, qt.IsNotNil(err))
}

func TestParseIntegerPositive(t *testing.T) {
	d, err := literal.ParseInteger("+3")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsFalse(d.Negative))
	qt.Assert(t, qt.Equals(literal.FormatInteger(&d), "+3"))
}

func TestParseIntegerNegative(t *testing.T) {
	d, err := literal.ParseInteger("-4")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(d.Negative))
	qt.Assert(t, qt.Equals(literal.FormatInteger(&d), "-4"))
}

func TestParseIntegerNegativeZeroIsNotNegative(t *testing.T) {
	// -0 as an Integer literal folds to a non-negative zero, matching
	// Integer/show's "+" prefix on zero.
	d, err := literal.ParseInteger("-0")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsFalse(d.Negative))
	qt.Assert(t, qt.Equals(literal.FormatInteger(&d), "+0"))
}

func TestParseDouble(t *testing.T) {
	f, err := literal.ParseDouble("3.14")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(f, 3.14))
}

func TestNaturalHasFracOrExpRequiresDigitAfterDot(t *testing.T) {
	// "1." with nothing after the dot is not a fractional part: the
	// scanner should keep classifying the "1" as a plain natural and let
	// the '.' begin a separate selector.
	qt.Assert(t, qt.IsFalse(literal.NaturalHasFracOrExp(".")))
	qt.Assert(t, qt.IsTrue(literal.NaturalHasFracOrExp(".5")))
}

func TestNaturalHasFracOrExpRecognizesExponent(t *testing.T) {
	qt.Assert(t, qt.IsTrue(literal.NaturalHasFracOrExp("e10")))
	qt.Assert(t, qt.IsTrue(literal.NaturalHasFracOrExp("E+10")))
	qt.Assert(t, qt.IsTrue(literal.NaturalHasFracOrExp("e-10")))
	qt.Assert(t, qt.IsFalse(literal.NaturalHasFracOrExp("e")))
	qt.Assert(t, qt.IsFalse(literal.NaturalHasFracOrExp("e+")))
}

func TestNaturalHasFracOrExpFalseForBareDigits(t *testing.T) {
	qt.Assert(t, qt.IsFalse(literal.NaturalHasFracOrExp("")))
	qt.Assert(t, qt.IsFalse(literal.NaturalHasFracOrExp("23")))
}

func TestFormatDoubleAddsTrailingZero(t *testing.T) {
	qt.Assert(t, qt.Equals(literal.FormatDouble(5), "5.0"))
}

func TestFormatDoublePreservesExponentForm(t *testing.T) {
	got := literal.FormatDouble(1e100)
	qt.Assert(t, qt.IsTrue(len(got) > 0))
	qt.Assert(t, qt.Equals(got, "1e+100"))
}

func TestFormatDoubleSpecialValues(t *testing.T) {
	qt.Assert(t, qt.Equals(literal.FormatDouble(math.NaN()), "NaN"))
	qt.Assert(t, qt.Equals(literal.FormatDouble(math.Inf(1)), "Infinity"))
	qt.Assert(t, qt.Equals(literal.FormatDouble(math.Inf(-1)), "-Infinity"))
}
