package snapshot

import (
	"math"
	"strconv"
	"strings"
)

// approxEpsilon is the relative and absolute tolerance used to decide that
// a value is integral.
const approxEpsilon = 1e-6

// FormatFloat renders v in the canonical text form used by exports.
//
// Values within approxEpsilon of an integer are written as that integer.
// Everything else is written with six fractional digits and trailing zeros
// removed. Negative zero is written as "0". NaN and the infinities use the
// invariant spellings "NaN", "Infinity" and "-Infinity".
func FormatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}

	if r := math.RoundToEven(v); approximately(v, r) {
		return zeroSign(strconv.FormatFloat(r, 'f', 0, 64))
	}

	s := strconv.FormatFloat(v, 'f', 6, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	return zeroSign(s)
}

func approximately(a, b float64) bool {
	tol := math.Max(approxEpsilon*math.Max(math.Abs(a), math.Abs(b)), approxEpsilon)
	return math.Abs(a-b) <= tol
}

func zeroSign(s string) string {
	if s == "-0" {
		return "0"
	}
	return s
}

// formatBool renders b as "true" or "false".
func formatBool(b bool) string {
	return strconv.FormatBool(b)
}
