// Package money parses and formats settlement amounts.
//
// Amounts are held as integer octas (1e-8 of the display unit) so sums always
// reconcile exactly; floats never enter a calculation. Parsing and formatting
// are the only places the decimal representation appears.
package money

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// OctasPerUnit is the number of octas in one display unit.
const OctasPerUnit int64 = 100_000_000

// ErrInvalidAmount is returned for non-numeric, non-positive amounts or
// amounts with more than 8 fractional decimal digits.
var ErrInvalidAmount = errors.New("invalid amount")

// ParseOctas converts a decimal string to octas.
//
// It accepts at most 8 fractional digits and requires a positive value.
// There is no rounding: a ninth fractional digit is an error rather than a
// silently dropped fraction of an octa.
//
// Examples:
//
//	ParseOctas("1") -> 100000000, nil
//	ParseOctas("0.0001") -> 10000, nil
//	ParseOctas("1.123456789") -> 0, ErrInvalidAmount
func ParseOctas(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		// Only unsigned positive values allowed
		return 0, ErrInvalidAmount
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	if len(fracPart) > 8 {
		return 0, ErrInvalidAmount
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}

	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	// Prevent overflow when scaling to octas
	const maxSafeUnits = (1<<63 - 1) / 100_000_000
	if iv > maxSafeUnits {
		return 0, ErrInvalidAmount
	}

	var frac int64
	if fracPart != "" {
		fv, err := strconv.ParseInt(fracPart, 10, 64)
		if err != nil {
			return 0, ErrInvalidAmount
		}
		frac = fv
		for i := len(fracPart); i < 8; i++ {
			frac *= 10
		}
	}

	octas := iv*OctasPerUnit + frac
	if octas <= 0 {
		return 0, ErrInvalidAmount
	}
	return octas, nil
}

// FormatOctas renders octas as a display-unit string with 4 decimal places.
// Display conversion only; never feed the result back into a calculation.
func FormatOctas(octas int64) string {
	sign := ""
	if octas < 0 {
		sign = "-"
		octas = -octas
	}
	whole := octas / OctasPerUnit
	// 4 displayed decimals = octas truncated to 1e4 precision
	frac := (octas % OctasPerUnit) / 10_000
	return fmt.Sprintf("%s%d.%04d", sign, whole, frac)
}
