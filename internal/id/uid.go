package id

import (
	"crypto/md5" //nolint:gosec // content fingerprint, not a security boundary
	"encoding/hex"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

// Null is the string form of an empty cell in identity fields.
const Null = "nan"

const dateLayout = "2006-01-02 15:04:05"

// TransactionUID returns the 32-char hex identity of a statement row:
// md5 over booking date, amount, vendor, description and saldo joined by
// "_", each with all whitespace removed. Rows with identical content always
// get the same uid, which is how re-imported rows are recognized.
func TransactionUID(bookingDate time.Time, amount decimal.Decimal, vendor, description, saldo *string) string {
	parts := []string{
		FormatDate(bookingDate),
		FormatAmount(amount),
		FormatText(vendor),
		FormatText(description),
		FormatText(saldo),
	}
	for i, p := range parts {
		parts[i] = stripSpace(p)
	}
	sum := md5.Sum([]byte(strings.Join(parts, "_"))) //nolint:gosec
	return hex.EncodeToString(sum[:])
}

// FormatDate renders a booking date as "2019-11-04 00:00:00".
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// FormatAmount renders an amount in float notation: "-20.0", "1234.56".
func FormatAmount(d decimal.Decimal) string {
	s := d.String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// FormatText returns s, or Null when s is nil.
func FormatText(s *string) string {
	if s == nil {
		return Null
	}
	return *s
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
