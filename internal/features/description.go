package features

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ingdiba-reader/ingdiba/internal/model"
)

// nullText is how an empty cell reads once it has been stringified.
const nullText = "nan"

// Card payments (KAUFUMSATZ, BARGELDAUSZAHLUNG) carry
// "<location> <SUBTYPE> DD.MM hhmmss <rest>"; the other subtypes carry no
// payload. A keyword only counts when followed by whitespace. Rechnung and
// Beitrag may also be preceded by one.
var subtypeRe = regexp.MustCompile(
	`(?i)\b(KAUFUMSATZ|BARGELDAUSZAHLUNG|WECHSELKURSGEBUEHR)\b\s|\s?\b(Rechnung|Beitrag)\b\s`,
)

const (
	dayMonthWidth = 5 // "DD.MM"
	timeWidth     = 6 // "hhmmss"
)

// ParseDescription decomposes the description field. Steps run in order
// and each works on what the previous one left:
//
//  1. nil or "nan" yields no features.
//  2. The first of creditCards found as a whole word at the start is
//     recorded and cut off. At most one card matches.
//  3. The first subtype keyword is recorded as found, casing included.
//  4. For exactly KAUFUMSATZ or BARGELDAUSZAHLUNG the text before the
//     keyword is the location; a DD.MM token after it gives day and month,
//     and the next six characters the time of day.
//  5. Whatever is left is the remainder.
//
// Unexpected text never fails; it only leaves optional fields unset.
func ParseDescription(field *string, creditCards []string) model.DescriptionFeatures {
	var f model.DescriptionFeatures
	if field == nil || *field == nullText {
		return f
	}
	rest := *field

	for _, card := range creditCards {
		re, err := regexp.Compile(`^\b` + regexp.QuoteMeta(card) + `\b`)
		if err != nil {
			continue
		}
		if loc := re.FindStringIndex(rest); loc != nil {
			f.MatchedCardNumber = model.Str(strings.TrimSpace(rest[loc[0]:loc[1]]))
			rest = rest[loc[1]:]
			break
		}
	}

	if m := subtypeRe.FindStringSubmatchIndex(rest); m != nil {
		start, end := m[2], m[3]
		if start < 0 {
			start, end = m[4], m[5]
		}
		subtype := model.Subtype(rest[start:end])
		f.TransactionSubtype = &subtype

		if subtype == model.SubtypePurchase || subtype == model.SubtypeCashWithdrawal {
			f.Location = model.Str(strings.TrimSpace(rest[:start]))
			rest = strings.TrimSpace(rest[m[1]:])
			rest = parseDayMonthTime(&f, rest)
		}
	}

	f.DescriptionRemainder = &rest
	return f
}

// parseDayMonthTime consumes "DD.MM hhmmss" from the front of s and returns
// what follows. s is returned unchanged when it does not start that way.
func parseDayMonthTime(f *model.DescriptionFeatures, s string) string {
	tok := s
	if i := strings.IndexFunc(s, unicode.IsSpace); i >= 0 {
		tok = s[:i]
	}
	if utf8.RuneCountInString(tok) != dayMonthWidth {
		return s
	}
	day, month, ok := splitDayMonth(tok)
	if !ok {
		return s
	}
	f.TransactionDay = &day
	f.TransactionMonth = &month

	s = strings.TrimSpace(s[len(tok):])
	tod, s := splitRunes(s, timeWidth)
	f.TimeOfDay = &tod
	return strings.TrimSpace(s)
}

func splitDayMonth(tok string) (day, month int, ok bool) {
	parts := strings.Split(tok, ".")
	if len(parts) != 2 {
		return 0, 0, false
	}
	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	month, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	return day, month, true
}

// splitRunes splits s after at most n runes.
func splitRunes(s string, n int) (head, tail string) {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos], s[pos:]
		}
		i++
	}
	return s, ""
}
