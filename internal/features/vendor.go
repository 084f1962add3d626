package features

import (
	"regexp"
	"strings"

	"github.com/ingdiba-reader/ingdiba/internal/model"
)

var cardSchemeRe = regexp.MustCompile(`^\bVISA\b`)

// ParseVendor reads the vendor field. A leading "VISA" token marks a card
// payment and is stripped from the remainder. A nil field yields no features.
func ParseVendor(field *string) model.VendorFeatures {
	var f model.VendorFeatures
	if field == nil {
		return f
	}
	rest := *field
	if loc := cardSchemeRe.FindStringIndex(rest); loc != nil {
		card := true
		f.IsCardScheme = &card
		rest = strings.TrimSpace(rest[loc[1]:])
	}
	f.VendorRemainder = &rest
	return f
}
