package features

import (
	"github.com/shopspring/decimal"

	"github.com/ingdiba-reader/ingdiba/internal/model"
)

var ten = decimal.NewFromInt(10)

// ParseAmount flags credits and multiples of ten. The round-ten check is
// exact, so 19.99 is not round; treat it as a heuristic.
func ParseAmount(amount decimal.Decimal) model.AmountFeatures {
	return model.AmountFeatures{
		IsPositive: amount.IsPositive(),
		IsRoundTen: amount.Mod(ten).IsZero(),
	}
}
