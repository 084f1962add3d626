package features

import (
	"errors"
	"fmt"
	"slices"

	"github.com/ingdiba-reader/ingdiba/internal/model"
)

// Sentinel is the category for missing and unseen values.
const Sentinel = nullText

// ErrNotFitted is returned by CategoryEncoder.Transform before Fit.
var ErrNotFitted = errors.New("category encoder not fitted")

// NumericColumns names the entries of NumericBlock, in order.
var NumericColumns = []string{
	model.ColIsCardScheme, model.ColAmount, model.ColIsPositive, model.ColIsRoundTen,
}

// NumericBlock returns the numeric inputs of a row. Unknown flags are 0.
func NumericBlock(r model.FeatureRow) []float64 {
	card := 0.0
	if r.IsCardScheme != nil && *r.IsCardScheme {
		card = 1
	}
	return []float64{card, r.Amount.InexactFloat64(), boolFloat(r.IsPositive), boolFloat(r.IsRoundTen)}
}

func boolFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// TextColumn returns a free-text column for vectorization. Missing values
// read as the sentinel.
func TextColumn(t *model.FeatureTable, col string) ([]string, error) {
	var get func(model.FeatureRow) *string
	switch col {
	case model.ColVendorRemainder:
		get = func(r model.FeatureRow) *string { return r.VendorRemainder }
	case model.ColDescriptionRemainder:
		get = func(r model.FeatureRow) *string { return r.DescriptionRemainder }
	default:
		return nil, fmt.Errorf("%q is not a text column", col)
	}
	out := make([]string, t.Len())
	for i := range out {
		if v := get(t.Row(i)); v != nil {
			out[i] = *v
		} else {
			out[i] = Sentinel
		}
	}
	return out, nil
}

// CategoryColumn returns a categorical column. Missing values are nil.
func CategoryColumn(t *model.FeatureTable, col string) ([]*string, error) {
	var get func(model.FeatureRow) *string
	switch col {
	case model.ColOperationType:
		get = func(r model.FeatureRow) *string { return r.OperationType }
	case model.ColTransactionSubtype:
		get = func(r model.FeatureRow) *string {
			if r.TransactionSubtype == nil {
				return nil
			}
			return model.Str(string(*r.TransactionSubtype))
		}
	default:
		return nil, fmt.Errorf("%q is not a category column", col)
	}
	out := make([]*string, t.Len())
	for i := range out {
		out[i] = get(t.Row(i))
	}
	return out, nil
}

// CategoryEncoder one-hot encodes a categorical column. It learns its
// vocabulary in Fit; Transform maps nil and unseen values to Sentinel
// instead of failing.
type CategoryEncoder struct {
	categories []string
	index      map[string]int
}

// Fit learns the sorted set of values, always including Sentinel.
func (e *CategoryEncoder) Fit(values []*string) *CategoryEncoder {
	seen := map[string]bool{Sentinel: true}
	for _, v := range values {
		seen[category(v)] = true
	}
	e.categories = e.categories[:0]
	for c := range seen {
		e.categories = append(e.categories, c)
	}
	slices.Sort(e.categories)
	e.index = make(map[string]int, len(e.categories))
	for i, c := range e.categories {
		e.index[c] = i
	}
	return e
}

// Categories returns the learned vocabulary in column order.
func (e *CategoryEncoder) Categories() []string {
	return slices.Clone(e.categories)
}

// Transform returns one row per value with a single 1 in the column of its
// category.
func (e *CategoryEncoder) Transform(values []*string) ([][]float64, error) {
	if e.index == nil {
		return nil, ErrNotFitted
	}
	out := make([][]float64, len(values))
	for i, v := range values {
		col, ok := e.index[category(v)]
		if !ok {
			col = e.index[Sentinel]
		}
		row := make([]float64, len(e.categories))
		row[col] = 1
		out[i] = row
	}
	return out, nil
}

func category(v *string) string {
	if v == nil {
		return Sentinel
	}
	return *v
}
