package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(uid string) FeatureRow {
	return FeatureRow{Transaction: Transaction{UID: uid, Amount: decimal.NewFromInt(1)}}
}

func TestFeatureTable_LookupFirstOfDuplicates(t *testing.T) {
	a := row("x")
	a.Currency = "EUR"
	b := row("x")
	b.Currency = "USD"

	table := NewFeatureTable([]FeatureRow{a, b, row("y")})
	require.Equal(t, 3, table.Len())

	got, ok := table.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, "EUR", got.Currency)
	assert.Equal(t, "USD", table.Row(1).Currency)
}

func TestFeatureTable_Columns(t *testing.T) {
	card := true
	r := row("a")
	r.IsCardScheme = &card
	r.Location = Str("Berlin")

	table := NewFeatureTable([]FeatureRow{r, row("b")})
	want := append(append([]string{}, CanonicalColumns...),
		ColIsCardScheme, ColLocation, ColIsPositive, ColIsRoundTen)
	assert.Equal(t, want, table.Columns())

	rec := table.Record(1)
	assert.Len(t, rec, len(want))
	assert.Nil(t, rec[ColIsCardScheme])
	assert.Nil(t, rec[ColLocation])
	assert.Nil(t, rec[ColVendor])
	assert.Equal(t, false, rec[ColIsPositive])

	rec = table.Record(0)
	assert.Equal(t, true, rec[ColIsCardScheme])
	assert.Equal(t, "Berlin", rec[ColLocation])
}

func TestFeatureTable_RowsIsCopy(t *testing.T) {
	table := NewFeatureTable([]FeatureRow{row("a")})
	rows := table.Rows()
	rows[0].UID = "changed"
	assert.Equal(t, "a", table.Row(0).UID)
}

func TestFeatureRow_Features(t *testing.T) {
	sub := SubtypeInvoice
	day, month := 4, 11
	r := row("a")
	r.TransactionSubtype = &sub
	r.TransactionDay = &day
	r.TransactionMonth = &month
	r.IsPositive = true

	f := r.Features()
	assert.Equal(t, "Rechnung", f[ColTransactionSubtype])
	assert.Equal(t, 4, f[ColTransactionDay])
	assert.Equal(t, 11, f[ColTransactionMonth])
	assert.Equal(t, true, f[ColIsPositive])
	assert.NotContains(t, f, ColDescriptionRemainder)
}
