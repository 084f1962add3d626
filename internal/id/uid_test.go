package id

import (
	"crypto/md5" //nolint:gosec
	"encoding/hex"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func str(s string) *string { return &s }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestTransactionUID_Stable(t *testing.T) {
	a := TransactionUID(date(2019, 11, 4), decimal.RequireFromString("-20.00"), str("VISA Spotify Ltd"), str("NR123 KAUFUMSATZ"), str("1.234,56"))
	b := TransactionUID(date(2019, 11, 4), decimal.RequireFromString("-20"), str("VISA Spotify Ltd"), str("NR123 KAUFUMSATZ"), str("1.234,56"))
	assert.Equal(t, a, b)
	assert.Len(t, a, 32)
}

func TestTransactionUID_KnownDigest(t *testing.T) {
	want := md5.Sum([]byte("2019-11-0400:00:00_-20.0_VISASpotifyLtd_rest_1.234,56")) //nolint:gosec
	got := TransactionUID(date(2019, 11, 4), decimal.RequireFromString("-20"), str("VISA Spotify Ltd"), str("rest"), str("1.234,56"))
	assert.Equal(t, hex.EncodeToString(want[:]), got)
}

func TestTransactionUID_WhitespaceInsensitive(t *testing.T) {
	a := TransactionUID(date(2020, 1, 2), decimal.RequireFromString("5"), str("Amazon EU"), str("a  b\tc"), str("10"))
	b := TransactionUID(date(2020, 1, 2), decimal.RequireFromString("5"), str("AmazonEU"), str("abc"), str("10"))
	assert.Equal(t, a, b)
}

func TestTransactionUID_FieldsMatter(t *testing.T) {
	base := TransactionUID(date(2020, 1, 2), decimal.RequireFromString("5"), str("Amazon"), str("x"), str("10"))
	others := []string{
		TransactionUID(date(2020, 1, 3), decimal.RequireFromString("5"), str("Amazon"), str("x"), str("10")),
		TransactionUID(date(2020, 1, 2), decimal.RequireFromString("6"), str("Amazon"), str("x"), str("10")),
		TransactionUID(date(2020, 1, 2), decimal.RequireFromString("5"), str("Ebay"), str("x"), str("10")),
		TransactionUID(date(2020, 1, 2), decimal.RequireFromString("5"), str("Amazon"), str("y"), str("10")),
		TransactionUID(date(2020, 1, 2), decimal.RequireFromString("5"), str("Amazon"), str("x"), str("11")),
	}
	for _, o := range others {
		assert.NotEqual(t, base, o)
	}
}

func TestTransactionUID_NullFields(t *testing.T) {
	a := TransactionUID(date(2020, 1, 2), decimal.Zero, nil, nil, str("1"))
	b := TransactionUID(date(2020, 1, 2), decimal.Zero, str("nan"), str("nan"), str("1"))
	assert.Equal(t, a, b)
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"-20.00", "-20.0"},
		{"15", "15.0"},
		{"1234.56", "1234.56"},
		{"0.10", "0.1"},
		{"0", "0.0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatAmount(decimal.RequireFromString(tt.in)), "FormatAmount(%s)", tt.in)
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "2019-11-04 00:00:00", FormatDate(date(2019, 11, 4)))
}
