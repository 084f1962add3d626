package model

// Canonical column names of a normalized statement.
const (
	ColUID           = "uid"
	ColBookingDate   = "booking_date"
	ColValutaDate    = "valuta_date"
	ColVendor        = "vendor"
	ColOperationType = "operation_type"
	ColDescription   = "description"
	ColAmount        = "amount"
	ColCurrency      = "currency"
	ColSaldo         = "saldo"
	ColFile          = "file"
)

// Feature column names.
const (
	ColIsCardScheme         = "is_card_scheme"
	ColVendorRemainder      = "vendor_remainder"
	ColMatchedCardNumber    = "matched_card_number"
	ColTransactionSubtype   = "transaction_subtype"
	ColLocation             = "location"
	ColTransactionDay       = "transaction_day"
	ColTransactionMonth     = "transaction_month"
	ColTimeOfDay            = "time_of_day"
	ColDescriptionRemainder = "description_remainder"
	ColIsPositive           = "is_positive"
	ColIsRoundTen           = "is_round_ten"
)

// CanonicalColumns lists the columns every Transaction carries, in output order.
var CanonicalColumns = []string{
	ColUID, ColBookingDate, ColValutaDate, ColVendor, ColOperationType,
	ColDescription, ColAmount, ColCurrency, ColSaldo, ColFile,
}

var featureColumns = []string{
	ColIsCardScheme, ColVendorRemainder,
	ColMatchedCardNumber, ColTransactionSubtype, ColLocation,
	ColTransactionDay, ColTransactionMonth, ColTimeOfDay, ColDescriptionRemainder,
	ColIsPositive, ColIsRoundTen,
}

// FeatureRow is a transaction joined with everything derived from it.
type FeatureRow struct {
	Transaction
	VendorFeatures
	DescriptionFeatures
	AmountFeatures
}

// Features returns the feature columns set on this row. Absent optional
// features have no key.
func (r FeatureRow) Features() map[string]any {
	out := make(map[string]any, len(featureColumns))
	if v := r.IsCardScheme; v != nil {
		out[ColIsCardScheme] = *v
	}
	if v := r.VendorRemainder; v != nil {
		out[ColVendorRemainder] = *v
	}
	d := r.DescriptionFeatures
	if d.MatchedCardNumber != nil {
		out[ColMatchedCardNumber] = *d.MatchedCardNumber
	}
	if d.TransactionSubtype != nil {
		out[ColTransactionSubtype] = string(*d.TransactionSubtype)
	}
	if d.Location != nil {
		out[ColLocation] = *d.Location
	}
	if d.TransactionDay != nil {
		out[ColTransactionDay] = *d.TransactionDay
	}
	if d.TransactionMonth != nil {
		out[ColTransactionMonth] = *d.TransactionMonth
	}
	if d.TimeOfDay != nil {
		out[ColTimeOfDay] = *d.TimeOfDay
	}
	if d.DescriptionRemainder != nil {
		out[ColDescriptionRemainder] = *d.DescriptionRemainder
	}
	out[ColIsPositive] = r.IsPositive
	out[ColIsRoundTen] = r.IsRoundTen
	return out
}

// FeatureTable is the joined output of feature extraction, indexed by uid.
// Row order matches the input transactions.
type FeatureTable struct {
	rows    []FeatureRow
	index   map[string]int
	columns []string
}

// NewFeatureTable builds a table over rows. When two rows share a uid,
// Lookup returns the first; both rows are kept.
func NewFeatureTable(rows []FeatureRow) *FeatureTable {
	t := &FeatureTable{
		rows:  rows,
		index: make(map[string]int, len(rows)),
	}
	seen := make(map[string]bool)
	for i, r := range rows {
		if _, ok := t.index[r.UID]; !ok {
			t.index[r.UID] = i
		}
		for k := range r.Features() {
			seen[k] = true
		}
	}
	t.columns = append(t.columns, CanonicalColumns...)
	for _, c := range featureColumns {
		if seen[c] {
			t.columns = append(t.columns, c)
		}
	}
	return t
}

// Len returns the number of rows.
func (t *FeatureTable) Len() int { return len(t.rows) }

// Row returns row i.
func (t *FeatureTable) Row(i int) FeatureRow { return t.rows[i] }

// Rows returns a copy of all rows in order.
func (t *FeatureTable) Rows() []FeatureRow {
	out := make([]FeatureRow, len(t.rows))
	copy(out, t.rows)
	return out
}

// Lookup returns the row with the given uid.
func (t *FeatureTable) Lookup(uid string) (FeatureRow, bool) {
	i, ok := t.index[uid]
	if !ok {
		return FeatureRow{}, false
	}
	return t.rows[i], true
}

// Columns returns the canonical columns followed by every feature column
// observed in at least one row.
func (t *FeatureTable) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Record returns row i as column -> value over Columns(). Columns the row
// does not carry map to nil.
func (t *FeatureTable) Record(i int) map[string]any {
	r := t.rows[i]
	rec := map[string]any{
		ColUID:           r.UID,
		ColBookingDate:   r.BookingDate,
		ColValutaDate:    r.ValutaDate,
		ColVendor:        deref(r.Vendor),
		ColOperationType: deref(r.OperationType),
		ColDescription:   deref(r.Description),
		ColAmount:        r.Amount,
		ColCurrency:      r.Currency,
		ColSaldo:         r.Saldo,
		ColFile:          r.File,
	}
	feats := r.Features()
	for _, c := range t.columns[len(CanonicalColumns):] {
		if v, ok := feats[c]; ok {
			rec[c] = v
		} else {
			rec[c] = nil
		}
	}
	return rec
}

func deref(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
