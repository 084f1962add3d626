package model

// Subtype is the transaction category keyword found in a description.
// The value keeps the casing it had in the source text.
type Subtype string

const (
	SubtypePurchase       Subtype = "KAUFUMSATZ"
	SubtypeCashWithdrawal Subtype = "BARGELDAUSZAHLUNG"
	SubtypeExchangeFee    Subtype = "WECHSELKURSGEBUEHR"
	SubtypeInvoice        Subtype = "Rechnung"
	SubtypeContribution   Subtype = "Beitrag"
)

// VendorFeatures holds what could be read from the vendor field.
// A nil field means unknown, not false or empty.
type VendorFeatures struct {
	IsCardScheme    *bool   `json:"is_card_scheme,omitempty"`
	VendorRemainder *string `json:"vendor_remainder,omitempty"`
}

// DescriptionFeatures holds what could be read from the description field.
type DescriptionFeatures struct {
	MatchedCardNumber    *string  `json:"matched_card_number,omitempty"`
	TransactionSubtype   *Subtype `json:"transaction_subtype,omitempty"`
	Location             *string  `json:"location,omitempty"`
	TransactionDay       *int     `json:"transaction_day,omitempty"`
	TransactionMonth     *int     `json:"transaction_month,omitempty"`
	TimeOfDay            *string  `json:"time_of_day,omitempty"`
	DescriptionRemainder *string  `json:"description_remainder,omitempty"`
}

// AmountFeatures are boolean flags derived from the amount.
type AmountFeatures struct {
	IsPositive bool `json:"is_positive"`
	IsRoundTen bool `json:"is_round_ten"`
}
