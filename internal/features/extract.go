// Package features derives classifier features from normalized statement
// rows: vendor and description decomposition and amount flags.
package features

import "github.com/ingdiba-reader/ingdiba/internal/model"

// ExtractFeatures parses vendor, description and amount of every transaction
// and joins the results onto it. Rows keep their order and count; there is
// no state shared between rows.
func ExtractFeatures(txns []model.Transaction, creditCards []string) *model.FeatureTable {
	rows := make([]model.FeatureRow, len(txns))
	for i, txn := range txns {
		rows[i] = model.FeatureRow{
			Transaction:         txn,
			VendorFeatures:      ParseVendor(txn.Vendor),
			DescriptionFeatures: ParseDescription(txn.Description, creditCards),
			AmountFeatures:      ParseAmount(txn.Amount),
		}
	}
	return model.NewFeatureTable(rows)
}
