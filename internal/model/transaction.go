package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawTable is a statement read from disk before normalization. Every cell is
// raw text; empty cells are absent from the row map.
type RawTable struct {
	Header []string
	Rows   []map[string]string
}

// Transaction is one normalized statement row.
type Transaction struct {
	UID           string          `json:"uid"`
	BookingDate   time.Time       `json:"booking_date"`
	ValutaDate    time.Time       `json:"valuta_date"`
	Vendor        *string         `json:"vendor"` // nil when the cell was empty
	OperationType *string         `json:"operation_type"`
	Description   *string         `json:"description"`
	Amount        decimal.Decimal `json:"amount"` // negative = debit, positive = credit
	Currency      string          `json:"currency"`
	Saldo         string          `json:"saldo"` // running balance as exported
	File          string          `json:"file"`
}

// Str returns a pointer to s. Handy for building optional text fields.
func Str(s string) *string { return &s }
