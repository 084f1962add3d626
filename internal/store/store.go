// Package store persists feature tables in SQLite keyed by transaction uid.
// Rows whose uid is already stored are skipped, which drops the overlap when
// consecutive statement exports cover the same days.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/ingdiba-reader/ingdiba/internal/model"
)

const dateFormat = "2006-01-02"

const schema = `
CREATE TABLE IF NOT EXISTS transactions (
	uid                   TEXT PRIMARY KEY,
	booking_date          TEXT NOT NULL,
	valuta_date           TEXT NOT NULL,
	vendor                TEXT,
	operation_type        TEXT,
	description           TEXT,
	amount                TEXT NOT NULL,
	currency              TEXT NOT NULL,
	saldo                 TEXT NOT NULL,
	file                  TEXT NOT NULL,
	is_card_scheme        INTEGER,
	vendor_remainder      TEXT,
	matched_card_number   TEXT,
	transaction_subtype   TEXT,
	location              TEXT,
	transaction_day       INTEGER,
	transaction_month     INTEGER,
	time_of_day           TEXT,
	description_remainder TEXT,
	is_positive           INTEGER NOT NULL,
	is_round_ten          INTEGER NOT NULL,
	imported_at           TEXT NOT NULL
)`

const insertRow = `
INSERT OR IGNORE INTO transactions (
	uid, booking_date, valuta_date, vendor, operation_type, description,
	amount, currency, saldo, file,
	is_card_scheme, vendor_remainder, matched_card_number, transaction_subtype,
	location, transaction_day, transaction_month, time_of_day, description_remainder,
	is_positive, is_round_ten, imported_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// Store is a SQLite-backed transaction table.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// SaveResult counts what Save did.
type SaveResult struct {
	Inserted   int
	Duplicates int
}

// Open opens (or creates) the database at path and ensures the schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save inserts every row of table in one transaction. Rows whose uid is
// already present, in the store or earlier in the table, count as
// duplicates.
func (s *Store) Save(ctx context.Context, table *model.FeatureTable) (SaveResult, error) {
	var res SaveResult
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return res, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, insertRow)
	if err != nil {
		return res, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	importedAt := s.now().UTC().Format(time.RFC3339)
	for i := 0; i < table.Len(); i++ {
		r := table.Row(i)
		out, err := stmt.ExecContext(ctx, rowArgs(r, importedAt)...)
		if err != nil {
			return SaveResult{}, fmt.Errorf("insert %s: %w", r.UID, err)
		}
		n, err := out.RowsAffected()
		if err != nil {
			return SaveResult{}, fmt.Errorf("rows affected: %w", err)
		}
		if n == 0 {
			res.Duplicates++
		} else {
			res.Inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return SaveResult{}, fmt.Errorf("commit: %w", err)
	}
	return res, nil
}

func rowArgs(r model.FeatureRow, importedAt string) []any {
	var subtype *string
	if r.TransactionSubtype != nil {
		subtype = model.Str(string(*r.TransactionSubtype))
	}
	return []any{
		r.UID,
		r.BookingDate.Format(dateFormat),
		r.ValutaDate.Format(dateFormat),
		r.Vendor,
		r.OperationType,
		r.Description,
		r.Amount.String(),
		r.Currency,
		r.Saldo,
		r.File,
		r.IsCardScheme,
		r.VendorRemainder,
		r.MatchedCardNumber,
		subtype,
		r.Location,
		r.TransactionDay,
		r.TransactionMonth,
		r.TimeOfDay,
		r.DescriptionRemainder,
		r.IsPositive,
		r.IsRoundTen,
		importedAt,
	}
}

// Has reports whether a transaction with uid is stored.
func (s *Store) Has(ctx context.Context, uid string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions WHERE uid = ?`, uid).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("query %s: %w", uid, err)
	}
	return n > 0, nil
}

// Count returns the number of stored transactions.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return n, nil
}

// Transactions returns all stored transactions ordered by booking date,
// valuta date and uid.
func (s *Store) Transactions(ctx context.Context) ([]model.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT uid, booking_date, valuta_date, vendor, operation_type, description,
		       amount, currency, saldo, file
		FROM transactions
		ORDER BY booking_date, valuta_date, uid`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var out []model.Transaction
	for rows.Next() {
		var (
			t                model.Transaction
			booking, valuta  string
			vendor, op, desc sql.NullString
			amount           string
		)
		if err := rows.Scan(&t.UID, &booking, &valuta, &vendor, &op, &desc,
			&amount, &t.Currency, &t.Saldo, &t.File); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		if t.BookingDate, err = time.Parse(dateFormat, booking); err != nil {
			return nil, fmt.Errorf("parsing booking date %q: %w", booking, err)
		}
		if t.ValutaDate, err = time.Parse(dateFormat, valuta); err != nil {
			return nil, fmt.Errorf("parsing valuta date %q: %w", valuta, err)
		}
		if t.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("parsing amount %q: %w", amount, err)
		}
		t.Vendor = nullable(vendor)
		t.OperationType = nullable(op)
		t.Description = nullable(desc)
		out = append(out, t)
	}
	return out, rows.Err()
}

func nullable(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}
