package importer

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/ingdiba-reader/ingdiba/internal/id"
	"github.com/ingdiba-reader/ingdiba/internal/model"
)

// HeaderMarker is the first column name of the ING-DiBa header row.
const HeaderMarker = "Buchung"

// ProbeLines is how many leading lines are searched for the header row.
const ProbeLines = 20

const delimiter = ';'

// Native column names of the ING-DiBa export.
const (
	ColBuchung          = "Buchung"
	ColValuta           = "Valuta"
	ColAuftraggeber     = "Auftraggeber/Empfänger"
	ColBuchungstext     = "Buchungstext"
	ColVerwendungszweck = "Verwendungszweck"
	ColBetrag           = "Betrag"
	ColWaehrung         = "Währung"
	ColSaldo            = "Saldo"
)

var requiredColumns = []string{
	ColBuchung, ColValuta, ColAuftraggeber, ColBuchungstext,
	ColVerwendungszweck, ColBetrag, ColWaehrung,
}

// Day first, year last.
var dateLayouts = []string{
	"02.01.2006",
	"2.1.2006",
	"02.01.06",
	"02/01/2006",
	"02-01-2006",
}

var errHeaderNotFound = errors.New("header not found")

// INGDiBaParser reads ING-DiBa giro/extra account CSV exports.
type INGDiBaParser struct{}

// Format returns the parser name.
func (p *INGDiBaParser) Format() string { return "ingdiba" }

// Read parses the statement at path.
func (p *INGDiBaParser) Read(path string) ([]model.Transaction, error) {
	return ReadStatement(path)
}

// ReadStatement reads an ING-DiBa CSV export into normalized transactions
// sorted by booking and valuta date, each carrying its uid.
//
// Returns *FormatError when the header row cannot be located and
// *SchemaError when a required column is missing.
func ReadStatement(path string) ([]model.Transaction, error) {
	offset, err := LocateHeader(path)
	if err != nil {
		return nil, err
	}
	raw, err := ReadRaw(path, offset)
	if err != nil {
		return nil, err
	}
	txns, err := Normalize(raw, path)
	if err != nil {
		return nil, err
	}
	assignUIDs(txns)
	return txns, nil
}

// LocateHeader returns the zero-based line offset of the header row.
func LocateHeader(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening statement: %w", err)
	}
	defer f.Close()

	offset, err := locateHeader(decode(f))
	if errors.Is(err, errHeaderNotFound) {
		return 0, &FormatError{Path: path, Lines: ProbeLines}
	}
	if err != nil {
		return 0, fmt.Errorf("probing %s: %w", path, err)
	}
	return offset, nil
}

func locateHeader(r io.Reader) (int, error) {
	br := bufio.NewReader(r)
	for i := 0; i < ProbeLines; i++ {
		line, err := br.ReadString('\n')
		if line != "" && firstColumn(line) == HeaderMarker {
			return i, nil
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("reading line %d: %w", i+1, err)
		}
	}
	return 0, errHeaderNotFound
}

// firstColumn parses line as a single record and returns its first field.
func firstColumn(line string) string {
	cr := newCSVReader(strings.NewReader(line))
	rec, err := cr.Read()
	if err != nil || len(rec) == 0 {
		return ""
	}
	return rec[0]
}

// ReadRaw reads the whole file starting at the header offset. Cells are
// kept as text; empty cells are left out of the row maps.
func ReadRaw(path string, offset int) (*model.RawTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening statement: %w", err)
	}
	defer f.Close()

	raw, err := readRaw(decode(f), offset)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return raw, nil
}

func readRaw(r io.Reader, offset int) (*model.RawTable, error) {
	br := bufio.NewReader(r)
	for i := 0; i < offset; i++ {
		if _, err := br.ReadString('\n'); err != nil {
			return nil, fmt.Errorf("skipping line %d: %w", i+1, err)
		}
	}

	records, err := newCSVReader(br).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, errHeaderNotFound
	}

	header := uniqueHeader(records[0])
	raw := &model.RawTable{Header: header}
	for _, rec := range records[1:] {
		row := make(map[string]string, len(header))
		for j, cell := range rec {
			if j >= len(header) || cell == "" {
				continue
			}
			row[header[j]] = cell
		}
		raw.Rows = append(raw.Rows, row)
	}
	return raw, nil
}

// uniqueHeader renames repeated column names to "name.1", "name.2", ...
// ING exports carry two Währung columns; the first one belongs to Saldo.
func uniqueHeader(cols []string) []string {
	out := make([]string, len(cols))
	seen := make(map[string]int, len(cols))
	for i, c := range cols {
		n := seen[c]
		seen[c] = n + 1
		if n > 0 {
			c = c + "." + strconv.Itoa(n)
		}
		out[i] = c
	}
	return out
}

// Normalize validates the raw table and maps it to Transactions sorted by
// (booking date, valuta date). Date and amount parse errors are fatal.
func Normalize(raw *model.RawTable, path string) ([]model.Transaction, error) {
	if !slices.Contains(raw.Header, ColSaldo) {
		return nil, &SchemaError{Path: path, Column: ColSaldo}
	}
	for _, c := range requiredColumns {
		if !slices.Contains(raw.Header, c) {
			return nil, &SchemaError{Path: path, Column: c}
		}
	}

	txns := make([]model.Transaction, 0, len(raw.Rows))
	for i, row := range raw.Rows {
		txn, err := normalizeRow(row, path)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		txns = append(txns, txn)
	}

	slices.SortStableFunc(txns, func(a, b model.Transaction) int {
		if c := a.BookingDate.Compare(b.BookingDate); c != 0 {
			return c
		}
		return a.ValutaDate.Compare(b.ValutaDate)
	})
	return txns, nil
}

func normalizeRow(row map[string]string, path string) (model.Transaction, error) {
	booking, err := parseDate(row[ColBuchung])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing booking date %q: %w", row[ColBuchung], err)
	}
	valuta, err := parseDate(row[ColValuta])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing valuta date %q: %w", row[ColValuta], err)
	}
	amount, err := ParseAmount(row[ColBetrag])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", row[ColBetrag], err)
	}

	return model.Transaction{
		BookingDate:   booking,
		ValutaDate:    valuta,
		Vendor:        optional(row, ColAuftraggeber),
		OperationType: optional(row, ColBuchungstext),
		Description:   optional(row, ColVerwendungszweck),
		Amount:        amount,
		Currency:      row[ColWaehrung],
		Saldo:         row[ColSaldo],
		File:          path,
	}, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var firstErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

// ParseAmount parses a German-formatted amount like "-1.234,56".
func ParseAmount(s string) (decimal.Decimal, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(s), ".", "")
	clean = strings.ReplaceAll(clean, ",", ".")
	return decimal.NewFromString(clean)
}

func assignUIDs(txns []model.Transaction) {
	for i := range txns {
		t := &txns[i]
		var saldo *string
		if t.Saldo != "" {
			saldo = &t.Saldo
		}
		t.UID = id.TransactionUID(t.BookingDate, t.Amount, t.Vendor, t.Description, saldo)
	}
}

func optional(row map[string]string, col string) *string {
	v, ok := row[col]
	if !ok {
		return nil
	}
	return &v
}

func decode(r io.Reader) io.Reader {
	return transform.NewReader(r, charmap.Windows1252.NewDecoder())
}

func newCSVReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = delimiter
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr
}
