// Package source loads the delimited input tables into typed in-memory rows.
//
// Column binding is by header name, not position. Empty cells load as null;
// dates that fail to parse also load as null (the Cleaner drops them), while
// non-empty identifier or amount cells that cannot be coerced abort the load
// with a ParseError.
package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// Customer input columns. The id column may be named either customer_id or
// id; historical exports used id.
const (
	colCustomerID      = "customer_id"
	colCustomerIDAlias = "id"
	colName            = "name"
	colSignupDate      = "signup_date"
	colState           = "state"
)

// Transaction input columns.
const (
	colTransactionID   = "transaction_id"
	colAmount          = "amount"
	colTransactionDate = "transaction_date"
)

// ReadCustomersFile loads the customer table from a CSV file.
func ReadCustomersFile(path string) ([]CustomerRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	return ReadCustomers(f, path)
}

// ReadTransactionsFile loads the transaction table from a CSV file.
func ReadTransactionsFile(path string) ([]TransactionRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	return ReadTransactions(f, path)
}

// ReadCustomers reads customer rows from r. path is used in error context only.
func ReadCustomers(r io.Reader, path string) ([]CustomerRow, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	cols, err := readHeader(cr, path)
	if err != nil {
		return nil, err
	}

	idCol, ok := cols[colCustomerID]
	if !ok {
		idCol, ok = cols[colCustomerIDAlias]
	}
	if !ok {
		return nil, missingColumn(path, colCustomerID)
	}
	nameCol, ok := cols[colName]
	if !ok {
		return nil, missingColumn(path, colName)
	}
	signupCol, ok := cols[colSignupDate]
	if !ok {
		return nil, missingColumn(path, colSignupDate)
	}
	stateCol, ok := cols[colState]
	if !ok {
		return nil, missingColumn(path, colState)
	}

	var rows []CustomerRow
	for rowNum := 1; ; rowNum++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &LoadError{Path: path, Err: err}
		}

		row := CustomerRow{Row: rowNum}
		row.ID, err = parseIntCell(rec[idCol], path, rowNum, colCustomerID)
		if err != nil {
			return nil, err
		}
		row.Name = parseStringCell(rec[nameCol])
		row.SignupDate = parseDateCell(rec[signupCol])
		row.State = parseStringCell(rec[stateCol])

		rows = append(rows, row)
	}

	return rows, nil
}

// ReadTransactions reads transaction rows from r. path is used in error context only.
func ReadTransactions(r io.Reader, path string) ([]TransactionRow, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	cols, err := readHeader(cr, path)
	if err != nil {
		return nil, err
	}

	idCol, ok := cols[colTransactionID]
	if !ok {
		return nil, missingColumn(path, colTransactionID)
	}
	customerCol, ok := cols[colCustomerID]
	if !ok {
		return nil, missingColumn(path, colCustomerID)
	}
	amountCol, ok := cols[colAmount]
	if !ok {
		return nil, missingColumn(path, colAmount)
	}
	dateCol, ok := cols[colTransactionDate]
	if !ok {
		return nil, missingColumn(path, colTransactionDate)
	}

	var rows []TransactionRow
	for rowNum := 1; ; rowNum++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &LoadError{Path: path, Err: err}
		}

		row := TransactionRow{Row: rowNum}
		row.ID, err = parseIntCell(rec[idCol], path, rowNum, colTransactionID)
		if err != nil {
			return nil, err
		}
		row.CustomerID, err = parseIntCell(rec[customerCol], path, rowNum, colCustomerID)
		if err != nil {
			return nil, err
		}
		row.Amount, err = parseAmountCell(rec[amountCol], path, rowNum, colAmount)
		if err != nil {
			return nil, err
		}
		row.Date = parseDateCell(rec[dateCol])

		rows = append(rows, row)
	}

	return rows, nil
}

// readHeader reads the header row and returns a name -> index map with
// lowercased, trimmed column names.
func readHeader(cr *csv.Reader, path string) (map[string]int, error) {
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &LoadError{Path: path, Err: errors.New("empty file: missing header row")}
	}
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return cols, nil
}

func missingColumn(path, name string) error {
	return &LoadError{Path: path, Err: fmt.Errorf("missing required column %q", name)}
}

// parseStringCell returns nil for empty or whitespace-only cells.
func parseStringCell(s string) *string {
	v := strings.TrimSpace(s)
	if v == "" {
		return nil
	}
	return &v
}

// parseDateCell coerces unparseable dates to null rather than failing;
// the null-drop cleaning step removes them.
func parseDateCell(s string) *time.Time {
	v := strings.TrimSpace(s)
	if v == "" {
		return nil
	}
	d, err := time.Parse(dateLayout, v)
	if err != nil {
		return nil
	}
	return &d
}

func parseIntCell(s, path string, row int, column string) (*int64, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, &ParseError{Path: path, Row: row, Column: column, Value: v, Err: errors.New("not an integer")}
	}
	return &n, nil
}

// parseAmountCell parses a fixed-point decimal amount. Amounts are declared
// non-negative, so a negative value fails coercion like any other bad token.
func parseAmountCell(s, path string, row int, column string) (*decimal.Decimal, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return nil, &ParseError{Path: path, Row: row, Column: column, Value: v, Err: errors.New("not a decimal number")}
	}
	if d.IsNegative() {
		return nil, &ParseError{Path: path, Row: row, Column: column, Value: v, Err: errors.New("amount must be non-negative")}
	}
	return &d, nil
}
