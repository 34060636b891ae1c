// Package writer serializes monthly aggregates to delimited output.
package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"txrollup/internal/model"
)

// Header is the fixed output column set. It is written even when there are
// no aggregate rows, so an empty run still produces a valid file.
var Header = []string{"customer_id", "year_month", "transaction_count", "total_amount", "average_amount"}

// WriteError reports an output destination that could not be produced.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// WriteFile writes the aggregate rows as CSV to path, returning the number
// of data rows written (header excluded).
func WriteFile(path string, stats []model.MonthlyStat) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, &WriteError{Path: path, Err: err}
	}

	n, werr := Write(f, stats)
	cerr := f.Close()
	if werr != nil {
		return n, &WriteError{Path: path, Err: werr}
	}
	if cerr != nil {
		return n, &WriteError{Path: path, Err: cerr}
	}
	return n, nil
}

// Write writes the aggregate rows as CSV to out. Numeric amounts are
// formatted with exactly 2 fractional digits; quoting follows standard CSV
// rules via encoding/csv.
func Write(out io.Writer, stats []model.MonthlyStat) (int, error) {
	w := csv.NewWriter(out)

	if err := w.Write(Header); err != nil {
		return 0, fmt.Errorf("writing header: %w", err)
	}

	n := 0
	for _, s := range stats {
		row := []string{
			strconv.FormatInt(s.CustomerID, 10),
			s.YearMonth,
			strconv.Itoa(s.TransactionCount),
			s.TotalAmount.StringFixed(2),
			s.AverageAmount.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return n, fmt.Errorf("writing row %d: %w", n+1, err)
		}
		n++
	}

	w.Flush()
	return n, w.Error()
}
