package source

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerRow is a raw customer record as loaded from the input file.
// Nil fields were null (empty cell) or, for dates, unparseable; the Cleaner
// decides what to do with them.
type CustomerRow struct {
	Row        int // 1-based data row index, header excluded
	ID         *int64
	Name       *string
	SignupDate *time.Time
	State      *string
}

// TransactionRow is a raw transaction record as loaded from the input file.
type TransactionRow struct {
	Row        int
	ID         *int64
	CustomerID *int64
	Amount     *decimal.Decimal
	Date       *time.Time
}
