// Package model defines the typed records that flow through the ETL pipeline.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer is a cleaned customer row. All fields are required and non-null.
type Customer struct {
	ID         int64
	Name       string
	SignupDate time.Time
	State      string
}

// Transaction is a cleaned transaction row. After cleaning, CustomerID is
// guaranteed to reference a row in the cleaned customer table.
type Transaction struct {
	ID         int64
	CustomerID int64
	Amount     decimal.Decimal
	Date       time.Time
}

// YearMonth returns the calendar month of the transaction as "YYYY-MM".
func (t Transaction) YearMonth() string {
	return t.Date.Format("2006-01")
}

// MonthlyStat is one (customer, calendar month) aggregate. It is derived
// fresh on every run and never mutated incrementally.
//
// CustomerName is joined in from the cleaned customer table for display;
// it is not part of the CSV output schema.
type MonthlyStat struct {
	CustomerID       int64
	CustomerName     string
	YearMonth        string
	TransactionCount int
	TotalAmount      decimal.Decimal
	AverageAmount    decimal.Decimal
}
