package pipeline

import (
	"reflect"
	"testing"

	"github.com/shopspring/decimal"

	"txrollup/internal/model"
)

func mustAmount(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parse amount %q: %v", s, err)
	}
	return d
}

func tx(t *testing.T, id, customerID int64, amount, date string) model.Transaction {
	t.Helper()
	return model.Transaction{
		ID:         id,
		CustomerID: customerID,
		Amount:     mustAmount(t, amount),
		Date:       *datep(t, date),
	}
}

func TestAggregateMonthly_SingleCustomerMonth(t *testing.T) {
	customers := []model.Customer{{ID: 1, Name: "Customer_1"}}
	txs := []model.Transaction{
		tx(t, 1, 1, "10.00", "2024-03-15"),
		tx(t, 2, 1, "5.50", "2024-03-20"),
	}

	stats := AggregateMonthly(txs, customers)
	if len(stats) != 1 {
		t.Fatalf("stats = %d, want 1", len(stats))
	}

	s := stats[0]
	if s.CustomerID != 1 {
		t.Errorf("CustomerID = %d, want 1", s.CustomerID)
	}
	if s.CustomerName != "Customer_1" {
		t.Errorf("CustomerName = %q, want Customer_1", s.CustomerName)
	}
	if s.YearMonth != "2024-03" {
		t.Errorf("YearMonth = %q, want 2024-03", s.YearMonth)
	}
	if s.TransactionCount != 2 {
		t.Errorf("TransactionCount = %d, want 2", s.TransactionCount)
	}
	if got := s.TotalAmount.StringFixed(2); got != "15.50" {
		t.Errorf("TotalAmount = %s, want 15.50", got)
	}
	if got := s.AverageAmount.StringFixed(2); got != "7.75" {
		t.Errorf("AverageAmount = %s, want 7.75", got)
	}
}

func TestAggregateMonthly_SortedByCustomerThenMonth(t *testing.T) {
	customers := []model.Customer{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}
	txs := []model.Transaction{
		tx(t, 1, 2, "1.00", "2024-01-05"),
		tx(t, 2, 1, "1.00", "2024-02-01"),
		tx(t, 3, 1, "1.00", "2024-01-15"),
		tx(t, 4, 2, "1.00", "2023-12-31"),
	}

	stats := AggregateMonthly(txs, customers)

	got := make([][2]interface{}, 0, len(stats))
	for _, s := range stats {
		got = append(got, [2]interface{}{s.CustomerID, s.YearMonth})
	}
	want := [][2]interface{}{
		{int64(1), "2024-01"},
		{int64(1), "2024-02"},
		{int64(2), "2023-12"},
		{int64(2), "2024-01"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestAggregateMonthly_AverageRoundsHalfUp(t *testing.T) {
	// 10.00 + 0.01 = 10.01; 10.01 / 2 = 5.005, which rounds to 5.01.
	customers := []model.Customer{{ID: 1}}
	txs := []model.Transaction{
		tx(t, 1, 1, "10.00", "2024-03-01"),
		tx(t, 2, 1, "0.01", "2024-03-02"),
	}

	stats := AggregateMonthly(txs, customers)
	if got := stats[0].AverageAmount.StringFixed(2); got != "5.01" {
		t.Errorf("AverageAmount = %s, want 5.01", got)
	}
}

func TestAggregateMonthly_ExactDecimalSum(t *testing.T) {
	// Classic float trap: 0.1 + 0.2. Decimal arithmetic must yield exactly 0.30.
	customers := []model.Customer{{ID: 1}}
	txs := []model.Transaction{
		tx(t, 1, 1, "0.10", "2024-03-01"),
		tx(t, 2, 1, "0.20", "2024-03-02"),
	}

	stats := AggregateMonthly(txs, customers)
	if !stats[0].TotalAmount.Equal(mustAmount(t, "0.30")) {
		t.Errorf("TotalAmount = %s, want exactly 0.30", stats[0].TotalAmount)
	}
}

func TestAggregateMonthly_Idempotent(t *testing.T) {
	customers := []model.Customer{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}
	txs := []model.Transaction{
		tx(t, 1, 1, "10.00", "2024-03-15"),
		tx(t, 2, 2, "5.50", "2024-03-20"),
		tx(t, 3, 1, "2.25", "2024-04-01"),
	}

	first := AggregateMonthly(txs, customers)
	second := AggregateMonthly(txs, customers)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("aggregation is not idempotent:\nfirst  = %+v\nsecond = %+v", first, second)
	}
}

func TestAggregateMonthly_SumOfGroupInvariant(t *testing.T) {
	customers := []model.Customer{{ID: 1}, {ID: 2}}
	txs := []model.Transaction{
		tx(t, 1, 1, "10.00", "2024-03-15"),
		tx(t, 2, 1, "5.50", "2024-03-20"),
		tx(t, 3, 2, "7.33", "2024-03-21"),
		tx(t, 4, 1, "0.99", "2024-04-02"),
	}

	stats := AggregateMonthly(txs, customers)
	for _, s := range stats {
		want := decimal.Zero
		count := 0
		for _, transaction := range txs {
			if transaction.CustomerID == s.CustomerID && transaction.YearMonth() == s.YearMonth {
				want = want.Add(transaction.Amount)
				count++
			}
		}
		if !s.TotalAmount.Equal(want) {
			t.Errorf("group (%d, %s): TotalAmount = %s, want %s", s.CustomerID, s.YearMonth, s.TotalAmount, want)
		}
		if s.TransactionCount != count {
			t.Errorf("group (%d, %s): TransactionCount = %d, want %d", s.CustomerID, s.YearMonth, s.TransactionCount, count)
		}
		wantAvg := want.DivRound(decimal.NewFromInt(int64(count)), 2)
		if !s.AverageAmount.Equal(wantAvg) {
			t.Errorf("group (%d, %s): AverageAmount = %s, want %s", s.CustomerID, s.YearMonth, s.AverageAmount, wantAvg)
		}
	}
}

func TestAggregateMonthly_Empty(t *testing.T) {
	stats := AggregateMonthly(nil, nil)
	if len(stats) != 0 {
		t.Errorf("stats = %d, want 0", len(stats))
	}
}
