// Package store exports monthly aggregates to a SQLite database file as an
// alternative to the CSV sink.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // register sqlite driver

	"txrollup/internal/model"
)

// DB wraps the SQLite export database.
type DB struct {
	db *sql.DB
}

// Open opens or creates the export database at the given path.
func Open(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening export db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the export database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Export replaces the previous monthly summary with this run's aggregates
// and records the run metadata. Amounts are stored as fixed 2-decimal text
// to preserve the exact values the CSV sink would have written.
func (d *DB) Export(runID string, customers, transactions int, stats []model.MonthlyStat) (int, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM monthly_summary"); err != nil {
		return 0, err
	}

	n := 0
	for _, s := range stats {
		_, err := tx.Exec(`INSERT INTO monthly_summary
			(customer_id, year_month, transaction_count, total_amount, average_amount)
			VALUES (?, ?, ?, ?, ?)`,
			s.CustomerID, s.YearMonth, s.TransactionCount,
			s.TotalAmount.StringFixed(2), s.AverageAmount.StringFixed(2),
		)
		if err != nil {
			return n, err
		}
		n++
	}

	_, err = tx.Exec(`INSERT INTO runs (run_id, ran_at, customers, transactions, summary_rows)
		VALUES (?, ?, ?, ?, ?)`,
		runID, time.Now().UTC().Format(time.RFC3339), customers, transactions, n,
	)
	if err != nil {
		return n, err
	}

	if err := tx.Commit(); err != nil {
		return n, err
	}
	return n, nil
}

// SummaryCount returns the number of exported summary rows.
func (d *DB) SummaryCount() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM monthly_summary").Scan(&count)
	return count, err
}
