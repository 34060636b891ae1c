package pipeline

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"txrollup/internal/model"
	"txrollup/internal/source"
	"txrollup/internal/store"
	"txrollup/internal/writer"
)

// Output format selectors for the writer stage.
const (
	FormatCSV    = "csv"
	FormatSQLite = "sqlite"
)

// DefaultWarnThreshold flags any cleaning step that removes more than half
// of its input rows.
const DefaultWarnThreshold = 0.5

// Options configures a single pipeline run. Paths are passed in explicitly;
// there is no process-wide configuration state.
type Options struct {
	CustomersPath    string
	TransactionsPath string
	OutputPath       string
	Format           string  // FormatCSV (default) or FormatSQLite
	WarnThreshold    float64 // fraction of rows one step may remove before being flagged
	Logger           zerolog.Logger
}

// Result holds everything a caller needs to report on a finished run.
type Result struct {
	RunID        string
	Customers    int // cleaned customer rows
	Transactions int // cleaned transaction rows
	Report       model.CleaningReport
	Aggregates   []model.MonthlyStat
	RowsWritten  int
	OutputPath   string
	Warnings     []string
	Elapsed      time.Duration
}

// Run executes the four stages in order: load, clean, aggregate, write.
// Stages are strictly sequential; any load, parse, or write failure aborts
// the run with no partial output. A table emptied by cleaning is recorded as
// a warning and the run still writes a valid header-only output.
func Run(opts Options) (*Result, error) {
	start := time.Now()
	res := &Result{RunID: uuid.NewString(), OutputPath: opts.OutputPath}
	log := opts.Logger.With().Str("run_id", res.RunID).Logger()

	threshold := opts.WarnThreshold
	if threshold <= 0 {
		threshold = DefaultWarnThreshold
	}

	// Stage 1: load.
	custRows, err := source.ReadCustomersFile(opts.CustomersPath)
	if err != nil {
		return nil, fmt.Errorf("load stage: %w", err)
	}
	txRows, err := source.ReadTransactionsFile(opts.TransactionsPath)
	if err != nil {
		return nil, fmt.Errorf("load stage: %w", err)
	}
	log.Info().
		Int("customers", len(custRows)).
		Int("transactions", len(txRows)).
		Msg("loaded input tables")

	// Stage 2: clean.
	customers, custSteps := CleanCustomers(custRows)
	transactions, txSteps := CleanTransactions(txRows, customers)
	res.Report.Steps = append(custSteps, txSteps...)
	res.Customers = len(customers)
	res.Transactions = len(transactions)

	for _, s := range res.Report.Steps {
		log.Info().
			Str("table", s.Table).
			Str("step", s.Step).
			Int("rows_in", s.RowsIn).
			Int("rows_out", s.RowsOut).
			Int("rows_removed", s.RowsRemoved).
			Msg("cleaning step")

		if s.RowsIn > 0 && s.RemovedFraction() > threshold {
			w := fmt.Sprintf("%s %s removed %d of %d rows (%.0f%%); review source data",
				s.Table, s.Step, s.RowsRemoved, s.RowsIn, s.RemovedFraction()*100)
			res.Warnings = append(res.Warnings, w)
			log.Warn().Msg(w)
		}
	}

	if len(customers) == 0 {
		res.noteEmpty(log, model.TableCustomers)
	}
	if len(transactions) == 0 {
		res.noteEmpty(log, model.TableTransactions)
	}

	// Stage 3: aggregate.
	res.Aggregates = AggregateMonthly(transactions, customers)
	log.Info().Int("groups", len(res.Aggregates)).Msg("aggregated monthly totals")

	// Stage 4: write.
	switch opts.Format {
	case "", FormatCSV:
		n, err := writer.WriteFile(opts.OutputPath, res.Aggregates)
		if err != nil {
			return nil, fmt.Errorf("write stage: %w", err)
		}
		res.RowsWritten = n
	case FormatSQLite:
		db, err := store.Open(opts.OutputPath)
		if err != nil {
			return nil, fmt.Errorf("write stage: %w", err)
		}
		defer func() { _ = db.Close() }()

		n, err := db.Export(res.RunID, res.Customers, res.Transactions, res.Aggregates)
		if err != nil {
			return nil, fmt.Errorf("write stage: %w", err)
		}
		res.RowsWritten = n
	default:
		return nil, fmt.Errorf("write stage: unknown output format %q", opts.Format)
	}

	res.Elapsed = time.Since(start)
	log.Info().
		Int("rows_written", res.RowsWritten).
		Str("output", opts.OutputPath).
		Dur("elapsed", res.Elapsed).
		Msg("run complete")

	return res, nil
}

func (r *Result) noteEmpty(log zerolog.Logger, table string) {
	err := &EmptyAfterCleaningError{Table: table}
	r.Warnings = append(r.Warnings, err.Error())
	log.Warn().Str("table", table).Msg("empty after cleaning")
}
