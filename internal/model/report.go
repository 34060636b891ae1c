package model

// Table and cleaning step identifiers used in reports and logs.
const (
	TableCustomers    = "customers"
	TableTransactions = "transactions"

	StepNullDrop   = "null-drop"
	StepDedup      = "dedup"
	StepOrphanDrop = "orphan-drop"
)

// StepStats records the effect of a single cleaning step on one table.
type StepStats struct {
	Table       string
	Step        string
	RowsIn      int
	RowsOut     int
	RowsRemoved int
}

// RemovedFraction returns the share of input rows the step removed.
func (s StepStats) RemovedFraction() float64 {
	if s.RowsIn == 0 {
		return 0
	}
	return float64(s.RowsRemoved) / float64(s.RowsIn)
}

// CleaningReport collects step stats for both tables in execution order.
type CleaningReport struct {
	Steps []StepStats
}
