package pipeline

import (
	"txrollup/internal/model"
	"txrollup/internal/source"
)

// CleanCustomers applies the customer cleaning steps in their contractual
// order: null-drop on required fields, then dedup by customer_id keeping the
// first occurrence in input order.
func CleanCustomers(rows []source.CustomerRow) ([]model.Customer, []model.StepStats) {
	// Step 1: drop rows with a null in any required field.
	complete := make([]model.Customer, 0, len(rows))
	for _, r := range rows {
		if r.ID == nil || r.Name == nil || r.SignupDate == nil || r.State == nil {
			continue
		}
		complete = append(complete, model.Customer{
			ID:         *r.ID,
			Name:       *r.Name,
			SignupDate: *r.SignupDate,
			State:      *r.State,
		})
	}
	nullDrop := stepStats(model.TableCustomers, model.StepNullDrop, len(rows), len(complete))

	// Step 2: drop duplicate primary keys, first occurrence wins.
	seen := make(map[int64]struct{}, len(complete))
	unique := complete[:0]
	for _, c := range complete {
		if _, dup := seen[c.ID]; dup {
			continue
		}
		seen[c.ID] = struct{}{}
		unique = append(unique, c)
	}
	dedup := stepStats(model.TableCustomers, model.StepDedup, nullDrop.RowsOut, len(unique))

	return unique, []model.StepStats{nullDrop, dedup}
}

// CleanTransactions applies the transaction cleaning steps in their
// contractual order: null-drop, dedup by transaction_id, then orphan removal
// against the cleaned customer table. The orphan step must see the final
// customer set, which is why it takes cleaned customers rather than raw rows.
func CleanTransactions(rows []source.TransactionRow, customers []model.Customer) ([]model.Transaction, []model.StepStats) {
	// Step 1: drop rows with a null in any required field.
	complete := make([]model.Transaction, 0, len(rows))
	for _, r := range rows {
		if r.ID == nil || r.CustomerID == nil || r.Amount == nil || r.Date == nil {
			continue
		}
		complete = append(complete, model.Transaction{
			ID:         *r.ID,
			CustomerID: *r.CustomerID,
			Amount:     *r.Amount,
			Date:       *r.Date,
		})
	}
	nullDrop := stepStats(model.TableTransactions, model.StepNullDrop, len(rows), len(complete))

	// Step 2: drop duplicate primary keys, first occurrence wins.
	seen := make(map[int64]struct{}, len(complete))
	unique := complete[:0]
	for _, t := range complete {
		if _, dup := seen[t.ID]; dup {
			continue
		}
		seen[t.ID] = struct{}{}
		unique = append(unique, t)
	}
	dedup := stepStats(model.TableTransactions, model.StepDedup, nullDrop.RowsOut, len(unique))

	// Step 3: drop transactions whose customer_id has no cleaned customer.
	valid := make(map[int64]struct{}, len(customers))
	for _, c := range customers {
		valid[c.ID] = struct{}{}
	}
	kept := unique[:0]
	for _, t := range unique {
		if _, ok := valid[t.CustomerID]; !ok {
			continue
		}
		kept = append(kept, t)
	}
	orphanDrop := stepStats(model.TableTransactions, model.StepOrphanDrop, dedup.RowsOut, len(kept))

	return kept, []model.StepStats{nullDrop, dedup, orphanDrop}
}

func stepStats(table, step string, in, out int) model.StepStats {
	return model.StepStats{
		Table:       table,
		Step:        step,
		RowsIn:      in,
		RowsOut:     out,
		RowsRemoved: in - out,
	}
}
