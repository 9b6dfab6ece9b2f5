package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/finbro-app/finbro/internal/history"
	"github.com/finbro-app/finbro/internal/models"
)

// changeKind tags a change record with the mutation it describes.
type changeKind string

const (
	kindAddTransaction    changeKind = "add_transaction"
	kindUpdateTransaction changeKind = "update_transaction"
	kindDeleteTransaction changeKind = "delete_transaction"
	kindAddDebt           changeKind = "add_debt"
	kindPayDebt           changeKind = "pay_debt"
	kindUpdateDebt        changeKind = "update_debt"
	kindDeleteDebt        changeKind = "delete_debt"
	kindAddBudget         changeKind = "add_budget"
	kindUpdateBudget      changeKind = "update_budget"
	kindDeleteBudget      changeKind = "delete_budget"
	kindAddCategory       changeKind = "add_category"
)

// change is the command payload carried by the undo stack: plain data, no
// closures, so the history is fully serializable. Each kind uses the subset
// of fields it needs; snapshots cover exactly the entities the mutation
// touched, keeping undo/redo O(affected entities).
type change struct {
	Kind changeKind `json:"kind"`

	// Transaction is the created or deleted transaction, or the post-update
	// snapshot for kindUpdateTransaction. For debt kinds it is the
	// synthesized linked transaction.
	Transaction *models.Transaction `json:"transaction,omitempty"`

	// PrevTransaction is the pre-update snapshot for kindUpdateTransaction.
	PrevTransaction *models.Transaction `json:"prevTransaction,omitempty"`

	// Debt is the created or deleted debt, or the post-mutation snapshot for
	// kindUpdateDebt and kindPayDebt.
	Debt *models.Debt `json:"debt,omitempty"`

	// PrevDebt is the pre-mutation snapshot for kindUpdateDebt and
	// kindPayDebt.
	PrevDebt *models.Debt `json:"prevDebt,omitempty"`

	// Budget is the created or deleted budget, or the post-update snapshot
	// for kindUpdateBudget.
	Budget *models.Budget `json:"budget,omitempty"`

	// PrevBudget is the pre-update snapshot for kindUpdateBudget.
	PrevBudget *models.Budget `json:"prevBudget,omitempty"`

	// Category is the created category for kindAddCategory.
	Category *models.CategoryItem `json:"category,omitempty"`
}

// apply is the single dispatcher both mutators and the undo stack replay
// changes through. Forward applies the mutation, Backward reverts it; both
// directions persist the collections they touch.
//
// Replays are idempotent: inserts skip an already-present id and snapshot
// replacement overwrites rather than accumulates, so a redo following an
// undo never double-applies.
func (s *Store) apply(ctx context.Context, ch change, dir history.Direction) error {
	forward := dir == history.Forward

	switch ch.Kind {
	case kindAddTransaction:
		if forward {
			s.insertTransaction(*ch.Transaction)
		} else {
			s.removeTransaction(ch.Transaction.ID)
		}
		s.persistTransactions(ctx)

	case kindUpdateTransaction:
		if forward {
			s.replaceTransaction(*ch.Transaction)
		} else {
			s.replaceTransaction(*ch.PrevTransaction)
		}
		s.persistTransactions(ctx)

	case kindDeleteTransaction:
		if forward {
			s.removeTransaction(ch.Transaction.ID)
		} else {
			// Restored to the head; original position is not preserved.
			s.insertTransaction(*ch.Transaction)
		}
		s.persistTransactions(ctx)

	case kindAddDebt:
		// One command, two collections: the debt and its linked transaction
		// are created and reverted together.
		if forward {
			s.insertDebt(*ch.Debt)
			s.insertTransaction(*ch.Transaction)
		} else {
			s.removeDebt(ch.Debt.ID)
			s.removeTransaction(ch.Transaction.ID)
		}
		s.persistDebts(ctx)
		s.persistTransactions(ctx)

	case kindPayDebt:
		if forward {
			s.replaceDebt(*ch.Debt)
			s.insertTransaction(*ch.Transaction)
		} else {
			s.replaceDebt(*ch.PrevDebt)
			s.removeTransaction(ch.Transaction.ID)
		}
		s.persistDebts(ctx)
		s.persistTransactions(ctx)

	case kindUpdateDebt:
		if forward {
			s.replaceDebt(*ch.Debt)
		} else {
			s.replaceDebt(*ch.PrevDebt)
		}
		s.persistDebts(ctx)

	case kindDeleteDebt:
		// The linked transaction is left alone in both directions,
		// preserving financial history independently of the debt record.
		if forward {
			s.removeDebt(ch.Debt.ID)
		} else {
			s.insertDebt(*ch.Debt)
		}
		s.persistDebts(ctx)

	case kindAddBudget:
		if forward {
			s.insertBudget(*ch.Budget)
		} else {
			s.removeBudget(ch.Budget.ID)
		}
		s.persistBudgets(ctx)

	case kindUpdateBudget:
		if forward {
			s.replaceBudget(*ch.Budget)
		} else {
			s.replaceBudget(*ch.PrevBudget)
		}
		s.persistBudgets(ctx)

	case kindDeleteBudget:
		if forward {
			s.removeBudget(ch.Budget.ID)
		} else {
			s.insertBudget(*ch.Budget)
		}
		s.persistBudgets(ctx)

	case kindAddCategory:
		if forward {
			s.insertCategory(*ch.Category)
		} else {
			s.removeCategory(ch.Category.ID)
		}
		s.persistCategories(ctx)

	default:
		return fmt.Errorf("unknown change kind %q", ch.Kind)
	}

	return nil
}

// --- Collection primitives ---
//
// The only code that splices the canonical slices. Inserts prepend (newest
// first) and skip ids that are already present; replaces match by id and do
// nothing on a missing id.

func (s *Store) insertTransaction(tx models.Transaction) {
	for _, t := range s.transactions {
		if t.ID == tx.ID {
			return
		}
	}
	s.transactions = append([]models.Transaction{tx}, s.transactions...)
}

func (s *Store) removeTransaction(id string) {
	for i, t := range s.transactions {
		if t.ID == id {
			s.transactions = append(s.transactions[:i], s.transactions[i+1:]...)
			return
		}
	}
}

func (s *Store) replaceTransaction(tx models.Transaction) {
	for i, t := range s.transactions {
		if t.ID == tx.ID {
			s.transactions[i] = tx
			return
		}
	}
}

func (s *Store) findTransaction(id string) *models.Transaction {
	for i := range s.transactions {
		if s.transactions[i].ID == id {
			return &s.transactions[i]
		}
	}
	return nil
}

func (s *Store) insertDebt(d models.Debt) {
	for _, existing := range s.debts {
		if existing.ID == d.ID {
			return
		}
	}
	s.debts = append([]models.Debt{d}, s.debts...)
}

func (s *Store) removeDebt(id string) {
	for i, d := range s.debts {
		if d.ID == id {
			s.debts = append(s.debts[:i], s.debts[i+1:]...)
			return
		}
	}
}

func (s *Store) replaceDebt(d models.Debt) {
	for i, existing := range s.debts {
		if existing.ID == d.ID {
			s.debts[i] = d
			return
		}
	}
}

func (s *Store) findDebt(id string) *models.Debt {
	for i := range s.debts {
		if s.debts[i].ID == id {
			return &s.debts[i]
		}
	}
	return nil
}

func (s *Store) insertBudget(b models.Budget) {
	for _, existing := range s.budgets {
		if existing.ID == b.ID {
			return
		}
	}
	s.budgets = append([]models.Budget{b}, s.budgets...)
}

func (s *Store) removeBudget(id string) {
	for i, b := range s.budgets {
		if b.ID == id {
			s.budgets = append(s.budgets[:i], s.budgets[i+1:]...)
			return
		}
	}
}

func (s *Store) replaceBudget(b models.Budget) {
	for i, existing := range s.budgets {
		if existing.ID == b.ID {
			s.budgets[i] = b
			return
		}
	}
}

func (s *Store) findBudget(id string) *models.Budget {
	for i := range s.budgets {
		if s.budgets[i].ID == id {
			return &s.budgets[i]
		}
	}
	return nil
}

// insertCategory appends unless a category with the same name (case
// insensitive) and type already exists. Existing entries win over new ones.
func (s *Store) insertCategory(c models.CategoryItem) {
	for _, existing := range s.categories {
		if existing.ID == c.ID {
			return
		}
		if existing.Type == c.Type && strings.EqualFold(existing.Name, c.Name) {
			return
		}
	}
	s.categories = append(s.categories, c)
}

func (s *Store) removeCategory(id string) {
	for i, c := range s.categories {
		if c.ID == id {
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			return
		}
	}
}
