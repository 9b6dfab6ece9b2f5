package store

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finbro-app/finbro/internal/models"
)

// Categories of the transactions synthesized from debt activity. Taking on a
// debt increases cash and lending decreases it; payments run the other way.
const (
	CategoryLoanReceived      = "Loan Received"
	CategoryLoanGiven         = "Loan Given"
	CategoryDebtPayment       = "Debt Payment"
	CategoryReceivablePayment = "Receivable Payment"
)

// DebtInput carries the user-supplied fields for a new debt.
type DebtInput struct {
	PersonName  string
	Description string
	Amount      int64
	DueDate     string // optional ISO-8601 deadline
	Type        models.DebtType
	Date        string // transaction date; defaults to now when empty
}

// AddDebt atomically creates a debt and its linked transaction under one
// command: a debt records income (cash received), a receivable records
// expense (cash lent out). A negative amount is rejected as a no-op.
func (s *Store) AddDebt(ctx context.Context, in DebtInput) {
	if in.Amount < 0 {
		slog.Warn("rejected debt: negative amount", "person", in.PersonName, "amount", in.Amount)
		return
	}

	date := in.Date
	if date == "" {
		date = nowISO()
	}

	debt := models.Debt{
		ID:            uuid.New().String(),
		PersonName:    in.PersonName,
		Description:   in.Description,
		Amount:        in.Amount,
		PaidAmount:    0,
		Payments:      []models.DebtPayment{},
		DueDate:       in.DueDate,
		Type:          in.Type,
		Status:        models.Unpaid,
		TransactionID: uuid.New().String(),
	}

	owed := in.Type == models.OwedByMe
	tx := models.Transaction{
		ID:       debt.TransactionID,
		Name:     in.PersonName,
		Desc:     in.Description,
		Category: CategoryLoanReceived,
		Date:     date,
		Amount:   in.Amount,
		Type:     models.Income,
	}
	if !owed {
		tx.Category = CategoryLoanGiven
		tx.Type = models.Expense
	}
	if tx.Desc == "" {
		if owed {
			tx.Desc = "Received loan"
		} else {
			tx.Desc = "Gave loan"
		}
	}

	name := "Add debt: " + in.PersonName
	if !owed {
		name = "Add receivable: " + in.PersonName
	}
	s.record(ctx, name, change{
		Kind:        kindAddDebt,
		Debt:        &debt,
		Transaction: &tx,
	})
}

// PayDebt appends a payment to the debt's ledger, recomputes the paid amount
// and derived status, and synthesizes a transaction recording the payment.
// The payment direction is inverted relative to the debt's originating
// transaction: paying down a debt is an expense, receiving payment on a
// receivable is income. An unknown id is a no-op.
//
// Undo restores the complete prior debt and removes the synthesized
// transaction; the replay path is idempotent by construction, so an undone
// payment redone applies exactly once.
func (s *Store) PayDebt(ctx context.Context, id string, amount int64, note string) {
	debt := s.findDebt(id)
	if debt == nil {
		slog.Warn("debt payment ignored: unknown id", "id", id)
		return
	}

	prev := cloneDebt(*debt)
	date := nowISO()

	payment := models.DebtPayment{
		ID:     uuid.New().String(),
		Amount: amount,
		Date:   date,
		Note:   note,
	}

	next := cloneDebt(prev)
	next.Payments = append([]models.DebtPayment{payment}, next.Payments...)
	next.PaidAmount += amount
	next.Status = models.Unpaid
	if next.Settled() {
		next.Status = models.Paid
	}

	owed := prev.Type == models.OwedByMe
	tx := models.Transaction{
		ID:       uuid.New().String(),
		Name:     "Pay: " + prev.PersonName,
		Desc:     note,
		Category: CategoryDebtPayment,
		Date:     date,
		Amount:   amount,
		Type:     models.Expense,
	}
	if !owed {
		tx.Category = CategoryReceivablePayment
		tx.Type = models.Income
	}
	if tx.Desc == "" {
		if owed {
			tx.Desc = "Debt payment"
		} else {
			tx.Desc = "Receivable payment"
		}
	}

	s.record(ctx, "Pay debt: "+prev.PersonName, change{
		Kind:        kindPayDebt,
		Debt:        &next,
		PrevDebt:    &prev,
		Transaction: &tx,
	})
}

// DebtUpdate holds optional replacement fields for a debt.
// Nil fields keep their current value.
type DebtUpdate struct {
	PersonName  *string
	Description *string
	Amount      *int64
	DueDate     *string
	Type        *models.DebtType
}

// UpdateDebt applies updates to the debt with the given id.
// An unknown id is a no-op. The payment ledger and paid amount are not
// editable through updates; use PayDebt.
func (s *Store) UpdateDebt(ctx context.Context, id string, updates DebtUpdate) {
	debt := s.findDebt(id)
	if debt == nil {
		slog.Warn("debt update ignored: unknown id", "id", id)
		return
	}

	prev := cloneDebt(*debt)
	next := cloneDebt(prev)
	if updates.PersonName != nil {
		next.PersonName = *updates.PersonName
	}
	if updates.Description != nil {
		next.Description = *updates.Description
	}
	if updates.Amount != nil {
		next.Amount = *updates.Amount
	}
	if updates.DueDate != nil {
		next.DueDate = *updates.DueDate
	}
	if updates.Type != nil {
		next.Type = *updates.Type
	}

	s.record(ctx, "Update debt: "+prev.PersonName, change{
		Kind:     kindUpdateDebt,
		Debt:     &next,
		PrevDebt: &prev,
	})
}

// DeleteDebt removes the debt with the given id. An unknown id is a no-op.
//
// Neither the debt's originating transaction nor its payment transactions
// are removed: the financial record outlives the debt. This asymmetry is
// long-standing behavior and is kept as-is.
func (s *Store) DeleteDebt(ctx context.Context, id string) {
	debt := s.findDebt(id)
	if debt == nil {
		slog.Warn("debt delete ignored: unknown id", "id", id)
		return
	}
	snapshot := cloneDebt(*debt)

	s.record(ctx, "Delete debt: "+snapshot.PersonName, change{
		Kind: kindDeleteDebt,
		Debt: &snapshot,
	})
}

// cloneDebt copies a debt including its payment ledger, so snapshots stay
// isolated from later mutation.
func cloneDebt(d models.Debt) models.Debt {
	payments := make([]models.DebtPayment, len(d.Payments))
	copy(payments, d.Payments)
	d.Payments = payments
	return d
}
