package store

import (
	"testing"

	"github.com/finbro-app/finbro/internal/models"
)

func TestAddDebt(t *testing.T) {
	t.Run("debt creates linked income transaction", func(t *testing.T) {
		s, _, ctx := newTestStore(t)
		s.AddDebt(ctx, DebtInput{PersonName: "Alice", Amount: 500000, Type: models.OwedByMe})

		debts := s.Debts()
		if len(debts) != 1 {
			t.Fatalf("got %d debts, want 1", len(debts))
		}
		d := debts[0]
		if d.Status != models.Unpaid || d.PaidAmount != 0 || len(d.Payments) != 0 {
			t.Errorf("new debt state = %+v", d)
		}
		if d.TransactionID == "" {
			t.Fatal("debt missing linked transaction id")
		}

		txs := s.Transactions()
		if len(txs) != 1 {
			t.Fatalf("got %d transactions, want 1", len(txs))
		}
		tx := txs[0]
		if tx.ID != d.TransactionID {
			t.Errorf("transaction id %q does not match link %q", tx.ID, d.TransactionID)
		}
		if tx.Type != models.Income || tx.Category != CategoryLoanReceived {
			t.Errorf("debt transaction = %+v, want income %q", tx, CategoryLoanReceived)
		}
		if tx.Amount != 500000 || tx.Name != "Alice" {
			t.Errorf("transaction fields = %+v", tx)
		}
	})

	t.Run("receivable creates linked expense transaction", func(t *testing.T) {
		s, _, ctx := newTestStore(t)
		s.AddDebt(ctx, DebtInput{PersonName: "Bob", Amount: 250000, Type: models.OwedToMe})

		tx := s.Transactions()[0]
		if tx.Type != models.Expense || tx.Category != CategoryLoanGiven {
			t.Errorf("receivable transaction = %+v, want expense %q", tx, CategoryLoanGiven)
		}
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		s, _, ctx := newTestStore(t)
		s.AddDebt(ctx, DebtInput{PersonName: "Bad", Amount: -1, Type: models.OwedByMe})
		if len(s.Debts()) != 0 || len(s.Transactions()) != 0 || s.CanUndo() {
			t.Error("rejected debt left traces")
		}
	})

	t.Run("one undo removes both debt and transaction", func(t *testing.T) {
		s, _, ctx := newTestStore(t)
		s.AddDebt(ctx, DebtInput{PersonName: "Alice", Amount: 500000, Type: models.OwedByMe})

		s.Undo(ctx)
		if len(s.Debts()) != 0 || len(s.Transactions()) != 0 {
			t.Error("undo left debt or transaction behind")
		}

		s.Redo(ctx)
		if len(s.Debts()) != 1 || len(s.Transactions()) != 1 {
			t.Error("redo did not restore both collections")
		}
	})
}

func TestPayDebt(t *testing.T) {
	t.Run("partial then full payment settles the debt", func(t *testing.T) {
		s, _, ctx := newTestStore(t)
		s.AddDebt(ctx, DebtInput{PersonName: "Alice", Amount: 1000, Type: models.OwedByMe})
		id := s.Debts()[0].ID

		s.PayDebt(ctx, id, 600, "first installment")
		d := s.Debts()[0]
		if d.PaidAmount != 600 || d.Status != models.Unpaid {
			t.Errorf("after partial payment: paid=%d status=%s", d.PaidAmount, d.Status)
		}
		if len(d.Payments) != 1 || d.Payments[0].Amount != 600 || d.Payments[0].Note != "first installment" {
			t.Errorf("payment ledger = %+v", d.Payments)
		}

		s.PayDebt(ctx, id, 400, "")
		d = s.Debts()[0]
		if d.PaidAmount != 1000 || d.Status != models.Paid {
			t.Errorf("after full payment: paid=%d status=%s", d.PaidAmount, d.Status)
		}
		if len(d.Payments) != 2 {
			t.Errorf("payment ledger length = %d, want 2", len(d.Payments))
		}

		// Origination transaction plus one per payment.
		payments := 0
		for _, tx := range s.Transactions() {
			if tx.Category == CategoryDebtPayment {
				payments++
				if tx.Type != models.Expense {
					t.Errorf("debt payment transaction = %+v, want expense", tx)
				}
			}
		}
		if payments != 2 {
			t.Errorf("got %d payment transactions, want 2", payments)
		}
	})

	t.Run("receivable payment synthesizes income", func(t *testing.T) {
		s, _, ctx := newTestStore(t)
		s.AddDebt(ctx, DebtInput{PersonName: "Bob", Amount: 800, Type: models.OwedToMe})
		s.PayDebt(ctx, s.Debts()[0].ID, 800, "")

		found := false
		for _, tx := range s.Transactions() {
			if tx.Category == CategoryReceivablePayment {
				found = true
				if tx.Type != models.Income {
					t.Errorf("receivable payment transaction = %+v, want income", tx)
				}
			}
		}
		if !found {
			t.Error("no receivable payment transaction synthesized")
		}
		if s.Debts()[0].Status != models.Paid {
			t.Errorf("status = %s, want paid", s.Debts()[0].Status)
		}
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		s, _, ctx := newTestStore(t)
		s.PayDebt(ctx, "missing", 100, "")
		if s.CanUndo() || len(s.Transactions()) != 0 {
			t.Error("no-op payment left traces")
		}
	})

	t.Run("overpayment is kept and settles the debt", func(t *testing.T) {
		s, _, ctx := newTestStore(t)
		s.AddDebt(ctx, DebtInput{PersonName: "Alice", Amount: 1000, Type: models.OwedByMe})
		s.PayDebt(ctx, s.Debts()[0].ID, 1500, "")

		d := s.Debts()[0]
		if d.PaidAmount != 1500 || d.Status != models.Paid {
			t.Errorf("after overpayment: paid=%d status=%s", d.PaidAmount, d.Status)
		}
	})

	t.Run("undo restores the prior debt and removes the payment transaction", func(t *testing.T) {
		s, _, ctx := newTestStore(t)
		s.AddDebt(ctx, DebtInput{PersonName: "Alice", Amount: 1000, Type: models.OwedByMe})
		id := s.Debts()[0].ID
		before := s.Debts()[0]

		s.PayDebt(ctx, id, 600, "")
		s.Undo(ctx)

		d := s.Debts()[0]
		if d.PaidAmount != before.PaidAmount || d.Status != before.Status || len(d.Payments) != 0 {
			t.Errorf("undo restored %+v, want %+v", d, before)
		}
		if len(s.Transactions()) != 1 {
			t.Errorf("payment transaction survived undo: %d transactions", len(s.Transactions()))
		}
	})

	t.Run("redo after undo applies exactly once", func(t *testing.T) {
		s, _, ctx := newTestStore(t)
		s.AddDebt(ctx, DebtInput{PersonName: "Alice", Amount: 1000, Type: models.OwedByMe})
		id := s.Debts()[0].ID

		s.PayDebt(ctx, id, 600, "")
		s.Undo(ctx)
		s.Redo(ctx)

		d := s.Debts()[0]
		if d.PaidAmount != 600 || len(d.Payments) != 1 {
			t.Errorf("redo double-applied: paid=%d payments=%d", d.PaidAmount, len(d.Payments))
		}
		if len(s.Transactions()) != 2 {
			t.Errorf("got %d transactions, want origination plus one payment", len(s.Transactions()))
		}
	})
}

func TestUpdateDebt(t *testing.T) {
	strptr := func(v string) *string { return &v }

	t.Run("applies partial updates and undo restores", func(t *testing.T) {
		s, _, ctx := newTestStore(t)
		s.AddDebt(ctx, DebtInput{PersonName: "Alice", Description: "rent", Amount: 1000, Type: models.OwedByMe})
		id := s.Debts()[0].ID
		before := s.Debts()[0]

		s.UpdateDebt(ctx, id, DebtUpdate{PersonName: strptr("Alicia")})
		if got := s.Debts()[0]; got.PersonName != "Alicia" || got.Description != "rent" {
			t.Errorf("update result = %+v", got)
		}

		s.Undo(ctx)
		got := s.Debts()[0]
		if got.PersonName != before.PersonName || got.Description != before.Description {
			t.Errorf("undo restored %+v, want %+v", got, before)
		}
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		s, _, ctx := newTestStore(t)
		s.UpdateDebt(ctx, "missing", DebtUpdate{PersonName: strptr("X")})
		if s.CanUndo() {
			t.Error("no-op update registered a command")
		}
	})
}

func TestDeleteDebt(t *testing.T) {
	t.Run("keeps the linked and payment transactions", func(t *testing.T) {
		// Deleting a debt removes only the debt record; the origination and
		// payment transactions stay in the ledger. Long-standing asymmetry,
		// kept deliberately.
		s, _, ctx := newTestStore(t)
		s.AddDebt(ctx, DebtInput{PersonName: "Alice", Amount: 1000, Type: models.OwedByMe})
		id := s.Debts()[0].ID
		s.PayDebt(ctx, id, 400, "")

		s.DeleteDebt(ctx, id)
		if len(s.Debts()) != 0 {
			t.Fatal("debt not deleted")
		}
		if got := len(s.Transactions()); got != 2 {
			t.Errorf("got %d transactions after debt deletion, want 2 preserved", got)
		}
	})

	t.Run("undo restores the debt with its ledger", func(t *testing.T) {
		s, _, ctx := newTestStore(t)
		s.AddDebt(ctx, DebtInput{PersonName: "Alice", Amount: 1000, Type: models.OwedByMe})
		id := s.Debts()[0].ID
		s.PayDebt(ctx, id, 400, "")
		before := s.Debts()[0]

		s.DeleteDebt(ctx, id)
		s.Undo(ctx)

		debts := s.Debts()
		if len(debts) != 1 {
			t.Fatal("undo did not restore the debt")
		}
		if debts[0].PaidAmount != before.PaidAmount || len(debts[0].Payments) != len(before.Payments) {
			t.Errorf("restored debt = %+v, want %+v", debts[0], before)
		}
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		s, _, ctx := newTestStore(t)
		s.DeleteDebt(ctx, "missing")
		if s.CanUndo() {
			t.Error("no-op delete registered a command")
		}
	})
}
