package store

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finbro-app/finbro/internal/models"
)

// TransactionInput carries the user-supplied fields for a new transaction.
type TransactionInput struct {
	Name     string
	Desc     string
	Category string
	Date     string // ISO-8601; defaults to now when empty
	Amount   int64
	Type     models.TransactionType
}

// AddTransaction records a new transaction at the head of the collection.
// A negative amount is rejected as a no-op: no mutation, no command.
func (s *Store) AddTransaction(ctx context.Context, in TransactionInput) {
	if in.Amount < 0 {
		slog.Warn("rejected transaction: negative amount", "name", in.Name, "amount", in.Amount)
		return
	}

	tx := models.Transaction{
		ID:       uuid.New().String(),
		Name:     in.Name,
		Desc:     in.Desc,
		Category: in.Category,
		Date:     in.Date,
		Amount:   in.Amount,
		Type:     in.Type,
	}
	if tx.Date == "" {
		tx.Date = nowISO()
	}

	s.record(ctx, "Add transaction: "+tx.Name, change{
		Kind:        kindAddTransaction,
		Transaction: &tx,
	})
}

// TransactionUpdate holds optional replacement fields for a transaction.
// Nil fields keep their current value.
type TransactionUpdate struct {
	Name     *string
	Desc     *string
	Category *string
	Date     *string
	Amount   *int64
	Type     *models.TransactionType
}

// UpdateTransaction applies updates to the transaction with the given id.
// A negative amount rejects the whole update, not just the amount field.
// An unknown id is a no-op.
func (s *Store) UpdateTransaction(ctx context.Context, id string, updates TransactionUpdate) {
	if updates.Amount != nil && *updates.Amount < 0 {
		slog.Warn("rejected transaction update: negative amount", "id", id, "amount", *updates.Amount)
		return
	}

	tx := s.findTransaction(id)
	if tx == nil {
		slog.Warn("transaction update ignored: unknown id", "id", id)
		return
	}

	prev := *tx
	next := prev
	if updates.Name != nil {
		next.Name = *updates.Name
	}
	if updates.Desc != nil {
		next.Desc = *updates.Desc
	}
	if updates.Category != nil {
		next.Category = *updates.Category
	}
	if updates.Date != nil {
		next.Date = *updates.Date
	}
	if updates.Amount != nil {
		next.Amount = *updates.Amount
	}
	if updates.Type != nil {
		next.Type = *updates.Type
	}

	s.record(ctx, "Update transaction: "+prev.Name, change{
		Kind:            kindUpdateTransaction,
		Transaction:     &next,
		PrevTransaction: &prev,
	})
}

// DeleteTransaction removes the transaction with the given id.
// An unknown id is a no-op. Undo restores the transaction at the head of the
// collection regardless of where it originally sat.
func (s *Store) DeleteTransaction(ctx context.Context, id string) {
	tx := s.findTransaction(id)
	if tx == nil {
		slog.Warn("transaction delete ignored: unknown id", "id", id)
		return
	}
	snapshot := *tx

	s.record(ctx, "Delete transaction: "+snapshot.Name, change{
		Kind:        kindDeleteTransaction,
		Transaction: &snapshot,
	})
}
