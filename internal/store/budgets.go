package store

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finbro-app/finbro/internal/models"
)

// AddBudget records a new budget at the head of the collection.
func (s *Store) AddBudget(ctx context.Context, category string, limit int64) {
	budget := models.Budget{
		ID:       uuid.New().String(),
		Category: category,
		Limit:    limit,
	}

	s.record(ctx, "Add budget: "+category, change{
		Kind:   kindAddBudget,
		Budget: &budget,
	})
}

// BudgetUpdate holds optional replacement fields for a budget.
// Nil fields keep their current value.
type BudgetUpdate struct {
	Category *string
	Limit    *int64
}

// UpdateBudget applies updates to the budget with the given id.
// An unknown id is a no-op.
func (s *Store) UpdateBudget(ctx context.Context, id string, updates BudgetUpdate) {
	budget := s.findBudget(id)
	if budget == nil {
		slog.Warn("budget update ignored: unknown id", "id", id)
		return
	}

	prev := *budget
	next := prev
	if updates.Category != nil {
		next.Category = *updates.Category
	}
	if updates.Limit != nil {
		next.Limit = *updates.Limit
	}

	s.record(ctx, "Update budget: "+prev.Category, change{
		Kind:       kindUpdateBudget,
		Budget:     &next,
		PrevBudget: &prev,
	})
}

// DeleteBudget removes the budget with the given id. An unknown id is a no-op.
func (s *Store) DeleteBudget(ctx context.Context, id string) {
	budget := s.findBudget(id)
	if budget == nil {
		slog.Warn("budget delete ignored: unknown id", "id", id)
		return
	}
	snapshot := *budget

	s.record(ctx, "Delete budget: "+snapshot.Category, change{
		Kind:   kindDeleteBudget,
		Budget: &snapshot,
	})
}

// AddCustomCategory records a user-defined category. Names are deduplicated
// case-insensitively per type: adding an existing name registers a command
// whose forward action is a no-op, so the existing entry is preserved.
func (s *Store) AddCustomCategory(ctx context.Context, name string, categoryType models.TransactionType) {
	category := models.CategoryItem{
		ID:   uuid.New().String(),
		Name: name,
		Type: categoryType,
	}

	s.record(ctx, "Add category: "+name, change{
		Kind:     kindAddCategory,
		Category: &category,
	})
}
