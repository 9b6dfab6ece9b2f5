package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/finbro-app/finbro/internal/models"
)

// Backup is the JSON interchange format for export/import. Absent fields on
// import leave the corresponding collection untouched.
type Backup struct {
	Transactions     []models.Transaction  `json:"transactions,omitempty"`
	Debts            []models.Debt         `json:"debts,omitempty"`
	Budgets          []models.Budget       `json:"budgets,omitempty"`
	Settings         *models.Settings      `json:"settings,omitempty"`
	CustomCategories []models.CategoryItem `json:"customCategories,omitempty"`
	ExportDate       string                `json:"exportDate"`
}

// ExportData serializes the financial collections and settings for backup.
// Notifications and the undo history are deliberately excluded: both are
// ephemeral.
func (s *Store) ExportData() ([]byte, error) {
	backup := Backup{
		Transactions:     s.transactions,
		Debts:            s.debts,
		Budgets:          s.budgets,
		Settings:         &s.settings,
		CustomCategories: s.categories,
		ExportDate:       nowISO(),
	}
	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode backup: %w", err)
	}
	return data, nil
}

// ImportData replaces whichever collections the backup payload carries and
// persists them. Imports bypass the undo stack: a restore is not a reversible
// user action.
func (s *Store) ImportData(ctx context.Context, data []byte) error {
	var backup Backup
	if err := json.Unmarshal(data, &backup); err != nil {
		return fmt.Errorf("failed to parse backup: %w", err)
	}

	if backup.Transactions != nil {
		s.transactions = backup.Transactions
		s.persistTransactions(ctx)
	}
	if backup.Debts != nil {
		s.debts = backup.Debts
		s.persistDebts(ctx)
	}
	if backup.Budgets != nil {
		s.budgets = backup.Budgets
		s.persistBudgets(ctx)
	}
	if backup.Settings != nil {
		s.settings = *backup.Settings
		s.persistSettings(ctx)
	}
	if backup.CustomCategories != nil {
		s.categories = backup.CustomCategories
		s.persistCategories(ctx)
	}

	return nil
}
