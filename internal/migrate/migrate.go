// Package migrate upgrades persisted payloads to the current schema.
//
// Every function here is pure: raw persisted input in, migrated collections
// out, no hidden state. The store runs each migration exactly once at
// construction, gated by persisted done-flags, so repeat runs must be no-ops
// on already-migrated data.
//
// Corrupt persisted data never crashes startup: parse failures are logged and
// the affected collection falls back to empty.
package migrate

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/finbro-app/finbro/internal/models"
)

// Debts parses the persisted debt collection and backfills fields added
// after the first release: PaidAmount (default 0) and Payments (default
// empty). Fields already present are left untouched.
func Debts(raw string) []models.Debt {
	if raw == "" {
		return []models.Debt{}
	}

	var debts []models.Debt
	if err := json.Unmarshal([]byte(raw), &debts); err != nil {
		slog.Error("failed to parse persisted debts, starting empty", "error", err)
		return []models.Debt{}
	}

	for i := range debts {
		if debts[i].Payments == nil {
			debts[i].Payments = []models.DebtPayment{}
		}
	}
	return debts
}

// Categories resolves the persisted category collection with a three-tier
// fallback: the current-schema payload if present, else a conversion of the
// legacy string-array payload (each name becomes an expense category with a
// fresh id), else the seeded default income set.
func Categories(rawV2, rawLegacy string) []models.CategoryItem {
	if rawV2 != "" {
		var categories []models.CategoryItem
		if err := json.Unmarshal([]byte(rawV2), &categories); err != nil {
			slog.Error("failed to parse persisted categories, starting empty", "error", err)
			return []models.CategoryItem{}
		}
		return categories
	}

	if rawLegacy != "" {
		var names []string
		if err := json.Unmarshal([]byte(rawLegacy), &names); err != nil {
			slog.Error("failed to migrate legacy categories, starting empty", "error", err)
			return []models.CategoryItem{}
		}
		categories := make([]models.CategoryItem, len(names))
		for i, name := range names {
			categories[i] = models.CategoryItem{
				ID:   uuid.New().String(),
				Name: name,
				// Legacy categories carried no type; expense is the safe default.
				Type: models.Expense,
			}
		}
		return categories
	}

	return DefaultIncomeCategories()
}

// DefaultIncomeCategories returns the income categories seeded on first run,
// marked IsDefault.
func DefaultIncomeCategories() []models.CategoryItem {
	names := BasicIncomeNames()
	categories := make([]models.CategoryItem, len(names))
	for i, name := range names {
		categories[i] = models.CategoryItem{
			ID:        uuid.New().String(),
			Name:      name,
			Type:      models.Income,
			IsDefault: true,
		}
	}
	return categories
}

// BasicExpenseNames returns the language-appropriate basic expense category
// names. Basic categories survive the default-seeding prune and always have a
// budget entry.
func BasicExpenseNames(language string) []string {
	if language == models.LangIndonesian {
		return []string{"Makanan", "Transportasi", "Belanja", "Hiburan", "Tagihan"}
	}
	return []string{"Food", "Transport", "Shopping", "Entertainment", "Bills"}
}

// BasicIncomeNames returns the basic income category names. Income basics are
// language-independent so the seeded defaults stay valid when the user
// switches language.
func BasicIncomeNames() []string {
	return []string{"Salary", "Bonus", "Investment", "Business Income", "Gift", "Other Income"}
}

// PerformV4 is the one-time default-seeding migration. It prunes budgets that
// are neither basic, nor positively limited, nor referenced by any existing
// transaction, prunes custom categories that are neither basic nor
// referenced, and adds any missing basic-expense budgets at a zero limit.
// Category matching is case-insensitive throughout.
//
// Running it twice with the same inputs yields identical output.
func PerformV4(
	settings models.Settings,
	budgets []models.Budget,
	categories []models.CategoryItem,
	transactions []models.Transaction,
) (updatedBudgets []models.Budget, updatedCategories []models.CategoryItem) {
	basicExpenses := BasicExpenseNames(settings.Language)

	basic := make(map[string]bool)
	for _, name := range basicExpenses {
		basic[strings.ToLower(name)] = true
	}
	for _, name := range BasicIncomeNames() {
		basic[strings.ToLower(name)] = true
	}

	used := make(map[string]bool)
	for _, tx := range transactions {
		used[strings.ToLower(tx.Category)] = true
	}

	updatedBudgets = []models.Budget{}
	for _, b := range budgets {
		lower := strings.ToLower(b.Category)
		if basic[lower] || b.Limit > 0 || used[lower] {
			updatedBudgets = append(updatedBudgets, b)
		}
	}

	existing := make(map[string]bool)
	for _, b := range updatedBudgets {
		existing[strings.ToLower(b.Category)] = true
	}
	for _, name := range basicExpenses {
		if existing[strings.ToLower(name)] {
			continue
		}
		updatedBudgets = append(updatedBudgets, models.Budget{
			ID:       uuid.New().String(),
			Category: name,
			Limit:    0,
		})
	}

	updatedCategories = []models.CategoryItem{}
	for _, c := range categories {
		lower := strings.ToLower(c.Name)
		if basic[lower] || used[lower] {
			updatedCategories = append(updatedCategories, c)
		}
	}

	return updatedBudgets, updatedCategories
}
