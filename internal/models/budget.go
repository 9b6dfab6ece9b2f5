package models

// Budget caps monthly spending for one expense category.
type Budget struct {
	// ID is the unique identifier for the budget (UUID format).
	ID string `json:"id"`

	// Category is the category name this budget applies to. Category names
	// are matched case-insensitively across budgets and transactions.
	Category string `json:"category"`

	// Limit is the monthly cap in minor currency units.
	// Zero means uncapped: the category is tracked but not limited.
	Limit int64 `json:"limit"`
}
