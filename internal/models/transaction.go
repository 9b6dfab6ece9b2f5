package models

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// Transaction represents a single financial record.
// Transactions are created directly by the user, or synthesized as the
// counterpart of a debt being taken on or paid down.
type Transaction struct {
	// ID is the unique identifier for the transaction (UUID format).
	ID string `json:"id"`

	// Name is the short display label, e.g. "Groceries" or a person's name
	// for debt-linked transactions.
	Name string `json:"name"`

	// Desc is an optional longer description.
	Desc string `json:"desc"`

	// Category is the display name of the category this transaction belongs
	// to. Matching against budgets and categories is case-insensitive.
	Category string `json:"category"`

	// Date is the transaction date as an ISO-8601 string.
	Date string `json:"date"`

	// Amount is the transaction value in minor currency units.
	// Always non-negative; the store rejects negative amounts.
	Amount int64 `json:"amount"`

	// Type records whether the amount is income or expense.
	Type TransactionType `json:"type"`
}
