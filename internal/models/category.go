package models

// CategoryItem is a user-visible transaction category.
// Names are unique case-insensitively per type; the store silently skips
// duplicate additions.
type CategoryItem struct {
	// ID is the unique identifier for the category (UUID format).
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// Type records whether the category applies to income or expenses.
	Type TransactionType `json:"type"`

	// IsDefault marks categories seeded by the application rather than
	// created by the user.
	IsDefault bool `json:"isDefault,omitempty"`
}
