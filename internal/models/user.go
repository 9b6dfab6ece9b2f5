package models

// User is the display-name identity gate. There are no credentials: the
// application is single-user and local, so a name is all that is stored.
type User struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// Settings is the global application configuration singleton.
// Settings changes are applied directly and are not undoable.
type Settings struct {
	// Currency is the ISO-4217 code amounts are displayed in.
	Currency string `json:"currency"`

	// Language selects the display language ("id" or "en"). It also decides
	// which basic category names the default-seeding migration uses.
	Language string `json:"language"`

	// MonthlyBudget is an optional overall monthly spending cap in minor
	// currency units. Zero means unset.
	MonthlyBudget int64 `json:"monthlyBudget,omitempty"`
}

// Supported languages.
const (
	LangIndonesian = "id"
	LangEnglish    = "en"
)

// DefaultSettings returns the settings used before the user picks anything.
func DefaultSettings() Settings {
	return Settings{Currency: "IDR", Language: LangIndonesian}
}
