package store

import (
	"context"
	"log/slog"
	"math"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/finbro-app/finbro/internal/models"
)

// User and settings operations are applied directly: identity and
// preferences are not financial records, so they are not undoable.

// Login sets the active user by display name. There are no credentials.
func (s *Store) Login(ctx context.Context, name string) {
	s.user = &models.User{Name: name}
	s.persistUser(ctx)
}

// Logout clears the active user.
func (s *Store) Logout(ctx context.Context) {
	s.user = nil
	s.persistUser(ctx)
}

// UserUpdate holds optional replacement fields for the user record.
type UserUpdate struct {
	Name   *string
	Avatar *string
}

// UpdateUser applies updates to the logged-in user. Without a logged-in user
// this is a no-op.
func (s *Store) UpdateUser(ctx context.Context, updates UserUpdate) {
	if s.user == nil {
		slog.Warn("user update ignored: not logged in")
		return
	}
	if updates.Name != nil {
		s.user.Name = *updates.Name
	}
	if updates.Avatar != nil {
		s.user.Avatar = *updates.Avatar
	}
	s.persistUser(ctx)
}

// SettingsUpdate holds optional replacement fields for the settings
// singleton.
type SettingsUpdate struct {
	Currency      *string
	Language      *string
	MonthlyBudget *int64
}

// UpdateSettings applies updates to the global settings.
func (s *Store) UpdateSettings(ctx context.Context, updates SettingsUpdate) {
	if updates.Currency != nil {
		s.settings.Currency = *updates.Currency
	}
	if updates.Language != nil {
		s.settings.Language = *updates.Language
	}
	if updates.MonthlyBudget != nil {
		s.settings.MonthlyBudget = *updates.MonthlyBudget
	}
	s.persistSettings(ctx)
}

// FormatCurrency renders a minor-unit amount using the configured currency
// and language locale.
func (s *Store) FormatCurrency(amount int64) string {
	tag := language.English
	if s.settings.Language == models.LangIndonesian {
		tag = language.Indonesian
	}

	unit, err := currency.ParseISO(s.settings.Currency)
	if err != nil {
		unit = currency.IDR
	}

	// Minor units to major: IDR has scale 0, USD has scale 2.
	scale, _ := currency.Standard.Rounding(unit)
	major := float64(amount) / math.Pow10(scale)

	p := message.NewPrinter(tag)
	return p.Sprintf("%v", currency.Symbol(unit.Amount(major)))
}
