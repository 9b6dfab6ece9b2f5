// Package store owns the canonical application state and every mutation
// defined over it.
//
// Store is the single writer: the presentation layer reads snapshots and
// calls the public mutators, and the undo/redo stack replays the same
// mutation primitives through the central apply dispatcher. Nothing else
// touches the collections.
//
// Mutators are fail-closed: invalid input or an unknown id is logged and
// absorbed as a no-op, never surfaced as an error. Callers that want user
// feedback validate before calling.
//
// Store is not safe for concurrent use. The application model is a single
// event loop reacting to discrete user actions; all operations run
// synchronously to completion.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/finbro-app/finbro/internal/history"
	"github.com/finbro-app/finbro/internal/migrate"
	"github.com/finbro-app/finbro/internal/models"
	"github.com/finbro-app/finbro/internal/storage"
)

// Storage keys. One JSON blob per collection, plus boolean flags gating
// one-time migrations. The names are part of the on-disk schema.
const (
	keyUser             = "finbro_user"
	keySettings         = "finbro_settings"
	keyTransactions     = "finbro_transactions"
	keyDebts            = "finbro_debts"
	keyBudgets          = "finbro_budgets"
	keyCategories       = "finbro_categories_v2"
	keyLegacyCategories = "finbro_custom_categories"
	keyNotifications    = "finbro_notifications"
	keyWelcomeShown     = "finbro_welcome_notification_shown"
	keyDefaultsV4Done   = "finbro_defaults_v4_done"
	keyDefaultsV3Done   = "finbro_defaults_v3_done"
	keyDefaultsV2Done   = "finbro_defaults_v2_done"
)

// Store holds the canonical in-memory collections and coordinates mutation,
// undo/redo, and persistence.
type Store struct {
	kv storage.KV

	user          *models.User
	settings      models.Settings
	transactions  []models.Transaction
	debts         []models.Debt
	budgets       []models.Budget
	categories    []models.CategoryItem
	notifications []models.Notification

	stack *history.Stack[change]
}

// New loads all collections from the key-value adapter, runs the one-time
// migrations, and returns a ready store. Collections with corrupt persisted
// payloads are logged and start empty; only adapter failures make New error.
func New(ctx context.Context, kv storage.KV, historyLimit int) (*Store, error) {
	s := &Store{
		kv:       kv,
		settings: models.DefaultSettings(),
	}
	s.stack = history.New(historyLimit, s.apply)

	if err := s.load(ctx); err != nil {
		return nil, err
	}
	if err := s.runMigrations(ctx); err != nil {
		return nil, err
	}
	s.seedWelcomeNotification(ctx)

	return s, nil
}

func (s *Store) load(ctx context.Context) error {
	if err := s.loadJSON(ctx, keyUser, &s.user); err != nil {
		return err
	}
	if err := s.loadJSON(ctx, keySettings, &s.settings); err != nil {
		return err
	}
	if err := s.loadJSON(ctx, keyTransactions, &s.transactions); err != nil {
		return err
	}
	if err := s.loadJSON(ctx, keyBudgets, &s.budgets); err != nil {
		return err
	}
	if err := s.loadJSON(ctx, keyNotifications, &s.notifications); err != nil {
		return err
	}

	rawDebts, _, err := s.kv.Get(ctx, keyDebts)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", keyDebts, err)
	}
	s.debts = migrate.Debts(rawDebts)

	rawV2, _, err := s.kv.Get(ctx, keyCategories)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", keyCategories, err)
	}
	rawLegacy, _, err := s.kv.Get(ctx, keyLegacyCategories)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", keyLegacyCategories, err)
	}
	s.categories = migrate.Categories(rawV2, rawLegacy)

	return nil
}

// loadJSON reads one persisted blob into v. A missing key leaves v untouched;
// a corrupt payload is logged and leaves v untouched. Only adapter failures
// are returned.
func (s *Store) loadJSON(ctx context.Context, key string, v any) error {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !ok || raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		slog.Error("failed to parse persisted data, starting empty", "key", key, "error", err)
	}
	return nil
}

// runMigrations applies the version-gated one-time migrations.
// The debt and category migrations run on every load (they are idempotent
// schema backfills); the v4 default seeding runs exactly once, tracked by a
// persisted flag.
func (s *Store) runMigrations(ctx context.Context) error {
	_, done, err := s.kv.Get(ctx, keyDefaultsV4Done)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", keyDefaultsV4Done, err)
	}
	if done {
		return nil
	}

	s.budgets, s.categories = migrate.PerformV4(s.settings, s.budgets, s.categories, s.transactions)
	s.persistBudgets(ctx)
	s.persistCategories(ctx)

	// Earlier seeding versions are subsumed by v4: mark them all done so a
	// downgrade never re-runs them.
	s.setFlag(ctx, keyDefaultsV4Done)
	s.setFlag(ctx, keyDefaultsV3Done)
	s.setFlag(ctx, keyDefaultsV2Done)
	slog.Info("applied default-seeding migration",
		"budgets", len(s.budgets), "categories", len(s.categories))
	return nil
}

func (s *Store) setFlag(ctx context.Context, key string) {
	if err := s.kv.Set(ctx, key, "true"); err != nil {
		slog.Error("failed to persist migration flag", "key", key, "error", err)
	}
}

// persist writes one collection back to durable storage. Failures are logged
// and absorbed: the in-memory state is canonical and a missed write will be
// retried by the next mutation of the same collection.
func (s *Store) persist(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to encode collection", "key", key, "error", err)
		return
	}
	if err := s.kv.Set(ctx, key, string(data)); err != nil {
		slog.Error("failed to persist collection", "key", key, "error", err)
	}
}

func (s *Store) persistTransactions(ctx context.Context)  { s.persist(ctx, keyTransactions, s.transactions) }
func (s *Store) persistDebts(ctx context.Context)         { s.persist(ctx, keyDebts, s.debts) }
func (s *Store) persistBudgets(ctx context.Context)       { s.persist(ctx, keyBudgets, s.budgets) }
func (s *Store) persistCategories(ctx context.Context)    { s.persist(ctx, keyCategories, s.categories) }
func (s *Store) persistNotifications(ctx context.Context) { s.persist(ctx, keyNotifications, s.notifications) }
func (s *Store) persistSettings(ctx context.Context)      { s.persist(ctx, keySettings, s.settings) }
func (s *Store) persistUser(ctx context.Context)          { s.persist(ctx, keyUser, s.user) }

// --- Read surface ---
//
// All getters return copies; callers must not rely on seeing later mutations
// through a previously returned slice.

// Transactions returns the transaction collection, newest first.
func (s *Store) Transactions() []models.Transaction {
	out := make([]models.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

// Debts returns the debt collection, newest first.
func (s *Store) Debts() []models.Debt {
	out := make([]models.Debt, len(s.debts))
	copy(out, s.debts)
	return out
}

// Budgets returns the budget collection.
func (s *Store) Budgets() []models.Budget {
	out := make([]models.Budget, len(s.budgets))
	copy(out, s.budgets)
	return out
}

// Categories returns the category collection.
func (s *Store) Categories() []models.CategoryItem {
	out := make([]models.CategoryItem, len(s.categories))
	copy(out, s.categories)
	return out
}

// Notifications returns the notification collection, newest first.
func (s *Store) Notifications() []models.Notification {
	out := make([]models.Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}

// Settings returns the current settings.
func (s *Store) Settings() models.Settings { return s.settings }

// User returns the logged-in user, or nil.
func (s *Store) User() *models.User {
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// --- Undo/redo surface ---

// HistoryEntry is one command in the undo history, for display.
type HistoryEntry struct {
	ID        string
	Name      string
	Timestamp time.Time
}

// Undo reverts the most recent undoable mutation. It reports the command
// name and whether anything was undone.
func (s *Store) Undo(ctx context.Context) (string, bool) { return s.stack.Undo(ctx) }

// Redo reapplies the most recently undone mutation. It reports the command
// name and whether anything was redone.
func (s *Store) Redo(ctx context.Context) (string, bool) { return s.stack.Redo(ctx) }

// CanUndo reports whether an undoable mutation exists.
func (s *Store) CanUndo() bool { return s.stack.CanUndo() }

// CanRedo reports whether an undone mutation can be reapplied.
func (s *Store) CanRedo() bool { return s.stack.CanRedo() }

// History returns the undo history, oldest first.
func (s *Store) History() []HistoryEntry {
	cmds := s.stack.History()
	out := make([]HistoryEntry, len(cmds))
	for i, cmd := range cmds {
		out[i] = HistoryEntry{ID: cmd.ID, Name: cmd.Name, Timestamp: cmd.Timestamp}
	}
	return out
}

// record applies a change forward and registers it on the undo stack under
// name. Every undoable mutator funnels through here so the optimistic
// apply-then-record order is uniform.
func (s *Store) record(ctx context.Context, name string, ch change) {
	if err := s.apply(ctx, ch, history.Forward); err != nil {
		slog.Error("failed to apply change", "name", name, "error", err)
		return
	}
	s.stack.Add(name, ch)
}

func nowISO() string { return time.Now().UTC().Format(time.RFC3339) }
