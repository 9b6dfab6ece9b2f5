package store

import (
	"encoding/json"
	"testing"

	"github.com/finbro-app/finbro/internal/models"
)

func TestExportImportRoundTrip(t *testing.T) {
	src, _, ctx := newTestStore(t)
	src.AddTransaction(ctx, TransactionInput{Name: "Lunch", Amount: 45000, Type: models.Expense, Category: "Makanan"})
	src.AddDebt(ctx, DebtInput{PersonName: "Alice", Amount: 1000, Type: models.OwedByMe})
	src.PayDebt(ctx, src.Debts()[0].ID, 400, "")
	src.AddBudget(ctx, "Groceries", 750000)
	src.AddCustomCategory(ctx, "Pets", models.Expense)

	data, err := src.ExportData()
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if _, ok := raw["exportDate"]; !ok {
		t.Error("export missing exportDate")
	}
	if _, ok := raw["notifications"]; ok {
		t.Error("export leaked notifications")
	}
	if _, ok := raw["history"]; ok {
		t.Error("export leaked undo history")
	}

	dst, _, ctx2 := newTestStore(t)
	if err := dst.ImportData(ctx2, data); err != nil {
		t.Fatalf("import failed: %v", err)
	}

	if len(dst.Transactions()) != len(src.Transactions()) {
		t.Errorf("imported %d transactions, want %d", len(dst.Transactions()), len(src.Transactions()))
	}
	if len(dst.Debts()) != 1 || dst.Debts()[0].PaidAmount != 400 {
		t.Errorf("imported debts = %+v", dst.Debts())
	}
	if len(dst.Budgets()) != len(src.Budgets()) {
		t.Errorf("imported %d budgets, want %d", len(dst.Budgets()), len(src.Budgets()))
	}
	if len(dst.Categories()) != len(src.Categories()) {
		t.Errorf("imported %d categories, want %d", len(dst.Categories()), len(src.Categories()))
	}
	if dst.CanUndo() {
		t.Error("import registered an undoable command")
	}
}

func TestImportPartialPayload(t *testing.T) {
	s, _, ctx := newTestStore(t)
	s.AddTransaction(ctx, TransactionInput{Name: "Lunch", Amount: 45000, Type: models.Expense, Category: "Makanan"})
	budgetsBefore := len(s.Budgets())

	payload := `{"transactions":[{"id":"t1","name":"Imported","amount":100,"type":"expense","category":"Makanan","date":"2026-01-01"}]}`
	if err := s.ImportData(ctx, []byte(payload)); err != nil {
		t.Fatalf("import failed: %v", err)
	}

	txs := s.Transactions()
	if len(txs) != 1 || txs[0].ID != "t1" {
		t.Errorf("transactions were not replaced: %+v", txs)
	}
	if len(s.Budgets()) != budgetsBefore {
		t.Error("absent collection was touched")
	}
	if s.Settings().Currency != "IDR" {
		t.Error("absent settings were touched")
	}
}

func TestImportRejectsInvalidPayload(t *testing.T) {
	s, _, ctx := newTestStore(t)
	s.AddTransaction(ctx, TransactionInput{Name: "Lunch", Amount: 45000, Type: models.Expense, Category: "Makanan"})

	if err := s.ImportData(ctx, []byte("{not json")); err == nil {
		t.Fatal("invalid payload accepted")
	}
	if len(s.Transactions()) != 1 {
		t.Error("failed import modified state")
	}
}

func TestImportPersists(t *testing.T) {
	s, kv, ctx := newTestStore(t)
	payload := `{"budgets":[{"id":"b1","category":"Imported","limit":10}]}`
	if err := s.ImportData(ctx, []byte(payload)); err != nil {
		t.Fatalf("import failed: %v", err)
	}

	raw, ok, err := kv.Get(ctx, keyBudgets)
	if err != nil || !ok {
		t.Fatalf("budgets not persisted: ok=%v err=%v", ok, err)
	}
	var persisted []models.Budget
	if err := json.Unmarshal([]byte(raw), &persisted); err != nil {
		t.Fatalf("persisted budgets are not valid JSON: %v", err)
	}
	if len(persisted) != 1 || persisted[0].ID != "b1" {
		t.Errorf("persisted budgets = %+v", persisted)
	}
}
