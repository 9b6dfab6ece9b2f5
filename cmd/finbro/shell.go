package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/finbro-app/finbro/internal/models"
	"github.com/finbro-app/finbro/internal/store"
)

const usage = `Commands:
  add <income|expense> <amount> <category> <name...>   record a transaction
  list                                                 list transactions
  del <id>                                             delete a transaction
  debt add <debt|receivable> <amount> <person...>      record a debt/receivable
  debt list                                            list debts
  debt pay <id> <amount> [note...]                     pay down a debt
  debt del <id>                                        delete a debt
  budget set <limit> <category...>                     add a budget
  budget list                                          list budgets
  budget del <id>                                      delete a budget
  category add <income|expense> <name...>              add a category
  category list                                        list categories
  notif [read|clear]                                   notifications
  undo / redo / history                                undo stack
  export <file> / import <file>                        backup
  login <name> / logout                                identity
  settings [currency <code>] [lang <id|en>]            preferences
  quit`

// runShell reads commands line by line until EOF or quit.
func runShell(ctx context.Context, st *store.Store, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, "FinBro - type 'help' for commands")
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		args := strings.Fields(scanner.Text())
		if len(args) == 0 {
			continue
		}

		switch args[0] {
		case "quit", "exit":
			return nil
		case "help":
			fmt.Fprintln(out, usage)
		case "add":
			cmdAddTransaction(ctx, st, out, args[1:])
		case "list":
			cmdListTransactions(st, out)
		case "del":
			cmdDeleteTransaction(ctx, st, out, args[1:])
		case "debt":
			cmdDebt(ctx, st, out, args[1:])
		case "budget":
			cmdBudget(ctx, st, out, args[1:])
		case "category":
			cmdCategory(ctx, st, out, args[1:])
		case "notif":
			cmdNotif(ctx, st, out, args[1:])
		case "undo":
			if name, ok := st.Undo(ctx); ok {
				fmt.Fprintln(out, "undone:", name)
			} else {
				fmt.Fprintln(out, "nothing to undo")
			}
		case "redo":
			if name, ok := st.Redo(ctx); ok {
				fmt.Fprintln(out, "redone:", name)
			} else {
				fmt.Fprintln(out, "nothing to redo")
			}
		case "history":
			for _, entry := range st.History() {
				fmt.Fprintf(out, "%s  %s\n", entry.Timestamp.Format("15:04:05"), entry.Name)
			}
		case "export":
			cmdExport(st, out, args[1:])
		case "import":
			cmdImport(ctx, st, out, args[1:])
		case "login":
			if len(args) < 2 {
				fmt.Fprintln(out, "usage: login <name>")
				continue
			}
			st.Login(ctx, strings.Join(args[1:], " "))
			fmt.Fprintln(out, "hello,", strings.Join(args[1:], " "))
		case "logout":
			st.Logout(ctx)
		case "settings":
			cmdSettings(ctx, st, out, args[1:])
		default:
			fmt.Fprintf(out, "unknown command %q, try 'help'\n", args[0])
		}
	}
	return scanner.Err()
}

func cmdAddTransaction(ctx context.Context, st *store.Store, out io.Writer, args []string) {
	if len(args) < 4 {
		fmt.Fprintln(out, "usage: add <income|expense> <amount> <category> <name...>")
		return
	}
	txType, ok := parseTxType(args[0])
	if !ok {
		fmt.Fprintln(out, "type must be income or expense")
		return
	}
	amount, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil || amount < 0 {
		fmt.Fprintln(out, "amount must be a non-negative integer")
		return
	}
	st.AddTransaction(ctx, store.TransactionInput{
		Name:     strings.Join(args[3:], " "),
		Category: args[2],
		Amount:   amount,
		Type:     txType,
	})
	fmt.Fprintln(out, "added")
}

func cmdListTransactions(st *store.Store, out io.Writer) {
	for _, tx := range st.Transactions() {
		sign := "+"
		if tx.Type == models.Expense {
			sign = "-"
		}
		fmt.Fprintf(out, "%s  %s%s  %-14s %s\n",
			shortID(tx.ID), sign, st.FormatCurrency(tx.Amount), tx.Category, tx.Name)
	}
}

func cmdDeleteTransaction(ctx context.Context, st *store.Store, out io.Writer, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(out, "usage: del <id>")
		return
	}
	id, ok := resolveTransaction(st, args[0])
	if !ok {
		fmt.Fprintln(out, "no unique transaction matches", args[0])
		return
	}
	st.DeleteTransaction(ctx, id)
	fmt.Fprintln(out, "deleted")
}

func cmdDebt(ctx context.Context, st *store.Store, out io.Writer, args []string) {
	if len(args) == 0 {
		args = []string{"list"}
	}
	switch args[0] {
	case "list":
		for _, d := range st.Debts() {
			fmt.Fprintf(out, "%s  [%s/%s]  %s of %s paid  %s\n",
				shortID(d.ID), d.Type, d.Status,
				st.FormatCurrency(d.PaidAmount), st.FormatCurrency(d.Amount), d.PersonName)
		}
	case "add":
		if len(args) < 4 {
			fmt.Fprintln(out, "usage: debt add <debt|receivable> <amount> <person...>")
			return
		}
		debtType := models.DebtType(args[1])
		if debtType != models.OwedByMe && debtType != models.OwedToMe {
			fmt.Fprintln(out, "type must be debt or receivable")
			return
		}
		amount, err := strconv.ParseInt(args[2], 10, 64)
		if err != nil || amount < 0 {
			fmt.Fprintln(out, "amount must be a non-negative integer")
			return
		}
		st.AddDebt(ctx, store.DebtInput{
			PersonName: strings.Join(args[3:], " "),
			Amount:     amount,
			Type:       debtType,
		})
		fmt.Fprintln(out, "added")
	case "pay":
		if len(args) < 3 {
			fmt.Fprintln(out, "usage: debt pay <id> <amount> [note...]")
			return
		}
		id, ok := resolveDebt(st, args[1])
		if !ok {
			fmt.Fprintln(out, "no unique debt matches", args[1])
			return
		}
		amount, err := strconv.ParseInt(args[2], 10, 64)
		if err != nil {
			fmt.Fprintln(out, "amount must be an integer")
			return
		}
		st.PayDebt(ctx, id, amount, strings.Join(args[3:], " "))
		fmt.Fprintln(out, "paid")
	case "del":
		if len(args) != 2 {
			fmt.Fprintln(out, "usage: debt del <id>")
			return
		}
		id, ok := resolveDebt(st, args[1])
		if !ok {
			fmt.Fprintln(out, "no unique debt matches", args[1])
			return
		}
		st.DeleteDebt(ctx, id)
		fmt.Fprintln(out, "deleted")
	default:
		fmt.Fprintln(out, "usage: debt <list|add|pay|del>")
	}
}

func cmdBudget(ctx context.Context, st *store.Store, out io.Writer, args []string) {
	if len(args) == 0 {
		args = []string{"list"}
	}
	switch args[0] {
	case "list":
		for _, b := range st.Budgets() {
			limit := "uncapped"
			if b.Limit > 0 {
				limit = st.FormatCurrency(b.Limit)
			}
			fmt.Fprintf(out, "%s  %-16s %s\n", shortID(b.ID), b.Category, limit)
		}
	case "set":
		if len(args) < 3 {
			fmt.Fprintln(out, "usage: budget set <limit> <category...>")
			return
		}
		limit, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			fmt.Fprintln(out, "limit must be an integer")
			return
		}
		st.AddBudget(ctx, strings.Join(args[2:], " "), limit)
		fmt.Fprintln(out, "added")
	case "del":
		if len(args) != 2 {
			fmt.Fprintln(out, "usage: budget del <id>")
			return
		}
		for _, b := range st.Budgets() {
			if strings.HasPrefix(b.ID, args[1]) {
				st.DeleteBudget(ctx, b.ID)
				fmt.Fprintln(out, "deleted")
				return
			}
		}
		fmt.Fprintln(out, "no budget matches", args[1])
	default:
		fmt.Fprintln(out, "usage: budget <list|set|del>")
	}
}

func cmdCategory(ctx context.Context, st *store.Store, out io.Writer, args []string) {
	if len(args) == 0 {
		args = []string{"list"}
	}
	switch args[0] {
	case "list":
		for _, c := range st.Categories() {
			marker := ""
			if c.IsDefault {
				marker = " (default)"
			}
			fmt.Fprintf(out, "%-8s %s%s\n", c.Type, c.Name, marker)
		}
	case "add":
		if len(args) < 3 {
			fmt.Fprintln(out, "usage: category add <income|expense> <name...>")
			return
		}
		catType, ok := parseTxType(args[1])
		if !ok {
			fmt.Fprintln(out, "type must be income or expense")
			return
		}
		st.AddCustomCategory(ctx, strings.Join(args[2:], " "), catType)
		fmt.Fprintln(out, "added")
	default:
		fmt.Fprintln(out, "usage: category <list|add>")
	}
}

func cmdNotif(ctx context.Context, st *store.Store, out io.Writer, args []string) {
	if len(args) == 0 {
		for _, n := range st.Notifications() {
			read := " "
			if !n.IsRead {
				read = "*"
			}
			fmt.Fprintf(out, "%s [%s] %s - %s\n", read, n.Type, n.Title, n.Message)
		}
		return
	}
	switch args[0] {
	case "read":
		st.MarkAllNotificationsRead(ctx)
	case "clear":
		st.ClearNotifications(ctx)
	default:
		fmt.Fprintln(out, "usage: notif [read|clear]")
	}
}

func cmdExport(st *store.Store, out io.Writer, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(out, "usage: export <file>")
		return
	}
	data, err := st.ExportData()
	if err != nil {
		fmt.Fprintln(out, "export failed:", err)
		return
	}
	if err := os.WriteFile(args[0], data, 0644); err != nil {
		fmt.Fprintln(out, "export failed:", err)
		return
	}
	fmt.Fprintln(out, "exported to", args[0])
}

func cmdImport(ctx context.Context, st *store.Store, out io.Writer, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(out, "usage: import <file>")
		return
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintln(out, "import failed:", err)
		return
	}
	if err := st.ImportData(ctx, data); err != nil {
		fmt.Fprintln(out, "import failed:", err)
		return
	}
	fmt.Fprintln(out, "imported from", args[0])
}

func cmdSettings(ctx context.Context, st *store.Store, out io.Writer, args []string) {
	if len(args) == 0 {
		s := st.Settings()
		fmt.Fprintf(out, "currency=%s language=%s monthlyBudget=%d\n",
			s.Currency, s.Language, s.MonthlyBudget)
		return
	}
	if len(args) != 2 {
		fmt.Fprintln(out, "usage: settings [currency <code>] [lang <id|en>]")
		return
	}
	switch args[0] {
	case "currency":
		code := strings.ToUpper(args[1])
		st.UpdateSettings(ctx, store.SettingsUpdate{Currency: &code})
	case "lang":
		st.UpdateSettings(ctx, store.SettingsUpdate{Language: &args[1]})
	default:
		fmt.Fprintln(out, "usage: settings [currency <code>] [lang <id|en>]")
	}
}

func parseTxType(s string) (models.TransactionType, bool) {
	switch s {
	case "income":
		return models.Income, true
	case "expense":
		return models.Expense, true
	}
	return "", false
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// resolveTransaction matches a full id or unique prefix.
func resolveTransaction(st *store.Store, prefix string) (string, bool) {
	var match string
	for _, tx := range st.Transactions() {
		if strings.HasPrefix(tx.ID, prefix) {
			if match != "" {
				return "", false
			}
			match = tx.ID
		}
	}
	return match, match != ""
}

// resolveDebt matches a full id or unique prefix.
func resolveDebt(st *store.Store, prefix string) (string, bool) {
	var match string
	for _, d := range st.Debts() {
		if strings.HasPrefix(d.ID, prefix) {
			if match != "" {
				return "", false
			}
			match = d.ID
		}
	}
	return match, match != ""
}
