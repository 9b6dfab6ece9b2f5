package models

// DebtType distinguishes money the user owes from money owed to the user.
type DebtType string

const (
	// OwedByMe is a debt: the user borrowed and must pay back.
	OwedByMe DebtType = "debt"

	// OwedToMe is a receivable: the user lent and waits to be paid back.
	OwedToMe DebtType = "receivable"
)

// DebtStatus is derived from the running paid amount.
type DebtStatus string

const (
	Unpaid DebtStatus = "unpaid"
	Paid   DebtStatus = "paid"
)

// DebtPayment is one partial payment against a debt. Payments are
// append-only; each successful payment also synthesizes a Transaction.
type DebtPayment struct {
	ID     string `json:"id"`
	Amount int64  `json:"amount"`
	Date   string `json:"date"`
	Note   string `json:"note,omitempty"`
}

// Debt represents a tracked obligation with a running payment ledger.
//
// A Debt is created together with a linked Transaction recording the initial
// cash movement. The link is one-way (TransactionID); deleting the Debt does
// not remove the Transaction, preserving the financial history.
type Debt struct {
	// ID is the unique identifier for the debt (UUID format).
	ID string `json:"id"`

	// PersonName is the counterparty.
	PersonName string `json:"personName"`

	// Description is an optional note about the obligation.
	Description string `json:"description"`

	// Amount is the full obligation in minor currency units.
	Amount int64 `json:"amount"`

	// PaidAmount is the cumulative sum of recorded payments. It may
	// transiently exceed Amount when a payment overshoots.
	PaidAmount int64 `json:"paidAmount"`

	// Payments is the ledger of partial payments, newest first.
	Payments []DebtPayment `json:"payments"`

	// DueDate is an optional ISO-8601 deadline.
	DueDate string `json:"dueDate,omitempty"`

	// Type records the direction of the obligation.
	Type DebtType `json:"type"`

	// Status is derived: Paid once PaidAmount >= Amount.
	Status DebtStatus `json:"status"`

	// TransactionID references the Transaction synthesized when the debt
	// was created. The Transaction outlives the Debt.
	TransactionID string `json:"transactionId,omitempty"`
}

// Settled reports whether the cumulative payments cover the full amount.
func (d *Debt) Settled() bool {
	return d.PaidAmount >= d.Amount
}
