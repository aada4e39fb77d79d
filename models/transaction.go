package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TransactionStatus is the closed set of states a task submission moves
// through. "Under Verification" is the canonical initial state; the old
// mobile surface labelled it "Started & Ongoing" and that spelling is still
// accepted on input.
type TransactionStatus string

const (
	StatusUnderVerification TransactionStatus = "Under Verification"
	StatusApproved          TransactionStatus = "Approved"
	StatusRejected          TransactionStatus = "Rejected"
	StatusPaid              TransactionStatus = "Paid"
)

// legacy alias kept for old clients
const statusStartedOngoing = "Started & Ongoing"

func (s TransactionStatus) Valid() bool {
	switch s {
	case StatusUnderVerification, StatusApproved, StatusRejected, StatusPaid:
		return true
	}
	return false
}

// ParseTransactionStatus canonicalizes a status label. Matching is
// case-insensitive and the legacy "Started & Ongoing" label maps to
// "Under Verification".
func ParseTransactionStatus(raw string) (TransactionStatus, error) {
	trimmed := strings.TrimSpace(raw)
	if strings.EqualFold(trimmed, statusStartedOngoing) {
		return StatusUnderVerification, nil
	}
	for _, s := range []TransactionStatus{StatusUnderVerification, StatusApproved, StatusRejected, StatusPaid} {
		if strings.EqualFold(trimmed, string(s)) {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown transaction status %q", raw)
}

// Transaction is one user's attempt at one task. TaskName and Amount are
// snapshots taken when the transaction is created and do not track later task
// edits. Mutated only by status transitions; deleted only by task cascade.
type Transaction struct {
	Model
	UserID   uint              `json:"user_id" gorm:"index;not null"`
	TaskID   uint              `json:"task_id" gorm:"index;not null"`
	TaskName string            `json:"task_name"`
	Amount   decimal.Decimal   `json:"amount" gorm:"type:numeric(12,2)"`
	Status   TransactionStatus `json:"status" gorm:"type:varchar(32);default:'Under Verification'"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// StatusChangeAck is the synchronous acknowledgment returned to the admin
// operator after a status transition. It is not persisted and not delivered
// to the affected user.
type StatusChangeAck struct {
	TransactionID  uint              `json:"transaction_id"`
	TaskName       string            `json:"task_name"`
	PreviousStatus TransactionStatus `json:"previous_status"`
	Status         TransactionStatus `json:"status"`
	Message        string            `json:"message"`
}

// WalletResponse is a user's derived wallet view. Total is always computed
// fresh from the transaction set, never cached.
type WalletResponse struct {
	Total        decimal.Decimal `json:"total"`
	Display      string          `json:"display"`
	Transactions []Transaction   `json:"transactions"`
}

// UserWithTransactions pairs a user with their owned transactions for the
// admin listing and search surface.
type UserWithTransactions struct {
	User         UserResponse  `json:"user"`
	Transactions []Transaction `json:"transactions"`
	Total        string        `json:"total"`
}

// FormatAmount renders a decimal amount with two-decimal display precision.
func FormatAmount(d decimal.Decimal) string {
	return "₹" + d.StringFixed(2)
}
