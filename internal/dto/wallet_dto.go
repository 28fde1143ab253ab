package dto

import (
	"time"

	"github.com/google/uuid"
)

type WalletTransactionResponse struct {
	Id           uuid.UUID `json:"id"`
	Type         string    `json:"type"`
	Amount       int64     `json:"amount"`
	ReferenceId  uuid.UUID `json:"reference_id"`
	BalanceAfter int64     `json:"balance_after"`
	Description  string    `json:"description,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type WalletResponse struct {
	UserId       uuid.UUID                    `json:"user_id"`
	Balance      int64                        `json:"balance"`
	Transactions []*WalletTransactionResponse `json:"transactions"`
}

type WalletReconcileResponse struct {
	UserId        uuid.UUID `json:"user_id"`
	StoredBalance int64     `json:"stored_balance"`
	LedgerBalance int64     `json:"ledger_balance"`
	Drift         int64     `json:"drift"`
	Repaired      bool      `json:"repaired"`
}
