package entity

import (
	"time"

	"github.com/google/uuid"
)

type WalletTransactionType string

const (
	WalletDepositCredit     WalletTransactionType = "deposit_credit"
	WalletWithdrawalHold    WalletTransactionType = "withdrawal_hold"
	WalletWithdrawalRelease WalletTransactionType = "withdrawal_release"
)

// WalletTransaction is one ledger row. Amount is signed: credits are positive.
// (Type, ReferenceId) is unique, which makes every wallet mutation idempotent.
type WalletTransaction struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	Type         WalletTransactionType
	Amount       int64
	ReferenceId  uuid.UUID
	BalanceAfter int64
	Description  string
	CreatedAt    time.Time
}

type Wallet struct {
	UserId       uuid.UUID
	Balance      int64
	Transactions []*WalletTransaction
}
