package entity

import (
	"time"

	"github.com/google/uuid"
)

type WithdrawalStatus string

const (
	WithdrawalPending    WithdrawalStatus = "pending"
	WithdrawalApproved   WithdrawalStatus = "approved"
	WithdrawalRejected   WithdrawalStatus = "rejected"
	WithdrawalProcessing WithdrawalStatus = "processing"
	WithdrawalCompleted  WithdrawalStatus = "completed"
	WithdrawalFailed     WithdrawalStatus = "failed"
	WithdrawalCancelled  WithdrawalStatus = "cancelled"
)

// approved -> pending is the compensation when the payout cannot be started.
var withdrawalTransitions = transitionTable[WithdrawalStatus]{
	WithdrawalPending:    {WithdrawalApproved, WithdrawalRejected, WithdrawalCancelled},
	WithdrawalApproved:   {WithdrawalProcessing, WithdrawalPending},
	WithdrawalProcessing: {WithdrawalCompleted, WithdrawalFailed},
}

func (s WithdrawalStatus) CanTransitionTo(next WithdrawalStatus) bool {
	return withdrawalTransitions.allows(s, next)
}

func (s WithdrawalStatus) IsTerminal() bool {
	return withdrawalTransitions.terminal(s)
}

func WithdrawalSources(to WithdrawalStatus) []string {
	return toStrings(withdrawalTransitions.sourcesOf(to))
}

// OpenWithdrawalStatuses are the non-terminal statuses; at most one request per
// tenant and agreement may be in one of them.
func OpenWithdrawalStatuses() []string {
	return []string{
		string(WithdrawalPending),
		string(WithdrawalApproved),
		string(WithdrawalProcessing),
	}
}

type BankDetails struct {
	BankCode      string
	BankName      string
	AccountNumber string
	AccountHolder string
}

type WithdrawalRequest struct {
	Id                      uuid.UUID
	TenantId                uuid.UUID
	LandlordId              uuid.UUID
	AgreementConfirmationId uuid.UUID
	PaymentId               uuid.UUID
	RoomId                  uuid.UUID
	Amount                  int64
	DeductionAmount         int64
	DeductionReason         string
	NetAmount               int64
	Reason                  string
	Bank                    BankDetails
	Status                  WithdrawalStatus
	RejectionReason         string
	PayoutReference         string
	PayoutResponseCode      string
	PayoutMessage           string
	ApprovedAt              *time.Time
	ProcessedAt             *time.Time
	CompletedAt             *time.Time
	CreatedAt               time.Time
	UpdatedAt               time.Time
}
