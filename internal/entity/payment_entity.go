package entity

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "pending"
	PaymentProcessing PaymentStatus = "processing"
	PaymentCompleted  PaymentStatus = "completed"
	PaymentFailed     PaymentStatus = "failed"
	PaymentCancelled  PaymentStatus = "cancelled"
	PaymentRefunded   PaymentStatus = "refunded"
)

var paymentTransitions = transitionTable[PaymentStatus]{
	PaymentPending:    {PaymentProcessing, PaymentCompleted, PaymentFailed, PaymentCancelled},
	PaymentProcessing: {PaymentCompleted, PaymentFailed, PaymentCancelled},
	PaymentCompleted:  {PaymentRefunded},
}

func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	return paymentTransitions.allows(s, next)
}

func (s PaymentStatus) IsTerminal() bool {
	return paymentTransitions.terminal(s)
}

func PaymentSources(to PaymentStatus) []string {
	return toStrings(paymentTransitions.sourcesOf(to))
}

type PaymentMethod string

const (
	PaymentMethodVNPay        PaymentMethod = "vnpay"
	PaymentMethodMidtrans     PaymentMethod = "midtrans"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCash         PaymentMethod = "cash"
)

// IsRedirect reports whether the method sends the tenant to a gateway page.
func (m PaymentMethod) IsRedirect() bool {
	return m == PaymentMethodVNPay || m == PaymentMethodMidtrans
}

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodVNPay, PaymentMethodMidtrans, PaymentMethodBankTransfer, PaymentMethodCash:
		return true
	}
	return false
}

// DuplicateDepositReason marks a completed payment whose agreement was
// already paid by another one. An admin refunds it out of band.
const DuplicateDepositReason = "duplicate deposit for an already paid agreement; refund required"

type PaymentPurpose string

const (
	PaymentPurposeDeposit PaymentPurpose = "deposit"
	PaymentPurposeRent    PaymentPurpose = "rent"
)

type Payment struct {
	Id                      uuid.UUID
	TenantId                uuid.UUID
	LandlordId              uuid.UUID
	RoomId                  uuid.UUID
	AgreementConfirmationId uuid.UUID
	Purpose                 PaymentPurpose
	Amount                  int64
	PaymentMethod           PaymentMethod
	Status                  PaymentStatus
	TransactionId           string
	ExternalTransactionId   string
	GatewayResponse         map[string]string
	FailureReason           string
	IpAddress               string
	PaidAt                  *time.Time
	CreatedAt               time.Time
	UpdatedAt               time.Time
}
