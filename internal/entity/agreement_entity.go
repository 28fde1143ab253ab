package entity

import (
	"time"

	"github.com/google/uuid"
)

type AgreementStatus string

const (
	AgreementPending   AgreementStatus = "pending"
	AgreementConfirmed AgreementStatus = "confirmed"
	AgreementRejected  AgreementStatus = "rejected"
	AgreementExpired   AgreementStatus = "expired"
)

var agreementTransitions = transitionTable[AgreementStatus]{
	AgreementPending: {AgreementConfirmed, AgreementRejected, AgreementExpired},
}

func (s AgreementStatus) CanTransitionTo(next AgreementStatus) bool {
	return agreementTransitions.allows(s, next)
}

func (s AgreementStatus) IsTerminal() bool {
	return agreementTransitions.terminal(s)
}

func AgreementSources(to AgreementStatus) []string {
	return toStrings(agreementTransitions.sourcesOf(to))
}

type AgreementPaymentStatus string

const (
	AgreementPaymentPending    AgreementPaymentStatus = "pending"
	AgreementPaymentProcessing AgreementPaymentStatus = "processing"
	AgreementPaymentCompleted  AgreementPaymentStatus = "completed"
	AgreementPaymentFailed     AgreementPaymentStatus = "failed"
)

// failed -> processing/completed: the tenant may retry the deposit.
var agreementPaymentTransitions = transitionTable[AgreementPaymentStatus]{
	AgreementPaymentPending:    {AgreementPaymentProcessing, AgreementPaymentCompleted, AgreementPaymentFailed},
	AgreementPaymentProcessing: {AgreementPaymentCompleted, AgreementPaymentFailed},
	AgreementPaymentFailed:     {AgreementPaymentProcessing, AgreementPaymentCompleted},
}

func (s AgreementPaymentStatus) CanTransitionTo(next AgreementPaymentStatus) bool {
	return agreementPaymentTransitions.allows(s, next)
}

func AgreementPaymentSources(to AgreementPaymentStatus) []string {
	return toStrings(agreementPaymentTransitions.sourcesOf(to))
}

// SignatureStatus holds our own states plus any provider status stored verbatim.
type SignatureStatus string

const (
	SignaturePending   SignatureStatus = "pending"
	SignatureSent      SignatureStatus = "sent"
	SignatureCompleted SignatureStatus = "completed"
	SignatureDeclined  SignatureStatus = "declined"
	SignatureFailed    SignatureStatus = "failed"
)

// IsFinal reports whether provider events may no longer overwrite the status.
func (s SignatureStatus) IsFinal() bool {
	return s == SignatureCompleted || s == SignatureDeclined
}

// NeedsDispatch reports whether the contract still has to be sent for signing.
func (s SignatureStatus) NeedsDispatch() bool {
	return s == SignaturePending || s == SignatureFailed
}

type AdditionalFee struct {
	Name   string `json:"name"`
	Amount int64  `json:"amount"`
}

// AgreementTerms is copied from the room when the offer is made and never
// follows later room price changes.
type AgreementTerms struct {
	StartDate       time.Time
	EndDate         *time.Time
	MonthlyRent     int64
	Deposit         int64
	ElectricityRate int64
	WaterRate       int64
	AdditionalFees  []AdditionalFee
	Notes           string
}

type AgreementConfirmation struct {
	Id              uuid.UUID
	RentalRequestId uuid.UUID
	TenantId        uuid.UUID
	LandlordId      uuid.UUID
	RoomId          uuid.UUID
	Token           string
	Terms           AgreementTerms
	Status          AgreementStatus
	SignatureStatus SignatureStatus
	PaymentStatus   AgreementPaymentStatus
	RejectionReason string
	DocumentId      string
	SignedDocument  string
	ExpiresAt       time.Time
	ConfirmedAt     *time.Time
	RejectedAt      *time.Time
	SignatureSentAt *time.Time
	SignedAt        *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (a *AgreementConfirmation) IsExpired(now time.Time) bool {
	return !a.ExpiresAt.After(now)
}
