package entity

import (
	"time"

	"github.com/google/uuid"
)

type RentalRequestStatus string

const (
	RentalRequestPending   RentalRequestStatus = "pending"
	RentalRequestAccepted  RentalRequestStatus = "accepted"
	RentalRequestRejected  RentalRequestStatus = "rejected"
	RentalRequestWithdrawn RentalRequestStatus = "withdrawn"
)

// accepted -> pending happens when the tenant rejects the offered agreement,
// so the landlord can offer again.
var rentalRequestTransitions = transitionTable[RentalRequestStatus]{
	RentalRequestPending:  {RentalRequestAccepted, RentalRequestRejected, RentalRequestWithdrawn},
	RentalRequestAccepted: {RentalRequestPending},
}

func (s RentalRequestStatus) CanTransitionTo(next RentalRequestStatus) bool {
	return rentalRequestTransitions.allows(s, next)
}

func (s RentalRequestStatus) IsTerminal() bool {
	return rentalRequestTransitions.terminal(s)
}

// RentalRequestSources lists the statuses from which `to` is reachable.
func RentalRequestSources(to RentalRequestStatus) []string {
	return toStrings(rentalRequestTransitions.sourcesOf(to))
}

type RentalRequest struct {
	Id                      uuid.UUID
	TenantId                uuid.UUID
	RoomId                  uuid.UUID
	LandlordId              uuid.UUID
	ProposedStartDate       time.Time
	GuestCount              int
	Message                 string
	ResponseMessage         string
	Status                  RentalRequestStatus
	AcceptedAt              *time.Time
	RespondedAt             *time.Time
	AgreementConfirmationId *uuid.UUID
	PaymentCompletedAt      *time.Time
	CreatedAt               time.Time
	UpdatedAt               time.Time
}
