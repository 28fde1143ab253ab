package entity

import (
	"time"

	"github.com/google/uuid"
)

type TenancyStatus string

const (
	TenancyActive     TenancyStatus = "active"
	TenancyEnded      TenancyStatus = "ended"
	TenancyTerminated TenancyStatus = "terminated"
)

var tenancyTransitions = transitionTable[TenancyStatus]{
	TenancyActive: {TenancyEnded, TenancyTerminated},
}

func (s TenancyStatus) CanTransitionTo(next TenancyStatus) bool {
	return tenancyTransitions.allows(s, next)
}

func TenancySources(to TenancyStatus) []string {
	return toStrings(tenancyTransitions.sourcesOf(to))
}

type TenancyAgreement struct {
	Id                      uuid.UUID
	AgreementConfirmationId uuid.UUID
	PaymentId               uuid.UUID
	TenantId                uuid.UUID
	LandlordId              uuid.UUID
	RoomId                  uuid.UUID
	Terms                   AgreementTerms
	DocumentId              string
	SignedDocument          string
	Status                  TenancyStatus
	SignedAt                time.Time
	EndedAt                 *time.Time
	CreatedAt               time.Time
	UpdatedAt               time.Time
}
