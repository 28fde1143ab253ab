package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- E-signature ---

type SignatureWebhookRequest struct {
	DocumentId string `json:"documentId" validate:"required"`
	Status     string `json:"status"`
	EventType  string `json:"eventType" validate:"required"`
	Signature  string `json:"signature"`
}

type TenancyResponse struct {
	Id                      uuid.UUID              `json:"id"`
	AgreementConfirmationId uuid.UUID              `json:"agreement_confirmation_id"`
	PaymentId               uuid.UUID              `json:"payment_id"`
	TenantId                uuid.UUID              `json:"tenant_id"`
	LandlordId              uuid.UUID              `json:"landlord_id"`
	RoomId                  uuid.UUID              `json:"room_id"`
	Terms                   AgreementTermsResponse `json:"terms"`
	SignedDocument          string                 `json:"signed_document,omitempty"`
	Status                  string                 `json:"status"`
	SignedAt                time.Time              `json:"signed_at"`
	EndedAt                 *time.Time             `json:"ended_at,omitempty"`
}

type EndTenancyRequest struct {
	Terminated bool `json:"terminated"`
}

type RetryDispatchResponse struct {
	Attempted int `json:"attempted"`
	Sent      int `json:"sent"`
	Failed    int `json:"failed"`
}

// ContractDispatchMessage is the payload of a queued dispatch retry.
type ContractDispatchMessage struct {
	AgreementId uuid.UUID `json:"agreement_id"`
	PaymentId   uuid.UUID `json:"payment_id"`
}
