package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- Rental Requests ---

type CreateRentalRequestRequest struct {
	RoomId            uuid.UUID `json:"room_id" validate:"required"`
	ProposedStartDate time.Time `json:"proposed_start_date" validate:"required"`
	GuestCount        int       `json:"guest_count" validate:"required,min=1"`
	Message           string    `json:"message" validate:"max=2000"`
}

type RespondRentalRequestRequest struct {
	ResponseMessage string `json:"response_message" validate:"max=2000"`
}

// AcceptAndOfferRequest accepts the request and offers the agreement in one
// step.
type AcceptAndOfferRequest struct {
	ResponseMessage string                `json:"response_message" validate:"max=2000"`
	Terms           AgreementTermsRequest `json:"terms"`
}

type RentalRequestResponse struct {
	Id                      uuid.UUID  `json:"id"`
	TenantId                uuid.UUID  `json:"tenant_id"`
	RoomId                  uuid.UUID  `json:"room_id"`
	LandlordId              uuid.UUID  `json:"landlord_id"`
	ProposedStartDate       time.Time  `json:"proposed_start_date"`
	GuestCount              int        `json:"guest_count"`
	Message                 string     `json:"message,omitempty"`
	ResponseMessage         string     `json:"response_message,omitempty"`
	Status                  string     `json:"status"`
	AcceptedAt              *time.Time `json:"accepted_at,omitempty"`
	RespondedAt             *time.Time `json:"responded_at,omitempty"`
	AgreementConfirmationId *uuid.UUID `json:"agreement_confirmation_id,omitempty"`
	PaymentCompletedAt      *time.Time `json:"payment_completed_at,omitempty"`
	CreatedAt               time.Time  `json:"created_at"`
}

type AcceptAndOfferResponse struct {
	Request   RentalRequestResponse `json:"request"`
	Agreement AgreementResponse     `json:"agreement"`
}

type ListQuery struct {
	Status string `query:"status"`
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
}

// Normalize clamps paging to sane values.
func (q *ListQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 || q.Limit > 100 {
		q.Limit = 20
	}
}

func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

type PagedResponse[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}
