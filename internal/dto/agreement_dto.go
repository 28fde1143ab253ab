package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- Agreement Terms ---

type AdditionalFeeDTO struct {
	Name   string `json:"name" validate:"required,max=100"`
	Amount int64  `json:"amount" validate:"min=0"`
}

// AgreementTermsRequest carries the negotiated terms. Utility rates and fees
// left out are copied from the room.
type AgreementTermsRequest struct {
	StartDate       time.Time          `json:"start_date" validate:"required"`
	EndDate         *time.Time         `json:"end_date,omitempty"`
	MonthlyRent     int64              `json:"monthly_rent" validate:"required,min=1"`
	Deposit         int64              `json:"deposit" validate:"min=0"`
	ElectricityRate *int64             `json:"electricity_rate,omitempty" validate:"omitempty,min=0"`
	WaterRate       *int64             `json:"water_rate,omitempty" validate:"omitempty,min=0"`
	AdditionalFees  []AdditionalFeeDTO `json:"additional_fees,omitempty" validate:"omitempty,dive"`
	Notes           string             `json:"notes" validate:"max=2000"`
}

type AgreementTermsResponse struct {
	StartDate       time.Time          `json:"start_date"`
	EndDate         *time.Time         `json:"end_date,omitempty"`
	MonthlyRent     int64              `json:"monthly_rent"`
	Deposit         int64              `json:"deposit"`
	ElectricityRate int64              `json:"electricity_rate"`
	WaterRate       int64              `json:"water_rate"`
	AdditionalFees  []AdditionalFeeDTO `json:"additional_fees"`
	Notes           string             `json:"notes,omitempty"`
}

// --- Agreement Confirmation ---

type ConfirmAgreementRequest struct {
	Token string `json:"token" validate:"required,len=64,hexadecimal"`
}

type RejectAgreementRequest struct {
	Token  string `json:"token" validate:"required,len=64,hexadecimal"`
	Reason string `json:"reason" validate:"required,min=3,max=2000"`
}

type AgreementResponse struct {
	Id              uuid.UUID              `json:"id"`
	RentalRequestId uuid.UUID              `json:"rental_request_id"`
	TenantId        uuid.UUID              `json:"tenant_id"`
	LandlordId      uuid.UUID              `json:"landlord_id"`
	RoomId          uuid.UUID              `json:"room_id"`
	Terms           AgreementTermsResponse `json:"terms"`
	Status          string                 `json:"status"`
	SignatureStatus string                 `json:"signature_status"`
	PaymentStatus   string                 `json:"payment_status"`
	RejectionReason string                 `json:"rejection_reason,omitempty"`
	SignedDocument  string                 `json:"signed_document,omitempty"`
	ExpiresAt       time.Time              `json:"expires_at"`
	ConfirmedAt     *time.Time             `json:"confirmed_at,omitempty"`
	SignedAt        *time.Time             `json:"signed_at,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
}

// AgreementPreviewResponse is the unauthenticated view reached by token.
type AgreementPreviewResponse struct {
	Id           uuid.UUID              `json:"id"`
	RoomTitle    string                 `json:"room_title"`
	LandlordName string                 `json:"landlord_name"`
	TenantName   string                 `json:"tenant_name"`
	Terms        AgreementTermsResponse `json:"terms"`
	ExpiresAt    time.Time              `json:"expires_at"`
}

type ExpireConfirmationsResponse struct {
	Expired int64 `json:"expired"`
}

// CreateAgreementRequest offers an agreement for an already accepted request.
type CreateAgreementRequest struct {
	RentalRequestId uuid.UUID             `json:"rental_request_id" validate:"required"`
	Terms           AgreementTermsRequest `json:"terms"`
}
