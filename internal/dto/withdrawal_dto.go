package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- Tenant-Side Withdrawal ---

type BankDetailsDTO struct {
	BankCode      string `json:"bank_code" validate:"required,max=20"`
	BankName      string `json:"bank_name" validate:"max=100"`
	AccountNumber string `json:"account_number" validate:"required,numeric,min=6,max=30"`
	AccountHolder string `json:"account_holder" validate:"required,max=255"`
}

type CreateWithdrawalRequest struct {
	AgreementConfirmationId uuid.UUID      `json:"agreement_confirmation_id" validate:"required"`
	Amount                  int64          `json:"amount" validate:"required,min=1"`
	Reason                  string         `json:"reason" validate:"max=2000"`
	Bank                    BankDetailsDTO `json:"bank"`
}

// --- Landlord-Side Withdrawal ---

type ApproveWithdrawalRequest struct {
	DeductionAmount int64  `json:"deduction_amount" validate:"min=0"`
	DeductionReason string `json:"deduction_reason" validate:"max=2000"`
}

type RejectWithdrawalRequest struct {
	Reason string `json:"reason" validate:"required,min=3,max=2000"`
}

type WithdrawalResponse struct {
	Id                      uuid.UUID      `json:"id"`
	TenantId                uuid.UUID      `json:"tenant_id"`
	LandlordId              uuid.UUID      `json:"landlord_id"`
	AgreementConfirmationId uuid.UUID      `json:"agreement_confirmation_id"`
	PaymentId               uuid.UUID      `json:"payment_id"`
	RoomId                  uuid.UUID      `json:"room_id"`
	Amount                  int64          `json:"amount"`
	DeductionAmount         int64          `json:"deduction_amount"`
	DeductionReason         string         `json:"deduction_reason,omitempty"`
	NetAmount               int64          `json:"net_amount"`
	Reason                  string         `json:"reason,omitempty"`
	Bank                    BankDetailsDTO `json:"bank"`
	Status                  string         `json:"status"`
	RejectionReason         string         `json:"rejection_reason,omitempty"`
	PayoutReference         string         `json:"payout_reference,omitempty"`
	PayoutMessage           string         `json:"payout_message,omitempty"`
	ApprovedAt              *time.Time     `json:"approved_at,omitempty"`
	CompletedAt             *time.Time     `json:"completed_at,omitempty"`
	CreatedAt               time.Time      `json:"created_at"`
}

type PayoutReturnResponse struct {
	RspCode string `json:"RspCode"`
	Message string `json:"Message"`
}
