package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- Deposit Payment ---

type CreateDepositPaymentRequest struct {
	AgreementConfirmationId uuid.UUID `json:"agreement_confirmation_id" validate:"required"`
	PaymentMethod           string    `json:"payment_method" validate:"required,oneof=vnpay midtrans bank_transfer cash"`
	Amount                  int64     `json:"amount" validate:"required,min=1"`
}

type CreateDepositPaymentResponse struct {
	PaymentId     uuid.UUID `json:"payment_id"`
	TransactionId string    `json:"transaction_id"`
	Status        string    `json:"status"`
	PaymentMethod string    `json:"payment_method"`
	Amount        int64     `json:"amount"`
	RedirectURL   string    `json:"redirect_url,omitempty"`
	SnapToken     string    `json:"snap_token,omitempty"`
}

type PaymentResponse struct {
	Id                      uuid.UUID  `json:"id"`
	AgreementConfirmationId uuid.UUID  `json:"agreement_confirmation_id"`
	TenantId                uuid.UUID  `json:"tenant_id"`
	LandlordId              uuid.UUID  `json:"landlord_id"`
	RoomId                  uuid.UUID  `json:"room_id"`
	Purpose                 string     `json:"purpose"`
	Amount                  int64      `json:"amount"`
	PaymentMethod           string     `json:"payment_method"`
	Status                  string     `json:"status"`
	TransactionId           string     `json:"transaction_id"`
	ExternalTransactionId   string     `json:"external_transaction_id,omitempty"`
	FailureReason           string     `json:"failure_reason,omitempty"`
	PaidAt                  *time.Time `json:"paid_at,omitempty"`
	CreatedAt               time.Time  `json:"created_at"`
}

// --- Gateway callbacks ---

// IPNResult answers the gateway in its own vocabulary.
type IPNResult struct {
	RspCode string `json:"RspCode"`
	Message string `json:"Message"`
}

type MidtransWebhookRequest struct {
	TransactionStatus string `json:"transaction_status"`
	OrderId           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	FraudStatus       string `json:"fraud_status"`
	PaymentType       string `json:"payment_type"`
	TransactionId     string `json:"transaction_id"`
	TransactionTime   string `json:"transaction_time"`
}

type ReconcileResponse struct {
	PaymentId        uuid.UUID `json:"payment_id"`
	RoomOccupied     bool      `json:"room_occupied"`
	AgreementUpdated bool      `json:"agreement_updated"`
	WalletCredited   bool      `json:"wallet_credited"`
	ContractSent     bool      `json:"contract_sent"`
}
