package dto

import (
	"time"

	"github.com/google/uuid"
)

type AdminDashboardStats struct {
	Agreements         map[string]int64 `json:"agreements"`
	Payments           map[string]int64 `json:"payments"`
	PendingWithdrawals int64            `json:"pending_withdrawals"`
	FailedDispatches   int64            `json:"failed_dispatches"`
	RefundsRequired    int64            `json:"refunds_required"`
	ActiveTenancies    int64            `json:"active_tenancies"`
}

type AdminRefundPaymentRequest struct {
	RefundReference string `json:"refund_reference" validate:"required,max=128"`
	AdminNotes      string `json:"admin_notes" validate:"max=500"`
}

type AdminRefundPaymentResponse struct {
	PaymentId       uuid.UUID `json:"payment_id"`
	Amount          int64     `json:"amount"`
	Status          string    `json:"status"`
	RefundReference string    `json:"refund_reference"`
	ProcessedAt     time.Time `json:"processed_at"`
}
