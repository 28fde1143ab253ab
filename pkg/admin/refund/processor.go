package refund

import (
	"context"
	"time"

	"rental-marketplace-be/internal/dto"
	"rental-marketplace-be/internal/entity"
	"rental-marketplace-be/internal/pkg/apperror"
	"rental-marketplace-be/internal/pkg/logger"
	"rental-marketplace-be/internal/repository/specification"
	"rental-marketplace-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// ApproveResult contains approval operation results
type ApproveResult struct {
	Payment     *entity.Payment
	ProcessedAt time.Time
}

// Processor closes out duplicate deposits. The money goes back out of band;
// this records that it did.
type Processor struct {
	logger logger.ILogger
}

func NewProcessor(logger logger.ILogger) *Processor {
	return &Processor{
		logger: logger,
	}
}

// GetAll lists completed payments flagged as duplicates, oldest first so the
// queue is worked in arrival order.
func (p *Processor) GetAll(ctx context.Context, uow unitofwork.UnitOfWork, page, limit int) ([]*entity.Payment, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	return uow.PaymentRepository().FindAll(ctx,
		specification.ByStatus{Status: string(entity.PaymentCompleted)},
		specification.Filter("failure_reason", entity.DuplicateDepositReason),
		specification.OrderBy{Field: "created_at"},
		specification.Pagination{Limit: limit, Offset: offset},
	)
}

// Approve moves a flagged payment from completed to refunded.
func (p *Processor) Approve(ctx context.Context, uow unitofwork.UnitOfWork, paymentId uuid.UUID, req dto.AdminRefundPaymentRequest) (*ApproveResult, error) {
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	payment, err := uow.PaymentRepository().FindOne(ctx, specification.ByID{ID: paymentId})
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperror.NotFound("payment not found")
	}
	if payment.FailureReason != entity.DuplicateDepositReason {
		return nil, apperror.InvalidState("payment is not flagged for refund")
	}

	now := time.Now()
	updated, err := uow.PaymentRepository().Transition(ctx, payment.Id, entity.PaymentRefunded, nil)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, apperror.InvalidState("payment already processed")
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	p.logger.Info("ADMIN", "Refunded duplicate deposit", map[string]interface{}{
		"payment_id":       payment.Id,
		"agreement_id":     payment.AgreementConfirmationId,
		"amount":           payment.Amount,
		"refund_reference": req.RefundReference,
		"admin_notes":      req.AdminNotes,
	})

	payment.Status = entity.PaymentRefunded
	return &ApproveResult{Payment: payment, ProcessedAt: now}, nil
}
