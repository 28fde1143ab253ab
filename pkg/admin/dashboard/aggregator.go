package dashboard

import (
	"context"

	"rental-marketplace-be/internal/dto"
	"rental-marketplace-be/internal/entity"
	"rental-marketplace-be/internal/pkg/logger"
	"rental-marketplace-be/internal/repository/specification"
	"rental-marketplace-be/internal/repository/unitofwork"
)

var agreementStatuses = []entity.AgreementStatus{
	entity.AgreementPending,
	entity.AgreementConfirmed,
	entity.AgreementRejected,
	entity.AgreementExpired,
}

var paymentStatuses = []entity.PaymentStatus{
	entity.PaymentPending,
	entity.PaymentProcessing,
	entity.PaymentCompleted,
	entity.PaymentFailed,
	entity.PaymentCancelled,
	entity.PaymentRefunded,
}

// Aggregator handles dashboard statistics
type Aggregator struct {
	logger logger.ILogger
}

// NewAggregator creates a new dashboard aggregator
func NewAggregator(logger logger.ILogger) *Aggregator {
	return &Aggregator{
		logger: logger,
	}
}

// GetStats counts the rows an operator watches: agreements and payments per
// status, plus the queues that need a person or a retry job.
func (a *Aggregator) GetStats(ctx context.Context, uow unitofwork.UnitOfWork) (*dto.AdminDashboardStats, error) {
	stats := &dto.AdminDashboardStats{
		Agreements: make(map[string]int64, len(agreementStatuses)),
		Payments:   make(map[string]int64, len(paymentStatuses)),
	}

	for _, st := range agreementStatuses {
		n, err := uow.AgreementRepository().Count(ctx, specification.ByStatus{Status: string(st)})
		if err != nil {
			return nil, err
		}
		stats.Agreements[string(st)] = n
	}
	for _, st := range paymentStatuses {
		n, err := uow.PaymentRepository().Count(ctx, specification.ByStatus{Status: string(st)})
		if err != nil {
			return nil, err
		}
		stats.Payments[string(st)] = n
	}

	var err error
	stats.PendingWithdrawals, err = uow.WithdrawalRepository().Count(ctx,
		specification.ByStatus{Status: string(entity.WithdrawalPending)})
	if err != nil {
		return nil, err
	}

	// Paid agreements whose contract never reached the signing provider.
	stats.FailedDispatches, err = uow.AgreementRepository().Count(ctx,
		specification.Filter("payment_status", string(entity.AgreementPaymentCompleted)),
		specification.Filter("signature_status", string(entity.SignatureFailed)),
	)
	if err != nil {
		return nil, err
	}

	stats.RefundsRequired, err = uow.PaymentRepository().Count(ctx,
		specification.ByStatus{Status: string(entity.PaymentCompleted)},
		specification.Filter("failure_reason", entity.DuplicateDepositReason),
	)
	if err != nil {
		return nil, err
	}

	stats.ActiveTenancies, err = uow.TenancyRepository().Count(ctx,
		specification.ByStatus{Status: string(entity.TenancyActive)})
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// GetPayments retrieves paginated payments, newest first
func (a *Aggregator) GetPayments(ctx context.Context, uow unitofwork.UnitOfWork, page, limit int, status string) ([]*entity.Payment, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	var specs []specification.Specification
	if status != "" {
		specs = append(specs, specification.ByStatus{Status: status})
	}
	specs = append(specs, specification.Pagination{Limit: limit, Offset: offset})
	specs = append(specs, specification.OrderBy{Field: "created_at", Desc: true})

	return uow.PaymentRepository().FindAll(ctx, specs...)
}
