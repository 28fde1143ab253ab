package service

import (
	"context"

	"rental-marketplace-be/internal/dto"
	"rental-marketplace-be/internal/pkg/logger"
	"rental-marketplace-be/internal/repository/unitofwork"
	"rental-marketplace-be/pkg/admin/dashboard"
	"rental-marketplace-be/pkg/admin/refund"
	"rental-marketplace-be/pkg/events"

	"github.com/google/uuid"
)

type IAdminService interface {
	GetDashboardStats(ctx context.Context) (*dto.AdminDashboardStats, error)
	GetPayments(ctx context.Context, page, limit int, status string) ([]dto.PaymentResponse, error)

	// Duplicate deposits waiting for a manual refund
	GetRefundsRequired(ctx context.Context, page, limit int) ([]dto.PaymentResponse, error)
	RefundPayment(ctx context.Context, paymentId uuid.UUID, req dto.AdminRefundPaymentRequest) (*dto.AdminRefundPaymentResponse, error)
}

type adminService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
	events     eventEmitter

	// Domain Components
	refundProcessor     *refund.Processor
	dashboardAggregator *dashboard.Aggregator
}

func NewAdminService(
	uowFactory unitofwork.RepositoryFactory,
	publisher events.Publisher,
	logger logger.ILogger,
	refundProcessor *refund.Processor,
	dashboardAggregator *dashboard.Aggregator,
) IAdminService {
	return &adminService{
		uowFactory:          uowFactory,
		logger:              logger,
		events:              newEventEmitter(publisher, logger),
		refundProcessor:     refundProcessor,
		dashboardAggregator: dashboardAggregator,
	}
}

func (s *adminService) GetDashboardStats(ctx context.Context) (*dto.AdminDashboardStats, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.dashboardAggregator.GetStats(ctx, uow)
}

func (s *adminService) GetPayments(ctx context.Context, page, limit int, status string) ([]dto.PaymentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	payments, err := s.dashboardAggregator.GetPayments(ctx, uow, page, limit, status)
	if err != nil {
		return nil, err
	}
	res := make([]dto.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		res = append(res, toPaymentResponse(p))
	}
	return res, nil
}

func (s *adminService) GetRefundsRequired(ctx context.Context, page, limit int) ([]dto.PaymentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	payments, err := s.refundProcessor.GetAll(ctx, uow, page, limit)
	if err != nil {
		return nil, err
	}
	res := make([]dto.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		res = append(res, toPaymentResponse(p))
	}
	return res, nil
}

func (s *adminService) RefundPayment(ctx context.Context, paymentId uuid.UUID, req dto.AdminRefundPaymentRequest) (*dto.AdminRefundPaymentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	result, err := s.refundProcessor.Approve(ctx, uow, paymentId, req)
	if err != nil {
		return nil, err
	}

	p := result.Payment
	s.events.emit(ctx, EventPaymentRefunded, []uuid.UUID{p.TenantId}, map[string]interface{}{
		"payment_id":       p.Id.String(),
		"agreement_id":     p.AgreementConfirmationId.String(),
		"amount":           p.Amount,
		"refund_reference": req.RefundReference,
	})

	return &dto.AdminRefundPaymentResponse{
		PaymentId:       p.Id,
		Amount:          p.Amount,
		Status:          string(p.Status),
		RefundReference: req.RefundReference,
		ProcessedAt:     result.ProcessedAt,
	}, nil
}
