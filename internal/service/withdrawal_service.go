package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"rental-marketplace-be/internal/config"
	"rental-marketplace-be/internal/dto"
	"rental-marketplace-be/internal/entity"
	"rental-marketplace-be/internal/pkg/apperror"
	"rental-marketplace-be/internal/pkg/logger"
	"rental-marketplace-be/internal/pkg/mailer"
	"rental-marketplace-be/internal/repository/specification"
	"rental-marketplace-be/internal/repository/unitofwork"
	"rental-marketplace-be/pkg/events"
	"rental-marketplace-be/pkg/gateway/payout"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Acknowledgement codes returned to the payout provider.
const (
	payoutAckConfirmed        = "00"
	payoutAckNotFound         = "01"
	payoutAckAlreadyConfirmed = "02"
	payoutAckInvalidAmount    = "04"
	payoutAckUnknown          = "99"
)

type IWithdrawalService interface {
	Create(ctx context.Context, tenantId uuid.UUID, req *dto.CreateWithdrawalRequest) (*dto.WithdrawalResponse, error)
	Approve(ctx context.Context, withdrawalId, landlordId uuid.UUID, req *dto.ApproveWithdrawalRequest) (*dto.WithdrawalResponse, error)
	Reject(ctx context.Context, withdrawalId, landlordId uuid.UUID, reason string) (*dto.WithdrawalResponse, error)
	Cancel(ctx context.Context, withdrawalId, tenantId uuid.UUID) (*dto.WithdrawalResponse, error)
	HandlePayoutReturn(ctx context.Context, params url.Values) (*dto.PayoutReturnResponse, error)
	Get(ctx context.Context, withdrawalId, userId uuid.UUID) (*dto.WithdrawalResponse, error)
	ListForTenant(ctx context.Context, tenantId uuid.UUID, q dto.ListQuery) (*dto.PagedResponse[dto.WithdrawalResponse], error)
	ListForLandlord(ctx context.Context, landlordId uuid.UUID, q dto.ListQuery) (*dto.PagedResponse[dto.WithdrawalResponse], error)
}

type withdrawalService struct {
	uowFactory     unitofwork.RepositoryFactory
	payout         payout.Gateway
	wallet         IWalletService
	emailService   mailer.IEmailService
	events         eventEmitter
	logger         logger.ILogger
	gatewayTimeout time.Duration
	now            func() time.Time
}

func NewWithdrawalService(
	uowFactory unitofwork.RepositoryFactory,
	payoutGateway payout.Gateway,
	wallet IWalletService,
	emailService mailer.IEmailService,
	publisher events.Publisher,
	log logger.ILogger,
	cfg *config.Config,
) IWithdrawalService {
	return &withdrawalService{
		uowFactory:     uowFactory,
		payout:         payoutGateway,
		wallet:         wallet,
		emailService:   emailService,
		events:         newEventEmitter(publisher, log),
		logger:         log,
		gatewayTimeout: cfg.Workflow.GatewayTimeout,
		now:            time.Now,
	}
}

// holdReference ties the wallet hold of one payout attempt to its release.
func holdReference(withdrawalId uuid.UUID, payoutRef string) uuid.UUID {
	return uuid.NewSHA1(withdrawalId, []byte(payoutRef))
}

func (s *withdrawalService) Create(ctx context.Context, tenantId uuid.UUID, req *dto.CreateWithdrawalRequest) (*dto.WithdrawalResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	agreement, err := uow.AgreementRepository().FindOne(ctx, specification.ByID{ID: req.AgreementConfirmationId})
	if err != nil {
		return nil, err
	}
	if agreement == nil {
		return nil, apperror.NotFound("agreement not found")
	}
	if agreement.TenantId != tenantId {
		return nil, apperror.Forbidden("agreement belongs to another tenant")
	}

	payment, err := uow.PaymentRepository().FindOne(ctx,
		specification.ByAgreementID{AgreementID: agreement.Id},
		specification.ByStatus{Status: string(entity.PaymentCompleted)},
		specification.OrderBy{Field: "paid_at"},
	)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperror.InvalidState("no completed payment for this agreement")
	}
	done, err := uow.WithdrawalRepository().FindAll(ctx,
		specification.Filter("payment_id", payment.Id),
		specification.ByStatus{Status: string(entity.WithdrawalCompleted)},
	)
	if err != nil {
		return nil, err
	}
	refundable := payment.Amount
	for _, w := range done {
		refundable -= w.NetAmount
	}
	if refundable <= 0 {
		return nil, apperror.InvalidState("the deposit has already been refunded")
	}
	if req.Amount <= 0 || req.Amount > refundable {
		return nil, apperror.Validation(fmt.Sprintf("amount must be between 1 and the refundable amount of %d", refundable))
	}

	open, err := uow.WithdrawalRepository().Count(ctx,
		specification.TenantOwnedBy{TenantID: tenantId},
		specification.ByAgreementID{AgreementID: agreement.Id},
		specification.ByStatuses{Statuses: entity.OpenWithdrawalStatuses()},
	)
	if err != nil {
		return nil, err
	}
	if open > 0 {
		return nil, apperror.Conflict("an open withdrawal request already exists for this agreement")
	}

	withdrawal := &entity.WithdrawalRequest{
		TenantId:                tenantId,
		LandlordId:              agreement.LandlordId,
		AgreementConfirmationId: agreement.Id,
		PaymentId:               payment.Id,
		RoomId:                  agreement.RoomId,
		Amount:                  req.Amount,
		Reason:                  req.Reason,
		Bank: entity.BankDetails{
			BankCode:      req.Bank.BankCode,
			BankName:      req.Bank.BankName,
			AccountNumber: req.Bank.AccountNumber,
			AccountHolder: req.Bank.AccountHolder,
		},
		Status: entity.WithdrawalPending,
	}
	if err := uow.WithdrawalRepository().Create(ctx, withdrawal); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("an open withdrawal request already exists for this agreement")
		}
		return nil, err
	}

	s.logger.Info("WITHDRAWAL", "Withdrawal requested", map[string]interface{}{
		"withdrawal_id": withdrawal.Id,
		"tenant_id":     tenantId,
		"amount":        withdrawal.Amount,
	})
	s.events.emit(ctx, EventWithdrawalRequested, []uuid.UUID{withdrawal.LandlordId}, map[string]interface{}{
		"withdrawal_id": withdrawal.Id.String(),
		"amount":        withdrawal.Amount,
	})

	res := toWithdrawalResponse(withdrawal)
	return &res, nil
}

func (s *withdrawalService) findOwned(ctx context.Context, uow unitofwork.UnitOfWork, withdrawalId uuid.UUID, owner func(*entity.WithdrawalRequest) uuid.UUID, userId uuid.UUID) (*entity.WithdrawalRequest, error) {
	withdrawal, err := uow.WithdrawalRepository().FindOne(ctx, specification.ByID{ID: withdrawalId})
	if err != nil {
		return nil, err
	}
	if withdrawal == nil {
		return nil, apperror.NotFound("withdrawal request not found")
	}
	if owner(withdrawal) != userId {
		return nil, apperror.Forbidden("withdrawal request belongs to another user")
	}
	return withdrawal, nil
}

func landlordOf(w *entity.WithdrawalRequest) uuid.UUID { return w.LandlordId }
func tenantOf(w *entity.WithdrawalRequest) uuid.UUID   { return w.TenantId }

func (s *withdrawalService) reload(ctx context.Context, id uuid.UUID) (*dto.WithdrawalResponse, error) {
	withdrawal, err := s.uowFactory.NewUnitOfWork(ctx).WithdrawalRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if withdrawal == nil {
		return nil, apperror.NotFound("withdrawal request not found")
	}
	res := toWithdrawalResponse(withdrawal)
	return &res, nil
}

// Approve holds the net amount on the landlord wallet and starts the payout.
// If the gateway refuses the payout the approval and the hold are undone so
// the landlord can approve again. When the outcome is unknown the request
// stays approved and the return callback decides.
func (s *withdrawalService) Approve(ctx context.Context, withdrawalId, landlordId uuid.UUID, req *dto.ApproveWithdrawalRequest) (*dto.WithdrawalResponse, error) {
	withdrawal, err := s.findOwned(ctx, s.uowFactory.NewUnitOfWork(ctx), withdrawalId, landlordOf, landlordId)
	if err != nil {
		return nil, err
	}
	if withdrawal.Status != entity.WithdrawalPending {
		return nil, apperror.InvalidState(fmt.Sprintf("withdrawal is %s, not pending", withdrawal.Status))
	}
	if req.DeductionAmount < 0 || req.DeductionAmount > withdrawal.Amount {
		return nil, apperror.Validation("deduction must be between 0 and the requested amount")
	}
	net := withdrawal.Amount - req.DeductionAmount
	if net <= 0 {
		return nil, apperror.Validation("net amount after deduction must be positive")
	}

	payoutRef, err := newTransactionId("WD", s.now())
	if err != nil {
		return nil, apperror.Internal("failed to generate payout reference", err)
	}
	holdRef := holdReference(withdrawal.Id, payoutRef)

	if err := s.hold(ctx, withdrawal, net, req, payoutRef, holdRef); err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, s.gatewayTimeout)
	result, err := s.payout.CreatePayout(callCtx, payout.Request{
		TxnRef:        payoutRef,
		Amount:        net,
		BankCode:      withdrawal.Bank.BankCode,
		AccountNumber: withdrawal.Bank.AccountNumber,
		AccountHolder: withdrawal.Bank.AccountHolder,
		Description:   fmt.Sprintf("Deposit refund %s", withdrawal.Id),
	})
	cancel()
	if err == nil && result.Code != payout.CodeSuccess {
		err = fmt.Errorf("%w: code %s: %s", payout.ErrRejected, result.Code, result.Message)
	}
	if err != nil && !payoutRefused(err) {
		// The gateway may have accepted the payout. The hold stays until the
		// return callback settles it.
		s.logger.Warn("WITHDRAWAL", "Payout outcome unknown, waiting for the return callback", map[string]interface{}{
			"withdrawal_id": withdrawal.Id,
			"payout_ref":    payoutRef,
			"error":         err.Error(),
		})
		return s.reload(ctx, withdrawal.Id)
	}
	if err != nil {
		s.logger.Error("WITHDRAWAL", "Payout refused, reverting approval", map[string]interface{}{
			"withdrawal_id": withdrawal.Id,
			"payout_ref":    payoutRef,
			"error":         err.Error(),
		})
		if cerr := s.revertApproval(ctx, withdrawal, net, holdRef); cerr != nil {
			s.logger.Error("WITHDRAWAL", "Failed to revert approval", map[string]interface{}{
				"withdrawal_id": withdrawal.Id,
				"error":         cerr.Error(),
			})
			return nil, cerr
		}
		return nil, apperror.ExternalService("payout could not be started", err)
	}

	if _, err := s.uowFactory.NewUnitOfWork(ctx).WithdrawalRepository().Transition(ctx, withdrawal.Id, entity.WithdrawalProcessing, map[string]interface{}{
		"payout_response_code": result.Code,
		"payout_message":       result.Message,
		"processed_at":         s.now(),
	}); err != nil {
		// The payout is running; its return callback moves the request on.
		s.logger.Error("WITHDRAWAL", "Failed to mark withdrawal processing", map[string]interface{}{
			"withdrawal_id": withdrawal.Id,
			"error":         err.Error(),
		})
	}

	s.logger.Info("WITHDRAWAL", "Withdrawal approved", map[string]interface{}{
		"withdrawal_id":    withdrawal.Id,
		"net_amount":       net,
		"deduction_amount": req.DeductionAmount,
		"payout_ref":       payoutRef,
		"provider_ref":     result.Reference,
	})
	s.events.emit(ctx, EventWithdrawalApproved, []uuid.UUID{withdrawal.TenantId}, map[string]interface{}{
		"withdrawal_id": withdrawal.Id.String(),
		"net_amount":    net,
	})
	return s.reload(ctx, withdrawal.Id)
}

// payoutRefused reports whether the gateway definitely did not start the payout.
func payoutRefused(err error) bool {
	return errors.Is(err, payout.ErrRejected) ||
		errors.Is(err, payout.ErrMissingReference) ||
		errors.Is(err, payout.ErrInvalidAmount)
}

func (s *withdrawalService) hold(ctx context.Context, withdrawal *entity.WithdrawalRequest, net int64, req *dto.ApproveWithdrawalRequest, payoutRef string, holdRef uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	ok, err := uow.WithdrawalRepository().Transition(ctx, withdrawal.Id, entity.WithdrawalApproved, map[string]interface{}{
		"deduction_amount": req.DeductionAmount,
		"deduction_reason": req.DeductionReason,
		"net_amount":       net,
		"payout_reference": payoutRef,
		"approved_at":      s.now(),
	})
	if err != nil {
		return err
	}
	if !ok {
		return apperror.Conflict("withdrawal request was already answered")
	}

	if _, err := s.wallet.Debit(ctx, uow, WalletEntry{
		UserId:      withdrawal.LandlordId,
		Type:        entity.WalletWithdrawalHold,
		Amount:      net,
		ReferenceId: holdRef,
		Description: fmt.Sprintf("Withdrawal %s", payoutRef),
	}); err != nil {
		return err
	}
	return uow.Commit()
}

func (s *withdrawalService) revertApproval(ctx context.Context, withdrawal *entity.WithdrawalRequest, net int64, holdRef uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	ok, err := uow.WithdrawalRepository().Transition(ctx, withdrawal.Id, entity.WithdrawalPending, map[string]interface{}{
		"deduction_amount": 0,
		"deduction_reason": "",
		"net_amount":       0,
		"payout_reference": "",
		"approved_at":      nil,
	})
	if err != nil {
		return err
	}
	if !ok {
		return apperror.Conflict("withdrawal request changed while reverting approval")
	}
	if _, err := s.wallet.Credit(ctx, uow, WalletEntry{
		UserId:      withdrawal.LandlordId,
		Type:        entity.WalletWithdrawalRelease,
		Amount:      net,
		ReferenceId: holdRef,
		Description: "Payout not started",
	}); err != nil {
		return err
	}
	return uow.Commit()
}

func (s *withdrawalService) Reject(ctx context.Context, withdrawalId, landlordId uuid.UUID, reason string) (*dto.WithdrawalResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	withdrawal, err := s.findOwned(ctx, uow, withdrawalId, landlordOf, landlordId)
	if err != nil {
		return nil, err
	}
	if withdrawal.Status != entity.WithdrawalPending {
		return nil, apperror.InvalidState(fmt.Sprintf("withdrawal is %s, not pending", withdrawal.Status))
	}

	ok, err := uow.WithdrawalRepository().Transition(ctx, withdrawal.Id, entity.WithdrawalRejected, map[string]interface{}{
		"rejection_reason": reason,
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.Conflict("withdrawal request was already answered")
	}

	s.logger.Info("WITHDRAWAL", "Withdrawal rejected", map[string]interface{}{
		"withdrawal_id": withdrawal.Id,
	})
	s.notifyTenant(ctx, withdrawal, entity.WithdrawalRejected, 0, reason)
	s.events.emit(ctx, EventWithdrawalRejected, []uuid.UUID{withdrawal.TenantId}, map[string]interface{}{
		"withdrawal_id": withdrawal.Id.String(),
		"reason":        reason,
	})
	return s.reload(ctx, withdrawal.Id)
}

func (s *withdrawalService) Cancel(ctx context.Context, withdrawalId, tenantId uuid.UUID) (*dto.WithdrawalResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	withdrawal, err := s.findOwned(ctx, uow, withdrawalId, tenantOf, tenantId)
	if err != nil {
		return nil, err
	}
	if withdrawal.Status != entity.WithdrawalPending {
		return nil, apperror.InvalidState(fmt.Sprintf("withdrawal is %s, not pending", withdrawal.Status))
	}

	ok, err := uow.WithdrawalRepository().Transition(ctx, withdrawal.Id, entity.WithdrawalCancelled, nil)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.Conflict("withdrawal request was already answered")
	}

	s.logger.Info("WITHDRAWAL", "Withdrawal cancelled", map[string]interface{}{
		"withdrawal_id": withdrawal.Id,
	})
	s.events.emit(ctx, EventWithdrawalCancelled, []uuid.UUID{withdrawal.LandlordId}, map[string]interface{}{
		"withdrawal_id": withdrawal.Id.String(),
	})
	return s.reload(ctx, withdrawal.Id)
}

func payoutAck(code, message string) *dto.PayoutReturnResponse {
	return &dto.PayoutReturnResponse{RspCode: code, Message: message}
}

// HandlePayoutReturn settles a processing withdrawal from the provider's
// callback. A failed payout gives the held amount back to the landlord.
func (s *withdrawalService) HandlePayoutReturn(ctx context.Context, params url.Values) (*dto.PayoutReturnResponse, error) {
	result, err := s.payout.VerifyReturn(params)
	if err != nil {
		if errors.Is(err, payout.ErrInvalidSignature) {
			s.logger.Warn("WITHDRAWAL", "Rejected payout callback with invalid signature", nil)
			return payoutAck(payout.CodeInvalidSignature, "Invalid signature"), apperror.InvalidSignature("invalid callback signature")
		}
		return payoutAck(payoutAckUnknown, "Invalid request"), apperror.Validation(err.Error())
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	withdrawal, err := uow.WithdrawalRepository().FindOne(ctx, specification.ByPayoutReference{Reference: result.TxnRef})
	if err != nil {
		return payoutAck(payoutAckUnknown, "Unknown error"), err
	}
	if withdrawal == nil {
		return payoutAck(payoutAckNotFound, "Withdrawal not found"), apperror.NotFound("withdrawal not found")
	}
	if withdrawal.Status.IsTerminal() {
		return payoutAck(payoutAckAlreadyConfirmed, "Already confirmed"), nil
	}
	if result.Amount != 0 && result.Amount != withdrawal.NetAmount {
		s.logger.Error("WITHDRAWAL", "Payout amount does not match withdrawal", map[string]interface{}{
			"withdrawal_id": withdrawal.Id,
			"expected":      withdrawal.NetAmount,
			"received":      result.Amount,
		})
		return payoutAck(payoutAckInvalidAmount, "Invalid amount"), apperror.Validation("amount mismatch")
	}

	if withdrawal.Status == entity.WithdrawalApproved {
		// The return can beat our own processing write.
		if _, err := uow.WithdrawalRepository().Transition(ctx, withdrawal.Id, entity.WithdrawalProcessing, map[string]interface{}{
			"processed_at": s.now(),
		}); err != nil {
			return payoutAck(payoutAckUnknown, "Unknown error"), err
		}
	}

	message := payout.ResponseMessage(result.ResponseCode)
	if result.Message != "" {
		message = result.Message
	}

	var to entity.WithdrawalStatus
	if result.Success() {
		to = entity.WithdrawalCompleted
		ok, err := uow.WithdrawalRepository().Transition(ctx, withdrawal.Id, to, map[string]interface{}{
			"payout_response_code": result.ResponseCode,
			"payout_message":       message,
			"completed_at":         s.now(),
		})
		if err != nil {
			return payoutAck(payoutAckUnknown, "Unknown error"), err
		}
		if !ok {
			return payoutAck(payoutAckAlreadyConfirmed, "Already confirmed"), nil
		}
	} else {
		to = entity.WithdrawalFailed
		applied, err := s.failPayout(ctx, withdrawal, result.ResponseCode, message)
		if err != nil {
			return payoutAck(payoutAckUnknown, "Unknown error"), err
		}
		if !applied {
			return payoutAck(payoutAckAlreadyConfirmed, "Already confirmed"), nil
		}
	}

	s.logger.Info("WITHDRAWAL", "Payout settled", map[string]interface{}{
		"withdrawal_id": withdrawal.Id,
		"status":        to,
		"response_code": result.ResponseCode,
	})
	s.notifyTenant(ctx, withdrawal, to, withdrawal.NetAmount, message)

	eventType := EventWithdrawalCompleted
	if to == entity.WithdrawalFailed {
		eventType = EventWithdrawalFailed
	}
	s.events.emit(ctx, eventType, []uuid.UUID{withdrawal.TenantId, withdrawal.LandlordId}, map[string]interface{}{
		"withdrawal_id": withdrawal.Id.String(),
		"net_amount":    withdrawal.NetAmount,
		"message":       message,
	})
	return payoutAck(payoutAckConfirmed, "Confirm Success"), nil
}

func (s *withdrawalService) failPayout(ctx context.Context, withdrawal *entity.WithdrawalRequest, code, message string) (bool, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}
	defer uow.Rollback()

	ok, err := uow.WithdrawalRepository().Transition(ctx, withdrawal.Id, entity.WithdrawalFailed, map[string]interface{}{
		"payout_response_code": code,
		"payout_message":       message,
	})
	if err != nil || !ok {
		return false, err
	}
	if _, err := s.wallet.Credit(ctx, uow, WalletEntry{
		UserId:      withdrawal.LandlordId,
		Type:        entity.WalletWithdrawalRelease,
		Amount:      withdrawal.NetAmount,
		ReferenceId: holdReference(withdrawal.Id, withdrawal.PayoutReference),
		Description: "Payout failed: " + message,
	}); err != nil {
		return false, err
	}
	return true, uow.Commit()
}

func (s *withdrawalService) notifyTenant(ctx context.Context, withdrawal *entity.WithdrawalRequest, status entity.WithdrawalStatus, netAmount int64, note string) {
	tenant, err := s.uowFactory.NewUnitOfWork(ctx).UserRepository().FindOne(ctx, specification.ByID{ID: withdrawal.TenantId})
	if err != nil || tenant == nil {
		return
	}
	if err := s.emailService.SendWithdrawalUpdate(tenant.Email, tenant.FullName, string(status), netAmount, note); err != nil {
		s.logger.Error("MAILER", "Failed to send withdrawal update email", map[string]interface{}{
			"withdrawal_id": withdrawal.Id,
			"error":         err.Error(),
		})
	}
}

func (s *withdrawalService) Get(ctx context.Context, withdrawalId, userId uuid.UUID) (*dto.WithdrawalResponse, error) {
	withdrawal, err := s.uowFactory.NewUnitOfWork(ctx).WithdrawalRepository().FindOne(ctx, specification.ByID{ID: withdrawalId})
	if err != nil {
		return nil, err
	}
	if withdrawal == nil {
		return nil, apperror.NotFound("withdrawal request not found")
	}
	if withdrawal.TenantId != userId && withdrawal.LandlordId != userId {
		return nil, apperror.Forbidden("not a party to this withdrawal request")
	}
	res := toWithdrawalResponse(withdrawal)
	return &res, nil
}

func (s *withdrawalService) ListForTenant(ctx context.Context, tenantId uuid.UUID, q dto.ListQuery) (*dto.PagedResponse[dto.WithdrawalResponse], error) {
	return s.list(ctx, specification.TenantOwnedBy{TenantID: tenantId}, q)
}

func (s *withdrawalService) ListForLandlord(ctx context.Context, landlordId uuid.UUID, q dto.ListQuery) (*dto.PagedResponse[dto.WithdrawalResponse], error) {
	return s.list(ctx, specification.LandlordOwnedBy{LandlordID: landlordId}, q)
}

func (s *withdrawalService) list(ctx context.Context, owner specification.Specification, q dto.ListQuery) (*dto.PagedResponse[dto.WithdrawalResponse], error) {
	q.Normalize()
	uow := s.uowFactory.NewUnitOfWork(ctx)

	filters := []specification.Specification{owner}
	if q.Status != "" {
		filters = append(filters, specification.ByStatus{Status: q.Status})
	}
	total, err := uow.WithdrawalRepository().Count(ctx, filters...)
	if err != nil {
		return nil, err
	}
	withdrawals, err := uow.WithdrawalRepository().FindAll(ctx, append(filters,
		specification.NewestFirst{},
		specification.Pagination{Limit: q.Limit, Offset: q.Offset()},
	)...)
	if err != nil {
		return nil, err
	}

	items := make([]dto.WithdrawalResponse, 0, len(withdrawals))
	for _, w := range withdrawals {
		items = append(items, toWithdrawalResponse(w))
	}
	return &dto.PagedResponse[dto.WithdrawalResponse]{Items: items, Total: total, Page: q.Page, Limit: q.Limit}, nil
}
