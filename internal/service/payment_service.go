package service

import (
	"context"
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"rental-marketplace-be/internal/config"
	"rental-marketplace-be/internal/dto"
	"rental-marketplace-be/internal/entity"
	"rental-marketplace-be/internal/mapper"
	"rental-marketplace-be/internal/pkg/apperror"
	"rental-marketplace-be/internal/pkg/logger"
	"rental-marketplace-be/internal/pkg/mailer"
	"rental-marketplace-be/internal/repository/specification"
	"rental-marketplace-be/internal/repository/unitofwork"
	"rental-marketplace-be/pkg/events"
	"rental-marketplace-be/pkg/gateway/vnpay"
	"rental-marketplace-be/pkg/lock"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

// SnapGateway is the part of the Midtrans Snap client we use.
type SnapGateway interface {
	CreateTransaction(req *snap.Request) (*snap.Response, *midtrans.Error)
}

type IPaymentService interface {
	CreateDepositPayment(ctx context.Context, tenantId uuid.UUID, req *dto.CreateDepositPaymentRequest, ipAddr string) (*dto.CreateDepositPaymentResponse, error)
	// HandleGatewayReturn always returns a result to answer the gateway with,
	// alongside any error.
	HandleGatewayReturn(ctx context.Context, params url.Values) (*dto.IPNResult, error)
	HandleMidtransNotification(ctx context.Context, req *dto.MidtransWebhookRequest) error
	ReconcilePayment(ctx context.Context, paymentId uuid.UUID) (*dto.ReconcileResponse, error)
	GetPayment(ctx context.Context, paymentId, userId uuid.UUID) (*dto.PaymentResponse, error)
}

type paymentService struct {
	uowFactory        unitofwork.RepositoryFactory
	vnpay             *vnpay.Client
	snap              SnapGateway
	midtransServerKey string
	wallet            IWalletService
	contracts         IContractService
	emailService      mailer.IEmailService
	locker            lock.Locker
	events            eventEmitter
	logger            logger.ILogger
	lockTTL           time.Duration
	gatewayTimeout    time.Duration
	now               func() time.Time
}

func NewPaymentService(
	uowFactory unitofwork.RepositoryFactory,
	vnpayClient *vnpay.Client,
	snapGateway SnapGateway,
	wallet IWalletService,
	contracts IContractService,
	emailService mailer.IEmailService,
	locker lock.Locker,
	publisher events.Publisher,
	log logger.ILogger,
	cfg *config.Config,
) IPaymentService {
	return &paymentService{
		uowFactory:        uowFactory,
		vnpay:             vnpayClient,
		snap:              snapGateway,
		midtransServerKey: cfg.Midtrans.ServerKey,
		wallet:            wallet,
		contracts:         contracts,
		emailService:      emailService,
		locker:            locker,
		events:            newEventEmitter(publisher, log),
		logger:            log,
		lockTTL:           cfg.Workflow.CallbackLockTTL,
		gatewayTimeout:    cfg.Workflow.GatewayTimeout,
		now:               time.Now,
	}
}

// newTransactionId builds a gateway correlation id: alphanumeric and
// sortable by creation time.
func newTransactionId(prefix string, now time.Time) (string, error) {
	b := make([]byte, 5)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return prefix + now.Format("060102150405") + strings.ToUpper(hex.EncodeToString(b)), nil
}

func (s *paymentService) CreateDepositPayment(ctx context.Context, tenantId uuid.UUID, req *dto.CreateDepositPaymentRequest, ipAddr string) (*dto.CreateDepositPaymentResponse, error) {
	method := entity.PaymentMethod(req.PaymentMethod)
	if !method.IsValid() {
		return nil, apperror.Validation(fmt.Sprintf("unsupported payment method %q", req.PaymentMethod))
	}

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
	if agreement.Status != entity.AgreementConfirmed {
		return nil, apperror.InvalidState(fmt.Sprintf("agreement is %s, not confirmed", agreement.Status))
	}
	if agreement.PaymentStatus == entity.AgreementPaymentCompleted {
		return nil, apperror.Conflict("deposit has already been paid")
	}
	if req.Amount != agreement.Terms.Deposit {
		return nil, apperror.Validation(fmt.Sprintf("amount must equal the agreed deposit of %d", agreement.Terms.Deposit))
	}

	paid, err := uow.PaymentRepository().Count(ctx,
		specification.ByAgreementID{AgreementID: agreement.Id},
		specification.ByStatus{Status: string(entity.PaymentCompleted)},
	)
	if err != nil {
		return nil, err
	}
	if paid > 0 {
		return nil, apperror.Conflict("deposit has already been paid")
	}

	payment, err := uow.PaymentRepository().FindOne(ctx,
		specification.ByAgreementID{AgreementID: agreement.Id},
		specification.ByPaymentMethod{Method: string(method)},
		specification.ByStatuses{Statuses: []string{string(entity.PaymentPending), string(entity.PaymentProcessing)}},
		specification.NewestFirst{},
	)
	if err != nil {
		return nil, err
	}

	if payment == nil {
		transactionId, err := newTransactionId("DEP", s.now())
		if err != nil {
			return nil, apperror.Internal("failed to generate transaction id", err)
		}
		payment = &entity.Payment{
			TenantId:                agreement.TenantId,
			LandlordId:              agreement.LandlordId,
			RoomId:                  agreement.RoomId,
			AgreementConfirmationId: agreement.Id,
			Purpose:                 entity.PaymentPurposeDeposit,
			Amount:                  agreement.Terms.Deposit,
			PaymentMethod:           method,
			Status:                  entity.PaymentPending,
			TransactionId:           transactionId,
			IpAddress:               ipAddr,
		}
		if err := uow.PaymentRepository().Create(ctx, payment); err != nil {
			return nil, err
		}
		s.logger.Info("PAYMENT", "Deposit payment created", map[string]interface{}{
			"payment_id":     payment.Id,
			"transaction_id": payment.TransactionId,
			"method":         method,
			"amount":         payment.Amount,
		})
	} else {
		s.logger.Info("PAYMENT", "Reusing open deposit payment", map[string]interface{}{
			"payment_id":     payment.Id,
			"transaction_id": payment.TransactionId,
		})
	}

	res := &dto.CreateDepositPaymentResponse{
		PaymentId:     payment.Id,
		TransactionId: payment.TransactionId,
		Status:        string(payment.Status),
		PaymentMethod: string(payment.PaymentMethod),
		Amount:        payment.Amount,
	}

	switch method {
	case entity.PaymentMethodVNPay:
		redirect, err := s.vnpay.BuildPaymentURL(vnpay.PaymentRequest{
			TxnRef:    payment.TransactionId,
			Amount:    payment.Amount,
			OrderInfo: fmt.Sprintf("Deposit for agreement %s", agreement.Id),
			IPAddr:    ipAddr,
		})
		if err != nil {
			return nil, apperror.Internal("failed to build payment url", err)
		}
		res.RedirectURL = redirect

	case entity.PaymentMethodMidtrans:
		if prev := payment.GatewayResponse; prev["redirect_url"] != "" {
			res.RedirectURL = prev["redirect_url"]
			res.SnapToken = prev["token"]
			break
		}
		token, redirect, err := s.createSnapTransaction(ctx, uow, payment)
		if err != nil {
			return nil, err
		}
		res.RedirectURL = redirect
		res.SnapToken = token
	}

	return res, nil
}

func (s *paymentService) createSnapTransaction(ctx context.Context, uow unitofwork.UnitOfWork, payment *entity.Payment) (string, string, error) {
	if s.snap == nil {
		return "", "", apperror.ExternalService("midtrans is not configured", nil)
	}

	tenant, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: payment.TenantId})
	if err != nil {
		return "", "", err
	}

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  payment.TransactionId,
			GrossAmt: payment.Amount,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    payment.AgreementConfirmationId.String(),
				Price: payment.Amount,
				Qty:   1,
				Name:  "Rental deposit",
			},
		},
		EnabledPayments: snap.AllSnapPaymentType,
	}
	if tenant != nil {
		snapReq.CustomerDetail = &midtrans.CustomerDetails{
			FName: tenant.FullName,
			Email: tenant.Email,
			Phone: tenant.Phone,
		}
	}

	snapResp, midErr := s.snap.CreateTransaction(snapReq)
	if midErr != nil {
		s.logger.Error("PAYMENT", "Midtrans transaction failed", map[string]interface{}{
			"payment_id": payment.Id,
			"error":      midErr.GetMessage(),
		})
		return "", "", apperror.ExternalService("midtrans error: "+midErr.GetMessage(), midErr)
	}

	if err := uow.PaymentRepository().UpdateFields(ctx, payment.Id, map[string]interface{}{
		"gateway_response": mapper.EncodeGatewayResponse(map[string]string{
			"token":        snapResp.Token,
			"redirect_url": snapResp.RedirectURL,
		}),
	}); err != nil {
		return "", "", err
	}
	return snapResp.Token, snapResp.RedirectURL, nil
}

// acquireCallbackLock serializes callbacks for one transaction id across
// instances. Replays that arrive together are answered with a retry code.
func (s *paymentService) acquireCallbackLock(ctx context.Context, transactionId string) (func(), error) {
	if s.locker == nil {
		return func() {}, nil
	}
	return s.locker.Acquire(ctx, "payment-callback:"+transactionId, s.lockTTL)
}

func ipn(code string) *dto.IPNResult {
	r := vnpay.NewIPNResponse(code)
	return &dto.IPNResult{RspCode: r.RspCode, Message: r.Message}
}

func (s *paymentService) HandleGatewayReturn(ctx context.Context, params url.Values) (*dto.IPNResult, error) {
	result, err := s.vnpay.VerifyReturn(params)
	if err != nil {
		if errors.Is(err, vnpay.ErrInvalidSignature) {
			s.logger.Warn("PAYMENT", "Rejected gateway callback with invalid signature", map[string]interface{}{
				"txn_ref": params.Get("vnp_TxnRef"),
			})
			return ipn(vnpay.IPNInvalidSignature), apperror.InvalidSignature("invalid callback signature")
		}
		return ipn(vnpay.IPNUnknownError), apperror.Validation(err.Error())
	}

	release, err := s.acquireCallbackLock(ctx, result.TxnRef)
	if err != nil {
		if errors.Is(err, lock.ErrNotAcquired) {
			return ipn(vnpay.IPNUnknownError), apperror.Conflict("callback is already being processed")
		}
		return ipn(vnpay.IPNUnknownError), err
	}
	defer release()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	payment, err := uow.PaymentRepository().FindOne(ctx, specification.ByTransactionID{TransactionID: result.TxnRef})
	if err != nil {
		return ipn(vnpay.IPNUnknownError), err
	}
	if payment == nil || payment.PaymentMethod != entity.PaymentMethodVNPay {
		return ipn(vnpay.IPNOrderNotFound), apperror.NotFound("payment not found")
	}

	s.logger.Info("PAYMENT", "Gateway callback received", map[string]interface{}{
		"payment_id":    payment.Id,
		"status":        payment.Status,
		"response_code": result.ResponseCode,
	})

	if payment.Status.IsTerminal() || payment.Status == entity.PaymentCompleted {
		return ipn(vnpay.IPNAlreadyConfirmed), nil
	}
	if result.Amount != payment.Amount {
		s.logger.Error("PAYMENT", "Gateway amount does not match payment", map[string]interface{}{
			"payment_id": payment.Id,
			"expected":   payment.Amount,
			"received":   result.Amount,
		})
		return ipn(vnpay.IPNInvalidAmount), apperror.Validation("amount mismatch")
	}

	if !result.Success() {
		if err := s.failPayment(ctx, payment, result.TransactionNo, vnpay.ResponseMessage(result.ResponseCode), result.Raw); err != nil {
			return ipn(vnpay.IPNUnknownError), err
		}
		return ipn(vnpay.IPNConfirmed), nil
	}

	applied, err := s.completePayment(ctx, payment, result.TransactionNo, result.Raw)
	if err != nil {
		return ipn(vnpay.IPNUnknownError), err
	}
	if !applied {
		return ipn(vnpay.IPNAlreadyConfirmed), nil
	}
	return ipn(vnpay.IPNConfirmed), nil
}

func midtransSignature(orderId, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderId + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

func parseGrossAmount(v string) (int64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	return int64(math.Round(f)), nil
}

func (s *paymentService) HandleMidtransNotification(ctx context.Context, req *dto.MidtransWebhookRequest) error {
	expected := midtransSignature(req.OrderId, req.StatusCode, req.GrossAmount, s.midtransServerKey)
	if s.midtransServerKey == "" || subtle.ConstantTimeCompare([]byte(expected), []byte(strings.ToLower(req.SignatureKey))) != 1 {
		s.logger.Warn("PAYMENT", "Rejected Midtrans notification with invalid signature", map[string]interface{}{
			"order_id": req.OrderId,
		})
		return apperror.InvalidSignature("invalid notification signature")
	}

	release, err := s.acquireCallbackLock(ctx, req.OrderId)
	if err != nil {
		if errors.Is(err, lock.ErrNotAcquired) {
			return apperror.Conflict("notification is already being processed")
		}
		return err
	}
	defer release()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	payment, err := uow.PaymentRepository().FindOne(ctx, specification.ByTransactionID{TransactionID: req.OrderId})
	if err != nil {
		return err
	}
	if payment == nil || payment.PaymentMethod != entity.PaymentMethodMidtrans {
		return apperror.NotFound("payment not found")
	}

	s.logger.Info("PAYMENT", "Midtrans notification received", map[string]interface{}{
		"payment_id":         payment.Id,
		"status":             payment.Status,
		"transaction_status": req.TransactionStatus,
	})

	if payment.Status == entity.PaymentCompleted || payment.Status.IsTerminal() {
		return nil
	}

	raw := map[string]string{
		"transaction_status": req.TransactionStatus,
		"status_code":        req.StatusCode,
		"gross_amount":       req.GrossAmount,
		"fraud_status":       req.FraudStatus,
		"payment_type":       req.PaymentType,
		"transaction_id":     req.TransactionId,
		"transaction_time":   req.TransactionTime,
	}

	switch req.TransactionStatus {
	case "capture", "settlement":
		if req.FraudStatus == "challenge" {
			return s.markProcessing(ctx, payment)
		}
		amount, err := parseGrossAmount(req.GrossAmount)
		if err != nil || amount != payment.Amount {
			s.logger.Error("PAYMENT", "Midtrans amount does not match payment", map[string]interface{}{
				"payment_id": payment.Id,
				"expected":   payment.Amount,
				"received":   req.GrossAmount,
			})
			return apperror.Validation("amount mismatch")
		}
		_, err = s.completePayment(ctx, payment, req.TransactionId, raw)
		return err
	case "pending":
		return s.markProcessing(ctx, payment)
	case "deny", "cancel", "expire", "failure":
		return s.failPayment(ctx, payment, req.TransactionId, "Payment "+req.TransactionStatus, raw)
	default:
		s.logger.Warn("PAYMENT", "Unknown Midtrans transaction status", map[string]interface{}{
			"payment_id":         payment.Id,
			"transaction_status": req.TransactionStatus,
		})
		return nil
	}
}

func (s *paymentService) markProcessing(ctx context.Context, payment *entity.Payment) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if _, err := uow.PaymentRepository().Transition(ctx, payment.Id, entity.PaymentProcessing, nil); err != nil {
		return err
	}
	if _, err := uow.AgreementRepository().TransitionPayment(ctx, payment.AgreementConfirmationId, entity.AgreementPaymentProcessing, nil); err != nil {
		return err
	}
	return uow.Commit()
}

// failPayment records a declined payment. Nothing downstream runs.
func (s *paymentService) failPayment(ctx context.Context, payment *entity.Payment, externalId, reason string, raw map[string]string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	ok, err := uow.PaymentRepository().Transition(ctx, payment.Id, entity.PaymentFailed, map[string]interface{}{
		"failure_reason":          reason,
		"external_transaction_id": externalId,
		"gateway_response":        mapper.EncodeGatewayResponse(raw),
	})
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if _, err := uow.AgreementRepository().TransitionPayment(ctx, payment.AgreementConfirmationId, entity.AgreementPaymentFailed, nil); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.logger.Info("PAYMENT", "Payment failed", map[string]interface{}{
		"payment_id": payment.Id,
		"reason":     reason,
	})

	if tenant, err := s.uowFactory.NewUnitOfWork(ctx).UserRepository().FindOne(ctx, specification.ByID{ID: payment.TenantId}); err == nil && tenant != nil {
		if err := s.emailService.SendPaymentFailed(tenant.Email, tenant.FullName, reason); err != nil {
			s.logger.Error("MAILER", "Failed to send payment failed email", map[string]interface{}{
				"payment_id": payment.Id,
				"error":      err.Error(),
			})
		}
	}
	s.events.emit(ctx, EventPaymentFailed, []uuid.UUID{payment.TenantId}, map[string]interface{}{
		"payment_id": payment.Id.String(),
		"reason":     reason,
	})
	return nil
}

// completion is what the post-payment steps did for one payment.
type completion struct {
	agreement *entity.AgreementConfirmation
	effects   dto.ReconcileResponse
	duplicate bool
}

// completePayment marks the payment completed and applies room occupancy,
// agreement status, wallet credit and the request timestamp in one
// transaction. It reports false when another callback got there first.
func (s *paymentService) completePayment(ctx context.Context, payment *entity.Payment, externalId string, raw map[string]string) (bool, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}
	defer uow.Rollback()

	now := s.now()
	ok, err := uow.PaymentRepository().Transition(ctx, payment.Id, entity.PaymentCompleted, map[string]interface{}{
		"external_transaction_id": externalId,
		"gateway_response":        mapper.EncodeGatewayResponse(raw),
		"paid_at":                 now,
	})
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	payment.Status = entity.PaymentCompleted
	payment.ExternalTransactionId = externalId
	payment.PaidAt = &now

	c, err := s.applyCompletionEffects(ctx, uow, payment)
	if err != nil {
		return false, err
	}
	if err := uow.Commit(); err != nil {
		return false, err
	}

	s.logger.Info("PAYMENT", "Payment completed", map[string]interface{}{
		"payment_id":      payment.Id,
		"room_occupied":   c.effects.RoomOccupied,
		"wallet_credited": c.effects.WalletCredited,
		"duplicate":       c.duplicate,
	})
	s.afterCompletion(ctx, payment, c)
	return true, nil
}

// applyCompletionEffects must run inside uow's transaction with the payment
// already completed. Every step is keyed by the payment, so running it again
// for the same payment changes nothing.
func (s *paymentService) applyCompletionEffects(ctx context.Context, uow unitofwork.UnitOfWork, payment *entity.Payment) (*completion, error) {
	agreement, err := uow.AgreementRepository().FindOne(ctx, specification.ByID{ID: payment.AgreementConfirmationId}, specification.ForUpdate{})
	if err != nil {
		return nil, err
	}
	if agreement == nil {
		return nil, apperror.NotFound("agreement not found for payment")
	}
	c := &completion{agreement: agreement, effects: dto.ReconcileResponse{PaymentId: payment.Id}}

	updated, err := uow.AgreementRepository().TransitionPayment(ctx, agreement.Id, entity.AgreementPaymentCompleted, nil)
	if err != nil {
		return nil, err
	}
	if !updated {
		// Already paid: either this payment did it earlier or another one
		// did. Only the first payment owns the deposit credit.
		credited, err := uow.WalletTransactionRepository().FindOne(ctx,
			specification.Filter("type", string(entity.WalletDepositCredit)),
			specification.Filter("reference_id", payment.Id),
		)
		if err != nil {
			return nil, err
		}
		if credited == nil {
			c.duplicate = true
			s.logger.Error("PAYMENT", "Second completed deposit for a paid agreement, refund required", map[string]interface{}{
				"payment_id":   payment.Id,
				"agreement_id": agreement.Id,
				"amount":       payment.Amount,
			})
			if err := uow.PaymentRepository().UpdateFields(ctx, payment.Id, map[string]interface{}{
				"failure_reason": entity.DuplicateDepositReason,
			}); err != nil {
				return nil, err
			}
			return c, nil
		}
	}
	agreement.PaymentStatus = entity.AgreementPaymentCompleted
	c.effects.AgreementUpdated = updated

	occupied, err := uow.RoomRepository().Occupy(ctx, payment.RoomId, payment.TenantId)
	if err != nil {
		return nil, err
	}
	c.effects.RoomOccupied = occupied
	if !occupied {
		s.logger.Error("PAYMENT", "Room is occupied by another tenant", map[string]interface{}{
			"payment_id": payment.Id,
			"room_id":    payment.RoomId,
		})
	}

	credited, err := s.wallet.Credit(ctx, uow, WalletEntry{
		UserId:      payment.LandlordId,
		Type:        entity.WalletDepositCredit,
		Amount:      payment.Amount,
		ReferenceId: payment.Id,
		Description: fmt.Sprintf("Deposit %s", payment.TransactionId),
	})
	if err != nil {
		return nil, err
	}
	c.effects.WalletCredited = credited

	request, err := uow.RentalRequestRepository().FindOne(ctx, specification.ByID{ID: agreement.RentalRequestId})
	if err != nil {
		return nil, err
	}
	if request != nil && request.PaymentCompletedAt == nil {
		paidAt := s.now()
		if payment.PaidAt != nil {
			paidAt = *payment.PaidAt
		}
		if err := uow.RentalRequestRepository().UpdateFields(ctx, request.Id, map[string]interface{}{
			"payment_completed_at": paidAt,
		}); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// afterCompletion dispatches the contract and notifies. A dispatch failure
// is already recorded on the agreement and queued for retry.
func (s *paymentService) afterCompletion(ctx context.Context, payment *entity.Payment, c *completion) {
	if c.duplicate {
		return
	}

	if c.agreement.SignatureStatus.NeedsDispatch() && s.contracts != nil {
		if err := s.contracts.DispatchForSigning(ctx, c.agreement.Id, payment.Id); err != nil {
			s.logger.Error("PAYMENT", "Contract dispatch after payment failed", map[string]interface{}{
				"payment_id":   payment.Id,
				"agreement_id": c.agreement.Id,
				"error":        err.Error(),
			})
		} else {
			c.effects.ContractSent = true
		}
	}

	if tenant, err := s.uowFactory.NewUnitOfWork(ctx).UserRepository().FindOne(ctx, specification.ByID{ID: payment.TenantId}); err == nil && tenant != nil {
		if err := s.emailService.SendPaymentSuccess(tenant.Email, tenant.FullName, payment.Amount, payment.TransactionId); err != nil {
			s.logger.Error("MAILER", "Failed to send payment success email", map[string]interface{}{
				"payment_id": payment.Id,
				"error":      err.Error(),
			})
		}
	}

	s.events.emit(ctx, EventPaymentCompleted, []uuid.UUID{payment.TenantId, payment.LandlordId}, map[string]interface{}{
		"payment_id":   payment.Id.String(),
		"agreement_id": c.agreement.Id.String(),
		"amount":       payment.Amount,
	})
	if c.effects.WalletCredited {
		s.events.emit(ctx, EventWalletCredited, []uuid.UUID{payment.LandlordId}, map[string]interface{}{
			"amount":     payment.Amount,
			"payment_id": payment.Id.String(),
		})
	}
}

// ReconcilePayment re-applies the post-payment steps for a completed payment.
// It is the recovery path when a step was skipped or failed.
func (s *paymentService) ReconcilePayment(ctx context.Context, paymentId uuid.UUID) (*dto.ReconcileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
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
	if payment.Status != entity.PaymentCompleted {
		return nil, apperror.InvalidState(fmt.Sprintf("payment is %s, not completed", payment.Status))
	}

	c, err := s.applyCompletionEffects(ctx, uow, payment)
	if err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if !c.duplicate && c.agreement.SignatureStatus.NeedsDispatch() && s.contracts != nil {
		if err := s.contracts.RetryDispatch(ctx, c.agreement.Id, payment.Id); err != nil {
			s.logger.Error("PAYMENT", "Contract dispatch during reconcile failed", map[string]interface{}{
				"payment_id": payment.Id,
				"error":      err.Error(),
			})
		} else {
			c.effects.ContractSent = true
		}
	}

	s.logger.Info("PAYMENT", "Payment reconciled", map[string]interface{}{
		"payment_id":        payment.Id,
		"agreement_updated": c.effects.AgreementUpdated,
		"wallet_credited":   c.effects.WalletCredited,
		"contract_sent":     c.effects.ContractSent,
	})
	return &c.effects, nil
}

func (s *paymentService) GetPayment(ctx context.Context, paymentId, userId uuid.UUID) (*dto.PaymentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	payment, err := uow.PaymentRepository().FindOne(ctx, specification.ByID{ID: paymentId})
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperror.NotFound("payment not found")
	}
	if payment.TenantId != userId && payment.LandlordId != userId {
		return nil, apperror.Forbidden("not a party to this payment")
	}
	res := toPaymentResponse(payment)
	return &res, nil
}
