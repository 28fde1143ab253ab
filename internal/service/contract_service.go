package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"rental-marketplace-be/internal/config"
	"rental-marketplace-be/internal/dto"
	"rental-marketplace-be/internal/entity"
	"rental-marketplace-be/internal/pkg/apperror"
	"rental-marketplace-be/internal/pkg/logger"
	"rental-marketplace-be/internal/pkg/mailer"
	"rental-marketplace-be/internal/repository/specification"
	"rental-marketplace-be/internal/repository/unitofwork"
	"rental-marketplace-be/pkg/contractdoc"
	"rental-marketplace-be/pkg/esign"
	"rental-marketplace-be/pkg/events"
	"rental-marketplace-be/pkg/lock"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DispatchQueue takes dispatches that exhausted their inline attempts.
type DispatchQueue interface {
	Enqueue(ctx context.Context, msg dto.ContractDispatchMessage) error
}

type IContractService interface {
	// DispatchForSigning sends the lease to the e-signature provider. On
	// failure the agreement is marked failed and the dispatch is queued.
	DispatchForSigning(ctx context.Context, agreementId, paymentId uuid.UUID) error
	// RetryDispatch is DispatchForSigning without queueing on failure.
	RetryDispatch(ctx context.Context, agreementId, paymentId uuid.UUID) error
	HandleSignatureCallback(ctx context.Context, req *dto.SignatureWebhookRequest) error
	RetryFailedDispatches(ctx context.Context) (*dto.RetryDispatchResponse, error)
	EndTenancy(ctx context.Context, tenancyId, landlordId uuid.UUID, terminated bool) (*dto.TenancyResponse, error)
	GetTenancy(ctx context.Context, tenancyId, userId uuid.UUID) (*dto.TenancyResponse, error)
}

type contractService struct {
	uowFactory   unitofwork.RepositoryFactory
	signer       esign.Client
	renderer     *contractdoc.Renderer
	store        contractdoc.DocumentStore
	emailService mailer.IEmailService
	locker       lock.Locker
	queue        DispatchQueue
	events       eventEmitter
	logger       logger.ILogger
	attempts     int
	backoff      time.Duration
	lockTTL      time.Duration
	hookSecret   string
}

func NewContractService(
	uowFactory unitofwork.RepositoryFactory,
	signer esign.Client,
	store contractdoc.DocumentStore,
	emailService mailer.IEmailService,
	locker lock.Locker,
	queue DispatchQueue,
	publisher events.Publisher,
	log logger.ILogger,
	cfg *config.Config,
) IContractService {
	attempts := cfg.Workflow.DispatchAttempts
	if attempts < 1 {
		attempts = 1
	}
	return &contractService{
		uowFactory:   uowFactory,
		signer:       signer,
		renderer:     contractdoc.NewRenderer(),
		store:        store,
		emailService: emailService,
		locker:       locker,
		queue:        queue,
		events:       newEventEmitter(publisher, log),
		logger:       log,
		attempts:     attempts,
		backoff:      cfg.Workflow.DispatchBackoff,
		lockTTL:      cfg.Workflow.CallbackLockTTL,
		hookSecret:   cfg.ESign.WebhookSecret,
	}
}

func (s *contractService) DispatchForSigning(ctx context.Context, agreementId, paymentId uuid.UUID) error {
	err := s.dispatch(ctx, agreementId, paymentId)
	if err == nil || !apperror.Is(err, apperror.KindExternalService) || s.queue == nil {
		return err
	}

	msg := dto.ContractDispatchMessage{AgreementId: agreementId, PaymentId: paymentId}
	if qerr := s.queue.Enqueue(ctx, msg); qerr != nil {
		s.logger.Error("CONTRACT", "Failed to queue contract dispatch retry", map[string]interface{}{
			"agreement_id": agreementId,
			"error":        qerr.Error(),
		})
	}
	return err
}

func (s *contractService) RetryDispatch(ctx context.Context, agreementId, paymentId uuid.UUID) error {
	return s.dispatch(ctx, agreementId, paymentId)
}

type leaseParties struct {
	agreement *entity.AgreementConfirmation
	payment   *entity.Payment
	tenant    *entity.User
	landlord  *entity.User
	room      *entity.Room
}

func (s *contractService) loadParties(ctx context.Context, agreementId, paymentId uuid.UUID) (*leaseParties, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	p := &leaseParties{}

	var err error
	if p.agreement, err = uow.AgreementRepository().FindOne(ctx, specification.ByID{ID: agreementId}); err != nil {
		return nil, err
	}
	if p.agreement == nil {
		return nil, apperror.NotFound("agreement not found")
	}
	if p.payment, err = uow.PaymentRepository().FindOne(ctx, specification.ByID{ID: paymentId}); err != nil {
		return nil, err
	}
	if p.payment == nil || p.payment.AgreementConfirmationId != agreementId {
		return nil, apperror.NotFound("payment not found for agreement")
	}
	if p.payment.Status != entity.PaymentCompleted {
		return nil, apperror.InvalidState("contract can only be sent for a completed payment")
	}
	if p.tenant, err = uow.UserRepository().FindOne(ctx, specification.ByID{ID: p.agreement.TenantId}); err != nil {
		return nil, err
	}
	if p.landlord, err = uow.UserRepository().FindOne(ctx, specification.ByID{ID: p.agreement.LandlordId}); err != nil {
		return nil, err
	}
	if p.room, err = uow.RoomRepository().FindOne(ctx, specification.ByID{ID: p.agreement.RoomId}); err != nil {
		return nil, err
	}
	if p.tenant == nil || p.landlord == nil || p.room == nil {
		return nil, apperror.NotFound("agreement parties not found")
	}
	return p, nil
}

func (p *leaseParties) lease() contractdoc.Lease {
	a := p.agreement
	fees := make([]contractdoc.Fee, 0, len(a.Terms.AdditionalFees))
	for _, f := range a.Terms.AdditionalFees {
		fees = append(fees, contractdoc.Fee{Name: f.Name, Amount: f.Amount})
	}
	paidAt := p.payment.UpdatedAt
	if p.payment.PaidAt != nil {
		paidAt = *p.payment.PaidAt
	}
	return contractdoc.Lease{
		AgreementID:     a.Id.String(),
		TenantName:      p.tenant.FullName,
		TenantEmail:     p.tenant.Email,
		LandlordName:    p.landlord.FullName,
		RoomTitle:       p.room.Title,
		StartDate:       a.Terms.StartDate,
		EndDate:         a.Terms.EndDate,
		MonthlyRent:     a.Terms.MonthlyRent,
		Deposit:         a.Terms.Deposit,
		ElectricityRate: a.Terms.ElectricityRate,
		WaterRate:       a.Terms.WaterRate,
		Fees:            fees,
		Notes:           a.Terms.Notes,
		PaymentRef:      p.payment.TransactionId,
		PaidAt:          paidAt,
	}
}

// tenantSignatureField is where the tenant signs on the last page of the
// rendered lease.
var tenantSignatureField = esign.FieldPlacement{Page: 1, X: 350, Y: 700, Width: 180, Height: 50}

func (s *contractService) dispatch(ctx context.Context, agreementId, paymentId uuid.UUID) error {
	if s.locker != nil {
		release, err := s.locker.Acquire(ctx, "contract-dispatch:"+agreementId.String(), s.lockTTL)
		if errors.Is(err, lock.ErrNotAcquired) {
			s.logger.Info("CONTRACT", "Dispatch already in progress", map[string]interface{}{"agreement_id": agreementId})
			return nil
		}
		if err != nil {
			return err
		}
		defer release()
	}

	parties, err := s.loadParties(ctx, agreementId, paymentId)
	if err != nil {
		return err
	}
	if !parties.agreement.SignatureStatus.NeedsDispatch() {
		s.logger.Info("CONTRACT", "Contract already dispatched", map[string]interface{}{
			"agreement_id":     agreementId,
			"signature_status": parties.agreement.SignatureStatus,
		})
		return nil
	}

	content, err := s.renderer.Render(parties.lease())
	if err != nil {
		return apperror.Internal("failed to render lease", err)
	}

	doc := esign.Document{
		Title:    fmt.Sprintf("Lease agreement - %s", parties.room.Title),
		FileName: fmt.Sprintf("lease-%s.html", agreementId),
		Content:  content,
		Signer: esign.Signer{
			Name:   parties.tenant.FullName,
			Email:  parties.tenant.Email,
			Fields: []esign.FieldPlacement{tenantSignatureField},
		},
		Reference: agreementId.String(),
	}

	documentId, sendErr := s.sendWithRetry(ctx, doc)
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if sendErr != nil {
		if _, err := uow.AgreementRepository().UpdateSignature(ctx, agreementId, map[string]interface{}{
			"signature_status": string(entity.SignatureFailed),
		}); err != nil {
			s.logger.Error("CONTRACT", "Failed to record dispatch failure", map[string]interface{}{
				"agreement_id": agreementId,
				"error":        err.Error(),
			})
		}
		s.logger.Error("CONTRACT", "Contract dispatch failed, left for retry", map[string]interface{}{
			"agreement_id": agreementId,
			"payment_id":   paymentId,
			"error":        sendErr.Error(),
		})
		s.events.emit(ctx, EventContractDispatchFailed, []uuid.UUID{parties.agreement.LandlordId}, map[string]interface{}{
			"agreement_id": agreementId.String(),
		})
		return apperror.ExternalService("e-signature provider unavailable", sendErr)
	}

	now := time.Now()
	if _, err := uow.AgreementRepository().UpdateSignature(ctx, agreementId, map[string]interface{}{
		"signature_status":  string(entity.SignatureSent),
		"document_id":       documentId,
		"signature_sent_at": now,
	}); err != nil {
		return err
	}

	s.logger.Info("CONTRACT", "Contract sent for signing", map[string]interface{}{
		"agreement_id": agreementId,
		"document_id":  documentId,
	})
	s.events.emit(ctx, EventContractSent, []uuid.UUID{parties.agreement.TenantId}, map[string]interface{}{
		"agreement_id": agreementId.String(),
		"room_title":   parties.room.Title,
	})
	return nil
}

// sendWithRetry makes up to s.attempts calls with a linearly growing pause.
// Only provider unavailability is retried.
func (s *contractService) sendWithRetry(ctx context.Context, doc esign.Document) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= s.attempts; attempt++ {
		documentId, err := s.signer.Send(ctx, doc)
		if err == nil {
			return documentId, nil
		}
		lastErr = err
		s.logger.Warn("CONTRACT", "E-signature send failed", map[string]interface{}{
			"reference": doc.Reference,
			"attempt":   attempt,
			"error":     err.Error(),
		})
		if !esign.IsRetryable(err) || attempt == s.attempts {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(s.backoff * time.Duration(attempt)):
		}
	}
	return "", lastErr
}

func (s *contractService) HandleSignatureCallback(ctx context.Context, req *dto.SignatureWebhookRequest) error {
	if !esign.VerifyWebhook(s.hookSecret, req.DocumentId, req.Status, req.EventType, req.Signature) {
		s.logger.Warn("CONTRACT", "Signature webhook with invalid signature", map[string]interface{}{
			"document_id": req.DocumentId,
			"event_type":  req.EventType,
		})
		return apperror.InvalidSignature("invalid webhook signature")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	agreement, err := uow.AgreementRepository().FindOne(ctx, specification.ByDocumentID{DocumentID: req.DocumentId})
	if err != nil {
		return err
	}
	if agreement == nil {
		return apperror.NotFound("no agreement for document")
	}

	s.logger.Info("CONTRACT", "Signature callback received", map[string]interface{}{
		"agreement_id": agreement.Id,
		"document_id":  req.DocumentId,
		"event_type":   req.EventType,
		"status":       req.Status,
	})

	switch req.EventType {
	case esign.EventCompleted:
		return s.completeSignature(ctx, agreement)
	case esign.EventDeclined:
		ok, err := uow.AgreementRepository().UpdateSignature(ctx, agreement.Id, map[string]interface{}{
			"signature_status": string(entity.SignatureDeclined),
		})
		if err != nil {
			return err
		}
		if ok {
			// Paid but unsigned: needs someone to follow up by hand.
			s.logger.Warn("CONTRACT", "Tenant declined to sign a paid agreement", map[string]interface{}{
				"agreement_id": agreement.Id,
				"tenant_id":    agreement.TenantId,
			})
			s.events.emit(ctx, EventContractDeclined, []uuid.UUID{agreement.TenantId, agreement.LandlordId}, map[string]interface{}{
				"agreement_id": agreement.Id.String(),
			})
		}
		return nil
	default:
		status := req.Status
		if status == "" {
			status = strings.ToLower(req.EventType)
		}
		_, err := uow.AgreementRepository().UpdateSignature(ctx, agreement.Id, map[string]interface{}{
			"signature_status": status,
		})
		return err
	}
}

// completeSignature stores the signed document and creates the tenancy. Every
// step is keyed so a replayed callback finds the work done.
func (s *contractService) completeSignature(ctx context.Context, agreement *entity.AgreementConfirmation) error {
	if agreement.SignatureStatus == entity.SignatureDeclined {
		s.logger.Warn("CONTRACT", "Signature completed after the tenant declined", map[string]interface{}{
			"agreement_id": agreement.Id,
		})
		return apperror.InvalidState("signature was declined")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	payment, err := uow.PaymentRepository().FindOne(ctx,
		specification.ByAgreementID{AgreementID: agreement.Id},
		specification.ByStatus{Status: string(entity.PaymentCompleted)},
		specification.OrderBy{Field: "paid_at", Desc: false},
	)
	if err != nil {
		return err
	}
	if payment == nil {
		s.logger.Error("CONTRACT", "Signature completed without a completed payment", map[string]interface{}{
			"agreement_id": agreement.Id,
		})
		return apperror.InvalidState("agreement has no completed payment")
	}

	existing, err := uow.TenancyRepository().FindOne(ctx, specification.Filter("payment_id", payment.Id))
	if err != nil {
		return err
	}
	if existing != nil && agreement.SignatureStatus == entity.SignatureCompleted {
		s.logger.Info("CONTRACT", "Signature already processed", map[string]interface{}{"agreement_id": agreement.Id})
		return nil
	}

	signedURL := agreement.SignedDocument
	if signedURL == "" {
		pdf, err := s.signer.Download(ctx, agreement.DocumentId)
		if err != nil {
			return apperror.ExternalService("failed to download signed document", err)
		}
		signedURL, err = s.store.Save(ctx, fmt.Sprintf("lease-%s-signed.pdf", agreement.Id), pdf)
		if err != nil {
			return apperror.Internal("failed to store signed document", err)
		}
	}

	now := time.Now()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	updated, err := uow.AgreementRepository().UpdateSignature(ctx, agreement.Id, map[string]interface{}{
		"signature_status": string(entity.SignatureCompleted),
		"signed_at":        now,
		"signed_document":  signedURL,
	})
	if err != nil {
		return err
	}
	// Not updated means the status is final. Only an earlier completion may
	// go on to create the missing tenancy.
	if !updated {
		current, err := uow.AgreementRepository().FindOne(ctx, specification.ByID{ID: agreement.Id})
		if err != nil {
			return err
		}
		if current == nil || current.SignatureStatus != entity.SignatureCompleted {
			return apperror.InvalidState("signature status is final")
		}
	}

	var tenancy *entity.TenancyAgreement
	if existing == nil {
		active, err := uow.TenancyRepository().FindOne(ctx,
			specification.ByRoomID{RoomID: agreement.RoomId},
			specification.ByStatus{Status: string(entity.TenancyActive)},
		)
		if err != nil {
			return err
		}
		if active != nil && active.TenantId != agreement.TenantId {
			s.logger.Error("CONTRACT", "Room already has an active tenancy", map[string]interface{}{
				"agreement_id": agreement.Id,
				"room_id":      agreement.RoomId,
				"tenancy_id":   active.Id,
			})
			return apperror.Conflict("room already has an active tenancy")
		}

		tenancy = &entity.TenancyAgreement{
			AgreementConfirmationId: agreement.Id,
			PaymentId:               payment.Id,
			TenantId:                agreement.TenantId,
			LandlordId:              agreement.LandlordId,
			RoomId:                  agreement.RoomId,
			Terms:                   agreement.Terms,
			DocumentId:              agreement.DocumentId,
			SignedDocument:          signedURL,
			Status:                  entity.TenancyActive,
			SignedAt:                now,
		}
		if err := uow.TenancyRepository().Create(ctx, tenancy); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// A concurrent callback created it first.
				return nil
			}
			return err
		}
	}

	occupied, err := uow.RoomRepository().Occupy(ctx, agreement.RoomId, agreement.TenantId)
	if err != nil {
		return err
	}
	if !occupied {
		s.logger.Error("CONTRACT", "Room is occupied by another tenant", map[string]interface{}{
			"agreement_id": agreement.Id,
			"room_id":      agreement.RoomId,
		})
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	s.logger.Info("CONTRACT", "Contract signed, tenancy active", map[string]interface{}{
		"agreement_id": agreement.Id,
		"payment_id":   payment.Id,
	})
	s.announceSigned(ctx, agreement, signedURL)
	return nil
}

func (s *contractService) announceSigned(ctx context.Context, agreement *entity.AgreementConfirmation, signedURL string) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	tenant, _ := uow.UserRepository().FindOne(ctx, specification.ByID{ID: agreement.TenantId})
	room, _ := uow.RoomRepository().FindOne(ctx, specification.ByID{ID: agreement.RoomId})
	roomTitle := ""
	if room != nil {
		roomTitle = room.Title
	}

	if tenant != nil {
		if err := s.emailService.SendContractSigned(tenant.Email, tenant.FullName, roomTitle, signedURL); err != nil {
			s.logger.Error("MAILER", "Failed to send contract signed email", map[string]interface{}{
				"agreement_id": agreement.Id,
				"error":        err.Error(),
			})
		}
	}
	s.events.emit(ctx, EventContractSigned, []uuid.UUID{agreement.TenantId, agreement.LandlordId}, map[string]interface{}{
		"agreement_id": agreement.Id.String(),
		"room_title":   roomTitle,
	})
}

// RetryFailedDispatches re-sends every paid agreement whose dispatch failed.
func (s *contractService) RetryFailedDispatches(ctx context.Context) (*dto.RetryDispatchResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	agreements, err := uow.AgreementRepository().FindAll(ctx,
		specification.Filter("signature_status", string(entity.SignatureFailed)),
		specification.Filter("payment_status", string(entity.AgreementPaymentCompleted)),
	)
	if err != nil {
		return nil, err
	}

	res := &dto.RetryDispatchResponse{}
	for _, a := range agreements {
		payment, err := uow.PaymentRepository().FindOne(ctx,
			specification.ByAgreementID{AgreementID: a.Id},
			specification.ByStatus{Status: string(entity.PaymentCompleted)},
		)
		if err != nil {
			return nil, err
		}
		if payment == nil {
			continue
		}

		res.Attempted++
		if err := s.dispatch(ctx, a.Id, payment.Id); err != nil {
			res.Failed++
			continue
		}
		res.Sent++
	}

	s.logger.Info("CONTRACT", "Retried failed dispatches", map[string]interface{}{
		"attempted": res.Attempted,
		"sent":      res.Sent,
		"failed":    res.Failed,
	})
	return res, nil
}

// EndTenancy closes an active tenancy and frees the room in one transaction.
func (s *contractService) EndTenancy(ctx context.Context, tenancyId, landlordId uuid.UUID, terminated bool) (*dto.TenancyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	tenancy, err := uow.TenancyRepository().FindOne(ctx, specification.ByID{ID: tenancyId})
	if err != nil {
		return nil, err
	}
	if tenancy == nil {
		return nil, apperror.NotFound("tenancy not found")
	}
	if tenancy.LandlordId != landlordId {
		return nil, apperror.Forbidden("only the landlord can end this tenancy")
	}

	to := entity.TenancyEnded
	if terminated {
		to = entity.TenancyTerminated
	}
	if !tenancy.Status.CanTransitionTo(to) {
		return nil, apperror.InvalidState(fmt.Sprintf("tenancy is %s", tenancy.Status))
	}

	now := time.Now()
	ok, err := uow.TenancyRepository().Transition(ctx, tenancy.Id, to, map[string]interface{}{"ended_at": now})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.Conflict("tenancy was already ended")
	}
	if err := uow.RoomRepository().Release(ctx, tenancy.RoomId, tenancy.TenantId); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	tenancy.Status = to
	tenancy.EndedAt = &now

	s.logger.Info("CONTRACT", "Tenancy ended", map[string]interface{}{
		"tenancy_id": tenancy.Id,
		"status":     to,
	})
	s.events.emit(ctx, EventTenancyEnded, []uuid.UUID{tenancy.TenantId}, map[string]interface{}{
		"tenancy_id": tenancy.Id.String(),
		"status":     string(to),
	})

	res := toTenancyResponse(tenancy)
	return &res, nil
}

func (s *contractService) GetTenancy(ctx context.Context, tenancyId, userId uuid.UUID) (*dto.TenancyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	tenancy, err := uow.TenancyRepository().FindOne(ctx, specification.ByID{ID: tenancyId})
	if err != nil {
		return nil, err
	}
	if tenancy == nil {
		return nil, apperror.NotFound("tenancy not found")
	}
	if tenancy.TenantId != userId && tenancy.LandlordId != userId {
		return nil, apperror.Forbidden("not a party to this tenancy")
	}
	res := toTenancyResponse(tenancy)
	return &res, nil
}
