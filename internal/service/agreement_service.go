package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
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
	"rental-marketplace-be/pkg/lock"

	"github.com/google/uuid"
)

const expirySweepLock = "sweep:expire-confirmations"

type IAgreementService interface {
	CreateFromAcceptedRequest(ctx context.Context, rentalRequestId, landlordId uuid.UUID, terms dto.AgreementTermsRequest) (*dto.AgreementResponse, error)
	Preview(ctx context.Context, token string) (*dto.AgreementPreviewResponse, error)
	Confirm(ctx context.Context, token string, tenantId uuid.UUID) (*dto.AgreementResponse, error)
	Reject(ctx context.Context, token string, tenantId uuid.UUID, reason string) (*dto.AgreementResponse, error)
	Get(ctx context.Context, id, userId uuid.UUID) (*dto.AgreementResponse, error)
	ExpireOldConfirmations(ctx context.Context) (int64, error)

	createOffer(ctx context.Context, uow unitofwork.UnitOfWork, request *entity.RentalRequest, terms dto.AgreementTermsRequest) (*offer, error)
	announceOffer(ctx context.Context, o *offer)
}

type agreementService struct {
	uowFactory   unitofwork.RepositoryFactory
	emailService mailer.IEmailService
	locker       lock.Locker
	events       eventEmitter
	logger       logger.ILogger
	clientURL    string
	ttl          time.Duration
	now          func() time.Time
}

func NewAgreementService(
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
	locker lock.Locker,
	publisher events.Publisher,
	log logger.ILogger,
	cfg *config.Config,
) IAgreementService {
	return &agreementService{
		uowFactory:   uowFactory,
		emailService: emailService,
		locker:       locker,
		events:       newEventEmitter(publisher, log),
		logger:       log,
		clientURL:    cfg.App.ClientURL,
		ttl:          cfg.Workflow.ConfirmationTTL,
		now:          time.Now,
	}
}

// offer is an agreement created inside a transaction whose email is sent
// once the transaction commits.
type offer struct {
	agreement *entity.AgreementConfirmation
	tenant    *entity.User
	room      *entity.Room
}

func newConfirmationToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// snapshotTerms freezes the room's rates into the agreement. Values given
// by the landlord win over the room's.
func snapshotTerms(room *entity.Room, req dto.AgreementTermsRequest) entity.AgreementTerms {
	terms := entity.AgreementTerms{
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		MonthlyRent:     req.MonthlyRent,
		Deposit:         req.Deposit,
		ElectricityRate: room.ElectricityRate,
		WaterRate:       room.WaterRate,
		Notes:           req.Notes,
	}
	if req.ElectricityRate != nil {
		terms.ElectricityRate = *req.ElectricityRate
	}
	if req.WaterRate != nil {
		terms.WaterRate = *req.WaterRate
	}

	if len(req.AdditionalFees) > 0 {
		for _, f := range req.AdditionalFees {
			terms.AdditionalFees = append(terms.AdditionalFees, entity.AdditionalFee{Name: f.Name, Amount: f.Amount})
		}
	} else {
		if room.InternetFee > 0 {
			terms.AdditionalFees = append(terms.AdditionalFees, entity.AdditionalFee{Name: "Internet", Amount: room.InternetFee})
		}
		if room.ServiceFee > 0 {
			terms.AdditionalFees = append(terms.AdditionalFees, entity.AdditionalFee{Name: "Service", Amount: room.ServiceFee})
		}
	}
	return terms
}

func validateTerms(req dto.AgreementTermsRequest) error {
	if req.MonthlyRent <= 0 {
		return apperror.Validation("monthly rent must be positive")
	}
	if req.Deposit < 0 {
		return apperror.Validation("deposit must not be negative")
	}
	if req.StartDate.IsZero() {
		return apperror.Validation("start date is required")
	}
	if req.EndDate != nil && !req.EndDate.After(req.StartDate) {
		return apperror.Validation("end date must be after start date")
	}
	return nil
}

// createOffer creates the agreement for an accepted request and links it back
// to the request. It must run inside uow's transaction.
func (s *agreementService) createOffer(ctx context.Context, uow unitofwork.UnitOfWork, request *entity.RentalRequest, terms dto.AgreementTermsRequest) (*offer, error) {
	if err := validateTerms(terms); err != nil {
		return nil, err
	}
	if request.Status != entity.RentalRequestAccepted {
		return nil, apperror.InvalidState(fmt.Sprintf("rental request is %s, not accepted", request.Status))
	}

	if request.AgreementConfirmationId != nil {
		existing, err := uow.AgreementRepository().FindOne(ctx, specification.ByID{ID: *request.AgreementConfirmationId})
		if err != nil {
			return nil, err
		}
		if existing != nil && (existing.Status == entity.AgreementPending || existing.Status == entity.AgreementConfirmed) {
			return nil, apperror.Conflict("an agreement has already been offered for this request")
		}
	}

	room, err := uow.RoomRepository().FindOne(ctx, specification.ByID{ID: request.RoomId})
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, apperror.NotFound("room not found")
	}
	tenant, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: request.TenantId})
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, apperror.NotFound("tenant not found")
	}

	token, err := newConfirmationToken()
	if err != nil {
		return nil, apperror.Internal("failed to generate confirmation token", err)
	}

	agreement := &entity.AgreementConfirmation{
		RentalRequestId: request.Id,
		TenantId:        request.TenantId,
		LandlordId:      request.LandlordId,
		RoomId:          request.RoomId,
		Token:           token,
		Terms:           snapshotTerms(room, terms),
		Status:          entity.AgreementPending,
		SignatureStatus: entity.SignaturePending,
		PaymentStatus:   entity.AgreementPaymentPending,
		ExpiresAt:       s.now().Add(s.ttl),
	}
	if err := uow.AgreementRepository().Create(ctx, agreement); err != nil {
		return nil, err
	}
	if err := uow.RentalRequestRepository().UpdateFields(ctx, request.Id, map[string]interface{}{
		"agreement_confirmation_id": agreement.Id,
	}); err != nil {
		return nil, err
	}
	request.AgreementConfirmationId = &agreement.Id

	return &offer{agreement: agreement, tenant: tenant, room: room}, nil
}

func (s *agreementService) confirmLink(token string) string {
	return fmt.Sprintf("%s/agreements/confirm?token=%s", s.clientURL, url.QueryEscape(token))
}

// announceOffer runs after commit. A failed email leaves the agreement in
// place; the tenant can still reach it from the app.
func (s *agreementService) announceOffer(ctx context.Context, o *offer) {
	a := o.agreement
	if err := s.emailService.SendAgreementConfirmation(o.tenant.Email, o.tenant.FullName, o.room.Title, s.confirmLink(a.Token), a.ExpiresAt); err != nil {
		s.logger.Error("MAILER", "Failed to send agreement confirmation email", map[string]interface{}{
			"agreement_id": a.Id,
			"tenant_id":    a.TenantId,
			"error":        err.Error(),
		})
	}
	s.events.emit(ctx, EventAgreementOffered, []uuid.UUID{a.TenantId}, map[string]interface{}{
		"agreement_id": a.Id.String(),
		"room_title":   o.room.Title,
		"expires_at":   a.ExpiresAt,
	})
	s.logger.Info("AGREEMENT", "Agreement offered", map[string]interface{}{
		"agreement_id":      a.Id,
		"rental_request_id": a.RentalRequestId,
		"expires_at":        a.ExpiresAt,
	})
}

func (s *agreementService) CreateFromAcceptedRequest(ctx context.Context, rentalRequestId, landlordId uuid.UUID, terms dto.AgreementTermsRequest) (*dto.AgreementResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	request, err := uow.RentalRequestRepository().FindOne(ctx, specification.ByID{ID: rentalRequestId}, specification.ForUpdate{})
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, apperror.NotFound("rental request not found")
	}
	if landlordId != uuid.Nil && request.LandlordId != landlordId {
		return nil, apperror.Forbidden("only the room's landlord can offer an agreement")
	}

	o, err := s.createOffer(ctx, uow, request, terms)
	if err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.announceOffer(ctx, o)
	res := toAgreementResponse(o.agreement)
	return &res, nil
}

// findOpenByToken returns the agreement only while it can still be acted on.
func (s *agreementService) findOpenByToken(ctx context.Context, uow unitofwork.UnitOfWork, token string) (*entity.AgreementConfirmation, error) {
	if token == "" {
		return nil, apperror.NotFound("agreement not found or expired")
	}
	agreement, err := uow.AgreementRepository().FindOne(ctx,
		specification.ByToken{Token: token},
		specification.ByStatus{Status: string(entity.AgreementPending)},
	)
	if err != nil {
		return nil, err
	}
	if agreement == nil || agreement.IsExpired(s.now()) {
		return nil, apperror.NotFound("agreement not found or expired")
	}
	return agreement, nil
}

func (s *agreementService) Preview(ctx context.Context, token string) (*dto.AgreementPreviewResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	agreement, err := s.findOpenByToken(ctx, uow, token)
	if err != nil {
		return nil, err
	}

	res := &dto.AgreementPreviewResponse{
		Id:        agreement.Id,
		Terms:     toTermsResponse(agreement.Terms),
		ExpiresAt: agreement.ExpiresAt,
	}
	if room, err := uow.RoomRepository().FindOne(ctx, specification.ByID{ID: agreement.RoomId}); err == nil && room != nil {
		res.RoomTitle = room.Title
	}
	if landlord, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: agreement.LandlordId}); err == nil && landlord != nil {
		res.LandlordName = landlord.FullName
	}
	if tenant, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: agreement.TenantId}); err == nil && tenant != nil {
		res.TenantName = tenant.FullName
	}
	return res, nil
}

func (s *agreementService) Confirm(ctx context.Context, token string, tenantId uuid.UUID) (*dto.AgreementResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	agreement, err := s.findOpenByToken(ctx, uow, token)
	if err != nil {
		return nil, err
	}
	if agreement.TenantId != tenantId {
		return nil, apperror.Forbidden("agreement belongs to another tenant")
	}

	now := s.now()
	ok, err := uow.AgreementRepository().Transition(ctx, agreement.Id, entity.AgreementConfirmed, map[string]interface{}{
		"confirmed_at": now,
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.NotFound("agreement not found or expired")
	}
	agreement.Status = entity.AgreementConfirmed
	agreement.ConfirmedAt = &now

	s.logger.Info("AGREEMENT", "Agreement confirmed", map[string]interface{}{
		"agreement_id": agreement.Id,
		"tenant_id":    tenantId,
	})
	s.events.emit(ctx, EventAgreementConfirmed, []uuid.UUID{agreement.LandlordId}, map[string]interface{}{
		"agreement_id": agreement.Id.String(),
	})

	res := toAgreementResponse(agreement)
	return &res, nil
}

// Reject sends the originating request back to pending in the same
// transaction so the landlord can offer again.
func (s *agreementService) Reject(ctx context.Context, token string, tenantId uuid.UUID, reason string) (*dto.AgreementResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	agreement, err := s.findOpenByToken(ctx, uow, token)
	if err != nil {
		return nil, err
	}
	if agreement.TenantId != tenantId {
		return nil, apperror.Forbidden("agreement belongs to another tenant")
	}

	now := s.now()
	ok, err := uow.AgreementRepository().Transition(ctx, agreement.Id, entity.AgreementRejected, map[string]interface{}{
		"rejection_reason": reason,
		"rejected_at":      now,
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.NotFound("agreement not found or expired")
	}

	ok, err = uow.RentalRequestRepository().Transition(ctx, agreement.RentalRequestId, entity.RentalRequestPending, map[string]interface{}{
		"accepted_at": nil,
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.Conflict("rental request is no longer accepted")
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	agreement.Status = entity.AgreementRejected
	agreement.RejectionReason = reason
	agreement.RejectedAt = &now

	s.logger.Info("AGREEMENT", "Agreement rejected, request reopened", map[string]interface{}{
		"agreement_id":      agreement.Id,
		"rental_request_id": agreement.RentalRequestId,
	})
	s.events.emit(ctx, EventAgreementRejected, []uuid.UUID{agreement.LandlordId}, map[string]interface{}{
		"agreement_id": agreement.Id.String(),
		"reason":       reason,
	})

	res := toAgreementResponse(agreement)
	return &res, nil
}

func (s *agreementService) Get(ctx context.Context, id, userId uuid.UUID) (*dto.AgreementResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	agreement, err := uow.AgreementRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if agreement == nil {
		return nil, apperror.NotFound("agreement not found")
	}
	if agreement.TenantId != userId && agreement.LandlordId != userId {
		return nil, apperror.Forbidden("not a party to this agreement")
	}
	res := toAgreementResponse(agreement)
	return &res, nil
}

// ExpireOldConfirmations is safe to run on any schedule. Overlapping runs are
// skipped rather than queued.
func (s *agreementService) ExpireOldConfirmations(ctx context.Context) (int64, error) {
	if s.locker != nil {
		release, err := s.locker.Acquire(ctx, expirySweepLock, time.Minute)
		if err == lock.ErrNotAcquired {
			s.logger.Info("AGREEMENT", "Expiry sweep already running", nil)
			return 0, nil
		}
		if err != nil {
			return 0, err
		}
		defer release()
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	count, err := uow.AgreementRepository().ExpirePending(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if count > 0 {
		s.logger.Info("AGREEMENT", "Expired stale confirmations", map[string]interface{}{"count": count})
	}
	return count, nil
}
