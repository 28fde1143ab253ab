package service

import (
	"context"
	"fmt"
	"time"

	"rental-marketplace-be/internal/dto"
	"rental-marketplace-be/internal/entity"
	"rental-marketplace-be/internal/pkg/apperror"
	"rental-marketplace-be/internal/pkg/logger"
	"rental-marketplace-be/internal/repository/specification"
	"rental-marketplace-be/internal/repository/unitofwork"
	"rental-marketplace-be/pkg/events"

	"github.com/google/uuid"
)

type IRentalRequestService interface {
	Create(ctx context.Context, tenantId uuid.UUID, req *dto.CreateRentalRequestRequest) (*dto.RentalRequestResponse, error)
	Accept(ctx context.Context, requestId, landlordId uuid.UUID, responseMessage string) (*dto.RentalRequestResponse, error)
	Reject(ctx context.Context, requestId, landlordId uuid.UUID, responseMessage string) (*dto.RentalRequestResponse, error)
	Withdraw(ctx context.Context, requestId, tenantId uuid.UUID) (*dto.RentalRequestResponse, error)
	AcceptAndOffer(ctx context.Context, requestId, landlordId uuid.UUID, req *dto.AcceptAndOfferRequest) (*dto.AcceptAndOfferResponse, error)
	Get(ctx context.Context, requestId, userId uuid.UUID) (*dto.RentalRequestResponse, error)
	ListForTenant(ctx context.Context, tenantId uuid.UUID, q dto.ListQuery) (*dto.PagedResponse[dto.RentalRequestResponse], error)
	ListForLandlord(ctx context.Context, landlordId uuid.UUID, q dto.ListQuery) (*dto.PagedResponse[dto.RentalRequestResponse], error)
}

type rentalRequestService struct {
	uowFactory unitofwork.RepositoryFactory
	agreements IAgreementService
	events     eventEmitter
	logger     logger.ILogger
	now        func() time.Time
}

func NewRentalRequestService(
	uowFactory unitofwork.RepositoryFactory,
	agreements IAgreementService,
	publisher events.Publisher,
	log logger.ILogger,
) IRentalRequestService {
	return &rentalRequestService{
		uowFactory: uowFactory,
		agreements: agreements,
		events:     newEventEmitter(publisher, log),
		logger:     log,
		now:        time.Now,
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func (s *rentalRequestService) Create(ctx context.Context, tenantId uuid.UUID, req *dto.CreateRentalRequestRequest) (*dto.RentalRequestResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	room, err := uow.RoomRepository().FindOne(ctx, specification.ByID{ID: req.RoomId})
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, apperror.NotFound("room not found")
	}
	if room.LandlordId == tenantId {
		return nil, apperror.Forbidden("landlords cannot request their own room")
	}
	if !room.IsAvailable || room.CurrentTenantId != nil {
		return nil, apperror.Conflict("room is not available")
	}
	if req.GuestCount < 1 {
		return nil, apperror.Validation("guest count must be at least 1")
	}
	if req.GuestCount > room.Capacity {
		return nil, apperror.Validation(fmt.Sprintf("guest count %d exceeds room capacity %d", req.GuestCount, room.Capacity))
	}
	if req.ProposedStartDate.Before(startOfDay(s.now())) {
		return nil, apperror.Validation("proposed start date is in the past")
	}

	open, err := uow.RentalRequestRepository().Count(ctx,
		specification.TenantOwnedBy{TenantID: tenantId},
		specification.ByRoomID{RoomID: room.Id},
		specification.ByStatuses{Statuses: []string{string(entity.RentalRequestPending), string(entity.RentalRequestAccepted)}},
	)
	if err != nil {
		return nil, err
	}
	if open > 0 {
		return nil, apperror.Conflict("you already have an open request for this room")
	}

	request := &entity.RentalRequest{
		TenantId:          tenantId,
		RoomId:            room.Id,
		LandlordId:        room.LandlordId,
		ProposedStartDate: req.ProposedStartDate,
		GuestCount:        req.GuestCount,
		Message:           req.Message,
		Status:            entity.RentalRequestPending,
	}
	if err := uow.RentalRequestRepository().Create(ctx, request); err != nil {
		return nil, err
	}

	s.logger.Info("RENTAL_REQUEST", "Rental request created", map[string]interface{}{
		"request_id": request.Id,
		"room_id":    room.Id,
		"tenant_id":  tenantId,
	})
	s.events.emit(ctx, EventRentalRequestCreated, []uuid.UUID{room.LandlordId}, map[string]interface{}{
		"request_id": request.Id.String(),
		"room_title": room.Title,
	})

	res := toRentalRequestResponse(request)
	return &res, nil
}

// loadForLandlord and loadForTenant check existence, ownership and that the
// request is still pending, in that order.
func (s *rentalRequestService) loadForLandlord(ctx context.Context, uow unitofwork.UnitOfWork, requestId, landlordId uuid.UUID, specs ...specification.Specification) (*entity.RentalRequest, error) {
	request, err := uow.RentalRequestRepository().FindOne(ctx, append([]specification.Specification{specification.ByID{ID: requestId}}, specs...)...)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, apperror.NotFound("rental request not found")
	}
	if request.LandlordId != landlordId {
		return nil, apperror.Forbidden("only the room's landlord can respond to this request")
	}
	if request.Status != entity.RentalRequestPending {
		return nil, apperror.InvalidState(fmt.Sprintf("rental request is %s", request.Status))
	}
	return request, nil
}

func (s *rentalRequestService) loadForTenant(ctx context.Context, uow unitofwork.UnitOfWork, requestId, tenantId uuid.UUID) (*entity.RentalRequest, error) {
	request, err := uow.RentalRequestRepository().FindOne(ctx, specification.ByID{ID: requestId})
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, apperror.NotFound("rental request not found")
	}
	if request.TenantId != tenantId {
		return nil, apperror.Forbidden("rental request belongs to another tenant")
	}
	if request.Status != entity.RentalRequestPending {
		return nil, apperror.InvalidState(fmt.Sprintf("rental request is %s", request.Status))
	}
	return request, nil
}

// respond applies a landlord decision. The conditional write is what
// serializes concurrent responses: only one of them can leave pending.
func (s *rentalRequestService) respond(ctx context.Context, uow unitofwork.UnitOfWork, request *entity.RentalRequest, to entity.RentalRequestStatus, responseMessage string) error {
	now := s.now()
	fields := map[string]interface{}{
		"response_message": responseMessage,
		"responded_at":     now,
	}
	if to == entity.RentalRequestAccepted {
		fields["accepted_at"] = now
	}

	ok, err := uow.RentalRequestRepository().Transition(ctx, request.Id, to, fields)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.Conflict("rental request was already answered")
	}

	request.Status = to
	request.ResponseMessage = responseMessage
	request.RespondedAt = &now
	if to == entity.RentalRequestAccepted {
		request.AcceptedAt = &now
	}
	return nil
}

func (s *rentalRequestService) Accept(ctx context.Context, requestId, landlordId uuid.UUID, responseMessage string) (*dto.RentalRequestResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	request, err := s.loadForLandlord(ctx, uow, requestId, landlordId)
	if err != nil {
		return nil, err
	}
	if err := s.respond(ctx, uow, request, entity.RentalRequestAccepted, responseMessage); err != nil {
		return nil, err
	}

	s.logger.Info("RENTAL_REQUEST", "Rental request accepted", map[string]interface{}{"request_id": requestId})
	s.events.emit(ctx, EventRentalRequestAccepted, []uuid.UUID{request.TenantId}, map[string]interface{}{
		"request_id": request.Id.String(),
	})

	res := toRentalRequestResponse(request)
	return &res, nil
}

func (s *rentalRequestService) Reject(ctx context.Context, requestId, landlordId uuid.UUID, responseMessage string) (*dto.RentalRequestResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	request, err := s.loadForLandlord(ctx, uow, requestId, landlordId)
	if err != nil {
		return nil, err
	}
	if err := s.respond(ctx, uow, request, entity.RentalRequestRejected, responseMessage); err != nil {
		return nil, err
	}

	s.logger.Info("RENTAL_REQUEST", "Rental request rejected", map[string]interface{}{"request_id": requestId})
	s.events.emit(ctx, EventRentalRequestRejected, []uuid.UUID{request.TenantId}, map[string]interface{}{
		"request_id": request.Id.String(),
		"message":    responseMessage,
	})

	res := toRentalRequestResponse(request)
	return &res, nil
}

func (s *rentalRequestService) Withdraw(ctx context.Context, requestId, tenantId uuid.UUID) (*dto.RentalRequestResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	request, err := s.loadForTenant(ctx, uow, requestId, tenantId)
	if err != nil {
		return nil, err
	}

	ok, err := uow.RentalRequestRepository().Transition(ctx, request.Id, entity.RentalRequestWithdrawn, nil)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.Conflict("rental request was already answered")
	}
	request.Status = entity.RentalRequestWithdrawn

	s.logger.Info("RENTAL_REQUEST", "Rental request withdrawn", map[string]interface{}{"request_id": requestId})
	s.events.emit(ctx, EventRentalRequestWithdrawn, []uuid.UUID{request.LandlordId}, map[string]interface{}{
		"request_id": request.Id.String(),
	})

	res := toRentalRequestResponse(request)
	return &res, nil
}

// AcceptAndOffer accepts the request and creates its agreement atomically, so
// an accepted request never lacks an offer.
func (s *rentalRequestService) AcceptAndOffer(ctx context.Context, requestId, landlordId uuid.UUID, req *dto.AcceptAndOfferRequest) (*dto.AcceptAndOfferResponse, error) {
	if err := validateTerms(req.Terms); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	request, err := s.loadForLandlord(ctx, uow, requestId, landlordId, specification.ForUpdate{})
	if err != nil {
		return nil, err
	}
	if err := s.respond(ctx, uow, request, entity.RentalRequestAccepted, req.ResponseMessage); err != nil {
		return nil, err
	}

	o, err := s.agreements.createOffer(ctx, uow, request, req.Terms)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("RENTAL_REQUEST", "Rental request accepted with offer", map[string]interface{}{
		"request_id":   requestId,
		"agreement_id": o.agreement.Id,
	})
	s.agreements.announceOffer(ctx, o)

	return &dto.AcceptAndOfferResponse{
		Request:   toRentalRequestResponse(request),
		Agreement: toAgreementResponse(o.agreement),
	}, nil
}

func (s *rentalRequestService) Get(ctx context.Context, requestId, userId uuid.UUID) (*dto.RentalRequestResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	request, err := uow.RentalRequestRepository().FindOne(ctx, specification.ByID{ID: requestId})
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, apperror.NotFound("rental request not found")
	}
	if request.TenantId != userId && request.LandlordId != userId {
		return nil, apperror.Forbidden("not a party to this request")
	}
	res := toRentalRequestResponse(request)
	return &res, nil
}

func (s *rentalRequestService) ListForTenant(ctx context.Context, tenantId uuid.UUID, q dto.ListQuery) (*dto.PagedResponse[dto.RentalRequestResponse], error) {
	return s.list(ctx, specification.TenantOwnedBy{TenantID: tenantId}, q)
}

func (s *rentalRequestService) ListForLandlord(ctx context.Context, landlordId uuid.UUID, q dto.ListQuery) (*dto.PagedResponse[dto.RentalRequestResponse], error) {
	return s.list(ctx, specification.LandlordOwnedBy{LandlordID: landlordId}, q)
}

func (s *rentalRequestService) list(ctx context.Context, owner specification.Specification, q dto.ListQuery) (*dto.PagedResponse[dto.RentalRequestResponse], error) {
	q.Normalize()
	uow := s.uowFactory.NewUnitOfWork(ctx)

	filters := []specification.Specification{owner}
	if q.Status != "" {
		filters = append(filters, specification.ByStatus{Status: q.Status})
	}

	total, err := uow.RentalRequestRepository().Count(ctx, filters...)
	if err != nil {
		return nil, err
	}
	requests, err := uow.RentalRequestRepository().FindAll(ctx, append(filters,
		specification.NewestFirst{},
		specification.Pagination{Limit: q.Limit, Offset: q.Offset()},
	)...)
	if err != nil {
		return nil, err
	}

	items := make([]dto.RentalRequestResponse, 0, len(requests))
	for _, r := range requests {
		items = append(items, toRentalRequestResponse(r))
	}
	return &dto.PagedResponse[dto.RentalRequestResponse]{Items: items, Total: total, Page: q.Page, Limit: q.Limit}, nil
}
