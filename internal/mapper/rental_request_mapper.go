package mapper

import (
	"rental-marketplace-be/internal/entity"
	"rental-marketplace-be/internal/model"
)

type RentalRequestMapper struct{}

func NewRentalRequestMapper() *RentalRequestMapper {
	return &RentalRequestMapper{}
}

func (m *RentalRequestMapper) ToEntity(r *model.RentalRequest) *entity.RentalRequest {
	if r == nil {
		return nil
	}
	return &entity.RentalRequest{
		Id:                      r.Id,
		TenantId:                r.TenantId,
		RoomId:                  r.RoomId,
		LandlordId:              r.LandlordId,
		ProposedStartDate:       r.ProposedStartDate,
		GuestCount:              r.GuestCount,
		Message:                 r.Message,
		ResponseMessage:         r.ResponseMessage,
		Status:                  entity.RentalRequestStatus(r.Status),
		AcceptedAt:              r.AcceptedAt,
		RespondedAt:             r.RespondedAt,
		AgreementConfirmationId: r.AgreementConfirmationId,
		PaymentCompletedAt:      r.PaymentCompletedAt,
		CreatedAt:               r.CreatedAt,
		UpdatedAt:               r.UpdatedAt,
	}
}

func (m *RentalRequestMapper) ToModel(r *entity.RentalRequest) *model.RentalRequest {
	if r == nil {
		return nil
	}
	return &model.RentalRequest{
		Id:                      r.Id,
		TenantId:                r.TenantId,
		RoomId:                  r.RoomId,
		LandlordId:              r.LandlordId,
		ProposedStartDate:       r.ProposedStartDate,
		GuestCount:              r.GuestCount,
		Message:                 r.Message,
		ResponseMessage:         r.ResponseMessage,
		Status:                  string(r.Status),
		AcceptedAt:              r.AcceptedAt,
		RespondedAt:             r.RespondedAt,
		AgreementConfirmationId: r.AgreementConfirmationId,
		PaymentCompletedAt:      r.PaymentCompletedAt,
		CreatedAt:               r.CreatedAt,
		UpdatedAt:               r.UpdatedAt,
	}
}

func (m *RentalRequestMapper) ToEntities(models []*model.RentalRequest) []*entity.RentalRequest {
	entities := make([]*entity.RentalRequest, len(models))
	for i, item := range models {
		entities[i] = m.ToEntity(item)
	}
	return entities
}
