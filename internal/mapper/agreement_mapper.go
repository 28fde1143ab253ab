package mapper

import (
	"encoding/json"

	"rental-marketplace-be/internal/entity"
	"rental-marketplace-be/internal/model"

	"gorm.io/datatypes"
)

type AgreementMapper struct{}

func NewAgreementMapper() *AgreementMapper {
	return &AgreementMapper{}
}

func (m *AgreementMapper) ToEntity(a *model.AgreementConfirmation) *entity.AgreementConfirmation {
	if a == nil {
		return nil
	}
	return &entity.AgreementConfirmation{
		Id:              a.Id,
		RentalRequestId: a.RentalRequestId,
		TenantId:        a.TenantId,
		LandlordId:      a.LandlordId,
		RoomId:          a.RoomId,
		Token:           a.Token,
		Terms: entity.AgreementTerms{
			StartDate:       a.StartDate,
			EndDate:         a.EndDate,
			MonthlyRent:     a.MonthlyRent,
			Deposit:         a.Deposit,
			ElectricityRate: a.ElectricityRate,
			WaterRate:       a.WaterRate,
			AdditionalFees:  decodeFees(a.AdditionalFees),
			Notes:           a.Notes,
		},
		Status:          entity.AgreementStatus(a.Status),
		SignatureStatus: entity.SignatureStatus(a.SignatureStatus),
		PaymentStatus:   entity.AgreementPaymentStatus(a.PaymentStatus),
		RejectionReason: a.RejectionReason,
		DocumentId:      a.DocumentId,
		SignedDocument:  a.SignedDocument,
		ExpiresAt:       a.ExpiresAt,
		ConfirmedAt:     a.ConfirmedAt,
		RejectedAt:      a.RejectedAt,
		SignatureSentAt: a.SignatureSentAt,
		SignedAt:        a.SignedAt,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func (m *AgreementMapper) ToModel(a *entity.AgreementConfirmation) *model.AgreementConfirmation {
	if a == nil {
		return nil
	}
	return &model.AgreementConfirmation{
		Id:              a.Id,
		RentalRequestId: a.RentalRequestId,
		TenantId:        a.TenantId,
		LandlordId:      a.LandlordId,
		RoomId:          a.RoomId,
		Token:           a.Token,
		StartDate:       a.Terms.StartDate,
		EndDate:         a.Terms.EndDate,
		MonthlyRent:     a.Terms.MonthlyRent,
		Deposit:         a.Terms.Deposit,
		ElectricityRate: a.Terms.ElectricityRate,
		WaterRate:       a.Terms.WaterRate,
		AdditionalFees:  encodeFees(a.Terms.AdditionalFees),
		Notes:           a.Terms.Notes,
		Status:          string(a.Status),
		SignatureStatus: string(a.SignatureStatus),
		PaymentStatus:   string(a.PaymentStatus),
		RejectionReason: a.RejectionReason,
		DocumentId:      a.DocumentId,
		SignedDocument:  a.SignedDocument,
		ExpiresAt:       a.ExpiresAt,
		ConfirmedAt:     a.ConfirmedAt,
		RejectedAt:      a.RejectedAt,
		SignatureSentAt: a.SignatureSentAt,
		SignedAt:        a.SignedAt,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func (m *AgreementMapper) ToEntities(models []*model.AgreementConfirmation) []*entity.AgreementConfirmation {
	entities := make([]*entity.AgreementConfirmation, len(models))
	for i, item := range models {
		entities[i] = m.ToEntity(item)
	}
	return entities
}

func encodeFees(fees []entity.AdditionalFee) datatypes.JSON {
	if len(fees) == 0 {
		return datatypes.JSON("[]")
	}
	raw, err := json.Marshal(fees)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(raw)
}

func decodeFees(raw datatypes.JSON) []entity.AdditionalFee {
	if len(raw) == 0 {
		return nil
	}
	var fees []entity.AdditionalFee
	if err := json.Unmarshal(raw, &fees); err != nil {
		return nil
	}
	return fees
}
