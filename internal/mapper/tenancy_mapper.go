package mapper

import (
	"rental-marketplace-be/internal/entity"
	"rental-marketplace-be/internal/model"
)

type TenancyMapper struct{}

func NewTenancyMapper() *TenancyMapper {
	return &TenancyMapper{}
}

func (m *TenancyMapper) ToEntity(t *model.TenancyAgreement) *entity.TenancyAgreement {
	if t == nil {
		return nil
	}
	return &entity.TenancyAgreement{
		Id:                      t.Id,
		AgreementConfirmationId: t.AgreementConfirmationId,
		PaymentId:               t.PaymentId,
		TenantId:                t.TenantId,
		LandlordId:              t.LandlordId,
		RoomId:                  t.RoomId,
		Terms: entity.AgreementTerms{
			StartDate:       t.StartDate,
			EndDate:         t.EndDate,
			MonthlyRent:     t.MonthlyRent,
			Deposit:         t.Deposit,
			ElectricityRate: t.ElectricityRate,
			WaterRate:       t.WaterRate,
			AdditionalFees:  decodeFees(t.AdditionalFees),
			Notes:           t.Notes,
		},
		DocumentId:     t.DocumentId,
		SignedDocument: t.SignedDocument,
		Status:         entity.TenancyStatus(t.Status),
		SignedAt:       t.SignedAt,
		EndedAt:        t.EndedAt,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

func (m *TenancyMapper) ToModel(t *entity.TenancyAgreement) *model.TenancyAgreement {
	if t == nil {
		return nil
	}
	return &model.TenancyAgreement{
		Id:                      t.Id,
		AgreementConfirmationId: t.AgreementConfirmationId,
		PaymentId:               t.PaymentId,
		TenantId:                t.TenantId,
		LandlordId:              t.LandlordId,
		RoomId:                  t.RoomId,
		StartDate:               t.Terms.StartDate,
		EndDate:                 t.Terms.EndDate,
		MonthlyRent:             t.Terms.MonthlyRent,
		Deposit:                 t.Terms.Deposit,
		ElectricityRate:         t.Terms.ElectricityRate,
		WaterRate:               t.Terms.WaterRate,
		AdditionalFees:          encodeFees(t.Terms.AdditionalFees),
		Notes:                   t.Terms.Notes,
		DocumentId:              t.DocumentId,
		SignedDocument:          t.SignedDocument,
		Status:                  string(t.Status),
		SignedAt:                t.SignedAt,
		EndedAt:                 t.EndedAt,
		CreatedAt:               t.CreatedAt,
		UpdatedAt:               t.UpdatedAt,
	}
}

func (m *TenancyMapper) ToEntities(models []*model.TenancyAgreement) []*entity.TenancyAgreement {
	entities := make([]*entity.TenancyAgreement, len(models))
	for i, item := range models {
		entities[i] = m.ToEntity(item)
	}
	return entities
}
