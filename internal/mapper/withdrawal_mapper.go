package mapper

import (
	"rental-marketplace-be/internal/entity"
	"rental-marketplace-be/internal/model"
)

type WithdrawalMapper struct{}

func NewWithdrawalMapper() *WithdrawalMapper {
	return &WithdrawalMapper{}
}

func (m *WithdrawalMapper) ToEntity(w *model.WithdrawalRequest) *entity.WithdrawalRequest {
	if w == nil {
		return nil
	}
	return &entity.WithdrawalRequest{
		Id:                      w.Id,
		TenantId:                w.TenantId,
		LandlordId:              w.LandlordId,
		AgreementConfirmationId: w.AgreementConfirmationId,
		PaymentId:               w.PaymentId,
		RoomId:                  w.RoomId,
		Amount:                  w.Amount,
		DeductionAmount:         w.DeductionAmount,
		DeductionReason:         w.DeductionReason,
		NetAmount:               w.NetAmount,
		Reason:                  w.Reason,
		Bank: entity.BankDetails{
			BankCode:      w.BankCode,
			BankName:      w.BankName,
			AccountNumber: w.AccountNumber,
			AccountHolder: w.AccountHolder,
		},
		Status:             entity.WithdrawalStatus(w.Status),
		RejectionReason:    w.RejectionReason,
		PayoutReference:    w.PayoutReference,
		PayoutResponseCode: w.PayoutResponseCode,
		PayoutMessage:      w.PayoutMessage,
		ApprovedAt:         w.ApprovedAt,
		ProcessedAt:        w.ProcessedAt,
		CompletedAt:        w.CompletedAt,
		CreatedAt:          w.CreatedAt,
		UpdatedAt:          w.UpdatedAt,
	}
}

func (m *WithdrawalMapper) ToModel(w *entity.WithdrawalRequest) *model.WithdrawalRequest {
	if w == nil {
		return nil
	}
	return &model.WithdrawalRequest{
		Id:                      w.Id,
		TenantId:                w.TenantId,
		LandlordId:              w.LandlordId,
		AgreementConfirmationId: w.AgreementConfirmationId,
		PaymentId:               w.PaymentId,
		RoomId:                  w.RoomId,
		Amount:                  w.Amount,
		DeductionAmount:         w.DeductionAmount,
		DeductionReason:         w.DeductionReason,
		NetAmount:               w.NetAmount,
		Reason:                  w.Reason,
		BankCode:                w.Bank.BankCode,
		BankName:                w.Bank.BankName,
		AccountNumber:           w.Bank.AccountNumber,
		AccountHolder:           w.Bank.AccountHolder,
		Status:                  string(w.Status),
		RejectionReason:         w.RejectionReason,
		PayoutReference:         w.PayoutReference,
		PayoutResponseCode:      w.PayoutResponseCode,
		PayoutMessage:           w.PayoutMessage,
		ApprovedAt:              w.ApprovedAt,
		ProcessedAt:             w.ProcessedAt,
		CompletedAt:             w.CompletedAt,
		CreatedAt:               w.CreatedAt,
		UpdatedAt:               w.UpdatedAt,
	}
}

func (m *WithdrawalMapper) ToEntities(models []*model.WithdrawalRequest) []*entity.WithdrawalRequest {
	entities := make([]*entity.WithdrawalRequest, len(models))
	for i, item := range models {
		entities[i] = m.ToEntity(item)
	}
	return entities
}
