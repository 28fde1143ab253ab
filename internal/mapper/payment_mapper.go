package mapper

import (
	"encoding/json"

	"rental-marketplace-be/internal/entity"
	"rental-marketplace-be/internal/model"

	"gorm.io/datatypes"
)

type PaymentMapper struct{}

func NewPaymentMapper() *PaymentMapper {
	return &PaymentMapper{}
}

func (m *PaymentMapper) ToEntity(p *model.Payment) *entity.Payment {
	if p == nil {
		return nil
	}
	return &entity.Payment{
		Id:                      p.Id,
		TenantId:                p.TenantId,
		LandlordId:              p.LandlordId,
		RoomId:                  p.RoomId,
		AgreementConfirmationId: p.AgreementConfirmationId,
		Purpose:                 entity.PaymentPurpose(p.Purpose),
		Amount:                  p.Amount,
		PaymentMethod:           entity.PaymentMethod(p.PaymentMethod),
		Status:                  entity.PaymentStatus(p.Status),
		TransactionId:           p.TransactionId,
		ExternalTransactionId:   p.ExternalTransactionId,
		GatewayResponse:         DecodeGatewayResponse(p.GatewayResponse),
		FailureReason:           p.FailureReason,
		IpAddress:               p.IpAddress,
		PaidAt:                  p.PaidAt,
		CreatedAt:               p.CreatedAt,
		UpdatedAt:               p.UpdatedAt,
	}
}

func (m *PaymentMapper) ToModel(p *entity.Payment) *model.Payment {
	if p == nil {
		return nil
	}
	return &model.Payment{
		Id:                      p.Id,
		TenantId:                p.TenantId,
		LandlordId:              p.LandlordId,
		RoomId:                  p.RoomId,
		AgreementConfirmationId: p.AgreementConfirmationId,
		Purpose:                 string(p.Purpose),
		Amount:                  p.Amount,
		PaymentMethod:           string(p.PaymentMethod),
		Status:                  string(p.Status),
		TransactionId:           p.TransactionId,
		ExternalTransactionId:   p.ExternalTransactionId,
		GatewayResponse:         EncodeGatewayResponse(p.GatewayResponse),
		FailureReason:           p.FailureReason,
		IpAddress:               p.IpAddress,
		PaidAt:                  p.PaidAt,
		CreatedAt:               p.CreatedAt,
		UpdatedAt:               p.UpdatedAt,
	}
}

func (m *PaymentMapper) ToEntities(models []*model.Payment) []*entity.Payment {
	entities := make([]*entity.Payment, len(models))
	for i, item := range models {
		entities[i] = m.ToEntity(item)
	}
	return entities
}

// EncodeGatewayResponse stores the raw callback parameters as a JSON object.
func EncodeGatewayResponse(params map[string]string) datatypes.JSON {
	if len(params) == 0 {
		return nil
	}
	raw, err := json.Marshal(params)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}

func DecodeGatewayResponse(raw datatypes.JSON) map[string]string {
	if len(raw) == 0 {
		return nil
	}
	params := map[string]string{}
	if err := json.Unmarshal(raw, &params); err != nil {
		return nil
	}
	return params
}
