package mapper

import (
	"rental-marketplace-be/internal/entity"
	"rental-marketplace-be/internal/model"
)

type WalletMapper struct{}

func NewWalletMapper() *WalletMapper {
	return &WalletMapper{}
}

func (m *WalletMapper) ToEntity(t *model.WalletTransaction) *entity.WalletTransaction {
	if t == nil {
		return nil
	}
	return &entity.WalletTransaction{
		Id:           t.Id,
		UserId:       t.UserId,
		Type:         entity.WalletTransactionType(t.Type),
		Amount:       t.Amount,
		ReferenceId:  t.ReferenceId,
		BalanceAfter: t.BalanceAfter,
		Description:  t.Description,
		CreatedAt:    t.CreatedAt,
	}
}

func (m *WalletMapper) ToModel(t *entity.WalletTransaction) *model.WalletTransaction {
	if t == nil {
		return nil
	}
	return &model.WalletTransaction{
		Id:           t.Id,
		UserId:       t.UserId,
		Type:         string(t.Type),
		Amount:       t.Amount,
		ReferenceId:  t.ReferenceId,
		BalanceAfter: t.BalanceAfter,
		Description:  t.Description,
		CreatedAt:    t.CreatedAt,
	}
}

func (m *WalletMapper) ToEntities(models []*model.WalletTransaction) []*entity.WalletTransaction {
	entities := make([]*entity.WalletTransaction, len(models))
	for i, item := range models {
		entities[i] = m.ToEntity(item)
	}
	return entities
}
