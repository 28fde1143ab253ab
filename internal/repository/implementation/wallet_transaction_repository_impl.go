package implementation

import (
	"context"
	"errors"

	"rental-marketplace-be/internal/entity"
	"rental-marketplace-be/internal/mapper"
	"rental-marketplace-be/internal/model"
	"rental-marketplace-be/internal/repository/contract"
	"rental-marketplace-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WalletTransactionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.WalletMapper
}

func NewWalletTransactionRepository(db *gorm.DB) contract.WalletTransactionRepository {
	return &WalletTransactionRepositoryImpl{
		db:     db,
		mapper: mapper.NewWalletMapper(),
	}
}

func (r *WalletTransactionRepositoryImpl) Insert(ctx context.Context, tx *entity.WalletTransaction) (bool, error) {
	m := r.mapper.ToModel(tx)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "type"}, {Name: "reference_id"}},
			DoNothing: true,
		}).
		Create(m)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}
	*tx = *r.mapper.ToEntity(m)
	return true, nil
}

func (r *WalletTransactionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.WalletTransaction, error) {
	var m model.WalletTransaction
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *WalletTransactionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.WalletTransaction, error) {
	var models []*model.WalletTransaction
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *WalletTransactionRepositoryImpl) SumByUser(ctx context.Context, userId uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.WalletTransaction{}).
		Where("user_id = ?", userId).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

func (r *WalletTransactionRepositoryImpl) SetBalanceAfter(ctx context.Context, id uuid.UUID, balance int64) error {
	return r.db.WithContext(ctx).Model(&model.WalletTransaction{}).Where("id = ?", id).Update("balance_after", balance).Error
}
