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
)

type TenancyRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TenancyMapper
}

func NewTenancyRepository(db *gorm.DB) contract.TenancyRepository {
	return &TenancyRepositoryImpl{
		db:     db,
		mapper: mapper.NewTenancyMapper(),
	}
}

func (r *TenancyRepositoryImpl) Create(ctx context.Context, tenancy *entity.TenancyAgreement) error {
	m := r.mapper.ToModel(tenancy)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*tenancy = *r.mapper.ToEntity(m)
	return nil
}

func (r *TenancyRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.TenancyAgreement, error) {
	var m model.TenancyAgreement
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *TenancyRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TenancyAgreement, error) {
	var models []*model.TenancyAgreement
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *TenancyRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.TenancyAgreement{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *TenancyRepositoryImpl) Transition(ctx context.Context, id uuid.UUID, to entity.TenancyStatus, fields map[string]interface{}) (bool, error) {
	return transitionRow(ctx, r.db, &model.TenancyAgreement{}, id, "status", string(to), entity.TenancySources(to), fields)
}

func (r *TenancyRepositoryImpl) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.TenancyAgreement{}).Where("id = ?", id).Updates(fields).Error
}
