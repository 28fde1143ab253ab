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

type RentalRequestRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RentalRequestMapper
}

func NewRentalRequestRepository(db *gorm.DB) contract.RentalRequestRepository {
	return &RentalRequestRepositoryImpl{
		db:     db,
		mapper: mapper.NewRentalRequestMapper(),
	}
}

func (r *RentalRequestRepositoryImpl) Create(ctx context.Context, request *entity.RentalRequest) error {
	m := r.mapper.ToModel(request)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*request = *r.mapper.ToEntity(m)
	return nil
}

func (r *RentalRequestRepositoryImpl) Update(ctx context.Context, request *entity.RentalRequest) error {
	m := r.mapper.ToModel(request)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*request = *r.mapper.ToEntity(m)
	return nil
}

func (r *RentalRequestRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.RentalRequest, error) {
	var m model.RentalRequest
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *RentalRequestRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RentalRequest, error) {
	var models []*model.RentalRequest
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *RentalRequestRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.RentalRequest{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *RentalRequestRepositoryImpl) Transition(ctx context.Context, id uuid.UUID, to entity.RentalRequestStatus, fields map[string]interface{}) (bool, error) {
	return transitionRow(ctx, r.db, &model.RentalRequest{}, id, "status", string(to), entity.RentalRequestSources(to), fields)
}

func (r *RentalRequestRepositoryImpl) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.RentalRequest{}).Where("id = ?", id).Updates(fields).Error
}
