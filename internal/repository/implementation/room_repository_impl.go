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

type RoomRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RoomMapper
}

func NewRoomRepository(db *gorm.DB) contract.RoomRepository {
	return &RoomRepositoryImpl{
		db:     db,
		mapper: mapper.NewRoomMapper(),
	}
}

func (r *RoomRepositoryImpl) Create(ctx context.Context, room *entity.Room) error {
	m := r.mapper.ToModel(room)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*room = *r.mapper.ToEntity(m)
	return nil
}

func (r *RoomRepositoryImpl) Update(ctx context.Context, room *entity.Room) error {
	m := r.mapper.ToModel(room)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*room = *r.mapper.ToEntity(m)
	return nil
}

func (r *RoomRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Room, error) {
	var m model.Room
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *RoomRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Room, error) {
	var models []*model.Room
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *RoomRepositoryImpl) CreateAccommodation(ctx context.Context, accommodation *entity.Accommodation) error {
	m := r.mapper.AccommodationToModel(accommodation)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*accommodation = *r.mapper.AccommodationToEntity(m)
	return nil
}

func (r *RoomRepositoryImpl) Occupy(ctx context.Context, roomId, tenantId uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.Room{}).
		Where("id = ?", roomId).
		Where("current_tenant_id IS NULL OR current_tenant_id = ?", tenantId).
		Updates(map[string]interface{}{
			"is_available":      false,
			"current_tenant_id": tenantId,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *RoomRepositoryImpl) Release(ctx context.Context, roomId, tenantId uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Room{}).
		Where("id = ? AND current_tenant_id = ?", roomId, tenantId).
		Updates(map[string]interface{}{
			"is_available":      true,
			"current_tenant_id": nil,
		}).Error
}
