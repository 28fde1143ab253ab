package implementation

import (
	"context"
	"errors"
	"time"

	"rental-marketplace-be/internal/entity"
	"rental-marketplace-be/internal/mapper"
	"rental-marketplace-be/internal/model"
	"rental-marketplace-be/internal/repository/contract"
	"rental-marketplace-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AgreementRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AgreementMapper
}

func NewAgreementRepository(db *gorm.DB) contract.AgreementRepository {
	return &AgreementRepositoryImpl{
		db:     db,
		mapper: mapper.NewAgreementMapper(),
	}
}

func (r *AgreementRepositoryImpl) Create(ctx context.Context, agreement *entity.AgreementConfirmation) error {
	m := r.mapper.ToModel(agreement)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*agreement = *r.mapper.ToEntity(m)
	return nil
}

func (r *AgreementRepositoryImpl) Update(ctx context.Context, agreement *entity.AgreementConfirmation) error {
	m := r.mapper.ToModel(agreement)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*agreement = *r.mapper.ToEntity(m)
	return nil
}

func (r *AgreementRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AgreementConfirmation, error) {
	var m model.AgreementConfirmation
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *AgreementRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AgreementConfirmation, error) {
	var models []*model.AgreementConfirmation
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *AgreementRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.AgreementConfirmation{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *AgreementRepositoryImpl) Transition(ctx context.Context, id uuid.UUID, to entity.AgreementStatus, fields map[string]interface{}) (bool, error) {
	return transitionRow(ctx, r.db, &model.AgreementConfirmation{}, id, "status", string(to), entity.AgreementSources(to), fields)
}

func (r *AgreementRepositoryImpl) TransitionPayment(ctx context.Context, id uuid.UUID, to entity.AgreementPaymentStatus, fields map[string]interface{}) (bool, error) {
	return transitionRow(ctx, r.db, &model.AgreementConfirmation{}, id, "payment_status", string(to), entity.AgreementPaymentSources(to), fields)
}

func (r *AgreementRepositoryImpl) UpdateSignature(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.AgreementConfirmation{}).
		Where("id = ?", id).
		Where("signature_status NOT IN ?", []string{string(entity.SignatureCompleted), string(entity.SignatureDeclined)}).
		Updates(fields)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *AgreementRepositoryImpl) ExpirePending(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.AgreementConfirmation{}).
		Where("status = ? AND expires_at <= ?", string(entity.AgreementPending), now).
		Update("status", string(entity.AgreementExpired))
	return result.RowsAffected, result.Error
}
