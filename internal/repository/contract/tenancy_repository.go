package contract

import (
	"context"

	"rental-marketplace-be/internal/entity"
	"rental-marketplace-be/internal/repository/specification"

	"github.com/google/uuid"
)

type TenancyRepository interface {
	Create(ctx context.Context, tenancy *entity.TenancyAgreement) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.TenancyAgreement, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TenancyAgreement, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	Transition(ctx context.Context, id uuid.UUID, to entity.TenancyStatus, fields map[string]interface{}) (bool, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
}
