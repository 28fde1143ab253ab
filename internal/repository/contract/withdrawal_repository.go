package contract

import (
	"context"

	"rental-marketplace-be/internal/entity"
	"rental-marketplace-be/internal/repository/specification"

	"github.com/google/uuid"
)

type WithdrawalRepository interface {
	Create(ctx context.Context, withdrawal *entity.WithdrawalRequest) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.WithdrawalRequest, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.WithdrawalRequest, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	Transition(ctx context.Context, id uuid.UUID, to entity.WithdrawalStatus, fields map[string]interface{}) (bool, error)
}
