package contract

import (
	"context"

	"rental-marketplace-be/internal/entity"
	"rental-marketplace-be/internal/repository/specification"

	"github.com/google/uuid"
)

type RentalRequestRepository interface {
	Create(ctx context.Context, request *entity.RentalRequest) error
	Update(ctx context.Context, request *entity.RentalRequest) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.RentalRequest, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RentalRequest, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// Transition moves the request to `to` only if its current status may
	// reach it. It reports false when no row matched.
	Transition(ctx context.Context, id uuid.UUID, to entity.RentalRequestStatus, fields map[string]interface{}) (bool, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
}
