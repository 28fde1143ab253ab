package contract

import (
	"context"

	"rental-marketplace-be/internal/entity"
	"rental-marketplace-be/internal/repository/specification"

	"github.com/google/uuid"
)

type RoomRepository interface {
	Create(ctx context.Context, room *entity.Room) error
	Update(ctx context.Context, room *entity.Room) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Room, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Room, error)

	CreateAccommodation(ctx context.Context, accommodation *entity.Accommodation) error

	// Occupy marks the room taken by tenantId. It reports false when another
	// tenant already occupies it.
	Occupy(ctx context.Context, roomId, tenantId uuid.UUID) (bool, error)
	Release(ctx context.Context, roomId, tenantId uuid.UUID) error
}
