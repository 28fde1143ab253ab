package contract

import (
	"context"

	"rental-marketplace-be/internal/entity"
	"rental-marketplace-be/internal/repository/specification"

	"github.com/google/uuid"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Notification, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	MarkAsRead(ctx context.Context, id, userId uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userId uuid.UUID) error
}
