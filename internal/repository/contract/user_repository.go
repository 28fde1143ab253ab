package contract

import (
	"context"

	"rental-marketplace-be/internal/entity"
	"rental-marketplace-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// Wallet
	IncrementWallet(ctx context.Context, id uuid.UUID, delta int64) (int64, error)
	DebitWalletIfSufficient(ctx context.Context, id uuid.UUID, amount int64) (int64, bool, error)
	SetWalletBalance(ctx context.Context, id uuid.UUID, balance int64) error
}
