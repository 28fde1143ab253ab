package contract

import (
	"context"

	"rental-marketplace-be/internal/entity"
	"rental-marketplace-be/internal/repository/specification"

	"github.com/google/uuid"
)

type WalletTransactionRepository interface {
	// Insert records the ledger row. It reports false, without error, when a
	// row with the same type and reference already exists.
	Insert(ctx context.Context, tx *entity.WalletTransaction) (bool, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.WalletTransaction, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.WalletTransaction, error)
	SumByUser(ctx context.Context, userId uuid.UUID) (int64, error)
	SetBalanceAfter(ctx context.Context, id uuid.UUID, balance int64) error
}
