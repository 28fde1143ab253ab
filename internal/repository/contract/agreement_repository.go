package contract

import (
	"context"
	"time"

	"rental-marketplace-be/internal/entity"
	"rental-marketplace-be/internal/repository/specification"

	"github.com/google/uuid"
)

type AgreementRepository interface {
	Create(ctx context.Context, agreement *entity.AgreementConfirmation) error
	Update(ctx context.Context, agreement *entity.AgreementConfirmation) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AgreementConfirmation, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AgreementConfirmation, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	Transition(ctx context.Context, id uuid.UUID, to entity.AgreementStatus, fields map[string]interface{}) (bool, error)
	TransitionPayment(ctx context.Context, id uuid.UUID, to entity.AgreementPaymentStatus, fields map[string]interface{}) (bool, error)

	// UpdateSignature writes signature fields unless the signature status is
	// already final.
	UpdateSignature(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (bool, error)

	// ExpirePending flips every pending agreement whose expiry has passed.
	ExpirePending(ctx context.Context, now time.Time) (int64, error)
}
