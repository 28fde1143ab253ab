package unitofwork

import (
	"context"

	"rental-marketplace-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	RoomRepository() contract.RoomRepository
	RentalRequestRepository() contract.RentalRequestRepository
	AgreementRepository() contract.AgreementRepository
	PaymentRepository() contract.PaymentRepository
	TenancyRepository() contract.TenancyRepository
	WithdrawalRepository() contract.WithdrawalRepository
	WalletTransactionRepository() contract.WalletTransactionRepository
	NotificationRepository() contract.NotificationRepository
}
