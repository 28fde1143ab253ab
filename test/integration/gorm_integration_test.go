package integration

import (
	"context"
	"errors"
	"log"
	"os"
	"testing"

	"rental-marketplace-be/internal/entity"
	"rental-marketplace-be/internal/repository/specification"
	"rental-marketplace-be/internal/repository/unitofwork"
	"rental-marketplace-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}
	return gormDB
}

func TestGormConnection(t *testing.T) {
	gormDB := openDB(t)
	ctx := context.Background()

	sqlDB, _ := gormDB.DB()
	require.NoError(t, sqlDB.Ping())

	uow := unitofwork.NewRepositoryFactory(gormDB).NewUnitOfWork(ctx)

	// Count implies the table and its columns exist.
	counts := map[string]func() (int64, error){
		"users":               func() (int64, error) { return uow.UserRepository().Count(ctx) },
		"rental_requests":     func() (int64, error) { return uow.RentalRequestRepository().Count(ctx) },
		"agreements":          func() (int64, error) { return uow.AgreementRepository().Count(ctx) },
		"payments":            func() (int64, error) { return uow.PaymentRepository().Count(ctx) },
		"tenancies":           func() (int64, error) { return uow.TenancyRepository().Count(ctx) },
		"withdrawal_requests": func() (int64, error) { return uow.WithdrawalRepository().Count(ctx) },
		"notifications":       func() (int64, error) { return uow.NotificationRepository().Count(ctx) },
	}
	for name, count := range counts {
		t.Run(name, func(t *testing.T) {
			n, err := count()
			assert.NoError(t, err)
			t.Logf("%s count: %d", name, n)
		})
	}
}

func TestWalletRollback(t *testing.T) {
	gormDB := openDB(t)
	ctx := context.Background()
	factory := unitofwork.NewRepositoryFactory(gormDB)

	user := &entity.User{
		Email:    "integration-" + uuid.NewString() + "@example.com",
		FullName: "Integration Landlord",
		Role:     entity.UserRoleLandlord,
	}
	require.NoError(t, factory.NewUnitOfWork(ctx).UserRepository().Create(ctx, user))
	t.Cleanup(func() {
		gormDB.Exec("DELETE FROM wallet_transactions WHERE user_id = ?", user.Id)
		gormDB.Exec("DELETE FROM users WHERE id = ?", user.Id)
	})

	errAbort := errors.New("abort")
	uow := factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.Begin(ctx))
	err := func() error {
		defer uow.Rollback()
		inserted, err := uow.WalletTransactionRepository().Insert(ctx, &entity.WalletTransaction{
			UserId:      user.Id,
			Type:        entity.WalletDepositCredit,
			Amount:      1_000_000,
			ReferenceId: uuid.New(),
		})
		if err != nil || !inserted {
			return err
		}
		if _, err := uow.UserRepository().IncrementWallet(ctx, user.Id, 1_000_000); err != nil {
			return err
		}
		return errAbort
	}()
	require.ErrorIs(t, err, errAbort)

	stored, err := factory.NewUnitOfWork(ctx).UserRepository().FindOne(ctx, specification.ByID{ID: user.Id})
	require.NoError(t, err)
	assert.Zero(t, stored.WalletBalance)

	// The non-negative balance check holds at the database level.
	uow = factory.NewUnitOfWork(ctx)
	_, ok, err := uow.UserRepository().DebitWalletIfSufficient(ctx, user.Id, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}
