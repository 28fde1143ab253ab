package implementation_test

import (
	"context"
	"testing"
	"time"

	"rental-marketplace-be/internal/entity"
	"rental-marketplace-be/internal/model"
	"rental-marketplace-be/internal/repository/implementation"
	"rental-marketplace-be/internal/repository/specification"
	"rental-marketplace-be/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgreementRepository_TransitionIsCompareAndSet(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	landlord := testutil.SeedUser(t, db, entity.UserRoleLandlord, "landlord")
	tenant := testutil.SeedUser(t, db, entity.UserRoleTenant, "tenant")
	room := testutil.SeedRoom(t, db, landlord.Id, testutil.DefaultRoom())
	req := testutil.SeedRentalRequest(t, db, tenant.Id, room, entity.RentalRequestAccepted)
	agreement := testutil.SeedAgreement(t, db, req, room, entity.AgreementPending, time.Now().Add(time.Hour))
	repo := implementation.NewAgreementRepository(db)

	ok, err := repo.Transition(ctx, agreement.Id, entity.AgreementConfirmed, map[string]interface{}{"confirmed_at": time.Now()})
	require.NoError(t, err)
	assert.True(t, ok)

	// confirmed has no outgoing edge to rejected.
	ok, err = repo.Transition(ctx, agreement.Id, entity.AgreementRejected, nil)
	require.NoError(t, err)
	assert.False(t, ok)

	stored, err := repo.FindOne(ctx, specification.ByID{ID: agreement.Id})
	require.NoError(t, err)
	assert.Equal(t, entity.AgreementConfirmed, stored.Status)
	assert.NotNil(t, stored.ConfirmedAt)
	assert.Equal(t, room.Deposit, stored.Terms.Deposit)
}

func TestAgreementRepository_ExpirePending(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	landlord := testutil.SeedUser(t, db, entity.UserRoleLandlord, "landlord")
	tenant := testutil.SeedUser(t, db, entity.UserRoleTenant, "tenant")
	room := testutil.SeedRoom(t, db, landlord.Id, testutil.DefaultRoom())

	past := testutil.SeedAgreement(t, db, testutil.SeedRentalRequest(t, db, tenant.Id, room, entity.RentalRequestAccepted), room, entity.AgreementPending, time.Now().Add(-time.Minute))
	future := testutil.SeedAgreement(t, db, testutil.SeedRentalRequest(t, db, tenant.Id, room, entity.RentalRequestAccepted), room, entity.AgreementPending, time.Now().Add(time.Hour))

	repo := implementation.NewAgreementRepository(db)
	n, err := repo.ExpirePending(ctx, time.Now())
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	got, err := repo.FindOne(ctx, specification.ByID{ID: past.Id})
	require.NoError(t, err)
	assert.Equal(t, entity.AgreementExpired, got.Status)
	got, err = repo.FindOne(ctx, specification.ByID{ID: future.Id})
	require.NoError(t, err)
	assert.Equal(t, entity.AgreementPending, got.Status)
}

func TestRoomRepository_OccupyAndRelease(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	landlord := testutil.SeedUser(t, db, entity.UserRoleLandlord, "landlord")
	room := testutil.SeedRoom(t, db, landlord.Id, testutil.DefaultRoom())
	repo := implementation.NewRoomRepository(db)
	first, second := uuid.New(), uuid.New()

	ok, err := repo.Occupy(ctx, room.Id, first)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Occupy(ctx, room.Id, first)
	require.NoError(t, err)
	assert.True(t, ok, "occupying again for the same tenant is a no-op success")

	ok, err = repo.Occupy(ctx, room.Id, second)
	require.NoError(t, err)
	assert.False(t, ok)

	// Releasing for someone else leaves the room alone.
	require.NoError(t, repo.Release(ctx, room.Id, second))
	stored, err := repo.FindOne(ctx, specification.ByID{ID: room.Id})
	require.NoError(t, err)
	require.NotNil(t, stored.CurrentTenantId)
	assert.Equal(t, first, *stored.CurrentTenantId)

	require.NoError(t, repo.Release(ctx, room.Id, first))
	stored, err = repo.FindOne(ctx, specification.ByID{ID: room.Id})
	require.NoError(t, err)
	assert.Nil(t, stored.CurrentTenantId)
	assert.True(t, stored.IsAvailable)
}

func TestWalletTransactionRepository_InsertIsIdempotent(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	user := testutil.SeedUser(t, db, entity.UserRoleLandlord, "landlord")
	repo := implementation.NewWalletTransactionRepository(db)
	ref := uuid.New()

	entry := func() *entity.WalletTransaction {
		return &entity.WalletTransaction{UserId: user.Id, Type: entity.WalletDepositCredit, Amount: 500, ReferenceId: ref}
	}

	inserted, err := repo.Insert(ctx, entry())
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = repo.Insert(ctx, entry())
	require.NoError(t, err)
	assert.False(t, inserted)

	// Same reference, different type: a separate movement.
	inserted, err = repo.Insert(ctx, &entity.WalletTransaction{UserId: user.Id, Type: entity.WalletWithdrawalHold, Amount: -200, ReferenceId: ref})
	require.NoError(t, err)
	assert.True(t, inserted)

	sum, err := repo.SumByUser(ctx, user.Id)
	require.NoError(t, err)
	assert.EqualValues(t, 300, sum)
}

func TestUserRepository_DebitWalletIfSufficient(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	user := testutil.SeedUser(t, db, entity.UserRoleLandlord, "landlord")
	repo := implementation.NewUserRepository(db)

	balance, err := repo.IncrementWallet(ctx, user.Id, 1_000)
	require.NoError(t, err)
	assert.EqualValues(t, 1_000, balance)

	balance, ok, err := repo.DebitWalletIfSufficient(ctx, user.Id, 600)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.EqualValues(t, 400, balance)

	_, ok, err = repo.DebitWalletIfSufficient(ctx, user.Id, 401)
	require.NoError(t, err)
	assert.False(t, ok)

	stored, err := repo.FindOne(ctx, specification.ByID{ID: user.Id})
	require.NoError(t, err)
	assert.EqualValues(t, 400, stored.WalletBalance)
}

func TestPaymentRepository_Specifications(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	landlord := testutil.SeedUser(t, db, entity.UserRoleLandlord, "landlord")
	tenant := testutil.SeedUser(t, db, entity.UserRoleTenant, "tenant")
	room := testutil.SeedRoom(t, db, landlord.Id, testutil.DefaultRoom())
	req := testutil.SeedRentalRequest(t, db, tenant.Id, room, entity.RentalRequestAccepted)
	agreement := testutil.SeedAgreement(t, db, req, room, entity.AgreementConfirmed, time.Now().Add(time.Hour))

	vnpay := testutil.SeedPayment(t, db, agreement, entity.PaymentMethodVNPay, entity.PaymentPending)
	testutil.SeedPayment(t, db, agreement, entity.PaymentMethodMidtrans, entity.PaymentFailed)
	repo := implementation.NewPaymentRepository(db)

	got, err := repo.FindOne(ctx, specification.ByTransactionID{TransactionID: vnpay.TransactionId})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, vnpay.Id, got.Id)

	open, err := repo.Count(ctx,
		specification.ByAgreementID{AgreementID: agreement.Id},
		specification.ByStatuses{Statuses: []string{string(entity.PaymentPending), string(entity.PaymentProcessing)}},
	)
	require.NoError(t, err)
	assert.EqualValues(t, 1, open)

	missing, err := repo.FindOne(ctx, specification.ByTransactionID{TransactionID: "nope"})
	require.NoError(t, err)
	assert.Nil(t, missing)

	ok, err := repo.Transition(ctx, vnpay.Id, entity.PaymentCompleted, nil)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repo.Transition(ctx, vnpay.Id, entity.PaymentFailed, nil)
	require.NoError(t, err)
	assert.False(t, ok, "completed payments never fail")
}

func TestPaymentRepository_NewestFirst(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	landlord := testutil.SeedUser(t, db, entity.UserRoleLandlord, "landlord")
	tenant := testutil.SeedUser(t, db, entity.UserRoleTenant, "tenant")
	room := testutil.SeedRoom(t, db, landlord.Id, testutil.DefaultRoom())
	req := testutil.SeedRentalRequest(t, db, tenant.Id, room, entity.RentalRequestAccepted)
	agreement := testutil.SeedAgreement(t, db, req, room, entity.AgreementConfirmed, time.Now().Add(time.Hour))

	older := testutil.SeedPayment(t, db, agreement, entity.PaymentMethodVNPay, entity.PaymentFailed)
	newer := testutil.SeedPayment(t, db, agreement, entity.PaymentMethodVNPay, entity.PaymentFailed)
	require.NoError(t, db.Model(&model.Payment{}).Where("id = ?", older.Id).Update("created_at", time.Now().Add(-time.Hour)).Error)

	got, err := implementation.NewPaymentRepository(db).FindAll(ctx,
		specification.ByAgreementID{AgreementID: agreement.Id},
		specification.NewestFirst{},
	)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, newer.Id, got[0].Id)
	assert.Equal(t, older.Id, got[1].Id)
}
