package service

import (
	"context"
	"testing"

	"rental-marketplace-be/internal/entity"
	"rental-marketplace-be/internal/pkg/apperror"
	"rental-marketplace-be/internal/repository/unitofwork"
	"rental-marketplace-be/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalletService_CreditIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	svc := NewWalletService(env.factory, env.log)
	ctx := context.Background()
	tenant := testutil.SeedUser(t, env.db, entity.UserRoleTenant, "tenant")

	entry := WalletEntry{
		UserId:      tenant.Id,
		Type:        entity.WalletDepositCredit,
		Amount:      3_000_000,
		ReferenceId: uuid.New(),
	}

	var first, second bool
	require.NoError(t, env.inTx(t, func(uow unitofwork.UnitOfWork) error {
		var err error
		first, err = svc.Credit(ctx, uow, entry)
		return err
	}))
	require.NoError(t, env.inTx(t, func(uow unitofwork.UnitOfWork) error {
		var err error
		second, err = svc.Credit(ctx, uow, entry)
		return err
	}))

	assert.True(t, first)
	assert.False(t, second)
	assert.Equal(t, int64(3_000_000), env.user(t, tenant.Id).WalletBalance)

	txs := env.ledger(t, tenant.Id)
	require.Len(t, txs, 1)
	assert.Equal(t, int64(3_000_000), txs[0].BalanceAfter)
}

func TestWalletService_DebitInsufficientRollsBack(t *testing.T) {
	env := newTestEnv(t)
	svc := NewWalletService(env.factory, env.log)
	ctx := context.Background()
	tenant := testutil.SeedUser(t, env.db, entity.UserRoleTenant, "tenant")

	require.NoError(t, env.inTx(t, func(uow unitofwork.UnitOfWork) error {
		_, err := svc.Credit(ctx, uow, WalletEntry{UserId: tenant.Id, Type: entity.WalletDepositCredit, Amount: 1_000, ReferenceId: uuid.New()})
		return err
	}))

	err := env.inTx(t, func(uow unitofwork.UnitOfWork) error {
		_, err := svc.Debit(ctx, uow, WalletEntry{UserId: tenant.Id, Type: entity.WalletWithdrawalHold, Amount: 5_000, ReferenceId: uuid.New()})
		return err
	})

	assert.True(t, apperror.Is(err, apperror.KindConflict))
	assert.Equal(t, int64(1_000), env.user(t, tenant.Id).WalletBalance)
	assert.Len(t, env.ledger(t, tenant.Id), 1, "the hold row is rolled back with the failed debit")
}

func TestWalletService_DebitThenRelease(t *testing.T) {
	env := newTestEnv(t)
	svc := NewWalletService(env.factory, env.log)
	ctx := context.Background()
	tenant := testutil.SeedUser(t, env.db, entity.UserRoleTenant, "tenant")
	hold := uuid.New()

	require.NoError(t, env.inTx(t, func(uow unitofwork.UnitOfWork) error {
		_, err := svc.Credit(ctx, uow, WalletEntry{UserId: tenant.Id, Type: entity.WalletDepositCredit, Amount: 2_000, ReferenceId: uuid.New()})
		return err
	}))
	require.NoError(t, env.inTx(t, func(uow unitofwork.UnitOfWork) error {
		_, err := svc.Debit(ctx, uow, WalletEntry{UserId: tenant.Id, Type: entity.WalletWithdrawalHold, Amount: 1_500, ReferenceId: hold})
		return err
	}))
	assert.Equal(t, int64(500), env.user(t, tenant.Id).WalletBalance)

	require.NoError(t, env.inTx(t, func(uow unitofwork.UnitOfWork) error {
		_, err := svc.Credit(ctx, uow, WalletEntry{UserId: tenant.Id, Type: entity.WalletWithdrawalRelease, Amount: 1_500, ReferenceId: hold})
		return err
	}))
	assert.Equal(t, int64(2_000), env.user(t, tenant.Id).WalletBalance)
}

func TestWalletService_RejectsNonPositiveAmounts(t *testing.T) {
	env := newTestEnv(t)
	svc := NewWalletService(env.factory, env.log)
	ctx := context.Background()
	uow := env.factory.NewUnitOfWork(ctx)

	_, err := svc.Credit(ctx, uow, WalletEntry{UserId: uuid.New(), Type: entity.WalletDepositCredit, Amount: 0})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = svc.Debit(ctx, uow, WalletEntry{UserId: uuid.New(), Type: entity.WalletWithdrawalHold, Amount: -1})
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestWalletService_GetWallet(t *testing.T) {
	env := newTestEnv(t)
	svc := NewWalletService(env.factory, env.log)
	ctx := context.Background()
	tenant := testutil.SeedUser(t, env.db, entity.UserRoleTenant, "tenant")

	for i := 0; i < 3; i++ {
		require.NoError(t, env.inTx(t, func(uow unitofwork.UnitOfWork) error {
			_, err := svc.Credit(ctx, uow, WalletEntry{UserId: tenant.Id, Type: entity.WalletDepositCredit, Amount: 100, ReferenceId: uuid.New()})
			return err
		}))
	}

	res, err := svc.GetWallet(ctx, tenant.Id, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(300), res.Balance)
	assert.Len(t, res.Transactions, 2)

	_, err = svc.GetWallet(ctx, uuid.New(), 10)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestWalletService_ReconcileBalance(t *testing.T) {
	env := newTestEnv(t)
	svc := NewWalletService(env.factory, env.log)
	ctx := context.Background()
	tenant := testutil.SeedUser(t, env.db, entity.UserRoleTenant, "tenant")

	require.NoError(t, env.inTx(t, func(uow unitofwork.UnitOfWork) error {
		_, err := svc.Credit(ctx, uow, WalletEntry{UserId: tenant.Id, Type: entity.WalletDepositCredit, Amount: 700, ReferenceId: uuid.New()})
		return err
	}))
	require.NoError(t, env.factory.NewUnitOfWork(ctx).UserRepository().SetWalletBalance(ctx, tenant.Id, 900))

	res, err := svc.ReconcileBalance(ctx, tenant.Id, false)
	require.NoError(t, err)
	assert.Equal(t, int64(200), res.Drift)
	assert.False(t, res.Repaired)
	assert.Equal(t, int64(900), env.user(t, tenant.Id).WalletBalance)

	res, err = svc.ReconcileBalance(ctx, tenant.Id, true)
	require.NoError(t, err)
	assert.True(t, res.Repaired)
	assert.Equal(t, int64(700), env.user(t, tenant.Id).WalletBalance)

	res, err = svc.ReconcileBalance(ctx, tenant.Id, true)
	require.NoError(t, err)
	assert.Zero(t, res.Drift)
}
