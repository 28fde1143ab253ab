package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"rental-marketplace-be/internal/config"
	"rental-marketplace-be/internal/entity"
	"rental-marketplace-be/internal/pkg/logger"
	"rental-marketplace-be/internal/repository/specification"
	"rental-marketplace-be/internal/repository/unitofwork"
	"rental-marketplace-be/internal/testutil"
	"rental-marketplace-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// recordingPublisher keeps every published event for assertions.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType())
	}
	return out
}

type testEnv struct {
	db        *gorm.DB
	factory   unitofwork.RepositoryFactory
	publisher *recordingPublisher
	log       logger.ILogger
	cfg       *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewTestDB(t)
	return &testEnv{
		db:        db,
		factory:   unitofwork.NewRepositoryFactory(db),
		publisher: &recordingPublisher{},
		log:       logger.NewNopLogger(),
		cfg:       testConfig(),
	}
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.ClientURL = "http://localhost:5173"
	cfg.App.BaseURL = "http://localhost:3000"
	cfg.VNPay = config.VNPayConfig{
		TmnCode:    "TESTTMN1",
		HashSecret: "vnpay-secret",
		PayURL:     "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html",
		ReturnURL:  "http://localhost:5173/payments/return",
	}
	cfg.Midtrans.ServerKey = "midtrans-server-key"
	cfg.ESign.WebhookSecret = "esign-webhook-secret"
	cfg.Payout = config.PayoutConfig{
		BaseURL:    "https://payout.test",
		MerchantID: "M001",
		HashSecret: "payout-secret",
		ReturnURL:  "http://localhost:3000/api/withdrawals/payout/return",
	}
	cfg.Workflow = config.WorkflowConfig{
		ConfirmationTTL:  48 * time.Hour,
		GatewayTimeout:   time.Second,
		DispatchAttempts: 3,
		DispatchBackoff:  time.Millisecond,
		CallbackLockTTL:  time.Second,
	}
	return cfg
}

func (e *testEnv) user(t *testing.T, id uuid.UUID) *entity.User {
	t.Helper()
	u, err := e.factory.NewUnitOfWork(context.Background()).UserRepository().FindOne(context.Background(), specification.ByID{ID: id})
	require.NoError(t, err)
	require.NotNil(t, u)
	return u
}

func (e *testEnv) room(t *testing.T, id uuid.UUID) *entity.Room {
	t.Helper()
	r, err := e.factory.NewUnitOfWork(context.Background()).RoomRepository().FindOne(context.Background(), specification.ByID{ID: id})
	require.NoError(t, err)
	require.NotNil(t, r)
	return r
}

func (e *testEnv) agreement(t *testing.T, id uuid.UUID) *entity.AgreementConfirmation {
	t.Helper()
	a, err := e.factory.NewUnitOfWork(context.Background()).AgreementRepository().FindOne(context.Background(), specification.ByID{ID: id})
	require.NoError(t, err)
	require.NotNil(t, a)
	return a
}

func (e *testEnv) rentalRequest(t *testing.T, id uuid.UUID) *entity.RentalRequest {
	t.Helper()
	r, err := e.factory.NewUnitOfWork(context.Background()).RentalRequestRepository().FindOne(context.Background(), specification.ByID{ID: id})
	require.NoError(t, err)
	require.NotNil(t, r)
	return r
}

func (e *testEnv) payment(t *testing.T, id uuid.UUID) *entity.Payment {
	t.Helper()
	p, err := e.factory.NewUnitOfWork(context.Background()).PaymentRepository().FindOne(context.Background(), specification.ByID{ID: id})
	require.NoError(t, err)
	require.NotNil(t, p)
	return p
}

func (e *testEnv) withdrawal(t *testing.T, id uuid.UUID) *entity.WithdrawalRequest {
	t.Helper()
	w, err := e.factory.NewUnitOfWork(context.Background()).WithdrawalRepository().FindOne(context.Background(), specification.ByID{ID: id})
	require.NoError(t, err)
	require.NotNil(t, w)
	return w
}

func (e *testEnv) ledger(t *testing.T, userId uuid.UUID) []*entity.WalletTransaction {
	t.Helper()
	txs, err := e.factory.NewUnitOfWork(context.Background()).WalletTransactionRepository().FindAll(context.Background(), specification.UserOwnedBy{UserID: userId})
	require.NoError(t, err)
	return txs
}

// inTx runs fn inside a committed unit of work.
func (e *testEnv) inTx(t *testing.T, fn func(uow unitofwork.UnitOfWork) error) error {
	t.Helper()
	ctx := context.Background()
	uow := e.factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.Begin(ctx))
	if err := fn(uow); err != nil {
		_ = uow.Rollback()
		return err
	}
	return uow.Commit()
}
