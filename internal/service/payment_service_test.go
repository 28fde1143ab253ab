package service

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"rental-marketplace-be/internal/dto"
	"rental-marketplace-be/internal/entity"
	"rental-marketplace-be/internal/pkg/apperror"
	"rental-marketplace-be/internal/pkg/mailer"
	"rental-marketplace-be/internal/testutil"
	"rental-marketplace-be/pkg/gateway/vnpay"
	"rental-marketplace-be/pkg/lock"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// fakeContracts records dispatch requests instead of talking to a provider.
type fakeContracts struct {
	mu          sync.Mutex
	dispatched  []uuid.UUID
	retried     []uuid.UUID
	dispatchErr error
}

func (f *fakeContracts) DispatchForSigning(_ context.Context, agreementId, _ uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dispatched = append(f.dispatched, agreementId)
	return f.dispatchErr
}

func (f *fakeContracts) RetryDispatch(_ context.Context, agreementId, _ uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.retried = append(f.retried, agreementId)
	return f.dispatchErr
}

func (f *fakeContracts) HandleSignatureCallback(context.Context, *dto.SignatureWebhookRequest) error {
	return nil
}

func (f *fakeContracts) RetryFailedDispatches(context.Context) (*dto.RetryDispatchResponse, error) {
	return &dto.RetryDispatchResponse{}, nil
}

func (f *fakeContracts) EndTenancy(context.Context, uuid.UUID, uuid.UUID, bool) (*dto.TenancyResponse, error) {
	return nil, nil
}

func (f *fakeContracts) GetTenancy(context.Context, uuid.UUID, uuid.UUID) (*dto.TenancyResponse, error) {
	return nil, nil
}

type fakeSnap struct {
	calls int
	err   *midtrans.Error
}

func (f *fakeSnap) CreateTransaction(req *snap.Request) (*snap.Response, *midtrans.Error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &snap.Response{
		Token:       "snap-token-" + req.TransactionDetails.OrderID,
		RedirectURL: "https://app.sandbox.midtrans.com/snap/v2/vtweb/" + req.TransactionDetails.OrderID,
	}, nil
}

type paymentFixture struct {
	env       *testEnv
	svc       IPaymentService
	vnpay     *vnpay.Client
	snap      *fakeSnap
	contracts *fakeContracts
	mail      *mailer.MockIEmailService
	locker    *lock.MemoryLocker
	landlord  *entity.User
	tenant    *entity.User
	room      *entity.Room
	request   *entity.RentalRequest
	agreement *entity.AgreementConfirmation
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	env := newTestEnv(t)
	ctrl := gomock.NewController(t)
	mail := mailer.NewMockIEmailService(ctrl)

	landlord := testutil.SeedUser(t, env.db, entity.UserRoleLandlord, "landlord")
	tenant := testutil.SeedUser(t, env.db, entity.UserRoleTenant, "tenant")
	room := testutil.SeedRoom(t, env.db, landlord.Id, testutil.DefaultRoom())
	req := testutil.SeedRentalRequest(t, env.db, tenant.Id, room, entity.RentalRequestAccepted)
	agreement := testutil.SeedAgreement(t, env.db, req, room, entity.AgreementConfirmed, time.Now().Add(time.Hour))

	vnpayClient := vnpay.NewClient(vnpay.Config{
		TmnCode:    env.cfg.VNPay.TmnCode,
		HashSecret: env.cfg.VNPay.HashSecret,
		PayURL:     env.cfg.VNPay.PayURL,
		ReturnURL:  env.cfg.VNPay.ReturnURL,
	})
	snapGateway := &fakeSnap{}
	contracts := &fakeContracts{}
	locker := lock.NewMemoryLocker()
	wallet := NewWalletService(env.factory, env.log)

	return &paymentFixture{
		env:       env,
		svc:       NewPaymentService(env.factory, vnpayClient, snapGateway, wallet, contracts, mail, locker, env.publisher, env.log, env.cfg),
		vnpay:     vnpayClient,
		snap:      snapGateway,
		contracts: contracts,
		mail:      mail,
		locker:    locker,
		landlord:  landlord,
		tenant:    tenant,
		room:      room,
		request:   req,
		agreement: agreement,
	}
}

// callback builds a signed gateway return for payment.
func (f *paymentFixture) callback(payment *entity.Payment, responseCode string, amount int64) url.Values {
	return f.vnpay.SignParams(url.Values{
		"vnp_TmnCode":           {f.env.cfg.VNPay.TmnCode},
		"vnp_TxnRef":            {payment.TransactionId},
		"vnp_Amount":            {strconv.FormatInt(amount*100, 10)},
		"vnp_ResponseCode":      {responseCode},
		"vnp_TransactionStatus": {responseCode},
		"vnp_TransactionNo":     {"14012345"},
		"vnp_BankCode":          {"NCB"},
		"vnp_PayDate":           {"20260101120000"},
	})
}

func midtransNotification(serverKey, orderId, status string, amount int64) *dto.MidtransWebhookRequest {
	gross := strconv.FormatInt(amount, 10) + ".00"
	return &dto.MidtransWebhookRequest{
		TransactionStatus: status,
		OrderId:           orderId,
		StatusCode:        "200",
		GrossAmount:       gross,
		SignatureKey:      midtransSignature(orderId, "200", gross, serverKey),
		FraudStatus:       "accept",
		PaymentType:       "bank_transfer",
		TransactionId:     "mid-" + orderId,
	}
}

func TestNewTransactionId(t *testing.T) {
	now := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	id, err := newTransactionId("DEP", now)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "DEP260304050607"))
	assert.Len(t, id, len("DEP")+12+10)

	other, err := newTransactionId("DEP", now)
	require.NoError(t, err)
	assert.NotEqual(t, id, other)
}

func TestPaymentService_CreateDepositPayment_VNPay(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()
	req := &dto.CreateDepositPaymentRequest{
		AgreementConfirmationId: f.agreement.Id,
		PaymentMethod:           "vnpay",
		Amount:                  f.agreement.Terms.Deposit,
	}

	res, err := f.svc.CreateDepositPayment(ctx, f.tenant.Id, req, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, string(entity.PaymentPending), res.Status)
	assert.True(t, strings.HasPrefix(res.TransactionId, "DEP"))
	assert.Contains(t, res.RedirectURL, "vnp_TxnRef="+res.TransactionId)
	assert.Contains(t, res.RedirectURL, "vnp_SecureHash=")

	again, err := f.svc.CreateDepositPayment(ctx, f.tenant.Id, req, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, res.PaymentId, again.PaymentId, "an open payment is reused")
}

func TestPaymentService_CreateDepositPayment_Guards(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()
	valid := dto.CreateDepositPaymentRequest{
		AgreementConfirmationId: f.agreement.Id,
		PaymentMethod:           "vnpay",
		Amount:                  f.agreement.Terms.Deposit,
	}

	t.Run("another tenant", func(t *testing.T) {
		_, err := f.svc.CreateDepositPayment(ctx, uuid.New(), &valid, "")
		assert.True(t, apperror.Is(err, apperror.KindForbidden))
	})

	t.Run("wrong amount", func(t *testing.T) {
		req := valid
		req.Amount = 1
		_, err := f.svc.CreateDepositPayment(ctx, f.tenant.Id, &req, "")
		assert.True(t, apperror.Is(err, apperror.KindValidation))
	})

	t.Run("unsupported method", func(t *testing.T) {
		req := valid
		req.PaymentMethod = "paypal"
		_, err := f.svc.CreateDepositPayment(ctx, f.tenant.Id, &req, "")
		assert.True(t, apperror.Is(err, apperror.KindValidation))
	})

	t.Run("agreement not confirmed", func(t *testing.T) {
		pendingReq := testutil.SeedRentalRequest(t, f.env.db, f.tenant.Id, f.room, entity.RentalRequestAccepted)
		pending := testutil.SeedAgreement(t, f.env.db, pendingReq, f.room, entity.AgreementPending, time.Now().Add(time.Hour))
		req := valid
		req.AgreementConfirmationId = pending.Id
		_, err := f.svc.CreateDepositPayment(ctx, f.tenant.Id, &req, "")
		assert.True(t, apperror.Is(err, apperror.KindInvalidState))
	})

	t.Run("already paid", func(t *testing.T) {
		testutil.SeedPayment(t, f.env.db, f.agreement, entity.PaymentMethodVNPay, entity.PaymentCompleted)
		_, err := f.svc.CreateDepositPayment(ctx, f.tenant.Id, &valid, "")
		assert.True(t, apperror.Is(err, apperror.KindConflict))
	})
}

func TestPaymentService_CreateDepositPayment_Midtrans(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()
	req := &dto.CreateDepositPaymentRequest{
		AgreementConfirmationId: f.agreement.Id,
		PaymentMethod:           "midtrans",
		Amount:                  f.agreement.Terms.Deposit,
	}

	res, err := f.svc.CreateDepositPayment(ctx, f.tenant.Id, req, "")
	require.NoError(t, err)
	assert.Equal(t, "snap-token-"+res.TransactionId, res.SnapToken)
	assert.NotEmpty(t, res.RedirectURL)

	again, err := f.svc.CreateDepositPayment(ctx, f.tenant.Id, req, "")
	require.NoError(t, err)
	assert.Equal(t, res.SnapToken, again.SnapToken)
	assert.Equal(t, 1, f.snap.calls, "the stored snap token is reused")
}

func TestPaymentService_CreateDepositPayment_MidtransError(t *testing.T) {
	f := newPaymentFixture(t)
	f.snap.err = &midtrans.Error{Message: "gateway down", StatusCode: 500}

	_, err := f.svc.CreateDepositPayment(context.Background(), f.tenant.Id, &dto.CreateDepositPaymentRequest{
		AgreementConfirmationId: f.agreement.Id,
		PaymentMethod:           "midtrans",
		Amount:                  f.agreement.Terms.Deposit,
	}, "")
	assert.True(t, apperror.Is(err, apperror.KindExternalService))
}

func TestPaymentService_GatewayReturn_SuccessAndReplay(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()
	payment := testutil.SeedPayment(t, f.env.db, f.agreement, entity.PaymentMethodVNPay, entity.PaymentPending)

	f.mail.EXPECT().SendPaymentSuccess(f.tenant.Email, f.tenant.FullName, payment.Amount, payment.TransactionId).Return(nil).Times(1)

	params := f.callback(payment, "00", payment.Amount)
	res, err := f.svc.HandleGatewayReturn(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, vnpay.IPNConfirmed, res.RspCode)

	stored := f.env.payment(t, payment.Id)
	assert.Equal(t, entity.PaymentCompleted, stored.Status)
	assert.Equal(t, "14012345", stored.ExternalTransactionId)
	assert.NotNil(t, stored.PaidAt)

	assert.Equal(t, entity.AgreementPaymentCompleted, f.env.agreement(t, f.agreement.Id).PaymentStatus)
	room := f.env.room(t, f.room.Id)
	require.NotNil(t, room.CurrentTenantId)
	assert.Equal(t, f.tenant.Id, *room.CurrentTenantId)
	assert.False(t, room.IsAvailable)
	assert.NotNil(t, f.env.rentalRequest(t, f.request.Id).PaymentCompletedAt)
	assert.Equal(t, payment.Amount, f.env.user(t, f.landlord.Id).WalletBalance)
	assert.Equal(t, []uuid.UUID{f.agreement.Id}, f.contracts.dispatched)
	assert.Contains(t, f.env.publisher.types(), EventPaymentCompleted)
	assert.Contains(t, f.env.publisher.types(), EventWalletCredited)

	// The gateway retries the same callback.
	res, err = f.svc.HandleGatewayReturn(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, vnpay.IPNAlreadyConfirmed, res.RspCode)
	assert.Equal(t, payment.Amount, f.env.user(t, f.landlord.Id).WalletBalance, "no second credit")
	assert.Len(t, f.env.ledger(t, f.landlord.Id), 1)
	assert.Len(t, f.contracts.dispatched, 1, "no second dispatch")
}

func TestPaymentService_GatewayReturn_ConcurrentWithoutLocker(t *testing.T) {
	f := newPaymentFixture(t)
	// Only the payment status compare-and-set guards the callback here.
	f.svc = NewPaymentService(f.env.factory, f.vnpay, f.snap, NewWalletService(f.env.factory, f.env.log), f.contracts, f.mail, nil, f.env.publisher, f.env.log, f.env.cfg)
	ctx := context.Background()
	payment := testutil.SeedPayment(t, f.env.db, f.agreement, entity.PaymentMethodVNPay, entity.PaymentPending)
	params := f.callback(payment, "00", payment.Amount)

	f.mail.EXPECT().SendPaymentSuccess(f.tenant.Email, f.tenant.FullName, payment.Amount, payment.TransactionId).Return(nil).Times(1)

	const callers = 4
	codes := make([]string, callers)
	errs := make([]error, callers)
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			res, err := f.svc.HandleGatewayReturn(ctx, params)
			errs[i] = err
			if res != nil {
				codes[i] = res.RspCode
			}
		}(i)
	}
	close(start)
	wg.Wait()

	confirmed := 0
	for i := range codes {
		require.NoError(t, errs[i])
		if codes[i] == vnpay.IPNConfirmed {
			confirmed++
		} else {
			assert.Equal(t, vnpay.IPNAlreadyConfirmed, codes[i])
		}
	}
	assert.Equal(t, 1, confirmed)
	assert.Equal(t, entity.PaymentCompleted, f.env.payment(t, payment.Id).Status)
	assert.Equal(t, payment.Amount, f.env.user(t, f.landlord.Id).WalletBalance, "credited once")
	assert.Len(t, f.env.ledger(t, f.landlord.Id), 1)
	assert.Len(t, f.contracts.dispatched, 1)
}

func TestPaymentService_GatewayReturn_Rejections(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()
	payment := testutil.SeedPayment(t, f.env.db, f.agreement, entity.PaymentMethodVNPay, entity.PaymentPending)

	t.Run("tampered signature", func(t *testing.T) {
		params := f.callback(payment, "00", payment.Amount)
		params.Set("vnp_Amount", "100")
		res, err := f.svc.HandleGatewayReturn(ctx, params)
		assert.Equal(t, vnpay.IPNInvalidSignature, res.RspCode)
		assert.True(t, apperror.Is(err, apperror.KindInvalidSignature))
	})

	t.Run("amount mismatch", func(t *testing.T) {
		res, err := f.svc.HandleGatewayReturn(ctx, f.callback(payment, "00", payment.Amount+1))
		assert.Equal(t, vnpay.IPNInvalidAmount, res.RspCode)
		assert.Error(t, err)
	})

	t.Run("unknown transaction", func(t *testing.T) {
		res, err := f.svc.HandleGatewayReturn(ctx, f.callback(&entity.Payment{TransactionId: "DEPNOPE"}, "00", 1))
		assert.Equal(t, vnpay.IPNOrderNotFound, res.RspCode)
		assert.True(t, apperror.Is(err, apperror.KindNotFound))
	})

	t.Run("callback already in flight", func(t *testing.T) {
		release, err := f.locker.Acquire(ctx, "payment-callback:"+payment.TransactionId, time.Minute)
		require.NoError(t, err)
		defer release()

		res, err := f.svc.HandleGatewayReturn(ctx, f.callback(payment, "00", payment.Amount))
		assert.Equal(t, vnpay.IPNUnknownError, res.RspCode)
		assert.True(t, apperror.Is(err, apperror.KindConflict))
	})

	assert.Equal(t, entity.PaymentPending, f.env.payment(t, payment.Id).Status)
	assert.Zero(t, f.env.user(t, f.landlord.Id).WalletBalance)
	assert.Empty(t, f.contracts.dispatched)
}

func TestPaymentService_GatewayReturn_Declined(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()
	payment := testutil.SeedPayment(t, f.env.db, f.agreement, entity.PaymentMethodVNPay, entity.PaymentPending)

	f.mail.EXPECT().SendPaymentFailed(f.tenant.Email, f.tenant.FullName, vnpay.ResponseMessage("24")).Return(nil)

	res, err := f.svc.HandleGatewayReturn(ctx, f.callback(payment, "24", payment.Amount))
	require.NoError(t, err)
	assert.Equal(t, vnpay.IPNConfirmed, res.RspCode)

	stored := f.env.payment(t, payment.Id)
	assert.Equal(t, entity.PaymentFailed, stored.Status)
	assert.Equal(t, vnpay.ResponseMessage("24"), stored.FailureReason)
	assert.Equal(t, entity.AgreementPaymentFailed, f.env.agreement(t, f.agreement.Id).PaymentStatus)
	assert.Nil(t, f.env.room(t, f.room.Id).CurrentTenantId)
	assert.Empty(t, f.contracts.dispatched)
	assert.Contains(t, f.env.publisher.types(), EventPaymentFailed)
}

func TestPaymentService_DispatchFailureStillCompletesPayment(t *testing.T) {
	f := newPaymentFixture(t)
	f.contracts.dispatchErr = apperror.ExternalService("provider down", errors.New("503"))
	payment := testutil.SeedPayment(t, f.env.db, f.agreement, entity.PaymentMethodVNPay, entity.PaymentPending)
	f.mail.EXPECT().SendPaymentSuccess(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	res, err := f.svc.HandleGatewayReturn(context.Background(), f.callback(payment, "00", payment.Amount))
	require.NoError(t, err)
	assert.Equal(t, vnpay.IPNConfirmed, res.RspCode)
	assert.Equal(t, entity.PaymentCompleted, f.env.payment(t, payment.Id).Status)
	assert.Equal(t, payment.Amount, f.env.user(t, f.landlord.Id).WalletBalance)
}

func TestPaymentService_SecondDepositIsFlaggedNotCredited(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()
	first := testutil.SeedPayment(t, f.env.db, f.agreement, entity.PaymentMethodVNPay, entity.PaymentPending)
	second := testutil.SeedPayment(t, f.env.db, f.agreement, entity.PaymentMethodVNPay, entity.PaymentPending)

	f.mail.EXPECT().SendPaymentSuccess(gomock.Any(), gomock.Any(), gomock.Any(), first.TransactionId).Return(nil)

	_, err := f.svc.HandleGatewayReturn(ctx, f.callback(first, "00", first.Amount))
	require.NoError(t, err)
	res, err := f.svc.HandleGatewayReturn(ctx, f.callback(second, "00", second.Amount))
	require.NoError(t, err)
	assert.Equal(t, vnpay.IPNConfirmed, res.RspCode)

	stored := f.env.payment(t, second.Id)
	assert.Equal(t, entity.PaymentCompleted, stored.Status)
	assert.Contains(t, stored.FailureReason, "refund required")
	assert.Equal(t, first.Amount, f.env.user(t, f.landlord.Id).WalletBalance)
	assert.Len(t, f.contracts.dispatched, 1)
}

func TestPaymentService_MidtransNotification(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()
	key := f.env.cfg.Midtrans.ServerKey

	t.Run("invalid signature", func(t *testing.T) {
		payment := testutil.SeedPayment(t, f.env.db, f.agreement, entity.PaymentMethodMidtrans, entity.PaymentPending)
		n := midtransNotification("wrong-key", payment.TransactionId, "settlement", payment.Amount)
		err := f.svc.HandleMidtransNotification(ctx, n)
		assert.True(t, apperror.Is(err, apperror.KindInvalidSignature))
		assert.Equal(t, entity.PaymentPending, f.env.payment(t, payment.Id).Status)
	})

	t.Run("pending then deny", func(t *testing.T) {
		payment := testutil.SeedPayment(t, f.env.db, f.agreement, entity.PaymentMethodMidtrans, entity.PaymentPending)

		require.NoError(t, f.svc.HandleMidtransNotification(ctx, midtransNotification(key, payment.TransactionId, "pending", payment.Amount)))
		assert.Equal(t, entity.PaymentProcessing, f.env.payment(t, payment.Id).Status)

		f.mail.EXPECT().SendPaymentFailed(f.tenant.Email, gomock.Any(), "Payment deny").Return(nil)
		require.NoError(t, f.svc.HandleMidtransNotification(ctx, midtransNotification(key, payment.TransactionId, "deny", payment.Amount)))
		assert.Equal(t, entity.PaymentFailed, f.env.payment(t, payment.Id).Status)
	})

	t.Run("settlement", func(t *testing.T) {
		payment := testutil.SeedPayment(t, f.env.db, f.agreement, entity.PaymentMethodMidtrans, entity.PaymentPending)
		f.mail.EXPECT().SendPaymentSuccess(gomock.Any(), gomock.Any(), payment.Amount, payment.TransactionId).Return(nil)

		n := midtransNotification(key, payment.TransactionId, "settlement", payment.Amount)
		require.NoError(t, f.svc.HandleMidtransNotification(ctx, n))
		assert.Equal(t, entity.PaymentCompleted, f.env.payment(t, payment.Id).Status)
		assert.Equal(t, payment.Amount, f.env.user(t, f.landlord.Id).WalletBalance)

		require.NoError(t, f.svc.HandleMidtransNotification(ctx, n), "replays are acknowledged")
		assert.Equal(t, payment.Amount, f.env.user(t, f.landlord.Id).WalletBalance)
	})
}

func TestPaymentService_ReconcilePayment(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()
	payment := testutil.SeedPayment(t, f.env.db, f.agreement, entity.PaymentMethodVNPay, entity.PaymentCompleted)

	res, err := f.svc.ReconcilePayment(ctx, payment.Id)
	require.NoError(t, err)
	assert.True(t, res.AgreementUpdated)
	assert.True(t, res.RoomOccupied)
	assert.True(t, res.WalletCredited)
	assert.True(t, res.ContractSent)
	assert.Equal(t, payment.Amount, f.env.user(t, f.landlord.Id).WalletBalance)
	assert.Equal(t, []uuid.UUID{f.agreement.Id}, f.contracts.retried)

	res, err = f.svc.ReconcilePayment(ctx, payment.Id)
	require.NoError(t, err)
	assert.False(t, res.AgreementUpdated)
	assert.False(t, res.WalletCredited)
	assert.Equal(t, payment.Amount, f.env.user(t, f.landlord.Id).WalletBalance)

	pending := testutil.SeedPayment(t, f.env.db, f.agreement, entity.PaymentMethodVNPay, entity.PaymentPending)
	_, err = f.svc.ReconcilePayment(ctx, pending.Id)
	assert.True(t, apperror.Is(err, apperror.KindInvalidState))
}

func TestPaymentService_GetPayment(t *testing.T) {
	f := newPaymentFixture(t)
	payment := testutil.SeedPayment(t, f.env.db, f.agreement, entity.PaymentMethodCash, entity.PaymentPending)

	res, err := f.svc.GetPayment(context.Background(), payment.Id, f.landlord.Id)
	require.NoError(t, err)
	assert.Equal(t, payment.TransactionId, res.TransactionId)

	_, err = f.svc.GetPayment(context.Background(), payment.Id, uuid.New())
	assert.True(t, apperror.Is(err, apperror.KindForbidden))
}
