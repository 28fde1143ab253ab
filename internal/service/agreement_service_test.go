package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"rental-marketplace-be/internal/dto"
	"rental-marketplace-be/internal/entity"
	"rental-marketplace-be/internal/pkg/apperror"
	"rental-marketplace-be/internal/pkg/mailer"
	"rental-marketplace-be/internal/testutil"
	"rental-marketplace-be/pkg/lock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type agreementFixture struct {
	env      *testEnv
	svc      IAgreementService
	mail     *mailer.MockIEmailService
	landlord *entity.User
	tenant   *entity.User
	room     *entity.Room
}

func newAgreementFixture(t *testing.T) *agreementFixture {
	env := newTestEnv(t)
	ctrl := gomock.NewController(t)
	mail := mailer.NewMockIEmailService(ctrl)

	landlord := testutil.SeedUser(t, env.db, entity.UserRoleLandlord, "landlord")
	tenant := testutil.SeedUser(t, env.db, entity.UserRoleTenant, "tenant")
	room := testutil.SeedRoom(t, env.db, landlord.Id, testutil.DefaultRoom())

	return &agreementFixture{
		env:      env,
		svc:      NewAgreementService(env.factory, mail, lock.NewMemoryLocker(), env.publisher, env.log, env.cfg),
		mail:     mail,
		landlord: landlord,
		tenant:   tenant,
		room:     room,
	}
}

func sampleTerms() dto.AgreementTermsRequest {
	return dto.AgreementTermsRequest{
		StartDate:   time.Now().AddDate(0, 0, 14),
		MonthlyRent: 3_200_000,
		Deposit:     3_000_000,
		Notes:       "No pets",
	}
}

func TestAgreementService_CreateFromAcceptedRequest(t *testing.T) {
	f := newAgreementFixture(t)
	ctx := context.Background()
	req := testutil.SeedRentalRequest(t, f.env.db, f.tenant.Id, f.room, entity.RentalRequestAccepted)

	f.mail.EXPECT().
		SendAgreementConfirmation(f.tenant.Email, f.tenant.FullName, f.room.Title, gomock.Any(), gomock.Any()).
		Return(nil)

	before := time.Now()
	res, err := f.svc.CreateFromAcceptedRequest(ctx, req.Id, f.landlord.Id, sampleTerms())
	require.NoError(t, err)

	assert.Equal(t, string(entity.AgreementPending), res.Status)
	assert.Equal(t, string(entity.SignaturePending), res.SignatureStatus)
	assert.Equal(t, string(entity.AgreementPaymentPending), res.PaymentStatus)
	assert.WithinDuration(t, before.Add(48*time.Hour), res.ExpiresAt, time.Minute)

	stored := f.env.agreement(t, res.Id)
	assert.Len(t, stored.Token, 64)
	assert.Equal(t, int64(3_200_000), stored.Terms.MonthlyRent)
	assert.Equal(t, f.room.ElectricityRate, stored.Terms.ElectricityRate, "unset rates come from the room")
	require.Len(t, stored.Terms.AdditionalFees, 1)
	assert.Equal(t, "Internet", stored.Terms.AdditionalFees[0].Name)

	linked := f.env.rentalRequest(t, req.Id)
	require.NotNil(t, linked.AgreementConfirmationId)
	assert.Equal(t, res.Id, *linked.AgreementConfirmationId)
	assert.Contains(t, f.env.publisher.types(), EventAgreementOffered)
}

func TestAgreementService_CreateFromAcceptedRequest_Guards(t *testing.T) {
	f := newAgreementFixture(t)
	ctx := context.Background()

	t.Run("not the landlord", func(t *testing.T) {
		req := testutil.SeedRentalRequest(t, f.env.db, f.tenant.Id, f.room, entity.RentalRequestAccepted)
		_, err := f.svc.CreateFromAcceptedRequest(ctx, req.Id, uuid.New(), sampleTerms())
		assert.True(t, apperror.Is(err, apperror.KindForbidden))
	})

	t.Run("request still pending", func(t *testing.T) {
		req := testutil.SeedRentalRequest(t, f.env.db, f.tenant.Id, f.room, entity.RentalRequestPending)
		_, err := f.svc.CreateFromAcceptedRequest(ctx, req.Id, f.landlord.Id, sampleTerms())
		assert.True(t, apperror.Is(err, apperror.KindInvalidState))
	})

	t.Run("unknown request", func(t *testing.T) {
		_, err := f.svc.CreateFromAcceptedRequest(ctx, uuid.New(), f.landlord.Id, sampleTerms())
		assert.True(t, apperror.Is(err, apperror.KindNotFound))
	})

	t.Run("invalid terms", func(t *testing.T) {
		req := testutil.SeedRentalRequest(t, f.env.db, f.tenant.Id, f.room, entity.RentalRequestAccepted)
		terms := sampleTerms()
		terms.MonthlyRent = 0
		_, err := f.svc.CreateFromAcceptedRequest(ctx, req.Id, f.landlord.Id, terms)
		assert.True(t, apperror.Is(err, apperror.KindValidation))
	})

	t.Run("offer already open", func(t *testing.T) {
		req := testutil.SeedRentalRequest(t, f.env.db, f.tenant.Id, f.room, entity.RentalRequestAccepted)
		testutil.SeedAgreement(t, f.env.db, req, f.room, entity.AgreementPending, time.Now().Add(time.Hour))
		_, err := f.svc.CreateFromAcceptedRequest(ctx, req.Id, f.landlord.Id, sampleTerms())
		assert.True(t, apperror.Is(err, apperror.KindConflict))
	})
}

func TestAgreementService_EmailFailureIsNotFatal(t *testing.T) {
	f := newAgreementFixture(t)
	req := testutil.SeedRentalRequest(t, f.env.db, f.tenant.Id, f.room, entity.RentalRequestAccepted)

	f.mail.EXPECT().
		SendAgreementConfirmation(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("smtp down"))

	res, err := f.svc.CreateFromAcceptedRequest(context.Background(), req.Id, f.landlord.Id, sampleTerms())
	require.NoError(t, err)
	assert.Equal(t, entity.AgreementPending, f.env.agreement(t, res.Id).Status)
}

func TestAgreementService_Confirm(t *testing.T) {
	f := newAgreementFixture(t)
	ctx := context.Background()
	req := testutil.SeedRentalRequest(t, f.env.db, f.tenant.Id, f.room, entity.RentalRequestAccepted)
	agreement := testutil.SeedAgreement(t, f.env.db, req, f.room, entity.AgreementPending, time.Now().Add(time.Hour))

	_, err := f.svc.Confirm(ctx, agreement.Token, f.landlord.Id)
	assert.True(t, apperror.Is(err, apperror.KindForbidden))

	res, err := f.svc.Confirm(ctx, agreement.Token, f.tenant.Id)
	require.NoError(t, err)
	assert.Equal(t, string(entity.AgreementConfirmed), res.Status)
	assert.NotNil(t, f.env.agreement(t, agreement.Id).ConfirmedAt)

	_, err = f.svc.Confirm(ctx, agreement.Token, f.tenant.Id)
	assert.True(t, apperror.Is(err, apperror.KindNotFound), "a token works once")

	_, err = f.svc.Confirm(ctx, "", f.tenant.Id)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestAgreementService_ConfirmAfterExpiry(t *testing.T) {
	f := newAgreementFixture(t)
	req := testutil.SeedRentalRequest(t, f.env.db, f.tenant.Id, f.room, entity.RentalRequestAccepted)
	agreement := testutil.SeedAgreement(t, f.env.db, req, f.room, entity.AgreementPending, time.Now().Add(-time.Minute))

	_, err := f.svc.Confirm(context.Background(), agreement.Token, f.tenant.Id)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
	assert.Equal(t, entity.AgreementPending, f.env.agreement(t, agreement.Id).Status)
}

func TestAgreementService_RejectReopensRequest(t *testing.T) {
	f := newAgreementFixture(t)
	ctx := context.Background()
	req := testutil.SeedRentalRequest(t, f.env.db, f.tenant.Id, f.room, entity.RentalRequestAccepted)
	agreement := testutil.SeedAgreement(t, f.env.db, req, f.room, entity.AgreementPending, time.Now().Add(time.Hour))

	res, err := f.svc.Reject(ctx, agreement.Token, f.tenant.Id, "rent too high")
	require.NoError(t, err)
	assert.Equal(t, string(entity.AgreementRejected), res.Status)

	stored := f.env.agreement(t, agreement.Id)
	assert.Equal(t, "rent too high", stored.RejectionReason)
	assert.Equal(t, entity.RentalRequestPending, f.env.rentalRequest(t, req.Id).Status)
	assert.Contains(t, f.env.publisher.types(), EventAgreementRejected)
}

func TestAgreementService_Preview(t *testing.T) {
	f := newAgreementFixture(t)
	req := testutil.SeedRentalRequest(t, f.env.db, f.tenant.Id, f.room, entity.RentalRequestAccepted)
	agreement := testutil.SeedAgreement(t, f.env.db, req, f.room, entity.AgreementPending, time.Now().Add(time.Hour))

	res, err := f.svc.Preview(context.Background(), agreement.Token)
	require.NoError(t, err)
	assert.Equal(t, agreement.Id, res.Id)
	assert.Equal(t, f.room.Title, res.RoomTitle)
	assert.Equal(t, f.landlord.FullName, res.LandlordName)
	assert.Equal(t, f.tenant.FullName, res.TenantName)

	_, err = f.svc.Preview(context.Background(), "deadbeef")
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestAgreementService_Get(t *testing.T) {
	f := newAgreementFixture(t)
	req := testutil.SeedRentalRequest(t, f.env.db, f.tenant.Id, f.room, entity.RentalRequestAccepted)
	agreement := testutil.SeedAgreement(t, f.env.db, req, f.room, entity.AgreementPending, time.Now().Add(time.Hour))

	_, err := f.svc.Get(context.Background(), agreement.Id, f.landlord.Id)
	assert.NoError(t, err)
	_, err = f.svc.Get(context.Background(), agreement.Id, uuid.New())
	assert.True(t, apperror.Is(err, apperror.KindForbidden))
}

func TestAgreementService_ExpireOldConfirmations(t *testing.T) {
	f := newAgreementFixture(t)
	ctx := context.Background()

	stale := testutil.SeedAgreement(t, f.env.db,
		testutil.SeedRentalRequest(t, f.env.db, f.tenant.Id, f.room, entity.RentalRequestAccepted),
		f.room, entity.AgreementPending, time.Now().Add(-time.Hour))
	fresh := testutil.SeedAgreement(t, f.env.db,
		testutil.SeedRentalRequest(t, f.env.db, f.tenant.Id, f.room, entity.RentalRequestAccepted),
		f.room, entity.AgreementPending, time.Now().Add(time.Hour))
	confirmed := testutil.SeedAgreement(t, f.env.db,
		testutil.SeedRentalRequest(t, f.env.db, f.tenant.Id, f.room, entity.RentalRequestAccepted),
		f.room, entity.AgreementConfirmed, time.Now().Add(-time.Hour))

	n, err := f.svc.ExpireOldConfirmations(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	assert.Equal(t, entity.AgreementExpired, f.env.agreement(t, stale.Id).Status)
	assert.Equal(t, entity.AgreementPending, f.env.agreement(t, fresh.Id).Status)
	assert.Equal(t, entity.AgreementConfirmed, f.env.agreement(t, confirmed.Id).Status)

	n, err = f.svc.ExpireOldConfirmations(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "the sweep is idempotent")

	_, err = f.svc.Confirm(ctx, stale.Token, f.tenant.Id)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}
