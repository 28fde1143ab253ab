package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"rental-marketplace-be/internal/dto"
	"rental-marketplace-be/internal/entity"
	"rental-marketplace-be/internal/pkg/apperror"
	"rental-marketplace-be/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newRentalRequestService(f *agreementFixture) IRentalRequestService {
	return NewRentalRequestService(f.env.factory, f.svc, f.env.publisher, f.env.log)
}

func TestRentalRequestService_Create(t *testing.T) {
	f := newAgreementFixture(t)
	svc := newRentalRequestService(f)
	ctx := context.Background()

	req := &dto.CreateRentalRequestRequest{
		RoomId:            f.room.Id,
		ProposedStartDate: time.Now().AddDate(0, 0, 7),
		GuestCount:        2,
		Message:           "Hello",
	}
	res, err := svc.Create(ctx, f.tenant.Id, req)
	require.NoError(t, err)
	assert.Equal(t, string(entity.RentalRequestPending), res.Status)
	assert.Equal(t, f.landlord.Id, res.LandlordId)
	assert.Contains(t, f.env.publisher.types(), EventRentalRequestCreated)

	_, err = svc.Create(ctx, f.tenant.Id, req)
	assert.True(t, apperror.Is(err, apperror.KindConflict), "one open request per tenant and room")
}

func TestRentalRequestService_CreateValidation(t *testing.T) {
	f := newAgreementFixture(t)
	svc := newRentalRequestService(f)
	ctx := context.Background()

	tests := []struct {
		name   string
		userId uuid.UUID
		req    dto.CreateRentalRequestRequest
		kind   apperror.Kind
	}{
		{
			name:   "over capacity",
			userId: f.tenant.Id,
			req:    dto.CreateRentalRequestRequest{RoomId: f.room.Id, ProposedStartDate: time.Now().AddDate(0, 0, 1), GuestCount: 3},
			kind:   apperror.KindValidation,
		},
		{
			name:   "start date in the past",
			userId: f.tenant.Id,
			req:    dto.CreateRentalRequestRequest{RoomId: f.room.Id, ProposedStartDate: time.Now().AddDate(0, 0, -2), GuestCount: 1},
			kind:   apperror.KindValidation,
		},
		{
			name:   "unknown room",
			userId: f.tenant.Id,
			req:    dto.CreateRentalRequestRequest{RoomId: uuid.New(), ProposedStartDate: time.Now().AddDate(0, 0, 1), GuestCount: 1},
			kind:   apperror.KindNotFound,
		},
		{
			name:   "landlord requests own room",
			userId: f.landlord.Id,
			req:    dto.CreateRentalRequestRequest{RoomId: f.room.Id, ProposedStartDate: time.Now().AddDate(0, 0, 1), GuestCount: 1},
			kind:   apperror.KindForbidden,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.userId, &tt.req)
			assert.True(t, apperror.Is(err, tt.kind), "got %v", err)
		})
	}

	t.Run("start date today is allowed", func(t *testing.T) {
		_, err := svc.Create(ctx, f.tenant.Id, &dto.CreateRentalRequestRequest{RoomId: f.room.Id, ProposedStartDate: time.Now(), GuestCount: 2})
		assert.NoError(t, err)
	})
}

func TestRentalRequestService_CreateOccupiedRoom(t *testing.T) {
	f := newAgreementFixture(t)
	svc := newRentalRequestService(f)
	ctx := context.Background()

	other := testutil.SeedUser(t, f.env.db, entity.UserRoleTenant, "other")
	ok, err := f.env.factory.NewUnitOfWork(ctx).RoomRepository().Occupy(ctx, f.room.Id, other.Id)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = svc.Create(ctx, f.tenant.Id, &dto.CreateRentalRequestRequest{RoomId: f.room.Id, ProposedStartDate: time.Now().AddDate(0, 0, 1), GuestCount: 1})
	assert.True(t, apperror.Is(err, apperror.KindConflict))
}

func TestRentalRequestService_Respond(t *testing.T) {
	f := newAgreementFixture(t)
	svc := newRentalRequestService(f)
	ctx := context.Background()

	t.Run("accept once", func(t *testing.T) {
		req := testutil.SeedRentalRequest(t, f.env.db, f.tenant.Id, f.room, entity.RentalRequestPending)

		_, err := svc.Accept(ctx, req.Id, f.tenant.Id, "")
		assert.True(t, apperror.Is(err, apperror.KindForbidden))

		res, err := svc.Accept(ctx, req.Id, f.landlord.Id, "welcome")
		require.NoError(t, err)
		assert.Equal(t, string(entity.RentalRequestAccepted), res.Status)
		assert.NotNil(t, f.env.rentalRequest(t, req.Id).AcceptedAt)

		_, err = svc.Reject(ctx, req.Id, f.landlord.Id, "")
		assert.True(t, apperror.Is(err, apperror.KindInvalidState))
	})

	t.Run("reject", func(t *testing.T) {
		req := testutil.SeedRentalRequest(t, f.env.db, f.tenant.Id, f.room, entity.RentalRequestPending)
		res, err := svc.Reject(ctx, req.Id, f.landlord.Id, "room taken")
		require.NoError(t, err)
		assert.Equal(t, string(entity.RentalRequestRejected), res.Status)
		assert.Equal(t, "room taken", f.env.rentalRequest(t, req.Id).ResponseMessage)
	})

	t.Run("withdraw", func(t *testing.T) {
		req := testutil.SeedRentalRequest(t, f.env.db, f.tenant.Id, f.room, entity.RentalRequestPending)

		_, err := svc.Withdraw(ctx, req.Id, f.landlord.Id)
		assert.True(t, apperror.Is(err, apperror.KindForbidden))

		res, err := svc.Withdraw(ctx, req.Id, f.tenant.Id)
		require.NoError(t, err)
		assert.Equal(t, string(entity.RentalRequestWithdrawn), res.Status)

		_, err = svc.Accept(ctx, req.Id, f.landlord.Id, "")
		assert.True(t, apperror.Is(err, apperror.KindInvalidState))
	})
}

func TestRentalRequestService_ConcurrentAnswers(t *testing.T) {
	f := newAgreementFixture(t)
	svc := newRentalRequestService(f)
	ctx := context.Background()
	request := testutil.SeedRentalRequest(t, f.env.db, f.tenant.Id, f.room, entity.RentalRequestPending)

	const callers = 4
	errs := make([]error, callers)
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			if i%2 == 0 {
				_, errs[i] = svc.Accept(ctx, request.Id, f.landlord.Id, "welcome")
				return
			}
			_, errs[i] = svc.Reject(ctx, request.Id, f.landlord.Id, "taken")
		}(i)
	}
	close(start)
	wg.Wait()

	winner := -1
	for i, err := range errs {
		if err == nil {
			require.Equal(t, -1, winner, "only one answer may win")
			winner = i
			continue
		}
		// Losers either saw the answer already stored or lost the status update.
		assert.True(t, apperror.Is(err, apperror.KindConflict) || apperror.Is(err, apperror.KindInvalidState), "got %v", err)
	}
	require.NotEqual(t, -1, winner)

	want := entity.RentalRequestAccepted
	if winner%2 == 1 {
		want = entity.RentalRequestRejected
	}
	assert.Equal(t, want, f.env.rentalRequest(t, request.Id).Status)
}

func TestRentalRequestService_AcceptAndOffer(t *testing.T) {
	f := newAgreementFixture(t)
	svc := newRentalRequestService(f)
	ctx := context.Background()
	req := testutil.SeedRentalRequest(t, f.env.db, f.tenant.Id, f.room, entity.RentalRequestPending)

	f.mail.EXPECT().SendAgreementConfirmation(f.tenant.Email, gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	res, err := svc.AcceptAndOffer(ctx, req.Id, f.landlord.Id, &dto.AcceptAndOfferRequest{
		ResponseMessage: "see you soon",
		Terms:           sampleTerms(),
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.RentalRequestAccepted), res.Request.Status)
	assert.Equal(t, string(entity.AgreementPending), res.Agreement.Status)

	stored := f.env.rentalRequest(t, req.Id)
	require.NotNil(t, stored.AgreementConfirmationId)
	assert.Equal(t, res.Agreement.Id, *stored.AgreementConfirmationId)
}

func TestRentalRequestService_AcceptAndOfferIsAtomic(t *testing.T) {
	f := newAgreementFixture(t)
	svc := newRentalRequestService(f)
	ctx := context.Background()
	req := testutil.SeedRentalRequest(t, f.env.db, f.tenant.Id, f.room, entity.RentalRequestPending)

	terms := sampleTerms()
	past := terms.StartDate.AddDate(0, 0, -1)
	terms.EndDate = &past

	_, err := svc.AcceptAndOffer(ctx, req.Id, f.landlord.Id, &dto.AcceptAndOfferRequest{Terms: terms})
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	assert.Equal(t, entity.RentalRequestPending, f.env.rentalRequest(t, req.Id).Status)
}

func TestRentalRequestService_List(t *testing.T) {
	f := newAgreementFixture(t)
	svc := newRentalRequestService(f)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		testutil.SeedRentalRequest(t, f.env.db, f.tenant.Id, f.room, entity.RentalRequestPending)
	}
	testutil.SeedRentalRequest(t, f.env.db, f.tenant.Id, f.room, entity.RentalRequestRejected)

	page, err := svc.ListForLandlord(ctx, f.landlord.Id, dto.ListQuery{Status: "pending", Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Len(t, page.Items, 2)

	all, err := svc.ListForTenant(ctx, f.tenant.Id, dto.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(4), all.Total)

	_, err = svc.Get(ctx, page.Items[0].Id, uuid.New())
	assert.True(t, apperror.Is(err, apperror.KindForbidden))
}
