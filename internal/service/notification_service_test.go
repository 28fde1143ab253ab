package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"rental-marketplace-be/internal/dto"
	"rental-marketplace-be/internal/entity"
	"rental-marketplace-be/internal/pkg/apperror"
	"rental-marketplace-be/internal/testutil"
	"rental-marketplace-be/pkg/events"
	pktNats "rental-marketplace-be/pkg/nats"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingSubscriber struct {
	subject string
	durable string
	handler pktNats.EventHandler
	err     error
}

func (s *capturingSubscriber) Subscribe(_ context.Context, subject, durable string, handler pktNats.EventHandler) error {
	s.subject, s.durable, s.handler = subject, durable, handler
	return s.err
}

type recordingDelivery struct {
	mu   sync.Mutex
	sent map[uuid.UUID][]dto.NotificationResponse
}

func (d *recordingDelivery) Send(userID uuid.UUID, n dto.NotificationResponse) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.sent == nil {
		d.sent = map[uuid.UUID][]dto.NotificationResponse{}
	}
	d.sent[userID] = append(d.sent[userID], n)
}

func newNotificationService(t *testing.T) (*NotificationService, *testEnv, *capturingSubscriber, *recordingDelivery) {
	env := newTestEnv(t)
	sub := &capturingSubscriber{}
	delivery := &recordingDelivery{}
	return NewNotificationService(env.factory, sub, delivery, env.log), env, sub, delivery
}

// busEvent mimics an event after a JSON round trip over the bus.
func busEvent(eventType string, data map[string]interface{}) events.Event {
	return events.BaseEvent{Type: eventType, Data: data, OccurredAt: time.Now()}
}

func TestNotificationService_StoresAndPushesEvents(t *testing.T) {
	svc, env, sub, delivery := newNotificationService(t)
	ctx := context.Background()
	landlord := testutil.SeedUser(t, env.db, entity.UserRoleLandlord, "landlord")
	tenant := testutil.SeedUser(t, env.db, entity.UserRoleTenant, "tenant")

	svc.Start(ctx)
	require.NotNil(t, sub.handler)
	assert.Equal(t, "events.>", sub.subject)

	err := sub.handler(ctx, busEvent("events."+EventPaymentCompleted, map[string]interface{}{
		"amount":     float64(3000000),
		"payment_id": "p-1",
		"recipients": []interface{}{tenant.Id.String(), landlord.Id.String()},
	}))
	require.NoError(t, err)

	for _, id := range []uuid.UUID{tenant.Id, landlord.Id} {
		page, err := svc.GetNotifications(ctx, id, dto.ListQuery{})
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		n := page.Items[0]
		assert.Equal(t, EventPaymentCompleted, n.Type)
		assert.Equal(t, "A deposit of 3000000 VND was received.", n.Message)
		assert.NotContains(t, n.Data, "recipients")
		assert.Len(t, delivery.sent[id], 1)
	}
}

func TestNotificationService_IgnoresUnroutableEvents(t *testing.T) {
	svc, env, _, delivery := newNotificationService(t)
	ctx := context.Background()
	user := testutil.SeedUser(t, env.db, entity.UserRoleTenant, "tenant")

	require.NoError(t, svc.handleEvent(ctx, busEvent("NOTE_CREATED", map[string]interface{}{
		"recipients": []string{user.Id.String()},
	})))
	require.NoError(t, svc.handleEvent(ctx, busEvent(EventContractSent, map[string]interface{}{
		"recipients": []string{"not-a-uuid"},
	})))

	count, err := svc.GetUnreadCount(ctx, user.Id)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, delivery.sent)
}

func TestNotificationService_ReadState(t *testing.T) {
	svc, env, _, _ := newNotificationService(t)
	ctx := context.Background()
	user := testutil.SeedUser(t, env.db, entity.UserRoleTenant, "tenant")

	for _, reason := range []string{"too far", "too small"} {
		require.NoError(t, svc.handleEvent(ctx, busEvent(EventAgreementRejected, map[string]interface{}{
			"reason":     reason,
			"recipients": []string{user.Id.String()},
		})))
	}

	count, err := svc.GetUnreadCount(ctx, user.Id)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	page, err := svc.GetNotifications(ctx, user.Id, dto.ListQuery{Limit: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total)
	require.Len(t, page.Items, 1)

	require.NoError(t, svc.MarkAsRead(ctx, page.Items[0].Id, user.Id))
	count, err = svc.GetUnreadCount(ctx, user.Id)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	err = svc.MarkAsRead(ctx, page.Items[0].Id, uuid.New())
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	require.NoError(t, svc.MarkAllAsRead(ctx, user.Id))
	count, err = svc.GetUnreadCount(ctx, user.Id)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestNotificationService_StartWithoutBus(t *testing.T) {
	env := newTestEnv(t)
	svc := NewNotificationService(env.factory, nil, nil, env.log)
	svc.Start(context.Background())

	sub := &capturingSubscriber{err: errors.New("nats down")}
	svc = NewNotificationService(env.factory, sub, nil, env.log)
	svc.Start(context.Background())
	assert.Equal(t, "notif-service-worker", sub.durable)
}

func TestRender(t *testing.T) {
	msg := render("{net_amount} VND was paid out to {who}.", map[string]interface{}{
		"net_amount": float64(2500000),
		"who":        "tenant",
	})
	assert.Equal(t, "2500000 VND was paid out to tenant.", msg)
}

func TestRecipientsOf(t *testing.T) {
	id := uuid.New()
	assert.Equal(t, []uuid.UUID{id}, recipientsOf(map[string]interface{}{"recipients": []string{id.String()}}))
	assert.Equal(t, []uuid.UUID{id}, recipientsOf(map[string]interface{}{"recipients": []interface{}{id.String(), 42}}))
	assert.Empty(t, recipientsOf(map[string]interface{}{}))
}
