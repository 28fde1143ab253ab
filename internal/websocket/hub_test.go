package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"rental-marketplace-be/internal/dto"
	"rental-marketplace-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(nil, logger.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func connect(t *testing.T, hub *Hub, userID uuid.UUID, buffer int) *Client {
	t.Helper()
	c := &Client{Hub: hub, UserID: userID, Send: make(chan []byte, buffer)}
	hub.register <- c
	require.Eventually(t, func() bool { return hub.ConnectedClients(userID) > 0 }, time.Second, time.Millisecond)
	return c
}

func TestHub_SendDeliversToEveryDeviceOfTheUser(t *testing.T) {
	hub := startHub(t)
	userID := uuid.New()
	phone := connect(t, hub, userID, 4)
	laptop := connect(t, hub, userID, 4)
	other := connect(t, hub, uuid.New(), 4)
	require.Equal(t, 2, hub.ConnectedClients(userID))

	hub.Send(userID, dto.NotificationResponse{Id: uuid.New(), Type: "PAYMENT_COMPLETED", Title: "Deposit paid"})

	for _, c := range []*Client{phone, laptop} {
		select {
		case raw := <-c.Send:
			var msg struct {
				Type string                   `json:"type"`
				Data dto.NotificationResponse `json:"data"`
			}
			require.NoError(t, json.Unmarshal(raw, &msg))
			assert.Equal(t, "notification", msg.Type)
			assert.Equal(t, "Deposit paid", msg.Data.Title)
		case <-time.After(time.Second):
			t.Fatal("notification not delivered")
		}
	}
	assert.Empty(t, other.Send)
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	hub := startHub(t)
	userID := uuid.New()
	c := connect(t, hub, userID, 1)

	hub.unregister <- c
	require.Eventually(t, func() bool { return hub.ConnectedClients(userID) == 0 }, time.Second, time.Millisecond)

	_, open := <-c.Send
	assert.False(t, open)
}

func TestHub_DropsClientWithFullBuffer(t *testing.T) {
	hub := startHub(t)
	userID := uuid.New()
	connect(t, hub, userID, 0)

	hub.Send(userID, dto.NotificationResponse{Title: "x"})
	assert.Eventually(t, func() bool { return hub.ConnectedClients(userID) == 0 }, time.Second, time.Millisecond)
}
