package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelope_RoundTripKeepsType(t *testing.T) {
	at := time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)
	evt := BaseEvent{
		Type:       "PAYMENT_COMPLETED",
		Data:       map[string]interface{}{"payment_id": "p-1"},
		OccurredAt: at,
	}

	raw, err := json.Marshal(ToEnvelope(evt))
	require.NoError(t, err)

	var env Envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	got := env.Event()

	assert.Equal(t, "PAYMENT_COMPLETED", got.EventType())
	assert.Equal(t, "p-1", got.Payload()["payment_id"])
	assert.True(t, at.Equal(got.Timestamp()))
}
