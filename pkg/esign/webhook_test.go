package esign

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifyWebhook(t *testing.T) {
	sig := SignWebhook("hook-secret", "doc-1", "", EventCompleted)

	assert.True(t, VerifyWebhook("hook-secret", "doc-1", "", EventCompleted, sig))

	tests := []struct {
		name      string
		secret    string
		document  string
		eventType string
		signature string
	}{
		{"event changed", "hook-secret", "doc-1", EventDeclined, sig},
		{"document changed", "hook-secret", "doc-2", EventCompleted, sig},
		{"wrong secret", "other-secret", "doc-1", EventCompleted, sig},
		{"no secret configured", "", "doc-1", EventCompleted, SignWebhook("", "doc-1", "", EventCompleted)},
		{"unsigned", "hook-secret", "doc-1", EventCompleted, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, VerifyWebhook(tt.secret, tt.document, "", tt.eventType, tt.signature))
		})
	}
}
