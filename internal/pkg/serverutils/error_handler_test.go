package serverutils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"rental-marketplace-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandlerMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   string
		wantMsg    string
	}{
		{name: "not found", err: apperror.NotFound("room not found"), wantStatus: 404, wantKind: "NOT_FOUND", wantMsg: "room not found"},
		{name: "invalid state", err: apperror.InvalidState("request is not pending"), wantStatus: 409, wantKind: "INVALID_STATE", wantMsg: "request is not pending"},
		{name: "conflict", err: apperror.Conflict("room is not available"), wantStatus: 409, wantKind: "CONFLICT", wantMsg: "room is not available"},
		{name: "forbidden", err: apperror.Forbidden("not your request"), wantStatus: 403, wantKind: "FORBIDDEN", wantMsg: "not your request"},
		{name: "validation", err: apperror.Validation("guest count exceeds capacity"), wantStatus: 422, wantKind: "VALIDATION_ERROR", wantMsg: "guest count exceeds capacity"},
		{name: "signature", err: apperror.InvalidSignature("bad signature"), wantStatus: 401, wantKind: "INVALID_SIGNATURE", wantMsg: "bad signature"},
		{name: "external", err: apperror.ExternalService("payout failed", errors.New("timeout")), wantStatus: 502, wantKind: "EXTERNAL_SERVICE_ERROR", wantMsg: "payout failed"},
		{name: "internal hides cause", err: apperror.Internal("db down", errors.New("dial tcp")), wantStatus: 500, wantKind: "INTERNAL", wantMsg: "Internal server error"},
		{name: "plain error", err: errors.New("boom"), wantStatus: 500, wantMsg: "Internal server error"},
		{name: "fiber error", err: fiber.NewError(fiber.StatusUnauthorized, "Unauthorized"), wantStatus: 401, wantMsg: "Unauthorized"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(ErrorHandlerMiddleware())
			app.Get("/", func(ctx *fiber.Ctx) error { return tt.err })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			raw, _ := io.ReadAll(resp.Body)
			var body ErrorBody
			require.NoError(t, json.Unmarshal(raw, &body))
			assert.Equal(t, tt.wantKind, body.Kind)
			assert.Equal(t, tt.wantMsg, body.Message)
			assert.False(t, body.Success)
		})
	}
}

type createRequest struct {
	RoomID     string `validate:"required,uuid"`
	GuestCount int    `validate:"required,min=1"`
}

func TestValidateRequest(t *testing.T) {
	err := ValidateRequest(createRequest{RoomID: "nope", GuestCount: 0})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	assert.Contains(t, apperror.MessageOf(err), "RoomID must be a valid UUID")
	assert.Contains(t, apperror.MessageOf(err), "GuestCount is required")

	assert.NoError(t, ValidateRequest(createRequest{RoomID: "7f9c7f3e-3a4f-4d6b-9f55-0c0a3c1a1b2c", GuestCount: 2}))
}
