package controller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"rental-marketplace-be/internal/dto"
	"rental-marketplace-be/internal/pkg/apperror"
	"rental-marketplace-be/internal/pkg/logger"
	"rental-marketplace-be/internal/pkg/serverutils"
	"rental-marketplace-be/internal/service"
	"rental-marketplace-be/pkg/esign"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubContractService struct {
	service.IContractService
	got *dto.SignatureWebhookRequest
	err error
}

func (s *stubContractService) HandleSignatureCallback(_ context.Context, req *dto.SignatureWebhookRequest) error {
	s.got = req
	return s.err
}

func newContractApp(svc *stubContractService) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	NewContractController(svc, logger.NewNopLogger()).RegisterRoutes(app.Group("/api"), serverutils.NewJwtMiddleware(testSecret))
	return app
}

func TestContractController_SignatureWebhook(t *testing.T) {
	body := `{"documentId":"doc-1","eventType":"Completed"}`

	t.Run("signature from header", func(t *testing.T) {
		svc := &stubContractService{}
		req := httptest.NewRequest("POST", "/api/contracts/webhook", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(esign.WebhookSignatureHeader, "abc123")

		resp, err := newContractApp(svc).Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		require.NotNil(t, svc.got)
		assert.Equal(t, "abc123", svc.got.Signature)
		assert.Equal(t, esign.EventCompleted, svc.got.EventType)
	})

	t.Run("signature in body wins", func(t *testing.T) {
		svc := &stubContractService{}
		req := httptest.NewRequest("POST", "/api/contracts/webhook",
			strings.NewReader(`{"documentId":"doc-1","eventType":"Completed","signature":"from-body"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(esign.WebhookSignatureHeader, "from-header")

		_, err := newContractApp(svc).Test(req)
		require.NoError(t, err)
		require.NotNil(t, svc.got)
		assert.Equal(t, "from-body", svc.got.Signature)
	})

	t.Run("invalid signature is refused", func(t *testing.T) {
		svc := &stubContractService{err: apperror.InvalidSignature("invalid webhook signature")}
		req := httptest.NewRequest("POST", "/api/contracts/webhook", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := newContractApp(svc).Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("processing errors are acknowledged", func(t *testing.T) {
		svc := &stubContractService{err: apperror.InvalidState("signature was declined")}
		req := httptest.NewRequest("POST", "/api/contracts/webhook", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := newContractApp(svc).Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}
