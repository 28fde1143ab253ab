package controller

import (
	"rental-marketplace-be/internal/dto"
	"rental-marketplace-be/internal/entity"
	"rental-marketplace-be/internal/pkg/logger"
	"rental-marketplace-be/internal/pkg/serverutils"
	"rental-marketplace-be/internal/service"
	"rental-marketplace-be/pkg/esign"

	"github.com/gofiber/fiber/v2"
)

type IContractController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	SignatureWebhook(ctx *fiber.Ctx) error
	GetTenancy(ctx *fiber.Ctx) error
	EndTenancy(ctx *fiber.Ctx) error
}

type contractController struct {
	service service.IContractService
	logger  logger.ILogger
}

func NewContractController(service service.IContractService, log logger.ILogger) IContractController {
	return &contractController{service: service, logger: log}
}

func (c *contractController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	r.Post("/contracts/webhook", c.SignatureWebhook)

	t := r.Group("/tenancies", auth)
	t.Get("/:id", c.GetTenancy)
	t.Post("/:id/end", serverutils.RequireRole(string(entity.UserRoleLandlord)), c.EndTenancy)
}

func (c *contractController) SignatureWebhook(ctx *fiber.Ctx) error {
	var req dto.SignatureWebhookRequest
	if err := ctx.BodyParser(&req); err != nil {
		c.logger.Warn("CONTRACT", "Signature webhook body parsing failed", map[string]interface{}{"error": err.Error()})
		return ctx.SendStatus(fiber.StatusBadRequest)
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	if req.Signature == "" {
		req.Signature = ctx.Get(esign.WebhookSignatureHeader)
	}

	if err := c.service.HandleSignatureCallback(ctx.UserContext(), &req); err != nil {
		c.logger.Warn("CONTRACT", "Signature webhook not applied", map[string]interface{}{
			"document_id": req.DocumentId,
			"event_type":  req.EventType,
			"error":       err.Error(),
		})
		return ctx.SendStatus(callbackStatus(err))
	}
	return ctx.SendStatus(fiber.StatusOK)
}

func (c *contractController) GetTenancy(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.GetTenancy(ctx.UserContext(), id, userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Tenancy", res))
}

func (c *contractController) EndTenancy(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}
	var req dto.EndTenancyRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
	}

	res, err := c.service.EndTenancy(ctx.UserContext(), id, userId, req.Terminated)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Tenancy ended", res))
}
