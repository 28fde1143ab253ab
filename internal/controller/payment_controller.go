package controller

import (
	"rental-marketplace-be/internal/dto"
	"rental-marketplace-be/internal/entity"
	"rental-marketplace-be/internal/pkg/logger"
	"rental-marketplace-be/internal/pkg/serverutils"
	"rental-marketplace-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPaymentController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	CreateDeposit(ctx *fiber.Ctx) error
	VNPayIPN(ctx *fiber.Ctx) error
	MidtransNotification(ctx *fiber.Ctx) error
	Get(ctx *fiber.Ctx) error
}

type paymentController struct {
	service service.IPaymentService
	logger  logger.ILogger
}

func NewPaymentController(service service.IPaymentService, log logger.ILogger) IPaymentController {
	return &paymentController{service: service, logger: log}
}

func (c *paymentController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/payments")
	// Provider callbacks are authenticated by their signature.
	h.Get("/vnpay/ipn", c.VNPayIPN)
	h.Get("/vnpay/return", c.VNPayIPN)
	h.Post("/midtrans/notification", c.MidtransNotification)

	h.Post("/deposit", auth, serverutils.RequireRole(string(entity.UserRoleTenant)), c.CreateDeposit)
	h.Get("/:id", auth, c.Get)
}

func (c *paymentController) CreateDeposit(ctx *fiber.Ctx) error {
	var req dto.CreateDepositPaymentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.CreateDepositPayment(ctx.UserContext(), userId, &req, ctx.IP())
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Deposit payment created", res))
}

func (c *paymentController) VNPayIPN(ctx *fiber.Ctx) error {
	params := queryValues(ctx)
	res, err := c.service.HandleGatewayReturn(ctx.UserContext(), params)
	if err != nil {
		c.logger.Warn("PAYMENT", "Gateway callback not applied", map[string]interface{}{
			"txn_ref":  params.Get("vnp_TxnRef"),
			"rsp_code": res.RspCode,
			"error":    err.Error(),
		})
	}
	return ctx.Status(callbackStatus(err)).JSON(res)
}

func (c *paymentController) MidtransNotification(ctx *fiber.Ctx) error {
	var req dto.MidtransWebhookRequest
	if err := ctx.BodyParser(&req); err != nil {
		c.logger.Warn("PAYMENT", "Midtrans notification body parsing failed", map[string]interface{}{"error": err.Error()})
		return ctx.SendStatus(fiber.StatusBadRequest)
	}

	if err := c.service.HandleMidtransNotification(ctx.UserContext(), &req); err != nil {
		c.logger.Warn("PAYMENT", "Midtrans notification not applied", map[string]interface{}{
			"order_id": req.OrderId,
			"error":    err.Error(),
		})
		return ctx.SendStatus(callbackStatus(err))
	}
	return ctx.SendStatus(fiber.StatusOK)
}

func (c *paymentController) Get(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.GetPayment(ctx.UserContext(), id, userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Payment", res))
}
