package controller

import (
	"rental-marketplace-be/internal/dto"
	"rental-marketplace-be/internal/entity"
	"rental-marketplace-be/internal/pkg/logger"
	"rental-marketplace-be/internal/pkg/serverutils"
	"rental-marketplace-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IWithdrawalController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Create(ctx *fiber.Ctx) error
	ListMine(ctx *fiber.Ctx) error
	ListIncoming(ctx *fiber.Ctx) error
	Get(ctx *fiber.Ctx) error
	Approve(ctx *fiber.Ctx) error
	Reject(ctx *fiber.Ctx) error
	Cancel(ctx *fiber.Ctx) error
	PayoutReturn(ctx *fiber.Ctx) error
}

type withdrawalController struct {
	service service.IWithdrawalService
	logger  logger.ILogger
}

func NewWithdrawalController(service service.IWithdrawalService, log logger.ILogger) IWithdrawalController {
	return &withdrawalController{service: service, logger: log}
}

func (c *withdrawalController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	tenant := serverutils.RequireRole(string(entity.UserRoleTenant))
	landlord := serverutils.RequireRole(string(entity.UserRoleLandlord))

	h := r.Group("/withdrawals")
	h.Get("/payout/return", c.PayoutReturn)

	h.Post("/", auth, tenant, c.Create)
	h.Get("/mine", auth, tenant, c.ListMine)
	h.Get("/incoming", auth, landlord, c.ListIncoming)
	h.Get("/:id", auth, c.Get)
	h.Post("/:id/approve", auth, landlord, c.Approve)
	h.Post("/:id/reject", auth, landlord, c.Reject)
	h.Post("/:id/cancel", auth, tenant, c.Cancel)
}

func (c *withdrawalController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateWithdrawalRequest
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

	res, err := c.service.Create(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Withdrawal requested", res))
}

func (c *withdrawalController) ListMine(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	var q dto.ListQuery
	if err := ctx.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query")
	}

	res, err := c.service.ListForTenant(ctx.UserContext(), userId, q)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Withdrawal requests", res))
}

func (c *withdrawalController) ListIncoming(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	var q dto.ListQuery
	if err := ctx.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query")
	}

	res, err := c.service.ListForLandlord(ctx.UserContext(), userId, q)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Withdrawal requests", res))
}

func (c *withdrawalController) Get(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.Get(ctx.UserContext(), id, userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Withdrawal request", res))
}

func (c *withdrawalController) Approve(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}
	var req dto.ApproveWithdrawalRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Approve(ctx.UserContext(), id, userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Withdrawal approved", res))
}

func (c *withdrawalController) Reject(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}
	var req dto.RejectWithdrawalRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Reject(ctx.UserContext(), id, userId, req.Reason)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Withdrawal rejected", res))
}

func (c *withdrawalController) Cancel(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.Cancel(ctx.UserContext(), id, userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Withdrawal cancelled", res))
}

func (c *withdrawalController) PayoutReturn(ctx *fiber.Ctx) error {
	params := queryValues(ctx)
	res, err := c.service.HandlePayoutReturn(ctx.UserContext(), params)
	if err != nil {
		c.logger.Warn("WITHDRAWAL", "Payout callback not applied", map[string]interface{}{
			"txn_ref":  params.Get("txn_ref"),
			"rsp_code": res.RspCode,
			"error":    err.Error(),
		})
	}
	return ctx.Status(callbackStatus(err)).JSON(res)
}
