package controller

import (
	"rental-marketplace-be/internal/dto"
	"rental-marketplace-be/internal/entity"
	"rental-marketplace-be/internal/pkg/serverutils"
	"rental-marketplace-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAgreementController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Create(ctx *fiber.Ctx) error
	Preview(ctx *fiber.Ctx) error
	Confirm(ctx *fiber.Ctx) error
	Reject(ctx *fiber.Ctx) error
	Get(ctx *fiber.Ctx) error
}

type agreementController struct {
	service service.IAgreementService
}

func NewAgreementController(service service.IAgreementService) IAgreementController {
	return &agreementController{service: service}
}

func (c *agreementController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	tenant := serverutils.RequireRole(string(entity.UserRoleTenant))

	h := r.Group("/agreements")
	// The token is the capability; preview needs no session.
	h.Get("/preview", c.Preview)

	h.Post("/", auth, serverutils.RequireRole(string(entity.UserRoleLandlord)), c.Create)
	h.Post("/confirm", auth, tenant, c.Confirm)
	h.Post("/reject", auth, tenant, c.Reject)
	h.Get("/:id", auth, c.Get)
}

func (c *agreementController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateAgreementRequest
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

	res, err := c.service.CreateFromAcceptedRequest(ctx.UserContext(), req.RentalRequestId, userId, req.Terms)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Agreement offered", res))
}

func (c *agreementController) Preview(ctx *fiber.Ctx) error {
	token := ctx.Query("token")
	if token == "" {
		return fiber.NewError(fiber.StatusBadRequest, "token is required")
	}

	res, err := c.service.Preview(ctx.UserContext(), token)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Agreement preview", res))
}

func (c *agreementController) Confirm(ctx *fiber.Ctx) error {
	var req dto.ConfirmAgreementRequest
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

	res, err := c.service.Confirm(ctx.UserContext(), req.Token, userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Agreement confirmed", res))
}

func (c *agreementController) Reject(ctx *fiber.Ctx) error {
	var req dto.RejectAgreementRequest
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

	res, err := c.service.Reject(ctx.UserContext(), req.Token, userId, req.Reason)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Agreement rejected", res))
}

func (c *agreementController) Get(ctx *fiber.Ctx) error {
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
	return ctx.JSON(serverutils.SuccessResponse("Agreement", res))
}
