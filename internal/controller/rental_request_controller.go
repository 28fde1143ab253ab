package controller

import (
	"rental-marketplace-be/internal/dto"
	"rental-marketplace-be/internal/entity"
	"rental-marketplace-be/internal/pkg/serverutils"
	"rental-marketplace-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IRentalRequestController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Create(ctx *fiber.Ctx) error
	ListMine(ctx *fiber.Ctx) error
	ListIncoming(ctx *fiber.Ctx) error
	Get(ctx *fiber.Ctx) error
	Accept(ctx *fiber.Ctx) error
	AcceptAndOffer(ctx *fiber.Ctx) error
	Reject(ctx *fiber.Ctx) error
	Withdraw(ctx *fiber.Ctx) error
}

type rentalRequestController struct {
	service service.IRentalRequestService
}

func NewRentalRequestController(service service.IRentalRequestService) IRentalRequestController {
	return &rentalRequestController{service: service}
}

func (c *rentalRequestController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	tenant := serverutils.RequireRole(string(entity.UserRoleTenant))
	landlord := serverutils.RequireRole(string(entity.UserRoleLandlord))

	h := r.Group("/rental-requests", auth)
	h.Post("/", tenant, c.Create)
	h.Get("/mine", tenant, c.ListMine)
	h.Get("/incoming", landlord, c.ListIncoming)
	h.Get("/:id", c.Get)
	h.Post("/:id/accept", landlord, c.Accept)
	h.Post("/:id/accept-and-offer", landlord, c.AcceptAndOffer)
	h.Post("/:id/reject", landlord, c.Reject)
	h.Post("/:id/withdraw", tenant, c.Withdraw)
}

func (c *rentalRequestController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateRentalRequestRequest
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
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Rental request created", res))
}

func (c *rentalRequestController) ListMine(ctx *fiber.Ctx) error {
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
	return ctx.JSON(serverutils.SuccessResponse("Rental requests", res))
}

func (c *rentalRequestController) ListIncoming(ctx *fiber.Ctx) error {
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
	return ctx.JSON(serverutils.SuccessResponse("Rental requests", res))
}

func (c *rentalRequestController) Get(ctx *fiber.Ctx) error {
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
	return ctx.JSON(serverutils.SuccessResponse("Rental request", res))
}

func (c *rentalRequestController) respondBody(ctx *fiber.Ctx) (string, error) {
	var req dto.RespondRentalRequestRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return "", fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return "", err
	}
	return req.ResponseMessage, nil
}

func (c *rentalRequestController) Accept(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}
	msg, err := c.respondBody(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Accept(ctx.UserContext(), id, userId, msg)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Rental request accepted", res))
}

func (c *rentalRequestController) AcceptAndOffer(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}
	var req dto.AcceptAndOfferRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.AcceptAndOffer(ctx.UserContext(), id, userId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Rental request accepted and agreement offered", res))
}

func (c *rentalRequestController) Reject(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}
	msg, err := c.respondBody(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Reject(ctx.UserContext(), id, userId, msg)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Rental request rejected", res))
}

func (c *rentalRequestController) Withdraw(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.Withdraw(ctx.UserContext(), id, userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Rental request withdrawn", res))
}
