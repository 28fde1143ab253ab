package controller

import (
	"rental-marketplace-be/internal/pkg/serverutils"
	"rental-marketplace-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IWalletController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	GetWallet(ctx *fiber.Ctx) error
}

type walletController struct {
	service service.IWalletService
}

func NewWalletController(service service.IWalletService) IWalletController {
	return &walletController{service: service}
}

func (c *walletController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	r.Get("/wallet", auth, c.GetWallet)
}

func (c *walletController) GetWallet(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetWallet(ctx.UserContext(), userId, ctx.QueryInt("limit", 50))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Wallet", res))
}
