package controller

import (
	"rental-marketplace-be/internal/dto"
	"rental-marketplace-be/internal/entity"
	"rental-marketplace-be/internal/pkg/serverutils"
	"rental-marketplace-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// IAdminController exposes the recovery jobs and the operator views. A
// scheduler outside the process calls the jobs; the ops CLI runs the same
// services directly.
type IAdminController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	ExpireConfirmations(ctx *fiber.Ctx) error
	RetryContracts(ctx *fiber.Ctx) error
	ReconcilePayment(ctx *fiber.Ctx) error
	ReconcileWallet(ctx *fiber.Ctx) error

	GetDashboardStats(ctx *fiber.Ctx) error
	GetPayments(ctx *fiber.Ctx) error
	GetRefunds(ctx *fiber.Ctx) error
	RefundPayment(ctx *fiber.Ctx) error
}

type adminController struct {
	admin      service.IAdminService
	agreements service.IAgreementService
	contracts  service.IContractService
	payments   service.IPaymentService
	wallets    service.IWalletService
}

func NewAdminController(
	admin service.IAdminService,
	agreements service.IAgreementService,
	contracts service.IContractService,
	payments service.IPaymentService,
	wallets service.IWalletService,
) IAdminController {
	return &adminController{
		admin:      admin,
		agreements: agreements,
		contracts:  contracts,
		payments:   payments,
		wallets:    wallets,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/admin", auth, serverutils.RequireRole(string(entity.UserRoleAdmin)))
	h.Post("/jobs/expire-confirmations", c.ExpireConfirmations)
	h.Post("/jobs/retry-contracts", c.RetryContracts)
	h.Post("/payments/:id/reconcile", c.ReconcilePayment)
	h.Post("/wallets/:id/reconcile", c.ReconcileWallet)

	h.Get("/dashboard", c.GetDashboardStats)
	h.Get("/payments", c.GetPayments)
	h.Get("/refunds", c.GetRefunds)
	h.Post("/refunds/:id", c.RefundPayment)
}

func (c *adminController) ExpireConfirmations(ctx *fiber.Ctx) error {
	n, err := c.agreements.ExpireOldConfirmations(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Expired confirmations", dto.ExpireConfirmationsResponse{Expired: n}))
}

func (c *adminController) RetryContracts(ctx *fiber.Ctx) error {
	res, err := c.contracts.RetryFailedDispatches(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Contract dispatch retried", res))
}

func (c *adminController) ReconcilePayment(ctx *fiber.Ctx) error {
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}
	res, err := c.payments.ReconcilePayment(ctx.UserContext(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Payment reconciled", res))
}

func (c *adminController) ReconcileWallet(ctx *fiber.Ctx) error {
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}
	res, err := c.wallets.ReconcileBalance(ctx.UserContext(), id, ctx.QueryBool("repair", false))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Wallet reconciled", res))
}

func (c *adminController) GetDashboardStats(ctx *fiber.Ctx) error {
	res, err := c.admin.GetDashboardStats(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Dashboard stats", res))
}

func (c *adminController) GetPayments(ctx *fiber.Ctx) error {
	res, err := c.admin.GetPayments(ctx.UserContext(), ctx.QueryInt("page", 1), ctx.QueryInt("limit", 10), ctx.Query("status"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Payments", res))
}

func (c *adminController) GetRefunds(ctx *fiber.Ctx) error {
	res, err := c.admin.GetRefundsRequired(ctx.UserContext(), ctx.QueryInt("page", 1), ctx.QueryInt("limit", 10))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Payments awaiting refund", res))
}

func (c *adminController) RefundPayment(ctx *fiber.Ctx) error {
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}
	var req dto.AdminRefundPaymentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.admin.RefundPayment(ctx.UserContext(), id, req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Payment refunded", res))
}
