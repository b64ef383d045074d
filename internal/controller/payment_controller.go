package controller

import (
	"jobreach-be/internal/dto"
	"jobreach-be/internal/pkg/serverutils"
	"jobreach-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPaymentController interface {
	RegisterRoutes(r fiber.Router)
	GetPlans(ctx *fiber.Ctx) error
	Checkout(ctx *fiber.Ctx) error
	Notification(ctx *fiber.Ctx) error
	GetSubscription(ctx *fiber.Ctx) error
}

type paymentController struct {
	service service.IPaymentService
}

func NewPaymentController(service service.IPaymentService) IPaymentController {
	return &paymentController{service: service}
}

func (c *paymentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/billing/v1")
	h.Get("/plans", c.GetPlans)
	// Midtrans calls this one, no auth.
	h.Post("/notification", c.Notification)
	h.Post("/checkout", serverutils.JwtMiddleware, c.Checkout)
	h.Get("/subscription", serverutils.JwtMiddleware, c.GetSubscription)
}

func (c *paymentController) GetPlans(ctx *fiber.Ctx) error {
	res, err := c.service.GetPlans(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get plans", res))
}

func (c *paymentController) Checkout(ctx *fiber.Ctx) error {
	var req dto.CheckoutRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Checkout(ctx.Context(), serverutils.UserID(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Checkout created", res))
}

func (c *paymentController) Notification(ctx *fiber.Ctx) error {
	var req dto.MidtransNotification
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := c.service.HandleNotification(ctx.Context(), &req); err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"status": "ok"})
}

func (c *paymentController) GetSubscription(ctx *fiber.Ctx) error {
	res, err := c.service.GetSubscription(ctx.Context(), serverutils.UserID(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get subscription", res))
}
