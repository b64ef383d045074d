package controller

import (
	"jobreach-be/internal/dto"
	"jobreach-be/internal/pkg/serverutils"
	"jobreach-be/internal/service"
	"jobreach-be/pkg/linking"

	"github.com/gofiber/fiber/v2"
)

type ILinkController interface {
	RegisterRoutes(r fiber.Router)
	Trigger(ctx *fiber.Ctx) error
	Status(ctx *fiber.Ctx) error
}

type linkController struct {
	service service.ILinkService
}

func NewLinkController(service service.ILinkService) ILinkController {
	return &linkController{service: service}
}

func (c *linkController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/link/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Use(serverutils.GuestSessionMiddleware)
	h.Post("/trigger", c.Trigger)
	h.Get("/status", c.Status)
}

func (c *linkController) Trigger(ctx *fiber.Ctx) error {
	var req dto.TriggerLinkRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if req.GuestSessionId == "" {
		req.GuestSessionId = serverutils.GuestSessionID(ctx)
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	outcome := c.service.TriggerReconcile(ctx.Context(), serverutils.UserID(ctx), req.GuestSessionId, linking.OriginExplicit)
	return ctx.JSON(serverutils.SuccessResponse("Link reconcile run", fiber.Map{
		"state":    string(outcome.State),
		"linked":   outcome.Linked,
		"attempts": outcome.Attempts,
	}))
}

func (c *linkController) Status(ctx *fiber.Ctx) error {
	sessionId := serverutils.GuestSessionID(ctx)
	if sessionId == "" {
		sessionId = ctx.Query("session_id")
	}
	if sessionId == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing guest session id")
	}

	res, err := c.service.Status(ctx.Context(), serverutils.UserID(ctx), sessionId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get link status", res))
}
