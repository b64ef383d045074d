package controller

import (
	"jobreach-be/internal/dto"
	"jobreach-be/internal/pkg/serverutils"
	"jobreach-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IGuestController interface {
	RegisterRoutes(r fiber.Router)
	GetOrCreate(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	SaveProfile(ctx *fiber.Ctx) error
	SaveContact(ctx *fiber.Ctx) error
	SelectMessage(ctx *fiber.Ctx) error
	Clear(ctx *fiber.Ctx) error
}

type guestController struct {
	service service.IGuestService
}

func NewGuestController(service service.IGuestService) IGuestController {
	return &guestController{service: service}
}

func (c *guestController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/guest/v1")
	h.Use(serverutils.GuestSessionMiddleware)
	h.Post("/session", c.GetOrCreate)
	h.Get("/session", c.Show)
	h.Put("/session/profile", c.SaveProfile)
	h.Put("/session/contact", c.SaveContact)
	h.Put("/session/select-message", c.SelectMessage)
	h.Delete("/session", c.Clear)
}

func (c *guestController) GetOrCreate(ctx *fiber.Ctx) error {
	res, err := c.service.GetOrCreate(ctx.Context(), serverutils.GuestSessionID(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Guest session ready", res))
}

func (c *guestController) Show(ctx *fiber.Ctx) error {
	sessionId := serverutils.GuestSessionID(ctx)
	if sessionId == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing guest session header")
	}

	res, err := c.service.Get(ctx.Context(), sessionId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get guest session", res))
}

func (c *guestController) SaveProfile(ctx *fiber.Ctx) error {
	sessionId := serverutils.GuestSessionID(ctx)
	if sessionId == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing guest session header")
	}

	var req dto.GuestProfilePayload
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.SaveProfile(ctx.Context(), sessionId, &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Guest profile saved", nil))
}

func (c *guestController) SaveContact(ctx *fiber.Ctx) error {
	sessionId := serverutils.GuestSessionID(ctx)
	if sessionId == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing guest session header")
	}

	var req dto.GuestContactPayload
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.SaveContact(ctx.Context(), sessionId, &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Guest contact saved", nil))
}

func (c *guestController) SelectMessage(ctx *fiber.Ctx) error {
	sessionId := serverutils.GuestSessionID(ctx)
	if sessionId == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing guest session header")
	}

	var req dto.SelectMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.SelectMessage(ctx.Context(), sessionId, req.Version); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Message version selected", nil))
}

func (c *guestController) Clear(ctx *fiber.Ctx) error {
	sessionId := serverutils.GuestSessionID(ctx)
	if sessionId == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing guest session header")
	}

	if err := c.service.Clear(ctx.Context(), sessionId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Guest session cleared", nil))
}
