package controller

import (
	"jobreach-be/internal/dto"
	"jobreach-be/internal/pkg/serverutils"
	"jobreach-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IInteractionController interface {
	RegisterRoutes(r fiber.Router)
	GetAllByContact(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type interactionController struct {
	service service.IInteractionService
}

func NewInteractionController(service service.IInteractionService) IInteractionController {
	return &interactionController{service: service}
}

func (c *interactionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/interaction/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("/contact/:contactId", c.GetAllByContact)
	h.Post("", c.Create)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
}

func (c *interactionController) GetAllByContact(ctx *fiber.Ctx) error {
	contactId, err := uuid.Parse(ctx.Params("contactId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid contact id")
	}

	res, err := c.service.GetAllByContact(ctx.Context(), serverutils.UserID(ctx), contactId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get interactions", res))
}

func (c *interactionController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateInteractionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), serverutils.UserID(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Interaction logged", res))
}

func (c *interactionController) Update(ctx *fiber.Ctx) error {
	var req dto.UpdateInteractionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id, _ = uuid.Parse(ctx.Params("id"))
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Update(ctx.Context(), serverutils.UserID(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Interaction updated", res))
}

func (c *interactionController) Delete(ctx *fiber.Ctx) error {
	id, _ := uuid.Parse(ctx.Params("id"))

	if err := c.service.Delete(ctx.Context(), serverutils.UserID(ctx), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Interaction deleted", nil))
}
