package controller

import (
	"jobreach-be/internal/dto"
	"jobreach-be/internal/pkg/serverutils"
	"jobreach-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IMessageController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Select(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type messageController struct {
	service service.IMessageService
}

func NewMessageController(service service.IMessageService) IMessageController {
	return &messageController{service: service}
}

func (c *messageController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/message/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.GetAll)
	h.Put(":id", c.Update)
	h.Put(":id/select", c.Select)
	h.Delete(":id", c.Delete)
}

func (c *messageController) GetAll(ctx *fiber.Ctx) error {
	var contactId *uuid.UUID
	if raw := ctx.Query("contact_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid contact_id")
		}
		contactId = &id
	}

	res, err := c.service.GetAll(ctx.Context(), serverutils.UserID(ctx), contactId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get messages", res))
}

func (c *messageController) Update(ctx *fiber.Ctx) error {
	var req dto.UpdateMessageRequest
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
	return ctx.JSON(serverutils.SuccessResponse("Message updated", res))
}

func (c *messageController) Select(ctx *fiber.Ctx) error {
	id, _ := uuid.Parse(ctx.Params("id"))

	if err := c.service.Select(ctx.Context(), serverutils.UserID(ctx), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Message selected", nil))
}

func (c *messageController) Delete(ctx *fiber.Ctx) error {
	id, _ := uuid.Parse(ctx.Params("id"))

	if err := c.service.Delete(ctx.Context(), serverutils.UserID(ctx), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Message deleted", nil))
}
