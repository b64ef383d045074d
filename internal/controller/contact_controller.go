package controller

import (
	"jobreach-be/internal/dto"
	"jobreach-be/internal/pkg/serverutils"
	"jobreach-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IContactController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type contactController struct {
	service service.IContactService
}

func NewContactController(service service.IContactService) IContactController {
	return &contactController{service: service}
}

func (c *contactController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/contact/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.GetAll)
	h.Post("", c.Create)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
}

func (c *contactController) GetAll(ctx *fiber.Ctx) error {
	var companyId *uuid.UUID
	if raw := ctx.Query("company_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid company_id")
		}
		companyId = &id
	}

	res, err := c.service.GetAll(ctx.Context(), serverutils.UserID(ctx), companyId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get all contacts", res))
}

func (c *contactController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateContactRequest
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
	return ctx.JSON(serverutils.SuccessResponse("Contact created", res))
}

func (c *contactController) Show(ctx *fiber.Ctx) error {
	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.service.Show(ctx.Context(), serverutils.UserID(ctx), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get contact", res))
}

func (c *contactController) Update(ctx *fiber.Ctx) error {
	var req dto.UpdateContactRequest
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
	return ctx.JSON(serverutils.SuccessResponse("Contact updated", res))
}

func (c *contactController) Delete(ctx *fiber.Ctx) error {
	id, _ := uuid.Parse(ctx.Params("id"))

	if err := c.service.Delete(ctx.Context(), serverutils.UserID(ctx), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Contact deleted", nil))
}
