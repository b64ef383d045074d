package controller

import (
	"jobreach-be/internal/dto"
	"jobreach-be/internal/pkg/serverutils"
	"jobreach-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ICompanyController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type companyController struct {
	service service.ICompanyService
}

func NewCompanyController(service service.ICompanyService) ICompanyController {
	return &companyController{service: service}
}

func (c *companyController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/company/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.GetAll)
	h.Post("", c.Create)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
}

func (c *companyController) GetAll(ctx *fiber.Ctx) error {
	res, err := c.service.GetAll(ctx.Context(), serverutils.UserID(ctx), ctx.Query("status"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get all companies", res))
}

func (c *companyController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateCompanyRequest
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
	return ctx.JSON(serverutils.SuccessResponse("Company created", res))
}

func (c *companyController) Show(ctx *fiber.Ctx) error {
	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.service.Show(ctx.Context(), serverutils.UserID(ctx), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get company", res))
}

func (c *companyController) Update(ctx *fiber.Ctx) error {
	var req dto.UpdateCompanyRequest
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
	return ctx.JSON(serverutils.SuccessResponse("Company updated", res))
}

func (c *companyController) Delete(ctx *fiber.Ctx) error {
	id, _ := uuid.Parse(ctx.Params("id"))

	if err := c.service.Delete(ctx.Context(), serverutils.UserID(ctx), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Company deleted", nil))
}
