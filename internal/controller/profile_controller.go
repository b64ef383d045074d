package controller

import (
	"jobreach-be/internal/dto"
	"jobreach-be/internal/pkg/serverutils"
	"jobreach-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IProfileController interface {
	RegisterRoutes(r fiber.Router)
	UpsertProfile(ctx *fiber.Ctx) error
	GetProfile(ctx *fiber.Ctx) error
	GetSummary(ctx *fiber.Ctx) error
	UpsertCriteria(ctx *fiber.Ctx) error
	GetCriteria(ctx *fiber.Ctx) error
}

type profileController struct {
	service service.IProfileService
}

func NewProfileController(service service.IProfileService) IProfileController {
	return &profileController{service: service}
}

func (c *profileController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/profile/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.GetProfile)
	h.Put("", c.UpsertProfile)
	h.Get("/summary", c.GetSummary)
	h.Get("/criteria", c.GetCriteria)
	h.Put("/criteria", c.UpsertCriteria)
}

func (c *profileController) UpsertProfile(ctx *fiber.Ctx) error {
	var req dto.UpsertProfileRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpsertProfile(ctx.Context(), serverutils.UserID(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Profile saved", res))
}

func (c *profileController) GetProfile(ctx *fiber.Ctx) error {
	res, err := c.service.GetProfile(ctx.Context(), serverutils.UserID(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get profile", res))
}

func (c *profileController) GetSummary(ctx *fiber.Ctx) error {
	res, err := c.service.GetSummary(ctx.Context(), serverutils.UserID(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get summary", res))
}

func (c *profileController) UpsertCriteria(ctx *fiber.Ctx) error {
	var req dto.UpsertCriteriaRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpsertCriteria(ctx.Context(), serverutils.UserID(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Criteria saved", res))
}

func (c *profileController) GetCriteria(ctx *fiber.Ctx) error {
	res, err := c.service.GetCriteria(ctx.Context(), serverutils.UserID(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get criteria", res))
}
