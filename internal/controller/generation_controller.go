package controller

import (
	"jobreach-be/internal/dto"
	"jobreach-be/internal/pkg/serverutils"
	"jobreach-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Generation routes run under the optional JWT middleware. A signed-in
// caller generates against their account; a guest generates against
// their session, carried in the guest header.
type IGenerationController interface {
	RegisterRoutes(r fiber.Router)
	GenerateSummary(ctx *fiber.Ctx) error
	GenerateCompanies(ctx *fiber.Ctx) error
	GenerateMessages(ctx *fiber.Ctx) error
	MatchCompanies(ctx *fiber.Ctx) error
}

type generationController struct {
	service service.IGenerationService
}

func NewGenerationController(service service.IGenerationService) IGenerationController {
	return &generationController{service: service}
}

func (c *generationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/generate/v1")
	h.Use(serverutils.OptionalJwtMiddleware)
	h.Use(serverutils.GuestSessionMiddleware)
	h.Post("/summary", c.GenerateSummary)
	h.Post("/companies", c.GenerateCompanies)
	h.Post("/messages", c.GenerateMessages)
	h.Post("/match-companies", c.MatchCompanies)
}

func (c *generationController) GenerateSummary(ctx *fiber.Ctx) error {
	var req dto.GenerateSummaryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	userId := serverutils.UserID(ctx)
	if userId != uuid.Nil {
		res, err := c.service.GenerateSummaryForUser(ctx.Context(), userId, &req)
		if err != nil {
			return err
		}
		return ctx.JSON(serverutils.SuccessResponse("Summary generated", res))
	}

	sessionId := serverutils.GuestSessionID(ctx)
	if sessionId == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "sign in or provide a guest session")
	}

	res, err := c.service.GenerateSummaryForGuest(ctx.Context(), sessionId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Summary generated", res))
}

func (c *generationController) GenerateCompanies(ctx *fiber.Ctx) error {
	userId := serverutils.UserID(ctx)
	if userId == uuid.Nil {
		return fiber.NewError(fiber.StatusUnauthorized, "company suggestions require an account")
	}

	var req dto.GenerateCompaniesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.GenerateCompanies(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Companies suggested", res))
}

func (c *generationController) GenerateMessages(ctx *fiber.Ctx) error {
	var req dto.GenerateMessagesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	userId := serverutils.UserID(ctx)
	if userId != uuid.Nil {
		res, err := c.service.GenerateMessagesForUser(ctx.Context(), userId, &req)
		if err != nil {
			return err
		}
		return ctx.JSON(serverutils.SuccessResponse("Messages generated", res))
	}

	sessionId := serverutils.GuestSessionID(ctx)
	if sessionId == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "sign in or provide a guest session")
	}

	res, err := c.service.GenerateMessagesForGuest(ctx.Context(), sessionId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Messages generated", res))
}

func (c *generationController) MatchCompanies(ctx *fiber.Ctx) error {
	userId := serverutils.UserID(ctx)
	if userId == uuid.Nil {
		return fiber.NewError(fiber.StatusUnauthorized, "semantic match requires an account")
	}

	var req dto.MatchCompaniesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.MatchCompanies(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success match companies", res))
}
