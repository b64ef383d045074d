package controller

import (
	"fmt"
	"os"

	"jobreach-be/internal/pkg/serverutils"
	"jobreach-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IOAuthController interface {
	RegisterRoutes(r fiber.Router)
	Login(ctx *fiber.Ctx) error
	Callback(ctx *fiber.Ctx) error
}

type oauthController struct {
	service service.IOAuthService
}

func NewOAuthController(service service.IOAuthService) IOAuthController {
	return &oauthController{service: service}
}

func (c *oauthController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth/v1/oauth")
	h.Get("/:provider", c.Login)
	h.Get("/:provider/callback", c.Callback)
}

func (c *oauthController) Login(ctx *fiber.Ctx) error {
	url, err := c.service.GetLoginURL(ctx.Params("provider"))
	if err != nil {
		return err
	}
	return ctx.Redirect(url)
}

func (c *oauthController) Callback(ctx *fiber.Ctx) error {
	code := ctx.Query("code")
	if code == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing authorization code")
	}

	// A guest session riding along the OAuth flow comes back in the
	// state-adjacent query param set by the frontend.
	guestSessionId := ctx.Query("guest_session_id")
	if guestSessionId == "" {
		guestSessionId = serverutils.GuestSessionID(ctx)
	}

	res, err := c.service.HandleCallback(ctx.Context(), ctx.Params("provider"), code, guestSessionId)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}

	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		return ctx.JSON(serverutils.SuccessResponse("Logged in", res))
	}
	return ctx.Redirect(fmt.Sprintf("%s/app?token=%s", frontendURL, res.AccessToken), fiber.StatusTemporaryRedirect)
}
