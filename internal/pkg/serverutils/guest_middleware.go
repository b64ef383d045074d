package serverutils

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const GuestSessionHeader = "X-Guest-Session-Id"

// GuestSessionMiddleware lifts the guest session header into locals.
// A missing or malformed header is fine; guest-only routes check for
// the local and reject when absent.
func GuestSessionMiddleware(ctx *fiber.Ctx) error {
	raw := ctx.Get(GuestSessionHeader)
	if raw != "" {
		if _, err := uuid.Parse(raw); err == nil {
			ctx.Locals("guest_session_id", raw)
		}
	}
	return ctx.Next()
}

// GuestSessionID returns the validated session id from locals, or "".
func GuestSessionID(ctx *fiber.Ctx) string {
	if v, ok := ctx.Locals("guest_session_id").(string); ok {
		return v
	}
	return ""
}

// UserID returns the authenticated user id from locals, or uuid.Nil.
func UserID(ctx *fiber.Ctx) uuid.UUID {
	v, ok := ctx.Locals("user_id").(string)
	if !ok {
		return uuid.Nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return uuid.Nil
	}
	return id
}
