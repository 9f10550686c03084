package auth

import (
	"github.com/bookmypg/api/utils/middleware"
	"github.com/bookmypg/api/utils/response"
	"github.com/gofiber/fiber/v2"
)

// Profile returns the authenticated user
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	return response.Success(c, toUserResponse(user))
}
