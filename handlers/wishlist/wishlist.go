package wishlist

import (
	"errors"
	"strconv"

	"github.com/bookmypg/api/services"
	"github.com/bookmypg/api/utils/middleware"
	"github.com/bookmypg/api/utils/response"
	"github.com/gofiber/fiber/v2"
)

// WishlistHandler handles the caller-scoped wishlist endpoints
type WishlistHandler struct {
	service *services.WishlistService
}

// NewWishlistHandler creates a new wishlist handler
func NewWishlistHandler(service *services.WishlistService) *WishlistHandler {
	return &WishlistHandler{service: service}
}

// AddWishlistRequest represents a wishlist add payload
type AddWishlistRequest struct {
	PGID uint `json:"pg_id" validate:"required"`
}

func (h *WishlistHandler) mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrPGNotFound):
		return response.NotFound(c, "PG not found")
	case errors.Is(err, services.ErrAlreadyInWishlist):
		return response.Conflict(c, "PG is already in your wishlist")
	case errors.Is(err, services.ErrWishlistEntryNotFound):
		return response.NotFound(c, "Wishlist entry not found")
	default:
		return response.InternalServerError(c, "")
	}
}

// List returns the caller's wishlist, newest first
func (h *WishlistHandler) List(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	page, limit := response.NormalizePage(c.QueryInt("page", 1), c.QueryInt("limit", 10))

	entries, total, err := h.service.List(c.Context(), userID, page, limit)
	if err != nil {
		return h.mapError(c, err)
	}

	return response.Paginated(c, "wishlist", entries, response.CalculatePagination(page, limit, total))
}

// Add saves a PG to the caller's wishlist
func (h *WishlistHandler) Add(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	var req AddWishlistRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.PGID == 0 {
		return response.BadRequest(c, "pg_id is required")
	}

	entry, err := h.service.Add(c.Context(), userID, req.PGID)
	if err != nil {
		return h.mapError(c, err)
	}

	return response.Created(c, entry)
}

// Remove deletes the caller's wishlist entry for the given PG
func (h *WishlistHandler) Remove(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	pgID, err := strconv.ParseUint(c.Params("pgId"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid pg id")
	}

	if err := h.service.Remove(c.Context(), userID, uint(pgID)); err != nil {
		return h.mapError(c, err)
	}

	return response.SuccessWithMessage(c, "Removed from wishlist", nil)
}
