package pg

import (
	"errors"
	"strconv"
	"strings"

	"github.com/bookmypg/api/services"
	"github.com/bookmypg/api/utils/response"
	"github.com/bookmypg/api/utils/validation"
	"github.com/gofiber/fiber/v2"
)

// PGHandler handles PG listing endpoints
type PGHandler struct {
	service   *services.PGService
	validator *validation.Validator
}

// NewPGHandler creates a new PG handler
func NewPGHandler(service *services.PGService) *PGHandler {
	return &PGHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// CreatePGRequest represents a PG create payload
type CreatePGRequest struct {
	Name       string   `json:"name" validate:"required,min=2"`
	Address    string   `json:"address" validate:"required,min=2"`
	Price      float64  `json:"price" validate:"required,gt=0"`
	Facilities []string `json:"facilities"`
	CollegeID  *uint    `json:"college_id"`
}

// UpdatePGRequest represents a partial PG patch
type UpdatePGRequest struct {
	Name       *string  `json:"name" validate:"omitempty,min=2"`
	Address    *string  `json:"address" validate:"omitempty,min=2"`
	Price      *float64 `json:"price" validate:"omitempty,gt=0"`
	Facilities []string `json:"facilities"`
	CollegeID  *uint    `json:"college_id"`
}

func parseID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid pg id")
		return 0, false
	}
	return uint(id), true
}

// queryUint parses an optional uint query param; a malformed value is a 400
func queryUint(c *fiber.Ctx, name string) (*uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid "+name+" query parameter")
		return nil, false
	}
	u := uint(v)
	return &u, true
}

// queryFloat parses an optional float query param; a malformed value is a 400
func queryFloat(c *fiber.Ctx, name string) (*float64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		response.BadRequest(c, "Invalid "+name+" query parameter")
		return nil, false
	}
	return &v, true
}

func (h *PGHandler) mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrPGNotFound):
		return response.NotFound(c, "PG not found")
	case errors.Is(err, services.ErrCollegeNotFound):
		return response.NotFound(c, "Referenced college not found")
	default:
		return response.InternalServerError(c, "")
	}
}

// List returns a page of PGs filtered by college, price range and facilities
func (h *PGHandler) List(c *fiber.Ctx) error {
	page, limit := response.NormalizePage(c.QueryInt("page", 1), c.QueryInt("limit", 10))

	collegeID, ok := queryUint(c, "college_id")
	if !ok {
		return nil
	}
	minPrice, ok := queryFloat(c, "min_price")
	if !ok {
		return nil
	}
	maxPrice, ok := queryFloat(c, "max_price")
	if !ok {
		return nil
	}

	var facilities []string
	if raw := c.Query("facilities"); raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				facilities = append(facilities, tag)
			}
		}
	}

	pgs, total, err := h.service.List(c.Context(), services.PGListParams{
		Page:       page,
		Limit:      limit,
		Search:     c.Query("search"),
		CollegeID:  collegeID,
		MinPrice:   minPrice,
		MaxPrice:   maxPrice,
		Facilities: facilities,
	})
	if err != nil {
		return h.mapError(c, err)
	}

	return response.Paginated(c, "pgs", pgs, response.CalculatePagination(page, limit, total))
}

// Get returns one PG with its college summary, foods, transports and media
func (h *PGHandler) Get(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return nil
	}

	pg, err := h.service.Get(c.Context(), id)
	if err != nil {
		return h.mapError(c, err)
	}

	return response.Success(c, pg)
}

// Create inserts a new PG
func (h *PGHandler) Create(c *fiber.Ctx) error {
	var req CreatePGRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.Name = validation.SanitizeString(req.Name)
	req.Address = validation.SanitizeString(req.Address)

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	pg, err := h.service.Create(c.Context(), services.CreatePGInput{
		Name:       req.Name,
		Address:    req.Address,
		Price:      req.Price,
		Facilities: req.Facilities,
		CollegeID:  req.CollegeID,
	})
	if err != nil {
		return h.mapError(c, err)
	}

	return response.Created(c, pg)
}

// Update applies a partial patch to a PG
func (h *PGHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return nil
	}

	var req UpdatePGRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	pg, err := h.service.Update(c.Context(), id, services.UpdatePGInput{
		Name:       req.Name,
		Address:    req.Address,
		Price:      req.Price,
		Facilities: req.Facilities,
		CollegeID:  req.CollegeID,
	})
	if err != nil {
		return h.mapError(c, err)
	}

	return response.Success(c, pg)
}

// Delete removes a PG together with its wishlist entries, media, foods and
// transports
func (h *PGHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return nil
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		return h.mapError(c, err)
	}

	return response.SuccessWithMessage(c, "PG deleted successfully", nil)
}
