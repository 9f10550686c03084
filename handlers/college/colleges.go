package college

import (
	"errors"
	"strconv"

	"github.com/bookmypg/api/services"
	"github.com/bookmypg/api/utils/response"
	"github.com/bookmypg/api/utils/validation"
	"github.com/gofiber/fiber/v2"
)

// CollegeHandler handles college endpoints
type CollegeHandler struct {
	service   *services.CollegeService
	validator *validation.Validator
}

// NewCollegeHandler creates a new college handler
func NewCollegeHandler(service *services.CollegeService) *CollegeHandler {
	return &CollegeHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// CreateCollegeRequest represents a college create payload
type CreateCollegeRequest struct {
	Name    string `json:"name" validate:"required,min=2"`
	Address string `json:"address" validate:"required,min=2"`
}

// UpdateCollegeRequest represents a partial college patch
type UpdateCollegeRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=2"`
	Address *string `json:"address" validate:"omitempty,min=2"`
}

func parseID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid college id")
		return 0, false
	}
	return uint(id), true
}

func (h *CollegeHandler) mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrCollegeNotFound):
		return response.NotFound(c, "College not found")
	case errors.Is(err, services.ErrDuplicateCollegeName):
		return response.Conflict(c, "A college with this name already exists")
	case errors.Is(err, services.ErrCollegeHasDependents):
		return response.Conflict(c, "College cannot be deleted while PGs or transports reference it")
	default:
		return response.InternalServerError(c, "")
	}
}

// List returns a page of colleges, searchable by name or address
func (h *CollegeHandler) List(c *fiber.Ctx) error {
	page, limit := response.NormalizePage(c.QueryInt("page", 1), c.QueryInt("limit", 10))

	colleges, total, err := h.service.List(c.Context(), services.CollegeListParams{
		Page:   page,
		Limit:  limit,
		Search: c.Query("search"),
	})
	if err != nil {
		return h.mapError(c, err)
	}

	return response.Paginated(c, "colleges", colleges, response.CalculatePagination(page, limit, total))
}

// Get returns one college with its PGs, available transports and media
func (h *CollegeHandler) Get(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return nil
	}

	college, err := h.service.Get(c.Context(), id)
	if err != nil {
		return h.mapError(c, err)
	}

	return response.Success(c, college)
}

// Create inserts a new college
func (h *CollegeHandler) Create(c *fiber.Ctx) error {
	var req CreateCollegeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.Name = validation.SanitizeString(req.Name)
	req.Address = validation.SanitizeString(req.Address)

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	college, err := h.service.Create(c.Context(), services.CreateCollegeInput{
		Name:    req.Name,
		Address: req.Address,
	})
	if err != nil {
		return h.mapError(c, err)
	}

	return response.Created(c, college)
}

// Update applies a partial patch to a college
func (h *CollegeHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return nil
	}

	var req UpdateCollegeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	college, err := h.service.Update(c.Context(), id, services.UpdateCollegeInput{
		Name:    req.Name,
		Address: req.Address,
	})
	if err != nil {
		return h.mapError(c, err)
	}

	return response.Success(c, college)
}

// Delete removes a college unless PGs or transports still reference it
func (h *CollegeHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return nil
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		return h.mapError(c, err)
	}

	return response.SuccessWithMessage(c, "College deleted successfully", nil)
}
