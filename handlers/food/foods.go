package food

import (
	"errors"
	"strconv"

	"github.com/bookmypg/api/model"
	"github.com/bookmypg/api/services"
	"github.com/bookmypg/api/utils/response"
	"github.com/bookmypg/api/utils/validation"
	"github.com/gofiber/fiber/v2"
)

// FoodHandler handles food venue endpoints
type FoodHandler struct {
	service   *services.FoodService
	validator *validation.Validator
}

// NewFoodHandler creates a new food handler
func NewFoodHandler(service *services.FoodService) *FoodHandler {
	return &FoodHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// CreateFoodRequest represents a food create payload
type CreateFoodRequest struct {
	Name      string  `json:"name" validate:"required,min=2"`
	Type      string  `json:"type" validate:"required,oneof=VEG NON_VEG VEGAN MIXED"`
	Price     float64 `json:"price" validate:"required,gt=0"`
	Available *bool   `json:"available"`
	PGID      *uint   `json:"pg_id"`
}

// UpdateFoodRequest represents a partial food patch
type UpdateFoodRequest struct {
	Name      *string  `json:"name" validate:"omitempty,min=2"`
	Type      *string  `json:"type" validate:"omitempty,oneof=VEG NON_VEG VEGAN MIXED"`
	Price     *float64 `json:"price" validate:"omitempty,gt=0"`
	Available *bool    `json:"available"`
	PGID      *uint    `json:"pg_id"`
}

func parseID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid food id")
		return 0, false
	}
	return uint(id), true
}

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

func queryBool(c *fiber.Ctx, name string) (*bool, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		response.BadRequest(c, "Invalid "+name+" query parameter")
		return nil, false
	}
	return &v, true
}

func (h *FoodHandler) mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrFoodNotFound):
		return response.NotFound(c, "Food not found")
	case errors.Is(err, services.ErrPGNotFound):
		return response.NotFound(c, "Referenced PG not found")
	default:
		return response.InternalServerError(c, "")
	}
}

// List returns a page of food venues filtered by type, PG and availability
func (h *FoodHandler) List(c *fiber.Ctx) error {
	page, limit := response.NormalizePage(c.QueryInt("page", 1), c.QueryInt("limit", 10))

	pgID, ok := queryUint(c, "pg_id")
	if !ok {
		return nil
	}
	available, ok := queryBool(c, "available")
	if !ok {
		return nil
	}

	var foodType *model.FoodType
	if raw := c.Query("type"); raw != "" {
		t := model.FoodType(raw)
		switch t {
		case model.FoodTypeVeg, model.FoodTypeNonVeg, model.FoodTypeVegan, model.FoodTypeMixed:
			foodType = &t
		default:
			return response.BadRequest(c, "Invalid type query parameter")
		}
	}

	foods, total, err := h.service.List(c.Context(), services.FoodListParams{
		Page:      page,
		Limit:     limit,
		Type:      foodType,
		PGID:      pgID,
		Available: available,
	})
	if err != nil {
		return h.mapError(c, err)
	}

	return response.Paginated(c, "foods", foods, response.CalculatePagination(page, limit, total))
}

// Get returns one food venue with its PG summary and media
func (h *FoodHandler) Get(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return nil
	}

	food, err := h.service.Get(c.Context(), id)
	if err != nil {
		return h.mapError(c, err)
	}

	return response.Success(c, food)
}

// Create inserts a new food venue
func (h *FoodHandler) Create(c *fiber.Ctx) error {
	var req CreateFoodRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.Name = validation.SanitizeString(req.Name)

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	food, err := h.service.Create(c.Context(), services.CreateFoodInput{
		Name:      req.Name,
		Type:      model.FoodType(req.Type),
		Price:     req.Price,
		Available: req.Available,
		PGID:      req.PGID,
	})
	if err != nil {
		return h.mapError(c, err)
	}

	return response.Created(c, food)
}

// Update applies a partial patch to a food venue
func (h *FoodHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return nil
	}

	var req UpdateFoodRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	var foodType *model.FoodType
	if req.Type != nil {
		t := model.FoodType(*req.Type)
		foodType = &t
	}

	food, err := h.service.Update(c.Context(), id, services.UpdateFoodInput{
		Name:      req.Name,
		Type:      foodType,
		Price:     req.Price,
		Available: req.Available,
		PGID:      req.PGID,
	})
	if err != nil {
		return h.mapError(c, err)
	}

	return response.Success(c, food)
}

// Delete removes a food venue and its media
func (h *FoodHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return nil
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		return h.mapError(c, err)
	}

	return response.SuccessWithMessage(c, "Food deleted successfully", nil)
}
