package transport

import (
	"errors"
	"strconv"

	"github.com/bookmypg/api/model"
	"github.com/bookmypg/api/services"
	"github.com/bookmypg/api/utils/response"
	"github.com/bookmypg/api/utils/validation"
	"github.com/gofiber/fiber/v2"
)

// TransportHandler handles transport option endpoints
type TransportHandler struct {
	service   *services.TransportService
	validator *validation.Validator
}

// NewTransportHandler creates a new transport handler
func NewTransportHandler(service *services.TransportService) *TransportHandler {
	return &TransportHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// CreateTransportRequest represents a transport create payload
type CreateTransportRequest struct {
	Name       string   `json:"name" validate:"required,min=2"`
	Type       string   `json:"type" validate:"required,oneof=BUS SHUTTLE TRAIN METRO OTHER"`
	Route      string   `json:"route"`
	StartPoint string   `json:"start_point"`
	EndPoint   string   `json:"end_point"`
	Fare       *float64 `json:"fare" validate:"omitempty,gt=0"`
	Schedule   string   `json:"schedule"`
	Available  *bool    `json:"available"`
	PGID       *uint    `json:"pg_id"`
	CollegeID  *uint    `json:"college_id"`
}

// UpdateTransportRequest represents a partial transport patch
type UpdateTransportRequest struct {
	Name       *string  `json:"name" validate:"omitempty,min=2"`
	Type       *string  `json:"type" validate:"omitempty,oneof=BUS SHUTTLE TRAIN METRO OTHER"`
	Route      *string  `json:"route"`
	StartPoint *string  `json:"start_point"`
	EndPoint   *string  `json:"end_point"`
	Fare       *float64 `json:"fare" validate:"omitempty,gt=0"`
	Schedule   *string  `json:"schedule"`
	Available  *bool    `json:"available"`
	PGID       *uint    `json:"pg_id"`
	CollegeID  *uint    `json:"college_id"`
}

func parseID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid transport id")
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

func (h *TransportHandler) mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrTransportNotFound):
		return response.NotFound(c, "Transport not found")
	case errors.Is(err, services.ErrPGNotFound):
		return response.NotFound(c, "Referenced PG not found")
	case errors.Is(err, services.ErrCollegeNotFound):
		return response.NotFound(c, "Referenced college not found")
	default:
		return response.InternalServerError(c, "")
	}
}

// List returns a page of transport options filtered by type, PG, college
// and availability
func (h *TransportHandler) List(c *fiber.Ctx) error {
	page, limit := response.NormalizePage(c.QueryInt("page", 1), c.QueryInt("limit", 10))

	pgID, ok := queryUint(c, "pg_id")
	if !ok {
		return nil
	}
	collegeID, ok := queryUint(c, "college_id")
	if !ok {
		return nil
	}
	available, ok := queryBool(c, "available")
	if !ok {
		return nil
	}

	var transportType *model.TransportType
	if raw := c.Query("type"); raw != "" {
		t := model.TransportType(raw)
		switch t {
		case model.TransportTypeBus, model.TransportTypeShuttle, model.TransportTypeTrain,
			model.TransportTypeMetro, model.TransportTypeOther:
			transportType = &t
		default:
			return response.BadRequest(c, "Invalid type query parameter")
		}
	}

	transports, total, err := h.service.List(c.Context(), services.TransportListParams{
		Page:      page,
		Limit:     limit,
		Type:      transportType,
		PGID:      pgID,
		CollegeID: collegeID,
		Available: available,
	})
	if err != nil {
		return h.mapError(c, err)
	}

	return response.Paginated(c, "transports", transports, response.CalculatePagination(page, limit, total))
}

// Get returns one transport option with its PG/college summaries and media
func (h *TransportHandler) Get(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return nil
	}

	transport, err := h.service.Get(c.Context(), id)
	if err != nil {
		return h.mapError(c, err)
	}

	return response.Success(c, transport)
}

// Create inserts a new transport option
func (h *TransportHandler) Create(c *fiber.Ctx) error {
	var req CreateTransportRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.Name = validation.SanitizeString(req.Name)

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	transport, err := h.service.Create(c.Context(), services.CreateTransportInput{
		Name:       req.Name,
		Type:       model.TransportType(req.Type),
		Route:      req.Route,
		StartPoint: req.StartPoint,
		EndPoint:   req.EndPoint,
		Fare:       req.Fare,
		Schedule:   req.Schedule,
		Available:  req.Available,
		PGID:       req.PGID,
		CollegeID:  req.CollegeID,
	})
	if err != nil {
		return h.mapError(c, err)
	}

	return response.Created(c, transport)
}

// Update applies a partial patch to a transport option
func (h *TransportHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return nil
	}

	var req UpdateTransportRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	var transportType *model.TransportType
	if req.Type != nil {
		t := model.TransportType(*req.Type)
		transportType = &t
	}

	transport, err := h.service.Update(c.Context(), id, services.UpdateTransportInput{
		Name:       req.Name,
		Type:       transportType,
		Route:      req.Route,
		StartPoint: req.StartPoint,
		EndPoint:   req.EndPoint,
		Fare:       req.Fare,
		Schedule:   req.Schedule,
		Available:  req.Available,
		PGID:       req.PGID,
		CollegeID:  req.CollegeID,
	})
	if err != nil {
		return h.mapError(c, err)
	}

	return response.Success(c, transport)
}

// Delete removes a transport option and its media
func (h *TransportHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return nil
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		return h.mapError(c, err)
	}

	return response.SuccessWithMessage(c, "Transport deleted successfully", nil)
}
