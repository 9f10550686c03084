package media

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/bookmypg/api/services"
	"github.com/bookmypg/api/utils/response"
	"github.com/gofiber/fiber/v2"
)

// MediaHandler handles media upload endpoints
type MediaHandler struct {
	service *services.MediaService
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(service *services.MediaService) *MediaHandler {
	return &MediaHandler{service: service}
}

// ownerFields maps multipart form fields to owner kinds
var ownerFields = []struct {
	field string
	kind  services.OwnerKind
}{
	{"pg_id", services.OwnerPG},
	{"college_id", services.OwnerCollege},
	{"food_id", services.OwnerFood},
	{"transport_id", services.OwnerTransport},
}

// resolveOwner extracts the single owner reference from the form. Zero or
// multiple owner fields is a client error; the 400 is written here.
func resolveOwner(c *fiber.Ctx) (services.MediaOwner, bool) {
	var (
		owner services.MediaOwner
		found int
	)

	for _, f := range ownerFields {
		raw := c.FormValue(f.field)
		if raw == "" {
			continue
		}
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			response.BadRequest(c, "Invalid "+f.field+" value")
			return owner, false
		}
		owner = services.MediaOwner{Kind: f.kind, ID: uint(id)}
		found++
	}

	if found != 1 {
		response.BadRequest(c, "Exactly one of pg_id, college_id, food_id or transport_id must be provided")
		return owner, false
	}
	return owner, true
}

func (h *MediaHandler) mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrUnsupportedMediaType):
		return response.BadRequest(c, "Unsupported file type. Allowed: jpeg, png, webp, mp4, webm")
	case errors.Is(err, services.ErrFileTooLarge):
		return response.BadRequest(c, fmt.Sprintf("File exceeds the maximum size of %d bytes", services.MaxUploadSize))
	case errors.Is(err, services.ErrInvalidMediaOwner):
		return response.BadRequest(c, "Exactly one owner id must be provided")
	case errors.Is(err, services.ErrPGNotFound):
		return response.NotFound(c, "Referenced PG not found")
	case errors.Is(err, services.ErrCollegeNotFound):
		return response.NotFound(c, "Referenced college not found")
	case errors.Is(err, services.ErrFoodNotFound):
		return response.NotFound(c, "Referenced food not found")
	case errors.Is(err, services.ErrTransportNotFound):
		return response.NotFound(c, "Referenced transport not found")
	default:
		return response.InternalServerError(c, "Upload failed")
	}
}

// Upload stores a multipart file and persists the media row
func (h *MediaHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "No file provided")
	}

	owner, ok := resolveOwner(c)
	if !ok {
		return nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.InternalServerError(c, "Failed to read uploaded file")
	}
	defer file.Close()

	media, err := h.service.Upload(c.Context(), services.UploadInput{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Data:        file,
		Owner:       owner,
	})
	if err != nil {
		return h.mapError(c, err)
	}

	return response.Created(c, media)
}
