package admin

import (
	"time"

	"github.com/bookmypg/api/model"
	"github.com/bookmypg/api/utils/response"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AdminHandler handles the admin dashboard endpoints
type AdminHandler struct {
	db *gorm.DB
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{db: db}
}

// AdminUser is the user shape exposed to the admin dashboard
type AdminUser struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// ListUsers returns a paginated user listing for the admin dashboard
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	page, limit := response.NormalizePage(c.QueryInt("page", 1), c.QueryInt("limit", 10))

	query := h.db.Model(&model.User{})

	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count users")
	}

	var users []model.User
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return response.InternalServerError(c, "Failed to list users")
	}

	items := make([]AdminUser, 0, len(users))
	for _, u := range users {
		items = append(items, AdminUser{
			ID:        u.ID,
			Email:     u.Email,
			Name:      u.Name,
			Role:      u.Role,
			CreatedAt: u.CreatedAt,
		})
	}

	return response.Paginated(c, "users", items, response.CalculatePagination(page, limit, total))
}
