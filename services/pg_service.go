package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/bookmypg/api/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PGChecker is the narrow read-only view other services use to verify a PG
// reference before writing
type PGChecker interface {
	PGExists(ctx context.Context, id uint) (bool, error)
}

// PGService handles PG listings: filtered search, detail views with related
// rows, and the full cascading delete
type PGService struct {
	db       *gorm.DB
	colleges CollegeChecker
}

// NewPGService creates a new PG service
func NewPGService(db *gorm.DB, colleges CollegeChecker) *PGService {
	return &PGService{db: db, colleges: colleges}
}

// PGListParams holds pagination and filters for List
type PGListParams struct {
	Page       int
	Limit      int
	Search     string
	CollegeID  *uint
	MinPrice   *float64
	MaxPrice   *float64
	Facilities []string
}

// CreatePGInput is the normalized write-object for Create
type CreatePGInput struct {
	Name       string
	Address    string
	Price      float64
	Facilities []string
	CollegeID  *uint
}

// UpdatePGInput carries a partial patch; nil fields are left unmodified
type UpdatePGInput struct {
	Name       *string
	Address    *string
	Price      *float64
	Facilities []string
	CollegeID  *uint
}

const pgCountsSelect = "pgs.*, " +
	"(SELECT COUNT(*) FROM wishlists WHERE wishlists.pg_id = pgs.id) AS wishlist_count"

func facilitiesJSON(tags []string) (datatypes.JSON, error) {
	if tags == nil {
		tags = []string{}
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("failed to encode facilities: %w", err)
	}
	return datatypes.JSON(raw), nil
}

// List returns a page of PGs, newest first, filtered by college, price range
// and facility tags. Facility filtering is a subset match: every requested
// tag must be present on the row.
func (s *PGService) List(ctx context.Context, params PGListParams) ([]model.PG, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.PG{})

	if search := strings.TrimSpace(params.Search); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("LOWER(name) LIKE LOWER(?) OR LOWER(address) LIKE LOWER(?)", pattern, pattern)
	}
	if params.CollegeID != nil {
		query = query.Where("college_id = ?", *params.CollegeID)
	}
	if params.MinPrice != nil {
		query = query.Where("price >= ?", *params.MinPrice)
	}
	if params.MaxPrice != nil {
		query = query.Where("price <= ?", *params.MaxPrice)
	}
	for _, tag := range params.Facilities {
		// The JSON column stores a quoted string array, so matching the
		// quoted tag avoids substring false positives ("wifi" vs "wifi-5g"
		// still differ by the closing quote).
		query = query.Where("CAST(facilities AS TEXT) LIKE ?", `%"`+tag+`"%`)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count pgs: %w", err)
	}

	var pgs []model.PG
	err := query.
		Select(pgCountsSelect).
		Preload("College").
		Preload("Media").
		Order("created_at DESC").
		Offset((params.Page - 1) * params.Limit).
		Limit(params.Limit).
		Find(&pgs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list pgs: %w", err)
	}

	return pgs, total, nil
}

// Get returns a PG with its college summary, foods, transports and media
func (s *PGService) Get(ctx context.Context, id uint) (*model.PG, error) {
	var pg model.PG
	err := s.db.WithContext(ctx).
		Select(pgCountsSelect).
		Preload("College").
		Preload("Foods").
		Preload("Transports").
		Preload("Media").
		First(&pg, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPGNotFound
		}
		return nil, fmt.Errorf("failed to fetch pg: %w", err)
	}

	return &pg, nil
}

// Create inserts a new PG after verifying the referenced college, when one
// is supplied
func (s *PGService) Create(ctx context.Context, input CreatePGInput) (*model.PG, error) {
	if input.CollegeID != nil {
		exists, err := s.colleges.CollegeExists(ctx, *input.CollegeID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrCollegeNotFound
		}
	}

	facilities, err := facilitiesJSON(input.Facilities)
	if err != nil {
		return nil, err
	}

	pg := model.PG{
		Name:       input.Name,
		Address:    input.Address,
		Price:      input.Price,
		Facilities: facilities,
		CollegeID:  input.CollegeID,
	}

	if err := s.db.WithContext(ctx).Create(&pg).Error; err != nil {
		return nil, fmt.Errorf("failed to create pg: %w", err)
	}

	if pg.CollegeID != nil {
		if err := s.db.WithContext(ctx).Preload("College").First(&pg, pg.ID).Error; err != nil {
			return nil, fmt.Errorf("failed to reload pg: %w", err)
		}
	}

	return &pg, nil
}

// Update applies a partial patch; a new college reference must exist
func (s *PGService) Update(ctx context.Context, id uint, input UpdatePGInput) (*model.PG, error) {
	var pg model.PG
	if err := s.db.WithContext(ctx).First(&pg, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPGNotFound
		}
		return nil, fmt.Errorf("failed to fetch pg: %w", err)
	}

	updates := map[string]interface{}{}

	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Address != nil {
		updates["address"] = *input.Address
	}
	if input.Price != nil {
		updates["price"] = *input.Price
	}
	if input.Facilities != nil {
		facilities, err := facilitiesJSON(input.Facilities)
		if err != nil {
			return nil, err
		}
		updates["facilities"] = facilities
	}
	if input.CollegeID != nil {
		exists, err := s.colleges.CollegeExists(ctx, *input.CollegeID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrCollegeNotFound
		}
		updates["college_id"] = *input.CollegeID
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&pg).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update pg: %w", err)
		}
	}

	return &pg, nil
}

// Delete removes a PG and everything hanging off it as one atomic unit:
// wishlist entries first, then media, foods and transports, then the row.
func (s *PGService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pg model.PG
		if err := tx.First(&pg, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPGNotFound
			}
			return fmt.Errorf("failed to fetch pg: %w", err)
		}

		if err := tx.Where("pg_id = ?", id).Delete(&model.Wishlist{}).Error; err != nil {
			return fmt.Errorf("failed to delete pg wishlist entries: %w", err)
		}
		if err := tx.Where("pg_id = ?", id).Delete(&model.Media{}).Error; err != nil {
			return fmt.Errorf("failed to delete pg media: %w", err)
		}
		if err := tx.Where("pg_id = ?", id).Delete(&model.Food{}).Error; err != nil {
			return fmt.Errorf("failed to delete pg foods: %w", err)
		}
		if err := tx.Where("pg_id = ?", id).Delete(&model.Transport{}).Error; err != nil {
			return fmt.Errorf("failed to delete pg transports: %w", err)
		}
		if err := tx.Delete(&model.PG{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete pg: %w", err)
		}

		return nil
	})
}

// PGExists reports whether a PG row with the given id is present
func (s *PGService) PGExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.PG{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check pg existence: %w", err)
	}
	return count > 0, nil
}
