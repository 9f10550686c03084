package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/bookmypg/api/model"
	"gorm.io/gorm"
)

// FoodChecker is the narrow read-only view the media service uses to verify
// a food reference
type FoodChecker interface {
	FoodExists(ctx context.Context, id uint) (bool, error)
}

// FoodService handles food venue CRUD
type FoodService struct {
	db  *gorm.DB
	pgs PGChecker
}

// NewFoodService creates a new food service
func NewFoodService(db *gorm.DB, pgs PGChecker) *FoodService {
	return &FoodService{db: db, pgs: pgs}
}

// FoodListParams holds pagination and filters for List
type FoodListParams struct {
	Page      int
	Limit     int
	Type      *model.FoodType
	PGID      *uint
	Available *bool
}

// CreateFoodInput is the normalized write-object for Create
type CreateFoodInput struct {
	Name      string
	Type      model.FoodType
	Price     float64
	Available *bool
	PGID      *uint
}

// UpdateFoodInput carries a partial patch; nil fields are left unmodified
type UpdateFoodInput struct {
	Name      *string
	Type      *model.FoodType
	Price     *float64
	Available *bool
	PGID      *uint
}

// List returns a page of food venues, newest first
func (s *FoodService) List(ctx context.Context, params FoodListParams) ([]model.Food, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.Food{})

	if params.Type != nil {
		query = query.Where("type = ?", *params.Type)
	}
	if params.PGID != nil {
		query = query.Where("pg_id = ?", *params.PGID)
	}
	if params.Available != nil {
		query = query.Where("available = ?", *params.Available)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count foods: %w", err)
	}

	var foods []model.Food
	err := query.
		Preload("PG").
		Preload("Media").
		Order("created_at DESC").
		Offset((params.Page - 1) * params.Limit).
		Limit(params.Limit).
		Find(&foods).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list foods: %w", err)
	}

	return foods, total, nil
}

// Get returns a food venue with its PG summary and media
func (s *FoodService) Get(ctx context.Context, id uint) (*model.Food, error) {
	var food model.Food
	err := s.db.WithContext(ctx).
		Preload("PG").
		Preload("Media").
		First(&food, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFoodNotFound
		}
		return nil, fmt.Errorf("failed to fetch food: %w", err)
	}

	return &food, nil
}

// Create inserts a new food venue after verifying the referenced PG, when
// one is supplied. Availability defaults to true.
func (s *FoodService) Create(ctx context.Context, input CreateFoodInput) (*model.Food, error) {
	if input.PGID != nil {
		exists, err := s.pgs.PGExists(ctx, *input.PGID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrPGNotFound
		}
	}

	available := true
	if input.Available != nil {
		available = *input.Available
	}

	food := model.Food{
		Name:      input.Name,
		Type:      input.Type,
		Price:     input.Price,
		Available: available,
		PGID:      input.PGID,
	}

	if err := s.db.WithContext(ctx).Create(&food).Error; err != nil {
		return nil, fmt.Errorf("failed to create food: %w", err)
	}

	return &food, nil
}

// Update applies a partial patch; a new PG reference must exist
func (s *FoodService) Update(ctx context.Context, id uint, input UpdateFoodInput) (*model.Food, error) {
	var food model.Food
	if err := s.db.WithContext(ctx).First(&food, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFoodNotFound
		}
		return nil, fmt.Errorf("failed to fetch food: %w", err)
	}

	updates := map[string]interface{}{}

	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Type != nil {
		updates["type"] = *input.Type
	}
	if input.Price != nil {
		updates["price"] = *input.Price
	}
	if input.Available != nil {
		updates["available"] = *input.Available
	}
	if input.PGID != nil {
		exists, err := s.pgs.PGExists(ctx, *input.PGID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrPGNotFound
		}
		updates["pg_id"] = *input.PGID
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&food).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update food: %w", err)
		}
	}

	return &food, nil
}

// Delete removes a food venue and its media in one transaction
func (s *FoodService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var food model.Food
		if err := tx.First(&food, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrFoodNotFound
			}
			return fmt.Errorf("failed to fetch food: %w", err)
		}

		if err := tx.Where("food_id = ?", id).Delete(&model.Media{}).Error; err != nil {
			return fmt.Errorf("failed to delete food media: %w", err)
		}
		if err := tx.Delete(&model.Food{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete food: %w", err)
		}

		return nil
	})
}

// FoodExists reports whether a food row with the given id is present
func (s *FoodService) FoodExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Food{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check food existence: %w", err)
	}
	return count > 0, nil
}
