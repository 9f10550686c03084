package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bookmypg/api/model"
	"gorm.io/gorm"
)

// CollegeChecker is the narrow read-only view other services use to verify
// a college reference before writing
type CollegeChecker interface {
	CollegeExists(ctx context.Context, id uint) (bool, error)
}

// CollegeService handles college CRUD, the name-uniqueness rule and the
// dependent-guarded delete
type CollegeService struct {
	db *gorm.DB
}

// NewCollegeService creates a new college service
func NewCollegeService(db *gorm.DB) *CollegeService {
	return &CollegeService{db: db}
}

// CollegeListParams holds pagination and search filters for List
type CollegeListParams struct {
	Page   int
	Limit  int
	Search string
}

// CreateCollegeInput is the normalized write-object for Create
type CreateCollegeInput struct {
	Name    string
	Address string
}

// UpdateCollegeInput carries a partial patch; nil fields are left unmodified
type UpdateCollegeInput struct {
	Name    *string
	Address *string
}

const collegeCountsSelect = "colleges.*, " +
	"(SELECT COUNT(*) FROM pgs WHERE pgs.college_id = colleges.id) AS pg_count, " +
	"(SELECT COUNT(*) FROM transports WHERE transports.college_id = colleges.id) AS transport_count"

// List returns a page of colleges ordered by name, optionally filtered by a
// case-insensitive substring match on name or address
func (s *CollegeService) List(ctx context.Context, params CollegeListParams) ([]model.College, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.College{})

	if search := strings.TrimSpace(params.Search); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("LOWER(name) LIKE LOWER(?) OR LOWER(address) LIKE LOWER(?)", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count colleges: %w", err)
	}

	var colleges []model.College
	err := query.
		Select(collegeCountsSelect).
		Order("name ASC").
		Offset((params.Page - 1) * params.Limit).
		Limit(params.Limit).
		Find(&colleges).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list colleges: %w", err)
	}

	return colleges, total, nil
}

// Get returns a college with its PGs (cheapest first), available transports
// and media
func (s *CollegeService) Get(ctx context.Context, id uint) (*model.College, error) {
	var college model.College
	err := s.db.WithContext(ctx).
		Select(collegeCountsSelect).
		Preload("PGs", func(db *gorm.DB) *gorm.DB {
			return db.Order("price ASC")
		}).
		Preload("PGs.Media").
		Preload("Transports", "available = ?", true).
		Preload("Media").
		First(&college, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCollegeNotFound
		}
		return nil, fmt.Errorf("failed to fetch college: %w", err)
	}

	return &college, nil
}

// Create inserts a new college. The pre-insert name check is a fast path;
// the unique index settles concurrent creates.
func (s *CollegeService) Create(ctx context.Context, input CreateCollegeInput) (*model.College, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.College{}).
		Where("name = ?", input.Name).
		Count(&count).Error
	if err != nil {
		return nil, fmt.Errorf("failed to check college name: %w", err)
	}
	if count > 0 {
		return nil, ErrDuplicateCollegeName
	}

	college := model.College{
		Name:    input.Name,
		Address: input.Address,
	}

	if err := s.db.WithContext(ctx).Create(&college).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateCollegeName
		}
		return nil, fmt.Errorf("failed to create college: %w", err)
	}

	return &college, nil
}

// Update applies a partial patch. Renaming to another college's name is a
// conflict; renaming to the current name is a no-op and succeeds.
func (s *CollegeService) Update(ctx context.Context, id uint, input UpdateCollegeInput) (*model.College, error) {
	var college model.College
	if err := s.db.WithContext(ctx).First(&college, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCollegeNotFound
		}
		return nil, fmt.Errorf("failed to fetch college: %w", err)
	}

	updates := map[string]interface{}{}

	if input.Name != nil && *input.Name != college.Name {
		var count int64
		err := s.db.WithContext(ctx).Model(&model.College{}).
			Where("name = ? AND id <> ?", *input.Name, id).
			Count(&count).Error
		if err != nil {
			return nil, fmt.Errorf("failed to check college name: %w", err)
		}
		if count > 0 {
			return nil, ErrDuplicateCollegeName
		}
		updates["name"] = *input.Name
	}
	if input.Address != nil {
		updates["address"] = *input.Address
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&college).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, ErrDuplicateCollegeName
			}
			return nil, fmt.Errorf("failed to update college: %w", err)
		}
	}

	return &college, nil
}

// Delete removes a college and its media in one transaction. It refuses
// while any PG or transport still references the college.
func (s *CollegeService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var college model.College
		if err := tx.First(&college, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCollegeNotFound
			}
			return fmt.Errorf("failed to fetch college: %w", err)
		}

		var pgCount int64
		if err := tx.Model(&model.PG{}).Where("college_id = ?", id).Count(&pgCount).Error; err != nil {
			return fmt.Errorf("failed to count dependent pgs: %w", err)
		}
		var transportCount int64
		if err := tx.Model(&model.Transport{}).Where("college_id = ?", id).Count(&transportCount).Error; err != nil {
			return fmt.Errorf("failed to count dependent transports: %w", err)
		}
		if pgCount > 0 || transportCount > 0 {
			return ErrCollegeHasDependents
		}

		if err := tx.Where("college_id = ?", id).Delete(&model.Media{}).Error; err != nil {
			return fmt.Errorf("failed to delete college media: %w", err)
		}
		if err := tx.Delete(&model.College{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete college: %w", err)
		}

		return nil
	})
}

// CollegeExists reports whether a college row with the given id is present
func (s *CollegeService) CollegeExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.College{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check college existence: %w", err)
	}
	return count > 0, nil
}
