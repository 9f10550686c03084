package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/bookmypg/api/model"
	"gorm.io/gorm"
)

// TransportChecker is the narrow read-only view the media service uses to
// verify a transport reference
type TransportChecker interface {
	TransportExists(ctx context.Context, id uint) (bool, error)
}

// TransportService handles transport option CRUD
type TransportService struct {
	db       *gorm.DB
	pgs      PGChecker
	colleges CollegeChecker
}

// NewTransportService creates a new transport service
func NewTransportService(db *gorm.DB, pgs PGChecker, colleges CollegeChecker) *TransportService {
	return &TransportService{db: db, pgs: pgs, colleges: colleges}
}

// TransportListParams holds pagination and filters for List
type TransportListParams struct {
	Page      int
	Limit     int
	Type      *model.TransportType
	PGID      *uint
	CollegeID *uint
	Available *bool
}

// CreateTransportInput is the normalized write-object for Create
type CreateTransportInput struct {
	Name       string
	Type       model.TransportType
	Route      string
	StartPoint string
	EndPoint   string
	Fare       *float64
	Schedule   string
	Available  *bool
	PGID       *uint
	CollegeID  *uint
}

// UpdateTransportInput carries a partial patch; nil fields are left unmodified
type UpdateTransportInput struct {
	Name       *string
	Type       *model.TransportType
	Route      *string
	StartPoint *string
	EndPoint   *string
	Fare       *float64
	Schedule   *string
	Available  *bool
	PGID       *uint
	CollegeID  *uint
}

// checkRefs verifies whichever PG/college references are supplied
func (s *TransportService) checkRefs(ctx context.Context, pgID, collegeID *uint) error {
	if pgID != nil {
		exists, err := s.pgs.PGExists(ctx, *pgID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrPGNotFound
		}
	}
	if collegeID != nil {
		exists, err := s.colleges.CollegeExists(ctx, *collegeID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrCollegeNotFound
		}
	}
	return nil
}

// List returns a page of transport options, newest first
func (s *TransportService) List(ctx context.Context, params TransportListParams) ([]model.Transport, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.Transport{})

	if params.Type != nil {
		query = query.Where("type = ?", *params.Type)
	}
	if params.PGID != nil {
		query = query.Where("pg_id = ?", *params.PGID)
	}
	if params.CollegeID != nil {
		query = query.Where("college_id = ?", *params.CollegeID)
	}
	if params.Available != nil {
		query = query.Where("available = ?", *params.Available)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transports: %w", err)
	}

	var transports []model.Transport
	err := query.
		Preload("PG").
		Preload("College").
		Preload("Media").
		Order("created_at DESC").
		Offset((params.Page - 1) * params.Limit).
		Limit(params.Limit).
		Find(&transports).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transports: %w", err)
	}

	return transports, total, nil
}

// Get returns a transport option with its PG/college summaries and media
func (s *TransportService) Get(ctx context.Context, id uint) (*model.Transport, error) {
	var transport model.Transport
	err := s.db.WithContext(ctx).
		Preload("PG").
		Preload("College").
		Preload("Media").
		First(&transport, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransportNotFound
		}
		return nil, fmt.Errorf("failed to fetch transport: %w", err)
	}

	return &transport, nil
}

// Create inserts a new transport option after verifying any supplied PG or
// college reference. Availability defaults to true.
func (s *TransportService) Create(ctx context.Context, input CreateTransportInput) (*model.Transport, error) {
	if err := s.checkRefs(ctx, input.PGID, input.CollegeID); err != nil {
		return nil, err
	}

	available := true
	if input.Available != nil {
		available = *input.Available
	}

	transport := model.Transport{
		Name:       input.Name,
		Type:       input.Type,
		Route:      input.Route,
		StartPoint: input.StartPoint,
		EndPoint:   input.EndPoint,
		Fare:       input.Fare,
		Schedule:   input.Schedule,
		Available:  available,
		PGID:       input.PGID,
		CollegeID:  input.CollegeID,
	}

	if err := s.db.WithContext(ctx).Create(&transport).Error; err != nil {
		return nil, fmt.Errorf("failed to create transport: %w", err)
	}

	return &transport, nil
}

// Update applies a partial patch; new PG/college references must exist
func (s *TransportService) Update(ctx context.Context, id uint, input UpdateTransportInput) (*model.Transport, error) {
	var transport model.Transport
	if err := s.db.WithContext(ctx).First(&transport, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransportNotFound
		}
		return nil, fmt.Errorf("failed to fetch transport: %w", err)
	}

	if err := s.checkRefs(ctx, input.PGID, input.CollegeID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}

	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Type != nil {
		updates["type"] = *input.Type
	}
	if input.Route != nil {
		updates["route"] = *input.Route
	}
	if input.StartPoint != nil {
		updates["start_point"] = *input.StartPoint
	}
	if input.EndPoint != nil {
		updates["end_point"] = *input.EndPoint
	}
	if input.Fare != nil {
		updates["fare"] = *input.Fare
	}
	if input.Schedule != nil {
		updates["schedule"] = *input.Schedule
	}
	if input.Available != nil {
		updates["available"] = *input.Available
	}
	if input.PGID != nil {
		updates["pg_id"] = *input.PGID
	}
	if input.CollegeID != nil {
		updates["college_id"] = *input.CollegeID
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&transport).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update transport: %w", err)
		}
	}

	return &transport, nil
}

// Delete removes a transport option and its media in one transaction
func (s *TransportService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var transport model.Transport
		if err := tx.First(&transport, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTransportNotFound
			}
			return fmt.Errorf("failed to fetch transport: %w", err)
		}

		if err := tx.Where("transport_id = ?", id).Delete(&model.Media{}).Error; err != nil {
			return fmt.Errorf("failed to delete transport media: %w", err)
		}
		if err := tx.Delete(&model.Transport{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete transport: %w", err)
		}

		return nil
	})
}

// TransportExists reports whether a transport row with the given id is present
func (s *TransportService) TransportExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Transport{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check transport existence: %w", err)
	}
	return count > 0, nil
}
