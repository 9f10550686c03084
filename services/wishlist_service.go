package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/bookmypg/api/model"
	"gorm.io/gorm"
)

// WishlistService handles a user's saved PGs. All operations are scoped to
// the calling user; the composite unique index settles concurrent adds.
type WishlistService struct {
	db  *gorm.DB
	pgs PGChecker
}

// NewWishlistService creates a new wishlist service
func NewWishlistService(db *gorm.DB, pgs PGChecker) *WishlistService {
	return &WishlistService{db: db, pgs: pgs}
}

// List returns the user's wishlist entries, newest first, each expanded
// with its PG, the PG's college summary and media
func (s *WishlistService) List(ctx context.Context, userID uint, page, limit int) ([]model.Wishlist, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.Wishlist{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count wishlist entries: %w", err)
	}

	var entries []model.Wishlist
	err := query.
		Preload("PG", func(db *gorm.DB) *gorm.DB {
			return db.Select(pgCountsSelect)
		}).
		Preload("PG.College").
		Preload("PG.Media").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list wishlist entries: %w", err)
	}

	return entries, total, nil
}

// Add saves a PG to the user's wishlist. The PG must exist and the pair
// must not already be present.
func (s *WishlistService) Add(ctx context.Context, userID, pgID uint) (*model.Wishlist, error) {
	exists, err := s.pgs.PGExists(ctx, pgID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrPGNotFound
	}

	var count int64
	err = s.db.WithContext(ctx).Model(&model.Wishlist{}).
		Where("user_id = ? AND pg_id = ?", userID, pgID).
		Count(&count).Error
	if err != nil {
		return nil, fmt.Errorf("failed to check wishlist entry: %w", err)
	}
	if count > 0 {
		return nil, ErrAlreadyInWishlist
	}

	entry := model.Wishlist{
		UserID: userID,
		PGID:   pgID,
	}

	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyInWishlist
		}
		return nil, fmt.Errorf("failed to create wishlist entry: %w", err)
	}

	err = s.db.WithContext(ctx).
		Preload("PG", func(db *gorm.DB) *gorm.DB {
			return db.Select(pgCountsSelect)
		}).
		Preload("PG.College").
		Preload("PG.Media").
		First(&entry, entry.ID).Error
	if err != nil {
		return nil, fmt.Errorf("failed to reload wishlist entry: %w", err)
	}

	return &entry, nil
}

// Remove deletes the user's wishlist entry for the given PG
func (s *WishlistService) Remove(ctx context.Context, userID, pgID uint) error {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND pg_id = ?", userID, pgID).
		Delete(&model.Wishlist{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete wishlist entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrWishlistEntryNotFound
	}
	return nil
}
