package model

import (
	"time"

	"gorm.io/datatypes"
)

// PG represents a paying-guest accommodation listing
type PG struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Name       string         `gorm:"not null" json:"name"`
	Address    string         `gorm:"not null" json:"address"`
	Price      float64        `gorm:"not null" json:"price"`
	Facilities datatypes.JSON `json:"facilities"` // JSON array of facility tags
	CollegeID  *uint          `gorm:"index" json:"college_id"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`

	// Relationships
	College    *College    `gorm:"foreignKey:CollegeID" json:"college,omitempty"`
	Foods      []Food      `gorm:"foreignKey:PGID" json:"foods,omitempty"`
	Transports []Transport `gorm:"foreignKey:PGID" json:"transports,omitempty"`
	Media      []Media     `gorm:"foreignKey:PGID" json:"media,omitempty"`
	Wishlists  []Wishlist  `gorm:"foreignKey:PGID" json:"-"`

	// Computed count, populated by list/detail queries
	WishlistCount int64 `gorm:"->;-:migration" json:"wishlist_count"`
}
