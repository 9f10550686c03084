package model

import "time"

// FoodType classifies a food venue's menu
type FoodType string

const (
	FoodTypeVeg    FoodType = "VEG"
	FoodTypeNonVeg FoodType = "NON_VEG"
	FoodTypeVegan  FoodType = "VEGAN"
	FoodTypeMixed  FoodType = "MIXED"
)

// Food represents a food venue or mess option, optionally attached to a PG
type Food struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Type      FoodType  `gorm:"type:varchar(20);not null" json:"type"`
	Price     float64   `gorm:"not null" json:"price"`
	Available bool      `gorm:"default:true" json:"available"`
	PGID      *uint     `gorm:"index" json:"pg_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	PG    *PG     `gorm:"foreignKey:PGID" json:"pg,omitempty"`
	Media []Media `gorm:"foreignKey:FoodID" json:"media,omitempty"`
}
