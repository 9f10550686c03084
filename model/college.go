package model

import "time"

// College represents an educational institution that PGs and transports attach to.
// Colleges are hard-deleted: the delete guard in the college service refuses to
// remove a college while PGs or transports still reference it.
type College struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;uniqueIndex" json:"name"`
	Address   string    `gorm:"not null" json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	PGs        []PG        `gorm:"foreignKey:CollegeID" json:"pgs,omitempty"`
	Transports []Transport `gorm:"foreignKey:CollegeID" json:"transports,omitempty"`
	Media      []Media     `gorm:"foreignKey:CollegeID" json:"media,omitempty"`

	// Computed counts, populated by list/detail queries
	PGCount        int64 `gorm:"->;-:migration" json:"pg_count"`
	TransportCount int64 `gorm:"->;-:migration" json:"transport_count"`
}
