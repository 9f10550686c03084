package model

import "time"

// Wishlist pairs a user with a PG they saved. The (user, pg) pair is unique;
// the composite index is the arbiter under concurrent adds.
type Wishlist struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_wishlist_user_pg" json:"user_id"`
	PGID      uint      `gorm:"not null;uniqueIndex:idx_wishlist_user_pg" json:"pg_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	User *User `gorm:"foreignKey:UserID" json:"-"`
	PG   *PG   `gorm:"foreignKey:PGID" json:"pg,omitempty"`
}
