package model

import "time"

// MediaType is the resolved kind of an uploaded asset
type MediaType string

const (
	MediaTypeImage MediaType = "IMAGE"
	MediaTypeVideo MediaType = "VIDEO"
)

// Media is an uploaded image or video owned by at most one of PG, College,
// Food, or Transport. The upload flow enforces the exactly-one-owner rule;
// the storage layer keeps four nullable foreign keys.
type Media struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	URL         string    `gorm:"not null" json:"url"`
	Type        MediaType `gorm:"type:varchar(10);not null" json:"type"`
	PGID        *uint     `gorm:"index" json:"pg_id,omitempty"`
	CollegeID   *uint     `gorm:"index" json:"college_id,omitempty"`
	FoodID      *uint     `gorm:"index" json:"food_id,omitempty"`
	TransportID *uint     `gorm:"index" json:"transport_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for Media
func (Media) TableName() string {
	return "media"
}
