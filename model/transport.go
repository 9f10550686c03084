package model

import "time"

// TransportType classifies a transport option
type TransportType string

const (
	TransportTypeBus     TransportType = "BUS"
	TransportTypeShuttle TransportType = "SHUTTLE"
	TransportTypeTrain   TransportType = "TRAIN"
	TransportTypeMetro   TransportType = "METRO"
	TransportTypeOther   TransportType = "OTHER"
)

// Transport represents a commute option, optionally attached to a PG and/or a college
type Transport struct {
	ID         uint          `gorm:"primaryKey" json:"id"`
	Name       string        `gorm:"not null" json:"name"`
	Type       TransportType `gorm:"type:varchar(20);not null" json:"type"`
	Route      string        `json:"route"`
	StartPoint string        `json:"start_point"`
	EndPoint   string        `json:"end_point"`
	Fare       *float64      `json:"fare"`
	Schedule   string        `json:"schedule"`
	Available  bool          `gorm:"default:true" json:"available"`
	PGID       *uint         `gorm:"index" json:"pg_id"`
	CollegeID  *uint         `gorm:"index" json:"college_id"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`

	// Relationships
	PG      *PG      `gorm:"foreignKey:PGID" json:"pg,omitempty"`
	College *College `gorm:"foreignKey:CollegeID" json:"college,omitempty"`
	Media   []Media  `gorm:"foreignKey:TransportID" json:"media,omitempty"`
}
