package model

import (
	"time"

	"github.com/google/uuid"
)

// EventModel mirrors the 'events' table. CreatedBy references users.id.
type EventModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title       string     `gorm:"type:varchar(255);not null"`
	Description string     `gorm:"type:text;not null"`
	Date        time.Time  `gorm:"not null;index"`
	Location    string     `gorm:"type:varchar(255);not null"`
	Capacity    int        `gorm:"not null;check:capacity >= 0"`
	TicketsSold int        `gorm:"not null;default:0"`
	Latitude    *float64   `gorm:"type:double precision"`
	Longitude   *float64   `gorm:"type:double precision"`
	CreatedBy   uuid.UUID  `gorm:"type:uuid;not null;index"`
	Creator     *UserModel `gorm:"foreignKey:CreatedBy;constraint:OnDelete:RESTRICT"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (EventModel) TableName() string {
	return "events"
}

// All returns every persistence model, in dependency order, for schema migration.
func All() []any {
	return []any{
		&UserModel{},
		&EventModel{},
	}
}
