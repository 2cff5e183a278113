package models

import (
	"time"

	"github.com/google/uuid"
)

type ActivityLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	AdminID    *uuid.UUID `json:"admin_id"`
	Action     string     `gorm:"size:50;not null" json:"action"`
	EntityType string     `gorm:"size:50;not null" json:"entity_type"`
	EntityID   *string    `gorm:"size:100" json:"entity_id"`
	Details    *string    `gorm:"type:text" json:"details"`

	Admin User `gorm:"foreignkey:AdminID" json:"admin,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
