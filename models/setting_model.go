package models

import (
	"time"

	"github.com/google/uuid"
)

type SystemSetting struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Key         string    `gorm:"size:100;not null;unique" json:"key"`
	Value       string    `gorm:"type:text;not null" json:"value"`
	Description *string   `gorm:"type:text" json:"description"`

	UpdatedAt time.Time `json:"updated_at"`
	CreatedAt time.Time `json:"-"`
}
