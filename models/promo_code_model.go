package models

import (
	"time"

	"github.com/google/uuid"
)

type PromoCode struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Code          string     `gorm:"size:20;not null;unique" json:"code"`
	DiscountType  string     `gorm:"size:10;not null" json:"discount_type"`
	DiscountValue float64    `gorm:"type:numeric(10,2);not null" json:"discount_value"`
	MaxUses       int        `gorm:"default:0" json:"max_uses"`
	UsedCount     int        `gorm:"default:0" json:"used_count"`
	ValidFrom     time.Time  `json:"valid_from"`
	ValidUntil    *time.Time `json:"valid_until"`
	IsActive      bool       `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}
