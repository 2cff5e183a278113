package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FullName      string    `gorm:"size:255;not null" json:"full_name"`
	Email         string    `gorm:"size:255;not null;unique" json:"email"`
	Password      string    `gorm:"not null" json:"-"`
	Role          string    `gorm:"size:20;not null;default:'customer'" json:"role"`
	CreditBalance float64   `gorm:"type:numeric(10,2);default:0.00" json:"credit_balance"`
	PhoneNumber   *string   `gorm:"size:30" json:"phone_number"`
	Country       *string   `gorm:"size:100" json:"country"`
	IsActive      bool      `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
