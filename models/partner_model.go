package models

import (
	"time"

	"github.com/google/uuid"
)

type Partner struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID           uuid.UUID `gorm:"not null;unique" json:"user_id"`
	BusinessName     string    `gorm:"size:255;not null" json:"business_name"`
	Email            string    `gorm:"size:255;not null;unique" json:"email"`
	PhoneNumber      *string   `gorm:"size:30" json:"phone_number"`
	ContactPerson    *string   `gorm:"size:255" json:"contact_person"`
	Country          *string   `gorm:"size:100" json:"country"`
	Status           string    `gorm:"size:20;not null;default:'active'" json:"status"`
	CommissionRate   float64   `gorm:"type:numeric(5,2);default:10.00" json:"commission_rate"`
	AvailableBalance float64   `gorm:"type:numeric(12,2);default:0.00" json:"-"`
	TotalEarnings    float64   `gorm:"type:numeric(12,2);default:0.00" json:"-"`

	User User `gorm:"foreignkey:UserID" json:"user"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
