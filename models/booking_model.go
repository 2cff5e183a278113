package models

import (
	"time"

	"github.com/google/uuid"
)

type Booking struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Reference     string    `gorm:"size:10;not null;unique"`
	UserID        uuid.UUID `gorm:"not null"`
	PartnerID     uuid.UUID `gorm:"not null"`
	FlightNumber  string    `gorm:"size:10;not null"`
	Origin        string    `gorm:"size:3;not null"`
	Destination   string    `gorm:"size:3;not null"`
	DepartureAt   time.Time `gorm:"not null"`
	PassengerName string    `gorm:"size:255;not null"`
	Status        string    `gorm:"size:20;not null;default:'pending_payment'"`
	Amount        float64   `gorm:"type:numeric(10,2);not null"`
	Currency      string    `gorm:"size:3"`
	PromoCodeID   *uuid.UUID

	User      User      `gorm:"foreignkey:UserID"`
	Partner   Partner   `gorm:"foreignkey:PartnerID"`
	PromoCode PromoCode `gorm:"foreignkey:PromoCodeID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
