package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	PayoutStatusPending  = "pending"
	PayoutStatusApproved = "approved"
	PayoutStatusRejected = "rejected"
)

type Payout struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	PartnerID       uuid.UUID `gorm:"not null"`
	Amount          float64   `gorm:"type:numeric(12,2);not null"`
	Status          string    `gorm:"size:20;not null;default:'pending'"`
	RequestedAt     time.Time `gorm:"not null"`
	ApprovedAt      *time.Time
	ApprovedBy      *uuid.UUID
	RejectedAt      *time.Time
	RejectedBy      *uuid.UUID
	RejectionReason *string `gorm:"type:text"`

	Partner Partner `gorm:"foreignkey:PartnerID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
