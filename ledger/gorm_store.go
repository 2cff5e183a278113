package ledger

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/njoroge256/aerodesk/models"
	"gorm.io/gorm"
)

// GormStore backs the ledger with the shared Postgres connection. The
// conditional update relies on the WHERE clause matching zero rows when the
// payout status changed underneath us.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) FetchPayoutWithPartner(payoutID uuid.UUID) (*models.Payout, *models.Partner, error) {
	var payout models.Payout
	if err := s.db.Preload("Partner").First(&payout, "id = ?", payoutID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrPayoutNotFound
		}
		return nil, nil, err
	}
	// Preload leaves a zero-value Partner when the row is gone; foreign keys
	// are not enforced by the schema, so that can happen.
	if payout.Partner.ID == uuid.Nil {
		return nil, nil, ErrPartnerNotFound
	}
	partner := payout.Partner
	return &payout, &partner, nil
}

func (s *GormStore) ConditionalUpdatePayout(payoutID uuid.UUID, expectedStatus string, fields map[string]interface{}) (bool, error) {
	result := s.db.Model(&models.Payout{}).
		Where("id = ? AND status = ?", payoutID, expectedStatus).
		Updates(fields)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (s *GormStore) UpdatePartnerBalance(partnerID uuid.UUID, newBalance float64) error {
	result := s.db.Model(&models.Partner{}).
		Where("id = ?", partnerID).
		Update("available_balance", newBalance)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("partner %s not found", partnerID)
	}
	return nil
}
