package utils

import (
	"math/rand"
	"time"

	"github.com/njoroge256/aerodesk/models"
	"gorm.io/gorm"
)

const bookingReferenceLength = 6
const promoCodeLength = 8
const letterBytes = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var seededRand = rand.New(rand.NewSource(time.Now().UnixNano()))

func GenerateCode(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = letterBytes[seededRand.Intn(len(letterBytes))]
	}
	return string(b)
}

func GenerateUniqueBookingReference(tx *gorm.DB) (string, error) {
	for {
		ref := GenerateCode(bookingReferenceLength)

		var booking models.Booking
		err := tx.Where("reference = ?", ref).First(&booking).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return ref, nil
			}
			return "", err
		}
	}
}

func GenerateUniquePromoCode(tx *gorm.DB) (string, error) {
	for {
		code := GenerateCode(promoCodeLength)

		var promo models.PromoCode
		err := tx.Where("code = ?", code).First(&promo).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return code, nil
			}
			return "", err
		}
	}
}
