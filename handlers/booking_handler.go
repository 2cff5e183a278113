package handlers

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/njoroge256/aerodesk/database"
	"github.com/njoroge256/aerodesk/models"
	"github.com/njoroge256/aerodesk/notifications"
	"github.com/njoroge256/aerodesk/services"
	"github.com/njoroge256/aerodesk/utils"
	"gorm.io/gorm"
)

type CreateBookingRequest struct {
	PartnerID     string    `json:"partner_id" validate:"required,uuid"`
	FlightNumber  string    `json:"flight_number" validate:"required,min=3,max=10"`
	Origin        string    `json:"origin" validate:"required,len=3"`
	Destination   string    `json:"destination" validate:"required,len=3"`
	DepartureAt   time.Time `json:"departure_at" validate:"required"`
	PassengerName string    `json:"passenger_name" validate:"required,min=3"`
	Amount        float64   `json:"amount" validate:"required,gt=0"`
	Currency      string    `json:"currency" validate:"required,iso4217"`
	PromoCode     *string   `json:"promo_code"`
}

func CreateBooking(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	// Fares are quoted in USD. Bookings in another currency are charged at
	// the cached exchange rate.
	fare := req.Amount
	if req.Currency != "USD" {
		converted, err := services.ConvertFromUSD(fare, req.Currency)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": fmt.Sprintf("Cannot price booking in %s: %v", req.Currency, err)})
		}
		fare = converted
	}

	var booking models.Booking
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var partner models.Partner
		if err := tx.First(&partner, "id = ? AND status = ?", req.PartnerID, "active").Error; err != nil {
			return fmt.Errorf("partner not found or suspended")
		}

		amount := fare
		var promoID *uuid.UUID
		if req.PromoCode != nil && *req.PromoCode != "" {
			var promo models.PromoCode
			if err := tx.Where("code = ? AND is_active = ?", *req.PromoCode, true).First(&promo).Error; err != nil {
				return fmt.Errorf("promo code is not valid")
			}
			discounted, err := applyPromo(promo, amount, time.Now())
			if err != nil {
				return err
			}
			amount = discounted
			promo.UsedCount++
			if err := tx.Save(&promo).Error; err != nil {
				return err
			}
			promoID = &promo.ID
		}

		reference, err := utils.GenerateUniqueBookingReference(tx)
		if err != nil {
			return fmt.Errorf("failed to generate booking reference")
		}

		booking = models.Booking{
			Reference:     reference,
			UserID:        userID,
			PartnerID:     partner.ID,
			FlightNumber:  req.FlightNumber,
			Origin:        req.Origin,
			Destination:   req.Destination,
			DepartureAt:   req.DepartureAt,
			PassengerName: req.PassengerName,
			Status:        "pending_payment",
			Amount:        amount,
			Currency:      req.Currency,
			PromoCodeID:   promoID,
		}
		return tx.Create(&booking).Error
	})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(booking)
}

// applyPromo validates the code window and usage cap, then returns the
// discounted amount, floored at zero.
func applyPromo(promo models.PromoCode, amount float64, now time.Time) (float64, error) {
	if now.Before(promo.ValidFrom) {
		return 0, fmt.Errorf("promo code is not yet active")
	}
	if promo.ValidUntil != nil && now.After(*promo.ValidUntil) {
		return 0, fmt.Errorf("promo code has expired")
	}
	if promo.MaxUses > 0 && promo.UsedCount >= promo.MaxUses {
		return 0, fmt.Errorf("promo code usage limit reached")
	}

	var discounted float64
	switch promo.DiscountType {
	case "percent":
		discounted = amount * (1 - promo.DiscountValue/100)
	case "fixed":
		discounted = amount - promo.DiscountValue
	default:
		return 0, fmt.Errorf("unknown discount type %q", promo.DiscountType)
	}
	if discounted < 0 {
		discounted = 0
	}
	return discounted, nil
}

func AdminGetAllBookings(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	status := c.Query("status")
	offset := (page - 1) * limit

	var bookings []models.Booking
	var totalBookings int64

	query := database.DB.Model(&models.Booking{})
	countQuery := database.DB.Model(&models.Booking{})

	if status != "" {
		query = query.Where("status = ?", status)
		countQuery = countQuery.Where("status = ?", status)
	}
	if partnerID := c.Query("partner_id"); partnerID != "" {
		query = query.Where("partner_id = ?", partnerID)
		countQuery = countQuery.Where("partner_id = ?", partnerID)
	}

	countQuery.Count(&totalBookings)
	query.Order("created_at desc").Offset(offset).Limit(limit).Preload("User").Preload("Partner").Find(&bookings)

	return c.JSON(fiber.Map{
		"data": bookings,
		"meta": fiber.Map{
			"total":     totalBookings,
			"page":      page,
			"last_page": int(math.Ceil(float64(totalBookings) / float64(limit))),
		},
	})
}

func AdminGetBooking(c *fiber.Ctx) error {
	bookingID := c.Params("bookingId")
	var booking models.Booking
	if err := database.DB.Preload("User").Preload("Partner").Preload("PromoCode").First(&booking, "id = ?", bookingID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	}
	return c.JSON(booking)
}

func AdminConfirmBooking(c *fiber.Ctx) error {
	bookingID := c.Params("bookingId")

	var booking models.Booking
	if err := database.DB.Preload("User").First(&booking, "id = ?", bookingID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	}

	if booking.Status != "pending_payment" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Only bookings awaiting payment can be confirmed"})
	}

	booking.Status = "confirmed"
	if err := database.DB.Save(&booking).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to confirm booking"})
	}

	go notifications.SendEmail(
		booking.User.FullName,
		booking.User.Email,
		"Your Booking Is Confirmed",
		fmt.Sprintf("<h1>Booking Confirmed</h1><p>Your booking %s (%s %s-%s) is confirmed. Safe travels!</p>", booking.Reference, booking.FlightNumber, booking.Origin, booking.Destination),
	)

	recordActivity(c, "booking.confirmed", "booking", booking.ID.String(), booking.Reference)

	return c.JSON(fiber.Map{"message": "Booking confirmed successfully"})
}

// AdminCompleteBooking marks a flown booking as completed and credits the
// partner's share of the fare, net of commission, in the same transaction.
func AdminCompleteBooking(c *fiber.Ctx) error {
	bookingID := c.Params("bookingId")

	var booking models.Booking
	if err := database.DB.Preload("Partner").First(&booking, "id = ?", bookingID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	}

	if booking.Status != "confirmed" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Only confirmed bookings can be marked as complete"})
	}

	earnings := partnerEarnings(booking.Amount, booking.Partner.CommissionRate)
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		booking.Status = "completed"
		if err := tx.Save(&booking).Error; err != nil {
			return err
		}
		return tx.Model(&models.Partner{}).
			Where("id = ?", booking.PartnerID).
			Updates(map[string]interface{}{
				"available_balance": gorm.Expr("available_balance + ?", earnings),
				"total_earnings":    gorm.Expr("total_earnings + ?", earnings),
			}).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to complete booking"})
	}

	recordActivity(c, "booking.completed", "booking", booking.ID.String(), booking.Reference)

	return c.JSON(fiber.Map{"message": "Booking completed and partner credited"})
}

// partnerEarnings is the partner's share of a fare after the platform
// commission, expressed as a percentage, is withheld.
func partnerEarnings(amount, commissionRate float64) float64 {
	earnings := amount * (1 - commissionRate/100)
	if earnings < 0 {
		return 0
	}
	return earnings
}

func AdminCancelBooking(c *fiber.Ctx) error {
	bookingID := c.Params("bookingId")

	var booking models.Booking
	if err := database.DB.Preload("User").First(&booking, "id = ?", bookingID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	}

	if booking.Status == "cancelled" || booking.Status == "completed" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Only pending or confirmed bookings can be cancelled"})
	}

	booking.Status = "cancelled"
	if err := database.DB.Save(&booking).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to cancel booking"})
	}

	go notifications.SendEmail(
		booking.User.FullName,
		booking.User.Email,
		"Your Booking Has Been Cancelled",
		fmt.Sprintf("<h1>Booking Cancelled</h1><p>Your booking %s (%s %s-%s) has been cancelled by our team. If a payment was captured you may request a refund.</p>", booking.Reference, booking.FlightNumber, booking.Origin, booking.Destination),
	)

	recordActivity(c, "booking.cancelled", "booking", booking.ID.String(), booking.Reference)

	return c.JSON(fiber.Map{"message": "Booking cancelled successfully"})
}
