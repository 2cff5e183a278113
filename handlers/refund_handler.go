package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/njoroge256/aerodesk/database"
	"github.com/njoroge256/aerodesk/models"
	"github.com/njoroge256/aerodesk/notifications"
	"gorm.io/gorm"
)

func ListRefundRequests(c *fiber.Ctx) error {
	var payments []models.Payment
	database.DB.Preload("Booking.User").Where("refund_status = ?", "requested").Find(&payments)
	return c.JSON(payments)
}

func ProcessRefund(c *fiber.Ctx) error {
	paymentID := c.Params("paymentId")

	type ProcessRequest struct {
		Decision string `json:"decision" validate:"required,oneof=approve reject"`
	}
	var req ProcessRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var payment models.Payment
	if err := database.DB.Preload("Booking.User").First(&payment, "id = ?", paymentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment record not found"})
	}

	if payment.RefundStatus == nil || *payment.RefundStatus != "requested" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payment has no pending refund request"})
	}

	if req.Decision == "approve" {
		err := database.DB.Transaction(func(tx *gorm.DB) error {
			approvedStatus := "approved"
			payment.RefundStatus = &approvedStatus
			payment.Status = "refunded"
			if err := tx.Save(&payment).Error; err != nil {
				return err
			}

			var booking models.Booking
			if err := tx.First(&booking, "id = ?", payment.BookingID).Error; err != nil {
				return err
			}
			booking.Status = "cancelled"
			if err := tx.Save(&booking).Error; err != nil {
				return err
			}

			if payment.Provider == "credit" {
				var customer models.User
				if err := tx.First(&customer, "id = ?", booking.UserID).Error; err != nil {
					return err
				}
				customer.CreditBalance += payment.Amount
				if err := tx.Save(&customer).Error; err != nil {
					return err
				}
			}

			return nil
		})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update internal records for refund"})
		}

		go notifications.SendEmail(payment.Booking.User.FullName, payment.Booking.User.Email, "Your Refund has been Processed", "<h1>Refund Processed</h1><p>Your refund request has been approved and processed by our team.</p>")
	} else {
		rejectedStatus := "rejected"
		payment.RefundStatus = &rejectedStatus
		database.DB.Save(&payment)

		go notifications.SendEmail(payment.Booking.User.FullName, payment.Booking.User.Email, "Update on Your Refund Request", "<h1>Refund Request Update</h1><p>Your refund request has been reviewed and was not approved.</p>")
	}

	action := "refund.approved"
	if req.Decision == "reject" {
		action = "refund.rejected"
	}
	recordActivity(c, action, "payment", paymentID, "")

	return c.JSON(fiber.Map{"message": "Refund request processed successfully"})
}
