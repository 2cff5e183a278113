package handlers

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/njoroge256/aerodesk/database"
	"github.com/njoroge256/aerodesk/ledger"
	"github.com/njoroge256/aerodesk/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PayoutService is what the payout handlers need from the ledger core;
// main wires the real ledger.PayoutLedger here.
type PayoutService interface {
	ApprovePayout(payoutID, adminID uuid.UUID) (*ledger.ApprovalResult, error)
	RejectPayout(payoutID, adminID uuid.UUID, reason string) (*ledger.RejectionResult, error)
}

var Payouts PayoutService

type PayoutRequestBody struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// RequestPayout creates a pending payout for the authenticated partner. The
// amount is only validated against the balance here; it leaves the balance on
// the approval decision, not on request.
func RequestPayout(c *fiber.Ctx) error {
	partnerID, ok := currentPartnerID(c)
	if !ok {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "No partner profile linked to this account"})
	}

	var req PayoutRequestBody
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var partner models.Partner
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&partner, "id = ?", partnerID).Error; err != nil {
			return errors.New("partner profile not found")
		}
		var reserved float64
		if err := tx.Model(&models.Payout{}).
			Where("partner_id = ? AND status = ?", partnerID, models.PayoutStatusPending).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&reserved).Error; err != nil {
			return errors.New("could not determine pending payout total")
		}
		if err := checkPayoutHeadroom(partner, reserved, req.Amount); err != nil {
			return err
		}

		payout := models.Payout{
			PartnerID:   partnerID,
			Amount:      req.Amount,
			Status:      models.PayoutStatusPending,
			RequestedAt: time.Now(),
		}
		return tx.Create(&payout).Error
	})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Payout request submitted successfully."})
}

// checkPayoutHeadroom rejects a request when the partner is suspended or when
// pending payouts already reserve the remainder of the balance.
func checkPayoutHeadroom(partner models.Partner, reservedPending, amount float64) error {
	if partner.Status != "active" {
		return errors.New("suspended partners cannot request payouts")
	}
	if partner.AvailableBalance-reservedPending < amount {
		return errors.New("insufficient balance for this payout request")
	}
	return nil
}

func ListPayouts(c *fiber.Ctx) error {
	status := c.Query("status", models.PayoutStatusPending)

	var payouts []models.Payout
	database.DB.Preload("Partner").Where("status = ?", status).Order("requested_at asc").Find(&payouts)
	return c.JSON(payouts)
}

func ApprovePayout(c *fiber.Ctx) error {
	payoutID, err := uuid.Parse(c.Params("payoutId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid payout id"})
	}

	result, err := Payouts.ApprovePayout(payoutID, currentUserID(c))
	if err != nil {
		return payoutError(c, err)
	}

	recordActivity(c, "payout.approved", "payout", payoutID.String(), fmt.Sprintf("amount %.2f to %s", result.Amount, result.PartnerName))

	return c.JSON(fiber.Map{
		"success": true,
		"data":    result,
		"message": "Payout approved successfully",
	})
}

func RejectPayout(c *fiber.Ctx) error {
	payoutID, err := uuid.Parse(c.Params("payoutId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid payout id"})
	}

	type RejectRequest struct {
		Reason string `json:"reason"`
	}
	var req RejectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Cannot parse JSON"})
	}

	result, err := Payouts.RejectPayout(payoutID, currentUserID(c), req.Reason)
	if err != nil {
		return payoutError(c, err)
	}

	recordActivity(c, "payout.rejected", "payout", payoutID.String(), result.Reason)

	return c.JSON(fiber.Map{
		"success": true,
		"data":    result,
		"message": "Payout rejected",
	})
}

func payoutError(c *fiber.Ctx, err error) error {
	switch {
	case ledger.IsKind(err, ledger.KindNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": err.Error()})
	case ledger.IsKind(err, ledger.KindInvalidState):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "error": err.Error()})
	case ledger.IsKind(err, ledger.KindInsufficientFunds):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": err.Error()})
	case ledger.IsKind(err, ledger.KindInconsistency):
		log.Printf("🔥🔥 LEDGER INCONSISTENCY: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": err.Error()})
	default:
		log.Printf("[ERROR] payout operation failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Internal server error"})
	}
}
