package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/njoroge256/aerodesk/database"
	"github.com/njoroge256/aerodesk/models"
	"github.com/njoroge256/aerodesk/utils"
)

type PromoCodeRequest struct {
	Code          *string    `json:"code" validate:"omitempty,min=4,max=20"`
	DiscountType  string     `json:"discount_type" validate:"required,oneof=percent fixed"`
	DiscountValue float64    `json:"discount_value" validate:"required,gt=0"`
	MaxUses       int        `json:"max_uses" validate:"gte=0"`
	ValidFrom     *time.Time `json:"valid_from"`
	ValidUntil    *time.Time `json:"valid_until"`
}

func AdminListPromoCodes(c *fiber.Ctx) error {
	var promos []models.PromoCode
	database.DB.Order("created_at desc").Find(&promos)
	return c.JSON(promos)
}

func AdminCreatePromoCode(c *fiber.Ctx) error {
	var req PromoCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.DiscountType == "percent" && req.DiscountValue > 100 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Percent discount cannot exceed 100"})
	}

	code := ""
	if req.Code != nil {
		code = *req.Code
	} else {
		generated, err := utils.GenerateUniquePromoCode(database.DB)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate promo code"})
		}
		code = generated
	}

	validFrom := time.Now()
	if req.ValidFrom != nil {
		validFrom = *req.ValidFrom
	}

	promo := models.PromoCode{
		Code:          code,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		MaxUses:       req.MaxUses,
		ValidFrom:     validFrom,
		ValidUntil:    req.ValidUntil,
		IsActive:      true,
	}
	if err := database.DB.Create(&promo).Error; err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Failed to create promo code; the code may already exist"})
	}

	recordActivity(c, "promo.created", "promo_code", promo.ID.String(), promo.Code)

	return c.Status(fiber.StatusCreated).JSON(promo)
}

func AdminUpdatePromoCode(c *fiber.Ctx) error {
	promoID := c.Params("promoId")
	var promo models.PromoCode
	if err := database.DB.First(&promo, "id = ?", promoID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Promo code not found"})
	}

	var req PromoCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	promo.DiscountType = req.DiscountType
	promo.DiscountValue = req.DiscountValue
	promo.MaxUses = req.MaxUses
	if req.ValidFrom != nil {
		promo.ValidFrom = *req.ValidFrom
	}
	promo.ValidUntil = req.ValidUntil
	if err := database.DB.Save(&promo).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update promo code"})
	}

	recordActivity(c, "promo.updated", "promo_code", promo.ID.String(), promo.Code)

	return c.JSON(promo)
}

func AdminDeactivatePromoCode(c *fiber.Ctx) error {
	promoID := c.Params("promoId")
	result := database.DB.Model(&models.PromoCode{}).Where("id = ?", promoID).Update("is_active", false)

	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to deactivate promo code"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Promo code not found"})
	}

	recordActivity(c, "promo.deactivated", "promo_code", promoID, "")

	return c.SendStatus(fiber.StatusNoContent)
}
