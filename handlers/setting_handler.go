package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/njoroge256/aerodesk/database"
	"github.com/njoroge256/aerodesk/models"
	"gorm.io/gorm/clause"
)

type SettingRequest struct {
	Key         string  `json:"key" validate:"required,min=2,max=100"`
	Value       string  `json:"value" validate:"required"`
	Description *string `json:"description"`
}

func AdminListSettings(c *fiber.Ctx) error {
	var settings []models.SystemSetting
	database.DB.Order("key asc").Find(&settings)
	return c.JSON(settings)
}

func AdminUpsertSetting(c *fiber.Ctx) error {
	var req SettingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	setting := models.SystemSetting{
		Key:         req.Key,
		Value:       req.Value,
		Description: req.Description,
	}
	err := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "description", "updated_at"}),
	}).Create(&setting).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save setting"})
	}

	recordActivity(c, "setting.updated", "system_setting", req.Key, req.Value)

	return c.JSON(setting)
}
