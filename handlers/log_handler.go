package handlers

import (
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/njoroge256/aerodesk/database"
	"github.com/njoroge256/aerodesk/models"
)

func AdminGetActivityLogs(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "25"))
	offset := (page - 1) * limit

	query := database.DB.Model(&models.ActivityLog{})
	countQuery := database.DB.Model(&models.ActivityLog{})

	if action := c.Query("action"); action != "" {
		query = query.Where("action = ?", action)
		countQuery = countQuery.Where("action = ?", action)
	}
	if entityType := c.Query("entity_type"); entityType != "" {
		query = query.Where("entity_type = ?", entityType)
		countQuery = countQuery.Where("entity_type = ?", entityType)
	}

	var total int64
	var entries []models.ActivityLog
	countQuery.Count(&total)
	query.Order("created_at desc").Offset(offset).Limit(limit).Preload("Admin").Find(&entries)

	return c.JSON(fiber.Map{
		"data": entries,
		"meta": fiber.Map{"total": total, "page": page, "last_page": int(math.Ceil(float64(total) / float64(limit)))},
	})
}
