package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/njoroge256/aerodesk/database"
	"github.com/njoroge256/aerodesk/models"
	"github.com/njoroge256/aerodesk/websocket"
)

func currentUserID(c *fiber.Ctx) uuid.UUID {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	id, _ := uuid.Parse(claims["user_id"].(string))
	return id
}

func currentPartnerID(c *fiber.Ctx) (uuid.UUID, bool) {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	raw, ok := claims["partner_id"].(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// recordActivity persists an audit entry and pushes it onto the live admin
// feed. Failures are logged only; audit writes never fail a request.
func recordActivity(c *fiber.Ctx, action, entityType, entityID, details string) {
	adminID := currentUserID(c)

	entry := models.ActivityLog{
		AdminID:    &adminID,
		Action:     action,
		EntityType: entityType,
	}
	if entityID != "" {
		entry.EntityID = &entityID
	}
	if details != "" {
		entry.Details = &details
	}

	if err := database.DB.Create(&entry).Error; err != nil {
		log.Printf("🔥 Failed to record activity %s on %s: %v", action, entityType, err)
		return
	}

	websocket.Publish(&entry)
}
