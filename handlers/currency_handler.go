package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/njoroge256/aerodesk/services"
)

func GetConversionRate(c *fiber.Ctx) error {
	target := c.Query("currency", "KES")

	rates, err := services.FetchRates()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch exchange rates"})
	}

	rate, ok := rates[target]
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Rate not available for " + target})
	}

	return c.JSON(fiber.Map{"base": "USD", "currency": target, "rate": rate})
}
