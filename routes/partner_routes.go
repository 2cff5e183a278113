package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/njoroge256/aerodesk/handlers"
	"github.com/njoroge256/aerodesk/middleware"
)

func PartnerRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	partner := api.Group("/partner", middleware.Protected(), middleware.PartnerRequired())

	partner.Post("/payouts", handlers.RequestPayout)
}
