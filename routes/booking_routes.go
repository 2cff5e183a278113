package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/njoroge256/aerodesk/handlers"
	"github.com/njoroge256/aerodesk/middleware"
)

func BookingRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	bookings := api.Group("/bookings", middleware.Protected())
	bookings.Post("", handlers.CreateBooking)
}
