package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/njoroge256/aerodesk/handlers"
	"github.com/njoroge256/aerodesk/middleware"
)

func UploadRoutes(app *fiber.App) {
	api := app.Group("/api/v1", middleware.Protected())

	uploads := api.Group("/uploads")
	uploads.Get("/signature", handlers.GenerateUploadSignature)
}
