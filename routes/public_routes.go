package routes

import (
	websocketcontrib "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/njoroge256/aerodesk/handlers"
)

func PublicRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/currency/rate", handlers.GetConversionRate)

	api.Use("/ws", func(c *fiber.Ctx) error {
		if !websocketcontrib.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	api.Get("/ws/activity", websocketcontrib.New(handlers.ServeActivityFeed))
}
