package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/njoroge256/aerodesk/handlers"
	"github.com/njoroge256/aerodesk/middleware"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())

	admin.Get("/dashboard-analytics", handlers.GetDashboardAnalytics)

	users := admin.Group("/users")
	users.Get("", handlers.GetAllUsers)
	users.Put("/:userId/status", handlers.ToggleUserStatus)
	users.Delete("/:userId", handlers.AdminDeleteUser)

	partners := admin.Group("/partners")
	partners.Get("", handlers.AdminListPartners)
	partners.Post("", handlers.AdminCreatePartner)
	partners.Get("/:partnerId", handlers.AdminGetPartner)
	partners.Put("/:partnerId", handlers.AdminUpdatePartner)
	partners.Put("/:partnerId/status", handlers.AdminTogglePartnerStatus)

	bookings := admin.Group("/bookings")
	bookings.Get("", handlers.AdminGetAllBookings)
	bookings.Get("/:bookingId", handlers.AdminGetBooking)
	bookings.Put("/:bookingId/confirm", handlers.AdminConfirmBooking)
	bookings.Put("/:bookingId/complete", handlers.AdminCompleteBooking)
	bookings.Put("/:bookingId/cancel", handlers.AdminCancelBooking)

	admin.Get("/refund-requests", handlers.ListRefundRequests)
	admin.Post("/refund-requests/:paymentId/process", handlers.ProcessRefund)

	payouts := admin.Group("/payouts")
	payouts.Get("", handlers.ListPayouts)
	payouts.Put("/:payoutId/approve", handlers.ApprovePayout)
	payouts.Put("/:payoutId/reject", handlers.RejectPayout)

	promos := admin.Group("/promo-codes")
	promos.Get("", handlers.AdminListPromoCodes)
	promos.Post("", handlers.AdminCreatePromoCode)
	promos.Put("/:promoId", handlers.AdminUpdatePromoCode)
	promos.Delete("/:promoId", handlers.AdminDeactivatePromoCode)

	settings := admin.Group("/settings")
	settings.Get("", handlers.AdminListSettings)
	settings.Put("", handlers.AdminUpsertSetting)

	admin.Get("/activity-logs", handlers.AdminGetActivityLogs)

	reports := admin.Group("/reports")
	reports.Get("/transactions", handlers.GenerateTransactionReport)
	reports.Get("/bookings", handlers.GenerateBookingSummaryReport)
}
