package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/njoroge256/aerodesk/database"
	"github.com/njoroge256/aerodesk/models"
)

type DashboardAnalyticsResponse struct {
	TotalCustomers      int64            `json:"total_customers"`
	TotalActivePartners int64            `json:"total_active_partners"`
	TotalRevenue        float64          `json:"total_revenue"`
	BookingsLast30Days  int64            `json:"bookings_last_30_days"`
	PendingPayouts      int64            `json:"pending_payouts"`
	PendingRefunds      int64            `json:"pending_refunds"`
	RecentBookings      []models.Booking `json:"recent_bookings"`
}

func GetDashboardAnalytics(c *fiber.Ctx) error {
	var response DashboardAnalyticsResponse
	var totalRevenue float64

	database.DB.Model(&models.User{}).Where("role = ?", "customer").Count(&response.TotalCustomers)

	database.DB.Model(&models.Partner{}).Where("status = ?", "active").Count(&response.TotalActivePartners)

	database.DB.Model(&models.Payment{}).Where("status = ?", "succeeded").Select("COALESCE(SUM(amount), 0)").Row().Scan(&totalRevenue)
	response.TotalRevenue = totalRevenue

	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
	database.DB.Model(&models.Booking{}).Where("created_at > ?", thirtyDaysAgo).Count(&response.BookingsLast30Days)

	database.DB.Model(&models.Payout{}).Where("status = ?", models.PayoutStatusPending).Count(&response.PendingPayouts)
	database.DB.Model(&models.Payment{}).Where("refund_status = ?", "requested").Count(&response.PendingRefunds)

	database.DB.Order("created_at desc").Limit(5).Preload("User").Preload("Partner").Find(&response.RecentBookings)

	return c.JSON(response)
}
