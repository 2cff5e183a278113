package jobs

import (
	"fmt"
	"log"
	"time"

	config "github.com/njoroge256/aerodesk/configs"
	"github.com/njoroge256/aerodesk/database"
	"github.com/njoroge256/aerodesk/models"
	"github.com/njoroge256/aerodesk/notifications"
)

const payoutReminderAge = 48 * time.Hour

// RemindPendingPayouts emails the admin inbox when payout requests have been
// sitting unreviewed for more than two days.
func RemindPendingPayouts() {
	log.Println("Running job: RemindPendingPayouts...")

	cutoff := time.Now().Add(-payoutReminderAge)

	var agingPayouts []models.Payout
	err := database.DB.
		Preload("Partner").
		Where("status = ? AND requested_at < ?", models.PayoutStatusPending, cutoff).
		Order("requested_at asc").
		Find(&agingPayouts).Error
	if err != nil {
		log.Printf("Error checking for aging payouts: %v", err)
		return
	}

	if len(agingPayouts) == 0 {
		return
	}

	adminEmail := config.Config("ADMIN_EMAIL")
	if adminEmail == "" {
		log.Println("ADMIN_EMAIL not configured, skipping payout reminder.")
		return
	}

	body := "<h1>Payouts Awaiting Review</h1><p>The following payout requests have been pending for over 48 hours:</p><ul>"
	for _, p := range agingPayouts {
		body += fmt.Sprintf("<li>%s — $%.2f, requested %s</li>", p.Partner.BusinessName, p.Amount, p.RequestedAt.Format("2006-01-02 15:04"))
	}
	body += "</ul>"

	go notifications.SendEmail(
		"Admin",
		adminEmail,
		fmt.Sprintf("%d payout request(s) awaiting review", len(agingPayouts)),
		body,
	)
}
