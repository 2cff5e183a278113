package notifications

import (
	"fmt"
	"log"

	"github.com/njoroge256/aerodesk/models"
)

// PayoutNotifier adapts the Brevo email service to the ledger's Notifier
// interface. Emails go out in the background; the returned error only reports
// a missing client so the ledger can log it.
type PayoutNotifier struct{}

func NewPayoutNotifier() *PayoutNotifier {
	return &PayoutNotifier{}
}

func (n *PayoutNotifier) NotifyApproval(partner models.Partner, payout models.Payout, newBalance float64) error {
	if EmailClient == nil {
		return fmt.Errorf("email client not initialized")
	}

	subject := "Your Payout Has Been Approved"
	body := fmt.Sprintf(
		"<h1>Payout Approved</h1><p>Hello %s,</p><p>Your payout request for the amount of $%.2f has been approved and is being disbursed.</p><p>Your remaining available balance is $%.2f.</p>",
		partner.BusinessName, payout.Amount, newBalance,
	)

	go SendEmail(partner.BusinessName, partner.Email, subject, body)
	log.Printf("Queued payout approval email for partner %s", partner.ID)
	return nil
}

func (n *PayoutNotifier) NotifyRejection(partner models.Partner, payout models.Payout, reason string) error {
	if EmailClient == nil {
		return fmt.Errorf("email client not initialized")
	}

	subject := "Update on Your Payout Request"
	body := fmt.Sprintf(
		"<h1>Payout Request Update</h1><p>Hello %s,</p><p>Your payout request for the amount of $%.2f was not approved.</p><p><b>Reason:</b> %s</p><p>The requested amount remains in your available balance.</p>",
		partner.BusinessName, payout.Amount, reason,
	)

	go SendEmail(partner.BusinessName, partner.Email, subject, body)
	log.Printf("Queued payout rejection email for partner %s", partner.ID)
	return nil
}
