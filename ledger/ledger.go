package ledger

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/njoroge256/aerodesk/models"
)

// Store is the persistence surface the payout ledger needs. The conditional
// update is the concurrency guard: a status transition only applies when the
// row still holds the expected status.
type Store interface {
	FetchPayoutWithPartner(payoutID uuid.UUID) (*models.Payout, *models.Partner, error)
	ConditionalUpdatePayout(payoutID uuid.UUID, expectedStatus string, fields map[string]interface{}) (bool, error)
	UpdatePartnerBalance(partnerID uuid.UUID, newBalance float64) error
}

// Notifier failures never affect ledger state; they are logged and dropped.
type Notifier interface {
	NotifyApproval(partner models.Partner, payout models.Payout, newBalance float64) error
	NotifyRejection(partner models.Partner, payout models.Payout, reason string) error
}

type ApprovalResult struct {
	PayoutID        uuid.UUID `json:"payout_id"`
	Amount          float64   `json:"amount"`
	PartnerName     string    `json:"partner_name"`
	PreviousBalance float64   `json:"previous_balance"`
	NewBalance      float64   `json:"new_balance"`
}

type RejectionResult struct {
	PayoutID uuid.UUID `json:"payout_id"`
	Reason   string    `json:"reason"`
}

const defaultRejectionReason = "Rejected by administrator"

// PayoutLedger owns the payout approval protocol: a payout's amount is
// deducted from its partner's available balance exactly once, together with
// the payout's status transition. The two writes are not a single database
// transaction; if the balance write fails after the status write, the ledger
// issues a compensating write reverting the payout to pending.
type PayoutLedger struct {
	store    Store
	notifier Notifier
	now      func() time.Time
}

func New(store Store, notifier Notifier) *PayoutLedger {
	return &PayoutLedger{
		store:    store,
		notifier: notifier,
		now:      time.Now,
	}
}

// loadPayout fetches the payout and its partner, translating missing rows
// into KindNotFound. A zero-value partner counts as missing: foreign keys are
// not enforced at the database level, so the partner row can be gone while
// the payout survives.
func (l *PayoutLedger) loadPayout(payoutID uuid.UUID) (*models.Payout, *models.Partner, error) {
	payout, partner, err := l.store.FetchPayoutWithPartner(payoutID)
	if err != nil {
		switch err {
		case ErrPayoutNotFound:
			return nil, nil, &Error{Kind: KindNotFound, Message: fmt.Sprintf("payout %s not found", payoutID)}
		case ErrPartnerNotFound:
			return nil, nil, &Error{Kind: KindNotFound, Message: fmt.Sprintf("partner for payout %s not found", payoutID)}
		}
		return nil, nil, err
	}
	if partner == nil || partner.ID == uuid.Nil {
		return nil, nil, &Error{Kind: KindNotFound, Message: fmt.Sprintf("partner for payout %s not found", payoutID)}
	}
	return payout, partner, nil
}

func (l *PayoutLedger) ApprovePayout(payoutID, adminID uuid.UUID) (*ApprovalResult, error) {
	payout, partner, err := l.loadPayout(payoutID)
	if err != nil {
		return nil, err
	}

	if payout.Status != models.PayoutStatusPending {
		return nil, &Error{
			Kind:    KindInvalidState,
			Message: fmt.Sprintf("payout %s cannot be approved: status is %q, expected %q", payoutID, payout.Status, models.PayoutStatusPending),
		}
	}

	requiredAmount := payout.Amount
	availableBalance := partner.AvailableBalance
	if availableBalance < requiredAmount {
		return nil, &Error{
			Kind:    KindInsufficientFunds,
			Message: fmt.Sprintf("partner %s has insufficient funds: available %.2f, required %.2f", partner.ID, availableBalance, requiredAmount),
		}
	}

	now := l.now()
	ok, err := l.store.ConditionalUpdatePayout(payoutID, models.PayoutStatusPending, map[string]interface{}{
		"status":      models.PayoutStatusApproved,
		"approved_at": now,
		"approved_by": adminID,
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &Error{
			Kind:    KindInvalidState,
			Message: fmt.Sprintf("payout %s is no longer pending; it was updated concurrently", payoutID),
		}
	}

	newBalance := availableBalance - requiredAmount
	if err := l.store.UpdatePartnerBalance(partner.ID, newBalance); err != nil {
		l.compensateApproval(payoutID)
		return nil, &Error{
			Kind:    KindInconsistency,
			Message: fmt.Sprintf("balance deduction failed for partner %s after payout %s was marked approved; payout reverted to pending", partner.ID, payoutID),
			Cause:   err,
		}
	}

	payout.Status = models.PayoutStatusApproved
	payout.ApprovedAt = &now
	payout.ApprovedBy = &adminID
	if err := l.notifier.NotifyApproval(*partner, *payout, newBalance); err != nil {
		log.Printf("🔥 Failed to send payout approval notification for %s: %v", payoutID, err)
	}

	return &ApprovalResult{
		PayoutID:        payoutID,
		Amount:          requiredAmount,
		PartnerName:     partner.BusinessName,
		PreviousBalance: availableBalance,
		NewBalance:      newBalance,
	}, nil
}

func (l *PayoutLedger) RejectPayout(payoutID, adminID uuid.UUID, reason string) (*RejectionResult, error) {
	payout, partner, err := l.loadPayout(payoutID)
	if err != nil {
		return nil, err
	}

	if payout.Status != models.PayoutStatusPending {
		return nil, &Error{
			Kind:    KindInvalidState,
			Message: fmt.Sprintf("payout %s cannot be rejected: status is %q, expected %q", payoutID, payout.Status, models.PayoutStatusPending),
		}
	}

	if reason == "" {
		reason = defaultRejectionReason
	}

	now := l.now()
	ok, err := l.store.ConditionalUpdatePayout(payoutID, models.PayoutStatusPending, map[string]interface{}{
		"status":           models.PayoutStatusRejected,
		"rejected_at":      now,
		"rejected_by":      adminID,
		"rejection_reason": reason,
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &Error{
			Kind:    KindInvalidState,
			Message: fmt.Sprintf("payout %s is no longer pending; it was updated concurrently", payoutID),
		}
	}

	payout.Status = models.PayoutStatusRejected
	payout.RejectedAt = &now
	payout.RejectedBy = &adminID
	payout.RejectionReason = &reason
	if err := l.notifier.NotifyRejection(*partner, *payout, reason); err != nil {
		log.Printf("🔥 Failed to send payout rejection notification for %s: %v", payoutID, err)
	}

	return &RejectionResult{PayoutID: payoutID, Reason: reason}, nil
}

// compensateApproval reverts a payout to pending after the balance phase
// failed. Best effort: if the revert itself fails the payout is left approved
// with no deduction, which needs operator attention.
func (l *PayoutLedger) compensateApproval(payoutID uuid.UUID) {
	ok, err := l.store.ConditionalUpdatePayout(payoutID, models.PayoutStatusApproved, map[string]interface{}{
		"status":      models.PayoutStatusPending,
		"approved_at": nil,
		"approved_by": nil,
	})
	if err != nil {
		log.Printf("🔥🔥 Compensating write for payout %s failed: %v — payout may be approved without a balance deduction", payoutID, err)
		return
	}
	if !ok {
		log.Printf("🔥🔥 Compensating write for payout %s matched no row — payout may be approved without a balance deduction", payoutID)
	}
}
