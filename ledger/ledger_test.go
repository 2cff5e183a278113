package ledger

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/njoroge256/aerodesk/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu          sync.Mutex
	payout      models.Payout
	partner     models.Partner
	missing     bool
	partnerGone bool

	balanceErr error
	revertErr  error

	conditionalCalls int
	balanceCalls     int
}

func (s *fakeStore) FetchPayoutWithPartner(payoutID uuid.UUID) (*models.Payout, *models.Partner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.missing || payoutID != s.payout.ID {
		return nil, nil, ErrPayoutNotFound
	}
	payout := s.payout
	partner := s.partner
	if s.partnerGone {
		// Mirrors a Preload that found no partner row.
		partner = models.Partner{}
	}
	return &payout, &partner, nil
}

func (s *fakeStore) ConditionalUpdatePayout(payoutID uuid.UUID, expectedStatus string, fields map[string]interface{}) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conditionalCalls++
	if expectedStatus == models.PayoutStatusApproved && s.revertErr != nil {
		return false, s.revertErr
	}
	if payoutID != s.payout.ID || s.payout.Status != expectedStatus {
		return false, nil
	}
	for key, value := range fields {
		switch key {
		case "status":
			s.payout.Status = value.(string)
		case "approved_at":
			if value == nil {
				s.payout.ApprovedAt = nil
			} else {
				t := value.(time.Time)
				s.payout.ApprovedAt = &t
			}
		case "approved_by":
			if value == nil {
				s.payout.ApprovedBy = nil
			} else {
				id := value.(uuid.UUID)
				s.payout.ApprovedBy = &id
			}
		case "rejected_at":
			t := value.(time.Time)
			s.payout.RejectedAt = &t
		case "rejected_by":
			id := value.(uuid.UUID)
			s.payout.RejectedBy = &id
		case "rejection_reason":
			reason := value.(string)
			s.payout.RejectionReason = &reason
		}
	}
	return true, nil
}

func (s *fakeStore) UpdatePartnerBalance(partnerID uuid.UUID, newBalance float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balanceCalls++
	if s.balanceErr != nil {
		return s.balanceErr
	}
	s.partner.AvailableBalance = newBalance
	return nil
}

type fakeNotifier struct {
	mu         sync.Mutex
	approvals  int
	rejections int
	err        error
}

func (n *fakeNotifier) NotifyApproval(partner models.Partner, payout models.Payout, newBalance float64) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.approvals++
	return n.err
}

func (n *fakeNotifier) NotifyRejection(partner models.Partner, payout models.Payout, reason string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.rejections++
	return n.err
}

func newFakeStore(status string, amount, balance float64) *fakeStore {
	partnerID := uuid.New()
	return &fakeStore{
		payout: models.Payout{
			ID:          uuid.New(),
			PartnerID:   partnerID,
			Amount:      amount,
			Status:      status,
			RequestedAt: time.Now(),
		},
		partner: models.Partner{
			ID:               partnerID,
			BusinessName:     "Savannah Air Travel",
			Email:            "accounts@savannahair.example",
			AvailableBalance: balance,
		},
	}
}

func TestApprovePayout_Success(t *testing.T) {
	store := newFakeStore(models.PayoutStatusPending, 100.00, 250.00)
	notifier := &fakeNotifier{}
	adminID := uuid.New()

	result, err := New(store, notifier).ApprovePayout(store.payout.ID, adminID)
	require.NoError(t, err)

	assert.Equal(t, store.payout.ID, result.PayoutID)
	assert.Equal(t, 100.00, result.Amount)
	assert.Equal(t, "Savannah Air Travel", result.PartnerName)
	assert.Equal(t, 250.00, result.PreviousBalance)
	assert.Equal(t, 150.00, result.NewBalance)
	assert.Equal(t, result.PreviousBalance, result.NewBalance+result.Amount)

	assert.Equal(t, models.PayoutStatusApproved, store.payout.Status)
	require.NotNil(t, store.payout.ApprovedBy)
	assert.Equal(t, adminID, *store.payout.ApprovedBy)
	assert.NotNil(t, store.payout.ApprovedAt)
	assert.Equal(t, 150.00, store.partner.AvailableBalance)
	assert.Equal(t, 1, notifier.approvals)
}

func TestApprovePayout_NotFound(t *testing.T) {
	store := newFakeStore(models.PayoutStatusPending, 100.00, 250.00)
	store.missing = true

	_, err := New(store, &fakeNotifier{}).ApprovePayout(store.payout.ID, uuid.New())
	require.Error(t, err)
	assert.True(t, IsKind(err, KindNotFound))
	assert.Equal(t, 0, store.conditionalCalls)
	assert.Equal(t, 0, store.balanceCalls)
}

func TestApprovePayout_PartnerRowMissing(t *testing.T) {
	store := newFakeStore(models.PayoutStatusPending, 100.00, 250.00)
	store.partnerGone = true

	_, err := New(store, &fakeNotifier{}).ApprovePayout(store.payout.ID, uuid.New())
	require.Error(t, err)
	assert.True(t, IsKind(err, KindNotFound), "expected not-found, got: %v", err)
	assert.NotContains(t, err.Error(), "insufficient funds")
	assert.Equal(t, 0, store.conditionalCalls)
	assert.Equal(t, 0, store.balanceCalls)
	assert.Equal(t, models.PayoutStatusPending, store.payout.Status)
}

func TestRejectPayout_PartnerRowMissing(t *testing.T) {
	store := newFakeStore(models.PayoutStatusPending, 100.00, 250.00)
	store.partnerGone = true

	_, err := New(store, &fakeNotifier{}).RejectPayout(store.payout.ID, uuid.New(), "reason")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindNotFound))
	assert.Equal(t, 0, store.conditionalCalls)
}

func TestApprovePayout_InvalidState(t *testing.T) {
	for _, status := range []string{models.PayoutStatusApproved, models.PayoutStatusRejected} {
		t.Run(status, func(t *testing.T) {
			store := newFakeStore(status, 100.00, 250.00)

			_, err := New(store, &fakeNotifier{}).ApprovePayout(store.payout.ID, uuid.New())
			require.Error(t, err)
			assert.True(t, IsKind(err, KindInvalidState))
			assert.Contains(t, err.Error(), status)
			assert.Equal(t, 0, store.conditionalCalls)
			assert.Equal(t, 0, store.balanceCalls)
		})
	}
}

func TestApprovePayout_InsufficientFunds(t *testing.T) {
	store := newFakeStore(models.PayoutStatusPending, 300.00, 250.00)

	_, err := New(store, &fakeNotifier{}).ApprovePayout(store.payout.ID, uuid.New())
	require.Error(t, err)
	assert.True(t, IsKind(err, KindInsufficientFunds))
	assert.Contains(t, err.Error(), "250.00")
	assert.Contains(t, err.Error(), "300.00")
	assert.Equal(t, 0, store.conditionalCalls)
	assert.Equal(t, 0, store.balanceCalls)
	assert.Equal(t, models.PayoutStatusPending, store.payout.Status)
}

func TestApprovePayout_BalanceWriteFailureCompensates(t *testing.T) {
	store := newFakeStore(models.PayoutStatusPending, 100.00, 250.00)
	store.balanceErr = errors.New("connection reset")
	notifier := &fakeNotifier{}

	_, err := New(store, notifier).ApprovePayout(store.payout.ID, uuid.New())
	require.Error(t, err)
	assert.True(t, IsKind(err, KindInconsistency))
	assert.ErrorContains(t, err, "connection reset")

	assert.Equal(t, models.PayoutStatusPending, store.payout.Status)
	assert.Nil(t, store.payout.ApprovedAt)
	assert.Nil(t, store.payout.ApprovedBy)
	assert.Equal(t, 250.00, store.partner.AvailableBalance)
	assert.Equal(t, 0, notifier.approvals)
}

func TestApprovePayout_CompensationFailureStillSurfacesInconsistency(t *testing.T) {
	store := newFakeStore(models.PayoutStatusPending, 100.00, 250.00)
	store.balanceErr = errors.New("connection reset")
	store.revertErr = errors.New("connection still down")

	_, err := New(store, &fakeNotifier{}).ApprovePayout(store.payout.ID, uuid.New())
	require.Error(t, err)
	assert.True(t, IsKind(err, KindInconsistency))
	assert.Equal(t, models.PayoutStatusApproved, store.payout.Status)
}

func TestApprovePayout_ConcurrentAttemptsDeductOnce(t *testing.T) {
	store := newFakeStore(models.PayoutStatusPending, 100.00, 250.00)
	payoutLedger := New(store, &fakeNotifier{})

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := payoutLedger.ApprovePayout(store.payout.ID, uuid.New())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var successes, conflicts int
	for err := range errs {
		if err == nil {
			successes++
			continue
		}
		require.True(t, IsKind(err, KindInvalidState), "unexpected error: %v", err)
		conflicts++
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, conflicts)
	assert.Equal(t, 150.00, store.partner.AvailableBalance)
	assert.Equal(t, 1, store.balanceCalls)
}

func TestApprovePayout_NotifierFailureDoesNotAffectResult(t *testing.T) {
	store := newFakeStore(models.PayoutStatusPending, 100.00, 250.00)
	notifier := &fakeNotifier{err: errors.New("brevo unreachable")}

	result, err := New(store, notifier).ApprovePayout(store.payout.ID, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 150.00, result.NewBalance)
	assert.Equal(t, models.PayoutStatusApproved, store.payout.Status)
	assert.Equal(t, 150.00, store.partner.AvailableBalance)
}

func TestRejectPayout_Success(t *testing.T) {
	store := newFakeStore(models.PayoutStatusPending, 100.00, 250.00)
	notifier := &fakeNotifier{}
	adminID := uuid.New()

	result, err := New(store, notifier).RejectPayout(store.payout.ID, adminID, "Bank details mismatch")
	require.NoError(t, err)
	assert.Equal(t, store.payout.ID, result.PayoutID)
	assert.Equal(t, "Bank details mismatch", result.Reason)

	assert.Equal(t, models.PayoutStatusRejected, store.payout.Status)
	require.NotNil(t, store.payout.RejectedBy)
	assert.Equal(t, adminID, *store.payout.RejectedBy)
	require.NotNil(t, store.payout.RejectionReason)
	assert.Equal(t, "Bank details mismatch", *store.payout.RejectionReason)
	assert.Equal(t, 250.00, store.partner.AvailableBalance)
	assert.Equal(t, 0, store.balanceCalls)
	assert.Equal(t, 1, notifier.rejections)
}

func TestRejectPayout_EmptyReasonDefaults(t *testing.T) {
	store := newFakeStore(models.PayoutStatusPending, 100.00, 250.00)

	result, err := New(store, &fakeNotifier{}).RejectPayout(store.payout.ID, uuid.New(), "")
	require.NoError(t, err)
	assert.Equal(t, defaultRejectionReason, result.Reason)
	require.NotNil(t, store.payout.RejectionReason)
	assert.Equal(t, defaultRejectionReason, *store.payout.RejectionReason)
}

func TestRejectPayout_NotFound(t *testing.T) {
	store := newFakeStore(models.PayoutStatusPending, 100.00, 250.00)
	store.missing = true

	_, err := New(store, &fakeNotifier{}).RejectPayout(store.payout.ID, uuid.New(), "reason")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindNotFound))
}

func TestRejectPayout_InvalidState(t *testing.T) {
	store := newFakeStore(models.PayoutStatusApproved, 100.00, 250.00)

	_, err := New(store, &fakeNotifier{}).RejectPayout(store.payout.ID, uuid.New(), "reason")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindInvalidState))
	assert.Contains(t, err.Error(), models.PayoutStatusApproved)
	assert.Equal(t, 0, store.conditionalCalls)
}

func TestRejectPayout_NotifierFailureIgnored(t *testing.T) {
	store := newFakeStore(models.PayoutStatusPending, 100.00, 250.00)
	notifier := &fakeNotifier{err: errors.New("brevo unreachable")}

	_, err := New(store, notifier).RejectPayout(store.payout.ID, uuid.New(), "reason")
	require.NoError(t, err)
	assert.Equal(t, models.PayoutStatusRejected, store.payout.Status)
}
