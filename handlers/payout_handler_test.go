package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/njoroge256/aerodesk/ledger"
	"github.com/njoroge256/aerodesk/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPayoutService struct {
	approveErr error
	rejectErr  error
}

func (s *stubPayoutService) ApprovePayout(payoutID, adminID uuid.UUID) (*ledger.ApprovalResult, error) {
	if s.approveErr != nil {
		return nil, s.approveErr
	}
	return &ledger.ApprovalResult{PayoutID: payoutID}, nil
}

func (s *stubPayoutService) RejectPayout(payoutID, adminID uuid.UUID, reason string) (*ledger.RejectionResult, error) {
	if s.rejectErr != nil {
		return nil, s.rejectErr
	}
	return &ledger.RejectionResult{PayoutID: payoutID, Reason: reason}, nil
}

func newPayoutTestApp(service PayoutService) *fiber.App {
	Payouts = service

	app := fiber.New()
	// Stand-in for the JWT middleware: the handlers only need the claims.
	app.Use(func(c *fiber.Ctx) error {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id": uuid.New().String(),
			"role":    "admin",
		})
		c.Locals("user", token)
		return c.Next()
	})
	app.Put("/admin/payouts/:payoutId/approve", ApprovePayout)
	return app
}

func TestCheckPayoutHeadroom(t *testing.T) {
	active := models.Partner{Status: "active", AvailableBalance: 500.00}

	tests := []struct {
		name     string
		partner  models.Partner
		reserved float64
		amount   float64
		wantErr  string
	}{
		{name: "within balance", partner: active, reserved: 0, amount: 500.00},
		{name: "pending requests reserve balance", partner: active, reserved: 400.00, amount: 200.00, wantErr: "insufficient balance"},
		{name: "exactly the remaining headroom", partner: active, reserved: 300.00, amount: 200.00},
		{name: "suspended partner", partner: models.Partner{Status: "suspended", AvailableBalance: 500.00}, reserved: 0, amount: 100.00, wantErr: "suspended partners"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := checkPayoutHeadroom(tc.partner, tc.reserved, tc.amount)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestApprovePayoutHandler_InvalidID(t *testing.T) {
	app := newPayoutTestApp(&stubPayoutService{})

	req := httptest.NewRequest("PUT", "/admin/payouts/not-a-uuid/approve", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestApprovePayoutHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        *ledger.Error
		wantStatus int
	}{
		{"not found", &ledger.Error{Kind: ledger.KindNotFound, Message: "payout not found"}, fiber.StatusNotFound},
		{"invalid state", &ledger.Error{Kind: ledger.KindInvalidState, Message: "payout is approved"}, fiber.StatusConflict},
		{"insufficient funds", &ledger.Error{Kind: ledger.KindInsufficientFunds, Message: "available 10.00, required 20.00"}, fiber.StatusBadRequest},
		{"inconsistency", &ledger.Error{Kind: ledger.KindInconsistency, Message: "balance write failed"}, fiber.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := newPayoutTestApp(&stubPayoutService{approveErr: tc.err})

			req := httptest.NewRequest("PUT", "/admin/payouts/"+uuid.New().String()+"/approve", nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.wantStatus, resp.StatusCode)

			raw, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			var body struct {
				Success bool   `json:"success"`
				Error   string `json:"error"`
			}
			require.NoError(t, json.Unmarshal(raw, &body))
			assert.False(t, body.Success)
			assert.Equal(t, tc.err.Message, body.Error)
		})
	}
}
