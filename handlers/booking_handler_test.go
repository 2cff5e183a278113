package handlers

import (
	"testing"
	"time"

	"github.com/njoroge256/aerodesk/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyPromo(t *testing.T) {
	now := time.Now()
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	tests := []struct {
		name    string
		promo   models.PromoCode
		amount  float64
		want    float64
		wantErr string
	}{
		{
			name:   "percent discount",
			promo:  models.PromoCode{DiscountType: "percent", DiscountValue: 10, ValidFrom: yesterday},
			amount: 200.00,
			want:   180.00,
		},
		{
			name:   "fixed discount",
			promo:  models.PromoCode{DiscountType: "fixed", DiscountValue: 50, ValidFrom: yesterday},
			amount: 200.00,
			want:   150.00,
		},
		{
			name:   "fixed discount floors at zero",
			promo:  models.PromoCode{DiscountType: "fixed", DiscountValue: 500, ValidFrom: yesterday},
			amount: 200.00,
			want:   0,
		},
		{
			name:    "not yet active",
			promo:   models.PromoCode{DiscountType: "percent", DiscountValue: 10, ValidFrom: tomorrow},
			amount:  200.00,
			wantErr: "not yet active",
		},
		{
			name:    "expired",
			promo:   models.PromoCode{DiscountType: "percent", DiscountValue: 10, ValidFrom: yesterday.Add(-24 * time.Hour), ValidUntil: &yesterday},
			amount:  200.00,
			wantErr: "expired",
		},
		{
			name:    "usage limit reached",
			promo:   models.PromoCode{DiscountType: "percent", DiscountValue: 10, ValidFrom: yesterday, MaxUses: 5, UsedCount: 5},
			amount:  200.00,
			wantErr: "usage limit",
		},
		{
			name:    "unknown discount type",
			promo:   models.PromoCode{DiscountType: "bogus", DiscountValue: 10, ValidFrom: yesterday},
			amount:  200.00,
			wantErr: "unknown discount type",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := applyPromo(tc.promo, tc.amount, now)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPartnerEarnings(t *testing.T) {
	tests := []struct {
		name           string
		amount         float64
		commissionRate float64
		want           float64
	}{
		{name: "default ten percent commission", amount: 200.00, commissionRate: 10, want: 180.00},
		{name: "zero commission pays full fare", amount: 200.00, commissionRate: 0, want: 200.00},
		{name: "full commission pays nothing", amount: 200.00, commissionRate: 100, want: 0},
		{name: "fractional rate", amount: 150.00, commissionRate: 12.5, want: 131.25},
		{name: "never negative", amount: 200.00, commissionRate: 120, want: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, partnerEarnings(tc.amount, tc.commissionRate), 0.001)
		})
	}
}
