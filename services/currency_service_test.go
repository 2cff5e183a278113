package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedRates(t *testing.T, rates map[string]float64) {
	t.Helper()
	cacheMutex.Lock()
	ratesCache = rates
	lastFetchTime = time.Now()
	cacheMutex.Unlock()
	t.Cleanup(func() {
		cacheMutex.Lock()
		ratesCache = nil
		lastFetchTime = time.Time{}
		cacheMutex.Unlock()
	})
}

func TestConvertFromUSD(t *testing.T) {
	seedRates(t, map[string]float64{"KES": 129.50, "EUR": 0.92})

	got, err := ConvertFromUSD(100, "KES")
	require.NoError(t, err)
	assert.InDelta(t, 12950.00, got, 0.001)

	got, err = ConvertFromUSD(250, "EUR")
	require.NoError(t, err)
	assert.InDelta(t, 230.00, got, 0.001)
}

func TestConvertFromUSD_UnknownCurrency(t *testing.T) {
	seedRates(t, map[string]float64{"KES": 129.50})

	_, err := ConvertFromUSD(100, "XTS")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "XTS")
}
