package supplier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectChanges(t *testing.T) {
	m := NewPriceMonitor()

	m.Record("prod-1", "ali-001", 10.00)
	m.Record("prod-1", "ali-001", 12.00) // +20%
	m.Record("prod-2", "cj-001", 20.00)
	m.Record("prod-2", "cj-001", 20.50) // +2.5%, below threshold
	m.Record("prod-3", "ali-001", 30.00)
	m.Record("prod-3", "ali-001", 24.00) // -20%

	alerts := m.DetectChanges(DefaultAlertThreshold)
	require.Len(t, alerts, 2)

	byProduct := map[string]PriceAlert{}
	for _, a := range alerts {
		byProduct[a.ProductID] = a
	}

	up := byProduct["prod-1"]
	assert.Equal(t, "price_increase", up.AlertType)
	assert.InDelta(t, 20.0, up.ChangePercent, 0.01)

	down := byProduct["prod-3"]
	assert.Equal(t, "price_drop", down.AlertType)
	assert.InDelta(t, -20.0, down.ChangePercent, 0.01)
}

func TestDetectChanges_SingleObservation(t *testing.T) {
	m := NewPriceMonitor()
	m.Record("prod-1", "ali-001", 10.00)
	assert.Empty(t, m.DetectChanges(0))
}

func TestDetectChanges_ZeroPreviousPrice(t *testing.T) {
	m := NewPriceMonitor()
	m.Record("prod-1", "ali-001", 0)
	m.Record("prod-1", "ali-001", 10.00)
	assert.Empty(t, m.DetectChanges(0))
}

func TestTrend(t *testing.T) {
	m := NewPriceMonitor()

	assert.Equal(t, "insufficient_data", m.Trend("p", "s").Trend)

	for _, p := range []float64{10, 10.2, 11, 12, 13} {
		m.Record("p", "s", p)
	}
	up := m.Trend("p", "s")
	assert.Equal(t, "increasing", up.Trend)
	assert.Equal(t, 50.0, up.Confidence)

	m2 := NewPriceMonitor()
	for _, p := range []float64{20, 20.1, 19.9, 20} {
		m2.Record("p", "s", p)
	}
	assert.Equal(t, "stable", m2.Trend("p", "s").Trend)
}
