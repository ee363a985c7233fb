package supplier

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRate(t *testing.T) {
	r := NewRater(42)

	suppliers := r.Rate()
	require.Len(t, suppliers, len(seedSuppliers))

	for i, s := range suppliers {
		require.NotNil(t, s.Score)
		assert.NotEmpty(t, s.ID)
		assert.NotEmpty(t, s.RiskLevel)
		assert.Len(t, s.Score.Factors, len(Weights))
		if i > 0 {
			assert.GreaterOrEqual(t, suppliers[i-1].Score.Total, s.Score.Total)
		}
	}
}

func TestRate_Deterministic(t *testing.T) {
	a := NewRater(7).Rate()
	b := NewRater(7).Rate()
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].Score.Total, b[i].Score.Total)
		assert.Equal(t, a[i].ID, b[i].ID)
	}
}

func TestShippingScore(t *testing.T) {
	// Premium 3-7 day window scores near the top.
	assert.Equal(t, 100.0, shippingScore(3, 7))
	// Slow boat caps at the floor.
	assert.Equal(t, 30.0, shippingScore(25, 35))
	// Midrange lands between.
	mid := shippingScore(8, 15)
	assert.Greater(t, mid, 30.0)
	assert.Less(t, mid, 100.0)
}

func TestRiskFor(t *testing.T) {
	assert.Equal(t, RiskLow, riskFor(90))
	assert.Equal(t, RiskMedium, riskFor(75))
	assert.Equal(t, RiskHigh, riskFor(60))
	assert.Equal(t, RiskCritical, riskFor(40))
}

func TestAvgShippingDays(t *testing.T) {
	s := &Supplier{ShippingMinDays: 5, ShippingMaxDays: 12}
	assert.Equal(t, 8.5, s.AvgShippingDays())
}

func TestAnalyzeProfit(t *testing.T) {
	a := AnalyzeProfit("Galaxy Star Projector", 39.99, 12, 3.50, "stripe")

	assert.Equal(t, 39.99, a.RetailPrice)
	assert.InDelta(t, 24.49, a.GrossProfit, 0.01)
	assert.Greater(t, a.GrossProfit, a.NetProfit)
	assert.NotEmpty(t, a.Recommendation)
	assert.InDelta(t, a.Margin, a.NetProfit/a.RetailPrice*100, 0.1)
}

func TestAnalyzeProfit_ZeroRetail(t *testing.T) {
	a := AnalyzeProfit("freebie", 0, 5, 1, "paypal")
	assert.Equal(t, 0.0, a.Margin)
	assert.Equal(t, "avoid - insufficient margin", a.Recommendation)
}

func TestCalculateFees_UnknownGatewayFallsBack(t *testing.T) {
	known := CalculateFees(100, "paypal")
	unknown := CalculateFees(100, "bitcoin")
	assert.Equal(t, known, unknown)
}

func TestOptimalPrice(t *testing.T) {
	price := OptimalPrice(10, 3.50, 0.45)
	// Selling at the optimal price should land close to the target margin.
	a := AnalyzeProfit("test", price, 10, 3.50, "paypal")
	assert.InDelta(t, 45.0, a.Margin, 3.0)
}

func TestOptimalPrice_MarginClamped(t *testing.T) {
	ceiling := OptimalPrice(10, 3.50, 0.90)
	assert.False(t, math.IsInf(ceiling, 0))
	assert.Greater(t, ceiling, 0.0)

	// Targets at or past the fee ceiling collapse to the ceiling price.
	assert.Equal(t, ceiling, OptimalPrice(10, 3.50, 0.95))
	assert.Equal(t, ceiling, OptimalPrice(10, 3.50, 2))

	// Negative targets are treated as zero.
	assert.Equal(t, OptimalPrice(10, 3.50, 0), OptimalPrice(10, 3.50, -1))
}

func TestCompareQuotes_SortedByMargin(t *testing.T) {
	quotes := []SourceQuote{
		{SupplierID: "ali-001", Cost: 12, ShippingCost: 4},
		{SupplierID: "spocket-001", Cost: 18, ShippingCost: 2},
		{SupplierID: "cj-001", Cost: 14, ShippingCost: 3},
	}

	analyses := CompareQuotes("Cloud Light", 44.99, quotes, "stripe")
	require.Len(t, analyses, 3)
	for i := 1; i < len(analyses); i++ {
		assert.GreaterOrEqual(t, analyses[i-1].Margin, analyses[i].Margin)
	}
	assert.Contains(t, analyses[0].ProductName, "ali-001")
}
