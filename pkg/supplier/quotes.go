package supplier

import "math/rand"

// tier cost multipliers relative to retail; premium sourcing costs more but
// ships from closer warehouses.
var tierCostRate = map[Tier]float64{
	TierBudget:   0.25,
	TierStandard: 0.32,
	TierPremium:  0.40,
}

var tierShippingCost = map[Tier]float64{
	TierBudget:   1.50,
	TierStandard: 3.00,
	TierPremium:  5.00,
}

// SimulateQuotes produces a cost quote per roster supplier for a product at
// the given retail price. Same seed, same quotes.
func SimulateQuotes(seed int64, retail float64) []SourceQuote {
	rng := rand.New(rand.NewSource(seed))

	quotes := make([]SourceQuote, 0, len(seedSuppliers))
	for _, sd := range seedSuppliers {
		rate := tierCostRate[sd.Tier]
		cost := retail * rate * (0.9 + rng.Float64()*0.2)
		quotes = append(quotes, SourceQuote{
			SupplierID:   sd.ID,
			Cost:         round2(cost),
			ShippingCost: tierShippingCost[sd.Tier],
		})
	}
	return quotes
}

// MonitorSimulatedPrices replays days of simulated quote drift for a product
// and returns the alerts the monitor raises.
func MonitorSimulatedPrices(seed int64, productID string, retail float64, days int) []PriceAlert {
	if days < 2 {
		days = 2
	}

	rng := rand.New(rand.NewSource(seed))
	quotes := SimulateQuotes(seed, retail)

	m := NewPriceMonitor()
	for day := 0; day < days; day++ {
		for _, q := range quotes {
			drift := 1 + (rng.Float64()*0.3 - 0.15)
			m.Record(productID, q.SupplierID, round2(q.Cost*drift))
		}
	}
	return m.DetectChanges(DefaultAlertThreshold)
}
