package supplier

import (
	"sync"
	"time"
)

// DefaultAlertThreshold is the relative price move that raises an alert.
const DefaultAlertThreshold = 0.10

// PriceAlert reports a significant supplier price move.
type PriceAlert struct {
	ProductID     string    `json:"product_id" yaml:"product_id"`
	SupplierID    string    `json:"supplier_id" yaml:"supplier_id"`
	PreviousPrice float64   `json:"previous_price" yaml:"previous_price"`
	CurrentPrice  float64   `json:"current_price" yaml:"current_price"`
	ChangePercent float64   `json:"change_percent" yaml:"change_percent"`
	AlertType     string    `json:"alert_type" yaml:"alert_type"` // price_increase or price_drop
	ObservedAt    time.Time `json:"observed_at" yaml:"observed_at"`
}

type priceObservation struct {
	price float64
	at    time.Time
}

type priceKey struct {
	productID  string
	supplierID string
}

// PriceMonitor records supplier price observations and flags significant
// changes. Safe for concurrent use.
type PriceMonitor struct {
	mu      sync.Mutex
	history map[priceKey][]priceObservation
	now     func() time.Time
}

// NewPriceMonitor returns an empty monitor.
func NewPriceMonitor() *PriceMonitor {
	return &PriceMonitor{
		history: make(map[priceKey][]priceObservation),
		now:     time.Now,
	}
}

// Record appends a price observation for a product at a supplier.
func (m *PriceMonitor) Record(productID, supplierID string, price float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := priceKey{productID, supplierID}
	m.history[k] = append(m.history[k], priceObservation{price: price, at: m.now()})
}

// DetectChanges compares the two most recent observations of every tracked
// pair and returns alerts where the relative move meets the threshold.
func (m *PriceMonitor) DetectChanges(threshold float64) []PriceAlert {
	if threshold <= 0 {
		threshold = DefaultAlertThreshold
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var alerts []PriceAlert
	for k, obs := range m.history {
		if len(obs) < 2 {
			continue
		}
		prev := obs[len(obs)-2]
		curr := obs[len(obs)-1]
		if prev.price == 0 {
			continue
		}

		change := (curr.price - prev.price) / prev.price
		if change < threshold && change > -threshold {
			continue
		}

		alertType := "price_drop"
		if change > 0 {
			alertType = "price_increase"
		}
		alerts = append(alerts, PriceAlert{
			ProductID:     k.productID,
			SupplierID:    k.supplierID,
			PreviousPrice: prev.price,
			CurrentPrice:  curr.price,
			ChangePercent: round1(change * 100),
			AlertType:     alertType,
			ObservedAt:    curr.at,
		})
	}
	return alerts
}

// PriceTrend is a coarse direction estimate over recent observations.
type PriceTrend struct {
	Trend      string  `json:"trend" yaml:"trend"` // increasing, decreasing, stable, insufficient_data
	Confidence float64 `json:"confidence" yaml:"confidence"`
	AvgPrice   float64 `json:"avg_price" yaml:"avg_price"`
}

// Trend compares the early and late halves of the last seven observations.
func (m *PriceMonitor) Trend(productID, supplierID string) PriceTrend {
	m.mu.Lock()
	defer m.mu.Unlock()

	obs := m.history[priceKey{productID, supplierID}]
	if len(obs) < 3 {
		return PriceTrend{Trend: "insufficient_data"}
	}

	recent := obs
	if len(recent) > 7 {
		recent = recent[len(recent)-7:]
	}

	mid := len(recent) / 2
	early, late, sum := 0.0, 0.0, 0.0
	for i, o := range recent {
		sum += o.price
		if i < mid {
			early += o.price
		} else {
			late += o.price
		}
	}
	early /= float64(mid)
	late /= float64(len(recent) - mid)

	trend := "stable"
	switch {
	case late > early*1.05:
		trend = "increasing"
	case late < early*0.95:
		trend = "decreasing"
	}

	return PriceTrend{
		Trend:      trend,
		Confidence: minf(90, float64(len(obs))*10),
		AvgPrice:   round2(sum / float64(len(recent))),
	}
}
