package fraud

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropsim/dropctl/pkg/scoring"
)

func cleanOrder(id string) OrderInfo {
	return OrderInfo{
		OrderID:      id,
		CustomerName: "Sarah Johnson",
		Email:        "sarah.johnson@gmail.com",
		Address: Address{
			Line1:   "123 Maple Street",
			City:    "Austin",
			State:   "TX",
			Zip:     "78701",
			Country: "US",
		},
		Total: 49.99,
		Items: []Item{{Name: "LED Strip Lights", Quantity: 1}},
		IP:    "73.45.12.9",
	}
}

func TestAssessCleanOrder(t *testing.T) {
	e := NewEngine()
	a := e.Assess(cleanOrder("ORD-0001"))
	require.NotNil(t, a)

	assert.Equal(t, RiskLow, a.RiskLevel)
	assert.True(t, a.AutoApprove)
	assert.False(t, a.RequiresReview)
	assert.Len(t, a.Signals, 7)
	assert.LessOrEqual(t, a.Total, AutoApproveThreshold)
}

func TestAssessWithOverriddenLevels(t *testing.T) {
	o := cleanOrder("ORD-0050")
	o.Total = 250 // trips only the amount heuristic

	def := NewEngine().Assess(o)
	require.Equal(t, RiskLow, def.RiskLevel)

	strict := scoring.Must(Weights, scoring.GradeThresholds{
		{Min: 1, Label: string(RiskCritical)},
		{Min: 0, Label: string(RiskLow)},
	})
	got := NewEngineWithScorer(strict).Assess(o)
	assert.Equal(t, RiskCritical, got.RiskLevel)
}

func TestAssessDisposableEmail(t *testing.T) {
	e := NewEngine()
	o := cleanOrder("ORD-0002")
	o.Email = "xk93021@tempmail.com"
	o.CustomerName = ""

	a := e.Assess(o)
	var email Signal
	for _, s := range a.Signals {
		if s.Name == "email_risk" {
			email = s
		}
	}
	assert.GreaterOrEqual(t, email.Score, 80.0)
	assert.Contains(t, email.Details, "disposable")
}

func TestAssessMissingEmail(t *testing.T) {
	e := NewEngine()
	o := cleanOrder("ORD-0003")
	o.Email = ""

	a := e.Assess(o)
	for _, s := range a.Signals {
		if s.Name == "email_risk" {
			assert.Equal(t, 100.0, s.Score)
		}
	}
}

func TestAddressRisk(t *testing.T) {
	e := NewEngine()

	tests := []struct {
		name string
		addr Address
		min  float64
	}{
		{"freight forwarder", Address{Line1: "4283 Shipito Way", City: "Portland", State: "OR", Zip: "97201", Country: "US"}, 50},
		{"po box", Address{Line1: "PO Box 441", City: "Reno", State: "NV", Zip: "89501", Country: "US"}, 20},
		{"high risk country", Address{Line1: "12 Broad St", City: "Lagos", State: "LA", Zip: "100001", Country: "NG"}, 40},
		{"missing fields", Address{Line1: "1 Main St", Country: "US"}, 45},
		{"clean", Address{Line1: "55 Oak Ave", City: "Denver", State: "CO", Zip: "80202", Country: "US"}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := e.addressRisk(tc.addr)
			assert.GreaterOrEqual(t, s.Score, tc.min)
		})
	}
}

func TestAmountRisk(t *testing.T) {
	e := NewEngine()

	assert.Equal(t, 0.0, e.amountRisk(49.99).Score)
	assert.Equal(t, 25.0, e.amountRisk(1.50).Score)
	assert.Equal(t, 30.0, e.amountRisk(250).Score)
	assert.Equal(t, 70.0, e.amountRisk(750).Score)
}

func TestVelocityTrips(t *testing.T) {
	e := NewEngine()

	// same IP over the hourly limit
	var a *Assessment
	for i := 0; i < MaxOrdersPerHourPerIP; i++ {
		o := cleanOrder(fmt.Sprintf("ORD-1%03d", i))
		o.IP = "203.0.113.7"
		a = e.Assess(o)
	}
	var vel Signal
	for _, s := range a.Signals {
		if s.Name == "velocity_risk" {
			vel = s
		}
	}
	assert.GreaterOrEqual(t, vel.Score, 70.0)
	assert.True(t, a.RequiresReview || a.Total >= MediumRiskThreshold || vel.Weighted() > 0)
}

func TestVelocityWindowExpiry(t *testing.T) {
	v := NewVelocityTracker()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	v.now = func() time.Time { return base }

	assert.Equal(t, 1, v.RecordIP("198.51.100.4"))
	assert.Equal(t, 2, v.RecordIP("198.51.100.4"))

	// past the hourly window the old entries fall off
	v.now = func() time.Time { return base.Add(2 * time.Hour) }
	assert.Equal(t, 1, v.RecordIP("198.51.100.4"))

	assert.Equal(t, 1, v.RecordEmail("a@b.com"))
	v.now = func() time.Time { return base.Add(26 * time.Hour) }
	assert.Equal(t, 1, v.RecordEmail("a@b.com"))
}

func TestBehavioralRisk(t *testing.T) {
	e := NewEngine()

	items := []Item{
		{Name: "Posture Corrector", Quantity: 5},
	}
	s := e.behavioralRisk(items)
	assert.Equal(t, 25.0, s.Score)

	big := make([]Item, 6)
	for i := range big {
		big[i] = Item{Name: fmt.Sprintf("item-%d", i), Quantity: 1}
	}
	assert.Equal(t, 20.0, e.behavioralRisk(big).Score)
}

func TestIdentityRisk(t *testing.T) {
	e := NewEngine()

	match := e.identityRisk("Sarah Johnson", "sarah.johnson@gmail.com")
	assert.Equal(t, 0.0, match.Score)

	mismatch := e.identityRisk("Sarah Johnson", "qz88r@gmail.com")
	assert.Equal(t, 15.0, mismatch.Score)

	empty := e.identityRisk("", "whatever@gmail.com")
	assert.Equal(t, 0.0, empty.Score)
}

func TestDeviceRisk(t *testing.T) {
	e := NewEngine()
	assert.Equal(t, 10.0, e.deviceRisk("192.168.1.20").Score)
	assert.Equal(t, 0.0, e.deviceRisk("8.8.8.8").Score)
}

func TestHighRiskOrderFlagged(t *testing.T) {
	e := NewEngine()
	o := OrderInfo{
		OrderID:      "ORD-9999",
		CustomerName: "John Smith",
		Email:        "xk93021@tempmail.com",
		Address: Address{
			Line1:   "100 MyUS Dr",
			Country: "NG",
		},
		Total: 750,
		Items: []Item{{Name: "Projector Lamp", Quantity: 5}},
		IP:    "192.168.0.4",
	}

	a := e.Assess(o)
	assert.True(t, a.RequiresReview)
	assert.False(t, a.AutoApprove)
	assert.NotEqual(t, RiskLow, a.RiskLevel)
	assert.GreaterOrEqual(t, a.Total, MediumRiskThreshold)
}

func TestSignalScoreCapped(t *testing.T) {
	e := NewEngine()
	// four missing fields plus forwarder plus country would exceed 100 uncapped
	s := e.addressRisk(Address{Line1: "stackry forward", Country: "GH"})
	assert.LessOrEqual(t, s.Score, 100.0)
}
