package orders

import (
	"sync"
	"time"
)

// Profile is a customer lifetime value and behavior profile.
type Profile struct {
	Email          string     `json:"email" yaml:"email"`
	FirstOrderDate *time.Time `json:"first_order_date,omitempty" yaml:"first_order_date,omitempty"`
	TotalOrders    int        `json:"total_orders" yaml:"total_orders"`
	TotalSpent     float64    `json:"total_spent" yaml:"total_spent"`
	AvgOrderValue  float64    `json:"avg_order_value" yaml:"avg_order_value"`
	ReturnRate     float64    `json:"return_rate" yaml:"return_rate"`
	DisputeCount   int        `json:"dispute_count" yaml:"dispute_count"`
	LoyaltyScore   float64    `json:"loyalty_score" yaml:"loyalty_score"`

	PredictedCLV     float64 `json:"predicted_clv" yaml:"predicted_clv"`
	ChurnProbability float64 `json:"churn_probability" yaml:"churn_probability"`
}

// Tier buckets a customer by spend and return behavior.
func (p *Profile) Tier() string {
	switch {
	case p.TotalSpent >= 500 && p.ReturnRate < 0.1:
		return "VIP"
	case p.TotalSpent >= 200:
		return "Gold"
	case p.TotalSpent >= 100:
		return "Silver"
	}
	return "Bronze"
}

// CLV predicts lifetime value over the given horizon in months.
func (p *Profile) CLV(months int, now time.Time) float64 {
	if p.TotalOrders == 0 {
		return p.AvgOrderValue * 2
	}
	frequency := float64(p.TotalOrders) / float64(p.monthsSinceFirst(now))
	retention := 1 - p.ChurnProbability
	p.PredictedCLV = p.AvgOrderValue * frequency * retention * float64(months)
	return p.PredictedCLV
}

func (p *Profile) monthsSinceFirst(now time.Time) int {
	if p.FirstOrderDate == nil {
		return 1
	}
	months := int(now.Sub(*p.FirstOrderDate).Hours() / 24 / 30)
	if months < 1 {
		return 1
	}
	return months
}

// Profiles is an in-memory customer profile store keyed by email.
type Profiles struct {
	mu      sync.Mutex
	byEmail map[string]*Profile
	now     func() time.Time
}

func NewProfiles() *Profiles {
	return &Profiles{byEmail: make(map[string]*Profile), now: time.Now}
}

// Get returns the existing profile for the email, creating an empty one
// if none exists yet.
func (ps *Profiles) Get(email string) *Profile {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if p, ok := ps.byEmail[email]; ok {
		return p
	}
	p := &Profile{Email: email, LoyaltyScore: 50, ChurnProbability: 0.5}
	ps.byEmail[email] = p
	return p
}

// Rebuild recomputes the email's profile from its order history.
func (ps *Profiles) Rebuild(email string, history []*Order) *Profile {
	p := ps.Get(email)
	if len(history) == 0 {
		return p
	}

	ps.mu.Lock()
	defer ps.mu.Unlock()

	first := history[0].CreatedAt
	last := history[0].CreatedAt
	var spent float64
	var returns, disputes int
	for _, o := range history {
		if o.CreatedAt.Before(first) {
			first = o.CreatedAt
		}
		if o.CreatedAt.After(last) {
			last = o.CreatedAt
		}
		spent += o.Total
		switch o.Status {
		case StatusRefunded, StatusCancelled:
			returns++
		case StatusDisputed, StatusChargeback:
			disputes++
		}
	}

	p.FirstOrderDate = &first
	p.TotalOrders = len(history)
	p.TotalSpent = spent
	p.AvgOrderValue = spent / float64(len(history))
	p.ReturnRate = float64(returns) / float64(len(history))
	p.DisputeCount = disputes
	p.LoyaltyScore = loyaltyScore(p)

	now := ps.now()
	daysSinceLast := now.Sub(last).Hours() / 24
	p.ChurnProbability = minf(0.95, daysSinceLast/180)
	p.CLV(12, now)
	return p
}

func loyaltyScore(p *Profile) float64 {
	score := 50.0
	score += minf(20, float64(p.TotalOrders)*4)
	score += minf(15, p.TotalSpent/50)
	score += (1 - p.ReturnRate) * 10
	if p.DisputeCount == 0 {
		score += 5
	} else {
		score -= float64(p.DisputeCount) * 10
	}
	return maxf(0, minf(100, score))
}

// ChargebackRisk predicts the probability the order ends in a chargeback.
func ChargebackRisk(o *Order, p *Profile, fraudScore float64) float64 {
	risk := 0.02
	if p.DisputeCount > 0 {
		risk += 0.15 * float64(p.DisputeCount)
	}
	if p.ReturnRate > 0.3 {
		risk += 0.10
	}
	risk += (fraudScore / 100) * 0.30
	if p.TotalOrders <= 1 && o.Total > 100 {
		risk += 0.10
	}
	return minf(0.95, risk)
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
