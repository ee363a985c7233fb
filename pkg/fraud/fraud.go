// Package fraud assesses incoming orders with weighted heuristic risk
// signals: email, address, amount, velocity, behavior, device, and identity
// consistency. The composite risk and level come from the shared scorer.
package fraud

import (
	"regexp"
	"strings"

	"github.com/dropsim/dropctl/pkg/scoring"
)

// RiskLevel buckets the composite risk score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

const (
	HighRiskThreshold    = 70.0
	MediumRiskThreshold  = 40.0
	AutoApproveThreshold = 20.0

	MaxOrdersPerHourPerIP   = 3
	MaxOrdersPerDayPerEmail = 5
)

// Weights is the risk signal weight table.
var Weights = scoring.WeightTable{
	{Name: "email_risk", Weight: 0.20},
	{Name: "velocity_risk", Weight: 0.20},
	{Name: "address_risk", Weight: 0.15},
	{Name: "amount_risk", Weight: 0.15},
	{Name: "behavioral_risk", Weight: 0.15},
	{Name: "identity_risk", Weight: 0.10},
	{Name: "device_risk", Weight: 0.05},
}

// Levels maps composite risk totals to risk levels.
var Levels = scoring.GradeThresholds{
	{Min: 85, Label: string(RiskCritical)},
	{Min: HighRiskThreshold, Label: string(RiskHigh)},
	{Min: MediumRiskThreshold, Label: string(RiskMedium)},
	{Min: 0, Label: string(RiskLow)},
}

// Signal is one scored risk heuristic with its explanation.
type Signal struct {
	Name    string  `json:"name" yaml:"name"`
	Score   float64 `json:"score" yaml:"score"`
	Weight  float64 `json:"weight" yaml:"weight"`
	Details string  `json:"details" yaml:"details"`
}

// Weighted returns the signal's contribution to the composite.
func (s Signal) Weighted() float64 {
	return s.Score * s.Weight
}

// Address is the shipping destination under assessment.
type Address struct {
	Line1   string `json:"line1" yaml:"line1"`
	City    string `json:"city" yaml:"city"`
	State   string `json:"state" yaml:"state"`
	Zip     string `json:"zip" yaml:"zip"`
	Country string `json:"country" yaml:"country"`
}

// Item is one order line under assessment.
type Item struct {
	Name     string `json:"name" yaml:"name"`
	Quantity int    `json:"quantity" yaml:"quantity"`
}

// OrderInfo is the slice of an order the engine inspects.
type OrderInfo struct {
	OrderID      string  `json:"order_id" yaml:"order_id"`
	CustomerName string  `json:"customer_name" yaml:"customer_name"`
	Email        string  `json:"email" yaml:"email"`
	Address      Address `json:"address" yaml:"address"`
	Total        float64 `json:"total" yaml:"total"`
	Items        []Item  `json:"items" yaml:"items"`
	IP           string  `json:"ip,omitempty" yaml:"ip,omitempty"`
}

// Assessment is the full fraud verdict for one order.
type Assessment struct {
	OrderID        string              `json:"order_id" yaml:"order_id"`
	Total          float64             `json:"total" yaml:"total"`
	Confidence     float64             `json:"confidence" yaml:"confidence"`
	RiskLevel      RiskLevel           `json:"risk_level" yaml:"risk_level"`
	Signals        []Signal            `json:"signals" yaml:"signals"`
	Recommendation string              `json:"recommendation" yaml:"recommendation"`
	AutoApprove    bool                `json:"auto_approve" yaml:"auto_approve"`
	RequiresReview bool                `json:"requires_review" yaml:"requires_review"`
	Result         scoring.ScoreResult `json:"result" yaml:"result"`
}

var disposableDomains = map[string]bool{
	"tempmail.com":      true,
	"throwaway.email":   true,
	"guerrillamail.com": true,
	"mailinator.com":    true,
	"10minutemail.com":  true,
	"fakeinbox.com":     true,
}

var highRiskCountries = map[string]bool{"NG": true, "GH": true, "PH": true}

var freightKeywords = []string{"shipito", "myus", "stackry", "forward"}

var autoGeneratedLocal = regexp.MustCompile(`^[a-z]{1,3}\d{5,}`)

// Engine runs the signal heuristics. Safe for concurrent use; the velocity
// state is shared across assessments.
type Engine struct {
	velocity *VelocityTracker
	scorer   *scoring.Scorer
}

// NewEngine returns an Engine with fresh velocity state.
func NewEngine() *Engine {
	return &Engine{
		velocity: NewVelocityTracker(),
		scorer:   scoring.Must(Weights, Levels),
	}
}

// NewEngineWithScorer allows a config-overridden scorer.
func NewEngineWithScorer(s *scoring.Scorer) *Engine {
	e := NewEngine()
	e.scorer = s
	return e
}

// Assess runs every risk signal against the order and returns the verdict.
// Each call also records the order against the velocity windows.
func (e *Engine) Assess(o OrderInfo) *Assessment {
	signals := []Signal{
		e.emailRisk(o.Email),
		e.velocityRisk(o.Email, o.IP),
		e.addressRisk(o.Address),
		e.amountRisk(o.Total),
		e.behavioralRisk(o.Items),
		e.identityRisk(o.CustomerName, o.Email),
		e.deviceRisk(o.IP),
	}

	factors := make(scoring.FactorSet, len(signals))
	for _, s := range signals {
		factors[s.Name] = s.Score
	}
	result := e.scorer.Score(factors)

	a := &Assessment{
		OrderID:    o.OrderID,
		Total:      result.Total,
		Confidence: result.Confidence,
		RiskLevel:  RiskLevel(result.Grade),
		Signals:    signals,
		Result:     result,
	}

	switch {
	case a.Total >= HighRiskThreshold:
		a.RequiresReview = true
		a.Recommendation = "manual review required - high fraud risk detected"
	case a.Total >= MediumRiskThreshold:
		a.RequiresReview = true
		a.Recommendation = "additional verification recommended"
	default:
		a.AutoApprove = a.Total <= AutoApproveThreshold
		a.Recommendation = "low risk - safe to process"
	}
	return a
}

func (e *Engine) emailRisk(email string) Signal {
	score := 0.0
	var details []string

	if email == "" {
		return Signal{Name: "email_risk", Score: 100, Weight: 0.20, Details: "no email provided"}
	}

	local, domain := splitEmail(email)
	if disposableDomains[domain] {
		score += 80
		details = append(details, "disposable email domain: "+domain)
	}
	if autoGeneratedLocal.MatchString(strings.ToLower(local)) {
		score += 30
		details = append(details, "email appears auto-generated")
	}
	if len(local) > 6 && distinctRunes(local) < 4 {
		score += 20
		details = append(details, "low entropy email")
	}

	return signal("email_risk", score, 0.20, details, "email appears legitimate")
}

func (e *Engine) addressRisk(addr Address) Signal {
	score := 0.0
	var details []string

	line1 := strings.ToLower(addr.Line1)
	if strings.Contains(line1, "po box") || strings.Contains(line1, "p.o. box") {
		score += 20
		details = append(details, "po box address")
	}
	for _, kw := range freightKeywords {
		if strings.Contains(line1, kw) {
			score += 50
			details = append(details, "possible freight forwarder")
			break
		}
	}
	if highRiskCountries[strings.ToUpper(addr.Country)] {
		score += 40
		details = append(details, "high-risk country: "+strings.ToUpper(addr.Country))
	}

	missing := 0
	for _, field := range []string{addr.Line1, addr.City, addr.State, addr.Zip} {
		if field == "" {
			missing++
		}
	}
	if missing > 0 {
		score += float64(missing) * 15
		details = append(details, "missing address fields")
	}

	return signal("address_risk", score, 0.15, details, "address appears valid")
}

func (e *Engine) amountRisk(total float64) Signal {
	score := 0.0
	var details []string

	if total > 200 {
		score += 30
		details = append(details, "high order amount")
	}
	if total > 500 {
		score += 40
		details = append(details, "very high order - additional verification recommended")
	}
	if total < 5 {
		score += 25
		details = append(details, "unusually low amount - possible card test")
	}

	return signal("amount_risk", score, 0.15, details, "order amount normal")
}

func (e *Engine) velocityRisk(email, ip string) Signal {
	score := 0.0
	var details []string

	if email != "" {
		if e.velocity.RecordEmail(email) >= MaxOrdersPerDayPerEmail {
			score += 60
			details = append(details, "high email velocity")
		}
	}
	if ip != "" {
		if e.velocity.RecordIP(ip) >= MaxOrdersPerHourPerIP {
			score += 70
			details = append(details, "high ip velocity")
		}
	}

	return signal("velocity_risk", score, 0.20, details, "normal order velocity")
}

func (e *Engine) behavioralRisk(items []Item) Signal {
	score := 0.0
	var details []string

	if len(items) > 5 {
		score += 20
		details = append(details, "large basket")
	}
	for _, it := range items {
		if it.Quantity > 3 {
			score += 25
			details = append(details, "high quantity: "+it.Name)
		}
	}

	return signal("behavioral_risk", score, 0.15, details, "normal shopping behavior")
}

func (e *Engine) deviceRisk(ip string) Signal {
	score := 0.0
	var details []string

	if strings.HasPrefix(ip, "10.") || strings.HasPrefix(ip, "192.168.") {
		score += 10
		details = append(details, "private ip range detected")
	}

	return signal("device_risk", score, 0.05, details, "device fingerprint normal")
}

func (e *Engine) identityRisk(name, email string) Signal {
	score := 0.0
	var details []string

	name = strings.ToLower(strings.TrimSpace(name))
	local, _ := splitEmail(strings.ToLower(email))

	if name != "" {
		found := false
		for _, part := range strings.Fields(name) {
			if len(part) > 2 && strings.Contains(local, part) {
				found = true
				break
			}
		}
		if !found {
			score += 15
			details = append(details, "name doesn't match email pattern")
		}
	}

	return signal("identity_risk", score, 0.10, details, "identity consistent")
}

func signal(name string, score, weight float64, details []string, ok string) Signal {
	if score > 100 {
		score = 100
	}
	d := ok
	if len(details) > 0 {
		d = strings.Join(details, "; ")
	}
	return Signal{Name: name, Score: score, Weight: weight, Details: d}
}

func splitEmail(email string) (local, domain string) {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email, ""
	}
	return email[:at], strings.ToLower(email[at+1:])
}

func distinctRunes(s string) int {
	seen := make(map[rune]bool, len(s))
	for _, r := range s {
		seen[r] = true
	}
	return len(seen)
}
