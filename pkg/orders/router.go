package orders

import (
	"fmt"

	"github.com/dropsim/dropctl/pkg/scoring"
)

// RouteSupplier is a fulfillment source the router can pick from.
type RouteSupplier struct {
	ID              string
	Name            string
	AvgShippingDays int
	Reliability     float64
	CostMultiplier  float64
	Specialties     []string
	MinOrder        float64
}

var routeSuppliers = []RouteSupplier{
	{
		ID: "supplier_a", Name: "FastShip China",
		AvgShippingDays: 12, Reliability: 0.92, CostMultiplier: 0.35,
		Specialties: []string{"electronics", "gadgets"},
	},
	{
		ID: "supplier_b", Name: "QualityGoods Express",
		AvgShippingDays: 8, Reliability: 0.95, CostMultiplier: 0.40,
		Specialties: []string{"home", "wellness"}, MinOrder: 20,
	},
	{
		ID: "supplier_c", Name: "Budget Bulk",
		AvgShippingDays: 18, Reliability: 0.85, CostMultiplier: 0.28,
		Specialties: []string{"all"},
	},
}

// RouteWeights scores a route supplier candidate per order.
var RouteWeights = scoring.WeightTable{
	{Name: "reliability", Weight: 0.35},
	{Name: "cost_efficiency", Weight: 0.30},
	{Name: "speed", Weight: 0.20},
	{Name: "order_fit", Weight: 0.15},
}

// RouteGrades labels route candidates.
var RouteGrades = scoring.GradeThresholds{
	{Min: 80, Label: "excellent"},
	{Min: 60, Label: "good"},
	{Min: 40, Label: "fair"},
	{Min: 0, Label: "poor"},
}

// Route is a fulfillment routing decision.
type Route struct {
	OrderID         string   `json:"order_id" yaml:"order_id"`
	Supplier        string   `json:"supplier" yaml:"supplier"`
	SupplierName    string   `json:"supplier_name" yaml:"supplier_name"`
	Backup          string   `json:"backup" yaml:"backup"`
	Priority        Priority `json:"priority" yaml:"priority"`
	EstimatedCost   float64  `json:"estimated_cost" yaml:"estimated_cost"`
	EstimatedProfit float64  `json:"estimated_profit" yaml:"estimated_profit"`
	ProfitMargin    float64  `json:"profit_margin" yaml:"profit_margin"`
	ShippingMethod  string   `json:"shipping_method" yaml:"shipping_method"`
	EstDeliveryDays int      `json:"est_delivery_days" yaml:"est_delivery_days"`
	Confidence      float64  `json:"confidence" yaml:"confidence"`
	Reasoning       []string `json:"reasoning,omitempty" yaml:"reasoning,omitempty"`
}

// Router picks the best fulfillment supplier for each order.
type Router struct {
	suppliers []RouteSupplier
	scorer    *scoring.Scorer
}

func NewRouter() *Router {
	return &Router{
		suppliers: routeSuppliers,
		scorer:    scoring.Must(RouteWeights, RouteGrades),
	}
}

// Route decides the fulfillment path for the order given the customer's
// profile. Priority follows customer tier.
func (r *Router) Route(o *Order, p *Profile) *Route {
	priority := PriorityStandard
	switch {
	case p.Tier() == "VIP":
		priority = PriorityVIP
	case p.TotalSpent > 300:
		priority = PriorityExpress
	}

	type candidate struct {
		supplier RouteSupplier
		total    float64
	}
	var best, backup candidate
	for _, s := range r.suppliers {
		res := r.scorer.Score(r.factors(s, o.Total, priority))
		c := candidate{supplier: s, total: res.Total}
		if c.total > best.total {
			backup = best
			best = c
		} else if c.total > backup.total {
			backup = c
		}
	}
	if backup.supplier.ID == "" {
		backup = best
	}

	cogs := o.Total * best.supplier.CostMultiplier
	shippingCost := 2.50
	method := "Standard ePacket"
	days := best.supplier.AvgShippingDays
	if priority != PriorityStandard {
		shippingCost = 5.00
		method = "Express ePacket"
		days -= 3
	}
	totalCost := cogs + shippingCost
	profit := o.Total - totalCost
	margin := 0.0
	if o.Total > 0 {
		margin = profit / o.Total
	}

	reasoning := []string{
		fmt.Sprintf("selected %s (reliability: %.0f%%)", best.supplier.Name, best.supplier.Reliability*100),
		fmt.Sprintf("estimated cogs: $%.2f", cogs),
		fmt.Sprintf("projected margin: %.1f%%", margin*100),
		fmt.Sprintf("priority level: %s", priority),
	}
	if margin < MinAcceptableMargin {
		reasoning = append(reasoning, fmt.Sprintf("margin below target (%.0f%%)", TargetMargin*100))
	}

	return &Route{
		OrderID:         o.ID,
		Supplier:        best.supplier.ID,
		SupplierName:    best.supplier.Name,
		Backup:          backup.supplier.ID,
		Priority:        priority,
		EstimatedCost:   totalCost,
		EstimatedProfit: profit,
		ProfitMargin:    margin,
		ShippingMethod:  method,
		EstDeliveryDays: days,
		Confidence:      best.total / 100,
		Reasoning:       reasoning,
	}
}

func (r *Router) factors(s RouteSupplier, total float64, priority Priority) scoring.FactorSet {
	speed := (1 - float64(s.AvgShippingDays)/25) * 100
	if speed < 0 {
		speed = 0
	}
	if priority == PriorityStandard {
		speed *= 0.5
	}
	fit := 100.0
	if total < s.MinOrder {
		fit = 0
	}
	return scoring.FactorSet{
		"reliability":     s.Reliability * 100,
		"cost_efficiency": (1 - s.CostMultiplier) * 100,
		"speed":           speed,
		"order_fit":       fit,
	}
}
