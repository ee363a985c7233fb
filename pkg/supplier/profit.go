package supplier

import (
	"math"
	"sort"
)

// gateway fee schedules; the platform fee rides on every sale regardless
// of gateway.
type feeSchedule struct {
	Percentage float64
	Fixed      float64
}

var gatewayFees = map[string]feeSchedule{
	"paypal": {Percentage: 0.0349, Fixed: 0.49},
	"stripe": {Percentage: 0.029, Fixed: 0.30},
}

const platformFeeRate = 0.02

// Fees is the per-transaction fee breakdown.
type Fees struct {
	GatewayFee  float64 `json:"gateway_fee" yaml:"gateway_fee"`
	PlatformFee float64 `json:"platform_fee" yaml:"platform_fee"`
	TotalFees   float64 `json:"total_fees" yaml:"total_fees"`
}

// CalculateFees returns the fee breakdown for a sale amount. Unknown
// gateways fall back to the paypal schedule.
func CalculateFees(amount float64, gateway string) Fees {
	sched, ok := gatewayFees[gateway]
	if !ok {
		sched = gatewayFees["paypal"]
	}

	gatewayFee := amount*sched.Percentage + sched.Fixed
	platformFee := amount * platformFeeRate

	return Fees{
		GatewayFee:  round2(gatewayFee),
		PlatformFee: round2(platformFee),
		TotalFees:   round2(gatewayFee + platformFee),
	}
}

// ProfitAnalysis is the full cost and margin picture for one product at one
// supplier.
type ProfitAnalysis struct {
	ProductName    string  `json:"product_name" yaml:"product_name"`
	RetailPrice    float64 `json:"retail_price" yaml:"retail_price"`
	SupplierCost   float64 `json:"supplier_cost" yaml:"supplier_cost"`
	ShippingCost   float64 `json:"shipping_cost" yaml:"shipping_cost"`
	GatewayFees    float64 `json:"gateway_fees" yaml:"gateway_fees"`
	PlatformFees   float64 `json:"platform_fees" yaml:"platform_fees"`
	TotalCosts     float64 `json:"total_costs" yaml:"total_costs"`
	GrossProfit    float64 `json:"gross_profit" yaml:"gross_profit"`
	NetProfit      float64 `json:"net_profit" yaml:"net_profit"`
	Margin         float64 `json:"margin" yaml:"margin"` // percent of retail
	Recommendation string  `json:"recommendation" yaml:"recommendation"`
}

// AnalyzeProfit computes the margin picture for a product sourced at the
// given cost and shipped at the given cost, sold through the given gateway.
func AnalyzeProfit(productName string, retail, cost, shipping float64, gateway string) ProfitAnalysis {
	fees := CalculateFees(retail, gateway)

	productCost := cost + shipping
	totalCosts := productCost + fees.TotalFees

	gross := retail - productCost
	net := retail - totalCosts

	margin := 0.0
	if retail > 0 {
		margin = net / retail * 100
	}

	return ProfitAnalysis{
		ProductName:    productName,
		RetailPrice:    round2(retail),
		SupplierCost:   round2(cost),
		ShippingCost:   round2(shipping),
		GatewayFees:    fees.GatewayFee,
		PlatformFees:   fees.PlatformFee,
		TotalCosts:     round2(totalCosts),
		GrossProfit:    round2(gross),
		NetProfit:      round2(net),
		Margin:         round1(margin),
		Recommendation: marginRecommendation(margin),
	}
}

func marginRecommendation(margin float64) string {
	switch {
	case margin >= 50:
		return "excellent - high profit potential"
	case margin >= 40:
		return "good - healthy margins"
	case margin >= 30:
		return "fair - consider optimizing"
	case margin >= 20:
		return "low - review pricing or costs"
	default:
		return "avoid - insufficient margin"
	}
}

// OptimalPrice returns the retail price that hits the target margin after
// an approximate 5% fee load. Margins at or beyond the fee ceiling are
// clamped so the denominator stays positive.
func OptimalPrice(cost, shipping, targetMargin float64) float64 {
	const (
		feeFactor = 0.05
		maxMargin = 0.90
	)
	if targetMargin < 0 {
		targetMargin = 0
	}
	if targetMargin > maxMargin {
		targetMargin = maxMargin
	}
	total := cost + shipping
	return round2(total / (1 - targetMargin - feeFactor))
}

// SourceQuote is one supplier's cost quote for a product.
type SourceQuote struct {
	SupplierID   string  `json:"supplier_id" yaml:"supplier_id"`
	Cost         float64 `json:"cost" yaml:"cost"`
	ShippingCost float64 `json:"shipping_cost" yaml:"shipping_cost"`
}

// CompareQuotes analyzes profit across supplier quotes, best margin first.
func CompareQuotes(productName string, retail float64, quotes []SourceQuote, gateway string) []ProfitAnalysis {
	analyses := make([]ProfitAnalysis, 0, len(quotes))
	for _, q := range quotes {
		a := AnalyzeProfit(productName+" ("+q.SupplierID+")", retail, q.Cost, q.ShippingCost, gateway)
		analyses = append(analyses, a)
	}
	sort.SliceStable(analyses, func(i, j int) bool {
		return analyses[i].Margin > analyses[j].Margin
	})
	return analyses
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round1(v float64) float64 { return math.Round(v*10) / 10 }
