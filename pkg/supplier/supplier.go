// Package supplier rates fulfillment suppliers, analyzes per-product profit,
// and watches supplier prices for significant moves.
package supplier

import (
	"math/rand"
	"sort"

	"github.com/dropsim/dropctl/pkg/scoring"
)

// Tier buckets suppliers by service level.
type Tier string

const (
	TierBudget   Tier = "budget"
	TierStandard Tier = "standard"
	TierPremium  Tier = "premium"
)

// RiskLevel reflects how much a supplier's composite score can be trusted
// for routing real orders.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// Weights is the 6-factor supplier weight table.
var Weights = scoring.WeightTable{
	{Name: "reliability", Weight: 0.25},
	{Name: "shipping_speed", Weight: 0.20},
	{Name: "quality", Weight: 0.20},
	{Name: "pricing", Weight: 0.15},
	{Name: "communication", Weight: 0.10},
	{Name: "return_rate", Weight: 0.10},
}

// Grades maps supplier totals to letter grades.
var Grades = scoring.GradeThresholds{
	{Min: 85, Label: "A"},
	{Min: 75, Label: "B"},
	{Min: 65, Label: "C"},
	{Min: 55, Label: "D"},
	{Min: 0, Label: "F"},
}

// Supplier is a fulfillment partner with its rated score.
type Supplier struct {
	ID              string               `json:"id" yaml:"id"`
	Name            string               `json:"name" yaml:"name"`
	Tier            Tier                 `json:"tier" yaml:"tier"`
	Location        string               `json:"location" yaml:"location"`
	ShippingMinDays int                  `json:"shipping_min_days" yaml:"shipping_min_days"`
	ShippingMaxDays int                  `json:"shipping_max_days" yaml:"shipping_max_days"`
	ShippingMethods []string             `json:"shipping_methods,omitempty" yaml:"shipping_methods,omitempty"`
	CatalogSize     int64                `json:"catalog_size" yaml:"catalog_size"`
	PaymentTerms    string               `json:"payment_terms" yaml:"payment_terms"`
	Score           *scoring.ScoreResult `json:"score,omitempty" yaml:"score,omitempty"`
	RiskLevel       RiskLevel            `json:"risk_level" yaml:"risk_level"`
}

// AvgShippingDays returns the midpoint of the shipping window.
func (s *Supplier) AvgShippingDays() float64 {
	return float64(s.ShippingMinDays+s.ShippingMaxDays) / 2
}

type seedSupplier struct {
	ID          string
	Name        string
	Tier        Tier
	Location    string
	ShipMin     int
	ShipMax     int
	Methods     []string
	CatalogSize int64
	Terms       string
	Reliability float64
	Quality     float64
}

var seedSuppliers = []seedSupplier{
	{"ali-001", "AliExpress", TierBudget, "China", 15, 30,
		[]string{"AliExpress Standard", "ePacket", "Cainiao"}, 100_000_000, "immediate", 82, 75},
	{"cj-001", "CJ Dropshipping", TierStandard, "China/US Warehouses", 8, 15,
		[]string{"CJPacket", "USPS", "DHL eCommerce"}, 500_000, "immediate", 88, 82},
	{"spocket-001", "Spocket", TierPremium, "US/EU", 3, 7,
		[]string{"US Suppliers", "EU Suppliers", "Express"}, 100_000, "monthly", 94, 92},
	{"zendrop-001", "Zendrop", TierStandard, "US/China", 5, 12,
		[]string{"Zendrop Express", "Standard", "Economy"}, 200_000, "immediate", 90, 85},
	{"dsers-001", "DSers (AliExpress)", TierBudget, "China", 12, 25,
		[]string{"DSers Direct", "AliExpress Standard"}, 100_000_000, "immediate", 85, 78},
}

// Rater builds and ranks the supplier roster with the shared scorer.
type Rater struct {
	rng    *rand.Rand
	scorer *scoring.Scorer
}

// NewRater returns a Rater backed by the given seed.
func NewRater(seed int64) *Rater {
	return &Rater{
		rng:    rand.New(rand.NewSource(seed)),
		scorer: scoring.Must(Weights, Grades),
	}
}

// NewRaterWithScorer allows a config-overridden scorer.
func NewRaterWithScorer(seed int64, s *scoring.Scorer) *Rater {
	r := NewRater(seed)
	r.scorer = s
	return r
}

// Rate scores the full supplier roster, best first.
func (r *Rater) Rate() []*Supplier {
	suppliers := make([]*Supplier, 0, len(seedSuppliers))
	for _, sd := range seedSuppliers {
		returnRate := 2 + r.rng.Float64()*6 // percent, lower is better

		result := r.scorer.Score(scoring.FactorSet{
			"reliability":    sd.Reliability + r.rng.Float64()*10 - 5,
			"shipping_speed": shippingScore(sd.ShipMin, sd.ShipMax),
			"quality":        sd.Quality + r.rng.Float64()*10 - 5,
			"pricing":        70 + r.rng.Float64()*25,
			"communication":  75 + r.rng.Float64()*20,
			// Inverted so a low return rate scores high.
			"return_rate": maxf(0, 100-returnRate*10),
		})

		suppliers = append(suppliers, &Supplier{
			ID:              sd.ID,
			Name:            sd.Name,
			Tier:            sd.Tier,
			Location:        sd.Location,
			ShippingMinDays: sd.ShipMin,
			ShippingMaxDays: sd.ShipMax,
			ShippingMethods: sd.Methods,
			CatalogSize:     sd.CatalogSize,
			PaymentTerms:    sd.Terms,
			Score:           &result,
			RiskLevel:       riskFor(result.Total),
		})
	}

	sort.SliceStable(suppliers, func(i, j int) bool {
		return suppliers[i].Score.Total > suppliers[j].Score.Total
	})
	return suppliers
}

// shippingScore converts a delivery window to a 0-100 score where roughly
// 3 days maps to 100 and 30 days to 30.
func shippingScore(minDays, maxDays int) float64 {
	avg := float64(minDays+maxDays) / 2
	return maxf(30, minf(100, 115-avg*3))
}

func riskFor(total float64) RiskLevel {
	switch {
	case total >= 85:
		return RiskLow
	case total >= 70:
		return RiskMedium
	case total >= 55:
		return RiskHigh
	default:
		return RiskCritical
	}
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
