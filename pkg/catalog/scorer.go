package catalog

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dropsim/dropctl/pkg/scoring"
)

const (
	// Winner criteria.
	MinMargin           = 0.40
	MinViralScore       = 70.0
	MaxCompetitionScore = 60.0 // lower is better
	minWinnerConfidence = 50.0
)

// ProductWeights is the 12-factor product weight table.
var ProductWeights = scoring.WeightTable{
	{Name: "trend_score", Weight: 0.18},
	{Name: "viral_potential", Weight: 0.16},
	{Name: "margin_score", Weight: 0.14},
	{Name: "competition_score", Weight: 0.12},
	{Name: "demand_score", Weight: 0.10},
	{Name: "sentiment_score", Weight: 0.08},
	{Name: "seasonality_score", Weight: 0.06},
	{Name: "price_point_score", Weight: 0.05},
	{Name: "supplier_score", Weight: 0.04},
	{Name: "shipping_score", Weight: 0.03},
	{Name: "return_risk", Weight: 0.02},
	{Name: "repeat_potential", Weight: 0.02},
}

// ProductGrades maps product totals to letter grades.
var ProductGrades = scoring.GradeThresholds{
	{Min: 85, Label: "A+"},
	{Min: 80, Label: "A"},
	{Min: 75, Label: "B+"},
	{Min: 70, Label: "B"},
	{Min: 65, Label: "C+"},
	{Min: 60, Label: "C"},
	{Min: 50, Label: "D"},
	{Min: 0, Label: "F"},
}

// Discovery runs the product discovery pipeline: seed products through trend
// analysis, competition analysis, and the weighted score.
type Discovery struct {
	analyzer *Analyzer
	scorer   *scoring.Scorer
	now      func() time.Time
}

// NewDiscovery builds a Discovery with the default product scorer.
func NewDiscovery(seed int64) *Discovery {
	return &Discovery{
		analyzer: NewAnalyzer(seed),
		scorer:   scoring.Must(ProductWeights, ProductGrades),
		now:      time.Now,
	}
}

// NewDiscoveryWithScorer builds a Discovery with a caller-supplied scorer,
// used when config overrides the default weight table.
func NewDiscoveryWithScorer(seed int64, s *scoring.Scorer) *Discovery {
	d := NewDiscovery(seed)
	d.scorer = s
	return d
}

// Discover analyzes the seed catalog and returns up to limit products,
// best-scoring first.
func (d *Discovery) Discover(limit int) []*Product {
	products := make([]*Product, 0, len(seedProducts))

	for _, sp := range seedProducts {
		trend := d.analyzer.AnalyzeTrend(sp.Name, sp.Niche)
		comp := d.analyzer.AnalyzeCompetition(sp.Name)
		result := d.scorer.Score(d.factors(sp, trend, comp))

		products = append(products, &Product{
			ID:          uuid.NewString()[:8],
			Name:        sp.Name,
			Niche:       sp.Niche,
			Cost:        sp.Cost,
			RetailPrice: sp.Retail,
			Supplier:    "aliexpress",
			Features:    d.features(sp.Name, sp.Niche),
			Score:       &result,
			Trend:       &trend,
			Competition: &comp,
			CreatedAt:   d.now().UTC(),
		})
	}

	sort.SliceStable(products, func(i, j int) bool {
		return products[i].Score.Total > products[j].Score.Total
	})

	if limit > 0 && len(products) > limit {
		products = products[:limit]
	}
	return products
}

// Winners filters products meeting every winning criterion.
func (d *Discovery) Winners(products []*Product, minScore float64) []*Product {
	winners := make([]*Product, 0, len(products))
	for _, p := range products {
		if p.Score == nil {
			continue
		}
		f := p.Score.Factors
		if p.Score.Total >= minScore &&
			p.Margin() >= MinMargin &&
			f["viral_potential"] >= MinViralScore &&
			f["competition_score"] >= 100-MaxCompetitionScore &&
			p.Score.Confidence >= minWinnerConfidence {
			winners = append(winners, p)
		}
	}
	return winners
}

// factors computes the 12 factor values for one seed product.
func (d *Discovery) factors(sp seedProduct, trend TrendData, comp CompetitorData) scoring.FactorSet {
	f := make(scoring.FactorSet, len(ProductWeights))
	rng := d.analyzer.rng

	// Trend momentum from growth rate.
	growth := trend.GrowthRate
	switch {
	case growth > 50:
		f["trend_score"] = min100(70 + growth*0.3)
	case growth > 25:
		f["trend_score"] = 50 + growth
	default:
		f["trend_score"] = maxf(20, 40+growth)
	}

	f["viral_potential"] = d.viralPotential(sp)

	// Margin banded the way buyers actually think about it.
	margin := 0.0
	if sp.Retail > 0 {
		margin = (sp.Retail - sp.Cost) / sp.Retail
	}
	switch {
	case margin >= 0.60:
		f["margin_score"] = 95
	case margin >= 0.50:
		f["margin_score"] = 80
	case margin >= 0.40:
		f["margin_score"] = 65
	default:
		f["margin_score"] = maxf(20, margin*100)
	}

	saturationScore := map[string]float64{"low": 90, "medium": 70, "high": 45, "oversaturated": 25}
	f["competition_score"] = saturationScore[comp.Saturation]

	f["demand_score"] = min100(trend.CurrentInterest * 1.2)
	f["sentiment_score"] = 60 + rng.Float64()*35

	f["seasonality_score"] = d.seasonality(sp.Niche)

	switch {
	case sp.Retail >= 20 && sp.Retail <= 50:
		f["price_point_score"] = 90
	case sp.Retail >= 15 && sp.Retail <= 60:
		f["price_point_score"] = 70
	case sp.Retail >= 10 && sp.Retail <= 80:
		f["price_point_score"] = 50
	default:
		f["price_point_score"] = 30
	}

	f["supplier_score"] = 70 + rng.Float64()*25
	f["shipping_score"] = 65 + rng.Float64()*25
	f["return_risk"] = 100 - (5 + rng.Float64()*20) // inverted, higher is safer

	name := strings.ToLower(sp.Name)
	if strings.Contains(name, "oil") || strings.Contains(name, "serum") ||
		strings.Contains(name, "supplement") || strings.Contains(name, "refill") {
		f["repeat_potential"] = 70 + rng.Float64()*20
	} else {
		f["repeat_potential"] = 20 + rng.Float64()*20
	}

	return f
}

func (d *Discovery) viralPotential(sp seedProduct) float64 {
	n := nicheDB[sp.Niche]
	factors := make([]float64, 0, 5)

	platformScore := 0.0
	for _, p := range n.Platforms {
		if p == "tiktok" || p == "instagram" {
			platformScore += 20
		}
	}
	factors = append(factors, minf(platformScore, 40))

	audienceScore := 0.0
	for _, aud := range n.Audience {
		if aud == "millennials" || aud == "gen_z" || aud == "women_18_35" {
			audienceScore += 15
		}
	}
	factors = append(factors, minf(audienceScore, 30))

	// Visually transformative products travel further.
	visualScore := 0.0
	name := strings.ToLower(sp.Name)
	for _, kw := range []string{"projector", "light", "led", "glow", "color", "projection"} {
		if strings.Contains(name, kw) {
			visualScore += 10
		}
	}
	factors = append(factors, minf(visualScore, 30))

	switch {
	case sp.Retail >= 20 && sp.Retail <= 50:
		factors = append(factors, 30)
	case sp.Retail >= 15 && sp.Retail <= 60:
		factors = append(factors, 20)
	default:
		factors = append(factors, 10)
	}

	factors = append(factors, sp.ViralScore*0.3)

	sum := 0.0
	for _, v := range factors {
		sum += v
	}
	return min100(sum / float64(len(factors)) * 1.5)
}

func (d *Discovery) seasonality(nicheName string) float64 {
	n := nicheDB[nicheName]
	month := d.now().Month()
	for _, peak := range n.SeasonalPeak {
		if month == peak {
			return 95
		}
	}
	for _, peak := range n.SeasonalPeak {
		if month == peak-1 || month == peak+1 {
			return 75
		}
	}
	return 50
}

func (d *Discovery) features(name, nicheName string) []string {
	n := nicheDB[nicheName]
	feats := []string{"Free worldwide shipping", "30-day returns"}
	if len(n.Audience) > 0 {
		feats = append(feats, "Popular with "+strings.ReplaceAll(n.Audience[0], "_", " "))
	}
	if strings.Contains(strings.ToLower(name), "led") {
		feats = append(feats, "16 color modes")
	}
	return feats
}

func min100(v float64) float64 { return minf(v, 100) }

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
