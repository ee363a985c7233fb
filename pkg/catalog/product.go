// Package catalog discovers and scores candidate products for the simulated
// store: niche trend analysis, competition estimates, and a 12-factor
// weighted product score.
package catalog

import (
	"time"

	"github.com/dropsim/dropctl/pkg/scoring"
)

// TrendDirection buckets a niche growth rate.
type TrendDirection string

const (
	TrendExplosive TrendDirection = "explosive" // >100% growth
	TrendStrongUp  TrendDirection = "strong_up" // 50-100%
	TrendRising    TrendDirection = "rising"    // 25-50%
	TrendStable    TrendDirection = "stable"    // -10 to 25%
	TrendDeclining TrendDirection = "declining" // -25 to -10%
	TrendCrashing  TrendDirection = "crashing"  // <-25%
)

// DirectionFor maps a growth percentage to its trend direction.
func DirectionFor(growth float64) TrendDirection {
	switch {
	case growth > 100:
		return TrendExplosive
	case growth > 50:
		return TrendStrongUp
	case growth > 25:
		return TrendRising
	case growth > -10:
		return TrendStable
	case growth > -25:
		return TrendDeclining
	default:
		return TrendCrashing
	}
}

// TrendData is the simulated search-interest profile for a keyword.
type TrendData struct {
	Keyword         string         `json:"keyword" yaml:"keyword"`
	CurrentInterest float64        `json:"current_interest" yaml:"current_interest"`
	GrowthRate      float64        `json:"growth_rate" yaml:"growth_rate"`
	Direction       TrendDirection `json:"direction" yaml:"direction"`
	PeakInterest    float64        `json:"peak_interest" yaml:"peak_interest"`
	AvgInterest     float64        `json:"avg_interest" yaml:"avg_interest"`
	Volatility      float64        `json:"volatility" yaml:"volatility"`
	RelatedQueries  []string       `json:"related_queries,omitempty" yaml:"related_queries,omitempty"`
}

// CompetitorData is a simulated marketplace competition snapshot.
type CompetitorData struct {
	ProductName string  `json:"product_name" yaml:"product_name"`
	AvgPrice    float64 `json:"avg_price" yaml:"avg_price"`
	MinPrice    float64 `json:"min_price" yaml:"min_price"`
	MaxPrice    float64 `json:"max_price" yaml:"max_price"`
	NumSellers  int     `json:"num_sellers" yaml:"num_sellers"`
	AvgRating   float64 `json:"avg_rating" yaml:"avg_rating"`
	ReviewCount int     `json:"review_count" yaml:"review_count"`
	Saturation  string  `json:"saturation" yaml:"saturation"` // low, medium, high, oversaturated
}

// Product is a catalog entry with its analysis attached.
type Product struct {
	ID          string               `json:"id" yaml:"id"`
	Name        string               `json:"name" yaml:"name"`
	Niche       string               `json:"niche" yaml:"niche"`
	Cost        float64              `json:"cost" yaml:"cost"`
	RetailPrice float64              `json:"retail_price" yaml:"retail_price"`
	Supplier    string               `json:"supplier,omitempty" yaml:"supplier,omitempty"`
	Features    []string             `json:"features,omitempty" yaml:"features,omitempty"`
	Score       *scoring.ScoreResult `json:"score,omitempty" yaml:"score,omitempty"`
	Trend       *TrendData           `json:"trend,omitempty" yaml:"trend,omitempty"`
	Competition *CompetitorData      `json:"competition,omitempty" yaml:"competition,omitempty"`
	CreatedAt   time.Time            `json:"created_at" yaml:"created_at"`
}

// Margin returns the profit margin as a fraction of retail price.
func (p *Product) Margin() float64 {
	if p.RetailPrice <= 0 {
		return 0
	}
	return (p.RetailPrice - p.Cost) / p.RetailPrice
}

// Profit returns the per-unit profit.
func (p *Product) Profit() float64 {
	return p.RetailPrice - p.Cost
}

// niche holds the static market profile the trend simulation draws from.
type niche struct {
	Growth       float64
	Keywords     []string
	SeasonalPeak []time.Month
	Platforms    []string
	Audience     []string
	AvgMargin    float64
}

var nicheDB = map[string]niche{
	"smart_home": {
		Growth:       32,
		Keywords:     []string{"galaxy projector", "led strip lights", "sunset lamp", "smart plug", "air purifier"},
		SeasonalPeak: []time.Month{time.October, time.November, time.December},
		Platforms:    []string{"tiktok", "instagram", "pinterest"},
		Audience:     []string{"millennials", "gen_z", "homeowners"},
		AvgMargin:    0.55,
	},
	"health_wellness": {
		Growth:       45,
		Keywords:     []string{"posture corrector", "massage gun", "sleep mask", "blue light glasses", "foam roller"},
		SeasonalPeak: []time.Month{time.January, time.February, time.September},
		Platforms:    []string{"youtube", "instagram", "tiktok"},
		Audience:     []string{"fitness", "office_workers", "wellness"},
		AvgMargin:    0.52,
	},
	"pet_products": {
		Growth:       38,
		Keywords:     []string{"no pull harness", "pet camera", "automatic feeder", "cat water fountain", "dog puzzle toy"},
		SeasonalPeak: []time.Month{time.May, time.June, time.December},
		Platforms:    []string{"tiktok", "instagram", "facebook"},
		Audience:     []string{"pet_owners", "millennials", "families"},
		AvgMargin:    0.58,
	},
	"beauty_tools": {
		Growth:       41,
		Keywords:     []string{"ice roller", "gua sha", "led face mask", "facial steamer", "lash serum"},
		SeasonalPeak: []time.Month{time.February, time.November, time.December},
		Platforms:    []string{"tiktok", "instagram", "youtube"},
		Audience:     []string{"women_18_35", "beauty_enthusiasts"},
		AvgMargin:    0.62,
	},
	"tech_accessories": {
		Growth:       28,
		Keywords:     []string{"phone grip", "wireless charger", "laptop stand", "ring light", "portable charger"},
		SeasonalPeak: []time.Month{time.August, time.September, time.November, time.December},
		Platforms:    []string{"youtube", "reddit", "twitter"},
		Audience:     []string{"tech_savvy", "students", "remote_workers"},
		AvgMargin:    0.50,
	},
	"home_office": {
		Growth:       35,
		Keywords:     []string{"desk organizer", "monitor light", "ergonomic mouse", "desk pad", "monitor arm"},
		SeasonalPeak: []time.Month{time.January, time.August, time.September},
		Platforms:    []string{"linkedin", "reddit", "youtube"},
		Audience:     []string{"remote_workers", "professionals", "students"},
		AvgMargin:    0.48,
	},
	"fashion_accessories": {
		Growth:       25,
		Keywords:     []string{"projection necklace", "minimalist watch", "crossbody bag", "pearl earrings", "bucket hat"},
		SeasonalPeak: []time.Month{time.February, time.May, time.November, time.December},
		Platforms:    []string{"instagram", "tiktok", "pinterest"},
		Audience:     []string{"women_18_45", "fashion_forward"},
		AvgMargin:    0.60,
	},
	"outdoor_recreation": {
		Growth:       30,
		Keywords:     []string{"camping light", "portable hammock", "hiking backpack", "headlamp", "fire starter"},
		SeasonalPeak: []time.Month{time.April, time.May, time.June, time.July, time.August},
		Platforms:    []string{"youtube", "instagram", "reddit"},
		Audience:     []string{"outdoor_enthusiasts", "families", "adventurers"},
		AvgMargin:    0.45,
	},
}

// seedProduct is a known-winner seed entry the discovery run draws from.
type seedProduct struct {
	Name       string
	Niche      string
	Cost       float64
	Retail     float64
	ViralScore float64
}

var seedProducts = []seedProduct{
	{"Galaxy Star Projector", "smart_home", 12, 39.99, 95},
	{"LED Strip Lights 65ft", "smart_home", 8, 29.99, 92},
	{"Sunset Projection Lamp", "smart_home", 7, 24.99, 88},
	{"Cloud Light", "smart_home", 15, 44.99, 85},
	{"Posture Corrector Pro", "health_wellness", 6, 24.99, 82},
	{"Mini Massage Gun", "health_wellness", 25, 59.99, 86},
	{"Acupressure Mat Set", "health_wellness", 12, 39.99, 78},
	{"Weighted Sleep Mask", "health_wellness", 5, 19.99, 80},
	{"Portable Blender USB", "health_wellness", 8, 27.99, 89},
	{"No-Pull Dog Harness", "pet_products", 9, 29.99, 76},
	{"Pet Camera Treat Dispenser", "pet_products", 35, 79.99, 84},
	{"Cat Water Fountain", "pet_products", 12, 34.99, 81},
	{"Photo Projection Necklace", "fashion_accessories", 10, 34.99, 94},
	{"Ice Roller Face Massager", "beauty_tools", 4, 16.99, 87},
	{"LED Face Mask", "beauty_tools", 20, 54.99, 83},
	{"Gua Sha Set", "beauty_tools", 3, 14.99, 79},
	{"Magnetic Phone Mount", "tech_accessories", 5, 18.99, 74},
	{"Ring Light 10inch", "tech_accessories", 10, 29.99, 85},
	{"Monitor Light Bar", "home_office", 15, 39.99, 77},
	{"Desk Cable Organizer", "home_office", 6, 19.99, 72},
}

// Niches returns the known niche names in no particular order.
func Niches() []string {
	out := make([]string, 0, len(nicheDB))
	for name := range nicheDB {
		out = append(out, name)
	}
	return out
}
