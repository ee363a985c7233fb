package catalog

import (
	"math"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/stat"
)

const trendSeriesWeeks = 12

// Analyzer produces simulated trend and competition data. All randomness
// flows from the injected source, so a fixed seed yields a fixed analysis.
type Analyzer struct {
	rng *rand.Rand
	now func() time.Time
}

// NewAnalyzer returns an Analyzer backed by the given seed.
func NewAnalyzer(seed int64) *Analyzer {
	return &Analyzer{
		rng: rand.New(rand.NewSource(seed)),
		now: time.Now,
	}
}

// AnalyzeTrend builds a simulated interest profile for a keyword. The growth
// rate is the least-squares slope of a synthetic weekly interest series,
// expressed as percent change over the window; volatility is the population
// standard deviation of the same series.
func (a *Analyzer) AnalyzeTrend(keyword, nicheName string) TrendData {
	n := nicheDB[nicheName]

	baseGrowth := n.Growth
	if baseGrowth == 0 {
		baseGrowth = 20
	}
	targetGrowth := baseGrowth + a.rng.Float64()*25 - 10

	base := 40 + a.rng.Float64()*40
	series := a.interestSeries(base, targetGrowth)

	weeks := make([]float64, trendSeriesWeeks)
	for i := range weeks {
		weeks[i] = float64(i)
	}
	_, slope := stat.LinearRegression(weeks, series, nil, false)

	start := series[0]
	growth := 0.0
	if start != 0 {
		growth = slope * float64(trendSeriesWeeks-1) / start * 100
	}

	peak, sum := series[0], 0.0
	for _, v := range series {
		if v > peak {
			peak = v
		}
		sum += v
	}
	current := series[len(series)-1]

	related := n.Keywords
	if len(related) > 5 {
		related = related[:5]
	}

	return TrendData{
		Keyword:         keyword,
		CurrentInterest: current,
		GrowthRate:      growth,
		Direction:       DirectionFor(growth),
		PeakInterest:    peak,
		AvgInterest:     sum / float64(len(series)),
		Volatility:      stat.PopStdDev(series, nil),
		RelatedQueries:  related,
	}
}

// interestSeries generates a weekly interest series drifting from base toward
// base scaled by the target growth, with per-week noise.
func (a *Analyzer) interestSeries(base, targetGrowth float64) []float64 {
	series := make([]float64, trendSeriesWeeks)
	end := base * (1 + targetGrowth/100)
	step := (end - base) / float64(trendSeriesWeeks-1)
	for i := range series {
		noise := a.rng.Float64()*10 - 5
		v := base + step*float64(i) + noise
		series[i] = math.Max(1, math.Min(100, v))
	}
	return series
}

// AnalyzeCompetition simulates a marketplace snapshot for a product.
func (a *Analyzer) AnalyzeCompetition(productName string) CompetitorData {
	sellers := 50 + a.rng.Intn(451)

	var saturation string
	switch {
	case sellers < 100:
		saturation = "low"
	case sellers < 200:
		saturation = "medium"
	case sellers < 400:
		saturation = "high"
	default:
		saturation = "oversaturated"
	}

	avgPrice := 15 + a.rng.Float64()*35

	return CompetitorData{
		ProductName: productName,
		AvgPrice:    round2(avgPrice),
		MinPrice:    round2(avgPrice * 0.6),
		MaxPrice:    round2(avgPrice * 1.5),
		NumSellers:  sellers,
		AvgRating:   round1(3.8 + a.rng.Float64()),
		ReviewCount: 100 + a.rng.Intn(9901),
		Saturation:  saturation,
	}
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round1(v float64) float64 { return math.Round(v*10) / 10 }
