package influencer

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/dropsim/dropctl/pkg/scoring"
)

var creatorNiches = []string{
	"lifestyle", "home_decor", "tech", "beauty", "fitness", "pets", "fashion", "wellness",
}

// Discovery simulates creator search and match scoring. A fixed seed yields
// a fixed roster.
type Discovery struct {
	rng    *rand.Rand
	scorer *scoring.Scorer
}

// NewDiscovery returns a Discovery backed by the given seed.
func NewDiscovery(seed int64) *Discovery {
	return &Discovery{
		rng:    rand.New(rand.NewSource(seed)),
		scorer: scoring.Must(Weights, Grades),
	}
}

// NewDiscoveryWithScorer allows a config-overridden scorer.
func NewDiscoveryWithScorer(seed int64, s *scoring.Scorer) *Discovery {
	d := NewDiscovery(seed)
	d.scorer = s
	return d
}

// Discover generates count creator profiles on a platform within a follower
// window, each with an authenticity analysis attached.
func (d *Discovery) Discover(platform Platform, minFollowers, maxFollowers, count int) []*Influencer {
	if minFollowers <= 0 {
		minFollowers = 1_000
	}
	if maxFollowers <= minFollowers {
		maxFollowers = minFollowers + 100_000
	}

	out := make([]*Influencer, 0, count)
	for i := 0; i < count; i++ {
		followers := minFollowers + d.rng.Intn(maxFollowers-minFollowers)
		tier := TierFor(followers)

		inf := &Influencer{
			ID:             uuid.NewString()[:8],
			Name:           fmt.Sprintf("Creator %d", i+1),
			Username:       fmt.Sprintf("@creator_%d", i+1),
			Platform:       platform,
			Tier:           tier,
			Followers:      followers,
			EngagementRate: round2(d.engagementFor(tier)),
			Niche:          creatorNiches[d.rng.Intn(len(creatorNiches))],
			RatePerPost:    round2(d.rateFor(tier)),
		}
		inf.Authenticity = d.analyzeAuthenticity(inf)
		out = append(out, inf)
	}
	return out
}

// Match scores creators against a product niche and returns the ones that
// clear the trust and engagement bars, best first, within budget.
func (d *Discovery) Match(influencers []*Influencer, productNiche string, budget float64, limit int) []*Influencer {
	matched := make([]*Influencer, 0, len(influencers))
	for _, inf := range influencers {
		// One creator should not consume more than half the budget.
		if budget > 0 && inf.RatePerPost > budget*0.5 {
			continue
		}

		result := d.scorer.Score(d.matchFactors(inf, productNiche))
		inf.Score = &result

		if inf.Authenticity != nil && !inf.Authenticity.Trustworthy() {
			continue
		}
		if inf.EngagementRate < MinEngagementRate {
			continue
		}
		matched = append(matched, inf)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Score.Total > matched[j].Score.Total
	})
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched
}

func (d *Discovery) matchFactors(inf *Influencer, productNiche string) scoring.FactorSet {
	f := make(scoring.FactorSet, len(Weights))

	benchmark := expectedEngagement(inf.Platform, inf.Tier)
	f["engagement_rate"] = minf(100, inf.EngagementRate/benchmark*50+25)

	if inf.Authenticity != nil {
		f["authenticity"] = inf.Authenticity.Overall()
	} else {
		f["authenticity"] = 65 + d.rng.Float64()*30
	}

	compatible := nicheCompatibility[productNiche]
	nicheLower := strings.ToLower(inf.Niche)
	switch {
	case contains(compatible, nicheLower):
		f["niche_relevance"] = 80 + d.rng.Float64()*20
	case containsSubstring(compatible, nicheLower):
		f["niche_relevance"] = 60 + d.rng.Float64()*20
	default:
		f["niche_relevance"] = 30 + d.rng.Float64()*30
	}

	f["content_quality"] = 60 + d.rng.Float64()*35
	f["audience_match"] = 55 + d.rng.Float64()*35
	f["growth_rate"] = 40 + d.rng.Float64()*45

	return f
}

func (d *Discovery) analyzeAuthenticity(inf *Influencer) *Authenticity {
	var flags []string

	fakeRatio := 0.05 + d.rng.Float64()*0.30
	if fakeRatio > 0.25 {
		flags = append(flags, "sudden follower spike without viral content")
	}

	expected := expectedEngagement(inf.Platform, inf.Tier)
	ratio := inf.EngagementRate / expected
	engagementAuth := minf(100, ratio*60+20)
	if ratio < 0.5 {
		flags = append(flags, "engagement rate significantly below tier average")
	}

	pattern := "organic"
	switch roll := d.rng.Float64(); {
	case roll > 0.85:
		pattern = "paid"
	case roll > 0.60:
		pattern = "suspicious"
	}
	if pattern != "organic" {
		flags = append(flags, "non-organic growth pattern")
	}

	commentQuality := 50 + d.rng.Float64()*45
	if commentQuality < 60 {
		flags = append(flags, "high ratio of generic or emoji-only comments")
	}

	return &Authenticity{
		FakeFollowerRatio: round2(fakeRatio),
		EngagementScore:   round1(engagementAuth),
		GrowthPattern:     pattern,
		CommentQuality:    round1(commentQuality),
		DemographicsMatch: round1(60 + d.rng.Float64()*35),
		RedFlags:          flags,
	}
}

// PredictROI projects campaign outcomes for one creator.
func (d *Discovery) PredictROI(inf *Influencer, campaign CampaignType, cost, productPrice float64) ROIPrediction {
	rates, ok := conversionRates[campaign]
	if !ok {
		rates = conversionRates[CampaignProductReview]
	}

	var reachMultiplier float64
	if inf.Platform == PlatformTikTok {
		reachMultiplier = 1.5 + d.rng.Float64()*2.5
	} else {
		reachMultiplier = 0.3 + d.rng.Float64()*0.3
	}

	reach := int(float64(inf.Followers) * reachMultiplier)
	engagements := int(float64(reach) * inf.EngagementRate / 100)
	clicks := int(float64(reach) * rates.Click)
	conversions := int(float64(clicks) * rates.Conversion)
	revenue := float64(conversions) * productPrice

	roi := 0.0
	if cost > 0 {
		roi = (revenue - cost) / cost * 100
	}

	confidence := 70.0
	if inf.Score != nil {
		confidence += inf.Score.Total / 10
	}
	confidence = minf(95, confidence)

	variance := (100 - confidence) / 100
	return ROIPrediction{
		InfluencerName:       inf.Name,
		CampaignCost:         cost,
		PredictedReach:       reach,
		PredictedEngagements: engagements,
		PredictedClicks:      clicks,
		PredictedConversions: conversions,
		PredictedRevenue:     round2(revenue),
		PredictedROI:         round1(roi),
		Confidence:           round1(confidence),
		BestCaseROI:          round1(roi * (1 + variance)),
		WorstCaseROI:         round1(roi * (1 - variance)),
	}
}

func (d *Discovery) engagementFor(tier Tier) float64 {
	switch tier {
	case TierNano:
		return 6 + d.rng.Float64()*6
	case TierMicro:
		return 4 + d.rng.Float64()*4
	case TierMid:
		return 3 + d.rng.Float64()*3
	case TierMacro:
		return 2 + d.rng.Float64()*2
	default:
		return 1 + d.rng.Float64()*2
	}
}

func (d *Discovery) rateFor(tier Tier) float64 {
	switch tier {
	case TierNano:
		return 25 + d.rng.Float64()*75
	case TierMicro:
		return 100 + d.rng.Float64()*400
	case TierMid:
		return 500 + d.rng.Float64()*2000
	case TierMacro:
		return 2500 + d.rng.Float64()*7500
	default:
		return 10_000 + d.rng.Float64()*40_000
	}
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func containsSubstring(list []string, v string) bool {
	for _, s := range list {
		if strings.Contains(v, s) {
			return true
		}
	}
	return false
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round1(v float64) float64 { return math.Round(v*10) / 10 }
