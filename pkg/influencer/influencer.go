// Package influencer simulates creator discovery for campaigns: tiered
// profiles, authenticity analysis, the 6-factor match score, and ROI
// prediction.
package influencer

import (
	"github.com/dropsim/dropctl/pkg/scoring"
)

// Platform is a social platform a creator publishes on.
type Platform string

const (
	PlatformTikTok    Platform = "tiktok"
	PlatformInstagram Platform = "instagram"
	PlatformYouTube   Platform = "youtube"
)

// Tier buckets creators by follower count.
type Tier string

const (
	TierNano  Tier = "nano"  // 1K-10K
	TierMicro Tier = "micro" // 10K-50K
	TierMid   Tier = "mid"   // 50K-500K
	TierMacro Tier = "macro" // 500K-1M
	TierMega  Tier = "mega"  // 1M+
)

// TierFor returns the tier for a follower count.
func TierFor(followers int) Tier {
	switch {
	case followers < 10_000:
		return TierNano
	case followers < 50_000:
		return TierMicro
	case followers < 500_000:
		return TierMid
	case followers < 1_000_000:
		return TierMacro
	default:
		return TierMega
	}
}

// CampaignType is the collaboration model offered to a creator.
type CampaignType string

const (
	CampaignProductReview   CampaignType = "product_review"
	CampaignAffiliate       CampaignType = "affiliate"
	CampaignUGC             CampaignType = "ugc"
	CampaignBrandAmbassador CampaignType = "brand_ambassador"
	CampaignGiveaway        CampaignType = "giveaway"
)

const (
	MinEngagementRate    = 3.0  // percent
	MinAuthenticityScore = 70.0
	MaxFakeFollowerRatio = 0.20
)

// Weights is the 6-factor influencer weight table.
var Weights = scoring.WeightTable{
	{Name: "engagement_rate", Weight: 0.25},
	{Name: "authenticity", Weight: 0.20},
	{Name: "niche_relevance", Weight: 0.20},
	{Name: "content_quality", Weight: 0.15},
	{Name: "audience_match", Weight: 0.12},
	{Name: "growth_rate", Weight: 0.08},
}

// Grades maps influencer totals to letter grades.
var Grades = scoring.GradeThresholds{
	{Min: 85, Label: "A"},
	{Min: 75, Label: "B"},
	{Min: 65, Label: "C"},
	{Min: 55, Label: "D"},
	{Min: 0, Label: "F"},
}

// Authenticity is the fake-follower and engagement quality analysis.
type Authenticity struct {
	FakeFollowerRatio float64  `json:"fake_follower_ratio" yaml:"fake_follower_ratio"`
	EngagementScore   float64  `json:"engagement_score" yaml:"engagement_score"`
	GrowthPattern     string   `json:"growth_pattern" yaml:"growth_pattern"` // organic, suspicious, paid
	CommentQuality    float64  `json:"comment_quality" yaml:"comment_quality"`
	DemographicsMatch float64  `json:"demographics_match" yaml:"demographics_match"`
	RedFlags          []string `json:"red_flags,omitempty" yaml:"red_flags,omitempty"`
}

// Overall blends the authenticity signals into a 0-100 score.
func (a *Authenticity) Overall() float64 {
	return (1-a.FakeFollowerRatio)*30 +
		a.EngagementScore*0.30 +
		a.CommentQuality*0.25 +
		a.DemographicsMatch*0.15
}

// Trustworthy reports whether the creator clears the collaboration bar.
func (a *Authenticity) Trustworthy() bool {
	return a.FakeFollowerRatio < MaxFakeFollowerRatio &&
		a.Overall() >= MinAuthenticityScore &&
		len(a.RedFlags) < 2
}

// Influencer is a simulated creator profile.
type Influencer struct {
	ID             string               `json:"id" yaml:"id"`
	Name           string               `json:"name" yaml:"name"`
	Username       string               `json:"username" yaml:"username"`
	Platform       Platform             `json:"platform" yaml:"platform"`
	Tier           Tier                 `json:"tier" yaml:"tier"`
	Followers      int                  `json:"followers" yaml:"followers"`
	EngagementRate float64              `json:"engagement_rate" yaml:"engagement_rate"` // percent
	Niche          string               `json:"niche" yaml:"niche"`
	RatePerPost    float64              `json:"rate_per_post" yaml:"rate_per_post"`
	Score          *scoring.ScoreResult `json:"score,omitempty" yaml:"score,omitempty"`
	Authenticity   *Authenticity        `json:"authenticity,omitempty" yaml:"authenticity,omitempty"`
}

// ROIPrediction is the projected campaign outcome for one creator.
type ROIPrediction struct {
	InfluencerName       string  `json:"influencer_name" yaml:"influencer_name"`
	CampaignCost         float64 `json:"campaign_cost" yaml:"campaign_cost"`
	PredictedReach       int     `json:"predicted_reach" yaml:"predicted_reach"`
	PredictedEngagements int     `json:"predicted_engagements" yaml:"predicted_engagements"`
	PredictedClicks      int     `json:"predicted_clicks" yaml:"predicted_clicks"`
	PredictedConversions int     `json:"predicted_conversions" yaml:"predicted_conversions"`
	PredictedRevenue     float64 `json:"predicted_revenue" yaml:"predicted_revenue"`
	PredictedROI         float64 `json:"predicted_roi" yaml:"predicted_roi"` // percent
	Confidence           float64 `json:"confidence" yaml:"confidence"`
	BestCaseROI          float64 `json:"best_case_roi" yaml:"best_case_roi"`
	WorstCaseROI         float64 `json:"worst_case_roi" yaml:"worst_case_roi"`
}

// engagementBenchmarks holds the expected engagement rate per platform/tier.
var engagementBenchmarks = map[Platform]map[Tier]float64{
	PlatformTikTok: {
		TierNano: 8.0, TierMicro: 6.0, TierMid: 4.5, TierMacro: 3.5, TierMega: 2.5,
	},
	PlatformInstagram: {
		TierNano: 5.0, TierMicro: 3.5, TierMid: 2.5, TierMacro: 2.0, TierMega: 1.5,
	},
	PlatformYouTube: {
		TierNano: 6.0, TierMicro: 4.0, TierMid: 3.0, TierMacro: 2.5, TierMega: 2.0,
	},
}

// expectedEngagement returns the benchmark engagement for a creator.
func expectedEngagement(p Platform, t Tier) float64 {
	if m, ok := engagementBenchmarks[p]; ok {
		if v, ok := m[t]; ok {
			return v
		}
	}
	return 3.0
}

// nicheCompatibility maps product niches to compatible creator niches.
var nicheCompatibility = map[string][]string{
	"smart_home":          {"home_decor", "tech", "lifestyle", "aesthetic", "diy"},
	"health_wellness":     {"fitness", "wellness", "lifestyle", "self_care", "beauty"},
	"beauty_tools":        {"beauty", "skincare", "makeup", "lifestyle", "self_care"},
	"pet_products":        {"pets", "animals", "lifestyle", "family", "comedy"},
	"tech_accessories":    {"tech", "gadgets", "productivity", "lifestyle", "gaming"},
	"fashion_accessories": {"fashion", "style", "lifestyle", "beauty", "aesthetic"},
}

// conversionRates holds click and conversion benchmarks per campaign type.
var conversionRates = map[CampaignType]struct{ Click, Conversion float64 }{
	CampaignProductReview:   {0.02, 0.03},
	CampaignAffiliate:       {0.03, 0.04},
	CampaignUGC:             {0.015, 0.025},
	CampaignBrandAmbassador: {0.025, 0.035},
	CampaignGiveaway:        {0.05, 0.02},
}

// RecommendCampaign picks a campaign type from the creator's grade and tier.
func RecommendCampaign(inf *Influencer) CampaignType {
	if inf.Score == nil {
		return CampaignProductReview
	}
	switch {
	case inf.Score.Grade == "A" && (inf.Tier == TierMid || inf.Tier == TierMacro || inf.Tier == TierMega):
		return CampaignBrandAmbassador
	case inf.Score.Grade == "A":
		return CampaignAffiliate
	case inf.Tier == TierNano:
		return CampaignUGC
	default:
		return CampaignProductReview
	}
}
