// Package content generates simulated marketing posts for catalog products
// and rates their viral potential with the shared weighted scorer.
package content

import (
	"time"

	"github.com/dropsim/dropctl/pkg/scoring"
)

// Platform is a publishing target.
type Platform string

const (
	PlatformTikTok    Platform = "tiktok"
	PlatformInstagram Platform = "instagram"
	PlatformTwitter   Platform = "twitter"
)

// HookType is the psychological framing of the opening line.
type HookType string

const (
	HookCuriosity      HookType = "curiosity"
	HookPOV            HookType = "pov"
	HookTransformation HookType = "transformation"
	HookSocialProof    HookType = "social_proof"
	HookRelatability   HookType = "relatability"
	HookStory          HookType = "story"
	HookQuestion       HookType = "question"
	HookListicle       HookType = "listicle"
)

// Weights is the 6-factor viral weight table.
var Weights = scoring.WeightTable{
	{Name: "hook_strength", Weight: 0.25},
	{Name: "emotional_trigger", Weight: 0.20},
	{Name: "shareability", Weight: 0.20},
	{Name: "platform_fit", Weight: 0.15},
	{Name: "trend_alignment", Weight: 0.12},
	{Name: "cta_effectiveness", Weight: 0.08},
}

// Tiers maps viral totals to heat tiers.
var Tiers = scoring.GradeThresholds{
	{Min: 85, Label: "viral"},
	{Min: 70, Label: "hot"},
	{Min: 55, Label: "warm"},
	{Min: 0, Label: "cold"},
}

// Piece is one generated post with its viral rating.
type Piece struct {
	ID          string               `json:"id" yaml:"id"`
	Platform    Platform             `json:"platform" yaml:"platform"`
	ProductName string               `json:"product_name" yaml:"product_name"`
	HookType    HookType             `json:"hook_type" yaml:"hook_type"`
	Hook        string               `json:"hook" yaml:"hook"`
	Body        string               `json:"body" yaml:"body"`
	CTA         string               `json:"cta" yaml:"cta"`
	Hashtags    []string             `json:"hashtags,omitempty" yaml:"hashtags,omitempty"`
	Sound       string               `json:"sound,omitempty" yaml:"sound,omitempty"`
	ViralScore  *scoring.ScoreResult `json:"viral_score,omitempty" yaml:"viral_score,omitempty"`
	CreatedAt   time.Time            `json:"created_at" yaml:"created_at"`
}

// Coefficient returns the K-factor implied by the viral score: above 1.0 the
// post recruits more viewers than it consumes.
func (p *Piece) Coefficient() float64 {
	if p.ViralScore == nil {
		return 0
	}
	k := p.ViralScore.Total / 100 * 1.5
	if p.ViralScore.Factors["shareability"] > 80 {
		k *= 1.2
	}
	if k > 2.5 {
		k = 2.5
	}
	return k
}
