package influencer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropsim/dropctl/pkg/scoring"
)

func TestTierFor(t *testing.T) {
	tests := []struct {
		followers int
		want      Tier
	}{
		{5_000, TierNano},
		{25_000, TierMicro},
		{100_000, TierMid},
		{750_000, TierMacro},
		{2_000_000, TierMega},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, TierFor(tc.followers), "followers %d", tc.followers)
	}
}

func TestDiscover(t *testing.T) {
	d := NewDiscovery(42)

	infs := d.Discover(PlatformTikTok, 1_000, 100_000, 20)
	require.Len(t, infs, 20)

	for _, inf := range infs {
		assert.NotEmpty(t, inf.ID)
		assert.GreaterOrEqual(t, inf.Followers, 1_000)
		assert.Less(t, inf.Followers, 101_000)
		assert.Equal(t, TierFor(inf.Followers), inf.Tier)
		require.NotNil(t, inf.Authenticity)
		assert.GreaterOrEqual(t, inf.Authenticity.FakeFollowerRatio, 0.05)
	}
}

func TestDiscover_Deterministic(t *testing.T) {
	a := NewDiscovery(9).Discover(PlatformInstagram, 0, 0, 5)
	b := NewDiscovery(9).Discover(PlatformInstagram, 0, 0, 5)
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].Followers, b[i].Followers)
		assert.Equal(t, a[i].EngagementRate, b[i].EngagementRate)
		assert.Equal(t, a[i].Niche, b[i].Niche)
	}
}

func TestMatch(t *testing.T) {
	d := NewDiscovery(42)
	infs := d.Discover(PlatformTikTok, 1_000, 100_000, 30)

	matched := d.Match(infs, "smart_home", 1_000, 10)
	assert.LessOrEqual(t, len(matched), 10)

	for i, inf := range matched {
		require.NotNil(t, inf.Score)
		assert.GreaterOrEqual(t, inf.EngagementRate, MinEngagementRate)
		assert.LessOrEqual(t, inf.RatePerPost, 500.0)
		if inf.Authenticity != nil {
			assert.True(t, inf.Authenticity.Trustworthy())
		}
		if i > 0 {
			assert.GreaterOrEqual(t, matched[i-1].Score.Total, inf.Score.Total)
		}
	}
}

func TestAuthenticity_Trustworthy(t *testing.T) {
	good := &Authenticity{
		FakeFollowerRatio: 0.05,
		EngagementScore:   90,
		CommentQuality:    85,
		DemographicsMatch: 80,
	}
	assert.True(t, good.Trustworthy())

	fake := &Authenticity{
		FakeFollowerRatio: 0.30,
		EngagementScore:   90,
		CommentQuality:    85,
		DemographicsMatch: 80,
	}
	assert.False(t, fake.Trustworthy())

	flagged := &Authenticity{
		FakeFollowerRatio: 0.05,
		EngagementScore:   90,
		CommentQuality:    85,
		DemographicsMatch: 80,
		RedFlags:          []string{"a", "b"},
	}
	assert.False(t, flagged.Trustworthy())
}

func TestPredictROI(t *testing.T) {
	d := NewDiscovery(42)
	inf := &Influencer{
		Name:           "Creator 1",
		Platform:       PlatformTikTok,
		Tier:           TierMicro,
		Followers:      40_000,
		EngagementRate: 6.5,
	}

	p := d.PredictROI(inf, CampaignAffiliate, 500, 35)
	assert.Greater(t, p.PredictedReach, inf.Followers) // tiktok reach multiplier >= 1.5
	assert.GreaterOrEqual(t, p.PredictedClicks, p.PredictedConversions)
	assert.GreaterOrEqual(t, p.BestCaseROI, p.PredictedROI)
	assert.LessOrEqual(t, p.WorstCaseROI, p.PredictedROI)
	assert.LessOrEqual(t, p.Confidence, 95.0)
}

func TestPredictROI_ZeroCost(t *testing.T) {
	d := NewDiscovery(1)
	inf := &Influencer{Platform: PlatformInstagram, Followers: 10_000, EngagementRate: 4}
	p := d.PredictROI(inf, CampaignUGC, 0, 35)
	assert.Equal(t, 0.0, p.PredictedROI)
}

func TestRecommendCampaign(t *testing.T) {
	withGrade := func(tier Tier, grade string) *Influencer {
		return &Influencer{Tier: tier, Score: &scoring.ScoreResult{Grade: grade}}
	}

	assert.Equal(t, CampaignBrandAmbassador, RecommendCampaign(withGrade(TierMid, "A")))
	assert.Equal(t, CampaignAffiliate, RecommendCampaign(withGrade(TierNano, "A")))
	assert.Equal(t, CampaignUGC, RecommendCampaign(withGrade(TierNano, "B")))
	assert.Equal(t, CampaignProductReview, RecommendCampaign(withGrade(TierMicro, "C")))
	assert.Equal(t, CampaignProductReview, RecommendCampaign(&Influencer{Tier: TierMid}))
}
