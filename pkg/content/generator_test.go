package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropsim/dropctl/pkg/catalog"
	"github.com/dropsim/dropctl/pkg/scoring"
)

func testProduct() *catalog.Product {
	return &catalog.Product{
		ID:          "abc123",
		Name:        "Galaxy Star Projector",
		Niche:       "smart_home",
		Cost:        12,
		RetailPrice: 39.99,
		Features:    []string{"16 color modes", "Remote control"},
	}
}

func TestGenerate_TikTok(t *testing.T) {
	g := NewGenerator(42)

	piece := g.Generate(testProduct(), PlatformTikTok)
	require.NotNil(t, piece.ViralScore)

	assert.NotEmpty(t, piece.ID)
	assert.Equal(t, PlatformTikTok, piece.Platform)
	assert.NotEmpty(t, piece.Hook)
	assert.NotEmpty(t, piece.Body)
	assert.NotEmpty(t, piece.CTA)
	assert.NotEmpty(t, piece.Sound, "tiktok posts get a sound suggestion")
	assert.NotEmpty(t, piece.Hashtags)
	assert.NotContains(t, piece.Hook, "{product}")
	assert.Contains(t, []string{"viral", "hot", "warm", "cold"}, piece.ViralScore.Grade)
}

func TestGenerate_InstagramHasNoSound(t *testing.T) {
	g := NewGenerator(42)
	piece := g.Generate(testProduct(), PlatformInstagram)
	assert.Empty(t, piece.Sound)
	fit := piece.ViralScore.Factors["platform_fit"]
	assert.GreaterOrEqual(t, fit, 70.0)
	assert.LessOrEqual(t, fit, 90.0)
}

func TestGenerate_Deterministic(t *testing.T) {
	a := NewGenerator(7).Generate(testProduct(), PlatformTikTok)
	b := NewGenerator(7).Generate(testProduct(), PlatformTikTok)

	assert.Equal(t, a.Hook, b.Hook)
	assert.Equal(t, a.Body, b.Body)
	assert.Equal(t, a.ViralScore.Total, b.ViralScore.Total)
}

func TestGenerateBatch(t *testing.T) {
	g := NewGenerator(1)
	products := []*catalog.Product{testProduct(), testProduct()}
	platforms := []Platform{PlatformTikTok, PlatformInstagram}

	pieces := g.GenerateBatch(products, platforms)
	assert.Len(t, pieces, 4)
}

func TestCoefficient(t *testing.T) {
	p := &Piece{ViralScore: &scoring.ScoreResult{
		Total:   80,
		Factors: scoring.FactorSet{"shareability": 70},
	}}
	assert.InDelta(t, 1.2, p.Coefficient(), 1e-9)

	// High shareability gets the 1.2x boost.
	p.ViralScore.Factors["shareability"] = 90
	assert.InDelta(t, 1.44, p.Coefficient(), 1e-9)

	// K-factor is capped.
	p.ViralScore.Total = 200
	assert.Equal(t, 2.5, p.Coefficient())

	// No score, no coefficient.
	assert.Equal(t, 0.0, (&Piece{}).Coefficient())
}

func TestHashtags_FallbackForUnknownNiche(t *testing.T) {
	g := NewGenerator(1)
	p := testProduct()
	p.Niche = "underwater_basketweaving"

	piece := g.Generate(p, PlatformTikTok)
	assert.Equal(t, fallbackHashtags, piece.Hashtags)
}
