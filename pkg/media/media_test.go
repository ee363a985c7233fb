package media

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropsim/dropctl/pkg/scoring"
)

func TestFetchForProduct(t *testing.T) {
	f := NewFetcher(42)

	images, err := f.FetchForProduct("galaxy-star-projector", 0)
	require.NoError(t, err)
	require.NotEmpty(t, images)
	assert.LessOrEqual(t, len(images), DefaultMaxImages)

	for _, img := range images {
		require.NotNil(t, img.Quality)
		assert.GreaterOrEqual(t, img.Quality.Total, float64(MinQuality))
		assert.Equal(t, "galaxy-star-projector", img.ProductID)
		assert.NotEmpty(t, img.URL)
		assert.NotEmpty(t, img.AltText)
		assert.Contains(t, img.AltText, "Galaxy Star Projector")
		assert.Contains(t, []string{"A+", "A", "B", "C", "D"}, img.Quality.Grade)
	}

	// Best quality first.
	for i := 1; i < len(images); i++ {
		assert.GreaterOrEqual(t, images[i-1].Quality.Total, images[i].Quality.Total)
	}
}

func TestFetchForProduct_UnknownSlug(t *testing.T) {
	_, err := NewFetcher(1).FetchForProduct("underwater-basketweaving", 5)
	assert.Error(t, err)
}

func TestFetchForProduct_Deterministic(t *testing.T) {
	a, err := NewFetcher(7).FetchForProduct("led-strip-lights", 5)
	require.NoError(t, err)
	b, err := NewFetcher(7).FetchForProduct("led-strip-lights", 5)
	require.NoError(t, err)

	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].URL, b[i].URL)
		assert.Equal(t, a[i].Quality.Total, b[i].Quality.Total)
	}
}

func TestFetchAll(t *testing.T) {
	all, err := NewFetcher(3).FetchAll(4)
	require.NoError(t, err)
	assert.Len(t, all, len(Products()))
	for slug, images := range all {
		assert.LessOrEqual(t, len(images), 4, slug)
	}
}

func TestAnalyze_StrictScorerOverride(t *testing.T) {
	strict := scoring.Must(Weights, scoring.GradeThresholds{
		{Min: 99, Label: "A+"},
		{Min: 0, Label: "D"},
	})
	img := &Image{
		Source: SourceUnsplash,
		Style:  StyleLifestyle,
		Query:  "galaxy projector bedroom aesthetic",
		Width:  800,
		Height: 800,
	}
	s := searches["galaxy-star-projector"]

	def := NewAnalyzer().Analyze(img, s)
	got := NewAnalyzerWithScorer(strict).Analyze(img, s)

	assert.Equal(t, def.Total, got.Total)
	assert.Equal(t, "D", got.Grade)
}

func TestScoreResolution(t *testing.T) {
	assert.Equal(t, 100.0, scoreResolution(800, 800))
	assert.Equal(t, 100.0, scoreResolution(1200, 800))
	assert.Equal(t, 80.0, scoreResolution(640, 640))
	assert.Equal(t, 60.0, scoreResolution(400, 400))
	assert.Equal(t, 40.0, scoreResolution(320, 240))
}

func TestScoreAspectRatio(t *testing.T) {
	square := &Image{Width: 800, Height: 800}
	assert.True(t, square.IsSquare())
	assert.Equal(t, 100.0, scoreAspectRatio(square.AspectRatio()))

	wide := &Image{Width: 1120, Height: 800}
	assert.False(t, wide.IsSquare())
	assert.Equal(t, 55.0, scoreAspectRatio(wide.AspectRatio()))

	assert.Equal(t, 40.0, scoreAspectRatio(1.5))
}

func TestScoreBrightness(t *testing.T) {
	assert.Equal(t, 70.0, scoreBrightness(nil))

	mid := &Palette{Dominant: RGB{139, 92, 246}}
	assert.Equal(t, 100.0, scoreBrightness(mid))

	dark := &Palette{Dominant: RGB{10, 10, 10}}
	assert.Equal(t, 60.0, scoreBrightness(dark))
	assert.False(t, dark.IsLight())

	light := &Palette{Dominant: RGB{225, 225, 225}}
	assert.Equal(t, 80.0, scoreBrightness(light))
	assert.True(t, light.IsLight())
}

func TestScoreRelevance(t *testing.T) {
	keywords := []string{"galaxy", "stars", "bedroom"}
	avoid := []string{"daylight"}

	assert.Equal(t, 40.0, scoreRelevance("galaxy projector bedroom aesthetic", keywords, avoid))
	assert.Equal(t, 20.0, scoreRelevance("galaxy stars daylight", keywords, avoid))
	assert.Equal(t, 0.0, scoreRelevance("daylight outdoor scene", keywords, avoid))
}

func TestScoreStyleMatch(t *testing.T) {
	assert.Equal(t, 100.0, scoreStyleMatch(StyleLifestyle, StyleLifestyle))
	assert.Equal(t, 75.0, scoreStyleMatch(StyleInUse, StyleLifestyle))
	assert.Equal(t, 50.0, scoreStyleMatch(StyleCloseup, StyleLifestyle))
}

func TestBrandCompatibility(t *testing.T) {
	empty := &Palette{}
	assert.Equal(t, 50.0, empty.BrandCompatibility())

	onBrand := &Palette{All: []RGB{{99, 102, 241}}}
	assert.Equal(t, 100.0, onBrand.BrandCompatibility())

	offBrand := &Palette{All: []RGB{{0, 255, 0}}}
	assert.Less(t, offBrand.BrandCompatibility(), 50.0)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Cat Water Fountain", displayName("cat-water-fountain"))
}

func TestAltText_NoVerbArtifacts(t *testing.T) {
	f := NewFetcher(11)
	for _, slug := range Products() {
		images, err := f.FetchForProduct(slug, 3)
		require.NoError(t, err)
		for _, img := range images {
			assert.False(t, strings.Contains(img.AltText, "%"), img.AltText)
			assert.NotEmpty(t, img.SEODescription)
		}
	}
}
