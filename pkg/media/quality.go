package media

import (
	"math"
	"strings"

	"github.com/dropsim/dropctl/pkg/scoring"
)

// sourceReliability ranks providers by how consistently they return usable
// product photography.
var sourceReliability = map[Source]float64{
	SourceUnsplash: 95,
	SourcePexels:   90,
	SourcePixabay:  85,
	SourcePicsum:   70,
}

// compatibleStyles lists acceptable substitutes when a shot's detected style
// is not the one the search asked for.
var compatibleStyles = map[Style][]Style{
	StyleLifestyle:   {StyleInUse, StyleArtistic},
	StyleInUse:       {StyleLifestyle},
	StyleProductOnly: {StyleFlatLay, StyleCloseup},
	StyleFlatLay:     {StyleProductOnly},
}

// Analyzer rates fetched images against a product search profile.
type Analyzer struct {
	scorer *scoring.Scorer
}

// NewAnalyzer returns an Analyzer using the stock weight and grade tables.
func NewAnalyzer() *Analyzer {
	return &Analyzer{scorer: scoring.Must(Weights, Grades)}
}

// NewAnalyzerWithScorer allows a config-overridden scorer.
func NewAnalyzerWithScorer(s *scoring.Scorer) *Analyzer {
	return &Analyzer{scorer: s}
}

// Analyze scores one image against the search that produced it.
func (a *Analyzer) Analyze(img *Image, s Search) scoring.ScoreResult {
	f := scoring.FactorSet{
		"resolution":         scoreResolution(img.Width, img.Height),
		"aspect_ratio":       scoreAspectRatio(img.AspectRatio()),
		"brightness":         scoreBrightness(img.Palette),
		"color":              scoreColors(img.Palette),
		"source_reliability": reliabilityFor(img.Source),
		"relevance":          scoreRelevance(img.Query, s.Keywords, s.Avoid),
		"style_match":        scoreStyleMatch(img.Style, s.Style),
	}
	return a.scorer.Score(f)
}

func reliabilityFor(src Source) float64 {
	if v, ok := sourceReliability[src]; ok {
		return v
	}
	return 70
}

// scoreResolution measures pixel count against the 800x800 catalog target.
func scoreResolution(width, height int) float64 {
	pixels := width * height
	target := targetWidth * targetHeight

	switch {
	case pixels >= target:
		return 100
	case pixels >= target/2:
		return 80
	case pixels >= target/4:
		return 60
	default:
		return 40
	}
}

// scoreAspectRatio prefers square images for the catalog grid.
func scoreAspectRatio(ratio float64) float64 {
	deviation := math.Abs(ratio - 1)

	switch {
	case deviation < 0.1:
		return 100
	case deviation < 0.2:
		return 85
	case deviation < 0.3:
		return 70
	case deviation < 0.5:
		return 55
	default:
		return 40
	}
}

// scoreBrightness rewards well-lit shots, luminance 0.4-0.8.
func scoreBrightness(p *Palette) float64 {
	if p == nil {
		return 70
	}

	l := p.luminance()
	switch {
	case l >= 0.4 && l <= 0.8:
		return 100
	case l >= 0.3 && l <= 0.9:
		return 80
	default:
		return 60
	}
}

func scoreColors(p *Palette) float64 {
	if p == nil {
		return 70
	}
	return p.BrandCompatibility()
}

// scoreRelevance counts search keywords present in the query, 20 points each,
// minus 20 per avoid word hit.
func scoreRelevance(query string, keywords, avoid []string) float64 {
	q := strings.ToLower(query)

	var score float64
	for _, kw := range keywords {
		if strings.Contains(q, strings.ToLower(kw)) {
			score += 20
		}
	}
	if score > 100 {
		score = 100
	}

	for _, word := range avoid {
		if strings.Contains(q, strings.ToLower(word)) {
			score -= 20
		}
	}
	if score < 0 {
		score = 0
	}
	return score
}

func scoreStyleMatch(detected, target Style) float64 {
	if detected == target {
		return 100
	}
	for _, s := range compatibleStyles[target] {
		if detected == s {
			return 75
		}
	}
	return 50
}
