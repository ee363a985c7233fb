// Package media sources simulated product photography and rates each image
// with the shared weighted scorer: resolution, framing, lighting, brand color
// fit, source reliability, query relevance, and style match.
package media

import (
	"math"
	"time"

	"github.com/dropsim/dropctl/pkg/scoring"
)

// Source is a stock photography provider.
type Source string

const (
	SourceUnsplash Source = "unsplash"
	SourcePexels   Source = "pexels"
	SourcePixabay  Source = "pixabay"
	SourcePicsum   Source = "picsum"
)

// Style classifies the composition of a product shot.
type Style string

const (
	StyleLifestyle   Style = "lifestyle"
	StyleProductOnly Style = "product_only"
	StyleFlatLay     Style = "flat_lay"
	StyleInUse       Style = "in_use"
	StyleCloseup     Style = "closeup"
	StyleArtistic    Style = "artistic"
)

// Weights is the 7-factor image quality weight table.
var Weights = scoring.WeightTable{
	{Name: "resolution", Weight: 0.20},
	{Name: "aspect_ratio", Weight: 0.15},
	{Name: "brightness", Weight: 0.10},
	{Name: "color", Weight: 0.15},
	{Name: "source_reliability", Weight: 0.15},
	{Name: "relevance", Weight: 0.15},
	{Name: "style_match", Weight: 0.10},
}

// Grades maps quality totals to letter grades.
var Grades = scoring.GradeThresholds{
	{Min: 90, Label: "A+"},
	{Min: 80, Label: "A"},
	{Min: 70, Label: "B"},
	{Min: 60, Label: "C"},
	{Min: 0, Label: "D"},
}

const (
	// MinQuality is the floor below which fetched images are discarded.
	MinQuality = 60

	targetWidth  = 800
	targetHeight = 800
)

// RGB is a color channel triple.
type RGB struct {
	R uint8 `json:"r" yaml:"r"`
	G uint8 `json:"g" yaml:"g"`
	B uint8 `json:"b" yaml:"b"`
}

// brandColors is the store palette image colors are matched against.
var brandColors = []RGB{
	{99, 102, 241},
	{79, 70, 229},
	{139, 92, 246},
	{255, 255, 255},
	{31, 41, 55},
}

// Palette is the extracted color profile of an image.
type Palette struct {
	Dominant  RGB   `json:"dominant" yaml:"dominant"`
	Secondary RGB   `json:"secondary" yaml:"secondary"`
	Accent    RGB   `json:"accent" yaml:"accent"`
	All       []RGB `json:"all,omitempty" yaml:"all,omitempty"`
}

// IsLight reports whether the dominant color reads as light.
func (p *Palette) IsLight() bool {
	return p.luminance() > 0.5
}

func (p *Palette) luminance() float64 {
	d := p.Dominant
	return (0.299*float64(d.R) + 0.587*float64(d.G) + 0.114*float64(d.B)) / 255
}

// BrandCompatibility scores how closely the palette sits to the store's
// brand colors, 0-100. An empty palette scores the neutral 50.
func (p *Palette) BrandCompatibility() float64 {
	if len(p.All) == 0 {
		return 50
	}

	colors := p.All
	if len(colors) > 5 {
		colors = colors[:5]
	}

	var total float64
	for _, c := range colors {
		best := math.Inf(1)
		for _, brand := range brandColors {
			if d := colorDistance(c, brand); d < best {
				best = d
			}
		}
		total += math.Max(0, 100-best)
	}
	return total / float64(len(colors))
}

func colorDistance(a, b RGB) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// Image is one fetched product photo with its quality rating.
type Image struct {
	ID             string               `json:"id" yaml:"id"`
	ProductID      string               `json:"product_id" yaml:"product_id"`
	URL            string               `json:"url" yaml:"url"`
	Source         Source               `json:"source" yaml:"source"`
	Style          Style                `json:"style" yaml:"style"`
	Query          string               `json:"query" yaml:"query"`
	Width          int                  `json:"width" yaml:"width"`
	Height         int                  `json:"height" yaml:"height"`
	AltText        string               `json:"alt_text" yaml:"alt_text"`
	SEODescription string               `json:"seo_description" yaml:"seo_description"`
	Palette        *Palette             `json:"palette,omitempty" yaml:"palette,omitempty"`
	Quality        *scoring.ScoreResult `json:"quality,omitempty" yaml:"quality,omitempty"`
	FetchedAt      time.Time            `json:"fetched_at" yaml:"fetched_at"`
}

// AspectRatio returns width over height, 0 when height is unset.
func (i *Image) AspectRatio() float64 {
	if i.Height == 0 {
		return 0
	}
	return float64(i.Width) / float64(i.Height)
}

// IsSquare reports whether the image is close enough to 1:1 for the catalog
// grid.
func (i *Image) IsSquare() bool {
	return math.Abs(i.AspectRatio()-1) < 0.1
}
