package media

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dropsim/dropctl/pkg/scoring"
)

// Search is the sourcing profile for one product: what to look for, what
// the shot should look like, and what disqualifies it.
type Search struct {
	Queries  []string `json:"queries" yaml:"queries"`
	Style    Style    `json:"style" yaml:"style"`
	Keywords []string `json:"keywords" yaml:"keywords"`
	Avoid    []string `json:"avoid" yaml:"avoid"`
}

var searches = map[string]Search{
	"galaxy-star-projector": {
		Queries: []string{
			"galaxy projector bedroom aesthetic",
			"starry night ceiling lights",
			"aurora borealis room",
			"nebula projector light",
			"cosmic bedroom decor",
		},
		Style:    StyleLifestyle,
		Keywords: []string{"galaxy", "stars", "night", "bedroom", "aesthetic", "purple", "blue"},
		Avoid:    []string{"daylight", "outdoor", "sunlight"},
	},
	"led-strip-lights": {
		Queries: []string{
			"LED strip bedroom aesthetic",
			"RGB gaming setup lights",
			"neon room aesthetic",
			"colorful LED room",
			"gaming room purple pink",
		},
		Style:    StyleInUse,
		Keywords: []string{"led", "neon", "rgb", "gaming", "purple", "pink", "glow"},
		Avoid:    []string{"daylight", "office", "bright"},
	},
	"posture-corrector": {
		Queries: []string{
			"good posture woman",
			"back posture support",
			"office ergonomics desk",
			"spine health wellness",
			"standing straight posture",
		},
		Style:    StyleInUse,
		Keywords: []string{"posture", "back", "straight", "healthy", "wellness"},
		Avoid:    []string{"slouching", "pain", "injury"},
	},
	"cat-water-fountain": {
		Queries: []string{
			"cat drinking water fountain",
			"pet water fountain",
			"cat hydration",
			"pet drinking bowl modern",
			"automatic pet fountain",
		},
		Style:    StyleLifestyle,
		Keywords: []string{"cat", "pet", "water", "drinking", "fountain", "cute"},
		Avoid:    []string{"dog bowl", "dirty", "old"},
	},
	"portable-blender": {
		Queries: []string{
			"smoothie portable blender",
			"protein shake gym",
			"healthy fruit smoothie",
			"fitness drink bottle",
			"blend healthy drink",
		},
		Style:    StyleLifestyle,
		Keywords: []string{"smoothie", "healthy", "fruit", "protein", "fitness", "fresh"},
		Avoid:    []string{"messy", "dirty", "old"},
	},
	"magnetic-phone-mount": {
		Queries: []string{
			"car phone mount dashboard",
			"magnetic phone holder car",
			"phone mount driving",
			"car interior phone holder",
			"gps phone mount",
		},
		Style:    StyleInUse,
		Keywords: []string{"car", "mount", "phone", "dashboard", "driving", "magnetic"},
		Avoid:    []string{"old car", "messy", "dirty"},
	},
	"acupressure-mat": {
		Queries: []string{
			"acupressure mat yoga",
			"relaxation mat wellness",
			"spike mat therapy",
			"meditation mat self-care",
			"muscle relaxation mat",
		},
		Style:    StyleLifestyle,
		Keywords: []string{"acupressure", "relaxation", "wellness", "yoga", "calm", "zen"},
		Avoid:    []string{"pain", "injury", "medical"},
	},
}

// dominantPool is the set of dominant colors the palette simulation draws
// from, spanning dark bedroom shots through bright studio backgrounds.
var dominantPool = []RGB{
	{31, 41, 55},
	{76, 29, 149},
	{99, 102, 241},
	{139, 92, 246},
	{190, 190, 200},
	{230, 230, 235},
	{250, 250, 250},
}

var sources = []Source{SourceUnsplash, SourcePexels, SourcePixabay, SourcePicsum}

// DefaultMaxImages caps how many images one product sourcing run keeps.
const DefaultMaxImages = 10

// Fetcher simulates stock photo search across providers and keeps only the
// shots that clear the quality floor. A fixed seed yields a fixed shoot.
type Fetcher struct {
	rng      *rand.Rand
	analyzer *Analyzer
	now      func() time.Time
}

// NewFetcher returns a Fetcher backed by the given seed.
func NewFetcher(seed int64) *Fetcher {
	return &Fetcher{
		rng:      rand.New(rand.NewSource(seed)),
		analyzer: NewAnalyzer(),
		now:      time.Now,
	}
}

// NewFetcherWithScorer allows a config-overridden quality scorer.
func NewFetcherWithScorer(seed int64, s *scoring.Scorer) *Fetcher {
	f := NewFetcher(seed)
	f.analyzer = NewAnalyzerWithScorer(s)
	return f
}

// Products returns the product slugs with a sourcing profile, sorted.
func Products() []string {
	out := make([]string, 0, len(searches))
	for slug := range searches {
		out = append(out, slug)
	}
	sort.Strings(out)
	return out
}

// FetchForProduct sources up to max images for a product slug, best quality
// first. Images below the quality floor are dropped.
func (f *Fetcher) FetchForProduct(productID string, max int) ([]*Image, error) {
	search, ok := searches[productID]
	if !ok {
		return nil, fmt.Errorf("no sourcing profile for product %q", productID)
	}
	if max <= 0 {
		max = DefaultMaxImages
	}

	var out []*Image
	for _, query := range search.Queries {
		for _, src := range sources {
			img := f.simulate(productID, query, src, search.Style)
			result := f.analyzer.Analyze(img, search)
			if result.Total < MinQuality {
				continue
			}
			img.Quality = &result
			out = append(out, img)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Quality.Total > out[j].Quality.Total
	})
	if len(out) > max {
		out = out[:max]
	}
	return out, nil
}

// FetchAll sources images for every profiled product.
func (f *Fetcher) FetchAll(max int) (map[string][]*Image, error) {
	out := make(map[string][]*Image, len(searches))
	for _, slug := range Products() {
		images, err := f.FetchForProduct(slug, max)
		if err != nil {
			return nil, err
		}
		out[slug] = images
	}
	return out, nil
}

func (f *Fetcher) simulate(productID, query string, src Source, target Style) *Image {
	width, height := f.dimensions()
	style := f.detectedStyle(target)
	palette := f.palette()

	img := &Image{
		ID:        uuid.NewString()[:8],
		ProductID: productID,
		URL:       f.urlFor(src, query, width, height),
		Source:    src,
		Style:     style,
		Query:     query,
		Width:     width,
		Height:    height,
		Palette:   palette,
		FetchedAt: f.now().UTC(),
	}
	img.AltText, img.SEODescription = f.altText(productID, query, style)
	return img
}

// dimensions skews toward the 800x800 target with occasional landscape and
// undersized results, like real search pages return.
func (f *Fetcher) dimensions() (int, int) {
	switch roll := f.rng.Float64(); {
	case roll < 0.5:
		return 800, 800
	case roll < 0.7:
		return 1200, 1200
	case roll < 0.85:
		return 1200, 800
	case roll < 0.95:
		return 640, 640
	default:
		return 400, 300
	}
}

func (f *Fetcher) detectedStyle(target Style) Style {
	roll := f.rng.Float64()
	switch {
	case roll < 0.6:
		return target
	case roll < 0.85:
		if neighbors := compatibleStyles[target]; len(neighbors) > 0 {
			return neighbors[f.rng.Intn(len(neighbors))]
		}
		return target
	default:
		all := []Style{StyleLifestyle, StyleProductOnly, StyleFlatLay, StyleInUse, StyleCloseup, StyleArtistic}
		return all[f.rng.Intn(len(all))]
	}
}

func (f *Fetcher) palette() *Palette {
	pick := func() RGB { return dominantPool[f.rng.Intn(len(dominantPool))] }
	p := &Palette{
		Dominant:  pick(),
		Secondary: pick(),
		Accent:    pick(),
	}
	p.All = []RGB{p.Dominant, p.Secondary, p.Accent}
	return p
}

func (f *Fetcher) urlFor(src Source, query string, width, height int) string {
	id := f.rng.Intn(1_000_000)
	switch src {
	case SourceUnsplash:
		return fmt.Sprintf("https://images.unsplash.com/photo-%06d?w=%d&h=%d", id, width, height)
	case SourcePexels:
		return fmt.Sprintf("https://images.pexels.com/photos/%d/pexels-photo-%d.jpeg", id, id)
	case SourcePixabay:
		return fmt.Sprintf("https://pixabay.com/get/g%06d_%dx%d.jpg", id, width, height)
	default:
		return fmt.Sprintf("https://picsum.photos/seed/%s-%d/%d/%d", slugify(query), id, width, height)
	}
}

var altTemplates = map[Style][]string{
	StyleLifestyle: {
		"%[1]s in a modern %[2]s setting",
		"Stylish %[1]s creating ambient atmosphere",
		"%[1]s lifestyle shot showcasing elegant design",
	},
	StyleInUse: {
		"Person using %[1]s for %[2]s",
		"%[1]s being demonstrated in real-world use",
		"Active use of %[1]s showing functionality",
	},
	StyleProductOnly: {
		"%[1]s product shot on clean background",
		"High-quality %[1]s with detailed view",
		"Professional %[1]s product photography",
	},
	StyleFlatLay: {
		"%[1]s flat lay arrangement with accessories",
		"Top-down view of %[1]s and complementary items",
		"Aesthetic flat lay featuring %[1]s",
	},
	StyleCloseup: {
		"Close-up detail of %[1]s craftsmanship",
		"Macro shot showing %[1]s quality",
		"Detailed view of %[1]s features",
	},
	StyleArtistic: {
		"Artistic photography of %[1]s",
		"Creative shot highlighting %[1]s aesthetics",
		"Visually striking %[1]s composition",
	},
}

func (f *Fetcher) altText(productID, query string, style Style) (string, string) {
	name := displayName(productID)
	words := strings.Fields(query)
	context := query
	if len(words) > 0 {
		if style == StyleInUse {
			context = words[len(words)-1]
		} else {
			context = words[0]
		}
	}

	templates, ok := altTemplates[style]
	if !ok {
		templates = altTemplates[StyleLifestyle]
	}
	alt := fmt.Sprintf(templates[f.rng.Intn(len(templates))], name, context)

	seo := fmt.Sprintf(
		"Shop our %s - perfect for %s lovers. High-quality %s with fast shipping and easy returns.",
		name, context, strings.ToLower(name),
	)
	return alt, seo
}

// displayName turns a product slug into a human readable name.
func displayName(slug string) string {
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func slugify(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "-")
}
