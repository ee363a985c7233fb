package content

import (
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dropsim/dropctl/pkg/catalog"
	"github.com/dropsim/dropctl/pkg/scoring"
)

var hooks = map[HookType][]string{
	HookCuriosity: {
		"Wait why is nobody talking about this...",
		"This just changed everything for me",
		"You've been doing it wrong this whole time",
		"The thing nobody tells you about {product}",
		"3AM purchase but it actually slaps",
	},
	HookPOV: {
		"POV: You finally give in and buy the {product}",
		"POV: Your room after the {product} arrives",
		"POV: When the thing from TikTok is actually good",
		"POV: Your life after discovering {product}",
	},
	HookTransformation: {
		"Room before vs after the {product}",
		"The glow up my room needed",
		"Before this {product} vs after (the difference is crazy)",
		"How I transformed my room for under $50",
	},
	HookSocialProof: {
		"Over 50,000 people bought this last month",
		"This went viral for a reason",
		"Everyone's been asking about this {product}",
		"You guys were RIGHT about this",
	},
	HookRelatability: {
		"When you finally buy the thing everyone's been talking about",
		"Things that make no sense but you need anyway",
		"The purchase my bank account didn't need to see",
	},
	HookStory: {
		"Story time: I bought this at 3AM and...",
		"I was today years old when I found out about this",
		"I almost didn't buy this and I'm so glad I did",
	},
	HookQuestion: {
		"Why did no one tell me this existed?",
		"How is this not more popular?",
		"Where has this been all my life?",
	},
	HookListicle: {
		"Things that will change your life for under $40",
		"Products that live in my head rent free",
		"Purchases that actually improved my life",
	},
}

var ctas = map[Platform][]string{
	PlatformTikTok: {
		"Link in bio!",
		"Comment 'LINK' and I'll DM you!",
		"Save this for later!",
		"Tag someone who needs this!",
	},
	PlatformInstagram: {
		"Link in bio!",
		"Save this post!",
		"Share to your stories!",
		"Double tap if you agree!",
	},
	PlatformTwitter: {
		"Link in bio",
		"RT if you agree",
		"Follow for more finds like this",
	},
}

var trendingSounds = []string{
	"original sound - aestheticallypleasing",
	"Aesthetic - Tollan Kim",
	"Snowfall - Oneheart & reidenshi",
	"Sweater Weather (Slowed)",
	"original sound - room transformation",
}

var hashtagDB = map[string]map[Platform][]string{
	"smart_home": {
		PlatformTikTok:    {"#galaxyprojector", "#roomdecor", "#aestheticroom", "#ledlights", "#fyp", "#viral", "#roomtour", "#tiktokfinds"},
		PlatformInstagram: {"#roomdecor", "#aestheticroom", "#homedecor", "#interiordesign", "#homeinspo", "#reels", "#explore"},
	},
	"health_wellness": {
		PlatformTikTok:    {"#wellnesstok", "#selfcare", "#healthtok", "#wellness", "#fyp", "#viral", "#selfcaretips"},
		PlatformInstagram: {"#wellness", "#selfcare", "#healthylifestyle", "#selflove", "#mindfulness", "#reels", "#explore"},
	},
	"beauty_tools": {
		PlatformTikTok:    {"#beautytok", "#skincare", "#glowup", "#beautyhacks", "#fyp", "#viral", "#beautyfinds"},
		PlatformInstagram: {"#skincare", "#beauty", "#glowingskin", "#beautytips", "#reels", "#beautycommunity", "#explore"},
	},
}

var fallbackHashtags = []string{"#fyp", "#viral", "#trending", "#musthaves", "#tiktokfinds"}

// Generator produces scored posts for products. A fixed seed yields fixed
// content.
type Generator struct {
	rng    *rand.Rand
	scorer *scoring.Scorer
	now    func() time.Time
}

// NewGenerator returns a Generator backed by the given seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		rng:    rand.New(rand.NewSource(seed)),
		scorer: scoring.Must(Weights, Tiers),
		now:    time.Now,
	}
}

// NewGeneratorWithScorer allows a config-overridden scorer.
func NewGeneratorWithScorer(seed int64, s *scoring.Scorer) *Generator {
	g := NewGenerator(seed)
	g.scorer = s
	return g
}

// Generate builds one scored post for a product on a platform.
func (g *Generator) Generate(p *catalog.Product, platform Platform) *Piece {
	hookType := g.pickHookType(p, platform)
	hook := g.pickHook(hookType, p)

	piece := &Piece{
		ID:          uuid.NewString()[:8],
		Platform:    platform,
		ProductName: p.Name,
		HookType:    hookType,
		Hook:        hook,
		Body:        g.body(p, hookType),
		CTA:         g.pickCTA(platform),
		Hashtags:    g.hashtags(p.Niche, platform),
		CreatedAt:   g.now().UTC(),
	}
	if platform == PlatformTikTok {
		piece.Sound = trendingSounds[g.rng.Intn(len(trendingSounds))]
	}

	result := g.scorer.Score(g.viralFactors(piece))
	piece.ViralScore = &result
	return piece
}

// GenerateBatch builds one post per product across the given platforms.
func (g *Generator) GenerateBatch(products []*catalog.Product, platforms []Platform) []*Piece {
	pieces := make([]*Piece, 0, len(products)*len(platforms))
	for _, p := range products {
		for _, platform := range platforms {
			pieces = append(pieces, g.Generate(p, platform))
		}
	}
	return pieces
}

func (g *Generator) pickHookType(p *catalog.Product, platform Platform) HookType {
	name := strings.ToLower(p.Name)

	pick := func(opts ...HookType) HookType {
		return opts[g.rng.Intn(len(opts))]
	}

	switch {
	case containsAny(name, "projector", "light", "led", "lamp"):
		return pick(HookTransformation, HookPOV, HookCuriosity)
	case containsAny(name, "posture", "massage", "wellness", "sleep"):
		return pick(HookSocialProof, HookStory, HookTransformation)
	case containsAny(name, "phone", "charger", "mount", "ring light"):
		return pick(HookListicle, HookCuriosity, HookQuestion)
	case platform == PlatformTikTok:
		return pick(HookPOV, HookCuriosity, HookRelatability)
	default:
		return pick(HookCuriosity, HookSocialProof, HookQuestion)
	}
}

func (g *Generator) pickHook(ht HookType, p *catalog.Product) string {
	options := hooks[ht]
	hook := options[g.rng.Intn(len(options))]
	return strings.ReplaceAll(hook, "{product}", p.Name)
}

func (g *Generator) pickCTA(platform Platform) string {
	options, ok := ctas[platform]
	if !ok {
		options = ctas[PlatformTikTok]
	}
	return options[g.rng.Intn(len(options))]
}

func (g *Generator) body(p *catalog.Product, ht HookType) string {
	var b string
	switch ht {
	case HookTransformation:
		b = "My room literally went from 0 to 100 with this " + p.Name
	case HookPOV:
		b = "The way this " + p.Name + " transformed my entire vibe"
	case HookCuriosity:
		b = "I finally caved and got the " + p.Name + " everyone's been talking about..."
	case HookSocialProof:
		b = "Over 10k people can't be wrong about this " + p.Name
	case HookStory:
		b = "Best 3AM purchase I've ever made - this " + p.Name + " is everything"
	default:
		b = "This " + p.Name + " is an absolute game-changer!"
	}
	if len(p.Features) > 0 {
		b += "\n\n" + p.Features[0] + " hits different"
	}
	return b
}

func (g *Generator) hashtags(niche string, platform Platform) []string {
	if byPlatform, ok := hashtagDB[niche]; ok {
		if tags, ok := byPlatform[platform]; ok {
			return tags
		}
	}
	return fallbackHashtags
}

func (g *Generator) viralFactors(piece *Piece) scoring.FactorSet {
	f := make(scoring.FactorSet, len(Weights))
	lowerHook := strings.ToLower(piece.Hook)
	lowerAll := lowerHook + " " + strings.ToLower(piece.Body)

	triggers := 0
	for _, t := range []string{"wait", "pov", "nobody", "secret", "why"} {
		if strings.Contains(lowerHook, t) {
			triggers++
		}
	}
	f["hook_strength"] = minf(100, 60+float64(triggers)*15)

	emotions := 0
	for _, e := range []string{"literally", "obsessed", "omg", "caved", "everything", "game-changer"} {
		if strings.Contains(lowerAll, e) {
			emotions++
		}
	}
	f["emotional_trigger"] = minf(100, 50+float64(emotions)*12)

	if containsAny(lowerHook, "everyone", "nobody", "why", "how") {
		f["shareability"] = 75 + g.rng.Float64()*20
	} else {
		f["shareability"] = 55 + g.rng.Float64()*20
	}

	if piece.Platform == PlatformTikTok {
		if piece.Sound != "" {
			f["platform_fit"] = 85
		} else {
			f["platform_fit"] = 70
		}
	} else {
		f["platform_fit"] = 70 + g.rng.Float64()*20
	}

	f["trend_alignment"] = 60 + g.rng.Float64()*30

	if containsAny(strings.ToLower(piece.CTA), "link in bio", "comment", "save", "tag") {
		f["cta_effectiveness"] = 75 + g.rng.Float64()*20
	} else {
		f["cta_effectiveness"] = 50 + g.rng.Float64()*20
	}

	return f
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
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
