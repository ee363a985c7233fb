package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/dropsim/dropctl/pkg/data"
	"github.com/dropsim/dropctl/pkg/influencer"
)

var (
	platformFlag = &cli.StringFlag{
		Name:  "platform",
		Usage: "Social platform [tiktok, instagram, youtube]",
		Value: "tiktok",
	}

	minFollowersFlag = &cli.IntFlag{
		Name:  "min-followers",
		Usage: "Minimum follower count",
	}

	maxFollowersFlag = &cli.IntFlag{
		Name:  "max-followers",
		Usage: "Maximum follower count",
	}

	countFlag = &cli.IntFlag{
		Name:  "count",
		Usage: "Number of influencers to discover",
		Value: 20,
	}

	nicheFlag = &cli.StringFlag{
		Name:     "niche",
		Usage:    "Product niche to match against",
		Required: true,
	}

	budgetFlag = &cli.Float64Flag{
		Name:     "budget",
		Usage:    "Campaign budget",
		Required: true,
	}

	productPriceFlag = &cli.Float64Flag{
		Name:  "product-price",
		Usage: "Retail price used for ROI projections",
		Value: 29.99,
	}

	influencersCmd = &cli.Command{
		Name:            "influencers",
		Aliases:         []string{"i"},
		Usage:           "Influencer discovery and campaign operations",
		HideHelpCommand: true,
		Subcommands: []*cli.Command{
			{
				Name:    "discover",
				Usage:   "Discover and score influencers on a platform",
				Aliases: []string{"d"},
				Action:  cmdInfluencersDiscover,
				Flags: []cli.Flag{
					platformFlag,
					minFollowersFlag,
					maxFollowersFlag,
					countFlag,
					seedFlag,
				},
			},
			{
				Name:    "match",
				Usage:   "Match influencers to a niche within a budget",
				Aliases: []string{"m"},
				Action:  cmdInfluencersMatch,
				Flags: []cli.Flag{
					platformFlag,
					nicheFlag,
					budgetFlag,
					productPriceFlag,
					limitFlag,
					seedFlag,
				},
			},
		},
	}
)

func cmdInfluencersDiscover(c *cli.Context) error {
	cfg := getConfig(c)

	d, err := influencerDiscovery(c)
	if err != nil {
		return err
	}

	found := d.Discover(
		influencer.Platform(c.String(platformFlag.Name)),
		c.Int(minFollowersFlag.Name),
		c.Int(maxFollowersFlag.Name),
		c.Int(countFlag.Name),
	)

	if err := data.SaveInfluencers(cfg.DB, found); err != nil {
		return fmt.Errorf("saving influencers: %w", err)
	}
	for _, inf := range found {
		if inf.Score != nil {
			if err := data.SaveScore(cfg.DB, "influencer", inf.ID, *inf.Score); err != nil {
				return fmt.Errorf("saving influencer score: %w", err)
			}
		}
	}
	return encode(found)
}

func cmdInfluencersMatch(c *cli.Context) error {
	cfg := getConfig(c)

	d, err := influencerDiscovery(c)
	if err != nil {
		return err
	}

	pool := d.Discover(influencer.Platform(c.String(platformFlag.Name)), 0, 0, 50)
	matched := d.Match(pool, c.String(nicheFlag.Name), c.Float64(budgetFlag.Name), c.Int(limitFlag.Name))

	if err := data.SaveInfluencers(cfg.DB, matched); err != nil {
		return fmt.Errorf("saving influencers: %w", err)
	}

	plans := make([]map[string]any, 0, len(matched))
	if len(matched) > 0 {
		costPerCreator := c.Float64(budgetFlag.Name) / float64(len(matched))
		for _, inf := range matched {
			campaign := influencer.RecommendCampaign(inf)
			plans = append(plans, map[string]any{
				"influencer": inf,
				"campaign":   campaign,
				"roi":        d.PredictROI(inf, campaign, costPerCreator, c.Float64(productPriceFlag.Name)),
			})
		}
	}
	return encode(plans)
}

func influencerDiscovery(c *cli.Context) (*influencer.Discovery, error) {
	cfg := getConfig(c)

	scorer, err := cfg.Cfg.Scorer("influencer", influencer.Weights, influencer.Grades)
	if err != nil {
		return nil, err
	}

	seed := c.Int64(seedFlag.Name)
	if seed == 0 {
		seed = cfg.Cfg.Simulation.Seed
	}
	return influencer.NewDiscoveryWithScorer(seed, scorer), nil
}
