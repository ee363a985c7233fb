package cli

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/dropsim/dropctl/pkg/catalog"
	"github.com/dropsim/dropctl/pkg/content"
	"github.com/dropsim/dropctl/pkg/data"
)

var (
	platformsFlag = &cli.StringFlag{
		Name:  "platforms",
		Usage: "Comma separated platforms [tiktok, instagram]",
		Value: "tiktok,instagram",
	}

	productsFlag = &cli.IntFlag{
		Name:  "products",
		Usage: "Number of top products to generate content for",
		Value: 3,
	}

	contentCmd = &cli.Command{
		Name:            "content",
		Aliases:         []string{"c"},
		Usage:           "Content generation operations",
		HideHelpCommand: true,
		Subcommands: []*cli.Command{
			{
				Name:    "generate",
				Usage:   "Generate scored posts for the top products",
				Aliases: []string{"g"},
				Action:  cmdContentGenerate,
				Flags: []cli.Flag{
					platformsFlag,
					productsFlag,
					seedFlag,
				},
			},
		},
	}
)

func cmdContentGenerate(c *cli.Context) error {
	cfg := getConfig(c)

	scorer, err := cfg.Cfg.Scorer("content", content.Weights, content.Tiers)
	if err != nil {
		return err
	}

	seed := c.Int64(seedFlag.Name)
	if seed == 0 {
		seed = cfg.Cfg.Simulation.Seed
	}

	platforms := make([]content.Platform, 0, 2)
	for _, p := range strings.Split(c.String(platformsFlag.Name), ",") {
		platforms = append(platforms, content.Platform(strings.TrimSpace(p)))
	}

	products := catalog.NewDiscovery(seed).Discover(c.Int(productsFlag.Name))
	pieces := content.NewGeneratorWithScorer(seed, scorer).GenerateBatch(products, platforms)

	if err := data.SaveContent(cfg.DB, pieces); err != nil {
		return fmt.Errorf("saving content: %w", err)
	}
	for _, p := range pieces {
		if p.ViralScore != nil {
			if err := data.SaveScore(cfg.DB, "content", p.ID, *p.ViralScore); err != nil {
				return fmt.Errorf("saving content score: %w", err)
			}
		}
	}
	return encode(pieces)
}
