package cli

import (
	"database/sql"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/dropsim/dropctl/pkg/catalog"
	"github.com/dropsim/dropctl/pkg/data"
	"github.com/dropsim/dropctl/pkg/media"
)

var (
	limitFlag = &cli.IntFlag{
		Name:  "limit",
		Usage: "Limits number of results returned",
		Value: 10,
	}

	minScoreFlag = &cli.Float64Flag{
		Name:  "min-score",
		Usage: "Minimum composite score for winner selection",
		Value: 70,
	}

	seedFlag = &cli.Int64Flag{
		Name:  "seed",
		Usage: "Seed for the market simulation (same seed, same market)",
	}

	winnersFlag = &cli.BoolFlag{
		Name:  "winners",
		Usage: "Only show products passing the winner criteria",
	}

	productFlag = &cli.StringFlag{
		Name:  "product",
		Usage: "Product slug to source images for (all profiled products when omitted)",
	}

	maxImagesFlag = &cli.IntFlag{
		Name:  "max-images",
		Usage: "Maximum images to keep per product",
		Value: media.DefaultMaxImages,
	}

	researchCmd = &cli.Command{
		Name:            "research",
		Aliases:         []string{"r"},
		Usage:           "Product research operations",
		HideHelpCommand: true,
		Subcommands: []*cli.Command{
			{
				Name:    "products",
				Usage:   "Discover and score trending products",
				Aliases: []string{"p"},
				Action:  cmdResearchProducts,
				Flags: []cli.Flag{
					limitFlag,
					minScoreFlag,
					seedFlag,
					winnersFlag,
				},
			},
			{
				Name:    "niches",
				Usage:   "List the tracked niches",
				Aliases: []string{"n"},
				Action:  cmdResearchNiches,
			},
			{
				Name:    "images",
				Usage:   "Source and grade product photography",
				Aliases: []string{"i"},
				Action:  cmdResearchImages,
				Flags: []cli.Flag{
					productFlag,
					maxImagesFlag,
					seedFlag,
				},
			},
		},
	}
)

func cmdResearchProducts(c *cli.Context) error {
	cfg := getConfig(c)

	scorer, err := cfg.Cfg.Scorer("product", catalog.ProductWeights, catalog.ProductGrades)
	if err != nil {
		return err
	}

	seed := c.Int64(seedFlag.Name)
	if seed == 0 {
		seed = cfg.Cfg.Simulation.Seed
	}

	discovery := catalog.NewDiscoveryWithScorer(seed, scorer)
	products := discovery.Discover(c.Int(limitFlag.Name))

	if c.Bool(winnersFlag.Name) {
		products = discovery.Winners(products, c.Float64(minScoreFlag.Name))
	}

	if err := data.SaveProducts(cfg.DB, products); err != nil {
		return fmt.Errorf("saving products: %w", err)
	}
	for _, p := range products {
		if p.Score != nil {
			if err := data.SaveScore(cfg.DB, "product", p.ID, *p.Score); err != nil {
				return fmt.Errorf("saving product score: %w", err)
			}
		}
	}

	return encode(products)
}

func cmdResearchNiches(_ *cli.Context) error {
	return encode(catalog.Niches())
}

func cmdResearchImages(c *cli.Context) error {
	cfg := getConfig(c)

	scorer, err := cfg.Cfg.Scorer("image", media.Weights, media.Grades)
	if err != nil {
		return err
	}

	seed := c.Int64(seedFlag.Name)
	if seed == 0 {
		seed = cfg.Cfg.Simulation.Seed
	}

	fetcher := media.NewFetcherWithScorer(seed, scorer)
	max := c.Int(maxImagesFlag.Name)

	if slug := c.String(productFlag.Name); slug != "" {
		images, err := fetcher.FetchForProduct(slug, max)
		if err != nil {
			return err
		}
		if err := saveImageScores(cfg.DB, images); err != nil {
			return err
		}
		return encode(images)
	}

	all, err := fetcher.FetchAll(max)
	if err != nil {
		return err
	}
	for _, images := range all {
		if err := saveImageScores(cfg.DB, images); err != nil {
			return err
		}
	}
	return encode(all)
}

func saveImageScores(db *sql.DB, images []*media.Image) error {
	for _, img := range images {
		if img.Quality == nil {
			continue
		}
		if err := data.SaveScore(db, "image", img.ID, *img.Quality); err != nil {
			return fmt.Errorf("saving image score: %w", err)
		}
	}
	return nil
}
