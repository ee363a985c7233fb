package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/dropsim/dropctl/pkg/data"
	"github.com/dropsim/dropctl/pkg/supplier"
)

var (
	productNameFlag = &cli.StringFlag{
		Name:  "product",
		Usage: "Product name for the analysis",
		Value: "unnamed product",
	}

	costFlag = &cli.Float64Flag{
		Name:     "cost",
		Usage:    "Product cost from the supplier",
		Required: true,
	}

	priceFlag = &cli.Float64Flag{
		Name:     "price",
		Usage:    "Retail selling price",
		Required: true,
	}

	shippingCostFlag = &cli.Float64Flag{
		Name:  "shipping",
		Usage: "Shipping cost per unit",
	}

	gatewayFlag = &cli.StringFlag{
		Name:  "gateway",
		Usage: "Payment gateway [paypal, stripe]",
		Value: "paypal",
	}

	targetMarginFlag = &cli.Float64Flag{
		Name:  "target-margin",
		Usage: "Target profit margin for optimal price suggestion",
		Value: 0.45,
	}

	suppliersCmd = &cli.Command{
		Name:            "suppliers",
		Aliases:         []string{"s"},
		Usage:           "Supplier rating and profitability operations",
		HideHelpCommand: true,
		Subcommands: []*cli.Command{
			{
				Name:    "rate",
				Usage:   "Rate the supplier roster",
				Aliases: []string{"r"},
				Action:  cmdSuppliersRate,
				Flags: []cli.Flag{
					seedFlag,
				},
			},
			{
				Name:    "profit",
				Usage:   "Analyze profitability of a cost/price pair",
				Aliases: []string{"p"},
				Action:  cmdSuppliersProfit,
				Flags: []cli.Flag{
					productNameFlag,
					costFlag,
					priceFlag,
					shippingCostFlag,
					gatewayFlag,
					targetMarginFlag,
				},
			},
			{
				Name:    "compare",
				Usage:   "Compare margins across simulated supplier quotes",
				Aliases: []string{"c"},
				Action:  cmdSuppliersCompare,
				Flags: []cli.Flag{
					productNameFlag,
					priceFlag,
					gatewayFlag,
					seedFlag,
				},
			},
			{
				Name:    "monitor",
				Usage:   "Watch simulated supplier price drift for alerts",
				Aliases: []string{"m"},
				Action:  cmdSuppliersMonitor,
				Flags: []cli.Flag{
					productNameFlag,
					priceFlag,
					monitorDaysFlag,
					seedFlag,
				},
			},
		},
	}

	monitorDaysFlag = &cli.IntFlag{
		Name:  "days",
		Usage: "Days of price observations to replay",
		Value: 7,
	}
)

func cmdSuppliersRate(c *cli.Context) error {
	cfg := getConfig(c)

	scorer, err := cfg.Cfg.Scorer("supplier", supplier.Weights, supplier.Grades)
	if err != nil {
		return err
	}

	seed := c.Int64(seedFlag.Name)
	if seed == 0 {
		seed = cfg.Cfg.Simulation.Seed
	}

	rated := supplier.NewRaterWithScorer(seed, scorer).Rate()
	if err := data.SaveSuppliers(cfg.DB, rated); err != nil {
		return fmt.Errorf("saving suppliers: %w", err)
	}
	for _, s := range rated {
		if s.Score != nil {
			if err := data.SaveScore(cfg.DB, "supplier", s.ID, *s.Score); err != nil {
				return fmt.Errorf("saving supplier score: %w", err)
			}
		}
	}

	return encode(rated)
}

func cmdSuppliersCompare(c *cli.Context) error {
	cfg := getConfig(c)

	seed := c.Int64(seedFlag.Name)
	if seed == 0 {
		seed = cfg.Cfg.Simulation.Seed
	}

	retail := c.Float64(priceFlag.Name)
	quotes := supplier.SimulateQuotes(seed, retail)
	analyses := supplier.CompareQuotes(
		c.String(productNameFlag.Name), retail, quotes, c.String(gatewayFlag.Name))

	return encode(analyses)
}

func cmdSuppliersMonitor(c *cli.Context) error {
	cfg := getConfig(c)

	seed := c.Int64(seedFlag.Name)
	if seed == 0 {
		seed = cfg.Cfg.Simulation.Seed
	}

	alerts := supplier.MonitorSimulatedPrices(
		seed,
		c.String(productNameFlag.Name),
		c.Float64(priceFlag.Name),
		c.Int(monitorDaysFlag.Name),
	)
	return encode(alerts)
}

func cmdSuppliersProfit(c *cli.Context) error {
	analysis := supplier.AnalyzeProfit(
		c.String(productNameFlag.Name),
		c.Float64(priceFlag.Name),
		c.Float64(costFlag.Name),
		c.Float64(shippingCostFlag.Name),
		c.String(gatewayFlag.Name),
	)

	out := map[string]any{
		"analysis": analysis,
		"optimal_price": supplier.OptimalPrice(
			c.Float64(costFlag.Name),
			c.Float64(shippingCostFlag.Name),
			c.Float64(targetMarginFlag.Name),
		),
	}
	return encode(out)
}
