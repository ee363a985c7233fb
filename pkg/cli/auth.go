package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/dropsim/dropctl/pkg/auth"
)

var (
	tokenFlag = &cli.StringFlag{
		Name:  "token",
		Usage: "Bearer token sent with webhook notifications",
	}

	authCmd = &cli.Command{
		Name:            "auth",
		HideHelpCommand: true,
		Usage:           "Manage the webhook bearer token",
		Subcommands: []*cli.Command{
			{
				Name:   "set",
				Usage:  "Store the webhook token in the OS keychain",
				Action: cmdAuthSet,
				Flags: []cli.Flag{
					tokenFlag,
				},
			},
			{
				Name:   "delete",
				Usage:  "Remove the stored webhook token",
				Action: cmdAuthDelete,
			},
		},
	}
)

func cmdAuthSet(c *cli.Context) error {
	token := c.String(tokenFlag.Name)
	if token == "" {
		fmt.Print("Paste the webhook token and hit enter:\n>")
		if _, err := fmt.Scanln(&token); err != nil {
			return fmt.Errorf("reading user input: %w", err)
		}
	}

	if err := auth.SaveToken(getHomeDir(), token); err != nil {
		return fmt.Errorf("saving token: %w", err)
	}

	fmt.Println("Token saved")
	return nil
}

func cmdAuthDelete(c *cli.Context) error {
	if err := auth.DeleteToken(getHomeDir()); err != nil {
		return fmt.Errorf("deleting token: %w", err)
	}
	fmt.Println("Token deleted")
	return nil
}
