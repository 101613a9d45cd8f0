package flags

import (
	"gopkg.in/urfave/cli.v1"
)

// GameFlags returns the flags selecting the network and overriding the
// economic genesis of a deployment. Overrides default to zero/empty, meaning
// "keep the value of the selected rule set".
func GameFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "network",
			Usage: "Game network to run (main|test)",
			Value: "main",
		},
		cli.BoolFlag{
			Name:  "fakenet",
			Usage: "Run a local fake deployment (no cooldown, default seed pool)",
		},
		cli.StringFlag{
			Name:  "game.basefee",
			Usage: "Override the base message fee, in wei",
		},
		cli.StringFlag{
			Name:  "game.feecap",
			Usage: "Override the fee ceiling, in wei",
		},
		cli.Uint64Flag{
			Name:  "game.growth",
			Usage: "Override the per-message fee growth, in ppm",
		},
		cli.IntFlag{
			Name:  "game.cooldown",
			Usage: "Override the inter-iteration cooldown, in minutes (0 disables)",
			Value: -1,
		},
		cli.StringFlag{
			Name:  "game.seedpool",
			Usage: "Initial reward pool of iteration 1, in wei",
		},
	}
}
