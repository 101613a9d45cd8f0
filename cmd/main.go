package main

import (
	"fmt"
	"os"

	"github.com/nerix-game/go-nerix/cmd/nerix/launcher"
)

func main() {
	if err := launcher.App().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
