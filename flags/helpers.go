package flags

import (
	"os"

	cli "gopkg.in/urfave/cli.v1"
)

// NewApp creates the CLI app skeleton with the common and game flag sets
// attached. The caller installs the action.
func NewApp() *cli.App {
	app := cli.NewApp()
	app.Name = "nerix"
	app.Usage = "Nerix game economy service"
	app.Version = "0.1.0"
	app.Writer = os.Stdout
	app.Flags = append(CommonFlags(), GameFlags()...)
	return app
}
