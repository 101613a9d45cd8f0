package flags

import (
	"gopkg.in/urfave/cli.v1"
)

// CommonFlags returns the base set of CLI flags shared across commands.
func CommonFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "datadir",
			Usage: "Data directory for the Nerix game service",
			Value: "~/.nerix",
		},
		cli.StringFlag{
			Name:  "log.format",
			Usage: "Log output format (text|json)",
			Value: "text",
		},
		cli.IntFlag{
			Name:  "log.verbosity",
			Usage: "Logging verbosity (0=panic,1=fatal,2=error,3=warn,4=info,5=debug)",
			Value: 4,
		},
		cli.StringFlag{
			Name:  "sentry.dsn",
			Usage: "Sentry DSN for error reporting (empty disables the hook)",
		},
		cli.StringFlag{
			Name:  "http.addr",
			Usage: "HTTP server listening interface",
			Value: "127.0.0.1",
		},
		cli.IntFlag{
			Name:  "http.port",
			Usage: "HTTP server listening port",
			Value: 18545,
		},
		cli.BoolFlag{
			Name:  "metrics",
			Usage: "Expose Prometheus metrics on /metrics",
		},
		cli.StringFlag{
			Name:  "preset",
			Usage: "Runtime preset (dev|prod|archive|default)",
			Value: "default",
		},
	}
}
