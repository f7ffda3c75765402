package main

import (
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/elfinspect/internal/protocol"
	"github.com/samcharles93/elfinspect/internal/transport"
)

type options struct {
	configPath string
	logLevel   string
	logFormat  string
	debug      bool
	maxPayload int
	backlog    int
	statusAddr string
}

func (o *options) flags() []cli.Flag {
	return append([]cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "path to config file (default ~/.config/elfinspect/config.yaml)",
			Destination: &o.configPath,
		},
		&cli.IntFlag{
			Name:        "max-payload",
			Usage:       "largest file accepted, in bytes (1 to 1073741824)",
			Value:       protocol.DefaultMaxPayload,
			Destination: &o.maxPayload,
		},
		&cli.IntFlag{
			Name:        "backlog",
			Usage:       "listen queue length",
			Value:       transport.DefaultBacklog,
			Destination: &o.backlog,
		},
		&cli.StringFlag{
			Name:        "status-addr",
			Usage:       "serve /healthz and /metrics on this address (disabled when empty)",
			Destination: &o.statusAddr,
		},
	}, o.loggingFlags()...)
}

func (o *options) loggingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &o.logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (pretty, json, text)",
			Value:       "pretty",
			Destination: &o.logFormat,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable debug logging (shorthand for --log-level=debug)",
			Destination: &o.debug,
		},
	}
}
