package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/elfinspect/internal/client"
	"github.com/samcharles93/elfinspect/internal/logger"
)

var (
	logLevel  string
	logFormat string
	debug     bool
	jsonOut   bool
)

// errReported marks errors whose message has already been written to the
// error stream.
var errReported = errors.New("reported")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newApp().Run(ctx, os.Args)
	stop()
	if err != nil {
		if !errors.Is(err, errReported) {
			_, _ = fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:      "elfinspect",
		Usage:     "Send a file to elfinspectd and print its ELF header report",
		ArgsUsage: "<socket-path> <file-path>",
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print the report as JSON",
				Destination: &jsonOut,
			},
		}, loggingFlags()...),
		Action: inspect,
		OnUsageError: func(_ context.Context, cmd *cli.Command, err error, _ bool) error {
			return usageError(cmd, err.Error())
		},
	}
}

func loggingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "warn",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (pretty, json, text)",
			Value:       "pretty",
			Destination: &logFormat,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable debug logging (shorthand for --log-level=debug)",
			Destination: &debug,
		},
	}
}

func inspect(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 2 {
		return usageError(cmd, "Incorrect number of arguments")
	}

	log, err := logger.Setup(cmd.Root().ErrWriter, logLevel, logFormat, debug)
	if err != nil {
		return err
	}

	c := client.New(client.Config{
		SocketPath: cmd.Args().Get(0),
		FilePath:   cmd.Args().Get(1),
		JSON:       jsonOut,
		Out:        cmd.Root().Writer,
	}, log)
	err = c.Run(logger.WithContext(ctx, log))
	if errors.Is(err, client.ErrUsage) {
		return usageError(cmd, err.Error())
	}
	return err
}

func usageError(cmd *cli.Command, msg string) error {
	w := cmd.Root().ErrWriter
	_, _ = fmt.Fprintln(w, msg)
	cli.HelpPrinter(w, cli.RootCommandHelpTemplate, cmd.Root())
	return fmt.Errorf("%w: %s", errReported, msg)
}
