package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/samcharles93/elfinspect/internal/daemon"
	"github.com/samcharles93/elfinspect/internal/logger"
	"github.com/samcharles93/elfinspect/internal/version"
)

// errReported marks errors whose message has already been written to the
// error stream.
var errReported = errors.New("reported")

// A bare "version" argument selects the subcommand, so a socket with that
// name needs a directory component.
const description = `Listens on <socket-path> until interrupted.

A socket named "version" must be given as ./version, since the bare word
runs the version command.`

func newApp(stdout, stderr io.Writer) *cli.Command {
	var opts options

	return &cli.Command{
		Name:        "elfinspectd",
		Usage:       "Inspect ELF headers of files sent over a Unix socket",
		ArgsUsage:   "<socket-path>",
		Description: description,
		Writer:      stdout,
		ErrWriter:   stderr,
		Flags:       opts.flags(),
		Commands:    []*cli.Command{versionCmd()},
		OnUsageError: func(_ context.Context, cmd *cli.Command, err error, _ bool) error {
			return usageError(cmd, err.Error())
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			switch {
			case cmd.NArg() == 0:
				return usageError(cmd, "Socket path must be specified")
			case cmd.NArg() > 1:
				return usageError(cmd, "To many Arguments")
			}
			return serve(ctx, cmd, &opts)
		},
	}
}

func usageError(cmd *cli.Command, msg string) error {
	w := cmd.Root().ErrWriter
	_, _ = fmt.Fprintln(w, msg)
	cli.HelpPrinter(w, cli.RootCommandHelpTemplate, cmd.Root())
	return fmt.Errorf("%w: %s", errReported, msg)
}

func serve(ctx context.Context, cmd *cli.Command, opts *options) error {
	cfg, err := LoadConfig(opts.configPath)
	if err != nil {
		return err
	}
	applyConfig(cmd, cfg, opts)

	log, err := logger.Setup(cmd.Root().ErrWriter, opts.logLevel, opts.logFormat, opts.debug)
	if err != nil {
		return err
	}
	ctx = logger.WithContext(ctx, log)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	srv := daemon.NewServer(daemon.Config{
		SocketPath: cmd.Args().First(),
		Backlog:    opts.backlog,
		MaxPayload: opts.maxPayload,
	}, log, reg)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	if opts.statusAddr != "" {
		g.Go(func() error {
			log.Info("starting status server", "address", opts.statusAddr)
			err := daemon.ServeStatus(gctx, opts.statusAddr, daemon.StatusHandler(srv, reg))
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		})
	}
	g.Go(func() error {
		defer cancel()
		return srv.Run(gctx)
	})

	err = g.Wait()
	if errors.Is(err, daemon.ErrUsage) {
		return usageError(cmd, err.Error())
	}
	return err
}

func versionCmd() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print version information",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			w := cmd.Root().Writer
			info := version.Resolve()
			_, _ = fmt.Fprintf(w, "version:    %s\n", info.Version)
			if info.Commit != "" {
				_, _ = fmt.Fprintf(w, "commit:     %s\n", info.Commit)
			}
			if info.BuildTime != "" {
				_, _ = fmt.Fprintf(w, "build time: %s\n", info.BuildTime)
			}
			return nil
		},
	}
}
