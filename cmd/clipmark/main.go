package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	app "github.com/okian/clipmark/internal/app"
	"github.com/okian/clipmark/internal/cli"
	"github.com/okian/clipmark/internal/config"
	"github.com/okian/clipmark/pkg/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Logs go to stderr so "-out -" can stream XML on stdout.
	if err := logger.InitWithWriter(os.Stderr); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return 1
	}
	log := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Error(ctx, "failed to load config", logger.Error(err))
		return 1
	}

	c, err := cli.Parse(os.Args[1:], cfg, os.Stderr)
	if err != nil {
		if errors.Is(err, cli.ErrNoInputs) {
			cli.ShowHelp(os.Stderr)
		} else {
			os.Stderr.WriteString(err.Error() + "\n")
		}
		return 2
	}
	if c.Help {
		cli.ShowHelp(os.Stdout)
		return 0
	}

	if err := logger.SetLevelString(c.LogLevel); err != nil {
		log.Warn(ctx, "invalid log level; falling back to info", logger.String("log_level", c.LogLevel))
		_ = logger.SetLevelString("info")
	}

	headers, err := cfg.Headers()
	if err != nil {
		log.Error(ctx, "invalid header_names", logger.Error(err))
		return 1
	}
	svc := app.New(
		app.WithLogger(log),
		app.WithIndent(c.Indent),
		app.WithHeaderNames(headers),
	)

	if _, err := cli.Run(ctx, svc, c, os.Stdout); err != nil {
		log.Error(ctx, "clipmark failed", logger.Error(err))
		return 1
	}
	return 0
}
