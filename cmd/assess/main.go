package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/lungrisk/internal/cli"
	"github.com/okian/lungrisk/pkg/logger"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := cli.ParseFlags(args, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		return 2
	}

	logger.SetOutput(os.Stderr)
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return 1
	}
	level := "warn"
	if cfg.Verbose {
		level = "debug"
	}
	_ = logger.SetLevelString(level)
	log := logger.Named("assess")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.Run(ctx, cfg, cli.NewAssessor(cfg, log), os.Stdout, log); err != nil {
		log.Error(ctx, "assessment failed", logger.Error(err))
		return 1
	}
	return 0
}
