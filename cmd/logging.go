package cmd

import (
	"github.com/urfave/cli"
	"go.uber.org/zap"

	"github.com/df07/go-batch-pathtracer/pkg/config"
	"github.com/df07/go-batch-pathtracer/pkg/logging"
)

func setupLogging(ctx *cli.Context, cfg *config.Config) *zap.Logger {
	verbosity := 0
	if ctx.GlobalBool("v") {
		verbosity = 1
	}
	if ctx.GlobalBool("vv") {
		verbosity = 2
	}

	level := logging.VerbosityLevel(cfg.Logging.Level, verbosity)
	return logging.New(level, cfg.Logging.File).Named("pathtracer")
}
