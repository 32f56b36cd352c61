package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli"

	"github.com/minaret/minaret/pkg/logger"
)

var configPath string

var daemonFlags = []cli.Flag{
	cli.StringFlag{
		Name:        "config, c",
		Usage:       "path to the daemon configuration file",
		Destination: &configPath,
	},
}

func daemon(ctx *cli.Context) error {
	l := logger.NewStandardLogger(log.Default())
	comps, err := initDaemonComponents(l, configPath)
	if err != nil {
		printRuntimeErr(ctx, "daemon", "init", err)
		return nil
	}
	defer comps.Close()

	sigCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// A failed first fetch is tolerated: the schedule re-arms its rollover
	// and retries at the day boundary, and a manual refresh works anytime.
	if err := comps.Schedule.Start(sigCtx); err != nil {
		l.Warning("initial timetable load failed: %v", err)
	}

	return comps.Server.Start(sigCtx)
}
