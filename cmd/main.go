// Package cmd implements the minaret command line interface.
package cmd

import (
	"fmt"

	"github.com/urfave/cli"
)

// BuildArgs carries build-time metadata injected by the linker.
type BuildArgs struct {
	Version   string
	Commit    string
	Date      string
	BuildType string
}

var currentBuildArgs BuildArgs

func Execute(args []string, build BuildArgs) error {
	currentBuildArgs = build
	app := cli.App{
		Name:         "Minaret",
		HelpName:     "minaret",
		Usage:        "A prayer-time azan daemon.",
		Version:      fmt.Sprintf("%s-%s", build.Version, build.BuildType),
		UsageText:    "minaret <command> [arguments...]",
		Description:  DESCRIPTION,
		OnUsageError: usageErrorCallback,
		Commands: []cli.Command{
			{
				Name:        "daemon",
				Usage:       "run the azan scheduler daemon",
				Description: DaemonDescription,
				Action:      daemon,
				Flags:       daemonFlags,
			},
			{
				Name:                   "play",
				Aliases:                []string{"p"},
				Usage:                  "play the azan for a prayer now",
				Description:            PlayDescription,
				OnUsageError:           usageErrorCallback,
				Action:                 play,
				UseShortOptionHandling: true,
			},
			{
				Name:        "stop",
				Usage:       "stop active azan playback",
				Description: StopDescription,
				Action:      stop,
			},
			{
				Name:        "refresh",
				Aliases:     []string{"r"},
				Usage:       "refetch today's timetable",
				Description: RefreshDescription,
				Action:      refresh,
			},
			{
				Name:        "status",
				Aliases:     []string{"s"},
				Usage:       "show playback state and today's schedule",
				Description: StatusDescription,
				Action:      status,
			},
			{
				Name:        "attach",
				Aliases:     []string{"a"},
				Usage:       "follow playback state transitions",
				Description: AttachDescription,
				Action:      attach,
			},
			{
				Name:    "help",
				Aliases: []string{"h"},
				Usage:   "prints the help message",
				Action:  help,
			},
			{
				Name:    "version",
				Aliases: []string{"v"},
				Usage:   "prints installed version of minaret",
				Action:  getVersion,
			},
		},
		Action:      status,
		HideHelp:    true,
		HideVersion: true,
	}
	return app.Run(args)
}
