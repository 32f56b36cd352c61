package cmd

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli"

	"github.com/minaret/minaret/common"
	"github.com/minaret/minaret/pkg/azancli"
)

func status(ctx *cli.Context) (err error) {
	if ctx.Command.Name == "" && ctx.Args().First() != "" {
		return help(ctx)
	}
	client, err := azancli.NewClient()
	if err != nil {
		printRuntimeErr(ctx, "status", "new_client", err)
		return nil
	}
	defer client.Close()
	st, err := client.Status()
	if err != nil {
		printRuntimeErr(ctx, "status", "status", err)
		return nil
	}
	printStatus(st)
	return nil
}

func printStatus(st *common.StatusResponse) {
	if st.Playing {
		fmt.Printf("Playing azan for %s (started %s).\n",
			st.Prayer, humanize.Time(st.Since))
	} else {
		fmt.Println("Idle.")
	}
	if st.NextPrayer != "" {
		fmt.Printf("Next: %s at %s (%s).\n",
			st.NextPrayer,
			st.NextAt.Format("15:04"),
			humanize.Time(st.NextAt),
		)
	}
	if len(st.Events) == 0 {
		fmt.Println("No timetable loaded.")
		return
	}
	fmt.Printf("\nTimetable for %s:\n", st.Date)
	for _, ev := range st.Events {
		var marks []string
		if !ev.Enabled {
			marks = append(marks, "disabled")
		}
		if ev.Played {
			marks = append(marks, "played")
		}
		suffix := ""
		if len(marks) > 0 {
			suffix = " (" + strings.Join(marks, ", ") + ")"
		}
		fmt.Printf("  %-8s %s%s\n", ev.Name, ev.Time.Format("15:04"), suffix)
	}
}
