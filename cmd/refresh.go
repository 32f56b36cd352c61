package cmd

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/minaret/minaret/pkg/azancli"
)

func refresh(ctx *cli.Context) (err error) {
	client, err := azancli.NewClient()
	if err != nil {
		printRuntimeErr(ctx, "refresh", "new_client", err)
		return nil
	}
	defer client.Close()
	r, err := client.Refresh()
	if err != nil {
		printRuntimeErr(ctx, "refresh", "refresh", err)
		return nil
	}
	fmt.Printf("Timetable refreshed for %s (%d events).\n", r.Date, len(r.Events))
	return nil
}
