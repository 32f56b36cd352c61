package cmd

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/minaret/minaret/common"
	"github.com/minaret/minaret/pkg/azancli"
)

func attach(ctx *cli.Context) (err error) {
	client, err := azancli.NewClient()
	if err != nil {
		printRuntimeErr(ctx, "attach", "new_client", err)
		return nil
	}
	st, err := client.Attach()
	if err != nil {
		printRuntimeErr(ctx, "attach", "client-attach", err)
		return nil
	}
	printStatus(st)
	fmt.Println("\nWatching playback state (ctrl-c to exit)...")
	client.AddHandler(common.UPDATE_STATE, azancli.NewStateHandler(func(u *common.StateUpdate) error {
		if u.Playing {
			fmt.Printf("%s  playing %s\n", u.At.Format("15:04:05"), u.Prayer)
		} else {
			fmt.Printf("%s  idle\n", u.At.Format("15:04:05"))
		}
		return nil
	}))
	return client.Listen()
}
