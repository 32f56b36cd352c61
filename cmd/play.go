package cmd

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/minaret/minaret/pkg/azancli"
)

func play(ctx *cli.Context) (err error) {
	prayer := ctx.Args().First()
	if prayer == "" {
		prayer = "test"
	} else if prayer == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	client, err := azancli.NewClient()
	if err != nil {
		printRuntimeErr(ctx, "play", "new_client", err)
		return nil
	}
	defer client.Close()
	r, err := client.Trigger(prayer)
	if err != nil {
		printRuntimeErr(ctx, "play", "trigger", err)
		return nil
	}
	fmt.Printf("Playing azan for %s.\n", r.Prayer)
	return nil
}
