package cmd

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/minaret/minaret/pkg/azancli"
)

func stop(ctx *cli.Context) (err error) {
	client, err := azancli.NewClient()
	if err != nil {
		printRuntimeErr(ctx, "stop", "new_client", err)
		return nil
	}
	defer client.Close()
	r, err := client.Stop()
	if err != nil {
		printRuntimeErr(ctx, "stop", "stop-playback", err)
		return nil
	}
	if r.WasPlaying {
		fmt.Printf("Stopped azan playback for %s.\n", r.Prayer)
	} else {
		fmt.Println("Nothing was playing.")
	}
	return nil
}
