package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Download the card catalog and store it in the configured mirror",
	Args:  cobra.NoArgs,
	RunE: timed("sync", func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		b, err := newBot(ctx, true)
		if err != nil {
			return err
		}
		defer b.Close()

		n, err := b.SyncMirror(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Mirrored %d cards to %s\n", n, b.Cfg.Mirror)

		stored, ok, err := b.MirrorCount(ctx)
		if err != nil {
			return err
		}
		if ok {
			fmt.Fprintf(cmd.OutOrStdout(), "Mirror now holds %d cards\n", stored)
		}
		return nil
	}),
}

func init() {
	RootCmd.AddCommand(syncCmd)
}
