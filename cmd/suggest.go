package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var suggestLimit int

var suggestCmd = &cobra.Command{
	Use:   "suggest <partial title>",
	Short: "List card titles matching a partial title",
	Args:  cobra.MinimumNArgs(1),
	RunE: timed("suggest", func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		b, err := newBot(ctx, true)
		if err != nil {
			return err
		}
		defer b.Close()
		b.Start(ctx)

		limit := suggestLimit
		if limit <= 0 {
			limit = b.Cfg.Search.SuggestLimit
		}

		hits, err := b.Resolver.Suggest(ctx, strings.Join(args, " "), limit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, c := range hits {
			fmt.Fprintf(out, "%s  %s\n", c.Code, c.Title)
		}
		return nil
	}),
}

func init() {
	suggestCmd.Flags().IntVarP(&suggestLimit, "limit", "n", 0, "maximum number of suggestions")
	RootCmd.AddCommand(suggestCmd)
}
