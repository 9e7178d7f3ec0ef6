package cmd

import (
	"fmt"
	"strings"

	"github.com/ellavondegurechaff/nrdb-bot/internal/domain/search"
	"github.com/spf13/cobra"
)

var cardCmd = &cobra.Command{
	Use:   "card <query>",
	Short: "Find a card by (partial) name, approximation or acronym",
	Long: `Find a card by (partial) name, approximation or acronym.
Several cards can be looked up at once with brackets, e.g. "[sneakdoor] [etf]".`,
	Example: `  nrdb-bot card hiemdal
  nrdb-bot card etf
  nrdb-bot card "[corroder] [data raven]"`,
	Args: cobra.MinimumNArgs(1),
	RunE: timed("card", func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		b, err := newBot(ctx, true)
		if err != nil {
			return err
		}
		defer b.Close()
		b.Start(ctx)

		text := strings.Join(args, " ")
		queries := search.ExtractQueries(text)
		if len(queries) == 0 {
			queries = []string{text}
		}

		found, missing, err := b.Resolver.ResolveAll(ctx, queries)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for i, card := range found {
			if i > 0 {
				fmt.Fprintln(out)
			}
			renderCard(out, card)
		}
		if len(missing) > 0 {
			if len(found) > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintln(out, noHitsMessage(missing))
		}
		return nil
	}),
}

func init() {
	RootCmd.AddCommand(cardCmd)
}
