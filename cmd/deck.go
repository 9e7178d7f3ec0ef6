package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ellavondegurechaff/nrdb-bot/internal/domain/cards"
	"github.com/ellavondegurechaff/nrdb-bot/internal/gateways/nrdb"
	"github.com/spf13/cobra"
)

var (
	deckPrivate bool
	deckPublic  bool
)

var deckCmd = &cobra.Command{
	Use:   "deck <id or link>",
	Short: "Show a decklist by its NetrunnerDB link or ID number",
	Example: `  nrdb-bot deck 12345
  nrdb-bot deck https://netrunnerdb.com/en/decklist/17055/example
  nrdb-bot deck --private 996439`,
	Args: cobra.ExactArgs(1),
	RunE: timed("deck", func(cmd *cobra.Command, args []string) error {
		if deckPrivate && deckPublic {
			return errors.New("--private and --public are mutually exclusive")
		}

		id, visibility, ok := nrdb.ParseDeckRef(args[0])
		if !ok {
			return fmt.Errorf("%q is not a deck link or ID", args[0])
		}
		switch {
		case deckPrivate:
			visibility = cards.VisibilityPrivate
		case deckPublic:
			visibility = cards.VisibilityPublic
		}

		ctx := cmd.Context()
		b, err := newBot(ctx, true)
		if err != nil {
			return err
		}
		defer b.Close()
		b.Start(ctx)

		d, err := b.Assembler.AssembleByID(ctx, id, visibility)
		var incomplete *cards.IncompleteDeckError
		switch {
		case err == nil:
		case errors.Is(err, cards.ErrNotFound):
			return fmt.Errorf("the archetype of deck %s would be non-existent", id)
		case errors.Is(err, cards.ErrForbidden):
			return fmt.Errorf("deck %s is private and not shared", id)
		case errors.As(err, &incomplete):
			return fmt.Errorf("deck %s uses cards missing from the catalog: %s", id, strings.Join(incomplete.Codes, ", "))
		default:
			return err
		}

		renderDecklist(cmd.OutOrStdout(), d)
		return nil
	}),
}

func init() {
	deckCmd.Flags().BoolVar(&deckPrivate, "private", false, "only look for a shared private deck")
	deckCmd.Flags().BoolVar(&deckPublic, "public", false, "only look for a published decklist")
	RootCmd.AddCommand(deckCmd)
}
