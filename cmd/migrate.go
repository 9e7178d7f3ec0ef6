package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ellavondegurechaff/nrdb-bot/nrdbot"
	"github.com/spf13/cobra"
)

var migrateReset bool

var migrateCMD = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema of the card mirror",
	Args:  cobra.NoArgs,
	RunE: timed("migrate", func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		setupLogging(cfg)
		if cfg.Mirror != nrdbot.MirrorDB {
			return errors.New(`migrate needs mirror = "db" in the config`)
		}

		b := nrdbot.New(*cfg, version, commit)
		// SetupMirror connects and initializes the schema.
		if err := b.SetupMirror(ctx); err != nil {
			slog.Error("Failed to prepare database", slog.String("type", "db"), slog.Any("error", err))
			return err
		}
		defer b.Close()

		if migrateReset {
			if err := b.DB.ResetAppTables(ctx); err != nil {
				return err
			}
		}

		stored, _, err := b.MirrorCount(ctx)
		if err != nil {
			return err
		}
		slog.Info("Migration completed successfully!",
			slog.String("type", "db"),
			slog.Int("cards", stored))
		fmt.Fprintf(cmd.OutOrStdout(), "Mirror holds %d cards\n", stored)
		return nil
	}),
}

func init() {
	migrateCMD.Flags().BoolVar(&migrateReset, "reset", false, "truncate the mirror tables after migrating")
	RootCmd.AddCommand(migrateCMD)
}
