package cmd

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/ellavondegurechaff/nrdb-bot/nrdbot"
	"github.com/ellavondegurechaff/nrdb-bot/nrdbot/logger"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	version = "dev"
	commit  = "unknown"

	configPath string
	verbose    bool
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "nrdb-bot",
	Short: "Look up Netrunner cards and decklists",
	Long: `nrdb-bot resolves Android: Netrunner card names, acronyms and typos
against the NetrunnerDB catalog and prints categorized decklists.`,
	SilenceUsage: true,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config.toml")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(ctx context.Context) error {
	return RootCmd.ExecuteContext(ctx)
}

func loadConfig() (*nrdbot.Config, error) {
	if configPath == "" {
		return nrdbot.DefaultConfig(), nil
	}
	return nrdbot.LoadConfig(configPath)
}

func setupLogging(cfg *nrdbot.Config) {
	level := cfg.Log.Level
	if verbose {
		level = slog.LevelDebug
	}
	noColor := cfg.Log.NoColor || !term.IsTerminal(int(os.Stderr.Fd()))
	slog.SetDefault(slog.New(logger.NewHandler(logger.Options{
		Level:   level,
		Writer:  os.Stderr,
		NoColor: noColor,
	})))

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		color.NoColor = true
	}
}

// newBot loads the config and wires a bot, with its mirror when withMirror
// is set.
func newBot(ctx context.Context, withMirror bool) (*nrdbot.Bot, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	setupLogging(cfg)

	b := nrdbot.New(*cfg, version, commit)
	if withMirror {
		if err := b.SetupMirror(ctx); err != nil {
			return nil, err
		}
	}
	b.Setup()
	return b, nil
}

// timed logs how long a command took and whether it failed.
func timed(name string, run func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		start := time.Now()
		err := run(cmd, args)
		logger.LogCommand(name, time.Since(start), err)
		return err
	}
}
