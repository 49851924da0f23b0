package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mrled/randname/internal/config"
	"github.com/mrled/randname/internal/logger"
	"github.com/mrled/randname/internal/repository"
	"github.com/mrled/randname/internal/service/resolver"
)

var errCount = errors.New("--count must be at least 1")

// app carries what the persistent flags and the environment configure
type app struct {
	database string
	snapshot string
	seed     uint64
	logLevel string

	cfg    config.Config
	logger *slog.Logger
}

// Execute runs the root command
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var nameFlags NameFlags

	rootCmd := &cobra.Command{
		Use:   "randname",
		Short: "Randname draws realistic random person names",
		Long: `A command-line tool that draws random first, last and full names from a
dataset partitioned by country, sex and year of birth.

Without a subcommand a full name is drawn.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runFull(cmd, &nameFlags)
		},
	}
	addNameFlags(rootCmd, &nameFlags)

	rootCmd.PersistentFlags().StringVarP(&a.database, "database", "d", "", "Dataset root directory (default: embedded dataset, env RANDNAME_DATABASE)")
	rootCmd.PersistentFlags().StringVar(&a.snapshot, "snapshot", "", "Single-file dataset snapshot (env RANDNAME_SNAPSHOT)")
	rootCmd.PersistentFlags().Uint64Var(&a.seed, "seed", 0, "Seed for reproducible draws (env RANDNAME_SEED)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn or error (env LOG_LEVEL)")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &UsageError{err}
	})

	rootCmd.AddGroup(
		&cobra.Group{ID: "names", Title: "Drawing names:"},
		&cobra.Group{ID: "dataset", Title: "Working with datasets:"},
	)
	rootCmd.AddCommand(
		newFirstCmd(a),
		newLastCmd(a),
		newFullCmd(a),
		newCountriesCmd(a),
		newShowCmd(a),
		newValidateCmd(a),
		newConvertCmd(a),
		newSnapshotCmd(a),
	)
	return rootCmd
}

// setup merges the environment with the persistent flags; flags win
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("database") {
		cfg.Database = a.database
	}
	if flags.Changed("snapshot") {
		cfg.Snapshot = a.snapshot
	}
	if flags.Changed("seed") {
		seed := a.seed
		cfg.Seed = &seed
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if cfg.Database != "" && cfg.Snapshot != "" {
		return &UsageError{errors.New("--database and --snapshot are mutually exclusive")}
	}
	a.cfg = cfg

	log := logger.NewLogger(logger.Config{
		Level:     cfg.LogLevel,
		Format:    cfg.LogFormat,
		AddSource: cfg.LogAddSource,
		Output:    cmd.ErrOrStderr(),
	})
	source := cfg.Database
	if cfg.Snapshot != "" {
		source = cfg.Snapshot
	}
	a.logger = logger.WithDataset(logger.WithCommand(log, cmd.Name()), source)
	return nil
}

func (a *app) openRepository() (repository.DatasetRepository, error) {
	repo, err := repository.NewRepository(repository.RepositoryConfig{
		Root:         a.cfg.Database,
		SnapshotPath: a.cfg.Snapshot,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	return repo, nil
}

func (a *app) newResolver() (*resolver.Service, error) {
	repo, err := a.openRepository()
	if err != nil {
		return nil, err
	}

	opts := []resolver.Option{resolver.WithLogger(a.logger)}
	if a.cfg.Seed != nil {
		opts = append(opts, resolver.WithSeed(*a.cfg.Seed))
	}
	return resolver.NewService(repo, opts...), nil
}
