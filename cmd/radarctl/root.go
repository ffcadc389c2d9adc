package main

import (
	"github.com/spf13/cobra"

	"github.com/okian/ufcradar/internal/adapters/repository"
	service "github.com/okian/ufcradar/internal/app"
	"github.com/okian/ufcradar/internal/config"
	"github.com/okian/ufcradar/pkg/logger"
)

// cli holds the state shared by every subcommand.
type cli struct {
	cfg *config.Config

	dataDir  string
	logLevel string
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "radarctl",
		Short:         "UFC radar operator tool",
		Long:          "Compute fighter radars, check fighter names and import events from ufcstats CSV exports.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&c.dataDir, "data-dir", "", "directory holding the CSV exports (overrides config)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")

	root.AddCommand(c.radarCmd())
	root.AddCommand(c.fightersCmd())
	root.AddCommand(c.eventsCmd())
	root.AddCommand(c.probeCmd())
	return root
}

// setup loads the layered config, applies flag overrides and routes logs to stderr.
func (c *cli) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return err
	}
	if c.dataDir != "" {
		cfg.DataDir = c.dataDir
	}
	if c.logLevel != "" {
		cfg.LogLevel = c.logLevel
	}
	if err := logger.InitWithWriter(cmd.ErrOrStderr()); err != nil {
		return err
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}

func (c *cli) sources() repository.Sources {
	return repository.Sources{
		Events:   c.cfg.Path(c.cfg.EventsFile),
		Results:  c.cfg.Path(c.cfg.ResultsFile),
		Stats:    c.cfg.Path(c.cfg.StatsFile),
		Fighters: c.cfg.Path(c.cfg.FightersFile),
	}
}

// newService builds a started radar service over a fresh cache.
func (c *cli) newService(cmd *cobra.Command) (*service.Service, error) {
	cache := repository.NewCache(c.sources(), repository.WithLogger(logger.Named("repository")))
	svc := service.New(cache,
		service.WithLogger(logger.Named("service")),
		service.WithDefaultWindow(c.cfg.DefaultWindow),
		service.WithMaxWindow(c.cfg.MaxWindow),
	)
	if err := svc.Start(cmd.Context()); err != nil {
		return nil, err
	}
	return svc, nil
}
