package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/zulandar/drydock/internal/api"
	"github.com/zulandar/drydock/internal/db"
	"github.com/zulandar/drydock/internal/export"
	"github.com/zulandar/drydock/internal/logging"
	"github.com/zulandar/drydock/internal/timesheet"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func newServeCmd() *cobra.Command {
	var (
		configPath  string
		port        int
		autoMigrate bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API and scheduled exports",
		Long: `Serves the timesheet REST API under /api and runs the exports listed in
the config on their cron schedules. Stops cleanly on SIGINT or SIGTERM.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, configPath, port, autoMigrate)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Drydock config file")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (overrides server.port)")
	cmd.Flags().BoolVar(&autoMigrate, "migrate", false, "migrate the schema before serving")
	return cmd
}

func runServe(cmd *cobra.Command, configPath string, port int, autoMigrate bool) error {
	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}
	defer db.Close(gormDB)

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if autoMigrate {
		if err := db.AutoMigrate(gormDB); err != nil {
			return err
		}
		logger.Info("schema migrated", zap.Int("tables", len(db.AllModels())))
	}
	if port <= 0 {
		port = cfg.Server.Port
	}

	sched, err := export.NewScheduler(cfg.Exports, timesheet.New(gormDB), logger.Named("export"))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return api.Start(ctx, api.StartOpts{
			DB:          gormDB,
			Port:        port,
			Logger:      logger.Named("api"),
			CORSOrigins: cfg.Server.CORSOrigins,
			Out:         cmd.OutOrStdout(),
		})
	})
	g.Go(func() error {
		return sched.Run(ctx)
	})

	logger.Info("drydock started",
		zap.Int("port", port),
		zap.String("driver", cfg.Database.Driver),
		zap.Strings("exports", sched.Jobs()))

	if err := g.Wait(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Shut down cleanly.")
	return nil
}
