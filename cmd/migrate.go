package main

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-ClinicBookingService/internal/config"
	"github.com/m04kA/SMC-ClinicBookingService/internal/infra/storage/migrations"
	"github.com/m04kA/SMC-ClinicBookingService/pkg/logger"
)

func newMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply embedded database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer log.Close()

			db, err := sql.Open("postgres", cfg.Database.DSN())
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer db.Close()

			if err := db.PingContext(cmd.Context()); err != nil {
				return fmt.Errorf("ping database: %w", err)
			}

			applied, err := migrations.Up(cmd.Context(), db, log)
			if err != nil {
				return err
			}

			log.Info("Migrations done: %d applied", applied)
			return nil
		},
	}
}
