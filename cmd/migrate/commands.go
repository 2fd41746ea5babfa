package main

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"library-backend/internal/config"
	"library-backend/migrations"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Manage the library database schema",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: withMigrator(func(m *migrate.Migrate) error {
				log.Info().Msg("Running migrations up...")
				return ignoreNoChange(m.Up())
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the last migration",
			Args:  cobra.NoArgs,
			RunE: withMigrator(func(m *migrate.Migrate) error {
				log.Info().Msg("Rolling back last migration...")
				return ignoreNoChange(m.Steps(-1))
			}),
		},
		&cobra.Command{
			Use:   "down-all",
			Short: "Roll back every migration",
			Args:  cobra.NoArgs,
			RunE: withMigrator(func(m *migrate.Migrate) error {
				log.Info().Msg("Rolling back all migrations...")
				return ignoreNoChange(m.Down())
			}),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			Args:  cobra.NoArgs,
			RunE: withMigrator(func(m *migrate.Migrate) error {
				version, dirty, err := m.Version()
				if errors.Is(err, migrate.ErrNilVersion) {
					log.Info().Msg("No migration applied yet")
					return nil
				}
				if err != nil {
					return fmt.Errorf("get version: %w", err)
				}
				log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Current migration version")
				return nil
			}),
		},
		newForceCmd(),
	)

	return root
}

func newForceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "force VERSION",
		Short: "Set the schema version without running migrations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid version %q: %w", args[0], err)
			}
			return withMigrator(func(m *migrate.Migrate) error {
				log.Info().Int("version", version).Msg("Forcing version...")
				return m.Force(version)
			})(cmd, args)
		},
	}
}

// withMigrator opens the database, runs fn and closes everything again.
func withMigrator(fn func(m *migrate.Migrate) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		dbConfig, err := config.LoadDatabaseConfig()
		if err != nil {
			return err
		}

		db, err := sql.Open("pgx", dbConfig.DSN())
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()

		if err := db.PingContext(cmd.Context()); err != nil {
			return fmt.Errorf("ping database: %w", err)
		}

		driver, err := postgres.WithInstance(db, &postgres.Config{})
		if err != nil {
			return fmt.Errorf("create database driver: %w", err)
		}

		source, err := iofs.New(migrations.FS, ".")
		if err != nil {
			return fmt.Errorf("open embedded migrations: %w", err)
		}

		m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
		if err != nil {
			return fmt.Errorf("create migrator: %w", err)
		}

		defer m.Close()

		if err := fn(m); err != nil {
			return err
		}

		log.Info().
			Str("host", dbConfig.Host).
			Str("database", dbConfig.DBName).
			Msg("Migration command completed")
		return nil
	}
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		log.Info().Msg("Schema already up to date")
		return nil
	}
	return err
}
