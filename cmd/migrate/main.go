package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"coursehub/internal/db"
)

func main() {
	if os.Getenv("APP_ENV") == "development" {
		_ = godotenv.Load()
	}
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var driver, dsn string

	root := &cobra.Command{
		Use:          "migrate",
		Short:        "Apply or roll back the embedded schema migrations",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&driver, "driver", envOr("DB_DRIVER", db.DriverMySQL), "database driver (mysql or sqlite)")
	root.PersistentFlags().StringVar(&dsn, "dsn", os.Getenv("DATABASE_DSN"), "database DSN")

	open := func() (*migrate.Migrate, error) {
		if dsn == "" {
			return nil, errors.New("a DSN is required (--dsn or DATABASE_DSN)")
		}
		gormDB, err := db.Open(driver, dsn)
		if err != nil {
			return nil, err
		}
		return db.NewMigrator(gormDB, driver)
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := open()
				if err != nil {
					return err
				}
				defer m.Close()
				if err := db.MigrateUp(m); err != nil {
					return err
				}
				log.Println("Migrations applied")
				return nil
			},
		},
		&cobra.Command{
			Use:   "down [steps]",
			Short: "Roll back the given number of migrations (default 1)",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				steps := 1
				if len(args) == 1 {
					n, err := strconv.Atoi(args[0])
					if err != nil || n < 1 {
						return fmt.Errorf("invalid step count %q", args[0])
					}
					steps = n
				}
				m, err := open()
				if err != nil {
					return err
				}
				defer m.Close()
				if err := m.Steps(-steps); err != nil {
					return fmt.Errorf("migrate down: %w", err)
				}
				log.Printf("Rolled back %d migration(s)", steps)
				return nil
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := open()
				if err != nil {
					return err
				}
				defer m.Close()
				version, dirty, err := m.Version()
				if errors.Is(err, migrate.ErrNilVersion) {
					fmt.Fprintln(cmd.OutOrStdout(), "no migrations applied")
					return nil
				}
				if err != nil {
					return fmt.Errorf("migrate version: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", version, dirty)
				return nil
			},
		},
	)
	return root
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
