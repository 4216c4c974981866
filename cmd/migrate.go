package cmd

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/engagesphere/engagesphere-backend/config"
)

var migrationsPath string

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down|version]",
	Short:     "Run schema migrations",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"up", "down", "version"},
	Run:       runMigrate,
}

func init() {
	migrateCmd.Flags().StringVar(&migrationsPath, "path", "migrations", "directory containing migration files")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(_ *cobra.Command, args []string) {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	if err := configureLogging(cfg); err != nil {
		logrus.WithError(err).Fatal("Failed to configure logging")
	}

	// Multi-statement mode lets a single migration file carry several DDL
	// statements.
	dsn := cfg.MySQL.DSN
	if strings.Contains(dsn, "?") {
		dsn += "&multiStatements=true"
	} else {
		dsn += "?multiStatements=true"
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	driver, err := migratemysql.WithInstance(db, &migratemysql.Config{})
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize migration driver")
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsPath, "mysql", driver)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize migrations")
	}

	switch args[0] {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			logrus.WithError(err).Fatal("Migration up failed")
		}
		logrus.Info("Migrations applied")
	case "down":
		if err := m.Steps(-1); err != nil {
			logrus.WithError(err).Fatal("Migration down failed")
		}
		logrus.Info("Rolled back one migration")
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			logrus.WithError(err).Fatal("Failed to read migration version")
		}
		logrus.WithFields(logrus.Fields{"version": version, "dirty": dirty}).Info("Migration version")
	}
}
