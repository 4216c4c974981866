package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/engagesphere/engagesphere-backend/config"
)

var rootCmd = &cobra.Command{
	Use:   "engagesphere-backend",
	Short: "EngageSphere SaaS backend",
	Long:  "The EngageSphere backend: PayPal checkout, payment ledger, plans, users, contacts and receipts.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func configureLogging(cfg *config.Config) error {
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.JSONFormatter{})
	return nil
}
