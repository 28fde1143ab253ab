package main

import (
	"fmt"
	"os"

	"rental-marketplace-be/internal/bootstrap"
	"rental-marketplace-be/internal/config"
	"rental-marketplace-be/pkg/database"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// env is built lazily so `--help` works without a database.
type env struct {
	cfg       *config.Config
	db        *gorm.DB
	container *bootstrap.Container
}

func (e *env) load() error {
	if e.container != nil {
		return nil
	}
	e.cfg = config.Load()
	db, err := database.NewGormDBFromDSN(e.cfg.Database.Connection)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	e.db = db
	e.container = bootstrap.NewContainer(db, e.cfg)
	return nil
}

func (e *env) close() {
	if e.container != nil {
		e.container.Close()
	}
}

func main() {
	e := &env{}
	defer e.close()

	rootCmd := &cobra.Command{
		Use:           "ops",
		Short:         "Operational tasks for the rental marketplace backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(seedCmd(e))
	rootCmd.AddCommand(expireCmd(e))
	rootCmd.AddCommand(retryContractsCmd(e))
	rootCmd.AddCommand(reconcilePaymentCmd(e))
	rootCmd.AddCommand(reconcileWalletCmd(e))

	if err := rootCmd.Execute(); err != nil {
		color.Red("Error: %v", err)
		e.close()
		os.Exit(1)
	}
}
