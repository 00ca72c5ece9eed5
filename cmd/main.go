package main

import (
	"Product-Scanner/cmd/config"
	migration "Product-Scanner/cmd/database/migrate"
	"Product-Scanner/internal/utils"
	"Product-Scanner/pkg/product"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var rootCmd = &cobra.Command{
	Use:   "product-scanner",
	Short: "Product verification scanner backend",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		utils.LoadConfig()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&utils.ConfigPath, "config", "c", utils.ConfigPath, "Path to the YAML config file")
	rootCmd.AddCommand(serveCmd, migrateCmd, importProductsCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer closeDB(db)

		app, cleanup, err := config.NewApp(db)
		if err != nil {
			return err
		}
		defer cleanup()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			errCh <- app.Listen(":" + utils.GetConfig("APP_PORT"))
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
			log.Info("shutting down")
			return app.ShutdownWithTimeout(10 * time.Second)
		}
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer closeDB(db)

		log.Info("migration completed")
		return nil
	},
}

var importProductsCmd = &cobra.Command{
	Use:   "import-products <file.yaml>",
	Short: "Upsert products from a YAML list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer closeDB(db)

		n, err := product.NewProductService(product.NewProductRepository(db)).ImportProducts(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d products\n", n)
		return nil
	},
}

// openDB connects and brings the schema up to date.
func openDB() (*gorm.DB, error) {
	db, err := config.ConnectDB()
	if err != nil {
		return nil, err
	}
	if err := migration.Migrate(db); err != nil {
		closeDB(db)
		return nil, err
	}
	return db, nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
