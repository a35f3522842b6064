package cmd

import (
	"fmt"
	"time"

	"order-menu/core/reconcile"
	"order-menu/core/storage"
	"order-menu/feature/menu"
	"order-menu/feature/migration"
	"order-menu/feature/orders"
	"order-menu/feature/schema"
	"order-menu/feature/settings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	migrateSource string
	migrateDir    string
	migratePrefix string
)

// migrateCmd is the parent command for moving data in and out of export files.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Import or export menu items, orders and settings",
	Long: `Moves data between the database and JSON export files
(menu-items-export.json, orders-export.json, settings-export.json).

Files are read from a local directory or from the configured storage bucket.

Examples:
  # Import exports from the current directory
  migrate import

  # Export to the storage bucket under a prefix
  migrate export --source bucket --prefix 2024-06-01`,
}

var migrateImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Replace stored data with the contents of export files",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigration(cmd, func(svc *migration.Service, src migration.Source, rt *runtime) error {
			if err := schema.NewService(rt.db, rt.logger).CreateTables(cmd.Context()); err != nil {
				return err
			}
			start := time.Now()
			report, err := svc.Import(cmd.Context(), src)
			if err != nil {
				return err
			}
			fmt.Println("\n=== Import Summary ===")
			fmt.Printf("Menu Items: %d\n", report.MenuItems)
			fmt.Printf("Orders: %d\n", report.Orders)
			fmt.Printf("Hidden Restaurants: %t\n", report.HiddenRestaurants)
			fmt.Printf("Reassigned IDs: %d\n", report.Reassigned)
			if len(report.Skipped) > 0 {
				fmt.Printf("Skipped Files: %v\n", report.Skipped)
			}
			fmt.Printf("Execution Time: %s\n", time.Since(start))
			return nil
		})
	},
}

var migrateExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write stored data to export files",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigration(cmd, func(svc *migration.Service, dst migration.Source, rt *runtime) error {
			report, err := svc.Export(cmd.Context(), dst)
			if err != nil {
				return err
			}
			fmt.Println("\n=== Export Summary ===")
			fmt.Printf("Destination: %s\n", dst)
			fmt.Printf("Menu Items: %d\n", report.MenuItems)
			fmt.Printf("Orders: %d\n", report.Orders)
			return nil
		})
	},
}

func runMigration(cmd *cobra.Command, run func(*migration.Service, migration.Source, *runtime) error) error {
	rt, err := bootstrap()
	if err != nil {
		return err
	}
	defer rt.close()

	cfg := rt.cfg.Migration
	if cmd.Flags().Changed("source") {
		cfg.Source = migrateSource
	}
	if cmd.Flags().Changed("dir") {
		cfg.Dir = migrateDir
	}
	if cmd.Flags().Changed("prefix") {
		cfg.Prefix = migratePrefix
	}

	var client storage.Client
	if cfg.Source == migration.SourceBucket {
		client, err = storage.NewClient(rt.cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to create storage client: %w", err)
		}
	}
	src, err := migration.NewSource(cfg, client, rt.cfg.Storage.Bucket)
	if err != nil {
		return err
	}
	rt.logger.Info("Using migration source", zap.Stringer("source", src))

	reconciler := reconcile.New(rt.db, rt.logger)
	svc := migration.NewService(
		menu.NewService(rt.db, reconciler, rt.logger),
		orders.NewService(rt.db, reconciler, rt.logger),
		settings.NewService(rt.db, rt.logger),
		cfg,
		rt.logger,
	)
	return run(svc, src, rt)
}

func init() {
	migrateCmd.PersistentFlags().StringVar(&migrateSource, "source", "", "Where export files live (dir or bucket)")
	migrateCmd.PersistentFlags().StringVar(&migrateDir, "dir", "", "Directory holding export files")
	migrateCmd.PersistentFlags().StringVar(&migratePrefix, "prefix", "", "Key prefix inside the storage bucket")
	migrateCmd.AddCommand(migrateImportCmd, migrateExportCmd)
	RootCmd.AddCommand(migrateCmd)
}
