package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"order-menu/core/loader"
	"order-menu/core/reconcile"
	"order-menu/core/server"
	"order-menu/feature/health"
	"order-menu/feature/menu"
	"order-menu/feature/orders"
	"order-menu/feature/schema"
	"order-menu/feature/settings"

	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "order-menu/docs/swagger"
)

// @title Order Menu API
// @version 1.0
// @description API for menu items, orders and restaurant settings.
// @host localhost:3000
// @BasePath /

var skipSchema bool

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the order menu server",
	Long:  `Connects to the database, creates missing tables and serves the HTTP API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.close()
		logg := rt.logger
		zap.ReplaceGlobals(logg)

		if !skipSchema {
			if err := schema.NewService(rt.db, logg).CreateTables(cmd.Context()); err != nil {
				return err
			}
		}

		app := server.NewApp(rt.cfg.Server, logg)
		app.Get("/swagger/*", swagger.HandlerDefault)

		reconciler := reconcile.New(rt.db, logg)

		mgr := loader.NewManager(logg)
		mgr.Register(health.NewFeature(rt.db, logg))
		mgr.Register(menu.NewFeature(rt.db, reconciler, logg))
		mgr.Register(orders.NewFeature(rt.db, reconciler, logg))
		mgr.Register(settings.NewFeature(rt.db, logg))

		if err := mgr.LoadAll(app.Group("/api")); err != nil {
			return err
		}

		errCh := make(chan error, 1)
		go func() {
			logg.Info("Starting server", zap.String("address", rt.cfg.Server.Address()))
			errCh <- app.Listen(rt.cfg.Server.Address())
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		select {
		case err := <-errCh:
			return err
		case <-quit:
		}

		logg.Info("Shutting down server...")
		return app.Shutdown()
	},
}

func init() {
	startCmd.Flags().BoolVar(&skipSchema, "skip-schema", false, "Do not create missing tables on startup")
	RootCmd.AddCommand(startCmd)
}
