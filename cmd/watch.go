package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"order-menu/core/database"
	"order-menu/core/reconcile"
	"order-menu/core/watch"
	"order-menu/feature/menu"
	menumodels "order-menu/feature/menu/models"
	"order-menu/feature/orders"
	ordermodels "order-menu/feature/orders/models"
	"order-menu/feature/settings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// watchCmd streams snapshots of a collection until interrupted.
var watchCmd = &cobra.Command{
	Use:       "watch [menu|orders|settings]",
	Short:     "Print a snapshot of a collection every time it is polled",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"menu", "orders", "settings"},
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		reconciler := reconcile.New(rt.db, rt.logger)
		switch args[0] {
		case "menu":
			return watchUntilDone[[]menumodels.Item](ctx, rt, menu.NewService(rt.db, reconciler, rt.logger), func(items []menumodels.Item) int { return len(items) })
		case "orders":
			return watchUntilDone[[]ordermodels.Order](ctx, rt, orders.NewService(rt.db, reconciler, rt.logger), func(list []ordermodels.Order) int { return len(list) })
		case "settings":
			return watchUntilDone[database.JSON](ctx, rt, settings.NewService(rt.db, rt.logger), func(database.JSON) int { return 1 })
		default:
			return fmt.Errorf("unknown collection %q", args[0])
		}
	},
}

func watchUntilDone[T any](ctx context.Context, rt *runtime, source watch.Source[T], size func(T) int) error {
	listener := watch.Funcs[T]{
		Snapshot: func(snapshot T, guarantee watch.Guarantee) {
			data, err := json.Marshal(snapshot)
			if err != nil {
				rt.logger.Error("Failed to encode snapshot", zap.Error(err))
				return
			}
			rt.logger.Debug("Snapshot received", zap.Stringer("guarantee", guarantee), zap.Int("records", size(snapshot)))
			fmt.Println(string(data))
		},
		StateChange: func(current, previous watch.State) {
			rt.logger.Info("Connection state changed",
				zap.Stringer("state", current),
				zap.Stringer("previous", previous),
			)
		},
	}

	poller := watch.NewPoller(source, listener, rt.cfg.Watch, rt.logger)
	if err := poller.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	poller.Stop()
	return nil
}

func init() {
	RootCmd.AddCommand(watchCmd)
}
