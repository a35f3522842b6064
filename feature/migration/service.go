package migration

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"order-menu/core/database"
	"order-menu/core/reconcile"
	"order-menu/feature/menu"
	menumodels "order-menu/feature/menu/models"
	"order-menu/feature/orders"
	ordermodels "order-menu/feature/orders/models"
	"order-menu/feature/settings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ImportReport summarizes an import run.
type ImportReport struct {
	MenuItems         int      `json:"menu_items"`
	Orders            int      `json:"orders"`
	HiddenRestaurants bool     `json:"hidden_restaurants"`
	Reassigned        int      `json:"reassigned"`
	Skipped           []string `json:"skipped,omitempty"`
}

// ExportReport summarizes an export run.
type ExportReport struct {
	MenuItems int `json:"menu_items"`
	Orders    int `json:"orders"`
}

// settingsFile is the layout of the settings export.
type settingsFile struct {
	HiddenRestaurants database.JSON `json:"hiddenRestaurants"`
}

// exports holds the decoded export files. A nil field was skipped.
type exports struct {
	menu     []menumodels.Input
	orders   []ordermodels.Input
	settings *settingsFile
}

// Service moves data between export files and the store.
type Service struct {
	menu     *menu.Service
	orders   *orders.Service
	settings *settings.Service
	cfg      Config
	logger   *zap.Logger
}

// NewService creates a new migration service.
func NewService(menuSvc *menu.Service, orderSvc *orders.Service, settingSvc *settings.Service, cfg Config, logger *zap.Logger) *Service {
	if cfg.MenuBatchSize <= 0 {
		cfg.MenuBatchSize = 10
	}
	if cfg.OrderBatchSize <= 0 {
		cfg.OrderBatchSize = 50
	}
	return &Service{
		menu:     menuSvc,
		orders:   orderSvc,
		settings: settingSvc,
		cfg:      cfg,
		logger:   logger,
	}
}

// Import loads the export files from src and writes them to the store. Each
// non-empty collection replaces the stored one: the table is cleared, then the
// records are written in batches. Missing or unreadable files are skipped.
func (s *Service) Import(ctx context.Context, src Source) (*ImportReport, error) {
	l := s.logger.With(zap.Stringer("source", src))
	report := &ImportReport{}

	data, err := s.load(ctx, src, report)
	if err != nil {
		return report, err
	}

	if len(data.menu) > 0 {
		if _, err := s.menu.Apply(ctx, nil, reconcile.DeleteAll); err != nil {
			return report, fmt.Errorf("failed to clear menu items: %w", err)
		}
		for start := 0; start < len(data.menu); start += s.cfg.MenuBatchSize {
			end := min(start+s.cfg.MenuBatchSize, len(data.menu))
			res, err := s.menu.Apply(ctx, data.menu[start:end], reconcile.InsertOnly)
			if err != nil {
				return report, fmt.Errorf("failed to import menu items %d-%d: %w", start+1, end, err)
			}
			report.MenuItems += res.Count
			report.Reassigned += res.Reassigned
			l.Debug("Menu batch imported", zap.Int("from", start+1), zap.Int("to", end))
		}
		l.Info("Menu items imported", zap.Int("count", report.MenuItems))
	} else {
		l.Warn("No menu items to import")
	}

	if len(data.orders) > 0 {
		if _, err := s.orders.DeleteAll(ctx); err != nil {
			return report, fmt.Errorf("failed to clear orders: %w", err)
		}
		for start := 0; start < len(data.orders); start += s.cfg.OrderBatchSize {
			end := min(start+s.cfg.OrderBatchSize, len(data.orders))
			res, err := s.orders.Apply(ctx, data.orders[start:end], reconcile.InsertOnly)
			if err != nil {
				return report, fmt.Errorf("failed to import orders %d-%d: %w", start+1, end, err)
			}
			report.Orders += res.Count
			report.Reassigned += res.Reassigned
			l.Debug("Order batch imported", zap.Int("from", start+1), zap.Int("to", end))
		}
		l.Info("Orders imported", zap.Int("count", report.Orders))
	} else {
		l.Warn("No orders to import")
	}

	if data.settings != nil && len(data.settings.HiddenRestaurants) > 0 {
		if err := s.settings.SetHiddenRestaurants(ctx, data.settings.HiddenRestaurants); err != nil {
			return report, fmt.Errorf("failed to import hidden restaurants: %w", err)
		}
		report.HiddenRestaurants = true
		l.Info("Hidden restaurants imported")
	}

	return report, nil
}

// Export writes the current menu items, orders and settings to dst.
func (s *Service) Export(ctx context.Context, dst Source) (*ExportReport, error) {
	items, err := s.menu.List(ctx)
	if err != nil {
		return nil, err
	}
	orderList, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	hidden, err := s.settings.HiddenRestaurants(ctx)
	if err != nil {
		return nil, err
	}

	files := []struct {
		name  string
		value any
	}{
		{MenuItemsFile, items},
		{OrdersFile, orderList},
		{SettingsFile, settingsFile{HiddenRestaurants: hidden}},
	}
	for _, f := range files {
		data, err := json.MarshalIndent(f.value, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", f.name, err)
		}
		if err := dst.Write(ctx, f.name, data); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", f.name, err)
		}
	}

	s.logger.Info("Export written",
		zap.Stringer("destination", dst),
		zap.Int("menu_items", len(items)),
		zap.Int("orders", len(orderList)),
	)
	return &ExportReport{MenuItems: len(items), Orders: len(orderList)}, nil
}

// load reads and decodes the three export files concurrently.
func (s *Service) load(ctx context.Context, src Source, report *ImportReport) (*exports, error) {
	var (
		data     exports
		skipped  [3]string
		settings settingsFile
	)

	g, gctx := errgroup.WithContext(ctx)
	read := func(i int, name string, decode func([]byte) error) {
		g.Go(func() error {
			raw, err := src.Read(gctx, name)
			if errors.Is(err, ErrNotFound) {
				s.logger.Warn("Export file not found, skipping", zap.String("file", name))
				skipped[i] = name
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", name, err)
			}
			if err := decode(raw); err != nil {
				s.logger.Warn("Export file unreadable, skipping", zap.String("file", name), zap.Error(err))
				skipped[i] = name
			}
			return nil
		})
	}

	read(0, MenuItemsFile, func(raw []byte) error {
		items, err := decodeList[menumodels.Input](raw, "items")
		if err != nil {
			return err
		}
		data.menu = items
		return nil
	})
	read(1, OrdersFile, func(raw []byte) error {
		list, err := decodeList[ordermodels.Input](raw, "orders")
		if err != nil {
			return err
		}
		data.orders = list
		return nil
	})
	read(2, SettingsFile, func(raw []byte) error {
		if err := json.Unmarshal(raw, &settings); err != nil {
			return err
		}
		data.settings = &settings
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	for _, name := range skipped {
		if name != "" {
			report.Skipped = append(report.Skipped, name)
		}
	}
	return &data, nil
}

// decodeList accepts either a bare JSON array or an object holding the array
// under field. On any error nothing is returned: json.Unmarshal keeps filling
// the slice after a type mismatch.
func decodeList[T any](raw []byte, field string) ([]T, error) {
	list := bytes.TrimSpace(raw)
	if len(list) == 0 || list[0] != '[' {
		var wrapped map[string]json.RawMessage
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return nil, err
		}
		var ok bool
		if list, ok = wrapped[field]; !ok || string(bytes.TrimSpace(list)) == "null" {
			return nil, nil
		}
	}

	var out []T
	if err := json.Unmarshal(list, &out); err != nil {
		return nil, fmt.Errorf("invalid %s list: %w", field, err)
	}
	return out, nil
}
