package schema

import (
	"context"
	"fmt"

	"order-menu/core/apperr"
	"order-menu/core/database"
	menumodels "order-menu/feature/menu/models"
	ordermodels "order-menu/feature/orders/models"
	"order-menu/feature/settings"
	settingmodels "order-menu/feature/settings/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// countryTables lists the tables carrying a country column.
var countryTables = []struct {
	name  string
	model any
}{
	{"menu_items", &menumodels.Item{}},
	{"orders", &ordermodels.Order{}},
}

// BackfillReport describes the country backfill of one table.
type BackfillReport struct {
	Table       string `json:"table"`
	ColumnAdded bool   `json:"column_added"`
	Updated     int64  `json:"updated"`
}

// TableInfo describes one table of the connected schema.
type TableInfo struct {
	Name    string                `json:"name"`
	Rows    int64                 `json:"rows"`
	Columns []database.ColumnInfo `json:"columns"`
}

// Service manages the schema of the order-menu tables.
type Service struct {
	db       *gorm.DB
	settings *settings.Service
	logger   *zap.Logger
}

// NewService creates a new schema service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{
		db:       db,
		settings: settings.NewService(db, logger),
		logger:   logger,
	}
}

// CreateTables creates or updates menu_items, orders and settings, then seeds
// an empty hidden restaurants list unless one is already stored.
func (s *Service) CreateTables(ctx context.Context) error {
	err := s.db.WithContext(ctx).Set("gorm:table_options", tableOptions(s.db)).AutoMigrate(
		&menumodels.Item{},
		&ordermodels.Order{},
		&settingmodels.Setting{},
	)
	if err != nil {
		return apperr.Storage(fmt.Errorf("failed to migrate tables: %w", err))
	}
	s.logger.Info("Tables ready", zap.Strings("tables", []string{"menu_items", "orders", "settings"}))

	if err := s.settings.Seed(ctx, settingmodels.HiddenRestaurantsKey, database.JSON("[]")); err != nil {
		return err
	}
	return nil
}

// BackfillCountry adds the country column where it is missing and sets the
// default country on every row that has none.
func (s *Service) BackfillCountry(ctx context.Context) ([]BackfillReport, error) {
	db := s.db.WithContext(ctx)
	reports := make([]BackfillReport, 0, len(countryTables))

	for _, t := range countryTables {
		report := BackfillReport{Table: t.name}

		has, err := database.HasColumn(db, t.name, "country")
		if err != nil {
			return reports, apperr.Storage(err)
		}
		if !has {
			if err := db.Migrator().AddColumn(t.model, "Country"); err != nil {
				return reports, apperr.Storage(fmt.Errorf("failed to add country to %s: %w", t.name, err))
			}
			report.ColumnAdded = true
			s.logger.Info("Added country column", zap.String("table", t.name))
		}

		res := db.Model(t.model).
			Where("country IS NULL OR country = ?", "").
			Update("country", menumodels.DefaultCountry)
		if res.Error != nil {
			return reports, apperr.Storage(fmt.Errorf("failed to backfill %s: %w", t.name, res.Error))
		}
		report.Updated = res.RowsAffected
		s.logger.Info("Backfilled country",
			zap.String("table", t.name),
			zap.Int64("updated", report.Updated),
		)

		reports = append(reports, report)
	}
	return reports, nil
}

// Describe lists the tables of the connected schema with their columns and row counts.
func (s *Service) Describe(ctx context.Context) ([]TableInfo, error) {
	db := s.db.WithContext(ctx)

	tables, err := database.ListTables(db)
	if err != nil {
		return nil, apperr.Storage(err)
	}

	infos := make([]TableInfo, 0, len(tables))
	for _, name := range tables {
		columns, err := database.GetTableColumns(db, name)
		if err != nil {
			return nil, apperr.Storage(err)
		}
		var rows int64
		if err := db.Table(name).Count(&rows).Error; err != nil {
			return nil, apperr.Storage(fmt.Errorf("failed to count %s: %w", name, err))
		}
		infos = append(infos, TableInfo{Name: name, Rows: rows, Columns: columns})
	}
	return infos, nil
}

func tableOptions(db *gorm.DB) string {
	if db.Dialector.Name() == database.DriverMySQL {
		return "ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci"
	}
	return ""
}
