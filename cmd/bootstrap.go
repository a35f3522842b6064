package cmd

import (
	"fmt"

	"order-menu/core/config"
	"order-menu/core/database"
	"order-menu/core/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// runtime bundles what every command needs before it can touch the store.
type runtime struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *gorm.DB
}

// bootstrap loads configuration, builds the logger and connects to the database.
func bootstrap() (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database connection required: %w", err)
	}
	logg.Info("Connected to database",
		zap.String("driver", cfg.Database.Driver),
		zap.String("name", cfg.Database.Name),
	)

	return &runtime{cfg: cfg, logger: logg, db: db}, nil
}

func (r *runtime) close() {
	_ = database.Close(r.db)
	_ = r.logger.Sync()
}
