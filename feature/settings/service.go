package settings

import (
	"context"
	"errors"

	"order-menu/core/apperr"
	"order-menu/core/database"
	"order-menu/core/utils"
	"order-menu/feature/settings/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service handles settings operations.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new settings service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// Get returns the stored value of key. found is false when the key was never written.
func (s *Service) Get(ctx context.Context, key string) (value database.JSON, found bool, err error) {
	var setting models.Setting
	err = s.db.WithContext(ctx).Where(clause.Eq{Column: clause.Column{Name: "key"}, Value: key}).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, apperr.Storage(err)
	}
	return setting.Value, true, nil
}

// Put stores value under key, replacing any previous value.
func (s *Service) Put(ctx context.Context, key string, value database.JSON) error {
	setting := models.Setting{Key: key, Value: value}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
	return apperr.Storage(err)
}

// Seed stores value under key unless the key already exists.
func (s *Service) Seed(ctx context.Context, key string, value database.JSON) error {
	setting := models.Setting{Key: key, Value: value}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoNothing: true,
	}).Create(&setting).Error
	return apperr.Storage(err)
}

// HiddenRestaurants returns the hidden restaurants list; [] when unset.
func (s *Service) HiddenRestaurants(ctx context.Context) (database.JSON, error) {
	value, found, err := s.Get(ctx, models.HiddenRestaurantsKey)
	if err != nil {
		return nil, err
	}
	if !found || !utils.IsJSONArray(value) {
		return database.JSON("[]"), nil
	}
	return value, nil
}

// SetHiddenRestaurants replaces the hidden restaurants list.
func (s *Service) SetHiddenRestaurants(ctx context.Context, restaurants database.JSON) error {
	if !utils.IsJSONArray(restaurants) {
		return apperr.Validation("Restaurants must be an array")
	}
	return s.Put(ctx, models.HiddenRestaurantsKey, restaurants)
}

// FetchOrdered implements watch.Source.
func (s *Service) FetchOrdered(ctx context.Context) (database.JSON, error) {
	return s.HiddenRestaurants(ctx)
}

// FetchUnordered implements watch.Source. A single document has no ordering.
func (s *Service) FetchUnordered(ctx context.Context) (database.JSON, error) {
	return s.HiddenRestaurants(ctx)
}
