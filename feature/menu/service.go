package menu

import (
	"context"

	"order-menu/core/apperr"
	"order-menu/core/reconcile"
	"order-menu/feature/menu/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Table is the reconcile target for menu items. Colliding explicit ids get a
// new key instead of overwriting the stored row.
var Table = reconcile.Table{
	Name:     "menu_items",
	Model:    &models.Item{},
	Conflict: reconcile.ConflictReassign,
}

// Service handles menu item operations.
type Service struct {
	db         *gorm.DB
	reconciler *reconcile.Reconciler
	logger     *zap.Logger
}

// NewService creates a new menu service.
func NewService(db *gorm.DB, reconciler *reconcile.Reconciler, logger *zap.Logger) *Service {
	return &Service{
		db:         db,
		reconciler: reconciler,
		logger:     logger,
	}
}

// List returns every menu item ordered by id.
func (s *Service) List(ctx context.Context) ([]models.Item, error) {
	return s.find(ctx, "id ASC")
}

// FetchOrdered implements watch.Source.
func (s *Service) FetchOrdered(ctx context.Context) ([]models.Item, error) {
	return s.List(ctx)
}

// FetchUnordered implements watch.Source.
func (s *Service) FetchUnordered(ctx context.Context) ([]models.Item, error) {
	return s.find(ctx, "")
}

// SaveBatch replaces the menu with items. A migration batch keeps the stored
// items and adds the new ones alongside.
func (s *Service) SaveBatch(ctx context.Context, items []models.Input, migration bool) (*reconcile.Result, error) {
	policy := reconcile.DeleteAll
	if migration {
		policy = reconcile.InsertOnly
	}
	return s.Apply(ctx, items, policy)
}

// Apply reconciles items into the table with an explicit policy.
func (s *Service) Apply(ctx context.Context, items []models.Input, policy reconcile.Policy) (*reconcile.Result, error) {
	entries := make([]reconcile.Entry, len(items))
	for i, item := range items {
		entries[i] = item.Entry()
	}
	return s.reconciler.Reconcile(ctx, Table, entries, policy)
}

func (s *Service) find(ctx context.Context, order string) ([]models.Item, error) {
	items := []models.Item{}
	q := s.db.WithContext(ctx)
	if order != "" {
		q = q.Order(order)
	}
	if err := q.Find(&items).Error; err != nil {
		return nil, apperr.Storage(err)
	}
	return items, nil
}
