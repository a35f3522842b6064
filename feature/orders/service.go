package orders

import (
	"context"
	"time"

	"order-menu/core/apperr"
	"order-menu/core/reconcile"
	"order-menu/feature/orders/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Table is the reconcile target for orders. An explicit id that already exists
// overwrites the stored order.
var Table = reconcile.Table{
	Name:     "orders",
	Model:    &models.Order{},
	Conflict: reconcile.ConflictOverwrite,
}

// Service handles order operations.
type Service struct {
	db         *gorm.DB
	reconciler *reconcile.Reconciler
	logger     *zap.Logger
	now        func() time.Time
}

// NewService creates a new order service.
func NewService(db *gorm.DB, reconciler *reconcile.Reconciler, logger *zap.Logger) *Service {
	return &Service{
		db:         db,
		reconciler: reconciler,
		logger:     logger,
		now:        time.Now,
	}
}

// List returns every order, newest first.
func (s *Service) List(ctx context.Context) ([]models.Order, error) {
	return s.find(ctx, "created_at DESC, id DESC")
}

// FetchOrdered implements watch.Source.
func (s *Service) FetchOrdered(ctx context.Context) ([]models.Order, error) {
	return s.List(ctx)
}

// FetchUnordered implements watch.Source.
func (s *Service) FetchUnordered(ctx context.Context) ([]models.Order, error) {
	return s.find(ctx, "")
}

// Save upserts a single order and returns its id. It never deletes.
func (s *Service) Save(ctx context.Context, order models.Input) (int, error) {
	return s.reconciler.Save(ctx, Table, order.Entry(s.now()))
}

// SaveBatch makes the table hold exactly the given orders: stored orders whose
// id is not in the batch are deleted, the rest are upserted.
func (s *Service) SaveBatch(ctx context.Context, orders []models.Input) (*reconcile.Result, error) {
	return s.Apply(ctx, orders, reconcile.DeleteMissing)
}

// Apply reconciles orders into the table with an explicit policy.
func (s *Service) Apply(ctx context.Context, orders []models.Input, policy reconcile.Policy) (*reconcile.Result, error) {
	now := s.now()
	entries := make([]reconcile.Entry, len(orders))
	for i, order := range orders {
		entries[i] = order.Entry(now)
	}
	return s.reconciler.Reconcile(ctx, Table, entries, policy)
}

// Delete removes the order with the given id.
func (s *Service) Delete(ctx context.Context, rawID string) error {
	key, ok := reconcile.Normalize(rawID).Key()
	if !ok {
		return apperr.NotFound("Order not found")
	}

	res := s.db.WithContext(ctx).Delete(&models.Order{}, key)
	if res.Error != nil {
		return apperr.Storage(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Order not found")
	}
	return nil
}

// DeleteAll removes every order and returns how many were deleted.
func (s *Service) DeleteAll(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Order{})
	if res.Error != nil {
		return 0, apperr.Storage(res.Error)
	}
	return res.RowsAffected, nil
}

func (s *Service) find(ctx context.Context, order string) ([]models.Order, error) {
	orders := []models.Order{}
	q := s.db.WithContext(ctx)
	if order != "" {
		q = q.Order(order)
	}
	if err := q.Find(&orders).Error; err != nil {
		return nil, apperr.Storage(err)
	}
	return orders, nil
}
