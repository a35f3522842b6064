package health

import (
	"context"
	"time"

	"order-menu/core/database"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// DefaultTimeout bounds a single store ping.
const DefaultTimeout = 5 * time.Second

// Service checks store connectivity.
type Service struct {
	db      *gorm.DB
	logger  *zap.Logger
	timeout time.Duration
	probes  singleflight.Group
	ping    func(ctx context.Context) error
}

// NewService creates a new health service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	s := &Service{db: db, logger: logger, timeout: DefaultTimeout}
	s.ping = s.pingStore
	return s
}

// Check pings the store. Concurrent calls share one ping.
func (s *Service) Check(ctx context.Context) error {
	ch := s.probes.DoChan("ping", func() (any, error) {
		pingCtx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		return nil, s.ping(pingCtx)
	})

	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Service) pingStore(ctx context.Context) error {
	if s.db == nil {
		return errNoDatabase
	}
	return database.Ping(ctx, s.db)
}
