package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/samandarerkinov/torthouse/internal/domain"
	"github.com/samandarerkinov/torthouse/internal/storage/memory"
	"github.com/samandarerkinov/torthouse/internal/storage/postgres"
)

// Dependencies содержит хранилища приложения.
type Dependencies struct {
	Users    domain.UserRepository
	Carts    domain.CartRepository
	Sessions domain.SessionRepository
	Orders   domain.OrderRepository
	Counter  domain.OrderCounter

	// Store ненулевой только при PostgreSQL-хранилище.
	Store  *postgres.Store
	Logger *log.Entry
}

// NewDependencies собирает хранилища: PostgreSQL при заданном DSN,
// иначе in-memory для разработки и тестов.
func NewDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	if cfg.DatabaseDSN == "" {
		logger.Info("database dsn not set, using in-memory storage")
		return &Dependencies{
			Users:    memory.NewUserRepository(),
			Carts:    memory.NewCartRepository(),
			Sessions: memory.NewSessionRepository(),
			Orders:   memory.NewOrderRepository(),
			Counter:  memory.NewOrderCounter(),
			Logger:   logger,
		}, nil
	}

	store, err := postgres.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres store: %w", err)
	}
	if err := store.EnsureSchema(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	logger.Info("postgres storage initialized")

	return &Dependencies{
		Users:    postgres.NewUserRepository(store),
		Carts:    postgres.NewCartRepository(store),
		Sessions: postgres.NewSessionRepository(store),
		Orders:   postgres.NewOrderRepository(store),
		Counter:  postgres.NewOrderCounter(store),
		Store:    store,
		Logger:   logger,
	}, nil
}

// Close освобождает ресурсы хранилища.
func (d *Dependencies) Close() {
	if d.Store != nil {
		if err := d.Store.Close(); err != nil {
			d.Logger.WithError(err).Warn("failed to close postgres store")
		}
	}
}
