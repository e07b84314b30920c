package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/samandarerkinov/torthouse/internal/domain"
)

type orderCounter struct {
	db *sql.DB
}

// NewOrderCounter создаёт PostgreSQL-реализацию счётчика номеров заказов.
// Атомарность обеспечивает сама БД: UPDATE … RETURNING сериализует
// конкурентные инкременты на строке-синглтоне.
func NewOrderCounter(store *Store) domain.OrderCounter {
	return &orderCounter{db: store.DB()}
}

// Next атомарно увеличивает счётчик и возвращает новое значение.
func (c *orderCounter) Next() (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var counter int64
	err := c.db.QueryRowContext(ctx, `
		UPDATE order_counter SET counter = counter + 1 WHERE id = 1
		RETURNING counter
	`).Scan(&counter)
	if err != nil {
		return 0, fmt.Errorf("increment order counter: %w", err)
	}
	return counter, nil
}

var _ domain.OrderCounter = (*orderCounter)(nil)
