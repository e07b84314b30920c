package memory

import (
	"sync"

	"github.com/samandarerkinov/torthouse/internal/domain"
)

// orderCounterInMemory — процессный счётчик номеров заказов.
type orderCounterInMemory struct {
	mu      sync.Mutex
	counter int64
}

// NewOrderCounter возвращает счётчик, начинающийся с нуля.
func NewOrderCounter() domain.OrderCounter {
	return &orderCounterInMemory{}
}

// Next атомарно увеличивает счётчик и возвращает новое значение.
func (c *orderCounterInMemory) Next() (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.counter++
	return c.counter, nil
}

var _ domain.OrderCounter = (*orderCounterInMemory)(nil)
