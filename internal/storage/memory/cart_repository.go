package memory

import (
	"sync"

	"github.com/samandarerkinov/torthouse/internal/domain"
)

// cartRepositoryInMemory — in-memory реализация CartRepository.
// Отсутствующая корзина эквивалентна пустой.
type cartRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Cart
}

// NewCartRepository возвращает in-memory репозиторий корзин.
func NewCartRepository() domain.CartRepository {
	return &cartRepositoryInMemory{
		items: make(map[string]domain.Cart),
	}
}

// Get возвращает корзину пользователя; для незнакомого id — пустую.
func (r *cartRepositoryInMemory) Get(userID string) (domain.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, ok := r.items[userID]
	if !ok {
		return domain.NewCart(userID), nil
	}
	return cart.Clone(), nil
}

// Save перезаписывает корзину целиком; пустая корзина — валидное состояние.
func (r *cartRepositoryInMemory) Save(cart domain.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[cart.UserID] = cart.Clone()
	return nil
}

var _ domain.CartRepository = (*cartRepositoryInMemory)(nil)
