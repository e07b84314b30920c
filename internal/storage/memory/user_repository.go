package memory

import (
	"sync"

	"github.com/samandarerkinov/torthouse/internal/domain"
)

// userRepositoryInMemory — простая in-memory реализация UserRepository.
type userRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.UserProfile
}

// NewUserRepository возвращает in-memory репозиторий для локальной разработки и тестов.
func NewUserRepository() domain.UserRepository {
	return &userRepositoryInMemory{
		items: make(map[string]domain.UserProfile),
	}
}

// Get возвращает профиль; для незнакомого id — пустой профиль с заполненным ID.
func (r *userRepositoryInMemory) Get(userID string) (domain.UserProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, ok := r.items[userID]
	if !ok {
		return domain.UserProfile{ID: userID}, nil
	}
	return copyProfile(profile), nil
}

// Save перезаписывает профиль целиком.
func (r *userRepositoryInMemory) Save(profile domain.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[profile.ID] = copyProfile(profile)
	return nil
}

// copyProfile копирует профиль вместе со срезом заказов,
// чтобы мутации снаружи не задевали сохранённое состояние.
func copyProfile(p domain.UserProfile) domain.UserProfile {
	cp := p
	cp.OrderIDs = append([]string(nil), p.OrderIDs...)
	return cp
}

var _ domain.UserRepository = (*userRepositoryInMemory)(nil)
