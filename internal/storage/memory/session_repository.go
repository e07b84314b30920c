package memory

import (
	"sync"

	"github.com/samandarerkinov/torthouse/internal/domain"
)

// sessionRepositoryInMemory — in-memory реализация SessionRepository.
type sessionRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Session
}

// NewSessionRepository возвращает in-memory репозиторий сессий диалога.
func NewSessionRepository() domain.SessionRepository {
	return &sessionRepositoryInMemory{
		items: make(map[string]domain.Session),
	}
}

// Get возвращает сессию; для незнакомого id — сессию в состоянии Idle.
func (r *sessionRepositoryInMemory) Get(userID string) (domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.items[userID]
	if !ok {
		return domain.NewSession(userID), nil
	}
	return copySession(session), nil
}

// Save перезаписывает сессию целиком.
func (r *sessionRepositoryInMemory) Save(session domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[session.UserID] = copySession(session)
	return nil
}

// Delete сбрасывает диалог пользователя.
func (r *sessionRepositoryInMemory) Delete(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, userID)
	return nil
}

// copySession копирует сессию вместе с указателем на локацию.
func copySession(s domain.Session) domain.Session {
	cp := s
	if s.Location != nil {
		loc := *s.Location
		cp.Location = &loc
	}
	return cp
}

var _ domain.SessionRepository = (*sessionRepositoryInMemory)(nil)
