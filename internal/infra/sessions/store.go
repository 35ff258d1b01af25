package sessions

import (
	"errors"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// ErrSessionNotFound сессия не найдена или истекла
var ErrSessionNotFound = errors.New("sessions.store: session not found")

// Store хранилище сессий в памяти процесса с TTL
type Store struct {
	cache *cache.Cache
	ttl   time.Duration
}

// NewStore создает хранилище. Каждый Get продлевает жизнь сессии на ttl.
func NewStore(ttl, cleanupInterval time.Duration) *Store {
	return &Store{
		cache: cache.New(ttl, cleanupInterval),
		ttl:   ttl,
	}
}

// Save сохраняет сессию по её ID
func (s *Store) Save(session *domain.Session) {
	s.cache.Set(session.ID, session, cache.DefaultExpiration)
}

// Get возвращает сессию и продлевает её
func (s *Store) Get(id string) (*domain.Session, error) {
	value, found := s.cache.Get(id)
	if !found {
		return nil, ErrSessionNotFound
	}

	session, ok := value.(*domain.Session)
	if !ok {
		return nil, ErrSessionNotFound
	}

	s.cache.Set(id, session, cache.DefaultExpiration)
	return session, nil
}

// Delete удаляет сессию. Отсутствующий ID не ошибка.
func (s *Store) Delete(id string) {
	s.cache.Delete(id)
}

// Count количество активных сессий
func (s *Store) Count() int {
	return s.cache.ItemCount()
}
