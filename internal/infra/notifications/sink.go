package notifications

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Sink транзиентные уведомления, сгруппированные по сессии.
// Доставка не гарантируется: записи пропадают вместе с сессией или по TTL.
type Sink struct {
	mu     sync.Mutex
	cache  *cache.Cache
	nextID int64
	now    func() time.Time
}

// NewSink создает sink с тем же TTL, что и у сессий
func NewSink(ttl, cleanupInterval time.Duration) *Sink {
	return &Sink{
		cache: cache.New(ttl, cleanupInterval),
		now:   time.Now,
	}
}

// Push добавляет уведомление в ленту сессии
func (s *Sink) Push(sessionID string, kind domain.NotificationKind, message string) domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	n := domain.Notification{
		ID:        s.nextID,
		Kind:      kind,
		Message:   message,
		Timestamp: s.now(),
	}

	s.cache.Set(sessionID, append(s.list(sessionID), n), cache.DefaultExpiration)
	return n
}

// List возвращает уведомления сессии в порядке поступления
func (s *Sink) List(sessionID string) []domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.list(sessionID)
	out := make([]domain.Notification, len(items))
	copy(out, items)
	return out
}

// Clear удаляет все уведомления сессии
func (s *Sink) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Delete(sessionID)
}

func (s *Sink) list(sessionID string) []domain.Notification {
	value, found := s.cache.Get(sessionID)
	if !found {
		return nil
	}
	items, _ := value.([]domain.Notification)
	return items
}
