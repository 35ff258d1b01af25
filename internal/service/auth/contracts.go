package auth

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// SessionStore хранилище сессий
type SessionStore interface {
	Save(session *domain.Session)
	Delete(id string)
}

// Notifier лента уведомлений сессии
type Notifier interface {
	Push(sessionID string, kind domain.NotificationKind, message string) domain.Notification
	Clear(sessionID string)
}

// Metrics счетчик входов по ролям
type Metrics interface {
	Login(role string)
}

// Validator проверка request моделей по тегам
type Validator interface {
	Struct(s interface{}) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
