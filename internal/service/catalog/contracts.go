package catalog

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	ListServices(ctx context.Context, category *domain.Category) ([]domain.Service, error)
	GetServiceByID(ctx context.Context, id int64) (*domain.Service, error)
	ListWorkers(ctx context.Context, specialty *domain.Category) ([]domain.Worker, error)
}

// Notifier лента уведомлений сессии
type Notifier interface {
	Push(sessionID string, kind domain.NotificationKind, message string) domain.Notification
}

// Validator проверка request моделей по тегам
type Validator interface {
	Struct(s interface{}) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
