package reports

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// BookingViewer проекция реестра для роли сессии
type BookingViewer interface {
	VisibleBookings(ctx context.Context, session *domain.Session) ([]*domain.Booking, error)
}

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	ListServices(ctx context.Context, category *domain.Category) ([]domain.Service, error)
	ListWorkers(ctx context.Context, specialty *domain.Category) ([]domain.Worker, error)
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
