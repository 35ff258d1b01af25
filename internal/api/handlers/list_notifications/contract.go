package list_notifications

import "github.com/m04kA/SMC-SalonBooking/internal/domain"

// NotificationSource уведомления текущей сессии
type NotificationSource interface {
	List(sessionID string) []domain.Notification
	Clear(sessionID string)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
