package domain

import "time"

// NotificationKind тип уведомления
type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationInfo    NotificationKind = "info"
	NotificationError   NotificationKind = "error"
)

// Notification транзиентное уведомление для отображения пользователю.
// Доставка не гарантируется, хранится только в рамках сессии.
type Notification struct {
	ID        int64
	Kind      NotificationKind
	Message   string
	Timestamp time.Time
}
