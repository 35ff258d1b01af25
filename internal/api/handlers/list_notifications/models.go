package list_notifications

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

type NotificationResponse struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
}

func fromDomain(items []domain.Notification) *NotificationListResponse {
	out := make([]NotificationResponse, 0, len(items))
	for _, n := range items {
		out = append(out, NotificationResponse{
			ID:        n.ID,
			Type:      string(n.Kind),
			Message:   n.Message,
			Timestamp: n.Timestamp,
		})
	}
	return &NotificationListResponse{Notifications: out}
}
