package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	ServiceID   int64            // ID услуги из каталога
	WorkerID    int64            // ID мастера из каталога
	Date        time.Time        // Дата бронирования (без времени)
	StartTime   types.TimeString // Время начала слота (например, "10:00")
	ClientName  *string          // Имя клиента, по умолчанию из сессии
	ClientEmail *string          // Email клиента, по умолчанию из сессии
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID          int64
	ClientName  string
	ClientEmail string

	// Денормализованные данные
	ServiceName     string
	WorkerName      string
	DurationMinutes int
	Price           int64

	BookingDate time.Time
	StartTime   types.TimeString
	Status      string
	Message     string // Текст уведомления о бронировании

	CreatedAt time.Time
	UpdatedAt time.Time
}
