package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Request модель запроса на получение слотов мастера
type Request struct {
	WorkerName string    // Имя мастера
	Date       time.Time // Дата для получения слотов (без времени)
	ServiceID  *int64    // Услуга (опционально): длительность для режима overlap
}

// Response модель ответа со слотами на дату
type Response struct {
	Date       time.Time // Дата, на которую запрашивались слоты
	WorkerName string    // Имя мастера
	Slots      []Slot    // Все слоты сетки с признаком доступности
}

// Slot модель временного слота
type Slot struct {
	StartTime       types.TimeString // Время начала слота (например, "10:00")
	DurationMinutes int              // Длительность проверяемого интервала в минутах
	Available       bool             // Слот свободен и еще не начался
}
