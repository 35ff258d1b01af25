package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// slotCheck проверка занятости слота в выбранном режиме
type slotCheck func(bookings []*domain.Booking, workerName string, date time.Time, t types.TimeString, durationMinutes int) bool

// buildSlots размечает все слоты сетки признаком доступности.
// На сегодняшнюю дату слоты, время начала которых уже прошло, недоступны.
func buildSlots(
	times []types.TimeString,
	duration int,
	workerName string,
	date time.Time,
	now time.Time,
	bookings []*domain.Booking,
	isFree slotCheck,
) []Slot {
	result := make([]Slot, len(times))

	today := domain.SameDay(date, now)
	current := types.NewTimeString(now)

	for i, start := range times {
		available := isFree(bookings, workerName, date, start, duration)
		if available && today && !current.IsBefore(start) {
			available = false
		}

		result[i] = Slot{
			StartTime:       start,
			DurationMinutes: duration,
			Available:       available,
		}
	}

	return result
}
