package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// AvailableSlot represents one bookable (worker, date, time) unit
type AvailableSlot struct {
	StartTime       types.TimeString
	DurationMinutes int
	Available       bool
}

// SlotGrid фиксированная сетка слотов салона (open включительно, close исключительно)
type SlotGrid struct {
	Open        types.TimeString
	Close       types.TimeString
	StepMinutes int
}

// DefaultSlotGrid 08:00-20:00 с шагом 30 минут
func DefaultSlotGrid() SlotGrid {
	return SlotGrid{
		Open:        DefaultOpenTime,
		Close:       DefaultCloseTime,
		StepMinutes: DefaultSlotDurationMinutes,
	}
}

// Slots генерирует все времена начала слотов сетки
func (g SlotGrid) Slots() ([]types.TimeString, error) {
	if g.StepMinutes <= 0 {
		return nil, types.ErrTimeOverflow
	}

	slots := make([]types.TimeString, 0)
	current := g.Open
	for current.IsBefore(g.Close) {
		slots = append(slots, current)

		next, err := current.AddMinutes(g.StepMinutes)
		if err != nil {
			return nil, err
		}
		current = next
	}
	return slots, nil
}

// Contains возвращает true, если t - одно из времен начала слотов сетки
func (g SlotGrid) Contains(t types.TimeString) bool {
	if t.Validate() != nil || t.IsBefore(g.Open) || !t.IsBefore(g.Close) {
		return false
	}
	start, err := g.Open.Minutes()
	if err != nil {
		return false
	}
	m, err := t.Minutes()
	if err != nil || g.StepMinutes <= 0 {
		return false
	}
	return (m-start)%g.StepMinutes == 0
}

// IsSlotAvailable reports whether (workerName, date, t) is free in the ledger:
// false if a non-cancelled booking has exactly the same tuple.
// Fails closed: empty worker, zero date or malformed time yield false.
func IsSlotAvailable(bookings []*Booking, workerName string, date time.Time, t types.TimeString) bool {
	if workerName == "" || date.IsZero() || t.Validate() != nil {
		return false
	}

	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		if b.WorkerName == workerName && SameDay(b.Date, date) && b.Time.Equal(t) {
			return false
		}
	}
	return true
}

// IsSlotFreeOfOverlap как IsSlotAvailable, но учитывает длительность:
// слот [t, t+duration) занят, если пересекается с любым активным бронированием мастера.
// Граничащие интервалы (конец одного == начало другого) не считаются пересечением.
func IsSlotFreeOfOverlap(bookings []*Booking, workerName string, date time.Time, t types.TimeString, durationMinutes int) bool {
	if workerName == "" || date.IsZero() || t.Validate() != nil {
		return false
	}

	slotEnd, err := t.AddMinutes(durationMinutes)
	if err != nil {
		return false
	}

	for _, b := range bookings {
		if !b.IsActive() || b.WorkerName != workerName || !SameDay(b.Date, date) {
			continue
		}

		bookingEnd, err := b.Time.AddMinutes(b.DurationMinutes)
		if err != nil {
			// Если не можем вычислить конец бронирования, считаем слот занятым
			return false
		}

		if b.Time.IsBefore(slotEnd) && bookingEnd.IsAfter(t) {
			return false
		}
	}
	return true
}

// SlotChecker возвращает функцию проверки слота для выбранного режима
func SlotChecker(mode ConflictMode) func(bookings []*Booking, workerName string, date time.Time, t types.TimeString, durationMinutes int) bool {
	switch mode {
	case ConflictOverlap:
		return IsSlotFreeOfOverlap
	case ConflictExact:
		return func(bookings []*Booking, workerName string, date time.Time, t types.TimeString, _ int) bool {
			return IsSlotAvailable(bookings, workerName, date, t)
		}
	default:
		return func([]*Booking, string, time.Time, types.TimeString, int) bool {
			return false
		}
	}
}
