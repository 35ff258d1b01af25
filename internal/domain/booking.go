package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pendiente"
	StatusConfirmed BookingStatus = "confirmada"
	StatusCompleted BookingStatus = "completada"
	StatusCancelled BookingStatus = "cancelada"
)

// AllStatuses все статусы в порядке жизненного цикла
var AllStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
}

// statusTransitions допустимые переходы статусов.
// completed и cancelled - терминальные.
var statusTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

// ParseBookingStatus конвертирует строку в BookingStatus с валидацией
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

// Validate returns an error for statuses outside the closed set
func (s BookingStatus) Validate() error {
	for _, known := range AllStatuses {
		if s == known {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrInvalidStatus, string(s))
}

// IsTerminal returns true if no further transitions are allowed
func (s BookingStatus) IsTerminal() bool {
	return len(statusTransitions[s]) == 0
}

// CanTransitionTo returns true if the transition s -> next is allowed
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// AllowedTransitions returns the statuses reachable from s in one step
func (s BookingStatus) AllowedTransitions() []BookingStatus {
	allowed := statusTransitions[s]
	out := make([]BookingStatus, len(allowed))
	copy(out, allowed)
	return out
}

// Booking represents an appointment in the ledger
type Booking struct {
	ID int64

	ClientName  string
	ClientEmail string

	// Denormalized data for history: later catalog edits do not touch existing bookings
	ServiceName     string
	WorkerName      string
	DurationMinutes int
	Price           int64

	Date   time.Time // calendar date, time-of-day is ignored
	Time   types.TimeString
	Status BookingStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// IsCompleted returns true if the service was delivered
func (b *Booking) IsCompleted() bool {
	return b.Status == StatusCompleted
}

// StartsAt returns the booking start as an instant in loc
func (b *Booking) StartsAt(loc *time.Location) (time.Time, error) {
	minutes, err := b.Time.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := b.Date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc).Add(time.Duration(minutes) * time.Minute), nil
}

// OnDate returns true if the booking falls on the calendar date of day
func (b *Booking) OnDate(day time.Time) bool {
	return SameDay(b.Date, day)
}

// BookingFilter фильтр для выборки из реестра бронирований.
// Все поля опциональны; nil - без ограничения.
type BookingFilter struct {
	ClientEmail     *string
	WorkerName      *string
	ServiceName     *string
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *BookingStatus
	IncludeInactive bool // включать ли отмененные, если Status не задан
}

// Matches применяет фильтр к бронированию в памяти
func (f BookingFilter) Matches(b *Booking) bool {
	if f.ClientEmail != nil && b.ClientEmail != *f.ClientEmail {
		return false
	}
	if f.WorkerName != nil && b.WorkerName != *f.WorkerName {
		return false
	}
	if f.ServiceName != nil && b.ServiceName != *f.ServiceName {
		return false
	}
	if f.StartDate != nil && DateOnly(b.Date).Before(DateOnly(*f.StartDate)) {
		return false
	}
	if f.EndDate != nil && DateOnly(b.Date).After(DateOnly(*f.EndDate)) {
		return false
	}
	if f.Status != nil {
		return b.Status == *f.Status
	}
	return f.IncludeInactive || b.IsActive()
}

// SameDay returns true if both instants share the calendar date
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DateOnly truncates t to midnight UTC of its calendar date
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar date
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}
